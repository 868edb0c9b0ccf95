package utils

import (
	"encoding/base64"
	"testing"

	"doctor-appointment-service/internal/pkg/constvars"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildAppointmentConfirmationEmailPayload(t *testing.T) {
	payload, err := BuildAppointmentConfirmationEmailPayload("noreply@clinic.test", "patient@clinic.test", AppointmentConfirmationEmail{
		PatientName:    "Jane <Doe>",
		DoctorName:     "Dr. Rahman",
		Specialization: "Cardiology",
		Day:            "Monday",
		Date:           "07/03/2024",
		Time:           "10:30",
		Place:          "Clinic A",
	})
	require.NoError(t, err)

	assert.Equal(t, constvars.EmailAppointmentConfirmationSubject, payload.Subject)
	assert.Equal(t, []string{"patient@clinic.test"}, payload.To)
	assert.True(t, payload.Encoded)

	html, err := base64.StdEncoding.DecodeString(payload.HTMLCode)
	require.NoError(t, err)
	assert.Contains(t, string(html), "<strong>Time:</strong> 10:30")
	assert.Contains(t, string(html), "Jane &lt;Doe&gt;")
	assert.Contains(t, string(html), "Please arrive 10 minutes before")
}
