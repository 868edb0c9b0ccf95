package utils

import (
	"bytes"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"doctor-appointment-service/internal/pkg/constvars"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildCreateDoctorRequest_JSON(t *testing.T) {
	body := `{"name":"Dr. Rahman","specialist":"Cardiology","fees":500,"schedule":[{"day":"Monday","places":[{"place":"Clinic A","timeInterval":{"start":"10:00","end":"12:00"},"maxPatients":4}]}]}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/doctors", strings.NewReader(body))
	req.Header.Set(constvars.HeaderContentType, constvars.MIMEApplicationJSON)

	request, err := BuildCreateDoctorRequest(req)
	require.NoError(t, err)
	assert.Equal(t, "Dr. Rahman", request.Name)
	assert.Equal(t, float64(500), request.Fees)
	require.Len(t, request.Schedule, 1)
	assert.Equal(t, 4, request.Schedule[0].Places[0].MaxPatients)
}

func TestBuildUpdateDoctorRequest_Multipart(t *testing.T) {
	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	require.NoError(t, writer.WriteField("fees", "750"))
	require.NoError(t, writer.WriteField("experienceYears", "12"))
	require.NoError(t, writer.WriteField("existingPictureUrl", "https://cdn.example.com/doctor.png"))
	require.NoError(t, writer.WriteField("schedule", `[{"day":"Friday","places":[{"place":"Clinic B","timeInterval":{"start":"09:00","end":"11:00"},"maxPatients":2}]}]`))
	part, err := writer.CreateFormFile("picture", "doctor.png")
	require.NoError(t, err)
	_, err = part.Write([]byte("png-bytes"))
	require.NoError(t, err)
	require.NoError(t, writer.Close())

	req := httptest.NewRequest(http.MethodPut, "/api/v1/doctors/1", &buf)
	req.Header.Set(constvars.HeaderContentType, writer.FormDataContentType())

	request, err := BuildUpdateDoctorRequest(req)
	require.NoError(t, err)
	require.NotNil(t, request.Fees)
	assert.Equal(t, float64(750), *request.Fees)
	require.NotNil(t, request.ExperienceYears)
	assert.Equal(t, 12, *request.ExperienceYears)
	require.NotNil(t, request.ExistingPictureUrl)
	require.NotNil(t, request.Schedule)
	assert.Equal(t, "Friday", (*request.Schedule)[0].Day)
	assert.Nil(t, request.Name)
	assert.Equal(t, []byte("png-bytes"), request.PictureFile)
	assert.Equal(t, "doctor.png", request.PictureFileName)
}

func TestBuildUpdateDoctorRequest_MalformedSchedule(t *testing.T) {
	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	require.NoError(t, writer.WriteField("schedule", `[{"day":`))
	require.NoError(t, writer.Close())

	req := httptest.NewRequest(http.MethodPut, "/api/v1/doctors/1", &buf)
	req.Header.Set(constvars.HeaderContentType, writer.FormDataContentType())

	_, err := BuildUpdateDoctorRequest(req)
	assert.Error(t, err)
}
