package utils

import (
	"bytes"
	"doctor-appointment-service/internal/pkg/constvars"
	"doctor-appointment-service/internal/pkg/dto/requests"
	"encoding/base64"
	"html/template"
)

type AppointmentConfirmationEmail struct {
	PatientName    string
	DoctorName     string
	Specialization string
	Day            string
	Date           string
	Time           string
	Place          string
}

var appointmentConfirmationTemplate = template.Must(template.New("appointment_confirmation").Parse(`
<h2>Appointment Confirmation</h2>
<p>Dear {{.PatientName}},</p>
<p>Your appointment has been successfully booked with the following details:</p>
<ul>
  <li><strong>Doctor:</strong> {{.DoctorName}}</li>
  <li><strong>Specialization:</strong> {{.Specialization}}</li>
  <li><strong>Day:</strong> {{.Day}}</li>
  <li><strong>Date:</strong> {{.Date}}</li>
  <li><strong>Time:</strong> {{.Time}}</li>
  <li><strong>Place:</strong> {{.Place}}</li>
</ul>
<p>Please arrive 10 minutes before your scheduled appointment time.</p>
<p>Thank you for using our service!</p>
`))

func BuildAppointmentConfirmationEmailPayload(fromEmail, toEmail string, data AppointmentConfirmationEmail) (*requests.EmailPayload, error) {
	var body bytes.Buffer
	if err := appointmentConfirmationTemplate.Execute(&body, data); err != nil {
		return nil, err
	}

	return &requests.EmailPayload{
		Subject:  constvars.EmailAppointmentConfirmationSubject,
		From:     fromEmail,
		To:       []string{toEmail},
		Cc:       []string{},
		Bcc:      []string{},
		HTMLCode: base64.StdEncoding.EncodeToString(body.Bytes()),
		Encoded:  true,
	}, nil
}
