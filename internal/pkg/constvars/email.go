package constvars

const (
	EmailAppointmentConfirmationSubject = "Appointment Confirmation"
)

const (
	EmailSendHTMLSubjectFormat       = "From: %s\r\nTo: %s\r\nSubject: %s\r\nMIME-version: 1.0;\r\nContent-Type: text/html; charset=\"UTF-8\";\r\n\r\n%s\r\n"
	EmailSendBasicEmailSubjectFormat = "From: %s\r\nTo: %s\r\nSubject: %s\r\n\r\n%s\r\n"
)

const (
	RegexEmail = `^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`
	RegexClock = `^([01]\d|2[0-3]):[0-5]\d$`
)

const (
	MailerTransportRabbitMQ = "rabbitmq"
	MailerTransportSMTP     = "smtp"
)
