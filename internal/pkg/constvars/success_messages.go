package constvars

const (
	ResponseUnknown = "unknown"

	DoctorCreatedSuccessfully     = "doctor created successfully"
	DoctorUpdatedSuccessfully     = "doctor updated successfully"
	DoctorDeletedSuccessfully     = "doctor deleted"
	GetDoctorSuccessfully         = "get doctor successfully"
	GetDoctorsSuccessfully        = "get doctors successfully"
	AppointmentBookedSuccessfully = "appointment booked successfully"
	GetAppointmentsSuccessfully   = "get appointments successfully"
)
