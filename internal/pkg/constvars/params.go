package constvars

const (
	URLParamDoctorID = "doctor_id"
	URLParamUserID   = "user_id"
)

const (
	FormFieldPicture            = "picture"
	FormFieldSchedule           = "schedule"
	FormFieldExistingPictureUrl = "existingPictureUrl"
)
