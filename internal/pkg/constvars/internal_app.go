package constvars

type ContextKey string

const (
	CONTEXT_REQUEST_ID_KEY           ContextKey = "request_id"
	CONTEXT_IS_CLIENT_REQUEST_ID_KEY ContextKey = "is_client_request_id"
	CONTEXT_PRINCIPAL_KEY            ContextKey = "principal"
)

const (
	REQUEST_ID_PREFIX = "DAS_SVC_"
)

// Account roles issued by the identity provider.
const (
	RoleDoctor = "doctor"
	RoleUser   = "user"
)

const (
	ResourceDoctors      = "doctors"
	ResourceAppointments = "appointments"
	ResourceUsers        = "users"
)

const (
	MongoCollectionDoctors      = "doctors"
	MongoCollectionAppointments = "appointments"
	MongoCollectionUsers        = "users"
)

const (
	AppointmentStatusPending   = "pending"
	AppointmentStatusConfirmed = "confirmed"
	AppointmentStatusCancelled = "cancelled"
)

const (
	AppointmentDateLayout = "02/01/2006"
	ClockLayout           = "15:04"
)

var Weekdays = []string{"Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday", "Sunday"}

var DoctorGenders = []string{"Male", "Female", "Other"}
