package models

type User struct {
	ID        string `json:"_id" bson:"_id,omitempty"`
	Name      string `json:"name" bson:"name"`
	Email     string `json:"email" bson:"email"`
	Role      string `json:"role" bson:"role"`
	TimeModel `bson:",inline"`
}

// Principal is the verified identity attached to an authenticated request.
type Principal struct {
	ID   string `json:"id"`
	Role string `json:"role"`
}
