package responses

import "time"

type Login struct {
	Token     string    `json:"token"`
	Role      string    `json:"role"`
	ExpiresAt time.Time `json:"expires_at"`
}

type RegisterPatient struct {
	UserID string `json:"user_id"`
	Login
}
