package responses

type UserProfile struct {
	ID      string  `json:"_id"`
	Name    string  `json:"name"`
	Email   string  `json:"email"`
	Image   string  `json:"image,omitempty"`
	Phone   string  `json:"phone"`
	Address Address `json:"address"`
	Gender  string  `json:"gender"`
	Dob     string  `json:"dob"`
}
