package requests

type Address struct {
	Line1 string `json:"line1" validate:"max=200"`
	Line2 string `json:"line2" validate:"max=200"`
}

// CreateDoctor is filled from the multipart form of the admin onboarding endpoint.
type CreateDoctor struct {
	Name       string  `validate:"required,min=2,max=100"`
	Email      string  `validate:"required,email"`
	Password   string  `validate:"required,password"`
	Speciality string  `validate:"required"`
	Degree     string  `validate:"required"`
	Experience string  `validate:"required"`
	About      string  `validate:"required"`
	Fees       float64 `validate:"required,gt=0,lte=1000000"`
	Address    Address `validate:"required"`
}

type UpdateDoctorProfile struct {
	Fees      *float64 `json:"fees" validate:"omitempty,gt=0,lte=1000000"`
	About     *string  `json:"about" validate:"omitempty,max=2000"`
	Address   *Address `json:"address" validate:"omitempty"`
	Available *bool    `json:"available"`
}

// ChangeAvailability toggles the flag when Available is omitted.
type ChangeAvailability struct {
	Available *bool `json:"available"`
}
