package responses

type Address struct {
	Line1 string `json:"line1"`
	Line2 string `json:"line2"`
}

// Doctor is the public profile; it never carries credentials or the booked registry.
type Doctor struct {
	ID         string  `json:"_id"`
	Name       string  `json:"name"`
	Image      string  `json:"image"`
	Speciality string  `json:"speciality"`
	Degree     string  `json:"degree"`
	Experience string  `json:"experience"`
	About      string  `json:"about"`
	Fees       float64 `json:"fees"`
	Available  bool    `json:"available"`
	Address    Address `json:"address"`
}

type DoctorProfile struct {
	Doctor
	Email string `json:"email"`
}

type CreateDoctor struct {
	DoctorID string `json:"docId"`
}
