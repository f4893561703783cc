package responses

import "time"

type AppointmentPatient struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	Image string `json:"image,omitempty"`
}

type AppointmentDoctor struct {
	Name       string  `json:"name"`
	Speciality string  `json:"speciality"`
	Image      string  `json:"image,omitempty"`
	Address    Address `json:"address"`
}

type Appointment struct {
	ID          string             `json:"_id"`
	UserID      string             `json:"userId"`
	DoctorID    string             `json:"docId"`
	SlotDate    string             `json:"slotDate"`
	SlotTime    string             `json:"slotTime"`
	Amount      float64            `json:"amount"`
	State       string             `json:"state"`
	Cancelled   bool               `json:"cancelled"`
	IsCompleted bool               `json:"isCompleted"`
	Payment     bool               `json:"payment"`
	UserData    AppointmentPatient `json:"userData"`
	DocData     AppointmentDoctor  `json:"docData"`
	CreatedAt   time.Time          `json:"createdAt"`
}

type BookAppointment struct {
	AppointmentID string `json:"appointmentId"`
}
