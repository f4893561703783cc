package requests

// BookAppointment keeps slot validation out of struct tags so that the
// ledger can report an unknown doctor before a malformed date.
type BookAppointment struct {
	DoctorID string `json:"docId" validate:"required"`
	SlotDate string `json:"slotDate" validate:"required"`
	SlotTime string `json:"slotTime" validate:"required"`
}
