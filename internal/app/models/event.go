package models

import "time"

// AppointmentEvent is published for every lifecycle transition.
type AppointmentEvent struct {
	Type          string    `json:"type"`
	AppointmentID string    `json:"appointment_id"`
	PatientID     string    `json:"patient_id"`
	DoctorID      string    `json:"doctor_id"`
	SlotDate      string    `json:"slot_date"`
	SlotTime      string    `json:"slot_time"`
	Amount        float64   `json:"amount"`
	Payment       bool      `json:"payment"`
	OccurredAt    time.Time `json:"occurred_at"`
}

func NewAppointmentEvent(eventType string, appointment *Appointment, now time.Time) AppointmentEvent {
	return AppointmentEvent{
		Type:          eventType,
		AppointmentID: appointment.ID,
		PatientID:     appointment.UserID,
		DoctorID:      appointment.DoctorID,
		SlotDate:      appointment.SlotDate,
		SlotTime:      appointment.SlotTime,
		Amount:        appointment.Amount,
		Payment:       appointment.Payment,
		OccurredAt:    now,
	}
}
