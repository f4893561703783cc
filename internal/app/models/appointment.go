package models

import (
	"doctor-appointment-service/internal/pkg/dto/responses"
	"doctor-appointment-service/internal/pkg/exceptions"
)

type AppointmentState string

const (
	AppointmentStateActive    AppointmentState = "active"
	AppointmentStateCancelled AppointmentState = "cancelled"
	AppointmentStateCompleted AppointmentState = "completed"
)

type AppointmentUserData struct {
	Name  string `bson:"name"`
	Email string `bson:"email"`
	Image string `bson:"image"`
}

type AppointmentDoctorData struct {
	Name       string  `bson:"name"`
	Speciality string  `bson:"speciality"`
	Image      string  `bson:"image"`
	Address    Address `bson:"address"`
}

// Appointment keeps the legacy cancelled/isCompleted flags in sync with State
// so documents stay readable by older consumers. Mutate it only through
// Cancel, Complete, Reactivate and SettlePayment.
type Appointment struct {
	ID             string                `bson:"_id,omitempty"`
	UserID         string                `bson:"userId"`
	DoctorID       string                `bson:"docId"`
	SlotDate       string                `bson:"slotDate"`
	SlotTime       string                `bson:"slotTime"`
	Amount         float64               `bson:"amount"`
	State          AppointmentState      `bson:"state"`
	Cancelled      bool                  `bson:"cancelled"`
	IsCompleted    bool                  `bson:"isCompleted"`
	Payment        bool                  `bson:"payment"`
	PaymentOrderID string                `bson:"paymentOrderId,omitempty"`
	UserData       AppointmentUserData   `bson:"userData"`
	DocData        AppointmentDoctorData `bson:"docData"`
	TimeModel      `bson:",inline"`
}

// NewAppointment builds an active, unpaid appointment for a reserved slot.
func NewAppointment(user *User, doctor *Doctor, slot SlotKey) *Appointment {
	appointment := &Appointment{
		UserID:   user.ID,
		DoctorID: doctor.ID,
		SlotDate: slot.DateKey,
		SlotTime: slot.Time,
		Amount:   doctor.Fees,
		UserData: AppointmentUserData{
			Name:  user.Name,
			Email: user.Email,
			Image: user.Image,
		},
		DocData: AppointmentDoctorData{
			Name:       doctor.Name,
			Speciality: doctor.Speciality,
			Image:      doctor.Image,
			Address:    doctor.Address,
		},
	}
	appointment.setState(AppointmentStateActive)
	return appointment
}

// CurrentState falls back to the legacy flags for documents written before
// the state field existed.
func (a *Appointment) CurrentState() AppointmentState {
	if a.State != "" {
		return a.State
	}
	switch {
	case a.Cancelled:
		return AppointmentStateCancelled
	case a.IsCompleted:
		return AppointmentStateCompleted
	default:
		return AppointmentStateActive
	}
}

func (a *Appointment) SlotKey() SlotKey {
	return SlotKey{DateKey: a.SlotDate, Time: a.SlotTime}
}

// HoldsSlot reports whether the appointment should be present in the doctor's registry.
func (a *Appointment) HoldsSlot() bool {
	return a.CurrentState() != AppointmentStateCancelled
}

func (a *Appointment) Cancel() error {
	switch a.CurrentState() {
	case AppointmentStateCancelled:
		return exceptions.ErrAppointmentAlreadyCancelled(nil, a.ID)
	case AppointmentStateCompleted:
		return exceptions.ErrCancelCompletedAppointment(nil, a.ID)
	}
	a.setState(AppointmentStateCancelled)
	return nil
}

// Reactivate undoes a cancellation whose slot release could not be committed.
func (a *Appointment) Reactivate() {
	a.setState(AppointmentStateActive)
}

// Complete reports changed=false when the appointment was already completed.
func (a *Appointment) Complete() (changed bool, err error) {
	switch a.CurrentState() {
	case AppointmentStateCompleted:
		return false, nil
	case AppointmentStateCancelled:
		return false, exceptions.ErrCompleteCancelledAppointment(nil, a.ID)
	}
	a.setState(AppointmentStateCompleted)
	return true, nil
}

// SettlePayment reports changed=false when payment was already recorded.
func (a *Appointment) SettlePayment() (changed bool, err error) {
	if a.CurrentState() == AppointmentStateCancelled {
		return false, exceptions.ErrPayCancelledAppointment(nil, a.ID)
	}
	if a.Payment {
		return false, nil
	}
	a.Payment = true
	return true, nil
}

// CanStartPayment guards payment order creation.
func (a *Appointment) CanStartPayment() error {
	if a.CurrentState() == AppointmentStateCancelled {
		return exceptions.ErrPayCancelledAppointment(nil, a.ID)
	}
	if a.Payment {
		return exceptions.ErrAppointmentAlreadyPaid(nil, a.ID)
	}
	return nil
}

func (a *Appointment) setState(state AppointmentState) {
	a.State = state
	a.Cancelled = state == AppointmentStateCancelled
	a.IsCompleted = state == AppointmentStateCompleted
}

func (a *Appointment) ToResponse() responses.Appointment {
	return responses.Appointment{
		ID:          a.ID,
		UserID:      a.UserID,
		DoctorID:    a.DoctorID,
		SlotDate:    a.SlotDate,
		SlotTime:    a.SlotTime,
		Amount:      a.Amount,
		State:       string(a.CurrentState()),
		Cancelled:   a.CurrentState() == AppointmentStateCancelled,
		IsCompleted: a.CurrentState() == AppointmentStateCompleted,
		Payment:     a.Payment,
		UserData: responses.AppointmentPatient{
			Name:  a.UserData.Name,
			Email: a.UserData.Email,
			Image: a.UserData.Image,
		},
		DocData: responses.AppointmentDoctor{
			Name:       a.DocData.Name,
			Speciality: a.DocData.Speciality,
			Image:      a.DocData.Image,
			Address:    responses.Address{Line1: a.DocData.Address.Line1, Line2: a.DocData.Address.Line2},
		},
		CreatedAt: a.CreatedAt,
	}
}
