package constvars

const (
	ResponseUnknown = "unknown"
	ResponseSuccess = "success"

	// Auth
	RegisterSuccess = "account registered successfully"
	LoginSuccess    = "successfully login"
	LogoutSuccess   = "successfully logout"

	// Profiles
	ProfileGetSuccess    = "get profile successfully"
	ProfileUpdateSuccess = "profile updated successfully"

	// Doctors
	DoctorListSuccess         = "get doctors successfully"
	DoctorGetSuccess          = "get doctor successfully"
	DoctorCreatedSuccess      = "doctor added successfully"
	DoctorAvailabilitySuccess = "availability changed successfully"
	AvailableSlotsGetSuccess  = "get available slots successfully"

	// Appointments
	AppointmentBookedSuccess    = "appointment booked successfully"
	AppointmentListSuccess      = "get appointments successfully"
	AppointmentCancelledSuccess = "appointment cancelled successfully"
	AppointmentCompletedSuccess = "appointment completed successfully"

	// Payments
	PaymentOrderCreatedSuccess = "payment order created successfully"
	PaymentConfirmedSuccess    = "payment successful"
	PaymentWebhookAccepted     = "webhook processed"
)
