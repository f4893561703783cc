package responses

type PaymentOrder struct {
	OrderID  string `json:"id"`
	Amount   int64  `json:"amount"`
	Currency string `json:"currency"`
	Receipt  string `json:"receipt"`
	Status   string `json:"status"`
}

type PaymentConfirmation struct {
	AppointmentID string `json:"appointmentId"`
	Payment       bool   `json:"payment"`
}
