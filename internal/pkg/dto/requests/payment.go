package requests

type VerifyPayment struct {
	OrderID string `json:"razorpay_order_id" validate:"required"`
}
