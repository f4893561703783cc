package contracts

import (
	"context"
	"doctor-appointment-service/internal/app/models"
)

type PaymentGatewayService interface {
	// CreateOrder expects amount in currency subunits.
	CreateOrder(ctx context.Context, amount int64, currency, receipt string) (*models.PaymentOrder, error)
	FetchOrder(ctx context.Context, orderID string) (*models.PaymentOrder, error)
	VerifyWebhookSignature(body []byte, signature string) error
}
