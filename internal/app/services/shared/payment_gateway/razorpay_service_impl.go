package payment_gateway

import (
	"context"
	"doctor-appointment-service/internal/app/config"
	"doctor-appointment-service/internal/app/contracts"
	"doctor-appointment-service/internal/app/models"
	"doctor-appointment-service/internal/pkg/constvars"
	"doctor-appointment-service/internal/pkg/exceptions"
	"errors"
	"fmt"

	"github.com/razorpay/razorpay-go"
	razorpayUtils "github.com/razorpay/razorpay-go/utils"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

// orderClient is the subset of the Razorpay order resource this service calls.
type orderClient interface {
	Create(data map[string]interface{}, extraHeaders map[string]string) (map[string]interface{}, error)
	Fetch(orderID string, queryParams map[string]interface{}, extraHeaders map[string]string) (map[string]interface{}, error)
}

type razorpayService struct {
	Orders        orderClient
	WebhookSecret string
	Limiter       *rate.Limiter
	Log           *zap.Logger
}

func NewRazorpayService(internalConfig *config.InternalConfig, logger *zap.Logger) contracts.PaymentGatewayService {
	client := razorpay.NewClient(internalConfig.PaymentGateway.KeyID, internalConfig.PaymentGateway.KeySecret)
	return &razorpayService{
		Orders:        client.Order,
		WebhookSecret: internalConfig.PaymentGateway.WebhookSecret,
		Limiter:       newLimiter(internalConfig.PaymentGateway.RequestsPerSecond, internalConfig.PaymentGateway.Burst),
		Log:           logger,
	}
}

func newLimiter(requestsPerSecond float64, burst int) *rate.Limiter {
	if requestsPerSecond <= 0 {
		return rate.NewLimiter(rate.Inf, 0)
	}
	if burst < 1 {
		burst = 1
	}
	return rate.NewLimiter(rate.Limit(requestsPerSecond), burst)
}

func (s *razorpayService) CreateOrder(ctx context.Context, amount int64, currency, receipt string) (*models.PaymentOrder, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	s.Log.Info("razorpayService.CreateOrder called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.Int64(constvars.LoggingAmountKey, amount),
		zap.String(constvars.LoggingAppointmentIDKey, receipt),
	)

	err := s.Limiter.Wait(ctx)
	if err != nil {
		return nil, exceptions.ErrPaymentGatewayCreateOrder(err)
	}

	body, err := s.Orders.Create(map[string]interface{}{
		"amount":   amount,
		"currency": currency,
		"receipt":  receipt,
	}, nil)
	if err != nil {
		s.Log.Error("razorpayService.CreateOrder error calling razorpay",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, exceptions.ErrPaymentGatewayCreateOrder(err)
	}

	order, err := orderFromPayload(body)
	if err != nil {
		s.Log.Error("razorpayService.CreateOrder unexpected razorpay payload",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, exceptions.ErrPaymentGatewayCreateOrder(err)
	}

	s.Log.Info("razorpayService.CreateOrder succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingOrderIDKey, order.OrderID),
	)
	return order, nil
}

func (s *razorpayService) FetchOrder(ctx context.Context, orderID string) (*models.PaymentOrder, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	s.Log.Info("razorpayService.FetchOrder called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingOrderIDKey, orderID),
	)

	err := s.Limiter.Wait(ctx)
	if err != nil {
		return nil, exceptions.ErrPaymentGatewayFetchOrder(err, orderID)
	}

	body, err := s.Orders.Fetch(orderID, nil, nil)
	if err != nil {
		s.Log.Error("razorpayService.FetchOrder error calling razorpay",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, exceptions.ErrPaymentGatewayFetchOrder(err, orderID)
	}

	order, err := orderFromPayload(body)
	if err != nil {
		return nil, exceptions.ErrPaymentGatewayFetchOrder(err, orderID)
	}

	s.Log.Info("razorpayService.FetchOrder succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingOrderIDKey, order.OrderID),
	)
	return order, nil
}

func (s *razorpayService) VerifyWebhookSignature(body []byte, signature string) error {
	if s.WebhookSecret == "" || signature == "" {
		return exceptions.ErrWebhookSignatureInvalid(errors.New("missing webhook secret or signature"))
	}
	if !razorpayUtils.VerifyWebhookSignature(string(body), signature, s.WebhookSecret) {
		return exceptions.ErrWebhookSignatureInvalid(nil)
	}
	return nil
}

func orderFromPayload(body map[string]interface{}) (*models.PaymentOrder, error) {
	orderID, _ := body["id"].(string)
	if orderID == "" {
		return nil, errors.New("razorpay order payload has no id")
	}

	order := &models.PaymentOrder{OrderID: orderID}
	order.Currency, _ = body["currency"].(string)
	order.Receipt, _ = body["receipt"].(string)
	order.Status, _ = body["status"].(string)

	switch amount := body["amount"].(type) {
	case float64:
		order.Amount = int64(amount)
	case int64:
		order.Amount = amount
	case int:
		order.Amount = int64(amount)
	case nil:
	default:
		return nil, fmt.Errorf("razorpay order amount has unexpected type %T", amount)
	}
	return order, nil
}
