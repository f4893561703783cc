package payments

import (
	"context"
	"doctor-appointment-service/internal/app/config"
	"doctor-appointment-service/internal/app/contracts"
	"doctor-appointment-service/internal/app/models"
	"doctor-appointment-service/internal/pkg/constvars"
	"doctor-appointment-service/internal/pkg/dto/requests"
	"doctor-appointment-service/internal/pkg/dto/responses"
	"doctor-appointment-service/internal/pkg/exceptions"
	"math"
	"sync"

	"github.com/tidwall/gjson"
	"go.uber.org/zap"
)

// Razorpay webhook payload paths.
const (
	webhookEventPath   = "event"
	webhookOrderPrefix = "payload.order.entity."
)

type paymentUsecase struct {
	AppointmentUsecase contracts.AppointmentUsecase
	PaymentGateway     contracts.PaymentGatewayService
	InternalConfig     *config.InternalConfig
	Log                *zap.Logger
}

var (
	paymentUsecaseInstance contracts.PaymentUsecase
	oncePaymentUsecase     sync.Once
)

func NewPaymentUsecase(
	appointmentUsecase contracts.AppointmentUsecase,
	paymentGateway contracts.PaymentGatewayService,
	internalConfig *config.InternalConfig,
	logger *zap.Logger,
) contracts.PaymentUsecase {
	oncePaymentUsecase.Do(func() {
		instance := &paymentUsecase{
			AppointmentUsecase: appointmentUsecase,
			PaymentGateway:     paymentGateway,
			InternalConfig:     internalConfig,
			Log:                logger,
		}
		paymentUsecaseInstance = instance
	})
	return paymentUsecaseInstance
}

// CreateOrder opens a gateway order for the appointment fee. The gateway
// takes amounts in currency subunits and echoes the receipt back on settlement.
func (uc *paymentUsecase) CreateOrder(ctx context.Context, sessionData, appointmentID string) (*responses.PaymentOrder, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	uc.Log.Info("paymentUsecase.CreateOrder called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingAppointmentIDKey, appointmentID),
	)

	appointment, err := uc.AppointmentUsecase.FindOwnedByPatient(ctx, sessionData, appointmentID)
	if err != nil {
		return nil, err
	}
	if err := appointment.CanStartPayment(); err != nil {
		return nil, err
	}

	amount := int64(math.Round(appointment.Amount * 100))
	order, err := uc.PaymentGateway.CreateOrder(ctx, amount, uc.InternalConfig.PaymentGateway.Currency, appointment.ID)
	if err != nil {
		uc.Log.Error("paymentUsecase.CreateOrder error creating gateway order",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, err
	}

	err = uc.AppointmentUsecase.AttachPaymentOrder(ctx, appointment.ID, order.OrderID)
	if err != nil {
		uc.Log.Error("paymentUsecase.CreateOrder error storing order id",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, err
	}

	uc.Log.Info("paymentUsecase.CreateOrder succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingOrderIDKey, order.OrderID),
		zap.Int64(constvars.LoggingAmountKey, order.Amount),
	)
	return &responses.PaymentOrder{
		OrderID:  order.OrderID,
		Amount:   order.Amount,
		Currency: order.Currency,
		Receipt:  order.Receipt,
		Status:   order.Status,
	}, nil
}

func (uc *paymentUsecase) VerifyPayment(ctx context.Context, sessionData string, request *requests.VerifyPayment) (*responses.PaymentConfirmation, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	uc.Log.Info("paymentUsecase.VerifyPayment called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingOrderIDKey, request.OrderID),
	)

	order, err := uc.PaymentGateway.FetchOrder(ctx, request.OrderID)
	if err != nil {
		return nil, err
	}

	appointment, err := uc.AppointmentUsecase.FindOwnedByPatient(ctx, sessionData, order.Receipt)
	if err != nil {
		return nil, err
	}

	err = uc.AppointmentUsecase.ConfirmPayment(ctx, appointment.ID, settlementOf(order.OrderID, order.Status))
	if err != nil {
		uc.Log.Error("paymentUsecase.VerifyPayment error confirming payment",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, err
	}

	uc.Log.Info("paymentUsecase.VerifyPayment succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingAppointmentIDKey, appointment.ID),
	)
	return &responses.PaymentConfirmation{AppointmentID: appointment.ID, Payment: true}, nil
}

// HandleWebhook ignores every event other than order.paid. Rejections that a
// redelivery cannot change are logged and acknowledged so the gateway stops
// retrying; only retryable and unexpected failures are returned.
func (uc *paymentUsecase) HandleWebhook(ctx context.Context, body []byte, signature string) error {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)

	err := uc.PaymentGateway.VerifyWebhookSignature(body, signature)
	if err != nil {
		uc.Log.Warn("paymentUsecase.HandleWebhook rejected signature",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return err
	}

	event := gjson.GetBytes(body, webhookEventPath).String()
	if event != constvars.RazorpayEventOrderPaid {
		uc.Log.Info("paymentUsecase.HandleWebhook skipped event",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingEventTypeKey, event),
		)
		return nil
	}

	orderID := gjson.GetBytes(body, webhookOrderPrefix+"id").String()
	receipt := gjson.GetBytes(body, webhookOrderPrefix+"receipt").String()
	status := gjson.GetBytes(body, webhookOrderPrefix+"status").String()
	if receipt == "" {
		uc.Log.Warn("paymentUsecase.HandleWebhook acknowledged order without receipt",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingOrderIDKey, orderID),
		)
		return nil
	}

	err = uc.AppointmentUsecase.ConfirmPayment(ctx, receipt, settlementOf(orderID, status))
	if err != nil && isFinalRejection(err) {
		uc.Log.Warn("paymentUsecase.HandleWebhook acknowledged rejected settlement",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingOrderIDKey, orderID),
			zap.String(constvars.LoggingAppointmentIDKey, receipt),
			zap.String(constvars.LoggingErrorKindKey, string(exceptions.KindOf(err))),
			zap.Error(err),
		)
		return nil
	}
	if err != nil {
		uc.Log.Error("paymentUsecase.HandleWebhook error confirming payment",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingOrderIDKey, orderID),
			zap.Error(err),
		)
		return err
	}

	uc.Log.Info("paymentUsecase.HandleWebhook succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingOrderIDKey, orderID),
		zap.String(constvars.LoggingAppointmentIDKey, receipt),
	)
	return nil
}

// isFinalRejection is true for domain errors such as a cancelled or unknown
// appointment. Errors without a kind count as unexpected and stay retryable.
func isFinalRejection(err error) bool {
	kind := exceptions.KindOf(err)
	return kind != exceptions.KindInternal && !kind.Retryable()
}

func settlementOf(orderID, status string) models.SettlementProof {
	return models.SettlementProof{OrderID: orderID, Settled: status == constvars.RazorpayOrderStatusPaid}
}
