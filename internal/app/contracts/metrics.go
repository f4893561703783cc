package contracts

import "time"

type BookingMetrics interface {
	ObserveBooking(outcome string)
	ObserveTransition(eventType string)
	ObserveReconciliation(released, reserved int)
}

type HTTPMetrics interface {
	RecordHTTPRequest(method, route string, statusCode int, duration time.Duration)
}
