package contracts

import (
	"context"
	"doctor-appointment-service/internal/pkg/dto/requests"
	"doctor-appointment-service/internal/pkg/dto/responses"
)

type AuthUsecase interface {
	RegisterPatient(ctx context.Context, request *requests.RegisterPatient) (*responses.RegisterPatient, error)
	LoginPatient(ctx context.Context, request *requests.Login) (*responses.Login, error)
	LoginDoctor(ctx context.Context, request *requests.Login) (*responses.Login, error)
	LoginAdmin(ctx context.Context, request *requests.Login) (*responses.Login, error)
	Logout(ctx context.Context, sessionData string) error
}
