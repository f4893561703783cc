package session

import (
	"context"
	"doctor-appointment-service/internal/app/contracts"
	"doctor-appointment-service/internal/app/models"
	"doctor-appointment-service/internal/pkg/constvars"
	"doctor-appointment-service/internal/pkg/exceptions"
	"fmt"
	"time"

	"github.com/goccy/go-json"
)

type sessionService struct {
	RedisRepository contracts.RedisRepository
	Clock           func() time.Time
}

func NewSessionService(redisRepository contracts.RedisRepository) contracts.SessionService {
	return &sessionService{
		RedisRepository: redisRepository,
		Clock:           time.Now,
	}
}

func sessionKey(sessionID string) string {
	return fmt.Sprintf(constvars.RedisSessionKeyFormat, sessionID)
}

func (svc *sessionService) CreateSession(ctx context.Context, session *models.Session) error {
	ttl := session.ExpiresAt.Sub(svc.Clock())
	if ttl <= 0 {
		return exceptions.ErrInvalidSession(fmt.Errorf("session %s already expired", session.SessionID))
	}
	return svc.RedisRepository.Set(ctx, sessionKey(session.SessionID), session, ttl)
}

func (svc *sessionService) ParseSessionData(ctx context.Context, sessionData string) (*models.Session, error) {
	session := new(models.Session)
	err := json.Unmarshal([]byte(sessionData), session)
	if err != nil {
		return nil, exceptions.ErrCannotParseJSON(err)
	}
	if session.SessionID == "" || session.Role == "" {
		return nil, exceptions.ErrInvalidSession(nil)
	}
	if session.IsExpired(svc.Clock()) {
		return nil, exceptions.ErrTokenInvalidOrExpired(nil)
	}
	return session, nil
}

// GetSessionData returns the raw session JSON, or an unauthenticated error when absent.
func (svc *sessionService) GetSessionData(ctx context.Context, sessionID string) (string, error) {
	sessionData, err := svc.RedisRepository.Get(ctx, sessionKey(sessionID))
	if err != nil {
		return "", err
	}
	if sessionData == "" {
		return "", exceptions.ErrInvalidSession(nil)
	}
	return sessionData, nil
}

func (svc *sessionService) DeleteSession(ctx context.Context, sessionID string) error {
	return svc.RedisRepository.Delete(ctx, sessionKey(sessionID))
}
