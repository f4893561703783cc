package middlewares

import (
	"doctor-appointment-service/internal/pkg/constvars"
	"doctor-appointment-service/internal/pkg/exceptions"
	"doctor-appointment-service/internal/pkg/utils"
	"fmt"
	"net/http"
	"strings"

	"go.uber.org/zap"
)

// Authorize enforces the casbin policy on (role, method, path). The path is
// matched without the endpoint and version prefix so policies stay stable
// across API versions.
func (m *Middlewares) Authorize(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		role := constvars.RoleAnonymous
		if sessionData, ok := r.Context().Value(constvars.CONTEXT_SESSION_DATA_KEY).(string); ok {
			session, err := m.SessionService.ParseSessionData(r.Context(), sessionData)
			if err != nil {
				utils.BuildErrorResponse(m.Log, w, err)
				return
			}
			role = session.Role
		}

		path := m.resourcePath(r.URL.Path)
		allowed, err := m.Enforcer.Enforce(role, r.Method, path)
		if err != nil {
			utils.BuildErrorResponse(m.Log, w, exceptions.ErrRBACEnforce(err))
			return
		}

		if !allowed {
			requestID, _ := r.Context().Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
			m.Log.Info("Authorize denied request",
				zap.String(constvars.LoggingRequestIDKey, requestID),
				zap.String(constvars.LoggingRoleKey, role),
				zap.String(constvars.LoggingMethodKey, r.Method),
				zap.String(constvars.LoggingEndpointKey, path),
			)
			if role == constvars.RoleAnonymous {
				utils.BuildErrorResponse(m.Log, w, exceptions.ErrTokenMissing(nil))
				return
			}
			utils.BuildErrorResponse(m.Log, w, exceptions.ErrRoleNotPermitted(nil, role, r.Method, path))
			return
		}

		next.ServeHTTP(w, r)
	})
}

func (m *Middlewares) resourcePath(path string) string {
	prefix := fmt.Sprintf("/%s/%s", m.InternalConfig.App.EndpointPrefix, m.InternalConfig.App.Version)
	trimmed := strings.TrimSuffix(strings.TrimPrefix(path, prefix), "/")
	if trimmed == "" {
		return "/"
	}
	return trimmed
}
