package middleware

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/project-manager-api/internal/domain"
	"github.com/project-manager-api/internal/dto"
)

type callerKey struct{}

// IdentityResolver сопоставляет внешнюю учётную запись с сотрудником
type IdentityResolver interface {
	ResolveEmployeeID(ctx context.Context, userID string) (uuid.UUID, error)
}

// AuthConfig - настройки проверки JWT
type AuthConfig struct {
	Secret   string
	Resolver IdentityResolver
	Logger   *slog.Logger
}

// Claims - утверждения токена: sub и список ролей
type Claims struct {
	Roles []string `json:"roles"`
	jwt.RegisteredClaims
}

// Authenticate проверяет Bearer-токен (HS256) и кладёт Caller в контекст запроса
func Authenticate(cfg AuthConfig) func(http.Handler) http.Handler {
	parser := jwt.NewParser(jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	keyFunc := func(*jwt.Token) (any, error) {
		return []byte(cfg.Secret), nil
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			raw, ok := bearerToken(r)
			if !ok {
				writeError(w, cfg.Logger, http.StatusUnauthorized, "authorization header required")
				return
			}

			var claims Claims
			if _, err := parser.ParseWithClaims(raw, &claims, keyFunc); err != nil {
				cfg.Logger.Warn("JWT validation failed",
					slog.Any("error", err),
					slog.String("path", r.URL.Path),
				)
				writeError(w, cfg.Logger, http.StatusUnauthorized, "invalid or expired token")
				return
			}
			if claims.Subject == "" {
				writeError(w, cfg.Logger, http.StatusUnauthorized, "token subject is required")
				return
			}

			employeeID, err := cfg.Resolver.ResolveEmployeeID(r.Context(), claims.Subject)
			if err != nil && !errors.Is(err, domain.ErrEmployeeNotFound) {
				cfg.Logger.Error("identity lookup failed",
					slog.String("user_id", claims.Subject),
					slog.Any("error", err),
				)
				writeError(w, cfg.Logger, http.StatusInternalServerError, "internal server error")
				return
			}

			caller := domain.Caller{
				UserID:     claims.Subject,
				EmployeeID: employeeID,
				Roles:      parseRoles(claims.Roles),
			}
			next.ServeHTTP(w, r.WithContext(WithCaller(r.Context(), caller)))
		})
	}
}

func bearerToken(r *http.Request) (string, bool) {
	header := r.Header.Get("Authorization")
	scheme, token, found := strings.Cut(header, " ")
	if !found || !strings.EqualFold(scheme, "Bearer") {
		return "", false
	}
	token = strings.TrimSpace(token)
	return token, token != ""
}

// parseRoles отбрасывает неизвестные метки и повторы
func parseRoles(labels []string) []domain.Role {
	roles := make([]domain.Role, 0, len(labels))
	seen := make(map[domain.Role]bool, len(labels))
	for _, label := range labels {
		role, ok := domain.ParseRole(label)
		if !ok || seen[role] {
			continue
		}
		seen[role] = true
		roles = append(roles, role)
	}
	return roles
}

// RequireRoles пропускает запрос, только если у вызывающего есть одна из ролей
func RequireRoles(logger *slog.Logger, roles ...domain.Role) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			caller, ok := CallerFromContext(r.Context())
			if !ok {
				writeError(w, logger, http.StatusUnauthorized, "authentication required")
				return
			}
			if !caller.HasAnyRole(roles...) {
				writeError(w, logger, http.StatusForbidden, "insufficient role")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// WithCaller возвращает контекст с вызывающим
func WithCaller(ctx context.Context, caller domain.Caller) context.Context {
	return context.WithValue(ctx, callerKey{}, caller)
}

// CallerFromContext извлекает вызывающего, положенного Authenticate
func CallerFromContext(ctx context.Context) (domain.Caller, bool) {
	caller, ok := ctx.Value(callerKey{}).(domain.Caller)
	return caller, ok
}

func writeError(w http.ResponseWriter, logger *slog.Logger, status int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(dto.ErrorResponse{Error: msg}); err != nil {
		logger.Error("failed to encode error response", slog.Any("error", err))
	}
}
