package httpapi

import (
	"net/http"
	"strings"
	"time"

	"github.com/dmitrijs2005/gophauth/internal/common"
	"github.com/dmitrijs2005/gophauth/internal/logging"
	"github.com/labstack/echo/v4"
)

const userIDKey = "userID"

// TokenVerifier turns a bearer access token into a user id.
// *auth.Signer implements it.
type TokenVerifier interface {
	GetUserIDFromToken(token string) (string, error)
}

// AuthMiddleware rejects requests without a valid bearer access token.
type AuthMiddleware struct {
	verifier TokenVerifier
}

func NewAuthMiddleware(verifier TokenVerifier) *AuthMiddleware {
	return &AuthMiddleware{verifier: verifier}
}

// Authenticate stores the token subject in the context for UserIDFrom.
func (m *AuthMiddleware) Authenticate(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		header := c.Request().Header.Get(common.AuthorizationHeaderName)
		token, ok := strings.CutPrefix(header, common.BearerPrefix)
		if !ok || token == "" {
			return unauthorized(common.ErrorUnauthorized)
		}

		userID, err := m.verifier.GetUserIDFromToken(token)
		if err != nil {
			return unauthorized(err)
		}

		c.Set(userIDKey, userID)
		return next(c)
	}
}

func unauthorized(err error) *APIError {
	return &APIError{
		Status:  http.StatusUnauthorized,
		Code:    "A01",
		Message: "missing or invalid access token",
		Err:     err,
	}
}

// UserIDFrom returns the user id set by Authenticate, or "".
func UserIDFrom(c echo.Context) string {
	id, _ := c.Get(userIDKey).(string)
	return id
}

// LoggerMiddleware writes one record per request through logging.Logger.
// Request bodies are never logged.
type LoggerMiddleware struct {
	logger logging.Logger
}

func NewLoggerMiddleware(logger logging.Logger) *LoggerMiddleware {
	return &LoggerMiddleware{logger: logger}
}

func (m *LoggerMiddleware) Handle(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		start := time.Now()

		err := next(c)
		if err != nil {
			// commit the error response now so the status below is final
			c.Error(err)
		}

		req := c.Request()
		res := c.Response()
		latency := time.Since(start)

		args := []any{
			"method", req.Method,
			"uri", req.URL.Path,
			"status", res.Status,
			"latency", latency,
			"remote_ip", c.RealIP(),
			"request_id", res.Header().Get(echo.HeaderXRequestID),
		}
		if err != nil {
			args = append(args, "error", err.Error())
		}

		ctx := req.Context()
		switch {
		case res.Status >= http.StatusInternalServerError:
			m.logger.Error(ctx, "http request", args...)
		case res.Status >= http.StatusBadRequest:
			m.logger.Warn(ctx, "http request", args...)
		default:
			m.logger.Info(ctx, "http request", args...)
		}

		return nil
	}
}
