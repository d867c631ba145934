package httpapi

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/dmitrijs2005/gophauth/internal/common"
	"github.com/dmitrijs2005/gophauth/internal/logging"
	"github.com/labstack/echo/v4"
)

// APIError is an error already resolved to a status and an error code.
// The HTTP error handler writes it as {"errorCode": ..., "error": ...}.
type APIError struct {
	Status  int
	Code    string
	Message string
	Err     error
}

func (e *APIError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *APIError) Unwrap() error { return e.Err }

type errorResponse struct {
	ErrorCode string `json:"errorCode"`
	Error     string `json:"error"`
}

// codeFor pairs a sentinel with the code and status a route reports for it.
type codeFor struct {
	err    error
	status int
	code   string
}

// routeErrors is the ordered error table of one route.
type routeErrors []codeFor

// resolve returns the APIError for err, or err unchanged when the table has
// no entry for it. The message is taken from the matched sentinel, so
// wrapped infrastructure detail never reaches the client.
func (r routeErrors) resolve(err error) error {
	for _, e := range r {
		if errors.Is(err, e.err) {
			return &APIError{Status: e.status, Code: e.code, Message: e.err.Error(), Err: err}
		}
	}
	return err
}

var (
	loginErrors = routeErrors{
		{common.ErrorValidation, http.StatusBadRequest, "L01"},
		{common.ErrEmailNotFound, http.StatusUnauthorized, "L02"},
		{common.ErrInvalidPassword, http.StatusUnauthorized, "L03"},
	}

	signupErrors = routeErrors{
		{common.ErrorValidation, http.StatusBadRequest, "S01"},
		{common.ErrEmailTaken, http.StatusUnprocessableEntity, "S02"},
		{common.ErrPasswordMismatch, http.StatusUnprocessableEntity, "S03"},
		{common.ErrPasswordTooShort, http.StatusUnprocessableEntity, "S04"},
		{common.ErrorInternal, http.StatusUnprocessableEntity, "S05"},
	}

	refreshErrors = routeErrors{
		{common.ErrorValidation, http.StatusBadRequest, "L01"},
		{common.ErrRefreshTokenNotFound, http.StatusBadRequest, "R01"},
		{common.ErrUserNotFound, http.StatusBadRequest, "R01"},
		{common.ErrRefreshTokenMismatch, http.StatusBadRequest, "R02"},
		{common.ErrRefreshTokenExpired, http.StatusBadRequest, "R03"},
	}

	infoErrors = routeErrors{
		{common.ErrUserNotFound, http.StatusUnprocessableEntity, "I01"},
	}
)

// newHTTPErrorHandler writes every error returned by a handler or middleware
// as an errorResponse. Anything that is neither an APIError nor an
// echo.HTTPError is logged and reported as E500.
func newHTTPErrorHandler(logger logging.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		var body errorResponse
		var status int

		var apiErr *APIError
		var httpErr *echo.HTTPError
		switch {
		case errors.As(err, &apiErr):
			status = apiErr.Status
			body = errorResponse{ErrorCode: apiErr.Code, Error: apiErr.Message}
		case errors.As(err, &httpErr):
			status = httpErr.Code
			body = errorResponse{ErrorCode: fmt.Sprintf("E%d", httpErr.Code), Error: http.StatusText(httpErr.Code)}
		default:
			logger.Error(c.Request().Context(), "unhandled error",
				"error", err,
				"path", c.Request().URL.Path,
				"method", c.Request().Method,
			)
			status = http.StatusInternalServerError
			body = errorResponse{ErrorCode: "E500", Error: common.ErrorInternal.Error()}
		}

		if c.Request().Method == http.MethodHead {
			err = c.NoContent(status)
		} else {
			err = c.JSON(status, body)
		}
		if err != nil {
			logger.Warn(c.Request().Context(), "write error response", "error", err)
		}
	}
}
