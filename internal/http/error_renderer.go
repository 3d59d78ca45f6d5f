package httpx

import (
	"errors"
	"log/slog"
	"net/http"

	apperrors "github.com/batisuivi/batisuivi/internal/errors"
	obserrors "github.com/batisuivi/batisuivi/internal/observability/errors"
	"github.com/batisuivi/batisuivi/internal/observability/metrics"
)

// ErrorRenderer converts service errors into JSON envelopes. Client errors
// carry the AppError message; server errors are logged, counted and replaced
// by a generic message unless Dev is set.
type ErrorRenderer struct {
	Logger  *slog.Logger
	Metrics *metrics.Collector
	Dev     bool
}

// DetermineErrorStatus maps an error to its HTTP status code.
func DetermineErrorStatus(err error) int {
	switch apperrors.GetCode(err) {
	case apperrors.ErrCodeValidation:
		return http.StatusBadRequest
	case apperrors.ErrCodeNotFound:
		return http.StatusNotFound
	case apperrors.ErrCodeConflict, apperrors.ErrCodeForeignKey:
		return http.StatusConflict
	case apperrors.ErrCodeUnauthenticated, apperrors.ErrCodeInvalidCredentials:
		return http.StatusUnauthorized
	case apperrors.ErrCodeForbidden:
		return http.StatusForbidden
	case apperrors.ErrCodeTimeout, apperrors.ErrCodeCanceled:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

// Render writes the envelope for err. op names the failed operation in logs.
func (e *ErrorRenderer) Render(w http.ResponseWriter, r *http.Request, op string, err error) {
	status := DetermineErrorStatus(err)
	code := apperrors.GetCode(err)

	if status < http.StatusInternalServerError {
		WriteError(w, ErrorParams{Code: status, ErrCode: string(code), Message: clientMessage(status, err)})
		return
	}

	class := obserrors.Classify(err)
	e.Metrics.RecordStorageError(class)
	e.logger().ErrorContext(r.Context(), "request failed",
		slog.String("op", op),
		slog.String("class", class),
		slog.Any("error", err),
	)

	msg := msgInternal
	if status == http.StatusServiceUnavailable {
		msg = msgUnavailable
	}
	if e.Dev {
		msg = err.Error()
	}
	if code == "" {
		code = apperrors.ErrCodeInternal
	}
	WriteError(w, ErrorParams{Code: status, ErrCode: string(code), Message: msg})
}

func (e *ErrorRenderer) logger() *slog.Logger {
	if e == nil || e.Logger == nil {
		return slog.Default()
	}
	return e.Logger
}

func clientMessage(status int, err error) string {
	switch status {
	case http.StatusUnauthorized:
		return msgUnauthenticated
	case http.StatusForbidden:
		return msgForbidden
	}
	var appErr *apperrors.AppError
	if errors.As(err, &appErr) && appErr.Message != "" {
		return appErr.Message
	}
	if status == http.StatusNotFound {
		return msgNotFound
	}
	return http.StatusText(status)
}
