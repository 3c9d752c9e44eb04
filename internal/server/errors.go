package server

import (
	"context"
	stderrors "errors"
	"net/http"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/render"

	"github.com/matzehuels/slopes/pkg/errors"
	"github.com/matzehuels/slopes/pkg/observability"
)

// ErrorResponse is the body of every non-2xx response.
type ErrorResponse struct {
	Code      string `json:"code"`
	Message   string `json:"message"`
	RequestID string `json:"request_id,omitempty"`
}

// statusError carries a status that has no pkg/errors code.
type statusError struct {
	status int
	code   string
	msg    string
}

func (e *statusError) Error() string { return e.msg }

// classify maps err to a status, a code and a client visible message.
// Messages of 5xx errors are replaced so internals do not leak.
func classify(err error) (int, string, string) {
	var se *statusError
	if stderrors.As(err, &se) {
		return se.status, se.code, se.msg
	}
	switch {
	case stderrors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout, "TIMEOUT", "request timed out"
	case stderrors.Is(err, context.Canceled):
		return 499, "CANCELLED", "request cancelled"
	}

	status := errors.HTTPStatus(err)
	code := string(errors.GetCode(err))
	if code == "" {
		code = string(errors.ErrCodeInternal)
	}
	msg := errors.UserMessage(err)
	if status >= http.StatusInternalServerError && status != http.StatusNotImplemented {
		msg = "internal server error"
	}
	return status, code, msg
}

func renderError(w http.ResponseWriter, r *http.Request, logger *log.Logger, err error) {
	status, code, msg := classify(err)
	reqID := middleware.GetReqID(r.Context())

	if status >= http.StatusInternalServerError {
		observability.HTTP().OnError(r.Context(), r.Method, r.URL.Path, err)
		logger.Error("API error", "error", err, "status", status, "path", r.URL.Path, "request_id", reqID)
	} else {
		logger.Debug("API error", "error", err, "status", status, "path", r.URL.Path, "request_id", reqID)
	}

	render.Status(r, status)
	render.JSON(w, r, ErrorResponse{
		Code:      code,
		Message:   msg,
		RequestID: reqID,
	})
}
