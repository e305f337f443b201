package api

import (
	"encoding/json"
	stderrors "errors"
	"net/http"
	"strings"

	"github.com/matzehuels/venn/pkg/errors"
)

type errorBody struct {
	Code      string `json:"code"`
	Message   string `json:"message"`
	RequestID string `json:"request_id,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// writeError writes err with the status its code maps to.
func writeError(w http.ResponseWriter, r *http.Request, err error) {
	code := errors.GetCode(err)
	var tooLarge *http.MaxBytesError
	if stderrors.As(err, &tooLarge) {
		code = errors.ErrCodeInvalidInput
	}
	status := statusFor(code)
	if tooLarge != nil {
		status = http.StatusRequestEntityTooLarge
	}
	if code == "" {
		code = errors.ErrCodeInternal
	}
	msg := errors.UserMessage(err)
	if status >= 500 {
		msg = "internal error"
		if code == errors.ErrCodeUnsupported {
			msg = errors.UserMessage(err)
		}
	}
	writeJSON(w, status, errorBody{Code: string(code), Message: msg, RequestID: RequestID(r.Context())})
}

func statusFor(code errors.Code) int {
	switch {
	case strings.HasPrefix(string(code), "INVALID_"):
		return http.StatusBadRequest
	case code == errors.ErrCodeNotFound:
		return http.StatusNotFound
	case code == errors.ErrCodeUnsupported:
		return http.StatusNotImplemented
	default:
		return http.StatusInternalServerError
	}
}
