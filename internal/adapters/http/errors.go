package httpadapter

import (
    "encoding/json"
    "errors"
    "net/http"

    api "pincheck/internal/api"
    "pincheck/internal/domain"
)

func errorBody(code, msg string) api.ErrorResponse {
    return api.ErrorResponse{Success: false, Error: code, Message: msg}
}

func writeError(w http.ResponseWriter, status int, code, msg string) {
    w.Header().Set("Content-Type", "application/json")
    w.WriteHeader(status)
    _ = json.NewEncoder(w).Encode(errorBody(code, msg))
}

// requestError handles bodies and parameters the generated layer could not bind.
func (s *Server) requestError(w http.ResponseWriter, r *http.Request, err error) {
    var tooLarge *http.MaxBytesError
    if errors.As(err, &tooLarge) {
        writeError(w, http.StatusRequestEntityTooLarge, "payload_too_large", "request body exceeds the upload limit")
        return
    }
    writeError(w, http.StatusBadRequest, "invalid_input", err.Error())
}

// responseError handles errors returned by handlers. Domain errors that reach
// here without a declared response still map to their status; anything else
// is logged and reported as a 500 without detail.
func (s *Server) responseError(w http.ResponseWriter, r *http.Request, err error) {
    status, code := statusFor(err)
    if status == http.StatusInternalServerError {
        s.log.WithError(err).WithField("path", r.URL.Path).Error("request failed")
        writeError(w, status, code, "internal error")
        return
    }
    writeError(w, status, code, err.Error())
}

func statusFor(err error) (int, string) {
    switch {
    case errors.Is(err, domain.ErrInvalidInput):
        return http.StatusBadRequest, "invalid_input"
    case errors.Is(err, domain.ErrAlreadyConsumed):
        return http.StatusConflict, "already_consumed"
    case errors.Is(err, domain.ErrTokenExpired):
        return http.StatusGone, "token_expired"
    case errors.Is(err, domain.ErrNotFound):
        return http.StatusNotFound, "not_found"
    case errors.Is(err, domain.ErrCapacityExhausted):
        return http.StatusServiceUnavailable, "capacity_exhausted"
    default:
        return http.StatusInternalServerError, "internal"
    }
}
