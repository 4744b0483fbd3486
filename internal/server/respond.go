package server

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	onionerrors "github.com/matzehuels/onion/pkg/errors"
)

// errorBody is the JSON shape of every error response.
type errorBody struct {
	Code    onionerrors.Code `json:"code"`
	Message string           `json:"message"`
}

// statusFor maps an error code to an HTTP status.
func statusFor(code onionerrors.Code) int {
	switch code {
	case onionerrors.ErrCodeInvalidInput, onionerrors.ErrCodeInvalidFormat:
		return http.StatusBadRequest
	case onionerrors.ErrCodeNotFound, onionerrors.ErrCodeFileNotFound:
		return http.StatusNotFound
	case onionerrors.ErrCodeDegenerateGeometry:
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}

func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	code := onionerrors.GetCode(err)
	var maxErr *http.MaxBytesError
	if errors.As(err, &maxErr) {
		code = onionerrors.ErrCodeInvalidInput
	}
	if code == "" {
		code = onionerrors.ErrCodeInternal
	}
	status := statusFor(code)
	msg := onionerrors.UserMessage(err)
	if status == http.StatusInternalServerError {
		s.logger.Error("request failed", "method", r.Method, "path", r.URL.Path, "err", err)
		if code == onionerrors.ErrCodeInternal {
			msg = "internal error"
		}
	}
	writeJSON(w, status, errorBody{Code: code, Message: msg})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// decode reads a JSON body into v. An empty body leaves v untouched when
// optional is set.
func decode(w http.ResponseWriter, r *http.Request, v any, optional bool) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, MaxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		if optional && errors.Is(err, io.EOF) {
			return nil
		}
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			return onionerrors.Wrap(onionerrors.ErrCodeInvalidInput, err, "request body exceeds %d bytes", MaxBodyBytes)
		}
		return onionerrors.Wrap(onionerrors.ErrCodeInvalidFormat, err, "decode request body")
	}
	return nil
}
