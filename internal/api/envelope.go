package api

import (
	"net/http"
	"strconv"

	"github.com/danielgtaylor/huma/v2"
	"github.com/goccy/go-json"
)

// EnvelopeVersion is the value of the "v" field in every response.
const EnvelopeVersion = 1

// Envelope is the response shape for every endpoint.
type Envelope struct {
	V       int        `json:"v"`
	Success bool       `json:"success"`
	Data    any        `json:"data,omitempty"`
	Error   *ErrorBody `json:"error,omitempty"`
}

// ErrorBody is the error half of the envelope.
type ErrorBody struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Details any    `json:"details,omitempty"`
}

// EnvelopeTransformer wraps handler output in an Envelope. Errors produced
// through huma.NewError arrive here as *APIError.
func EnvelopeTransformer(_ huma.Context, status string, v any) (any, error) {
	if _, ok := v.(*Envelope); ok {
		return v, nil
	}

	if apiErr, ok := v.(*APIError); ok {
		return &Envelope{
			V:       EnvelopeVersion,
			Success: false,
			Error: &ErrorBody{
				Code:    apiErr.Code,
				Message: apiErr.Message,
				Details: apiErr.Details,
			},
		}, nil
	}

	code, err := strconv.Atoi(status)
	if err != nil {
		code = http.StatusOK
	}

	return &Envelope{
		V:       EnvelopeVersion,
		Success: code < http.StatusBadRequest,
		Data:    v,
	}, nil
}

// writeError writes an error envelope from plain net/http middleware,
// outside huma's pipeline.
func writeError(w http.ResponseWriter, status int, code, message string) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(&Envelope{
		V:       EnvelopeVersion,
		Success: false,
		Error:   &ErrorBody{Code: code, Message: message},
	})
}
