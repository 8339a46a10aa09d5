package uploads

import (
	"encoding/json"
	"errors"
)

const (
	MsgBodyRequired = "Request body is required"
	MsgInvalidBody  = "Invalid request body"
)

// ErrInvalidInput is the parent of every client-side validation failure.
var ErrInvalidInput = errors.New("invalid input")

// InputError carries the message returned to the caller with a 400.
type InputError struct {
	Message string
}

func (e *InputError) Error() string { return e.Message }

func (e *InputError) Unwrap() error { return ErrInvalidInput }

func invalid(message string) error {
	return &InputError{Message: message}
}

// DecodeBody unmarshals a JSON request body into v.
func DecodeBody(body []byte, v interface{}) error {
	if len(body) == 0 {
		return invalid(MsgBodyRequired)
	}
	if err := json.Unmarshal(body, v); err != nil {
		return invalid(MsgInvalidBody)
	}
	return nil
}
