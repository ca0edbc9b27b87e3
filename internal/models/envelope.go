package models

import (
	"bytes"
	"encoding/json"
	"errors"
)

// CodeSuccess is the only envelope code treated as success.
const CodeSuccess = 200

// ErrEmptyData is returned when a success envelope carries no payload to decode.
var ErrEmptyData = errors.New("envelope has no data")

// Envelope is the response shape shared by every action of the student endpoint.
type Envelope struct {
	Code    int             `json:"code"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data,omitempty"`
}

// Success reports whether the envelope code signals success.
func (e *Envelope) Success() bool {
	return e != nil && e.Code == CodeSuccess
}

// Decode unmarshals the payload into dest.
func (e *Envelope) Decode(dest interface{}) error {
	if e == nil || len(bytes.TrimSpace(e.Data)) == 0 || bytes.Equal(bytes.TrimSpace(e.Data), []byte("null")) {
		return ErrEmptyData
	}
	return json.Unmarshal(e.Data, dest)
}
