package dto

import (
	"bytes"
	"encoding/json"

	"github.com/yigit/lms/internal/pkg/apperrors"
)

// RawBody is a request body that has not been decoded yet. Assignment,
// submission and grading bodies travel to the service this way so that a
// malformed field is reported only after existence and ownership pass.
type RawBody []byte

// Decode unmarshals the body into v. An empty body leaves v untouched.
// Syntax and type errors come back as validation errors.
func (b RawBody) Decode(v interface{}) error {
	if len(bytes.TrimSpace(b)) == 0 {
		return nil
	}
	if err := json.Unmarshal(b, v); err != nil {
		return apperrors.NewValidationError(HandleValidationError(err).Message)
	}
	return nil
}

// NewRawBody encodes v as a RawBody.
func NewRawBody(v interface{}) (RawBody, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	return RawBody(data), nil
}
