// Package request decodes JSON request bodies and classifies decode failures.
package request

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
)

var (
	// ErrMalformedBody means the body is empty or not valid JSON.
	ErrMalformedBody = errors.New("malformed request body")
	// ErrInvalidField means the JSON is well formed but a field has the wrong type.
	ErrInvalidField = errors.New("invalid request field")
)

const maxBodyBytes = 1 << 20

// DecodeJSON decodes the request body into v. The returned error wraps
// ErrMalformedBody or ErrInvalidField.
func DecodeJSON(w http.ResponseWriter, r *http.Request, v interface{}) error {
	body := http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(body).Decode(v); err != nil {
		var (
			typeErr  *json.UnmarshalTypeError
			fieldErr *FieldError
		)
		if errors.As(err, &typeErr) || errors.As(err, &fieldErr) {
			return fmt.Errorf("%w: %v", ErrInvalidField, err)
		}
		return fmt.Errorf("%w: %v", ErrMalformedBody, err)
	}
	return nil
}

// FieldError reports a value that could not be converted.
type FieldError struct {
	Value string
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("cannot use %s as an integer", e.Value)
}

// Int accepts a JSON number or a string holding an integer, e.g. 3 or "3".
// Values outside the 32-bit signed range are rejected.
type Int int

func (i *Int) UnmarshalJSON(data []byte) error {
	raw := strings.TrimSpace(string(data))
	if raw == "null" {
		return nil
	}
	if unquoted, err := strconv.Unquote(raw); err == nil {
		raw = strings.TrimSpace(unquoted)
	}
	n, err := strconv.ParseInt(raw, 10, 32)
	if err != nil {
		return &FieldError{Value: string(data)}
	}
	*i = Int(n)
	return nil
}
