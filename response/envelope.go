// response/envelope.go
package response

import (
	"encoding/json"
	"fmt"
)

// Response is a decoded JSON object returned by the API.
type Response map[string]any

// String returns the value under key as a string. Missing and null values give "".
// Numbers and other scalars are formatted with fmt.
func (r Response) String(key string) string {
	v, ok := r[key]
	if !ok || v == nil {
		return ""
	}
	if s, ok := v.(string); ok {
		return s
	}
	return fmt.Sprint(v)
}

// Envelope is the interpreted shape of a 2xx response. Status is nil when the body carried no
// boolean status field.
type Envelope struct {
	Status  *bool
	Message Message
	Body    Response
}

// Decode interprets a 2xx body. It never fails: an empty body, invalid JSON or a JSON value that is
// not an object decode to an empty successful envelope.
func Decode(body []byte) *Envelope {
	env := &Envelope{Body: Response{}}

	var obj map[string]any
	if len(body) == 0 || json.Unmarshal(body, &obj) != nil || obj == nil {
		return env
	}

	env.Body = obj
	if s, ok := obj["status"].(bool); ok {
		env.Status = &s
	}
	env.Message = decodeMessage(obj["msg"])
	return env
}

// Failed reports whether the API explicitly signalled failure with status false.
func (e *Envelope) Failed() bool {
	return e.Status != nil && !*e.Status
}

// Err maps a failed envelope onto the error taxonomy. It returns nil for a successful envelope.
// Token-related retries are decided by the caller before falling back to this.
func (e *Envelope) Err() error {
	if !e.Failed() {
		return nil
	}

	switch e.Message.Kind {
	case MessageValidation:
		return &ValidationError{InputErrors: e.Message.Fields}
	case MessageGeneral:
		return &RequestError{Message: e.Message.Text}
	default:
		return &ServerError{Message: "Unknown Error"}
	}
}
