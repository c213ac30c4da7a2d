package errors

import "net/http"

// Fixed client-facing messages. Internal error detail is never sent.
const (
	MsgBadRequest         = "bad request"
	MsgNotFound           = "not found"
	MsgMethodNotAllowed   = "method not allowed"
	MsgUnprocessable      = "unprocessable"
	MsgInternalError      = "internal server error"
	MsgServiceUnavailable = "service unavailable"
)

var messages = map[int]string{
	http.StatusBadRequest:          MsgBadRequest,
	http.StatusNotFound:            MsgNotFound,
	http.StatusMethodNotAllowed:    MsgMethodNotAllowed,
	http.StatusUnprocessableEntity: MsgUnprocessable,
	http.StatusInternalServerError: MsgInternalError,
	http.StatusServiceUnavailable:  MsgServiceUnavailable,
}

// Message returns the fixed text for status, falling back to the standard status text.
func Message(status int) string {
	if msg, ok := messages[status]; ok {
		return msg
	}
	return http.StatusText(status)
}
