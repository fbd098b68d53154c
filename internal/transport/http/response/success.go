package response

import (
	"encoding/json"
	"net/http"

	"github.com/rs/zerolog/log"
)

// Envelope wraps every success body as {"data": ...}.
type Envelope struct {
	Data any `json:"data"`
}

// encodeFailedBody is sent when a payload cannot be marshalled.
const encodeFailedBody = `{"error":{"code":"internal_error","message":"internal error"}}`

// WriteJSON marshals v before touching the response, so an encoding failure
// still yields a clean 500 instead of a half-written success.
// Content-Type defaults to application/json; charset=utf-8.
func WriteJSON(w http.ResponseWriter, status int, v any) {
	b, err := json.Marshal(v)
	if err != nil {
		log.Error().Err(err).Msg("response encode failed")
		status = http.StatusInternalServerError
		b = []byte(encodeFailedBody)
	}
	if w.Header().Get("Content-Type") == "" {
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
	}
	w.WriteHeader(status)
	_, _ = w.Write(append(b, '\n'))
}

// OK writes 200 {"data": data}.
func OK(w http.ResponseWriter, data any) {
	WriteJSON(w, http.StatusOK, Envelope{Data: data})
}
