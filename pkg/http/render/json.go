// Package render writes JSON responses.
package render

import (
	"encoding/json"
	"net/http"
)

// JSON writes payload as a JSON body with the given status.
func JSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}
