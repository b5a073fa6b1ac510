package httputil

import (
	"encoding/json"
	"net/http"
)

// RespondJSON writes a JSON response with the given status code.
// It handles encoding errors safely by marshaling first, preventing
// partial responses if encoding fails after headers are sent.
func RespondJSON(w http.ResponseWriter, status int, data interface{}) {
	payload, err := json.Marshal(data)
	if err != nil {
		// Encoding failed - return 500 instead
		RespondError(w, http.StatusInternalServerError, "failed to encode response")
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	w.Write(payload)
}

// errorResponse is the fixed client-error body shape: {"error": "..."}
type errorResponse struct {
	Error string `json:"error"`
}

// failureResponse is the fixed conversion-failure body shape:
// {"success": false, "error": "..."}
type failureResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
}

// RespondError writes a client-error response as {"error": detail}.
func RespondError(w http.ResponseWriter, status int, detail string) {
	payload, err := json.Marshal(errorResponse{Error: detail})
	if err != nil {
		// Fallback to plain text if JSON encoding fails
		w.Header().Set("Content-Type", "text/plain")
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte("internal server error"))
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	w.Write(payload)
}

// RespondFailure writes a conversion failure as {"success": false, "error": message}.
func RespondFailure(w http.ResponseWriter, status int, message string) {
	payload, err := json.Marshal(failureResponse{Success: false, Error: message})
	if err != nil {
		w.Header().Set("Content-Type", "text/plain")
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte("internal server error"))
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	w.Write(payload)
}
