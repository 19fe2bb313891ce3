package pkg

import (
	"encoding/json"
	"net/http"

	log "github.com/sirupsen/logrus"
)

var ContentType = struct {
	JSON string
	Text string
}{
	JSON: "application/json",
	Text: "text/plain; charset=utf-8",
}

// ErrorResponse is the body of every non-2xx API response.
type ErrorResponse struct {
	Error        string `json:"error"`
	ReceivedRole string `json:"receivedRole,omitempty"`
}

func WriteResponseBytes(w http.ResponseWriter, contentType string, message []byte, statusCode int) {
	if contentType != "" {
		w.Header().Set("Content-Type", contentType)
	}
	w.WriteHeader(statusCode)

	if _, err := w.Write(message); err != nil {
		log.Errorf("failed to write response [%s]: %s", message, err)
	}
}

func WriteTextResponseOK(w http.ResponseWriter, message string) {
	WriteResponseBytes(w, ContentType.Text, []byte(message), http.StatusOK)
}

// WriteJSON marshals v and writes it with the given status code.
// A marshalling failure results in a 500 with an error body instead.
func WriteJSON(w http.ResponseWriter, statusCode int, v any) {
	respBytes, err := json.Marshal(v)
	if err != nil {
		log.Errorf("marshal response: %s", err)
		WriteError(w, http.StatusInternalServerError, "server_error")
		return
	}
	WriteResponseBytes(w, ContentType.JSON, respBytes, statusCode)
}

func WriteError(w http.ResponseWriter, statusCode int, code string) {
	respBytes, err := json.Marshal(ErrorResponse{Error: code})
	if err != nil {
		// cannot really happen with a plain string field
		http.Error(w, code, statusCode)
		return
	}
	WriteResponseBytes(w, ContentType.JSON, respBytes, statusCode)
}

func WriteRoleError(w http.ResponseWriter, code, receivedRole string) {
	respBytes, _ := json.Marshal(ErrorResponse{Error: code, ReceivedRole: receivedRole})
	WriteResponseBytes(w, ContentType.JSON, respBytes, http.StatusForbidden)
}
