package httpapi

import (
	"encoding/json"
	"net/http"
)

// MessageBody is the {"message": ...} response used by every mutating route.
type MessageBody struct {
	Message string `json:"message"`
}

// FailureBody adds the underlying error text to a message.
type FailureBody struct {
	Message string `json:"message"`
	Error   string `json:"error"`
}

func WriteJSON(w http.ResponseWriter, status int, payload any) error {
	if w == nil {
		return nil
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if payload == nil {
		return nil
	}
	return json.NewEncoder(w).Encode(payload)
}

func WriteMessage(w http.ResponseWriter, status int, message string) error {
	return WriteJSON(w, status, &MessageBody{Message: message})
}

func WriteFailure(w http.ResponseWriter, status int, message string, err error) error {
	body := &FailureBody{Message: message}
	if err != nil {
		body.Error = err.Error()
	}
	return WriteJSON(w, status, body)
}
