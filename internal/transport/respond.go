package transport

import (
	"encoding/json"
	"net/http"

	"github.com/mergington/activities/internal/domain/journal"
)

// MessageResponse confirms a roster change.
type MessageResponse struct {
	Message string `json:"message"`
}

// ErrorResponse carries a human-readable failure detail.
type ErrorResponse struct {
	Detail string `json:"detail"`
}

// HistoryResponse lists journal entries for one activity, newest first.
type HistoryResponse struct {
	Activity string          `json:"activity"`
	Entries  []journal.Entry `json:"entries"`
}

func writeError(w http.ResponseWriter, status int, detail string) {
	writeJSON(w, status, ErrorResponse{Detail: detail})
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}
