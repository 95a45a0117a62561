package errors

import (
	"encoding/json"
	"net/http"
	"time"
)

type ErrorResponseDTO struct {
	Timestamp time.Time `json:"timestamp"`
	Status    int       `json:"status"`
	Error     string    `json:"error"`
	Message   string    `json:"message"`
	Path      string    `json:"path"`
}

// HandleHTTPError maps application errors onto the HTTP error contract.
func HandleHTTPError(w http.ResponseWriter, r *http.Request, err error) {
	var status int
	switch err.(type) {
	case *BadRequestError:
		status = http.StatusBadRequest
	case *TransactionNotFoundError:
		status = http.StatusNotFound
	case *DuplicateTransactionError:
		status = http.StatusConflict
	default:
		status = http.StatusInternalServerError
	}

	body := ErrorResponseDTO{
		Timestamp: time.Now().UTC(),
		Status:    status,
		Error:     http.StatusText(status),
		Message:   err.Error(),
		Path:      r.URL.Path,
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}
