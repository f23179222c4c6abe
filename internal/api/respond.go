package api

import (
	"encoding/json"
	"net/http"

	apperrors "bookly/internal/errors"
)

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, err error) {
	httpErr := apperrors.FromError(err)
	http.Error(w, httpErr.Message, httpErr.Code)
}
