package utils

import (
	"encoding/json"
	"net/http"
)

// EscreverJSON serializa data com o status informado.
func EscreverJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

// LerJSON decodifica o corpo limitado a 1 MB.
func LerJSON(w http.ResponseWriter, r *http.Request, data any) error {
	r.Body = http.MaxBytesReader(w, r.Body, 1_048_576)
	return json.NewDecoder(r.Body).Decode(data)
}
