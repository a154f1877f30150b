package web

import (
	"encoding/json"
	"net/http"
)

// Envelope es el contrato de respuesta de toda la API:
// "success" siempre presente; "message" en errores y mutaciones.
type Envelope map[string]any

func OK(w http.ResponseWriter, status int, payload Envelope) {
	if payload == nil {
		payload = Envelope{}
	}
	payload["success"] = true
	writeJSON(w, status, payload)
}

func Fail(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, Envelope{
		"success": false,
		"message": message,
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
