package handler

import (
	"encoding/json"
	"net/http"

	"github.com/mlorentedev/advisor/internal/persona"
)

type personasResponse struct {
	Default  string            `json:"default"`
	Personas []persona.Persona `json:"personas"`
}

func Personas(dir *persona.Directory) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(personasResponse{
			Default:  dir.DefaultKey(),
			Personas: dir.List(),
		})
	}
}
