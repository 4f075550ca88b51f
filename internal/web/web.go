package web

import (
	_ "embed"
	"html/template"
	"net/http"

	"go.uber.org/zap"

	"github.com/mlorentedev/advisor/internal/persona"
)

//go:embed index.html
var indexHTML string

var indexTmpl = template.Must(template.New("index").Parse(indexHTML))

// Page is the data rendered into the index template.
type Page struct {
	Title        string
	Personas     []persona.Persona
	DefaultKey   string
	DefaultModel string
	AuthEnabled  bool
}

// Index serves the consultation page at "/" and 404s every other unmatched path.
func Index(page Page, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/" {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusNotFound)
			w.Write([]byte(`{"error":"not found"}` + "\n"))
			return
		}
		if r.Method != http.MethodGet && r.Method != http.MethodHead {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusMethodNotAllowed)
			w.Write([]byte(`{"error":"method not allowed"}` + "\n"))
			return
		}

		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		if err := indexTmpl.Execute(w, page); err != nil {
			logger.Error("render index", zap.Error(err))
		}
	}
}
