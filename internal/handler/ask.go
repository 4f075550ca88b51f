package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"unicode/utf8"

	"go.uber.org/zap"

	"github.com/mlorentedev/advisor/internal/advisor"
	"github.com/mlorentedev/advisor/internal/metrics"
	"github.com/mlorentedev/advisor/internal/persona"
)

const maxTextLength = 10000

// EmptyInputMessage is the warning shown for blank submissions.
const EmptyInputMessage = "入力フォームが空です。テキストを入力してください。"

type askRequest struct {
	Text    string `json:"text"`
	Persona string `json:"persona"`
	ModelID string `json:"model_id"`
}

type askResponse struct {
	Answer    string `json:"answer"`
	Persona   string `json:"persona"`
	Model     string `json:"model"`
	Notice    bool   `json:"notice"`
	ElapsedMs int64  `json:"elapsed_ms"`
}

func Ask(adv *advisor.Advisor, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			writeError(w, http.StatusMethodNotAllowed, "method not allowed")
			return
		}

		var req askRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			var maxBytesErr *http.MaxBytesError
			if errors.As(err, &maxBytesErr) {
				writeError(w, http.StatusRequestEntityTooLarge, "request body too large")
				return
			}
			writeError(w, http.StatusBadRequest, "invalid JSON body")
			return
		}

		if strings.TrimSpace(req.Text) == "" {
			writeError(w, http.StatusBadRequest, EmptyInputMessage)
			return
		}
		if n := utf8.RuneCountInString(req.Text); n > maxTextLength {
			writeError(w, http.StatusBadRequest, fmt.Sprintf("text too long: %d characters (max %d)", n, maxTextLength))
			return
		}

		personas := adv.Personas()
		metrics.InputChars.Observe(float64(utf8.RuneCountInString(strings.TrimSpace(req.Text))))

		ans, err := adv.Consult(r.Context(), req.Persona, req.ModelID, req.Text)
		switch {
		case errors.Is(err, advisor.ErrEmptyInput):
			writeError(w, http.StatusBadRequest, EmptyInputMessage)
			return
		case errors.Is(err, advisor.ErrUnknownModel):
			writeError(w, http.StatusBadRequest, fmt.Sprintf("unknown model: %s", req.ModelID))
			return
		case err != nil:
			logger.Warn("ask failed",
				zap.String("persona", req.Persona),
				zap.String("model", req.ModelID),
				zap.Error(err),
			)
			writeError(w, http.StatusBadGateway, fmt.Sprintf("ask failed: %v", err))
			return
		}

		if ans.Notice {
			metrics.MissingCredential.WithLabelValues(ans.Model).Inc()
		} else {
			metrics.CompletionDuration.WithLabelValues(ans.Model, personaLabel(personas, ans.Persona)).
				Observe(ans.Elapsed.Seconds())
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(askResponse{
			Answer:    ans.Text,
			Persona:   ans.Persona,
			Model:     ans.Model,
			Notice:    ans.Notice,
			ElapsedMs: ans.Elapsed.Milliseconds(),
		})
	}
}

// personaLabel keeps metric cardinality bounded: unknown selectors share one label.
func personaLabel(personas *persona.Directory, selector string) string {
	if _, ok := personas.Lookup(selector); ok {
		return selector
	}
	return "default"
}
