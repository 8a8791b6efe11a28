package api

import (
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/pr-poehali-dev/tennis-bot-forecasting/internal/pkg/aggregate"
	"github.com/pr-poehali-dev/tennis-bot-forecasting/internal/pkg/models"
	"github.com/pr-poehali-dev/tennis-bot-forecasting/internal/pkg/telegram"
	"github.com/pr-poehali-dev/tennis-bot-forecasting/internal/sources/sofascore"
)

func handlePing(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = w.Write([]byte("pong\n"))
}

func handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = w.Write([]byte("ok\n"))
}

// handleMatches runs one aggregation cycle with the request's filters.
func (s *Server) handleMatches(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	opts := aggregate.Options{
		Mode:         q.Get("mode"),
		ShowAll:      boolParam(q.Get("showAll")),
		League:       q.Get("league"),
		HighConfOnly: boolParam(q.Get("highConf")),
		Debug:        boolParam(q.Get("debug")),
	}

	resp := s.pipeline.Run(r.Context(), opts)
	writeJSON(w, http.StatusOK, resp)
}

type saveRequest struct {
	Matches []models.Match `json:"matches"`
}

// handleSave upserts the posted predictions into storage.
func (s *Server) handleSave(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "Метод не поддерживается")
		return
	}
	if s.store == nil {
		writeError(w, http.StatusBadRequest, "База данных не настроена. Добавьте DATABASE_URL.")
		return
	}

	var req saveRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Некорректный JSON: "+err.Error())
		return
	}

	result := s.store.SaveBatch(r.Context(), req.Matches)
	writeJSON(w, http.StatusOK, result)
}

// handleStats answers accuracy statistics for the requested period.
func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	if s.store == nil {
		writeError(w, http.StatusBadRequest, "База данных не настроена. Добавьте DATABASE_URL.")
		return
	}

	period := r.URL.Query().Get("period")
	if period == "" {
		period = "all"
	}

	stats, err := s.store.Stats(r.Context(), period)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Не удалось получить статистику: "+err.Error())
		return
	}
	writeJSON(w, http.StatusOK, stats)
}

type sendRequest struct {
	Mode string `json:"mode"`
}

type sendResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	SentAt  string `json:"sentAt"`
}

// handleSend aggregates the current matches, formats a digest and sends it
// to the configured Telegram chat.
func (s *Server) handleSend(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "Метод не поддерживается")
		return
	}
	if !s.notifier.Enabled() {
		writeError(w, http.StatusBadRequest, "Telegram не настроен. Добавьте TELEGRAM_BOT_TOKEN и TELEGRAM_CHAT_ID.")
		return
	}

	var req sendRequest
	if r.Body != nil {
		_ = json.NewDecoder(r.Body).Decode(&req)
	}

	resp := s.pipeline.Run(r.Context(), aggregate.Options{})
	now := timeNow()

	var text string
	if req.Mode == "results" {
		text = telegram.ResultsDigest(resp.Matches, now)
	} else {
		text = telegram.PredictionsDigest(resp.Matches, now)
	}

	if err := s.notifier.Send(text); err != nil {
		writeJSON(w, http.StatusInternalServerError, sendResponse{
			Success: false,
			Message: "Ошибка отправки",
			SentAt:  now.UTC().Format(timeFormat),
		})
		return
	}
	writeJSON(w, http.StatusOK, sendResponse{
		Success: true,
		Message: "Отправлено в Telegram!",
		SentAt:  now.UTC().Format(timeFormat),
	})
}

// handleProxy passes a request through to the public score aggregator with
// browser-like headers. Only sofascore.com URLs are allowed.
func (s *Server) handleProxy(w http.ResponseWriter, r *http.Request) {
	raw := r.URL.Query().Get("url")
	if !allowedProxyURL(raw) {
		writeError(w, http.StatusBadRequest, "Требуется параметр ?url= с SofaScore URL")
		return
	}

	req, err := http.NewRequestWithContext(r.Context(), http.MethodGet, raw, nil)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Некорректный URL: "+err.Error())
		return
	}
	req.Header.Set("User-Agent", sofascore.UserAgent)
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Accept-Language", "en-US,en;q=0.9")
	req.Header.Set("Referer", "https://www.sofascore.com/")
	req.Header.Set("Origin", "https://www.sofascore.com")

	resp, err := s.proxy.Do(req)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	defer resp.Body.Close()

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(resp.StatusCode)
	_, _ = io.Copy(w, resp.Body)
}

// allowedProxyURL accepts only http(s) URLs whose host is sofascore.com or a
// subdomain. A plain substring check would be bypassable via the query string.
func allowedProxyURL(raw string) bool {
	if raw == "" {
		return false
	}
	u, err := url.Parse(raw)
	if err != nil {
		return false
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return false
	}
	host := u.Hostname()
	return host == "sofascore.com" || strings.HasSuffix(host, ".sofascore.com")
}

func boolParam(v string) bool {
	switch strings.ToLower(v) {
	case "1", "true", "yes":
		return true
	}
	return false
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
