// Package server exposes the analysis pipeline over HTTP.
package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/google/uuid"

	"sales-coach-go/internal/app"
	"sales-coach-go/internal/dataset"
	"sales-coach-go/internal/logger"
	"sales-coach-go/internal/processor"
	"sales-coach-go/internal/report"
	"sales-coach-go/internal/types"
)

const maxBodyBytes = 1 << 20

// AnalyzeRequest is the /analyze and /export body. Transcript wins over
// AudioURL when both are set.
type AnalyzeRequest struct {
	Transcript string `json:"transcript"`
	AudioURL   string `json:"audio_url"`
}

var errNoInput = errors.New("transcript or audio_url required")

type handler struct {
	app *app.App
	log *logger.Logger

	loadDataset func(path string) ([]types.CallRecord, error)
}

// NewHandler returns the service mux.
func NewHandler(a *app.App) http.Handler {
	h := &handler{app: a, log: a.Log.Component("http"), loadDataset: dataset.Load}
	return h.routes()
}

func (h *handler) routes() *http.ServeMux {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /healthz", h.health)
	mux.HandleFunc("/analyze", h.analyze)
	mux.HandleFunc("POST /export", h.export)
	mux.HandleFunc("POST /batch", h.batch)
	return mux
}

func (h *handler) health(w http.ResponseWriter, r *http.Request) {
	h.log.WithRequest(r).Debug("health check")
	writeJSON(w, http.StatusOK, map[string]string{
		"status": "ok",
		"llm":    h.app.Status(r.Context()),
	})
}

func (h *handler) analyze(w http.ResponseWriter, r *http.Request) {
	reqLog := h.log.WithRequest(r).WithField("handler", "analyze")
	if r.Method != http.MethodGet && r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	req, err := decodeRequest(r)
	if err != nil {
		reqLog.WithError(err).Warn("bad analyze request")
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	res := h.process(r, req)
	reqLog.WithField("status", res.Report.Metadata.Status).WithField("duration_ms", res.DurationMs).Info("analysis finished")
	writeJSON(w, http.StatusOK, res)
}

func (h *handler) export(w http.ResponseWriter, r *http.Request) {
	reqLog := h.log.WithRequest(r).WithField("handler", "export")

	req, err := decodeRequest(r)
	if err != nil {
		reqLog.WithError(err).Warn("bad export request")
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	res := h.process(r, req)
	name := fmt.Sprintf("sales-call-%s.txt", uuid.NewString())
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", name))
	if _, err := io.WriteString(w, report.RenderText(res.Report)); err != nil {
		reqLog.WithError(err).Error("failed to write export")
	}
}

// batch analyzes the configured dataset. ?limit=N caps the number of calls.
func (h *handler) batch(w http.ResponseWriter, r *http.Request) {
	reqLog := h.log.WithRequest(r).WithField("handler", "batch")

	limit := 0
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			http.Error(w, "invalid limit", http.StatusBadRequest)
			return
		}
		limit = n
	}

	path := h.app.Config.DatasetPath
	records, err := h.loadDataset(path)
	if err != nil {
		reqLog.WithError(err).WithField("dataset_path", path).Error("dataset load error")
		http.Error(w, "dataset load error", http.StatusInternalServerError)
		return
	}
	if limit > 0 && len(records) > limit {
		records = records[:limit]
	}

	run := h.app.RunBatch(r.Context(), records)
	writeJSON(w, http.StatusOK, run)
}

func (h *handler) process(r *http.Request, req AnalyzeRequest) processor.CallResult {
	if strings.TrimSpace(req.Transcript) != "" {
		return h.app.Processor.ProcessTranscript(r.Context(), req.Transcript)
	}
	return h.app.Processor.ProcessAudio(r.Context(), req.AudioURL)
}

// decodeRequest accepts a JSON body or, for GET, the audio_url and
// transcript query parameters.
func decodeRequest(r *http.Request) (AnalyzeRequest, error) {
	var req AnalyzeRequest
	if r.Method == http.MethodGet {
		req.AudioURL = r.URL.Query().Get("audio_url")
		req.Transcript = r.URL.Query().Get("transcript")
	} else {
		dec := json.NewDecoder(io.LimitReader(r.Body, maxBodyBytes))
		if err := dec.Decode(&req); err != nil {
			return req, fmt.Errorf("invalid JSON body: %w", err)
		}
	}
	if strings.TrimSpace(req.Transcript) == "" && strings.TrimSpace(req.AudioURL) == "" {
		return req, errNoInput
	}
	return req, nil
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	_ = enc.Encode(v)
}
