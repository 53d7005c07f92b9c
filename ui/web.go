package ui

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"rcpanel/core/applauncher"
	"rcpanel/core/settings"
	"rcpanel/metrics"
	"rcpanel/models"
	"rcpanel/service/panel"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/cors"
	"github.com/sirupsen/logrus"
)

type WebInterface struct {
	panel          *panel.Panel
	allowedOrigins []string
	log            logrus.FieldLogger
}

func NewWebInterface(p *panel.Panel, allowedOrigins []string, log logrus.FieldLogger) *WebInterface {
	return &WebInterface{
		panel:          p,
		allowedOrigins: allowedOrigins,
		log:            log,
	}
}

type APIError struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeJSONError(w http.ResponseWriter, message string, code string, status int) {
	writeJSON(w, status, APIError{Error: message, Code: code})
}

// Middleware для метрик
func metricsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		// Wrapper для захвата статус кода
		wrapped := &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}

		next.ServeHTTP(wrapped, r)

		endpoint := r.URL.Path
		if route := mux.CurrentRoute(r); route != nil {
			if tmpl, err := route.GetPathTemplate(); err == nil {
				endpoint = tmpl
			}
		}

		metrics.HttpRequestsTotal.WithLabelValues(
			r.Method,
			endpoint,
			strconv.Itoa(wrapped.statusCode),
		).Inc()

		metrics.HttpRequestDuration.WithLabelValues(
			r.Method,
			endpoint,
		).Observe(time.Since(start).Seconds())
	})
}

type responseWriter struct {
	http.ResponseWriter
	statusCode int
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}

// Handler - маршруты API с CORS для фронтенда
func (w *WebInterface) Handler() http.Handler {
	r := mux.NewRouter()

	r.Use(metricsMiddleware)
	r.HandleFunc("/computers", w.handleComputers).Methods(http.MethodGet)
	r.HandleFunc("/settings", w.handleGetSettings).Methods(http.MethodGet)
	r.HandleFunc("/settings", w.handleSaveSettings).Methods(http.MethodPost)
	r.HandleFunc("/launch", w.handleLaunch).Methods(http.MethodGet)
	r.HandleFunc("/connect/{ip}", w.handleConnect).Methods(http.MethodPost)
	r.HandleFunc("/open-folder", w.handleOpenFolder).Methods(http.MethodGet)
	r.HandleFunc("/ping", w.handlePing).Methods(http.MethodGet)

	// Prometheus metrics endpoint
	r.Handle("/metrics", promhttp.Handler()).Methods(http.MethodGet)

	// Health check endpoint
	r.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "OK"})
	}).Methods(http.MethodGet)

	c := cors.New(cors.Options{
		AllowedOrigins:   w.allowedOrigins,
		AllowCredentials: true,
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowedHeaders:   []string{"*"},
	})
	return c.Handler(r)
}

func (w *WebInterface) Start(addr string) error {
	server := &http.Server{
		Addr:              addr,
		Handler:           w.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}
	w.log.WithField("addr", addr).Info("starting control panel API")
	return server.ListenAndServe()
}

func (w *WebInterface) handleComputers(wr http.ResponseWriter, _ *http.Request) {
	writeJSON(wr, http.StatusOK, w.panel.ListComputers())
}

func (w *WebInterface) handleGetSettings(wr http.ResponseWriter, _ *http.Request) {
	writeJSON(wr, http.StatusOK, w.panel.Settings())
}

func (w *WebInterface) handleSaveSettings(wr http.ResponseWriter, r *http.Request) {
	s := models.DefaultSettings()
	if err := json.NewDecoder(r.Body).Decode(s); err != nil {
		writeJSONError(wr, "Invalid settings payload: "+err.Error(), "bad_request", http.StatusBadRequest)
		return
	}

	if err := w.panel.UpdateSettings(s); err != nil {
		var vErr *settings.ValidationError
		if errors.As(err, &vErr) {
			writeJSONError(wr, vErr.Error(), "invalid_settings", http.StatusBadRequest)
			return
		}
		w.log.WithError(err).Error("failed to save settings")
		writeJSONError(wr, "Failed to save settings: "+err.Error(), "settings_save_failed", http.StatusInternalServerError)
		return
	}

	writeJSON(wr, http.StatusOK, map[string]string{"status": "success"})
}

func (w *WebInterface) handleLaunch(wr http.ResponseWriter, r *http.Request) {
	writeOutcome(wr, w.panel.LaunchSession(r.URL.Query().Get("ip")))
}

func (w *WebInterface) handleConnect(wr http.ResponseWriter, r *http.Request) {
	writeOutcome(wr, w.panel.LaunchSession(mux.Vars(r)["ip"]))
}

func (w *WebInterface) handleOpenFolder(wr http.ResponseWriter, r *http.Request) {
	writeOutcome(wr, w.panel.OpenShare(r.URL.Query().Get("target")))
}

func (w *WebInterface) handlePing(wr http.ResponseWriter, r *http.Request) {
	writeOutcome(wr, w.panel.StartPing(r.URL.Query().Get("target")))
}

func writeOutcome(w http.ResponseWriter, outcome applauncher.Outcome) {
	switch outcome.Status {
	case applauncher.StatusStarted:
		writeJSON(w, http.StatusOK, map[string]string{
			"status": "success",
			"target": outcome.Target,
			"id":     outcome.ID,
		})
	case applauncher.StatusValidationFailed:
		writeJSONError(w, "Invalid target: expected an IPv4 address or a host name", "invalid_target", http.StatusBadRequest)
	case applauncher.StatusExecutableNotFound:
		writeJSONError(w, "Remote control viewer not found, check cmrcviewer_path in settings", "executable_not_found", http.StatusUnprocessableEntity)
	case applauncher.StatusPlatformUnsupported:
		writeJSONError(w, "This operation is only supported on Windows", "platform_unsupported", http.StatusNotImplemented)
	default:
		writeJSONError(w, "Failed to start process: "+outcome.Reason, "spawn_failed", http.StatusInternalServerError)
	}
}
