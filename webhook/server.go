// Copyright 2025 The Handler Authors
// SPDX-License-Identifier: Apache-2.0

package webhook

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-json-experiment/json"
	"github.com/go-json-experiment/json/jsontext"
	"github.com/gorilla/mux"

	"github.com/alDuncanson/handler/auth"
)

// maxPayloadSize bounds how large a single delivery may be.
const maxPayloadSize = 5 << 20

// Server is the local webhook receiver. It accepts push deliveries on
// POST /webhook and exposes what it collected on GET /notifications.
type Server struct {
	addr     string
	store    *Store
	token    string
	verifier *auth.NotificationVerifier
	logger   *slog.Logger
	router   *mux.Router
}

// ServerOption configures a Server.
type ServerOption func(*Server)

// WithStore uses an existing notification store.
func WithStore(store *Store) ServerOption {
	return func(s *Server) { s.store = store }
}

// WithToken requires every delivery to carry the token in the
// X-A2A-Notification-Token header.
func WithToken(token string) ServerOption {
	return func(s *Server) { s.token = token }
}

// WithVerifier requires every delivery to carry a valid bearer JWT.
func WithVerifier(verifier *auth.NotificationVerifier) ServerOption {
	return func(s *Server) { s.verifier = verifier }
}

// WithLogger sets the server's logger.
func WithLogger(logger *slog.Logger) ServerOption {
	return func(s *Server) { s.logger = logger }
}

// NewServer returns a receiver listening on addr once Run is called.
func NewServer(addr string, opts ...ServerOption) *Server {
	s := &Server{
		addr:   addr,
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.store == nil {
		s.store = NewStore(DefaultCapacity)
	}

	r := mux.NewRouter()
	r.HandleFunc("/webhook", s.handleReceive).Methods(http.MethodPost)
	r.HandleFunc("/webhook", s.handleHealth).Methods(http.MethodGet)
	r.HandleFunc("/notifications", s.handleList).Methods(http.MethodGet)
	r.HandleFunc("/notifications/clear", s.handleClear).Methods(http.MethodPost)
	s.router = r

	return s
}

// Handler returns the server's HTTP handler, for embedding or testing.
func (s *Server) Handler() http.Handler { return s.router }

// Store returns the server's notification store.
func (s *Server) Store() *Store { return s.store }

// Run serves until ctx is canceled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.addr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("webhook receiver listening", slog.String("addr", s.addr))
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	return srv.Shutdown(shutdownCtx)
}

func (s *Server) handleReceive(w http.ResponseWriter, r *http.Request) {
	if !auth.VerifyNotificationToken(r, s.token) {
		s.logger.Warn("notification rejected", slog.String("reason", "token mismatch"))
		writeJSON(w, http.StatusUnauthorized, map[string]any{"error": "Invalid notification token"})
		return
	}
	if s.verifier != nil {
		if _, err := s.verifier.VerifyRequest(r); err != nil {
			s.logger.Warn("notification rejected", slog.Any("error", err))
			writeJSON(w, http.StatusUnauthorized, map[string]any{"error": "Invalid notification signature"})
			return
		}
	}

	body, err := io.ReadAll(io.LimitReader(r.Body, maxPayloadSize))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]any{"error": "Unreadable body"})
		return
	}

	var payload any
	if err := json.Unmarshal(body, &payload); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]any{"error": "Invalid JSON"})
		return
	}

	notification := Notification{
		ReceivedAt: time.Now().UTC(),
		TaskID:     extractTaskID(body),
		Payload:    jsontext.Value(body),
		Headers:    notificationHeaders(r),
	}
	s.store.Add(notification)
	s.logger.Info("notification received",
		slog.String("taskId", notification.TaskID),
		slog.Int("bytes", len(body)),
	)

	writeJSON(w, http.StatusOK, map[string]any{"status": "ok", "received": true})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{"status": "ok", "message": "Webhook is active"})
}

func (s *Server) handleList(w http.ResponseWriter, r *http.Request) {
	notifications := s.store.List()
	writeJSON(w, http.StatusOK, map[string]any{
		"count":         len(notifications),
		"notifications": notifications,
	})
}

func (s *Server) handleClear(w http.ResponseWriter, r *http.Request) {
	s.store.Clear()
	writeJSON(w, http.StatusOK, map[string]any{"status": "ok"})
}

// extractTaskID pulls the task identifier out of a delivery payload.
// Agents send either a full task object or a thin reference.
func extractTaskID(body []byte) string {
	var probe struct {
		TaskID string `json:"taskId"`
		ID     string `json:"id"`
	}
	if err := json.Unmarshal(body, &probe); err != nil {
		return ""
	}
	if probe.TaskID != "" {
		return probe.TaskID
	}

	return probe.ID
}

func notificationHeaders(r *http.Request) map[string]string {
	headers := make(map[string]string)
	for _, key := range []string{auth.NotificationTokenHeader, "Content-Type", "User-Agent"} {
		if v := r.Header.Get(key); v != "" {
			headers[key] = v
		}
	}

	return headers
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.MarshalWrite(w, v); err != nil && !errors.Is(err, http.ErrHandlerTimeout) {
		slog.Debug("write response", slog.Any("error", err))
	}
}
