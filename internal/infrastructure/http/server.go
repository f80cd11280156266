// Package http provides the HTTP server infrastructure.
// Clean Architecture: Framework/driver layer - outermost circle. The
// handlers are thin glue forwarding exactly the parameters the workflow
// and answer generator expose.
package http

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/cors"
	"go.uber.org/zap"

	"github.com/techgear/supportbot/internal/domain/entities"
	"github.com/techgear/supportbot/internal/domain/ports"
	"github.com/techgear/supportbot/internal/domain/usecases"
)

// ChatRunner runs the full classify-and-respond workflow.
type ChatRunner interface {
	Run(ctx context.Context, query string, history []entities.Turn) (*usecases.Result, error)
}

// DirectAnswerer generates an answer bypassing classification.
type DirectAnswerer interface {
	Answer(ctx context.Context, question, historyText string) (string, error)
}

// Server is the HTTP server for the support chatbot API.
type Server struct {
	workflow ChatRunner
	answerer DirectAnswerer
	registry *prometheus.Registry
	logger   *zap.Logger
	addr     string
	origins  []string
}

// NewServer creates a new HTTP server.
func NewServer(
	workflow ChatRunner,
	answerer DirectAnswerer,
	registry *prometheus.Registry,
	logger *zap.Logger,
	addr string,
	origins []string,
) *Server {
	return &Server{
		workflow: workflow,
		answerer: answerer,
		registry: registry,
		logger:   logger,
		addr:     addr,
		origins:  origins,
	}
}

// chatRequest is the wire format for POST /chat and /chat/direct.
type chatRequest struct {
	Query   string     `json:"query"`
	History []turnJSON `json:"history,omitempty"`
}

type turnJSON struct {
	Sender string `json:"sender"`
	Text   string `json:"text"`
}

// chatResponse is the wire format for chat replies.
type chatResponse struct {
	Response string `json:"response"`
	Category string `json:"category,omitempty"`
}

type statusResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}

type errorResponse struct {
	Error string `json:"error"`
}

// Handler builds the routed, CORS-wrapped, logged handler. Exposed
// separately from Start for tests.
func (s *Server) Handler() http.Handler {
	r := mux.NewRouter()
	r.HandleFunc("/", s.handleRoot).Methods(http.MethodGet)
	r.HandleFunc("/health", s.handleHealth).Methods(http.MethodGet)
	r.HandleFunc("/chat", s.handleChat).Methods(http.MethodPost)
	r.HandleFunc("/chat/direct", s.handleChatDirect).Methods(http.MethodPost)
	r.Handle("/metrics", promhttp.HandlerFor(s.registry, promhttp.HandlerOpts{})).Methods(http.MethodGet)

	c := cors.New(cors.Options{
		AllowedOrigins:   s.origins,
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders:   []string{"Content-Type"},
		AllowCredentials: true,
	})

	return c.Handler(s.loggingMiddleware(r))
}

// Start runs the HTTP server until ctx is cancelled, then shuts down
// gracefully.
func (s *Server) Start(ctx context.Context) error {
	server := &http.Server{
		Addr:         s.addr,
		Handler:      s.Handler(),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 120 * time.Second, // Model calls can be slow
	}

	s.logger.Info("support chatbot server starting", zap.String("addr", s.addr))

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		server.Shutdown(shutdownCtx)
	}()

	if err := server.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func (s *Server) handleRoot(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, statusResponse{
		Status:  "ok",
		Message: "TechGear Electronics Support Chatbot API is running.",
	})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, statusResponse{
		Status:  "healthy",
		Message: "All systems operational",
	})
}

// handleChat runs the full workflow: classify, route, respond.
func (s *Server) handleChat(w http.ResponseWriter, r *http.Request) {
	req, ok := s.decodeChatRequest(w, r)
	if !ok {
		return
	}

	history := make([]entities.Turn, 0, len(req.History))
	for _, turn := range req.History {
		history = append(history, entities.Turn{
			Sender: entities.Sender(turn.Sender),
			Text:   turn.Text,
		})
	}

	result, err := s.workflow.Run(r.Context(), req.Query, history)
	if err != nil {
		s.writeUpstreamError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, chatResponse{
		Response: result.Response,
		Category: string(result.Category),
	})
}

// handleChatDirect bypasses classification and always runs the answer
// generator. Debug surface.
func (s *Server) handleChatDirect(w http.ResponseWriter, r *http.Request) {
	req, ok := s.decodeChatRequest(w, r)
	if !ok {
		return
	}

	answer, err := s.answerer.Answer(r.Context(), req.Query, "")
	if err != nil {
		s.writeUpstreamError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, chatResponse{
		Response: answer,
		Category: string(entities.CategoryDirect),
	})
}

func (s *Server) decodeChatRequest(w http.ResponseWriter, r *http.Request) (chatRequest, bool) {
	var req chatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return req, false
	}
	if req.Query == "" {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "query must not be empty"})
		return req, false
	}
	return req, true
}

func (s *Server) writeUpstreamError(w http.ResponseWriter, r *http.Request, err error) {
	s.logger.Error("request failed", zap.String("path", r.URL.Path), zap.Error(err))

	status := http.StatusInternalServerError
	if errors.Is(err, ports.ErrNotInitialized) {
		status = http.StatusServiceUnavailable
	}
	writeJSON(w, status, errorResponse{Error: "error processing your query: " + err.Error()})
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}

func (s *Server) loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		requestID := uuid.NewString()
		next.ServeHTTP(w, r)
		s.logger.Info("request handled",
			zap.String("request_id", requestID),
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Duration("duration", time.Since(start)),
		)
	})
}
