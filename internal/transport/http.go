package transport

import (
	"context"
	"errors"
	"io"
	"io/fs"
	"log/slog"
	"net/http"
	"net/url"
	"path"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/mergington/activities/internal/domain/journal"
	"github.com/mergington/activities/internal/domain/registry"
)

// RegistryService defines the registry operations served over HTTP.
type RegistryService interface {
	List(ctx context.Context) map[string]registry.Activity
	Get(ctx context.Context, name string) (registry.Activity, error)
	Signup(ctx context.Context, activityName, email string) (registry.Receipt, error)
	Remove(ctx context.Context, activityName, email string) (registry.Receipt, error)
}

// JournalService defines the journal queries served over HTTP.
type JournalService interface {
	Recent(ctx context.Context, opts journal.ListOptions) ([]journal.Entry, error)
}

// Config wires the HTTP server. Only Registry is required.
type Config struct {
	Registry RegistryService
	Journal  JournalService
	Static   fs.FS
	MCP      http.Handler
	Metrics  http.Handler
	Logger   *slog.Logger
}

// Server wires HTTP handlers.
type Server struct {
	registry RegistryService
	journal  JournalService
	logger   *slog.Logger
}

// NewServer creates an HTTP server router with middleware.
func NewServer(cfg Config) *chi.Mux {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	r := chi.NewRouter()
	r.Use(RequestIDMiddleware)
	r.Use(LoggingMiddleware(logger))
	r.Use(middleware.Recoverer)

	srv := &Server{registry: cfg.Registry, journal: cfg.Journal, logger: logger}

	r.Get("/", srv.handleRoot)
	r.Get("/health", srv.handleHealth)
	r.Get("/activities", srv.handleList)
	r.Post("/activities/{activity_name}/signup", srv.handleSignup)
	r.Delete("/activities/{activity_name}/remove", srv.handleRemove)
	r.Get("/activities/{activity_name}/history", srv.handleHistory)

	if cfg.Static != nil {
		r.Handle("/static/*", http.StripPrefix("/static/", staticHandler(cfg.Static)))
	}
	if cfg.Metrics != nil {
		r.Handle("/metrics", cfg.Metrics)
	}
	if cfg.MCP != nil {
		r.Handle("/mcp", cfg.MCP)
		r.Handle("/mcp/*", cfg.MCP)
	}

	return r
}

func (s *Server) handleRoot(w http.ResponseWriter, r *http.Request) {
	http.Redirect(w, r, "/static/index.html", http.StatusTemporaryRedirect)
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

func (s *Server) handleList(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.registry.List(r.Context()))
}

func (s *Server) handleSignup(w http.ResponseWriter, r *http.Request) {
	name, email, ok := rosterParams(w, r)
	if !ok {
		return
	}
	receipt, err := s.registry.Signup(r.Context(), name, email)
	if err != nil {
		s.writeDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, MessageResponse{Message: receipt.Message})
}

func (s *Server) handleRemove(w http.ResponseWriter, r *http.Request) {
	name, email, ok := rosterParams(w, r)
	if !ok {
		return
	}
	receipt, err := s.registry.Remove(r.Context(), name, email)
	if err != nil {
		s.writeDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, MessageResponse{Message: receipt.Message})
}

func (s *Server) handleHistory(w http.ResponseWriter, r *http.Request) {
	name := activityName(r)
	opts, err := historyOptions(r)
	if err != nil {
		writeError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}
	opts.Activity = name

	if _, err := s.registry.Get(r.Context(), name); err != nil {
		s.writeDomainError(w, r, err)
		return
	}

	entries := []journal.Entry{}
	if s.journal != nil {
		entries, err = s.journal.Recent(r.Context(), opts)
		if err != nil {
			s.writeDomainError(w, r, err)
			return
		}
	}
	writeJSON(w, http.StatusOK, HistoryResponse{Activity: name, Entries: entries})
}

// historyOptions reads the limit, offset, email and type query filters.
func historyOptions(r *http.Request) (journal.ListOptions, error) {
	query := r.URL.Query()
	opts := journal.ListOptions{
		Limit: journal.DefaultLimit,
		Email: strings.TrimSpace(query.Get("email")),
	}

	if raw := query.Get("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed <= 0 {
			return opts, errors.New("limit must be a positive integer")
		}
		opts.Limit = parsed
	}
	if raw := query.Get("offset"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 0 {
			return opts, errors.New("offset must be a non-negative integer")
		}
		opts.Offset = parsed
	}
	typ, err := journal.ParseEntryType(query.Get("type"))
	if err != nil {
		return opts, errors.New("type must be signup or removal")
	}
	opts.Type = typ
	return opts, nil
}

// staticHandler serves files from assets by exact name. Unlike
// http.FileServer it answers /index.html without redirecting.
func staticHandler(assets fs.FS) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		name := strings.TrimPrefix(path.Clean("/"+r.URL.Path), "/")
		if name == "" {
			name = "index.html"
		}
		f, err := assets.Open(name)
		if err != nil {
			http.NotFound(w, r)
			return
		}
		defer f.Close()

		info, err := f.Stat()
		if err != nil || info.IsDir() {
			http.NotFound(w, r)
			return
		}
		content, ok := f.(io.ReadSeeker)
		if !ok {
			http.Error(w, "unreadable asset", http.StatusInternalServerError)
			return
		}
		http.ServeContent(w, r, info.Name(), info.ModTime(), content)
	})
}

// rosterParams extracts the activity name and the required email query
// parameter, answering 422 when the email is absent.
func rosterParams(w http.ResponseWriter, r *http.Request) (string, string, bool) {
	query := r.URL.Query()
	if !query.Has("email") {
		writeError(w, http.StatusUnprocessableEntity, "email query parameter is required")
		return "", "", false
	}
	email := strings.TrimSpace(query.Get("email"))
	if email == "" {
		writeError(w, http.StatusUnprocessableEntity, "email query parameter must not be empty")
		return "", "", false
	}
	return activityName(r), email, true
}

// activityName returns the decoded {activity_name} segment. chi matches
// against RawPath when it is set, and the segment is then still escaped.
func activityName(r *http.Request) string {
	raw := chi.URLParam(r, "activity_name")
	if r.URL.RawPath == "" {
		return raw
	}
	if name, err := url.PathUnescape(raw); err == nil {
		return name
	}
	return raw
}

func (s *Server) writeDomainError(w http.ResponseWriter, r *http.Request, err error) {
	status := StatusFor(err)
	if status == http.StatusInternalServerError {
		s.logger.Error("request failed", "path", r.URL.Path, "request_id", RequestIDFromContext(r.Context()), "error", err)
		writeError(w, status, "Internal server error")
		return
	}
	writeError(w, status, registry.Detail(err))
}

// StatusFor maps a domain error to its HTTP status code.
func StatusFor(err error) int {
	switch {
	case errors.Is(err, registry.ErrInvalidInput), errors.Is(err, journal.ErrInvalidInput):
		return http.StatusUnprocessableEntity
	case errors.Is(err, registry.ErrActivityNotFound):
		return http.StatusNotFound
	case errors.Is(err, registry.ErrAlreadySignedUp),
		errors.Is(err, registry.ErrNotSignedUp),
		errors.Is(err, registry.ErrActivityFull):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
