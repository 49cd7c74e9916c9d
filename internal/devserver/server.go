// Package devserver is a local stand-in for the task backend: an echo REST
// API over an in-memory store, an embedded STOMP broker and a deadline
// reminder job. It exists for development and end-to-end tests.
package devserver

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"sync"

	"github.com/bytedance/sonic"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/thenoetrevino/taskboard/internal/models"
)

// Server serves the task REST API
type Server struct {
	echo   *echo.Echo
	store  *Store
	token  string
	broker *Broker
	logger *slog.Logger

	mu       sync.Mutex
	failures []injectedFailure
}

type injectedFailure struct {
	status  int
	message string
}

type errorResponse struct {
	Message string `json:"message"`
}

// Option configures a Server
type Option func(*Server)

// WithToken requires "Authorization: Bearer <token>" on every API call
func WithToken(token string) Option {
	return func(s *Server) {
		s.token = token
	}
}

// WithBroker exposes the broker's WebSocket endpoint at GET /ws
func WithBroker(b *Broker) Option {
	return func(s *Server) {
		s.broker = b
	}
}

// WithLogger sets the request logger
func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) {
		s.logger = logger
	}
}

// New creates a server over store
func New(store *Store, opts ...Option) *Server {
	s := &Server{
		echo:   echo.New(),
		store:  store,
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}

	s.echo.HideBanner = true
	s.echo.HidePort = true
	s.echo.JSONSerializer = sonicSerializer{}
	s.echo.Use(middleware.Recover())
	s.echo.Use(middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogMethod: true,
		LogURI:    true,
		LogStatus: true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			s.logger.Debug("devserver request", "method", v.Method, "uri", v.URI, "status", v.Status)
			return nil
		},
	}))

	s.echo.GET("/healthz", func(c echo.Context) error {
		return c.NoContent(http.StatusOK)
	})
	s.echo.GET("/projects/:projectId/tasks", s.listTasks, s.requireToken)
	s.echo.PATCH("/tasks/:id", s.patchTask, s.requireToken)
	if s.broker != nil {
		s.echo.GET("/ws", echo.WrapHandler(http.HandlerFunc(s.broker.ServeWebSocket)))
	}

	return s
}

// ServeHTTP lets the server be mounted in httptest or any mux
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.echo.ServeHTTP(w, r)
}

// Start listens on addr until Shutdown
func (s *Server) Start(addr string) error {
	if err := s.echo.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Shutdown stops the listener gracefully
func (s *Server) Shutdown(ctx context.Context) error {
	return s.echo.Shutdown(ctx)
}

// FailNext makes the next n task updates fail with the given status and message
func (s *Server) FailNext(n, status int, message string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := 0; i < n; i++ {
		s.failures = append(s.failures, injectedFailure{status: status, message: message})
	}
}

func (s *Server) nextFailure() (injectedFailure, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.failures) == 0 {
		return injectedFailure{}, false
	}
	f := s.failures[0]
	s.failures = s.failures[1:]
	return f, true
}

func (s *Server) requireToken(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		if s.token == "" {
			return next(c)
		}
		h := c.Request().Header.Get("Authorization")
		tok, ok := strings.CutPrefix(h, "Bearer ")
		if !ok || tok != s.token {
			return c.JSON(http.StatusUnauthorized, errorResponse{Message: "unauthorized"})
		}
		return next(c)
	}
}

func (s *Server) listTasks(c echo.Context) error {
	return c.JSON(http.StatusOK, s.store.List(c.Param("projectId")))
}

func (s *Server) patchTask(c echo.Context) error {
	if f, ok := s.nextFailure(); ok {
		if f.message == "" {
			return c.NoContent(f.status)
		}
		return c.JSON(f.status, errorResponse{Message: f.message})
	}

	var patch models.TaskPatch
	if err := c.Bind(&patch); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Message: "malformed body"})
	}

	task, err := s.store.Update(models.TaskID(c.Param("id")), patch)
	switch {
	case errors.Is(err, ErrTaskNotFound):
		return c.JSON(http.StatusNotFound, errorResponse{Message: err.Error()})
	case errors.Is(err, ErrInvalidStatus), errors.Is(err, ErrInvalidOrder):
		return c.JSON(http.StatusBadRequest, errorResponse{Message: err.Error()})
	case err != nil:
		return c.JSON(http.StatusInternalServerError, errorResponse{Message: err.Error()})
	}
	return c.JSON(http.StatusOK, task)
}

// sonicSerializer plugs sonic into echo's JSON handling
type sonicSerializer struct{}

func (sonicSerializer) Serialize(c echo.Context, i interface{}, indent string) error {
	enc := sonic.ConfigStd.NewEncoder(c.Response())
	if indent != "" {
		enc.SetIndent("", indent)
	}
	return enc.Encode(i)
}

func (sonicSerializer) Deserialize(c echo.Context, i interface{}) error {
	err := sonic.ConfigStd.NewDecoder(c.Request().Body).Decode(i)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error()).SetInternal(err)
	}
	return nil
}
