package server

import (
	"context"
	"net/http"

	"github.com/existflow/examprep/internal/app"
	"github.com/existflow/examprep/internal/calendar"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
)

// Options configure the HTTP surface
type Options struct {
	ReminderHour int
}

// Server exposes one session over a loopback HTTP API
type Server struct {
	sess *app.Session
	opts Options
	echo *echo.Echo
}

// New creates a new server over sess
func New(sess *app.Session, opts Options) *Server {
	if opts.ReminderHour <= 0 || opts.ReminderHour > 23 {
		opts.ReminderHour = calendar.DefaultOptions().ReminderHour
	}
	s := &Server{sess: sess, opts: opts}
	s.setupEcho()
	return s
}

func (s *Server) setupEcho() {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	e.Use(middleware.Recover())
	e.Use(middleware.RequestIDWithConfig(middleware.RequestIDConfig{
		Generator: uuid.NewString,
	}))
	e.Use(requestLogger)
	e.Use(loopbackOnly)
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins: []string{"http://localhost", "http://127.0.0.1"},
	}))

	// Health check
	e.GET("/health", s.handleHealth)

	// API v1
	api := e.Group("/api/v1")

	api.GET("/tasks", s.handleListTasks)
	api.POST("/tasks", s.handleCreateTask)
	api.PUT("/tasks/:id", s.handleUpdateTask)
	api.DELETE("/tasks/:id", s.handleDeleteTask)
	api.POST("/tasks/:id/toggle", s.handleToggleTask)
	api.POST("/tasks/:id/time", s.handleAccrueTime)
	api.POST("/reorder", s.handleReorder)
	api.POST("/shift", s.handleShift)

	api.GET("/views/date", s.handleViewByDate)
	api.GET("/views/subject", s.handleViewBySubject)
	api.GET("/streak", s.handleStreak)
	api.GET("/settings", s.handleGetSettings)
	api.PUT("/settings", s.handleUpdateSettings)

	api.GET("/export", s.handleExport)
	api.POST("/import", s.handleImport)
	api.GET("/calendar.ics", s.handleCalendar)

	s.echo = e
}

// Router returns the HTTP handler
func (s *Server) Router() http.Handler {
	return s.echo
}

// Start starts the server
func (s *Server) Start(addr string) error {
	return s.echo.Start(addr)
}

// Shutdown stops accepting requests and waits for in-flight ones
func (s *Server) Shutdown(ctx context.Context) error {
	return s.echo.Shutdown(ctx)
}

func (s *Server) handleHealth(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
}

func errorJSON(c echo.Context, status int, msg string) error {
	return c.JSON(status, map[string]string{"error": msg})
}
