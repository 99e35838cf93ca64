// Package serve exposes the message channel over HTTP for the in-page layer.
package serve

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/dtnitsch/clickbait-detector/models"
	"github.com/dtnitsch/clickbait-detector/pkg/db"
	"github.com/dtnitsch/clickbait-detector/pkg/messaging"
)

// StatsSource reports check history totals for /api/status.
type StatsSource interface {
	Stats() (db.CheckStats, error)
}

// Server routes HTTP requests to the message router.
type Server struct {
	echo   *echo.Echo
	router *messaging.Router
	stats  StatsSource
	logger *slog.Logger
}

// StatusResponse is the body of GET /api/status.
type StatusResponse struct {
	models.Response
	Stats *db.CheckStats `json:"stats,omitempty"`
}

type errorResponse struct {
	Error     string `json:"error"`
	RequestID string `json:"requestId,omitempty"`
}

// NewServer builds the echo instance and registers every route. stats may be nil.
func NewServer(router *messaging.Router, stats StatsSource, logger *slog.Logger) *Server {
	s := &Server{
		echo:   echo.New(),
		router: router,
		stats:  stats,
		logger: logger,
	}

	e := s.echo
	e.HideBanner = true
	e.HidePort = true

	e.Use(middleware.RequestIDWithConfig(middleware.RequestIDConfig{
		Generator: uuid.NewString,
	}))
	e.Use(middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogStatus:    true,
		LogURI:       true,
		LogError:     true,
		LogMethod:    true,
		LogLatency:   true,
		LogRequestID: true,
		HandleError:  true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			if v.Error == nil {
				logger.Info("Request completed",
					"method", v.Method,
					"uri", v.URI,
					"status", v.Status,
					"request_id", v.RequestID,
					"latency_ms", v.Latency.Milliseconds())
			} else {
				logger.Error("Request failed",
					"method", v.Method,
					"uri", v.URI,
					"status", v.Status,
					"request_id", v.RequestID,
					"latency_ms", v.Latency.Milliseconds(),
					"error", v.Error.Error())
			}
			return nil
		},
	}))
	e.Use(middleware.Recover())

	e.POST("/api/message", s.handleMessage)
	e.GET("/api/status", s.handleStatus)
	e.GET("/healthz", s.handleHealth)
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	return s
}

// Handler returns the server as an http.Handler.
func (s *Server) Handler() http.Handler {
	return s.echo
}

// Start listens on addr until Shutdown. It returns http.ErrServerClosed
// after a graceful shutdown.
func (s *Server) Start(addr string) error {
	return s.echo.Start(addr)
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.echo.Shutdown(ctx)
}

func (s *Server) handleMessage(c echo.Context) error {
	requestID := requestIDOf(c)

	var msg models.Message
	if err := c.Bind(&msg); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid message body", RequestID: requestID})
	}
	if msg.Action == "" {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "action is required", RequestID: requestID})
	}

	resp, err := s.router.Dispatch(c.Request().Context(), msg)
	switch {
	case errors.Is(err, messaging.ErrUnknownAction):
		return c.JSON(http.StatusNotFound, errorResponse{Error: err.Error(), RequestID: requestID})
	case errors.Is(err, messaging.ErrBadMessage):
		return c.JSON(http.StatusBadRequest, errorResponse{Error: err.Error(), RequestID: requestID})
	case err != nil:
		s.logger.Error("Message handler failed", "action", msg.Action, "request_id", requestID, "error", err)
		return c.JSON(http.StatusInternalServerError, errorResponse{Error: err.Error(), RequestID: requestID})
	}

	resp.RequestID = requestID
	return c.JSON(http.StatusOK, resp)
}

func (s *Server) handleStatus(c echo.Context) error {
	resp, err := s.router.Dispatch(c.Request().Context(), models.Message{Action: models.ActionGetStatus})
	if err != nil {
		return c.JSON(http.StatusInternalServerError, errorResponse{Error: err.Error(), RequestID: requestIDOf(c)})
	}
	resp.RequestID = requestIDOf(c)

	status := StatusResponse{Response: resp}
	if s.stats != nil {
		stats, err := s.stats.Stats()
		if err != nil {
			s.logger.Warn("Failed to load check stats", "error", err)
		} else {
			status.Stats = &stats
		}
	}
	return c.JSON(http.StatusOK, status)
}

func (s *Server) handleHealth(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{
		"status": "healthy",
	})
}

func requestIDOf(c echo.Context) string {
	return c.Response().Header().Get(echo.HeaderXRequestID)
}
