package server

import (
	"net"
	"net/http"
	"time"

	"github.com/existflow/examprep/internal/logger"
	"github.com/labstack/echo/v4"
)

// requestLogger logs every request with its id, status and duration
func requestLogger(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		start := time.Now()
		req := c.Request()

		// Process request
		err := next(c)
		if err != nil {
			c.Error(err)
		}

		res := c.Response()
		logger.Info("HTTP Request",
			logger.F("id", res.Header().Get(echo.HeaderXRequestID)),
			logger.F("method", req.Method),
			logger.F("uri", req.RequestURI),
			logger.F("status", res.Status),
			logger.F("size", res.Size),
			logger.F("duration", time.Since(start).String()))
		return nil
	}
}

// loopbackOnly rejects requests that don't come from this machine
func loopbackOnly(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		host, _, err := net.SplitHostPort(c.Request().RemoteAddr)
		if err != nil {
			host = c.Request().RemoteAddr
		}
		ip := net.ParseIP(host)
		if ip == nil || !ip.IsLoopback() {
			logger.Warn("Rejected non-loopback request", logger.F("remote", c.Request().RemoteAddr))
			return errorJSON(c, http.StatusForbidden, "only local requests are allowed")
		}
		return next(c)
	}
}
