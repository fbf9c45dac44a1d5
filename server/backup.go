package server

import (
	"fmt"
	"io"
	"net/http"

	"github.com/existflow/examprep/internal/calendar"
	"github.com/existflow/examprep/internal/persist"
	"github.com/labstack/echo/v4"
)

// maxImportSize bounds the body of an import request
const maxImportSize = 10 << 20

// ImportResponse reports what an import applied and skipped
type ImportResponse struct {
	Status   string            `json:"status"`
	Applied  []string          `json:"applied"`
	Rejected map[string]string `json:"rejected,omitempty"`
}

func attachment(c echo.Context, name string) {
	c.Response().Header().Set(echo.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%q", name))
}

func (s *Server) handleExport(c echo.Context) error {
	data, err := s.sess.Export()
	if err != nil {
		return errorJSON(c, http.StatusInternalServerError, err.Error())
	}
	attachment(c, persist.SnapshotFileName(s.sess.Now()))
	return c.Blob(http.StatusOK, echo.MIMEApplicationJSON, data)
}

func (s *Server) handleImport(c echo.Context) error {
	doc, err := io.ReadAll(io.LimitReader(c.Request().Body, maxImportSize))
	if err != nil {
		return errorJSON(c, http.StatusBadRequest, "failed to read body")
	}

	res, err := s.sess.Import(c.Request().Context(), doc)
	resp := ImportResponse{
		Status:   res.Status.String(),
		Applied:  res.Applied,
		Rejected: res.Rejected,
	}
	if resp.Applied == nil {
		resp.Applied = []string{}
	}

	switch {
	case err != nil && res.Status == persist.ImportInvalid:
		return errorJSON(c, http.StatusBadRequest, err.Error())
	case err != nil:
		return errorJSON(c, http.StatusInternalServerError, err.Error())
	case res.Status == persist.ImportInvalid:
		return c.JSON(http.StatusUnprocessableEntity, resp)
	}
	return c.JSON(http.StatusOK, resp)
}

func (s *Server) handleCalendar(c echo.Context) error {
	opts := calendar.DefaultOptions()
	opts.ReminderHour = s.opts.ReminderHour
	ics := calendar.Build(s.sess.Tasks(), s.sess.Now(), opts)
	attachment(c, calendar.FileName)
	return c.Blob(http.StatusOK, "text/calendar; charset=utf-8", []byte(ics))
}
