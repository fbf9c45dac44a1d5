package server

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/existflow/examprep/internal/model"
	"github.com/existflow/examprep/internal/store"
	"github.com/existflow/examprep/internal/views"
	"github.com/labstack/echo/v4"
)

// TaskRequest is the body of create and update. On update, empty fields
// keep their current value.
type TaskRequest struct {
	Date    string `json:"date"`
	Subject string `json:"subject"`
	Text    string `json:"text"`
}

// TaskResponse is a task with its completion state
type TaskResponse struct {
	model.Task
	Done bool `json:"done"`
}

// TimeRequest credits focus time to a task
type TimeRequest struct {
	Seconds int64 `json:"seconds"`
}

// ReorderRequest moves a task within or across date groups
type ReorderRequest struct {
	GroupKey         string `json:"groupKey"`
	SourceIndex      int    `json:"sourceIndex"`
	DestinationIndex int    `json:"destinationIndex"`
	TargetGroupKey   string `json:"targetGroupKey"`
}

// ShiftRequest shifts the schedule by Days, or anchors it to today
type ShiftRequest struct {
	Days  int  `json:"days"`
	Today bool `json:"today"`
}

func (s *Server) taskResponses(tasks []model.Task) []TaskResponse {
	out := make([]TaskResponse, 0, len(tasks))
	for _, t := range tasks {
		out = append(out, TaskResponse{Task: t, Done: s.sess.IsCompleted(t.ID)})
	}
	return out
}

func taskID(c echo.Context) (int64, error) {
	return strconv.ParseInt(c.Param("id"), 10, 64)
}

// handleListTasks returns every task, or one day's with ?day=
func (s *Server) handleListTasks(c echo.Context) error {
	tasks := s.sess.Tasks()
	if day := c.QueryParam("day"); day != "" {
		date, err := model.ResolveDate(day, s.sess.Now())
		if err != nil {
			return errorJSON(c, http.StatusBadRequest, err.Error())
		}
		tasks = views.SelectedDay(tasks, date)
	}
	return c.JSON(http.StatusOK, s.taskResponses(tasks))
}

func (s *Server) handleCreateTask(c echo.Context) error {
	var req TaskRequest
	if err := c.Bind(&req); err != nil {
		return errorJSON(c, http.StatusBadRequest, "invalid request")
	}

	fields, err := s.resolveFields(req, model.TaskFields{Date: s.sess.Today()})
	if err != nil {
		return errorJSON(c, http.StatusBadRequest, err.Error())
	}
	if fields.Subject == "" || fields.Text == "" {
		return errorJSON(c, http.StatusBadRequest, "subject and text are required")
	}

	t := s.sess.CreateTask(c.Request().Context(), fields)
	return c.JSON(http.StatusCreated, TaskResponse{Task: t})
}

func (s *Server) handleUpdateTask(c echo.Context) error {
	id, err := taskID(c)
	if err != nil {
		return errorJSON(c, http.StatusBadRequest, "invalid task id")
	}
	current, ok := s.sess.Task(id)
	if !ok {
		return errorJSON(c, http.StatusNotFound, "task not found")
	}

	var req TaskRequest
	if err := c.Bind(&req); err != nil {
		return errorJSON(c, http.StatusBadRequest, "invalid request")
	}
	fields, err := s.resolveFields(req, current.Fields())
	if err != nil {
		return errorJSON(c, http.StatusBadRequest, err.Error())
	}

	if !s.sess.UpdateTask(c.Request().Context(), id, fields) {
		return errorJSON(c, http.StatusNotFound, "task not found")
	}
	updated, _ := s.sess.Task(id)
	return c.JSON(http.StatusOK, TaskResponse{Task: updated, Done: s.sess.IsCompleted(id)})
}

// resolveFields overlays the non-empty request fields on base
func (s *Server) resolveFields(req TaskRequest, base model.TaskFields) (model.TaskFields, error) {
	if req.Date != "" {
		date, err := model.ResolveDate(req.Date, s.sess.Now())
		if err != nil {
			return base, err
		}
		base.Date = date
	}
	if subject := strings.TrimSpace(req.Subject); subject != "" {
		base.Subject = strings.ToUpper(subject)
	}
	if text := strings.TrimSpace(req.Text); text != "" {
		base.Text = text
	}
	return base, nil
}

func (s *Server) handleDeleteTask(c echo.Context) error {
	id, err := taskID(c)
	if err != nil {
		return errorJSON(c, http.StatusBadRequest, "invalid task id")
	}
	if !s.sess.DeleteTask(c.Request().Context(), id) {
		return errorJSON(c, http.StatusNotFound, "task not found")
	}
	return c.NoContent(http.StatusNoContent)
}

func (s *Server) handleToggleTask(c echo.Context) error {
	id, err := taskID(c)
	if err != nil {
		return errorJSON(c, http.StatusBadRequest, "invalid task id")
	}
	if _, ok := s.sess.Task(id); !ok {
		return errorJSON(c, http.StatusNotFound, "task not found")
	}

	done := s.sess.ToggleComplete(c.Request().Context(), id)
	return c.JSON(http.StatusOK, map[string]interface{}{
		"id":     id,
		"done":   done,
		"streak": s.sess.Streak(),
	})
}

func (s *Server) handleAccrueTime(c echo.Context) error {
	id, err := taskID(c)
	if err != nil {
		return errorJSON(c, http.StatusBadRequest, "invalid task id")
	}
	var req TimeRequest
	if err := c.Bind(&req); err != nil || req.Seconds <= 0 {
		return errorJSON(c, http.StatusBadRequest, "seconds must be positive")
	}
	if !s.sess.AccrueTime(c.Request().Context(), id, req.Seconds) {
		return errorJSON(c, http.StatusNotFound, "task not found")
	}
	t, _ := s.sess.Task(id)
	return c.JSON(http.StatusOK, TaskResponse{Task: t, Done: s.sess.IsCompleted(id)})
}

func (s *Server) handleReorder(c echo.Context) error {
	var req ReorderRequest
	if err := c.Bind(&req); err != nil {
		return errorJSON(c, http.StatusBadRequest, "invalid request")
	}
	if req.TargetGroupKey == "" {
		req.TargetGroupKey = req.GroupKey
	}

	err := s.sess.Reorder(c.Request().Context(), req.GroupKey, req.SourceIndex, req.DestinationIndex, req.TargetGroupKey)
	switch {
	case errors.Is(err, store.ErrIndexOutOfRange):
		return errorJSON(c, http.StatusNotFound, err.Error())
	case errors.Is(err, model.ErrInvalidDate):
		return errorJSON(c, http.StatusBadRequest, err.Error())
	case err != nil:
		return errorJSON(c, http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, views.DateGroups(s.sess.Tasks()))
}

func (s *Server) handleShift(c echo.Context) error {
	var req ShiftRequest
	if err := c.Bind(&req); err != nil {
		return errorJSON(c, http.StatusBadRequest, "invalid request")
	}

	ctx := c.Request().Context()
	days := req.Days
	var err error
	if req.Today {
		days, err = s.sess.AnchorToToday(ctx)
	} else if days != 0 {
		err = s.sess.ShiftAllDates(ctx, days)
	}
	switch {
	case errors.Is(err, store.ErrEmptySchedule):
		return errorJSON(c, http.StatusConflict, err.Error())
	case errors.Is(err, store.ErrAlreadyAnchored):
		err = nil
	}

	resp := map[string]interface{}{"days": days}
	if err != nil {
		resp["warning"] = err.Error()
	}
	return c.JSON(http.StatusOK, resp)
}
