package server

import (
	"net/http"

	"github.com/existflow/examprep/internal/model"
	"github.com/existflow/examprep/internal/views"
	"github.com/labstack/echo/v4"
)

// DateView is one day of the schedule with progress
type DateView struct {
	Date  string         `json:"date"`
	Stats views.Stats    `json:"stats"`
	Tasks []TaskResponse `json:"tasks"`
}

// SubjectView is one subject with progress and time spent
type SubjectView struct {
	Subject string         `json:"subject"`
	Stats   views.Stats    `json:"stats"`
	Tasks   []TaskResponse `json:"tasks"`
}

// SettingsRequest changes preferences; empty fields are left alone
type SettingsRequest struct {
	Theme    string `json:"theme"`
	Username string `json:"username"`
}

func (s *Server) handleViewByDate(c echo.Context) error {
	groups := views.DateGroups(s.sess.Tasks())
	out := make([]DateView, 0, len(groups))
	for _, g := range groups {
		out = append(out, DateView{
			Date:  g.Date,
			Stats: views.Progress(g.Tasks, s.sess.IsCompleted),
			Tasks: s.taskResponses(g.Tasks),
		})
	}
	return c.JSON(http.StatusOK, out)
}

func (s *Server) handleViewBySubject(c echo.Context) error {
	tasks := s.sess.Tasks()
	groups := views.BySubject(tasks)
	subjects := views.SortedSubjects(tasks)
	out := make([]SubjectView, 0, len(subjects))
	for _, subject := range subjects {
		out = append(out, SubjectView{
			Subject: subject,
			Stats:   views.Progress(groups[subject], s.sess.IsCompleted),
			Tasks:   s.taskResponses(groups[subject]),
		})
	}
	return c.JSON(http.StatusOK, out)
}

func (s *Server) handleStreak(c echo.Context) error {
	st := s.sess.Streak()
	return c.JSON(http.StatusOK, map[string]interface{}{
		"count":    st.Count,
		"lastDate": st.LastDate,
		"progress": views.Progress(s.sess.Tasks(), s.sess.IsCompleted),
	})
}

func (s *Server) handleGetSettings(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{
		"theme":    string(s.sess.Theme()),
		"username": s.sess.Username(),
	})
}

func (s *Server) handleUpdateSettings(c echo.Context) error {
	var req SettingsRequest
	if err := c.Bind(&req); err != nil {
		return errorJSON(c, http.StatusBadRequest, "invalid request")
	}

	ctx := c.Request().Context()
	if req.Theme != "" {
		theme, err := model.ParseTheme(req.Theme)
		if err != nil {
			return errorJSON(c, http.StatusBadRequest, err.Error())
		}
		if err := s.sess.SetTheme(ctx, theme); err != nil {
			return errorJSON(c, http.StatusBadRequest, err.Error())
		}
	}
	if req.Username != "" {
		if err := s.sess.SetUsername(ctx, req.Username); err != nil {
			return errorJSON(c, http.StatusBadRequest, err.Error())
		}
	}
	return s.handleGetSettings(c)
}
