package cli

import (
	"fmt"
	"strings"
	"time"

	"github.com/existflow/examprep/internal/model"
	"github.com/spf13/cobra"
)

var addCmd = &cobra.Command{
	Use:   "add [subject] [text]",
	Short: "Add a new task",
	Long: `Add a task to the schedule.

Examples:
  examprep add MATH "Logarithms: 10 problems"
  examprep add PHYS "Optics review" -d tomorrow
  examprep add ENG "Essay outline" --date 2025-06-04`,
	Args: cobra.MinimumNArgs(2),
	RunE: runAdd,
}

var addDate string

func init() {
	addCmd.Flags().StringVarP(&addDate, "date", "d", "today", "Day of the task (today, tomorrow, +N, YYYY-MM-DD)")
}

func runAdd(cmd *cobra.Command, args []string) error {
	date, err := model.ResolveDate(addDate, time.Now())
	if err != nil {
		return err
	}

	subject := strings.ToUpper(strings.TrimSpace(args[0]))
	text := joinArgs(args[1:])
	if text == "" {
		return fmt.Errorf("task text is required")
	}

	sess, err := openSession(cmd.Context())
	if err != nil {
		return err
	}
	defer sess.Close()

	t := sess.CreateTask(cmd.Context(), model.TaskFields{Date: date, Subject: subject, Text: text})
	fmt.Printf("✓ Added #%d on %s: [%s] %s\n", t.ID, t.Date, t.Subject, t.Text)
	return nil
}
