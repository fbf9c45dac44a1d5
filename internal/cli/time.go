package cli

import (
	"fmt"
	"time"

	"github.com/existflow/examprep/internal/focus"
	"github.com/spf13/cobra"
)

var timeCmd = &cobra.Command{
	Use:   "time [task-id] [duration]",
	Short: "Log study time on a task",
	Long: `Add time spent on a task, as if tracked by the focus timer.

Examples:
  examprep time 3 25m
  examprep time 3 1h30m`,
	Args: cobra.ExactArgs(2),
	RunE: runTime,
}

func runTime(cmd *cobra.Command, args []string) error {
	d, err := time.ParseDuration(args[1])
	if err != nil || d <= 0 {
		return fmt.Errorf("invalid duration: %s", args[1])
	}

	sess, err := openSession(cmd.Context())
	if err != nil {
		return err
	}
	defer sess.Close()

	task, err := lookupTask(sess, args[0])
	if err != nil {
		return err
	}

	sess.AccrueTime(cmd.Context(), task.ID, int64(d/time.Second))
	updated, _ := sess.Task(task.ID)
	fmt.Printf("⏱  #%d \"%s\": %s total\n", task.ID, task.Text, focus.FormatSpent(updated.TimeSpent))
	return nil
}
