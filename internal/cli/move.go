package cli

import (
	"fmt"
	"time"

	"github.com/existflow/examprep/internal/model"
	"github.com/existflow/examprep/internal/views"
	"github.com/spf13/cobra"
)

var moveCmd = &cobra.Command{
	Use:   "move [task-id] [day]",
	Short: "Move a task within or across days",
	Long: `Move a task to another position of its day, or to another day.
Without --pos the task goes to the end of the target day.

Examples:
  examprep move 5 tomorrow
  examprep move 5 2025-06-06 --pos 0
  examprep move 5 --pos 0`,
	Args: cobra.RangeArgs(1, 2),
	RunE: runMove,
}

var movePos int

func init() {
	moveCmd.Flags().IntVarP(&movePos, "pos", "p", -1, "Position within the target day, 0 is first")
}

func runMove(cmd *cobra.Command, args []string) error {
	if len(args) == 1 && movePos < 0 {
		return fmt.Errorf("give a target day, a --pos, or both")
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

	target := task.Date
	if len(args) == 2 {
		if target, err = model.ResolveDate(args[1], time.Now()); err != nil {
			return err
		}
	}

	tasks := sess.Tasks()
	source := views.SelectedDay(tasks, task.Date)
	srcIdx := -1
	for i, t := range source {
		if t.ID == task.ID {
			srcIdx = i
			break
		}
	}

	dest := movePos
	if dest < 0 {
		dest = len(views.SelectedDay(tasks, target))
	}

	if err := sess.Reorder(cmd.Context(), task.Date, srcIdx, dest, target); err != nil {
		return fmt.Errorf("failed to move task: %w", err)
	}
	fmt.Printf("✓ Moved #%d to %s\n", task.ID, target)
	return nil
}
