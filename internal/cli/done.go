package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

var doneCmd = &cobra.Command{
	Use:   "done [task-id]",
	Short: "Toggle a task done",
	Long: `Mark a task as completed, or reopen it if it is already done.

The first completion of a day extends the streak.

Examples:
  examprep done 3
  examprep done 3 --undo`,
	Args: cobra.ExactArgs(1),
	RunE: runDone,
}

var doneUndo bool

func init() {
	doneCmd.Flags().BoolVar(&doneUndo, "undo", false, "Only reopen, never complete")
}

func runDone(cmd *cobra.Command, args []string) error {
	sess, err := openSession(cmd.Context())
	if err != nil {
		return err
	}
	defer sess.Close()

	task, err := lookupTask(sess, args[0])
	if err != nil {
		return err
	}

	if doneUndo && !sess.IsCompleted(task.ID) {
		fmt.Printf("○ Already open: \"%s\"\n", task.Text)
		return nil
	}

	before := sess.Streak().Count
	if sess.ToggleComplete(cmd.Context(), task.ID) {
		fmt.Printf("✓ Completed: \"%s\"\n", task.Text)
		if st := sess.Streak(); st.Count != before {
			fmt.Printf("🔥 Streak: %d day(s)\n", st.Count)
		}
	} else {
		fmt.Printf("○ Reopened: \"%s\"\n", task.Text)
	}
	return nil
}
