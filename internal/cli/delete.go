package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var deleteCmd = &cobra.Command{
	Use:     "delete [task-id]",
	Aliases: []string{"rm"},
	Short:   "Delete a task",
	Long: `Delete a task by its ID.

Examples:
  examprep delete 7
  examprep rm 7 --yes`,
	Args: cobra.ExactArgs(1),
	RunE: runDelete,
}

var deleteYes bool

func init() {
	deleteCmd.Flags().BoolVarP(&deleteYes, "yes", "y", false, "Do not ask for confirmation")
}

func runDelete(cmd *cobra.Command, args []string) error {
	sess, err := openSession(cmd.Context())
	if err != nil {
		return err
	}
	defer sess.Close()

	task, err := lookupTask(sess, args[0])
	if err != nil {
		return err
	}

	if cfg.ConfirmDelete && !deleteYes {
		fmt.Printf("About to delete: \"%s\" (#%d, %s)\n", task.Text, task.ID, task.Date)
		if !confirm(os.Stdin, "Are you sure?") {
			fmt.Println("Cancelled.")
			return nil
		}
	}

	sess.DeleteTask(cmd.Context(), task.ID)
	fmt.Printf("🗑️  Deleted: \"%s\"\n", task.Text)
	return nil
}
