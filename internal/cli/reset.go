package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Erase all data",
	Long: `Erase every task, completion, the streak and preferences, and start
over from the default schedule.

Without a terminal on stdin, --force is required.`,
	Args: cobra.NoArgs,
	RunE: runReset,
}

var resetForce bool

func init() {
	resetCmd.Flags().BoolVarP(&resetForce, "force", "f", false, "Do not ask for confirmation")
}

func runReset(cmd *cobra.Command, args []string) error {
	if !resetForce {
		if !isInteractive() {
			return fmt.Errorf("refusing to reset without a terminal; use --force")
		}
		if !confirm(os.Stdin, "Erase all data? This cannot be undone.") {
			fmt.Println("Aborted.")
			return nil
		}
	}

	sess, err := openSession(cmd.Context())
	if err != nil {
		return err
	}
	defer sess.Close()

	fmt.Println("🧹 Clearing data...")
	if err := sess.Reset(cmd.Context()); err != nil {
		return fmt.Errorf("failed to reset: %w", err)
	}
	fmt.Println("Data cleared.")
	return nil
}
