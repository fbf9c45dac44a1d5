package cli

import (
	"fmt"
	"strings"
	"time"

	"github.com/existflow/examprep/internal/model"
	"github.com/spf13/cobra"
)

var editCmd = &cobra.Command{
	Use:   "edit [task-id]",
	Short: "Edit a task",
	Long: `Change the day, subject or text of a task. Unset flags keep their value.

Examples:
  examprep edit 4 --text "Optics: 20 problems"
  examprep edit 4 --date +1 --subject PHYS`,
	Args: cobra.ExactArgs(1),
	RunE: runEdit,
}

var (
	editDate    string
	editSubject string
	editText    string
)

func init() {
	editCmd.Flags().StringVarP(&editDate, "date", "d", "", "New day (today, tomorrow, +N, YYYY-MM-DD)")
	editCmd.Flags().StringVarP(&editSubject, "subject", "s", "", "New subject")
	editCmd.Flags().StringVarP(&editText, "text", "t", "", "New text")
}

func runEdit(cmd *cobra.Command, args []string) error {
	if editDate == "" && editSubject == "" && editText == "" {
		return fmt.Errorf("nothing to change: use --date, --subject or --text")
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

	fields := task.Fields()
	if editDate != "" {
		if fields.Date, err = model.ResolveDate(editDate, time.Now()); err != nil {
			return err
		}
	}
	if editSubject != "" {
		fields.Subject = strings.ToUpper(strings.TrimSpace(editSubject))
	}
	if editText != "" {
		fields.Text = strings.TrimSpace(editText)
	}

	sess.UpdateTask(cmd.Context(), task.ID, fields)
	fmt.Printf("✓ Updated #%d: %s [%s] %s\n", task.ID, fields.Date, fields.Subject, fields.Text)
	return nil
}
