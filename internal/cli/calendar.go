package cli

import (
	"fmt"
	"os"

	"github.com/existflow/examprep/internal/calendar"
	"github.com/spf13/cobra"
)

var calendarCmd = &cobra.Command{
	Use:     "calendar",
	Aliases: []string{"ics"},
	Short:   "Export the schedule as an iCalendar file",
	Long: `Write one all-day event per task, each with a reminder, so the plan can
be imported into any calendar app.

Examples:
  examprep calendar
  examprep calendar -o plan.ics`,
	Args: cobra.NoArgs,
	RunE: runCalendar,
}

var calendarOut string

func init() {
	calendarCmd.Flags().StringVarP(&calendarOut, "output", "o", calendar.FileName, "Output file, - for stdout")
}

func runCalendar(cmd *cobra.Command, args []string) error {
	sess, err := openSession(cmd.Context())
	if err != nil {
		return err
	}
	defer sess.Close()

	opts := calendar.DefaultOptions()
	opts.ReminderHour = cfg.ReminderHour
	ics := calendar.Build(sess.Tasks(), sess.Now(), opts)

	if calendarOut == "-" {
		fmt.Print(ics)
		return nil
	}
	if err := os.WriteFile(calendarOut, []byte(ics), 0644); err != nil {
		return fmt.Errorf("failed to write calendar: %w", err)
	}
	fmt.Printf("✓ Calendar saved to %s\n", calendarOut)
	return nil
}
