package cli

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/existflow/examprep/internal/store"
	"github.com/spf13/cobra"
)

var shiftCmd = &cobra.Command{
	Use:   "shift [days]",
	Short: "Shift the whole schedule",
	Long: `Move every task by a number of days, or anchor the schedule so its
first day is today.

Examples:
  examprep shift 5
  examprep shift -- -2
  examprep shift --today`,
	Args: cobra.MaximumNArgs(1),
	RunE: runShift,
}

var shiftToday bool

func init() {
	shiftCmd.Flags().BoolVar(&shiftToday, "today", false, "Start the schedule today")
}

func runShift(cmd *cobra.Command, args []string) error {
	if shiftToday == (len(args) == 1) {
		return fmt.Errorf("give either a number of days or --today")
	}

	sess, err := openSession(cmd.Context())
	if err != nil {
		return err
	}
	defer sess.Close()

	if shiftToday {
		delta, err := sess.AnchorToToday(cmd.Context())
		switch {
		case errors.Is(err, store.ErrAlreadyAnchored):
			fmt.Println("✓ Schedule already starts today")
			return nil
		case errors.Is(err, store.ErrEmptySchedule) || delta == 0:
			return err
		case err != nil:
			fmt.Printf("⚠️  Some tasks kept their date: %v\n", err)
		}
		fmt.Printf("✓ Schedule shifted by %+d day(s), starts %s\n", delta, sess.Today())
		return nil
	}

	days, err := strconv.Atoi(args[0])
	if err != nil {
		return fmt.Errorf("invalid number of days: %s", args[0])
	}
	if days == 0 {
		return nil
	}
	if err := sess.ShiftAllDates(cmd.Context(), days); err != nil {
		fmt.Printf("⚠️  Some tasks kept their date: %v\n", err)
	}
	fmt.Printf("✓ Schedule shifted by %+d day(s)\n", days)
	return nil
}
