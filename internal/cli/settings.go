package cli

import (
	"fmt"
	"strings"

	"github.com/existflow/examprep/internal/model"
	"github.com/existflow/examprep/internal/views"
	"github.com/spf13/cobra"
)

var streakCmd = &cobra.Command{
	Use:   "streak",
	Short: "Show the daily streak and progress",
	Args:  cobra.NoArgs,
	RunE:  runStreak,
}

var themeCmd = &cobra.Command{
	Use:   "theme [name]",
	Short: "Show or set the color theme",
	Long: `Show the current theme, or set it to one of: light, dark, cream, midnight.

Examples:
  examprep theme
  examprep theme midnight`,
	Args: cobra.MaximumNArgs(1),
	RunE: runTheme,
}

var userCmd = &cobra.Command{
	Use:   "user [name]",
	Short: "Show or set your name",
	Args:  cobra.ArbitraryArgs,
	RunE:  runUser,
}

func runStreak(cmd *cobra.Command, args []string) error {
	sess, err := openSession(cmd.Context())
	if err != nil {
		return err
	}
	defer sess.Close()

	st := sess.Streak()
	fmt.Printf("🔥 %d day streak", st.Count)
	if st.LastDate != "" {
		fmt.Printf(" (last completion %s)", st.LastDate)
	}
	fmt.Println()

	tasks := sess.Tasks()
	progress := views.SubjectProgress(tasks, sess.IsCompleted)
	for _, subject := range views.SortedSubjects(tasks) {
		p := progress[subject]
		fmt.Printf("  %-5s %3d%%  %d/%d\n", subject, p.Percent, p.Completed, p.Total)
	}
	return nil
}

func runTheme(cmd *cobra.Command, args []string) error {
	sess, err := openSession(cmd.Context())
	if err != nil {
		return err
	}
	defer sess.Close()

	if len(args) == 0 {
		names := make([]string, 0, len(model.Themes()))
		for _, th := range model.Themes() {
			names = append(names, string(th))
		}
		fmt.Printf("Theme: %s (available: %s)\n", sess.Theme(), strings.Join(names, ", "))
		return nil
	}

	theme, err := model.ParseTheme(args[0])
	if err != nil {
		return err
	}
	if err := sess.SetTheme(cmd.Context(), theme); err != nil {
		return err
	}
	fmt.Printf("✓ Theme set to %s\n", theme)
	return nil
}

func runUser(cmd *cobra.Command, args []string) error {
	sess, err := openSession(cmd.Context())
	if err != nil {
		return err
	}
	defer sess.Close()

	if len(args) == 0 {
		if sess.NeedsOnboarding() {
			fmt.Println("No name set yet. Set one with: examprep user <name>")
			return nil
		}
		fmt.Printf("Hello, %s!\n", sess.Username())
		return nil
	}

	if err := sess.SetUsername(cmd.Context(), joinArgs(args)); err != nil {
		return err
	}
	fmt.Printf("✓ Welcome, %s!\n", sess.Username())
	return nil
}
