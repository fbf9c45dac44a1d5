package cli

import (
	"fmt"
	"strings"
	"time"

	"github.com/existflow/examprep/internal/app"
	"github.com/existflow/examprep/internal/focus"
	"github.com/existflow/examprep/internal/model"
	"github.com/existflow/examprep/internal/views"
	"github.com/spf13/cobra"
)

var listCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List tasks",
	Long: `List the schedule grouped by day or by subject.

Examples:
  examprep list
  examprep list --today
  examprep list --day 2025-06-03
  examprep list --by subject`,
	RunE: runList,
}

var (
	listBy    string
	listDay   string
	listToday bool
)

func init() {
	listCmd.Flags().StringVar(&listBy, "by", "date", "Group by: date or subject")
	listCmd.Flags().StringVar(&listDay, "day", "", "Show a single day (today, +N, YYYY-MM-DD)")
	listCmd.Flags().BoolVarP(&listToday, "today", "t", false, "Show today's tasks")
}

func runList(cmd *cobra.Command, args []string) error {
	sess, err := openSession(cmd.Context())
	if err != nil {
		return err
	}
	defer sess.Close()

	tasks := sess.Tasks()
	today := sess.Today()

	day := listDay
	if listToday {
		day = "today"
	}
	if day != "" {
		date, err := model.ResolveDate(day, time.Now())
		if err != nil {
			return err
		}
		printGroup(sess, formatDay(date, today), views.SelectedDay(tasks, date), today)
		printProgress(sess, tasks)
		return nil
	}

	if len(tasks) == 0 {
		fmt.Println("No tasks found. Add one with: examprep add MATH \"Your task\"")
		return nil
	}

	switch listBy {
	case "subject":
		groups := views.BySubject(tasks)
		for _, subject := range views.SortedSubjects(tasks) {
			printGroup(sess, subject, groups[subject], today)
		}
	case "date", "":
		for _, g := range views.DateGroups(tasks) {
			printGroup(sess, formatDay(g.Date, today), g.Tasks, today)
		}
	default:
		return fmt.Errorf("unknown grouping %q (use date or subject)", listBy)
	}

	printProgress(sess, tasks)
	return nil
}

func formatDay(date, today string) string {
	label := date
	if t, err := model.ParseDate(date); err == nil {
		label = t.Format("Mon Jan 2, 2006")
	}
	switch {
	case date == today:
		label += " (today)"
	case date < today:
		label += " (past)"
	}
	return label
}

func printGroup(sess *app.Session, title string, tasks []model.Task, today string) {
	pending := 0
	for _, t := range tasks {
		if !sess.IsCompleted(t.ID) {
			pending++
		}
	}

	fmt.Printf("\n📅 %s (%d pending)\n", title, pending)
	fmt.Println(strings.Repeat("─", 60))

	if len(tasks) == 0 {
		fmt.Println("  Nothing planned.")
	}
	for _, t := range tasks {
		printTask(t, sess.IsCompleted(t.ID), today)
	}
}

func printTask(t model.Task, done bool, today string) {
	// Status icon
	icon := "[ ]"
	if done {
		icon = "[x]"
	} else if t.IsOverdue(today) {
		icon = "[!]"
	}

	// Truncate content if too long
	text := t.Text
	if len([]rune(text)) > 40 {
		text = string([]rune(text)[:37]) + "..."
	}

	spent := ""
	if t.TimeSpent > 0 {
		spent = focus.FormatSpent(t.TimeSpent)
	}

	fmt.Printf("  %s  #%-4d  %-5s  %-40s  %s\n", icon, t.ID, t.Subject, text, spent)
}

func printProgress(sess *app.Session, tasks []model.Task) {
	stats := views.Progress(tasks, sess.IsCompleted)
	st := sess.Streak()
	fmt.Printf("\n%d/%d done (%d%%) · 🔥 %d day streak · ⏱ %s focused\n\n",
		stats.Completed, stats.Total, stats.Percent, st.Count, focus.FormatSpent(stats.TimeSpent))
}
