package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/existflow/examprep/internal/app"
	"github.com/existflow/examprep/internal/db"
	"github.com/existflow/examprep/internal/model"
	"github.com/existflow/examprep/internal/streak"
	"golang.org/x/term"
)

// openSession opens the configured backend and loads the session
func openSession(ctx context.Context) (*app.Session, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	store, err := db.OpenStore(cfg.Storage, cfg.DataDir)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	sess, err := app.Open(ctx, store, streak.RealClock{})
	if err != nil {
		_ = store.Close()
		return nil, err
	}
	return sess, nil
}

// parseTaskID parses a numeric task id argument
func parseTaskID(arg string) (int64, error) {
	id, err := strconv.ParseInt(strings.TrimPrefix(arg, "#"), 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid task id: %s", arg)
	}
	return id, nil
}

// lookupTask resolves an id argument to a live task
func lookupTask(sess *app.Session, arg string) (model.Task, error) {
	id, err := parseTaskID(arg)
	if err != nil {
		return model.Task{}, err
	}
	t, ok := sess.Task(id)
	if !ok {
		return model.Task{}, fmt.Errorf("task not found: %d", id)
	}
	return t, nil
}

// isInteractive reports whether stdin is a terminal
func isInteractive() bool {
	return term.IsTerminal(int(os.Stdin.Fd()))
}

// confirm asks a yes/no question, defaulting to no
func confirm(in io.Reader, prompt string) bool {
	fmt.Printf("%s [y/N]: ", prompt)
	answer, _ := bufio.NewReader(in).ReadString('\n')
	answer = strings.ToLower(strings.TrimSpace(answer))
	return answer == "y" || answer == "yes"
}

// joinArgs joins free-text arguments into one string
func joinArgs(args []string) string {
	return strings.TrimSpace(strings.Join(args, " "))
}
