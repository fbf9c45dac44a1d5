package cli

import (
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/existflow/examprep/internal/persist"
	"github.com/spf13/cobra"
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export a JSON backup",
	Long: `Write every task, completion, the theme and the username to a JSON
backup file. Use -o - to print to stdout.

Examples:
  examprep export
  examprep export -o backup.json`,
	Args: cobra.NoArgs,
	RunE: runExport,
}

var importCmd = &cobra.Command{
	Use:   "import [file]",
	Short: "Import a JSON backup",
	Long: `Restore a backup written by 'examprep export'. Each field is checked on
its own: valid fields are applied and malformed ones are reported and
skipped.

Examples:
  examprep import examprep_backup_2025-06-08.json`,
	Args: cobra.ExactArgs(1),
	RunE: runImport,
}

var exportOut string

func init() {
	exportCmd.Flags().StringVarP(&exportOut, "output", "o", "", "Output file (default examprep_backup_<date>.json)")
}

func runExport(cmd *cobra.Command, args []string) error {
	sess, err := openSession(cmd.Context())
	if err != nil {
		return err
	}
	defer sess.Close()

	data, err := sess.Export()
	if err != nil {
		return err
	}

	if exportOut == "-" {
		fmt.Println(string(data))
		return nil
	}

	path := exportOut
	if path == "" {
		path = persist.SnapshotFileName(sess.Now())
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write backup: %w", err)
	}
	fmt.Printf("✓ Backup saved to %s\n", path)
	return nil
}

func runImport(cmd *cobra.Command, args []string) error {
	doc, err := os.ReadFile(args[0])
	if err != nil {
		return fmt.Errorf("failed to read backup: %w", err)
	}

	sess, err := openSession(cmd.Context())
	if err != nil {
		return err
	}
	defer sess.Close()

	res, err := sess.Import(cmd.Context(), doc)
	if err != nil && res.Status == persist.ImportInvalid {
		return err
	}

	switch res.Status {
	case persist.ImportValid:
		fmt.Printf("✓ Imported: %s\n", strings.Join(res.Applied, ", "))
	case persist.ImportPartial:
		fmt.Printf("⚠️  Partially imported: %s\n", strings.Join(res.Applied, ", "))
	default:
		fmt.Println("✗ Nothing imported")
	}

	fields := make([]string, 0, len(res.Rejected))
	for f := range res.Rejected {
		fields = append(fields, f)
	}
	sort.Strings(fields)
	for _, f := range fields {
		fmt.Printf("  skipped %s: %s\n", f, res.Rejected[f])
	}
	return err
}
