package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/shelf/internal/paths"
	"github.com/mesh-intelligence/shelf/internal/sqlite"
)

// exportResult is the JSON shape of an export.
type exportResult struct {
	Path      string `json:"path"`
	Books     int    `json:"books"`
	Customers int    `json:"customers"`
}

func newExportCmd(a *app) *cobra.Command {
	var out string

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write a SQLite snapshot of the catalog",
		Long: `Export writes the current catalog to a SQLite file for inspection with any
SQLite client. An existing file at the target path is replaced. The snapshot
is a report; shelf never reads it back.`,
		Args: exactArgs(0),
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := paths.ResolveExportPath(out, a.cfg.ExportPath)
			if err != nil {
				return fmt.Errorf("resolve export path: %w", err)
			}

			snap := a.cat.Snapshot()
			if err := sqlite.Export(cmd.Context(), path, snap); err != nil {
				return fmt.Errorf("export: %w", err)
			}
			a.logger.Info("snapshot exported", "path", path, "books", len(snap.Books))

			res := exportResult{Path: path, Books: len(snap.Books), Customers: len(snap.Customers)}
			return a.emit(cmd, res, func(w io.Writer) {
				fmt.Fprintf(w, "Exported %d books and %d customers to %s\n", res.Books, res.Customers, res.Path)
			})
		},
	}

	cmd.Flags().StringVarP(&out, "out", "o", "", "snapshot path (default: export_path config or $XDG_DATA_HOME/shelf/snapshot.db)")
	return cmd
}
