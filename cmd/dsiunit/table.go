package main

import (
	"encoding/json"
	"io"
	"os"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/Neumenon/dsiunit/internal/config"
	"github.com/Neumenon/dsiunit/table"
)

func newTableCmd() *cobra.Command {
	var (
		configPath string
		asJSON     bool
	)

	cmd := &cobra.Command{
		Use:   "table [file]...",
		Short: "Tabularize result set files (YAML or JSON)",
		Long: `Reads one result set per file, builds the tables concurrently and
prints them in argument order. With no file, or "-", reads stdin.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.Default()
			if configPath != "" {
				var err error
				if cfg, err = config.LoadAndValidate(configPath); err != nil {
					return err
				}
			}
			if len(args) == 0 {
				args = []string{"-"}
			}

			tables, err := buildTables(cmd.InOrStdin(), args, cfg.BuildOptions())
			if err != nil {
				return err
			}
			return writeTables(cmd.OutOrStdout(), tables, asJSON)
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "", "path to config YAML")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print tables as JSON")
	return cmd
}

// buildTables builds one table per path. Builds share nothing but the
// read-only unit dictionary, so they run in parallel.
func buildTables(stdin io.Reader, paths []string, opts table.BuildOptions) ([]*table.Table, error) {
	stdinArgs := 0
	for _, path := range paths {
		if path == "-" {
			stdinArgs++
		}
	}
	if stdinArgs > 1 {
		return nil, errors.New("stdin (-) given more than once")
	}

	tables := make([]*table.Table, len(paths))

	var g errgroup.Group
	for i, path := range paths {
		i, path := i, path // per-iteration copies for Go < 1.22
		var rs *table.ResultSet
		if path == "-" {
			// stdin is read up front; it cannot be shared between goroutines
			var err error
			if rs, err = table.DecodeResultSet(stdin); err != nil {
				return nil, errors.Wrap(err, "stdin")
			}
		}

		g.Go(func() error {
			if rs == nil {
				var err error
				if rs, err = readResultSet(path); err != nil {
					return err
				}
			}
			t, err := rs.Build(opts)
			if err != nil {
				return errors.Wrap(err, path)
			}
			tables[i] = t
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return tables, nil
}

func readResultSet(path string) (*table.ResultSet, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(err, "open result set")
	}
	defer f.Close()

	rs, err := table.DecodeResultSet(f)
	if err != nil {
		return nil, errors.Wrap(err, path)
	}
	return rs, nil
}

func writeTables(w io.Writer, tables []*table.Table, asJSON bool) error {
	if asJSON {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		enc.SetEscapeHTML(false)
		if len(tables) == 1 {
			return enc.Encode(tables[0])
		}
		return enc.Encode(tables)
	}

	for i, t := range tables {
		if i > 0 {
			if _, err := io.WriteString(w, "\n"); err != nil {
				return err
			}
		}
		if err := table.Emit(w, t); err != nil {
			return err
		}
	}
	return nil
}
