package cli

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/flexphp/flex-schema/pkg/schemafile"
)

// validateResult is the outcome of validating one file.
type validateResult struct {
	File   string `json:"file"`
	Schema string `json:"schema,omitempty"`
	OK     bool   `json:"ok"`
	Error  string `json:"error,omitempty"`
}

func newValidateCmd(a *app) *cobra.Command {
	var watch bool
	cmd := &cobra.Command{
		Use:   "validate FILE...",
		Short: "Validate schema documents",
		Long: "Load every schema document and report whether it holds a valid schema.\n" +
			"A failing file does not stop the remaining ones. With --watch the files are\n" +
			"validated again each time they change, until interrupted.",
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			failed, err := a.runValidate(cmd.OutOrStdout(), args)
			if err != nil {
				return err
			}
			if watch {
				return a.watchFiles(cmd.Context(), cmd.OutOrStdout(), args)
			}
			if failed > 0 {
				return userError(fmt.Errorf("%d of %d files failed validation", failed, len(args)))
			}
			return nil
		},
	}
	cmd.Flags().BoolVarP(&watch, "watch", "w", false, "validate again whenever a file changes")
	return cmd
}

// runValidate validates every file and reports the results. It returns the
// number of files that failed.
func (a *app) runValidate(out io.Writer, files []string) (int, error) {
	results := make([]validateResult, 0, len(files))
	failed := 0
	for _, file := range files {
		res := a.validateFile(file)
		if !res.OK {
			failed++
		}
		results = append(results, res)
	}
	return failed, a.writeResults(out, results)
}

func (a *app) validateFile(file string) validateResult {
	res := validateResult{File: file}
	s, err := schemafile.Load(file)
	if err != nil {
		res.Error = err.Error()
		a.logger.Warn("schema rejected", "file", file, "error", err)
		return res
	}
	res.OK = true
	res.Schema = s.Name()
	a.logger.Debug("schema loaded", "file", file, "schema", s.Name(), "attributes", len(s.Attributes()))
	return res
}

func (a *app) writeResults(out io.Writer, results []validateResult) error {
	if a.jsonOutput() {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		if err := enc.Encode(results); err != nil {
			return systemError(fmt.Errorf("encode results: %w", err))
		}
		return nil
	}
	for _, res := range results {
		if res.OK {
			fmt.Fprintf(out, "ok %s (%s)\n", res.File, res.Schema)
		} else {
			fmt.Fprintf(out, "FAIL %s\n", res.Error)
		}
	}
	return nil
}
