package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/flexphp/flex-schema/pkg/schemafile"
)

func newJSONSchemaCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "jsonschema",
		Short: "Print the JSON Schema of the schema document format",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			b, err := json.MarshalIndent(schemafile.DocumentJSONSchema(), "", "  ")
			if err != nil {
				return systemError(fmt.Errorf("encode json schema: %w", err))
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s\n", b)
			return nil
		},
	}
}
