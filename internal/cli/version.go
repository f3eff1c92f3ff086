package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

// Version is the flexschema release.
const Version = "0.1.0"

const modulePath = "github.com/flexphp/flex-schema"

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the flexschema version",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Fprintf(cmd.OutOrStdout(), "flexschema v%s\nmodule: %s\n", Version, modulePath)
			return nil
		},
	}
}
