package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/flexphp/flex-schema/pkg/schema"
	"github.com/flexphp/flex-schema/pkg/schemafile"
)

// schemaReport is the inspect view of a schema.
type schemaReport struct {
	Name        string              `json:"name"`
	Title       string              `json:"title"`
	Icon        string              `json:"icon,omitempty"`
	Language    string              `json:"language"`
	Actions     []schema.Action     `json:"actions"`
	PkName      string              `json:"pkName"`
	PkTypeHint  string              `json:"pkTypeHint"`
	Attributes  []attributeReport   `json:"attributes"`
	FkRelations []schema.FkRelation `json:"fkRelations"`
}

type attributeReport struct {
	Name        string             `json:"name"`
	DataType    schema.DataType    `json:"dataType"`
	TypeHint    string             `json:"typeHint"`
	Type        schema.UIType      `json:"type,omitempty"`
	Constraints schema.Constraints `json:"constraints"`
	Show        []schema.Action    `json:"show"`
	Hide        []schema.Action    `json:"hide"`
}

func newInspectCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "inspect FILE",
		Short: "Print the validated model of a schema document",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := schemafile.Load(args[0])
			if err != nil {
				return userError(err)
			}
			a.logger.Debug("schema loaded", "file", args[0], "schema", s.Name(), "attributes", len(s.Attributes()))

			report := newSchemaReport(s)
			if a.jsonOutput() {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				if err := enc.Encode(report); err != nil {
					return systemError(fmt.Errorf("encode report: %w", err))
				}
				return nil
			}
			if err := writeReport(cmd.OutOrStdout(), report); err != nil {
				return systemError(err)
			}
			return nil
		},
	}
}

func newSchemaReport(s *schema.Schema) schemaReport {
	r := schemaReport{
		Name:        s.Name(),
		Title:       s.Title(),
		Icon:        s.Icon(),
		Language:    s.Language(),
		Actions:     s.Actions(),
		PkName:      s.PkName(),
		PkTypeHint:  s.PkTypeHint(),
		Attributes:  []attributeReport{},
		FkRelations: s.FkRelations(),
	}
	for _, attr := range s.Attributes() {
		r.Attributes = append(r.Attributes, attributeReport{
			Name:        attr.Name(),
			DataType:    attr.DataType(),
			TypeHint:    attr.TypeHint(),
			Type:        attr.Type(),
			Constraints: attr.Constraints(),
			Show:        nonNil(attr.Show()),
			Hide:        nonNil(attr.Hide()),
		})
	}
	if r.FkRelations == nil {
		r.FkRelations = []schema.FkRelation{}
	}
	return r
}

func nonNil(actions []schema.Action) []schema.Action {
	if actions == nil {
		return []schema.Action{}
	}
	return actions
}

func actionList(actions []schema.Action) string {
	if len(actions) == 0 {
		return "-"
	}
	parts := make([]string, len(actions))
	for i, a := range actions {
		parts[i] = string(a)
	}
	return strings.Join(parts, ",")
}

func dash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}

// writeReport renders r as aligned text.
func writeReport(w io.Writer, r schemaReport) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "Schema:\t%s\n", r.Name)
	fmt.Fprintf(tw, "Title:\t%s\n", r.Title)
	fmt.Fprintf(tw, "Icon:\t%s\n", dash(r.Icon))
	fmt.Fprintf(tw, "Language:\t%s\n", r.Language)
	fmt.Fprintf(tw, "Actions:\t%s\n", actionList(r.Actions))
	fmt.Fprintf(tw, "Primary key:\t%s (%s)\n", r.PkName, r.PkTypeHint)
	if err := tw.Flush(); err != nil {
		return err
	}

	fmt.Fprintln(w)
	tw = tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ATTRIBUTE\tDATA TYPE\tHINT\tTYPE\tCONSTRAINTS\tSHOW\tHIDE")
	for _, attr := range r.Attributes {
		b, err := json.Marshal(attr.Constraints)
		if err != nil {
			return fmt.Errorf("encode constraints of %s: %w", attr.Name, err)
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\t%s\n",
			attr.Name, attr.DataType, attr.TypeHint, dash(string(attr.Type)), b,
			actionList(attr.Show), actionList(attr.Hide))
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	if len(r.FkRelations) == 0 {
		return nil
	}
	fmt.Fprintln(w)
	tw = tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "FOREIGN KEY\tTABLE\tNAME\tID\tREQUIRED\tBLAME")
	for _, rel := range r.FkRelations {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%t\t%t\n", rel.Name, rel.FkTable, rel.FkName, rel.FkID, rel.Required, rel.IsBlameBy)
	}
	return tw.Flush()
}
