package cli

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/evcraddock/realty-site/internal/category"
)

func newCategoriesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "categories",
		Short: "List category shortcuts",
		Long:  "List the navigation shortcuts accepted by 'realty search --category'.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCategories()
		},
	}
}

func runCategories() error {
	if isJSON() {
		return printJSON(category.Shortcuts)
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	if _, err := fmt.Fprintln(w, "ID\tLABEL\tOPERATION\tTYPE"); err != nil {
		return fmt.Errorf("writing table header: %w", err)
	}
	for _, s := range category.Shortcuts {
		if _, err := fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", s.ID, s.Label, orAny(string(s.Op)), orAny(string(s.Type))); err != nil {
			return fmt.Errorf("writing table row: %w", err)
		}
	}
	return w.Flush()
}

func orAny(s string) string {
	if s == "" {
		return "any"
	}
	return s
}
