package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/evcraddock/realty-site/internal/catalog"
	"github.com/evcraddock/realty-site/internal/catalogsync"
	"github.com/evcraddock/realty-site/internal/category"
	"github.com/evcraddock/realty-site/internal/property"
)

type searchOptions struct {
	category     string
	location     string
	title        string
	typ          string
	operation    string
	minPrice     string
	maxPrice     string
	minBedrooms  string
	minBathrooms string
}

func newSearchCmd() *cobra.Command {
	var opts searchOptions

	cmd := &cobra.Command{
		Use:   "search",
		Short: "Search the catalog",
		Long: `Search listings with the same filters as the site. A category shortcut is
applied first, then any explicit filters. Numeric filters that do not parse
are ignored.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSearch(cmd.Context(), cmd, opts)
		},
	}

	f := cmd.Flags()
	f.StringVar(&opts.category, "category", "", "category shortcut (all, buy, rent, launches, commercial)")
	f.StringVar(&opts.location, "location", "", "location contains (case-insensitive)")
	f.StringVar(&opts.title, "title", "", "title contains (case-insensitive)")
	f.StringVar(&opts.typ, "type", "", "property type (apartment, house, land, commercial)")
	f.StringVar(&opts.operation, "operation", "", "operation (buy, rent)")
	f.StringVar(&opts.minPrice, "min-price", "", "minimum price")
	f.StringVar(&opts.maxPrice, "max-price", "", "maximum price")
	f.StringVar(&opts.minBedrooms, "min-bedrooms", "", "minimum bedrooms")
	f.StringVar(&opts.minBathrooms, "min-bathrooms", "", "minimum bathrooms")

	return cmd
}

// patch builds a criteria patch from the flags the user actually set.
func (o searchOptions) patch(cmd *cobra.Command) catalog.Patch {
	var p catalog.Patch
	changed := func(name string) bool { return cmd != nil && cmd.Flags().Changed(name) }

	if changed("location") {
		p.Location = catalog.Ptr(o.location)
	}
	if changed("title") {
		p.Title = catalog.Ptr(o.title)
	}
	if changed("type") {
		p.Type = catalog.Ptr(property.Type(o.typ))
	}
	if changed("operation") {
		p.Operation = catalog.Ptr(property.Operation(o.operation))
	}
	if changed("min-price") {
		p.MinPrice = catalog.Ptr(catalog.NumericInput(o.minPrice))
	}
	if changed("max-price") {
		p.MaxPrice = catalog.Ptr(catalog.NumericInput(o.maxPrice))
	}
	if changed("min-bedrooms") {
		p.MinBedrooms = catalog.Ptr(catalog.NumericInput(o.minBedrooms))
	}
	if changed("min-bathrooms") {
		p.MinBathrooms = catalog.Ptr(catalog.NumericInput(o.minBathrooms))
	}
	return p
}

func runSearch(ctx context.Context, cmd *cobra.Command, opts searchOptions) error {
	patch := opts.patch(cmd)
	if err := patch.Validate(); err != nil {
		return err
	}

	records, src, err := loadCatalog(ctx)
	if err != nil {
		return err
	}

	store := catalog.NewStore()
	store.Initialize(records)

	if opts.category != "" {
		if _, err := category.NewResolver(store).Select(opts.category); err != nil {
			return err
		}
	}
	store.UpdateCriteria(patch)
	results := store.Filtered()

	if isJSON() {
		return printJSON(map[string]interface{}{
			"criteria":   store.Criteria(),
			"source":     src,
			"properties": results,
		})
	}

	if src != catalogsync.SourceRemote {
		fmt.Fprintf(os.Stderr, "warning: agency API unavailable, showing %s listings\n", src)
	}
	return printPropertyTable(results)
}

// loadCatalog bootstraps the catalog the same way the site does: API,
// then local snapshot, then bundled seed.
func loadCatalog(ctx context.Context) ([]property.Record, catalogsync.Source, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	state, database, err := openState()
	if err != nil {
		return nil, catalogsync.SourceNone, err
	}
	defer closeDB(database)

	syncer := newSyncer(state, database)
	src, err := syncer.Bootstrap(ctx)
	if err != nil {
		return nil, catalogsync.SourceNone, err
	}
	records, _ := syncer.Records()
	return records, src, nil
}
