package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/evcraddock/realty-site/internal/catalogsync"
	"github.com/evcraddock/realty-site/internal/property"
)

func newPropertyCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "property",
		Aliases: []string{"properties"},
		Short:   "Manage listings",
		Long:    "List, show, add, update and remove listings through the agency API.",
	}
	cmd.AddCommand(
		newPropertyListCmd(),
		newPropertyShowCmd(),
		newPropertyAddCmd(),
		newPropertyUpdateCmd(),
		newPropertyRemoveCmd(),
	)
	return cmd
}

func newPropertyListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List all listings",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			state, database, err := openState()
			if err != nil {
				return err
			}
			defer closeDB(database)

			props, err := newAPIClient(state).ListProperties(cmd.Context())
			if err != nil {
				return err
			}
			if isJSON() {
				return printJSON(props)
			}
			return printPropertyTable(props)
		},
	}
}

func newPropertyShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show <id>",
		Short: "Show listing details",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID("property", args[0])
			if err != nil {
				return err
			}
			p, err := findProperty(cmd.Context(), id)
			if err != nil {
				return err
			}
			if isJSON() {
				return printJSON(p)
			}
			printPropertySummary(p)
			return nil
		},
	}
}

// findProperty looks a listing up in the bootstrapped catalog.
func findProperty(ctx context.Context, id int64) (property.Record, error) {
	records, _, err := loadCatalog(ctx)
	if err != nil {
		return property.Record{}, err
	}
	for _, r := range records {
		if r.ID == id {
			return r, nil
		}
	}
	return property.Record{}, fmt.Errorf("property #%d not found", id)
}

// propertyFlags binds the editable listing fields to command flags.
type propertyFlags struct {
	title      string
	price      string
	priceValue float64
	location   string
	bedrooms   int
	bathrooms  int
	area       string
	areaValue  float64
	typ        string
	operation  string
	image      string
	badge      string
	isNew      bool
}

func (pf *propertyFlags) bind(cmd *cobra.Command) {
	f := cmd.Flags()
	f.StringVar(&pf.title, "title", "", "listing title")
	f.StringVar(&pf.price, "price", "", "display price, e.g. \"R$ 850.000\"")
	f.Float64Var(&pf.priceValue, "price-value", 0, "numeric price used for filtering")
	f.StringVar(&pf.location, "location", "", "neighborhood and city")
	f.IntVar(&pf.bedrooms, "bedrooms", 0, "number of bedrooms")
	f.IntVar(&pf.bathrooms, "bathrooms", 0, "number of bathrooms")
	f.StringVar(&pf.area, "area", "", "display area, e.g. \"120 m²\"")
	f.Float64Var(&pf.areaValue, "area-value", 0, "numeric area in m²")
	f.StringVar(&pf.typ, "type", "", "apartment, house, land or commercial")
	f.StringVar(&pf.operation, "operation", "", "buy or rent")
	f.StringVar(&pf.image, "image", "", "image URL (see 'realty upload')")
	f.StringVar(&pf.badge, "badge", "", "card badge, e.g. Highlight")
	f.BoolVar(&pf.isNew, "new", false, "mark as a new listing")
}

func (pf *propertyFlags) record() property.Record {
	return property.Record{
		Title:      pf.title,
		Price:      pf.price,
		PriceValue: pf.priceValue,
		Location:   pf.location,
		Bedrooms:   pf.bedrooms,
		Bathrooms:  pf.bathrooms,
		Area:       pf.area,
		AreaValue:  pf.areaValue,
		Type:       property.Type(pf.typ),
		Operation:  property.Operation(pf.operation),
		Image:      pf.image,
		Badge:      pf.badge,
		IsNew:      pf.isNew,
	}
}

// update returns a partial update holding only the flags that were set.
func (pf *propertyFlags) update(cmd *cobra.Command) property.Update {
	var u property.Update
	changed := cmd.Flags().Changed
	if changed("title") {
		u.Title = &pf.title
	}
	if changed("price") {
		u.Price = &pf.price
	}
	if changed("price-value") {
		u.PriceValue = &pf.priceValue
	}
	if changed("location") {
		u.Location = &pf.location
	}
	if changed("bedrooms") {
		u.Bedrooms = &pf.bedrooms
	}
	if changed("bathrooms") {
		u.Bathrooms = &pf.bathrooms
	}
	if changed("area") {
		u.Area = &pf.area
	}
	if changed("area-value") {
		u.AreaValue = &pf.areaValue
	}
	if changed("type") {
		t := property.Type(pf.typ)
		u.Type = &t
	}
	if changed("operation") {
		op := property.Operation(pf.operation)
		u.Operation = &op
	}
	if changed("image") {
		u.Image = &pf.image
	}
	if changed("badge") {
		u.Badge = &pf.badge
	}
	if changed("new") {
		u.IsNew = &pf.isNew
	}
	return u
}

func newPropertyAddCmd() *cobra.Command {
	var pf propertyFlags
	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add a listing",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			state, database, err := openState()
			if err != nil {
				return err
			}
			defer closeDB(database)

			p, err := newSyncer(state, database).Create(cmd.Context(), pf.record())
			if err := warnIfStale(err); err != nil {
				return err
			}
			if isJSON() {
				return printJSON(p)
			}
			fmt.Println("Property added successfully!")
			printPropertySummary(*p)
			return nil
		},
	}
	pf.bind(cmd)
	return cmd
}

func newPropertyUpdateCmd() *cobra.Command {
	var pf propertyFlags
	cmd := &cobra.Command{
		Use:   "update <id>",
		Short: "Update a listing",
		Long:  "Update the given fields of a listing. Only flags you pass are sent.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID("property", args[0])
			if err != nil {
				return err
			}
			state, database, err := openState()
			if err != nil {
				return err
			}
			defer closeDB(database)

			p, err := newSyncer(state, database).Update(cmd.Context(), id, pf.update(cmd))
			if err := warnIfStale(err); err != nil {
				return err
			}
			if isJSON() {
				return printJSON(p)
			}
			fmt.Printf("Property #%d updated.\n", id)
			return nil
		},
	}
	pf.bind(cmd)
	return cmd
}

func newPropertyRemoveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "remove <id>",
		Short: "Remove a listing",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID("property", args[0])
			if err != nil {
				return err
			}
			state, database, err := openState()
			if err != nil {
				return err
			}
			defer closeDB(database)

			if err := warnIfStale(newSyncer(state, database).Delete(cmd.Context(), id)); err != nil {
				return err
			}
			if isJSON() {
				return printJSON(map[string]interface{}{
					"id":      id,
					"removed": true,
				})
			}
			fmt.Printf("Property #%d removed.\n", id)
			return nil
		},
	}
}

// warnIfStale reports a failed post-write reload on stderr and swallows
// it, since the write itself went through. Other errors pass through.
func warnIfStale(err error) error {
	if errors.Is(err, catalogsync.ErrStale) {
		fmt.Fprintf(os.Stderr, "warning: %v\n", err)
		return nil
	}
	return err
}

// parseID parses a numeric resource id argument.
func parseID(kind, arg string) (int64, error) {
	id, err := strconv.ParseInt(arg, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid %s ID: %s", kind, arg)
	}
	return id, nil
}
