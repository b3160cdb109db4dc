package cli

import (
	"encoding/json"
	"fmt"
	"math"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/evcraddock/realty-site/internal/admin"
	"github.com/evcraddock/realty-site/internal/blog"
	"github.com/evcraddock/realty-site/internal/property"
)

// printJSON marshals v as indented JSON and writes it to stdout.
func printJSON(v interface{}) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// printPropertySummary prints a single listing in text format.
func printPropertySummary(p property.Record) {
	fmt.Printf("Property #%d\n", p.ID)
	fmt.Printf("  Title:     %s\n", p.Title)
	fmt.Printf("  Location:  %s\n", p.Location)
	fmt.Printf("  Price:     %s\n", displayPrice(p))
	fmt.Printf("  Deal:      %s %s\n", p.Operation, p.Type)
	fmt.Printf("  Bedrooms:  %d\n", p.Bedrooms)
	fmt.Printf("  Bathrooms: %d\n", p.Bathrooms)
	if p.Area != "" {
		fmt.Printf("  Area:      %s\n", p.Area)
	} else if p.AreaValue > 0 {
		fmt.Printf("  Area:      %g m²\n", p.AreaValue)
	}
	if p.Badge != "" {
		fmt.Printf("  Badge:     %s\n", p.Badge)
	}
	if p.IsNew {
		fmt.Println("  New:       yes")
	}
	if p.Image != "" {
		fmt.Printf("  Image:     %s\n", p.Image)
	}
}

// printPropertyTable prints a list of listings as a formatted table.
func printPropertyTable(props []property.Record) error {
	if len(props) == 0 {
		fmt.Println("No properties found.")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	if _, err := fmt.Fprintln(w, "ID\tTITLE\tLOCATION\tPRICE\tDEAL\tTYPE\tBED\tBATH"); err != nil {
		return fmt.Errorf("writing table header: %w", err)
	}
	if _, err := fmt.Fprintln(w, "--\t-----\t--------\t-----\t----\t----\t---\t----"); err != nil {
		return fmt.Errorf("writing table separator: %w", err)
	}

	for _, p := range props {
		if _, err := fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\t%s\t%d\t%d\n",
			p.ID, truncate(p.Title, 32), truncate(p.Location, 24), displayPrice(p),
			p.Operation, p.Type, p.Bedrooms, p.Bathrooms); err != nil {
			return fmt.Errorf("writing table row: %w", err)
		}
	}

	if err := w.Flush(); err != nil {
		return fmt.Errorf("flushing table: %w", err)
	}

	fmt.Printf("\nTotal: %d properties\n", len(props))
	return nil
}

// printPostSummary prints a single post in text format.
func printPostSummary(p blog.Post) {
	fmt.Printf("Post #%d\n", p.ID)
	fmt.Printf("  Title:     %s\n", p.Title)
	if p.Slug != "" {
		fmt.Printf("  Slug:      %s\n", p.Slug)
	}
	if p.Author != "" {
		fmt.Printf("  Author:    %s\n", p.Author)
	}
	fmt.Printf("  Published: %s\n", yesNo(p.Published))
	if !p.CreatedAt.IsZero() {
		fmt.Printf("  Created:   %s\n", p.CreatedAt.Format("2006-01-02 15:04"))
	}
	if p.Excerpt != "" {
		fmt.Printf("\n  %s\n", p.Excerpt)
	}
}

// printPostTable prints blog posts as a formatted table.
func printPostTable(posts []blog.Post) error {
	if len(posts) == 0 {
		fmt.Println("No posts found.")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	if _, err := fmt.Fprintln(w, "ID\tTITLE\tAUTHOR\tPUBLISHED"); err != nil {
		return fmt.Errorf("writing table header: %w", err)
	}
	for _, p := range posts {
		if _, err := fmt.Fprintf(w, "%d\t%s\t%s\t%s\n",
			p.ID, truncate(p.Title, 48), p.Author, yesNo(p.Published)); err != nil {
			return fmt.Errorf("writing table row: %w", err)
		}
	}
	if err := w.Flush(); err != nil {
		return fmt.Errorf("flushing table: %w", err)
	}

	fmt.Printf("\nTotal: %d posts\n", len(posts))
	return nil
}

// printUserTable prints admin users as a formatted table.
func printUserTable(users []admin.User) error {
	if len(users) == 0 {
		fmt.Println("No users found.")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	if _, err := fmt.Fprintln(w, "ID\tEMAIL\tNAME\tROLE\tACTIVE"); err != nil {
		return fmt.Errorf("writing table header: %w", err)
	}
	for _, u := range users {
		if _, err := fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\n",
			u.ID, u.Email, u.Name, u.Role, yesNo(u.IsActive)); err != nil {
			return fmt.Errorf("writing table row: %w", err)
		}
	}
	if err := w.Flush(); err != nil {
		return fmt.Errorf("flushing table: %w", err)
	}

	fmt.Printf("\nTotal: %d users\n", len(users))
	return nil
}

// printUserSummary prints a single admin user in text format.
func printUserSummary(u admin.User) {
	fmt.Printf("User #%d\n", u.ID)
	fmt.Printf("  Email:  %s\n", u.Email)
	if u.Name != "" {
		fmt.Printf("  Name:   %s\n", u.Name)
	}
	if u.Role != "" {
		fmt.Printf("  Role:   %s\n", u.Role)
	}
	fmt.Printf("  Active: %s\n", yesNo(u.IsActive))
}

// displayPrice prefers the listing's own price label and falls back to
// the numeric value.
func displayPrice(p property.Record) string {
	if p.Price != "" {
		return p.Price
	}
	return formatPrice(int64(math.Round(p.PriceValue)))
}

// formatPrice formats an amount as a string with commas.
func formatPrice(amount int64) string {
	s := fmt.Sprintf("%d", amount)

	// Add commas
	if len(s) <= 3 {
		return s
	}

	var parts []string
	for len(s) > 3 {
		parts = append([]string{s[len(s)-3:]}, parts...)
		s = s[:len(s)-3]
	}
	parts = append([]string{s}, parts...)

	return strings.Join(parts, ",")
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}

// truncate shortens a string to maxLen runes, adding "..." if truncated.
func truncate(s string, maxLen int) string {
	r := []rune(s)
	if len(r) <= maxLen {
		return s
	}
	return string(r[:maxLen-3]) + "..."
}
