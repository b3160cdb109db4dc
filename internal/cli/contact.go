package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/evcraddock/realty-site/internal/contact"
)

func newContactCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "contact <id>",
		Short: "Print the WhatsApp link for a listing",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID("property", args[0])
			if err != nil {
				return err
			}
			phone := getContactPhone()
			if phone == "" {
				return fmt.Errorf("no contact phone configured (set REALTY_CONTACT_PHONE or contact_phone in the config file)")
			}

			r, err := findProperty(cmd.Context(), id)
			if err != nil {
				return err
			}
			link, err := contact.PropertyLink(phone, r)
			if err != nil {
				return err
			}
			if isJSON() {
				return printJSON(map[string]string{
					"url":     link,
					"message": contact.PropertyMessage(r),
				})
			}
			fmt.Println(link)
			return nil
		},
	}
}
