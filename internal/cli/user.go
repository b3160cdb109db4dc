package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/evcraddock/realty-site/internal/admin"
	"github.com/evcraddock/realty-site/internal/validation"
)

func newUserCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "user",
		Aliases: []string{"users"},
		Short:   "Manage back-office users",
	}
	cmd.AddCommand(
		newUserListCmd(),
		newUserShowCmd(),
		newUserAddCmd(),
		newUserUpdateCmd(),
		newUserRemoveCmd(),
	)
	return cmd
}

func newUserListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List users",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			state, database, err := openState()
			if err != nil {
				return err
			}
			defer closeDB(database)

			users, err := newAPIClient(state).ListUsers(cmd.Context())
			if err != nil {
				return err
			}
			if isJSON() {
				return printJSON(users)
			}
			return printUserTable(users)
		},
	}
}

func newUserShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show <id>",
		Short: "Show a user",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID("user", args[0])
			if err != nil {
				return err
			}
			state, database, err := openState()
			if err != nil {
				return err
			}
			defer closeDB(database)

			u, err := newAPIClient(state).GetUser(cmd.Context(), id)
			if err != nil {
				return err
			}
			if isJSON() {
				return printJSON(u)
			}
			printUserSummary(*u)
			return nil
		},
	}
}

func newUserAddCmd() *cobra.Command {
	var nu admin.NewUser
	cmd := &cobra.Command{
		Use:   "add",
		Short: "Create a user",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := validation.Struct(nu); err != nil {
				return err
			}

			state, database, err := openState()
			if err != nil {
				return err
			}
			defer closeDB(database)

			u, err := newAPIClient(state).CreateUser(cmd.Context(), nu)
			if err != nil {
				return err
			}
			if isJSON() {
				return printJSON(u)
			}
			fmt.Printf("User #%d created (%s).\n", u.ID, u.Email)
			return nil
		},
	}
	f := cmd.Flags()
	f.StringVar(&nu.Email, "email", "", "login email")
	f.StringVar(&nu.Name, "name", "", "display name")
	f.StringVar(&nu.Password, "password", "", "initial password (min 8 characters)")
	f.StringVar(&nu.Role, "role", admin.RoleEditor, "admin or editor")
	return cmd
}

func newUserUpdateCmd() *cobra.Command {
	var (
		email, name, password, role string
		active                      bool
	)
	cmd := &cobra.Command{
		Use:   "update <id>",
		Short: "Update a user",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID("user", args[0])
			if err != nil {
				return err
			}

			var upd admin.Update
			changed := cmd.Flags().Changed
			if changed("email") {
				upd.Email = &email
			}
			if changed("name") {
				upd.Name = &name
			}
			if changed("password") {
				upd.Password = &password
			}
			if changed("role") {
				upd.Role = &role
			}
			if changed("active") {
				upd.IsActive = &active
			}
			if upd == (admin.Update{}) {
				return fmt.Errorf("no fields to update")
			}
			if err := validation.Struct(upd); err != nil {
				return err
			}

			state, database, err := openState()
			if err != nil {
				return err
			}
			defer closeDB(database)

			u, err := newAPIClient(state).UpdateUser(cmd.Context(), id, upd)
			if err != nil {
				return err
			}
			if isJSON() {
				return printJSON(u)
			}
			fmt.Printf("User #%d updated.\n", id)
			return nil
		},
	}
	f := cmd.Flags()
	f.StringVar(&email, "email", "", "login email")
	f.StringVar(&name, "name", "", "display name")
	f.StringVar(&password, "password", "", "new password (min 8 characters)")
	f.StringVar(&role, "role", "", "admin or editor")
	f.BoolVar(&active, "active", true, "whether the account can log in")
	return cmd
}

func newUserRemoveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "remove <id>",
		Short: "Delete a user",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID("user", args[0])
			if err != nil {
				return err
			}
			state, database, err := openState()
			if err != nil {
				return err
			}
			defer closeDB(database)

			if err := newAPIClient(state).DeleteUser(cmd.Context(), id); err != nil {
				return err
			}
			if isJSON() {
				return printJSON(map[string]interface{}{"id": id, "removed": true})
			}
			fmt.Printf("User #%d removed.\n", id)
			return nil
		},
	}
}
