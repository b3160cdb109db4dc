package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/evcraddock/realty-site/internal/blog"
	"github.com/evcraddock/realty-site/internal/validation"
)

func newPostCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "post",
		Aliases: []string{"posts"},
		Short:   "Manage blog posts",
	}
	cmd.AddCommand(
		newPostListCmd(),
		newPostShowCmd(),
		newPostAddCmd(),
		newPostUpdateCmd(),
		newPostRemoveCmd(),
	)
	return cmd
}

func newPostListCmd() *cobra.Command {
	var published bool
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List blog posts",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			state, database, err := openState()
			if err != nil {
				return err
			}
			defer closeDB(database)

			c := newAPIClient(state)
			var posts []blog.Post
			if published {
				posts, err = c.ListPublishedPosts(cmd.Context())
			} else {
				posts, err = c.ListPosts(cmd.Context())
			}
			if err != nil {
				return err
			}
			if isJSON() {
				return printJSON(posts)
			}
			return printPostTable(posts)
		},
	}
	cmd.Flags().BoolVar(&published, "published", false, "only published posts")
	return cmd
}

func newPostShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show <id>",
		Short: "Show a blog post",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID("post", args[0])
			if err != nil {
				return err
			}
			state, database, err := openState()
			if err != nil {
				return err
			}
			defer closeDB(database)

			p, err := newAPIClient(state).GetPost(cmd.Context(), id)
			if err != nil {
				return err
			}
			if isJSON() {
				return printJSON(p)
			}
			printPostSummary(*p)
			if p.Content != "" {
				fmt.Printf("\n%s\n", p.Content)
			}
			return nil
		},
	}
}

type postFlags struct {
	title     string
	slug      string
	excerpt   string
	content   string
	author    string
	image     string
	published bool
}

func (pf *postFlags) bind(cmd *cobra.Command) {
	f := cmd.Flags()
	f.StringVar(&pf.title, "title", "", "post title")
	f.StringVar(&pf.slug, "slug", "", "URL slug")
	f.StringVar(&pf.excerpt, "excerpt", "", "short summary")
	f.StringVar(&pf.content, "content", "", "post body")
	f.StringVar(&pf.author, "author", "", "author name")
	f.StringVar(&pf.image, "image", "", "cover image URL")
	f.BoolVar(&pf.published, "published", false, "publish the post")
}

func (pf *postFlags) update(cmd *cobra.Command) blog.Update {
	var u blog.Update
	changed := cmd.Flags().Changed
	if changed("title") {
		u.Title = &pf.title
	}
	if changed("slug") {
		u.Slug = &pf.slug
	}
	if changed("excerpt") {
		u.Excerpt = &pf.excerpt
	}
	if changed("content") {
		u.Content = &pf.content
	}
	if changed("author") {
		u.Author = &pf.author
	}
	if changed("image") {
		u.Image = &pf.image
	}
	if changed("published") {
		u.Published = &pf.published
	}
	return u
}

func newPostAddCmd() *cobra.Command {
	var pf postFlags
	cmd := &cobra.Command{
		Use:   "add",
		Short: "Create a blog post",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			post := blog.Post{
				Title:     pf.title,
				Slug:      pf.slug,
				Excerpt:   pf.excerpt,
				Content:   pf.content,
				Author:    pf.author,
				Image:     pf.image,
				Published: pf.published,
			}
			if err := validation.Struct(post); err != nil {
				return err
			}

			state, database, err := openState()
			if err != nil {
				return err
			}
			defer closeDB(database)

			p, err := newAPIClient(state).CreatePost(cmd.Context(), post)
			if err != nil {
				return err
			}
			if isJSON() {
				return printJSON(p)
			}
			fmt.Printf("Post #%d created.\n", p.ID)
			return nil
		},
	}
	pf.bind(cmd)
	return cmd
}

func newPostUpdateCmd() *cobra.Command {
	var pf postFlags
	cmd := &cobra.Command{
		Use:   "update <id>",
		Short: "Update a blog post",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID("post", args[0])
			if err != nil {
				return err
			}
			upd := pf.update(cmd)
			if upd == (blog.Update{}) {
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

			p, err := newAPIClient(state).UpdatePost(cmd.Context(), id, upd)
			if err != nil {
				return err
			}
			if isJSON() {
				return printJSON(p)
			}
			fmt.Printf("Post #%d updated.\n", id)
			return nil
		},
	}
	pf.bind(cmd)
	return cmd
}

func newPostRemoveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "remove <id>",
		Short: "Delete a blog post",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID("post", args[0])
			if err != nil {
				return err
			}
			state, database, err := openState()
			if err != nil {
				return err
			}
			defer closeDB(database)

			if err := newAPIClient(state).DeletePost(cmd.Context(), id); err != nil {
				return err
			}
			if isJSON() {
				return printJSON(map[string]interface{}{"id": id, "removed": true})
			}
			fmt.Printf("Post #%d removed.\n", id)
			return nil
		},
	}
}
