package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/aretw0/folio/pkg/content"
	"github.com/aretw0/folio/pkg/render"
)

var (
	readJSON bool
	readHTML bool
)

var readCmd = &cobra.Command{
	Use:   "read blog|portfolio <slug>",
	Short: "Read a post or project",
	Long: `Read a post or project by slug. Prints a header and the Markdown body by
default, the item as JSON with --json, or the body rendered to HTML with --html.`,
	Args: cobra.MatchAll(cobra.ExactArgs(2), collectionArg),
	RunE: func(cmd *cobra.Command, args []string) error {
		if readJSON && readHTML {
			return fmt.Errorf("--json and --html are mutually exclusive")
		}

		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		site, err := openSite(cfg, nil)
		if err != nil {
			return err
		}

		ctx := cmd.Context()
		out := cmd.OutOrStdout()
		slug := args[1]

		var (
			item any
			body string
		)
		if args[0] == content.CollectionBlog {
			post, err := site.Blog.LoadPost(ctx, slug)
			if err != nil {
				return fmt.Errorf("read %s: %w", slug, err)
			}
			item, body = post, post.Content
			if !readJSON && !readHTML {
				writePostDetail(out, post)
				return nil
			}
		} else {
			project, err := site.Portfolio.LoadProject(ctx, slug)
			if err != nil {
				return fmt.Errorf("read %s: %w", slug, err)
			}
			item, body = project, project.Content
			if !readJSON && !readHTML {
				writeProjectDetail(out, project)
				return nil
			}
		}

		if readJSON {
			return writeJSON(out, item)
		}
		html, err := render.HTML(body)
		if err != nil {
			return err
		}
		fmt.Fprint(out, html)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(readCmd)
	readCmd.Flags().BoolVar(&readJSON, "json", false, "Output in JSON format")
	readCmd.Flags().BoolVar(&readHTML, "html", false, "Render the body to HTML")
}
