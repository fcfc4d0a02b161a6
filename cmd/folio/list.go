package main

import (
	"github.com/spf13/cobra"

	"github.com/aretw0/folio/pkg/content"
)

var (
	listJSON       bool
	listCategory   string
	listLocale     string
	listTag        string
	listFeatured   bool
	listTechnology string
)

var listCmd = &cobra.Command{
	Use:   "list blog|portfolio",
	Short: "List posts or projects, newest first",
	Args:  cobra.MatchAll(cobra.ExactArgs(1), collectionArg),
	RunE: func(cmd *cobra.Command, args []string) error {
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

		if args[0] == content.CollectionBlog {
			posts := site.Blog.Query(ctx, content.PostFilter{
				Category: listCategory,
				Locale:   listLocale,
				Tag:      listTag,
				Featured: listFeatured,
			})
			if listJSON {
				return writeJSON(out, posts)
			}
			writePosts(out, posts)
			return nil
		}

		projects := site.Portfolio.Query(ctx, content.ProjectFilter{
			Category:   listCategory,
			Locale:     listLocale,
			Technology: listTechnology,
			Featured:   listFeatured,
		})
		if listJSON {
			return writeJSON(out, projects)
		}
		writeProjects(out, projects)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(listCmd)
	listCmd.Flags().BoolVar(&listJSON, "json", false, "Output in JSON format")
	listCmd.Flags().StringVar(&listCategory, "category", "", "Filter by category (case-insensitive)")
	listCmd.Flags().StringVar(&listLocale, "locale", "", "Filter by locale")
	listCmd.Flags().StringVar(&listTag, "tag", "", "Filter posts by tag")
	listCmd.Flags().StringVar(&listTechnology, "technology", "", "Filter projects by technology")
	listCmd.Flags().BoolVar(&listFeatured, "featured", false, "Only featured items")
}
