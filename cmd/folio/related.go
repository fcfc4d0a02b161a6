package main

import (
	"github.com/spf13/cobra"

	"github.com/aretw0/folio/pkg/content"
)

var (
	relatedJSON   bool
	relatedLimit  int
	relatedLocale string
)

var relatedCmd = &cobra.Command{
	Use:   "related blog|portfolio <slug-or-id>",
	Short: "List items related by category, tag or technology",
	Long: `For blog posts the argument is a slug ("en/hello"). For projects it is the
metadata id ("shop-platform"); --locale keeps results within one locale.`,
	Args: cobra.MatchAll(cobra.ExactArgs(2), collectionArg),
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
			posts := site.Blog.ListRelated(ctx, args[1], relatedLimit)
			if relatedJSON {
				return writeJSON(out, posts)
			}
			writePosts(out, posts)
			return nil
		}

		var projects []*content.Project
		if relatedLocale != "" {
			projects = site.Portfolio.ListRelatedInLocale(ctx, relatedLocale, args[1], relatedLimit)
		} else {
			projects = site.Portfolio.ListRelated(ctx, args[1], relatedLimit)
		}
		if relatedJSON {
			return writeJSON(out, projects)
		}
		writeProjects(out, projects)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(relatedCmd)
	relatedCmd.Flags().BoolVar(&relatedJSON, "json", false, "Output in JSON format")
	relatedCmd.Flags().IntVar(&relatedLimit, "limit", content.DefaultRelatedLimit, "Maximum number of results")
	relatedCmd.Flags().StringVar(&relatedLocale, "locale", "", "Restrict project relations to one locale")
}
