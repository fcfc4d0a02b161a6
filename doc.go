// Package folio is the composition root for the folio content layer.
//
// It wires the filesystem adapter (Markdown files with YAML or TOML
// frontmatter) to the typed blog and portfolio loaders of an agency site.
//
// Layout:
//
//	content/
//	  blog/<slug>.md              slug is the relative path ("en/hello")
//	  portfolio/<locale>/<name>.md  slug is "<locale>/<name>"
//
// Loaders follow a swallow-and-log policy: list operations return an empty
// slice and lookups return nil on failure, logging the failure kind. The
// Load* variants expose the classified error (see core.Kind).
//
// Usage:
//
//	site, err := folio.New("./content",
//		folio.WithCache(true),
//		folio.WithLogger(logger),
//	)
//
//	posts := site.Blog.ListAllPosts(ctx)
//	related := site.Portfolio.ListRelated(ctx, "shop-platform", 3)
package folio
