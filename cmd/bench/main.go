package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/aretw0/folio"
)

func main() {
	count := flag.Int("count", 1000, "Number of posts and projects to generate")
	keep := flag.Bool("keep", false, "Keep the benchmark content after running")
	flag.Parse()

	benchDir, err := os.MkdirTemp("", "folio_bench_")
	if err != nil {
		panic(err)
	}
	defer func() {
		if !*keep {
			os.RemoveAll(benchDir)
		} else {
			fmt.Printf("Keeping bench dir: %s\n", benchDir)
		}
	}()

	fmt.Printf("Generating %d posts and %d projects in %s...\n", *count, *count, benchDir)
	startGen := time.Now()

	locales := []string{"en", "th"}
	categories := []string{"Engineering", "Design", "Marketing"}
	for i := 0; i < *count; i++ {
		locale := locales[i%len(locales)]
		date := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC).AddDate(0, 0, i).Format(time.DateOnly)

		post := fmt.Sprintf("---\ntitle: Post %d\ndate: %q\ncategory: %s\ntags: [benchmark, t%d]\n---\n# Post %d\nThis is a test post.\n",
			i, date, categories[i%len(categories)], i%7, i)
		writeFile(filepath.Join(benchDir, "content", "blog", locale, fmt.Sprintf("post-%d.md", i)), post)

		project := fmt.Sprintf("---\nid: project-%d\ntitle: Project %d\ndate: %q\ncategory: %s\ntechnologies: [Go, t%d]\n---\nProject body.\n",
			i, i, date, categories[i%len(categories)], i%5)
		writeFile(filepath.Join(benchDir, "content", "portfolio", locale, fmt.Sprintf("project-%d.md", i)), project)
	}
	fmt.Printf("Generation took: %v\n", time.Since(startGen))

	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelWarn}))
	site, err := folio.New(filepath.Join(benchDir, "content"),
		folio.WithLogger(logger),
		folio.WithCache(true),
	)
	if err != nil {
		panic(err)
	}

	ctx := context.Background()

	// Run 1 parses every file and fills the cache.
	fmt.Println("Running ListAllPosts (Run 1 - Cold)...")
	cold, n := measure(func() int { return len(site.Blog.ListAllPosts(ctx)) })
	fmt.Printf("Run 1 Result: %v (Items: %d)\n", cold, n)

	fmt.Println("Running ListAllPosts (Run 2 - Warm)...")
	warm, n := measure(func() int { return len(site.Blog.ListAllPosts(ctx)) })
	fmt.Printf("Run 2 Result: %v (Items: %d)\n", warm, n)

	fmt.Println("Running Portfolio ListRelated...")
	related, n := measure(func() int { return len(site.Portfolio.ListRelated(ctx, "project-0", 3)) })
	fmt.Printf("Related Result: %v (Items: %d)\n", related, n)

	fmt.Printf("--------------------------------------------------\n")
	fmt.Printf("Benchmark Result (%d posts):\n", *count)
	fmt.Printf("  Cold:    %v\n", cold)
	fmt.Printf("  Warm:    %v\n", warm)
	fmt.Printf("  Related: %v\n", related)
	fmt.Printf("--------------------------------------------------\n")
}

func measure(fn func() int) (time.Duration, int) {
	start := time.Now()
	n := fn()
	return time.Since(start), n
}

func writeFile(path, body string) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		panic(err)
	}
	if err := os.WriteFile(path, []byte(body), 0644); err != nil {
		panic(err)
	}
}
