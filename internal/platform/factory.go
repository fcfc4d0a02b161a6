package platform

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"

	"github.com/aretw0/folio/internal/config"
	fsadapter "github.com/aretw0/folio/pkg/adapters/fs"
	"github.com/aretw0/folio/pkg/content"
	"github.com/aretw0/folio/pkg/core"
)

// New builds a site over the content root.
//
//	site, err := folio.New("./content", folio.WithCache(true))
//
// The root must exist; the blog and portfolio directories may be missing, in
// which case their listings are empty.
func New(root string, opts ...Option) (*content.Site, error) {
	o := defaultOptions()
	for _, opt := range opts {
		opt(o)
	}

	if err := config.ValidateLocales(o.locales); err != nil {
		return nil, err
	}
	if !slices.Contains(o.locales, o.defaultLocale) {
		return nil, fmt.Errorf("default locale %q is not one of %v", o.defaultLocale, o.locales)
	}

	blog, portfolio := o.blogRepo, o.portfolioRepo
	if blog == nil || portfolio == nil {
		var err error
		blog, portfolio, err = initFS(root, o)
		if err != nil {
			return nil, err
		}
	}

	return content.NewSite(blog, portfolio, content.Config{
		Logger:        o.logger,
		Recorder:      o.recorder,
		Locales:       o.locales,
		DefaultLocale: o.defaultLocale,
		Now:           o.now,
	}), nil
}

// initFS creates the filesystem repositories for both collections.
func initFS(root string, o *options) (core.Repository, core.Repository, error) {
	abs, err := filepath.Abs(root)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to resolve content root: %w", err)
	}

	info, err := os.Stat(abs)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil, fmt.Errorf("content root %s does not exist", abs)
		}
		return nil, nil, fmt.Errorf("failed to stat content root: %w", err)
	}
	if !info.IsDir() {
		return nil, nil, fmt.Errorf("content root %s is not a directory", abs)
	}

	base := fsadapter.Config{
		Include:      o.include,
		Cache:        o.cache,
		Logger:       o.logger,
		Recorder:     o.recorder,
		ErrorHandler: o.errorHandler,
	}

	blogCfg := base
	blogCfg.Name = content.CollectionBlog
	blogCfg.Path = resolve(abs, o.blogDir)
	blogCfg.Layout = fsadapter.LayoutTree
	blogCfg.Locales = o.locales

	portfolioCfg := base
	portfolioCfg.Name = content.CollectionPortfolio
	portfolioCfg.Path = resolve(abs, o.portfolioDir)
	portfolioCfg.Layout = fsadapter.LayoutLocaleDirs
	portfolioCfg.Locales = o.locales

	if o.logger != nil {
		o.logger.Debug("content repositories ready",
			"blog", blogCfg.Path,
			"portfolio", portfolioCfg.Path,
			"cache", o.cache,
		)
	}

	return fsadapter.NewRepository(blogCfg), fsadapter.NewRepository(portfolioCfg), nil
}

func resolve(root, dir string) string {
	if filepath.IsAbs(dir) {
		return dir
	}
	return filepath.Join(root, dir)
}
