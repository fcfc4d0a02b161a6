package server

import (
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/aretw0/folio/internal/logfields"
	"github.com/aretw0/folio/pkg/content"
	"github.com/aretw0/folio/pkg/core"
	"github.com/aretw0/folio/pkg/render"
	"github.com/aretw0/folio/pkg/typed"
)

// Handler serves the content API.
type Handler struct {
	site   *content.Site
	logger *slog.Logger
}

// NewHandler creates a handler over site. A nil logger uses the site's logger.
func NewHandler(site *content.Site, logger *slog.Logger) *Handler {
	if logger == nil {
		logger = site.Logger()
	}
	return &Handler{site: site, logger: logger}
}

// ListResponse wraps a list of items.
type ListResponse[T any] struct {
	Items []*typed.Item[T] `json:"items"`
	Count int              `json:"count"`
}

// ItemResponse is a single item, optionally with its rendered body.
type ItemResponse[T any] struct {
	*typed.Item[T]
	HTML     string           `json:"html,omitempty"`
	Headings []render.Heading `json:"headings,omitempty"`
}

// ErrorResponse is returned with every non-2xx status.
type ErrorResponse struct {
	Error string `json:"error"`
	Kind  string `json:"kind"`
}

func (h *Handler) ListPosts(c *gin.Context) {
	items := h.site.Blog.Query(c.Request.Context(), content.PostFilter{
		Category: c.Query("category"),
		Locale:   c.Query("locale"),
		Tag:      c.Query("tag"),
		Featured: queryBool(c, "featured"),
	})
	c.JSON(http.StatusOK, ListResponse[content.BlogMetadata]{Items: items, Count: len(items)})
}

func (h *Handler) GetPost(c *gin.Context) {
	slug := pathParam(c, "slug")
	post, err := h.site.Blog.LoadPost(c.Request.Context(), slug)
	if err != nil {
		h.fail(c, slug, err)
		return
	}
	writeItem(c, h, post)
}

func (h *Handler) RelatedPosts(c *gin.Context) {
	items := h.site.Blog.ListRelated(c.Request.Context(), pathParam(c, "slug"), queryInt(c, "limit"))
	c.JSON(http.StatusOK, ListResponse[content.BlogMetadata]{Items: items, Count: len(items)})
}

func (h *Handler) BlogCategories(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"categories": h.site.Blog.Categories(c.Request.Context())})
}

func (h *Handler) ListProjects(c *gin.Context) {
	items := h.site.Portfolio.Query(c.Request.Context(), content.ProjectFilter{
		Category:   c.Query("category"),
		Locale:     c.Query("locale"),
		Technology: c.Query("technology"),
		Featured:   queryBool(c, "featured"),
	})
	c.JSON(http.StatusOK, ListResponse[content.PortfolioMetadata]{Items: items, Count: len(items)})
}

func (h *Handler) GetProject(c *gin.Context) {
	slug := pathParam(c, "slug")
	project, err := h.site.Portfolio.LoadProject(c.Request.Context(), slug)
	if err != nil {
		h.fail(c, slug, err)
		return
	}
	writeItem(c, h, project)
}

// RelatedProjects relates by metadata id; ?locale= keeps results in one locale.
func (h *Handler) RelatedProjects(c *gin.Context) {
	ctx := c.Request.Context()
	id := c.Param("id")
	limit := queryInt(c, "limit")

	var items []*content.Project
	if locale := c.Query("locale"); locale != "" {
		items = h.site.Portfolio.ListRelatedInLocale(ctx, locale, id, limit)
	} else {
		items = h.site.Portfolio.ListRelated(ctx, id, limit)
	}
	c.JSON(http.StatusOK, ListResponse[content.PortfolioMetadata]{Items: items, Count: len(items)})
}

func (h *Handler) PortfolioCategories(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"categories": h.site.Portfolio.Categories(c.Request.Context())})
}

func (h *Handler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":    "ok",
		"timestamp": time.Now().Format(time.RFC3339),
		"state":     h.site.State(),
	})
}

// writeItem answers with the item, honouring If-None-Match against its fingerprint.
func writeItem[T any](c *gin.Context, h *Handler, item *typed.Item[T]) {
	if item.Fingerprint != "" {
		etag := `"` + item.Fingerprint + `"`
		c.Header("ETag", etag)
		if etagMatch(c.GetHeader("If-None-Match"), etag) {
			c.Status(http.StatusNotModified)
			return
		}
	}
	if !item.ModTime.IsZero() {
		c.Header("Last-Modified", item.ModTime.UTC().Format(http.TimeFormat))
	}

	resp := ItemResponse[T]{Item: item}
	if queryBool(c, "html") {
		html, err := render.HTML(item.Content)
		if err != nil {
			h.logger.Warn("render failed", logfields.Slug(item.Slug), logfields.Error(err))
			c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "render failed", Kind: core.KindIO})
			return
		}
		resp.HTML = html
		resp.Headings = render.Headings(item.Content)
	}
	c.JSON(http.StatusOK, resp)
}

func (h *Handler) fail(c *gin.Context, slug string, err error) {
	kind := core.Kind(err)
	status := http.StatusInternalServerError
	switch kind {
	case core.KindNotFound:
		status = http.StatusNotFound
	case core.KindInvalidID:
		status = http.StatusBadRequest
	case core.KindMalformed:
		status = http.StatusUnprocessableEntity
	case core.KindCanceled:
		// Client went away.
		status = 499
	}
	h.logger.Warn("item request failed", logfields.Slug(slug), logfields.Kind(kind), logfields.Error(err))
	c.JSON(status, ErrorResponse{Error: http.StatusText(status), Kind: kind})
}

func etagMatch(header, etag string) bool {
	if header == "" {
		return false
	}
	for _, candidate := range strings.Split(header, ",") {
		candidate = strings.TrimSpace(candidate)
		candidate = strings.TrimPrefix(candidate, "W/")
		if candidate == "*" || candidate == etag {
			return true
		}
	}
	return false
}

// pathParam returns a catch-all parameter without its leading slash.
func pathParam(c *gin.Context, name string) string {
	return strings.TrimPrefix(c.Param(name), "/")
}

func queryBool(c *gin.Context, name string) bool {
	b, _ := strconv.ParseBool(c.Query(name))
	return b
}

// queryInt returns 0 when the parameter is absent or invalid.
func queryInt(c *gin.Context, name string) int {
	n, _ := strconv.Atoi(c.Query(name))
	return n
}
