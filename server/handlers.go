// Package server wires the trigger surface and the thin read surface onto
// gin. All content work happens in the pipeline and reviewer packages; the
// handlers only translate between HTTP and those entry points.
package server

import (
	"context"
	"encoding/xml"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/SerhiiAndruschenko/aidevpulse/model"
	"github.com/SerhiiAndruschenko/aidevpulse/pipeline"
	"github.com/SerhiiAndruschenko/aidevpulse/reviewer"
	"github.com/SerhiiAndruschenko/aidevpulse/server/middlewares"
	"github.com/SerhiiAndruschenko/aidevpulse/store"
	Logger "github.com/SerhiiAndruschenko/aidevpulse/utils/log"
)

// Wall-clock budget of the fast trigger path. Schedulers calling it expect a
// response well before their own 5 minute timeout.
const fastTriggerBudget = 4 * time.Minute

const defaultPageSize = 20
const maxPageSize = 100

// Handler carries the dependencies of every route.
type Handler struct {
	Store    *store.Store
	Pipeline *pipeline.Pipeline
	Reviewer *reviewer.Reviewer
	SiteUrl  string
}

func NewHandler(s *store.Store, p *pipeline.Pipeline, r *reviewer.Reviewer, siteUrl string) *Handler {
	return &Handler{Store: s, Pipeline: p, Reviewer: r, SiteUrl: siteUrl}
}

// RegisterRoutes binds all endpoints. Cron routes sit behind the shared
// secret, the read surface is public.
func (h *Handler) RegisterRoutes(router *gin.Engine, cronSecret string) {
	router.GET("/healthz", h.Healthz)
	router.GET("/rss.xml", h.RssFeed)
	router.GET("/sitemap.xml", h.Sitemap)

	api := router.Group("/api")
	api.GET("/articles", h.ListArticles)
	api.GET("/articles/:slug", h.GetArticle)
	api.GET("/tags", h.ListTags)
	api.GET("/tags/:name", h.ListArticlesByTag)

	cron := api.Group("/cron", middlewares.CronAuth(cronSecret))
	cron.POST("/content-pipeline", h.RunContentPipeline)
	cron.GET("/content-pipeline", usage("POST with Authorization: Bearer <secret> to run the full content pipeline"))
	cron.POST("/ingest", h.RunIngest)
	cron.GET("/ingest", usage("POST with Authorization: Bearer <secret> to ingest all active sources"))
	cron.POST("/generate-article", h.RunGenerate)
	cron.GET("/generate-article", usage("POST with Authorization: Bearer <secret> to generate articles from ingested items"))
	cron.POST("/quality-check", h.RunQualityCheck)
	cron.GET("/quality-check", usage("POST with Authorization: Bearer <secret> to run quality checks on pending articles"))
	// GET is kept alongside POST: some external schedulers can only issue GET.
	cron.POST("/trigger", h.RunFastTrigger)
	cron.GET("/trigger", h.RunFastTrigger)
}

// usage returns the static description served on GET for POST-only triggers.
func usage(message string) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"success": true,
			"message": message,
		})
	}
}

// articleDigest is the compact article shape inside run results.
type articleDigest struct {
	Id           string    `json:"id"`
	Title        string    `json:"title"`
	Slug         string    `json:"slug"`
	PublishedAt  time.Time `json:"published_at"`
	ReviewStatus string    `json:"review_status"`
}

func digests(articles []model.Article) []articleDigest {
	out := make([]articleDigest, 0, len(articles))
	for _, article := range articles {
		out = append(out, articleDigest{
			Id:           article.Id,
			Title:        article.Title,
			Slug:         article.Slug,
			PublishedAt:  article.PublishedAt,
			ReviewStatus: article.ReviewStatus,
		})
	}
	return out
}

func runResults(summary *pipeline.RunSummary) gin.H {
	return gin.H{
		"ingested_count":     summary.IngestedCount,
		"articles_generated": summary.ArticlesGenerated,
		"articles":           digests(summary.Articles),
		"failed_candidates":  summary.FailedCandidates,
		"rejected_count":     summary.RejectedCount,
		"pruned_items":       summary.PrunedItems,
	}
}

func serverError(c *gin.Context, message string, err error) {
	Logger.Log.Errorf("%s: %v", message, err)
	c.JSON(http.StatusInternalServerError, gin.H{
		"error":   message,
		"details": err.Error(),
	})
}

// RunContentPipeline executes the full run: ingest, generate, prune.
func (h *Handler) RunContentPipeline(c *gin.Context) {
	summary, err := h.Pipeline.Run(c.Request.Context())
	if err != nil {
		serverError(c, "Content pipeline failed", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Content pipeline completed",
		"results": runResults(summary),
	})
}

// RunIngest executes only the ingestion stage.
func (h *Handler) RunIngest(c *gin.Context) {
	ingested, err := h.Pipeline.Ingest(c.Request.Context())
	if err != nil {
		serverError(c, "Ingestion failed", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Ingestion completed",
		"results": gin.H{"ingested_count": ingested},
	})
}

// RunGenerate executes rank-select-generate over already ingested items.
func (h *Handler) RunGenerate(c *gin.Context) {
	summary, err := h.Pipeline.Generate(c.Request.Context())
	if err != nil {
		serverError(c, "Article generation failed", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Article generation completed",
		"results": runResults(summary),
	})
}

// RunQualityCheck reviews pending articles and promotes the ones that pass.
func (h *Handler) RunQualityCheck(c *gin.Context) {
	promoted, err := h.Reviewer.RunQualityChecks(c.Request.Context())
	if err != nil {
		serverError(c, "Quality check failed", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Quality check completed",
		"results": gin.H{"promoted_count": promoted},
	})
}

// RunFastTrigger is the scheduler-friendly bounded run: allow-listed sources,
// and a hard wall-clock budget enforced through the request context.
func (h *Handler) RunFastTrigger(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), fastTriggerBudget)
	defer cancel()

	summary, err := h.Pipeline.RunFast(ctx)
	if err != nil {
		if ctx.Err() == context.DeadlineExceeded {
			c.JSON(http.StatusOK, gin.H{
				"success": false,
				"message": "Run exceeded the time budget; partial results returned",
				"results": runResults(summary),
			})
			return
		}
		serverError(c, "Fast trigger failed", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Fast pipeline completed",
		"results": runResults(summary),
	})
}

// ListArticles serves the paginated article index.
func (h *Handler) ListArticles(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	if page < 1 {
		page = 1
	}
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", strconv.Itoa(defaultPageSize)))
	if limit < 1 || limit > maxPageSize {
		limit = defaultPageSize
	}

	articles, err := h.Store.ListArticles(limit, (page-1)*limit)
	if err != nil {
		serverError(c, "Failed to list articles", err)
		return
	}
	total, err := h.Store.CountArticles()
	if err != nil {
		serverError(c, "Failed to count articles", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"articles": articles,
		"page":     page,
		"limit":    limit,
		"total":    total,
	})
}

// GetArticle serves one article with its citations and tags.
func (h *Handler) GetArticle(c *gin.Context) {
	article, err := h.Store.GetArticleWithRelations(c.Param("slug"))
	if err != nil {
		serverError(c, "Failed to load article", err)
		return
	}
	if article == nil {
		c.JSON(http.StatusNotFound, gin.H{
			"error":   "Article not found",
			"details": c.Param("slug"),
		})
		return
	}
	c.JSON(http.StatusOK, article)
}

// ListTags serves all known tags.
func (h *Handler) ListTags(c *gin.Context) {
	tags, err := h.Store.ListTags()
	if err != nil {
		serverError(c, "Failed to list tags", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"tags": tags})
}

// ListArticlesByTag serves the articles carrying one tag.
func (h *Handler) ListArticlesByTag(c *gin.Context) {
	articles, err := h.Store.ListArticlesByTag(c.Param("name"), maxPageSize, 0)
	if err != nil {
		serverError(c, "Failed to list articles by tag", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"tag":      c.Param("name"),
		"articles": articles,
	})
}

// Healthz is the liveness probe.
func (h *Handler) Healthz(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// rssItem / rssFeed are the direct serialization of recent articles; no
// templating layer, the shape is fixed.
type rssItem struct {
	Title       string `xml:"title"`
	Link        string `xml:"link"`
	Description string `xml:"description"`
	PubDate     string `xml:"pubDate"`
	Guid        string `xml:"guid"`
}

type rssChannel struct {
	Title       string    `xml:"title"`
	Link        string    `xml:"link"`
	Description string    `xml:"description"`
	Items       []rssItem `xml:"item"`
}

type rssFeed struct {
	XMLName xml.Name   `xml:"rss"`
	Version string     `xml:"version,attr"`
	Channel rssChannel `xml:"channel"`
}

// RssFeed serves the most recent articles as RSS 2.0.
func (h *Handler) RssFeed(c *gin.Context) {
	articles, err := h.Store.ListArticles(defaultPageSize, 0)
	if err != nil {
		serverError(c, "Failed to build feed", err)
		return
	}

	feed := rssFeed{
		Version: "2.0",
		Channel: rssChannel{
			Title:       "AiDevPulse",
			Link:        h.SiteUrl,
			Description: "AI-assisted developer news digests",
		},
	}
	for _, article := range articles {
		feed.Channel.Items = append(feed.Channel.Items, rssItem{
			Title:       article.Title,
			Link:        h.SiteUrl + "/articles/" + article.Slug,
			Description: article.Dek,
			PubDate:     article.PublishedAt.Format(time.RFC1123Z),
			Guid:        h.SiteUrl + "/articles/" + article.Slug,
		})
	}

	c.XML(http.StatusOK, feed)
}

type sitemapUrl struct {
	Loc     string `xml:"loc"`
	LastMod string `xml:"lastmod,omitempty"`
}

type sitemap struct {
	XMLName xml.Name     `xml:"urlset"`
	Xmlns   string       `xml:"xmlns,attr"`
	Urls    []sitemapUrl `xml:"url"`
}

// Sitemap serves every article url plus the site root.
func (h *Handler) Sitemap(c *gin.Context) {
	articles, err := h.Store.ListArticles(maxPageSize*10, 0)
	if err != nil {
		serverError(c, "Failed to build sitemap", err)
		return
	}

	out := sitemap{
		Xmlns: "http://www.sitemaps.org/schemas/sitemap/0.9",
		Urls:  []sitemapUrl{{Loc: h.SiteUrl}},
	}
	for _, article := range articles {
		out.Urls = append(out.Urls, sitemapUrl{
			Loc:     h.SiteUrl + "/articles/" + article.Slug,
			LastMod: article.PublishedAt.Format("2006-01-02"),
		})
	}

	c.XML(http.StatusOK, out)
}
