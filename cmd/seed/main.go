package main

import (
	"github.com/SerhiiAndruschenko/aidevpulse/model"
	"github.com/SerhiiAndruschenko/aidevpulse/store"
	"github.com/SerhiiAndruschenko/aidevpulse/utils"
	"github.com/SerhiiAndruschenko/aidevpulse/utils/dotenv"
	appflag "github.com/SerhiiAndruschenko/aidevpulse/utils/flag"
	. "github.com/SerhiiAndruschenko/aidevpulse/utils/log"
)

// The default source catalog. Upserted by name, so re-running the seed
// refreshes urls and kinds without duplicating rows or touching ids.
var sources = []model.Source{
	// Frameworks
	{Name: "React Blog", Kind: model.SourceKindRss, Url: "https://react.dev/blog/rss.xml"},
	{Name: "Next.js Blog", Kind: model.SourceKindRss, Url: "https://nextjs.org/blog/feed.xml"},
	{Name: "Vue.js Blog", Kind: model.SourceKindRss, Url: "https://blog.vuejs.org/feed.xml"},
	{Name: "Angular Blog", Kind: model.SourceKindRss, Url: "https://blog.angular.io/feed"},
	{Name: "Svelte Blog", Kind: model.SourceKindRss, Url: "https://svelte.dev/blog/rss.xml"},

	// Platforms
	{Name: "Node.js Blog", Kind: model.SourceKindRss, Url: "https://nodejs.org/en/feed/blog.xml"},
	{Name: "Chrome Releases", Kind: model.SourceKindRss, Url: "https://chromereleases.googleblog.com/feeds/posts/default"},
	{Name: "Firefox Release Notes", Kind: model.SourceKindRss, Url: "https://www.mozilla.org/en-US/firefox/releases/feed.xml"},

	// Cloud & Infrastructure
	{Name: "AWS What's New", Kind: model.SourceKindRss, Url: "https://aws.amazon.com/about-aws/whats-new/recent/feed/"},
	{Name: "Azure Updates", Kind: model.SourceKindRss, Url: "https://azure.microsoft.com/en-us/updates/feed/"},
	{Name: "Google Cloud Release Notes", Kind: model.SourceKindRss, Url: "https://cloud.google.com/feeds/release-notes.xml"},
	{Name: "Vercel Changelog", Kind: model.SourceKindRss, Url: "https://vercel.com/changelog/feed.xml"},
	{Name: "Netlify Changelog", Kind: model.SourceKindRss, Url: "https://www.netlify.com/changelog/feed.xml"},

	// AI/ML
	{Name: "Google AI Blog", Kind: model.SourceKindRss, Url: "https://ai.googleblog.com/feeds/posts/default"},
	{Name: "OpenAI Blog", Kind: model.SourceKindRss, Url: "https://openai.com/blog/rss.xml"},
	{Name: "Meta AI Blog", Kind: model.SourceKindRss, Url: "https://ai.meta.com/blog/rss/"},
	{Name: "Anthropic Blog", Kind: model.SourceKindRss, Url: "https://www.anthropic.com/news/rss"},
	{Name: "Hugging Face Blog", Kind: model.SourceKindRss, Url: "https://huggingface.co/blog/feed.xml"},

	// Databases
	{Name: "MySQL Blog", Kind: model.SourceKindRss, Url: "https://blogs.oracle.com/mysql/feed"},
	{Name: "Redis Blog", Kind: model.SourceKindRss, Url: "https://redis.com/blog/feed/"},

	// Tech press, kept on the fast-trigger allow list
	{Name: "The Verge", Kind: model.SourceKindRss, Url: "https://www.theverge.com/rss/index.xml"},
	{Name: "Ars Technica", Kind: model.SourceKindRss, Url: "https://feeds.arstechnica.com/arstechnica/index"},
	{Name: "Engadget", Kind: model.SourceKindRss, Url: "https://www.engadget.com/rss.xml"},

	// GitHub releases
	{Name: "React GitHub", Kind: model.SourceKindGithub, Url: "facebook/react"},
	{Name: "Next.js GitHub", Kind: model.SourceKindGithub, Url: "vercel/next.js"},
	{Name: "Vue GitHub", Kind: model.SourceKindGithub, Url: "vuejs/core"},
	{Name: "Angular GitHub", Kind: model.SourceKindGithub, Url: "angular/angular"},
	{Name: "Node.js GitHub", Kind: model.SourceKindGithub, Url: "nodejs/node"},
	{Name: "TypeScript GitHub", Kind: model.SourceKindGithub, Url: "microsoft/TypeScript"},
	{Name: "Vite GitHub", Kind: model.SourceKindGithub, Url: "vitejs/vite"},
	{Name: "Bun GitHub", Kind: model.SourceKindGithub, Url: "oven-sh/bun"},
	{Name: "Deno GitHub", Kind: model.SourceKindGithub, Url: "denoland/deno"},

	// npm registry packages
	{Name: "React npm", Kind: model.SourceKindRegistry, Url: "react"},
	{Name: "Next.js npm", Kind: model.SourceKindRegistry, Url: "next"},
	{Name: "TypeScript npm", Kind: model.SourceKindRegistry, Url: "typescript"},

	// Scraped blogs without a usable feed
	{Name: "PostgreSQL News", Kind: model.SourceKindBlog, Url: "https://www.postgresql.org/about/newsarchive/"},
	{Name: "GitHub Changelog", Kind: model.SourceKindBlog, Url: "https://github.blog/changelog/"},
}

func main() {
	appflag.ServiceName = appflag.Seed
	appflag.Parse()
	InitLogger()

	if err := dotenv.LoadDotEnvs(); err != nil {
		panic(err)
	}

	db, err := utils.GetDBConnection()
	if err != nil {
		Log.Fatalf("fail to connect to database: %v", err)
	}
	utils.DatabaseSetupAndMigration(db)

	contentStore := store.NewStore(db)
	for i := range sources {
		source := sources[i]
		source.Active = true
		if err := contentStore.UpsertSource(&source); err != nil {
			Log.Errorf("fail to upsert source %q: %v", source.Name, err)
			continue
		}
		Log.Infof("seeded source %q (%s)", source.Name, source.Kind)
	}
	Log.Infof("seeded %d sources", len(sources))
}
