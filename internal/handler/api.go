package handler

import (
	"github.com/startupsaga/internal/config"
	"github.com/startupsaga/internal/service"
	"gorm.io/gorm"
)

// API bundles shared dependencies for HTTP handlers.
type API struct {
	db          *gorm.DB
	cfg         *config.AppConfig
	redirects   *service.RedirectService
	startups    *service.StartupService
	stories     *service.StoryService
	cities      *service.CityService
	categories  *service.CategoryService
	pages       *service.PageService
	sections    *service.SectionService
	themes      *service.ThemeService
	navigation  *service.NavigationService
	settings    *service.SettingService
	prompts     *service.PromptService
	seo         *service.AISEOService
	media       *service.MediaService
	newsletter  *service.NewsletterService
	mailer      *service.Mailer
	submissions *service.SubmissionService
	sitemap     *service.SitemapService
}

// NewAPI constructs a handler set with shared services.
func NewAPI(db *gorm.DB, cfg *config.AppConfig) *API {
	redirects := service.NewRedirectService(db)
	startups := service.NewStartupService(db, redirects)
	stories := service.NewStoryService(db, redirects)
	prompts := service.NewPromptService(db)
	newsletter := service.NewNewsletterService(db)

	return &API{
		db:          db,
		cfg:         cfg,
		redirects:   redirects,
		startups:    startups,
		stories:     stories,
		cities:      service.NewCityService(db, redirects),
		categories:  service.NewCategoryService(db, redirects),
		pages:       service.NewPageService(db, redirects),
		sections:    service.NewSectionService(db),
		themes:      service.NewThemeService(db),
		navigation:  service.NewNavigationService(db),
		settings:    service.NewSettingService(db),
		prompts:     prompts,
		seo:         service.NewAISEOService(prompts, cfg.GeminiAPIKey, cfg.GeminiModel),
		media:       service.NewMediaService(db, cfg.UploadDir, cfg.UploadURLPath),
		newsletter:  newsletter,
		mailer:      service.NewMailer(cfg, stories, newsletter),
		submissions: service.NewSubmissionService(db, startups),
		sitemap:     service.NewSitemapService(db, cfg.SiteBaseURL),
	}
}

// DB exposes the underlying gorm instance.
func (a *API) DB() *gorm.DB {
	return a.db
}
