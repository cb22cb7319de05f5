package router

import (
	"net/http"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"github.com/startupsaga/internal/config"
	"github.com/startupsaga/internal/handler"
	"gorm.io/gorm"
)

// Setup configures the Gin engine with the public and admin API surfaces.
func Setup(gdb *gorm.DB, cfg *config.AppConfig) *gin.Engine {
	gin.SetMode(cfg.GinMode)
	r := gin.Default()

	store := cookie.NewStore([]byte(cfg.SessionSecret))
	r.Use(sessions.Sessions("startupsaga_session", store))

	r.Static(cfg.UploadURLPath, cfg.UploadDir)

	api := handler.NewAPI(gdb, cfg)

	r.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong"})
	})
	r.GET("/sitemap.xml", api.Sitemap)
	r.GET("/robots.txt", api.Robots)

	public := r.Group("/api")
	{
		public.GET("/startups", api.ListStartups)
		public.GET("/startups/:slug", api.GetStartupBySlug)
		public.GET("/stories", api.ListStories)
		public.GET("/stories/trending", api.TrendingStories)
		public.GET("/stories/:slug", api.GetStoryBySlug)
		public.GET("/cities", api.ListCities)
		public.GET("/cities/:slug", api.GetCityBySlug)
		public.GET("/categories", api.ListCategories)
		public.GET("/categories/:slug", api.GetCategoryBySlug)
		public.GET("/pages/:slug", api.GetPageBySlug)
		public.GET("/sections", api.ListSections)
		public.GET("/theme", api.GetGlobalTheme)
		public.GET("/navigation", api.GetNavigation)
		public.GET("/settings/layout", api.GetLayoutSettings)
		public.GET("/settings/footer", api.GetFooterSettings)
		public.GET("/redirects/resolve", api.ResolveRedirect)

		public.POST("/newsletter/subscribe", api.SubscribeNewsletter)
		public.GET("/newsletter/unsubscribe", api.UnsubscribeNewsletter)
		public.POST("/submissions", api.CreateSubmission)
	}

	admin := r.Group("/admin")
	{
		admin.POST("/login", api.Login)
		admin.POST("/logout", api.Logout)

		auth := admin.Group("/api")
		auth.Use(handler.AuthRequired())
		{
			auth.GET("/me", api.Me)

			auth.GET("/startups", api.AdminListStartups)
			auth.GET("/startups/:id", api.GetStartup)
			auth.POST("/startups", api.CreateStartup)
			auth.PUT("/startups/:id", api.UpdateStartup)
			auth.DELETE("/startups/:id", api.DeleteStartup)

			auth.GET("/stories", api.AdminListStories)
			auth.GET("/stories/:id", api.GetStory)
			auth.POST("/stories", api.CreateStory)
			auth.PUT("/stories/:id", api.UpdateStory)
			auth.DELETE("/stories/:id", api.DeleteStory)

			auth.GET("/cities", api.AdminListCities)
			auth.POST("/cities", api.CreateCity)
			auth.PUT("/cities/:id", api.UpdateCity)
			auth.DELETE("/cities/:id", api.DeleteCity)

			auth.GET("/categories", api.AdminListCategories)
			auth.POST("/categories", api.CreateCategory)
			auth.PUT("/categories/:id", api.UpdateCategory)
			auth.DELETE("/categories/:id", api.DeleteCategory)

			auth.GET("/pages", api.ListPages)
			auth.GET("/pages/:id", api.GetPage)
			auth.POST("/pages", api.CreatePage)
			auth.PUT("/pages/:id", api.UpdatePage)
			auth.DELETE("/pages/:id", api.DeletePage)

			auth.GET("/sections", api.AdminListSections)
			auth.POST("/sections", api.CreateSection)
			auth.PUT("/sections/:id", api.UpdateSection)
			auth.DELETE("/sections/:id", api.DeleteSection)

			auth.GET("/theme/:key", api.GetPageTheme)
			auth.PUT("/theme/:key", api.SetPageTheme)

			auth.GET("/navigation", api.AdminListNavigation)
			auth.POST("/navigation", api.CreateNavItem)
			auth.PUT("/navigation/:id", api.UpdateNavItem)
			auth.DELETE("/navigation/:id", api.DeleteNavItem)

			auth.GET("/settings/layout", api.GetLayoutSettings)
			auth.PUT("/settings/layout", api.UpsertLayoutSettings)
			auth.GET("/settings/seo", api.GetSEOSettings)
			auth.PUT("/settings/seo", api.UpsertSEOSettings)

			auth.GET("/prompts", api.ListPrompts)
			auth.GET("/prompts/:id", api.GetPrompt)
			auth.POST("/prompts", api.CreatePrompt)
			auth.PUT("/prompts/:id", api.UpdatePrompt)
			auth.DELETE("/prompts/:id", api.DeletePrompt)
			auth.POST("/prompts/apply-defaults", api.ApplyDefaultPrompts)

			auth.POST("/ai/seo", api.GenerateSEO)
			auth.POST("/ai/generate", api.GeneratePrompted)

			auth.GET("/newsletter/subscribers", api.AdminListSubscribers)
			auth.GET("/newsletter/templates", api.ListNewsletterTemplates)
			auth.POST("/newsletter/templates", api.CreateNewsletterTemplate)
			auth.PUT("/newsletter/templates/:id", api.UpdateNewsletterTemplate)
			auth.DELETE("/newsletter/templates/:id", api.DeleteNewsletterTemplate)
			auth.GET("/newsletter/preview", api.PreviewNewsletter)
			auth.POST("/newsletter/send", api.SendNewsletter)

			auth.GET("/submissions", api.AdminListSubmissions)
			auth.GET("/submissions/:id", api.GetSubmission)
			auth.POST("/submissions/:id/approve", api.ApproveSubmission)
			auth.POST("/submissions/:id/reject", api.RejectSubmission)
			auth.DELETE("/submissions/:id", api.DeleteSubmission)

			auth.GET("/media", api.ListMedia)
			auth.POST("/media", api.CreateMedia)
			auth.DELETE("/media/:id", api.DeleteMedia)
			auth.POST("/upload/image", api.UploadImage)

			auth.GET("/redirects", api.AdminListRedirects)
		}
	}

	return r
}
