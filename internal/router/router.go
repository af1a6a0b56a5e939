package router

import (
	"net/http"
	"time"

	"portsanantonio/internal/analytics"
	"portsanantonio/internal/auth"
	"portsanantonio/internal/content"
	"portsanantonio/internal/github"
	"portsanantonio/internal/jobs"
	"portsanantonio/internal/menu"
	"portsanantonio/internal/middleware"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// Services is everything the HTTP surface talks to.
type Services struct {
	Auth      *auth.Service
	Menu      *menu.Service
	Content   *content.Service
	Jobs      *jobs.Service
	Analytics *analytics.Service

	// GitHub may be nil; auto-commit then answers 503.
	GitHub *github.Client

	CORSOrigins []string
}

func NewRouter(s Services) *gin.Engine {
	r := gin.Default()

	r.MaxMultipartMemory = 8 << 20

	origins := s.CORSOrigins
	if len(origins) == 0 {
		origins = []string{"http://localhost:3000", "http://localhost:5173"}
	}

	r.Use(cors.New(cors.Config{
		AllowOrigins:     origins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	// Health check route
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	authHandler := auth.NewHandler(s.Auth)
	menuHandler := menu.NewHandler(s.Menu)
	adminMenuHandler := menu.NewAdminHandler(s.Menu)
	contentHandler := content.NewHandler(s.Content)
	jobsHandler := jobs.NewHandler(s.Jobs)
	analyticsHandler := analytics.NewHandler(s.Analytics)
	githubHandler := github.NewHandler(s.GitHub)

	api := r.Group("/api")

	// ───────────────────────── PUBLIC ─────────────────────────
	api.POST("/auth/login", authHandler.Login)

	api.GET("/menu/dishes", menuHandler.ListDishes)
	api.GET("/menu/dishes/:id", menuHandler.GetDish)
	api.GET("/menu/categories", menuHandler.ListCategories)
	api.POST("/cart/quote", menuHandler.QuoteCart)

	api.GET("/footer", contentHandler.GetFooter)
	api.GET("/legal/:type", contentHandler.GetLegal)

	api.GET("/jobs", jobsHandler.ListOpen())
	api.GET("/jobs/:id", jobsHandler.GetOpen())

	api.POST("/analytics/batch", analyticsHandler.IngestBatch)

	// ───────────────────────── STAFF ─────────────────────────
	me := api.Group("/auth")
	me.Use(middleware.AuthMiddleware())
	{
		me.GET("/me", authHandler.Me)
	}

	admin := api.Group("/admin")
	admin.Use(
		middleware.AuthMiddleware(),
		middleware.RequireStaff(),
	)
	{
		// Menu
		admin.POST("/dishes", adminMenuHandler.CreateDish)
		admin.PUT("/dishes/:id", adminMenuHandler.UpdateDish)
		admin.DELETE("/dishes/:id", adminMenuHandler.DeleteDish)
		admin.POST("/dishes/:id/image", adminMenuHandler.UploadImage)
		admin.PUT("/categories/:id", adminMenuHandler.UpsertCategory)

		// Content
		admin.PUT("/footer", contentHandler.SaveFooter)
		admin.PUT("/legal/:type", contentHandler.SaveLegal)

		// Jobs
		admin.GET("/jobs", jobsHandler.ListAll())
		admin.POST("/jobs", jobsHandler.Create())
		admin.PUT("/jobs/:id", jobsHandler.Update())
		admin.DELETE("/jobs/:id", jobsHandler.Delete())

		// Analytics
		admin.GET("/analytics/summary", analyticsHandler.Summary)
	}

	// ───────────────────────── ADMIN ONLY ─────────────────────────
	owner := api.Group("/admin")
	owner.Use(
		middleware.AuthMiddleware(),
		middleware.RequireRole(auth.RoleAdmin),
	)
	{
		owner.POST("/staff", authHandler.CreateStaff)
		owner.POST("/auto-commit", githubHandler.AutoCommit)
	}

	return r
}
