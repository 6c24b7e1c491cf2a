// @title           Portfolio Backend API
// @version         1.0.0
// @description     Backend API for the portfolio site: projects with ordered image collections, journey timeline entries, tools and tags, uploads to Supabase Storage, and chat analytics for the admin dashboard.

// @contact.name   API Support

// @license.name  MIT
// @license.url   https://opensource.org/licenses/MIT

// @host      localhost:8080
// @BasePath  /api/v1

// @securityDefinitions.apikey Bearer
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.

package main

import (
	"net/http"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"portfolio-backend/internal/config"
	"portfolio-backend/internal/database"
	"portfolio-backend/internal/handlers"
	"portfolio-backend/internal/middleware"
	"portfolio-backend/internal/services"
	"portfolio-backend/internal/supabase"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load configuration")
	}

	if cfg.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	} else {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	}

	dbClient, err := database.NewClient(cfg.DatabaseURL)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to database")
	}
	defer dbClient.Close()

	migrator, err := database.NewMigrator(cfg.DatabaseURL)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize migrator")
	}
	if err := migrator.Run(); err != nil {
		migrator.Close()
		log.Fatal().Err(err).Msg("migration failed")
	}
	migrator.Close()
	log.Info().Msg("migrations completed")

	supabaseClient, err := supabase.NewClient(cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize Supabase client")
	}

	storageClient, err := supabase.NewStorageClient(cfg.SupabaseURL, cfg.SupabaseServiceKey, cfg.SupabaseStorageBucket)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize storage client")
	}

	realtimeClient := supabase.NewRealtimeClient(supabaseClient.Supabase)

	imageService := services.NewImageService(dbClient, storageClient, realtimeClient)

	projectsHandler := handlers.NewProjectsHandler(dbClient, realtimeClient)
	projectImagesHandler := handlers.NewProjectImagesHandler(dbClient, imageService, realtimeClient)
	journeyHandler := handlers.NewJourneyHandler(dbClient, realtimeClient)
	journeyImagesHandler := handlers.NewJourneyImagesHandler(dbClient, imageService, realtimeClient)
	toolsHandler := handlers.NewToolsHandler(dbClient, realtimeClient)
	tagsHandler := handlers.NewTagsHandler(dbClient, realtimeClient)
	generalInfoHandler := handlers.NewGeneralInfoHandler(dbClient)
	analyticsHandler := handlers.NewAnalyticsHandler(dbClient)

	router := gin.Default()

	router.Use(gin.Logger())
	router.Use(gin.Recovery())
	router.Use(middleware.RequestTimeout(middleware.OutboundTimeout))

	// Health check (no auth)
	router.GET("/health", handlers.HealthHandler)

	// Public reads for the site
	api := router.Group("/api/v1")
	api.GET("/projects", projectsHandler.ListProjects)
	api.GET("/projects/:slug", projectsHandler.GetProjectBySlug)
	api.GET("/journey", journeyHandler.ListEntries)
	api.GET("/tools", toolsHandler.ListTools)
	api.GET("/tags", tagsHandler.ListTags)

	// Admin routes require a Supabase JWT
	admin := api.Group("/admin")
	admin.Use(middleware.AuthMiddleware(cfg))

	admin.POST("/projects", projectsHandler.CreateProject)
	admin.PUT("/projects/:project_id", projectsHandler.UpdateProject)
	admin.DELETE("/projects/:project_id", projectsHandler.DeleteProject)

	admin.POST("/projects/:project_id/images", projectImagesHandler.UploadImages)
	admin.PUT("/projects/:project_id/images/order", projectImagesHandler.UpdateImageOrder)
	admin.DELETE("/project-images/:image_id", projectImagesHandler.DeleteImage)

	admin.GET("/journey/:journey_id", journeyHandler.GetEntry)
	admin.POST("/journey", journeyHandler.CreateEntry)
	admin.PUT("/journey/:journey_id", journeyHandler.UpdateEntry)
	admin.DELETE("/journey/:journey_id", journeyHandler.DeleteEntry)

	admin.POST("/journey/:journey_id/images", journeyImagesHandler.UploadImages)
	admin.PUT("/journey/:journey_id/images/order", journeyImagesHandler.UpdateImageOrder)
	admin.DELETE("/journey-images/:image_id", journeyImagesHandler.DeleteImage)

	admin.POST("/tools", toolsHandler.CreateTool)
	admin.PUT("/tools/:tool_id", toolsHandler.UpdateTool)
	admin.DELETE("/tools/:tool_id", toolsHandler.DeleteTool)

	admin.POST("/tags", tagsHandler.CreateTag)
	admin.PUT("/tags/:tag_id", tagsHandler.UpdateTag)
	admin.DELETE("/tags/:tag_id", tagsHandler.DeleteTag)

	admin.GET("/general-info", generalInfoHandler.ListEntries)
	admin.POST("/general-info", generalInfoHandler.SaveEntry)

	admin.GET("/analytics/chat", analyticsHandler.GetChatAnalytics)
	admin.GET("/analytics/content-usage", analyticsHandler.GetContentUsage)
	admin.GET("/analytics/sessions/:session_id/messages", analyticsHandler.GetSessionMessages)

	port := cfg.Port
	if port == "" {
		port = "8080"
	}

	log.Info().Str("port", port).Msg("server starting")
	if err := http.ListenAndServe(":"+port, router); err != nil {
		log.Fatal().Err(err).Msg("server failed")
	}
}
