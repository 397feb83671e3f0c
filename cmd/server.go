package cmd

import (
	"log"
	"os"
	"strconv"

	"github.com/gin-gonic/gin"

	"ytmp3/config"
	"ytmp3/handlers"
	"ytmp3/middleware"
	"ytmp3/services"
	"ytmp3/websocket"
)

// StartWebServer starts the web server
func StartWebServer(port int) {
	// Set production mode if not specified
	if mode := os.Getenv("GIN_MODE"); mode != "" {
		gin.SetMode(mode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}

	if err := config.EnsureScratchDir(); err != nil {
		log.Fatalf("Failed to create scratch directory %s: %v", config.GetScratchDir(), err)
	}

	// Initialize services
	hub := websocket.NewHub()
	go hub.Run()

	store, err := services.NewSessionStore(config.GetSessionTTL())
	if err != nil {
		log.Fatalf("Failed to initialize session store: %v", err)
	}
	groups := services.NewGroupProvider(store)

	resolver := services.NewYouTubeResolver()
	transcoder := services.NewFFmpegTranscoder(config.GetFFmpegPath())
	converter := services.NewConverter(resolver, transcoder, hub, config.GetScratchDir())
	fileService := services.NewFileService()

	// Initialize handlers
	convertHandler := handlers.NewConvertHandler(converter, groups, hub, fileService)
	progressHandler := handlers.NewProgressHandler(hub)
	healthHandler := handlers.NewHealthHandler()

	// Setup router
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.CORS())
	r.Use(middleware.Logging())
	r.SetHTMLTemplate(handlers.LoadTemplates())

	setupRoutes(r, convertHandler, progressHandler, healthHandler)

	// Start server
	portStr := strconv.Itoa(port)
	if serverPort := os.Getenv("SERVER_PORT"); serverPort != "" {
		portStr = serverPort
	}

	log.Printf("ytmp3 web server starting on port %s", portStr)
	if err := r.Run(":" + portStr); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}

// setupRoutes configures all the HTTP routes
func setupRoutes(r *gin.Engine, convertHandler *handlers.ConvertHandler, progressHandler *handlers.ProgressHandler, healthHandler *handlers.HealthHandler) {
	// Health check endpoint
	r.GET("/health", healthHandler.HealthCheck)

	// Conversion page and form submission
	r.GET("/", convertHandler.Index)
	r.POST("/", convertHandler.Convert)

	// Auxiliary read-only endpoints
	r.GET("/group-id", convertHandler.GroupID)
	r.GET("/test-progress", convertHandler.TestProgress)

	// WebSocket endpoint for real-time progress
	r.GET("/ws", progressHandler.HandleConnection)
}
