package server

import (
	"html/template"
	"time"

	"energy-dashboard/auth"
	"energy-dashboard/confs"
	"energy-dashboard/db"
	"energy-dashboard/handlers"
	httpHandler "energy-dashboard/handlers/http"
	"energy-dashboard/repositories"
	"energy-dashboard/services"
	"energy-dashboard/usecases"
	"energy-dashboard/ws"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type Server struct {
	app *gin.Engine
	db  db.Database
	log *zap.Logger
}

func NewServer(database db.Database, logger *zap.Logger) *Server {
	return &Server{
		app: gin.Default(),
		db:  database,
		log: logger,
	}
}

func (s *Server) Start() {
	// Setup CORS middleware
	config := cors.DefaultConfig()
	config.AllowAllOrigins = true
	config.AllowMethods = []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"}
	config.AllowHeaders = []string{"Origin", "Content-Type", "Accept", "Authorization"}
	config.AllowCredentials = false
	s.app.Use(cors.New(config))

	s.app.SetFuncMap(template.FuncMap{
		"mulf": func(a, b float64) float64 { return a * b },
		"divf": func(a, b float64) float64 { return a / b },
	})
	s.app.LoadHTMLGlob("templates/*.html")

	// Setup healthcheck route
	s.app.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "OK"})
	})

	// Initialize repositories
	userRepo := repositories.NewUserPgRepository(s.db)
	deviceRepo := repositories.NewDevicePgRepository(s.db)
	readingRepo := repositories.NewEnergyReadingPgRepository(s.db)

	// Initialize use cases
	authUseCase := usecases.NewAuthUseCase(userRepo)
	dashboardUseCase := usecases.NewDashboardUseCase(userRepo, deviceRepo, readingRepo)

	// Sessions and live feed
	sessions := auth.NewSessionManager(confs.SessionSecret(), 0)
	manager := ws.NewManager()

	// Ingest service: buffered write-behind plus live broadcast
	ingestor := services.NewReadingIngestor(readingRepo, manager, s.log, 30*time.Second)
	ingestor.Start()

	// Initialize handlers
	registerHandler := httpHandler.NewRegisterHandler(authUseCase, s.log)
	loginHandler := httpHandler.NewLoginHandler(authUseCase, sessions, s.log)
	pageHandler := httpHandler.NewPageHandler(dashboardUseCase, s.log)
	readingsHandler := httpHandler.NewReadingsHandler(deviceRepo, readingRepo, ingestor, s.log)
	wsHandler := handlers.NewWSHandler(manager, deviceRepo, ingestor, s.log)

	// Page routes
	s.app.GET("/", auth.OptionalSession(sessions), pageHandler.Home)
	s.app.GET("/login", auth.RedirectIfAuthenticated(sessions), pageHandler.LoginPage)
	s.app.GET("/register", auth.RedirectIfAuthenticated(sessions), pageHandler.RegisterPage)

	pages := s.app.Group("/", auth.RequireSession(sessions))
	{
		pages.GET("/dashboard", pageHandler.Dashboard)
		pages.GET("/devices", pageHandler.Devices)
		pages.GET("/profile", pageHandler.Profile)
	}

	// API routes
	api := s.app.Group("/api")
	{
		authRoutes := api.Group("/auth")
		{
			authRoutes.POST("/register", registerHandler.Register)
			authRoutes.POST("/login", loginHandler.Login)
			authRoutes.POST("/logout", loginHandler.Logout)
		}

		authed := api.Group("/", auth.RequireSessionAPI(sessions))
		{
			authed.GET("/dashboard", pageHandler.DashboardJSON)
			authed.POST("/readings", readingsHandler.Ingest)
			authed.GET("/devices/:id/readings", readingsHandler.ListForDevice)
		}
	}

	// Live readings feed for dashboard viewers
	s.app.GET("/ws/readings", auth.RequireSession(sessions), wsHandler.HandleReadingsWS)

	addr := confs.ListenAddr()
	s.log.Info("server listening", zap.String("addr", addr))
	if err := s.app.Run(addr); err != nil {
		s.log.Fatal("server exited", zap.Error(err))
	}
}
