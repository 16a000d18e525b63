package server

import (
	"fmt"
	"os"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/10kkyvl/planetarium-api/config"
	"github.com/10kkyvl/planetarium-api/internal/handlers"
	"github.com/10kkyvl/planetarium-api/internal/middleware"
)

func Start() error {
	cfg, err := config.LoadConfig()
	if err != nil {
		return fmt.Errorf("failed to load config: %v", err)
	}

	db, err := config.InitDatabase(cfg)
	if err != nil {
		return fmt.Errorf("failed to initialize database: %v", err)
	}

	r := NewRouter(db)

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	return r.Run(":" + port)
}

func NewRouter(db *gorm.DB) *gin.Engine {
	r := gin.Default()
	setupRoutes(r, db)
	return r
}

func setupRoutes(r *gin.Engine, db *gorm.DB) {
	r.Use(middleware.DatabaseMiddleware(db))

	public := r.Group("")
	{
		user := public.Group("/user")
		{
			user.POST("/register", handlers.Register)
			user.POST("/token", handlers.Token)
			user.POST("/token/refresh", handlers.RefreshToken)
		}

		public.GET("/shows", handlers.ListShows)
		public.GET("/shows/:id", handlers.GetShow)
		public.GET("/sessions", handlers.ListSessions)
		public.GET("/sessions/:id", handlers.GetSession)
		public.GET("/themes", handlers.ListThemes)
		public.GET("/domes", handlers.ListDomes)
	}

	protected := r.Group("")
	protected.Use(middleware.JWTAuthMiddleware())
	{
		protected.GET("/user/me", handlers.GetProfile)

		reservations := protected.Group("/reservations")
		{
			reservations.POST("", handlers.CreateReservation)
			reservations.GET("", handlers.ListReservations)
			reservations.GET("/:id", handlers.GetReservation)
			reservations.GET("/:id/qr", handlers.GetReservationQR)
		}

		staff := protected.Group("")
		staff.Use(middleware.StaffOnlyMiddleware())
		{
			staff.POST("/themes", handlers.CreateTheme)
			staff.PUT("/themes/:id", handlers.UpdateTheme)
			staff.DELETE("/themes/:id", handlers.DeleteTheme)

			staff.POST("/domes", handlers.CreateDome)
			staff.PUT("/domes/:id", handlers.UpdateDome)
			staff.DELETE("/domes/:id", handlers.DeleteDome)

			staff.POST("/shows", handlers.CreateShow)
			staff.PUT("/shows/:id", handlers.UpdateShow)
			staff.DELETE("/shows/:id", handlers.DeleteShow)

			staff.POST("/sessions", handlers.CreateSession)
			staff.PUT("/sessions/:id", handlers.UpdateSession)
			staff.DELETE("/sessions/:id", handlers.DeleteSession)
		}
	}
}
