package server

import (
	"fmt"
	"os"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/rmorales/eventhub/config"
	"github.com/rmorales/eventhub/internal/handlers"
	"github.com/rmorales/eventhub/internal/middleware"
	"github.com/rmorales/eventhub/internal/models"
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

	r := gin.Default()

	SetupRoutes(r, db, cfg)

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	return r.Run(":" + port)
}

func SetupRoutes(r *gin.Engine, db *gorm.DB, cfg *config.Config) {
	r.Use(middleware.DatabaseMiddleware(db))
	r.Use(middleware.ConfigMiddleware(cfg))

	public := r.Group("/v1")
	{
		auth := public.Group("/auth")
		{
			auth.POST("/register", handlers.Register)
			auth.POST("/login", handlers.Login)
		}

		events := public.Group("/events")
		{
			events.GET("", handlers.ListEvents)
			events.GET("/:id", handlers.GetEvent)
		}

		sessions := public.Group("/sessions")
		{
			sessions.GET("/:id", handlers.GetSession)
			sessions.GET("/event/:id", handlers.GetEventSessions)
		}
	}

	protected := r.Group("/v1")
	protected.Use(middleware.JWTAuthMiddleware(cfg.JWTSecret))
	{
		protected.GET("/auth/me", handlers.Me)

		events := protected.Group("/events")
		events.Use(middleware.RequireRoles(models.RoleOrganizer))
		{
			events.POST("", handlers.CreateEvent)
			events.PUT("/:id", handlers.UpdateEvent)
			events.DELETE("/:id", handlers.DeleteEvent)
			events.GET("/my/events", handlers.GetMyEvents)
		}

		sessions := protected.Group("/sessions")
		sessions.Use(middleware.RequireRoles(models.RoleOrganizer))
		{
			sessions.POST("", handlers.CreateSession)
			sessions.PUT("/:id", handlers.UpdateSession)
			sessions.DELETE("/:id", handlers.DeleteSession)
		}

		attendees := protected.Group("/attendees")
		{
			attendee := attendees.Group("")
			attendee.Use(middleware.RequireRoles(models.RoleAttendee))
			{
				attendee.POST("/register/:eventId", handlers.RegisterToEvent)
				attendee.DELETE("/unregister/:eventId", handlers.UnregisterFromEvent)
				attendee.GET("/my-events", handlers.GetMyRegisteredEvents)
				attendee.GET("/check/:eventId", handlers.CheckRegistration)
				attendee.GET("/ticket/:eventId", handlers.GetRegistrationTicket)
			}

			organizer := attendees.Group("")
			organizer.Use(middleware.RequireRoles(models.RoleOrganizer))
			{
				organizer.GET("/event/:id/attendees", handlers.GetEventAttendees)
				organizer.POST("/validate-ticket", handlers.ValidateTicket)
			}
		}

		users := protected.Group("/users")
		users.Use(middleware.RequireRoles(models.RoleAdmin))
		{
			users.GET("", handlers.ListUsers)
			users.POST("", handlers.CreateUser)
			users.GET("/:id", handlers.GetUser)
			users.PUT("/:id", handlers.UpdateUser)
		}
	}
}
