package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/rmorales/eventhub/internal/helpers"
	"github.com/rmorales/eventhub/internal/middleware"
	"github.com/rmorales/eventhub/internal/services"
)

type RegisterRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
	FullName string `json:"full_name"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

func Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		helpers.RespondWithError(c, http.StatusBadRequest, "Invalid input. Please check your fields.")
		return
	}

	db := middleware.GetDB(c)
	if db == nil {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Database connection not found.")
		return
	}

	user, err := services.RegisterUser(db, req.Email, req.Password, req.FullName)
	if err != nil {
		helpers.RespondWithServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "User registered successfully.",
		"user":    user,
	})
}

func Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		helpers.RespondWithError(c, http.StatusBadRequest, "Invalid input. Please check your fields.")
		return
	}

	db := middleware.GetDB(c)
	cfg := middleware.GetConfig(c)
	if db == nil || cfg == nil {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Server configuration not found.")
		return
	}

	user, err := services.AuthenticateUser(db, req.Email, req.Password)
	if err != nil {
		helpers.RespondWithError(c, http.StatusUnauthorized, "Invalid credentials.")
		return
	}

	token, err := helpers.CreateAccessToken(user.Email, cfg.JWTSecret, cfg.JWTExpireMinutes)
	if err != nil {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Failed to generate token.")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"access_token": token,
		"token_type":   "bearer",
		"user": gin.H{
			"id":    user.ID,
			"email": user.Email,
			"role":  user.Role,
		},
	})
}

// Me returns the authenticated user's profile together with the events
// they created and the events they are registered to.
func Me(c *gin.Context) {
	user := middleware.GetCurrentUser(c)
	db := middleware.GetDB(c)
	if user == nil || db == nil {
		helpers.RespondWithError(c, http.StatusUnauthorized, "Not authenticated.")
		return
	}

	createdEvents, err := services.GetUserEventsAll(db, user.ID)
	if err != nil {
		helpers.RespondWithServiceError(c, err)
		return
	}
	registeredEvents, err := services.GetUserRegisteredEventsAll(db, user.ID)
	if err != nil {
		helpers.RespondWithServiceError(c, err)
		return
	}

	now := time.Now().UTC()
	c.JSON(http.StatusOK, gin.H{
		"user":              user,
		"created_events":    newEventResponses(createdEvents, now),
		"registered_events": newEventResponses(registeredEvents, now),
	})
}
