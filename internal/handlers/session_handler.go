package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/rmorales/eventhub/internal/helpers"
	"github.com/rmorales/eventhub/internal/middleware"
	"github.com/rmorales/eventhub/internal/services"
)

type SessionCreateRequest struct {
	EventID     uuid.UUID `json:"event_id" binding:"required"`
	Title       string    `json:"title" binding:"required"`
	Description string    `json:"description"`
	SpeakerName string    `json:"speaker_name"`
	SpeakerBio  string    `json:"speaker_bio"`
	StartTime   time.Time `json:"start_time" binding:"required"`
	EndTime     time.Time `json:"end_time" binding:"required"`
	Location    string    `json:"location"`
	Capacity    *int      `json:"capacity"`
}

type SessionUpdateRequest struct {
	Title       *string    `json:"title"`
	Description *string    `json:"description"`
	SpeakerName *string    `json:"speaker_name"`
	SpeakerBio  *string    `json:"speaker_bio"`
	StartTime   *time.Time `json:"start_time"`
	EndTime     *time.Time `json:"end_time"`
	Location    *string    `json:"location"`
	Capacity    *int       `json:"capacity"`
}

func GetSession(c *gin.Context) {
	sessionID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		helpers.RespondWithError(c, http.StatusBadRequest, "Invalid session ID.")
		return
	}

	db := middleware.GetDB(c)
	if db == nil {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Database connection not found.")
		return
	}

	session, err := services.GetSession(db, sessionID)
	if err != nil {
		helpers.RespondWithServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, session)
}

func GetEventSessions(c *gin.Context) {
	eventID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		helpers.RespondWithError(c, http.StatusBadRequest, "Invalid event ID.")
		return
	}

	db := middleware.GetDB(c)
	if db == nil {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Database connection not found.")
		return
	}

	page, perPage, ok := parsePageParams(c)
	if !ok {
		return
	}

	sessions, pagination, err := services.GetEventSessions(db, eventID, page, perPage)
	if err != nil {
		helpers.RespondWithServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"sessions":   sessions,
		"pagination": pagination,
	})
}

func CreateSession(c *gin.Context) {
	var req SessionCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		helpers.RespondWithError(c, http.StatusBadRequest, "Invalid input. Please check your fields.")
		return
	}

	db := middleware.GetDB(c)
	if db == nil {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Database connection not found.")
		return
	}

	session, err := services.CreateSession(db, services.SessionCreateInput{
		EventID:     req.EventID,
		Title:       req.Title,
		Description: req.Description,
		SpeakerName: req.SpeakerName,
		SpeakerBio:  req.SpeakerBio,
		StartTime:   req.StartTime,
		EndTime:     req.EndTime,
		Location:    req.Location,
		Capacity:    req.Capacity,
	})
	if err != nil {
		helpers.RespondWithServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, session)
}

func UpdateSession(c *gin.Context) {
	sessionID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		helpers.RespondWithError(c, http.StatusBadRequest, "Invalid session ID.")
		return
	}

	var req SessionUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		helpers.RespondWithError(c, http.StatusBadRequest, "Invalid input. Please check your fields.")
		return
	}

	db := middleware.GetDB(c)
	if db == nil {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Database connection not found.")
		return
	}

	session, err := services.UpdateSession(db, sessionID, services.SessionUpdateInput{
		Title:       req.Title,
		Description: req.Description,
		SpeakerName: req.SpeakerName,
		SpeakerBio:  req.SpeakerBio,
		StartTime:   req.StartTime,
		EndTime:     req.EndTime,
		Location:    req.Location,
		Capacity:    req.Capacity,
	})
	if err != nil {
		helpers.RespondWithServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, session)
}

func DeleteSession(c *gin.Context) {
	sessionID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		helpers.RespondWithError(c, http.StatusBadRequest, "Invalid session ID.")
		return
	}

	db := middleware.GetDB(c)
	if db == nil {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Database connection not found.")
		return
	}

	if err := services.DeleteSession(db, sessionID); err != nil {
		helpers.RespondWithServiceError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
