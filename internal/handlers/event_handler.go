package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/rmorales/eventhub/internal/helpers"
	"github.com/rmorales/eventhub/internal/middleware"
	"github.com/rmorales/eventhub/internal/models"
	"github.com/rmorales/eventhub/internal/services"
	"github.com/rmorales/eventhub/internal/validation"
)

type EventCreateRequest struct {
	Name        string    `json:"name" binding:"required"`
	Description string    `json:"description"`
	Location    string    `json:"location"`
	StartDate   time.Time `json:"start_date" binding:"required"`
	EndDate     time.Time `json:"end_date" binding:"required"`
	Capacity    int       `json:"capacity" binding:"required,gt=0"`
}

type EventUpdateRequest struct {
	Name        *string             `json:"name"`
	Description *string             `json:"description"`
	Location    *string             `json:"location"`
	StartDate   *time.Time          `json:"start_date"`
	EndDate     *time.Time          `json:"end_date"`
	Capacity    *int                `json:"capacity"`
	Status      *models.EventStatus `json:"status"`
}

func ListEvents(c *gin.Context) {
	db := middleware.GetDB(c)
	if db == nil {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Database connection not found.")
		return
	}

	page, perPage, ok := parsePageParams(c)
	if !ok {
		return
	}

	events, pagination, err := services.ListEvents(db, services.EventListParams{
		Page:    page,
		PerPage: perPage,
		Search:  c.Query("search"),
		Status:  models.EventStatus(c.Query("status")),
	})
	if err != nil {
		helpers.RespondWithServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"events":     newEventResponses(events, time.Now().UTC()),
		"pagination": pagination,
	})
}

func GetEvent(c *gin.Context) {
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

	event, err := services.GetEvent(db, eventID, true)
	if err != nil {
		helpers.RespondWithServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, newEventResponse(event, time.Now().UTC()))
}

func CreateEvent(c *gin.Context) {
	var req EventCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		helpers.RespondWithError(c, http.StatusBadRequest, "Invalid input. Please check your fields.")
		return
	}

	user := middleware.GetCurrentUser(c)
	db := middleware.GetDB(c)
	if user == nil || db == nil {
		helpers.RespondWithError(c, http.StatusUnauthorized, "Not authenticated.")
		return
	}

	event, err := services.CreateEvent(db, services.EventCreateInput{
		Name:        req.Name,
		Description: req.Description,
		Location:    req.Location,
		StartDate:   req.StartDate,
		EndDate:     req.EndDate,
		Capacity:    req.Capacity,
	}, user)
	if err != nil {
		helpers.RespondWithServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, newEventResponse(event, time.Now().UTC()))
}

func UpdateEvent(c *gin.Context) {
	eventID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		helpers.RespondWithError(c, http.StatusBadRequest, "Invalid event ID.")
		return
	}

	var req EventUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		helpers.RespondWithError(c, http.StatusBadRequest, "Invalid input. Please check your fields.")
		return
	}

	db := middleware.GetDB(c)
	if db == nil {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Database connection not found.")
		return
	}

	event, err := services.UpdateEvent(db, eventID, validation.EventUpdate{
		Name:        req.Name,
		Description: req.Description,
		Location:    req.Location,
		StartDate:   req.StartDate,
		EndDate:     req.EndDate,
		Capacity:    req.Capacity,
		Status:      req.Status,
	})
	if err != nil {
		helpers.RespondWithServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, newEventResponse(event, time.Now().UTC()))
}

func DeleteEvent(c *gin.Context) {
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

	if err := services.DeleteEvent(db, eventID); err != nil {
		helpers.RespondWithServiceError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

func GetMyEvents(c *gin.Context) {
	user := middleware.GetCurrentUser(c)
	db := middleware.GetDB(c)
	if user == nil || db == nil {
		helpers.RespondWithError(c, http.StatusUnauthorized, "Not authenticated.")
		return
	}

	page, perPage, ok := parsePageParams(c)
	if !ok {
		return
	}

	events, pagination, err := services.GetUserEvents(db, user, page, perPage)
	if err != nil {
		helpers.RespondWithServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"events":     newEventResponses(events, time.Now().UTC()),
		"pagination": pagination,
	})
}
