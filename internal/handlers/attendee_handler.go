package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/skip2/go-qrcode"

	"github.com/rmorales/eventhub/internal/helpers"
	"github.com/rmorales/eventhub/internal/middleware"
	"github.com/rmorales/eventhub/internal/services"
)

type ValidateTicketRequest struct {
	TicketData string `json:"ticket_data" binding:"required"`
}

func RegisterToEvent(c *gin.Context) {
	eventID, err := uuid.Parse(c.Param("eventId"))
	if err != nil {
		helpers.RespondWithError(c, http.StatusBadRequest, "Invalid event ID.")
		return
	}

	user := middleware.GetCurrentUser(c)
	db := middleware.GetDB(c)
	if user == nil || db == nil {
		helpers.RespondWithError(c, http.StatusUnauthorized, "Not authenticated.")
		return
	}

	registration, err := services.RegisterToEvent(db, eventID, user)
	if err != nil {
		helpers.RespondWithServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Successfully registered to the event.",
		"data": gin.H{
			"event_id":      eventID,
			"registered_at": registration.RegisteredAt,
		},
	})
}

func UnregisterFromEvent(c *gin.Context) {
	eventID, err := uuid.Parse(c.Param("eventId"))
	if err != nil {
		helpers.RespondWithError(c, http.StatusBadRequest, "Invalid event ID.")
		return
	}

	user := middleware.GetCurrentUser(c)
	db := middleware.GetDB(c)
	if user == nil || db == nil {
		helpers.RespondWithError(c, http.StatusUnauthorized, "Not authenticated.")
		return
	}

	if err := services.UnregisterFromEvent(db, eventID, user); err != nil {
		helpers.RespondWithServiceError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

func GetMyRegisteredEvents(c *gin.Context) {
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

	events, pagination, err := services.GetUserRegisteredEvents(db, user, page, perPage)
	if err != nil {
		helpers.RespondWithServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"events":     newEventResponses(events, time.Now().UTC()),
		"pagination": pagination,
	})
}

func GetEventAttendees(c *gin.Context) {
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

	attendees, err := services.GetEventAttendees(db, eventID)
	if err != nil {
		helpers.RespondWithServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, attendees)
}

func CheckRegistration(c *gin.Context) {
	eventID, err := uuid.Parse(c.Param("eventId"))
	if err != nil {
		helpers.RespondWithError(c, http.StatusBadRequest, "Invalid event ID.")
		return
	}

	user := middleware.GetCurrentUser(c)
	db := middleware.GetDB(c)
	if user == nil || db == nil {
		helpers.RespondWithError(c, http.StatusUnauthorized, "Not authenticated.")
		return
	}

	registered, err := services.IsUserRegistered(db, eventID, user.ID)
	if err != nil {
		helpers.RespondWithServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"is_registered": registered})
}

// GetRegistrationTicket renders the caller's registration as a signed
// QR code for event check-in.
func GetRegistrationTicket(c *gin.Context) {
	eventID, err := uuid.Parse(c.Param("eventId"))
	if err != nil {
		helpers.RespondWithError(c, http.StatusBadRequest, "Invalid event ID.")
		return
	}

	user := middleware.GetCurrentUser(c)
	db := middleware.GetDB(c)
	cfg := middleware.GetConfig(c)
	if user == nil || db == nil || cfg == nil {
		helpers.RespondWithError(c, http.StatusUnauthorized, "Not authenticated.")
		return
	}

	registration, err := services.GetActiveRegistration(db, eventID, user.ID)
	if err != nil {
		helpers.RespondWithServiceError(c, err)
		return
	}

	payload := helpers.BuildTicketPayload(registration.ID, registration.EventID, registration.UserID, cfg.JWTSecret)
	image, err := qrcode.Encode(payload, qrcode.Medium, 256)
	if err != nil {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Failed to generate QR code.")
		return
	}

	c.Data(http.StatusOK, "image/png", image)
}

// ValidateTicket lets an organizer check scanned QR data at the door:
// the signature must match and the registration must still be active.
func ValidateTicket(c *gin.Context) {
	var req ValidateTicketRequest
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

	if !helpers.ValidateTicketSignature(req.TicketData, cfg.JWTSecret) {
		helpers.RespondWithError(c, http.StatusBadRequest, "Invalid ticket signature.")
		return
	}

	_, eventID, userID, err := helpers.ParseTicketPayload(req.TicketData)
	if err != nil {
		helpers.RespondWithError(c, http.StatusBadRequest, "Invalid ticket data.")
		return
	}

	registered, err := services.IsUserRegistered(db, eventID, userID)
	if err != nil {
		helpers.RespondWithServiceError(c, err)
		return
	}
	if !registered {
		helpers.RespondWithError(c, http.StatusNotFound, "Registration not found or cancelled.")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"valid":    true,
		"event_id": eventID,
		"user_id":  userID,
	})
}
