package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/rmorales/eventhub/internal/helpers"
	"github.com/rmorales/eventhub/internal/models"
)

// EventResponse augments the stored event with its derived values,
// evaluated once per response so list and detail views agree.
type EventResponse struct {
	*models.Event
	ComputedStatus    models.EventStatus `json:"computed_status"`
	AvailableCapacity int                `json:"available_capacity"`
	IsFull            bool               `json:"is_full"`
}

func newEventResponse(event *models.Event, now time.Time) EventResponse {
	return EventResponse{
		Event:             event,
		ComputedStatus:    event.ComputedStatusAt(now),
		AvailableCapacity: event.AvailableCapacity(),
		IsFull:            event.IsFull(),
	}
}

func newEventResponses(events []models.Event, now time.Time) []EventResponse {
	responses := make([]EventResponse, 0, len(events))
	for i := range events {
		responses = append(responses, newEventResponse(&events[i], now))
	}
	return responses
}

// parsePageParams reads ?page= and ?per_page= with the list defaults.
func parsePageParams(c *gin.Context) (int, int, bool) {
	page, err := helpers.StringToInt(c.DefaultQuery("page", "1"))
	if err != nil {
		helpers.RespondWithError(c, http.StatusBadRequest, "Invalid page number.")
		return 0, 0, false
	}
	perPage, err := helpers.StringToInt(c.DefaultQuery("per_page", "20"))
	if err != nil {
		helpers.RespondWithError(c, http.StatusBadRequest, "Invalid per_page value.")
		return 0, 0, false
	}
	return page, perPage, true
}
