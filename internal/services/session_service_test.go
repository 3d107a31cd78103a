package services

import (
	"net/http"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/rmorales/eventhub/internal/helpers"
	"github.com/rmorales/eventhub/internal/models"
)

func sessionTestEvent(t *testing.T, db *gorm.DB) (*models.User, *models.Event) {
	t.Helper()
	organizer := createTestUser(t, db, "organizer@example.com", models.RoleOrganizer)
	now := time.Now().UTC()
	event := createTestEvent(t, db, organizer, "Conference", now.Add(24*time.Hour), now.Add(72*time.Hour), 50)
	return organizer, event
}

func TestCreateSessionWindowValidation(t *testing.T) {
	db := newTestDB(t)
	_, event := sessionTestEvent(t, db)

	tests := []struct {
		name    string
		start   time.Time
		end     time.Time
		wantErr bool
	}{
		{"inside the event window", event.StartDate.Add(time.Hour), event.StartDate.Add(2 * time.Hour), false},
		{"exactly the event window", event.StartDate, event.EndDate, false},
		{"starts before the event", event.StartDate.Add(-time.Hour), event.StartDate.Add(time.Hour), true},
		{"ends after the event", event.EndDate.Add(-time.Hour), event.EndDate.Add(time.Hour), true},
		{"end before start", event.StartDate.Add(2 * time.Hour), event.StartDate.Add(time.Hour), true},
		{"zero duration", event.StartDate.Add(time.Hour), event.StartDate.Add(time.Hour), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := CreateSession(db, SessionCreateInput{
				EventID:   event.ID,
				Title:     "Talk",
				StartTime: tt.start,
				EndTime:   tt.end,
			})
			if tt.wantErr {
				assert.True(t, helpers.IsAPIErrorWithStatus(err, http.StatusBadRequest), "got %v", err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestCreateSessionCapacityValidation(t *testing.T) {
	db := newTestDB(t)
	_, event := sessionTestEvent(t, db)

	over := event.Capacity + 1
	_, err := CreateSession(db, SessionCreateInput{
		EventID:   event.ID,
		Title:     "Oversized",
		StartTime: event.StartDate,
		EndTime:   event.StartDate.Add(time.Hour),
		Capacity:  &over,
	})
	assert.True(t, helpers.IsAPIErrorWithStatus(err, http.StatusBadRequest))

	zero := 0
	_, err = CreateSession(db, SessionCreateInput{
		EventID:   event.ID,
		Title:     "Empty",
		StartTime: event.StartDate,
		EndTime:   event.StartDate.Add(time.Hour),
		Capacity:  &zero,
	})
	assert.True(t, helpers.IsAPIErrorWithStatus(err, http.StatusBadRequest))

	// No capacity means unlimited within the event.
	session, err := CreateSession(db, SessionCreateInput{
		EventID:   event.ID,
		Title:     "Open Session",
		StartTime: event.StartDate,
		EndTime:   event.StartDate.Add(time.Hour),
	})
	require.NoError(t, err)
	assert.Nil(t, session.Capacity)
}

func TestCreateSessionEventNotFound(t *testing.T) {
	db := newTestDB(t)

	_, err := CreateSession(db, SessionCreateInput{
		EventID:   uuid.New(),
		Title:     "Orphan",
		StartTime: time.Now().UTC(),
		EndTime:   time.Now().UTC().Add(time.Hour),
	})
	assert.True(t, helpers.IsAPIErrorWithStatus(err, http.StatusNotFound))
}

func TestGetEventSessionsOrderedAndPaged(t *testing.T) {
	db := newTestDB(t)
	_, event := sessionTestEvent(t, db)

	// Created out of order on purpose.
	for i, offset := range []time.Duration{3 * time.Hour, time.Hour, 2 * time.Hour} {
		_, err := CreateSession(db, SessionCreateInput{
			EventID:   event.ID,
			Title:     []string{"Third", "First", "Second"}[i],
			StartTime: event.StartDate.Add(offset),
			EndTime:   event.StartDate.Add(offset + 30*time.Minute),
		})
		require.NoError(t, err)
	}

	sessions, pagination, err := GetEventSessions(db, event.ID, 1, 2)
	require.NoError(t, err)
	require.Len(t, sessions, 2)
	assert.Equal(t, "First", sessions[0].Title)
	assert.Equal(t, "Second", sessions[1].Title)
	assert.EqualValues(t, 3, pagination.TotalCount)
	assert.Equal(t, 2, pagination.TotalPages)
	assert.True(t, pagination.HasNext)
	assert.False(t, pagination.HasPrev)

	sessions, pagination, err = GetEventSessions(db, event.ID, 2, 2)
	require.NoError(t, err)
	require.Len(t, sessions, 1)
	assert.Equal(t, "Third", sessions[0].Title)
	assert.True(t, pagination.HasPrev)

	_, _, err = GetEventSessions(db, uuid.New(), 1, 20)
	assert.True(t, helpers.IsAPIErrorWithStatus(err, http.StatusNotFound))
}

func TestUpdateSessionRevalidatesWindow(t *testing.T) {
	db := newTestDB(t)
	_, event := sessionTestEvent(t, db)

	session, err := CreateSession(db, SessionCreateInput{
		EventID:   event.ID,
		Title:     "Workshop",
		StartTime: event.StartDate.Add(time.Hour),
		EndTime:   event.StartDate.Add(2 * time.Hour),
	})
	require.NoError(t, err)

	// Moving only the end past the event boundary fails against the
	// merged window.
	badEnd := event.EndDate.Add(time.Hour)
	_, err = UpdateSession(db, session.ID, SessionUpdateInput{EndTime: &badEnd})
	assert.True(t, helpers.IsAPIErrorWithStatus(err, http.StatusBadRequest))

	// Moving only the start after the stored end fails too.
	badStart := session.EndTime.Add(time.Minute)
	_, err = UpdateSession(db, session.ID, SessionUpdateInput{StartTime: &badStart})
	assert.True(t, helpers.IsAPIErrorWithStatus(err, http.StatusBadRequest))

	title := "Renamed Workshop"
	location := "Room B"
	goodEnd := event.StartDate.Add(3 * time.Hour)
	updated, err := UpdateSession(db, session.ID, SessionUpdateInput{
		Title:    &title,
		Location: &location,
		EndTime:  &goodEnd,
	})
	require.NoError(t, err)
	assert.Equal(t, "Renamed Workshop", updated.Title)
	assert.Equal(t, "Room B", updated.Location)
	assert.True(t, updated.EndTime.Equal(goodEnd))
}

func TestUpdateSessionCapacityAgainstEvent(t *testing.T) {
	db := newTestDB(t)
	_, event := sessionTestEvent(t, db)

	session, err := CreateSession(db, SessionCreateInput{
		EventID:   event.ID,
		Title:     "Keynote",
		StartTime: event.StartDate,
		EndTime:   event.StartDate.Add(time.Hour),
	})
	require.NoError(t, err)

	over := event.Capacity + 10
	_, err = UpdateSession(db, session.ID, SessionUpdateInput{Capacity: &over})
	assert.True(t, helpers.IsAPIErrorWithStatus(err, http.StatusBadRequest))

	ok := event.Capacity
	updated, err := UpdateSession(db, session.ID, SessionUpdateInput{Capacity: &ok})
	require.NoError(t, err)
	require.NotNil(t, updated.Capacity)
	assert.Equal(t, event.Capacity, *updated.Capacity)
}

func TestDeleteSessionSoftDeletes(t *testing.T) {
	db := newTestDB(t)
	_, event := sessionTestEvent(t, db)

	session, err := CreateSession(db, SessionCreateInput{
		EventID:   event.ID,
		Title:     "Closing Remarks",
		StartTime: event.StartDate,
		EndTime:   event.StartDate.Add(time.Hour),
	})
	require.NoError(t, err)

	require.NoError(t, DeleteSession(db, session.ID))

	_, err = GetSession(db, session.ID)
	assert.True(t, helpers.IsAPIErrorWithStatus(err, http.StatusNotFound))

	sessions, pagination, err := GetEventSessions(db, event.ID, 1, 20)
	require.NoError(t, err)
	assert.Empty(t, sessions)
	assert.EqualValues(t, 0, pagination.TotalCount)

	// The row survives with the markers set.
	var stored models.Session
	require.NoError(t, db.Unscoped().Where("id = ?", session.ID).First(&stored).Error)
	assert.True(t, stored.IsDeleted)
	require.NotNil(t, stored.DeletedAt)

	err = DeleteSession(db, session.ID)
	assert.True(t, helpers.IsAPIErrorWithStatus(err, http.StatusNotFound))
}
