package services

import (
	"net/http"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rmorales/eventhub/internal/helpers"
	"github.com/rmorales/eventhub/internal/models"
)

func TestRegisterUser(t *testing.T) {
	db := newTestDB(t)

	user, err := RegisterUser(db, "new@example.com", "secret123", "New User")
	require.NoError(t, err)
	assert.Equal(t, models.RoleAttendee, user.Role)
	assert.True(t, user.IsActive)
	assert.NotEqual(t, "secret123", user.Password, "password must be stored hashed")
	assert.NotEqual(t, uuid.Nil, user.ID)

	_, err = RegisterUser(db, "new@example.com", "another", "Dup User")
	assert.True(t, helpers.IsAPIErrorWithStatus(err, http.StatusBadRequest))
}

func TestAuthenticateUser(t *testing.T) {
	db := newTestDB(t)

	created, err := RegisterUser(db, "login@example.com", "secret123", "Login User")
	require.NoError(t, err)

	user, err := AuthenticateUser(db, "login@example.com", "secret123")
	require.NoError(t, err)
	assert.Equal(t, created.ID, user.ID)

	_, err = AuthenticateUser(db, "login@example.com", "wrong-password")
	assert.True(t, helpers.IsAPIErrorWithStatus(err, http.StatusBadRequest))

	_, err = AuthenticateUser(db, "missing@example.com", "secret123")
	assert.True(t, helpers.IsAPIErrorWithStatus(err, http.StatusBadRequest))

	inactive := false
	_, err = UpdateUser(db, created.ID, UserUpdateInput{IsActive: &inactive})
	require.NoError(t, err)

	_, err = AuthenticateUser(db, "login@example.com", "secret123")
	assert.True(t, helpers.IsAPIErrorWithStatus(err, http.StatusBadRequest), "inactive users cannot log in")
}

func TestListUsersFilters(t *testing.T) {
	db := newTestDB(t)

	admin, err := CreateUserWithRole(db, "admin@example.com", "secret123", "Ada Admin", models.RoleAdmin, true)
	require.NoError(t, err)
	_, err = CreateUserWithRole(db, "org@example.com", "secret123", "Olga Organizer", models.RoleOrganizer, true)
	require.NoError(t, err)
	attendee, err := CreateUserWithRole(db, "fan@example.com", "secret123", "Frida Fan", models.RoleAttendee, false)
	require.NoError(t, err)

	users, pagination, err := ListUsers(db, UserListParams{Page: 1, PerPage: 20})
	require.NoError(t, err)
	assert.Len(t, users, 3)
	assert.EqualValues(t, 3, pagination.TotalCount)

	users, _, err = ListUsers(db, UserListParams{Page: 1, PerPage: 20, Role: models.RoleAdmin})
	require.NoError(t, err)
	require.Len(t, users, 1)
	assert.Equal(t, admin.ID, users[0].ID)

	active := false
	users, _, err = ListUsers(db, UserListParams{Page: 1, PerPage: 20, IsActive: &active})
	require.NoError(t, err)
	require.Len(t, users, 1)
	assert.Equal(t, attendee.ID, users[0].ID)

	// Search matches email and full name, case-insensitively.
	users, _, err = ListUsers(db, UserListParams{Page: 1, PerPage: 20, Search: "OLGA"})
	require.NoError(t, err)
	require.Len(t, users, 1)
	assert.Equal(t, "org@example.com", users[0].Email)

	users, _, err = ListUsers(db, UserListParams{Page: 1, PerPage: 20, Search: "example.com"})
	require.NoError(t, err)
	assert.Len(t, users, 3)

	_, _, err = ListUsers(db, UserListParams{Page: 0, PerPage: 20})
	assert.True(t, helpers.IsAPIErrorWithStatus(err, http.StatusBadRequest))
}

func TestUpdateUser(t *testing.T) {
	db := newTestDB(t)

	user, err := RegisterUser(db, "promote@example.com", "secret123", "Plain User")
	require.NoError(t, err)

	organizer := models.RoleOrganizer
	name := "Promoted User"
	updated, err := UpdateUser(db, user.ID, UserUpdateInput{Role: &organizer, FullName: &name})
	require.NoError(t, err)
	assert.Equal(t, models.RoleOrganizer, updated.Role)
	assert.Equal(t, "Promoted User", updated.FullName)

	bogus := models.Role("superuser")
	_, err = UpdateUser(db, user.ID, UserUpdateInput{Role: &bogus})
	assert.True(t, helpers.IsAPIErrorWithStatus(err, http.StatusBadRequest))

	password := "rotated456"
	_, err = UpdateUser(db, user.ID, UserUpdateInput{Password: &password})
	require.NoError(t, err)
	_, err = AuthenticateUser(db, "promote@example.com", "rotated456")
	assert.NoError(t, err)
	_, err = AuthenticateUser(db, "promote@example.com", "secret123")
	assert.True(t, helpers.IsAPIErrorWithStatus(err, http.StatusBadRequest))

	_, err = UpdateUser(db, uuid.New(), UserUpdateInput{FullName: &name})
	assert.True(t, helpers.IsAPIErrorWithStatus(err, http.StatusNotFound))
}
