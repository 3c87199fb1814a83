package handlers_test

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestListUsersAdminOnly(t *testing.T) {
	env := newTestEnv(t)
	_, aliceToken := env.registerAndLogin(t, "alice")
	env.register(t, "bobby")
	adminToken := env.login(t, "overlord", "overlord")

	rec := env.do(t, http.MethodGet, "/users", "", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	// Ownership means nothing on an admin-only route.
	rec = env.do(t, http.MethodGet, "/users", aliceToken, nil)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = env.do(t, http.MethodGet, "/users", adminToken, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	users := decodeBody[[]struct {
		Username string `json:"username"`
	}](t, rec)
	require.Len(t, users, 2)
	assert.Equal(t, "alice", users[0].Username)
	assert.Equal(t, "bobby", users[1].Username)
}

func TestGetUser(t *testing.T) {
	env := newTestEnv(t)
	aliceID, aliceToken := env.registerAndLogin(t, "alice")
	bobID, _ := env.registerAndLogin(t, "bobby")
	adminToken := env.login(t, "overlord", "overlord")

	rec := env.do(t, http.MethodGet, userPath(aliceID), aliceToken, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	body := decodeBody[struct {
		ID       int64  `json:"id"`
		Username string `json:"username"`
	}](t, rec)
	assert.Equal(t, aliceID, body.ID)
	assert.Equal(t, "alice", body.Username)

	rec = env.do(t, http.MethodGet, userPath(bobID), aliceToken, nil)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = env.do(t, http.MethodGet, userPath(aliceID), adminToken, nil)
	assert.Equal(t, http.StatusOK, rec.Code)

	// Only a caller who could have read the account learns it is gone.
	rec = env.do(t, http.MethodGet, userPath(999), adminToken, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	rec = env.do(t, http.MethodGet, userPath(999), aliceToken, nil)
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestUpdateUserPassword(t *testing.T) {
	env := newTestEnv(t)
	aliceID, aliceToken := env.registerAndLogin(t, "alice")
	_, bobToken := env.registerAndLogin(t, "bobby")

	const newPassword = "N3wSecret?"

	rec := env.do(t, http.MethodPut, userPath(aliceID), bobToken,
		map[string]string{"password": newPassword})
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = env.do(t, http.MethodPut, userPath(aliceID), aliceToken,
		map[string]string{"password": "weak"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = env.do(t, http.MethodPut, userPath(aliceID), aliceToken,
		map[string]string{"password": newPassword})
	require.Equal(t, http.StatusOK, rec.Code)

	env.login(t, "alice", newPassword)
	rec = env.do(t, http.MethodPost, "/login", "", credentials("alice", testPassword))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestDeleteUser(t *testing.T) {
	env := newTestEnv(t)
	aliceID, aliceToken := env.registerAndLogin(t, "alice")
	bobID, _ := env.registerAndLogin(t, "bobby")
	adminToken := env.login(t, "overlord", "overlord")

	rec := env.do(t, http.MethodDelete, userPath(bobID), aliceToken, nil)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = env.do(t, http.MethodDelete, userPath(aliceID), aliceToken, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "alice successfully deleted")

	// The token outlives the account but no longer resolves to a user.
	rec = env.do(t, http.MethodGet, userPath(aliceID), aliceToken, nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = env.do(t, http.MethodDelete, userPath(bobID), adminToken, nil)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = env.do(t, http.MethodDelete, userPath(bobID), adminToken, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
