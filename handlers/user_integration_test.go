//go:build integration

package handlers

import (
	"net/http"
	"testing"

	"kaamsaathi-backend/pkg/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetProfile(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.CleanupTestDB(t, db)
	SetJWTSecret("test-secret")

	email := testutil.GenerateRandomString(10) + "@example.com"
	userID := testutil.CreateTestUser(t, db, email, "secret123", "customer")

	w := authedJSON(t, GetProfile(db), http.MethodGet, "/api/users/me", nil,
		userID, email, "customer")
	require.Equal(t, http.StatusOK, w.Code)

	data := decodeResponse(t, w).Data.(map[string]interface{})
	assert.Equal(t, email, data["email"])
	_, hasHash := data["password_hash"]
	assert.False(t, hasHash)
}

func TestUpdateProfilePartial(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.CleanupTestDB(t, db)
	SetJWTSecret("test-secret")

	email := testutil.GenerateRandomString(10) + "@example.com"
	userID := testutil.CreateTestUser(t, db, email, "secret123", "customer")

	w := authedJSON(t, UpdateProfile(db), http.MethodPut, "/api/users/me",
		map[string]interface{}{"name": "New Name", "language": "hi"},
		userID, email, "customer")
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	data := decodeResponse(t, w).Data.(map[string]interface{})
	assert.Equal(t, "New Name", data["name"])
	assert.Equal(t, "hi", data["language"])
	// Untouched fields keep their values
	assert.Equal(t, "+919876543210", data["phone"])
}

func TestUpdateProfilePropagatesToWorkerCard(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.CleanupTestDB(t, db)
	SetJWTSecret("test-secret")

	email := testutil.GenerateRandomString(10) + "@example.com"
	partnerID := testutil.CreateTestUser(t, db, email, "secret123", "partner")
	workerID := testutil.CreateTestWorker(t, db, "Old Name", "electrician", 800, partnerID)

	w := authedJSON(t, UpdateProfile(db), http.MethodPut, "/api/users/me",
		map[string]interface{}{"name": "Rajesh Kumar", "photo": "/uploads/rajesh.jpg"},
		partnerID, email, "partner")
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var name, photo string
	require.NoError(t, db.QueryRow(
		"SELECT name, photo FROM workers WHERE id = $1", workerID).Scan(&name, &photo))
	assert.Equal(t, "Rajesh Kumar", name)
	assert.Equal(t, "/uploads/rajesh.jpg", photo)
}

func TestUpdateProfileInvalidLanguage(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.CleanupTestDB(t, db)
	SetJWTSecret("test-secret")

	email := testutil.GenerateRandomString(10) + "@example.com"
	userID := testutil.CreateTestUser(t, db, email, "secret123", "customer")

	w := authedJSON(t, UpdateProfile(db), http.MethodPut, "/api/users/me",
		map[string]interface{}{"language": "fr"}, userID, email, "customer")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
