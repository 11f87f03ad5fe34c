//go:build integration

package handlers

import (
	"net/http"
	"testing"

	"kaamsaathi-backend/pkg/testutil"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWorkerSettingsNotLinked(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.CleanupTestDB(t, db)
	SetJWTSecret("test-secret")

	// A partner account with no worker profile yet
	partnerID := testutil.CreateTestUser(t, db, testutil.GenerateRandomString(10)+"@example.com", "secret123", "partner")

	w := authedJSON(t, GetWorkerSettings(db), http.MethodGet, "/api/partner/settings", nil,
		partnerID, "p@example.com", "partner")
	assert.Equal(t, http.StatusNotFound, w.Code)

	// Toggles report the missing link explicitly
	w = authedJSON(t, ToggleQuickResponse(db), http.MethodPost, "/api/partner/quick-response",
		map[string]interface{}{"enabled": true}, partnerID, "p@example.com", "partner")
	assert.Equal(t, http.StatusConflict, w.Code)

	resp := decodeResponse(t, w)
	require.NotNil(t, resp.Error)
	assert.Equal(t, "NOT_LINKED", resp.Error.Code)
}

func TestToggleFlags(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.CleanupTestDB(t, db)
	SetJWTSecret("test-secret")

	partnerID := testutil.CreateTestUser(t, db, testutil.GenerateRandomString(10)+"@example.com", "secret123", "partner")
	workerID := testutil.CreateTestWorker(t, db, "Rajesh Kumar", "electrician", 800, partnerID)

	w := authedJSON(t, ToggleQuickResponse(db), http.MethodPost, "/api/partner/quick-response",
		map[string]interface{}{"enabled": true}, partnerID, "p@example.com", "partner")
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	data := decodeResponse(t, w).Data.(map[string]interface{})
	assert.Equal(t, true, data["quick_response"])

	w = authedJSON(t, ToggleAvailability(db), http.MethodPost, "/api/partner/availability",
		map[string]interface{}{"enabled": false}, partnerID, "p@example.com", "partner")
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var quickResponse, available bool
	require.NoError(t, db.QueryRow(
		"SELECT quick_response, available FROM workers WHERE id = $1", workerID).
		Scan(&quickResponse, &available))
	assert.True(t, quickResponse)
	assert.False(t, available)
}

func TestUpdateWorkerProfilePartial(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.CleanupTestDB(t, db)
	SetJWTSecret("test-secret")

	partnerID := testutil.CreateTestUser(t, db, testutil.GenerateRandomString(10)+"@example.com", "secret123", "partner")
	workerID := testutil.CreateTestWorker(t, db, "Amit Singh", "plumber", 700, partnerID)

	w := authedJSON(t, UpdateWorkerProfile(db), http.MethodPut, "/api/partner/profile",
		map[string]interface{}{
			"daily_wage": 950,
			"skills":     []string{"Pipe Fitting", "Leak Repair"},
		}, partnerID, "p@example.com", "partner")
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var wage float64
	var location string
	var skills []string
	require.NoError(t, db.QueryRow(
		"SELECT daily_wage, COALESCE(location, ''), skills FROM workers WHERE id = $1", workerID).
		Scan(&wage, &location, pq.Array(&skills)))
	assert.Equal(t, 950.0, wage)
	assert.Equal(t, []string{"Pipe Fitting", "Leak Repair"}, skills)

	// Rejected values leave the row untouched
	w = authedJSON(t, UpdateWorkerProfile(db), http.MethodPut, "/api/partner/profile",
		map[string]interface{}{"daily_wage": -50}, partnerID, "p@example.com", "partner")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestUpdateWorkerProfileResetsHindiDescription(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.CleanupTestDB(t, db)
	SetJWTSecret("test-secret")
	SetTranslator(nil)

	partnerID := testutil.CreateTestUser(t, db, testutil.GenerateRandomString(10)+"@example.com", "secret123", "partner")
	workerID := testutil.CreateTestWorker(t, db, "Suresh Mistry", "carpenter", 900, partnerID)

	_, err := db.Exec("UPDATE workers SET description = 'old', description_hi = 'पुराना' WHERE id = $1", workerID)
	require.NoError(t, err)

	w := authedJSON(t, UpdateWorkerProfile(db), http.MethodPut, "/api/partner/profile",
		map[string]interface{}{"description": "Expert furniture maker"}, partnerID, "p@example.com", "partner")
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	// A stale translation never outlives the description it translated
	var description string
	var descriptionHi *string
	require.NoError(t, db.QueryRow(
		"SELECT description, description_hi FROM workers WHERE id = $1", workerID).
		Scan(&description, &descriptionHi))
	assert.Equal(t, "Expert furniture maker", description)
	assert.Nil(t, descriptionHi)
}
