//go:build integration

package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"kaamsaathi-backend/pkg/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func getJSON(t *testing.T, handler http.HandlerFunc, path string) *httptest.ResponseRecorder {
	t.Helper()

	r := httptest.NewRequest(http.MethodGet, path, nil)
	w := httptest.NewRecorder()
	handler(w, r)
	return w
}

func TestGetWorkersSortedByRating(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.CleanupTestDB(t, db)

	low := testutil.CreateTestWorker(t, db, "Low Rated", "electrician", 500, "")
	high := testutil.CreateTestWorker(t, db, "High Rated", "electrician", 800, "")
	_, err := db.Exec("UPDATE workers SET rating = 3.2 WHERE id = $1", low)
	require.NoError(t, err)
	_, err = db.Exec("UPDATE workers SET rating = 4.9 WHERE id = $1", high)
	require.NoError(t, err)

	w := getJSON(t, GetWorkers(db), "/api/workers")
	require.Equal(t, http.StatusOK, w.Code)

	list := decodeResponse(t, w).Data.([]interface{})
	require.Len(t, list, 2)
	assert.Equal(t, "High Rated", list[0].(map[string]interface{})["name"])
	assert.Equal(t, "Low Rated", list[1].(map[string]interface{})["name"])
}

func TestGetWorkersCategoryFilter(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.CleanupTestDB(t, db)

	testutil.CreateTestWorker(t, db, "Electrician", "electrician", 800, "")
	testutil.CreateTestWorker(t, db, "Plumber", "plumber", 700, "")

	w := getJSON(t, GetWorkers(db), "/api/workers?category=plumber")
	require.Equal(t, http.StatusOK, w.Code)

	list := decodeResponse(t, w).Data.([]interface{})
	require.Len(t, list, 1)
	assert.Equal(t, "Plumber", list[0].(map[string]interface{})["name"])

	// Unknown categories are rejected, not silently empty
	w = getJSON(t, GetWorkers(db), "/api/workers?category=gardener")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestGetWorkerByIDNullWhenAbsent(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.CleanupTestDB(t, db)

	// Absent and malformed ids both answer success with null data
	for _, id := range []string{"3f2f2b9a-5cbb-4b6f-9d2e-8f1a7c3d4e5f", "not-a-uuid"} {
		w := getJSON(t, GetWorkerByID(db), "/api/workers/"+id)
		require.Equal(t, http.StatusOK, w.Code, id)

		var raw map[string]json.RawMessage
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &raw))
		_, hasData := raw["data"]
		assert.False(t, hasData, id)
	}
}

func TestGetWorkerByIDFound(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.CleanupTestDB(t, db)

	workerID := testutil.CreateTestWorker(t, db, "Rajesh Kumar", "electrician", 800, "")

	w := getJSON(t, GetWorkerByID(db), "/api/workers/"+workerID)
	require.Equal(t, http.StatusOK, w.Code)

	data := decodeResponse(t, w).Data.(map[string]interface{})
	assert.Equal(t, workerID, data["id"])
	assert.Equal(t, "Rajesh Kumar", data["name"])
	assert.Equal(t, 800.0, data["daily_wage"])
}
