//go:build integration

package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"kaamsaathi-backend/pkg/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// authedJSON sends a JSON request through JWTMiddleware with a real token
func authedJSON(t *testing.T, handler http.HandlerFunc, method, path string, payload interface{}, userID, email, role string) *httptest.ResponseRecorder {
	t.Helper()

	var body []byte
	if payload != nil {
		var err error
		body, err = json.Marshal(payload)
		require.NoError(t, err)
	}

	token, err := generateJWT(userID, email, role)
	require.NoError(t, err)

	r := httptest.NewRequest(method, path, bytes.NewReader(body))
	r.Header.Set("Content-Type", "application/json")
	r.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	JWTMiddleware(handler)(w, r)
	return w
}

func bookingPayload(workerID string) map[string]interface{} {
	return map[string]interface{}{
		"worker_id":  workerID,
		"start_date": "2026-09-15",
		"address":    "42 MG Road, Jaipur",
		"total_days": 3,
	}
}

func TestCreateBookingServerPricedAndPending(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.CleanupTestDB(t, db)
	SetJWTSecret("test-secret")

	customerID := testutil.CreateTestUser(t, db, testutil.GenerateRandomString(10)+"@example.com", "secret123", "customer")
	workerID := testutil.CreateTestWorker(t, db, "Rajesh Kumar", "electrician", 800, "")

	// A tampered status and amount are ignored: only the known fields are read
	payload := bookingPayload(workerID)
	payload["status"] = "completed"
	payload["total_amount"] = 1

	w := authedJSON(t, CreateBooking(db), http.MethodPost, "/api/bookings", payload,
		customerID, "c@example.com", "customer")
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	resp := decodeResponse(t, w)
	data := resp.Data.(map[string]interface{})
	assert.Equal(t, "pending", data["status"])
	assert.Equal(t, 2400.0, data["total_amount"]) // 800 x 3 days
	assert.Equal(t, "Rajesh Kumar", data["worker_name"])
	assert.Equal(t, "electrician", data["category"])
}

func TestCreateBookingUnknownWorker(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.CleanupTestDB(t, db)
	SetJWTSecret("test-secret")

	customerID := testutil.CreateTestUser(t, db, testutil.GenerateRandomString(10)+"@example.com", "secret123", "customer")

	w := authedJSON(t, CreateBooking(db), http.MethodPost, "/api/bookings",
		bookingPayload("3f2f2b9a-5cbb-4b6f-9d2e-8f1a7c3d4e5f"),
		customerID, "c@example.com", "customer")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestDoubleBookingAllowed(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.CleanupTestDB(t, db)
	SetJWTSecret("test-secret")

	customerID := testutil.CreateTestUser(t, db, testutil.GenerateRandomString(10)+"@example.com", "secret123", "customer")
	workerID := testutil.CreateTestWorker(t, db, "Amit Singh", "plumber", 700, "")

	// The same worker and date range can be booked twice; there is no
	// availability collision check at creation time
	for i := 0; i < 2; i++ {
		w := authedJSON(t, CreateBooking(db), http.MethodPost, "/api/bookings",
			bookingPayload(workerID), customerID, "c@example.com", "customer")
		require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	}

	var count int
	require.NoError(t, db.QueryRow("SELECT COUNT(*) FROM bookings WHERE worker_id = $1", workerID).Scan(&count))
	assert.Equal(t, 2, count)
}

func TestGetBookingsRoleScoped(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.CleanupTestDB(t, db)
	SetJWTSecret("test-secret")

	customerID := testutil.CreateTestUser(t, db, testutil.GenerateRandomString(10)+"@example.com", "secret123", "customer")
	otherCustomerID := testutil.CreateTestUser(t, db, testutil.GenerateRandomString(10)+"@example.com", "secret123", "customer")
	partnerID := testutil.CreateTestUser(t, db, testutil.GenerateRandomString(10)+"@example.com", "secret123", "partner")
	workerID := testutil.CreateTestWorker(t, db, "Suresh Mistry", "carpenter", 900, partnerID)
	otherWorkerID := testutil.CreateTestWorker(t, db, "Vikram Das", "whitewasher", 600, "")

	createBooking := func(customer, worker, startDate string) {
		payload := bookingPayload(worker)
		payload["start_date"] = startDate
		w := authedJSON(t, CreateBooking(db), http.MethodPost, "/api/bookings", payload,
			customer, "c@example.com", "customer")
		require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	}

	createBooking(customerID, workerID, "2026-09-10")
	createBooking(customerID, otherWorkerID, "2026-09-20")
	createBooking(otherCustomerID, workerID, "2026-09-15")

	// Customer sees both own bookings, newest start date first
	w := authedJSON(t, GetBookings(db), http.MethodGet, "/api/bookings", nil,
		customerID, "c@example.com", "customer")
	require.Equal(t, http.StatusOK, w.Code)
	list := decodeResponse(t, w).Data.([]interface{})
	require.Len(t, list, 2)
	first := list[0].(map[string]interface{})
	second := list[1].(map[string]interface{})
	assert.Greater(t, first["start_date"], second["start_date"])

	// Partner sees every booking on their worker, from any customer
	w = authedJSON(t, GetBookings(db), http.MethodGet, "/api/bookings", nil,
		partnerID, "p@example.com", "partner")
	require.Equal(t, http.StatusOK, w.Code)
	list = decodeResponse(t, w).Data.([]interface{})
	require.Len(t, list, 2)
	for _, item := range list {
		assert.Equal(t, workerID, item.(map[string]interface{})["worker_id"])
	}
}

func TestUpdateBookingStatusLifecycle(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.CleanupTestDB(t, db)
	SetJWTSecret("test-secret")

	customerID := testutil.CreateTestUser(t, db, testutil.GenerateRandomString(10)+"@example.com", "secret123", "customer")
	partnerID := testutil.CreateTestUser(t, db, testutil.GenerateRandomString(10)+"@example.com", "secret123", "partner")
	workerID := testutil.CreateTestWorker(t, db, "Rajesh Kumar", "electrician", 800, partnerID)

	w := authedJSON(t, CreateBooking(db), http.MethodPost, "/api/bookings",
		bookingPayload(workerID), customerID, "c@example.com", "customer")
	require.Equal(t, http.StatusCreated, w.Code)
	bookingID := decodeResponse(t, w).Data.(map[string]interface{})["id"].(string)

	path := "/api/bookings/" + bookingID + "/status"
	setStatus := func(status, userID, role string) *httptest.ResponseRecorder {
		return authedJSON(t, UpdateBookingStatus(db), http.MethodPut, path,
			map[string]interface{}{"status": status}, userID, "u@example.com", role)
	}

	// Skipping a step is rejected
	w = setStatus("completed", partnerID, "partner")
	assert.Equal(t, http.StatusBadRequest, w.Code)

	// The forward path works step by step
	for _, status := range []string{"confirmed", "in-progress", "completed"} {
		w = setStatus(status, partnerID, "partner")
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	}

	// Completed is terminal
	w = setStatus("cancelled", partnerID, "partner")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestUpdateBookingStatusOwnership(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.CleanupTestDB(t, db)
	SetJWTSecret("test-secret")

	customerID := testutil.CreateTestUser(t, db, testutil.GenerateRandomString(10)+"@example.com", "secret123", "customer")
	partnerID := testutil.CreateTestUser(t, db, testutil.GenerateRandomString(10)+"@example.com", "secret123", "partner")
	strangerID := testutil.CreateTestUser(t, db, testutil.GenerateRandomString(10)+"@example.com", "secret123", "partner")
	workerID := testutil.CreateTestWorker(t, db, "Amit Singh", "plumber", 700, partnerID)

	w := authedJSON(t, CreateBooking(db), http.MethodPost, "/api/bookings",
		bookingPayload(workerID), customerID, "c@example.com", "customer")
	require.Equal(t, http.StatusCreated, w.Code)
	bookingID := decodeResponse(t, w).Data.(map[string]interface{})["id"].(string)

	path := "/api/bookings/" + bookingID + "/status"

	// A partner who does not own the worker cannot touch the booking
	w = authedJSON(t, UpdateBookingStatus(db), http.MethodPut, path,
		map[string]interface{}{"status": "confirmed"}, strangerID, "s@example.com", "partner")
	assert.Equal(t, http.StatusForbidden, w.Code)

	// The customer may cancel but not confirm
	w = authedJSON(t, UpdateBookingStatus(db), http.MethodPut, path,
		map[string]interface{}{"status": "confirmed"}, customerID, "c@example.com", "customer")
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = authedJSON(t, UpdateBookingStatus(db), http.MethodPut, path,
		map[string]interface{}{"status": "cancelled"}, customerID, "c@example.com", "customer")
	assert.Equal(t, http.StatusOK, w.Code, w.Body.String())
}

func TestBookingSnapshotSurvivesWorkerEdits(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.CleanupTestDB(t, db)
	SetJWTSecret("test-secret")

	customerID := testutil.CreateTestUser(t, db, testutil.GenerateRandomString(10)+"@example.com", "secret123", "customer")
	workerID := testutil.CreateTestWorker(t, db, "Suresh Mistry", "carpenter", 900, "")

	w := authedJSON(t, CreateBooking(db), http.MethodPost, "/api/bookings",
		bookingPayload(workerID), customerID, "c@example.com", "customer")
	require.Equal(t, http.StatusCreated, w.Code)

	_, err := db.Exec("UPDATE workers SET daily_wage = 1500, name = 'Renamed' WHERE id = $1", workerID)
	require.NoError(t, err)

	w = authedJSON(t, GetBookings(db), http.MethodGet, "/api/bookings", nil,
		customerID, "c@example.com", "customer")
	require.Equal(t, http.StatusOK, w.Code)
	booking := decodeResponse(t, w).Data.([]interface{})[0].(map[string]interface{})
	assert.Equal(t, "Suresh Mistry", booking["worker_name"])
	assert.Equal(t, 900.0, booking["daily_wage"])
	assert.Equal(t, 2700.0, booking["total_amount"])
}
