package testutil

import (
	"database/sql"
	"fmt"
	"math/rand"
	"os"
	"testing"

	"github.com/lib/pq"
	"golang.org/x/crypto/bcrypt"
)

// SetupTestDB connects to the test database
func SetupTestDB(t *testing.T) *sql.DB {
	t.Helper()

	dbHost := getEnvOrDefault("TEST_DB_HOST", "localhost")
	dbPort := getEnvOrDefault("TEST_DB_PORT", "5432")
	dbUser := getEnvOrDefault("TEST_DB_USER", "kaamsaathi")
	dbPassword := getEnvOrDefault("TEST_DB_PASSWORD", "")
	dbName := getEnvOrDefault("TEST_DB_NAME", "kaamsaathi_test")

	psqlInfo := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
		dbHost, dbPort, dbUser, dbPassword, dbName)

	db, err := sql.Open("postgres", psqlInfo)
	if err != nil {
		t.Fatalf("Failed to connect to test database: %v", err)
	}

	if err = db.Ping(); err != nil {
		t.Fatalf("Failed to ping test database: %v", err)
	}

	return db
}

// CleanupTestDB truncates test tables and closes the connection
func CleanupTestDB(t *testing.T, db *sql.DB) {
	t.Helper()

	tables := []string{"bookings", "workers", "users"}
	for _, table := range tables {
		_, err := db.Exec(fmt.Sprintf("TRUNCATE TABLE %s CASCADE", table))
		if err != nil {
			t.Logf("Warning: Failed to truncate table %s: %v", table, err)
		}
	}

	db.Close()
}

// CreateTestUser inserts a user with a bcrypt-hashed password and returns its id
func CreateTestUser(t *testing.T, db *sql.DB, email, password, role string) string {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("Failed to hash test password: %v", err)
	}

	var userID string
	err = db.QueryRow(`
		INSERT INTO users (name, email, password_hash, phone, role)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id
	`, "Test User", email, string(hash), "+919876543210", role).Scan(&userID)

	if err != nil {
		t.Fatalf("Failed to create test user: %v", err)
	}

	return userID
}

// CreateTestWorker inserts a worker profile and returns its id. Pass an empty
// userID for an unlinked worker.
func CreateTestWorker(t *testing.T, db *sql.DB, name, category string, dailyWage float64, userID string) string {
	t.Helper()

	var uid interface{}
	if userID != "" {
		uid = userID
	}

	var workerID string
	err := db.QueryRow(`
		INSERT INTO workers (user_id, name, category, rating, daily_wage, skills)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id
	`, uid, name, category, 4.5, dailyWage, pq.Array([]string{"General"})).Scan(&workerID)

	if err != nil {
		t.Fatalf("Failed to create test worker: %v", err)
	}

	return workerID
}

func getEnvOrDefault(key, defaultValue string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultValue
}

// GenerateRandomString returns a random lowercase alphanumeric string
func GenerateRandomString(length int) string {
	const charset = "abcdefghijklmnopqrstuvwxyz0123456789"
	b := make([]byte, length)
	for i := range b {
		b[i] = charset[rand.Intn(len(charset))]
	}
	return string(b)
}
