package validator

import (
	"testing"

	"kaamsaathi-backend/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validSignup() models.SignupRequest {
	return models.SignupRequest{
		Name:     "Priya Sharma",
		Email:    "priya@example.com",
		Password: "secret123",
		Phone:    "+919876543210",
		Role:     "customer",
	}
}

func TestSignupRequestValid(t *testing.T) {
	require.NoError(t, Validate(validSignup()))
}

func TestIndianPhone(t *testing.T) {
	valid := []string{"+919876543210", "9876543210", "6123456789"}
	invalid := []string{"1234567890", "+91123456789", "987654321", "98765432101", "+1-987-654-3210", ""}

	for _, phone := range valid {
		req := validSignup()
		req.Phone = phone
		assert.NoError(t, Validate(req), phone)
	}
	for _, phone := range invalid {
		req := validSignup()
		req.Phone = phone
		assert.Error(t, Validate(req), phone)
	}
}

func TestStrongPassword(t *testing.T) {
	valid := []string{"secret123", "a1b2c3d4", "Password9"}
	invalid := []string{"short1", "onlyletters", "12345678", ""}

	for _, password := range valid {
		req := validSignup()
		req.Password = password
		assert.NoError(t, Validate(req), password)
	}
	for _, password := range invalid {
		req := validSignup()
		req.Password = password
		assert.Error(t, Validate(req), password)
	}
}

func TestRoleEnum(t *testing.T) {
	req := validSignup()
	req.Role = "partner"
	assert.NoError(t, Validate(req))

	req.Role = "admin"
	err := Validate(req)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Role must be one of")
}

func TestCreateBookingRequest(t *testing.T) {
	valid := models.CreateBookingRequest{
		WorkerID:  "3f2f2b9a-5cbb-4b6f-9d2e-8f1a7c3d4e5f",
		StartDate: "2026-09-15",
		Address:   "42 MG Road, Jaipur",
		TotalDays: 3,
	}
	require.NoError(t, Validate(valid))

	bad := valid
	bad.WorkerID = "elec-1"
	assert.Error(t, Validate(bad))

	bad = valid
	bad.StartDate = "15-09-2026"
	assert.Error(t, Validate(bad))

	bad = valid
	bad.TotalDays = 0
	assert.Error(t, Validate(bad))

	bad = valid
	bad.TotalDays = 366
	assert.Error(t, Validate(bad))

	bad = valid
	bad.Address = "x"
	assert.Error(t, Validate(bad))
}

func TestPartialUpdateSkipsNilFields(t *testing.T) {
	// An empty partial update is valid; only present fields are checked
	assert.NoError(t, Validate(models.UpdateProfileRequest{}))

	badPhone := "12345"
	assert.Error(t, Validate(models.UpdateProfileRequest{Phone: &badPhone}))

	wage := -10.0
	assert.Error(t, Validate(models.UpdateWorkerProfileRequest{DailyWage: &wage}))
}
