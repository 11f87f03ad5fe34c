package handlers

import (
	"crypto/rand"
	"database/sql"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"kaamsaathi-backend/models"
	"kaamsaathi-backend/pkg/apperror"
	"kaamsaathi-backend/pkg/i18n"
	"kaamsaathi-backend/pkg/logger"
	"kaamsaathi-backend/pkg/mailer"
	"kaamsaathi-backend/pkg/ratelimit"
	"kaamsaathi-backend/pkg/response"
	"kaamsaathi-backend/pkg/validator"

	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

const (
	defaultPhoto     = "/placeholder-worker.jpg"
	resetTokenExpiry = time.Hour
	jwtLifetime      = 7 * 24 * time.Hour
)

// forgotPassword always answers with this message, whether or not the email
// exists (anti-enumeration)
const genericResetMessage = "If an account exists, a reset link has been sent."

var jwtSecretKey = []byte("kaamsaathi-dev-secret")

// SetJWTSecret sets the JWT signing key
func SetJWTSecret(secret string) {
	jwtSecretKey = []byte(secret)
}

var mailService mailer.Mailer = mailer.NewConsoleMailer()

// SetMailer sets the transactional email collaborator
func SetMailer(m mailer.Mailer) {
	if m != nil {
		mailService = m
	}
}

var appURL = "http://localhost:3000"

// SetAppURL sets the public base URL used in password-reset links
func SetAppURL(url string) {
	if url != "" {
		appURL = url
	}
}

var resetLimiter ratelimit.Limiter = ratelimit.NewMemoryLimiter(1.0/60, 3)

// SetResetLimiter sets the forgot-password rate limiter
func SetResetLimiter(l ratelimit.Limiter) {
	if l != nil {
		resetLimiter = l
	}
}

// hashPassword digests a password with bcrypt. All password call sites go
// through here; plaintext is never stored.
func hashPassword(password string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	return string(bytes), err
}

// checkPassword verifies a password against a stored bcrypt digest
func checkPassword(password, hash string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
	return err == nil
}

// generateJWT creates a signed session token carrying identity and role
func generateJWT(userID, email, role string) (string, error) {
	claims := jwt.MapClaims{
		"user_id": userID,
		"email":   email,
		"role":    role,
		"exp":     time.Now().Add(jwtLifetime).Unix(),
		"iat":     time.Now().Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(jwtSecretKey)
}

// generateResetToken creates a 32-byte random hex token
func generateResetToken() (string, error) {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return hex.EncodeToString(buf), nil
}

// decodeJSON reads a JSON request body into dst
func decodeJSON(r *http.Request, dst interface{}) error {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		return apperror.NewValidationError("Invalid request format")
	}
	return nil
}

// scanUser reads the standard user columns
func scanUser(row *sql.Row) (*models.User, error) {
	var user models.User
	err := row.Scan(&user.ID, &user.Name, &user.Email, &user.Phone, &user.Role,
		&user.Photo, &user.Language, &user.PasswordHash, &user.CreatedAt, &user.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &user, nil
}

const userColumns = `id, name, email, phone, role, COALESCE(photo, ''), language, password_hash, created_at, updated_at`

// Signup godoc
// @Summary      Register a new account
// @Description  Creates a customer or partner account and returns a session token
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        request body models.SignupRequest true "Registration data"
// @Success      201  {object}  response.Response
// @Failure      400  {object}  response.Response
// @Failure      409  {object}  response.Response
// @Router       /auth/signup [post]
func Signup(db *sql.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			response.MethodNotAllowed(w)
			return
		}

		var req models.SignupRequest
		if err := decodeJSON(r, &req); err != nil {
			response.Error(w, r, err)
			return
		}

		if err := validator.Validate(req); err != nil {
			response.Error(w, r, apperror.NewValidationError(err.Error()))
			return
		}

		// Email uniquely identifies at most one user
		var existingID string
		err := db.QueryRow("SELECT id FROM users WHERE email = $1", req.Email).Scan(&existingID)
		if err == nil {
			response.Error(w, r, apperror.NewEmailTakenError())
			return
		}
		if err != sql.ErrNoRows {
			response.Error(w, r, apperror.NewDatabaseError("signup lookup", err))
			return
		}

		passwordHash, err := hashPassword(req.Password)
		if err != nil {
			response.Error(w, r, apperror.NewInternalError("Failed to process password", err))
			return
		}

		var user models.User
		err = db.QueryRow(`
			INSERT INTO users (name, email, password_hash, phone, role, photo)
			VALUES ($1, $2, $3, $4, $5, $6)
			RETURNING `+userColumns+`
		`, req.Name, req.Email, passwordHash, req.Phone, req.Role, defaultPhoto).Scan(
			&user.ID, &user.Name, &user.Email, &user.Phone, &user.Role,
			&user.Photo, &user.Language, &user.PasswordHash, &user.CreatedAt, &user.UpdatedAt)

		if err != nil {
			response.Error(w, r, apperror.NewDatabaseError("signup insert", err))
			return
		}

		token, err := generateJWT(user.ID, user.Email, user.Role)
		if err != nil {
			response.Error(w, r, apperror.NewInternalError("Failed to create session token", err))
			return
		}

		logger.Info("✅ New signup",
			zap.String("user_id", user.ID),
			zap.String("role", user.Role),
		)

		response.Created(w, models.AuthPayload{Token: token, User: &user}, "Account created")
	}
}

// Login godoc
// @Summary      Log in
// @Description  Email + password + role login. The role must match the stored role.
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        request body models.LoginRequest true "Login data"
// @Success      200  {object}  response.Response
// @Failure      401  {object}  response.Response
// @Failure      403  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Router       /auth/login [post]
func Login(db *sql.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			response.MethodNotAllowed(w)
			return
		}

		var req models.LoginRequest
		if err := decodeJSON(r, &req); err != nil {
			response.Error(w, r, err)
			return
		}

		if err := validator.Validate(req); err != nil {
			response.Error(w, r, apperror.NewValidationError(err.Error()))
			return
		}

		user, err := scanUser(db.QueryRow(`SELECT `+userColumns+` FROM users WHERE email = $1`, req.Email))
		if err == sql.ErrNoRows {
			response.Error(w, r, apperror.NewNotFoundError("No account found with this email"))
			return
		}
		if err != nil {
			response.Error(w, r, apperror.NewDatabaseError("login lookup", err))
			return
		}

		if !checkPassword(req.Password, user.PasswordHash) {
			response.Error(w, r, apperror.NewInvalidCredentialError())
			return
		}

		// A valid credential on the wrong login surface is rejected, not
		// silently accepted
		if user.Role != req.Role {
			response.Error(w, r, apperror.NewRoleMismatchError())
			return
		}

		token, err := generateJWT(user.ID, user.Email, user.Role)
		if err != nil {
			response.Error(w, r, apperror.NewInternalError("Failed to create session token", err))
			return
		}

		response.Success(w, models.AuthPayload{Token: token, User: user}, "Login successful")
	}
}

// ForgotPassword godoc
// @Summary      Request a password reset link
// @Description  Always answers with a generic success message. When the email matches an account, a reset link with a 1-hour token is emailed.
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        request body models.ForgotPasswordRequest true "Account email"
// @Success      200  {object}  response.Response
// @Failure      400  {object}  response.Response
// @Failure      429  {object}  response.Response
// @Router       /auth/forgot-password [post]
func ForgotPassword(db *sql.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			response.MethodNotAllowed(w)
			return
		}

		var req models.ForgotPasswordRequest
		if err := decodeJSON(r, &req); err != nil {
			response.Error(w, r, err)
			return
		}

		if err := validator.Validate(req); err != nil {
			response.Error(w, r, apperror.NewValidationError(err.Error()))
			return
		}

		allowed, err := resetLimiter.Allow("forgot:" + req.Email)
		if err != nil {
			logger.Warn("Rate limiter error", zap.Error(err))
			allowed = true
		}
		if !allowed {
			response.Error(w, r, apperror.NewRateLimitError("Too many reset requests. Please try again later."))
			return
		}

		var userID, language string
		err = db.QueryRow("SELECT id, language FROM users WHERE email = $1", req.Email).Scan(&userID, &language)
		if err == sql.ErrNoRows {
			// Same message as the success path so the response never reveals
			// whether the account exists
			response.Success(w, nil, genericResetMessage)
			return
		}
		if err != nil {
			response.Error(w, r, apperror.NewDatabaseError("forgot-password lookup", err))
			return
		}

		token, err := generateResetToken()
		if err != nil {
			response.Error(w, r, apperror.NewInternalError("Failed to create reset token", err))
			return
		}

		expiry := time.Now().Add(resetTokenExpiry)
		_, err = db.Exec(`
			UPDATE users SET reset_token = $1, reset_token_expiry = $2, updated_at = NOW()
			WHERE id = $3
		`, token, expiry, userID)
		if err != nil {
			response.Error(w, r, apperror.NewDatabaseError("forgot-password update", err))
			return
		}

		// Best-effort delivery; the response does not wait for the relay
		resetLink := fmt.Sprintf("%s/reset-password?token=%s", appURL, token)
		subject := fmt.Sprintf("Reset your password - %s", i18n.T("landing.title", language))
		body := fmt.Sprintf("Click here to reset your password: %s\n\nThis link expires in 1 hour.", resetLink)
		go func() {
			if err := mailService.Send(req.Email, subject, body); err != nil {
				logger.Error("Reset email delivery failed", zap.Error(err))
			}
		}()

		response.Success(w, nil, genericResetMessage)
	}
}

// ResetPassword godoc
// @Summary      Reset the password with an emailed token
// @Description  Replaces the password digest when the token matches and has not expired, then clears the token.
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        request body models.ResetPasswordRequest true "Token and new password"
// @Success      200  {object}  response.Response
// @Failure      400  {object}  response.Response
// @Router       /auth/reset-password [post]
func ResetPassword(db *sql.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			response.MethodNotAllowed(w)
			return
		}

		var req models.ResetPasswordRequest
		if err := decodeJSON(r, &req); err != nil {
			response.Error(w, r, err)
			return
		}

		if err := validator.Validate(req); err != nil {
			response.Error(w, r, apperror.NewValidationError(err.Error()))
			return
		}

		// Token must match and still be inside its expiry window
		var userID string
		err := db.QueryRow(`
			SELECT id FROM users
			WHERE reset_token = $1 AND reset_token_expiry > NOW()
		`, req.Token).Scan(&userID)
		if err == sql.ErrNoRows {
			response.Error(w, r, apperror.NewInvalidOrExpiredTokenError())
			return
		}
		if err != nil {
			response.Error(w, r, apperror.NewDatabaseError("reset-password lookup", err))
			return
		}

		passwordHash, err := hashPassword(req.NewPassword)
		if err != nil {
			response.Error(w, r, apperror.NewInternalError("Failed to process password", err))
			return
		}

		_, err = db.Exec(`
			UPDATE users
			SET password_hash = $1, reset_token = NULL, reset_token_expiry = NULL, updated_at = NOW()
			WHERE id = $2
		`, passwordHash, userID)
		if err != nil {
			response.Error(w, r, apperror.NewDatabaseError("reset-password update", err))
			return
		}

		logger.Info("✅ Password reset completed", zap.String("user_id", userID))

		response.Success(w, nil, "Password reset successfully. You can now login.")
	}
}
