package handlers

import (
	"database/sql"
	"net/http"

	"kaamsaathi-backend/models"
	"kaamsaathi-backend/pkg/apperror"
	"kaamsaathi-backend/pkg/response"
	"kaamsaathi-backend/pkg/validator"
)

// GetProfile godoc
// @Summary      Get the authenticated user's profile
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  response.Response
// @Failure      401  {object}  response.Response
// @Router       /users/me [get]
func GetProfile(db *sql.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			response.MethodNotAllowed(w)
			return
		}

		userID, _ := UserIDFromContext(r.Context())

		user, err := scanUser(db.QueryRow(`SELECT `+userColumns+` FROM users WHERE id = $1`, userID))
		if err == sql.ErrNoRows {
			response.Error(w, r, apperror.NewNotFoundError("User not found"))
			return
		}
		if err != nil {
			response.Error(w, r, apperror.NewDatabaseError("profile lookup", err))
			return
		}

		response.Success(w, user, "Profile retrieved")
	}
}

// UpdateProfile godoc
// @Summary      Update the authenticated user's profile
// @Description  Partial update of name, phone, photo and language. For partners, name and photo changes also flow to the linked worker card.
// @Tags         users
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body models.UpdateProfileRequest true "Fields to update"
// @Success      200  {object}  response.Response
// @Failure      400  {object}  response.Response
// @Failure      401  {object}  response.Response
// @Router       /users/me [put]
func UpdateProfile(db *sql.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPut && r.Method != http.MethodPatch {
			response.MethodNotAllowed(w)
			return
		}

		userID, _ := UserIDFromContext(r.Context())

		var req models.UpdateProfileRequest
		if err := decodeJSON(r, &req); err != nil {
			response.Error(w, r, err)
			return
		}

		if err := validator.Validate(req); err != nil {
			response.Error(w, r, apperror.NewValidationError(err.Error()))
			return
		}

		tx, err := db.Begin()
		if err != nil {
			response.Error(w, r, apperror.NewDatabaseError("profile update begin", err))
			return
		}
		defer tx.Rollback()

		_, err = tx.Exec(`
			UPDATE users SET
				name = COALESCE($1, name),
				phone = COALESCE($2, phone),
				photo = COALESCE($3, photo),
				language = COALESCE($4, language),
				updated_at = NOW()
			WHERE id = $5
		`, req.Name, req.Phone, req.Photo, req.Language, userID)
		if err != nil {
			response.Error(w, r, apperror.NewDatabaseError("profile update", err))
			return
		}

		// The worker card shown to customers mirrors the owner's name and
		// photo, so a partner edit flows through in the same transaction
		if req.Name != nil || req.Photo != nil {
			_, err = tx.Exec(`
				UPDATE workers SET
					name = COALESCE($1, name),
					photo = COALESCE($2, photo),
					updated_at = NOW()
				WHERE user_id = $3
			`, req.Name, req.Photo, userID)
			if err != nil {
				response.Error(w, r, apperror.NewDatabaseError("worker card update", err))
				return
			}
		}

		if err := tx.Commit(); err != nil {
			response.Error(w, r, apperror.NewDatabaseError("profile update commit", err))
			return
		}

		user, err := scanUser(db.QueryRow(`SELECT `+userColumns+` FROM users WHERE id = $1`, userID))
		if err != nil {
			response.Error(w, r, apperror.NewDatabaseError("profile reload", err))
			return
		}

		response.Success(w, user, "Profile updated")
	}
}
