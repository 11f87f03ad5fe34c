package handlers

import (
	"context"
	"database/sql"
	"net/http"
	"time"

	"kaamsaathi-backend/models"
	"kaamsaathi-backend/pkg/apperror"
	"kaamsaathi-backend/pkg/logger"
	"kaamsaathi-backend/pkg/response"
	"kaamsaathi-backend/pkg/translator"
	"kaamsaathi-backend/pkg/validator"

	"github.com/lib/pq"
	"go.uber.org/zap"
)

var hindiTranslator translator.Translator

// SetTranslator sets the optional Hindi description translator
func SetTranslator(t translator.Translator) {
	hindiTranslator = t
}

// linkedWorker resolves the worker profile owned by a partner account
func linkedWorker(db *sql.DB, userID string) (*models.Worker, error) {
	worker, err := scanWorker(db.QueryRow(`SELECT `+workerColumns+` FROM workers WHERE user_id = $1`, userID).Scan)
	if err == sql.ErrNoRows {
		return nil, apperror.NewNotLinkedError()
	}
	if err != nil {
		return nil, apperror.NewDatabaseError("linked worker lookup", err)
	}
	return worker, nil
}

// GetWorkerSettings godoc
// @Summary      Get the partner's worker settings
// @Tags         partner
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  response.Response
// @Failure      401  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Router       /partner/settings [get]
func GetWorkerSettings(db *sql.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			response.MethodNotAllowed(w)
			return
		}

		userID, _ := UserIDFromContext(r.Context())

		worker, err := scanWorker(db.QueryRow(`SELECT `+workerColumns+` FROM workers WHERE user_id = $1`, userID).Scan)
		if err == sql.ErrNoRows {
			response.Error(w, r, apperror.NewNotFoundError("No worker profile found for this account"))
			return
		}
		if err != nil {
			response.Error(w, r, apperror.NewDatabaseError("worker settings lookup", err))
			return
		}

		response.Success(w, models.WorkerSettings{
			QuickResponse: worker.QuickResponse,
			Available:     worker.Available,
		}, "Settings retrieved")
	}
}

// toggleWorkerFlag flips a boolean column on the partner's worker row
func toggleWorkerFlag(db *sql.DB, column string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost && r.Method != http.MethodPut {
			response.MethodNotAllowed(w)
			return
		}

		userID, _ := UserIDFromContext(r.Context())

		var req models.ToggleRequest
		if err := decodeJSON(r, &req); err != nil {
			response.Error(w, r, err)
			return
		}

		worker, err := linkedWorker(db, userID)
		if err != nil {
			response.Error(w, r, err)
			return
		}

		// column comes from the two fixed call sites below, never from input
		_, err = db.Exec(`UPDATE workers SET `+column+` = $1, updated_at = NOW() WHERE id = $2`,
			req.Enabled, worker.ID)
		if err != nil {
			response.Error(w, r, apperror.NewDatabaseError("worker flag update", err))
			return
		}

		invalidateWorkerCache(worker.Category)

		settings := models.WorkerSettings{QuickResponse: worker.QuickResponse, Available: worker.Available}
		switch column {
		case "quick_response":
			settings.QuickResponse = req.Enabled
		case "available":
			settings.Available = req.Enabled
		}

		response.Success(w, settings, "Settings updated")
	}
}

// ToggleQuickResponse godoc
// @Summary      Toggle the quick-response badge
// @Tags         partner
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body models.ToggleRequest true "New flag value"
// @Success      200  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Router       /partner/quick-response [post]
func ToggleQuickResponse(db *sql.DB) http.HandlerFunc {
	return toggleWorkerFlag(db, "quick_response")
}

// ToggleAvailability godoc
// @Summary      Toggle availability for new bookings
// @Tags         partner
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body models.ToggleRequest true "New flag value"
// @Success      200  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Router       /partner/availability [post]
func ToggleAvailability(db *sql.DB) http.HandlerFunc {
	return toggleWorkerFlag(db, "available")
}

// UpdateWorkerProfile godoc
// @Summary      Update the partner's worker profile
// @Description  Partial update of wage, experience, location, skills and description. A new description is translated to Hindi in the background.
// @Tags         partner
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body models.UpdateWorkerProfileRequest true "Fields to update"
// @Success      200  {object}  response.Response
// @Failure      400  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Router       /partner/profile [put]
func UpdateWorkerProfile(db *sql.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPut && r.Method != http.MethodPatch {
			response.MethodNotAllowed(w)
			return
		}

		userID, _ := UserIDFromContext(r.Context())

		var req models.UpdateWorkerProfileRequest
		if err := decodeJSON(r, &req); err != nil {
			response.Error(w, r, err)
			return
		}

		if err := validator.Validate(req); err != nil {
			response.Error(w, r, apperror.NewValidationError(err.Error()))
			return
		}

		worker, err := linkedWorker(db, userID)
		if err != nil {
			response.Error(w, r, err)
			return
		}

		var skills interface{}
		if req.Skills != nil {
			skills = pq.Array(*req.Skills)
		}

		// A new English description resets the Hindi one until the
		// translator back-fills it
		_, err = db.Exec(`
			UPDATE workers SET
				daily_wage = COALESCE($1, daily_wage),
				experience = COALESCE($2, experience),
				location = COALESCE($3, location),
				skills = COALESCE($4, skills),
				description = COALESCE($5, description),
				description_hi = CASE WHEN $5::text IS NULL THEN description_hi ELSE NULL END,
				updated_at = NOW()
			WHERE id = $6
		`, req.DailyWage, req.Experience, req.Location, skills, req.Description, worker.ID)
		if err != nil {
			response.Error(w, r, apperror.NewDatabaseError("worker profile update", err))
			return
		}

		invalidateWorkerCache(worker.Category)

		if req.Description != nil && hindiTranslator != nil {
			go backfillHindiDescription(db, worker.ID, *req.Description)
		}

		updated, err := scanWorker(db.QueryRow(`SELECT `+workerColumns+` FROM workers WHERE id = $1`, worker.ID).Scan)
		if err != nil {
			response.Error(w, r, apperror.NewDatabaseError("worker profile reload", err))
			return
		}

		response.Success(w, updated, "Profile updated")
	}
}

// backfillHindiDescription translates the description off the request path
func backfillHindiDescription(db *sql.DB, workerID, description string) {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	hindi, err := hindiTranslator.TranslateToHindi(ctx, description)
	if err != nil {
		logger.Warn("Hindi translation failed",
			zap.String("worker_id", workerID),
			zap.Error(err),
		)
		return
	}

	_, err = db.Exec(`UPDATE workers SET description_hi = $1, updated_at = NOW() WHERE id = $2`,
		hindi, workerID)
	if err != nil {
		logger.Error("Hindi description write failed",
			zap.String("worker_id", workerID),
			zap.Error(err),
		)
		return
	}

	logger.Info("🌐 Hindi description back-filled", zap.String("worker_id", workerID))
}
