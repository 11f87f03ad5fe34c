package handlers

import (
	"database/sql"
	"net/http"
	"strings"
	"time"

	"kaamsaathi-backend/models"
	"kaamsaathi-backend/pkg/apperror"
	"kaamsaathi-backend/pkg/i18n"
	"kaamsaathi-backend/pkg/logger"
	"kaamsaathi-backend/pkg/notification"
	"kaamsaathi-backend/pkg/response"
	"kaamsaathi-backend/pkg/validator"
	"kaamsaathi-backend/pkg/websocket"

	"go.uber.org/zap"
)

var pushService *notification.OneSignalService

// SetPushService sets the optional push notification collaborator
func SetPushService(s *notification.OneSignalService) {
	pushService = s
}

const bookingColumns = `id, customer_id, worker_id, worker_name, COALESCE(worker_photo, ''),
	category, daily_wage, start_date, address, total_days, total_amount, status,
	created_at, updated_at`

func scanBooking(scan func(dest ...interface{}) error) (*models.Booking, error) {
	var b models.Booking
	err := scan(&b.ID, &b.CustomerID, &b.WorkerID, &b.WorkerName, &b.WorkerPhoto,
		&b.Category, &b.DailyWage, &b.StartDate, &b.Address, &b.TotalDays,
		&b.TotalAmount, &b.Status, &b.CreatedAt, &b.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &b, nil
}

// CreateBooking godoc
// @Summary      Create a booking
// @Description  Books a worker for a date range. The price is computed from the worker's current daily wage and the booking always starts in pending.
// @Tags         bookings
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body models.CreateBookingRequest true "Booking data"
// @Success      201  {object}  response.Response
// @Failure      400  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Router       /bookings [post]
func CreateBooking(db *sql.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			response.MethodNotAllowed(w)
			return
		}

		customerID, _ := UserIDFromContext(r.Context())

		var req models.CreateBookingRequest
		if err := decodeJSON(r, &req); err != nil {
			response.Error(w, r, err)
			return
		}

		if err := validator.Validate(req); err != nil {
			response.Error(w, r, apperror.NewValidationError(err.Error()))
			return
		}

		worker, err := scanWorker(db.QueryRow(`SELECT `+workerColumns+` FROM workers WHERE id = $1`, req.WorkerID).Scan)
		if err == sql.ErrNoRows {
			response.Error(w, r, apperror.NewNotFoundError("Worker not found"))
			return
		}
		if err != nil {
			response.Error(w, r, apperror.NewDatabaseError("booking worker lookup", err))
			return
		}

		// The client never prices its own booking
		totalAmount := worker.DailyWage * float64(req.TotalDays)

		booking, err := scanBooking(db.QueryRow(`
			INSERT INTO bookings (customer_id, worker_id, worker_name, worker_photo,
				category, daily_wage, start_date, address, total_days, total_amount, status)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, 'pending')
			RETURNING `+bookingColumns+`
		`, customerID, worker.ID, worker.Name, worker.Photo, worker.Category,
			worker.DailyWage, req.StartDate, req.Address, req.TotalDays, totalAmount).Scan)
		if err != nil {
			response.Error(w, r, apperror.NewDatabaseError("booking insert", err))
			return
		}

		logger.Info("📅 Booking created",
			zap.String("booking_id", booking.ID),
			zap.String("worker_id", worker.ID),
			zap.Float64("total_amount", totalAmount),
		)

		websocket.BroadcastNewBooking(worker.ID, websocket.NewBookingPayload{
			BookingID:   booking.ID,
			WorkerID:    worker.ID,
			Category:    booking.Category,
			StartDate:   booking.StartDate.Format("2006-01-02"),
			Address:     booking.Address,
			TotalDays:   booking.TotalDays,
			TotalAmount: booking.TotalAmount,
			CreatedAt:   booking.CreatedAt.Format(time.RFC3339),
		})

		notifyWorkerOwner(db, worker, booking)

		response.Created(w, booking, "Booking created")
	}
}

// notifyWorkerOwner pushes a new-booking notification to the partner who
// owns the worker profile, in the partner's language
func notifyWorkerOwner(db *sql.DB, worker *models.Worker, booking *models.Booking) {
	if pushService == nil || !pushService.IsConfigured() || worker.UserID == nil {
		return
	}

	var pushToken sql.NullString
	var language string
	err := db.QueryRow("SELECT push_token, language FROM users WHERE id = $1", *worker.UserID).
		Scan(&pushToken, &language)
	if err != nil || !pushToken.Valid || pushToken.String == "" {
		return
	}

	title := i18n.T("notify.newBooking.title", language)
	body := i18n.T("notify.newBooking.body", language)
	pushService.SendNotificationAsync(pushToken.String, title, body, map[string]interface{}{
		"booking_id": booking.ID,
		"type":       websocket.MessageTypeNewBooking,
	})
}

// GetBookings godoc
// @Summary      List bookings for the authenticated user
// @Description  Customers see the bookings they placed; partners see the bookings on their worker profile. Newest start date first.
// @Tags         bookings
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  response.Response
// @Failure      401  {object}  response.Response
// @Router       /bookings [get]
func GetBookings(db *sql.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			response.MethodNotAllowed(w)
			return
		}

		userID, _ := UserIDFromContext(r.Context())
		role, _ := RoleFromContext(r.Context())

		var rows *sql.Rows
		var err error
		if role == models.RolePartner {
			rows, err = db.Query(`
				SELECT `+bookingColumns+` FROM bookings
				WHERE worker_id = (SELECT id FROM workers WHERE user_id = $1)
				ORDER BY start_date DESC, created_at DESC
			`, userID)
		} else {
			rows, err = db.Query(`
				SELECT `+bookingColumns+` FROM bookings
				WHERE customer_id = $1
				ORDER BY start_date DESC, created_at DESC
			`, userID)
		}
		if err != nil {
			response.Error(w, r, apperror.NewDatabaseError("booking listing", err))
			return
		}
		defer rows.Close()

		bookings := []models.Booking{}
		for rows.Next() {
			booking, err := scanBooking(rows.Scan)
			if err != nil {
				response.Error(w, r, apperror.NewDatabaseError("booking scan", err))
				return
			}
			bookings = append(bookings, *booking)
		}
		if err := rows.Err(); err != nil {
			response.Error(w, r, apperror.NewDatabaseError("booking listing", err))
			return
		}

		response.Success(w, bookings, "Bookings retrieved")
	}
}

// UpdateBookingStatus godoc
// @Summary      Advance a booking's status
// @Description  Partners move their bookings through the lifecycle; customers may only cancel their own bookings. Illegal transitions are rejected.
// @Tags         bookings
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "Booking ID"
// @Param        request body models.UpdateBookingStatusRequest true "New status"
// @Success      200  {object}  response.Response
// @Failure      400  {object}  response.Response
// @Failure      403  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Router       /bookings/{id}/status [put]
func UpdateBookingStatus(db *sql.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPut && r.Method != http.MethodPatch {
			response.MethodNotAllowed(w)
			return
		}

		id := strings.TrimPrefix(r.URL.Path, "/api/bookings/")
		id = strings.TrimSuffix(id, "/status")
		if id == "" {
			response.Error(w, r, apperror.NewValidationError("Booking id is required"))
			return
		}

		userID, _ := UserIDFromContext(r.Context())
		role, _ := RoleFromContext(r.Context())

		var req models.UpdateBookingStatusRequest
		if err := decodeJSON(r, &req); err != nil {
			response.Error(w, r, err)
			return
		}

		if err := validator.Validate(req); err != nil {
			response.Error(w, r, apperror.NewValidationError(err.Error()))
			return
		}

		if !models.IsValidBookingStatus(req.Status) {
			response.Error(w, r, apperror.NewValidationError("Unknown status: "+req.Status))
			return
		}

		booking, err := scanBooking(db.QueryRow(`SELECT `+bookingColumns+` FROM bookings WHERE id::text = $1`, id).Scan)
		if err == sql.ErrNoRows {
			response.Error(w, r, apperror.NewNotFoundError("Booking not found"))
			return
		}
		if err != nil {
			response.Error(w, r, apperror.NewDatabaseError("booking lookup", err))
			return
		}

		if role == models.RolePartner {
			var ownerID sql.NullString
			err = db.QueryRow("SELECT user_id FROM workers WHERE id = $1", booking.WorkerID).Scan(&ownerID)
			if err != nil || !ownerID.Valid || ownerID.String != userID {
				response.Error(w, r, apperror.NewForbiddenError("This booking belongs to another worker"))
				return
			}
		} else {
			// Customers may only cancel, and only their own bookings
			if booking.CustomerID != userID {
				response.Error(w, r, apperror.NewForbiddenError("This booking belongs to another customer"))
				return
			}
			if req.Status != models.BookingStatusCancelled {
				response.Error(w, r, apperror.NewForbiddenError("Customers can only cancel bookings"))
				return
			}
		}

		if !models.CanTransitionBookingStatus(booking.Status, req.Status) {
			response.Error(w, r, apperror.NewValidationError(
				"Cannot change status from "+booking.Status+" to "+req.Status))
			return
		}

		updated, err := scanBooking(db.QueryRow(`
			UPDATE bookings SET status = $1, updated_at = NOW()
			WHERE id = $2
			RETURNING `+bookingColumns+`
		`, req.Status, booking.ID).Scan)
		if err != nil {
			response.Error(w, r, apperror.NewDatabaseError("booking status update", err))
			return
		}

		logger.Info("📅 Booking status changed",
			zap.String("booking_id", booking.ID),
			zap.String("from", booking.Status),
			zap.String("to", req.Status),
		)

		websocket.BroadcastBookingUpdate(booking.WorkerID, websocket.BookingUpdatePayload{
			BookingID: booking.ID,
			OldStatus: booking.Status,
			NewStatus: req.Status,
		})

		response.Success(w, updated, "Booking status updated")
	}
}
