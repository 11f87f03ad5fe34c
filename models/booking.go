package models

import "time"

// Booking statuses
const (
	BookingStatusPending    = "pending"
	BookingStatusConfirmed  = "confirmed"
	BookingStatusInProgress = "in-progress"
	BookingStatusCompleted  = "completed"
	BookingStatusCancelled  = "cancelled"
)

// ValidBookingStatuses - allowed statuses
var ValidBookingStatuses = []string{
	BookingStatusPending,
	BookingStatusConfirmed,
	BookingStatusInProgress,
	BookingStatusCompleted,
	BookingStatusCancelled,
}

// IsValidBookingStatus - status enum check
func IsValidBookingStatus(status string) bool {
	for _, s := range ValidBookingStatuses {
		if s == status {
			return true
		}
	}
	return false
}

// CanTransitionBookingStatus - legal status advances. The lifecycle moves
// forward only (pending -> confirmed -> in-progress -> completed); any
// non-terminal state may be cancelled, and cancelled/completed are terminal.
func CanTransitionBookingStatus(from, to string) bool {
	switch from {
	case BookingStatusPending:
		return to == BookingStatusConfirmed || to == BookingStatusCancelled
	case BookingStatusConfirmed:
		return to == BookingStatusInProgress || to == BookingStatusCancelled
	case BookingStatusInProgress:
		return to == BookingStatusCompleted || to == BookingStatusCancelled
	default:
		return false
	}
}

// Booking - a reservation connecting a customer, a worker, a date range and
// a price. Worker fields are a snapshot taken at booking time and are never
// updated afterwards, even if the worker profile changes.
type Booking struct {
	ID          string    `json:"id"`
	CustomerID  string    `json:"customer_id"`
	WorkerID    string    `json:"worker_id"`
	WorkerName  string    `json:"worker_name"`
	WorkerPhoto string    `json:"worker_photo,omitempty"`
	Category    string    `json:"category"`
	DailyWage   float64   `json:"daily_wage"`
	StartDate   time.Time `json:"start_date"`
	Address     string    `json:"address"`
	TotalDays   int       `json:"total_days"`
	TotalAmount float64   `json:"total_amount"`
	Status      string    `json:"status"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at,omitempty"`
}

// CreateBookingRequest - booking creation payload. Status and amount are
// intentionally absent: status always starts at pending and the total is
// recomputed server-side from the worker's current daily wage.
type CreateBookingRequest struct {
	WorkerID  string `json:"worker_id" validate:"required,uuid4"`
	StartDate string `json:"start_date" validate:"required,datetime=2006-01-02"`
	Address   string `json:"address" validate:"required,min=5,max=500"`
	TotalDays int    `json:"total_days" validate:"required,gte=1,lte=365"`
}

// UpdateBookingStatusRequest - partner-side status advance
type UpdateBookingStatusRequest struct {
	Status string `json:"status" validate:"required"`
}
