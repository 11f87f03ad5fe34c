package handlers

import (
	"database/sql"
	"net/http"
	"strings"
	"time"

	"kaamsaathi-backend/models"
	"kaamsaathi-backend/pkg/apperror"
	"kaamsaathi-backend/pkg/cache"
	"kaamsaathi-backend/pkg/logger"
	"kaamsaathi-backend/pkg/response"

	"github.com/lib/pq"
	"go.uber.org/zap"
)

const workerCacheTTL = 5 * time.Minute

var workerCache cache.Cache = cache.NoopCache{}

// SetWorkerCache sets the read-through cache for worker listings
func SetWorkerCache(c cache.Cache) {
	if c != nil {
		workerCache = c
	}
}

func workerListCacheKey(category string) string {
	if category == "" {
		return "workers:all"
	}
	return "workers:" + category
}

// invalidateWorkerCache drops the cached listings after a profile change
func invalidateWorkerCache(category string) {
	if err := workerCache.Delete(workerListCacheKey("")); err != nil {
		logger.Warn("Worker cache invalidation failed", zap.Error(err))
	}
	if category != "" {
		if err := workerCache.Delete(workerListCacheKey(category)); err != nil {
			logger.Warn("Worker cache invalidation failed", zap.Error(err))
		}
	}
}

const workerColumns = `id, user_id, name, COALESCE(photo, ''), category, rating, review_count,
	daily_wage, experience, COALESCE(location, ''), available, quick_response, skills,
	COALESCE(description, ''), COALESCE(description_hi, ''), created_at, updated_at`

// scanWorker reads the standard worker columns from a row scanner
func scanWorker(scan func(dest ...interface{}) error) (*models.Worker, error) {
	var worker models.Worker
	err := scan(&worker.ID, &worker.UserID, &worker.Name, &worker.Photo, &worker.Category,
		&worker.Rating, &worker.ReviewCount, &worker.DailyWage, &worker.Experience,
		&worker.Location, &worker.Available, &worker.QuickResponse, pq.Array(&worker.Skills),
		&worker.Description, &worker.DescriptionHi, &worker.CreatedAt, &worker.UpdatedAt)
	if err != nil {
		return nil, err
	}
	if worker.Skills == nil {
		worker.Skills = []string{}
	}
	return &worker, nil
}

// GetWorkers godoc
// @Summary      List workers
// @Description  All workers, best-rated first. Optional ?category= filter using the fixed category enum.
// @Tags         workers
// @Produce      json
// @Param        category query string false "Category filter" Enums(electrician, builder, plumber, carpenter, whitewasher)
// @Success      200  {object}  response.Response
// @Failure      400  {object}  response.Response
// @Router       /workers [get]
func GetWorkers(db *sql.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			response.MethodNotAllowed(w)
			return
		}

		category := strings.TrimSpace(r.URL.Query().Get("category"))
		if category != "" && !models.IsValidCategory(category) {
			response.Error(w, r, apperror.NewValidationError("Unknown category: "+category))
			return
		}

		cacheKey := workerListCacheKey(category)
		var cached []models.Worker
		if err := workerCache.Get(cacheKey, &cached); err == nil {
			response.Success(w, cached, "Workers retrieved")
			return
		}

		query := `SELECT ` + workerColumns + ` FROM workers`
		args := []interface{}{}
		if category != "" {
			query += ` WHERE category = $1`
			args = append(args, category)
		}
		query += ` ORDER BY rating DESC, review_count DESC`

		rows, err := db.Query(query, args...)
		if err != nil {
			response.Error(w, r, apperror.NewDatabaseError("worker listing", err))
			return
		}
		defer rows.Close()

		workers := []models.Worker{}
		for rows.Next() {
			worker, err := scanWorker(rows.Scan)
			if err != nil {
				response.Error(w, r, apperror.NewDatabaseError("worker scan", err))
				return
			}
			workers = append(workers, *worker)
		}
		if err := rows.Err(); err != nil {
			response.Error(w, r, apperror.NewDatabaseError("worker listing", err))
			return
		}

		if err := workerCache.Set(cacheKey, workers, workerCacheTTL); err != nil {
			logger.Warn("Worker cache write failed", zap.Error(err))
		}

		response.Success(w, workers, "Workers retrieved")
	}
}

// GetWorkerByID godoc
// @Summary      Get one worker
// @Description  Returns the worker, or a success envelope with null data when the id matches nothing.
// @Tags         workers
// @Produce      json
// @Param        id path string true "Worker ID"
// @Success      200  {object}  response.Response
// @Router       /workers/{id} [get]
func GetWorkerByID(db *sql.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			response.MethodNotAllowed(w)
			return
		}

		id := strings.TrimPrefix(r.URL.Path, "/api/workers/")
		if id == "" {
			response.Error(w, r, apperror.NewValidationError("Worker id is required"))
			return
		}

		// Text comparison so a malformed id behaves like an absent one
		worker, err := scanWorker(db.QueryRow(`SELECT `+workerColumns+` FROM workers WHERE id::text = $1`, id).Scan)
		if err == sql.ErrNoRows {
			// An absent worker is an empty result, not an error
			response.Success(w, nil, "Worker not found")
			return
		}
		if err != nil {
			response.Error(w, r, apperror.NewDatabaseError("worker lookup", err))
			return
		}

		response.Success(w, worker, "Worker retrieved")
	}
}
