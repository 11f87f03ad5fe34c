package handlers

import (
	"net/http"

	"kaamsaathi-backend/models"
	"kaamsaathi-backend/pkg/response"
)

// GetCategories godoc
// @Summary      List service categories
// @Description  The fixed catalog of service categories with English and Hindi labels.
// @Tags         categories
// @Produce      json
// @Success      200  {object}  response.Response
// @Router       /categories [get]
func GetCategories() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			response.MethodNotAllowed(w)
			return
		}

		response.Success(w, models.Categories, "Categories retrieved")
	}
}
