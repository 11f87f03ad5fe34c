package handlers

import (
	"net/http"

	"kaamsaathi-backend/pkg/apperror"
	"kaamsaathi-backend/pkg/i18n"
	"kaamsaathi-backend/pkg/response"
)

// GetTranslations godoc
// @Summary      Get the UI translation table
// @Description  Returns every UI string for the requested language (en or hi). Defaults to English.
// @Tags         i18n
// @Produce      json
// @Param        lang query string false "Language code" Enums(en, hi)
// @Success      200  {object}  response.Response
// @Failure      400  {object}  response.Response
// @Router       /i18n [get]
func GetTranslations() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			response.MethodNotAllowed(w)
			return
		}

		lang := r.URL.Query().Get("lang")
		if lang == "" {
			lang = i18n.LangEnglish
		}
		if !i18n.IsValidLanguage(lang) {
			response.Error(w, r, apperror.NewValidationError("Unknown language: "+lang))
			return
		}

		response.Success(w, map[string]interface{}{
			"language":     lang,
			"translations": i18n.Table(lang),
		}, "Translations retrieved")
	}
}
