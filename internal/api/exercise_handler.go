package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"physiohub/physio-app/internal/domain"
	"physiohub/physio-app/internal/service"
	"physiohub/physio-app/internal/storage"
)

// ExerciseHandler holds the exercise service dependency.
type ExerciseHandler struct {
	exerciseService service.ExerciseService
	fileStorage     storage.FileStorage
}

// NewExerciseHandler creates a new ExerciseHandler.
func NewExerciseHandler(exerciseService service.ExerciseService, fileStorage storage.FileStorage) *ExerciseHandler {
	return &ExerciseHandler{
		exerciseService: exerciseService,
		fileStorage:     fileStorage,
	}
}

// respondValidation maps a validation failure to a structured 400 and
// reports whether it handled the error.
func respondValidation(c *gin.Context, err error) bool {
	var verrs domain.ValidationErrors
	if errors.As(err, &verrs) {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{
			"error":  "validation failed",
			"fields": verrs,
		})
		return true
	}
	return false
}

// --- Handler Methods ---

// CreateExercise adds an exercise to the authenticated physio's library.
// The body is the exercise record itself.
func (h *ExerciseHandler) CreateExercise(c *gin.Context) {
	var exercise domain.Exercise
	if err := c.ShouldBindJSON(&exercise); err != nil {
		abortWithError(c, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}

	physioID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusUnauthorized, "Unable to identify physio from token.")
		return
	}

	created, err := h.exerciseService.Create(c.Request.Context(), physioID, &exercise)
	if err != nil {
		if respondValidation(c, err) {
			return
		}
		if errors.Is(err, service.ErrExerciseExists) {
			abortWithError(c, http.StatusConflict, err.Error())
			return
		}
		abortWithError(c, http.StatusInternalServerError, "Failed to create exercise")
		return
	}

	c.JSON(http.StatusCreated, created)
}

// GetExercise returns one exercise, from the physio's library or the
// shared one. With ?lang=xx the localized view is returned instead of
// the full record.
func (h *ExerciseHandler) GetExercise(c *gin.Context) {
	physioID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusUnauthorized, "Unable to identify physio from token.")
		return
	}
	exerciseID := c.Param("id")

	if lang := c.Query("lang"); lang != "" {
		view, err := h.exerciseService.GetLocalized(c.Request.Context(), physioID, exerciseID, lang)
		if err != nil {
			if errors.Is(err, service.ErrExerciseNotFound) {
				abortWithError(c, http.StatusNotFound, err.Error())
				return
			}
			abortWithError(c, http.StatusInternalServerError, "Failed to get exercise")
			return
		}
		c.JSON(http.StatusOK, view)
		return
	}

	exercise, err := h.exerciseService.Get(c.Request.Context(), physioID, exerciseID)
	if err != nil {
		if errors.Is(err, service.ErrExerciseNotFound) {
			abortWithError(c, http.StatusNotFound, err.Error())
			return
		}
		abortWithError(c, http.StatusInternalServerError, "Failed to get exercise")
		return
	}

	c.JSON(http.StatusOK, exercise)
}

// ListExercises lists the physio's own exercises, or the shared library
// with ?scope=shared. Search filters narrow either listing.
func (h *ExerciseHandler) ListExercises(c *gin.Context) {
	physioID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusUnauthorized, "Unable to identify physio from token.")
		return
	}

	filter := service.SearchFilter{
		BodyRegion:      c.Query("body_region"),
		Condition:       c.Query("condition"),
		Difficulty:      c.Query("difficulty"),
		TherapeuticGoal: c.Query("goal"),
		Equipment:       c.Query("equipment"),
	}

	var exercises []domain.Exercise
	switch {
	case filter != (service.SearchFilter{}):
		exercises, err = h.exerciseService.Search(c.Request.Context(), physioID, filter)
	case c.Query("scope") == "shared":
		exercises, err = h.exerciseService.ListShared(c.Request.Context())
	default:
		exercises, err = h.exerciseService.List(c.Request.Context(), physioID)
	}
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to list exercises")
		return
	}

	if exercises == nil {
		exercises = []domain.Exercise{}
	}
	c.JSON(http.StatusOK, exercises)
}

// ReplaceExercise swaps the stored exercise for the request body.
func (h *ExerciseHandler) ReplaceExercise(c *gin.Context) {
	physioID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusUnauthorized, "Unable to identify physio from token.")
		return
	}

	var exercise domain.Exercise
	if err := c.ShouldBindJSON(&exercise); err != nil {
		abortWithError(c, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}
	exercise.ID = c.Param("id")

	updated, err := h.exerciseService.Replace(c.Request.Context(), physioID, &exercise)
	if err != nil {
		if respondValidation(c, err) {
			return
		}
		switch {
		case errors.Is(err, service.ErrExerciseNotFound):
			abortWithError(c, http.StatusNotFound, err.Error())
		case errors.Is(err, service.ErrSharedReadOnly):
			abortWithError(c, http.StatusForbidden, err.Error())
		default:
			abortWithError(c, http.StatusInternalServerError, "Failed to update exercise")
		}
		return
	}

	c.JSON(http.StatusOK, updated)
}

// DeleteExercise removes an exercise from the physio's library.
func (h *ExerciseHandler) DeleteExercise(c *gin.Context) {
	physioID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusUnauthorized, "Unable to identify physio from token.")
		return
	}

	err = h.exerciseService.Delete(c.Request.Context(), physioID, c.Param("id"))
	if err != nil {
		if errors.Is(err, service.ErrExerciseNotFound) {
			abortWithError(c, http.StatusNotFound, err.Error())
			return
		}
		abortWithError(c, http.StatusInternalServerError, "Failed to delete exercise")
		return
	}

	c.Status(http.StatusNoContent)
}

// GetExerciseImageURLs resolves each stored image reference to a
// presigned download URL. Image URLs in the record are object keys, not
// directly fetchable.
func (h *ExerciseHandler) GetExerciseImageURLs(c *gin.Context) {
	physioID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusUnauthorized, "Unable to identify physio from token.")
		return
	}

	exercise, err := h.exerciseService.Get(c.Request.Context(), physioID, c.Param("id"))
	if err != nil {
		if errors.Is(err, service.ErrExerciseNotFound) {
			abortWithError(c, http.StatusNotFound, err.Error())
			return
		}
		abortWithError(c, http.StatusInternalServerError, "Failed to get exercise")
		return
	}

	type imageURL struct {
		Order   int    `json:"order"`
		AltText string `json:"alt_text"`
		URL     string `json:"url"`
	}

	urls := make([]imageURL, 0, len(exercise.Images))
	for _, img := range exercise.Images {
		signed, err := h.fileStorage.GeneratePresignedDownloadURL(c.Request.Context(), img.URL, storage.DefaultPresignedURLExpiry)
		if err != nil {
			abortWithError(c, http.StatusInternalServerError, "Failed to sign image URL")
			return
		}
		urls = append(urls, imageURL{Order: img.Order, AltText: img.AltText, URL: signed})
	}

	c.JSON(http.StatusOK, urls)
}
