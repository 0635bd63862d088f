package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"physiohub/physio-app/internal/domain"
	"physiohub/physio-app/internal/service"
)

// RoutineHandler holds the routine service dependency.
type RoutineHandler struct {
	routineService service.RoutineService
}

// NewRoutineHandler creates a new RoutineHandler.
func NewRoutineHandler(routineService service.RoutineService) *RoutineHandler {
	return &RoutineHandler{routineService: routineService}
}

// --- DTOs ---

// SetStatusRequest moves a routine through its delivery lifecycle.
type SetStatusRequest struct {
	Status domain.RoutineStatus `json:"status" binding:"required"`
}

// --- Handler Methods ---

// CreateRoutine stores a new draft routine for the authenticated physio.
func (h *RoutineHandler) CreateRoutine(c *gin.Context) {
	physioID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusUnauthorized, "Unable to identify physio from token.")
		return
	}

	var routine domain.Routine
	if err := c.ShouldBindJSON(&routine); err != nil {
		abortWithError(c, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}

	created, err := h.routineService.Create(c.Request.Context(), physioID, &routine)
	if err != nil {
		if respondValidation(c, err) {
			return
		}
		if errors.Is(err, service.ErrUnknownExercise) {
			abortWithError(c, http.StatusUnprocessableEntity, err.Error())
			return
		}
		abortWithError(c, http.StatusInternalServerError, "Failed to create routine")
		return
	}

	c.JSON(http.StatusCreated, created)
}

// GetRoutine returns one routine owned by the physio.
func (h *RoutineHandler) GetRoutine(c *gin.Context) {
	physioID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusUnauthorized, "Unable to identify physio from token.")
		return
	}

	routine, err := h.routineService.Get(c.Request.Context(), physioID, c.Param("id"))
	if err != nil {
		respondRoutineError(c, err)
		return
	}

	c.JSON(http.StatusOK, routine)
}

// ListRoutines lists the physio's routines, newest first.
func (h *RoutineHandler) ListRoutines(c *gin.Context) {
	physioID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusUnauthorized, "Unable to identify physio from token.")
		return
	}

	routines, err := h.routineService.List(c.Request.Context(), physioID)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to list routines")
		return
	}

	if routines == nil {
		routines = []domain.Routine{}
	}
	c.JSON(http.StatusOK, routines)
}

// ReplaceRoutine swaps the stored routine for the request body.
func (h *RoutineHandler) ReplaceRoutine(c *gin.Context) {
	physioID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusUnauthorized, "Unable to identify physio from token.")
		return
	}

	var routine domain.Routine
	if err := c.ShouldBindJSON(&routine); err != nil {
		abortWithError(c, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}
	routine.ID = c.Param("id")

	updated, err := h.routineService.Replace(c.Request.Context(), physioID, &routine)
	if err != nil {
		if respondValidation(c, err) {
			return
		}
		if errors.Is(err, service.ErrUnknownExercise) {
			abortWithError(c, http.StatusUnprocessableEntity, err.Error())
			return
		}
		respondRoutineError(c, err)
		return
	}

	c.JSON(http.StatusOK, updated)
}

// SetRoutineStatus moves the routine through its delivery lifecycle.
func (h *RoutineHandler) SetRoutineStatus(c *gin.Context) {
	physioID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusUnauthorized, "Unable to identify physio from token.")
		return
	}

	var req SetStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}

	routine, err := h.routineService.SetStatus(c.Request.Context(), physioID, c.Param("id"), req.Status)
	if err != nil {
		if errors.Is(err, service.ErrInvalidTransition) {
			abortWithError(c, http.StatusConflict, err.Error())
			return
		}
		respondRoutineError(c, err)
		return
	}

	c.JSON(http.StatusOK, routine)
}

// DeleteRoutine removes a routine that has not been delivered.
func (h *RoutineHandler) DeleteRoutine(c *gin.Context) {
	physioID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusUnauthorized, "Unable to identify physio from token.")
		return
	}

	if err := h.routineService.Delete(c.Request.Context(), physioID, c.Param("id")); err != nil {
		respondRoutineError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

func respondRoutineError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrRoutineNotFound):
		abortWithError(c, http.StatusNotFound, err.Error())
	case errors.Is(err, service.ErrRoutineAccessDenied):
		abortWithError(c, http.StatusForbidden, err.Error())
	case errors.Is(err, service.ErrRoutineDelivered):
		abortWithError(c, http.StatusConflict, err.Error())
	default:
		abortWithError(c, http.StatusInternalServerError, "Routine operation failed")
	}
}
