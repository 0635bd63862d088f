package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"physiohub/physio-app/internal/genimage"
)

// IllustrationHandler drives the diffusion pipeline for catalog
// exercises. Generation is slow; these endpoints are synchronous on
// purpose so the physio sees the real outcome, and the gin request
// context carries the cancellation.
type IllustrationHandler struct {
	genService *genimage.Service
}

// NewIllustrationHandler creates a new IllustrationHandler.
func NewIllustrationHandler(genService *genimage.Service) *IllustrationHandler {
	return &IllustrationHandler{genService: genService}
}

// GenerateIllustrations renders and stores every catalog illustration
// for one exercise, returning the stored object keys.
func (h *IllustrationHandler) GenerateIllustrations(c *gin.Context) {
	exerciseID := c.Param("id")

	images, err := h.genService.GenerateExercise(c.Request.Context(), exerciseID)
	if err != nil {
		abortWithError(c, http.StatusBadGateway, "Generation failed: "+err.Error())
		return
	}

	c.JSON(http.StatusCreated, images)
}

// PreviewPrompts returns the prompt texts for an exercise without
// calling the generator.
func (h *IllustrationHandler) PreviewPrompts(c *gin.Context) {
	prompts, err := h.genService.BuildPrompts(c.Param("id"))
	if err != nil {
		abortWithError(c, http.StatusNotFound, err.Error())
		return
	}

	c.JSON(http.StatusOK, gin.H{"prompts": prompts})
}
