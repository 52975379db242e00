package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"mangadesk/internal/models/request_models"
	"mangadesk/internal/services"
	"mangadesk/pkg/utils"
)

type CurationController struct {
	curationService services.CurationServiceInterface
}

func NewCurationController(curationService services.CurationServiceInterface) *CurationController {
	return &CurationController{
		curationService: curationService,
	}
}

// GetCarousel is the public, cached read used by reader clients.
func (cu *CurationController) GetCarousel(c *gin.Context) {
	entries, err := cu.curationService.GetCarousel(c.Request.Context())
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, entries, "Carousel fetched successfully")
}

func (cu *CurationController) GetPopular(c *gin.Context) {
	manga, err := cu.curationService.GetPopular(c.Request.Context())
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, manga, "Popular manga fetched successfully")
}

// ListEntries returns every carousel entry, inactive ones included, for the
// admin curation screen.
func (cu *CurationController) ListEntries(c *gin.Context) {
	entries, err := cu.curationService.ListEntries(c.Request.Context())
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, entries, "Carousel entries fetched successfully")
}

func (cu *CurationController) CreateEntry(c *gin.Context) {
	var req request_models.CreateCarouselEntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid request format")
		return
	}

	if err := cu.curationService.CreateEntry(c.Request.Context(), req); err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, nil, "Carousel entry created successfully")
}

func (cu *CurationController) UpdateEntry(c *gin.Context) {
	var req request_models.UpdateCarouselEntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid request format")
		return
	}

	if err := cu.curationService.UpdateEntry(c.Request.Context(), req); err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, nil, "Carousel entry updated successfully")
}

func (cu *CurationController) DeleteEntry(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		utils.RespondError(c, http.StatusBadRequest, "Entry ID is required")
		return
	}

	if err := cu.curationService.DeleteEntry(c.Request.Context(), id); err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, nil, "Carousel entry deleted successfully")
}
