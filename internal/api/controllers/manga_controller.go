package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"mangadesk/internal/models/request_models"
	"mangadesk/internal/models/response_models"
	"mangadesk/internal/services"
	"mangadesk/pkg/utils"
)

type MangaController struct {
	mangaService services.MangaServiceInterface
}

func NewMangaController(mangaService services.MangaServiceInterface) *MangaController {
	return &MangaController{
		mangaService: mangaService,
	}
}

func (m *MangaController) GetMangaById(c *gin.Context) {
	mangaId := c.Param("id")
	if mangaId == "" {
		utils.RespondError(c, http.StatusBadRequest, "Manga ID is required")
		return
	}

	manga, err := m.mangaService.GetMangaById(c.Request.Context(), mangaId)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, manga, "Manga fetched successfully")
}

func (m *MangaController) ListManga(c *gin.Context) {
	page, pageSize, ok := parsePaging(c)
	if !ok {
		return
	}

	title := c.Query("title")
	genreID := c.Query("genreId")

	var (
		manga []response_models.MangaResponse
		err   error
	)
	switch {
	case title != "":
		manga, err = m.mangaService.SearchManga(c.Request.Context(), title, page, pageSize)
	case genreID != "":
		manga, err = m.mangaService.ListMangaByGenre(c.Request.Context(), genreID, page, pageSize)
	default:
		manga, err = m.mangaService.ListManga(c.Request.Context(), page, pageSize)
	}
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, manga, "Manga fetched successfully")
}

// CreateManga godoc
// @Summary Create a manga
// @Tags Manga
// @Accept json
// @Produce json
// @Param request body request_models.CreateMangaRequest true "Manga payload"
// @Success 200 {object} utils.APIResponse
// @Security BearerAuth
// @Router /manga [post]
func (m *MangaController) CreateManga(c *gin.Context) {
	var req request_models.CreateMangaRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid request format")
		return
	}

	manga, err := m.mangaService.CreateManga(c.Request.Context(), req)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, manga, "Manga created successfully")
}

func (m *MangaController) UpdateManga(c *gin.Context) {
	var req request_models.UpdateMangaRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid request format")
		return
	}

	if err := m.mangaService.UpdateManga(c.Request.Context(), req); err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, nil, "Manga updated successfully")
}

func (m *MangaController) DeleteManga(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid manga ID")
		return
	}

	if err := m.mangaService.DeleteManga(c.Request.Context(), id); err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, nil, "Manga deleted successfully")
}
