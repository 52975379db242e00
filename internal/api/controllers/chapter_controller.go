package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"mangadesk/internal/models/request_models"
	"mangadesk/internal/services"
	"mangadesk/pkg/utils"
)

type ChapterController struct {
	chapterService services.ChapterServiceInterface
	uploadService  services.UploadServiceInterface
}

func NewChapterController(chapterService services.ChapterServiceInterface, uploadService services.UploadServiceInterface) *ChapterController {
	return &ChapterController{
		chapterService: chapterService,
		uploadService:  uploadService,
	}
}

func (ch *ChapterController) ListChapters(c *gin.Context) {
	mangaID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid manga ID")
		return
	}

	chapters, err := ch.chapterService.ListChapters(c.Request.Context(), mangaID)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, chapters, "Chapters fetched successfully")
}

// ReadChapter godoc
// @Summary Read a chapter
// @Description Returns chapter pages; premium chapters require an active subscription
// @Tags Chapters
// @Produce json
// @Success 200 {object} utils.APIResponse
// @Failure 403 {object} utils.APIResponse
// @Security BearerAuth
// @Router /chapters/{id} [get]
func (ch *ChapterController) ReadChapter(c *gin.Context) {
	chapterID := c.Param("id")
	if chapterID == "" {
		utils.RespondError(c, http.StatusBadRequest, "Chapter ID is required")
		return
	}

	accountID := c.GetString("user_id")

	chapter, err := ch.chapterService.ReadChapter(c.Request.Context(), chapterID, accountID)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, chapter, "Chapter fetched successfully")
}

func (ch *ChapterController) CreateChapter(c *gin.Context) {
	var req request_models.CreateChapterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid request format")
		return
	}

	chapter, err := ch.chapterService.CreateChapter(c.Request.Context(), req)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, chapter, "Chapter created successfully")
}

func (ch *ChapterController) UpdateChapter(c *gin.Context) {
	var req request_models.UpdateChapterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid request format")
		return
	}

	if err := ch.chapterService.UpdateChapter(c.Request.Context(), req); err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, nil, "Chapter updated successfully")
}

// DeleteChapter removes the stored page images first, then the chapter row.
func (ch *ChapterController) DeleteChapter(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid chapter ID")
		return
	}

	if err := ch.uploadService.DeleteChapterAssets(c.Request.Context(), id.String()); err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	if err := ch.chapterService.DeleteChapter(c.Request.Context(), id); err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, nil, "Chapter deleted successfully")
}

func (ch *ChapterController) ReorderPages(c *gin.Context) {
	var req request_models.ReorderPagesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid request format")
		return
	}

	if err := ch.chapterService.ReorderPages(c.Request.Context(), req); err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, nil, "Pages reordered successfully")
}
