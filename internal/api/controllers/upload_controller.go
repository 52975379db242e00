package controllers

import (
	"io"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"mangadesk/internal/services"
	"mangadesk/pkg/utils"
)

// 20 MiB is plenty for a single page scan.
const maxUploadBytes = 20 << 20

type UploadController struct {
	uploadService services.UploadServiceInterface
}

func NewUploadController(uploadService services.UploadServiceInterface) *UploadController {
	return &UploadController{
		uploadService: uploadService,
	}
}

// UploadCover godoc
// @Summary Upload a manga cover image
// @Tags Uploads
// @Accept multipart/form-data
// @Produce json
// @Param id path string true "Manga ID"
// @Param file formData file true "Cover image (jpeg or png)"
// @Success 200 {object} utils.APIResponse
// @Security BearerAuth
// @Router /manga/{id}/cover [post]
func (u *UploadController) UploadCover(c *gin.Context) {
	mangaID := c.Param("id")
	if mangaID == "" {
		utils.RespondError(c, http.StatusBadRequest, "Manga ID is required")
		return
	}

	contentType, data, ok := readUpload(c)
	if !ok {
		return
	}

	resp, err := u.uploadService.UploadCover(c.Request.Context(), mangaID, contentType, data)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, resp, "Cover uploaded successfully")
}

// UploadPage godoc
// @Summary Upload a chapter page image
// @Tags Uploads
// @Accept multipart/form-data
// @Produce json
// @Param id path string true "Chapter ID"
// @Param index formData int true "Page index"
// @Param file formData file true "Page image (jpeg or png)"
// @Success 200 {object} utils.APIResponse
// @Security BearerAuth
// @Router /chapters/{id}/pages [post]
func (u *UploadController) UploadPage(c *gin.Context) {
	chapterID := c.Param("id")
	if chapterID == "" {
		utils.RespondError(c, http.StatusBadRequest, "Chapter ID is required")
		return
	}

	index, err := strconv.Atoi(c.PostForm("index"))
	if err != nil || index < 0 {
		utils.RespondError(c, http.StatusBadRequest, "Invalid page index")
		return
	}

	contentType, data, ok := readUpload(c)
	if !ok {
		return
	}

	resp, err := u.uploadService.UploadPage(c.Request.Context(), chapterID, index, contentType, data)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, resp, "Page uploaded successfully")
}

func readUpload(c *gin.Context) (string, []byte, bool) {
	header, err := c.FormFile("file")
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, "File is required")
		return "", nil, false
	}
	if header.Size > maxUploadBytes {
		utils.RespondError(c, http.StatusBadRequest, "File too large")
		return "", nil, false
	}

	file, err := header.Open()
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Could not read file")
		return "", nil, false
	}
	defer file.Close()

	data, err := io.ReadAll(io.LimitReader(file, maxUploadBytes))
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Could not read file")
		return "", nil, false
	}

	return header.Header.Get("Content-Type"), data, true
}
