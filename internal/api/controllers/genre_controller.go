package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"mangadesk/internal/models/request_models"
	"mangadesk/internal/services"
	"mangadesk/pkg/utils"
)

type GenreController struct {
	genreService services.GenreServiceInterface
}

func NewGenreController(genreService services.GenreServiceInterface) *GenreController {
	return &GenreController{
		genreService: genreService,
	}
}

func (g *GenreController) ListAllGenresHandler(c *gin.Context) {
	page, pageSize, ok := parsePaging(c)
	if !ok {
		return
	}

	genres, err := g.genreService.GetAllGenres(c.Request.Context(), page, pageSize)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, genres, "Genres fetched successfully")
}

func (g *GenreController) CreateGenre(c *gin.Context) {
	var req request_models.CreateGenreRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid request format")
		return
	}

	if err := g.genreService.CreateGenre(c.Request.Context(), req); err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, nil, "Genre created successfully")
}
