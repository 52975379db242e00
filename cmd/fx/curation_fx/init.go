package curation_fx

import (
	"github.com/redis/go-redis/v9"
	"go.uber.org/fx"
	"gorm.io/gorm"

	"mangadesk/internal/repositories"
	"mangadesk/internal/services"
)

var Module = fx.Provide(
	provideCurationRepo, provideCurationService)

func provideCurationRepo(db *gorm.DB) repositories.CurationRepository {
	return repositories.NewCurationRepository(db)
}

func provideCurationService(curationRepo repositories.CurationRepository, mangaRepo repositories.MangaRepository, cache *redis.Client) services.CurationServiceInterface {
	return services.NewCurationService(curationRepo, mangaRepo, cache)
}
