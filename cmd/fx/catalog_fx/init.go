package catalog_fx

import (
	"go.uber.org/fx"
	"gorm.io/gorm"

	"mangadesk/internal/infra"
	"mangadesk/internal/repositories"
	"mangadesk/internal/services"
)

var Module = fx.Provide(
	provideMangaRepo, provideChapterRepo, provideGenreRepo,
	provideMangaService, provideChapterService, provideGenreService,
	provideUploadService)

func provideMangaRepo(db *gorm.DB) repositories.MangaRepository {
	return repositories.NewMangaRepository(db)
}

func provideChapterRepo(db *gorm.DB) repositories.ChapterRepository {
	return repositories.NewChapterRepository(db)
}

func provideGenreRepo(db *gorm.DB) repositories.GenreRepository {
	return repositories.NewGenreRepository(db)
}

func provideMangaService(mangaRepo repositories.MangaRepository, genreRepo repositories.GenreRepository) services.MangaServiceInterface {
	return services.NewMangaService(mangaRepo, genreRepo)
}

func provideChapterService(
	chapterRepo repositories.ChapterRepository,
	mangaRepo repositories.MangaRepository,
	accountRepo repositories.AccountRepository,
	policy services.DevicePolicyServiceInterface) services.ChapterServiceInterface {
	return services.NewChapterService(chapterRepo, mangaRepo, accountRepo, policy)
}

func provideGenreService(genreRepo repositories.GenreRepository) services.GenreServiceInterface {
	return services.NewGenreService(genreRepo)
}

func provideUploadService(store infra.ObjectStore, mangaSvc services.MangaServiceInterface, chapterRepo repositories.ChapterRepository) services.UploadServiceInterface {
	return services.NewUploadService(store, mangaSvc, chapterRepo)
}
