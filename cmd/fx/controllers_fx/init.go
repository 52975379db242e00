package controllers_fx

import (
	"go.uber.org/fx"

	"mangadesk/internal/api/controllers"
)

var Module = fx.Options(
	fx.Provide(controllers.NewAccountController),
	fx.Provide(controllers.NewDeviceController),
	fx.Provide(controllers.NewMangaController),
	fx.Provide(controllers.NewChapterController),
	fx.Provide(controllers.NewGenreController),
	fx.Provide(controllers.NewCurationController),
	fx.Provide(controllers.NewDashboardController),
	fx.Provide(controllers.NewUploadController))
