package main

import (
	"context"
	"log"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"go.uber.org/fx"

	"mangadesk/cmd/fx/account_fx"
	"mangadesk/cmd/fx/catalog_fx"
	"mangadesk/cmd/fx/controllers_fx"
	"mangadesk/cmd/fx/curation_fx"
	"mangadesk/cmd/fx/dashboard_fx"
	"mangadesk/cmd/fx/db_fx"
	"mangadesk/cmd/fx/device_fx"
	"mangadesk/cmd/fx/redis_fx"
	"mangadesk/cmd/fx/storage_fx"
	"mangadesk/internal/api/controllers"
	"mangadesk/pkg/middleware"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using process environment")
	}

	app := fx.New(
		db_fx.Module,
		redis_fx.Module,
		storage_fx.Module,
		account_fx.Module,
		device_fx.Module,
		catalog_fx.Module,
		curation_fx.Module,
		dashboard_fx.Module,
		controllers_fx.Module,

		fx.Invoke(StartServer),
		fx.Provide(ProvideRouter),
	)

	app.Run()
}

func StartServer(lc fx.Lifecycle, engine *gin.Engine) {
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			go func() {
				log.Println("Starting HTTP server at ${PORT}")
				if err := engine.Run(":" + os.Getenv("PORT")); err != nil {
					log.Fatalf("Failed to start server: %v", err)
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			log.Println("Stopping HTTP server")
			return nil
		},
	})
}

func ProvideRouter(
	accountController *controllers.AccountController,
	deviceController *controllers.DeviceController,
	mangaController *controllers.MangaController,
	chapterController *controllers.ChapterController,
	genreController *controllers.GenreController,
	curationController *controllers.CurationController,
	dashboardController *controllers.DashboardController,
	uploadController *controllers.UploadController) *gin.Engine {

	r := gin.Default()
	r.Use(gin.Logger())
	r.Use(gin.Recovery())
	r.Use(middleware.CORSMiddleware())
	r.Use(middleware.TraceIDMiddleware())

	RegisterRoutes(r,
		accountController, deviceController, mangaController, chapterController,
		genreController, curationController, dashboardController, uploadController)

	return r
}

func RegisterRoutes(r *gin.Engine,
	accountController *controllers.AccountController,
	deviceController *controllers.DeviceController,
	mangaController *controllers.MangaController,
	chapterController *controllers.ChapterController,
	genreController *controllers.GenreController,
	curationController *controllers.CurationController,
	dashboardController *controllers.DashboardController,
	uploadController *controllers.UploadController) {

	adminOnly := []gin.HandlerFunc{middleware.JWTAuthMiddleware(), middleware.RoleMiddleware("admin")}

	accountsGroup := r.Group("/accounts")
	accountsGroup.POST("/login", accountController.Login)
	accountsGroup.POST("/exchange", accountController.ExchangeToken)
	accountsGroup.GET("", append(adminOnly, accountController.ListAccounts)...)
	accountsGroup.GET("/:id", append(adminOnly, accountController.GetAccount)...)
	accountsGroup.PUT("/xp", append(adminOnly, accountController.SetXP)...)
	accountsGroup.PUT("/subscription", append(adminOnly, accountController.GrantSubscription)...)
	accountsGroup.DELETE("/subscription", append(adminOnly, accountController.RevokeSubscription)...)
	accountsGroup.DELETE("/ban", append(adminOnly, accountController.LiftBan)...)

	// Reader-app device endpoints: token travels in the body, shapes are the
	// flat JSON the clients already speak.
	deviceGroup := r.Group("/device")
	deviceGroup.POST("/verify-device", deviceController.VerifyDevice)
	deviceGroup.POST("/check-suspension", deviceController.CheckSuspension)
	deviceGroup.POST("/get-devices", deviceController.GetDevices)
	deviceGroup.POST("/delete-device", deviceController.DeleteDevice)
	deviceGroup.POST("/clear-devices", deviceController.ClearDevices)

	mangaGroup := r.Group("/manga")
	mangaGroup.GET("", mangaController.ListManga)
	mangaGroup.GET("/:id", mangaController.GetMangaById)
	mangaGroup.GET("/:id/chapters", chapterController.ListChapters)
	mangaGroup.POST("", append(adminOnly, mangaController.CreateManga)...)
	mangaGroup.PUT("", append(adminOnly, mangaController.UpdateManga)...)
	mangaGroup.DELETE("/:id", append(adminOnly, mangaController.DeleteManga)...)
	mangaGroup.POST("/:id/cover", append(adminOnly, uploadController.UploadCover)...)

	chaptersGroup := r.Group("/chapters")
	chaptersGroup.GET("/:id", middleware.JWTAuthMiddleware(), chapterController.ReadChapter)
	chaptersGroup.POST("", append(adminOnly, chapterController.CreateChapter)...)
	chaptersGroup.PUT("", append(adminOnly, chapterController.UpdateChapter)...)
	chaptersGroup.DELETE("/:id", append(adminOnly, chapterController.DeleteChapter)...)
	chaptersGroup.POST("/:id/pages", append(adminOnly, uploadController.UploadPage)...)
	chaptersGroup.PUT("/pages/reorder", append(adminOnly, chapterController.ReorderPages)...)

	genresGroup := r.Group("/genres")
	genresGroup.GET("", genreController.ListAllGenresHandler)
	genresGroup.POST("", append(adminOnly, genreController.CreateGenre)...)

	curationGroup := r.Group("/curation")
	curationGroup.GET("/carousel", curationController.GetCarousel)
	curationGroup.GET("/popular", curationController.GetPopular)
	curationGroup.GET("/entries", append(adminOnly, curationController.ListEntries)...)
	curationGroup.POST("/entries", append(adminOnly, curationController.CreateEntry)...)
	curationGroup.PUT("/entries", append(adminOnly, curationController.UpdateEntry)...)
	curationGroup.DELETE("/entries/:id", append(adminOnly, curationController.DeleteEntry)...)

	dashboardGroup := r.Group("/dashboard")
	dashboardGroup.GET("/stats", append(adminOnly, dashboardController.GetDashboard)...)
}
