package main

import (
	"context"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"go.uber.org/fx"
	"go.uber.org/fx/fxevent"
	"go.uber.org/zap"

	"tripmark/cmd/fx/controllersfx"
	"tripmark/cmd/fx/friendfx"
	"tripmark/cmd/fx/recordfx"
	"tripmark/cmd/fx/sessionfx"
	"tripmark/cmd/fx/storagefx"
	"tripmark/internal/api/controllers"
	"tripmark/pkg/middleware"
)

func main() {
	_ = godotenv.Load()

	app := fx.New(
		fx.Provide(zap.NewProduction),
		fx.WithLogger(func(log *zap.Logger) fxevent.Logger {
			return &fxevent.ZapLogger{Logger: log}
		}),

		storagefx.Module,
		recordfx.Module,
		sessionfx.Module,
		friendfx.Module,
		controllersfx.Module,

		fx.Provide(ProvideRouter),
		fx.Invoke(StartServer),
	)

	app.Run()
}

func StartServer(lc fx.Lifecycle, engine *gin.Engine, log *zap.Logger) {
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			go func() {
				port := os.Getenv("PORT")
				if port == "" {
					port = "8080"
				}
				log.Info("starting HTTP server", zap.String("port", port))
				if err := engine.Run(":" + port); err != nil {
					log.Fatal("failed to start server", zap.Error(err))
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			log.Info("stopping HTTP server")
			return nil
		},
	})
}

func ProvideRouter(
	authController *controllers.AuthController,
	recordController *controllers.RecordController,
	markerController *controllers.MarkerController,
	friendController *controllers.FriendController) *gin.Engine {

	r := gin.Default()
	r.Use(middleware.TraceIDMiddleware())
	r.Use(middleware.CORSMiddleware())

	RegisterRoutes(r, authController, recordController, markerController, friendController)

	return r
}

func RegisterRoutes(r *gin.Engine,
	authController *controllers.AuthController,
	recordController *controllers.RecordController,
	markerController *controllers.MarkerController,
	friendController *controllers.FriendController) {

	auth := r.Group("/auth")
	auth.POST("/register", authController.Register)
	auth.POST("/login", authController.Login)

	authed := r.Group("/", middleware.JWTAuthMiddleware())

	authed.POST("/auth/logout", authController.Logout)
	authed.GET("/auth/me", authController.Me)
	authed.PATCH("/auth/profile", authController.UpdateProfile)
	authed.POST("/auth/password", authController.ChangePassword)
	authed.DELETE("/auth/withdraw", authController.Withdraw)

	authed.POST("/records", recordController.CreateRecord)
	authed.GET("/records", recordController.ListRecords)
	authed.GET("/records/:id", recordController.GetRecord)
	authed.PATCH("/records/:id", recordController.UpdateRecord)
	authed.DELETE("/records/:id", recordController.DeleteRecord)

	authed.POST("/records/:id/photos", recordController.AddPhoto)
	authed.DELETE("/records/:id/photos/:photoId", recordController.RemovePhoto)
	authed.PATCH("/records/:id/photos/:photoId", recordController.UpdatePhotoDetails)
	authed.POST("/records/:id/photos/:photoId/tags", recordController.AddPhotoTag)
	authed.DELETE("/records/:id/photos/:photoId/tags", recordController.RemovePhotoTag)

	authed.GET("/photos", recordController.ListPhotos)
	authed.DELETE("/photos/:photoId", recordController.DeletePhoto)
	authed.PATCH("/photos/:photoId/favorite", recordController.UpdatePhotoFavorite)

	authed.GET("/markers", markerController.ListMarkers)

	authed.GET("/friends", friendController.ListFriends)
	authed.GET("/friends/search", friendController.SearchUsers)
	authed.GET("/friends/requests", friendController.ListReceivedRequests)
	authed.POST("/friends/requests", friendController.SendRequest)
	authed.POST("/friends/requests/:userId/accept", friendController.AcceptRequest)
	authed.POST("/friends/requests/:userId/reject", friendController.RejectRequest)
	authed.DELETE("/friends/:userId", friendController.RemoveFriend)
}
