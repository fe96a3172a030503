package controllersfx

import (
	"go.uber.org/fx"

	"tripmark/internal/api/controllers"
)

var Module = fx.Options(
	fx.Provide(controllers.NewAuthController),
	fx.Provide(controllers.NewRecordController),
	fx.Provide(controllers.NewMarkerController),
	fx.Provide(controllers.NewFriendController),
)
