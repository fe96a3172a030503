package friendfx

import (
	"go.uber.org/fx"
	"go.uber.org/zap"

	"tripmark/internal/friends"
)

var Module = fx.Provide(provideFriendService)

func provideFriendService(log *zap.Logger) *friends.Service {
	return friends.New(log)
}
