package sessionfx

import (
	"context"

	"go.uber.org/fx"
	"go.uber.org/zap"

	"tripmark/internal/recordstore"
	"tripmark/internal/session"
	"tripmark/internal/storage"
)

var Module = fx.Provide(provideSessionStore)

func provideSessionStore(slots storage.SlotStore, records recordstore.Store, log *zap.Logger) (*session.Store, error) {
	return session.New(context.Background(), slots, records, log)
}
