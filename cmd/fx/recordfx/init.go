package recordfx

import (
	"context"

	"go.uber.org/fx"
	"go.uber.org/zap"

	"tripmark/internal/recordstore"
	"tripmark/internal/storage"
)

var Module = fx.Provide(provideRecordStore)

func provideRecordStore(slots storage.SlotStore, log *zap.Logger) (recordstore.Store, error) {
	return recordstore.New(context.Background(), slots, log)
}
