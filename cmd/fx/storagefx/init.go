package storagefx

import (
	"context"

	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"tripmark/internal/storage"
)

var Module = fx.Options(
	fx.Provide(provideDatabase),
	fx.Provide(provideSlotStore),
)

func provideDatabase(lc fx.Lifecycle, log *zap.Logger) (*gorm.DB, error) {
	db, err := storage.InitPostgresql(log)
	if err != nil {
		return nil, err
	}
	lc.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			storage.ClosePostgresql(db, log)
			return nil
		},
	})
	return db, nil
}

func provideSlotStore(db *gorm.DB) storage.SlotStore {
	return storage.NewPostgresSlotStore(db)
}
