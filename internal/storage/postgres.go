package storage

import (
	"context"
	"errors"
	"os"

	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// Slot is the single table backing the durable slots: one row per key.
type Slot struct {
	Key   string `gorm:"primaryKey;column:key"`
	Value string `gorm:"column:value;type:text"`
}

func (Slot) TableName() string { return "slots" }

// InitPostgresql opens the connection pool from POSTGRES_URL and makes
// sure the slots table exists.
func InitPostgresql(log *zap.Logger) (*gorm.DB, error) {
	dsn := os.Getenv("POSTGRES_URL")

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		log.Error("error connecting to database", zap.Error(err))
		return nil, err
	}

	if err := db.AutoMigrate(&Slot{}); err != nil {
		log.Error("error migrating slots table", zap.Error(err))
		return nil, err
	}

	return db, nil
}

func ClosePostgresql(db *gorm.DB, log *zap.Logger) {
	sqlDB, err := db.DB()
	if err != nil {
		log.Warn("error getting database instance", zap.Error(err))
		return
	}
	if err := sqlDB.Close(); err != nil {
		log.Warn("error closing database connection", zap.Error(err))
	}
}

// PostgresSlotStore keeps each slot in its own row; Save upserts on the
// primary key so a slot write is one statement.
type PostgresSlotStore struct {
	db *gorm.DB
}

func NewPostgresSlotStore(db *gorm.DB) *PostgresSlotStore {
	return &PostgresSlotStore{db: db}
}

func (s *PostgresSlotStore) Get(ctx context.Context, key string) (string, bool, error) {
	var slot Slot
	err := s.db.WithContext(ctx).First(&slot, "key = ?", key).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", false, nil
		}
		return "", false, err
	}
	return slot.Value, true, nil
}

func (s *PostgresSlotStore) Set(ctx context.Context, key, value string) error {
	return s.db.WithContext(ctx).Save(&Slot{Key: key, Value: value}).Error
}

func (s *PostgresSlotStore) Delete(ctx context.Context, key string) error {
	return s.db.WithContext(ctx).Delete(&Slot{}, "key = ?", key).Error
}
