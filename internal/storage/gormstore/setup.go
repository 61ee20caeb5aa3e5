package gormstore

import (
	"context"
	"fmt"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/adventure-league/tracker/internal/storage"
)

// Connect opens the database with pooling configured.
func Connect(dsn string) (*gorm.DB, error) {
	if dsn == "" {
		return nil, fmt.Errorf("database URL is required")
	}

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		return nil, fmt.Errorf("connect to database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("get underlying sql.DB: %w", err)
	}
	sqlDB.SetMaxOpenConns(20)
	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetConnMaxLifetime(5 * time.Minute)

	return db, nil
}

// Migrate creates any missing tables.
func Migrate(db *gorm.DB) error {
	models := []interface{}{
		&User{},
		&Character{},
		&LootVoucher{},
		&AttendanceToken{},
	}

	migrator := db.Migrator()

	for _, model := range models {
		if !migrator.HasTable(model) {
			if err := db.AutoMigrate(model); err != nil {
				return err
			}
		}
	}

	return nil
}

// Open migrates the schema and returns the store set, seeding the fixture
// data when the users table is empty. Idempotent: a populated database is
// left untouched.
func Open(ctx context.Context, db *gorm.DB, seed bool) (*storage.Stores, error) {
	if err := Migrate(db); err != nil {
		return nil, fmt.Errorf("migrate: %w", err)
	}

	if seed {
		if err := seedIfEmpty(ctx, db); err != nil {
			return nil, fmt.Errorf("seed: %w", err)
		}
	}

	return &storage.Stores{
		Users:      &UserStore{db: db},
		Characters: &CharacterStore{db: db},
		Vouchers:   &LootVoucherStore{db: db},
		Attendance: &AttendanceStore{db: db},
	}, nil
}

func seedIfEmpty(ctx context.Context, db *gorm.DB) error {
	var count int64
	if err := db.WithContext(ctx).Model(&User{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	fixtures := storage.Fixtures()

	return db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, u := range fixtures.Users {
			if err := tx.Create(ptr(userFromDomain(u))).Error; err != nil {
				return err
			}
		}
		for _, c := range fixtures.Characters {
			model, err := characterFromDomain(c)
			if err != nil {
				return err
			}
			if err := tx.Create(&model).Error; err != nil {
				return err
			}
		}
		for _, v := range fixtures.Vouchers {
			if err := tx.Create(ptr(voucherFromDomain(v))).Error; err != nil {
				return err
			}
		}
		if len(fixtures.Tokens) > 0 {
			tokens := make([]AttendanceToken, 0, len(fixtures.Tokens))
			for _, t := range fixtures.Tokens {
				tokens = append(tokens, tokenFromDomain(t))
			}
			if err := tx.Create(&tokens).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

func ptr[T any](v T) *T {
	return &v
}
