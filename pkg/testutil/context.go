package testutil

import (
	"context"

	"github.com/podlift/backend/config"
	"github.com/podlift/backend/internal/entity"
	"github.com/podlift/backend/pkg/idutil"
	"github.com/podlift/backend/pkg/logger"
	"github.com/podlift/backend/pkg/xcontext"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// MockContext returns a context holding a fresh in-memory database with every
// table migrated. The pool is limited to one connection because each sqlite
// memory connection is a separate database.
func MockContext() context.Context {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		TranslateError: true,
		Logger:         gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		panic(err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		panic(err)
	}
	sqlDB.SetMaxOpenConns(1)

	cfg := config.Default()
	cfg.Env = "test"
	cfg.Auth.TokenSecret = "secret"

	ctx := context.Background()
	ctx = xcontext.WithConfigs(ctx, cfg)
	ctx = xcontext.WithLogger(ctx, logger.NewNopLogger())
	ctx = xcontext.WithSnowFlake(ctx, idutil.NewSnowflakeNode(1))
	ctx = xcontext.WithDB(ctx, db)

	if err := entity.MigrateTable(ctx); err != nil {
		panic(err)
	}

	return ctx
}

// WithConfigs lets a test tweak a copy of the configs in the context.
func WithConfigs(ctx context.Context, fn func(cfg *config.Configs)) context.Context {
	cfg := xcontext.Configs(ctx)
	fn(&cfg)
	return xcontext.WithConfigs(ctx, cfg)
}
