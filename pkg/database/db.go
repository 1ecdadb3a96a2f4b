package database

import (
	"Storefront/config"
	"Storefront/pkg/log"
	"fmt"
	"time"

	"go.uber.org/zap"
	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// NewDB 初始化数据库连接，返回的 cleanup 在进程退出时关闭连接池
func NewDB(conf *config.Database) (*gorm.DB, func(), error) {
	var dialector gorm.Dialector
	switch conf.Driver {
	case config.DriverPostgres:
		dialector = postgres.Open(conf.Dsn())
	case config.DriverMySQL, "":
		dialector = mysql.Open(conf.Dsn())
	default:
		return nil, nil, fmt.Errorf("unsupported database driver %q", conf.Driver)
	}

	db, err := Open(dialector, conf.SlowThreshold)
	if err != nil {
		return nil, nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, nil, fmt.Errorf("get sql db: %w", err)
	}
	if conf.MaxOpenConns > 0 {
		sqlDB.SetMaxOpenConns(conf.MaxOpenConns)
	}
	if conf.MaxIdleConns > 0 {
		sqlDB.SetMaxIdleConns(conf.MaxIdleConns)
	}
	if conf.ConnMaxLifetime > 0 {
		sqlDB.SetConnMaxLifetime(conf.ConnMaxLifetime)
	}

	log.L.Info("connect database success", zap.String("driver", conf.Driver))
	cleanup := func() {
		if err := sqlDB.Close(); err != nil {
			log.L.Warn("close database", zap.Error(err))
		}
	}
	return db, cleanup, nil
}

// Open 使用统一的 gorm 配置打开任意方言，测试里用 sqlite
func Open(dialector gorm.Dialector, slowThreshold time.Duration) (*gorm.DB, error) {
	db, err := gorm.Open(dialector, &gorm.Config{
		Logger:         NewLogger(log.L, slowThreshold),
		TranslateError: true,
		NowFunc: func() time.Time {
			return time.Now().UTC()
		},
	})
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	return db, nil
}
