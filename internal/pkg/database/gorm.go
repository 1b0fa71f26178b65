package database

import (
	"blogpessoal/internal/api/config"
	"blogpessoal/internal/model"
	"blogpessoal/internal/pkg/consts"
	"blogpessoal/internal/pkg/logger"
	"fmt"
	log "log/slog"
	"time"

	"github.com/glebarez/sqlite"
	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

const (
	DriverMySQL    = "mysql"
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

// NewGormDB 初始化并返回 *gorm.DB 实例，处理连接池配置
func NewGormDB(cfg *config.DBConfig) (*gorm.DB, error) {
	dialector, err := newDialector(cfg)
	if err != nil {
		return nil, err
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger:      logger.NewGormLogger(consts.SQLSlowThreshold),
		PrepareStmt: true,
		// 删除主题时不级联校验帖子，与原有数据模型保持一致
		DisableForeignKeyConstraintWhenMigrating: true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open database connection: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get underlying DB: %w", err)
	}

	sqlDB.SetMaxIdleConns(cfg.MaxIdle)
	sqlDB.SetMaxOpenConns(cfg.MaxOpen)
	sqlDB.SetConnMaxLifetime(time.Duration(cfg.MaxLifetime) * time.Minute)

	if err = sqlDB.Ping(); err != nil {
		return nil, fmt.Errorf("database connection check failed: %w", err)
	}

	if cfg.AutoMigrate {
		if err = Migrate(db); err != nil {
			return nil, err
		}
	}

	log.Info("Database connection established successfully.", "driver", cfg.Driver)
	return db, nil
}

// Migrate 自动建表
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(&model.Tema{}, &model.Usuario{}, &model.Postagem{}); err != nil {
		return fmt.Errorf("failed to migrate schema: %w", err)
	}
	if err := backfillTituloBusca(db); err != nil {
		return fmt.Errorf("failed to backfill titulo_busca: %w", err)
	}
	return nil
}

// backfillTituloBusca 补齐新增列之前写入的行，UpdateColumn 不触发钩子也不刷新 data
func backfillTituloBusca(db *gorm.DB) error {
	var posts []model.Postagem
	return db.Select("id", "titulo").
		Where("titulo_busca = '' AND titulo <> ''").
		FindInBatches(&posts, 200, func(*gorm.DB, int) error {
			for _, p := range posts {
				err := db.Model(&model.Postagem{}).Where("id = ?", p.ID).
					UpdateColumn("titulo_busca", model.NormalizeTitulo(p.Titulo)).Error
				if err != nil {
					return err
				}
			}
			return nil
		}).Error
}

func newDialector(cfg *config.DBConfig) (gorm.Dialector, error) {
	switch cfg.Driver {
	case "", DriverMySQL:
		return mysql.Open(cfg.DSN), nil
	case DriverPostgres:
		return postgres.Open(cfg.DSN), nil
	case DriverSQLite:
		return sqlite.Open(cfg.DSN), nil
	default:
		return nil, fmt.Errorf("unsupported database driver: %s", cfg.Driver)
	}
}
