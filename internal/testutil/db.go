package testutil

import (
	"blogpessoal/internal/model"
	"blogpessoal/internal/pkg/database"
	"testing"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// NewSQLiteDB 返回迁移完成的内存库，单连接保证同一测试内数据可见
func NewSQLiteDB(t testing.TB) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger:                                   logger.Default.LogMode(logger.Silent),
		DisableForeignKeyConstraintWhenMigrating: true,
	})
	if err != nil {
		t.Fatalf("failed to open sqlite: %v", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("failed to get underlying DB: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	if err = database.Migrate(db); err != nil {
		t.Fatalf("failed to migrate: %v", err)
	}
	return db
}

// SeedTema 插入一个主题并返回
func SeedTema(t testing.TB, db *gorm.DB, descricao string) *model.Tema {
	t.Helper()
	tema := &model.Tema{Descricao: descricao}
	if err := db.Create(tema).Error; err != nil {
		t.Fatalf("failed to seed tema: %v", err)
	}
	return tema
}

// SeedUsuario 插入一个用户并返回
func SeedUsuario(t testing.TB, db *gorm.DB, nome, usuario string) *model.Usuario {
	t.Helper()
	u := &model.Usuario{Nome: nome, Usuario: usuario}
	if err := db.Create(u).Error; err != nil {
		t.Fatalf("failed to seed usuario: %v", err)
	}
	return u
}
