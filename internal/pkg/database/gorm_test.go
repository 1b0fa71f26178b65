package database

import (
	"blogpessoal/internal/api/config"
	"blogpessoal/internal/model"
	"testing"
)

func TestNewGormDB_SQLite(t *testing.T) {
	db, err := NewGormDB(&config.DBConfig{
		Driver:      DriverSQLite,
		DSN:         "file:gorm_test?mode=memory&cache=shared",
		MaxIdle:     1,
		MaxOpen:     1,
		MaxLifetime: 1,
		AutoMigrate: true,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	for _, table := range []any{&model.Tema{}, &model.Usuario{}, &model.Postagem{}} {
		if !db.Migrator().HasTable(table) {
			t.Fatalf("expected table for %T to exist", table)
		}
	}
}

func TestNewGormDB_UnsupportedDriver(t *testing.T) {
	if _, err := NewGormDB(&config.DBConfig{Driver: "oracle"}); err == nil {
		t.Fatal("expected error for unsupported driver")
	}
}
