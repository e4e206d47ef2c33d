// Package testutil abre bancos SQLite em memória para os testes dos repositórios.
package testutil

import (
	"testing"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// NovoBanco cria um banco em memória com uma única conexão e migra os modelos.
func NovoBanco(t testing.TB, modelos ...any) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("abrir sqlite: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("sql.DB: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	if len(modelos) > 0 {
		if err := db.AutoMigrate(modelos...); err != nil {
			t.Fatalf("AutoMigrate: %v", err)
		}
	}
	return db
}
