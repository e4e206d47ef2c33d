package db

import (
	"github.com/locaequip/api-locacao/internal/utils"
	"gorm.io/gorm"
)

// GetDB abre a conexão com o Postgres a partir das variáveis de ambiente.
func GetDB() (*gorm.DB, error) {
	port := utils.GetEnvInt("DB_PORT", 5432)
	return ConnectDataBase(
		uint(port),
		utils.GetEnv("DB_HOST", "localhost"),
		utils.GetEnv("DB_NAME", "locacao"),
		utils.GetEnv("DB_SECRET_ID", ""),
	)
}
