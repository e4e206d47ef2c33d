// internal/equipamento/model.go
package equipamento

import (
	"time"

	"github.com/shopspring/decimal"
)

const (
	StatusDisponivel = "disponivel"
	StatusLocado     = "locado"
	StatusManutencao = "manutencao"
)

// Equipamento é um item do parque de máquinas disponível para locação.
type Equipamento struct {
	ID          uint            `gorm:"primaryKey" json:"id"`
	Nome        string          `gorm:"size:255;not null" json:"nome"`
	Categoria   string          `gorm:"size:100;index" json:"categoria"`
	NumeroSerie string          `gorm:"size:100" json:"numeroSerie"`
	ValorDiaria decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0" json:"valorDiaria"`
	ValorMensal decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0" json:"valorMensal"`
	Status      string          `gorm:"size:20;not null;default:'disponivel';index" json:"status"`
	CreatedAt   time.Time       `json:"createdAt"`
	UpdatedAt   time.Time       `json:"updatedAt"`
}
