package contrato

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

const (
	StatusPendente   = "pendente"
	StatusAtivo      = "ativo"
	StatusFinalizado = "finalizado"
	StatusCancelado  = "cancelado"
)

// Contrato de locação entre a empresa e um cliente.
//
// ValorMensal é a cobrança de cada mês; ValorTotal é sempre
// ValorMensal × número de meses do período e é recalculado pelo backend.
type Contrato struct {
	ID        string `gorm:"type:varchar(36);primaryKey" json:"id"`
	Numero    string `gorm:"size:30;not null;uniqueIndex" json:"numero"`
	ClienteID uint   `gorm:"not null;index" json:"clienteId"`

	DataInicio    time.Time       `gorm:"type:date;not null" json:"dataInicio"`
	DataFim       time.Time       `gorm:"type:date;not null" json:"dataFim"`
	ValorMensal   decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0" json:"valorMensal"`
	ValorTotal    decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0" json:"valorTotal"`
	DiaVencimento *int            `json:"diaVencimento"` // nil = dia padrão
	Status        string          `gorm:"size:20;not null;default:'pendente';index" json:"status"`
	Observacoes   string          `gorm:"type:text" json:"observacoes"`

	Itens []ContratoItem `gorm:"foreignKey:ContratoID;constraint:OnDelete:CASCADE" json:"itens"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (c *Contrato) BeforeCreate(tx *gorm.DB) error {
	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	return nil
}

// ContratoItem é uma linha de equipamento do contrato.
type ContratoItem struct {
	ID            uint            `gorm:"primaryKey" json:"id"`
	ContratoID    string          `gorm:"type:varchar(36);not null;index" json:"contratoId"`
	EquipamentoID uint            `gorm:"not null;index" json:"equipamentoId"`
	Quantidade    int             `gorm:"not null;default:1" json:"quantidade"`
	ValorUnitario decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0" json:"valorUnitario"`
}

// SomaItens devolve Σ quantidade × valor unitário.
func SomaItens(itens []ContratoItem) decimal.Decimal {
	total := decimal.Zero
	for _, it := range itens {
		total = total.Add(it.ValorUnitario.Mul(decimal.NewFromInt(int64(it.Quantidade))))
	}
	return total.Round(2)
}

// EquipamentoIDs lista os equipamentos dos itens, sem repetição.
func EquipamentoIDs(itens []ContratoItem) []uint {
	vistos := make(map[uint]bool, len(itens))
	ids := make([]uint, 0, len(itens))
	for _, it := range itens {
		if !vistos[it.EquipamentoID] {
			vistos[it.EquipamentoID] = true
			ids = append(ids, it.EquipamentoID)
		}
	}
	return ids
}

// ContarMeses conta os meses de calendário entre inicio e fim, inclusive.
// Devolve 0 quando fim é anterior a inicio.
func ContarMeses(inicio, fim time.Time) int {
	n := (fim.Year()-inicio.Year())*12 + int(fim.Month()) - int(inicio.Month()) + 1
	if n < 0 {
		return 0
	}
	return n
}

// CalcularValorTotal devolve valorMensal × meses do período. O valor mensal
// é arredondado a 2 casas antes, como em cada parcela do cronograma.
func CalcularValorTotal(valorMensal decimal.Decimal, inicio, fim time.Time) decimal.Decimal {
	return valorMensal.Round(2).Mul(decimal.NewFromInt(int64(ContarMeses(inicio, fim))))
}
