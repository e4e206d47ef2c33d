package pagamento

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
)

// Status das parcelas mensais. O resumo usa apenas pendente e pago.
const (
	StatusPendente  = "pendente"
	StatusPago      = "pago"
	StatusAtrasado  = "atrasado"
	StatusCancelado = "cancelado"
)

// PagamentoMensal é a cobrança de um mês de calendário do contrato.
type PagamentoMensal struct {
	ID             uint            `gorm:"primaryKey" json:"id"`
	ContratoID     string          `gorm:"type:varchar(36);not null;uniqueIndex:idx_pagamento_mensal_periodo,priority:1" json:"contratoId"`
	Ano            int             `gorm:"not null;uniqueIndex:idx_pagamento_mensal_periodo,priority:2" json:"ano"`
	Mes            int             `gorm:"not null;uniqueIndex:idx_pagamento_mensal_periodo,priority:3" json:"mes"`
	MesReferencia  string          `gorm:"size:20;not null" json:"mesReferencia"` // ex.: "jan/2025"
	DataVencimento time.Time       `gorm:"type:date;not null;index" json:"dataVencimento"`
	Valor          decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"valor"`
	Status         string          `gorm:"size:20;not null;default:'pendente';index" json:"status"`
	DataPagamento  *time.Time      `gorm:"type:date" json:"dataPagamento"`
	FormaPagamento string          `gorm:"size:50" json:"formaPagamento"`
	Observacoes    string          `gorm:"type:text" json:"observacoes"`
	CreatedAt      time.Time       `json:"createdAt"`
	UpdatedAt      time.Time       `json:"updatedAt"`
}

func (PagamentoMensal) TableName() string { return "pagamentos_mensais" }

// EquipamentoResumo é a foto de um item do contrato no momento da projeção.
type EquipamentoResumo struct {
	EquipamentoID uint            `json:"equipamentoId"`
	Nome          string          `json:"nome"`
	Quantidade    int             `json:"quantidade"`
	ValorUnitario decimal.Decimal `json:"valorUnitario"`
}

// Pagamento é o resumo desnormalizado da situação de pagamento de um contrato.
// Sobrevive à exclusão do contrato (ContratoExcluido = true).
type Pagamento struct {
	ID               uint                                  `gorm:"primaryKey" json:"id"`
	ContratoID       string                                `gorm:"type:varchar(36);not null;uniqueIndex" json:"contratoId"`
	NumeroContrato   string                                `gorm:"size:30" json:"numeroContrato"`
	ClienteNome      string                                `gorm:"size:255" json:"clienteNome"`
	ClienteEmpresa   string                                `gorm:"size:255" json:"clienteEmpresa"`
	Valor            decimal.Decimal                       `gorm:"type:decimal(12,2);not null;default:0" json:"valor"`
	DataVencimento   time.Time                             `gorm:"type:date;not null" json:"dataVencimento"`
	DataPagamento    *time.Time                            `gorm:"type:date" json:"dataPagamento"`
	Status           string                                `gorm:"size:20;not null;default:'pendente';index" json:"status"`
	Equipamentos     datatypes.JSONSlice[EquipamentoResumo] `json:"equipamentos"`
	ContratoExcluido bool                                  `gorm:"not null;default:false;index" json:"contratoExcluido"`
	CreatedAt        time.Time                             `json:"createdAt"`
	UpdatedAt        time.Time                             `json:"updatedAt"`
}

func (Pagamento) TableName() string { return "pagamentos" }
