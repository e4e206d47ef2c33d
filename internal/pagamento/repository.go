// internal/pagamento/repository.go
package pagamento

import (
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Repository encapsula o acesso a parcelas mensais e resumos de pagamento.
type Repository struct {
	DB *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{DB: db}
}

// WithDB retorna uma cópia do repo usando um *gorm.DB específico (ex.: tx).
func (r *Repository) WithDB(db *gorm.DB) *Repository {
	if db == nil {
		db = r.DB
	}
	return &Repository{DB: db}
}

/* ============================ Parcelas mensais ============================ */

// CreateInBatch cria múltiplas parcelas de uma vez (ignora se vazio).
func (r *Repository) CreateInBatch(parcelas []*PagamentoMensal) error {
	if len(parcelas) == 0 {
		return nil
	}
	return r.DB.Create(parcelas).Error
}

func (r *Repository) DeleteByContrato(contratoID string) error {
	return r.DB.Where("contrato_id = ?", contratoID).Delete(&PagamentoMensal{}).Error
}

func (r *Repository) FindByID(id uint) (*PagamentoMensal, error) {
	var p PagamentoMensal
	if err := r.DB.First(&p, id).Error; err != nil {
		return nil, err
	}
	return &p, nil
}

// ListByContrato devolve as parcelas em ordem de vencimento.
func (r *Repository) ListByContrato(contratoID string) ([]PagamentoMensal, error) {
	var parcelas []PagamentoMensal
	err := r.DB.
		Where("contrato_id = ?", contratoID).
		Order("data_vencimento ASC").
		Find(&parcelas).Error
	return parcelas, err
}

func (r *Repository) ListByContratoAndStatus(contratoID, status string) ([]PagamentoMensal, error) {
	var parcelas []PagamentoMensal
	err := r.DB.
		Where("contrato_id = ? AND status = ?", contratoID, status).
		Order("data_vencimento ASC").
		Find(&parcelas).Error
	return parcelas, err
}

func (r *Repository) ListByStatus(status string) ([]PagamentoMensal, error) {
	var parcelas []PagamentoMensal
	err := r.DB.
		Where("status = ?", status).
		Order("data_vencimento ASC").
		Find(&parcelas).Error
	return parcelas, err
}

// ListAll devolve todas as parcelas, da mais antiga para a mais nova.
func (r *Repository) ListAll() ([]PagamentoMensal, error) {
	var parcelas []PagamentoMensal
	err := r.DB.Order("data_vencimento ASC, id ASC").Find(&parcelas).Error
	return parcelas, err
}

// UpdateStatusByIDs muda o status de várias parcelas em um único UPDATE.
func (r *Repository) UpdateStatusByIDs(ids []uint, status string) error {
	if len(ids) == 0 {
		return nil
	}
	return r.DB.Model(&PagamentoMensal{}).
		Where("id IN ?", ids).
		Update("status", status).Error
}

// PromoverAtrasados marca como atrasadas todas as parcelas pendentes
// vencidas antes de hoje, em qualquer contrato.
func (r *Repository) PromoverAtrasados(hoje time.Time) (int64, error) {
	res := r.DB.Model(&PagamentoMensal{}).
		Where("status = ? AND data_vencimento < ?", StatusPendente, hoje).
		Update("status", StatusAtrasado)
	return res.RowsAffected, res.Error
}

// CancelarAbertas cancela as parcelas pendentes ou atrasadas de um contrato.
func (r *Repository) CancelarAbertas(contratoID string) error {
	return r.DB.Model(&PagamentoMensal{}).
		Where("contrato_id = ? AND status IN ?", contratoID, []string{StatusPendente, StatusAtrasado}).
		Update("status", StatusCancelado).Error
}

// MarcarPago define status pago e a data de pagamento.
func (r *Repository) MarcarPago(id uint, dataPagamento time.Time, forma string) error {
	updates := map[string]interface{}{
		"status":         StatusPago,
		"data_pagamento": &dataPagamento,
	}
	if forma != "" {
		updates["forma_pagamento"] = forma
	}
	return r.DB.Model(&PagamentoMensal{}).
		Where("id = ?", id).
		Updates(updates).Error
}

// Update atualiza todos os campos de uma parcela existente.
func (r *Repository) Update(p *PagamentoMensal) error {
	return r.DB.Save(p).Error
}

/* ============================ Resumo por contrato ============================ */

// colunasResumo são as colunas reescritas pelo upsert. contrato_excluido
// fica de fora: só o fluxo de exclusão escreve nela.
var colunasResumo = []string{
	"numero_contrato", "cliente_nome", "cliente_empresa", "valor",
	"data_vencimento", "data_pagamento", "status", "equipamentos", "updated_at",
}

// UpsertResumo insere ou atualiza o resumo, usando contrato_id como chave.
func (r *Repository) UpsertResumo(p *Pagamento) error {
	return r.DB.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "contrato_id"}},
		DoUpdates: clause.AssignmentColumns(colunasResumo),
	}).Create(p).Error
}

func (r *Repository) FindResumoByContrato(contratoID string) (*Pagamento, error) {
	var p Pagamento
	if err := r.DB.Where("contrato_id = ?", contratoID).First(&p).Error; err != nil {
		return nil, err
	}
	return &p, nil
}

// MarcarResumoExcluido preserva o resumo de um contrato que será apagado.
func (r *Repository) MarcarResumoExcluido(contratoID string) error {
	return r.DB.Model(&Pagamento{}).
		Where("contrato_id = ?", contratoID).
		Update("contrato_excluido", true).Error
}

type FiltroResumo struct {
	Status           string
	IncluirExcluidos bool
}

func (r *Repository) ListResumos(f FiltroResumo) ([]Pagamento, error) {
	var list []Pagamento
	q := r.DB.Order("data_vencimento ASC")
	if f.Status != "" {
		q = q.Where("status = ?", f.Status)
	}
	if !f.IncluirExcluidos {
		q = q.Where("contrato_excluido = ?", false)
	}
	err := q.Find(&list).Error
	return list, err
}
