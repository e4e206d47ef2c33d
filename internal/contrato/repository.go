package contrato

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type Filtro struct {
	Status    string
	ClienteID uint
}

type Repository interface {
	Criar(db *gorm.DB, c *Contrato) error
	BuscarPorID(db *gorm.DB, id string) (*Contrato, error)
	Listar(db *gorm.DB, f Filtro) ([]Contrato, error)
	Atualizar(db *gorm.DB, c *Contrato) error
	SubstituirItens(db *gorm.DB, contratoID string, itens []ContratoItem) error
	ListarItens(db *gorm.DB, contratoID string) ([]ContratoItem, error)
	AtualizarValorTotal(db *gorm.DB, id string, total decimal.Decimal) error
	ProximoNumero(db *gorm.DB, ano int) (string, error)
	Deletar(db *gorm.DB, id string) error
}

type repositoryImpl struct{}

func NewRepository() Repository {
	return &repositoryImpl{}
}

func (r *repositoryImpl) Criar(db *gorm.DB, c *Contrato) error {
	return db.Create(c).Error
}

func (r *repositoryImpl) BuscarPorID(db *gorm.DB, id string) (*Contrato, error) {
	var c Contrato
	if err := db.Preload("Itens").First(&c, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *repositoryImpl) Listar(db *gorm.DB, f Filtro) ([]Contrato, error) {
	var contratos []Contrato
	q := db.Preload("Itens").Order("data_inicio DESC")
	if f.Status != "" {
		q = q.Where("status = ?", f.Status)
	}
	if f.ClienteID != 0 {
		q = q.Where("cliente_id = ?", f.ClienteID)
	}
	err := q.Find(&contratos).Error
	return contratos, err
}

// Atualizar salva os campos do contrato sem tocar nos itens.
func (r *repositoryImpl) Atualizar(db *gorm.DB, c *Contrato) error {
	return db.Omit("Itens").Save(c).Error
}

func (r *repositoryImpl) SubstituirItens(db *gorm.DB, contratoID string, itens []ContratoItem) error {
	if err := db.Where("contrato_id = ?", contratoID).Delete(&ContratoItem{}).Error; err != nil {
		return err
	}
	if len(itens) == 0 {
		return nil
	}
	for i := range itens {
		itens[i].ID = 0
		itens[i].ContratoID = contratoID
	}
	return db.Create(&itens).Error
}

func (r *repositoryImpl) ListarItens(db *gorm.DB, contratoID string) ([]ContratoItem, error) {
	var itens []ContratoItem
	err := db.Where("contrato_id = ?", contratoID).Order("id ASC").Find(&itens).Error
	return itens, err
}

func (r *repositoryImpl) AtualizarValorTotal(db *gorm.DB, id string, total decimal.Decimal) error {
	return db.Model(&Contrato{}).Where("id = ?", id).Update("valor_total", total).Error
}

// ProximoNumero gera o número sequencial do ano, no formato CT-2025-0001,
// a partir do maior sufixo numérico já usado. Sufixos não numéricos são ignorados.
func (r *repositoryImpl) ProximoNumero(db *gorm.DB, ano int) (string, error) {
	prefixo := fmt.Sprintf("CT-%d-", ano)
	var numeros []string
	if err := db.Model(&Contrato{}).Where("numero LIKE ?", prefixo+"%").Pluck("numero", &numeros).Error; err != nil {
		return "", err
	}
	maior := 0
	for _, n := range numeros {
		seq, err := strconv.Atoi(strings.TrimPrefix(n, prefixo))
		if err == nil && seq > maior {
			maior = seq
		}
	}
	return fmt.Sprintf("%s%04d", prefixo, maior+1), nil
}

// Deletar remove os itens e o contrato.
func (r *repositoryImpl) Deletar(db *gorm.DB, id string) error {
	if err := db.Where("contrato_id = ?", id).Delete(&ContratoItem{}).Error; err != nil {
		return err
	}
	res := db.Where("id = ?", id).Delete(&Contrato{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
