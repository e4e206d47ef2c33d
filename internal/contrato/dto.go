package contrato

import (
	"errors"
	"time"

	"github.com/locaequip/api-locacao/internal/utils"
	"github.com/shopspring/decimal"
)

type itemRequest struct {
	EquipamentoID uint            `json:"equipamentoId" validate:"required"`
	Quantidade    int             `json:"quantidade" validate:"required,min=1"`
	ValorUnitario decimal.Decimal `json:"valorUnitario"`
}

// contratoRequest é o payload de POST e PUT /contratos.
// Sem valorMensal, o valor mensal é a soma dos itens.
type contratoRequest struct {
	Numero        string          `json:"numero" validate:"max=30"`
	ClienteID     uint            `json:"clienteId" validate:"required"`
	DataInicio    string          `json:"dataInicio" validate:"required,datetime=2006-01-02"`
	DataFim       string          `json:"dataFim" validate:"required,datetime=2006-01-02"`
	ValorMensal   decimal.Decimal `json:"valorMensal"`
	DiaVencimento *int            `json:"diaVencimento" validate:"omitempty,min=1,max=31"`
	Status        string          `json:"status" validate:"omitempty,oneof=pendente ativo finalizado"`
	Observacoes   string          `json:"observacoes"`
	Itens         []itemRequest   `json:"itens" validate:"dive"`
}

func (req contratoRequest) periodo() (time.Time, time.Time, error) {
	inicio, err := utils.ParseData(req.DataInicio)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	fim, err := utils.ParseData(req.DataFim)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	if fim.Before(inicio) {
		return time.Time{}, time.Time{}, errors.New("data final anterior à data inicial")
	}
	return inicio, fim, nil
}

func (req contratoRequest) itens() []ContratoItem {
	out := make([]ContratoItem, 0, len(req.Itens))
	for _, it := range req.Itens {
		out = append(out, ContratoItem{
			EquipamentoID: it.EquipamentoID,
			Quantidade:    it.Quantidade,
			ValorUnitario: it.ValorUnitario.Round(2),
		})
	}
	return out
}

func mesmoDia(a, b *int) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return *a == *b
}
