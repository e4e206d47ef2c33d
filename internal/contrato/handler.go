package contrato

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"
	"github.com/locaequip/api-locacao/internal/cliente"
	"github.com/locaequip/api-locacao/internal/equipamento"
	"github.com/locaequip/api-locacao/internal/validacao"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Pagamentos é o motor de cronograma mensal usado pelo ciclo de vida do contrato.
type Pagamentos interface {
	GerarPagamentosMensais(ctx context.Context, contratoID string, inicio, fim time.Time, valorMensal decimal.Decimal) error
	RecalcularPagamentosMensais(ctx context.Context, contratoID string) (decimal.Decimal, error)
	CancelarContrato(ctx context.Context, contratoID string) error
	ExcluirContrato(ctx context.Context, contratoID string) error
}

type Handler struct {
	DB           *gorm.DB
	Repository   Repository
	Equipamentos *equipamento.Repository
	Pagamentos   Pagamentos
}

func NewHandler(db *gorm.DB, pagamentos Pagamentos) *Handler {
	return &Handler{
		DB:           db,
		Repository:   NewRepository(),
		Equipamentos: equipamento.NewRepository(db),
		Pagamentos:   pagamentos,
	}
}

func decodeContrato(w http.ResponseWriter, r *http.Request) (*contratoRequest, time.Time, time.Time, bool) {
	var req contratoRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "JSON inválido", http.StatusBadRequest)
		return nil, time.Time{}, time.Time{}, false
	}
	if err := validacao.Validar(req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return nil, time.Time{}, time.Time{}, false
	}
	inicio, fim, err := req.periodo()
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return nil, time.Time{}, time.Time{}, false
	}
	if req.ValorMensal.IsNegative() {
		http.Error(w, "Valor mensal não pode ser negativo", http.StatusBadRequest)
		return nil, time.Time{}, time.Time{}, false
	}
	return &req, inicio, fim, true
}

// completarItens confere se os equipamentos existem e usa o valor mensal
// do equipamento quando o item vem sem valor unitário.
func (h *Handler) completarItens(itens []ContratoItem) error {
	ids := EquipamentoIDs(itens)
	equips, err := h.Equipamentos.FindByIDs(ids)
	if err != nil {
		return err
	}
	porID := make(map[uint]equipamento.Equipamento, len(equips))
	for _, e := range equips {
		porID[e.ID] = e
	}
	for i := range itens {
		e, ok := porID[itens[i].EquipamentoID]
		if !ok {
			return errEquipamentoInexistente
		}
		if itens[i].ValorUnitario.IsZero() {
			itens[i].ValorUnitario = e.ValorMensal
		}
	}
	return nil
}

var errEquipamentoInexistente = errors.New("equipamento não encontrado")

// POST /contratos
func (h *Handler) CriarContrato(w http.ResponseWriter, r *http.Request) {
	req, inicio, fim, ok := decodeContrato(w, r)
	if !ok {
		return
	}

	if err := h.DB.First(&cliente.Cliente{}, req.ClienteID).Error; err != nil {
		http.Error(w, "Cliente não encontrado", http.StatusBadRequest)
		return
	}

	itens := req.itens()
	if err := h.completarItens(itens); err != nil {
		if errors.Is(err, errEquipamentoInexistente) {
			http.Error(w, "Equipamento não encontrado", http.StatusBadRequest)
			return
		}
		http.Error(w, "Erro ao buscar equipamentos", http.StatusInternalServerError)
		return
	}

	valorMensal := req.ValorMensal.Round(2)
	if valorMensal.IsZero() {
		valorMensal = SomaItens(itens)
	}

	c := Contrato{
		Numero:        req.Numero,
		ClienteID:     req.ClienteID,
		DataInicio:    inicio,
		DataFim:       fim,
		ValorMensal:   valorMensal,
		ValorTotal:    CalcularValorTotal(valorMensal, inicio, fim),
		DiaVencimento: req.DiaVencimento,
		Status:        req.Status,
		Observacoes:   req.Observacoes,
		Itens:         itens,
	}
	if c.Status == "" {
		c.Status = StatusPendente
	}

	err := h.DB.Transaction(func(tx *gorm.DB) error {
		if c.Numero == "" {
			numero, err := h.Repository.ProximoNumero(tx, inicio.Year())
			if err != nil {
				return err
			}
			c.Numero = numero
		}
		if err := h.Repository.Criar(tx, &c); err != nil {
			return err
		}
		return h.Equipamentos.WithDB(tx).AtualizarStatus(EquipamentoIDs(itens), equipamento.StatusLocado)
	})
	if err != nil {
		http.Error(w, "Erro ao salvar contrato", http.StatusInternalServerError)
		return
	}

	if err := h.Pagamentos.GerarPagamentosMensais(r.Context(), c.ID, inicio, fim, valorMensal); err != nil {
		http.Error(w, "Contrato salvo, mas houve erro ao gerar os pagamentos mensais", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(c)
}

// GET /contratos?status=&clienteId=
func (h *Handler) ListarContratos(w http.ResponseWriter, r *http.Request) {
	f := Filtro{Status: r.URL.Query().Get("status")}
	if s := r.URL.Query().Get("clienteId"); s != "" {
		id, err := strconv.Atoi(s)
		if err != nil {
			http.Error(w, "clienteId inválido", http.StatusBadRequest)
			return
		}
		f.ClienteID = uint(id)
	}
	list, err := h.Repository.Listar(h.DB, f)
	if err != nil {
		http.Error(w, "Erro ao listar contratos", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(list)
}

// GET /contratos/{id}
func (h *Handler) BuscarPorID(w http.ResponseWriter, r *http.Request) {
	c, err := h.Repository.BuscarPorID(h.DB, mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "Contrato não encontrado", http.StatusNotFound)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(c)
}

// PUT /contratos/{id}
// Datas ou dia de vencimento alterados regeneram o cronograma; valor mensal
// alterado dispara o recálculo.
func (h *Handler) AtualizarContrato(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	existente, err := h.Repository.BuscarPorID(h.DB, id)
	if err != nil {
		http.Error(w, "Contrato não encontrado", http.StatusNotFound)
		return
	}
	if existente.Status == StatusCancelado {
		http.Error(w, "Contrato cancelado não pode ser alterado", http.StatusConflict)
		return
	}

	req, inicio, fim, ok := decodeContrato(w, r)
	if !ok {
		return
	}

	if err := h.DB.First(&cliente.Cliente{}, req.ClienteID).Error; err != nil {
		http.Error(w, "Cliente não encontrado", http.StatusBadRequest)
		return
	}

	var itens []ContratoItem
	if req.Itens != nil {
		itens = req.itens()
		if err := h.completarItens(itens); err != nil {
			if errors.Is(err, errEquipamentoInexistente) {
				http.Error(w, "Equipamento não encontrado", http.StatusBadRequest)
				return
			}
			http.Error(w, "Erro ao buscar equipamentos", http.StatusInternalServerError)
			return
		}
	}

	valorMensal := req.ValorMensal.Round(2)
	if valorMensal.IsZero() {
		if itens != nil {
			valorMensal = SomaItens(itens)
		} else {
			valorMensal = existente.ValorMensal
		}
	}

	datasMudaram := !inicio.Equal(existente.DataInicio) ||
		!fim.Equal(existente.DataFim) ||
		!mesmoDia(existente.DiaVencimento, req.DiaVencimento)
	valorMudou := !valorMensal.Equal(existente.ValorMensal)

	antigos := EquipamentoIDs(existente.Itens)
	existente.ClienteID = req.ClienteID
	existente.DataInicio = inicio
	existente.DataFim = fim
	existente.ValorMensal = valorMensal
	existente.ValorTotal = CalcularValorTotal(valorMensal, inicio, fim)
	existente.DiaVencimento = req.DiaVencimento
	existente.Observacoes = req.Observacoes
	if req.Numero != "" {
		existente.Numero = req.Numero
	}
	if req.Status != "" {
		existente.Status = req.Status
	}

	err = h.DB.Transaction(func(tx *gorm.DB) error {
		if err := h.Repository.Atualizar(tx, existente); err != nil {
			return err
		}
		if itens == nil {
			return nil
		}
		equips := h.Equipamentos.WithDB(tx)
		if err := equips.AtualizarStatus(antigos, equipamento.StatusDisponivel); err != nil {
			return err
		}
		if err := h.Repository.SubstituirItens(tx, id, itens); err != nil {
			return err
		}
		return equips.AtualizarStatus(EquipamentoIDs(itens), equipamento.StatusLocado)
	})
	if err != nil {
		http.Error(w, "Erro ao atualizar contrato", http.StatusInternalServerError)
		return
	}

	switch {
	case datasMudaram:
		err = h.Pagamentos.GerarPagamentosMensais(r.Context(), id, inicio, fim, valorMensal)
	case valorMudou:
		_, err = h.Pagamentos.RecalcularPagamentosMensais(r.Context(), id)
	}
	if err != nil {
		http.Error(w, "Contrato salvo, mas houve erro ao atualizar os pagamentos mensais", http.StatusInternalServerError)
		return
	}

	atualizado, err := h.Repository.BuscarPorID(h.DB, id)
	if err != nil {
		http.Error(w, "Erro ao carregar contrato", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(atualizado)
}

// POST /contratos/{id}/cancelar
func (h *Handler) CancelarContrato(w http.ResponseWriter, r *http.Request) {
	if err := h.Pagamentos.CancelarContrato(r.Context(), mux.Vars(r)["id"]); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			http.Error(w, "Contrato não encontrado", http.StatusNotFound)
			return
		}
		http.Error(w, "Erro ao cancelar contrato", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	_, _ = w.Write([]byte(`{"message":"Contrato cancelado com sucesso"}`))
}

// DELETE /contratos/{id}
// O resumo de pagamento é preservado e marcado como contrato excluído.
func (h *Handler) DeletarContrato(w http.ResponseWriter, r *http.Request) {
	if err := h.Pagamentos.ExcluirContrato(r.Context(), mux.Vars(r)["id"]); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			http.Error(w, "Contrato não encontrado", http.StatusNotFound)
			return
		}
		http.Error(w, "Erro ao excluir contrato", http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
