package pagamento

import (
	"errors"
	"io"
	"log"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
	"github.com/locaequip/api-locacao/internal/utils"
	"github.com/locaequip/api-locacao/internal/validacao"
	"github.com/shopspring/decimal"
)

type Handler struct {
	Engine *Engine
}

func NewHandler(engine *Engine) *Handler {
	return &Handler{Engine: engine}
}

// resultado é o envelope {success, error} devolvido pelas operações do motor.
type resultado struct {
	Success    bool             `json:"success"`
	Error      string           `json:"error,omitempty"`
	ValorTotal *decimal.Decimal `json:"valorTotal,omitempty"`
}

// falha traduz o erro do motor em status HTTP e mensagem.
func falha(w http.ResponseWriter, err error, naoEncontrado, msg string) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, ErrNaoEncontrado):
		status, msg = http.StatusNotFound, naoEncontrado
	case errors.Is(err, ErrPeriodoInvalido), errors.Is(err, ErrStatusInvalido):
		status, msg = http.StatusBadRequest, err.Error()
	default:
		log.Printf("%s: %v", msg, err)
	}
	utils.EscreverJSON(w, status, resultado{Error: msg})
}

func parcelaID(w http.ResponseWriter, r *http.Request) (uint, bool) {
	id, err := strconv.ParseUint(mux.Vars(r)["pid"], 10, 64)
	if err != nil {
		utils.EscreverJSON(w, http.StatusBadRequest, resultado{Error: "ID inválido"})
		return 0, false
	}
	return uint(id), true
}

// GET /contratos/{id}/pagamentos-mensais
func (h *Handler) ListarPagamentosMensais(w http.ResponseWriter, r *http.Request) {
	parcelas, err := h.Engine.ListarPagamentosMensais(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		if errors.Is(err, ErrNaoEncontrado) {
			http.Error(w, "Contrato não encontrado", http.StatusNotFound)
			return
		}
		http.Error(w, "Erro ao buscar pagamentos mensais", http.StatusInternalServerError)
		return
	}
	utils.EscreverJSON(w, http.StatusOK, parcelas)
}

// POST /contratos/{id}/pagamentos-mensais/gerar
// Regenera o cronograma a partir dos dados atuais do contrato.
func (h *Handler) GerarPagamentosMensais(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	c, err := h.Engine.buscarContrato(h.Engine.DB.WithContext(r.Context()), id)
	if err != nil {
		falha(w, err, "Contrato não encontrado", "Erro ao buscar contrato")
		return
	}
	if err := h.Engine.GerarPagamentosMensais(r.Context(), c.ID, c.DataInicio, c.DataFim, c.ValorMensal); err != nil {
		falha(w, err, "Contrato não encontrado", "Erro ao gerar pagamentos mensais")
		return
	}
	utils.EscreverJSON(w, http.StatusOK, resultado{Success: true})
}

// POST /contratos/{id}/pagamentos-mensais/recalcular
func (h *Handler) RecalcularPagamentosMensais(w http.ResponseWriter, r *http.Request) {
	total, err := h.Engine.RecalcularPagamentosMensais(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		falha(w, err, "Contrato não encontrado", "Erro ao recalcular pagamentos mensais")
		return
	}
	utils.EscreverJSON(w, http.StatusOK, resultado{Success: true, ValorTotal: &total})
}

type pagarRequest struct {
	FormaPagamento string `json:"formaPagamento" validate:"max=50"`
}

// POST /pagamentos-mensais/{pid}/pagar
func (h *Handler) MarcarComoPago(w http.ResponseWriter, r *http.Request) {
	id, ok := parcelaID(w, r)
	if !ok {
		return
	}
	var req pagarRequest
	// corpo opcional
	if err := utils.LerJSON(w, r, &req); err != nil && !errors.Is(err, io.EOF) {
		utils.EscreverJSON(w, http.StatusBadRequest, resultado{Error: "JSON inválido"})
		return
	}
	if err := validacao.Validar(req); err != nil {
		utils.EscreverJSON(w, http.StatusBadRequest, resultado{Error: err.Error()})
		return
	}
	if err := h.Engine.MarcarMesComoPago(r.Context(), id, req.FormaPagamento); err != nil {
		falha(w, err, "Pagamento mensal não encontrado", "Erro ao registrar pagamento")
		return
	}
	utils.EscreverJSON(w, http.StatusOK, resultado{Success: true})
}

type editarRequest struct {
	Valor          *decimal.Decimal `json:"valor"`
	DataVencimento *string          `json:"dataVencimento" validate:"omitempty,datetime=2006-01-02"`
	Status         *string          `json:"status" validate:"omitempty,oneof=pendente atrasado cancelado"`
	FormaPagamento *string          `json:"formaPagamento" validate:"omitempty,max=50"`
	Observacoes    *string          `json:"observacoes"`
}

func (req editarRequest) edicao() (EdicaoParcela, error) {
	ed := EdicaoParcela{
		Valor:          req.Valor,
		Status:         req.Status,
		FormaPagamento: req.FormaPagamento,
		Observacoes:    req.Observacoes,
	}
	if req.DataVencimento != nil {
		d, err := utils.ParseData(*req.DataVencimento)
		if err != nil {
			return ed, err
		}
		ed.DataVencimento = &d
	}
	return ed, nil
}

// PUT /pagamentos-mensais/{pid}
func (h *Handler) EditarPagamentoMensal(w http.ResponseWriter, r *http.Request) {
	id, ok := parcelaID(w, r)
	if !ok {
		return
	}
	var req editarRequest
	if err := utils.LerJSON(w, r, &req); err != nil {
		utils.EscreverJSON(w, http.StatusBadRequest, resultado{Error: "JSON inválido"})
		return
	}
	if err := validacao.Validar(req); err != nil {
		utils.EscreverJSON(w, http.StatusBadRequest, resultado{Error: err.Error()})
		return
	}
	ed, err := req.edicao()
	if err != nil {
		utils.EscreverJSON(w, http.StatusBadRequest, resultado{Error: err.Error()})
		return
	}
	p, err := h.Engine.EditarPagamentoMensal(r.Context(), id, ed)
	if err != nil {
		falha(w, err, "Pagamento mensal não encontrado", "Erro ao atualizar pagamento mensal")
		return
	}
	utils.EscreverJSON(w, http.StatusOK, p)
}

// GET /pagamentos?status=&incluirExcluidos=true
func (h *Handler) ListarResumos(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	f := FiltroResumo{Status: q.Get("status")}
	if s := q.Get("incluirExcluidos"); s != "" {
		incluir, err := strconv.ParseBool(s)
		if err != nil {
			http.Error(w, "incluirExcluidos inválido", http.StatusBadRequest)
			return
		}
		f.IncluirExcluidos = incluir
	}
	list, err := h.Engine.ListarResumos(r.Context(), f)
	if err != nil {
		http.Error(w, "Erro ao listar pagamentos", http.StatusInternalServerError)
		return
	}
	utils.EscreverJSON(w, http.StatusOK, list)
}

// GET /pagamentos/atrasados
func (h *Handler) ListarAtrasados(w http.ResponseWriter, r *http.Request) {
	list, err := h.Engine.ListarAtrasados(r.Context())
	if err != nil {
		http.Error(w, "Erro ao listar pagamentos atrasados", http.StatusInternalServerError)
		return
	}
	utils.EscreverJSON(w, http.StatusOK, list)
}
