package relatorio

import (
	"context"
	"fmt"
	"log"
	"net/http"

	"github.com/locaequip/api-locacao/internal/contrato"
	"github.com/locaequip/api-locacao/internal/pagamento"
	"github.com/locaequip/api-locacao/internal/utils"
	"gorm.io/gorm"
)

// Pagamentos é a parte do motor de pagamentos usada pelos relatórios.
type Pagamentos interface {
	AtualizarStatusTodos(ctx context.Context) (int64, error)
	ListarResumos(ctx context.Context, f pagamento.FiltroResumo) ([]pagamento.Pagamento, error)
}

type Handler struct {
	DB         *gorm.DB
	Pagamentos Pagamentos
	Parcelas   *pagamento.Repository
	Relogio    pagamento.Relogio
}

func NewHandler(db *gorm.DB, pagamentos Pagamentos, relogio pagamento.Relogio) *Handler {
	return &Handler{
		DB:         db,
		Pagamentos: pagamentos,
		Parcelas:   pagamento.NewRepository(db),
		Relogio:    relogio,
	}
}

func (h *Handler) carregar(ctx context.Context, incluirExcluidos bool) ([]pagamento.PagamentoMensal, []pagamento.Pagamento, error) {
	if _, err := h.Pagamentos.AtualizarStatusTodos(ctx); err != nil {
		return nil, nil, err
	}
	parcelas, err := h.Parcelas.WithDB(h.DB.WithContext(ctx)).ListAll()
	if err != nil {
		return nil, nil, err
	}
	resumos, err := h.Pagamentos.ListarResumos(ctx, pagamento.FiltroResumo{IncluirExcluidos: incluirExcluidos})
	if err != nil {
		return nil, nil, err
	}
	return parcelas, resumos, nil
}

// GET /relatorios/resumo
func (h *Handler) Resumo(w http.ResponseWriter, r *http.Request) {
	parcelas, resumos, err := h.carregar(r.Context(), false)
	if err != nil {
		log.Printf("Erro ao montar resumo: %v", err)
		http.Error(w, "Erro ao montar resumo", http.StatusInternalServerError)
		return
	}
	res := MontarResumo(parcelas, resumos)

	if err := h.DB.WithContext(r.Context()).Model(&contrato.Contrato{}).
		Where("status = ?", contrato.StatusAtivo).
		Count(&res.ContratosAtivos).Error; err != nil {
		http.Error(w, "Erro ao contar contratos", http.StatusInternalServerError)
		return
	}
	utils.EscreverJSON(w, http.StatusOK, res)
}

// GET /relatorios/pagamentos.xlsx
func (h *Handler) ExportarPagamentos(w http.ResponseWriter, r *http.Request) {
	parcelas, resumos, err := h.carregar(r.Context(), true)
	if err != nil {
		log.Printf("Erro ao carregar pagamentos: %v", err)
		http.Error(w, "Erro ao carregar pagamentos", http.StatusInternalServerError)
		return
	}
	f, err := GerarPlanilha(resumos, parcelas)
	if err != nil {
		log.Printf("Erro ao gerar planilha: %v", err)
		http.Error(w, "Erro ao gerar planilha", http.StatusInternalServerError)
		return
	}
	defer f.Close()

	nome := fmt.Sprintf("pagamentos_%s.xlsx", h.Relogio.Agora().Format("20060102_150405"))
	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", "attachment; filename="+nome)
	if err := f.Write(w); err != nil {
		log.Printf("Erro ao escrever planilha: %v", err)
	}
}
