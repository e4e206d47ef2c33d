package relatorio

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/locaequip/api-locacao/internal/cliente"
	"github.com/locaequip/api-locacao/internal/contrato"
	"github.com/locaequip/api-locacao/internal/pagamento"
	"github.com/locaequip/api-locacao/internal/testutil"
	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"
)

func dia(s string) time.Time {
	t, _ := time.Parse("2006-01-02", s)
	return t
}

func TestMontarResumo(t *testing.T) {
	pago := dia("2025-06-09")
	parcelas := []pagamento.PagamentoMensal{
		{Valor: decimal.RequireFromString("1000"), Status: pagamento.StatusPago, DataPagamento: &pago},
		{Valor: decimal.RequireFromString("1000"), Status: pagamento.StatusAtrasado},
		{Valor: decimal.RequireFromString("250.50"), Status: pagamento.StatusAtrasado},
		{Valor: decimal.RequireFromString("1000"), Status: pagamento.StatusPendente},
		{Valor: decimal.RequireFromString("999"), Status: pagamento.StatusCancelado},
	}
	resumos := []pagamento.Pagamento{{Status: pagamento.StatusPago}, {Status: pagamento.StatusPendente}}

	r := MontarResumo(parcelas, resumos)
	if !r.Recebido.Equal(decimal.NewFromInt(1000)) {
		t.Errorf("recebido %s", r.Recebido)
	}
	if !r.Atrasado.Equal(decimal.RequireFromString("1250.50")) || r.ParcelasAtrasadas != 2 {
		t.Errorf("atrasado %s (%d parcelas)", r.Atrasado, r.ParcelasAtrasadas)
	}
	if !r.AReceber.Equal(decimal.NewFromInt(1000)) {
		t.Errorf("a receber %s", r.AReceber)
	}
	if r.ContratosQuitados != 1 {
		t.Errorf("contratos quitados %d", r.ContratosQuitados)
	}
}

func TestGerarPlanilha(t *testing.T) {
	pago := dia("2025-06-09")
	resumos := []pagamento.Pagamento{
		{NumeroContrato: "CT-2025-0001", ClienteNome: "Ana", Valor: decimal.NewFromInt(3000), DataVencimento: dia("2025-06-10"), Status: pagamento.StatusPendente},
		{NumeroContrato: "CT-2025-0002", ClienteNome: "Beto", Valor: decimal.NewFromInt(500), DataVencimento: dia("2025-05-05"), DataPagamento: &pago, Status: pagamento.StatusPago, ContratoExcluido: true},
	}
	parcelas := []pagamento.PagamentoMensal{
		{ContratoID: "c1", MesReferencia: "jun/2025", DataVencimento: dia("2025-06-10"), Valor: decimal.NewFromInt(1000), Status: pagamento.StatusPago, DataPagamento: &pago, FormaPagamento: "pix"},
	}

	f, err := GerarPlanilha(resumos, parcelas)
	if err != nil {
		t.Fatalf("GerarPlanilha: %v", err)
	}
	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		t.Fatalf("Write: %v", err)
	}
	f.Close()

	lida, err := excelize.OpenReader(&buf)
	if err != nil {
		t.Fatalf("OpenReader: %v", err)
	}
	defer lida.Close()

	linhas, err := lida.GetRows(abaPagamentos)
	if err != nil {
		t.Fatalf("GetRows: %v", err)
	}
	if len(linhas) != 3 {
		t.Fatalf("esperado cabeçalho + 2 linhas, obtido %d", len(linhas))
	}
	if linhas[0][0] != "Contrato" || linhas[2][0] != "CT-2025-0002" || linhas[2][5] != "2025-06-09" || linhas[2][7] != "sim" {
		t.Errorf("conteúdo inesperado: %v", linhas)
	}

	linhas, err = lida.GetRows(abaParcelas)
	if err != nil {
		t.Fatalf("GetRows: %v", err)
	}
	if len(linhas) != 2 || linhas[1][1] != "jun/2025" || linhas[1][3] != "1000" || linhas[1][6] != "pix" {
		t.Errorf("parcelas inesperadas: %v", linhas)
	}
}

type relogioFixo time.Time

func (r relogioFixo) Agora() time.Time { return time.Time(r) }

func TestHandler_ResumoEExportacao(t *testing.T) {
	db := testutil.NovoBanco(t, &cliente.Cliente{}, &contrato.Contrato{}, &contrato.ContratoItem{}, &pagamento.PagamentoMensal{}, &pagamento.Pagamento{})
	rel := relogioFixo(dia("2025-07-15"))
	engine := pagamento.NewEngine(db, rel, nil, 0)

	ct := contrato.Contrato{
		Numero: "CT-2025-0001", ClienteID: 1,
		DataInicio: dia("2025-06-01"), DataFim: dia("2025-08-31"),
		ValorMensal: decimal.NewFromInt(1000), Status: contrato.StatusAtivo,
	}
	if err := db.Create(&ct).Error; err != nil {
		t.Fatalf("criar contrato: %v", err)
	}
	if err := engine.GerarPagamentosMensais(context.Background(), ct.ID, ct.DataInicio, ct.DataFim, ct.ValorMensal); err != nil {
		t.Fatalf("gerar: %v", err)
	}

	h := NewHandler(db, engine, rel)

	rec := httptest.NewRecorder()
	h.Resumo(rec, httptest.NewRequest("GET", "/relatorios/resumo", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("status %d", rec.Code)
	}
	var res Resumo
	if err := json.NewDecoder(rec.Body).Decode(&res); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if !res.Atrasado.Equal(decimal.NewFromInt(2000)) || !res.AReceber.Equal(decimal.NewFromInt(1000)) {
		t.Errorf("totais inesperados: %+v", res)
	}
	if res.ContratosAtivos != 1 {
		t.Errorf("contratos ativos %d", res.ContratosAtivos)
	}

	rec = httptest.NewRecorder()
	h.ExportarPagamentos(rec, httptest.NewRequest("GET", "/relatorios/pagamentos.xlsx", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("status %d", rec.Code)
	}
	if got := rec.Header().Get("Content-Disposition"); got != "attachment; filename=pagamentos_20250715_000000.xlsx" {
		t.Errorf("Content-Disposition %q", got)
	}
	f, err := excelize.OpenReader(rec.Body)
	if err != nil {
		t.Fatalf("OpenReader: %v", err)
	}
	defer f.Close()
	linhas, _ := f.GetRows(abaParcelas)
	if len(linhas) != 4 {
		t.Fatalf("esperado cabeçalho + 3 parcelas, obtido %d", len(linhas))
	}
}
