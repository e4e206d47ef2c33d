package pagamento

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"

	"github.com/gorilla/mux"
	"github.com/shopspring/decimal"
)

func rotas(h *Handler) *mux.Router {
	r := mux.NewRouter()
	r.HandleFunc("/contratos/{id}/pagamentos-mensais", h.ListarPagamentosMensais).Methods("GET")
	r.HandleFunc("/contratos/{id}/pagamentos-mensais/gerar", h.GerarPagamentosMensais).Methods("POST")
	r.HandleFunc("/contratos/{id}/pagamentos-mensais/recalcular", h.RecalcularPagamentosMensais).Methods("POST")
	r.HandleFunc("/pagamentos-mensais/{pid}/pagar", h.MarcarComoPago).Methods("POST")
	r.HandleFunc("/pagamentos-mensais/{pid}", h.EditarPagamentoMensal).Methods("PUT")
	r.HandleFunc("/pagamentos", h.ListarResumos).Methods("GET")
	r.HandleFunc("/pagamentos/atrasados", h.ListarAtrasados).Methods("GET")
	return r
}

func chamar(r http.Handler, metodo, url, corpo string) *httptest.ResponseRecorder {
	var req *http.Request
	if corpo == "" {
		req = httptest.NewRequest(metodo, url, nil)
	} else {
		req = httptest.NewRequest(metodo, url, strings.NewReader(corpo))
	}
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func TestHandler_GerarEListar(t *testing.T) {
	c := novoCenario(t, "2025-07-15")
	ct := c.novoContrato(t, "2025-06-01", "2025-08-31", "1000", dia(10))
	r := rotas(NewHandler(c.engine))

	rec := chamar(r, "POST", "/contratos/"+ct.ID+"/pagamentos-mensais/gerar", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("gerar: status %d, corpo %s", rec.Code, rec.Body)
	}
	var res resultado
	_ = json.NewDecoder(rec.Body).Decode(&res)
	if !res.Success {
		t.Fatalf("gerar: %+v", res)
	}

	rec = chamar(r, "GET", "/contratos/"+ct.ID+"/pagamentos-mensais", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("listar: status %d", rec.Code)
	}
	var parcelas []PagamentoMensal
	if err := json.NewDecoder(rec.Body).Decode(&parcelas); err != nil {
		t.Fatalf("decode: %v", err)
	}
	want := []string{StatusAtrasado, StatusAtrasado, StatusPendente}
	if len(parcelas) != 3 {
		t.Fatalf("esperado 3 parcelas, obtido %d", len(parcelas))
	}
	for i, p := range parcelas {
		if p.Status != want[i] {
			t.Errorf("%s: status %q, esperado %q", p.MesReferencia, p.Status, want[i])
		}
	}
}

func TestHandler_ContratoInexistente(t *testing.T) {
	c := novoCenario(t, "2025-07-15")
	r := rotas(NewHandler(c.engine))

	for _, rota := range []struct{ metodo, url string }{
		{"GET", "/contratos/x/pagamentos-mensais"},
		{"POST", "/contratos/x/pagamentos-mensais/gerar"},
		{"POST", "/contratos/x/pagamentos-mensais/recalcular"},
	} {
		if rec := chamar(r, rota.metodo, rota.url, ""); rec.Code != http.StatusNotFound {
			t.Errorf("%s %s: status %d, esperado 404", rota.metodo, rota.url, rec.Code)
		}
	}
}

func TestHandler_Recalcular(t *testing.T) {
	c := novoCenario(t, "2025-01-01")
	ct := c.novoContrato(t, "2025-01-01", "2025-03-31", "99.99", nil)
	r := rotas(NewHandler(c.engine))

	rec := chamar(r, "POST", "/contratos/"+ct.ID+"/pagamentos-mensais/recalcular", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status %d, corpo %s", rec.Code, rec.Body)
	}
	var res struct {
		Success    bool            `json:"success"`
		ValorTotal decimal.Decimal `json:"valorTotal"`
	}
	_ = json.NewDecoder(rec.Body).Decode(&res)
	if !res.Success || !res.ValorTotal.Equal(decimal.RequireFromString("299.97")) {
		t.Fatalf("resposta inesperada: %+v", res)
	}
}

func TestHandler_Pagar(t *testing.T) {
	c := novoCenario(t, "2025-06-12")
	ct := c.novoContrato(t, "2025-06-01", "2025-06-30", "1000", dia(10))
	c.gerar(t, ct)
	p := c.parcelas(t, ct.ID)[0]
	r := rotas(NewHandler(c.engine))

	rec := chamar(r, "POST", "/pagamentos-mensais/"+strconv.Itoa(int(p.ID))+"/pagar", `{"formaPagamento":"pix"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("status %d, corpo %s", rec.Code, rec.Body)
	}
	if res := c.resumo(t, ct.ID); res.Status != StatusPago {
		t.Errorf("resumo %q após pagar a única parcela", res.Status)
	}

	rec = chamar(r, "POST", "/pagamentos-mensais/9999/pagar", "")
	if rec.Code != http.StatusNotFound {
		t.Fatalf("parcela inexistente: status %d", rec.Code)
	}
	var res resultado
	_ = json.NewDecoder(rec.Body).Decode(&res)
	if res.Success || res.Error != "Pagamento mensal não encontrado" {
		t.Errorf("envelope de erro: %+v", res)
	}

	if rec := chamar(r, "POST", "/pagamentos-mensais/abc/pagar", ""); rec.Code != http.StatusBadRequest {
		t.Errorf("id inválido: status %d", rec.Code)
	}
}

func TestHandler_Editar(t *testing.T) {
	c := novoCenario(t, "2025-06-12")
	ct := c.novoContrato(t, "2025-06-01", "2025-06-30", "1000", dia(10))
	c.gerar(t, ct)
	p := c.parcelas(t, ct.ID)[0]
	r := rotas(NewHandler(c.engine))
	url := "/pagamentos-mensais/" + strconv.Itoa(int(p.ID))

	if rec := chamar(r, "PUT", url, `{"status":"pago"}`); rec.Code != http.StatusBadRequest {
		t.Errorf("status pago via edição: %d", rec.Code)
	}
	if rec := chamar(r, "PUT", url, `{"dataVencimento":"15/06/2025"}`); rec.Code != http.StatusBadRequest {
		t.Errorf("data inválida: %d", rec.Code)
	}

	rec := chamar(r, "PUT", url, `{"valor":"1100.50","observacoes":"reajuste"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("status %d, corpo %s", rec.Code, rec.Body)
	}
	var editada PagamentoMensal
	_ = json.NewDecoder(rec.Body).Decode(&editada)
	if !editada.Valor.Equal(decimal.RequireFromString("1100.50")) || editada.Observacoes != "reajuste" {
		t.Errorf("parcela editada: %+v", editada)
	}
}

func TestHandler_ListarResumosEAtrasados(t *testing.T) {
	c := novoCenario(t, "2025-06-01")
	ct := c.novoContrato(t, "2025-06-01", "2025-07-31", "1000", dia(10))
	c.gerar(t, ct)
	r := rotas(NewHandler(c.engine))

	rec := chamar(r, "GET", "/pagamentos?status=pendente", "")
	var resumos []Pagamento
	_ = json.NewDecoder(rec.Body).Decode(&resumos)
	if rec.Code != http.StatusOK || len(resumos) != 1 {
		t.Fatalf("status %d, %d resumos", rec.Code, len(resumos))
	}
	if rec := chamar(r, "GET", "/pagamentos?incluirExcluidos=talvez", ""); rec.Code != http.StatusBadRequest {
		t.Errorf("incluirExcluidos inválido: %d", rec.Code)
	}

	c.relogio.agora = data("2025-06-20")
	rec = chamar(r, "GET", "/pagamentos/atrasados", "")
	var atrasadas []PagamentoMensal
	_ = json.NewDecoder(rec.Body).Decode(&atrasadas)
	if len(atrasadas) != 1 || atrasadas[0].Mes != 6 {
		t.Fatalf("esperado junho atrasado, obtido %+v", atrasadas)
	}
}
