package pagamento

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
)

func data(s string) time.Time {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return t
}

func TestDataVencimento(t *testing.T) {
	casos := []struct {
		ano  int
		mes  time.Month
		dia  int
		want string
	}{
		{2025, time.March, 5, "2025-03-05"},
		{2025, time.February, 31, "2025-02-28"},
		{2024, time.February, 31, "2024-02-29"},
		{2025, time.April, 31, "2025-04-30"},
		{2025, time.December, 31, "2025-12-31"},
		{2025, time.January, 0, "2025-01-01"},
	}
	for _, c := range casos {
		got := DataVencimento(c.ano, c.mes, c.dia)
		if !got.Equal(data(c.want)) {
			t.Errorf("DataVencimento(%d, %d, %d) = %s, esperado %s", c.ano, c.mes, c.dia, got.Format("2006-01-02"), c.want)
		}
	}
}

func TestRotuloMes(t *testing.T) {
	casos := map[time.Month]string{
		time.January:  "jan/2025",
		time.February: "fev/2025",
		time.June:     "jun/2025",
		time.December: "dez/2025",
	}
	for mes, want := range casos {
		if got := RotuloMes(2025, mes); got != want {
			t.Errorf("RotuloMes(2025, %d) = %q, esperado %q", mes, got, want)
		}
	}
}

func TestGerarCronograma_UmaParcelaPorMes(t *testing.T) {
	parcelas := GerarCronograma("c1", data("2025-01-15"), data("2025-03-10"), decimal.RequireFromString("1500"), 5)
	if len(parcelas) != 3 {
		t.Fatalf("esperado 3 parcelas, obtido %d", len(parcelas))
	}
	for i, p := range parcelas {
		if p.Ano != 2025 || p.Mes != i+1 {
			t.Errorf("parcela %d: período %d/%d", i, p.Mes, p.Ano)
		}
		if p.Status != StatusPendente {
			t.Errorf("parcela %d: status %q", i, p.Status)
		}
		if p.ContratoID != "c1" {
			t.Errorf("parcela %d: contrato %q", i, p.ContratoID)
		}
	}
}

func TestGerarCronograma_ValorSemProRata(t *testing.T) {
	valor := decimal.RequireFromString("1234.56")
	parcelas := GerarCronograma("c1", data("2025-01-31"), data("2025-05-01"), valor, 10)
	if len(parcelas) != 5 {
		t.Fatalf("esperado 5 parcelas, obtido %d", len(parcelas))
	}
	for _, p := range parcelas {
		if !p.Valor.Equal(valor) {
			t.Errorf("%s: valor %s, esperado %s", p.MesReferencia, p.Valor, valor)
		}
	}
}

func TestGerarCronograma_DiaLimitadoAoFimDoMes(t *testing.T) {
	parcelas := GerarCronograma("c1", data("2025-01-01"), data("2025-03-31"), decimal.NewFromInt(100), 31)
	want := []string{"2025-01-31", "2025-02-28", "2025-03-31"}
	for i, p := range parcelas {
		if !p.DataVencimento.Equal(data(want[i])) {
			t.Errorf("parcela %d: vencimento %s, esperado %s", i, p.DataVencimento.Format("2006-01-02"), want[i])
		}
	}
}

func TestGerarCronograma_ViradaDeAno(t *testing.T) {
	parcelas := GerarCronograma("c1", data("2024-11-20"), data("2025-02-02"), decimal.NewFromInt(100), 5)
	want := []string{"nov/2024", "dez/2024", "jan/2025", "fev/2025"}
	if len(parcelas) != len(want) {
		t.Fatalf("esperado %d parcelas, obtido %d", len(want), len(parcelas))
	}
	for i, p := range parcelas {
		if p.MesReferencia != want[i] {
			t.Errorf("parcela %d: rótulo %q, esperado %q", i, p.MesReferencia, want[i])
		}
	}
}

func TestGerarCronograma_PeriodoInvertidoNaoGeraNada(t *testing.T) {
	if parcelas := GerarCronograma("c1", data("2025-05-01"), data("2025-03-01"), decimal.NewFromInt(100), 5); len(parcelas) != 0 {
		t.Fatalf("esperado cronograma vazio, obtido %d parcelas", len(parcelas))
	}
}

func TestVencidas(t *testing.T) {
	parcelas := []PagamentoMensal{
		{ID: 1, DataVencimento: data("2025-06-10")},
		{ID: 2, DataVencimento: data("2025-07-15")},
		{ID: 3, DataVencimento: data("2025-08-10")},
	}
	ids := vencidas(parcelas, data("2025-07-15"))
	if len(ids) != 1 || ids[0] != 1 {
		t.Fatalf("esperado [1], obtido %v", ids)
	}
}

func TestConsolidar(t *testing.T) {
	hoje := data("2025-07-01")
	pago := data("2025-06-12")

	vazio := consolidar(nil, hoje)
	if vazio.status != StatusPendente || !vazio.vencimento.Equal(hoje) || !vazio.valor.IsZero() {
		t.Fatalf("resumo sem parcelas inesperado: %+v", vazio)
	}

	parcelas := []PagamentoMensal{
		{DataVencimento: data("2025-06-10"), Valor: decimal.NewFromInt(1000), Status: StatusPago, DataPagamento: &pago},
		{DataVencimento: data("2025-07-10"), Valor: decimal.NewFromInt(1000), Status: StatusPendente},
	}
	r := consolidar(parcelas, hoje)
	if r.status != StatusPendente || r.dataPagamento != nil {
		t.Fatalf("com parcela em aberto o resumo deveria ficar pendente: %+v", r)
	}
	if !r.vencimento.Equal(data("2025-06-10")) {
		t.Errorf("vencimento %s", r.vencimento)
	}
	if !r.valor.Equal(decimal.NewFromInt(2000)) {
		t.Errorf("valor %s", r.valor)
	}

	ultimo := data("2025-07-08")
	parcelas[1].Status = StatusPago
	parcelas[1].DataPagamento = &ultimo
	r = consolidar(parcelas, hoje)
	if r.status != StatusPago {
		t.Fatalf("todas pagas: status %q", r.status)
	}
	if r.dataPagamento == nil || !r.dataPagamento.Equal(ultimo) {
		t.Errorf("data de pagamento %v, esperado %s", r.dataPagamento, ultimo)
	}
}
