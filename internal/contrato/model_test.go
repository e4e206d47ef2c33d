package contrato

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
)

func data(a int, m time.Month, d int) time.Time {
	return time.Date(a, m, d, 0, 0, 0, 0, time.UTC)
}

func TestContarMeses(t *testing.T) {
	casos := []struct {
		inicio, fim time.Time
		want        int
	}{
		{data(2025, 1, 15), data(2025, 3, 10), 3},
		{data(2025, 6, 1), data(2025, 8, 31), 3},
		{data(2025, 6, 1), data(2025, 6, 30), 1},
		{data(2024, 11, 20), data(2025, 2, 5), 4},
		{data(2025, 3, 1), data(2025, 2, 1), 0},
	}
	for _, c := range casos {
		if got := ContarMeses(c.inicio, c.fim); got != c.want {
			t.Errorf("ContarMeses(%s, %s) = %d, want %d", c.inicio.Format("2006-01-02"), c.fim.Format("2006-01-02"), got, c.want)
		}
	}
}

func TestCalcularValorTotal(t *testing.T) {
	got := CalcularValorTotal(decimal.RequireFromString("1333.33"), data(2025, 1, 1), data(2025, 12, 31))
	if !got.Equal(decimal.RequireFromString("15999.96")) {
		t.Fatalf("total = %s", got)
	}
}

func TestSomaItensEEquipamentoIDs(t *testing.T) {
	itens := []ContratoItem{
		{EquipamentoID: 1, Quantidade: 2, ValorUnitario: decimal.RequireFromString("450.50")},
		{EquipamentoID: 2, Quantidade: 1, ValorUnitario: decimal.RequireFromString("99.99")},
		{EquipamentoID: 1, Quantidade: 1, ValorUnitario: decimal.RequireFromString("10")},
	}
	if got := SomaItens(itens); !got.Equal(decimal.RequireFromString("1010.99")) {
		t.Errorf("SomaItens = %s", got)
	}
	ids := EquipamentoIDs(itens)
	if len(ids) != 2 || ids[0] != 1 || ids[1] != 2 {
		t.Errorf("EquipamentoIDs = %v", ids)
	}
}

func TestCalcularValorTotalArredondaValorMensal(t *testing.T) {
	got := CalcularValorTotal(decimal.RequireFromString("333.335"), data(2025, 1, 1), data(2025, 3, 31))
	if !got.Equal(decimal.RequireFromString("1000.02")) {
		t.Fatalf("total = %s, esperado 3 × 333.34", got)
	}
}
