package relatorio

import (
	"github.com/locaequip/api-locacao/internal/pagamento"
	"github.com/shopspring/decimal"
)

// Resumo são os totais exibidos no painel financeiro.
type Resumo struct {
	Recebido          decimal.Decimal `json:"recebido"`
	AReceber          decimal.Decimal `json:"aReceber"`
	Atrasado          decimal.Decimal `json:"atrasado"`
	ParcelasAtrasadas int             `json:"parcelasAtrasadas"`
	ContratosAtivos   int64           `json:"contratosAtivos"`
	ContratosQuitados int             `json:"contratosQuitados"`
}

// MontarResumo soma as parcelas por status. Parcelas canceladas ficam fora.
func MontarResumo(parcelas []pagamento.PagamentoMensal, resumos []pagamento.Pagamento) Resumo {
	r := Resumo{Recebido: decimal.Zero, AReceber: decimal.Zero, Atrasado: decimal.Zero}
	for _, p := range parcelas {
		switch p.Status {
		case pagamento.StatusPago:
			r.Recebido = r.Recebido.Add(p.Valor)
		case pagamento.StatusPendente:
			r.AReceber = r.AReceber.Add(p.Valor)
		case pagamento.StatusAtrasado:
			r.Atrasado = r.Atrasado.Add(p.Valor)
			r.ParcelasAtrasadas++
		}
	}
	for _, s := range resumos {
		if s.Status == pagamento.StatusPago {
			r.ContratosQuitados++
		}
	}
	r.Recebido = r.Recebido.Round(2)
	r.AReceber = r.AReceber.Round(2)
	r.Atrasado = r.Atrasado.Round(2)
	return r
}
