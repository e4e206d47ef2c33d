package pagamento

import (
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/locales/pt_BR"
	"github.com/shopspring/decimal"
)

// DiaVencimentoPadrao é usado quando o contrato não define dia de vencimento.
const DiaVencimentoPadrao = 5

var localePtBR = pt_BR.New()

// DataVencimento monta a data (ano, mes, dia), limitando o dia ao último do mês.
func DataVencimento(ano int, mes time.Month, dia int) time.Time {
	ultimo := time.Date(ano, mes+1, 0, 0, 0, 0, 0, time.UTC).Day()
	if dia > ultimo {
		dia = ultimo
	}
	if dia < 1 {
		dia = 1
	}
	return time.Date(ano, mes, dia, 0, 0, 0, 0, time.UTC)
}

// RotuloMes devolve o mês abreviado em português com o ano, ex.: "jan/2025".
func RotuloMes(ano int, mes time.Month) string {
	abrev := strings.TrimSuffix(strings.ToLower(localePtBR.MonthAbbreviated(mes)), ".")
	return fmt.Sprintf("%s/%d", abrev, ano)
}

// GerarCronograma cria uma parcela pendente para cada mês de calendário entre
// inicio e fim, inclusive. Todas as parcelas têm o mesmo valor, sem pró-rata.
func GerarCronograma(contratoID string, inicio, fim time.Time, valorMensal decimal.Decimal, diaVencimento int) []*PagamentoMensal {
	cursor := time.Date(inicio.Year(), inicio.Month(), 1, 0, 0, 0, 0, time.UTC)
	limite := time.Date(fim.Year(), fim.Month(), 1, 0, 0, 0, 0, time.UTC)
	valor := valorMensal.Round(2)

	var parcelas []*PagamentoMensal
	for !cursor.After(limite) {
		ano, mes := cursor.Year(), cursor.Month()
		parcelas = append(parcelas, &PagamentoMensal{
			ContratoID:     contratoID,
			Ano:            ano,
			Mes:            int(mes),
			MesReferencia:  RotuloMes(ano, mes),
			DataVencimento: DataVencimento(ano, mes, diaVencimento),
			Valor:          valor,
			Status:         StatusPendente,
		})
		cursor = cursor.AddDate(0, 1, 0)
	}
	return parcelas
}

// vencidas devolve os IDs das parcelas com vencimento estritamente anterior a hoje.
func vencidas(parcelas []PagamentoMensal, hoje time.Time) []uint {
	var ids []uint
	for _, p := range parcelas {
		y, m, d := p.DataVencimento.Date()
		if time.Date(y, m, d, 0, 0, 0, 0, time.UTC).Before(hoje) {
			ids = append(ids, p.ID)
		}
	}
	return ids
}
