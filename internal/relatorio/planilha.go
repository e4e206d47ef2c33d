package relatorio

import (
	"fmt"

	"github.com/locaequip/api-locacao/internal/pagamento"
	"github.com/locaequip/api-locacao/internal/utils"
	"github.com/xuri/excelize/v2"
)

const (
	abaPagamentos = "Pagamentos"
	abaParcelas   = "Parcelas"
)

// GerarPlanilha monta o XLSX com os resumos por contrato e as parcelas mensais.
func GerarPlanilha(resumos []pagamento.Pagamento, parcelas []pagamento.PagamentoMensal) (*excelize.File, error) {
	f := excelize.NewFile()

	if err := f.SetSheetName("Sheet1", abaPagamentos); err != nil {
		f.Close()
		return nil, fmt.Errorf("renomear aba: %w", err)
	}
	if _, err := f.NewSheet(abaParcelas); err != nil {
		f.Close()
		return nil, fmt.Errorf("criar aba: %w", err)
	}

	estilo, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"#E6E6FA"}, Pattern: 1},
	})
	if err != nil {
		f.Close()
		return nil, err
	}

	cabecalho := []interface{}{"Contrato", "Cliente", "Empresa", "Valor", "Vencimento", "Pagamento", "Status", "Contrato excluído"}
	linhas := make([][]interface{}, 0, len(resumos))
	for _, r := range resumos {
		excluido := "não"
		if r.ContratoExcluido {
			excluido = "sim"
		}
		linhas = append(linhas, []interface{}{
			r.NumeroContrato,
			r.ClienteNome,
			r.ClienteEmpresa,
			r.Valor.InexactFloat64(),
			utils.FormatarData(&r.DataVencimento),
			utils.FormatarData(r.DataPagamento),
			r.Status,
			excluido,
		})
	}
	if err := escreverAba(f, abaPagamentos, cabecalho, linhas, estilo); err != nil {
		f.Close()
		return nil, err
	}

	cabecalho = []interface{}{"Contrato", "Mês", "Vencimento", "Valor", "Status", "Pagamento", "Forma de pagamento"}
	linhas = make([][]interface{}, 0, len(parcelas))
	for _, p := range parcelas {
		linhas = append(linhas, []interface{}{
			p.ContratoID,
			p.MesReferencia,
			utils.FormatarData(&p.DataVencimento),
			p.Valor.InexactFloat64(),
			p.Status,
			utils.FormatarData(p.DataPagamento),
			p.FormaPagamento,
		})
	}
	if err := escreverAba(f, abaParcelas, cabecalho, linhas, estilo); err != nil {
		f.Close()
		return nil, err
	}

	f.SetActiveSheet(0)
	return f, nil
}

func escreverAba(f *excelize.File, aba string, cabecalho []interface{}, linhas [][]interface{}, estilo int) error {
	if err := f.SetSheetRow(aba, "A1", &cabecalho); err != nil {
		return fmt.Errorf("cabeçalho %s: %w", aba, err)
	}
	if err := f.SetRowStyle(aba, 1, 1, estilo); err != nil {
		return err
	}
	for i, linha := range linhas {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(aba, cell, &linha); err != nil {
			return fmt.Errorf("linha %d de %s: %w", i+2, aba, err)
		}
	}
	ultima, err := excelize.ColumnNumberToName(len(cabecalho))
	if err != nil {
		return err
	}
	return f.SetColWidth(aba, "A", ultima, 18)
}
