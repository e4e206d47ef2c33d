package pagamento

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/locaequip/api-locacao/internal/cliente"
	"github.com/locaequip/api-locacao/internal/contrato"
	"github.com/locaequip/api-locacao/internal/equipamento"
	"github.com/locaequip/api-locacao/internal/notificacao"
	"github.com/locaequip/api-locacao/internal/utils"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

var (
	ErrNaoEncontrado   = errors.New("registro não encontrado")
	ErrPeriodoInvalido = errors.New("data final anterior à data inicial")
	ErrStatusInvalido  = errors.New("status inválido para a operação")
)

// Engine gera e mantém o cronograma de pagamentos mensais dos contratos
// e o resumo de pagamento de cada um.
type Engine struct {
	DB           *gorm.DB
	Repo         *Repository
	Contratos    contrato.Repository
	Equipamentos *equipamento.Repository
	Relogio      Relogio
	Revalidador  notificacao.Revalidador
	DiaPadrao    int
}

func NewEngine(db *gorm.DB, relogio Relogio, revalidador notificacao.Revalidador, diaPadrao int) *Engine {
	if relogio == nil {
		relogio = RelogioSistema{}
	}
	if revalidador == nil {
		revalidador = notificacao.Nop{}
	}
	return &Engine{
		DB:           db,
		Repo:         NewRepository(db),
		Contratos:    contrato.NewRepository(),
		Equipamentos: equipamento.NewRepository(db),
		Relogio:      relogio,
		Revalidador:  revalidador,
		DiaPadrao:    diaPadrao,
	}
}

func (e *Engine) hoje() time.Time {
	return utils.DiaUTC(e.Relogio.Agora())
}

func (e *Engine) diaVencimento(c *contrato.Contrato) int {
	if c.DiaVencimento != nil {
		return *c.DiaVencimento
	}
	if e.DiaPadrao > 0 {
		return e.DiaPadrao
	}
	return DiaVencimentoPadrao
}

func naoEncontrado(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("%w: %w", ErrNaoEncontrado, err)
	}
	return err
}

func (e *Engine) buscarContrato(tx *gorm.DB, id string) (*contrato.Contrato, error) {
	c, err := e.Contratos.BuscarPorID(tx, id)
	if err != nil {
		return nil, naoEncontrado(err)
	}
	return c, nil
}

func (e *Engine) revalidar(ctx context.Context, contratoID string) {
	e.Revalidador.Revalidar(ctx, "/contratos/"+contratoID, "/pagamentos", "/relatorios", "/dashboard")
}

/* ============================ Gerador ============================ */

// GerarPagamentosMensais substitui o cronograma do contrato por uma parcela
// pendente por mês entre inicio e fim e projeta o resumo. Tudo numa transação.
func (e *Engine) GerarPagamentosMensais(ctx context.Context, contratoID string, inicio, fim time.Time, valorMensal decimal.Decimal) error {
	inicio, fim = utils.DiaUTC(inicio), utils.DiaUTC(fim)
	if fim.Before(inicio) {
		return ErrPeriodoInvalido
	}
	err := e.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		c, err := e.buscarContrato(tx, contratoID)
		if err != nil {
			return err
		}
		return e.gerar(tx, c, inicio, fim, valorMensal)
	})
	if err != nil {
		return err
	}
	e.revalidar(ctx, contratoID)
	return nil
}

func (e *Engine) gerar(tx *gorm.DB, c *contrato.Contrato, inicio, fim time.Time, valorMensal decimal.Decimal) error {
	repo := e.Repo.WithDB(tx)
	if err := repo.DeleteByContrato(c.ID); err != nil {
		return fmt.Errorf("apagar parcelas: %w", err)
	}
	parcelas := GerarCronograma(c.ID, inicio, fim, valorMensal, e.diaVencimento(c))
	if err := repo.CreateInBatch(parcelas); err != nil {
		return fmt.Errorf("inserir parcelas: %w", err)
	}
	return e.atualizarResumo(tx, c.ID)
}

/* ============================ Atualizador de status ============================ */

// AtualizarStatusPagamentos marca como atrasadas as parcelas pendentes do
// contrato vencidas antes de hoje.
func (e *Engine) AtualizarStatusPagamentos(ctx context.Context, contratoID string) error {
	repo := e.Repo.WithDB(e.DB.WithContext(ctx))
	pendentes, err := repo.ListByContratoAndStatus(contratoID, StatusPendente)
	if err != nil {
		return err
	}
	return repo.UpdateStatusByIDs(vencidas(pendentes, e.hoje()), StatusAtrasado)
}

// AtualizarStatusTodos faz a mesma promoção para todos os contratos e
// devolve quantas parcelas mudaram.
func (e *Engine) AtualizarStatusTodos(ctx context.Context) (int64, error) {
	return e.Repo.WithDB(e.DB.WithContext(ctx)).PromoverAtrasados(e.hoje())
}

/* ============================ Registro de pagamento ============================ */

// MarcarMesComoPago registra o pagamento de uma parcela com a data de hoje.
func (e *Engine) MarcarMesComoPago(ctx context.Context, id uint, formaPagamento string) error {
	var contratoID string
	err := e.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		repo := e.Repo.WithDB(tx)
		p, err := repo.FindByID(id)
		if err != nil {
			return naoEncontrado(err)
		}
		if p.Status == StatusCancelado {
			return ErrStatusInvalido
		}
		contratoID = p.ContratoID
		if err := repo.MarcarPago(id, e.hoje(), formaPagamento); err != nil {
			return err
		}
		return e.atualizarResumo(tx, p.ContratoID)
	})
	if err != nil {
		return err
	}
	e.revalidar(ctx, contratoID)
	return nil
}

// EdicaoParcela traz os campos alteráveis de uma parcela; nil mantém o atual.
type EdicaoParcela struct {
	Valor          *decimal.Decimal
	DataVencimento *time.Time
	Status         *string
	FormaPagamento *string
	Observacoes    *string
}

// EditarPagamentoMensal altera uma parcela. Não marca como paga; voltar
// para pendente ou atrasado apaga a data de pagamento.
func (e *Engine) EditarPagamentoMensal(ctx context.Context, id uint, ed EdicaoParcela) (*PagamentoMensal, error) {
	if ed.Status != nil {
		switch *ed.Status {
		case StatusPendente, StatusAtrasado, StatusCancelado:
		default:
			return nil, ErrStatusInvalido
		}
	}
	if ed.Valor != nil && ed.Valor.IsNegative() {
		return nil, fmt.Errorf("valor negativo: %w", ErrStatusInvalido)
	}

	var p *PagamentoMensal
	err := e.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		repo := e.Repo.WithDB(tx)
		var err error
		p, err = repo.FindByID(id)
		if err != nil {
			return naoEncontrado(err)
		}
		if ed.Valor != nil {
			p.Valor = ed.Valor.Round(2)
		}
		if ed.DataVencimento != nil {
			p.DataVencimento = utils.DiaUTC(*ed.DataVencimento)
		}
		if ed.Status != nil {
			p.Status = *ed.Status
			p.DataPagamento = nil
		}
		if ed.FormaPagamento != nil {
			p.FormaPagamento = *ed.FormaPagamento
		}
		if ed.Observacoes != nil {
			p.Observacoes = *ed.Observacoes
		}
		if err := repo.Update(p); err != nil {
			return err
		}
		return e.atualizarResumo(tx, p.ContratoID)
	})
	if err != nil {
		return nil, err
	}
	e.revalidar(ctx, p.ContratoID)
	return p, nil
}

/* ============================ Recalculador ============================ */

// RecalcularPagamentosMensais grava valor_total = valor_mensal × meses e
// regenera o cronograma com o valor mensal atual. Devolve o novo total.
func (e *Engine) RecalcularPagamentosMensais(ctx context.Context, contratoID string) (decimal.Decimal, error) {
	var total decimal.Decimal
	err := e.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		c, err := e.buscarContrato(tx, contratoID)
		if err != nil {
			return err
		}
		inicio, fim := utils.DiaUTC(c.DataInicio), utils.DiaUTC(c.DataFim)
		if fim.Before(inicio) {
			return ErrPeriodoInvalido
		}
		total = contrato.CalcularValorTotal(c.ValorMensal, inicio, fim)
		if err := e.Contratos.AtualizarValorTotal(tx, c.ID, total); err != nil {
			return fmt.Errorf("gravar valor total: %w", err)
		}
		return e.gerar(tx, c, inicio, fim, c.ValorMensal)
	})
	if err != nil {
		return decimal.Zero, err
	}
	e.revalidar(ctx, contratoID)
	return total, nil
}

/* ============================ Ciclo de vida ============================ */

// CancelarContrato cancela o contrato e as parcelas em aberto e libera os
// equipamentos. Parcelas pagas são mantidas.
func (e *Engine) CancelarContrato(ctx context.Context, contratoID string) error {
	err := e.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		c, err := e.buscarContrato(tx, contratoID)
		if err != nil {
			return err
		}
		c.Status = contrato.StatusCancelado
		if err := e.Contratos.Atualizar(tx, c); err != nil {
			return err
		}
		if err := e.Repo.WithDB(tx).CancelarAbertas(c.ID); err != nil {
			return err
		}
		ids := contrato.EquipamentoIDs(c.Itens)
		if err := e.Equipamentos.WithDB(tx).AtualizarStatus(ids, equipamento.StatusDisponivel); err != nil {
			return err
		}
		return e.atualizarResumo(tx, c.ID)
	})
	if err != nil {
		return err
	}
	e.revalidar(ctx, contratoID)
	return nil
}

// ExcluirContrato apaga o contrato, suas parcelas e itens. O resumo de
// pagamento fica preservado com contrato_excluido = true.
func (e *Engine) ExcluirContrato(ctx context.Context, contratoID string) error {
	err := e.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		c, err := e.buscarContrato(tx, contratoID)
		if err != nil {
			return err
		}
		if err := e.atualizarResumo(tx, c.ID); err != nil {
			return err
		}
		if err := e.PreservarResumo(tx, c.ID); err != nil {
			return err
		}
		if err := e.Repo.WithDB(tx).DeleteByContrato(c.ID); err != nil {
			return err
		}
		ids := contrato.EquipamentoIDs(c.Itens)
		if err := e.Equipamentos.WithDB(tx).AtualizarStatus(ids, equipamento.StatusDisponivel); err != nil {
			return err
		}
		return e.Contratos.Deletar(tx, c.ID)
	})
	if err != nil {
		return err
	}
	e.revalidar(ctx, contratoID)
	return nil
}

// PreservarResumo marca o resumo como de contrato excluído. Depois disso o
// projetor não volta a escrever nele, pois o contrato deixa de existir.
func (e *Engine) PreservarResumo(tx *gorm.DB, contratoID string) error {
	return e.Repo.WithDB(tx).MarcarResumoExcluido(contratoID)
}

/* ============================ Projetor de resumo ============================ */

// atualizarResumo recalcula o resumo do contrato a partir das parcelas.
func (e *Engine) atualizarResumo(tx *gorm.DB, contratoID string) error {
	repo := e.Repo.WithDB(tx)
	parcelas, err := repo.ListByContrato(contratoID)
	if err != nil {
		return fmt.Errorf("listar parcelas: %w", err)
	}
	r := consolidar(parcelas, e.hoje())

	c, err := e.buscarContrato(tx, contratoID)
	if err != nil {
		return err
	}

	var cl cliente.Cliente
	if err := tx.Unscoped().First(&cl, c.ClienteID).Error; err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}
		log.Printf("Cliente %d do contrato %s não encontrado para o resumo", c.ClienteID, c.ID)
	}

	equips, err := e.fotoEquipamentos(tx, c.Itens)
	if err != nil {
		return err
	}

	resumo := &Pagamento{
		ContratoID:     c.ID,
		NumeroContrato: c.Numero,
		ClienteNome:    cl.Nome,
		ClienteEmpresa: cl.Empresa,
		Valor:          r.valor,
		DataVencimento: r.vencimento,
		DataPagamento:  r.dataPagamento,
		Status:         r.status,
		Equipamentos:   equips,
	}
	if err := repo.UpsertResumo(resumo); err != nil {
		return fmt.Errorf("gravar resumo: %w", err)
	}
	return nil
}

type consolidado struct {
	valor         decimal.Decimal
	vencimento    time.Time
	dataPagamento *time.Time
	status        string
}

// consolidar resume as parcelas (ordenadas por vencimento). O status é pago
// só quando existe ao menos uma parcela e todas estão pagas.
func consolidar(parcelas []PagamentoMensal, hoje time.Time) consolidado {
	r := consolidado{valor: decimal.Zero, vencimento: hoje, status: StatusPendente}
	if len(parcelas) == 0 {
		return r
	}
	r.vencimento = utils.DiaUTC(parcelas[0].DataVencimento)

	todasPagas := true
	var ultimoPagamento *time.Time
	for _, p := range parcelas {
		r.valor = r.valor.Add(p.Valor)
		if p.Status != StatusPago {
			todasPagas = false
			continue
		}
		if p.DataPagamento != nil && (ultimoPagamento == nil || p.DataPagamento.After(*ultimoPagamento)) {
			d := utils.DiaUTC(*p.DataPagamento)
			ultimoPagamento = &d
		}
	}
	r.valor = r.valor.Round(2)
	if todasPagas {
		r.status = StatusPago
		r.dataPagamento = ultimoPagamento
	}
	return r
}

func (e *Engine) fotoEquipamentos(tx *gorm.DB, itens []contrato.ContratoItem) ([]EquipamentoResumo, error) {
	foto := make([]EquipamentoResumo, 0, len(itens))
	if len(itens) == 0 {
		return foto, nil
	}
	equips, err := e.Equipamentos.WithDB(tx).FindByIDs(contrato.EquipamentoIDs(itens))
	if err != nil {
		return nil, fmt.Errorf("buscar equipamentos: %w", err)
	}
	nomes := make(map[uint]string, len(equips))
	for _, eq := range equips {
		nomes[eq.ID] = eq.Nome
	}
	for _, it := range itens {
		foto = append(foto, EquipamentoResumo{
			EquipamentoID: it.EquipamentoID,
			Nome:          nomes[it.EquipamentoID],
			Quantidade:    it.Quantidade,
			ValorUnitario: it.ValorUnitario,
		})
	}
	return foto, nil
}

/* ============================ Consultas ============================ */

// ListarPagamentosMensais promove as parcelas vencidas e devolve o cronograma.
func (e *Engine) ListarPagamentosMensais(ctx context.Context, contratoID string) ([]PagamentoMensal, error) {
	if _, err := e.buscarContrato(e.DB.WithContext(ctx), contratoID); err != nil {
		return nil, err
	}
	if err := e.AtualizarStatusPagamentos(ctx, contratoID); err != nil {
		return nil, err
	}
	return e.Repo.WithDB(e.DB.WithContext(ctx)).ListByContrato(contratoID)
}

// ListarAtrasados devolve as parcelas atrasadas de todos os contratos.
func (e *Engine) ListarAtrasados(ctx context.Context) ([]PagamentoMensal, error) {
	if _, err := e.AtualizarStatusTodos(ctx); err != nil {
		return nil, err
	}
	return e.Repo.WithDB(e.DB.WithContext(ctx)).ListByStatus(StatusAtrasado)
}

func (e *Engine) ListarResumos(ctx context.Context, f FiltroResumo) ([]Pagamento, error) {
	return e.Repo.WithDB(e.DB.WithContext(ctx)).ListResumos(f)
}
