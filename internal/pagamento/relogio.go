package pagamento

import "time"

// Relogio fornece o "agora" usado para vencimentos e datas de pagamento.
type Relogio interface {
	Agora() time.Time
}

type RelogioSistema struct{}

func (RelogioSistema) Agora() time.Time { return time.Now() }
