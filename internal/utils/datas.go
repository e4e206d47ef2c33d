package utils

import (
	"fmt"
	"time"
)

// LayoutData é o formato de datas trafegado pela API (YYYY-MM-DD).
const LayoutData = "2006-01-02"

// ParseData aceita "YYYY-MM-DD" ou RFC3339 e devolve o dia à meia-noite UTC.
func ParseData(s string) (time.Time, error) {
	if t, err := time.Parse(LayoutData, s); err == nil {
		return t, nil
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("data inválida %q: use o formato YYYY-MM-DD", s)
	}
	return DiaUTC(t), nil
}

// DiaUTC trunca t para o dia do calendário, à meia-noite UTC.
// O dia considerado é o do fuso de t.
func DiaUTC(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// FormatarData devolve a data no formato YYYY-MM-DD, ou "" para nil.
func FormatarData(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Format(LayoutData)
}
