package validacao

import (
	"errors"
	"testing"
)

type exemplo struct {
	Nome  string `json:"nome" validate:"required"`
	Data  string `json:"dataInicio" validate:"required,datetime=2006-01-02"`
	Dia   *int   `json:"diaVencimento" validate:"omitempty,min=1,max=31"`
	Email string `json:"email" validate:"omitempty,email"`
}

func TestValidarOk(t *testing.T) {
	dia := 10
	if err := Validar(exemplo{Nome: "Obra Norte", Data: "2025-06-01", Dia: &dia}); err != nil {
		t.Fatalf("esperava sucesso: %v", err)
	}
}

func TestValidarCamposPorNomeJSON(t *testing.T) {
	dia := 32
	err := Validar(exemplo{Data: "01/06/2025", Dia: &dia, Email: "x"})
	var erros Erros
	if !errors.As(err, &erros) {
		t.Fatalf("esperava Erros, veio %T: %v", err, err)
	}
	for _, campo := range []string{"nome", "dataInicio", "diaVencimento", "email"} {
		if _, ok := erros[campo]; !ok {
			t.Errorf("campo %q ausente em %v", campo, erros)
		}
	}
	if erros.Error() == "" {
		t.Error("mensagem vazia")
	}
}

type itemExemplo struct {
	Quantidade int `json:"quantidade" validate:"min=1"`
}

type pedidoExemplo struct {
	Itens []itemExemplo `json:"itens" validate:"dive"`
}

func TestValidarItensPorIndice(t *testing.T) {
	err := Validar(pedidoExemplo{Itens: []itemExemplo{{Quantidade: 0}, {Quantidade: 2}, {Quantidade: 0}}})
	var erros Erros
	if !errors.As(err, &erros) {
		t.Fatalf("esperava Erros, veio %T: %v", err, err)
	}
	if len(erros) != 2 {
		t.Fatalf("esperava 2 erros, veio %v", erros)
	}
	for _, campo := range []string{"itens[0].quantidade", "itens[2].quantidade"} {
		if _, ok := erros[campo]; !ok {
			t.Errorf("campo %q ausente em %v", campo, erros)
		}
	}
}
