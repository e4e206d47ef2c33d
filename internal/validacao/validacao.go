// Package validacao concentra o validator compartilhado pelos handlers,
// com mensagens em português.
package validacao

import (
	"errors"
	"reflect"
	"sort"
	"strings"

	"github.com/go-playground/locales/pt_BR"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	ptbr "github.com/go-playground/validator/v10/translations/pt_BR"
)

var (
	validate *validator.Validate
	tradutor ut.Translator
)

func init() {
	locale := pt_BR.New()
	uni := ut.New(locale, locale)
	tradutor, _ = uni.GetTranslator("pt_BR")

	validate = validator.New(validator.WithRequiredStructEnabled())
	// usa o nome do campo JSON nas mensagens
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		nome := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if nome == "-" {
			return ""
		}
		return nome
	})
	_ = ptbr.RegisterDefaultTranslations(validate, tradutor)
}

// Erros mapeia o caminho JSON do campo -> mensagem traduzida.
type Erros map[string]string

func (e Erros) Error() string {
	campos := make([]string, 0, len(e))
	for c := range e {
		campos = append(campos, c)
	}
	sort.Strings(campos)
	partes := make([]string, 0, len(campos))
	for _, c := range campos {
		partes = append(partes, e[c])
	}
	return strings.Join(partes, "; ")
}

// Validar aplica as tags `validate` de v. Erros de validação voltam como Erros.
func Validar(v any) error {
	err := validate.Struct(v)
	if err == nil {
		return nil
	}
	var ves validator.ValidationErrors
	if !errors.As(err, &ves) {
		return err
	}
	out := make(Erros, len(ves))
	for _, fe := range ves {
		out[caminho(fe.Namespace())] = fe.Translate(tradutor)
	}
	return out
}

// caminho tira o nome da struct raiz do namespace: "req.itens[1].quantidade" -> "itens[1].quantidade".
func caminho(ns string) string {
	if i := strings.IndexByte(ns, '.'); i >= 0 {
		return ns[i+1:]
	}
	return ns
}
