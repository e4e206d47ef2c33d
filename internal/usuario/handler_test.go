package usuario

import (
	"context"
	"crypto/rand"
	"crypto/rsa"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/locaequip/api-locacao/internal/auth"
	"github.com/locaequip/api-locacao/internal/testutil"
	"github.com/locaequip/api-locacao/internal/utils"
	"gorm.io/gorm"
)

func montar(t *testing.T) (*Handler, *gorm.DB) {
	t.Helper()
	db := testutil.NovoBanco(t, &Usuario{}, &auth.RefreshToken{})
	k, err := rsa.GenerateKey(rand.Reader, 2048)
	if err != nil {
		t.Fatalf("GenerateKey: %v", err)
	}
	chaves := auth.NovasChaves(k, "k1", "api-locacao", "painel")
	return NewHandler(db, auth.NovasSessoes(db, chaves)), db
}

func TestLogin(t *testing.T) {
	h, db := montar(t)
	hash, _ := utils.HashSenha("segredo123")
	db.Create(&Usuario{Nome: "Ana", Email: "ana@locaequip.com.br", Senha: hash})

	rec := httptest.NewRecorder()
	h.Login(rec, httptest.NewRequest("POST", "/auth/login", strings.NewReader(`{"email":"ana@locaequip.com.br","senha":"segredo123"}`)))
	if rec.Code != http.StatusOK {
		t.Fatalf("status %d: %s", rec.Code, rec.Body)
	}
	var tok auth.TokenResponse
	_ = json.NewDecoder(rec.Body).Decode(&tok)
	claims, err := h.Sessoes.Chaves.ValidarToken(tok.AccessToken)
	if err != nil || claims.IsAdmin {
		t.Fatalf("token: %+v, %v", claims, err)
	}
	if len(rec.Result().Cookies()) == 0 {
		t.Error("cookie de refresh ausente")
	}

	rec = httptest.NewRecorder()
	h.Login(rec, httptest.NewRequest("POST", "/auth/login", strings.NewReader(`{"email":"ana@locaequip.com.br","senha":"errada"}`)))
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("senha errada: %d", rec.Code)
	}

	rec = httptest.NewRecorder()
	h.Login(rec, httptest.NewRequest("POST", "/auth/login", strings.NewReader(`{"email":"nao-e-email"}`)))
	if rec.Code != http.StatusBadRequest {
		t.Errorf("payload inválido: %d", rec.Code)
	}
}

func TestCriar(t *testing.T) {
	h, _ := montar(t)
	corpo := `{"nome":"Beto","email":"Beto@LocaEquip.com.br","senha":"segredo123","isAdmin":true}`

	rec := httptest.NewRecorder()
	h.Criar(rec, httptest.NewRequest("POST", "/usuarios", strings.NewReader(corpo)))
	if rec.Code != http.StatusCreated {
		t.Fatalf("status %d: %s", rec.Code, rec.Body)
	}
	if strings.Contains(rec.Body.String(), "senha") {
		t.Error("senha não pode aparecer na resposta")
	}

	rec = httptest.NewRecorder()
	h.Criar(rec, httptest.NewRequest("POST", "/usuarios", strings.NewReader(corpo)))
	if rec.Code != http.StatusConflict {
		t.Errorf("email repetido: %d", rec.Code)
	}

	rec = httptest.NewRecorder()
	h.Criar(rec, httptest.NewRequest("POST", "/usuarios", strings.NewReader(`{"nome":"C","email":"c@x.com","senha":"curta"}`)))
	if rec.Code != http.StatusBadRequest {
		t.Errorf("senha curta: %d", rec.Code)
	}
}

func TestAlterarSenha(t *testing.T) {
	h, db := montar(t)
	hash, _ := utils.HashSenha("segredo123")
	u := Usuario{Nome: "Ana", Email: "ana@x.com", Senha: hash}
	db.Create(&u)

	req := httptest.NewRequest("PUT", "/usuarios/me/senha", strings.NewReader(`{"senhaAtual":"segredo123","novaSenha":"outrasenha1"}`))
	req = req.WithContext(context.WithValue(req.Context(), auth.CtxUsuarioID, u.ID))
	rec := httptest.NewRecorder()
	h.AlterarSenha(rec, req)
	if rec.Code != http.StatusNoContent {
		t.Fatalf("status %d: %s", rec.Code, rec.Body)
	}
	salvo, _ := h.Repository.FindByID(db, u.ID)
	if !utils.CheckSenha(salvo.Senha, "outrasenha1") {
		t.Error("senha não foi alterada")
	}
}

func TestGarantirAdmin(t *testing.T) {
	_, db := montar(t)
	if err := GarantirAdmin(db, "admin@locaequip.com.br", ""); err != nil {
		t.Fatalf("GarantirAdmin: %v", err)
	}
	if err := GarantirAdmin(db, "outro@locaequip.com.br", "x"); err != nil {
		t.Fatalf("GarantirAdmin: %v", err)
	}
	var n int64
	db.Model(&Usuario{}).Count(&n)
	if n != 1 {
		t.Fatalf("esperado 1 administrador, obtido %d", n)
	}
}
