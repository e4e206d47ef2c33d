package usuario

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/locaequip/api-locacao/internal/auth"
	"github.com/locaequip/api-locacao/internal/utils"
	"github.com/locaequip/api-locacao/internal/validacao"
	"gorm.io/gorm"
)

type Handler struct {
	DB         *gorm.DB
	Repository Repository
	Sessoes    *auth.Sessoes
}

func NewHandler(db *gorm.DB, sessoes *auth.Sessoes) *Handler {
	return &Handler{
		DB:         db,
		Repository: NewRepository(),
		Sessoes:    sessoes,
	}
}

// POST /auth/login
// Valida email/senha, emite access token RS256 e seta refresh token em cookie httpOnly.
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "payload inválido", http.StatusBadRequest)
		return
	}
	if err := validacao.Validar(req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	user, err := h.Repository.FindByEmail(h.DB, req.Email)
	if err != nil || !utils.CheckSenha(user.Senha, req.Senha) {
		http.Error(w, "credenciais inválidas", http.StatusUnauthorized)
		return
	}

	tokens, err := h.Sessoes.EmitirNoLogin(w, user.ID, user.IsAdmin)
	if err != nil {
		log.Printf("Erro ao gerar tokens: %v", err)
		http.Error(w, "Erro ao gerar tokens", http.StatusInternalServerError)
		return
	}
	utils.EscreverJSON(w, http.StatusOK, tokens)
}

// POST /usuarios (admin)
func (h *Handler) Criar(w http.ResponseWriter, r *http.Request) {
	var req CriarUsuarioRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "payload inválido", http.StatusBadRequest)
		return
	}
	if err := validacao.Validar(req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	if _, err := h.Repository.FindByEmail(h.DB, req.Email); err == nil {
		http.Error(w, "email já cadastrado", http.StatusConflict)
		return
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		http.Error(w, "erro ao verificar email", http.StatusInternalServerError)
		return
	}

	hash, err := utils.HashSenha(req.Senha)
	if err != nil {
		http.Error(w, "erro ao processar senha", http.StatusInternalServerError)
		return
	}
	u := Usuario{Nome: req.Nome, Email: req.Email, Senha: hash, IsAdmin: req.IsAdmin}
	if err := h.Repository.Save(h.DB, &u); err != nil {
		http.Error(w, "erro ao salvar usuário", http.StatusInternalServerError)
		return
	}
	utils.EscreverJSON(w, http.StatusCreated, u)
}

// GET /usuarios (admin)
func (h *Handler) Listar(w http.ResponseWriter, r *http.Request) {
	list, err := h.Repository.ListAll(h.DB)
	if err != nil {
		http.Error(w, "erro ao listar usuários", http.StatusInternalServerError)
		return
	}
	utils.EscreverJSON(w, http.StatusOK, list)
}

// GET /usuarios/me
func (h *Handler) Me(w http.ResponseWriter, r *http.Request) {
	u, err := h.Repository.FindByID(h.DB, auth.UsuarioID(r.Context()))
	if err != nil {
		http.Error(w, "Usuário não encontrado", http.StatusNotFound)
		return
	}
	utils.EscreverJSON(w, http.StatusOK, u)
}

// PUT /usuarios/me/senha
func (h *Handler) AlterarSenha(w http.ResponseWriter, r *http.Request) {
	var req AlterarSenhaRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "payload inválido", http.StatusBadRequest)
		return
	}
	if err := validacao.Validar(req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	u, err := h.Repository.FindByID(h.DB, auth.UsuarioID(r.Context()))
	if err != nil {
		http.Error(w, "Usuário não encontrado", http.StatusNotFound)
		return
	}
	if !utils.CheckSenha(u.Senha, req.SenhaAtual) {
		http.Error(w, "senha atual incorreta", http.StatusUnauthorized)
		return
	}
	hash, err := utils.HashSenha(req.NovaSenha)
	if err != nil {
		http.Error(w, "erro ao processar senha", http.StatusInternalServerError)
		return
	}
	if err := h.Repository.AtualizarSenha(h.DB, u.ID, hash); err != nil {
		http.Error(w, "erro ao atualizar senha", http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// GarantirAdmin cria o primeiro administrador quando não há nenhum.
// Sem senha informada, gera uma temporária e a registra no log.
func GarantirAdmin(db *gorm.DB, email, senha string) error {
	repo := NewRepository()
	existe, err := repo.ExisteAdmin(db)
	if err != nil || existe {
		return err
	}
	if email == "" {
		email = "admin@localhost"
	}
	if senha == "" {
		if senha, err = utils.GerarSenhaTemporaria(); err != nil {
			return err
		}
		log.Printf("Administrador inicial %s criado com senha temporária %s", email, senha)
	}
	hash, err := utils.HashSenha(senha)
	if err != nil {
		return err
	}
	return repo.Save(db, &Usuario{Nome: "Administrador", Email: email, Senha: hash, IsAdmin: true})
}
