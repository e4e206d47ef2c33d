// internal/equipamento/handler.go
package equipamento

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
	"github.com/locaequip/api-locacao/internal/validacao"
	"github.com/shopspring/decimal"
)

type Handler struct {
	Repo *Repository
}

func NewHandler(repo *Repository) *Handler {
	return &Handler{Repo: repo}
}

type equipamentoRequest struct {
	Nome        string          `json:"nome" validate:"required,max=255"`
	Categoria   string          `json:"categoria" validate:"max=100"`
	NumeroSerie string          `json:"numeroSerie" validate:"max=100"`
	ValorDiaria decimal.Decimal `json:"valorDiaria"`
	ValorMensal decimal.Decimal `json:"valorMensal"`
	Status      string          `json:"status" validate:"omitempty,oneof=disponivel locado manutencao"`
}

func (req equipamentoRequest) valido() string {
	if req.ValorDiaria.IsNegative() || req.ValorMensal.IsNegative() {
		return "Valores não podem ser negativos"
	}
	return ""
}

func decodeEquipamento(w http.ResponseWriter, r *http.Request) (*equipamentoRequest, bool) {
	var req equipamentoRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "JSON mal formado", http.StatusBadRequest)
		return nil, false
	}
	if err := validacao.Validar(req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return nil, false
	}
	if msg := req.valido(); msg != "" {
		http.Error(w, msg, http.StatusBadRequest)
		return nil, false
	}
	return &req, true
}

// POST /equipamentos
func (h *Handler) CreateEquipamento(w http.ResponseWriter, r *http.Request) {
	req, ok := decodeEquipamento(w, r)
	if !ok {
		return
	}
	e := &Equipamento{
		Nome:        req.Nome,
		Categoria:   req.Categoria,
		NumeroSerie: req.NumeroSerie,
		ValorDiaria: req.ValorDiaria.Round(2),
		ValorMensal: req.ValorMensal.Round(2),
		Status:      req.Status,
	}
	if e.Status == "" {
		e.Status = StatusDisponivel
	}
	if err := h.Repo.Create(e); err != nil {
		http.Error(w, "Erro ao inserir equipamento", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(e)
}

// GET /equipamentos?status=
func (h *Handler) ListEquipamentos(w http.ResponseWriter, r *http.Request) {
	list, err := h.Repo.List(r.URL.Query().Get("status"))
	if err != nil {
		http.Error(w, "Erro ao buscar equipamentos", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(list)
}

// GET /equipamentos/{id}
func (h *Handler) GetEquipamento(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "ID de equipamento inválido", http.StatusBadRequest)
		return
	}
	e, err := h.Repo.FindByID(uint(id))
	if err != nil {
		http.Error(w, "Equipamento não encontrado", http.StatusNotFound)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(e)
}

// PUT /equipamentos/{id}
func (h *Handler) UpdateEquipamento(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "ID de equipamento inválido", http.StatusBadRequest)
		return
	}
	existing, err := h.Repo.FindByID(uint(id))
	if err != nil {
		http.Error(w, "Equipamento não encontrado", http.StatusNotFound)
		return
	}
	req, ok := decodeEquipamento(w, r)
	if !ok {
		return
	}

	existing.Nome = req.Nome
	existing.Categoria = req.Categoria
	existing.NumeroSerie = req.NumeroSerie
	existing.ValorDiaria = req.ValorDiaria.Round(2)
	existing.ValorMensal = req.ValorMensal.Round(2)
	if req.Status != "" {
		existing.Status = req.Status
	}

	if err := h.Repo.Update(existing); err != nil {
		http.Error(w, "Erro ao atualizar equipamento", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(existing)
}

// PATCH /equipamentos/{id}/status
func (h *Handler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "ID de equipamento inválido", http.StatusBadRequest)
		return
	}
	var payload struct {
		Status string `json:"status" validate:"required,oneof=disponivel locado manutencao"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		http.Error(w, "JSON mal formado", http.StatusBadRequest)
		return
	}
	if err := validacao.Validar(payload); err != nil {
		http.Error(w, "Status inválido. Use 'disponivel', 'locado' ou 'manutencao'.", http.StatusBadRequest)
		return
	}
	e, err := h.Repo.FindByID(uint(id))
	if err != nil {
		http.Error(w, "Equipamento não encontrado", http.StatusNotFound)
		return
	}
	if err := h.Repo.AtualizarStatus([]uint{e.ID}, payload.Status); err != nil {
		http.Error(w, "Erro ao atualizar status do equipamento", http.StatusInternalServerError)
		return
	}
	e.Status = payload.Status
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(e)
}

// DELETE /equipamentos/{id}
func (h *Handler) DeleteEquipamento(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "ID de equipamento inválido", http.StatusBadRequest)
		return
	}
	existing, err := h.Repo.FindByID(uint(id))
	if err != nil {
		http.Error(w, "Equipamento não encontrado", http.StatusNotFound)
		return
	}
	if existing.Status == StatusLocado {
		http.Error(w, "Equipamento locado não pode ser excluído", http.StatusConflict)
		return
	}
	if err := h.Repo.Delete(existing); err != nil {
		http.Error(w, "Erro ao deletar equipamento", http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
