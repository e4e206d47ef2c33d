package auth

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"net/http"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/locaequip/api-locacao/internal/utils"
	"gorm.io/gorm"
)

const (
	RefreshTTL    = 30 * 24 * time.Hour
	RefreshCookie = "rt"
)

// RefreshToken guarda apenas o hash do token entregue no cookie.
type RefreshToken struct {
	ID        uint   `gorm:"primaryKey"`
	UsuarioID uint   `gorm:"index"`
	FamiliaID string `gorm:"size:36;index"`
	Hash      string `gorm:"size:64;uniqueIndex"`
	IsAdmin   bool
	ExpiresAt time.Time `gorm:"index"`
	RevokedAt *time.Time
	CreatedAt time.Time
}

// Sessoes emite e renova pares access/refresh.
type Sessoes struct {
	DB     *gorm.DB
	Chaves *Chaves
}

func NovasSessoes(db *gorm.DB, chaves *Chaves) *Sessoes {
	return &Sessoes{DB: db, Chaves: chaves}
}

type TokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	ExpiresIn   int    `json:"expires_in"`
}

func genRaw() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(b), nil
}

func hashRaw(raw string) string {
	h := sha256.Sum256([]byte(raw))
	return base64.RawURLEncoding.EncodeToString(h[:])
}

// Em localhost precisa ser Secure=false; em produção defina COOKIE_SECURE=true.
func cookieSecure() bool {
	return os.Getenv("COOKIE_SECURE") == "true"
}

func setRTCookie(w http.ResponseWriter, raw string, exp time.Time) {
	http.SetCookie(w, &http.Cookie{
		Name:     RefreshCookie,
		Value:    raw,
		Path:     "/auth",
		HttpOnly: true,
		Secure:   cookieSecure(),
		SameSite: http.SameSiteLaxMode,
		Expires:  exp,
	})
}

func clearRTCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     RefreshCookie,
		Value:    "",
		Path:     "/auth",
		HttpOnly: true,
		Secure:   cookieSecure(),
		SameSite: http.SameSiteLaxMode,
		MaxAge:   -1,
	})
}

func (s *Sessoes) novoRefresh(w http.ResponseWriter, usuarioID uint, familia string, isAdmin bool) error {
	raw, err := genRaw()
	if err != nil {
		return err
	}
	rt := RefreshToken{
		UsuarioID: usuarioID,
		FamiliaID: familia,
		Hash:      hashRaw(raw),
		IsAdmin:   isAdmin,
		ExpiresAt: time.Now().Add(RefreshTTL),
	}
	if err := s.DB.Create(&rt).Error; err != nil {
		return err
	}
	setRTCookie(w, raw, rt.ExpiresAt)
	return nil
}

// EmitirNoLogin gera o access token e grava um refresh token novo no cookie.
func (s *Sessoes) EmitirNoLogin(w http.ResponseWriter, usuarioID uint, isAdmin bool) (*TokenResponse, error) {
	access, err := s.Chaves.GerarToken(usuarioID, isAdmin)
	if err != nil {
		return nil, err
	}
	if err := s.novoRefresh(w, usuarioID, uuid.NewString(), isAdmin); err != nil {
		return nil, err
	}
	return &TokenResponse{AccessToken: access, TokenType: "Bearer", ExpiresIn: int(AccessTTL.Seconds())}, nil
}

// POST /auth/refresh
// O refresh usado é revogado e substituído por outro da mesma família.
func (s *Sessoes) Renovar(w http.ResponseWriter, r *http.Request) {
	c, err := r.Cookie(RefreshCookie)
	if err != nil || c.Value == "" {
		http.Error(w, "Refresh ausente", http.StatusUnauthorized)
		return
	}

	var cur RefreshToken
	if err := s.DB.Where("hash = ?", hashRaw(c.Value)).First(&cur).Error; err != nil {
		clearRTCookie(w)
		http.Error(w, "Refresh inválido", http.StatusUnauthorized)
		return
	}
	if cur.RevokedAt != nil {
		// reuso de token revogado: derruba a família inteira
		now := time.Now()
		_ = s.DB.Model(&RefreshToken{}).
			Where("familia_id = ? AND revoked_at IS NULL", cur.FamiliaID).
			Update("revoked_at", &now).Error
		clearRTCookie(w)
		http.Error(w, "Refresh inválido", http.StatusUnauthorized)
		return
	}
	if time.Now().After(cur.ExpiresAt) {
		clearRTCookie(w)
		http.Error(w, "Refresh expirado", http.StatusUnauthorized)
		return
	}

	now := time.Now()
	if err := s.DB.Model(&cur).Update("revoked_at", &now).Error; err != nil {
		http.Error(w, "Erro ao renovar sessão", http.StatusInternalServerError)
		return
	}

	access, err := s.Chaves.GerarToken(cur.UsuarioID, cur.IsAdmin)
	if err != nil {
		clearRTCookie(w)
		http.Error(w, "Erro ao renovar sessão", http.StatusInternalServerError)
		return
	}
	if err := s.novoRefresh(w, cur.UsuarioID, cur.FamiliaID, cur.IsAdmin); err != nil {
		clearRTCookie(w)
		http.Error(w, "Erro ao renovar sessão", http.StatusInternalServerError)
		return
	}

	utils.EscreverJSON(w, http.StatusOK, TokenResponse{
		AccessToken: access,
		TokenType:   "Bearer",
		ExpiresIn:   int(AccessTTL.Seconds()),
	})
}

// POST /auth/logout
func (s *Sessoes) Logout(w http.ResponseWriter, r *http.Request) {
	if c, err := r.Cookie(RefreshCookie); err == nil && c.Value != "" {
		now := time.Now()
		_ = s.DB.Model(&RefreshToken{}).Where("hash = ?", hashRaw(c.Value)).Update("revoked_at", &now).Error
	}
	clearRTCookie(w)
	w.WriteHeader(http.StatusNoContent)
}
