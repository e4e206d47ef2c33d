// internal/usuario/model.go
package usuario

import "time"

// Usuario é um operador do sistema (atendimento, financeiro ou administrador).
type Usuario struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Nome      string    `gorm:"size:100;not null" json:"nome"`
	Email     string    `gorm:"size:100;uniqueIndex;not null" json:"email"`
	Senha     string    `gorm:"size:255;not null" json:"-"` // não expõe a senha no JSON
	IsAdmin   bool      `gorm:"default:false" json:"isAdmin"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}
