// internal/usuario/dto.go
package usuario

// LoginRequest é usado em POST /auth/login
type LoginRequest struct {
	Email string `json:"email" validate:"required,email"`
	Senha string `json:"senha" validate:"required"`
}

// CriarUsuarioRequest é usado em POST /usuarios
type CriarUsuarioRequest struct {
	Nome    string `json:"nome" validate:"required,max=100"`
	Email   string `json:"email" validate:"required,email,max=100"`
	Senha   string `json:"senha" validate:"required,min=8"`
	IsAdmin bool   `json:"isAdmin"`
}

// AlterarSenhaRequest é usado em PUT /usuarios/me/senha
type AlterarSenhaRequest struct {
	SenhaAtual string `json:"senhaAtual" validate:"required"`
	NovaSenha  string `json:"novaSenha" validate:"required,min=8,nefield=SenhaAtual"`
}
