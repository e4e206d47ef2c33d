package cliente

type clienteRequest struct {
	Nome      string `json:"nome" validate:"required,max=255"`
	Empresa   string `json:"empresa" validate:"max=255"`
	Documento string `json:"documento" validate:"omitempty,min=11,max=20"`
	Email     string `json:"email" validate:"omitempty,email"`
	Telefone  string `json:"telefone" validate:"max=30"`
	Endereco  string `json:"endereco" validate:"max=255"`
}

func (req clienteRequest) aplicar(c *Cliente) {
	c.Nome = req.Nome
	c.Empresa = req.Empresa
	c.Documento = req.Documento
	c.Email = req.Email
	c.Telefone = req.Telefone
	c.Endereco = req.Endereco
}
