package cliente

import "gorm.io/gorm"

// Cliente é o locatário dos equipamentos (pessoa física ou empresa).
type Cliente struct {
	gorm.Model

	Nome      string `gorm:"size:255;not null" json:"nome"`
	Empresa   string `gorm:"size:255" json:"empresa"`
	Documento string `gorm:"size:20;index" json:"documento"` // CPF ou CNPJ
	Email     string `gorm:"size:255" json:"email"`
	Telefone  string `gorm:"size:30" json:"telefone"`
	Endereco  string `gorm:"size:255" json:"endereco"`
}
