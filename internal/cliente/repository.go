package cliente

import (
	"strings"

	"gorm.io/gorm"
)

type Repository interface {
	Salvar(db *gorm.DB, c *Cliente) error
	BuscarPorID(db *gorm.DB, id uint) (*Cliente, error)
	ListarTodos(db *gorm.DB, busca string) ([]Cliente, error)
	Deletar(db *gorm.DB, id uint) error
}

type repositoryImpl struct{}

func NewRepository() Repository {
	return &repositoryImpl{}
}

func (r *repositoryImpl) Salvar(db *gorm.DB, c *Cliente) error {
	return db.Save(c).Error
}

func (r *repositoryImpl) BuscarPorID(db *gorm.DB, id uint) (*Cliente, error) {
	var c Cliente
	if err := db.First(&c, id).Error; err != nil {
		return nil, err
	}
	return &c, nil
}

// ListarTodos filtra por nome, empresa ou documento quando busca não é vazia.
func (r *repositoryImpl) ListarTodos(db *gorm.DB, busca string) ([]Cliente, error) {
	var clientes []Cliente
	q := db.Order("nome ASC")
	if busca = strings.TrimSpace(busca); busca != "" {
		like := "%" + strings.ToLower(busca) + "%"
		q = q.Where("LOWER(nome) LIKE ? OR LOWER(empresa) LIKE ? OR documento LIKE ?", like, like, like)
	}
	err := q.Find(&clientes).Error
	return clientes, err
}

// Deletar faz soft delete; os resumos de pagamento guardam o nome do cliente.
func (r *repositoryImpl) Deletar(db *gorm.DB, id uint) error {
	res := db.Delete(&Cliente{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
