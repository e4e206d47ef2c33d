// internal/equipamento/repository.go
package equipamento

import "gorm.io/gorm"

// Repository encapsula o acesso a dados de equipamentos.
type Repository struct {
	DB *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{DB: db}
}

// WithDB retorna uma cópia do repo usando um *gorm.DB específico (ex.: tx).
func (r *Repository) WithDB(db *gorm.DB) *Repository {
	if db == nil {
		db = r.DB
	}
	return &Repository{DB: db}
}

func (r *Repository) Create(e *Equipamento) error {
	return r.DB.Create(e).Error
}

func (r *Repository) FindByID(id uint) (*Equipamento, error) {
	var e Equipamento
	if err := r.DB.First(&e, id).Error; err != nil {
		return nil, err
	}
	return &e, nil
}

// FindByIDs devolve os equipamentos encontrados; IDs inexistentes são ignorados.
func (r *Repository) FindByIDs(ids []uint) ([]Equipamento, error) {
	var list []Equipamento
	if len(ids) == 0 {
		return list, nil
	}
	err := r.DB.Where("id IN ?", ids).Find(&list).Error
	return list, err
}

// List lista todos, ou só os de um status quando informado.
func (r *Repository) List(status string) ([]Equipamento, error) {
	var list []Equipamento
	q := r.DB.Order("nome ASC")
	if status != "" {
		q = q.Where("status = ?", status)
	}
	err := q.Find(&list).Error
	return list, err
}

func (r *Repository) Update(e *Equipamento) error {
	return r.DB.Save(e).Error
}

func (r *Repository) Delete(e *Equipamento) error {
	return r.DB.Delete(e).Error
}

// AtualizarStatus altera o status de vários equipamentos de uma vez.
func (r *Repository) AtualizarStatus(ids []uint, status string) error {
	if len(ids) == 0 {
		return nil
	}
	return r.DB.Model(&Equipamento{}).
		Where("id IN ?", ids).
		Update("status", status).Error
}
