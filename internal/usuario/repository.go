package usuario

import (
	"strings"

	"gorm.io/gorm"
)

type Repository interface {
	FindByEmail(db *gorm.DB, email string) (*Usuario, error)
	FindByID(db *gorm.DB, id uint) (*Usuario, error)
	Save(db *gorm.DB, u *Usuario) error
	ListAll(db *gorm.DB) ([]Usuario, error)
	AtualizarSenha(db *gorm.DB, id uint, hash string) error
	ExisteAdmin(db *gorm.DB) (bool, error)
}

type repositoryImpl struct{}

func NewRepository() Repository {
	return &repositoryImpl{}
}

func (r *repositoryImpl) FindByEmail(db *gorm.DB, email string) (*Usuario, error) {
	var u Usuario
	if err := db.Where("email = ?", strings.ToLower(strings.TrimSpace(email))).First(&u).Error; err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *repositoryImpl) FindByID(db *gorm.DB, id uint) (*Usuario, error) {
	var u Usuario
	if err := db.First(&u, id).Error; err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *repositoryImpl) Save(db *gorm.DB, u *Usuario) error {
	u.Email = strings.ToLower(strings.TrimSpace(u.Email))
	return db.Create(u).Error
}

func (r *repositoryImpl) ListAll(db *gorm.DB) ([]Usuario, error) {
	var list []Usuario
	err := db.Order("nome ASC").Find(&list).Error
	return list, err
}

func (r *repositoryImpl) AtualizarSenha(db *gorm.DB, id uint, hash string) error {
	return db.Model(&Usuario{}).Where("id = ?", id).Update("senha", hash).Error
}

func (r *repositoryImpl) ExisteAdmin(db *gorm.DB) (bool, error) {
	var n int64
	err := db.Model(&Usuario{}).Where("is_admin = ?", true).Count(&n).Error
	return n > 0, err
}
