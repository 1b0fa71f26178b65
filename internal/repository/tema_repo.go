package repository

import (
	"blogpessoal/internal/model"
	"context"

	"gorm.io/gorm"
)

type TemaRepo interface {
	ExistsByID(ctx context.Context, id uint64) (bool, error)
}

type temaRepoImpl struct {
	db *gorm.DB
}

func NewTemaRepository(db *gorm.DB) TemaRepo {
	return &temaRepoImpl{
		db: db,
	}
}

func (s *temaRepoImpl) ExistsByID(ctx context.Context, id uint64) (bool, error) {
	var count int64
	err := s.db.WithContext(ctx).Model(&model.Tema{}).Where("id = ?", id).Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}
