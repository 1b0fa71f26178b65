package repository

import (
	"blogpessoal/internal/model"
	"context"
	"errors"
	"strings"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// likeEscape LIKE 转义字符，MySQL / Postgres / SQLite 均支持 ESCAPE 子句
const likeEscape = "!"

var likeReplacer = strings.NewReplacer(
	likeEscape, likeEscape+likeEscape,
	"%", likeEscape+"%",
	"_", likeEscape+"_",
)

type PostagemRepo interface {
	FindAll(ctx context.Context) ([]*model.Postagem, error)
	FindByID(ctx context.Context, id uint64) (*model.Postagem, error)
	FindAllByTituloContainingIgnoreCase(ctx context.Context, titulo string) ([]*model.Postagem, error)
	ExistsByID(ctx context.Context, id uint64) (bool, error)
	Create(ctx context.Context, postagem *model.Postagem) error
	Update(ctx context.Context, postagem *model.Postagem) error
	DeleteByID(ctx context.Context, id uint64) error
	FindOrphanIDs(ctx context.Context, limit int) ([]uint64, int64, error)
}

type postagemRepoImpl struct {
	db *gorm.DB
}

func NewPostagemRepository(db *gorm.DB) PostagemRepo {
	return &postagemRepoImpl{
		db: db,
	}
}

func (s *postagemRepoImpl) preload(ctx context.Context) *gorm.DB {
	return s.db.WithContext(ctx).Preload("Tema").Preload("Usuario")
}

func (s *postagemRepoImpl) FindAll(ctx context.Context) ([]*model.Postagem, error) {
	posts := make([]*model.Postagem, 0)
	err := s.preload(ctx).Find(&posts).Error
	if err != nil {
		return nil, err
	}
	return posts, nil
}

// FindByID 不存在时返回 nil, nil
func (s *postagemRepoImpl) FindByID(ctx context.Context, id uint64) (*model.Postagem, error) {
	var post model.Postagem
	err := s.preload(ctx).First(&post, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &post, nil
}

// FindAllByTituloContainingIgnoreCase 标题模糊查询，忽略大小写，通配符按字面匹配
func (s *postagemRepoImpl) FindAllByTituloContainingIgnoreCase(ctx context.Context, titulo string) ([]*model.Postagem, error) {
	pattern := "%" + likeReplacer.Replace(model.NormalizeTitulo(titulo)) + "%"

	posts := make([]*model.Postagem, 0)
	err := s.preload(ctx).
		Where("titulo_busca LIKE ? ESCAPE '"+likeEscape+"'", pattern).
		Find(&posts).Error
	if err != nil {
		return nil, err
	}
	return posts, nil
}

func (s *postagemRepoImpl) ExistsByID(ctx context.Context, id uint64) (bool, error) {
	var count int64
	err := s.db.WithContext(ctx).Model(&model.Postagem{}).Where("id = ?", id).Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func (s *postagemRepoImpl) Create(ctx context.Context, postagem *model.Postagem) error {
	return s.db.WithContext(ctx).Omit(clause.Associations).Create(postagem).Error
}

// Update 整体替换，data 由 autoUpdateTime 刷新
func (s *postagemRepoImpl) Update(ctx context.Context, postagem *model.Postagem) error {
	return s.db.WithContext(ctx).Omit(clause.Associations).Save(postagem).Error
}

func (s *postagemRepoImpl) DeleteByID(ctx context.Context, id uint64) error {
	return s.db.WithContext(ctx).Delete(&model.Postagem{}, id).Error
}

// FindOrphanIDs 查找主题为空或主题已被删除的帖子，返回前 limit 个 ID 与总数
func (s *postagemRepoImpl) FindOrphanIDs(ctx context.Context, limit int) ([]uint64, int64, error) {
	query := s.db.WithContext(ctx).Model(&model.Postagem{}).
		Joins("LEFT JOIN tb_temas ON tb_temas.id = tb_postagens.tema_id").
		Where("tb_postagens.tema_id IS NULL OR tb_temas.id IS NULL").
		Session(&gorm.Session{})

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	if total == 0 {
		return []uint64{}, 0, nil
	}

	ids := make([]uint64, 0)
	err := query.Order("tb_postagens.id").Limit(limit).Pluck("tb_postagens.id", &ids).Error
	if err != nil {
		return nil, 0, err
	}
	return ids, total, nil
}
