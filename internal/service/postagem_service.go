package service

import (
	"blogpessoal/internal/api/dto"
	"blogpessoal/internal/model"
	"blogpessoal/internal/pkg/consts"
	"blogpessoal/internal/pkg/util"
	"blogpessoal/internal/repository"
	"context"
	log "log/slog"
	"time"

	"github.com/jinzhu/copier"
)

type PostagemService interface {
	FindAll(ctx context.Context) ([]*dto.PostagemDTO, error)
	FindByID(ctx context.Context, id uint64) (*dto.PostagemDTO, error)
	FindAllByTitulo(ctx context.Context, titulo string) ([]*dto.PostagemDTO, error)
	Create(ctx context.Context, postagemDTO *dto.PostagemDTO) (*dto.PostagemDTO, error)
	Update(ctx context.Context, postagemDTO *dto.PostagemDTO) (*dto.PostagemDTO, error)
	Delete(ctx context.Context, id uint64) error
}

type postagemServiceImpl struct {
	postagemRepo repository.PostagemRepo
	temaRepo     repository.TemaRepo
	publisher    EventPublisher
}

func NewPostagemService(postagemRepo repository.PostagemRepo, temaRepo repository.TemaRepo, publisher EventPublisher) PostagemService {
	if publisher == nil {
		publisher = NopEventPublisher{}
	}
	return &postagemServiceImpl{
		postagemRepo: postagemRepo,
		temaRepo:     temaRepo,
		publisher:    publisher,
	}
}

// FindAll 全部帖子
func (s *postagemServiceImpl) FindAll(ctx context.Context) ([]*dto.PostagemDTO, error) {
	posts, err := s.postagemRepo.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	return toPostagemDTOs(posts)
}

// FindByID 单个帖子
func (s *postagemServiceImpl) FindByID(ctx context.Context, id uint64) (*dto.PostagemDTO, error) {
	post, err := s.postagemRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if post == nil {
		return nil, ErrPostagemNotFound
	}
	return toPostagemDTO(post)
}

// FindAllByTitulo 标题包含关键字的帖子，忽略大小写
func (s *postagemServiceImpl) FindAllByTitulo(ctx context.Context, titulo string) ([]*dto.PostagemDTO, error) {
	posts, err := s.postagemRepo.FindAllByTituloContainingIgnoreCase(ctx, titulo)
	if err != nil {
		return nil, err
	}
	return toPostagemDTOs(posts)
}

// Create 创建帖子，请求中的 id 会被忽略
func (s *postagemServiceImpl) Create(ctx context.Context, postagemDTO *dto.PostagemDTO) (*dto.PostagemDTO, error) {
	if err := util.ValidatePostagem(postagemDTO); err != nil {
		return nil, err
	}
	if err := s.checkTema(ctx, postagemDTO.Tema); err != nil {
		return nil, err
	}

	post, err := toPostagemModel(postagemDTO)
	if err != nil {
		return nil, err
	}
	post.ID = 0

	if err = s.postagemRepo.Create(ctx, post); err != nil {
		return nil, err
	}

	return s.reloadAndPublish(ctx, consts.PostagemEventCreated, post)
}

// Update 整体替换帖子
func (s *postagemServiceImpl) Update(ctx context.Context, postagemDTO *dto.PostagemDTO) (*dto.PostagemDTO, error) {
	if postagemDTO.ID == 0 {
		return nil, ErrPostagemNotFound
	}
	exists, err := s.postagemRepo.ExistsByID(ctx, postagemDTO.ID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, ErrPostagemNotFound
	}

	if err = util.ValidatePostagem(postagemDTO); err != nil {
		return nil, err
	}
	if err = s.checkTema(ctx, postagemDTO.Tema); err != nil {
		return nil, err
	}

	post, err := toPostagemModel(postagemDTO)
	if err != nil {
		return nil, err
	}

	if err = s.postagemRepo.Update(ctx, post); err != nil {
		return nil, err
	}

	return s.reloadAndPublish(ctx, consts.PostagemEventUpdated, post)
}

// Delete 物理删除帖子
func (s *postagemServiceImpl) Delete(ctx context.Context, id uint64) error {
	post, err := s.postagemRepo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if post == nil {
		return ErrPostagemNotFound
	}

	if err = s.postagemRepo.DeleteByID(ctx, id); err != nil {
		return err
	}

	s.publish(ctx, &dto.PostagemEventDTO{
		Type:       consts.PostagemEventDeleted,
		ID:         post.ID,
		TemaID:     post.TemaID,
		OccurredAt: time.Now(),
	})
	return nil
}

// checkTema 主题必须已存在
func (s *postagemServiceImpl) checkTema(ctx context.Context, tema *dto.TemaDTO) error {
	if tema == nil || tema.ID == 0 {
		return ErrTemaNotFound
	}
	exists, err := s.temaRepo.ExistsByID(ctx, tema.ID)
	if err != nil {
		return err
	}
	if !exists {
		return ErrTemaNotFound
	}
	return nil
}

// reloadAndPublish 回查完整记录（含主题与作者）后发布事件
func (s *postagemServiceImpl) reloadAndPublish(ctx context.Context, eventType string, post *model.Postagem) (*dto.PostagemDTO, error) {
	saved, err := s.postagemRepo.FindByID(ctx, post.ID)
	if err != nil {
		return nil, err
	}
	if saved == nil {
		saved = post
	}

	out, err := toPostagemDTO(saved)
	if err != nil {
		return nil, err
	}

	s.publish(ctx, &dto.PostagemEventDTO{
		Type:       eventType,
		ID:         saved.ID,
		TemaID:     saved.TemaID,
		OccurredAt: time.Now(),
		Postagem:   out,
	})
	return out, nil
}

// publish 数据库写入已提交，发布失败只记录日志
func (s *postagemServiceImpl) publish(ctx context.Context, event *dto.PostagemEventDTO) {
	if err := s.publisher.Publish(ctx, event); err != nil {
		log.WarnContext(ctx, "publish postagem event failed", "type", event.Type, "id", event.ID, "err", err)
	}
}

// toPostagemModel 请求 DTO 转 Model，关联只保留外键
func toPostagemModel(postagemDTO *dto.PostagemDTO) (*model.Postagem, error) {
	post := &model.Postagem{}
	if err := copier.Copy(post, postagemDTO); err != nil {
		return nil, err
	}
	post.Data = time.Time{}
	post.Tema = nil
	post.Usuario = nil
	post.TemaID = nil
	post.UsuarioID = nil

	if postagemDTO.Tema != nil && postagemDTO.Tema.ID > 0 {
		temaID := postagemDTO.Tema.ID
		post.TemaID = &temaID
	}
	if postagemDTO.Usuario != nil && postagemDTO.Usuario.ID > 0 {
		usuarioID := postagemDTO.Usuario.ID
		post.UsuarioID = &usuarioID
	}
	return post, nil
}

// toPostagemDTO 将 Model 转换为返回给前端的 DTO
func toPostagemDTO(post *model.Postagem) (*dto.PostagemDTO, error) {
	out := &dto.PostagemDTO{}
	if err := copier.Copy(out, post); err != nil {
		return nil, err
	}
	data := post.Data
	out.Data = &data
	out.Tema = nil
	out.Usuario = nil

	if post.Tema != nil {
		out.Tema = &dto.TemaDTO{}
		if err := copier.Copy(out.Tema, post.Tema); err != nil {
			return nil, err
		}
	} else if post.TemaID != nil {
		out.Tema = &dto.TemaDTO{ID: *post.TemaID}
	}

	if post.Usuario != nil {
		out.Usuario = &dto.UsuarioDTO{}
		if err := copier.Copy(out.Usuario, post.Usuario); err != nil {
			return nil, err
		}
	} else if post.UsuarioID != nil {
		out.Usuario = &dto.UsuarioDTO{ID: *post.UsuarioID}
	}

	return out, nil
}

func toPostagemDTOs(posts []*model.Postagem) ([]*dto.PostagemDTO, error) {
	out := make([]*dto.PostagemDTO, 0, len(posts))
	for _, p := range posts {
		item, err := toPostagemDTO(p)
		if err != nil {
			return nil, err
		}
		out = append(out, item)
	}
	return out, nil
}
