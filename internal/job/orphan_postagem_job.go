package job

import (
	"blogpessoal/internal/pkg/consts"
	"blogpessoal/internal/repository"
	"context"
	log "log/slog"
	"time"
)

// OrphanPostagemJob 巡检主题为空或主题已删除的帖子，只记录不修改
type OrphanPostagemJob struct {
	postagemRepo repository.PostagemRepo
	timeout      time.Duration
}

func NewOrphanPostagemJob(postagemRepo repository.PostagemRepo) *OrphanPostagemJob {
	return &OrphanPostagemJob{
		postagemRepo: postagemRepo,
		timeout:      time.Minute,
	}
}

func (s *OrphanPostagemJob) Run() {
	ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
	defer cancel()

	if _, err := s.Check(ctx); err != nil {
		log.Error("orphan postagem job failed", "err", err)
	}
}

// Check 返回孤儿帖子总数
func (s *OrphanPostagemJob) Check(ctx context.Context) (int64, error) {
	log.InfoContext(ctx, "start orphan postagem job")

	ids, total, err := s.postagemRepo.FindOrphanIDs(ctx, consts.OrphanPostagemLogLimit)
	if err != nil {
		return 0, err
	}

	if total > 0 {
		log.WarnContext(ctx, "postagens reference a missing tema", "count", total, "ids", ids)
	}
	return total, nil
}
