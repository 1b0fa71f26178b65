package wire

import (
	"blogpessoal/internal/api"
	"blogpessoal/internal/api/config"
	"blogpessoal/internal/api/handler"
	"blogpessoal/internal/job"
	"blogpessoal/internal/pkg/cron"
	"blogpessoal/internal/pkg/ratelimit"
	"blogpessoal/internal/repository"
	"blogpessoal/internal/service"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// ApplicationContainer 封装了应用运行所需的所有顶级组件
type ApplicationContainer struct {
	Router        *gin.Engine
	DB            *gorm.DB
	CronMgr       *cron.Manager
	MemoryLimiter *ratelimit.MemoryLimiter
}

// BuildApplication 组装依赖；rdb 为 nil 时限流退化为进程内令牌桶，publisher 为 nil 时不发布事件
func BuildApplication(db *gorm.DB, rdb redis.Cmdable, publisher service.EventPublisher, cfg *config.Config) (*ApplicationContainer, error) {
	postagemRepo := repository.NewPostagemRepository(db)
	temaRepo := repository.NewTemaRepository(db)

	postagemService := service.NewPostagemService(postagemRepo, temaRepo, publisher)

	container := &ApplicationContainer{DB: db}

	var limiter ratelimit.Limiter
	if cfg.RateLimit.Enable {
		if rdb != nil {
			limiter = ratelimit.NewRedisLimiter(rdb, cfg.RateLimit.Burst, time.Duration(cfg.RateLimit.Window)*time.Second)
		} else {
			mem := ratelimit.NewMemoryLimiter(cfg.RateLimit.RPS, cfg.RateLimit.Burst, time.Duration(cfg.RateLimit.IdleTTL)*time.Minute)
			container.MemoryLimiter = mem
			limiter = mem
		}
	}

	handlers := &api.HandlersGroup{
		PostagemHandler: handler.NewPostagemHandler(postagemService),
		Limiter:         limiter,
	}
	container.Router = api.SetupRouter(handlers)

	if cfg.Cron.Enable {
		container.CronMgr = cron.NewCronManager(cfg.Cron.OrphanPostSpec, job.NewOrphanPostagemJob(postagemRepo))
	}

	return container, nil
}
