package api

import (
	"blogpessoal/internal/api/handler"
	"blogpessoal/internal/pkg/ratelimit"
)

// HandlersGroup 封装了所有已初始化的 Handler 实例
type HandlersGroup struct {
	PostagemHandler *handler.PostagemHandler
	Limiter         ratelimit.Limiter
}
