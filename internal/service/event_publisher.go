package service

import (
	"blogpessoal/internal/api/dto"
	"context"
)

// EventPublisher 帖子变更事件发布
type EventPublisher interface {
	Publish(ctx context.Context, event *dto.PostagemEventDTO) error
}

// NopEventPublisher 未启用消息队列时使用
type NopEventPublisher struct{}

func (NopEventPublisher) Publish(context.Context, *dto.PostagemEventDTO) error {
	return nil
}
