package dto

import "time"

// PostagemEventDTO 帖子变更事件
type PostagemEventDTO struct {
	Type       string       `json:"type"`
	ID         uint64       `json:"id"`
	TemaID     *uint64      `json:"tema_id,omitempty"`
	OccurredAt time.Time    `json:"occurred_at"`
	Postagem   *PostagemDTO `json:"postagem,omitempty"`
}
