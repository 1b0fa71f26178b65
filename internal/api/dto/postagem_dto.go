package dto

import "time"

// PostagemDTO 帖子 - 新增、修改与返回共用
type PostagemDTO struct {
	ID      uint64      `json:"id"`
	Titulo  string      `json:"titulo" validate:"required,notblank,min=5,max=100"`
	Texto   string      `json:"texto" validate:"required,notblank,min=10,max=1000"`
	Data    *time.Time  `json:"data,omitempty"`
	Tema    *TemaDTO    `json:"tema"`
	Usuario *UsuarioDTO `json:"usuario"`
}

// TemaDTO 主题，请求中只需要 id
type TemaDTO struct {
	ID        uint64 `json:"id"`
	Descricao string `json:"descricao,omitempty"`
}

// UsuarioDTO 作者，请求中只需要 id
type UsuarioDTO struct {
	ID      uint64  `json:"id"`
	Nome    string  `json:"nome,omitempty"`
	Usuario string  `json:"usuario,omitempty"`
	Foto    *string `json:"foto,omitempty"`
}
