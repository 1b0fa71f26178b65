package model

import (
	"strings"
	"time"

	"gorm.io/gorm"
)

type Postagem struct {
	ID     uint64 `gorm:"primaryKey"`
	Titulo string `gorm:"type:varchar(100);not null"`
	// TituloBusca 标题的 Unicode 小写形式，SQLite 的 LOWER 只处理 ASCII
	TituloBusca string    `gorm:"type:varchar(200);not null;default:''"`
	Texto       string    `gorm:"type:varchar(1000);not null"`
	Data        time.Time `gorm:"autoUpdateTime"` // 创建与更新时均刷新
	TemaID      *uint64   `gorm:"index:idx_tema_id"`
	UsuarioID   *uint64   `gorm:"index:idx_usuario_id"`

	// 关联关系
	Tema    *Tema    `gorm:"foreignKey:TemaID;references:ID"`
	Usuario *Usuario `gorm:"foreignKey:UsuarioID;references:ID"`
}

func (Postagem) TableName() string {
	return "tb_postagens"
}

// BeforeSave 创建与 Save 更新前同步 TituloBusca
func (p *Postagem) BeforeSave(*gorm.DB) error {
	p.TituloBusca = NormalizeTitulo(p.Titulo)
	return nil
}

// NormalizeTitulo 标题检索使用的归一化形式
func NormalizeTitulo(titulo string) string {
	return strings.ToLower(titulo)
}
