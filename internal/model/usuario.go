package model

type Usuario struct {
	ID      uint64  `gorm:"primaryKey"`
	Nome    string  `gorm:"type:varchar(255);not null"`
	Usuario string  `gorm:"type:varchar(255);not null;uniqueIndex:idx_usuario"`
	Foto    *string `gorm:"type:varchar(5000)"`
}

func (Usuario) TableName() string {
	return "tb_usuarios"
}
