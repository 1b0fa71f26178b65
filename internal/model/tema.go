package model

type Tema struct {
	ID        uint64 `gorm:"primaryKey"`
	Descricao string `gorm:"type:varchar(255);not null"`
}

func (Tema) TableName() string {
	return "tb_temas"
}
