package util

import "blogpessoal/internal/api/dto"

var postagemMessages = map[string]map[string]string{
	"titulo": {
		"required": "O atributo título é Obrigatório!",
		"notblank": "O atributo título é Obrigatório!",
		"min":      "O atributo título deve conter no mínimo 05 e no máximo 100 caracteres",
		"max":      "O atributo título deve conter no mínimo 05 e no máximo 100 caracteres",
	},
	"texto": {
		"required": "O atributo texto é Obrigatório!",
		"notblank": "O atributo texto é Obrigatório!",
		"min":      "O atributo texto deve conter no mínimo 10 e no máximo 1000 caracteres",
		"max":      "O atributo texto deve conter no mínimo 10 e no máximo 1000 caracteres",
	},
}

// ValidatePostagem 校验帖子字段，失败时返回 ValidationError
func ValidatePostagem(postagem *dto.PostagemDTO) error {
	return Validate(postagem, func(field, tag string) string {
		return postagemMessages[field][tag]
	})
}
