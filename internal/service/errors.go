package service

import (
	"errors"
)

const (
	BadRequest          = 400
	NotFound            = 404
	TooManyRequests     = 429
	InternalServerError = 500
)

var (
	ErrParamInvalid     = errors.New("invalid parameter")
	ErrPostagemNotFound = errors.New("postagem não encontrada")
	ErrTemaNotFound     = errors.New("Topic does not exist")
	ErrTooManyRequests  = errors.New("too many requests")
	UnExpectedError     = errors.New("internal server error")
)

var ErrorMap = map[error]int{
	ErrParamInvalid:     BadRequest,
	ErrPostagemNotFound: NotFound,
	ErrTemaNotFound:     BadRequest,
	ErrTooManyRequests:  TooManyRequests,
	UnExpectedError:     InternalServerError,
}
