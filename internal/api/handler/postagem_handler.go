package handler

import (
	"blogpessoal/internal/api/dto"
	"blogpessoal/internal/pkg/response"
	"blogpessoal/internal/service"
	"strconv"

	"github.com/gin-gonic/gin"
)

type PostagemHandler struct {
	postagemSvc service.PostagemService
}

func NewPostagemHandler(postagemSvc service.PostagemService) *PostagemHandler {
	return &PostagemHandler{
		postagemSvc: postagemSvc,
	}
}

func (s *PostagemHandler) GetAll(c *gin.Context) {
	posts, err := s.postagemSvc.FindAll(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, posts)
}

func (s *PostagemHandler) GetByID(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	post, err := s.postagemSvc.FindByID(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, post)
}

func (s *PostagemHandler) GetByTitulo(c *gin.Context) {
	posts, err := s.postagemSvc.FindAllByTitulo(c.Request.Context(), c.Param("titulo"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, posts)
}

func (s *PostagemHandler) Post(c *gin.Context) {
	var req dto.PostagemDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, err)
		return
	}

	post, err := s.postagemSvc.Create(c.Request.Context(), &req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, post)
}

func (s *PostagemHandler) Put(c *gin.Context) {
	var req dto.PostagemDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, err)
		return
	}

	post, err := s.postagemSvc.Update(c.Request.Context(), &req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, post)
}

func (s *PostagemHandler) Delete(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	if err = s.postagemSvc.Delete(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}

func parseID(c *gin.Context) (uint64, error) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return 0, service.ErrParamInvalid
	}
	return id, nil
}
