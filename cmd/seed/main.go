package main

import (
	"blogpessoal/internal/api/config"
	"blogpessoal/internal/api/dto"
	"blogpessoal/internal/model"
	"blogpessoal/internal/pkg/database"
	"blogpessoal/internal/pkg/logger"
	"context"
	"fmt"
	log "log/slog"
	"time"

	"github.com/go-resty/resty/v2"
	"gorm.io/gorm"
)

// seedPostagem 通过 HTTP API 创建的示例文章，tema/usuario 以下标引用
type seedPostagem struct {
	Titulo  string
	Texto   string
	Tema    int
	Usuario int
}

var (
	seedTemas = []string{"Go", "Banco de Dados", "Viagens"}

	seedUsuarios = []model.Usuario{
		{Nome: "Ana Souza", Usuario: "ana@blogpessoal.dev"},
		{Nome: "Bruno Lima", Usuario: "bruno@blogpessoal.dev"},
	}

	seedPostagens = []seedPostagem{
		{Titulo: "Hello World", Texto: "Primeira postagem do blog pessoal.", Tema: 0, Usuario: 0},
		{Titulo: "Goroutines na prática", Texto: "Como organizar trabalho concorrente sem dor de cabeça.", Tema: 0, Usuario: 1},
		{Titulo: "Índices no MySQL", Texto: "Quando um índice composto realmente ajuda a consulta.", Tema: 1, Usuario: 1},
		{Titulo: "Lisboa em três dias", Texto: "Roteiro curto pelos bairros mais antigos da cidade.", Tema: 2, Usuario: 0},
	}
)

func main() {
	if err := config.LoadConfig(); err != nil {
		log.Error("Fatal error: failed to load configuration", "err", err)
		panic(err)
	}
	cfg := config.Cfg
	logger.InitLogger(cfg.Log.Level)

	dbCfg := cfg.DB
	db, err := database.NewGormDB(&dbCfg)
	if err != nil {
		log.Error("Fatal error: failed to create database connection", "err", err)
		panic(err)
	}
	defer func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	}()

	ctx := context.Background()
	temas, usuarios, err := seedReferences(ctx, db)
	if err != nil {
		log.Error("Fatal error: failed to seed temas/usuarios", "err", err)
		panic(err)
	}

	client := resty.New().
		SetBaseURL(cfg.Seed.BaseURL).
		SetTimeout(10*time.Second).
		SetHeader("Content-Type", "application/json")

	created := 0
	for _, p := range seedPostagens {
		if err = createPostagem(ctx, client, p, temas, usuarios); err != nil {
			log.Warn("seed postagem failed", "titulo", p.Titulo, "err", err)
			continue
		}
		created++
	}
	log.Info("Seeding completed", "temas", len(temas), "usuarios", len(usuarios), "postagens", created)
}

// seedReferences 幂等写入主题与用户，已存在则复用
func seedReferences(ctx context.Context, db *gorm.DB) ([]model.Tema, []model.Usuario, error) {
	temas := make([]model.Tema, 0, len(seedTemas))
	for _, descricao := range seedTemas {
		tema := model.Tema{}
		if err := db.WithContext(ctx).Where(model.Tema{Descricao: descricao}).FirstOrCreate(&tema).Error; err != nil {
			return nil, nil, fmt.Errorf("seed tema %q: %w", descricao, err)
		}
		temas = append(temas, tema)
	}

	usuarios := make([]model.Usuario, 0, len(seedUsuarios))
	for _, u := range seedUsuarios {
		usuario := model.Usuario{}
		if err := db.WithContext(ctx).Where(model.Usuario{Usuario: u.Usuario}).Attrs(model.Usuario{Nome: u.Nome}).FirstOrCreate(&usuario).Error; err != nil {
			return nil, nil, fmt.Errorf("seed usuario %q: %w", u.Usuario, err)
		}
		usuarios = append(usuarios, usuario)
	}
	return temas, usuarios, nil
}

func createPostagem(ctx context.Context, client *resty.Client, p seedPostagem, temas []model.Tema, usuarios []model.Usuario) error {
	body := &dto.PostagemDTO{
		Titulo:  p.Titulo,
		Texto:   p.Texto,
		Tema:    &dto.TemaDTO{ID: temas[p.Tema].ID},
		Usuario: &dto.UsuarioDTO{ID: usuarios[p.Usuario].ID},
	}

	var created dto.PostagemDTO
	var failure dto.ErrorResponse
	resp, err := client.R().
		SetContext(ctx).
		SetBody(body).
		SetResult(&created).
		SetError(&failure).
		Post("/postagens")
	if err != nil {
		return err
	}
	if resp.IsError() {
		return fmt.Errorf("status %d: %s", resp.StatusCode(), failure.Message)
	}

	log.Info("seed postagem created", "id", created.ID, "titulo", created.Titulo, "status", resp.StatusCode())
	return nil
}
