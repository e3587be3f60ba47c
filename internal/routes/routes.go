package routes

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/matias-dev/api-rest/internal/app/domain/usuario"
	"github.com/matias-dev/api-rest/internal/pkg/auth"
	"github.com/matias-dev/api-rest/internal/pkg/config"
	"github.com/matias-dev/api-rest/internal/pkg/middleware"
)

// Setup wires the domain services and registers every route on the engine.
func Setup(r *gin.Engine, pool *pgxpool.Pool, cfg *config.Config, logger *slog.Logger) {
	tokens := auth.NewTokenService(cfg.JWT, logger)
	hasher := auth.NewPasswordHasher(cfg.Argon2)

	repo := usuario.NewPostgresRepo(pool, logger)
	service := usuario.NewService(repo, hasher, tokens, logger)
	handler := usuario.NewHandler(service, logger)

	// The session filter runs before every endpoint and only attaches an
	// optional identity; endpoints decide 401/403 themselves.
	r.Use(middleware.SessionFilter(tokens, logger))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	r.POST("/login", handler.Login)

	g := r.Group("/usuario")
	{
		g.POST("", handler.Crear)
		g.GET("", handler.Listar)
		g.GET("/:id", handler.Obtener)
		g.DELETE("/:id", handler.Eliminar)
	}
}
