package usuario

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/matias-dev/api-rest/internal/app/models"
	"github.com/matias-dev/api-rest/internal/pkg/auth"
	"github.com/matias-dev/api-rest/internal/pkg/middleware"
	"github.com/matias-dev/api-rest/internal/pkg/validation"
)

// Handler serves the /login and /usuario routes. Authorization happens here,
// per endpoint: the session filter only attaches an optional identity, and
// every protected route re-checks presence and policy itself.
type Handler struct {
	service Service
	logger  *slog.Logger
}

func NewHandler(service Service, logger *slog.Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Login handles POST /login. Success returns the raw token string; any
// credential failure is a 401 with the body "FAIL".
func (h *Handler) Login(c *gin.Context) {
	var req models.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, validation.ErrorResponse(err))
		return
	}

	token, err := h.service.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		c.String(http.StatusUnauthorized, "FAIL")
		return
	}

	c.String(http.StatusOK, token)
}

// Crear handles POST /usuario. Registration is open; the stored role is
// always USER.
func (h *Handler) Crear(c *gin.Context) {
	var req models.CrearUsuarioRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, validation.ErrorResponse(err))
		return
	}

	created, err := h.service.Registrar(c.Request.Context(), req)
	if err != nil {
		if errors.Is(err, models.ErrConflict) {
			c.JSON(http.StatusConflict, gin.H{"message": "El email ya está registrado"})
			return
		}
		h.logger.Error("Registration failed", slog.Any("error", err))
		c.Status(http.StatusInternalServerError)
		return
	}

	c.JSON(http.StatusCreated, created.ToResponse())
}

// Listar handles GET /usuario. Admin only.
func (h *Handler) Listar(c *gin.Context) {
	sess, ok := middleware.GetSession(c)
	if !ok {
		c.Status(http.StatusUnauthorized)
		return
	}
	if !auth.Authorize(sess.Rol, sess.UserID, "", auth.PolicyAdminOnly) {
		c.Status(http.StatusForbidden)
		return
	}

	usuarios, err := h.service.GetUsuarios(c.Request.Context())
	if err != nil {
		c.Status(http.StatusInternalServerError)
		return
	}

	out := make([]models.UsuarioResponse, 0, len(usuarios))
	for i := range usuarios {
		out = append(out, usuarios[i].ToResponse())
	}
	c.JSON(http.StatusOK, out)
}

// Obtener handles GET /usuario/:id. Self or admin.
func (h *Handler) Obtener(c *gin.Context) {
	id, ok := h.pathID(c)
	if !ok {
		return
	}
	if !h.requireSelfOrAdmin(c, id) {
		return
	}

	u, err := h.service.GetUsuario(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			c.Status(http.StatusNotFound)
			return
		}
		c.Status(http.StatusInternalServerError)
		return
	}

	c.JSON(http.StatusOK, u.ToResponse())
}

// Eliminar handles DELETE /usuario/:id. Self or admin.
func (h *Handler) Eliminar(c *gin.Context) {
	id, ok := h.pathID(c)
	if !ok {
		return
	}
	if !h.requireSelfOrAdmin(c, id) {
		return
	}

	if err := h.service.Eliminar(c.Request.Context(), id); err != nil {
		if errors.Is(err, models.ErrNotFound) {
			c.Status(http.StatusNotFound)
			return
		}
		c.Status(http.StatusInternalServerError)
		return
	}

	c.Status(http.StatusNoContent)
}

func (h *Handler) pathID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"status":  http.StatusBadRequest,
			"message": "Error de validacion",
			"errores": gin.H{"id": "El id debe ser numérico"},
		})
		return 0, false
	}
	return id, true
}

// requireSelfOrAdmin writes 401 when no session is attached and 403 when the
// self-or-admin policy denies. Returns true when the request may proceed.
func (h *Handler) requireSelfOrAdmin(c *gin.Context, targetID int64) bool {
	sess, ok := middleware.GetSession(c)
	if !ok {
		c.Status(http.StatusUnauthorized)
		return false
	}
	if !auth.Authorize(sess.Rol, sess.UserID, strconv.FormatInt(targetID, 10), auth.PolicySelfOrAdmin) {
		c.Status(http.StatusForbidden)
		return false
	}
	return true
}
