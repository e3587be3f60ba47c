package usuario

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/matias-dev/api-rest/internal/app/models"
	"github.com/matias-dev/api-rest/internal/pkg/auth"
)

var _ Service = (*ServiceImpl)(nil)

// Service defines the business logic contract around accounts.
type Service interface {
	Login(ctx context.Context, email, password string) (string, error)
	Registrar(ctx context.Context, req models.CrearUsuarioRequest) (*models.Usuario, error)
	GetUsuarios(ctx context.Context) ([]models.Usuario, error)
	GetUsuario(ctx context.Context, id int64) (*models.Usuario, error)
	Eliminar(ctx context.Context, id int64) error
}

type ServiceImpl struct {
	logger *slog.Logger
	repo   Repo
	hasher *auth.PasswordHasher
	tokens *auth.TokenService
}

func NewService(repo Repo, hasher *auth.PasswordHasher, tokens *auth.TokenService, logger *slog.Logger) *ServiceImpl {
	return &ServiceImpl{
		logger: logger,
		repo:   repo,
		hasher: hasher,
		tokens: tokens,
	}
}

// Login validates credentials and issues a session token.
func (s *ServiceImpl) Login(ctx context.Context, email, password string) (string, error) {
	l := s.logger.With(slog.String("method", "Login"), slog.String("email", email))
	l.DebugContext(ctx, "Attempting login")

	u, err := s.repo.GetUsuarioPorEmail(ctx, email)
	if err != nil {
		l.WarnContext(ctx, "Lookup by email failed", slog.Any("error", err))
		// Don't reveal whether the account exists or the password is wrong
		return "", fmt.Errorf("invalid credentials: %w", models.ErrUnauthenticated)
	}

	if !s.hasher.Verify(u.Password, password) {
		l.WarnContext(ctx, "Password mismatch", slog.Int64("usuarioID", u.ID))
		return "", fmt.Errorf("invalid credentials: %w", models.ErrUnauthenticated)
	}

	// Legacy accounts may carry no role; they log in as USER even though the
	// guard denies unknown roles on incoming tokens. Kept on purpose, see
	// DESIGN.md.
	rol := u.Rol
	if rol == models.RolUnknown {
		rol = models.RolUser
	}

	token, err := s.tokens.Create(u.ID, u.Email, rol)
	if err != nil {
		l.ErrorContext(ctx, "Failed to issue token", slog.Int64("usuarioID", u.ID), slog.Any("error", err))
		return "", fmt.Errorf("internal error issuing token: %w", err)
	}

	l.InfoContext(ctx, "Login successful", slog.Int64("usuarioID", u.ID))
	return token, nil
}

// Registrar hashes the password, forces the USER role and stores the account.
func (s *ServiceImpl) Registrar(ctx context.Context, req models.CrearUsuarioRequest) (*models.Usuario, error) {
	l := s.logger.With(slog.String("method", "Registrar"), slog.String("email", req.Email))
	l.DebugContext(ctx, "Attempting registration")

	tracer := otel.Tracer("api-rest")
	ctx, span := tracer.Start(ctx, "UsuarioService.Registrar", trace.WithAttributes(
		attribute.String("email", req.Email),
	))
	defer span.End()

	exists, err := s.repo.ExisteEmail(ctx, req.Email)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "Email existence check failed")
		return nil, fmt.Errorf("registration failed: %w", err)
	}
	if exists {
		span.SetStatus(codes.Error, "Email already registered")
		return nil, fmt.Errorf("email already registered: %w", models.ErrConflict)
	}

	hash, err := s.hasher.Hash(req.Password)
	if err != nil {
		l.ErrorContext(ctx, "Failed to hash password", slog.Any("error", err))
		span.RecordError(err)
		span.SetStatus(codes.Error, "Password hashing failed")
		return nil, fmt.Errorf("could not process password")
	}

	u := &models.Usuario{
		Nombre:   req.Nombre,
		Apellido: req.Apellido,
		Email:    req.Email,
		Telefono: req.Telefono,
		Password: hash,
		Rol:      models.RolUser, // registrations never choose their role
	}

	created, err := s.repo.Agregar(ctx, u)
	if err != nil {
		if !errors.Is(err, models.ErrConflict) {
			l.ErrorContext(ctx, "Repository registration failed", slog.Any("error", err))
		}
		span.RecordError(err)
		span.SetStatus(codes.Error, "Repository registration failed")
		return nil, fmt.Errorf("registration failed: %w", err)
	}

	l.InfoContext(ctx, "Registration successful", slog.Int64("usuarioID", created.ID))
	span.SetStatus(codes.Ok, "Usuario registered")
	return created, nil
}

func (s *ServiceImpl) GetUsuarios(ctx context.Context) ([]models.Usuario, error) {
	usuarios, err := s.repo.GetUsuarios(ctx)
	if err != nil {
		s.logger.ErrorContext(ctx, "Failed to list usuarios", slog.Any("error", err))
		return nil, fmt.Errorf("failed to list usuarios: %w", err)
	}
	return usuarios, nil
}

func (s *ServiceImpl) GetUsuario(ctx context.Context, id int64) (*models.Usuario, error) {
	u, err := s.repo.GetUsuario(ctx, id)
	if err != nil {
		if !errors.Is(err, models.ErrNotFound) {
			s.logger.ErrorContext(ctx, "Failed to fetch usuario", slog.Int64("id", id), slog.Any("error", err))
		}
		return nil, err
	}
	return u, nil
}

func (s *ServiceImpl) Eliminar(ctx context.Context, id int64) error {
	if err := s.repo.Eliminar(ctx, id); err != nil {
		if !errors.Is(err, models.ErrNotFound) {
			s.logger.ErrorContext(ctx, "Failed to delete usuario", slog.Int64("id", id), slog.Any("error", err))
		}
		return err
	}
	s.logger.InfoContext(ctx, "Usuario deleted", slog.Int64("id", id))
	return nil
}
