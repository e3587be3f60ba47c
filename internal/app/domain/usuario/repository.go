package usuario

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/matias-dev/api-rest/internal/app/models"
)

var _ Repo = (*PostgresRepo)(nil)

// DB is the slice of pgxpool.Pool the repository needs. Satisfied by
// *pgxpool.Pool and by pgxmock pools in tests.
type DB interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
}

type Repo interface {
	// GetUsuarios returns every stored account.
	GetUsuarios(ctx context.Context) ([]models.Usuario, error)
	// GetUsuario fetches one account by id.
	GetUsuario(ctx context.Context, id int64) (*models.Usuario, error)
	// GetUsuarioPorEmail fetches one account by email, hash included.
	GetUsuarioPorEmail(ctx context.Context, email string) (*models.Usuario, error)
	// Agregar stores a new account with a HASHED password and returns it with
	// the assigned id.
	Agregar(ctx context.Context, u *models.Usuario) (*models.Usuario, error)
	// Eliminar removes an account by id.
	Eliminar(ctx context.Context, id int64) error
	// ExisteEmail reports whether an account with the email already exists.
	ExisteEmail(ctx context.Context, email string) (bool, error)
}

type PostgresRepo struct {
	logger *slog.Logger
	db     DB
}

func NewPostgresRepo(db DB, logger *slog.Logger) *PostgresRepo {
	return &PostgresRepo{
		logger: logger,
		db:     db,
	}
}

// scanUsuario handles the nullable rol column: legacy rows may carry NULL,
// which maps to RolUnknown.
func scanUsuario(row pgx.Row, u *models.Usuario) error {
	var rol *string
	if err := row.Scan(&u.ID, &u.Nombre, &u.Apellido, &u.Email, &u.Telefono, &u.Password, &rol); err != nil {
		return err
	}
	if rol != nil {
		u.Rol = models.ParseRol(*rol)
	}
	return nil
}

func (r *PostgresRepo) GetUsuarios(ctx context.Context) ([]models.Usuario, error) {
	query := `SELECT id, nombre, apellido, email, telefono, password_hash, rol FROM usuarios ORDER BY id`
	rows, err := r.db.Query(ctx, query)
	if err != nil {
		r.logger.ErrorContext(ctx, "Error listing usuarios", slog.Any("error", err))
		return nil, fmt.Errorf("database error listing usuarios: %w", err)
	}
	defer rows.Close()

	var usuarios []models.Usuario
	for rows.Next() {
		var u models.Usuario
		if err := scanUsuario(rows, &u); err != nil {
			return nil, fmt.Errorf("database error scanning usuario: %w", err)
		}
		usuarios = append(usuarios, u)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("database error listing usuarios: %w", err)
	}
	return usuarios, nil
}

func (r *PostgresRepo) GetUsuario(ctx context.Context, id int64) (*models.Usuario, error) {
	var u models.Usuario
	query := `SELECT id, nombre, apellido, email, telefono, password_hash, rol FROM usuarios WHERE id = $1`
	err := scanUsuario(r.db.QueryRow(ctx, query, id), &u)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("usuario %d not found: %w", id, models.ErrNotFound)
		}
		r.logger.ErrorContext(ctx, "Error fetching usuario by id", slog.Any("error", err), slog.Int64("id", id))
		return nil, fmt.Errorf("database error fetching usuario: %w", err)
	}
	return &u, nil
}

func (r *PostgresRepo) GetUsuarioPorEmail(ctx context.Context, email string) (*models.Usuario, error) {
	var u models.Usuario
	query := `SELECT id, nombre, apellido, email, telefono, password_hash, rol FROM usuarios WHERE email = $1`
	err := scanUsuario(r.db.QueryRow(ctx, query, email), &u)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("usuario with email %s not found: %w", email, models.ErrNotFound)
		}
		r.logger.ErrorContext(ctx, "Error fetching usuario by email", slog.Any("error", err), slog.String("email", email))
		return nil, fmt.Errorf("database error fetching usuario: %w", err)
	}
	return &u, nil
}

func (r *PostgresRepo) Agregar(ctx context.Context, u *models.Usuario) (*models.Usuario, error) {
	query := `INSERT INTO usuarios (nombre, apellido, email, telefono, password_hash, rol) VALUES ($1, $2, $3, $4, $5, $6) RETURNING id`
	err := r.db.QueryRow(ctx, query, u.Nombre, u.Apellido, u.Email, u.Telefono, u.Password, u.Rol.String()).Scan(&u.ID)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return nil, fmt.Errorf("email already registered: %w", models.ErrConflict)
		}
		r.logger.ErrorContext(ctx, "Error inserting usuario", slog.Any("error", err), slog.String("email", u.Email))
		return nil, fmt.Errorf("database error inserting usuario: %w", err)
	}
	return u, nil
}

func (r *PostgresRepo) Eliminar(ctx context.Context, id int64) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM usuarios WHERE id = $1`, id)
	if err != nil {
		r.logger.ErrorContext(ctx, "Error deleting usuario", slog.Any("error", err), slog.Int64("id", id))
		return fmt.Errorf("database error deleting usuario: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("usuario %d not found: %w", id, models.ErrNotFound)
	}
	return nil
}

func (r *PostgresRepo) ExisteEmail(ctx context.Context, email string) (bool, error) {
	var count int64
	err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM usuarios WHERE email = $1`, email).Scan(&count)
	if err != nil {
		r.logger.ErrorContext(ctx, "Error checking email existence", slog.Any("error", err), slog.String("email", email))
		return false, fmt.Errorf("database error checking email: %w", err)
	}
	return count > 0, nil
}
