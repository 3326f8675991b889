package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"go-clinic-backend/internal/dataaccess"
	"go-clinic-backend/internal/domain/entity"
	domainRepo "go-clinic-backend/internal/domain/repository"
)

const userColumns = `id, role_id, doctor_id, email, password, full_name,
	is_active, created_at, updated_at`

type userRepositoryPgx struct {
	pool *pgxpool.Pool
}

// NewUserRepositoryPgx is the relational-driver sibling of the user
// repository.
func NewUserRepositoryPgx(pool *pgxpool.Pool) domainRepo.UserRepository {
	return &userRepositoryPgx{pool: pool}
}

func (r *userRepositoryPgx) Create(ctx context.Context, user *entity.User) error {
	query := fmt.Sprintf(`
		INSERT INTO users (role_id, doctor_id, email, password, full_name, is_active)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING %s`, userColumns)

	row := r.pool.QueryRow(ctx, query,
		user.RoleID, user.DoctorID, user.Email, user.Password, user.FullName, user.IsActive,
	)
	if err := scanUser(row, user); err != nil {
		return fmt.Errorf("create user: %w", dataaccess.TranslatePgxError(err))
	}
	return nil
}

func (r *userRepositoryPgx) FindByEmail(ctx context.Context, email string) (*entity.User, error) {
	return r.findOne(ctx, "email = $1", email)
}

func (r *userRepositoryPgx) FindByID(ctx context.Context, id uuid.UUID) (*entity.User, error) {
	return r.findOne(ctx, "id = $1", id)
}

func (r *userRepositoryPgx) Update(ctx context.Context, id uuid.UUID, values map[string]any) (*entity.User, error) {
	if err := dataaccess.CheckColumns("users", columnNames(values)...); err != nil {
		return nil, err
	}
	sets, args := setClause(values)
	args = append(args, id)

	query := fmt.Sprintf(
		"UPDATE users SET %s, updated_at = NOW() WHERE id = $%d RETURNING %s",
		sets, len(args), userColumns,
	)
	var user entity.User
	if err := scanUser(r.pool.QueryRow(ctx, query, args...), &user); err != nil {
		return nil, fmt.Errorf("update user %s: %w", id, dataaccess.TranslatePgxError(err))
	}
	return &user, nil
}

func (r *userRepositoryPgx) findOne(ctx context.Context, cond string, arg any) (*entity.User, error) {
	query := fmt.Sprintf("SELECT %s FROM users WHERE %s", userColumns, cond)
	var user entity.User
	err := scanUser(r.pool.QueryRow(ctx, query, arg), &user)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("find user: %w", dataaccess.TranslatePgxError(err))
	}
	return &user, nil
}

func scanUser(row pgx.Row, u *entity.User) error {
	return row.Scan(
		&u.ID, &u.RoleID, &u.DoctorID, &u.Email, &u.Password, &u.FullName,
		&u.IsActive, &u.CreatedAt, &u.UpdatedAt,
	)
}
