package dataaccess

import (
	"context"
	"errors"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

func TestTranslatePgxErr(t *testing.T) {
	assert.NoError(t, translatePgxErr(nil))
	assert.ErrorIs(t, translatePgxErr(pgx.ErrNoRows), ErrNotFound)

	assert.ErrorIs(t, translatePgxErr(&pgconn.PgError{Code: "23505"}), ErrConstraintViolation)
	assert.ErrorIs(t, translatePgxErr(&pgconn.PgError{Code: "23503"}), ErrConstraintViolation)
	assert.ErrorIs(t, translatePgxErr(&pgconn.PgError{Code: "42703"}), ErrMalformedQuery)

	assert.ErrorIs(t, translatePgxErr(context.DeadlineExceeded), ErrConnection)

	// Codes outside the taxonomy pass through untouched.
	raw := &pgconn.PgError{Code: "P0001", Message: "guard fired"}
	translated := translatePgxErr(raw)
	assert.NotErrorIs(t, translated, ErrConstraintViolation)
	var pgErr *pgconn.PgError
	assert.ErrorAs(t, translated, &pgErr)
}

func TestTranslateGormErr(t *testing.T) {
	assert.NoError(t, translateGormErr(nil))
	assert.ErrorIs(t, translateGormErr(gorm.ErrRecordNotFound), ErrNotFound)
	assert.ErrorIs(t, translateGormErr(gorm.ErrDuplicatedKey), ErrConstraintViolation)
	assert.ErrorIs(t, translateGormErr(gorm.ErrForeignKeyViolated), ErrConstraintViolation)
	assert.ErrorIs(t, translateGormErr(context.DeadlineExceeded), ErrConnection)

	opaque := errors.New("disk on fire")
	assert.Equal(t, opaque, translateGormErr(opaque))
}
