package dataaccess

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildWhereOrdersConditionsAndPlaceholders(t *testing.T) {
	where, args, next, err := buildWhere("referrals", map[string]any{
		"status":     "pending",
		"patient_id": int64(7),
	}, 1)
	require.NoError(t, err)

	assert.Equal(t, " WHERE patient_id = $1 AND status = $2", where)
	assert.Equal(t, []any{int64(7), "pending"}, args)
	assert.Equal(t, 3, next)
}

func TestBuildWhereCollectionBecomesAny(t *testing.T) {
	where, args, next, err := buildWhere("referrals", map[string]any{
		"status": []string{"pending", "accepted"},
	}, 2)
	require.NoError(t, err)

	assert.Equal(t, " WHERE status = ANY($2)", where)
	assert.Equal(t, []any{[]string{"pending", "accepted"}}, args)
	assert.Equal(t, 3, next)
}

func TestBuildWhereSkipsAbsentValues(t *testing.T) {
	where, args, next, err := buildWhere("patients", map[string]any{
		"gender":     "",
		"first_name": nil,
		"id":         []int64{},
	}, 1)
	require.NoError(t, err)

	assert.Empty(t, where)
	assert.Empty(t, args)
	assert.Equal(t, 1, next)
}

func TestBuildWhereRejectsUnknownColumn(t *testing.T) {
	_, _, _, err := buildWhere("patients", map[string]any{"password": "x"}, 1)
	assert.ErrorIs(t, err, ErrMalformedQuery)
}

func TestBuildSelect(t *testing.T) {
	sql, args, err := buildSelect("appointments", QueryOptions{
		Filters:   map[string]any{"doctor_id": int64(3)},
		OrderBy:   "scheduled_at",
		OrderDesc: true,
		Limit:     20,
		Offset:    40,
	})
	require.NoError(t, err)

	assert.Equal(t,
		"SELECT * FROM appointments WHERE doctor_id = $1 ORDER BY scheduled_at DESC LIMIT $2 OFFSET $3",
		sql)
	assert.Equal(t, []any{int64(3), 20, 40}, args)
}

func TestBuildSelectProjection(t *testing.T) {
	sql, args, err := buildSelect("doctors", QueryOptions{
		Columns: []string{"id", "specialty"},
	})
	require.NoError(t, err)

	assert.Equal(t, "SELECT id, specialty FROM doctors", sql)
	assert.Empty(t, args)
}

func TestBuildSelectRejectsUnknownTable(t *testing.T) {
	_, _, err := buildSelect("prescriptions", QueryOptions{})
	assert.ErrorIs(t, err, ErrMalformedQuery)
}

func TestBuildSelectRejectsUnknownOrderColumn(t *testing.T) {
	_, _, err := buildSelect("patients", QueryOptions{OrderBy: "1; DROP TABLE patients"})
	assert.ErrorIs(t, err, ErrMalformedQuery)
}

func TestBuildCountSharesWhere(t *testing.T) {
	sql, args, err := buildCount("invoices", map[string]any{"status": "issued"})
	require.NoError(t, err)

	assert.Equal(t, "SELECT COUNT(*) FROM invoices WHERE status = $1", sql)
	assert.Equal(t, []any{"issued"}, args)
}

func TestBuildInsertSortsColumns(t *testing.T) {
	sql, args, err := buildInsert("patients", Row{
		"last_name":  "Souza",
		"first_name": "Ana",
		"clinic_tag": "central",
	})
	require.NoError(t, err)

	assert.Equal(t,
		"INSERT INTO patients (clinic_tag, first_name, last_name) VALUES ($1, $2, $3) RETURNING *",
		sql)
	assert.Equal(t, []any{"central", "Ana", "Souza"}, args)
}

func TestBuildInsertKeepsExplicitNull(t *testing.T) {
	sql, args, err := buildInsert("consultations", Row{
		"patient_id":     int64(7),
		"appointment_id": nil,
	})
	require.NoError(t, err)

	assert.Equal(t,
		"INSERT INTO consultations (appointment_id, patient_id) VALUES ($1, $2) RETURNING *",
		sql)
	assert.Equal(t, []any{nil, int64(7)}, args)
}

func TestBuildInsertRejectsEmptyValues(t *testing.T) {
	_, _, err := buildInsert("patients", Row{})
	assert.ErrorIs(t, err, ErrMalformedQuery)
}

func TestBuildUpdate(t *testing.T) {
	sql, args, err := buildUpdate("services", int64(5), Row{
		"price_cents": int64(9900),
		"is_active":   false,
	}, "id")
	require.NoError(t, err)

	assert.Equal(t,
		"UPDATE services SET is_active = $1, price_cents = $2 WHERE id = $3 RETURNING *",
		sql)
	assert.Equal(t, []any{false, int64(9900), int64(5)}, args)
}

func TestBuildGuardedUpdate(t *testing.T) {
	sql, args, err := buildGuardedUpdate("invoices", int64(5), Row{
		"status": "paid",
	}, "id", map[string]any{
		"status": []string{"issued"},
	})
	require.NoError(t, err)

	assert.Equal(t,
		"UPDATE invoices SET status = $1 WHERE id = $2 AND status = ANY($3) RETURNING *",
		sql)
	assert.Equal(t, []any{"paid", int64(5), []string{"issued"}}, args)
}

func TestBuildGuardedUpdateRejectsUnknownGuardColumn(t *testing.T) {
	_, _, err := buildGuardedUpdate("invoices", int64(5), Row{"status": "paid"}, "id",
		map[string]any{"secret": "x"})
	assert.ErrorIs(t, err, ErrMalformedQuery)
}

func TestBuildDelete(t *testing.T) {
	sql, err := buildDelete("doctors", "id")
	require.NoError(t, err)
	assert.Equal(t, "DELETE FROM doctors WHERE id = $1", sql)
}

func TestBuildSearch(t *testing.T) {
	sql, err := buildSearch("patients", []string{"first_name", "last_name", "document_id"}, 50)
	require.NoError(t, err)

	assert.Equal(t,
		"SELECT * FROM patients WHERE first_name ILIKE $1 OR last_name ILIKE $1 OR document_id ILIKE $1 LIMIT 50",
		sql)
}

func TestBuildSearchRejectsEmptyFields(t *testing.T) {
	_, err := buildSearch("patients", nil, 50)
	assert.ErrorIs(t, err, ErrMalformedQuery)
}
