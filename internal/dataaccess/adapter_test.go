package dataaccess

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestNormalizeFilters(t *testing.T) {
	keys, active := normalizeFilters(map[string]any{
		"status":     "pending",
		"gender":     "",
		"notes":      nil,
		"id":         []int64{},
		"doctor_id":  int64(3),
		"is_active":  false,
		"patient_id": int64(0),
	})

	// Zero-valued scalars are real filters; only nil, empty strings and
	// empty collections count as absent.
	assert.Equal(t, []string{"doctor_id", "is_active", "patient_id", "status"}, keys)
	assert.Equal(t, map[string]any{
		"doctor_id":  int64(3),
		"is_active":  false,
		"patient_id": int64(0),
		"status":     "pending",
	}, active)
}

func TestFilterEmpty(t *testing.T) {
	var nilSlice []string
	var nilPtr *int64

	assert.True(t, filterEmpty(nil))
	assert.True(t, filterEmpty(""))
	assert.True(t, filterEmpty([]int64{}))
	assert.True(t, filterEmpty(nilSlice))
	assert.True(t, filterEmpty(nilPtr))

	assert.False(t, filterEmpty("pending"))
	assert.False(t, filterEmpty(0))
	assert.False(t, filterEmpty(false))
	assert.False(t, filterEmpty([]string{"a"}))
}

func TestIsSlice(t *testing.T) {
	assert.True(t, isSlice([]string{"a"}))
	assert.True(t, isSlice([]int64{1}))

	// Byte slices travel as scalar values, not membership matches.
	assert.False(t, isSlice([]byte("blob")))
	assert.False(t, isSlice("a"))
	assert.False(t, isSlice(int64(1)))
}

func TestRowInt64(t *testing.T) {
	row := Row{"a": int64(7), "b": int32(7), "c": 7, "d": float64(7)}

	for _, col := range []string{"a", "b", "c", "d"} {
		assert.Equal(t, int64(7), row.Int64(col), col)
	}
	assert.Zero(t, row.Int64("missing"))
}

func TestRowInt64Ptr(t *testing.T) {
	row := Row{"appointment_id": int64(3), "absent": nil}

	if p := row.Int64Ptr("appointment_id"); assert.NotNil(t, p) {
		assert.Equal(t, int64(3), *p)
	}
	assert.Nil(t, row.Int64Ptr("absent"))
	assert.Nil(t, row.Int64Ptr("missing"))
}

func TestRowString(t *testing.T) {
	row := Row{"name": "Ana", "blob": []byte("bytes"), "num": int64(1)}

	assert.Equal(t, "Ana", row.String("name"))
	assert.Equal(t, "bytes", row.String("blob"))
	assert.Empty(t, row.String("num"))
}

func TestRowTime(t *testing.T) {
	now := time.Now()
	row := Row{"created_at": now, "responded_at": nil}

	assert.Equal(t, now, row.Time("created_at"))
	assert.True(t, row.Time("responded_at").IsZero())

	if p := row.TimePtr("created_at"); assert.NotNil(t, p) {
		assert.Equal(t, now, *p)
	}
	assert.Nil(t, row.TimePtr("responded_at"))
}

func TestRowUUID(t *testing.T) {
	id := uuid.New()
	row := Row{"a": id, "b": [16]byte(id), "c": id.String(), "d": "not-a-uuid"}

	assert.Equal(t, id, row.UUID("a"))
	assert.Equal(t, id, row.UUID("b"))
	assert.Equal(t, id, row.UUID("c"))
	assert.Equal(t, uuid.Nil, row.UUID("d"))

	if p := row.UUIDPtr("a"); assert.NotNil(t, p) {
		assert.Equal(t, id, *p)
	}
	assert.Nil(t, row.UUIDPtr("d"))
	assert.Nil(t, row.UUIDPtr("missing"))
}

func TestCheckColumnsRejectsOutsideRegistry(t *testing.T) {
	assert.NoError(t, checkColumns("referrals", "status", "responded_at"))
	assert.ErrorIs(t, checkColumns("referrals", "secret"), ErrMalformedQuery)
	assert.ErrorIs(t, checkColumns("nope", "id"), ErrMalformedQuery)
}
