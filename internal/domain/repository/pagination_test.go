package repository

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPaginationNormalize(t *testing.T) {
	cases := []struct {
		name string
		in   Pagination
		want Pagination
	}{
		{"zero value gets defaults", Pagination{}, Pagination{Page: 1, Limit: 20}},
		{"negative page", Pagination{Page: -3, Limit: 10}, Pagination{Page: 1, Limit: 10}},
		{"limit capped", Pagination{Page: 2, Limit: 500}, Pagination{Page: 2, Limit: 100}},
		{"already valid", Pagination{Page: 4, Limit: 25}, Pagination{Page: 4, Limit: 25}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, tc.in.Normalize())
		})
	}
}

func TestPaginationOffset(t *testing.T) {
	assert.Equal(t, 0, Pagination{Page: 1, Limit: 20}.Offset())
	assert.Equal(t, 40, Pagination{Page: 3, Limit: 20}.Offset())
}

func TestNewMetaCeilsPages(t *testing.T) {
	p := Pagination{Page: 1, Limit: 20}

	assert.Equal(t, Meta{Page: 1, Limit: 20, Total: 0, Pages: 0}, NewMeta(p, 0))
	assert.Equal(t, Meta{Page: 1, Limit: 20, Total: 20, Pages: 1}, NewMeta(p, 20))
	assert.Equal(t, Meta{Page: 1, Limit: 20, Total: 21, Pages: 2}, NewMeta(p, 21))
	assert.Equal(t, Meta{Page: 1, Limit: 20, Total: 41, Pages: 3}, NewMeta(p, 41))
}
