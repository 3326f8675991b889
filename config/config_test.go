package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRequireTag(t *testing.T) {
	tag, err := ClinicConfig{Tag: "central", Name: "Central Clinic"}.RequireTag()
	require.NoError(t, err)
	assert.Equal(t, "central", tag)

	_, err = ClinicConfig{}.RequireTag()
	assert.ErrorIs(t, err, ErrMissingClinicTag)
}
