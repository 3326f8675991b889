package validator

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type statusPayload struct {
	PatientID int64  `json:"patient_id" validate:"required"`
	Status    string `json:"status" validate:"required,oneof=draft issued paid cancelled"`
}

func TestValidateReportsWireFieldNames(t *testing.T) {
	cv := NewValidator()

	err := cv.Validate(&statusPayload{})
	require.Error(t, err)

	formatted := cv.FormatValidationErrors(err)
	assert.Equal(t, "patient_id is required", formatted["patient_id"])
	assert.Equal(t, "status is required", formatted["status"])
	assert.NotContains(t, formatted, "PatientID")
}

func TestValidateOneofListsLegalValues(t *testing.T) {
	cv := NewValidator()

	err := cv.Validate(&statusPayload{PatientID: 7, Status: "refunded"})
	require.Error(t, err)

	formatted := cv.FormatValidationErrors(err)
	assert.Equal(t, "status must be one of: draft, issued, paid, cancelled", formatted["status"])
}

func TestValidatePassesValidPayload(t *testing.T) {
	cv := NewValidator()

	assert.NoError(t, cv.Validate(&statusPayload{PatientID: 7, Status: "issued"}))
}
