package models_test

import (
	"testing"

	"digitalstore_back_end/internal/models"

	"github.com/stretchr/testify/assert"
)

func TestLocalizedStringPick(t *testing.T) {
	full := models.LocalizedString{En: "Wireless Mouse", Es: "Ratón inalámbrico"}
	assert.Equal(t, "Ratón inalámbrico", full.Pick("es"))
	assert.Equal(t, "Wireless Mouse", full.Pick("en"))
	assert.Equal(t, "Wireless Mouse", full.Pick(""))
	assert.Equal(t, "Wireless Mouse", full.Pick("fr"))

	// Missing translations fall back to whatever text exists.
	enOnly := models.LocalizedString{En: "USB Cable"}
	assert.Equal(t, "USB Cable", enOnly.Pick("es"))

	esOnly := models.LocalizedString{Es: "Cable USB"}
	assert.Equal(t, "Cable USB", esOnly.Pick("en"))
}
