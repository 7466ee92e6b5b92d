package catalog

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseCSVHappyPath(t *testing.T) {
	csvBody := "Company Name,Industry,Symbol,Series,ISIN Code\n" +
		"Reliance Industries,Energy,RELIANCE,EQ,INE002A01018\n"

	rows, err := parseCSV(strings.NewReader(csvBody))
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "RELIANCE", rows[0].Symbol)
	assert.Equal(t, "INE002A01018", rows[0].ISIN)
}

func TestParseCSVMissingColumnFails(t *testing.T) {
	csvBody := "Company Name,Symbol\nFoo,FOO\n"
	_, err := parseCSV(strings.NewReader(csvBody))
	assert.Error(t, err)
}
