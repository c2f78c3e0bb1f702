package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseStorageBackend(t *testing.T) {
	b, err := ParseStorageBackend("sqlite3")
	require.NoError(t, err)
	assert.Equal(t, BackendSQLite3, b)

	b, err = ParseStorageBackend("mcap")
	require.NoError(t, err)
	assert.Equal(t, BackendMCAP, b)

	_, err = ParseStorageBackend("bag")
	require.Error(t, err)
	assert.Contains(t, err.Error(), `"bag"`)
}

func TestLookupDirection(t *testing.T) {
	tests := []struct {
		name       string
		wantTarget StorageBackend
		wantOK     bool
	}{
		{name: "mcap-to-sqlite3", wantTarget: BackendSQLite3, wantOK: true},
		{name: "sqlite3-to-mcap", wantTarget: BackendMCAP, wantOK: true},
		{name: "mcap_to_sqlite3"},
		{name: ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d, ok := LookupDirection(tt.name)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.wantTarget, d.Target)
		})
	}
}

func TestDirectionsAreInverse(t *testing.T) {
	assert.Equal(t, MCAPToSQLite3.Source, SQLite3ToMCAP.Target)
	assert.Equal(t, MCAPToSQLite3.Target, SQLite3ToMCAP.Source)
}
