package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFindBranchTakesLocalityFromKey(t *testing.T) {
	payload := `{
		"business_name": "Acme",
		"branches": {
			"Kyiv": [{"id": 5, "name": "Main", "address": "Khreshchatyk 1", "phone_number": "+380"}],
			"Lviv": [{"id": 6, "name": "Old town", "locality": "Lviv center", "address": "Rynok 1"}]
		}
	}`
	var cb CitiesBranches
	require.NoError(t, json.Unmarshal([]byte(payload), &cb))

	b, ok := cb.FindBranch(5)
	require.True(t, ok)
	assert.Equal(t, "Kyiv", b.Locality)
	assert.Empty(t, cb.Branches["Kyiv"][0].Locality)

	b, ok = cb.FindBranch(6)
	require.True(t, ok)
	assert.Equal(t, "Lviv center", b.Locality)

	_, ok = cb.FindBranch(7)
	assert.False(t, ok)
}
