package sessionid

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lox/entrybarrier/internal/randutil"
)

func TestNewRoundTrips(t *testing.T) {
	id, err := New(nil)
	require.NoError(t, err)
	assert.Len(t, id, 26)
	assert.Equal(t, strings.ToLower(id), id)

	u, err := Parse(id)
	require.NoError(t, err)
	assert.EqualValues(t, 7, u.Version())
}

func TestNewFromSeededReaderIsUnique(t *testing.T) {
	r := randutil.Reader(randutil.New(9))
	seen := map[string]bool{}
	for i := 0; i < 100; i++ {
		id, err := New(r)
		require.NoError(t, err)
		assert.False(t, seen[id], "duplicate id %s", id)
		seen[id] = true
	}
}

func TestParseRejects(t *testing.T) {
	for _, id := range []string{"", "short", strings.Repeat("u", 26), strings.Repeat("!", 26)} {
		_, err := Parse(id)
		assert.Error(t, err, id)
	}
}
