package dto

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPageShapes(t *testing.T) {
	var paged Page[Event]
	require.NoError(t, json.Unmarshal([]byte(`{"items":[{"id":1,"status":"live","date":"2025-05-01T18:00:00Z"}],"total":31}`), &paged))
	assert.True(t, paged.Paged)
	assert.Equal(t, 31, paged.Total)
	assert.Equal(t, 18, paged.Items[0].Date.Hour())

	var bare Page[Event]
	require.NoError(t, json.Unmarshal([]byte(`[{"id":1},{"id":2}]`), &bare))
	assert.False(t, bare.Paged)
	assert.Equal(t, 2, bare.Total)

	var empty Page[Event]
	require.NoError(t, json.Unmarshal([]byte(`null`), &empty))
	assert.Empty(t, empty.Items)
}

func TestTimeLayouts(t *testing.T) {
	for _, s := range []string{"2025-05-01T18:00:00Z", "2025-05-01T18:00:00.123456", "2025-05-01T18:00", "2025-05-01 18:00:00"} {
		tm, err := ParseTime(s)
		require.NoError(t, err, s)
		assert.Equal(t, 18, tm.Hour())
	}
	_, err := ParseTime("yesterday")
	assert.Error(t, err)

	b, err := json.Marshal(Time{})
	require.NoError(t, err)
	assert.Equal(t, "null", string(b))
	assert.Equal(t, "-", Time{}.Display())
}
