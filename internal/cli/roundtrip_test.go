package cli

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRoundtripCommandMatch(t *testing.T) {
	out, _, err := execute(t, "roundtrip", `{\b1\i1}`, `\t(0,100,\1c&HFF&)`)
	require.NoError(t, err)
	assert.Equal(t, "✓ {\\b1\\i1}\n✓ \\t(0,100,\\1c&HFF&)\n", out)
}

func TestRoundtripCommandMismatch(t *testing.T) {
	out, _, err := execute(t, "roundtrip", `{\b1}`, `{\pos( 100 , 200 )}`)
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))
	assert.Contains(t, err.Error(), "1 block(s) did not round-trip")
	assert.Contains(t, out, "✗ {\\pos( 100 , 200 )}\n    got: {\\pos(100,200)}\n")
}

func TestRoundtripCommandJSON(t *testing.T) {
	out, _, err := execute(t, "--format", "json", "roundtrip", `{\b1}`, `{\pos( 1 , 2 )}`)
	require.Error(t, err)

	var resp struct {
		Status string            `json:"status"`
		Data   []RoundtripResult `json:"data"`
		Error  *CLIError         `json:"error"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &resp))
	assert.Equal(t, "error", resp.Status)
	require.NotNil(t, resp.Error)
	assert.Equal(t, ErrCodeRoundTrip, resp.Error.Code)
	require.Len(t, resp.Data, 2)
	assert.True(t, resp.Data[0].Match)
	assert.False(t, resp.Data[1].Match)
	assert.Equal(t, `{\pos(1,2)}`, resp.Data[1].Output)
}
