package option

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUnmarshal_MixedList(t *testing.T) {
	var opts []Option
	err := json.Unmarshal([]byte(`["VERNIER", {"value":"0.05","label":"± 0.05"}, {"value":"MIN"}]`), &opts)
	require.NoError(t, err)
	require.Len(t, opts, 3)

	assert.Equal(t, KindPlain, opts[0].Kind())
	assert.Equal(t, "VERNIER", opts[0].Value())
	assert.Equal(t, "VERNIER", opts[0].Label())

	assert.Equal(t, KindValueLabel, opts[1].Kind())
	assert.Equal(t, "0.05", opts[1].Value())
	assert.Equal(t, "± 0.05", opts[1].Label())

	// label falls back to value
	assert.Equal(t, "MIN", opts[2].Label())
}

func TestUnmarshal_Rejects(t *testing.T) {
	for _, raw := range []string{`12`, `true`, `["a"]`} {
		var o Option
		assert.Error(t, json.Unmarshal([]byte(raw), &o), raw)
	}
}

func TestMarshal_KeepsShape(t *testing.T) {
	out, err := json.Marshal([]Option{Plain("GEAR"), ValueLabel("0.1", "± 0.1")})
	require.NoError(t, err)
	assert.JSONEq(t, `["GEAR", {"value":"0.1","label":"± 0.1"}]`, string(out))
}

func TestMerge_DedupesByValue(t *testing.T) {
	merged := Merge(Plains("FIG", "HONDA"), Plain("HONDA"), Plain(""), Plain("TVS"))
	assert.Equal(t, []string{"FIG", "HONDA", "TVS"}, Values(merged))
}
