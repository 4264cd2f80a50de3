package history

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncodeLocationCarriesLocationToTheClient(t *testing.T) {
	loc := Location{
		Path:    "/block/red",
		URL:     "#!/block/red",
		Pattern: "/block/:color",
		Params:  map[string]string{"color": "red"},
		Sender:  "server",
	}

	text, err := EncodeLocation(loc)
	require.NoError(t, err)
	assert.NotContains(t, text, "=")

	decoded, err := DecodeLocation(text)
	require.NoError(t, err)
	assert.Equal(t, loc, decoded)

	h := New(Config{InitialLocation: &decoded, Hashbanged: true})
	assert.Equal(t, loc, h.Location())
}

func TestUnmarshalLocationDefaultsParams(t *testing.T) {
	t.Parallel()

	data, err := MarshalLocation(Location{Path: "/", URL: "/", Pattern: "/"})
	require.NoError(t, err)

	loc, err := UnmarshalLocation(data)
	require.NoError(t, err)
	assert.Equal(t, map[string]string{}, loc.Params)
}

func TestDecodeLocationRejectsGarbage(t *testing.T) {
	t.Parallel()

	for uc, text := range map[string]string{
		"not base64":  "***",
		"not msgpack": "wQ",
	} {
		t.Run(uc, func(t *testing.T) {
			_, err := DecodeLocation(text)

			require.Error(t, err)
			assert.Contains(t, err.Error(), "failed to decode location")
		})
	}
}
