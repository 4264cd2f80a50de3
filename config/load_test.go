package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vcrobe/hobbit/console"
)

const blocksYAML = `
router:
  hashbanged: true
  hashbang_prefix: "#"
log:
  level: debug
  format: json
match:
  ignore_case: true
routes:
  - name: home
    pattern: /
  - name: block
    pattern: /block/:color
    params:
      size: big
`

func TestLoadDefaults(t *testing.T) {
	conf, err := Load(WithEnvPrefix("HOBBIT_TEST_DEFAULTS_"))

	require.NoError(t, err)
	assert.Equal(t, Default().Router, conf.Router)
	assert.Equal(t, Default().Log, conf.Log)
	assert.Equal(t, "#!", conf.Router.HashbangPrefix)
	assert.Equal(t, zerolog.InfoLevel, conf.Log.Level)
	assert.False(t, conf.Match.Loose)
	assert.Empty(t, conf.Routes)
}

func TestLoadYAML(t *testing.T) {
	conf, err := Load(WithYAML([]byte(blocksYAML)), WithEnvPrefix("HOBBIT_TEST_YAML_"))

	require.NoError(t, err)
	assert.True(t, conf.Router.Hashbanged)
	assert.Equal(t, "#", conf.Router.HashbangPrefix)
	assert.Equal(t, zerolog.DebugLevel, conf.Log.Level)
	assert.Equal(t, console.JSONFormat, conf.Log.Format)
	assert.True(t, conf.Match.IgnoreCase)
	require.Len(t, conf.Routes, 2)

	block, ok := conf.Route("block")
	require.True(t, ok)
	assert.Equal(t, "/block/:color", block.Pattern)
	assert.Equal(t, map[string]string{"size": "big"}, block.Params)

	_, ok = conf.Route("missing")
	assert.False(t, ok)
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "hobbit.yaml")
	require.NoError(t, os.WriteFile(path, []byte(blocksYAML), 0o600))

	conf, err := Load(WithFile(path), WithEnvPrefix("HOBBIT_TEST_FILE_"))

	require.NoError(t, err)
	assert.Len(t, conf.Routes, 2)

	_, err = Load(WithFile(filepath.Join(t.TempDir(), "missing.yaml")))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read config file")
}

func TestLoadEnvironmentOverridesYAML(t *testing.T) {
	t.Setenv("HOBBIT_ROUTER_HASHBANG__PREFIX", "#/")
	t.Setenv("HOBBIT_ROUTER_LOCATION", "/block/red")
	t.Setenv("HOBBIT_MATCH_LOOSE", "true")
	t.Setenv("HOBBIT_LOG_LEVEL", "warn")

	conf, err := Load(WithYAML([]byte(blocksYAML)))

	require.NoError(t, err)
	assert.Equal(t, "#/", conf.Router.HashbangPrefix)
	assert.Equal(t, "/block/red", conf.Router.Location)
	assert.True(t, conf.Match.Loose)
	assert.True(t, conf.Match.IgnoreCase)
	assert.Equal(t, zerolog.WarnLevel, conf.Log.Level)
}

func TestLoadRejectsMalformedDocuments(t *testing.T) {
	_, err := Load(WithYAML([]byte("router: [")), WithEnvPrefix("HOBBIT_TEST_MALFORMED_"))

	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse yaml config from inline document")
}

func TestLoadRejectsInvalidConfiguration(t *testing.T) {
	for uc, tc := range map[string]struct {
		yaml    string
		message string
	}{
		"invalid pattern": {
			yaml:    "routes:\n  - name: broken\n    pattern: \"/:\"\n",
			message: `routes[0].pattern is not a valid route pattern: "/:"`,
		},
		"missing name": {
			yaml:    "routes:\n  - pattern: /\n",
			message: "routes[0].name is required",
		},
		"duplicate name": {
			yaml:    "routes:\n  - name: a\n    pattern: /a\n  - name: a\n    pattern: /b\n",
			message: `route "a" is declared twice`,
		},
		"relative location": {
			yaml:    "router:\n  location: block\n",
			message: `router.location must start with "/"`,
		},
		"unknown format": {
			yaml:    "log:\n  format: xml\n",
			message: "log.format failed the oneof check",
		},
	} {
		t.Run(uc, func(t *testing.T) {
			_, err := Load(WithYAML([]byte(tc.yaml)), WithEnvPrefix("HOBBIT_TEST_INVALID_"))

			require.ErrorIs(t, err, ErrInvalidConfiguration)
			assert.Contains(t, err.Error(), tc.message)
		})
	}
}
