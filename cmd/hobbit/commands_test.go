package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const blocksConfig = `
router:
  hashbanged: true
routes:
  - name: block
    pattern: /block/:color
    params:
      size: big
  - name: sidebar-block
    pattern: /sidebar/:color?
  - name: home
    pattern: /
  - name: missing
    pattern: "*"
`

func writeConfig(t *testing.T, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "hobbit.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	return path
}

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()

	var out, errOut bytes.Buffer

	cmd := newRootCommand()
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(append(args, "--env-config-prefix", "HOBBIT_CLI_TEST_"))

	err := cmd.Execute()

	return out.String(), err
}

func TestRootCommandFlags(t *testing.T) {
	cmd := newRootCommand()

	configFlag := cmd.PersistentFlags().Lookup(flagConfig)
	require.NotNil(t, configFlag)
	assert.Equal(t, "c", configFlag.Shorthand)
	assert.Empty(t, configFlag.DefValue)

	outputFlag := cmd.PersistentFlags().Lookup(flagOutput)
	require.NotNil(t, outputFlag)
	assert.Equal(t, outputText, outputFlag.DefValue)

	envFlag := cmd.PersistentFlags().Lookup(flagEnvPrefix)
	require.NotNil(t, envFlag)
	assert.Equal(t, "HOBBIT_", envFlag.DefValue)

	assert.Len(t, cmd.Commands(), 4)
}

func TestMatchCommand(t *testing.T) {
	path := writeConfig(t, blocksConfig)

	for uc, tc := range map[string]struct {
		url      string
		expected string
	}{
		"parameterised route": {url: "https://x.com/#!/block/red", expected: "block /block/:color color=red size=big\n"},
		"root route":          {url: "https://x.com/#!/", expected: "home /\n"},
		"optional parameter":  {url: "https://x.com/#!/sidebar", expected: "sidebar-block /sidebar/:color?\n"},
		"fallback":            {url: "https://x.com/#!/nowhere", expected: "missing *\n"},
		"no fragment":         {url: "https://x.com/block/red", expected: "home /\n"},
	} {
		t.Run(uc, func(t *testing.T) {
			out, err := run(t, "match", "-c", path, tc.url)

			require.NoError(t, err)
			assert.Equal(t, tc.expected, out)
		})
	}
}

func TestMatchCommandJSON(t *testing.T) {
	path := writeConfig(t, blocksConfig)

	out, err := run(t, "match", "-c", path, "-o", "json", "https://x.com/#!/block/red")
	require.NoError(t, err)

	var result matchResult
	require.NoError(t, json.Unmarshal([]byte(out), &result))
	assert.Equal(t, matchResult{
		Matched: true,
		Route:   "block",
		Pattern: "/block/:color",
		Path:    "/block/red",
		URL:     "#!/block/red",
		Params:  map[string]string{"color": "red", "size": "big"},
	}, result)
}

func TestMatchCommandWithoutMatch(t *testing.T) {
	path := writeConfig(t, "routes:\n  - name: home\n    pattern: /\n")

	out, err := run(t, "match", "-c", path, "https://x.com/elsewhere")

	require.NoError(t, err)
	assert.Equal(t, "no route matches /elsewhere\n", out)
}

func TestReverseCommand(t *testing.T) {
	path := writeConfig(t, blocksConfig)

	out, err := run(t, "reverse", "-c", path, "block", "color=red")
	require.NoError(t, err)
	assert.Equal(t, "#!/block/red\n", out)

	out, err = run(t, "reverse", "/users/:id/posts/:post", "id=7", "post=hello world")
	require.NoError(t, err)
	assert.Equal(t, "/users/7/posts/hello%20world\n", out)

	_, err = run(t, "reverse", "-c", path, "block")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "color")

	_, err = run(t, "reverse", "/block/:color", "color")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not of the form name=value")
}

func TestRoutesCommand(t *testing.T) {
	path := writeConfig(t, blocksConfig)

	out, err := run(t, "routes", "-c", path)
	require.NoError(t, err)
	assert.Equal(t, "block /block/:color\nsidebar-block /sidebar/:color?\nhome /\nmissing *\n", out)

	out, err = run(t, "routes", "-c", path, "--filter", "*block", "-o", "json")
	require.NoError(t, err)

	var routes []routeInfo
	require.NoError(t, json.Unmarshal([]byte(out), &routes))
	require.Len(t, routes, 2)
	assert.Equal(t, []string{"color"}, routes[0].Keys)
	assert.Equal(t, map[string]string{"size": "big"}, routes[0].Params)
	assert.Equal(t, "sidebar-block", routes[1].Name)

	_, err = run(t, "routes", "--filter", "[")
	require.Error(t, err)
}

func TestValidateCommand(t *testing.T) {
	out, err := run(t, "validate", "-c", writeConfig(t, blocksConfig))
	require.NoError(t, err)
	assert.Equal(t, "Configuration is valid\n", out)

	_, err = run(t, "validate", "-c", writeConfig(t, "routes:\n  - name: broken\n    pattern: \"/(\"\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not a valid route pattern")
}

func TestUnsupportedOutputFormat(t *testing.T) {
	_, err := run(t, "reverse", "/", "-o", "yaml")

	require.Error(t, err)
	assert.Contains(t, err.Error(), `unsupported output format "yaml"`)
}
