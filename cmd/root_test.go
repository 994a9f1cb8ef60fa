package main

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/Flaque/filet"
	"github.com/UnknownOlympus/geocmp/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubServers starts google, dstk and nominatim stand-ins. Google answers
// (0,0), dstk answers about 55 m east of it and nominatim finds nothing.
func stubServers(t *testing.T) []string {
	t.Helper()

	google := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"status":"OK","results":[{"geometry":{"location":{"lat":0,"lng":0}}}]}`))
	}))
	t.Cleanup(google.Close)

	dstk := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"status":"OK","results":[{"geometry":{"location":{"lat":0,"lng":0.0005}}}]}`))
	}))
	t.Cleanup(dstk.Close)

	nominatim := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`[]`))
	}))
	t.Cleanup(nominatim.Close)

	return []string{
		"--google-url", google.URL,
		"--dstk-url", dstk.URL,
		"--nominatim-url", nominatim.URL + "/search",
	}
}

func execute(t *testing.T, args ...string) (string, string, error) {
	t.Helper()

	var stdout, stderr bytes.Buffer
	if args == nil {
		args = []string{}
	}

	cmd := NewRootCmd()
	cmd.SetArgs(args)
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)

	err := cmd.ExecuteContext(t.Context())
	return stdout.String(), stderr.String(), err
}

func TestRootCmd_PassFail(t *testing.T) {
	defer filet.CleanUp(t)
	input := filet.TmpFile(t, "", "addr one\naddr two\n")

	args := append([]string{"--input", input.Name()}, stubServers(t)...)
	stdout, stderr, err := execute(t, args...)

	require.NoError(t, err)
	assert.Equal(t, "dstk,google,nominatim,address\nY,Y,N,addr one\nY,Y,N,addr two\n", stdout)
	assert.Empty(t, stderr, "diagnostics must stay silent without --verbose")
}

func TestRootCmd_ThresholdFlag(t *testing.T) {
	defer filet.CleanUp(t)
	input := filet.TmpFile(t, "", "addr one\n")

	args := append([]string{"-i", input.Name(), "-d", "50"}, stubServers(t)...)
	stdout, _, err := execute(t, args...)

	require.NoError(t, err)
	assert.Equal(t, "dstk,google,nominatim,address\nN,Y,N,addr one\n", stdout)
}

func TestRootCmd_ShowDistances(t *testing.T) {
	defer filet.CleanUp(t)
	input := filet.TmpFile(t, "", "addr one\n")

	// --showdistances wins over --showlocations.
	args := append([]string{"-i", input.Name(), "-s", "-l"}, stubServers(t)...)
	stdout, _, err := execute(t, args...)

	require.NoError(t, err)
	lines := strings.Split(strings.TrimSuffix(stdout, "\n"), "\n")
	require.Len(t, lines, 2)

	cells := strings.Split(lines[1], ",")
	require.Len(t, cells, 4)
	assert.True(t, strings.HasPrefix(cells[0], "55."), "dstk distance was %q", cells[0])
	assert.Equal(t, []string{"0", "NA", "addr one"}, cells[1:])
}

func TestRootCmd_ShowLocations(t *testing.T) {
	defer filet.CleanUp(t)
	input := filet.TmpFile(t, "", "addr, with comma\n")

	args := append([]string{"-i", input.Name(), "--showlocations"}, stubServers(t)...)
	stdout, _, err := execute(t, args...)

	require.NoError(t, err)
	assert.Equal(t, "dstk,google,nominatim,address\n\"0,0.0005\",\"0,0\",NA,addr, with comma\n", stdout)
}

func TestRootCmd_Verbose(t *testing.T) {
	defer filet.CleanUp(t)
	input := filet.TmpFile(t, "", "addr one\n")

	args := append([]string{"-i", input.Name(), "-v"}, stubServers(t)...)
	_, stderr, err := execute(t, args...)

	require.NoError(t, err)
	assert.Contains(t, stderr, "nominatim")
	assert.Contains(t, stderr, "/search?format=json")
}

func TestRootCmd_MetricsFile(t *testing.T) {
	defer filet.CleanUp(t)
	input := filet.TmpFile(t, "", "addr one\naddr two\n")
	metricsPath := filepath.Join(t.TempDir(), "geocmp.prom")

	args := append([]string{"-i", input.Name(), "--metrics-file", metricsPath}, stubServers(t)...)
	_, _, err := execute(t, args...)
	require.NoError(t, err)

	data, err := os.ReadFile(metricsPath)
	require.NoError(t, err)
	assert.Contains(t, string(data), "geocmp_addresses_processed_total 2")
	assert.Contains(t, string(data), `geocmp_comparisons_total{provider="nominatim",result="fail"} 2`)
}

func TestRootCmd_Markdown(t *testing.T) {
	defer filet.CleanUp(t)
	input := filet.TmpFile(t, "", "addr one\n")

	args := append([]string{"-i", input.Name(), "--format", "markdown"}, stubServers(t)...)
	stdout, _, err := execute(t, args...)

	require.NoError(t, err)
	assert.Contains(t, stdout, "addr one")
	assert.Contains(t, stdout, "|")
}

func TestRootCmd_EmptyInput(t *testing.T) {
	defer filet.CleanUp(t)
	input := filet.TmpFile(t, "", "")

	args := append([]string{"-i", input.Name()}, stubServers(t)...)
	stdout, _, err := execute(t, args...)

	require.NoError(t, err)
	assert.Empty(t, stdout)
}

func TestRootCmd_Errors(t *testing.T) {
	t.Run("missing input prints usage", func(t *testing.T) {
		t.Setenv("GEOCMP_INPUT", "")

		stdout, stderr, err := execute(t)

		require.ErrorIs(t, err, config.ErrMissingInput)
		assert.Contains(t, stdout+stderr, "Usage:")
	})

	t.Run("unreadable input file", func(t *testing.T) {
		_, _, err := execute(t, "-i", filepath.Join(t.TempDir(), "missing.txt"))

		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to open input file")
	})

	t.Run("unknown format", func(t *testing.T) {
		defer filet.CleanUp(t)
		input := filet.TmpFile(t, "", "addr one\n")

		_, _, err := execute(t, "-i", input.Name(), "--format", "xml")

		require.Error(t, err)
	})
}

func TestSetupLogger(t *testing.T) {
	var buf bytes.Buffer

	setupLogger(&buf, false, logFormatText).Warn("hidden")
	assert.Empty(t, buf.String())

	setupLogger(&buf, true, logFormatJSON).Debug("shown", "provider", "dstk")
	assert.Contains(t, buf.String(), `"msg":"shown"`)
	assert.Contains(t, buf.String(), `"provider":"dstk"`)
}
