package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/oxygene76/tessobs/internal/types"
	"github.com/oxygene76/tessobs/pkg/resolver"
	"github.com/oxygene76/tessobs/pkg/utils"
)

type fakeResolver struct {
	res    *types.Resolution
	err    error
	called int
	name   string
}

func (f *fakeResolver) Resolve(_ context.Context, name string) (*types.Resolution, error) {
	f.called++
	f.name = name
	return f.res, f.err
}

func (f *fakeResolver) factory(utils.ResolverConfig, zerolog.Logger) resolver.Resolver {
	return f
}

func isolate(t *testing.T) {
	t.Helper()
	t.Setenv("HOME", t.TempDir())
	t.Chdir(t.TempDir())
}

func run(t *testing.T, f *fakeResolver, args ...string) (code int, stdout, stderr string) {
	t.Helper()
	var out, errOut bytes.Buffer
	code = execute(context.Background(), append([]string{"--no-color"}, args...), &out, &errOut, f.factory)
	return code, out.String(), errOut.String()
}

func TestEclipticTargetNotObserved(t *testing.T) {
	isolate(t)
	f := &fakeResolver{res: &types.Resolution{MainID: "NAME Equinox", RA: "00 00 00", Dec: "+00 00 00"}}

	code, stdout, _ := run(t, f, "equinox")
	assert.Equal(t, 0, code)
	assert.Equal(t, "\nResolved name as NAME Equinox\n\nEcliptic target not observed by TESS\n\n", stdout)
}

func TestSouthernTarget(t *testing.T) {
	isolate(t)
	// RA 6h on the equator: ecliptic longitude 90, latitude -23.4
	f := &fakeResolver{res: &types.Resolution{MainID: "TEST 1", RA: "06 00 00", Dec: "+00 00 00"}}

	code, stdout, _ := run(t, f, "TEST", "1")
	require.Equal(t, 0, code)
	assert.Equal(t, "TEST 1", f.name)

	assert.Contains(t, stdout, "Resolved name as TEST 1\n")
	assert.Contains(t, stdout, "antisolar date   = 2018-12-21 22:00\n")
	assert.Contains(t, stdout, "earliest date    = 2018-11-23 22:00\n")
	assert.Contains(t, stdout, "latest date      = 2019-01-18 22:00\n")
	assert.NotContains(t, stdout, "multiple sectors")
}

func TestMultiSectorAdvisoryAndClamp(t *testing.T) {
	isolate(t)
	code, stdout, _ := run(t, &fakeResolver{}, "--ecliptic", "270,-40", "field")
	require.Equal(t, 0, code)

	assert.NotContains(t, stdout, "Resolved name as")
	assert.Contains(t, stdout, "earliest date    = 2018-06-18 00:00\n")
	assert.Contains(t, stdout, "This object might be observed in multiple sectors\nIt has eclat -40. The dates here are lower limits.\n")
}

func TestEclipticFlagSkipsResolver(t *testing.T) {
	isolate(t)
	f := &fakeResolver{err: types.ErrTargetNotFound}
	code, stdout, _ := run(t, f, "--ecliptic", "90,-20")
	assert.Equal(t, 0, code)
	assert.Zero(t, f.called)
	assert.Contains(t, stdout, "antisolar date   = 2018-12-21 22:00\n")
}

func TestEclipticFlagNeedsTwoValues(t *testing.T) {
	isolate(t)
	code, stdout, stderr := run(t, &fakeResolver{}, "--ecliptic", "90")
	assert.Equal(t, 1, code)
	assert.Empty(t, stdout)
	assert.Contains(t, stderr, "lon,lat")
}

func TestUnresolvableName(t *testing.T) {
	isolate(t)
	f := &fakeResolver{err: types.ErrTargetNotFound}

	code, stdout, stderr := run(t, f, "no", "such", "star")
	assert.Equal(t, 1, code)
	assert.Equal(t, "no such star", f.name)
	assert.Empty(t, stdout)
	assert.Contains(t, stderr, "Target name failed to resolve, please check")
}

func TestResolverUnavailable(t *testing.T) {
	isolate(t)
	f := &fakeResolver{err: types.ErrResolverUnavailable}

	code, stdout, stderr := run(t, f, "M31")
	assert.Equal(t, 1, code)
	assert.Empty(t, stdout)
	assert.Contains(t, stderr, types.Codespace)
}

func TestMalformedResolverCoordinates(t *testing.T) {
	isolate(t)
	f := &fakeResolver{res: &types.Resolution{MainID: "odd", RA: "??", Dec: "+00"}}
	code, stdout, _ := run(t, f, "odd")
	assert.Equal(t, 1, code)
	assert.Empty(t, stdout)
}

func TestMissingName(t *testing.T) {
	isolate(t)
	f := &fakeResolver{}
	code, _, _ := run(t, f)
	assert.Equal(t, 1, code)
	assert.Zero(t, f.called)
}

func TestDumpConfig(t *testing.T) {
	isolate(t)
	code, stdout, _ := run(t, &fakeResolver{}, "--dump-config")
	require.Equal(t, 0, code)

	var decoded utils.Config
	require.NoError(t, yaml.Unmarshal([]byte(stdout), &decoded))
	assert.Equal(t, utils.DefaultResolverEndpoint, decoded.Resolver.Endpoint)
	assert.Equal(t, utils.DefaultMissionStartJD, decoded.Mission.MissionStartJD)
}

func TestConfigFileChangesMission(t *testing.T) {
	isolate(t)
	path := filepath.Join(t.TempDir(), "tessobs.yaml")
	require.NoError(t, os.WriteFile(path, []byte("mission:\n  hemisphere_latitude_deg: 30\n"), 0o644))

	code, stdout, _ := run(t, &fakeResolver{}, "--config", path, "--ecliptic", "90,-20")
	require.Equal(t, 0, code)
	assert.Contains(t, stdout, "Ecliptic target not observed by TESS")
}

func TestInvalidConfigFails(t *testing.T) {
	isolate(t)
	path := filepath.Join(t.TempDir(), "tessobs.yaml")
	require.NoError(t, os.WriteFile(path, []byte("resolver:\n  endpoint: \"\"\n"), 0o644))

	code, stdout, stderr := run(t, &fakeResolver{}, "--config", path, "M31")
	assert.Equal(t, 1, code)
	assert.Empty(t, stdout)
	assert.Contains(t, stderr, "invalid configuration")
}

func TestVerboseLogsCoordinates(t *testing.T) {
	isolate(t)
	f := &fakeResolver{res: &types.Resolution{MainID: "M  31", RA: "00 42 44.330", Dec: "+41 16 07.50"}}
	code, stdout, stderr := run(t, f, "-v", "M31")
	require.Equal(t, 0, code)
	assert.Contains(t, stderr, "target coordinates")
	assert.Contains(t, stdout, "It has eclat 33.35.")
}

func TestColorOutput(t *testing.T) {
	var buf bytes.Buffer
	newPrinter(&buf, true).report(&types.Report{})
	assert.True(t, strings.Contains(buf.String(), "\x1b["), "expected ANSI escapes in %q", buf.String())

	buf.Reset()
	newPrinter(&buf, false).report(&types.Report{})
	assert.NotContains(t, buf.String(), "\x1b[")
}
