package harness

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"dstring-go/pkg/dstring"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunAllPass(t *testing.T) {
	rep, err := Run(context.Background(), Options{})
	require.NoError(t, err)
	for _, r := range rep.Results {
		assert.True(t, r.Passed, "%s/%s: %s", r.Tier, r.Name, r.Detail)
	}
	assert.True(t, rep.OK())
	assert.Equal(t, len(Checks()), rep.Passed)
	assert.Contains(t, rep.BuildInfo, "dstring-go "+dstring.Version)
}

func TestRunUnderBudget(t *testing.T) {
	lim := dstring.Limit(nil, 1<<16)
	rep, err := Run(context.Background(), Options{Allocator: lim, Size: 1})
	require.NoError(t, err)
	assert.True(t, rep.OK())
	assert.Zero(t, lim.Used(), "checks must free what they allocate")
}

func TestRunTierFilter(t *testing.T) {
	rep, err := Run(context.Background(), Options{Tiers: []string{TierStream}})
	require.NoError(t, err)
	require.NotEmpty(t, rep.Results)
	for _, r := range rep.Results {
		assert.Equal(t, TierStream, r.Tier)
	}
}

func TestRunCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	rep, err := Run(ctx, Options{})
	assert.ErrorIs(t, err, context.Canceled)
	assert.Empty(t, rep.Results)
}

func TestFailingCheckIsReported(t *testing.T) {
	res := runCheck(Check{Tier: "x", Name: "boom", Run: func(env *Env) error {
		return env.expect("free", dstring.Free(nil), dstring.Success)
	}}, Options{Allocator: dstring.DefaultAllocator, Size: 4})
	assert.False(t, res.Passed)
	assert.Equal(t, "string uninitialized", res.Status)
	assert.Contains(t, res.Detail, "free")

	res = runCheck(Check{Tier: "x", Name: "panic", Run: func(*Env) error {
		panic("bad")
	}}, Options{})
	assert.False(t, res.Passed)
	assert.Equal(t, "panic: bad", res.Detail)
}

func TestReportRendering(t *testing.T) {
	rep, err := Run(context.Background(), Options{Tiers: []string{TierAccessors}})
	require.NoError(t, err)

	text, err := rep.Text()
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(text, "DString Library Validation\n"))
	assert.Contains(t, text, "TIER accessors\n")
	assert.Contains(t, text, "4 passed, 0 failed")

	var buf bytes.Buffer
	require.NoError(t, rep.WriteJSON(&buf))
	var decoded Report
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	assert.Equal(t, rep.Passed, decoded.Passed)
	assert.Len(t, decoded.Results, len(rep.Results))
}

func TestLoadConfigDefaults(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err, "an explicit path must exist")
	assert.Nil(t, cfg)

	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(t.TempDir()))
	defer os.Chdir(wd)
	t.Setenv("HOME", t.TempDir())

	cfg, err = LoadConfig("")
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig().DefaultSize, cfg.DefaultSize)
	assert.Equal(t, "heap", cfg.Allocator)
	d, err := cfg.DelimiterByte()
	require.NoError(t, err)
	assert.Equal(t, byte('\n'), d)
}

func TestLoadConfigFileAndEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), "dstring.yaml")
	yaml := "default_size: 64\nallocator: heap\nmax_alloc: 4096\ndelimiter: ';'\ncodec: zstd\n"
	require.NoError(t, os.WriteFile(path, []byte(yaml), 0o644))
	t.Setenv("DSTR_API_LISTEN_ADDRESS", "127.0.0.1:9999")

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, 64, cfg.DefaultSize)
	assert.Equal(t, 4096, cfg.MaxAlloc)
	assert.Equal(t, "zstd", cfg.Codec)
	assert.Equal(t, "127.0.0.1:9999", cfg.APIListenAddr)
	assert.Equal(t, path, cfg.ConfigFile)

	a, err := cfg.NewAllocator()
	require.NoError(t, err)
	lim, ok := a.(*dstring.LimitAllocator)
	require.True(t, ok, "max_alloc should wrap the allocator, got %T", a)
	assert.Zero(t, lim.Used())
}

func TestValidate(t *testing.T) {
	for name, mutate := range map[string]func(*Config){
		"size":      func(c *Config) { c.DefaultSize = 0 },
		"budget":    func(c *Config) { c.MaxAlloc = -1 },
		"delimiter": func(c *Config) { c.Delimiter = "ab" },
		"nul":       func(c *Config) { c.Delimiter = `\x00` },
		"codec":     func(c *Config) { c.Codec = "lzma" },
		"allocator": func(c *Config) { c.Allocator = "arena" },
	} {
		cfg := DefaultConfig()
		mutate(cfg)
		err := cfg.Validate()
		assert.True(t, errors.Is(err, ErrBadConfig), "%s: %v", name, err)
	}
	assert.NoError(t, DefaultConfig().Validate())
}

func TestParseDelimiter(t *testing.T) {
	for in, want := range map[string]byte{",": ',', `\t`: '\t', `\x1e`: 0x1e, `\n`: '\n'} {
		got, err := ParseDelimiter(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}
}
