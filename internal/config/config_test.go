package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	cfg := Default()
	assert.True(t, cfg.Parser.Recover)
	assert.False(t, cfg.Sema.WarnConstAssign)
	assert.True(t, cfg.Optimize.Fold)
	assert.True(t, cfg.Optimize.Simplify)
	assert.True(t, cfg.Optimize.DCE)
	assert.False(t, cfg.Optimize.Verify)
	assert.False(t, cfg.Diagnostics.Color)
	require.NoError(t, cfg.Validate())
}

func TestParse(t *testing.T) {
	cfg, err := Parse([]byte(`
parser:
  recover: false
sema:
  warnConstAssign: true
optimize:
  dce: false
  verify: true
  dumpAfter: fold
  dumpFunc: main
diagnostics:
  color: true
`))
	require.NoError(t, err)
	assert.False(t, cfg.Parser.Recover)
	assert.True(t, cfg.Sema.WarnConstAssign)
	assert.True(t, cfg.Optimize.Fold, "unset keys keep their defaults")
	assert.False(t, cfg.Optimize.DCE)
	assert.True(t, cfg.Optimize.Verify)
	assert.Equal(t, "fold", cfg.Optimize.DumpAfter)
	assert.Equal(t, "main", cfg.Optimize.DumpFunc)
	assert.True(t, cfg.Diagnostics.Color)
}

func TestParseEmpty(t *testing.T) {
	cfg, err := Parse(nil)
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name string
		yaml string
		want string
	}{
		{"unknown_key", "parser:\n  recovery: true\n", "decoding YAML"},
		{"bad_type", "optimize:\n  fold: maybe\n", "decoding YAML"},
		{"unknown_pass", "optimize:\n  dumpBefore: inline\n", `unknown pass "inline"`},
		{"dumpfunc_alone", "optimize:\n  dumpFunc: main\n", "dumpFunc requires"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.yaml))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "custom.yaml")
	require.NoError(t, os.WriteFile(path, []byte("sema:\n  warnConstAssign: true\n"), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.True(t, cfg.Sema.WarnConstAssign)

	_, err = Load(filepath.Join(dir, "missing.yaml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "reading config")

	require.NoError(t, os.WriteFile(path, []byte("optimize: [1, 2]\n"), 0o644))
	_, err = Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "loading "+path)
}

func TestLoadDefaultFile(t *testing.T) {
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(t.TempDir()))
	t.Cleanup(func() { _ = os.Chdir(wd) })

	cfg, err := Load("")
	require.NoError(t, err, "a missing nexus.yaml is fine")
	assert.Equal(t, Default(), cfg)

	require.NoError(t, os.WriteFile(DefaultFile, []byte("diagnostics:\n  color: true\n"), 0o644))
	cfg, err = Load("")
	require.NoError(t, err)
	assert.True(t, cfg.Diagnostics.Color)
}
