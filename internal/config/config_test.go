package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseOptLevel(t *testing.T) {
	tests := []struct {
		in   string
		want OptLevel
	}{
		{"0", OptNone}, {"none", OptNone},
		{"1", OptDefault}, {"2", OptDefault}, {"default", OptDefault},
		{"3", OptAggressive}, {"aggressive", OptAggressive},
	}
	for _, tt := range tests {
		got, err := ParseOptLevel(tt.in)
		require.NoError(t, err)
		assert.Equal(t, tt.want, got)
	}

	_, err := ParseOptLevel("bogus")
	assert.Error(t, err)
}

func TestLoadRequiresTarget(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "zircoc.yaml")
	require.NoError(t, os.WriteFile(path, []byte("opt_level: aggressive\n"), 0o644))

	_, err := Load(path)
	assert.ErrorContains(t, err, "target")
}

func TestLoadDefaultsOptLevel(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "zircoc.yaml")
	require.NoError(t, os.WriteFile(path, []byte("target: x86_64-unknown-linux-gnu\n"), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, OptDefault, cfg.OptLevel)
}

func TestWarnsAsError(t *testing.T) {
	cfg := Default()
	cfg.WarnAsError = []string{"TY001"}
	assert.True(t, cfg.WarnsAsError("TY001"))
	assert.False(t, cfg.WarnsAsError("TY002"))
}
