package config

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/leapstack-labs/querykit/pkg/core"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newFlagSet mirrors the persistent flags registered by the root command.
func newFlagSet() *pflag.FlagSet {
	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	fs.String("type", "select", "")
	fs.String("database", "mysql", "")
	fs.Bool("format-output", true, "")
	fs.Bool("escape-identifiers", false, "")
	fs.Int("indent-size", 2, "")
	fs.String("output", "", "")
	fs.String("addr", "", "")
	return fs
}

func writeConfig(t *testing.T, dir, content string) string {
	t.Helper()
	path := filepath.Join(dir, "querykit.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadDefaults(t *testing.T) {
	t.Chdir(t.TempDir())

	cfg, err := Load("", nil)
	require.NoError(t, err)
	assert.Empty(t, GetConfigFileUsed())

	assert.Equal(t, "select", cfg.QueryType)
	assert.Equal(t, "mysql", cfg.Database)
	assert.True(t, cfg.FormatOutput)
	assert.True(t, cfg.UppercaseKeywords)
	assert.False(t, cfg.EscapeIdentifiers)
	assert.Equal(t, 2, cfg.IndentSize)
	assert.Equal(t, DefaultOutput, cfg.OutputFormat)
	assert.Equal(t, 4, cfg.Concurrency)
	assert.Equal(t, "127.0.0.1:8765", cfg.Server.Addr)

	assert.Equal(t, cfg, Default())
}

func TestLoadPrecedence(t *testing.T) {
	tests := []struct {
		name   string
		file   string
		env    map[string]string
		args   []string
		assert func(t *testing.T, cfg *Config)
	}{
		{
			name: "file overrides defaults",
			file: "database: postgresql\nindent_size: 4\nserver:\n  addr: \":9000\"\n",
			assert: func(t *testing.T, cfg *Config) {
				assert.Equal(t, "postgresql", cfg.Database)
				assert.Equal(t, 4, cfg.IndentSize)
				assert.Equal(t, ":9000", cfg.Server.Addr)
				assert.Equal(t, "select", cfg.QueryType)
			},
		},
		{
			name: "env overrides file",
			file: "database: postgresql\n",
			env: map[string]string{
				"QUERYKIT_DATABASE":    "oracle",
				"QUERYKIT_SERVER_ADDR": ":7000",
			},
			assert: func(t *testing.T, cfg *Config) {
				assert.Equal(t, "oracle", cfg.Database)
				assert.Equal(t, ":7000", cfg.Server.Addr)
			},
		},
		{
			name: "flags override env",
			file: "database: postgresql\nescape_identifiers: false\n",
			env:  map[string]string{"QUERYKIT_DATABASE": "oracle"},
			args: []string{"--database", "mssql", "--escape-identifiers", "--type", "delete", "--addr", ":6000"},
			assert: func(t *testing.T, cfg *Config) {
				assert.Equal(t, "mssql", cfg.Database)
				assert.True(t, cfg.EscapeIdentifiers)
				assert.Equal(t, "delete", cfg.QueryType)
				assert.Equal(t, ":6000", cfg.Server.Addr)
			},
		},
		{
			name: "unchanged flags do not override file",
			file: "database: sqlite\nformat_output: false\n",
			args: []string{"--indent-size", "8"},
			assert: func(t *testing.T, cfg *Config) {
				assert.Equal(t, "sqlite", cfg.Database)
				assert.False(t, cfg.FormatOutput)
				assert.Equal(t, 8, cfg.IndentSize)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			t.Chdir(dir)
			path := writeConfig(t, dir, tt.file)
			for k, v := range tt.env {
				t.Setenv(k, v)
			}

			fs := newFlagSet()
			require.NoError(t, fs.Parse(tt.args))

			cfg, err := Load("", fs)
			require.NoError(t, err)
			assert.Equal(t, path, GetConfigFileUsed())
			tt.assert(t, cfg)
		})
	}
}

func TestLoadExplicitFile(t *testing.T) {
	t.Chdir(t.TempDir())
	path := writeConfig(t, t.TempDir(), "query_type: update\n")

	cfg, err := Load(path, nil)
	require.NoError(t, err)
	assert.Equal(t, "update", cfg.QueryType)
	assert.Equal(t, path, GetConfigFileUsed())
}

func TestLoadErrors(t *testing.T) {
	t.Chdir(t.TempDir())

	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"), nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "error reading config file")

	bad := writeConfig(t, t.TempDir(), "database: [unterminated\n")
	_, err = Load(bad, nil)
	require.Error(t, err)
}

func TestConfigQuery(t *testing.T) {
	cfg := Default()
	cfg.QueryType = "INSERT"
	cfg.Database = "PostgreSQL"

	q, err := cfg.Query()
	require.NoError(t, err)
	assert.Equal(t, core.QueryInsert, q.QueryType)
	assert.Equal(t, core.DatabasePostgreSQL, q.Database)
	assert.True(t, q.FormatOutput)

	cfg.Database = "db2"
	_, err = cfg.Query()
	require.ErrorIs(t, err, core.ErrUnknownDatabase)

	cfg.Database = "mysql"
	cfg.QueryType = "merge"
	_, err = cfg.Query()
	require.ErrorIs(t, err, core.ErrUnsupportedQueryType)

	cfg.QueryType = "select"
	cfg.IndentSize = 0
	_, err = cfg.Query()
	require.ErrorIs(t, err, core.ErrInvalidIndentSize)
}

func TestContextAccessors(t *testing.T) {
	ctx := context.Background()
	assert.NotNil(t, GetLogger(ctx))
	assert.Equal(t, Default(), GetConfig(ctx))

	cfg := Default()
	cfg.Database = "oracle"
	ctx = context.WithValue(ctx, ConfigKey(), cfg)
	assert.Same(t, cfg, GetConfig(ctx))

	logger := NewLogger(os.Stderr, true)
	ctx = context.WithValue(ctx, LoggerKey(), logger)
	assert.Same(t, logger, GetLogger(ctx))
}

func TestFlagKey(t *testing.T) {
	tests := []struct {
		flag string
		want string
	}{
		{"type", "query_type"},
		{"addr", "server.addr"},
		{"indent-size", "indent_size"},
		{"escape-identifiers", "escape_identifiers"},
		{"database", "database"},
	}

	for _, tt := range tests {
		t.Run(tt.flag, func(t *testing.T) {
			assert.Equal(t, tt.want, FlagKey(tt.flag))
		})
	}
}
