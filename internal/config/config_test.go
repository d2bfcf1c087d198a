package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// clearEnv прячет переменные окружения машины, на которой идут тесты.
func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range append(keys, "TABLE_NAME", "DYNAMODB_TBL_NAME", "CONFIG") {
		t.Setenv(key, "")
	}
}

func TestNewConfig_Defaults(t *testing.T) {
	clearEnv(t)

	cfg, err := NewConfig(nil)
	require.NoError(t, err)

	assert.Equal(t, "localhost:8080", cfg.ServerAddress)
	assert.Equal(t, "links", cfg.TableName)
	assert.Equal(t, BackendMemory, cfg.StorageBackend)
	assert.Empty(t, cfg.GRPCAddress)
	assert.False(t, cfg.EnableHTTPS)
}

func TestNewConfig_EnvAndFlags(t *testing.T) {
	clearEnv(t)
	t.Setenv("SERVER_ADDRESS", ":9000")
	t.Setenv("ENV_NAME", "Dev")
	t.Setenv("GRPC_ADDRESS", ":9001")

	cfg, err := NewConfig([]string{"-a", ":7000"})
	require.NoError(t, err)

	assert.Equal(t, ":7000", cfg.ServerAddress, "флаг важнее окружения")
	assert.Equal(t, ":9001", cfg.GRPCAddress)
	assert.Equal(t, "Dev", cfg.EnvName)
}

func TestNewConfig_TableAlias(t *testing.T) {
	clearEnv(t)
	t.Setenv("DYNAMODB_TBL_NAME", "lambda-links")

	cfg, err := NewConfig(nil)
	require.NoError(t, err)
	assert.Equal(t, "lambda-links", cfg.TableName)

	cfg, err = NewConfig([]string{"--table", "from-flag"})
	require.NoError(t, err)
	assert.Equal(t, "from-flag", cfg.TableName)
}

func TestNewConfig_DetectBackend(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want string
	}{
		{"memory", nil, BackendMemory},
		{"file", []string{"-f", "links.json"}, BackendFile},
		{"badger", []string{"--badger", "/tmp/badger"}, BackendBadger},
		{"redis", []string{"--redis", "localhost:6379", "-f", "links.json"}, BackendRedis},
		{"postgres", []string{"-d", "postgres://localhost/links", "--redis", "localhost:6379"}, BackendPostgres},
		{"explicit", []string{"-s", "DynamoDB", "-d", "postgres://localhost/links"}, BackendDynamoDB},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearEnv(t)
			cfg, err := NewConfig(tt.args)
			require.NoError(t, err)
			assert.Equal(t, tt.want, cfg.StorageBackend)
		})
	}
}

func TestNewConfig_ConfigFile(t *testing.T) {
	clearEnv(t)

	path := filepath.Join(t.TempDir(), "config.json")
	data := `{"server_address": ":6000", "storage_backend": "file", "file_storage_path": "links.json"}`
	require.NoError(t, os.WriteFile(path, []byte(data), 0o600))

	t.Setenv("FILE_STORAGE_PATH", "env.json")

	cfg, err := NewConfig([]string{"-c", path})
	require.NoError(t, err)
	assert.Equal(t, ":6000", cfg.ServerAddress)
	assert.Equal(t, BackendFile, cfg.StorageBackend)
	assert.Equal(t, "env.json", cfg.FileStoragePath, "окружение важнее файла")
}

func TestNewConfig_Errors(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{"unknown backend", []string{"-s", "cassandra"}},
		{"file without path", []string{"-s", "file"}},
		{"postgres without dsn", []string{"-s", "postgres"}},
		{"redis without addr", []string{"-s", "redis"}},
		{"unknown flag", []string{"--nope"}},
		{"missing config file", []string{"-c", "/does/not/exist.json"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearEnv(t)
			_, err := NewConfig(tt.args)
			assert.Error(t, err)
		})
	}
}

func TestValidate(t *testing.T) {
	cfg := &Config{ServerAddress: ":8080", TableName: "links", StorageBackend: BackendMemory}
	require.NoError(t, cfg.Validate())

	cfg.EnableHTTPS = true
	assert.Error(t, cfg.Validate())

	cfg.TLSCertPath, cfg.TLSKeyPath = "cert.pem", "key.pem"
	assert.NoError(t, cfg.Validate())

	cfg.ServerAddress = ""
	assert.Error(t, cfg.Validate())
}
