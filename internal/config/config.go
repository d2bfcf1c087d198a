package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// Поддерживаемые хранилища ссылок.
const (
	BackendMemory   = "memory"
	BackendFile     = "file"
	BackendBadger   = "badger"
	BackendPostgres = "postgres"
	BackendRedis    = "redis"
	BackendDynamoDB = "dynamodb"
)

// Config хранит конфигурацию сервера
type Config struct {
	ServerAddress    string `mapstructure:"SERVER_ADDRESS"`
	GRPCAddress      string `mapstructure:"GRPC_ADDRESS"`
	EnvName          string `mapstructure:"ENV_NAME"`
	StorageBackend   string `mapstructure:"STORAGE_BACKEND"`
	TableName        string `mapstructure:"TABLE_NAME"`
	FileStoragePath  string `mapstructure:"FILE_STORAGE_PATH"`
	BadgerPath       string `mapstructure:"BADGER_PATH"`
	DatabaseDSN      string `mapstructure:"DATABASE_DSN"`
	RedisAddr        string `mapstructure:"REDIS_ADDR"`
	RedisPassword    string `mapstructure:"REDIS_PASSWORD"`
	AWSRegion        string `mapstructure:"AWS_REGION"`
	DynamoDBEndpoint string `mapstructure:"DYNAMODB_ENDPOINT"`
	EnableHTTPS      bool   `mapstructure:"ENABLE_HTTPS"`
	TLSCertPath      string `mapstructure:"TLS_CERT_PATH"`
	TLSKeyPath       string `mapstructure:"TLS_KEY_PATH"`
}

// keys перечисляет все ключи, которые читаются из окружения.
var keys = []string{
	"SERVER_ADDRESS", "GRPC_ADDRESS", "ENV_NAME", "STORAGE_BACKEND",
	"FILE_STORAGE_PATH", "BADGER_PATH", "DATABASE_DSN", "REDIS_ADDR", "REDIS_PASSWORD",
	"AWS_REGION", "DYNAMODB_ENDPOINT", "ENABLE_HTTPS", "TLS_CERT_PATH", "TLS_KEY_PATH",
}

// NewConfig собирает конфигурацию из аргументов командной строки, переменных
// окружения и файла конфигурации (-c/--config или CONFIG).
// Приоритет: флаг, затем окружение, затем файл, затем значение по умолчанию.
func NewConfig(args []string) (*Config, error) {
	v := viper.New()

	v.SetDefault("SERVER_ADDRESS", "localhost:8080") // Значения по умолчанию
	v.SetDefault("TABLE_NAME", "links")
	v.SetDefault("TLS_CERT_PATH", "cert.pem")
	v.SetDefault("TLS_KEY_PATH", "key.pem")

	for _, key := range keys {
		if err := v.BindEnv(key); err != nil {
			return nil, fmt.Errorf("bind env %s: %w", key, err)
		}
	}
	// Имя таблицы из окружения Lambda.
	if err := v.BindEnv("TABLE_NAME", "TABLE_NAME", "DYNAMODB_TBL_NAME"); err != nil {
		return nil, fmt.Errorf("bind env TABLE_NAME: %w", err)
	}
	if err := v.BindEnv("CONFIG"); err != nil {
		return nil, fmt.Errorf("bind env CONFIG: %w", err)
	}

	fs := pflag.NewFlagSet("shortener", pflag.ContinueOnError)
	fs.StringP("address", "a", "", "HTTP server address")
	fs.StringP("grpc-address", "g", "", "gRPC server address, empty disables gRPC")
	fs.StringP("env", "e", "", "environment name (Prod, Dev, Test)")
	fs.StringP("storage", "s", "", "storage backend: memory, file, badger, postgres, redis, dynamodb")
	fs.StringP("table", "t", "", "table name")
	fs.StringP("file", "f", "", "file storage path (JSON lines)")
	fs.StringP("dsn", "d", "", "PostgreSQL DSN")
	fs.String("badger", "", "badger directory")
	fs.String("redis", "", "redis address")
	fs.Bool("https", false, "enable HTTPS")
	fs.String("cert", "", "path to TLS certificate")
	fs.String("key", "", "path to TLS key")
	fs.StringP("config", "c", "", "path to config file")

	if err := fs.Parse(args); err != nil {
		return nil, fmt.Errorf("parse flags: %w", err)
	}

	// Флаг перекрывает окружение, только если его явно передали.
	flagKeys := map[string]string{
		"address": "SERVER_ADDRESS", "grpc-address": "GRPC_ADDRESS", "env": "ENV_NAME",
		"storage": "STORAGE_BACKEND", "table": "TABLE_NAME", "file": "FILE_STORAGE_PATH",
		"dsn": "DATABASE_DSN", "badger": "BADGER_PATH", "redis": "REDIS_ADDR",
		"https": "ENABLE_HTTPS", "cert": "TLS_CERT_PATH", "key": "TLS_KEY_PATH",
		"config": "CONFIG",
	}
	for name, key := range flagKeys {
		if err := v.BindPFlag(key, fs.Lookup(name)); err != nil {
			return nil, fmt.Errorf("bind flag %s: %w", name, err)
		}
	}

	if path := v.GetString("CONFIG"); path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config file %q: %w", path, err)
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}

	cfg.StorageBackend = strings.ToLower(cfg.StorageBackend)
	if cfg.StorageBackend == "" {
		cfg.StorageBackend = cfg.detectBackend()
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// detectBackend выбирает хранилище по заданным параметрам подключения.
// DynamoDB выбирается только явно.
func (cfg *Config) detectBackend() string {
	switch {
	case cfg.DatabaseDSN != "":
		return BackendPostgres
	case cfg.RedisAddr != "":
		return BackendRedis
	case cfg.BadgerPath != "":
		return BackendBadger
	case cfg.FileStoragePath != "":
		return BackendFile
	default:
		return BackendMemory
	}
}

// Validate проверяет корректность конфигурации
func (cfg *Config) Validate() error {
	if cfg.ServerAddress == "" {
		return errors.New("адрес сервера не может быть пустым")
	}
	if cfg.TableName == "" {
		return errors.New("имя таблицы не может быть пустым")
	}

	switch cfg.StorageBackend {
	case BackendMemory, BackendBadger:
	case BackendFile:
		if cfg.FileStoragePath == "" {
			return errors.New("путь к файлу хранилища не может быть пустым")
		}
	case BackendPostgres:
		if cfg.DatabaseDSN == "" {
			return errors.New("адрес подключения к БД не может быть пустым")
		}
	case BackendRedis:
		if cfg.RedisAddr == "" {
			return errors.New("адрес redis не может быть пустым")
		}
	case BackendDynamoDB:
	default:
		return fmt.Errorf("неизвестное хранилище %q", cfg.StorageBackend)
	}

	if cfg.EnableHTTPS && (cfg.TLSCertPath == "" || cfg.TLSKeyPath == "") {
		return errors.New("для HTTPS нужны сертификат и ключ")
	}
	return nil
}
