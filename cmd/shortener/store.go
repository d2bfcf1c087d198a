package main

import (
	"context"
	"fmt"

	"github.com/Totarae/shortlinks/internal/config"
	"github.com/Totarae/shortlinks/internal/database"
	"github.com/Totarae/shortlinks/internal/repositories"
	"github.com/Totarae/shortlinks/internal/service"
	"github.com/Totarae/shortlinks/internal/storage"
	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// openStore создаёт хранилище выбранного типа. Возвращаемая функция
// освобождает его ресурсы и всегда не nil при успехе.
func openStore(ctx context.Context, cfg *config.Config, logger *zap.Logger) (service.LinkStore, func(), error) {
	noop := func() {}

	switch cfg.StorageBackend {
	case config.BackendMemory:
		store, err := storage.NewMemoryStore("", logger)
		if err != nil {
			return nil, nil, err
		}
		return store, noop, nil

	case config.BackendFile:
		store, err := storage.NewMemoryStore(cfg.FileStoragePath, logger)
		if err != nil {
			return nil, nil, err
		}
		return store, noop, nil

	case config.BackendBadger:
		store, err := storage.NewBadgerStore(cfg.BadgerPath, cfg.TableName, logger)
		if err != nil {
			return nil, nil, err
		}
		return store, func() {
			if err := store.Close(); err != nil {
				logger.Error("Ошибка закрытия badger", zap.Error(err))
			}
		}, nil

	case config.BackendPostgres:
		if err := database.Migrate(cfg.DatabaseDSN, logger); err != nil {
			return nil, nil, err
		}
		db, err := database.NewDB(ctx, cfg.DatabaseDSN, logger)
		if err != nil {
			return nil, nil, err
		}
		return repositories.NewLinkRepository(db.Pool), db.Close, nil

	case config.BackendRedis:
		client := redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
		})
		store := storage.NewRedisStore(client, cfg.TableName, logger)
		if err := store.Ping(ctx); err != nil {
			_ = client.Close()
			return nil, nil, fmt.Errorf("ping redis: %w", err)
		}
		return store, func() { _ = client.Close() }, nil

	case config.BackendDynamoDB:
		var opts []func(*awsconfig.LoadOptions) error
		if cfg.AWSRegion != "" {
			opts = append(opts, awsconfig.WithRegion(cfg.AWSRegion))
		}
		awsCfg, err := awsconfig.LoadDefaultConfig(ctx, opts...)
		if err != nil {
			return nil, nil, fmt.Errorf("load aws config: %w", err)
		}
		client := dynamodb.NewFromConfig(awsCfg, func(o *dynamodb.Options) {
			if cfg.DynamoDBEndpoint != "" {
				o.BaseEndpoint = aws.String(cfg.DynamoDBEndpoint)
			}
		})
		return storage.NewDynamoStore(client, cfg.TableName, logger), noop, nil
	}

	return nil, nil, fmt.Errorf("unknown storage backend %q", cfg.StorageBackend)
}
