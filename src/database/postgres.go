package database

import (
	"context"
	"fmt"

	"cryptodash/src/config"
	aws_handler "cryptodash/src/utils/aws"

	"github.com/jackc/pgx/v5/pgxpool"
)

// SetupDB opens a pgx connection pool against the configured postgres
// instance. When password_secret_id is set the password is resolved through
// AWS Secrets Manager first.
func SetupDB(cfg *config.Config) (*pgxpool.Pool, error) {
	sqlCfg := cfg.Databases.SQL

	password := sqlCfg.Password
	if sqlCfg.PasswordSecretID != "" {
		awsHandler, err := aws_handler.NewAWSHandler(sqlCfg.AWSRegion)
		if err != nil {
			return nil, fmt.Errorf("failed to init AWS handler: %w", err)
		}
		password, err = awsHandler.SecretManager.GetSecretValue(sqlCfg.PasswordSecretID)
		if err != nil {
			return nil, fmt.Errorf("failed to resolve db password secret: %w", err)
		}
	}

	dsn := sqlCfg.ConnectionString
	if dsn == "" {
		dsn = fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=disable",
			sqlCfg.Host,
			sqlCfg.Username,
			password,
			sqlCfg.Database,
			sqlCfg.Port)
	}

	poolCfg, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, err
	}

	poolCfg.MaxConns = 10
	poolCfg.MinConns = 1

	pool, err := pgxpool.NewWithConfig(context.Background(), poolCfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create connection pool: %v", err)
	}

	if err := pool.Ping(context.Background()); err != nil {
		return nil, fmt.Errorf("failed to ping database: %v", err)
	}
	return pool, nil
}
