package main

import (
	"context"
	"fmt"
	"os"

	"github.com/minio/minio-go/v7"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"gorm.io/gorm"

	_ "catalog-service/docs"
	"catalog-service/internal/config"
	"catalog-service/internal/logging"
	"catalog-service/internal/storage"
)

var envFile string

var rootCmd = &cobra.Command{
	Use:   "catalog-service",
	Short: "Model catalog with SEO links and QR codes for the AR viewer",
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		config.LoadEnvFile(envFile)
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&envFile, "env-file", "", "Path to a .env file (default \".env\")")
	rootCmd.AddCommand(newServeCmd(), newMigrateCmd(), newBackfillCmd())
}

func main() {
	rootCmd.SilenceErrors = true
	rootCmd.SilenceUsage = true
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func InitConfig() *config.Config {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("config error")
	}
	logging.Init(cfg.LogLevel, cfg.LogPretty)
	return cfg
}

func ConnectDatabase(cfg *config.Config) *gorm.DB {
	db, err := config.ConnectDatabase(cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("database connection failed")
	}
	return db
}

func InitMinIOClient(ctx context.Context, cfg *config.Config) *minio.Client {
	if err := cfg.RequireMinio(); err != nil {
		log.Fatal().Err(err).Msg("config error")
	}
	minioClient, err := storage.NewMinioClient(ctx, cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("minio client initialization failed")
	}
	return minioClient
}

// InitRedisClient returns nil when redis is not configured or unreachable;
// the QR cache then runs on memory alone.
func InitRedisClient(ctx context.Context, cfg *config.Config) *storage.RedisClient {
	if !cfg.RedisEnabled() {
		return nil
	}
	client, err := storage.NewRedisClient(ctx, cfg.RedisHost, cfg.RedisPort)
	if err != nil {
		log.Warn().Err(err).Msg("redis unavailable, qr cache limited to memory")
		return nil
	}
	return client
}
