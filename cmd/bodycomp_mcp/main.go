// Package main runs the bodycomp MCP server over stdio, for local MCP clients.
// The same server is mounted on the HTTP service at /mcp.
package main

import (
	"context"
	"flag"
	"net"
	"os"

	"github.com/2beens/bodycomp/internal/assessments"
	assessmentsmcp "github.com/2beens/bodycomp/internal/assessments/mcp"
	"github.com/2beens/bodycomp/internal/config"
	"github.com/2beens/bodycomp/internal/db"
	"github.com/2beens/bodycomp/internal/telemetry/metrics"

	"github.com/go-redis/redis/v8"
	"github.com/joho/godotenv"
	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/prometheus/client_golang/prometheus"
	log "github.com/sirupsen/logrus"
)

func main() {
	env := flag.String("env", "development", "environment [prod | production | dev | development | ddev | dockerdev]")
	configPath := flag.String("config", "./config.toml", "path to TOML config file")
	flag.Parse()

	// stdout is the MCP transport
	log.SetOutput(os.Stderr)

	if err := godotenv.Load(); err != nil {
		log.Debugf("no .env file loaded: %s", err)
	}

	cfg, err := config.Load(*env, *configPath)
	if err != nil {
		log.Fatalf("load config: %s", err)
	}

	ctx := context.Background()
	dbPool, err := db.NewMigratedDBPool(ctx, db.NewDBPoolParams{
		DBHost:         cfg.PostgresHost,
		DBPort:         cfg.PostgresPort,
		DBName:         cfg.PostgresDBName,
		DBPassword:     os.Getenv("POSTGRES_PASSWORD"),
		TracingEnabled: false,
	})
	if err != nil {
		log.Fatalf("db pool: %s", err)
	}
	defer dbPool.Close()

	// the HTTP service invalidates progress in redis, so share it when possible
	rdb := redis.NewClient(&redis.Options{
		Addr:     net.JoinHostPort(cfg.RedisHost, cfg.RedisPort),
		Password: os.Getenv("REDIS_PASS"),
		DB:       0,
	})
	defer func() {
		if err := rdb.Close(); err != nil {
			log.Errorf("close redis client: %s", err)
		}
	}()

	service := assessments.NewService(
		assessments.NewRepo(dbPool),
		assessments.NewSharedProgressCache(ctx, rdb, cfg.ProgressCacheTTL(), cfg.LocalCacheSizeMB),
		metrics.NewManager("mcp", "bodycomp", prometheus.NewRegistry()),
	)
	server := assessmentsmcp.NewServer(dbPool, service)

	if err := server.Run(ctx, &mcp.StdioTransport{}); err != nil {
		log.Errorf("mcp server: %s", err)
	}
}
