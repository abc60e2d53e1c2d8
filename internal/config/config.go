package config

import (
	"path"
	"time"

	"github.com/mylittlegrimoire/server/internal/env"

	"go.uber.org/zap"
)

const (
	PortEnv        = "PORT"
	DatabaseUrlEnv = "DATABASE_URL"
	RootPathEnv    = "ROOT_PATH"

	JoinRadiusMetersEnv = "JOIN_RADIUS_METERS"
	JoinCodeLengthEnv   = "JOIN_CODE_LENGTH"
	SessionTTLEnv       = "SESSION_TTL"

	IdentifierUrlEnv         = "IDENTIFIER_URL"
	IdentifierTimeoutEnv     = "IDENTIFIER_TIMEOUT"
	IdentifyDebugFallbackEnv = "IDENTIFY_DEBUG_FALLBACK"
	IdentifyFallbackColorEnv = "IDENTIFY_FALLBACK_COLOR"
)

type IdentifierConfiguration struct {
	URL     string
	Timeout time.Duration

	// DebugFallback makes identification failures resolve to FallbackColor
	// instead of surfacing an error. Development convenience only - never
	// set in production.
	DebugFallback bool
	FallbackColor string
}

type Config struct {
	Logger *zap.Logger

	Port           int
	DatabaseURL    string
	MigrationsPath string

	JoinRadiusMeters float64
	JoinCodeLength   int
	SessionTTL       time.Duration

	Identifier IdentifierConfiguration
}

func Load() (Config, error) {
	logger, err := zap.NewProduction()
	if err != nil {
		return Config{}, err
	}

	port := env.MustGetInt(PortEnv)
	dbURL := env.MustGetString(DatabaseUrlEnv)

	rootPath := env.MustGetString(RootPathEnv)
	migrationsPath := path.Join(rootPath, "db", "migrations")

	return Config{
		Logger:         logger,
		Port:           port,
		DatabaseURL:    dbURL,
		MigrationsPath: migrationsPath,

		JoinRadiusMeters: env.GetFloatOrDefault(JoinRadiusMetersEnv, 500),
		JoinCodeLength:   env.GetIntOrDefault(JoinCodeLengthEnv, 5),
		SessionTTL:       env.GetDurationOrDefault(SessionTTLEnv, 24*time.Hour),

		Identifier: IdentifierConfiguration{
			URL:           env.GetStringOrDefault(IdentifierUrlEnv, ""),
			Timeout:       env.GetDurationOrDefault(IdentifierTimeoutEnv, 10*time.Second),
			DebugFallback: env.GetBoolOrDefault(IdentifyDebugFallbackEnv, false),
			FallbackColor: env.GetStringOrDefault(IdentifyFallbackColorEnv, "red"),
		},
	}, nil
}
