package app

import (
	"strings"
	"time"

	"github.com/steadyops/facilities-backend/internal/pkg/logger"
	"github.com/steadyops/facilities-backend/internal/utils"
)

type Config struct {
	Port          string
	Environment   string
	AllowOrigins  []string
	SweepInterval time.Duration
	PushEnabled   bool
}

func LoadConfig(log *logger.Logger) Config {
	port := utils.GetEnv("PORT", "8080", log)
	environment := utils.GetEnv("ENVIRONMENT", "development", log)
	originsRaw := utils.GetEnv("CORS_ALLOW_ORIGINS", "http://localhost:3000", log)
	sweepSeconds := utils.GetEnvAsInt("PM_SWEEP_INTERVAL_SECONDS", 3600, log)
	pushEnabled := strings.EqualFold(utils.GetEnv("PUSH_ENABLED", "false", log), "true")

	var origins []string
	for _, o := range strings.Split(originsRaw, ",") {
		o = strings.TrimSpace(o)
		if o != "" {
			origins = append(origins, o)
		}
	}

	return Config{
		Port:          port,
		Environment:   environment,
		AllowOrigins:  origins,
		SweepInterval: time.Duration(sweepSeconds) * time.Second,
		PushEnabled:   pushEnabled,
	}
}
