package app

import (
	"path/filepath"
	"strings"

	"github.com/Yamier22/motion-library/internal/pkg/logger"
	"github.com/Yamier22/motion-library/internal/utils"
)

type Config struct {
	Host string
	Port int

	DataDir         string
	ModelsDir       string
	TrajectoriesDir string
	ThumbnailsDir   string

	CORSOrigins []string
}

func LoadConfig(log *logger.Logger) Config {
	host := utils.GetEnv("HOST", "0.0.0.0", log)
	port := utils.GetEnvAsInt("PORT", 8000, log)
	dataDir := utils.GetEnv("DATA_DIR", "./data", log)

	cfg := Config{
		Host:            host,
		Port:            port,
		DataDir:         dataDir,
		ModelsDir:       utils.GetEnv("MODELS_DIR", filepath.Join(dataDir, "models"), log),
		TrajectoriesDir: utils.GetEnv("TRAJECTORIES_DIR", filepath.Join(dataDir, "trajectories"), log),
		ThumbnailsDir:   utils.GetEnv("THUMBNAILS_DIR", filepath.Join(dataDir, "thumbnails"), log),
	}

	if origins := utils.GetEnv("CORS_ORIGINS", "", log); origins != "" {
		for _, o := range strings.Split(origins, ",") {
			if o = strings.TrimSpace(o); o != "" {
				cfg.CORSOrigins = append(cfg.CORSOrigins, o)
			}
		}
	}
	return cfg
}
