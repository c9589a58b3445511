package config

import (
	"errors"
	"io/fs"
	"os"
	"strings"

	"github.com/joho/godotenv"

	"github.com/dmitrijs2005/eatsbalance/internal/common"
	"github.com/dmitrijs2005/eatsbalance/internal/flagx"
)

const defaultEnvFile = ".env"

var envPrefix = strings.ToUpper(common.AppName) + "_"

func envBindings(cfg *Config) map[string]*string {
	return map[string]*string{
		"SERVER_BASE_URL":  &cfg.ServerBaseURL,
		"AUTH_HEADER":      &cfg.AuthHeader,
		"AUTH_SCHEME":      &cfg.AuthScheme,
		"DATA_DIR":         &cfg.DataDir,
		"STORE_PASSPHRASE": &cfg.StorePassphrase,
		"KEY_FILE":         &cfg.KeyFile,
		"METRICS_ADDR":     &cfg.MetricsAddr,
		"REMINDER_TIME":    &cfg.ReminderTime,
		"LOG_LEVEL":        &cfg.LogLevel,
		"CAMERA_CMD":       &cfg.Devices.Camera,
		"RECORDER_CMD":     &cfg.Devices.Recorder,
		"PLAYER_CMD":       &cfg.Devices.Player,
		"SPEAKER_CMD":      &cfg.Devices.Speaker,
		"S3_BUCKET":        &cfg.S3.Bucket,
		"S3_REGION":        &cfg.S3.Region,
		"S3_ENDPOINT":      &cfg.S3.Endpoint,
		"S3_PUBLIC_URL":    &cfg.S3.PublicBaseURL,
		"S3_ACCESS_KEY":    &cfg.S3.AccessKey,
		"S3_SECRET_KEY":    &cfg.S3.SecretKey,
	}
}

// parseEnv loads the dotenv file (if any) into the process environment and
// overlays every EATSBALANCE_* variable that is set. Variables already in the
// environment win over the file.
func parseEnv(cfg *Config, args []string) {
	file := flagx.EnvFilePath(args)
	explicit := file != ""
	if !explicit {
		file = defaultEnvFile
	}

	if err := godotenv.Load(file); err != nil {
		if explicit || !errors.Is(err, fs.ErrNotExist) {
			panic(err)
		}
	}

	for name, dst := range envBindings(cfg) {
		if v, ok := os.LookupEnv(envPrefix + name); ok {
			*dst = v
		}
	}
}
