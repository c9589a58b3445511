package config

import (
	"flag"

	"github.com/dmitrijs2005/eatsbalance/internal/flagx"
)

var knownFlags = []string{
	"-server", "-data-dir", "-key-file", "-metrics-addr", "-reminder",
	"-log-level", "-auth-header", "-auth-scheme", "-s3-bucket",
}

// parseFlags applies command-line flags on top of cfg. Only the flags above
// are considered, so -c and -env-file do not trip the FlagSet.
func parseFlags(cfg *Config, args []string) {
	allowed := make([]string, 0, len(knownFlags)*2)
	for _, f := range knownFlags {
		allowed = append(allowed, f, "-"+f)
	}

	fs := flag.NewFlagSet("eatsbalance", flag.ContinueOnError)

	fs.StringVar(&cfg.ServerBaseURL, "server", cfg.ServerBaseURL, "base URL of the meals API")
	fs.StringVar(&cfg.DataDir, "data-dir", cfg.DataDir, "directory for the local store and media")
	fs.StringVar(&cfg.KeyFile, "key-file", cfg.KeyFile, "device key file (used when no passphrase is set)")
	fs.StringVar(&cfg.MetricsAddr, "metrics-addr", cfg.MetricsAddr, "address to serve Prometheus metrics on, empty to disable")
	fs.StringVar(&cfg.ReminderTime, "reminder", cfg.ReminderTime, "daily reminder time, HH:MM")
	fs.StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "debug, info, warn or error")
	fs.StringVar(&cfg.AuthHeader, "auth-header", cfg.AuthHeader, "header carrying the session token")
	fs.StringVar(&cfg.AuthScheme, "auth-scheme", cfg.AuthScheme, "scheme prefix for the session token")
	fs.StringVar(&cfg.S3.Bucket, "s3-bucket", cfg.S3.Bucket, "bucket for meal media uploads")

	if err := fs.Parse(flagx.FilterArgs(args, allowed)); err != nil {
		panic(err)
	}
}
