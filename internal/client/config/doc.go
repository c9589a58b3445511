// Package config loads runtime configuration for the EatsBalance CLI.
//
// Sources, later ones overriding earlier ones:
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional JSON file given with -c or -config.
//  3. Environment variables prefixed EATSBALANCE_, after loading an optional
//     dotenv file (-env-file, or ./.env when present).
//  4. Command-line flags.
//
// # JSON schema
//
//	{
//	  "server_base_url": "http://127.0.0.1:8080",
//	  "auth_header": "Authorization",
//	  "auth_scheme": "Bearer",
//	  "data_dir": "~/.eatsbalance",
//	  "key_file": "",
//	  "metrics_addr": "127.0.0.1:9464",
//	  "reminder_time": "20:00",
//	  "log_level": "info",
//	  "devices": {"camera": "...", "recorder": "...", "player": "...", "speaker": "..."},
//	  "s3": {"bucket": "...", "region": "...", "endpoint": "...", "public_base_url": "..."}
//	}
//
// The store passphrase and S3 secrets are only read from the environment.
//
// Malformed files, variables or flags make LoadConfig panic.
package config
