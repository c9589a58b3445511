package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/dmitrijs2005/eatsbalance/internal/common"
)

// DeviceCommands are shell-free command templates used by the desktop device
// helpers. Placeholders: {out} output file, {in} input file, {text} speech.
type DeviceCommands struct {
	Camera   string `json:"camera"`
	Recorder string `json:"recorder"`
	Player   string `json:"player"`
	Speaker  string `json:"speaker"`
}

// S3Config enables media upload when Bucket is set.
type S3Config struct {
	Bucket        string `json:"bucket"`
	Region        string `json:"region"`
	Endpoint      string `json:"endpoint"`
	PublicBaseURL string `json:"public_base_url"`
	AccessKey     string `json:"-"`
	SecretKey     string `json:"-"`
}

// Enabled reports whether uploads are configured.
func (s S3Config) Enabled() bool {
	return s.Bucket != ""
}

// Config holds runtime settings for the EatsBalance CLI.
type Config struct {
	ServerBaseURL   string         `json:"server_base_url"`
	AuthHeader      string         `json:"auth_header"`
	AuthScheme      string         `json:"auth_scheme"`
	DataDir         string         `json:"data_dir"`
	StorePassphrase string         `json:"-"`
	KeyFile         string         `json:"key_file"`
	MetricsAddr     string         `json:"metrics_addr"`
	ReminderTime    string         `json:"reminder_time"`
	LogLevel        string         `json:"log_level"`
	Devices         DeviceCommands `json:"devices"`
	S3              S3Config       `json:"s3"`
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.ServerBaseURL = "http://127.0.0.1:8080"
	c.AuthHeader = common.DefaultAuthHeader
	c.AuthScheme = common.DefaultAuthScheme
	c.DataDir = "~/." + common.AppName
	c.ReminderTime = "20:00"
	c.LogLevel = "info"
	c.Devices = DeviceCommands{
		Camera:   "fswebcam --no-banner {out}",
		Recorder: "arecord -f cd {out}",
		Player:   "aplay {in}",
		Speaker:  "espeak {text}",
	}
}

// ReminderClock parses ReminderTime ("HH:MM").
func (c *Config) ReminderClock() (hour, minute int, err error) {
	return ParseClock(c.ReminderTime)
}

// ParseClock parses a 24h "HH:MM" time of day.
func ParseClock(s string) (hour, minute int, err error) {
	hs, ms, ok := strings.Cut(strings.TrimSpace(s), ":")
	if !ok {
		return 0, 0, fmt.Errorf("time %q: want HH:MM", s)
	}
	if hour, err = strconv.Atoi(hs); err != nil || hour < 0 || hour > 23 {
		return 0, 0, fmt.Errorf("time %q: bad hour", s)
	}
	if minute, err = strconv.Atoi(ms); err != nil || minute < 0 || minute > 59 {
		return 0, 0, fmt.Errorf("time %q: bad minute", s)
	}
	return hour, minute, nil
}

// LoadConfig builds the configuration from os.Args.
func LoadConfig() *Config {
	return Load(os.Args[1:])
}

// Load applies defaults, JSON, environment and flags from args, in that order.
func Load(args []string) *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg, args)
	parseEnv(cfg, args)
	parseFlags(cfg, args)
	return cfg
}
