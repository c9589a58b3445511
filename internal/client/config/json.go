package config

import (
	"encoding/json"
	"os"

	"github.com/dmitrijs2005/eatsbalance/internal/flagx"
)

// parseJson overlays cfg with the JSON file named by -c/-config. Keys absent
// from the file keep their current values.
func parseJson(cfg *Config, args []string) {
	path := flagx.JSONConfigPath(args)
	if path == "" {
		return
	}

	data, err := os.ReadFile(path)
	if err != nil {
		panic(err)
	}
	if err := json.Unmarshal(data, cfg); err != nil {
		panic(err)
	}
}
