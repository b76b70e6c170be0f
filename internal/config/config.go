package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"
)

const envPrefix = "SWEEPER"

// New loads configuration from defaults, an optional file named by
// SWEEPER_CONFIG and SWEEPER_* environment variables, in increasing order of
// precedence.
func New() (*viper.Viper, error) {
	v := viper.New()

	v.SetDefault("app.addr", ":8080")
	v.SetDefault("app.development", false)
	v.SetDefault("app.base_path", "")
	v.SetDefault("app.sweep_every", time.Minute)
	v.SetDefault("app.session_ttl", 30*time.Minute)

	v.SetDefault("game.width", 30)
	v.SetDefault("game.height", 16)
	v.SetDefault("game.mine_count", 70)
	v.SetDefault("game.max_width", 100)
	v.SetDefault("game.max_height", 100)

	v.SetDefault("ws.read_limit", 64<<10)
	v.SetDefault("ws.allowed_origins", []string{})

	v.SetDefault("jwt.secret", "")
	v.SetDefault("jwt.secret_file", "")

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path, ok := os.LookupEnv(envPrefix + "_CONFIG"); ok {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("unable to read config %s: %w", path, err)
		}
	}

	return v, nil
}
