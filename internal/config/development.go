package config

import "github.com/spf13/viper"

func Development(v *viper.Viper) bool {
	return v.GetBool("app.development")
}
