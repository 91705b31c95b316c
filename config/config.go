// Package config wires defaults, files and environment into the viper settings engine.
package config

import (
	"strings"

	"github.com/spf13/viper"
	"github.com/trakr-cli/trakr/constant"
	"github.com/trakr-cli/trakr/filesystem"
	"github.com/trakr-cli/trakr/where"
)

// EnvKeyReplacer normalizes configuration keys into environment variable naming conventions.
var EnvKeyReplacer = strings.NewReplacer(".", "_")

// Setup wires viper to the config file, the environment and the registered
// defaults. A missing config file is not an error, every field has a default.
func Setup() error {
	viper.SetConfigName(constant.Trakr)
	viper.SetConfigType("toml")
	viper.SetFs(filesystem.API())
	viper.AddConfigPath(where.Config())

	viper.SetEnvPrefix(constant.Trakr)
	viper.SetEnvKeyReplacer(EnvKeyReplacer)
	viper.SetTypeByDefaultValue(true)

	for name, field := range Default {
		viper.MustBindEnv(name)
		viper.SetDefault(name, field.Value)
	}

	err := viper.ReadInConfig()
	if _, notFound := err.(viper.ConfigFileNotFoundError); notFound {
		return nil
	}

	return err
}
