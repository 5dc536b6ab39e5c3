// Package config registers the settings of podfetch and loads them through viper.
//
// Values come, in increasing precedence, from the defaults in this package,
// the podfetch.toml file in the config directory, PODFETCH_* environment
// variables and command line flags bound by the commands.
package config

import (
	"errors"
	"path/filepath"
	"strings"

	"github.com/podfetch/podfetch/constant"
	"github.com/podfetch/podfetch/filesystem"
	"github.com/podfetch/podfetch/where"
	"github.com/spf13/viper"
)

const fileType = "toml"

// EnvKeyReplacer turns a key such as download.rate_limit into its env suffix DOWNLOAD_RATE_LIMIT.
var EnvKeyReplacer = strings.NewReplacer(".", "_")

// File is the path of the config file, whether or not it exists.
func File() string {
	return filepath.Join(where.Config(), constant.App+"."+fileType)
}

// Setup registers defaults and environment bindings and reads the config file if there is one.
func Setup() error {
	viper.SetConfigName(constant.App)
	viper.SetConfigType(fileType)
	viper.SetFs(filesystem.API())
	viper.AddConfigPath(where.Config())

	viper.SetEnvPrefix(constant.App)
	viper.SetEnvKeyReplacer(EnvKeyReplacer)
	for _, env := range EnvExposed {
		viper.MustBindEnv(env)
	}

	viper.SetTypeByDefaultValue(true)
	for name, field := range Default {
		viper.SetDefault(name, field.Value)
	}

	var notFound viper.ConfigFileNotFoundError
	if err := viper.ReadInConfig(); err != nil && !errors.As(err, &notFound) {
		return err
	}
	return nil
}

// Persist writes the current settings to File, creating it when needed.
func Persist() error {
	var notFound viper.ConfigFileNotFoundError
	if err := viper.WriteConfig(); err != nil {
		if errors.As(err, &notFound) {
			return viper.SafeWriteConfig()
		}
		return err
	}
	return nil
}
