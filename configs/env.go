package configs

import (
	"github.com/spf13/viper"
)

type EnvConfig struct {
	ApplicationName string
	LogLevel        string
	PropertiesPath  string
	MessagesPath    string
}

var Env *EnvConfig

func init() {
	env := viper.New()
	env.AutomaticEnv()

	Env = &EnvConfig{
		ApplicationName: getStringOrDefault(env, "APPLICATION_NAME", "todo-api"),
		LogLevel:        getStringOrDefault(env, "LOG_LEVEL", "info"),
		PropertiesPath:  env.GetString("PROPERTIES_FILE_PATH"),
		MessagesPath:    env.GetString("MESSAGES_FILE_PATH"),
	}
}

func getStringOrDefault(env *viper.Viper, key, defaultValue string) string {
	value := env.GetString(key)
	if value == "" {
		return defaultValue
	}
	return value
}
