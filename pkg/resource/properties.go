package resource

import (
	"bytes"
	"log"
	"os"
	"regexp"
	"time"
	"todo-api/configs"

	"github.com/spf13/viper"
)

var properties = viper.New()
var envPattern = regexp.MustCompile(`^\$\{([^:}]+)(?::([^}]*))?}$`)

// init loads application properties from YAML
func init() {
	if configs.Env.PropertiesPath != "" {
		Init(configs.Env.PropertiesPath)
		return
	}
	if err := load(func(v *viper.Viper) error { return v.ReadConfig(bytes.NewReader(configs.ApplicationYAML)) }); err != nil {
		log.Fatalf("Fail to read bundled properties: %v", err)
	}
}

// Init loads the properties file at filepath, replacing whatever was loaded before.
func Init(filepath string) {
	err := load(func(v *viper.Viper) error {
		v.SetConfigFile(filepath)
		return v.ReadInConfig()
	})
	if err != nil {
		log.Fatalf("Fail to read properties: %v", err)
	}
}

func load(read func(v *viper.Viper) error) error {
	raw := viper.New()
	raw.SetConfigType("yml")
	if err := read(raw); err != nil {
		return err
	}

	resolved := viper.New()
	parsePropertiesMap("", raw.AllSettings(), resolved)
	properties = resolved
	return nil
}

// parsePropertiesMap reads recursively the YAML file
func parsePropertiesMap(prefix string, data map[string]any, result *viper.Viper) {
	for key, value := range data {
		fullKey := key
		if prefix != "" {
			fullKey = prefix + "." + key
		}

		switch v := value.(type) {
		case string:
			result.Set(fullKey, resolveEnvVariable(v))
		case int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64, float32, float64, bool:
			result.Set(fullKey, v)
		case map[string]any:
			parsePropertiesMap(fullKey, v, result)
		default:
			log.Printf("Ignoring key '%s' with unsupported type.", fullKey)
		}
	}
}

// resolveEnvVariable replaces a ${ENV:default} placeholder with the environment value or its default.
// Values that are not placeholders are returned unchanged.
func resolveEnvVariable(value string) string {
	matches := envPattern.FindStringSubmatch(value)
	if matches == nil {
		return value
	}
	if envValue, exists := os.LookupEnv(matches[1]); exists {
		return envValue
	}
	return matches[2]
}

// Set overrides a property at runtime. Mostly useful in tests.
func Set(key string, value any) {
	properties.Set(key, value)
}

func Get(key string) any {
	return properties.Get(key)
}

func GetString(key string) string {
	return properties.GetString(key)
}

func GetBool(key string) bool {
	return properties.GetBool(key)
}

func GetDuration(key string) time.Duration {
	return properties.GetDuration(key)
}

func GetInt(key string) int {
	return properties.GetInt(key)
}

func GetInt64(key string) int64 {
	return properties.GetInt64(key)
}

func GetStringSlice(key string) []string {
	return properties.GetStringSlice(key)
}
