// Package config holds small helpers over the process-wide viper configuration.
package config

import (
	"os"
	"regexp"

	"github.com/spf13/viper"

	"github.com/qisthidev/Antigravity-Manager/pkg/errors"
)

// GetString is a helper to get string values from Viper.
// It checks both OS environment variables and Viper configuration.
func GetString(key string) string {
	osValue := os.Getenv(key)
	viperValue := viper.GetString(key)

	if viperValue == "" && osValue != "" {
		return osValue
	}
	return viperValue
}

// APIKey describes where a provider's API key is read from.
type APIKey struct {
	Provider string // provider name used in errors
	Name     string // environment variable or viper key
	Pattern  string // optional validation regexp
	Required bool
}

// GetAPIKey retrieves and validates an API key using Viper and the environment.
func GetAPIKey(desc APIKey) (string, error) {
	apiKey := GetString(desc.Name)
	if apiKey == "" {
		if desc.Required {
			return "", &errors.AuthenticationError{
				Provider: desc.Provider,
				Method:   "api_key",
				Message:  desc.Name + " not set",
			}
		}
		return "", nil
	}

	if desc.Pattern != "" && desc.Pattern != ".*" {
		matched, err := regexp.MatchString(desc.Pattern, apiKey)
		if err != nil {
			return "", errors.NewConfigError(desc.Provider, "invalid API key pattern "+desc.Pattern, err)
		}
		if !matched {
			return "", &errors.AuthenticationError{
				Provider: desc.Provider,
				Method:   "api_key",
				Message:  "API key does not match required pattern",
			}
		}
	}

	return apiKey, nil
}
