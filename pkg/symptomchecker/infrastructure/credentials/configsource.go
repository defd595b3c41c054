package credentials

import (
	"context"

	"kgeyst.com/symptomchecker/pkg/common"
	"kgeyst.com/symptomchecker/pkg/symptomchecker/domain"
)

// configKeys maps option names to config.yaml keys.
var configKeys = map[string]string{
	domain.CredentialAPIKey:    domain.ConfigKeyWatsonxAPIKey,
	domain.CredentialProjectID: domain.ConfigKeyWatsonxProjectID,
	domain.CredentialURL:       domain.ConfigKeyWatsonxURL,
}

// ConfigSource looks options up in config.yaml, either under their camelCase key (see domain.ConfigKeyWatsonxAPIKey)
// or under their environment variable name.
type ConfigSource struct {
	config *common.Config
}

func NewConfigSource(config *common.Config) *ConfigSource {
	return &ConfigSource{
		config: config,
	}
}

func (c *ConfigSource) Name() string {
	return "config"
}

func (c *ConfigSource) Lookup(_ context.Context, option domain.CredentialOption) (string, error) {
	if key, ok := configKeys[option.Name]; ok {
		if value := c.config.GetString(key); value != "" {
			return value, nil
		}
	}
	return c.config.GetString(option.Name), nil
}
