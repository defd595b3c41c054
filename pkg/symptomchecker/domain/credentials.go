package domain

import (
	"context"
	"fmt"
	"strings"
)

// Names of the credential options, as found in the environment.
const (
	CredentialAPIKey    = "WATSONX_EU_APIKEY"
	CredentialProjectID = "WATSONX_EU_PROJECT_ID"
	CredentialURL       = "WATSONX_URL"
)

const DefaultWatsonxURL = "https://eu-gb.ml.cloud.ibm.com"

// Credentials what's needed to talk to the hosted model. Immutable once resolved.
type Credentials struct {
	URL       string
	APIKey    string
	ProjectID string
}

// CredentialOption describes a single configuration value and how it may be resolved.
type CredentialOption struct {
	// Name the canonical name of the option (also its environment variable name)
	Name string
	// Prompt what to ask the user if no source has the value; empty means the option is never asked interactively
	Prompt string
	// Secret the value is read without echo
	Secret bool
	// Default used as a last resort; empty means the option is required
	Default string
}

// CredentialSource a single layer of configuration (environment, config file, parameter store...).
type CredentialSource interface {
	Name() string
	// Lookup returns an empty string if the source doesn't know about the option.
	Lookup(ctx context.Context, option CredentialOption) (string, error)
}

// Prompter asks the user interactively. Used as the last layer.
type Prompter interface {
	Ask(prompt string) (string, error)
	AskSecret(prompt string) (string, error)
}

// DefaultCredentialOptions the options of the watsonx.ai endpoint. The URL is never asked for because it has a default.
var DefaultCredentialOptions = []CredentialOption{
	{Name: CredentialAPIKey, Prompt: "Enter your " + CredentialAPIKey + ": ", Secret: true},
	{Name: CredentialProjectID, Prompt: "Enter your " + CredentialProjectID + ": "},
	{Name: CredentialURL, Default: DefaultWatsonxURL},
}

// CredentialResolver resolves options layer by layer: the first source with a non-empty value wins; if none has it,
// the user is prompted (if the option allows that); finally, the default is used.
type CredentialResolver struct {
	sources  []CredentialSource
	prompter Prompter
}

// NewCredentialResolver `prompter` can be nil (non-interactive mode).
func NewCredentialResolver(sources []CredentialSource, prompter Prompter) *CredentialResolver {
	return &CredentialResolver{
		sources:  sources,
		prompter: prompter,
	}
}

// Resolve resolves a single option. Returns an error wrapping ErrConfigMissing if nothing is found.
func (c *CredentialResolver) Resolve(ctx context.Context, option CredentialOption) (string, error) {
	for _, source := range c.sources {
		value, err := source.Lookup(ctx, option)
		if err != nil {
			return "", fmt.Errorf("%s: lookup %s: %w", source.Name(), option.Name, err)
		}
		value = strings.TrimSpace(value)
		if value != "" {
			return value, nil
		}
	}
	if c.prompter != nil && option.Prompt != "" {
		value, err := c.ask(option)
		if err != nil {
			return "", fmt.Errorf("prompt %s: %w", option.Name, err)
		}
		if value != "" {
			return value, nil
		}
	}
	if option.Default != "" {
		return option.Default, nil
	}
	return "", fmt.Errorf("%w: %s", ErrConfigMissing, option.Name)
}

// ResolveCredentials resolves all of DefaultCredentialOptions.
func (c *CredentialResolver) ResolveCredentials(ctx context.Context) (Credentials, error) {
	values := make(map[string]string, len(DefaultCredentialOptions))
	for _, option := range DefaultCredentialOptions {
		value, err := c.Resolve(ctx, option)
		if err != nil {
			return Credentials{}, err
		}
		values[option.Name] = value
	}
	return Credentials{
		URL:       strings.TrimRight(values[CredentialURL], "/"),
		APIKey:    values[CredentialAPIKey],
		ProjectID: values[CredentialProjectID],
	}, nil
}

func (c *CredentialResolver) ask(option CredentialOption) (string, error) {
	if option.Secret {
		return c.prompter.AskSecret(option.Prompt)
	}
	return c.prompter.Ask(option.Prompt)
}
