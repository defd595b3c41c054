package credentials

import (
	"context"
	"errors"
	"io/fs"
	"os"

	"github.com/joho/godotenv"

	"kgeyst.com/symptomchecker/pkg/symptomchecker/domain"
)

// EnvSource looks options up in the process environment.
type EnvSource struct{}

func NewEnvSource() *EnvSource {
	return &EnvSource{}
}

func (e *EnvSource) Name() string {
	return "environment"
}

func (e *EnvSource) Lookup(_ context.Context, option domain.CredentialOption) (string, error) {
	return os.Getenv(option.Name), nil
}

// LoadDotEnv loads variables from a .env file into the environment. Variables which are already set are not
// overridden. A missing file is not an error.
func LoadDotEnv(path string) error {
	if path == "" {
		return nil
	}
	err := godotenv.Load(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	return err
}
