package credentials

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/aws/aws-sdk-go-v2/service/ssm"
	"github.com/aws/aws-sdk-go-v2/service/ssm/types"
	"github.com/stretchr/testify/require"

	"kgeyst.com/symptomchecker/pkg/common"
	"kgeyst.com/symptomchecker/pkg/symptomchecker/domain"
)

var apiKeyOption = domain.CredentialOption{Name: domain.CredentialAPIKey}
var projectOption = domain.CredentialOption{Name: domain.CredentialProjectID}

func TestEnvSource(t *testing.T) {
	t.Setenv(domain.CredentialAPIKey, "env-key")
	source := NewEnvSource()

	value, err := source.Lookup(context.Background(), apiKeyOption)
	require.NoError(t, err)
	require.Equal(t, "env-key", value)
	require.Equal(t, "environment", source.Name())
}

func TestLoadDotEnv(t *testing.T) {
	t.Setenv(domain.CredentialAPIKey, "already-set")
	t.Setenv(domain.CredentialProjectID, "")
	require.NoError(t, os.Unsetenv(domain.CredentialProjectID))
	path := filepath.Join(t.TempDir(), ".env")
	content := domain.CredentialAPIKey + "=from-dotenv\n" + domain.CredentialProjectID + "=dotenv-project\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0600))

	require.NoError(t, LoadDotEnv(path))
	require.Equal(t, "already-set", os.Getenv(domain.CredentialAPIKey), "the environment wins over .env")
	require.Equal(t, "dotenv-project", os.Getenv(domain.CredentialProjectID))
}

func TestLoadDotEnv_MissingFile(t *testing.T) {
	require.NoError(t, LoadDotEnv(filepath.Join(t.TempDir(), ".env")))
	require.NoError(t, LoadDotEnv(""))
}

func TestConfigSource(t *testing.T) {
	config := common.NewConfig(map[string]any{
		domain.ConfigKeyWatsonxAPIKey: "config-key",
		domain.CredentialProjectID:    "raw-name-project",
	})
	source := NewConfigSource(config)

	value, err := source.Lookup(context.Background(), apiKeyOption)
	require.NoError(t, err)
	require.Equal(t, "config-key", value)

	value, err = source.Lookup(context.Background(), projectOption)
	require.NoError(t, err)
	require.Equal(t, "raw-name-project", value, "the environment variable name works as a key too")

	value, err = source.Lookup(context.Background(), domain.CredentialOption{Name: domain.CredentialURL})
	require.NoError(t, err)
	require.Empty(t, value)
}

type fakeSSM struct {
	values map[string]string
	err    error
	names  []string
}

func (f *fakeSSM) GetParameter(_ context.Context, in *ssm.GetParameterInput, _ ...func(*ssm.Options)) (*ssm.GetParameterOutput, error) {
	f.names = append(f.names, *in.Name)
	if f.err != nil {
		return nil, f.err
	}
	value, ok := f.values[*in.Name]
	if !ok {
		return nil, &types.ParameterNotFound{}
	}
	return &ssm.GetParameterOutput{Parameter: &types.Parameter{Value: &value}}, nil
}

func TestParamStoreSource(t *testing.T) {
	api := &fakeSSM{values: map[string]string{"/symptomchecker/" + domain.CredentialAPIKey: "ssm-key"}}
	source, err := NewParamStoreSourceWithAPI(api, " /symptomchecker/ ")
	require.NoError(t, err)

	value, err := source.Lookup(context.Background(), apiKeyOption)
	require.NoError(t, err)
	require.Equal(t, "ssm-key", value)

	value, err = source.Lookup(context.Background(), projectOption)
	require.NoError(t, err, "a missing parameter falls through to the next layer")
	require.Empty(t, value)
	require.Equal(t, []string{"/symptomchecker/" + domain.CredentialAPIKey, "/symptomchecker/" + domain.CredentialProjectID}, api.names)
}

func TestParamStoreSource_Errors(t *testing.T) {
	_, err := NewParamStoreSourceWithAPI(nil, "/p")
	require.Error(t, err)
	_, err = NewParamStoreSourceWithAPI(&fakeSSM{}, " / ")
	require.Error(t, err)

	source, err := NewParamStoreSourceWithAPI(&fakeSSM{err: errors.New("access denied")}, "/p")
	require.NoError(t, err)
	_, err = source.Lookup(context.Background(), apiKeyOption)
	require.Error(t, err)
	require.Contains(t, err.Error(), "access denied")
}

func TestLayeredResolution(t *testing.T) {
	t.Setenv(domain.CredentialAPIKey, "env-key")
	t.Setenv(domain.CredentialProjectID, "")
	t.Setenv(domain.CredentialURL, "")
	config := common.NewConfig(map[string]any{domain.ConfigKeyWatsonxURL: "https://us-south.ml.cloud.ibm.com"})
	paramStore, err := NewParamStoreSourceWithAPI(&fakeSSM{values: map[string]string{
		"/p/" + domain.CredentialProjectID: "ssm-project",
		"/p/" + domain.CredentialAPIKey:    "ssm-key",
	}}, "/p")
	require.NoError(t, err)
	resolver := domain.NewCredentialResolver([]domain.CredentialSource{NewEnvSource(), NewConfigSource(config), paramStore}, nil)

	creds, err := resolver.ResolveCredentials(context.Background())
	require.NoError(t, err)
	require.Equal(t, domain.Credentials{
		URL:       "https://us-south.ml.cloud.ibm.com",
		APIKey:    "env-key",
		ProjectID: "ssm-project",
	}, creds)
}
