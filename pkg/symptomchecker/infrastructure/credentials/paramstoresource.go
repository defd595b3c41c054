package credentials

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/ssm"
	"github.com/aws/aws-sdk-go-v2/service/ssm/types"

	"kgeyst.com/symptomchecker/pkg/symptomchecker/domain"
)

// ssmAPI is the minimal AWS SSM interface required by ParamStoreSource.
// *ssm.Client from aws-sdk-go-v2 satisfies this interface.
type ssmAPI interface {
	GetParameter(ctx context.Context, in *ssm.GetParameterInput, optFns ...func(*ssm.Options)) (*ssm.GetParameterOutput, error)
}

// ParamStoreSource looks options up in the AWS SSM Parameter Store under "<prefix>/<option name>".
// A parameter which doesn't exist is not an error: the next layer is tried.
type ParamStoreSource struct {
	api    ssmAPI
	prefix string
}

// NewParamStoreSource creates a source backed by the default AWS config (environment, shared files, IMDS...).
func NewParamStoreSource(ctx context.Context, prefix string) (*ParamStoreSource, error) {
	cfg, err := awsconfig.LoadDefaultConfig(ctx)
	if err != nil {
		return nil, fmt.Errorf("paramstore: load AWS config: %w", err)
	}
	return NewParamStoreSourceWithAPI(ssm.NewFromConfig(cfg), prefix)
}

// NewParamStoreSourceWithAPI same as NewParamStoreSource, with an explicit SSM client.
func NewParamStoreSourceWithAPI(api ssmAPI, prefix string) (*ParamStoreSource, error) {
	if api == nil {
		return nil, errors.New("paramstore: api must not be nil")
	}
	prefix = strings.TrimRight(strings.TrimSpace(prefix), "/")
	if prefix == "" {
		return nil, errors.New("paramstore: parameter prefix must not be empty")
	}
	return &ParamStoreSource{
		api:    api,
		prefix: prefix,
	}, nil
}

func (p *ParamStoreSource) Name() string {
	return "paramstore"
}

func (p *ParamStoreSource) Lookup(ctx context.Context, option domain.CredentialOption) (string, error) {
	name := p.prefix + "/" + option.Name
	out, err := p.api.GetParameter(ctx, &ssm.GetParameterInput{
		Name:           aws.String(name),
		WithDecryption: aws.Bool(true),
	})
	if err != nil {
		var notFound *types.ParameterNotFound
		if errors.As(err, &notFound) {
			return "", nil
		}
		return "", fmt.Errorf("paramstore: get parameter %q: %w", name, err)
	}
	if out == nil || out.Parameter == nil || out.Parameter.Value == nil {
		return "", nil
	}
	return *out.Parameter.Value, nil
}
