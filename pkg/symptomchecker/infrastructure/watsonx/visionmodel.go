package watsonx

import (
	"context"
	"time"

	"kgeyst.com/symptomchecker/pkg/common"
	"kgeyst.com/symptomchecker/pkg/symptomchecker/domain"
)

const (
	DefaultModelID     = "mistralai/pixtral-12b"
	DefaultMaxTokens   = 256
	DefaultTemperature = 0.0
	// DefaultInferenceTimeout no timeout: the call runs until the endpoint answers or the context is done.
	DefaultInferenceTimeout = time.Duration(0)
)

type visionModel struct {
	client  *Client
	params  ChatParams
	timeout time.Duration
}

// NewVisionModel creates a vision model backed by the watsonx.ai chat endpoint. `modelID` overrides
// domain.ConfigKeyModelID (used for the verifier model); empty means "take it from config".
func NewVisionModel(client *Client, modelID string, config *common.Config) domain.VisionModel {
	if modelID == "" {
		modelID = config.GetStringOrDefault(domain.ConfigKeyModelID, DefaultModelID)
	}
	return &visionModel{
		client: client,
		params: ChatParams{
			ModelID:     modelID,
			MaxTokens:   config.GetIntOrDefault(domain.ConfigKeyMaxTokens, DefaultMaxTokens),
			Temperature: config.GetFloatOrDefault(domain.ConfigKeyTemperature, DefaultTemperature),
		},
		timeout: config.GetDurationOrDefault(domain.ConfigKeyInferenceTimeout, DefaultInferenceTimeout),
	}
}

func (v *visionModel) Name() string {
	return v.params.ModelID
}

func (v *visionModel) Infer(ctx context.Context, messages []domain.ChatMessage) (string, error) {
	if v.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, v.timeout)
		defer cancel()
	}
	return v.client.Chat(ctx, v.params, messages)
}
