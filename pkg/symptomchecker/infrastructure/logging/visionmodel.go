package logging

import (
	"context"
	"fmt"
	"strings"
	"time"

	"kgeyst.com/symptomchecker/pkg/common"
	"kgeyst.com/symptomchecker/pkg/symptomchecker/domain"
)

type visionModelDecorator struct {
	wrappedVisionModel domain.VisionModel
	logger             common.Logger
}

// NewVisionModelDecorator logs prompts and responses of the wrapped model. Images are never logged (only their
// size), neither are credentials.
func NewVisionModelDecorator(wrappedVisionModel domain.VisionModel, logger common.Logger) domain.VisionModel {
	return &visionModelDecorator{
		wrappedVisionModel: wrappedVisionModel,
		logger:             logger,
	}
}

func (v *visionModelDecorator) Name() string {
	return v.wrappedVisionModel.Name()
}

func (v *visionModelDecorator) Infer(ctx context.Context, messages []domain.ChatMessage) (string, error) {
	v.logger.Log(fmt.Sprintf("\n================\n raw prompt (using '%s'):\n%s\n================\n", v.Name(), describeMessages(messages)))
	t := time.Now()
	response, err := v.wrappedVisionModel.Infer(ctx, messages)
	if err != nil {
		v.logger.Log(fmt.Sprintf("\n================\n inference failed (took %d ms): %v\n================\n", time.Since(t).Milliseconds(), err))
		return "", err
	}
	v.logger.Log(fmt.Sprintf("\n================\n raw prompt response:\n%s\n (took %d ms)\n================\n", response, time.Since(t).Milliseconds()))
	return response, nil
}

func describeMessages(messages []domain.ChatMessage) string {
	var buf strings.Builder
	for _, message := range messages {
		buf.WriteString(message.Role)
		buf.WriteString(": ")
		buf.WriteString(message.Text())
		for _, block := range message.Content {
			if block.Type == domain.ContentTypeImageURL && block.ImageURL != nil {
				buf.WriteString(fmt.Sprintf("\n[image, %d chars]", len(block.ImageURL.URL)))
			}
		}
		buf.WriteString("\n")
	}
	return buf.String()
}
