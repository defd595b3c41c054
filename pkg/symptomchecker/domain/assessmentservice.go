package domain

import (
	"context"
	"fmt"
	"image"
	"strings"

	"github.com/google/uuid"

	"kgeyst.com/symptomchecker/pkg/common"
)

// Assessment everything produced by a single run.
type Assessment struct {
	RunID string
	Query string
	// Answer the primary model's answer.
	Answer string
	// VerifierAnswer the cross-check by the verifier model (empty if there's no verifier or it failed).
	VerifierAnswer string
	// VerifierErr set if the verifier failed; the assessment itself is still valid.
	VerifierErr error
	Retrieval   *Retrieval
}

// AssessmentService runs the steps one after another: encode the image, assemble the prompt, call the model(s),
// fetch the snippets. Encoding and inference failures abort the run; retrieval and verifier failures degrade.
type AssessmentService struct {
	imageEncoder     ImageEncoder
	visionModel      VisionModel
	verifierModel    VisionModel
	retriever        *Retriever
	retrievalURLs    []string
	retrievalSources []SnippetSource
	logger           common.Logger
}

// NewAssessmentService `verifierModel` can be nil. `retrievalURLs` empty means DefaultRetrievalSources;
// `retrievalSources` are fetched after the pages.
func NewAssessmentService(
	imageEncoder ImageEncoder,
	visionModel VisionModel,
	verifierModel VisionModel,
	retriever *Retriever,
	retrievalURLs []string,
	retrievalSources []SnippetSource,
	logger common.Logger,
) *AssessmentService {
	return &AssessmentService{
		imageEncoder:     imageEncoder,
		visionModel:      visionModel,
		verifierModel:    verifierModel,
		retriever:        retriever,
		retrievalURLs:    retrievalURLs,
		retrievalSources: retrievalSources,
		logger:           logger,
	}
}

// Assess downloads the image at `imageURL` and assesses it. An empty `query` means DefaultQuery.
func (a *AssessmentService) Assess(ctx context.Context, imageURL, query string) (*Assessment, error) {
	imageBase64, err := a.imageEncoder.EncodeImageFromURL(ctx, imageURL)
	if err != nil {
		return nil, err
	}
	return a.assessEncoded(ctx, imageBase64, query)
}

// AssessImage same as Assess, for an in-memory image.
func (a *AssessmentService) AssessImage(ctx context.Context, img image.Image, query string) (*Assessment, error) {
	imageBase64, err := a.imageEncoder.EncodeImage(img)
	if err != nil {
		return nil, err
	}
	return a.assessEncoded(ctx, imageBase64, query)
}

func (a *AssessmentService) assessEncoded(ctx context.Context, imageBase64, query string) (*Assessment, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		query = DefaultQuery
	}
	assessment := &Assessment{
		RunID: uuid.NewString(),
		Query: query,
	}
	logger := common.PrefixedLogger(a.logger, assessment.RunID)
	logger.Log(fmt.Sprintf("assessing an image (%d base64 chars), query: %q", len(imageBase64), query))
	messages := AssembleMessages(query, imageBase64)
	answer, err := a.visionModel.Infer(ctx, messages)
	if err != nil {
		logger.Log(fmt.Sprintf("inference with %s failed: %v", a.visionModel.Name(), err))
		return nil, err
	}
	assessment.Answer = answer
	if a.verifierModel != nil {
		assessment.VerifierAnswer, assessment.VerifierErr = a.verifierModel.Infer(ctx, messages)
		if assessment.VerifierErr != nil {
			logger.Log(fmt.Sprintf("verification with %s failed: %v", a.verifierModel.Name(), assessment.VerifierErr))
		}
	}
	assessment.Retrieval = a.retriever.RetrieveFromURLs(ctx, query, a.retrievalURLs, a.retrievalSources...)
	logger.Log(fmt.Sprintf("retrieved %d snippets (%d fetched, %d failed)",
		len(assessment.Retrieval.Snippets), len(assessment.Retrieval.Fetched), len(assessment.Retrieval.Failures)))
	return assessment, nil
}
