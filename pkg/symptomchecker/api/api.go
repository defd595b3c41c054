package api

import (
	"context"
	"image"
	"time"

	"kgeyst.com/symptomchecker/pkg/common"
	"kgeyst.com/symptomchecker/pkg/symptomchecker/domain"
	"kgeyst.com/symptomchecker/pkg/symptomchecker/infrastructure/credentials"
	"kgeyst.com/symptomchecker/pkg/symptomchecker/infrastructure/imaging"
	"kgeyst.com/symptomchecker/pkg/symptomchecker/infrastructure/logging"
	"kgeyst.com/symptomchecker/pkg/symptomchecker/infrastructure/rss"
	"kgeyst.com/symptomchecker/pkg/symptomchecker/infrastructure/watsonx"
	"kgeyst.com/symptomchecker/pkg/symptomchecker/infrastructure/web"
	"kgeyst.com/symptomchecker/pkg/symptomchecker/infrastructure/wiki"
)

// See domain/config.go
const (
	ConfigKeyLogPath    = domain.ConfigKeyLogPath
	ConfigKeyDotEnvPath = domain.ConfigKeyDotEnvPath
)

const defaultImageFetchTimeout = 30 * time.Second

// API is the entrypoint to the symptom checker. It shouldn't contain any logic of its own; it glues all the
// components together and provides a public interface for domain.AssessmentService.
type API interface {
	// Assess downloads the image at `imageURL`, asks the hosted model about it and fetches supporting snippets.
	// An empty `query` means domain.DefaultQuery.
	Assess(ctx context.Context, imageURL, query string) (*domain.Assessment, error)
	// AssessImage same as Assess, for an in-memory image (encoded as JPEG).
	AssessImage(ctx context.Context, img image.Image, query string) (*domain.Assessment, error)
}

type api struct {
	assessmentService *domain.AssessmentService
}

// NewAPI resolves the credentials (environment, .env, config, parameter store, then `prompter`, which can be nil)
// and builds everything else from `config`.
func NewAPI(ctx context.Context, config *common.Config, prompter domain.Prompter) (API, error) {
	logger := common.NewFileLogger(config.GetStringOrDefault(ConfigKeyLogPath, "log.txt"))
	creds, err := ResolveCredentials(ctx, config, prompter)
	if err != nil {
		return nil, err
	}
	client, err := watsonx.NewClient(
		creds,
		watsonx.WithIAMURL(config.GetString(domain.ConfigKeyIAMURL)),
		watsonx.WithVersion(config.GetString(domain.ConfigKeyChatAPIVersion)),
	)
	if err != nil {
		return nil, err
	}
	visionModel := logging.NewVisionModelDecorator(watsonx.NewVisionModel(client, "", config), logger)
	var verifierModel domain.VisionModel
	if verifierModelID := config.GetString(domain.ConfigKeyVerifierModelID); verifierModelID != "" {
		verifierModel = logging.NewVisionModelDecorator(watsonx.NewVisionModel(client, verifierModelID, config), logger)
	}
	pageFetcher, err := newPageFetcher(config)
	if err != nil {
		return nil, err
	}
	snippetFilter, err := domain.NewSnippetFilter(config.GetString(domain.ConfigKeyRetrievalFilter))
	if err != nil {
		return nil, err
	}
	retriever := domain.NewRetriever(pageFetcher.NewPageSource, snippetFilter, logger)
	retrievalURLs, err := NewRetrievalURLs(config)
	if err != nil {
		return nil, err
	}
	imageEncoder := imaging.NewEncoder(config.GetDurationOrDefault(domain.ConfigKeyImageFetchTimeout, defaultImageFetchTimeout))
	return &api{
		assessmentService: domain.NewAssessmentService(
			imageEncoder,
			visionModel,
			verifierModel,
			retriever,
			retrievalURLs,
			NewRetrievalSources(config),
			logger,
		),
	}, nil
}

// ResolveCredentials layers: .env + environment, config.yaml, SSM Parameter Store (if configured), the prompter.
func ResolveCredentials(ctx context.Context, config *common.Config, prompter domain.Prompter) (domain.Credentials, error) {
	err := credentials.LoadDotEnv(config.GetStringOrDefault(ConfigKeyDotEnvPath, ".env"))
	if err != nil {
		return domain.Credentials{}, err
	}
	sources := []domain.CredentialSource{
		credentials.NewEnvSource(),
		credentials.NewConfigSource(config),
	}
	if paramPrefix := config.GetString(domain.ConfigKeyCredentialsParamPrefix); paramPrefix != "" {
		paramStoreSource, err := credentials.NewParamStoreSource(ctx, paramPrefix)
		if err != nil {
			return domain.Credentials{}, err
		}
		sources = append(sources, paramStoreSource)
	}
	return domain.NewCredentialResolver(sources, prompter).ResolveCredentials(ctx)
}

// NewRetrievalURLs the configured pages followed by the ones from the sources file. Empty means the retriever falls
// back to domain.DefaultRetrievalSources.
func NewRetrievalURLs(config *common.Config) ([]string, error) {
	urls := config.GetStringsOrDefault(domain.ConfigKeyRetrievalSources, nil)
	if sourcesFile := config.GetString(domain.ConfigKeyRetrievalSourcesFile); sourcesFile != "" {
		fileURLs, err := common.ReadListFile(sourcesFile)
		if err != nil {
			return nil, err
		}
		urls = append(urls, fileURLs...)
	}
	return urls, nil
}

// NewRetrievalSources the sources fetched after the pages: feeds, then Wikipedia (if enabled).
func NewRetrievalSources(config *common.Config) []domain.SnippetSource {
	timeout := config.GetDurationOrDefault(domain.ConfigKeyRetrievalFetchTimeout, web.DefaultFetchTimeout)
	maxChars := config.GetIntOrDefault(domain.ConfigKeyRetrievalMaxChars, web.DefaultMaxChars)
	var sources []domain.SnippetSource
	for _, feedURL := range config.GetStringsOrDefault(domain.ConfigKeyRetrievalFeedSources, nil) {
		sources = append(sources, rss.NewFeedSource(feedURL, timeout, rss.DefaultMaxItemCount, maxChars))
	}
	if wikiArticleCount := config.GetIntOrDefault(domain.ConfigKeyRetrievalWikiArticleCount, 0); wikiArticleCount > 0 {
		sources = append(sources, wiki.NewArticleSource(wiki.NewArticleProvider(), wikiArticleCount, maxChars))
	}
	return sources
}

func newPageFetcher(config *common.Config) (*web.PageFetcher, error) {
	extractor, err := web.NewContentExtractor(config.GetString(domain.ConfigKeyRetrievalExtractor))
	if err != nil {
		return nil, err
	}
	return web.NewPageFetcher(
		config.GetDurationOrDefault(domain.ConfigKeyRetrievalFetchTimeout, web.DefaultFetchTimeout),
		extractor,
		config.GetIntOrDefault(domain.ConfigKeyRetrievalMaxChars, web.DefaultMaxChars),
	), nil
}

func (a *api) Assess(ctx context.Context, imageURL, query string) (*domain.Assessment, error) {
	return a.assessmentService.Assess(ctx, imageURL, query)
}

func (a *api) AssessImage(ctx context.Context, img image.Image, query string) (*domain.Assessment, error) {
	return a.assessmentService.AssessImage(ctx, img, query)
}
