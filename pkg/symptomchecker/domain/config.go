package domain

// A list of built-in config keys (config.yaml). Every key has a sensible default, so the config file is optional.

const (
	// ConfigKeyLogPath file path where to save the logs
	ConfigKeyLogPath = "logPath"
	// ConfigKeyDotEnvPath path to an optional .env file which is loaded into the environment before credentials are resolved
	ConfigKeyDotEnvPath = "dotEnvPath"
	// ConfigKeyCredentialsParamPrefix if set, credentials are also looked up in the AWS SSM Parameter Store under
	// this prefix (for example, "/symptomchecker" looks up "/symptomchecker/WATSONX_EU_APIKEY")
	ConfigKeyCredentialsParamPrefix = "credentialsParamPrefix"
	// ConfigKeyWatsonxAPIKey the API key, if one prefers to store it in the config file instead of the environment
	ConfigKeyWatsonxAPIKey = "watsonxAPIKey"
	// ConfigKeyWatsonxProjectID the project id (see ConfigKeyWatsonxAPIKey)
	ConfigKeyWatsonxProjectID = "watsonxProjectID"
	// ConfigKeyWatsonxURL the regional endpoint (see ConfigKeyWatsonxAPIKey)
	ConfigKeyWatsonxURL = "watsonxURL"
	// ConfigKeyIAMURL where API keys are exchanged for bearer tokens
	ConfigKeyIAMURL = "iamURL"
	// ConfigKeyChatAPIVersion the version date passed to the chat endpoint
	ConfigKeyChatAPIVersion = "chatAPIVersion"
	// ConfigKeyModelID the hosted vision model to use
	ConfigKeyModelID = "modelID"
	// ConfigKeyMaxTokens the upper bound of the generated output
	ConfigKeyMaxTokens = "maxTokens"
	// ConfigKeyTemperature 0.0 means deterministic sampling
	ConfigKeyTemperature = "temperature"
	// ConfigKeyInferenceTimeout when to give up on the hosted model, in milliseconds (0, the default, means no timeout)
	ConfigKeyInferenceTimeout = "inferenceTimeout"
	// ConfigKeyVerifierModelID an optional second model which receives the same messages as a cross-check
	ConfigKeyVerifierModelID = "verifierModelID"
	// ConfigKeyImageFetchTimeout the timeout for downloading the image, in milliseconds
	ConfigKeyImageFetchTimeout = "imageFetchTimeout"
	// ConfigKeyRetrievalFetchTimeout the timeout for downloading each retrieval source, in milliseconds
	ConfigKeyRetrievalFetchTimeout = "retrievalFetchTimeout"
	// ConfigKeyRetrievalMaxChars how many characters of each fetched source are kept
	ConfigKeyRetrievalMaxChars = "retrievalMaxChars"
	// ConfigKeyRetrievalSources the list of page URLs to fetch snippets from
	ConfigKeyRetrievalSources = "retrievalSources"
	// ConfigKeyRetrievalSourcesFile a file with page URLs (one per line), appended to ConfigKeyRetrievalSources
	ConfigKeyRetrievalSourcesFile = "retrievalSourcesFile"
	// ConfigKeyRetrievalExtractor how page text is extracted: "raw" (the body as is) or "html" (title and paragraphs)
	ConfigKeyRetrievalExtractor = "retrievalExtractor"
	// ConfigKeyRetrievalFeedSources RSS/Atom feeds whose items are used as additional snippets
	ConfigKeyRetrievalFeedSources = "retrievalFeedSources"
	// ConfigKeyRetrievalWikiArticleCount how many Wikipedia articles to summarize for the query (0 disables Wikipedia)
	ConfigKeyRetrievalWikiArticleCount = "retrievalWikiArticleCount"
	// ConfigKeyRetrievalFilter the snippet filter heuristic: "firstWord", "anyWord" or "none"
	ConfigKeyRetrievalFilter = "retrievalFilter"
	// ConfigKeyDisplayedSnippetCount how many snippets are printed
	ConfigKeyDisplayedSnippetCount = "displayedSnippetCount"
	// ConfigKeyDisplayedSnippetSize how many characters of each snippet are printed
	ConfigKeyDisplayedSnippetSize = "displayedSnippetSize"
	// ConfigKeyOutputWidth the column at which the model's answer is wrapped
	ConfigKeyOutputWidth = "outputWidth"
)
