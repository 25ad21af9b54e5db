package openai

import (
	"errors"
	"net/http"

	"github.com/sashabaranov/go-openai"

	"meeting-digest/internal/app/api"
)

// ProviderName labels errors and metrics
const ProviderName = "openai"

// ClientOptions configure the OpenAI client
type ClientOptions struct {
	APIKey     string
	BaseURL    string
	HTTPClient *http.Client
}

// NewClient builds a client from explicit options. An empty BaseURL keeps
// the library default.
func NewClient(opts ClientOptions) *openai.Client {
	config := openai.DefaultConfig(opts.APIKey)
	if opts.BaseURL != "" {
		config.BaseURL = opts.BaseURL
	}
	if opts.HTTPClient != nil {
		config.HTTPClient = opts.HTTPClient
	}
	return openai.NewClientWithConfig(config)
}

// ClassifyError converts a go-openai error into an UpstreamError carrying
// the upstream status and message.
func ClassifyError(err error) *api.UpstreamError {
	if upErr, ok := api.ClassifyTransport(ProviderName, err); ok {
		return upErr
	}

	var apiErr *openai.APIError
	if errors.As(err, &apiErr) {
		return api.FromStatus(ProviderName, apiErr.HTTPStatusCode, apiErr.Message, err)
	}

	var reqErr *openai.RequestError
	if errors.As(err, &reqErr) {
		message := ""
		if reqErr.Err != nil {
			message = reqErr.Err.Error()
		}
		return api.FromStatus(ProviderName, reqErr.HTTPStatusCode, message, err)
	}

	return &api.UpstreamError{
		Provider: ProviderName,
		Code:     api.CodeUnknown,
		Message:  err.Error(),
		Err:      err,
	}
}
