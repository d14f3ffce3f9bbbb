// Package gemini reports the models an API key can use as account quota
// models, using the Gemini API model list.
package gemini

import (
	"context"
	"net/http"
	"slices"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"google.golang.org/genai"

	"github.com/qisthidev/Antigravity-Manager/pkg/accounts"
	"github.com/qisthidev/Antigravity-Manager/pkg/errors"
	"github.com/qisthidev/Antigravity-Manager/pkg/logging"
	"github.com/qisthidev/Antigravity-Manager/pkg/modelkey"
)

const (
	providerName = "gemini"
	pageSize     = 100
)

type options struct {
	apiKey     string
	baseURL    string
	httpClient *http.Client
	logger     *zerolog.Logger
	now        func() time.Time
}

// Option configures a Source.
type Option func(*options) error

// WithAPIKey sets the Gemini API key.
func WithAPIKey(key string) Option {
	return func(o *options) error {
		o.apiKey = key
		return nil
	}
}

// WithBaseURL overrides the API endpoint.
func WithBaseURL(url string) Option {
	return func(o *options) error {
		o.baseURL = url
		return nil
	}
}

// WithHTTPClient sets the HTTP client used by the SDK.
func WithHTTPClient(c *http.Client) Option {
	return func(o *options) error {
		o.httpClient = c
		return nil
	}
}

// WithLogger sets the source logger.
func WithLogger(logger *zerolog.Logger) Option {
	return func(o *options) error {
		if logger != nil {
			o.logger = logger
		}
		return nil
	}
}

// Source lists models through the Gemini API.
type Source struct {
	client *genai.Client
	logger *zerolog.Logger
	now    func() time.Time
}

// New creates a Source. An API key is required.
func New(ctx context.Context, opts ...Option) (*Source, error) {
	o := &options{logger: logging.FromContext(ctx), now: time.Now}
	for _, opt := range opts {
		if err := opt(o); err != nil {
			return nil, err
		}
	}
	if o.apiKey == "" {
		return nil, &errors.AuthenticationError{
			Provider: providerName,
			Method:   "api_key",
			Message:  "GEMINI_API_KEY not set",
			Err:      errors.ErrAPIKeyRequired,
		}
	}

	cfg := &genai.ClientConfig{
		Backend:    genai.BackendGeminiAPI,
		APIKey:     o.apiKey,
		HTTPClient: o.httpClient,
	}
	if o.baseURL != "" {
		cfg.HTTPOptions = genai.HTTPOptions{BaseURL: o.baseURL}
	}

	client, err := genai.NewClient(ctx, cfg)
	if err != nil {
		return nil, errors.NewConfigError(providerName, "failed to create client", err)
	}
	return &Source{client: client, logger: o.logger, now: o.now}, nil
}

// ListModels returns every base model that supports content generation.
func (s *Source) ListModels(ctx context.Context) ([]accounts.ModelQuota, error) {
	var models []accounts.ModelQuota
	pageToken := ""

	for {
		config := &genai.ListModelsConfig{
			QueryBase: genai.Ptr(true),
			PageSize:  pageSize,
		}
		if pageToken != "" {
			config.PageToken = pageToken
		}

		response, err := s.client.Models.List(ctx, config)
		if err != nil {
			return nil, wrapAPIError(err)
		}

		for _, m := range response.Items {
			if q, ok := convert(m); ok {
				models = append(models, q)
			}
		}

		if response.NextPageToken == "" {
			break
		}
		pageToken = response.NextPageToken
	}

	s.logger.Debug().Int("models", len(models)).Msg("Listed Gemini models")
	return models, nil
}

// Refresh returns a copy of account whose quota models are replaced by the
// current model list.
func (s *Source) Refresh(ctx context.Context, account accounts.Account) (accounts.Account, error) {
	models, err := s.ListModels(logging.WithAccount(ctx, account.ID))
	if err != nil {
		return account, errors.WrapResource("fetch", "account", account.ID, err)
	}

	quota := accounts.Quota{}
	if account.Quota != nil {
		quota = *account.Quota
	}
	quota.Models = models
	quota.LastUpdated = s.now().Unix()
	account.Quota = &quota
	return account, nil
}

// Fetcher returns a FetchFunc that refreshes every account in list.
// Accounts that fail to refresh keep their previous quota. Once the API
// rejects the key or cannot serve, the remaining accounts are skipped and
// keep their previous quota too.
func (s *Source) Fetcher(list []accounts.Account) accounts.FetchFunc {
	return func(ctx context.Context) ([]accounts.Account, error) {
		out := make([]accounts.Account, 0, len(list))
		for i, a := range list {
			refreshed, err := s.Refresh(ctx, a)
			out = append(out, refreshed)
			if err == nil {
				continue
			}
			if errors.IsUpstreamExhausted(err) {
				s.logger.Warn().Err(err).
					Int("skipped", len(list)-i-1).
					Msg("Gemini API unusable, keeping previous quota for remaining accounts")
				return append(out, list[i+1:]...), nil
			}
			s.logger.Warn().Err(err).Str("account_id", a.ID).Msg("Keeping previous quota")
		}
		return out, nil
	}
}

func convert(m *genai.Model) (accounts.ModelQuota, bool) {
	if m == nil {
		return accounts.ModelQuota{}, false
	}
	if len(m.SupportedActions) > 0 && !slices.Contains(m.SupportedActions, "generateContent") {
		return accounts.ModelQuota{}, false
	}

	q := accounts.ModelQuota{
		Name:        modelID(m.Name),
		DisplayName: m.DisplayName,
	}
	if m.InputTokenLimit > 0 {
		v := int(m.InputTokenLimit)
		q.MaxTokens = &v
	}
	if m.OutputTokenLimit > 0 {
		v := int(m.OutputTokenLimit)
		q.MaxOutputTokens = &v
	}
	if modelkey.IsThinkingVariant(q.Name) {
		thinking := true
		q.SupportsThinking = &thinking
	}
	return q, true
}

// modelID strips the "models/" style prefix from a resource name.
func modelID(name string) string {
	if idx := strings.LastIndex(name, "/"); idx >= 0 {
		return name[idx+1:]
	}
	return name
}

func wrapAPIError(err error) error {
	var apiErr genai.APIError
	if errors.As(err, &apiErr) {
		return errors.WrapAPI(providerName, apiErr.Code, err)
	}
	var apiErrPtr *genai.APIError
	if errors.As(err, &apiErrPtr) && apiErrPtr != nil {
		return errors.WrapAPI(providerName, apiErrPtr.Code, err)
	}
	return errors.WrapAPI(providerName, 0, err)
}
