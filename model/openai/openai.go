// Package openai provides an OpenAI-compatible implementation of the model
// interface.
package openai

import (
	"context"
	"errors"
	"fmt"

	openai "github.com/openai/openai-go"
	openaiopt "github.com/openai/openai-go/option"
	"github.com/openai/openai-go/shared"

	"github.com/tripweaver-ai/tripweaver/model"
)

type options struct {
	APIKey        string
	BaseURL       string
	OpenAIOptions []openaiopt.RequestOption
}

// Option configures the model.
type Option func(*options)

// WithAPIKey sets the API key.
func WithAPIKey(key string) Option {
	return func(o *options) { o.APIKey = key }
}

// WithBaseURL points the client at an OpenAI-compatible endpoint.
func WithBaseURL(url string) Option {
	return func(o *options) { o.BaseURL = url }
}

// WithOpenAIOptions appends raw request options passed through to the
// underlying client.
func WithOpenAIOptions(opts ...openaiopt.RequestOption) Option {
	return func(o *options) { o.OpenAIOptions = append(o.OpenAIOptions, opts...) }
}

// Model calls an OpenAI-compatible chat completion API.
type Model struct {
	client openai.Client
	name   string
}

// New creates an OpenAI-like model.
func New(name string, opts ...Option) *Model {
	o := &options{}
	for _, opt := range opts {
		opt(o)
	}
	var clientOpts []openaiopt.RequestOption
	if o.APIKey != "" {
		clientOpts = append(clientOpts, openaiopt.WithAPIKey(o.APIKey))
	}
	if o.BaseURL != "" {
		clientOpts = append(clientOpts, openaiopt.WithBaseURL(o.BaseURL))
	}
	clientOpts = append(clientOpts, o.OpenAIOptions...)

	return &Model{
		client: openai.NewClient(clientOpts...),
		name:   name,
	}
}

// Info implements the model.Model interface.
func (m *Model) Info() model.Info {
	return model.Info{Name: m.name}
}

// GenerateContent implements the model.Model interface.
func (m *Model) GenerateContent(ctx context.Context, request *model.Request) (*model.Response, error) {
	if request == nil {
		return nil, errors.New("request cannot be nil")
	}

	chatRequest := openai.ChatCompletionNewParams{
		Model:    shared.ChatModel(m.name),
		Messages: convertMessages(request.Messages),
	}

	// Set response_format for native structured outputs when requested.
	if so := request.StructuredOutput; so != nil && so.Schema != nil {
		chatRequest.ResponseFormat = openai.ChatCompletionNewParamsResponseFormatUnion{
			OfJSONSchema: &shared.ResponseFormatJSONSchemaParam{
				JSONSchema: shared.ResponseFormatJSONSchemaJSONSchemaParam{
					Name:        so.Name,
					Schema:      so.Schema,
					Strict:      openai.Bool(so.Strict),
					Description: openai.String(so.Description),
				},
			},
		}
	}

	// MaxTokens is deprecated and not compatible with o-series models;
	// MaxCompletionTokens replaces it.
	if request.MaxTokens != nil {
		chatRequest.MaxCompletionTokens = openai.Int(int64(*request.MaxTokens))
	}
	if request.Temperature != nil {
		chatRequest.Temperature = openai.Float(*request.Temperature)
	}
	if request.TopP != nil {
		chatRequest.TopP = openai.Float(*request.TopP)
	}

	completion, err := m.client.Chat.Completions.New(ctx, chatRequest)
	if err != nil {
		return nil, fmt.Errorf("chat completion: %w", err)
	}
	if len(completion.Choices) == 0 {
		return nil, errors.New("chat completion returned no choices")
	}

	choice := completion.Choices[0]
	return &model.Response{
		Content:      choice.Message.Content,
		Model:        completion.Model,
		FinishReason: string(choice.FinishReason),
		Usage: &model.Usage{
			PromptTokens:     int(completion.Usage.PromptTokens),
			CompletionTokens: int(completion.Usage.CompletionTokens),
			TotalTokens:      int(completion.Usage.TotalTokens),
		},
	}, nil
}

// convertMessages converts our Message format to OpenAI's format.
func convertMessages(messages []model.Message) []openai.ChatCompletionMessageParamUnion {
	result := make([]openai.ChatCompletionMessageParamUnion, 0, len(messages))
	for _, msg := range messages {
		switch msg.Role {
		case model.RoleSystem:
			result = append(result, openai.SystemMessage(msg.Content))
		case model.RoleAssistant:
			result = append(result, openai.AssistantMessage(msg.Content))
		default:
			result = append(result, openai.UserMessage(msg.Content))
		}
	}
	return result
}
