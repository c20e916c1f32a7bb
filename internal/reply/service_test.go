package reply

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/tmc/langchaingo/llms"
)

// MockCompletionClient is a mock for LangChainGo's LLM interface.
type MockCompletionClient struct {
	mock.Mock
}

func (m *MockCompletionClient) Call(ctx context.Context, prompt string, options ...llms.CallOption) (string, error) {
	args := m.Called(ctx, prompt, options)
	return args.String(0), args.Error(1)
}

func (m *MockCompletionClient) GenerateContent(ctx context.Context, messages []llms.MessageContent, options ...llms.CallOption) (*llms.ContentResponse, error) {
	args := m.Called(ctx, messages, options)
	resp, _ := args.Get(0).(*llms.ContentResponse)
	return resp, args.Error(1)
}

func contentResponse(text string) *llms.ContentResponse {
	return &llms.ContentResponse{
		Choices: []*llms.ContentChoice{{Content: text}},
	}
}

func callOptions(options []llms.CallOption) llms.CallOptions {
	opts := llms.CallOptions{}
	for _, opt := range options {
		opt(&opts)
	}
	return opts
}

func messageText(msg llms.MessageContent) string {
	var text string
	for _, part := range msg.Parts {
		if p, ok := part.(llms.TextContent); ok {
			text += p.Text
		}
	}
	return text
}

func TestGenerateReply_Success(t *testing.T) {
	mockCompleter := new(MockCompletionClient)
	req := sampleRequest()
	bundle, err := BuildPrompt(req)
	require.NoError(t, err)

	mockCompleter.On("GenerateContent", mock.Anything, mock.Anything, mock.Anything).
		Return(contentResponse("\n  Hi Jo,\n\n  your order ships in 5-7 days.  \n"), nil)

	service := NewService(mockCompleter, Config{})
	text, err := service.GenerateReply(context.Background(), req)

	require.NoError(t, err)
	assert.Equal(t, "Hi Jo,\n\n  your order ships in 5-7 days.", text)

	mockCompleter.AssertNumberOfCalls(t, "GenerateContent", 1)
	call := mockCompleter.Calls[0]
	messages := call.Arguments.Get(1).([]llms.MessageContent)
	require.Len(t, messages, 2)
	assert.Equal(t, llms.ChatMessageTypeSystem, messages[0].Role)
	assert.Equal(t, bundle.SystemInstruction, messageText(messages[0]))
	assert.Equal(t, llms.ChatMessageTypeHuman, messages[1].Role)
	assert.Equal(t, bundle.UserPrompt, messageText(messages[1]))

	opts := callOptions(call.Arguments.Get(2).([]llms.CallOption))
	assert.Equal(t, DefaultModel, opts.Model)
	assert.Equal(t, 0.5, opts.Temperature)
	assert.Equal(t, 0.95, opts.TopP)
}

func TestGenerateReply_MissingFieldsNeverCallProvider(t *testing.T) {
	for name, req := range map[string]*Request{
		"no email":         {BusinessInfo: []KnowledgeItem{}, Tone: "calm"},
		"no business info": {Email: &Email{}, Tone: "calm"},
		"no tone":          {Email: &Email{}, BusinessInfo: []KnowledgeItem{}},
		"nothing":          {},
	} {
		t.Run(name, func(t *testing.T) {
			mockCompleter := new(MockCompletionClient)
			service := NewService(mockCompleter, Config{})

			_, err := service.GenerateReply(context.Background(), req)

			assert.ErrorIs(t, err, ErrMissingRequiredData)
			assert.True(t, IsValidationError(err))

			var replyErr *Error
			require.ErrorAs(t, err, &replyErr)
			assert.Equal(t, CodeMissingRequiredData, replyErr.Code)
			mockCompleter.AssertNotCalled(t, "GenerateContent", mock.Anything, mock.Anything, mock.Anything)
		})
	}
}

func TestGenerateReply_ProviderFailure(t *testing.T) {
	mockCompleter := new(MockCompletionClient)
	networkErr := errors.New("dial tcp: connection refused")
	mockCompleter.On("GenerateContent", mock.Anything, mock.Anything, mock.Anything).Return(nil, networkErr)

	service := NewService(mockCompleter, Config{})
	_, err := service.GenerateReply(context.Background(), sampleRequest())

	require.Error(t, err)
	assert.ErrorIs(t, err, networkErr)
	assert.False(t, IsValidationError(err))

	var replyErr *Error
	require.ErrorAs(t, err, &replyErr)
	assert.Equal(t, CodeProviderError, replyErr.Code)
}

func TestGenerateReply_EmptyChoices(t *testing.T) {
	mockCompleter := new(MockCompletionClient)
	mockCompleter.On("GenerateContent", mock.Anything, mock.Anything, mock.Anything).
		Return(&llms.ContentResponse{}, nil)

	service := NewService(mockCompleter, Config{})
	_, err := service.GenerateReply(context.Background(), sampleRequest())

	assert.ErrorIs(t, err, ErrEmptyCompletion)
}

func TestGenerateReply_CustomModel(t *testing.T) {
	mockCompleter := new(MockCompletionClient)
	mockCompleter.On("GenerateContent", mock.Anything, mock.Anything, mock.Anything).
		Return(contentResponse("ok"), nil)

	service := NewService(mockCompleter, Config{Model: "llama3"})
	_, err := service.GenerateReply(context.Background(), sampleRequest())
	require.NoError(t, err)

	assert.Equal(t, "llama3", service.Model())
	opts := callOptions(mockCompleter.Calls[0].Arguments.Get(2).([]llms.CallOption))
	assert.Equal(t, "llama3", opts.Model)
}

func TestGenerateReply_RequestTimeout(t *testing.T) {
	mockCompleter := new(MockCompletionClient)
	mockCompleter.On("GenerateContent", mock.Anything, mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) {
			ctx := args.Get(0).(context.Context)
			<-ctx.Done()
		}).
		Return(nil, context.DeadlineExceeded)

	service := NewService(mockCompleter, Config{RequestTimeout: 10 * time.Millisecond})
	_, err := service.GenerateReply(context.Background(), sampleRequest())

	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestGenerateReply_NoTimeoutByDefault(t *testing.T) {
	mockCompleter := new(MockCompletionClient)
	mockCompleter.On("GenerateContent", mock.Anything, mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) {
			_, hasDeadline := args.Get(0).(context.Context).Deadline()
			assert.False(t, hasDeadline)
		}).
		Return(contentResponse("ok"), nil)

	service := NewService(mockCompleter, Config{})
	_, err := service.GenerateReply(context.Background(), sampleRequest())

	assert.NoError(t, err)
}
