// Package translator back-fills Hindi worker descriptions from the English
// text through an OpenAI-compatible chat-completion endpoint. Translation is
// best effort: any failure leaves the Hindi field empty rather than blocking
// the profile update.
package translator

import (
	"context"
	"fmt"
	"strings"

	openai "github.com/sashabaranov/go-openai"
)

const (
	deepSeekBaseURL = "https://api.deepseek.com"
	deepSeekModel   = "deepseek-chat"
)

// Translator - English to Hindi translation
type Translator interface {
	TranslateToHindi(ctx context.Context, text string) (string, error)
}

// DeepSeekTranslator uses the DeepSeek chat API through the OpenAI SDK
type DeepSeekTranslator struct {
	client *openai.Client
}

// NewDeepSeekTranslator - create a translator; returns nil when no key is set
func NewDeepSeekTranslator(apiKey string) *DeepSeekTranslator {
	if apiKey == "" {
		return nil
	}

	config := openai.DefaultConfig(apiKey)
	config.BaseURL = deepSeekBaseURL

	return &DeepSeekTranslator{
		client: openai.NewClientWithConfig(config),
	}
}

// TranslateToHindi translates one description
func (t *DeepSeekTranslator) TranslateToHindi(ctx context.Context, text string) (string, error) {
	if strings.TrimSpace(text) == "" {
		return "", nil
	}

	resp, err := t.client.CreateChatCompletion(
		ctx,
		openai.ChatCompletionRequest{
			Model: deepSeekModel,
			Messages: []openai.ChatCompletionMessage{
				{
					Role: openai.ChatMessageRoleSystem,
					Content: "You are a professional translator for a local home-services marketplace. " +
						"Translate the user's text from English to Hindi. " +
						"Output ONLY the Hindi translation, no explanations, no markdown.",
				},
				{
					Role:    openai.ChatMessageRoleUser,
					Content: text,
				},
			},
			Temperature: 0.3, // keep translations consistent
			MaxTokens:   500,
		},
	)
	if err != nil {
		return "", fmt.Errorf("translation API error: %w", err)
	}

	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("no response from translation API")
	}

	return strings.TrimSpace(resp.Choices[0].Message.Content), nil
}
