// Package llm generates question-set drafts from stored templates through
// an OpenAI-compatible endpoint. Generated JSON is only ever a pre-filled
// editor draft; nothing reaches the exam flow until a parent submits it.
package llm

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"kidexam/internal/model"
	"kidexam/internal/questionset"

	openai "github.com/sashabaranov/go-openai"
)

const agePlaceholder = "{AGE}"

// Client wraps an OpenAI-compatible API client.
type Client struct {
	api   *openai.Client
	model string
}

// New creates an LLM client for the given endpoint. The settings come from
// the household's stored LLM configuration.
func New(baseURL, apiKey, modelName string) *Client {
	config := openai.DefaultConfig(apiKey)
	if baseURL != "" {
		config.BaseURL = baseURL
	}
	return &Client{
		api:   openai.NewClientWithConfig(config),
		model: modelName,
	}
}

// Ping verifies the endpoint is reachable.
func (c *Client) Ping(ctx context.Context) error {
	if _, err := c.api.ListModels(ctx); err != nil {
		return fmt.Errorf("LLM endpoint unreachable: %w", err)
	}
	return nil
}

// RenderPrompt substitutes the kid's age into a template prompt.
func RenderPrompt(tpl model.SetTemplate, age int) string {
	return strings.ReplaceAll(tpl.Prompt, agePlaceholder, strconv.Itoa(age))
}

// GenerateQuestionSet asks the model for one question set following the
// given template prompt. The reply is validated through the same
// normalizer the editor uses; the raw reply is returned for the editor
// textarea either way.
func (c *Client) GenerateQuestionSet(ctx context.Context, tpl model.SetTemplate, age int) ([]model.QuestionSet, string, error) {
	userPrompt := RenderPrompt(tpl, age)

	resp, err := c.api.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: c.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: buildGenerateSystemPrompt(tpl)},
			{Role: openai.ChatMessageRoleUser, Content: userPrompt},
		},
		ResponseFormat: &openai.ChatCompletionResponseFormat{
			Type: openai.ChatCompletionResponseFormatTypeJSONObject,
		},
		Temperature: 0.7,
	})
	if err != nil {
		return nil, "", fmt.Errorf("LLM API call: %w", err)
	}
	if len(resp.Choices) == 0 {
		return nil, "", fmt.Errorf("LLM returned no choices")
	}

	raw := resp.Choices[0].Message.Content
	sets, err := questionset.Parse(raw)
	if err != nil {
		return nil, raw, fmt.Errorf("generated reply is not a question set: %w", err)
	}
	if len(sets) == 0 {
		return nil, raw, fmt.Errorf("generated reply contained no question sets")
	}
	return sets, raw, nil
}

func buildGenerateSystemPrompt(tpl model.SetTemplate) string {
	var sb strings.Builder
	sb.WriteString("You are an exam author for young children. ")
	sb.WriteString("Produce exactly one question set as a JSON object with this shape:\n\n")
	sb.WriteString(`{"id": <number>, "name": "<name>", "active": true, `)
	sb.WriteString(`"question_set_template_id": "` + tpl.ID + `", `)
	sb.WriteString(`"question_set_template_version": ` + strconv.FormatInt(tpl.Version, 10) + `, `)
	sb.WriteString(`"max_score": <number>, "sections": [{"id": "A", "text": "<instruction>", `)
	sb.WriteString(`"questions": [{"id": "A.1", "question": "<text>", `)
	sb.WriteString(`"options": [{"text": "<choice>", "score": <number>}]}]}]}`)
	sb.WriteString("\n\nRULES:\n")
	sb.WriteString("- Every question has 3 to 4 options.\n")
	sb.WriteString("- Correct options carry a positive score, wrong options 0.\n")
	sb.WriteString("- A clearly misleading option may carry a small negative score.\n")
	sb.WriteString("- max_score is the sum of all positive option scores.\n")
	sb.WriteString("- Respond with the JSON object only, no commentary.\n")
	return sb.String()
}
