package planning

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/bytedance/sonic"
	"github.com/riordanpawley/taskflow/internal/domain"
)

// prompts for the Gemini API
const (
	planInstruction = `You are an expert Agile Project Manager. You break down vague requirements into actionable, technical, and business tasks.`

	planPrompt = `Create a detailed breakdown of tasks to achieve this goal: "%s".
Break it down into 3-6 actionable tasks. Keep descriptions concise but clear. Suggest reasonable tags.`

	enhanceInstruction = `You are a Technical Writer. Rewrite the following task description to be professional, clear, and formatted with Markdown (bullet points where applicable). Keep it under 150 words.`

	enhancePrompt = "Title: %s\nDraft Description: %s"
)

const (
	mimeJSON = "application/json"
	mimeText = "text/plain"
)

// generateRequest is the body of a models/{model}:generateContent call
type generateRequest struct {
	Contents          []content         `json:"contents"`
	SystemInstruction *content          `json:"systemInstruction,omitempty"`
	GenerationConfig  *generationConfig `json:"generationConfig,omitempty"`
}

type content struct {
	Role  string `json:"role,omitempty"`
	Parts []part `json:"parts"`
}

type part struct {
	Text string `json:"text"`
}

type generationConfig struct {
	ResponseMimeType string  `json:"responseMimeType,omitempty"`
	ResponseSchema   *schema `json:"responseSchema,omitempty"`
}

// schema is the OpenAPI subset Gemini accepts for structured output
type schema struct {
	Type       string             `json:"type"`
	Items      *schema            `json:"items,omitempty"`
	Properties map[string]*schema `json:"properties,omitempty"`
	Required   []string           `json:"required,omitempty"`
	Enum       []string           `json:"enum,omitempty"`
}

// planSchema describes the array of tasks a plan reply must contain
func planSchema() *schema {
	priorities := make([]string, len(domain.Priorities))
	for i, p := range domain.Priorities {
		priorities[i] = string(p)
	}

	return &schema{
		Type: "ARRAY",
		Items: &schema{
			Type: "OBJECT",
			Properties: map[string]*schema{
				"title":       {Type: "STRING"},
				"description": {Type: "STRING"},
				"priority":    {Type: "STRING", Enum: priorities},
				"tags":        {Type: "ARRAY", Items: &schema{Type: "STRING"}},
			},
			Required: []string{"title", "description", "priority"},
		},
	}
}

// generateResponse is the subset of the reply we read
type generateResponse struct {
	Candidates []struct {
		Content      content `json:"content"`
		FinishReason string  `json:"finishReason"`
	} `json:"candidates"`
	PromptFeedback *struct {
		BlockReason string `json:"blockReason"`
	} `json:"promptFeedback,omitempty"`
}

// text joins the parts of the first candidate
func (r *generateResponse) text() string {
	if len(r.Candidates) == 0 {
		return ""
	}
	var b strings.Builder
	for _, p := range r.Candidates[0].Content.Parts {
		b.WriteString(p.Text)
	}
	return b.String()
}

// apiError is returned for non-2xx replies
type apiError struct {
	StatusCode int
	Body       string
}

func (e *apiError) Error() string {
	return fmt.Sprintf("API request failed with status %d: %s", e.StatusCode, e.Body)
}

func (e *apiError) retryable() bool {
	return e.StatusCode == 429 || e.StatusCode >= 500
}

var fencedJSON = regexp.MustCompile("```(?:json)?\\s*([\\s\\S]*?)```")

// parsePlan decodes a plan reply and validates it item by item
func parsePlan(text string) ([]domain.TaskDraft, error) {
	raw := strings.TrimSpace(text)
	if matches := fencedJSON.FindStringSubmatch(raw); len(matches) > 1 {
		raw = strings.TrimSpace(matches[1])
	}

	var items []map[string]interface{}
	if err := sonic.UnmarshalString(raw, &items); err != nil {
		return nil, fmt.Errorf("failed to parse JSON: %w", err)
	}

	drafts := make([]domain.TaskDraft, 0, len(items))
	for i, item := range items {
		draft, err := draftFromItem(item)
		if err != nil {
			return nil, fmt.Errorf("task %d: %w", i, err)
		}
		drafts = append(drafts, draft)
	}
	return drafts, nil
}

func draftFromItem(item map[string]interface{}) (domain.TaskDraft, error) {
	if item == nil {
		return domain.TaskDraft{}, fmt.Errorf("not an object")
	}

	title, err := requiredString(item, "title")
	if err != nil {
		return domain.TaskDraft{}, err
	}
	description, err := requiredString(item, "description")
	if err != nil {
		return domain.TaskDraft{}, err
	}
	rawPriority, err := requiredString(item, "priority")
	if err != nil {
		return domain.TaskDraft{}, err
	}
	priority, err := domain.ParsePriority(rawPriority)
	if err != nil {
		return domain.TaskDraft{}, err
	}

	tags := []string{}
	if v, ok := item["tags"]; ok && v != nil {
		list, ok := v.([]interface{})
		if !ok {
			return domain.TaskDraft{}, fmt.Errorf("tags: expected array, got %T", v)
		}
		for _, tag := range list {
			s, ok := tag.(string)
			if !ok {
				return domain.TaskDraft{}, fmt.Errorf("tags: expected string, got %T", tag)
			}
			tags = append(tags, s)
		}
	}

	return domain.TaskDraft{
		Title:       title,
		Description: description,
		Status:      string(domain.StatusTodo),
		Priority:    string(priority),
		Tags:        tags,
	}, nil
}

func requiredString(item map[string]interface{}, key string) (string, error) {
	v, ok := item[key]
	if !ok || v == nil {
		return "", fmt.Errorf("missing %s", key)
	}
	s, ok := v.(string)
	if !ok {
		return "", fmt.Errorf("%s: expected string, got %T", key, v)
	}
	return s, nil
}
