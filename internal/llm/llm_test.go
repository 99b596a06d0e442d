package llm

import (
	"strings"
	"testing"

	"kidexam/internal/model"
)

func TestRenderPrompt(t *testing.T) {
	tests := []struct {
		name   string
		prompt string
		age    int
		want   string
	}{
		{
			"age substituted",
			"Create a Primary 1 Term 1 English assessment appropriate for a child aged {AGE}.",
			7,
			"Create a Primary 1 Term 1 English assessment appropriate for a child aged 7.",
		},
		{
			"multiple placeholders",
			"Age {AGE} material, suitable for {AGE}-year-olds.",
			6,
			"Age 6 material, suitable for 6-year-olds.",
		},
		{
			"no placeholder",
			"Generate a math quiz.",
			8,
			"Generate a math quiz.",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := RenderPrompt(model.SetTemplate{Prompt: tt.prompt}, tt.age)
			if got != tt.want {
				t.Errorf("RenderPrompt() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestBuildGenerateSystemPrompt(t *testing.T) {
	tpl := model.SetTemplate{
		ID:      "5",
		Name:    "P1_Term1_English",
		Version: 202512011515,
		Prompt:  "Create an assessment for age {AGE}.",
	}

	prompt := buildGenerateSystemPrompt(tpl)
	if !strings.Contains(prompt, `"question_set_template_id": "5"`) {
		t.Error("prompt should pin the template id")
	}
	if !strings.Contains(prompt, `"question_set_template_version": 202512011515`) {
		t.Error("prompt should pin the template version")
	}
	if !strings.Contains(prompt, `"options"`) {
		t.Error("prompt should describe the option shape")
	}
	if !strings.Contains(prompt, "negative score") {
		t.Error("prompt should mention penalized options")
	}
	if !strings.Contains(prompt, "JSON object only") {
		t.Error("prompt should demand bare JSON")
	}
}
