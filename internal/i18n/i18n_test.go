package i18n

import (
	"context"
	"testing"
)

func initLang(t *testing.T, lang string) context.Context {
	t.Helper()
	if err := Init(lang); err != nil {
		t.Fatalf("Init(%q): %v", lang, err)
	}
	return WithLocalizer(context.Background(), lang)
}

func TestTranslateEnglish(t *testing.T) {
	ctx := initLang(t, "en")

	got := T(ctx, "AppTitle")
	if got != "Kid Exam" {
		t.Errorf("T(AppTitle) = %q, want 'Kid Exam'", got)
	}

	got = T(ctx, "ExamFinish")
	if got != "Finish" {
		t.Errorf("T(ExamFinish) = %q, want 'Finish'", got)
	}
}

func TestTemplateDataTranslation(t *testing.T) {
	ctx := initLang(t, "en")

	got := Td(ctx, "ExamQuestionOf", map[string]any{"Number": 3, "Total": 10})
	if got != "Question 3 of 10" {
		t.Errorf("Td(ExamQuestionOf) = %q, want 'Question 3 of 10'", got)
	}
}

func TestMissingKey(t *testing.T) {
	ctx := initLang(t, "en")

	got := T(ctx, "NonExistentKey")
	if got != "NonExistentKey" {
		t.Errorf("T(NonExistentKey) = %q, want 'NonExistentKey'", got)
	}
}

func TestFallbackWithoutLocalizer(t *testing.T) {
	if err := Init("en"); err != nil {
		t.Fatalf("Init: %v", err)
	}

	got := T(context.Background(), "AppTitle")
	if got != "Kid Exam" {
		t.Errorf("T without localizer = %q, want 'Kid Exam'", got)
	}
}
