package configloader

import (
	"testing"

	"github.com/markward/mdlint/pkg/config"
)

func TestValidate_ExternalTools_InvalidOnError(t *testing.T) {
	cfg := config.NewConfig()
	cfg.ExternalTools.OnError = "ignore-it"

	result := Validate(cfg)

	found := false
	for _, e := range result.Errors {
		if e.Field == "external_tools.on_error" {
			found = true
		}
	}
	if !found {
		t.Errorf("expected an error for invalid external_tools.on_error, got %+v", result.Errors)
	}
}

func TestValidate_ExternalTools_NegativeTimeout(t *testing.T) {
	cfg := config.NewConfig()
	cfg.ExternalTools.TimeoutMS = -1

	result := Validate(cfg)

	found := false
	for _, e := range result.Errors {
		if e.Field == "external_tools.timeout_ms" {
			found = true
		}
	}
	if !found {
		t.Errorf("expected an error for negative timeout_ms, got %+v", result.Errors)
	}
}

func TestValidate_ExternalTools_UnknownToolWarns(t *testing.T) {
	cfg := config.NewConfig()
	cfg.ExternalTools.LanguageTools = map[string]string{"python": "not-a-real-tool"}

	result := Validate(cfg)

	found := false
	for _, w := range result.Warnings {
		if w.Field == "external_tools.language_tools.python" {
			found = true
		}
	}
	if !found {
		t.Errorf("expected a warning for unknown tool id, got %+v", result.Warnings)
	}
}

func TestValidate_ExternalTools_DefaultsAreValid(t *testing.T) {
	cfg := config.NewConfig()

	result := Validate(cfg)

	for _, e := range result.Errors {
		if e.Field == "external_tools.on_error" || e.Field == "external_tools.timeout_ms" {
			t.Errorf("unexpected error on default config: %+v", e)
		}
	}
	for _, w := range result.Warnings {
		if w.Field != "" && len(w.Field) > len("external_tools.language_tools.") &&
			w.Field[:len("external_tools.language_tools.")] == "external_tools.language_tools." {
			t.Errorf("unexpected warning on default language_tools: %+v", w)
		}
	}
}
