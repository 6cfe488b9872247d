package engine

import (
	"os"
	"path/filepath"
	"testing"
)

func TestValidateCategoryConfig_Valid(t *testing.T) {
	if err := ValidateCategoryConfig(createTestCategory()); err != nil {
		t.Errorf("expected valid config, got %v", err)
	}
}

func TestValidateCategoryConfig_Errors(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(cfg *CategoryConfig)
	}{
		{"missing name", func(cfg *CategoryConfig) { cfg.Name = "" }},
		{"no tiles", func(cfg *CategoryConfig) { cfg.Tiles = nil }},
		{"unknown tile type", func(cfg *CategoryConfig) { cfg.Tiles[0].Type = "teleport" }},
		{"untitled tile", func(cfg *CategoryConfig) { cfg.Tiles[1].Title = "" }},
		{"tax percent too high", func(cfg *CategoryConfig) { cfg.Tiles[3].Percent = 150 }},
		{"tax percent negative", func(cfg *CategoryConfig) { cfg.Tiles[3].Percent = -5 }},
		{"negative save target", func(cfg *CategoryConfig) { cfg.Tiles[4].Points = -100 }},
		{"non-numeric level key", func(cfg *CategoryConfig) {
			cfg.QuizLevels["beginner"] = cfg.QuizLevels["1"]
		}},
		{"quiz without question", func(cfg *CategoryConfig) {
			cfg.QuizBank[0].Question = ""
		}},
		{"quiz with one choice", func(cfg *CategoryConfig) {
			cfg.QuizBank[0].Choices = []string{"only"}
			cfg.QuizBank[0].Correct = 0
		}},
		{"correct index out of range", func(cfg *CategoryConfig) {
			cfg.QuizBank[0].Correct = 5
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := createTestCategory()
			tt.mutate(cfg)
			if err := ValidateCategoryConfig(cfg); err == nil {
				t.Error("expected validation error")
			}
		})
	}
}

func TestValidateCategoryConfig_Nil(t *testing.T) {
	if err := ValidateCategoryConfig(nil); err == nil {
		t.Error("expected error for nil config")
	}
}

func TestLoadCategoryConfig(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "category.json")
	data := `{
		"name": "File Category",
		"tiles": [
			{"type": "start", "title": "START"},
			{"type": "income", "title": "Payday", "points": 12000},
			{"type": "tax", "title": "City Tax", "percent": 5}
		],
		"quizLevels": {
			"1": [{"q": "1+1?", "choices": ["2", "3"], "correct": 0}]
		},
		"eduText": {"income": "Earned income."}
	}`
	if err := os.WriteFile(path, []byte(data), 0644); err != nil {
		t.Fatalf("failed to write fixture: %v", err)
	}

	cfg, err := LoadCategoryConfig(path)
	if err != nil {
		t.Fatalf("failed to load category: %v", err)
	}
	if cfg.Name != "File Category" || len(cfg.Tiles) != 3 {
		t.Errorf("unexpected config: %+v", cfg)
	}
	if cfg.EduText[TileIncome] != "Earned income." {
		t.Errorf("expected eduText keyed by tile type, got %+v", cfg.EduText)
	}
}

func TestLoadCategoryConfig_InvalidRejected(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "bad.json")
	if err := os.WriteFile(path, []byte(`{"name": "Bad", "tiles": []}`), 0644); err != nil {
		t.Fatalf("failed to write fixture: %v", err)
	}
	if _, err := LoadCategoryConfig(path); err == nil {
		t.Error("expected error for tileless category")
	}
}

func TestLoadCategoryConfig_MissingFile(t *testing.T) {
	if _, err := LoadCategoryConfig(filepath.Join(t.TempDir(), "nope.json")); err == nil {
		t.Error("expected error for missing file")
	}
}
