package main

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeTempCatalog(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "catalog.json")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("Failed to write temp catalog: %v", err)
	}
	return path
}

func TestValidateCatalog_Valid(t *testing.T) {
	path := writeTempCatalog(t, `{
		"default": "basics",
		"categories": {
			"basics": {
				"name": "Basics",
				"tiles": [
					{"type": "start", "title": "Start"},
					{"type": "income", "title": "Pay", "points": 10000},
					{"type": "expense", "title": "Rent", "points": 5000},
					{"type": "bonus", "title": "Quiz"}
				],
				"quizLevels": {
					"1": [{"q": "2+2?", "choices": ["3", "4"], "correct": 1}]
				}
			}
		}
	}`)

	result := validateCatalog(path)
	if !result.Valid {
		t.Fatalf("Expected valid catalog, got errors: %v", result.Errors)
	}

	joined := strings.Join(result.Errors, "\n")
	if !strings.Contains(joined, "Categories: 1") {
		t.Errorf("Expected category count in info, got: %s", joined)
	}
	if !strings.Contains(joined, "4 tiles") {
		t.Errorf("Expected tile count in info, got: %s", joined)
	}
}

func TestValidateCatalog_MissingFile(t *testing.T) {
	result := validateCatalog("/non/existent/catalog.json")
	if result.Valid {
		t.Error("Expected invalid result for a missing file")
	}
}

func TestValidateCatalog_InvalidJSON(t *testing.T) {
	path := writeTempCatalog(t, `{not valid json`)

	result := validateCatalog(path)
	if result.Valid {
		t.Error("Expected invalid result for malformed JSON")
	}
	if !strings.Contains(strings.Join(result.Errors, " "), "Invalid JSON") {
		t.Errorf("Expected JSON error, got: %v", result.Errors)
	}
}

func TestValidateCatalog_EmptyCatalog(t *testing.T) {
	path := writeTempCatalog(t, `{"categories": {}}`)

	result := validateCatalog(path)
	if result.Valid {
		t.Error("Expected invalid result for an empty catalog")
	}
}

func TestValidateCatalog_BadDefault(t *testing.T) {
	path := writeTempCatalog(t, `{
		"default": "ghost",
		"categories": {
			"basics": {
				"name": "Basics",
				"tiles": [
					{"type": "start", "title": "Start"},
					{"type": "income", "title": "Pay", "points": 1000}
				]
			}
		}
	}`)

	result := validateCatalog(path)
	if result.Valid {
		t.Error("Expected invalid result for an undefined default")
	}
	if !strings.Contains(strings.Join(result.Errors, " "), "ghost") {
		t.Errorf("Expected the bad default to be named, got: %v", result.Errors)
	}
}

func TestValidateCatalog_UnknownTileType(t *testing.T) {
	path := writeTempCatalog(t, `{
		"categories": {
			"broken": {
				"name": "Broken",
				"tiles": [{"type": "teleport", "title": "Zap"}]
			}
		}
	}`)

	result := validateCatalog(path)
	if result.Valid {
		t.Error("Expected invalid result for an unknown tile type")
	}
}

func TestValidateCatalog_BonusWithoutQuizzes(t *testing.T) {
	path := writeTempCatalog(t, `{
		"categories": {
			"quizless": {
				"name": "Quizless",
				"tiles": [
					{"type": "start", "title": "Start"},
					{"type": "income", "title": "Pay", "points": 1000},
					{"type": "bonus", "title": "Quiz"}
				]
			}
		}
	}`)

	result := validateCatalog(path)
	if result.Valid {
		t.Error("Expected invalid result: bonus tiles but no quiz questions")
	}
	if !strings.Contains(strings.Join(result.Errors, " "), "no quiz questions") {
		t.Errorf("Expected the quiz gap to be reported, got: %v", result.Errors)
	}
}

func TestValidateCatalog_NoIncomeTiles(t *testing.T) {
	path := writeTempCatalog(t, `{
		"categories": {
			"drain": {
				"name": "Drain",
				"tiles": [
					{"type": "start", "title": "Start"},
					{"type": "expense", "title": "Rent", "points": 5000}
				]
			}
		}
	}`)

	result := validateCatalog(path)
	if result.Valid {
		t.Error("Expected invalid result for a deck with no income")
	}
	if !strings.Contains(strings.Join(result.Errors, " "), "no income tiles") {
		t.Errorf("Expected the income gap to be reported, got: %v", result.Errors)
	}
}

func TestValidateCatalog_BadQuizItem(t *testing.T) {
	path := writeTempCatalog(t, `{
		"categories": {
			"badquiz": {
				"name": "Bad Quiz",
				"tiles": [
					{"type": "start", "title": "Start"},
					{"type": "income", "title": "Pay", "points": 1000}
				],
				"quizBank": [{"q": "2+2?", "choices": ["4"], "correct": 0}]
			}
		}
	}`)

	result := validateCatalog(path)
	if result.Valid {
		t.Error("Expected invalid result for a single-choice quiz item")
	}
}
