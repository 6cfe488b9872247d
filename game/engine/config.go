package engine

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"
)

// CategoryConfig is the per-category game configuration supplied as data.
// The engine treats it as read-only for the lifetime of a session.
type CategoryConfig struct {
	Name string `json:"name"`

	// Tiles are addressed cyclically by position % len(Tiles), so the deck
	// may be shorter than the ring.
	Tiles []Tile `json:"tiles"`

	// QuizLevels holds level-partitioned banks keyed "1".."3". QuizBank is
	// the flat legacy fallback used when a level bank is missing.
	QuizLevels map[string][]QuizItem `json:"quizLevels,omitempty"`
	QuizBank   []QuizItem            `json:"quizBank,omitempty"`

	// EduText maps a tile type to the educational line shown alongside the
	// tile notification.
	EduText map[TileType]string `json:"eduText,omitempty"`
}

// validTileTypes enumerates the accepted tile type tags.
var validTileTypes = map[TileType]bool{
	TileStart:   true,
	TileIncome:  true,
	TileExpense: true,
	TileTax:     true,
	TileSave:    true,
	TileBonus:   true,
	TilePenalty: true,
}

// ValidateCategoryConfig validates a category for correctness and
// playability. Tiles and quiz items are checked here, at load time, so the
// resolvers never have to guard against malformed data.
func ValidateCategoryConfig(cfg *CategoryConfig) error {
	if cfg == nil {
		return fmt.Errorf("category validation: config is nil")
	}
	if cfg.Name == "" {
		return fmt.Errorf("category validation: name is required")
	}
	if len(cfg.Tiles) == 0 {
		return fmt.Errorf("category validation: at least one tile is required")
	}

	for i, tile := range cfg.Tiles {
		if !validTileTypes[tile.Type] {
			return fmt.Errorf("category validation: tile %d has unknown type %q", i, tile.Type)
		}
		if tile.Title == "" {
			return fmt.Errorf("category validation: tile %d (%s) is missing a title", i, tile.Type)
		}
		switch tile.Type {
		case TileTax:
			if tile.Percent < 0 || tile.Percent > 100 {
				return fmt.Errorf("category validation: tile %d (tax) percent must be 0..100, got %d", i, tile.Percent)
			}
		case TileSave:
			if tile.Points < 0 {
				return fmt.Errorf("category validation: tile %d (save) points must be non-negative, got %d", i, tile.Points)
			}
		}
	}

	for level, bank := range cfg.QuizLevels {
		if _, err := strconv.Atoi(level); err != nil {
			return fmt.Errorf("category validation: quizLevels key %q is not a level number", level)
		}
		for i, item := range bank {
			if err := validateQuizItem(item); err != nil {
				return fmt.Errorf("category validation: quizLevels[%s][%d]: %v", level, i, err)
			}
		}
	}
	for i, item := range cfg.QuizBank {
		if err := validateQuizItem(item); err != nil {
			return fmt.Errorf("category validation: quizBank[%d]: %v", i, err)
		}
	}

	return nil
}

func validateQuizItem(item QuizItem) error {
	if item.Question == "" {
		return fmt.Errorf("question text is required")
	}
	if len(item.Choices) < 2 {
		return fmt.Errorf("at least two choices are required, got %d", len(item.Choices))
	}
	if item.Correct < 0 || item.Correct >= len(item.Choices) {
		return fmt.Errorf("correct index %d out of range for %d choices", item.Correct, len(item.Choices))
	}
	return nil
}

// LoadCategoryConfig loads and validates a single category from a JSON file.
func LoadCategoryConfig(filename string) (*CategoryConfig, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, err
	}

	var cfg CategoryConfig
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse category config: %w", err)
	}

	if err := ValidateCategoryConfig(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}
