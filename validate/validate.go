// Command validate provides a small CLI that validates category catalog JSON
// files in the ../configs directory. It checks:
//   - JSON structure and required fields
//   - Tile types and per-type fields (tax percent range, save amounts)
//   - Quiz banks (question text, choice counts, correct index range)
//   - Playability: bonus tiles require at least one quiz question
//   - Economy: each deck needs at least one income source
package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/smartone/finance-board-game/game/engine"
)

// Catalog mirrors the JSON schema of a catalog file.
type Catalog struct {
	Categories map[string]*engine.CategoryConfig `json:"categories"`
	Default    string                            `json:"default,omitempty"`
}

// ValidationResult captures the outcome of validating a single file.
// If Valid is true, Errors contains informational messages; otherwise it
// accumulates the validation errors that were found.
type ValidationResult struct {
	File   string
	Valid  bool
	Errors []string
}

// validateCatalog loads and validates a single catalog JSON file. It runs
// the engine's per-category validator, then layers on playability checks the
// engine itself does not care about.
func validateCatalog(filePath string) ValidationResult {
	result := ValidationResult{
		File:   filepath.Base(filePath),
		Valid:  true,
		Errors: []string{},
	}

	data, err := os.ReadFile(filePath)
	if err != nil {
		result.Valid = false
		result.Errors = append(result.Errors, fmt.Sprintf("Failed to read file: %v", err))
		return result
	}

	var catalog Catalog
	if err := json.Unmarshal(data, &catalog); err != nil {
		result.Valid = false
		result.Errors = append(result.Errors, fmt.Sprintf("Invalid JSON: %v", err))
		return result
	}

	if len(catalog.Categories) == 0 {
		result.Valid = false
		result.Errors = append(result.Errors, "Catalog has no categories")
		return result
	}

	if catalog.Default != "" {
		if _, ok := catalog.Categories[catalog.Default]; !ok {
			result.Valid = false
			result.Errors = append(result.Errors, fmt.Sprintf("Default category %q is not defined", catalog.Default))
		}
	}

	keys := make([]string, 0, len(catalog.Categories))
	for key := range catalog.Categories {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	for _, key := range keys {
		cfg := catalog.Categories[key]
		for _, msg := range validateCategory(key, cfg) {
			result.Valid = false
			result.Errors = append(result.Errors, msg)
		}
	}

	// Add informational data
	if result.Valid {
		result.Errors = append(result.Errors, fmt.Sprintf("✓ Categories: %d", len(catalog.Categories)))
		for _, key := range keys {
			cfg := catalog.Categories[key]
			quizzes := len(cfg.QuizBank)
			for _, bank := range cfg.QuizLevels {
				quizzes += len(bank)
			}
			result.Errors = append(result.Errors, fmt.Sprintf("✓ %s: %q, %d tiles, %d quiz questions",
				key, cfg.Name, len(cfg.Tiles), quizzes))
		}
	}

	return result
}

// validateCategory checks one category and returns the problems found.
func validateCategory(key string, cfg *engine.CategoryConfig) []string {
	var problems []string

	if err := engine.ValidateCategoryConfig(cfg); err != nil {
		problems = append(problems, fmt.Sprintf("%s: %v", key, err))
		return problems
	}

	counts := map[engine.TileType]int{}
	for _, tile := range cfg.Tiles {
		counts[tile.Type]++
	}

	// Playability: a quiz tile with nothing to ask would short-circuit every
	// landing.
	quizzes := len(cfg.QuizBank)
	for _, bank := range cfg.QuizLevels {
		quizzes += len(bank)
	}
	if counts[engine.TileBonus] > 0 && quizzes == 0 {
		problems = append(problems, fmt.Sprintf("%s: has %d bonus tile(s) but no quiz questions", key, counts[engine.TileBonus]))
	}

	// Economy: without income the only money entering play is the lap bonus.
	if counts[engine.TileIncome] == 0 {
		problems = append(problems, fmt.Sprintf("%s: deck has no income tiles", key))
	}

	return problems
}

// main scans ../configs for *.json files and validates each one, printing a
// concise report and exiting with non-zero status if any are invalid.
func main() {
	configDir := "../configs"
	files, err := filepath.Glob(filepath.Join(configDir, "*.json"))
	if err != nil {
		fmt.Printf("Error finding catalog files: %v\n", err)
		os.Exit(1)
	}

	allValid := true
	for _, file := range files {
		result := validateCatalog(file)

		fmt.Printf("\n%s %s\n", strings.Repeat("=", 20), result.File)

		if result.Valid {
			fmt.Println("✅ VALID")
			for _, info := range result.Errors {
				fmt.Println("  " + info)
			}
		} else {
			fmt.Println("❌ INVALID")
			allValid = false
			for _, err := range result.Errors {
				if !strings.HasPrefix(err, "✓") {
					fmt.Println("  ❌ " + err)
				}
			}
		}
	}

	fmt.Printf("\n%s\n", strings.Repeat("=", 40))
	if allValid {
		fmt.Println("✅ All catalogs are valid!")
	} else {
		fmt.Println("❌ Some catalogs have errors")
		os.Exit(1)
	}
}
