// Command analyze prints quick, human-readable heuristics about the category
// catalog. For each category it summarizes tile composition, the expected
// money flow of one lap, and quiz coverage per level, and flags decks whose
// economy drains faster than it pays.
package main

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"

	"github.com/smartone/finance-board-game/game/engine"
)

// AnalysisCatalog is a light struct for reading catalog files used by
// analysis.
type AnalysisCatalog struct {
	Categories map[string]*engine.CategoryConfig `json:"categories"`
	Default    string                            `json:"default,omitempty"`
}

func main() {
	path := "configs/categories.json"
	if len(os.Args) > 1 {
		path = os.Args[1]
	}

	data, err := os.ReadFile(path)
	if err != nil {
		fmt.Printf("Error reading file: %v\n", err)
		os.Exit(1)
	}

	var catalog AnalysisCatalog
	if err := json.Unmarshal(data, &catalog); err != nil {
		fmt.Printf("Error parsing JSON: %v\n", err)
		os.Exit(1)
	}

	keys := make([]string, 0, len(catalog.Categories))
	for key := range catalog.Categories {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	for _, key := range keys {
		fmt.Printf("\n=== Analyzing %s ===\n", key)
		analyzeCategory(catalog.Categories[key])
	}
}

func analyzeCategory(cfg *engine.CategoryConfig) {
	fmt.Printf("Name: %s\n", cfg.Name)
	fmt.Printf("Tiles: %d (ring length %d, deck repeats every %d positions)\n",
		len(cfg.Tiles), engine.RingLength, len(cfg.Tiles))

	counts := map[engine.TileType]int{}
	income, expenses, savings := 0, 0, 0
	taxPercents := []int{}

	for _, tile := range cfg.Tiles {
		counts[tile.Type]++
		switch tile.Type {
		case engine.TileIncome:
			income += tile.Points
		case engine.TileExpense, engine.TilePenalty:
			expenses += abs(tile.Points)
		case engine.TileSave:
			savings += tile.Points
		case engine.TileTax:
			taxPercents = append(taxPercents, tile.Percent)
		}
	}

	order := []engine.TileType{
		engine.TileStart, engine.TileIncome, engine.TileExpense,
		engine.TileTax, engine.TileSave, engine.TileBonus, engine.TilePenalty,
	}
	fmt.Printf("Composition:")
	for _, tt := range order {
		if counts[tt] > 0 {
			fmt.Printf(" %s=%d", tt, counts[tt])
		}
	}
	fmt.Println()

	// Economy of one full pass over the deck, ignoring taxes and quizzes.
	// The lap bonus is scaled by deck length relative to the ring.
	lapBonuses := 1
	if len(cfg.Tiles) > 0 && len(cfg.Tiles) < engine.RingLength {
		lapBonuses = engine.RingLength / len(cfg.Tiles)
	}
	net := income - expenses - savings + engine.LapBonus*lapBonuses
	fmt.Printf("Deck pass: income=%s expenses=%s savings=%s lap bonus=%s net=%s\n",
		engine.FormatPoints(income), engine.FormatPoints(expenses),
		engine.FormatPoints(savings), engine.FormatPoints(engine.LapBonus*lapBonuses),
		engine.SignedPoints(net))
	if len(taxPercents) > 0 {
		fmt.Printf("Taxes: %d tile(s), percents %v (drain scales with wallet)\n", len(taxPercents), taxPercents)
	}

	if net < 0 {
		fmt.Printf("⚠️  WARNING: deck drains %s per pass before taxes; players survive on quiz bonuses alone\n",
			engine.FormatPoints(-net))
	} else {
		fmt.Printf("✅ Deck pays for itself before taxes\n")
	}

	// Quiz coverage per level.
	if counts[engine.TileBonus] > 0 {
		levels := make([]string, 0, len(cfg.QuizLevels))
		for level := range cfg.QuizLevels {
			levels = append(levels, level)
		}
		sort.Strings(levels)

		fmt.Printf("Quiz coverage:")
		for _, level := range levels {
			fmt.Printf(" L%s=%d", level, len(cfg.QuizLevels[level]))
		}
		if len(cfg.QuizBank) > 0 {
			fmt.Printf(" flat=%d", len(cfg.QuizBank))
		}
		fmt.Println()

		missing := []string{}
		for _, level := range []string{"1", "2", "3"} {
			if len(cfg.QuizLevels[level]) == 0 {
				missing = append(missing, level)
			}
		}
		if len(missing) > 0 && len(cfg.QuizBank) == 0 && len(cfg.QuizLevels["1"]) == 0 {
			fmt.Printf("⚠️  CRITICAL: no quiz fallback for levels %v; bonus tiles will short-circuit\n", missing)
		} else if len(missing) > 0 {
			fmt.Printf("   Levels %v fall back to the flat bank or level 1\n", missing)
		}
	}
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
