package engine

import (
	"strings"
	"testing"
)

// placePlayerOn sets the player's position so that the given tile index of
// the test category resolves next.
func placePlayerOn(game *GameSession, p *Player, tileIndex int) {
	p.Position = tileIndex % len(game.cfg.Tiles)
}

func TestResolveTile_Income(t *testing.T) {
	game, sink := newTestSession(t, createTestCategory(), 2)
	p := game.players[0]
	placePlayerOn(game, p, 1) // Salary +20000

	if quiz := game.resolveTile(p); quiz {
		t.Error("income tile must not require a quiz")
	}
	if p.Wallet != StartingWallet+20000 {
		t.Errorf("expected wallet %d, got %d", StartingWallet+20000, p.Wallet)
	}
	notice := sink.lastNotice()
	if notice.Amount != "+20,000" {
		t.Errorf("expected amount +20,000, got %q", notice.Amount)
	}
	if notice.Description != "Income grows your wallet." {
		t.Errorf("expected education text on income notice, got %q", notice.Description)
	}
}

func TestResolveTile_Expense(t *testing.T) {
	game, sink := newTestSession(t, createTestCategory(), 2)
	p := game.players[0]
	placePlayerOn(game, p, 2) // Groceries -8000

	game.resolveTile(p)
	if p.Wallet != StartingWallet-8000 {
		t.Errorf("expected wallet %d, got %d", StartingWallet-8000, p.Wallet)
	}
	if got := sink.lastNotice().Amount; got != "-8,000" {
		t.Errorf("expected amount -8,000, got %q", got)
	}
}

func TestResolveTile_ExpenseNegativeMagnitude(t *testing.T) {
	cfg := uniformDeck(Tile{Type: TileExpense, Title: "Repair", Points: -7000})
	game, _ := newTestSession(t, cfg, 1)
	p := game.players[0]

	game.resolveTile(p)
	if p.Wallet != StartingWallet-7000 {
		t.Errorf("negative points must deduct their magnitude, wallet %d", p.Wallet)
	}
}

func TestResolveTile_ZeroAmountStillNotifies(t *testing.T) {
	cfg := uniformDeck(Tile{Type: TileIncome, Title: "Nothing", Points: 0})
	game, sink := newTestSession(t, cfg, 1)
	p := game.players[0]

	game.resolveTile(p)
	if p.Wallet != StartingWallet {
		t.Errorf("expected unchanged wallet, got %d", p.Wallet)
	}
	if got := sink.lastNotice().Amount; got != "+0" {
		t.Errorf("zero-amount income must still notify, got %q", got)
	}
}

func TestResolveTile_ZeroExpenseKeepsMinus(t *testing.T) {
	cfg := uniformDeck(Tile{Type: TileExpense, Title: "Waived Fee", Points: 0})
	game, sink := newTestSession(t, cfg, 1)
	p := game.players[0]

	game.resolveTile(p)
	if p.Wallet != StartingWallet {
		t.Errorf("expected unchanged wallet, got %d", p.Wallet)
	}
	if got := sink.lastNotice().Amount; got != "-0" {
		t.Errorf("zero-amount deduction must render with a minus, got %q", got)
	}
}

func TestResolveTile_Tax(t *testing.T) {
	game, sink := newTestSession(t, createTestCategory(), 2)
	p := game.players[0]
	p.Wallet = 100000
	p.Savings = 9999
	placePlayerOn(game, p, 3) // Income Tax 10%

	game.resolveTile(p)
	if p.Wallet != 90000 {
		t.Errorf("expected wallet 90000 after 10%% tax, got %d", p.Wallet)
	}
	if p.Savings != 9999 {
		t.Errorf("tax must never touch savings, got %d", p.Savings)
	}
	if got := sink.lastNotice().Amount; got != "-10,000" {
		t.Errorf("expected amount -10,000, got %q", got)
	}
}

func TestResolveTile_TaxFloors(t *testing.T) {
	cfg := uniformDeck(Tile{Type: TileTax, Title: "VAT", Percent: 7})
	game, _ := newTestSession(t, cfg, 1)
	p := game.players[0]
	p.Wallet = 101

	game.resolveTile(p)
	// floor(101 * 7 / 100) = 7
	if p.Wallet != 94 {
		t.Errorf("expected wallet 94 after floored cut, got %d", p.Wallet)
	}
}

func TestResolveTile_SaveSuccess(t *testing.T) {
	game, _ := newTestSession(t, createTestCategory(), 2)
	p := game.players[0]
	p.Wallet = 6000
	placePlayerOn(game, p, 4) // Deposit 5000

	game.resolveTile(p)
	if p.Wallet != 1000 {
		t.Errorf("expected wallet 1000, got %d", p.Wallet)
	}
	if p.Savings != 5000 {
		t.Errorf("expected savings 5000, got %d", p.Savings)
	}
}

func TestResolveTile_SaveInsufficient(t *testing.T) {
	game, sink := newTestSession(t, createTestCategory(), 2)
	p := game.players[0]
	p.Wallet = 4000
	placePlayerOn(game, p, 4) // Deposit 5000

	game.resolveTile(p)
	if p.Wallet != 4000 || p.Savings != 0 {
		t.Errorf("failed save must not change balances, got %d/%d", p.Wallet, p.Savings)
	}
	if !strings.Contains(sink.lastNotice().Title, "cannot afford") {
		t.Errorf("expected failure notice, got %+v", sink.lastNotice())
	}
}

func TestResolveTile_Bonus(t *testing.T) {
	game, sink := newTestSession(t, createTestCategory(), 2)
	p := game.players[0]
	before := p.Wallet
	placePlayerOn(game, p, 5) // Quiz Time

	if quiz := game.resolveTile(p); !quiz {
		t.Fatal("bonus tile must require a quiz")
	}
	if p.Wallet != before {
		t.Errorf("bonus tile must not change the wallet immediately, got %d", p.Wallet)
	}
	if got := sink.lastNotice().Amount; got != "quiz pending" {
		t.Errorf("expected quiz pending label, got %q", got)
	}
}

func TestResolveTile_Penalty(t *testing.T) {
	game, _ := newTestSession(t, createTestCategory(), 2)
	p := game.players[0]
	placePlayerOn(game, p, 6) // Late Fee 4000

	game.resolveTile(p)
	if p.Wallet != StartingWallet-4000 {
		t.Errorf("expected wallet %d, got %d", StartingWallet-4000, p.Wallet)
	}
}

func TestResolveTile_Start(t *testing.T) {
	game, sink := newTestSession(t, createTestCategory(), 2)
	p := game.players[0]
	placePlayerOn(game, p, 0)

	game.resolveTile(p)
	if p.Wallet != StartingWallet || p.Savings != 0 {
		t.Errorf("start tile must have no monetary effect, got %d/%d", p.Wallet, p.Savings)
	}
	if sink.noticeCount() != 1 {
		t.Errorf("expected exactly one informational notice, got %d", sink.noticeCount())
	}
}

func TestResolveTile_TilesRepeatModuloDeck(t *testing.T) {
	game, _ := newTestSession(t, createTestCategory(), 2)
	deck := len(game.cfg.Tiles)

	p := game.players[0]
	p.Position = deck + 1 // wraps onto the Salary tile
	game.resolveTile(p)
	if p.Wallet != StartingWallet+20000 {
		t.Errorf("expected deck to repeat cyclically, wallet %d", p.Wallet)
	}
}
