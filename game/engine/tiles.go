package engine

// resolveTile applies the landing tile's effect to the player and announces
// it. It reports whether a quiz must run. Monetary deductions on expense and
// penalty tiles go through the ledger, which owns the emergency-fund and
// bankruptcy messaging; the normal tile notification is suppressed when the
// player is eliminated by it.
func (g *GameSession) resolveTile(p *Player) bool {
	g.mu.Lock()
	tile := g.TileAt(p.Position)
	g.mu.Unlock()
	edu := g.cfg.EduText[tile.Type]

	switch tile.Type {
	case TileStart:
		g.sink.Notify(Notification{
			Title:       p.Name + " is on START",
			Amount:      tile.Title,
			Description: edu,
		})

	case TileIncome:
		g.mu.Lock()
		p.Wallet += tile.Points
		g.mu.Unlock()
		g.sink.Notify(Notification{
			Title:       p.Name + ": " + tile.Title,
			Amount:      SignedPoints(tile.Points),
			Description: edu,
		})

	case TileExpense, TilePenalty:
		amount := abs(tile.Points)
		if g.chargeExpense(p, amount) {
			g.sink.Notify(Notification{
				Title:       p.Name + ": " + tile.Title,
				Amount:      DeductedPoints(amount),
				Description: edu,
			})
		}

	case TileTax:
		g.mu.Lock()
		cut := p.Wallet * tile.Percent / 100
		p.Wallet -= cut
		g.mu.Unlock()
		g.sink.Notify(Notification{
			Title:       p.Name + ": " + tile.Title,
			Amount:      DeductedPoints(cut),
			Description: edu,
		})

	case TileSave:
		g.mu.Lock()
		saved := p.Wallet >= tile.Points
		if saved {
			p.Wallet -= tile.Points
			p.Savings += tile.Points
		}
		g.mu.Unlock()
		if saved {
			g.sink.Notify(Notification{
				Title:       p.Name + " deposited savings",
				Amount:      SignedPoints(tile.Points),
				Description: edu,
			})
		} else {
			g.sink.Notify(Notification{
				Title:       p.Name + " cannot afford to save",
				Amount:      "needs " + FormatPoints(tile.Points),
				Description: edu,
			})
		}

	case TileBonus:
		g.sink.Notify(Notification{
			Title:       p.Name + ": " + tile.Title,
			Amount:      "quiz pending",
			Description: edu,
		})
		return true
	}

	return false
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
