package engine

// expenseOutcome classifies how a forced deduction was covered.
type expenseOutcome int

const (
	paidFromWallet expenseOutcome = iota
	paidWithSavings
	bankrupt
)

// applyExpense runs the two-tier deduction: wallet first, then savings as a
// strictly lower-priority buffer, then elimination. The ordering is
// load-bearing; savings is never touched while the wallet suffices.
func applyExpense(p *Player, amount int) expenseOutcome {
	if p.Wallet >= amount {
		p.Wallet -= amount
		return paidFromWallet
	}

	deficit := amount - p.Wallet
	if p.Savings >= deficit {
		p.Wallet = 0
		p.Savings -= deficit
		return paidWithSavings
	}

	p.Wallet = 0
	p.Savings = 0
	p.Eliminated = true
	return bankrupt
}

// chargeExpense applies a forced deduction to the player and reports whether
// the player survived. Dipping into savings is announced separately from the
// tile notification; a bankruptcy hands messaging over to the outcome
// evaluator.
func (g *GameSession) chargeExpense(p *Player, amount int) bool {
	g.mu.Lock()
	outcome := applyExpense(p, amount)
	g.mu.Unlock()

	switch outcome {
	case paidWithSavings:
		g.sink.Notify(Notification{
			Title:  p.Name + " used the emergency fund",
			Amount: "savings covered the shortfall",
		})
		return true
	case bankrupt:
		g.handleElimination(p)
		return false
	default:
		return true
	}
}
