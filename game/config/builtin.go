package config

import "github.com/smartone/finance-board-game/game/engine"

// builtinCatalog returns the catalog compiled into the binary. It is used
// whenever no catalog file is configured, so a bare `finance-board-game
// server` is immediately playable.
func builtinCatalog() *Catalog {
	return &Catalog{
		Default: "smart-money",
		Categories: map[string]*engine.CategoryConfig{
			"smart-money": smartMoneyCategory(),
			"first-job":   firstJobCategory(),
		},
	}
}

// smartMoneyCategory is the default deck: general personal-finance tiles
// sized to fill the ring exactly once.
func smartMoneyCategory() *engine.CategoryConfig {
	return &engine.CategoryConfig{
		Name: "Smart Money",
		Tiles: []engine.Tile{
			{Type: engine.TileStart, Title: "Start", Effect: "A new lap begins."},
			{Type: engine.TileIncome, Title: "Salary Day", Points: 20000},
			{Type: engine.TileExpense, Title: "Groceries", Points: 8000},
			{Type: engine.TileSave, Title: "Savings Deposit", Points: 5000},
			{Type: engine.TileBonus, Title: "Quiz Time"},
			{Type: engine.TileExpense, Title: "Electric Bill", Points: 6000},
			{Type: engine.TileIncome, Title: "Side Hustle", Points: 12000},
			{Type: engine.TileTax, Title: "Income Tax", Percent: 10},
			{Type: engine.TileExpense, Title: "Rent", Points: 15000},
			{Type: engine.TileBonus, Title: "Quiz Time"},
			{Type: engine.TileIncome, Title: "Cashback Reward", Points: 4000},
			{Type: engine.TileSave, Title: "Emergency Fund Top-Up", Points: 7000},
			{Type: engine.TilePenalty, Title: "Late Payment Fee", Points: 4000},
			{Type: engine.TileExpense, Title: "Phone Plan", Points: 3000},
			{Type: engine.TileBonus, Title: "Quiz Time"},
			{Type: engine.TileIncome, Title: "Freelance Gig", Points: 10000},
			{Type: engine.TileTax, Title: "Property Tax", Percent: 5},
			{Type: engine.TileExpense, Title: "Car Repair", Points: 12000},
			{Type: engine.TileSave, Title: "Retirement Contribution", Points: 6000},
			{Type: engine.TilePenalty, Title: "Impulse Purchase", Points: 9000},
		},
		QuizLevels: map[string][]engine.QuizItem{
			"1": {
				{Question: "What is a budget?", Choices: []string{"A plan for your money", "A type of loan", "A credit card", "A bank fee"}, Correct: 0},
				{Question: "Which is a need, not a want?", Choices: []string{"Concert tickets", "Groceries", "A new phone", "Video games"}, Correct: 1},
				{Question: "What does saving money mean?", Choices: []string{"Spending it all", "Keeping some for later", "Giving it away", "Losing it"}, Correct: 1},
				{Question: "Where is a safe place to keep savings?", Choices: []string{"Under a mattress", "In a bank account", "In your pocket", "In a game"}, Correct: 1},
				{Question: "What is income?", Choices: []string{"Money you owe", "Money you earn", "Money you burn", "A kind of tax"}, Correct: 1},
			},
			"2": {
				{Question: "What is an emergency fund for?", Choices: []string{"Vacations", "Unexpected expenses", "Daily snacks", "Lottery tickets"}, Correct: 1},
				{Question: "What is interest on a savings account?", Choices: []string{"A fee you pay", "Money the bank pays you", "A tax", "A fine"}, Correct: 1},
				{Question: "Which habit grows wealth over time?", Choices: []string{"Paying yourself first", "Ignoring bills", "Maxing credit cards", "Skipping budgets"}, Correct: 0},
				{Question: "What does it mean to live below your means?", Choices: []string{"Spend more than you earn", "Spend less than you earn", "Never spend at all", "Borrow monthly"}, Correct: 1},
			},
			"3": {
				{Question: "What is compound interest?", Choices: []string{"Interest on interest", "A one-time fee", "A loan type", "A tax bracket"}, Correct: 0},
				{Question: "What is diversification?", Choices: []string{"Owning one stock", "Spreading money across investments", "Spending on many things", "Avoiding banks"}, Correct: 1},
				{Question: "Which usually loses value to inflation?", Choices: []string{"Cash under the bed", "A diversified portfolio", "An indexed pension", "Real assets"}, Correct: 0},
			},
		},
		EduText: map[engine.TileType]string{
			engine.TileIncome:  "Earned money grows your wallet. Track every source of income.",
			engine.TileExpense: "Every expense shrinks your wallet. Budget before you spend.",
			engine.TileTax:     "Taxes come off the top. Plan for them so they never surprise you.",
			engine.TileSave:    "Money moved to savings is protected and builds your safety net.",
			engine.TilePenalty: "Fees and fines are avoidable costs. Pay on time, think twice.",
		},
	}
}

// firstJobCategory is a lighter deck themed around a first paycheck.
func firstJobCategory() *engine.CategoryConfig {
	return &engine.CategoryConfig{
		Name: "First Job",
		Tiles: []engine.Tile{
			{Type: engine.TileStart, Title: "Start"},
			{Type: engine.TileIncome, Title: "First Paycheck", Points: 18000},
			{Type: engine.TileExpense, Title: "Work Clothes", Points: 5000},
			{Type: engine.TileSave, Title: "Open a Savings Account", Points: 4000},
			{Type: engine.TileBonus, Title: "Quiz Time"},
			{Type: engine.TileExpense, Title: "Commute Pass", Points: 3000},
			{Type: engine.TileTax, Title: "Payroll Tax", Percent: 8},
			{Type: engine.TileIncome, Title: "Overtime Pay", Points: 9000},
			{Type: engine.TilePenalty, Title: "Overdraft Fee", Points: 3500},
			{Type: engine.TileBonus, Title: "Quiz Time"},
		},
		QuizLevels: map[string][]engine.QuizItem{
			"1": {
				{Question: "What is a paycheck?", Choices: []string{"Money earned from work", "A gift card", "A loan", "A bill"}, Correct: 0},
				{Question: "What is a payroll deduction?", Choices: []string{"A bonus", "Money taken out before you are paid", "A refund", "A raise"}, Correct: 1},
				{Question: "Why open a bank account?", Choices: []string{"To keep money safe", "To lose money", "To pay more fees", "No reason"}, Correct: 0},
			},
			"2": {
				{Question: "What is gross pay?", Choices: []string{"Pay after deductions", "Pay before deductions", "A tip", "A penalty"}, Correct: 1},
				{Question: "What causes an overdraft fee?", Choices: []string{"Saving too much", "Spending more than your balance", "Earning interest", "Paying early"}, Correct: 1},
			},
		},
		EduText: map[engine.TileType]string{
			engine.TileIncome:  "Your first earnings teach the value of every hour worked.",
			engine.TileExpense: "Starting a job has costs too. Plan for them in advance.",
			engine.TileTax:     "Payroll taxes are deducted before money reaches you.",
			engine.TileSave:    "Saving from your very first paycheck builds the habit early.",
			engine.TilePenalty: "Bank fees eat small balances fast. Watch your account.",
		},
	}
}
