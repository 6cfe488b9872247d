package engine

import "strconv"

// QuizResult is the resolution of one quiz cycle. AnsweredIndex is nil when
// the answer was submitted with nothing selected; that is a valid terminal
// state, not an error.
type QuizResult struct {
	AnsweredIndex *int
	Correct       bool
	Item          *QuizItem
}

// chooseBank selects the quiz bank for a level: the level's own bank first,
// then the flat legacy bank, then the level-1 bank. An empty result means no
// quiz is available at all.
func chooseBank(cfg *CategoryConfig, level int) []QuizItem {
	if bank := cfg.QuizLevels[strconv.Itoa(level)]; len(bank) > 0 {
		return bank
	}
	if len(cfg.QuizBank) > 0 {
		return cfg.QuizBank
	}
	return cfg.QuizLevels["1"]
}

// RewardForLevel returns the fixed bonus for a correct answer at the given
// level, defaulting to the level-1 reward for unknown levels.
func RewardForLevel(level int) int {
	if reward, ok := quizRewardByLevel[level]; ok {
		return reward
	}
	return quizRewardByLevel[1]
}

// runQuiz executes one full quiz cycle for a bonus landing: pick an item
// from the level-appropriate bank, prompt, suspend until exactly one answer
// submission arrives, then settle the reward. The turn guard keeps the flow
// from being re-entered while an answer is pending.
func (g *GameSession) runQuiz(p *Player) QuizResult {
	g.mu.Lock()
	level := p.Level
	g.mu.Unlock()

	bank := chooseBank(g.cfg, level)
	if len(bank) == 0 {
		g.sink.Notify(Notification{
			Title:  "No quiz available",
			Amount: "turn continues",
		})
		return QuizResult{}
	}

	g.mu.Lock()
	idx := g.rng.Intn(len(bank))
	item := bank[idx]
	if used, ok := p.UsedQuestions[level]; ok {
		used[idx] = true
	}
	g.awaitingAnswer = true
	g.mu.Unlock()

	g.sink.QuizPrompt(&item)

	var answer *int
	select {
	case answer = <-g.answerCh:
	case <-g.done:
		// Abandoned mid-quiz. Resolve as unanswered without announcing;
		// nobody is watching a closed session.
		g.mu.Lock()
		g.awaitingAnswer = false
		g.mu.Unlock()
		return QuizResult{Item: &item}
	}

	correct := answer != nil && *answer == item.Correct
	result := QuizResult{AnsweredIndex: answer, Correct: correct, Item: &item}

	switch {
	case answer == nil:
		g.sink.Notify(Notification{
			Title:  p.Name + " did not answer",
			Amount: "no bonus",
		})
	case correct:
		reward := RewardForLevel(level)
		g.mu.Lock()
		p.Wallet += reward
		g.mu.Unlock()
		g.sink.Notify(Notification{
			Title:  p.Name + " answered correctly!",
			Amount: SignedPoints(reward),
		})
	default:
		g.sink.Notify(Notification{
			Title:  p.Name + " answered incorrectly",
			Amount: "no bonus",
		})
	}

	g.sleep(g.timing.NotifyRead)
	return result
}

// SubmitQuizAnswer delivers a single answer to a suspended quiz. A nil index
// means the player submitted with nothing selected. It reports false when no
// quiz is awaiting an answer, including on duplicate submissions.
func (g *GameSession) SubmitQuizAnswer(index *int) bool {
	g.mu.Lock()
	if !g.awaitingAnswer {
		g.mu.Unlock()
		return false
	}
	g.awaitingAnswer = false
	g.mu.Unlock()

	select {
	case g.answerCh <- index:
		return true
	case <-g.done:
		return false
	}
}

// AwaitingAnswer reports whether a quiz is suspended waiting for an answer.
func (g *GameSession) AwaitingAnswer() bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.awaitingAnswer
}
