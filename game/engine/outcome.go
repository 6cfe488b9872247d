package engine

// handleElimination runs the game-end rules after a player goes bankrupt.
// In a single-player game any bankruptcy is an immediate terminal loss. With
// multiple players the eliminated seat gets a non-terminal notice; when
// exactly one survivor remains, that survivor is declared the winner after a
// short presentation delay so the elimination notice can be read first.
// Terminal declarations are idempotent: once the session is terminal no
// further declarations or turns are honored.
func (g *GameSession) handleElimination(p *Player) {
	g.mu.Lock()
	if g.terminal {
		g.mu.Unlock()
		return
	}

	single := len(g.players) == 1
	var survivors []*Player
	for _, pl := range g.players {
		if !pl.Eliminated {
			survivors = append(survivors, pl)
		}
	}
	if single || len(survivors) <= 1 {
		g.terminal = true
	}
	g.mu.Unlock()

	if single {
		g.sink.GameOver(
			"Game Over",
			p.Name+" is bankrupt: points and savings are gone.",
			false, true,
		)
		return
	}

	g.sink.GameOver(
		p.Name+" is bankrupt",
		p.Name+" is out of the game.",
		false, false,
	)
	g.sink.PlayerPanelChanged(g.Players())

	if len(survivors) == 1 {
		g.sleep(g.timing.WinnerDelay)
		g.sink.GameOver(
			"Winner!",
			survivors[0].Name+" is the last player standing.",
			true, true,
		)
	}
}
