package engine

// StepForward advances one position around the ring and reports whether the
// step wrapped past the start tile. Wrapping is the only way a lap completes;
// starting a turn on position 0 never counts.
func StepForward(pos, ringLength int) (newPos int, wrapped bool) {
	newPos = (pos + 1) % ringLength
	return newPos, newPos == 0 && pos != 0
}

// StepsToPosition applies steps single increments from pos and returns the
// final position together with the number of laps completed on the way.
// Callers that need a side effect per lap (the start bonus) should iterate
// StepForward themselves; this is the closed form for everything else.
func StepsToPosition(pos, steps, ringLength int) (newPos, laps int) {
	newPos = pos
	for i := 0; i < steps; i++ {
		var wrapped bool
		newPos, wrapped = StepForward(newPos, ringLength)
		if wrapped {
			laps++
		}
	}
	return newPos, laps
}
