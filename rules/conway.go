package rules

const (
	// Dead is the value of an empty cell
	Dead uint8 = 0
	// Alive is the value of a live cell
	Alive uint8 = 1

	// MaxNeighbors is the size of a full Moore neighborhood
	MaxNeighbors = 8
)

/*
ApplyConwayRules applies Conway's Game of Life rules to determine the next state of a cell.

Conway's Game of Life rules (B3/S23): (alive && neighbors == 2) || neighbors == 3
*/
func ApplyConwayRules(neighbors int, alive bool) bool {
	return (alive && neighbors == 2) || neighbors == 3
}

// NextState is ApplyConwayRules over 0/1 cell values
func NextState(value uint8, neighbors int) uint8 {
	if ApplyConwayRules(neighbors, value == Alive) {
		return Alive
	}
	return Dead
}
