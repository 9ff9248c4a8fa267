package efg

import "fmt"

// NewMatrixGame builds the extensive form of a two-player simultaneous-move
// game. Player 0 picks a row, player 1 picks a column without observing the
// row (all column nodes share one information set). rowPay[i][j] and
// colPay[i][j] are the payoffs at cell (i, j).
func NewMatrixGame(title string, rowPay, colPay [][]float64) *Game {
	rows := len(rowPay)
	cols := len(rowPay[0])
	g := NewGame(title, "Row", "Column")

	rowSet := g.Player(0).AddInfoset("row", actionLabels("r", rows)...)
	colSet := g.Player(1).AddInfoset("column", actionLabels("c", cols)...)

	rowNodes := make([]*Node, rows)
	for i := 0; i < rows; i++ {
		cells := make([]*Node, cols)
		for j := 0; j < cols; j++ {
			cells[j] = g.Terminal(rowPay[i][j], colPay[i][j])
		}
		rowNodes[i] = g.Decision(colSet, cells...)
	}
	g.SetRoot(g.Decision(rowSet, rowNodes...))
	return g
}

// NewMatchingPennies builds 2x2 matching pennies: the row player wins 1 on a
// match, loses 1 on a mismatch.
func NewMatchingPennies() *Game {
	return NewMatrixGame("Matching Pennies",
		[][]float64{{1, -1}, {-1, 1}},
		[][]float64{{-1, 1}, {1, -1}})
}

// NewCentipedeGame builds a take/pass centipede with the given number of
// decision stages. Movers alternate starting with player 0; taking at stage k
// pays the mover 4*2^k and the opponent 2^k, and passing through every stage
// pays as if a virtual mover took at stage `stages`. Backward induction has
// the first mover take immediately.
func NewCentipedeGame(stages int) *Game {
	g := NewGame(fmt.Sprintf("Centipede-%d", stages), "One", "Two")

	take := func(k int) *Node {
		pot := 1.0
		for i := 0; i < k; i++ {
			pot *= 2
		}
		if k%2 == 0 {
			return g.Terminal(4*pot, pot)
		}
		return g.Terminal(pot, 4*pot)
	}

	// Infosets in stage order so the first mover's choice is coordinate 0.
	infosets := make([]*Infoset, stages)
	for k := 0; k < stages; k++ {
		infosets[k] = g.Player(k % 2).AddInfoset(fmt.Sprintf("stage %d", k+1), "take", "pass")
	}

	next := take(stages)
	for k := stages - 1; k >= 0; k-- {
		next = g.Decision(infosets[k], take(k), next)
	}
	g.SetRoot(next)
	return g
}

func actionLabels(prefix string, n int) []string {
	labels := make([]string, n)
	for i := range labels {
		labels[i] = fmt.Sprintf("%s%d", prefix, i+1)
	}
	return labels
}
