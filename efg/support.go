package efg

// Support is the set of actions currently considered active. The full support
// of a game keeps every action; the solver narrows supports as probabilities
// collapse to the simplex boundary.
//
// A support defines the flat indexing of behavior profiles: actions are
// numbered in player-major order (player, then infoset, then action within
// the support). The residual and Jacobian of the solver use the same order.
type Support struct {
	game    *Game
	actions [][][]*Action // [player][infoset][supportAction]
}

// NewSupport creates the full support of a game.
func NewSupport(g *Game) *Support {
	s := &Support{game: g}
	s.actions = make([][][]*Action, g.NumPlayers())
	for pl, player := range g.players {
		s.actions[pl] = make([][]*Action, player.NumInfosets())
		for iset, is := range player.infosets {
			s.actions[pl][iset] = append([]*Action(nil), is.actions...)
		}
	}
	return s
}

func (s *Support) Game() *Game     { return s.game }
func (s *Support) NumPlayers() int { return len(s.actions) }

func (s *Support) NumInfosets(pl int) int { return len(s.actions[pl]) }

func (s *Support) NumActions(pl, iset int) int { return len(s.actions[pl][iset]) }

// Action returns the game action at support position (pl, iset, act).
func (s *Support) Action(pl, iset, act int) *Action { return s.actions[pl][iset][act] }

// ProfileLength is the total number of active actions across all infosets.
func (s *Support) ProfileLength() int {
	n := 0
	for pl := range s.actions {
		for iset := range s.actions[pl] {
			n += len(s.actions[pl][iset])
		}
	}
	return n
}

// Triple maps a flat profile index to its (player, infoset, action) position.
func (s *Support) Triple(index int) (pl, iset, act int) {
	for pl := range s.actions {
		for iset := range s.actions[pl] {
			na := len(s.actions[pl][iset])
			if index < na {
				return pl, iset, index
			}
			index -= na
		}
	}
	panic("efg: flat index out of range")
}

// RemoveActionAt produces a copy of the support with the action at the given
// flat index dropped. The receiver is never modified.
func (s *Support) RemoveActionAt(index int) *Support {
	pl, iset, act := s.Triple(index)
	out := &Support{game: s.game}
	out.actions = make([][][]*Action, len(s.actions))
	for p := range s.actions {
		out.actions[p] = make([][]*Action, len(s.actions[p]))
		for i := range s.actions[p] {
			row := append([]*Action(nil), s.actions[p][i]...)
			if p == pl && i == iset {
				row = append(row[:act], row[act+1:]...)
			}
			out.actions[p][i] = row
		}
	}
	return out
}

// NewBehavProfile creates the centroid profile on this support: the uniform
// distribution over the active actions of every information set.
func (s *Support) NewBehavProfile() *BehavProfile {
	p := &BehavProfile{support: s, probs: make([]float64, s.ProfileLength())}
	index := 0
	for pl := range s.actions {
		for iset := range s.actions[pl] {
			na := len(s.actions[pl][iset])
			for act := 0; act < na; act++ {
				p.probs[index] = 1.0 / float64(na)
				index++
			}
		}
	}
	return p
}
