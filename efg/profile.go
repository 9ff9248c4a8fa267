package efg

// BehavProfile assigns a probability to every active action of a support.
// Coordinates are not forced onto the simplex: the solver iterates through
// near-feasible points and only the accepted ones satisfy sum-to-one.
//
// Realization probabilities, continuation values, and their first derivatives
// are computed lazily and cached; any probability write invalidates the cache.
type BehavProfile struct {
	support *Support
	probs   []float64
	cache   *profileCache
}

// profileCache holds per-node quantities for one fixed probability vector.
//
// realiz[x] is the probability of reaching node x from the root. value[x][p]
// is player p's expected payoff from x onward. The *Grad companions are the
// derivatives with respect to each flat profile coordinate.
type profileCache struct {
	realiz     map[*Node]float64
	realizGrad map[*Node][]float64
	value      map[*Node][]float64
	valueGrad  map[*Node][][]float64
}

func (p *BehavProfile) Support() *Support { return p.support }

// Len is the number of profile coordinates (active actions).
func (p *BehavProfile) Len() int { return len(p.probs) }

// Get returns the probability at a flat index.
func (p *BehavProfile) Get(i int) float64 { return p.probs[i] }

// Set writes the probability at a flat index and invalidates cached values.
func (p *BehavProfile) Set(i int, v float64) {
	p.probs[i] = v
	p.cache = nil
}

// Prob returns the probability of support action (pl, iset, act).
func (p *BehavProfile) Prob(pl, iset, act int) float64 {
	return p.probs[p.flatIndex(pl, iset, act)]
}

// SetProb writes the probability of support action (pl, iset, act).
func (p *BehavProfile) SetProb(pl, iset, act int, v float64) {
	p.Set(p.flatIndex(pl, iset, act), v)
}

func (p *BehavProfile) flatIndex(pl, iset, act int) int {
	index := 0
	for q := 0; q < pl; q++ {
		for i := 0; i < p.support.NumInfosets(q); i++ {
			index += p.support.NumActions(q, i)
		}
	}
	for i := 0; i < iset; i++ {
		index += p.support.NumActions(pl, i)
	}
	return index + act
}

// Clone returns an independent copy sharing the same support.
func (p *BehavProfile) Clone() *BehavProfile {
	return &BehavProfile{support: p.support, probs: append([]float64(nil), p.probs...)}
}

// InfosetProb is the probability of reaching information set (pl, iset) under
// the profile: the sum of realization probabilities over its member nodes.
func (p *BehavProfile) InfosetProb(pl, iset int) float64 {
	c := p.ensure()
	sum := 0.0
	for _, x := range p.support.game.players[pl].infosets[iset].members {
		sum += c.realiz[x] // unreached members are absent and contribute 0
	}
	return sum
}

// ActionValue is the expected payoff to the owner of infoset (pl, iset) of
// taking support action act there and following the profile afterwards,
// conditional on the infoset being reached. Returns 0 when the infoset is
// unreached.
func (p *BehavProfile) ActionValue(pl, iset, act int) float64 {
	c := p.ensure()
	a := p.support.Action(pl, iset, act)
	num, den := 0.0, 0.0
	for _, x := range p.support.game.players[pl].infosets[iset].members {
		px, reached := c.realiz[x]
		if !reached {
			continue
		}
		num += px * c.value[x.children[a.number]][pl]
		den += px
	}
	if den == 0 {
		return 0
	}
	return num / den
}

// DiffActionValue is the partial derivative of ActionValue(pl1, iset1, act1)
// with respect to the probability of support action (pl2, iset2, act2).
func (p *BehavProfile) DiffActionValue(pl1, iset1, act1, pl2, iset2, act2 int) float64 {
	c := p.ensure()
	j := p.flatIndex(pl2, iset2, act2)
	a := p.support.Action(pl1, iset1, act1)
	num, den, dnum, dden := 0.0, 0.0, 0.0, 0.0
	for _, x := range p.support.game.players[pl1].infosets[iset1].members {
		px, reached := c.realiz[x]
		if !reached {
			continue
		}
		gx := c.realizGrad[x][j]
		child := x.children[a.number]
		v := c.value[child][pl1]
		num += px * v
		dnum += gx*v + px*c.valueGrad[child][pl1][j]
		den += px
		dden += gx
	}
	if den == 0 {
		return 0
	}
	return (dnum - (num/den)*dden) / den
}

func (p *BehavProfile) ensure() *profileCache {
	if p.cache != nil {
		return p.cache
	}
	c := &profileCache{
		realiz:     make(map[*Node]float64),
		realizGrad: make(map[*Node][]float64),
		value:      make(map[*Node][]float64),
		valueGrad:  make(map[*Node][][]float64),
	}
	root := p.support.game.root
	p.computeRealiz(c, root, 1.0, make([]float64, len(p.probs)))
	p.computeValue(c, root)
	p.cache = c
	return c
}

// computeRealiz walks the tree top-down accumulating path probabilities and
// their gradients. Subtrees below actions outside the support are unreached
// and skipped.
func (p *BehavProfile) computeRealiz(c *profileCache, n *Node, prob float64, grad []float64) {
	c.realiz[n] = prob
	c.realizGrad[n] = grad
	switch {
	case n.IsTerminal():
	case n.IsChance():
		for k, child := range n.children {
			pk := n.chanceProbs[k]
			childGrad := make([]float64, len(grad))
			for i := range grad {
				childGrad[i] = grad[i] * pk
			}
			p.computeRealiz(c, child, prob*pk, childGrad)
		}
	default:
		is := n.infoset
		pl := is.player.number
		for act := 0; act < p.support.NumActions(pl, is.number); act++ {
			a := p.support.Action(pl, is.number, act)
			j := p.flatIndex(pl, is.number, act)
			rho := p.probs[j]
			childGrad := make([]float64, len(grad))
			for i := range grad {
				childGrad[i] = grad[i] * rho
			}
			childGrad[j] += prob
			p.computeRealiz(c, n.children[a.number], prob*rho, childGrad)
		}
	}
}

// computeValue walks the tree bottom-up accumulating expected payoff vectors
// and their gradients.
func (p *BehavProfile) computeValue(c *profileCache, n *Node) ([]float64, [][]float64) {
	np := p.support.game.NumPlayers()
	nc := len(p.probs)
	val := make([]float64, np)
	grad := make([][]float64, np)
	for q := range grad {
		grad[q] = make([]float64, nc)
	}
	switch {
	case n.IsTerminal():
		copy(val, n.payoffs)
	case n.IsChance():
		for k, child := range n.children {
			pk := n.chanceProbs[k]
			cv, cg := p.computeValue(c, child)
			for q := 0; q < np; q++ {
				val[q] += pk * cv[q]
				for i := 0; i < nc; i++ {
					grad[q][i] += pk * cg[q][i]
				}
			}
		}
	default:
		is := n.infoset
		pl := is.player.number
		for act := 0; act < p.support.NumActions(pl, is.number); act++ {
			a := p.support.Action(pl, is.number, act)
			j := p.flatIndex(pl, is.number, act)
			rho := p.probs[j]
			cv, cg := p.computeValue(c, n.children[a.number])
			for q := 0; q < np; q++ {
				val[q] += rho * cv[q]
				for i := 0; i < nc; i++ {
					grad[q][i] += rho * cg[q][i]
				}
				grad[q][j] += cv[q]
			}
		}
	}
	c.value[n] = val
	c.valueGrad[n] = grad
	return val, grad
}
