package efg

import "fmt"

// Game is an extensive-form game: a tree of decision, chance, and terminal
// nodes, with decision nodes grouped into information sets owned by players.
type Game struct {
	Title   string
	players []*Player
	root    *Node
}

// Player owns an ordered list of information sets.
type Player struct {
	game     *Game
	number   int
	Label    string
	infosets []*Infoset
}

// Infoset is a set of decision nodes its owner cannot distinguish. Every
// member node has one child per action.
type Infoset struct {
	player  *Player
	number  int
	Label   string
	actions []*Action
	members []*Node
}

// Action is one of the choices available at an information set.
type Action struct {
	infoset *Infoset
	number  int
	Label   string
}

// Node is a single node of the game tree. Exactly one of infoset, chanceProbs,
// payoffs is set, for decision, chance, and terminal nodes respectively.
type Node struct {
	infoset     *Infoset
	chanceProbs []float64
	payoffs     []float64
	children    []*Node
}

// NewGame creates an empty game with one player per label.
func NewGame(title string, playerLabels ...string) *Game {
	g := &Game{Title: title}
	for _, label := range playerLabels {
		g.players = append(g.players, &Player{game: g, number: len(g.players), Label: label})
	}
	return g
}

func (g *Game) NumPlayers() int      { return len(g.players) }
func (g *Game) Player(pl int) *Player { return g.players[pl] }
func (g *Game) Root() *Node          { return g.root }

// SetRoot installs the root node. The tree must already be fully built.
func (g *Game) SetRoot(n *Node) { g.root = n }

func (p *Player) Number() int           { return p.number }
func (p *Player) NumInfosets() int      { return len(p.infosets) }
func (p *Player) Infoset(i int) *Infoset { return p.infosets[i] }

// AddInfoset appends a new information set with the given action labels.
func (p *Player) AddInfoset(label string, actionLabels ...string) *Infoset {
	is := &Infoset{player: p, number: len(p.infosets), Label: label}
	for _, al := range actionLabels {
		is.actions = append(is.actions, &Action{infoset: is, number: len(is.actions), Label: al})
	}
	p.infosets = append(p.infosets, is)
	return is
}

func (is *Infoset) Player() *Player     { return is.player }
func (is *Infoset) Number() int         { return is.number }
func (is *Infoset) NumActions() int     { return len(is.actions) }
func (is *Infoset) Action(i int) *Action { return is.actions[i] }
func (is *Infoset) NumMembers() int     { return len(is.members) }

func (a *Action) Infoset() *Infoset { return a.infoset }
func (a *Action) Number() int       { return a.number }

// Terminal creates a terminal node carrying one payoff per player.
func (g *Game) Terminal(payoffs ...float64) *Node {
	if len(payoffs) != len(g.players) {
		panic(fmt.Sprintf("efg: terminal node needs %d payoffs, got %d", len(g.players), len(payoffs)))
	}
	return &Node{payoffs: payoffs}
}

// Decision creates a decision node at the given information set, with one
// child per action in action order. The node is registered as a member of the
// information set.
func (g *Game) Decision(is *Infoset, children ...*Node) *Node {
	if len(children) != len(is.actions) {
		panic(fmt.Sprintf("efg: infoset %q has %d actions, got %d children", is.Label, len(is.actions), len(children)))
	}
	n := &Node{infoset: is, children: children}
	is.members = append(is.members, n)
	return n
}

// Chance creates a chance node with fixed move probabilities.
func (g *Game) Chance(probs []float64, children ...*Node) *Node {
	if len(children) != len(probs) {
		panic(fmt.Sprintf("efg: chance node has %d probabilities, got %d children", len(probs), len(children)))
	}
	return &Node{chanceProbs: probs, children: children}
}

func (n *Node) IsTerminal() bool { return n.payoffs != nil }
func (n *Node) IsChance() bool   { return n.chanceProbs != nil }
func (n *Node) IsDecision() bool { return n.infoset != nil }
func (n *Node) Infoset() *Infoset { return n.infoset }
