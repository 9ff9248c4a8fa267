package cmd

import (
	"bytes"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/riabaldevia/gambit/efg"
)

// GameSpec is the YAML description of an extensive-form game.
//
//	title: Matching Pennies
//	players: [Row, Column]
//	infosets:
//	  - player: 0
//	    label: row
//	    actions: [H, T]
//	  - player: 1
//	    label: column
//	    actions: [H, T]
//	root:
//	  infoset: 0
//	  children:
//	    - infoset: 1
//	      children:
//	        - payoffs: [1, -1]
//	        - payoffs: [-1, 1]
//	    - ...
type GameSpec struct {
	Title    string        `yaml:"title"`
	Players  []string      `yaml:"players"`
	Infosets []InfosetSpec `yaml:"infosets"`
	Root     NodeSpec      `yaml:"root"`
}

// InfosetSpec declares one information set and its actions.
type InfosetSpec struct {
	Player  int      `yaml:"player"`
	Label   string   `yaml:"label"`
	Actions []string `yaml:"actions"`
}

// NodeSpec is one tree node: exactly one of infoset, chance, payoffs is set.
// Decision nodes reference infosets by their position in the infosets list.
type NodeSpec struct {
	Infoset  *int       `yaml:"infoset,omitempty"`
	Chance   []float64  `yaml:"chance,omitempty"`
	Payoffs  []float64  `yaml:"payoffs,omitempty"`
	Children []NodeSpec `yaml:"children,omitempty"`
}

// LoadGameFile parses a YAML game description into an efg.Game.
// Uses strict field checking so typos in the file cause errors.
func LoadGameFile(path string) (*efg.Game, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read game file: %w", err)
	}
	var spec GameSpec
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&spec); err != nil {
		return nil, fmt.Errorf("parse game YAML: %w", err)
	}
	return buildGame(&spec)
}

func buildGame(spec *GameSpec) (*efg.Game, error) {
	if len(spec.Players) == 0 {
		return nil, fmt.Errorf("game %q declares no players", spec.Title)
	}
	g := efg.NewGame(spec.Title, spec.Players...)

	infosets := make([]*efg.Infoset, len(spec.Infosets))
	for i, is := range spec.Infosets {
		if is.Player < 0 || is.Player >= g.NumPlayers() {
			return nil, fmt.Errorf("infoset %d references unknown player %d", i, is.Player)
		}
		if len(is.Actions) == 0 {
			return nil, fmt.Errorf("infoset %d has no actions", i)
		}
		infosets[i] = g.Player(is.Player).AddInfoset(is.Label, is.Actions...)
	}

	root, err := buildNode(g, infosets, &spec.Root)
	if err != nil {
		return nil, err
	}
	g.SetRoot(root)
	return g, nil
}

func buildNode(g *efg.Game, infosets []*efg.Infoset, spec *NodeSpec) (*efg.Node, error) {
	switch {
	case spec.Payoffs != nil:
		if len(spec.Children) > 0 {
			return nil, fmt.Errorf("terminal node has children")
		}
		if len(spec.Payoffs) != g.NumPlayers() {
			return nil, fmt.Errorf("terminal node has %d payoffs, want %d", len(spec.Payoffs), g.NumPlayers())
		}
		return g.Terminal(spec.Payoffs...), nil

	case spec.Chance != nil:
		if len(spec.Children) != len(spec.Chance) {
			return nil, fmt.Errorf("chance node has %d probabilities but %d children", len(spec.Chance), len(spec.Children))
		}
		children, err := buildChildren(g, infosets, spec.Children)
		if err != nil {
			return nil, err
		}
		return g.Chance(spec.Chance, children...), nil

	case spec.Infoset != nil:
		if *spec.Infoset < 0 || *spec.Infoset >= len(infosets) {
			return nil, fmt.Errorf("node references unknown infoset %d", *spec.Infoset)
		}
		is := infosets[*spec.Infoset]
		if len(spec.Children) != is.NumActions() {
			return nil, fmt.Errorf("infoset %q has %d actions but node has %d children", is.Label, is.NumActions(), len(spec.Children))
		}
		children, err := buildChildren(g, infosets, spec.Children)
		if err != nil {
			return nil, err
		}
		return g.Decision(is, children...), nil

	default:
		return nil, fmt.Errorf("node declares none of infoset, chance, payoffs")
	}
}

func buildChildren(g *efg.Game, infosets []*efg.Infoset, specs []NodeSpec) ([]*efg.Node, error) {
	children := make([]*efg.Node, len(specs))
	for i := range specs {
		child, err := buildNode(g, infosets, &specs[i])
		if err != nil {
			return nil, err
		}
		children[i] = child
	}
	return children, nil
}
