package cmd

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/riabaldevia/gambit/efg"
	"github.com/riabaldevia/gambit/qre"
)

func TestLoadGameFile_MatchingPennies(t *testing.T) {
	game, err := LoadGameFile(filepath.Join("testdata", "matching_pennies.yaml"))
	require.NoError(t, err)

	assert.Equal(t, "Matching Pennies", game.Title)
	require.Equal(t, 2, game.NumPlayers())
	assert.Equal(t, 1, game.Player(0).NumInfosets())
	assert.Equal(t, 2, game.Player(1).Infoset(0).NumMembers())

	// the loaded game must be solvable end to end
	solver := qre.NewLogitSolver()
	solver.MaxLambda = 5
	points := solver.Solve(efg.NewSupport(game), qre.NullStatus{})
	require.Len(t, points, 1)
	for i := 0; i < points[0].Profile.Len(); i++ {
		assert.InDelta(t, 0.5, points[0].Profile.Get(i), 1e-3)
	}
}

func writeTempGame(t *testing.T, contents string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "game.yaml")
	require.NoError(t, os.WriteFile(path, []byte(contents), 0o644))
	return path
}

func TestLoadGameFile_RejectsUnknownFields(t *testing.T) {
	path := writeTempGame(t, `
title: Typo
players: [Solo]
infosets:
  - player: 0
    label: move
    actoins: [l, r]
root:
  infoset: 0
  children:
    - payoffs: [1]
    - payoffs: [0]
`)
	_, err := LoadGameFile(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "actoins")
}

func TestLoadGameFile_RejectsBadStructure(t *testing.T) {
	cases := map[string]string{
		"no players": `
title: Empty
players: []
root:
  payoffs: []
`,
		"payoff count": `
title: Bad
players: [A, B]
root:
  payoffs: [1]
`,
		"child count": `
title: Bad
players: [Solo]
infosets:
  - player: 0
    label: move
    actions: [l, r]
root:
  infoset: 0
  children:
    - payoffs: [1]
`,
		"unknown infoset": `
title: Bad
players: [Solo]
root:
  infoset: 3
  children: []
`,
		"empty node": `
title: Bad
players: [Solo]
root: {}
`,
	}

	for name, contents := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := LoadGameFile(writeTempGame(t, contents))
			assert.Error(t, err)
		})
	}
}
