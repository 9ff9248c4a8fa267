package qre

import (
	"math"

	"github.com/riabaldevia/gambit/efg"
)

// qreLHS evaluates the defining system at the augmented point (profile,
// lambda). Its zero set, intersected with the simplex, is the logit QRE
// correspondence. prof is a reusable scratch profile on the traced support;
// its probabilities are overwritten from point.
//
// Row layout, per information set in flat profile order: one sum-to-one row,
// then one log-ratio row per action after the first. The log-ratio rows are
// scaled by rho(0)*rho(act), which clears the logarithmic singularity at the
// simplex boundary and keeps the residual smooth there.
func qreLHS(prof *efg.BehavProfile, point []float64, lhs []float64) {
	n := prof.Len()
	for i := 0; i < n; i++ {
		prof.Set(i, point[i])
	}
	lambda := point[n]

	row := 0
	for pl := 0; pl < prof.Support().NumPlayers(); pl++ {
		for iset := 0; iset < prof.Support().NumInfosets(pl); iset++ {
			na := prof.Support().NumActions(pl, iset)
			sum := 0.0
			for act := 0; act < na; act++ {
				sum += prof.Prob(pl, iset, act)
			}
			lhs[row] = sum - 1
			row++

			for act := 1; act < na; act++ {
				rho0 := prof.Prob(pl, iset, 0)
				rhoA := prof.Prob(pl, iset, act)
				v := math.Log(rhoA / rho0)
				v -= lambda * (prof.ActionValue(pl, iset, act) - prof.ActionValue(pl, iset, 0))
				lhs[row] = v * rho0 * rhoA
				row++
			}
		}
	}
}

// qreJacobian evaluates the Jacobian of the defining system at (profile,
// lambda) into m, stored transposed: variables on rows (n profile
// coordinates plus the lambda row), equations on columns. The QR layer
// depends on this orientation; see the package comment.
func qreJacobian(prof *efg.BehavProfile, point []float64, m matrix) {
	n := prof.Len()
	for i := 0; i < n; i++ {
		prof.Set(i, point[i])
	}
	lambda := point[n]
	sup := prof.Support()

	row := 0
	for pl1 := 0; pl1 < sup.NumPlayers(); pl1++ {
		for iset1 := 0; iset1 < sup.NumInfosets(pl1); iset1++ {
			// Sum-to-one equation: 1 against every action of this
			// infoset, 0 elsewhere, 0 against lambda.
			col := 0
			for pl2 := 0; pl2 < sup.NumPlayers(); pl2++ {
				for iset2 := 0; iset2 < sup.NumInfosets(pl2); iset2++ {
					for act2 := 0; act2 < sup.NumActions(pl2, iset2); act2++ {
						if pl1 == pl2 && iset1 == iset2 {
							m.set(col, row, 1)
						} else {
							m.set(col, row, 0)
						}
						col++
					}
				}
			}
			m.set(n, row, 0)
			row++

			for act1 := 1; act1 < sup.NumActions(pl1, iset1); act1++ {
				rho0 := prof.Prob(pl1, iset1, 0)
				rhoA := prof.Prob(pl1, iset1, act1)
				col = 0
				for pl2 := 0; pl2 < sup.NumPlayers(); pl2++ {
					for iset2 := 0; iset2 < sup.NumInfosets(pl2); iset2++ {
						for act2 := 0; act2 < sup.NumActions(pl2, iset2); act2++ {
							switch {
							case pl1 == pl2 && iset1 == iset2:
								switch act2 {
								case 0:
									m.set(col, row, -rhoA)
								case act1:
									m.set(col, row, rho0)
								default:
									m.set(col, row, 0)
								}
							case prof.InfosetProb(pl1, iset1) < boundaryTol:
								// The action values condition on reaching the
								// infoset; with vanishing reach the quotient
								// derivative is numerically meaningless.
								m.set(col, row, 0)
							default:
								m.set(col, row, -lambda*rho0*rhoA*
									(prof.DiffActionValue(pl1, iset1, act1, pl2, iset2, act2)-
										prof.DiffActionValue(pl1, iset1, 0, pl2, iset2, act2)))
							}
							col++
						}
					}
				}
				m.set(n, row, -rho0*rhoA*
					(prof.ActionValue(pl1, iset1, act1)-prof.ActionValue(pl1, iset1, 0)))
				row++
			}
		}
	}
}
