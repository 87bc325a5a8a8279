package match

import (
	"github.com/CarrascoOlmedoDevs/zzockerrrrr/common/utils/vector"
	"github.com/CarrascoOlmedoDevs/zzockerrrrr/match/state"
	"github.com/CarrascoOlmedoDevs/zzockerrrrr/pitch"
)

// Home defends the west goal and attacks east; away mirrors. Placement is a
// pure function of (field, side size, kicking team), so every reset with the
// same arguments yields the same formation.

func teamSign(team state.Team) float64 {
	if team == state.TeamHome {
		return -1.0
	}

	return 1.0
}

// kickoffPosition places the j-th player (jersey order, 0-based) of a team
// in its own half. The keeper sits on the goal line area; outfield players
// form banks of four from defense forward. When the team kicks off, its last
// outfield player steps up next to the center spot.
func kickoffPosition(field *pitch.Field, j int, n int, team state.Team, kicking bool) vector.Vector2 {
	sign := teamSign(team)
	halfLength := field.Length() / 2.0
	width := field.Width()

	if kicking && j == n-1 {
		return vector.MakeVector2(sign*0.8, 0)
	}

	if j == 0 {
		return vector.MakeVector2(sign*(halfLength-2.0), 0)
	}

	col := (j - 1) / 4
	row := (j - 1) % 4

	x := sign * halfLength * (0.72 - 0.22*float64(col))
	y := (float64(row) - 1.5) * (width / 5.0)

	return vector.MakeVector2(x, y)
}

// resetForKickoff rebuilds the kickoff formation in place: every player back
// on their spot with zero velocity and no action in progress, ball loose at
// the center spot. Stamina and the score are kept.
func (s *Simulation) resetForKickoff(kicking state.Team) {
	s.gamestate.ClearPossession()

	for _, ids := range [][]state.PlayerID{s.homeIDs, s.awayIDs} {
		for j, id := range ids {
			playerstate, ok := s.gamestate.GetPlayerState(id)
			if !ok {
				continue
			}

			pos := kickoffPosition(s.field, j, len(ids), playerstate.Team, playerstate.Team == kicking)

			playerstate.Position = pos
			playerstate.Velocity = vector.MakeNullVector2()
			playerstate.Orientation = vector.MakeVector2(-teamSign(playerstate.Team), 0).Angle()
			playerstate.InProgress = state.ActionInProgress{}

			s.gamestate.SetPlayerState(id, playerstate)
		}
	}

	ballstate := s.gamestate.GetBallState()
	ballstate.Position = s.field.CenterSpot()
	ballstate.Velocity = vector.MakeNullVector2()
	ballstate.Spin = 0
	ballstate.PossessedBy = state.NoPlayer
	ballstate.LastTouchID = state.NoPlayer
	s.gamestate.SetBallState(ballstate)
}
