package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

type Status string

const (
	StatusLobby      Status = "lobby"
	StatusCollecting Status = "collecting"
	StatusComplete   Status = "complete"
)

// Session is one multiplayer crafting run. Flowers required by the recipe
// move between three places: the unassigned pool, per-player assignment
// (player.assigned_flower_id) and the collected set. A flower is never in
// more than one of those at a time.
type Session struct {
	ID              uuid.UUID     `db:"id"`
	Code            string        `db:"code"`
	RecipeID        int64         `db:"recipe_id"`
	Status          Status        `db:"status"`
	InitialPlayerID uuid.UUID     `db:"initial_player_id"`
	Lat             float64       `db:"lat"`
	Lng             float64       `db:"lng"`
	Unassigned      pq.Int64Array `db:"unassigned_flowers"`
	Collected       pq.Int64Array `db:"collected_flowers"`
	CreatedAt       time.Time     `db:"created_at"`
}

func New(recipeID int64, initialPlayerID uuid.UUID, lat, lng float64, code string, requiredFlowers []int64) Session {
	unassigned := make(pq.Int64Array, len(requiredFlowers))
	copy(unassigned, requiredFlowers)

	return Session{
		ID:              uuid.New(),
		Code:            code,
		RecipeID:        recipeID,
		Status:          StatusLobby,
		InitialPlayerID: initialPlayerID,
		Lat:             lat,
		Lng:             lng,
		Unassigned:      unassigned,
		Collected:       pq.Int64Array{},
		CreatedAt:       time.Now().UTC(),
	}
}

// AssignNext pops the first unassigned flower. Assignment order follows the
// recipe's stored flower order; flowers returned by leaving players go to
// the back of the pool.
func (s *Session) AssignNext() (int64, error) {
	if s.Status != StatusLobby {
		return 0, ErrWrongPhase
	}

	if len(s.Unassigned) == 0 {
		return 0, ErrNoFlowersLeft
	}

	flowerID := s.Unassigned[0]
	s.Unassigned = s.Unassigned[1:]
	return flowerID, nil
}

func (s *Session) ReturnFlower(flowerID int64) {
	s.Unassigned = append(s.Unassigned, flowerID)
}

func (s *Session) IsCollected(flowerID int64) bool {
	for _, id := range s.Collected {
		if id == flowerID {
			return true
		}
	}
	return false
}

// MarkCollected adds a flower to the collected set. The set semantics make
// duplicate submissions a no-op; the return value reports whether the
// flower was newly added.
func (s *Session) MarkCollected(flowerID int64) bool {
	if s.IsCollected(flowerID) {
		return false
	}

	s.Collected = append(s.Collected, flowerID)
	return true
}

func (s *Session) CollectedAll(requiredFlowers []int64) bool {
	for _, id := range requiredFlowers {
		if !s.IsCollected(id) {
			return false
		}
	}
	return true
}

func (s *Session) StartCollecting(playerID uuid.UUID) error {
	if playerID != s.InitialPlayerID {
		return ErrNotInitiator
	}

	if s.Status != StatusLobby {
		return ErrWrongPhase
	}

	if len(s.Unassigned) > 0 {
		return ErrNotEnoughPlayers
	}

	s.Status = StatusCollecting
	return nil
}

func (s *Session) Complete() {
	s.Status = StatusComplete
}

func (s *Session) Demote() {
	s.Status = StatusLobby
}

type LeaveOutcome int

const (
	LeaveKeepSession LeaveOutcome = iota
	LeaveDeleteSession
	LeaveDemoteToLobby
)

// Leave decides the session-level cleanup after a player has been removed
// from membership. The order of the checks matters: an empty session is
// always deleted, an initiator walking out of a live session collapses it,
// and a non-initiator leaving mid-collection sends everyone back to the
// lobby because the full-assignment condition may no longer hold.
func (s *Session) Leave(leaverID uuid.UUID, remainingMembers int) LeaveOutcome {
	switch {
	case remainingMembers == 0:
		return LeaveDeleteSession
	case leaverID == s.InitialPlayerID && (s.Status == StatusLobby || s.Status == StatusCollecting):
		return LeaveDeleteSession
	case s.Status == StatusCollecting:
		return LeaveDemoteToLobby
	default:
		return LeaveKeepSession
	}
}

func (s *Session) OlderThan(ttl time.Duration, now time.Time) bool {
	return now.Sub(s.CreatedAt) > ttl
}
