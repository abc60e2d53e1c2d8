package session

import (
	"context"
	"time"

	"github.com/mylittlegrimoire/server/internal/modules/core"
	"github.com/mylittlegrimoire/server/internal/modules/session/domain"

	"github.com/google/uuid"
)

type MemberView struct {
	PlayerID       uuid.UUID `json:"player_id"`
	Name           string    `json:"name"`
	Picture        int       `json:"picture"`
	AssignedFlower *int64    `json:"assigned_flower,omitempty"`
}

// View is the public shape of a session returned to clients.
type View struct {
	SessionID        uuid.UUID     `json:"session_id"`
	Code             string        `json:"code"`
	RecipeID         int64         `json:"recipe_id"`
	Status           domain.Status `json:"status"`
	InitialPlayer    uuid.UUID     `json:"initial_player"`
	Players          []MemberView  `json:"players"`
	FlowersCollected []int64       `json:"flowers_collected"`
	Lat              float64       `json:"lat"`
	Lng              float64       `json:"lng"`
	CreatedAt        time.Time     `json:"created_at"`
}

func BuildView(ctx context.Context, q core.DB, s domain.Session) (View, error) {
	members, err := Members(ctx, q, s.ID)
	if err != nil {
		return View{}, err
	}

	players := core.Map(members, func(m Member) MemberView {
		view := MemberView{
			PlayerID: m.PlayerID,
			Name:     m.Name,
			Picture:  m.Picture,
		}

		if m.AssignedFlower.Valid {
			flowerID := m.AssignedFlower.Int64
			view.AssignedFlower = &flowerID
		}

		return view
	})

	return View{
		SessionID:        s.ID,
		Code:             s.Code,
		RecipeID:         s.RecipeID,
		Status:           s.Status,
		InitialPlayer:    s.InitialPlayerID,
		Players:          players,
		FlowersCollected: []int64(s.Collected),
		Lat:              s.Lat,
		Lng:              s.Lng,
		CreatedAt:        s.CreatedAt,
	}, nil
}
