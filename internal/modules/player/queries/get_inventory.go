package queries

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/http"

	"github.com/mylittlegrimoire/server/internal/modules/core"
	"github.com/mylittlegrimoire/server/internal/modules/player"

	"github.com/eskrenkovic/mediator-go"
	"github.com/go-chi/chi"
	"github.com/google/uuid"
)

type GetInventoryQuery struct {
	PlayerID uuid.UUID
}

func (q GetInventoryQuery) Validate() error {
	if q.PlayerID == uuid.Nil {
		return fmt.Errorf("invalid PlayerID - '%s'", q.PlayerID.String())
	}

	return nil
}

type PotionView struct {
	PotionID int64 `json:"potion_id"`
	Amount   int   `json:"amount"`
}

type InventoryView struct {
	Potions []PotionView `json:"potions"`
}

func HandleGetInventory(w http.ResponseWriter, r *http.Request) {
	playerID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		core.WriteBadRequest(w, r, fmt.Errorf("invalid format for path param 'id'"))
		return
	}

	response, err := mediator.Send[GetInventoryQuery, InventoryView](
		r.Context(),
		GetInventoryQuery{PlayerID: playerID},
	)
	if err != nil {
		core.WriteCommandError(w, r, err)
		return
	}

	core.WriteOK(w, r, response)
}

type GetInventoryQueryHandler struct {
	db *sql.DB
}

func NewGetInventoryQueryHandler(db *sql.DB) *GetInventoryQueryHandler {
	return &GetInventoryQueryHandler{db}
}

func (h *GetInventoryQueryHandler) Handle(
	ctx context.Context,
	request GetInventoryQuery,
) (InventoryView, error) {
	if _, err := player.Get(ctx, h.db, request.PlayerID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return InventoryView{}, core.NewCommandError(404, err, core.WithReason("player_not_found"))
		}
		return InventoryView{}, core.NewCommandError(500, err)
	}

	items, err := player.Inventory(ctx, h.db, request.PlayerID)
	if err != nil {
		return InventoryView{}, core.NewCommandError(500, err)
	}

	potions := core.Map(items, func(item player.InventoryItem) PotionView {
		return PotionView{PotionID: item.PotionID, Amount: item.Amount}
	})

	return InventoryView{Potions: potions}, nil
}
