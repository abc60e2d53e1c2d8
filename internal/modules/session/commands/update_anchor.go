package commands

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/http"

	"github.com/mylittlegrimoire/server/internal/modules/core"
	"github.com/mylittlegrimoire/server/internal/modules/player"
	"github.com/mylittlegrimoire/server/internal/modules/session"
	"github.com/mylittlegrimoire/server/internal/modules/session/domain"

	"github.com/eskrenkovic/mediator-go"
	"github.com/google/uuid"
)

// UpdateAnchorCommand lets the initiator correct the lobby location before
// others join.
type UpdateAnchorCommand struct {
	PlayerID uuid.UUID `json:"player_id"`
	Lat      float64   `json:"lat"`
	Lng      float64   `json:"lng"`
}

func (c UpdateAnchorCommand) Validate() error {
	if c.PlayerID == uuid.Nil {
		return fmt.Errorf("invalid PlayerID - '%s'", c.PlayerID.String())
	}

	if c.Lat < -90 || c.Lat > 90 {
		return fmt.Errorf("invalid Lat - '%f'", c.Lat)
	}

	if c.Lng < -180 || c.Lng > 180 {
		return fmt.Errorf("invalid Lng - '%f'", c.Lng)
	}

	return nil
}

type UpdateAnchorResponse struct {
	Session session.View
}

func HandleUpdateAnchor(w http.ResponseWriter, r *http.Request) {
	command, err := core.RequestBody[UpdateAnchorCommand](r)
	if err != nil {
		core.WriteBadRequest(w, r, err)
		return
	}

	response, err := mediator.Send[UpdateAnchorCommand, UpdateAnchorResponse](
		r.Context(),
		command,
	)
	if err != nil {
		core.WriteCommandError(w, r, err)
		return
	}

	core.WriteOK(w, r, response.Session)
}

type UpdateAnchorCommandHandler struct {
	db *sql.DB
}

func NewUpdateAnchorCommandHandler(db *sql.DB) *UpdateAnchorCommandHandler {
	return &UpdateAnchorCommandHandler{db}
}

func (h *UpdateAnchorCommandHandler) Handle(
	ctx context.Context,
	request UpdateAnchorCommand,
) (UpdateAnchorResponse, error) {
	var view session.View

	txFn := func(ctx context.Context, tx *sql.Tx) error {
		p, err := player.Get(ctx, tx, request.PlayerID)
		switch {
		case errors.Is(err, sql.ErrNoRows):
			return domain.ErrPlayerNotFound
		case err != nil:
			return err
		}

		if !p.CurrentSessionID.Valid {
			return domain.ErrNotInSession
		}

		s, err := session.GetForUpdate(ctx, tx, p.CurrentSessionID.UUID)
		if err != nil {
			return err
		}

		if p.ID != s.InitialPlayerID {
			return domain.ErrNotInitiator
		}

		s.Lat = request.Lat
		s.Lng = request.Lng

		if err := session.Update(ctx, tx, s); err != nil {
			return err
		}

		view, err = session.BuildView(ctx, tx, s)
		return err
	}

	err := core.Tx(ctx, h.db, txFn, core.WithIsolationLevel(sql.LevelSerializable))
	if err != nil {
		return UpdateAnchorResponse{}, commandError(err)
	}

	return UpdateAnchorResponse{Session: view}, nil
}
