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

type StartCollectingCommand struct {
	PlayerID uuid.UUID `json:"player_id"`
}

func (c StartCollectingCommand) Validate() error {
	if c.PlayerID == uuid.Nil {
		return fmt.Errorf("invalid PlayerID - '%s'", c.PlayerID.String())
	}

	return nil
}

type StartCollectingResponse struct {
	Session session.View
}

func HandleStartCollecting(w http.ResponseWriter, r *http.Request) {
	command, err := core.RequestBody[StartCollectingCommand](r)
	if err != nil {
		core.WriteBadRequest(w, r, err)
		return
	}

	response, err := mediator.Send[StartCollectingCommand, StartCollectingResponse](
		r.Context(),
		command,
	)
	if err != nil {
		core.WriteCommandError(w, r, err)
		return
	}

	core.WriteOK(w, r, response.Session)
}

type StartCollectingCommandHandler struct {
	db *sql.DB
}

func NewStartCollectingCommandHandler(db *sql.DB) *StartCollectingCommandHandler {
	return &StartCollectingCommandHandler{db}
}

func (h *StartCollectingCommandHandler) Handle(
	ctx context.Context,
	request StartCollectingCommand,
) (StartCollectingResponse, error) {
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

		if err := s.StartCollecting(p.ID); err != nil {
			return err
		}

		if err := session.Update(ctx, tx, s); err != nil {
			return err
		}

		view, err = session.BuildView(ctx, tx, s)
		return err
	}

	err := core.Tx(ctx, h.db, txFn, core.WithIsolationLevel(sql.LevelSerializable))
	if err != nil {
		return StartCollectingResponse{}, commandError(err)
	}

	return StartCollectingResponse{Session: view}, nil
}
