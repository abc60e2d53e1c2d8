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

type LeaveSessionCommand struct {
	PlayerID uuid.UUID `json:"player_id"`
}

func (c LeaveSessionCommand) Validate() error {
	if c.PlayerID == uuid.Nil {
		return fmt.Errorf("invalid PlayerID - '%s'", c.PlayerID.String())
	}

	return nil
}

type LeaveSessionResponse struct {
	Left bool `json:"left"`
}

func HandleLeaveSession(w http.ResponseWriter, r *http.Request) {
	command, err := core.RequestBody[LeaveSessionCommand](r)
	if err != nil {
		core.WriteBadRequest(w, r, err)
		return
	}

	response, err := mediator.Send[LeaveSessionCommand, LeaveSessionResponse](
		r.Context(),
		command,
	)
	if err != nil {
		core.WriteCommandError(w, r, err)
		return
	}

	core.WriteOK(w, r, response)
}

type LeaveSessionCommandHandler struct {
	db *sql.DB
}

func NewLeaveSessionCommandHandler(db *sql.DB) *LeaveSessionCommandHandler {
	return &LeaveSessionCommandHandler{db}
}

func (h *LeaveSessionCommandHandler) Handle(
	ctx context.Context,
	request LeaveSessionCommand,
) (LeaveSessionResponse, error) {
	txFn := func(ctx context.Context, tx *sql.Tx) error {
		p, err := player.GetForUpdate(ctx, tx, request.PlayerID)
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
			if errors.Is(err, domain.ErrSessionNotFound) {
				// Dangling reference. Clearing it is the whole leave, so
				// commit the clear instead of failing the request.
				return player.ClearCurrentSession(ctx, tx, p.ID)
			}
			return err
		}

		// An assigned flower that was never collected goes back into
		// circulation for the next joiner.
		if p.AssignedFlowerID.Valid && !s.IsCollected(p.AssignedFlowerID.Int64) {
			s.ReturnFlower(p.AssignedFlowerID.Int64)
		}

		if err := player.ClearCurrentSession(ctx, tx, p.ID); err != nil {
			return err
		}

		remaining, err := session.MemberCount(ctx, tx, s.ID)
		if err != nil {
			return err
		}

		switch s.Leave(p.ID, remaining) {
		case domain.LeaveDeleteSession:
			if err := session.DetachMembers(ctx, tx, s.ID); err != nil {
				return err
			}
			return session.Delete(ctx, tx, s.ID)

		case domain.LeaveDemoteToLobby:
			s.Demote()
			return session.Update(ctx, tx, s)

		default:
			return session.Update(ctx, tx, s)
		}
	}

	err := core.Tx(ctx, h.db, txFn, core.WithIsolationLevel(sql.LevelSerializable))
	if err != nil {
		return LeaveSessionResponse{}, commandError(err)
	}

	return LeaveSessionResponse{Left: true}, nil
}
