package commands

import (
	"context"
	"database/sql"
	"net/http"
	"time"

	"github.com/mylittlegrimoire/server/internal/modules/core"
	"github.com/mylittlegrimoire/server/internal/modules/session"

	"github.com/eskrenkovic/mediator-go"
)

// SweepSessionsCommand is the maintenance sweep: sessions past the
// retention window, or with nobody left in them, are deleted. Exposed on
// an admin route for operational use; otherwise run on a schedule.
type SweepSessionsCommand struct{}

type SweepSessionsResponse struct {
	Removed int `json:"removed"`
}

func HandleSweepSessions(w http.ResponseWriter, r *http.Request) {
	response, err := mediator.Send[SweepSessionsCommand, SweepSessionsResponse](
		r.Context(),
		SweepSessionsCommand{},
	)
	if err != nil {
		core.WriteCommandError(w, r, err)
		return
	}

	core.WriteOK(w, r, response)
}

type SweepSessionsCommandHandler struct {
	db  *sql.DB
	ttl time.Duration
}

func NewSweepSessionsCommandHandler(db *sql.DB, ttl time.Duration) *SweepSessionsCommandHandler {
	return &SweepSessionsCommandHandler{db, ttl}
}

func (h *SweepSessionsCommandHandler) Handle(
	ctx context.Context,
	request SweepSessionsCommand,
) (SweepSessionsResponse, error) {
	removed := 0

	txFn := func(ctx context.Context, tx *sql.Tx) error {
		cutoff := time.Now().UTC().Add(-h.ttl)

		staleIDs, err := session.StaleIDs(ctx, tx, cutoff)
		if err != nil {
			return err
		}

		for _, id := range staleIDs {
			if err := session.DetachMembers(ctx, tx, id); err != nil {
				return err
			}

			if err := session.Delete(ctx, tx, id); err != nil {
				return err
			}

			removed++
		}

		return nil
	}

	err := core.Tx(ctx, h.db, txFn, core.WithIsolationLevel(sql.LevelSerializable))
	if err != nil {
		return SweepSessionsResponse{}, commandError(err)
	}

	return SweepSessionsResponse{Removed: removed}, nil
}
