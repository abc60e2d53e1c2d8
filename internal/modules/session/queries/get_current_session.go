package queries

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

// GetCurrentSessionQuery backs client reconnects - a restarted client asks
// for whatever session its player is still part of.
type GetCurrentSessionQuery struct {
	PlayerID uuid.UUID
}

func (q GetCurrentSessionQuery) Validate() error {
	if q.PlayerID == uuid.Nil {
		return fmt.Errorf("invalid PlayerID - '%s'", q.PlayerID.String())
	}

	return nil
}

func HandleGetCurrentSession(w http.ResponseWriter, r *http.Request) {
	playerIDParam, found := r.URL.Query()["playerId"]
	if !found {
		core.WriteBadRequest(w, r, fmt.Errorf("missing required query param 'playerId'"))
		return
	}

	playerID, err := uuid.Parse(playerIDParam[0])
	if err != nil {
		core.WriteBadRequest(w, r, fmt.Errorf("invalid format for query param 'playerId'"))
		return
	}

	response, err := mediator.Send[GetCurrentSessionQuery, session.View](
		r.Context(),
		GetCurrentSessionQuery{PlayerID: playerID},
	)
	if err != nil {
		core.WriteCommandError(w, r, err)
		return
	}

	core.WriteOK(w, r, response)
}

type GetCurrentSessionQueryHandler struct {
	db *sql.DB
}

func NewGetCurrentSessionQueryHandler(db *sql.DB) *GetCurrentSessionQueryHandler {
	return &GetCurrentSessionQueryHandler{db}
}

func (h *GetCurrentSessionQueryHandler) Handle(
	ctx context.Context,
	request GetCurrentSessionQuery,
) (session.View, error) {
	p, err := player.Get(ctx, h.db, request.PlayerID)
	switch {
	case errors.Is(err, sql.ErrNoRows):
		return session.View{}, core.NewCommandError(404, domain.ErrPlayerNotFound, core.WithReason("player_not_found"))
	case err != nil:
		return session.View{}, core.NewCommandError(500, err)
	}

	if !p.CurrentSessionID.Valid {
		return session.View{}, core.NewCommandError(404, domain.ErrNotInSession, core.WithReason("no_session"))
	}

	s, err := session.Get(ctx, h.db, p.CurrentSessionID.UUID)
	switch {
	case errors.Is(err, domain.ErrSessionNotFound):
		return session.View{}, core.NewCommandError(404, err, core.WithReason("session_not_found"))
	case err != nil:
		return session.View{}, core.NewCommandError(500, err)
	}

	view, err := session.BuildView(ctx, h.db, s)
	if err != nil {
		return session.View{}, core.NewCommandError(500, err)
	}

	return view, nil
}
