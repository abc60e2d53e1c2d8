package commands

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/mylittlegrimoire/server/internal/modules/core"
	"github.com/mylittlegrimoire/server/internal/modules/player"
	"github.com/mylittlegrimoire/server/internal/modules/session"
	"github.com/mylittlegrimoire/server/internal/modules/session/domain"

	"github.com/eskrenkovic/mediator-go"
	"github.com/google/uuid"
)

type JoinSessionCommand struct {
	PlayerID uuid.UUID `json:"player_id"`
	Lat      float64   `json:"lat"`
	Lng      float64   `json:"lng"`
	Code     string    `json:"code"`
}

func (c JoinSessionCommand) Validate() error {
	if c.PlayerID == uuid.Nil {
		return fmt.Errorf("invalid PlayerID - '%s'", c.PlayerID.String())
	}

	if strings.TrimSpace(c.Code) == "" {
		return fmt.Errorf("invalid Code - '%s'", c.Code)
	}

	if c.Lat < -90 || c.Lat > 90 {
		return fmt.Errorf("invalid Lat - '%f'", c.Lat)
	}

	if c.Lng < -180 || c.Lng > 180 {
		return fmt.Errorf("invalid Lng - '%f'", c.Lng)
	}

	return nil
}

type JoinSessionResponse struct {
	Session session.View
}

func HandleJoinSession(w http.ResponseWriter, r *http.Request) {
	command, err := core.RequestBody[JoinSessionCommand](r)
	if err != nil {
		core.WriteBadRequest(w, r, err)
		return
	}

	response, err := mediator.Send[JoinSessionCommand, JoinSessionResponse](
		r.Context(),
		command,
	)
	if err != nil {
		core.WriteCommandError(w, r, err)
		return
	}

	core.WriteOK(w, r, response.Session)
}

type JoinSessionCommandHandler struct {
	db           *sql.DB
	radiusMeters float64
}

func NewJoinSessionCommandHandler(db *sql.DB, radiusMeters float64) *JoinSessionCommandHandler {
	return &JoinSessionCommandHandler{db, radiusMeters}
}

func (h *JoinSessionCommandHandler) Handle(
	ctx context.Context,
	request JoinSessionCommand,
) (JoinSessionResponse, error) {
	var view session.View

	txFn := func(ctx context.Context, tx *sql.Tx) error {
		p, err := player.GetForUpdate(ctx, tx, request.PlayerID)
		switch {
		case errors.Is(err, sql.ErrNoRows):
			return domain.ErrPlayerNotFound
		case err != nil:
			return err
		}

		if p.CurrentSessionID.Valid {
			return domain.ErrAlreadyInSession
		}

		code := strings.ToUpper(strings.TrimSpace(request.Code))
		s, err := session.GetByCodeForUpdate(ctx, tx, code)
		if err != nil {
			return err
		}

		// Joining is locked the moment collection starts.
		if s.Status != domain.StatusLobby {
			return domain.ErrWrongPhase
		}

		if len(s.Unassigned) == 0 {
			return domain.ErrNoFlowersLeft
		}

		if !domain.WithinRadius(request.Lat, request.Lng, s.Lat, s.Lng, h.radiusMeters) {
			return domain.ErrTooFar
		}

		assignedFlower, err := s.AssignNext()
		if err != nil {
			return err
		}

		if err := session.Update(ctx, tx, s); err != nil {
			return err
		}

		if err := player.SetCurrentSession(ctx, tx, p.ID, s.ID, assignedFlower); err != nil {
			return err
		}

		view, err = session.BuildView(ctx, tx, s)
		return err
	}

	err := core.Tx(ctx, h.db, txFn, core.WithIsolationLevel(sql.LevelSerializable))
	if err != nil {
		return JoinSessionResponse{}, commandError(err)
	}

	return JoinSessionResponse{Session: view}, nil
}
