package commands

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/http"
	"path"

	"github.com/mylittlegrimoire/server/internal/modules/core"
	"github.com/mylittlegrimoire/server/internal/modules/player"
	"github.com/mylittlegrimoire/server/internal/modules/recipe"
	"github.com/mylittlegrimoire/server/internal/modules/session"
	"github.com/mylittlegrimoire/server/internal/modules/session/domain"

	"github.com/eskrenkovic/mediator-go"
	"github.com/google/uuid"
)

const maxCodeAttempts = 10

type CreateSessionCommand struct {
	PlayerID   uuid.UUID `json:"player_id"`
	RecipeID   int64     `json:"recipe_id"`
	InitialLat float64   `json:"initial_lat"`
	InitialLng float64   `json:"initial_lng"`
}

func (c CreateSessionCommand) Validate() error {
	if c.PlayerID == uuid.Nil {
		return fmt.Errorf("invalid PlayerID - '%s'", c.PlayerID.String())
	}

	if c.RecipeID < 1 {
		return fmt.Errorf("invalid RecipeID - '%d'", c.RecipeID)
	}

	if c.InitialLat < -90 || c.InitialLat > 90 {
		return fmt.Errorf("invalid InitialLat - '%f'", c.InitialLat)
	}

	if c.InitialLng < -180 || c.InitialLng > 180 {
		return fmt.Errorf("invalid InitialLng - '%f'", c.InitialLng)
	}

	return nil
}

type CreateSessionResponse struct {
	Session session.View
}

func HandleCreateSession(w http.ResponseWriter, r *http.Request) {
	command, err := core.RequestBody[CreateSessionCommand](r)
	if err != nil {
		core.WriteBadRequest(w, r, err)
		return
	}

	response, err := mediator.Send[CreateSessionCommand, CreateSessionResponse](
		r.Context(),
		command,
	)
	if err != nil {
		core.WriteCommandError(w, r, err)
		return
	}

	location := path.Join(r.Host, "sessions", response.Session.SessionID.String())
	core.WriteCreated(w, r, location, response.Session)
}

type CreateSessionCommandHandler struct {
	db         *sql.DB
	codeLength int
}

func NewCreateSessionCommandHandler(db *sql.DB, codeLength int) *CreateSessionCommandHandler {
	return &CreateSessionCommandHandler{db, codeLength}
}

func (h *CreateSessionCommandHandler) Handle(
	ctx context.Context,
	request CreateSessionCommand,
) (CreateSessionResponse, error) {
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

		if _, err := recipe.Get(ctx, tx, request.RecipeID); err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return domain.ErrRecipeNotFound
			}
			return err
		}

		hasGrimoire, err := player.HasGrimoire(ctx, tx, p.ID)
		if err != nil {
			return err
		}
		if !hasGrimoire {
			return domain.ErrNoGrimoire
		}

		unlocked, err := player.HasUnlockedRecipe(ctx, tx, p.ID, request.RecipeID)
		if err != nil {
			return err
		}
		if !unlocked {
			return domain.ErrRecipeLocked
		}

		// Prerequisite potions are only checked here - they are consumed
		// when the session completes, not when it starts.
		requiredPotions, err := recipe.RequiredPotions(ctx, tx, request.RecipeID)
		if err != nil {
			return err
		}

		needed := make(map[int64]int)
		for _, potionID := range requiredPotions {
			needed[potionID]++
		}

		for potionID, amount := range needed {
			held, err := player.PotionAmount(ctx, tx, p.ID, potionID)
			if err != nil {
				return err
			}

			if held < amount {
				return domain.ErrMissingPotions
			}
		}

		requiredFlowers, err := recipe.RequiredFlowers(ctx, tx, request.RecipeID)
		if err != nil {
			return err
		}
		if len(requiredFlowers) == 0 {
			return domain.ErrNoRequiredFlowers
		}

		code, err := h.generateUniqueCode(ctx, tx)
		if err != nil {
			return err
		}

		s := domain.New(
			request.RecipeID,
			p.ID,
			request.InitialLat,
			request.InitialLng,
			code,
			requiredFlowers,
		)

		assignedFlower, err := s.AssignNext()
		if err != nil {
			return err
		}

		if err := session.Insert(ctx, tx, s); err != nil {
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
		return CreateSessionResponse{}, commandError(err)
	}

	return CreateSessionResponse{Session: view}, nil
}

func (h *CreateSessionCommandHandler) generateUniqueCode(ctx context.Context, tx *sql.Tx) (string, error) {
	for attempt := 0; attempt < maxCodeAttempts; attempt++ {
		code, err := domain.GenerateJoinCode(h.codeLength)
		if err != nil {
			return "", err
		}

		exists, err := session.CodeExists(ctx, tx, code)
		if err != nil {
			return "", err
		}

		if !exists {
			return code, nil
		}
	}

	return "", fmt.Errorf("failed to generate a unique join code after %d attempts", maxCodeAttempts)
}
