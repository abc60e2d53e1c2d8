package commands

import (
	"errors"

	"github.com/mylittlegrimoire/server/internal/modules/core"
	"github.com/mylittlegrimoire/server/internal/modules/session/domain"
)

type errorMapping struct {
	target     error
	statusCode int
	reason     string
}

// Each session failure keeps its own machine-readable reason so clients can
// tell "too far away" from "session already started" and so on.
var errorMappings = []errorMapping{
	{domain.ErrPlayerNotFound, 404, "player_not_found"},
	{domain.ErrSessionNotFound, 404, "session_not_found"},
	{domain.ErrRecipeNotFound, 404, "recipe_not_found"},
	{domain.ErrFlowerNotFound, 404, "flower_not_found"},
	{domain.ErrAlreadyInSession, 409, "already_in_session"},
	{domain.ErrNotInSession, 409, "not_in_session"},
	{domain.ErrNoGrimoire, 409, "no_grimoire"},
	{domain.ErrWrongPhase, 409, "wrong_phase"},
	{domain.ErrNoFlowersLeft, 409, "no_flowers_available"},
	{domain.ErrNotInitiator, 409, "not_initiator"},
	{domain.ErrNotEnoughPlayers, 409, "not_enough_players"},
	{domain.ErrRecipeLocked, 403, "recipe_locked"},
	{domain.ErrTooFar, 403, "too_far"},
	{domain.ErrWrongFlower, 403, "wrong_flower"},
	{domain.ErrMissingPotions, 422, "missing_potions"},
	{domain.ErrNoRequiredFlowers, 422, "no_required_flowers"},
	{domain.ErrFlowerNotRequired, 422, "flower_not_required"},
	{domain.ErrIdentificationFailed, 502, "identification_failed"},
}

func commandError(err error) error {
	for _, m := range errorMappings {
		if errors.Is(err, m.target) {
			return core.NewCommandError(m.statusCode, err, core.WithReason(m.reason))
		}
	}

	return core.NewCommandError(500, err)
}
