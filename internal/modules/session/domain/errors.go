package domain

import "errors"

var (
	ErrPlayerNotFound       = errors.New("player not found")
	ErrSessionNotFound      = errors.New("session not found")
	ErrRecipeNotFound       = errors.New("recipe not found")
	ErrFlowerNotFound       = errors.New("flower not found")
	ErrAlreadyInSession     = errors.New("player already has a session")
	ErrNotInSession         = errors.New("player has no session")
	ErrNoGrimoire           = errors.New("player has no grimoire")
	ErrRecipeLocked         = errors.New("recipe not unlocked in grimoire")
	ErrMissingPotions       = errors.New("missing required potions")
	ErrNoRequiredFlowers    = errors.New("recipe requires no flowers")
	ErrWrongPhase           = errors.New("session is in the wrong phase")
	ErrNoFlowersLeft        = errors.New("no unassigned flowers remain")
	ErrTooFar               = errors.New("player is too far from the session anchor")
	ErrNotInitiator         = errors.New("player did not start the session")
	ErrNotEnoughPlayers     = errors.New("not every flower has a player assigned")
	ErrWrongFlower          = errors.New("flower is not the one assigned to the player")
	ErrFlowerNotRequired    = errors.New("flower is not part of the recipe")
	ErrIdentificationFailed = errors.New("flower identification failed")
)
