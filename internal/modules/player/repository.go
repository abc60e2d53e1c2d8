package player

import (
	"context"

	"github.com/mylittlegrimoire/server/internal/modules/core"

	"github.com/eskrenkovic/tql"
	"github.com/google/uuid"
)

func Get(ctx context.Context, q core.DB, id uuid.UUID) (Player, error) {
	const query = `
		SELECT *
		FROM player
		WHERE id = $1;`

	return tql.QueryFirst[Player](ctx, q, query, id)
}

// GetForUpdate locks the player row. Session commands use this so two
// concurrent requests cannot both see "no current session" and hand the
// player two memberships.
func GetForUpdate(ctx context.Context, q core.DB, id uuid.UUID) (Player, error) {
	const query = `
		SELECT *
		FROM player
		WHERE id = $1
		FOR UPDATE;`

	return tql.QueryFirst[Player](ctx, q, query, id)
}

func SetCurrentSession(ctx context.Context, q core.DB, playerID, sessionID uuid.UUID, flowerID int64) error {
	const stmt = `
		UPDATE
			player
		SET
			current_session_id = :session_id,
			assigned_flower_id = :flower_id
		WHERE
			id = :player_id;`

	_, err := tql.Exec(ctx, q, stmt, map[string]any{
		"player_id":  playerID,
		"session_id": sessionID,
		"flower_id":  flowerID,
	})
	return err
}

func ClearCurrentSession(ctx context.Context, q core.DB, playerID uuid.UUID) error {
	const stmt = `
		UPDATE
			player
		SET
			current_session_id = NULL,
			assigned_flower_id = NULL
		WHERE
			id = :player_id;`

	_, err := tql.Exec(ctx, q, stmt, map[string]any{"player_id": playerID})
	return err
}

func HasGrimoire(ctx context.Context, q core.DB, playerID uuid.UUID) (bool, error) {
	const query = `
		SELECT count(player_id)
		FROM grimoire
		WHERE player_id = $1;`

	count, err := tql.QueryFirst[int](ctx, q, query, playerID)
	return count > 0, err
}

func HasUnlockedRecipe(ctx context.Context, q core.DB, playerID uuid.UUID, recipeID int64) (bool, error) {
	const query = `
		SELECT count(recipe_id)
		FROM grimoire_recipe
		WHERE player_id = $1 AND recipe_id = $2;`

	count, err := tql.QueryFirst[int](ctx, q, query, playerID, recipeID)
	return count > 0, err
}

func Inventory(ctx context.Context, q core.DB, playerID uuid.UUID) ([]InventoryItem, error) {
	const query = `
		SELECT
			potion_id, amount
		FROM
			inventory_item
		WHERE
			player_id = $1
		ORDER BY
			potion_id;`

	return tql.Query[InventoryItem](ctx, q, query, playerID)
}

func PotionAmount(ctx context.Context, q core.DB, playerID uuid.UUID, potionID int64) (int, error) {
	const query = `
		SELECT coalesce(sum(amount), 0)
		FROM inventory_item
		WHERE player_id = $1 AND potion_id = $2;`

	return tql.QueryFirst[int](ctx, q, query, playerID, potionID)
}

// DecrementPotion takes one potion off the player's stock. Returns false
// when there was nothing left to take.
func DecrementPotion(ctx context.Context, q core.DB, playerID uuid.UUID, potionID int64) (bool, error) {
	const stmt = `
		UPDATE
			inventory_item
		SET
			amount = amount - 1
		WHERE
			player_id = :player_id
			AND potion_id = :potion_id
			AND amount > 0;`

	result, err := tql.Exec(ctx, q, stmt, map[string]any{
		"player_id": playerID,
		"potion_id": potionID,
	})
	if err != nil {
		return false, err
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return false, err
	}

	return affected > 0, nil
}
