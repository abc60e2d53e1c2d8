package recipe

import (
	"context"

	"github.com/mylittlegrimoire/server/internal/modules/core"

	"github.com/eskrenkovic/tql"
)

func Get(ctx context.Context, q core.DB, id int64) (Recipe, error) {
	const query = `
		SELECT *
		FROM recipe
		WHERE id = $1;`

	return tql.QueryFirst[Recipe](ctx, q, query, id)
}

func List(ctx context.Context, q core.DB) ([]Recipe, error) {
	const query = `
		SELECT *
		FROM recipe
		ORDER BY id;`

	return tql.Query[Recipe](ctx, q, query)
}

// RequiredFlowers returns the recipe's flower requirement set in its
// stored order. The order is what drives deterministic assignment.
func RequiredFlowers(ctx context.Context, q core.DB, recipeID int64) ([]int64, error) {
	const query = `
		SELECT flower_id
		FROM recipe_flower
		WHERE recipe_id = $1
		ORDER BY position;`

	return tql.Query[int64](ctx, q, query, recipeID)
}

func RequiredPotions(ctx context.Context, q core.DB, recipeID int64) ([]int64, error) {
	const query = `
		SELECT potion_id
		FROM recipe_potion
		WHERE recipe_id = $1
		ORDER BY potion_id;`

	return tql.Query[int64](ctx, q, query, recipeID)
}

func ListFlowers(ctx context.Context, q core.DB) ([]Flower, error) {
	const query = `
		SELECT *
		FROM flower
		ORDER BY id;`

	return tql.Query[Flower](ctx, q, query)
}

func FlowerByColor(ctx context.Context, q core.DB, colorID string) (Flower, error) {
	const query = `
		SELECT *
		FROM flower
		WHERE color_id = $1;`

	return tql.QueryFirst[Flower](ctx, q, query, colorID)
}
