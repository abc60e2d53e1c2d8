package queries

import (
	"context"
	"database/sql"
	"net/http"

	"github.com/mylittlegrimoire/server/internal/modules/core"
	"github.com/mylittlegrimoire/server/internal/modules/recipe"

	"github.com/eskrenkovic/mediator-go"
)

type GetRecipesQuery struct{}

type RecipeView struct {
	ID              int64   `json:"id"`
	Name            string  `json:"name"`
	RequiredFlowers []int64 `json:"required_flowers"`
	RequiredPotions []int64 `json:"required_potions"`
}

func HandleGetRecipes(w http.ResponseWriter, r *http.Request) {
	response, err := mediator.Send[GetRecipesQuery, []RecipeView](
		r.Context(),
		GetRecipesQuery{},
	)
	if err != nil {
		core.WriteCommandError(w, r, err)
		return
	}

	core.WriteOK(w, r, response)
}

type GetRecipesQueryHandler struct {
	db *sql.DB
}

func NewGetRecipesQueryHandler(db *sql.DB) *GetRecipesQueryHandler {
	return &GetRecipesQueryHandler{db}
}

func (h *GetRecipesQueryHandler) Handle(
	ctx context.Context,
	request GetRecipesQuery,
) ([]RecipeView, error) {
	recipes, err := recipe.List(ctx, h.db)
	if err != nil {
		return nil, core.NewCommandError(500, err)
	}

	views := make([]RecipeView, 0, len(recipes))
	for _, rec := range recipes {
		flowers, err := recipe.RequiredFlowers(ctx, h.db, rec.ID)
		if err != nil {
			return nil, core.NewCommandError(500, err)
		}

		potions, err := recipe.RequiredPotions(ctx, h.db, rec.ID)
		if err != nil {
			return nil, core.NewCommandError(500, err)
		}

		views = append(views, RecipeView{
			ID:              rec.ID,
			Name:            rec.Name,
			RequiredFlowers: flowers,
			RequiredPotions: potions,
		})
	}

	return views, nil
}
