package queries

import (
	"context"
	"database/sql"
	"net/http"

	"github.com/mylittlegrimoire/server/internal/modules/core"
	"github.com/mylittlegrimoire/server/internal/modules/recipe"

	"github.com/eskrenkovic/mediator-go"
)

type GetFlowersQuery struct{}

type FlowerView struct {
	ID      int64  `json:"id"`
	ColorID string `json:"color_id"`
	Name    string `json:"name"`
}

func HandleGetFlowers(w http.ResponseWriter, r *http.Request) {
	response, err := mediator.Send[GetFlowersQuery, []FlowerView](
		r.Context(),
		GetFlowersQuery{},
	)
	if err != nil {
		core.WriteCommandError(w, r, err)
		return
	}

	core.WriteOK(w, r, response)
}

type GetFlowersQueryHandler struct {
	db *sql.DB
}

func NewGetFlowersQueryHandler(db *sql.DB) *GetFlowersQueryHandler {
	return &GetFlowersQueryHandler{db}
}

func (h *GetFlowersQueryHandler) Handle(
	ctx context.Context,
	request GetFlowersQuery,
) ([]FlowerView, error) {
	flowers, err := recipe.ListFlowers(ctx, h.db)
	if err != nil {
		return nil, core.NewCommandError(500, err)
	}

	views := core.Map(flowers, func(f recipe.Flower) FlowerView {
		return FlowerView{ID: f.ID, ColorID: f.ColorID, Name: f.Name}
	})

	return views, nil
}
