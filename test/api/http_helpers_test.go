package main

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"testing"

	"github.com/eskrenkovic/tql"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

type responseAssertion func(*http.Response)

func sendRequest[TReq any, TResp any](
	c *http.Client,
	url string,
	method string,
	req TReq,
	opts ...responseAssertion,
) (TResp, error) {
	var resp TResp

	payload, err := json.Marshal(req)
	if err != nil {
		return resp, err
	}

	httpReq, err := http.NewRequest(method, url, bytes.NewReader(payload))
	if err != nil {
		return resp, err
	}

	httpResp, err := c.Do(httpReq)
	if err != nil {
		return resp, err
	}

	for _, opt := range opts {
		opt(httpResp)
	}

	if httpResp.ContentLength > 0 {
		defer func() {
			_ = httpResp.Body.Close()
		}()

		responsePayload, err := io.ReadAll(httpResp.Body)
		if err != nil {
			return resp, err
		}

		if err := json.Unmarshal(responsePayload, &resp); err != nil {
			return resp, err
		}
	}

	return resp, err
}

func expectStatus(t *testing.T, statusCode int) responseAssertion {
	return func(resp *http.Response) {
		require.Equal(t, statusCode, resp.StatusCode)
	}
}

func seedPlayer(t *testing.T) uuid.UUID {
	playerID := uuid.New()

	_, err := tql.Exec(
		context.Background(),
		fixture.db,
		`INSERT INTO player (id, name, picture, money) VALUES (:id, :name, 0, 0);`,
		map[string]any{"id": playerID, "name": uuid.NewString()},
	)
	require.NoError(t, err)

	return playerID
}

func grantGrimoire(t *testing.T, playerID uuid.UUID) {
	_, err := tql.Exec(
		context.Background(),
		fixture.db,
		`INSERT INTO grimoire (player_id, pages_unlocked) VALUES (:player_id, 1);`,
		map[string]any{"player_id": playerID},
	)
	require.NoError(t, err)
}

func recipeID(t *testing.T, name string) int64 {
	id, err := tql.QueryFirst[int64](
		context.Background(),
		fixture.db,
		`SELECT id FROM recipe WHERE name = $1;`,
		name,
	)
	require.NoError(t, err)

	return id
}

func flowerID(t *testing.T, colorID string) int64 {
	id, err := tql.QueryFirst[int64](
		context.Background(),
		fixture.db,
		`SELECT id FROM flower WHERE color_id = $1;`,
		colorID,
	)
	require.NoError(t, err)

	return id
}

func unlockRecipe(t *testing.T, playerID uuid.UUID, recipeName string) int64 {
	id := recipeID(t, recipeName)

	_, err := tql.Exec(
		context.Background(),
		fixture.db,
		`INSERT INTO grimoire_recipe (player_id, recipe_id) VALUES (:player_id, :recipe_id);`,
		map[string]any{"player_id": playerID, "recipe_id": id},
	)
	require.NoError(t, err)

	return id
}

func grantPotion(t *testing.T, playerID uuid.UUID, potionName string, amount int) {
	id := recipeID(t, potionName)

	_, err := tql.Exec(
		context.Background(),
		fixture.db,
		`INSERT INTO inventory_item (player_id, potion_id, amount)
		VALUES (:player_id, :potion_id, :amount)
		ON CONFLICT (player_id, potion_id) DO UPDATE SET amount = :amount;`,
		map[string]any{"player_id": playerID, "potion_id": id, "amount": amount},
	)
	require.NoError(t, err)
}

// seedWitch creates a player who can initiate a session for the named
// recipe: registered, owning a grimoire, with the recipe unlocked.
func seedWitch(t *testing.T, recipeName string) (uuid.UUID, int64) {
	playerID := seedPlayer(t)
	grantGrimoire(t, playerID)
	id := unlockRecipe(t, playerID, recipeName)

	return playerID, id
}

func sessionsURL(suffix string) string {
	return fmt.Sprintf("%s/sessions%s", fixture.baseURL, suffix)
}
