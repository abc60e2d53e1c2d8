package main

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/mylittlegrimoire/server/internal/modules/player/queries"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

func Test_GetInventory_Returns_Player_Potions(t *testing.T) {
	// Arrange
	playerID := seedPlayer(t)
	grantPotion(t, playerID, "Healing Potion", 3)

	// Act
	inventory, err := sendRequest[any, queries.InventoryView](
		fixture.client,
		fmt.Sprintf("%s/players/%s/inventory", fixture.baseURL, playerID),
		http.MethodGet,
		nil,
		expectStatus(t, http.StatusOK),
	)

	// Assert
	require.NoError(t, err)
	require.Len(t, inventory.Potions, 1)
	require.Equal(t, recipeID(t, "Healing Potion"), inventory.Potions[0].PotionID)
	require.Equal(t, 3, inventory.Potions[0].Amount)
}

func Test_GetInventory_Returns_404_For_Unknown_Player(t *testing.T) {
	// Act
	_, err := sendRequest[any, any](
		fixture.client,
		fmt.Sprintf("%s/players/%s/inventory", fixture.baseURL, uuid.New()),
		http.MethodGet,
		nil,
		expectStatus(t, http.StatusNotFound),
	)

	// Assert
	require.NoError(t, err)
}

func Test_GetInventory_Returns_400_For_Malformed_ID(t *testing.T) {
	// Act
	_, err := sendRequest[any, any](
		fixture.client,
		fmt.Sprintf("%s/players/%s/inventory", fixture.baseURL, "not-a-uuid"),
		http.MethodGet,
		nil,
		expectStatus(t, http.StatusBadRequest),
	)

	// Assert
	require.NoError(t, err)
}
