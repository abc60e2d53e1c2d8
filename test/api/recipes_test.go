package main

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/mylittlegrimoire/server/internal/modules/recipe/queries"

	"github.com/stretchr/testify/require"
)

func Test_GetRecipes_Returns_Seeded_Catalog(t *testing.T) {
	// Act
	recipes, err := sendRequest[any, []queries.RecipeView](
		fixture.client,
		fmt.Sprintf("%s/recipes", fixture.baseURL),
		http.MethodGet,
		nil,
		expectStatus(t, http.StatusOK),
	)

	// Assert
	require.NoError(t, err)
	require.GreaterOrEqual(t, len(recipes), 3)

	byName := make(map[string]queries.RecipeView, len(recipes))
	for _, r := range recipes {
		byName[r.Name] = r
	}

	healing, ok := byName["Healing Potion"]
	require.True(t, ok)
	require.Equal(t, []int64{flowerID(t, "red"), flowerID(t, "lilac")}, healing.RequiredFlowers)
	require.Empty(t, healing.RequiredPotions)

	elixir, ok := byName["Legendary Elixir"]
	require.True(t, ok)
	require.Equal(t, []int64{flowerID(t, "yellow")}, elixir.RequiredFlowers)
	require.ElementsMatch(
		t,
		[]int64{recipeID(t, "Healing Potion"), recipeID(t, "Mana Potion")},
		elixir.RequiredPotions,
	)
}

func Test_GetFlowers_Returns_Seeded_Catalog(t *testing.T) {
	// Act
	flowers, err := sendRequest[any, []queries.FlowerView](
		fixture.client,
		fmt.Sprintf("%s/flowers", fixture.baseURL),
		http.MethodGet,
		nil,
		expectStatus(t, http.StatusOK),
	)

	// Assert
	require.NoError(t, err)
	require.GreaterOrEqual(t, len(flowers), 9)

	byColor := make(map[string]queries.FlowerView, len(flowers))
	for _, f := range flowers {
		byColor[f.ColorID] = f
	}

	red, ok := byColor["red"]
	require.True(t, ok)
	require.Equal(t, "Sanguine Rose", red.Name)
	require.Equal(t, flowerID(t, "red"), red.ID)

	_, ok = byColor["lilac"]
	require.True(t, ok)
}
