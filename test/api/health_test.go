package main

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"
)

func Test_Health_Returns_Healthy(t *testing.T) {
	// Act
	response, err := sendRequest[any, map[string]string](
		fixture.client,
		fmt.Sprintf("%s/health", fixture.baseURL),
		http.MethodGet,
		nil,
		expectStatus(t, http.StatusOK),
	)

	// Assert
	require.NoError(t, err)
	require.Equal(t, "healthy", response["status"])
}
