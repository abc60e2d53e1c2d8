package commands

import (
	"fmt"
	"testing"

	"github.com/mylittlegrimoire/server/internal/modules/core"
	"github.com/mylittlegrimoire/server/internal/modules/session/domain"

	"github.com/stretchr/testify/require"
)

func Test_CommandError_Maps_Domain_Errors_To_Status_And_Reason(t *testing.T) {
	cases := []struct {
		err        error
		statusCode int
		reason     string
	}{
		{domain.ErrPlayerNotFound, 404, "player_not_found"},
		{domain.ErrSessionNotFound, 404, "session_not_found"},
		{domain.ErrWrongPhase, 409, "wrong_phase"},
		{domain.ErrTooFar, 403, "too_far"},
		{domain.ErrWrongFlower, 403, "wrong_flower"},
		{domain.ErrMissingPotions, 422, "missing_potions"},
		{domain.ErrIdentificationFailed, 502, "identification_failed"},
	}

	for _, c := range cases {
		// Act
		err := commandError(c.err)

		// Assert
		var cmdErr core.CommandError
		require.ErrorAs(t, err, &cmdErr)
		require.Equal(t, c.statusCode, cmdErr.StatusCode)
		require.NotNil(t, cmdErr.Reason)
		require.Equal(t, c.reason, *cmdErr.Reason)
	}
}

func Test_CommandError_Maps_Wrapped_Domain_Errors(t *testing.T) {
	// Arrange
	wrapped := fmt.Errorf("resolving flower: %w", domain.ErrFlowerNotFound)

	// Act
	err := commandError(wrapped)

	// Assert
	var cmdErr core.CommandError
	require.ErrorAs(t, err, &cmdErr)
	require.Equal(t, 404, cmdErr.StatusCode)
}

func Test_CommandError_Defaults_To_Internal_Server_Error(t *testing.T) {
	// Act
	err := commandError(fmt.Errorf("connection reset"))

	// Assert
	var cmdErr core.CommandError
	require.ErrorAs(t, err, &cmdErr)
	require.Equal(t, 500, cmdErr.StatusCode)
	require.Nil(t, cmdErr.Reason)
}
