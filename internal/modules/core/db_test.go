package core

import (
	"fmt"
	"testing"

	"github.com/lib/pq"
	"github.com/stretchr/testify/require"
)

func Test_IsSerializationFailure_Detects_SQLSTATE_40001(t *testing.T) {
	err := &pq.Error{Code: "40001", Message: "could not serialize access due to concurrent update"}

	require.True(t, isSerializationFailure(err))
}

func Test_IsSerializationFailure_Detects_Wrapped_Errors(t *testing.T) {
	wrapped := fmt.Errorf("join session: %w", &pq.Error{Code: "40001"})

	require.True(t, isSerializationFailure(wrapped))
}

func Test_IsSerializationFailure_Ignores_Other_Errors(t *testing.T) {
	require.False(t, isSerializationFailure(nil))
	require.False(t, isSerializationFailure(fmt.Errorf("connection reset")))
	require.False(t, isSerializationFailure(&pq.Error{Code: "23505"}))
}
