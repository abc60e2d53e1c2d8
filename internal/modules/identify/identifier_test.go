package identify

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/mylittlegrimoire/server/internal/config"
	"github.com/mylittlegrimoire/server/internal/modules/session/domain"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func identifierConf(url string) config.IdentifierConfiguration {
	return config.IdentifierConfiguration{
		URL:     url,
		Timeout: 5 * time.Second,
	}
}

func Test_Identify_Returns_Color_From_Service(t *testing.T) {
	// Arrange
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"color_id": "lilac"}`))
	}))
	defer srv.Close()

	identifier := NewHTTPIdentifier(identifierConf(srv.URL), zap.NewNop())

	// Act
	colorID, err := identifier.Identify(context.Background(), []byte("image-bytes"))

	// Assert
	require.NoError(t, err)
	require.Equal(t, "lilac", colorID)
}

func Test_Identify_Wraps_Service_Errors(t *testing.T) {
	// Arrange
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	identifier := NewHTTPIdentifier(identifierConf(srv.URL), zap.NewNop())

	// Act
	_, err := identifier.Identify(context.Background(), []byte("image-bytes"))

	// Assert
	require.ErrorIs(t, err, domain.ErrIdentificationFailed)
}

func Test_Identify_Wraps_Error_Payload(t *testing.T) {
	// Arrange
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"error": "no flower detected"}`))
	}))
	defer srv.Close()

	identifier := NewHTTPIdentifier(identifierConf(srv.URL), zap.NewNop())

	// Act
	_, err := identifier.Identify(context.Background(), []byte("image-bytes"))

	// Assert
	require.ErrorIs(t, err, domain.ErrIdentificationFailed)
}

func Test_Identify_Uses_Fallback_Color_When_Debug_Fallback_Enabled(t *testing.T) {
	// Arrange
	conf := identifierConf("")
	conf.DebugFallback = true
	conf.FallbackColor = "red"

	identifier := NewHTTPIdentifier(conf, zap.NewNop())

	// Act
	colorID, err := identifier.Identify(context.Background(), []byte("image-bytes"))

	// Assert
	require.NoError(t, err)
	require.Equal(t, "red", colorID)
}

func Test_Identify_Fails_Without_Configured_URL(t *testing.T) {
	// Arrange
	identifier := NewHTTPIdentifier(identifierConf(""), zap.NewNop())

	// Act
	_, err := identifier.Identify(context.Background(), []byte("image-bytes"))

	// Assert
	require.ErrorIs(t, err, domain.ErrIdentificationFailed)
}
