package identify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/mylittlegrimoire/server/internal/config"
	"github.com/mylittlegrimoire/server/internal/modules/session/domain"

	"go.uber.org/zap"
)

// Identifier turns a flower photo into a catalog color label.
type Identifier interface {
	Identify(ctx context.Context, image []byte) (string, error)
}

type identificationResponse struct {
	ColorID string `json:"color_id"`
	Error   string `json:"error"`
}

type HTTPIdentifier struct {
	url    string
	client *http.Client
	logger *zap.Logger

	debugFallback bool
	fallbackColor string
}

var _ Identifier = (*HTTPIdentifier)(nil)

func NewHTTPIdentifier(conf config.IdentifierConfiguration, logger *zap.Logger) *HTTPIdentifier {
	return &HTTPIdentifier{
		url:           conf.URL,
		client:        &http.Client{Timeout: conf.Timeout},
		logger:        logger,
		debugFallback: conf.DebugFallback,
		fallbackColor: conf.FallbackColor,
	}
}

func (i *HTTPIdentifier) Identify(ctx context.Context, image []byte) (string, error) {
	colorID, err := i.identify(ctx, image)
	if err != nil {
		// The fallback hides misconfiguration and model outages, which is
		// why it stays behind an explicit development flag.
		if i.debugFallback {
			i.logger.Warn(
				"flower identification failed, using debug fallback color",
				zap.String("fallback_color", i.fallbackColor),
				zap.Error(err),
			)
			return i.fallbackColor, nil
		}

		return "", fmt.Errorf("%s: %w", err.Error(), domain.ErrIdentificationFailed)
	}

	return colorID, nil
}

func (i *HTTPIdentifier) identify(ctx context.Context, image []byte) (string, error) {
	if i.url == "" {
		return "", fmt.Errorf("identifier URL is not configured")
	}

	request, err := http.NewRequestWithContext(ctx, http.MethodPost, i.url, bytes.NewReader(image))
	if err != nil {
		return "", err
	}
	request.Header.Set("Content-Type", "application/octet-stream")

	response, err := i.client.Do(request)
	if err != nil {
		return "", err
	}
	defer response.Body.Close()

	if response.StatusCode != http.StatusOK {
		return "", fmt.Errorf("identifier responded with status %d", response.StatusCode)
	}

	var identification identificationResponse
	if err := json.NewDecoder(response.Body).Decode(&identification); err != nil {
		return "", err
	}

	if identification.Error != "" {
		return "", fmt.Errorf("identifier returned error: %s", identification.Error)
	}

	if identification.ColorID == "" {
		return "", fmt.Errorf("identifier returned no color")
	}

	return identification.ColorID, nil
}
