package overpass

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/shadamnittt/FeelGo/pkg/utils"
)

// ClientInterface is the outbound seam to the geo provider.
type ClientInterface interface {
	Search(ctx context.Context, query Query) ([]Element, error)
}

type Client struct {
	endpoint string
	http     *http.Client
	logger   *zap.Logger
}

func NewClient(endpoint string, timeout time.Duration, logger *zap.Logger) *Client {
	return &Client{
		endpoint: endpoint,
		http:     &http.Client{Timeout: timeout},
		logger:   logger,
	}
}

// Search posts the query to the Overpass endpoint and returns the raw
// elements. Failures are wrapped in ErrProviderUnavailable when retrying
// makes sense (timeouts, connection failures, 5xx) and ErrProviderRejected
// when it does not (4xx, malformed payload).
func (c *Client) Search(ctx context.Context, query Query) ([]Element, error) {
	form := url.Values{"data": {query.QL}}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return nil, fmt.Errorf("%w: building request: %v", utils.ErrProviderRejected, err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	started := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		c.logger.Warn("overpass request failed",
			zap.String("amenity", query.Amenity),
			zap.Int("radius_m", query.RadiusMeters),
			zap.Error(err))
		return nil, fmt.Errorf("%w: %v", utils.ErrProviderUnavailable, err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode >= 500:
		return nil, fmt.Errorf("%w: status %d", utils.ErrProviderUnavailable, resp.StatusCode)
	case resp.StatusCode >= 400:
		return nil, fmt.Errorf("%w: status %d", utils.ErrProviderRejected, resp.StatusCode)
	}

	var payload searchResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("%w: decoding payload: %v", utils.ErrProviderRejected, err)
	}

	c.logger.Debug("overpass search done",
		zap.String("amenity", query.Amenity),
		zap.Int("radius_m", query.RadiusMeters),
		zap.Int("elements", len(payload.Elements)),
		zap.Duration("took", time.Since(started)))

	return payload.Elements, nil
}
