package services

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/shadamnittt/FeelGo/internal/catalogs"
	"github.com/shadamnittt/FeelGo/internal/config"
	"github.com/shadamnittt/FeelGo/internal/overpass"
	"github.com/shadamnittt/FeelGo/internal/session"
	"github.com/shadamnittt/FeelGo/pkg/utils"
)

type RecommendationServiceInterface interface {
	Fetch(ctx context.Context, sess *session.Session) ([]overpass.Place, error)
}

type RecommendationService struct {
	client overpass.ClientInterface
	search config.SearchConfig
	logger *zap.Logger
}

func NewRecommendationService(
	client overpass.ClientInterface,
	search config.SearchConfig,
	logger *zap.Logger,
) RecommendationServiceInterface {
	return &RecommendationService{client: client, search: search, logger: logger}
}

// Fetch turns the session's collected preferences into one provider query and
// returns the normalized places. An empty result is a valid outcome, not an
// error. The caller must hold the session lock.
func (s *RecommendationService) Fetch(ctx context.Context, sess *session.Session) ([]overpass.Place, error) {
	if sess.Mood == "" || sess.Budget == "" {
		return nil, fmt.Errorf("%w: mood and budget must be set before a search", utils.ErrMissingPreconditions)
	}

	var center overpass.LatLon
	var radius int

	switch sess.Scope {
	case session.ScopeNearby:
		if sess.Location == nil {
			return nil, fmt.Errorf("%w: nearby search without a location", utils.ErrMissingPreconditions)
		}
		center = *sess.Location
		radius = s.search.NearbyRadiusMeters
	case session.ScopeCityWide:
		if sess.CategoryID == "" {
			return nil, fmt.Errorf("%w: city-wide search without a category", utils.ErrMissingPreconditions)
		}
		center = overpass.LatLon{Lat: s.search.CityCenterLatitude, Lon: s.search.CityCenterLongitude}
		radius = s.search.CityWideRadiusMeters
	default:
		return nil, fmt.Errorf("%w: scope not set", utils.ErrMissingPreconditions)
	}

	query := overpass.BuildQuery(sess.CategoryID, center, radius)

	elements, err := s.client.Search(ctx, query)
	if err != nil {
		return nil, err
	}

	var categoryLabel string
	if c, ok := catalogs.CategoryByID(sess.CategoryID); ok {
		categoryLabel = c.Label
	}

	places := overpass.Normalize(elements, categoryLabel)
	s.logger.Info("search completed",
		zap.Int64("chat_id", sess.ChatID),
		zap.String("scope", string(sess.Scope)),
		zap.Int("elements", len(elements)),
		zap.Int("places", len(places)))
	return places, nil
}
