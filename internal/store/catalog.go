package store

import (
	"context"
	"errors"
	"fmt"

	"creature_packs/internal/domain"
	"creature_packs/internal/logger"
	"creature_packs/internal/pokeapi"
)

// GetCatalog returns every offered booster pack. When the cache already
// knows the full configured set of pack ids the provider is not consulted
// for the listing; otherwise the ids are fetched and unioned into the cache.
func (s *Service) GetCatalog(ctx context.Context) ([]domain.Boosterpack, error) {
	ids, err := s.cache.KnownPackIDs(ctx)
	if err != nil {
		logger.Warn("pack id cache read failed", "error", err)
		ids = nil
	}

	if len(ids) != s.packLimit {
		ids, err = s.api.ListLocationIDs(ctx, s.packLimit)
		if err != nil {
			return nil, fmt.Errorf("list locations: %w", err)
		}
		if err := s.cache.AddKnownPackIDs(ctx, ids); err != nil {
			logger.Warn("pack id cache write failed", "error", err)
		}
	}

	packs := make([]domain.Boosterpack, 0, len(ids))
	for _, id := range ids {
		pack, err := s.GetPack(ctx, id)
		if err != nil {
			return nil, err
		}
		if pack == nil {
			// Stock resolved empty; the pack is not offered.
			continue
		}
		packs = append(packs, *pack)
	}
	return packs, nil
}

// GetPack resolves one booster pack. A nil pack without error means the id
// is unknown or its stock is empty; emptiness is not cached, since a future
// provider refresh may stock the location.
func (s *Service) GetPack(ctx context.Context, id int) (*domain.Boosterpack, error) {
	cached, err := s.cache.GetPack(ctx, id)
	if err != nil {
		logger.Warn("pack cache read failed", "pack_id", id, "error", err)
	} else if cached != nil {
		catalogCacheHits.WithLabelValues("hit").Inc()
		return cached, nil
	}
	catalogCacheHits.WithLabelValues("miss").Inc()

	loc, err := s.api.GetLocation(ctx, id)
	if err != nil {
		if errors.Is(err, pokeapi.ErrNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("fetch location %d: %w", id, err)
	}

	stock, err := s.api.GetLocationStock(ctx, loc)
	if err != nil {
		return nil, fmt.Errorf("fetch stock for location %d: %w", id, err)
	}
	if len(stock) == 0 {
		return nil, nil
	}

	pack := &domain.Boosterpack{
		LocationID: loc.ID,
		Name:       PackDisplayName(loc.Name),
		Price:      PackPrice(loc.ID),
		HexColor:   PackColor(loc.ID),
		Creatures:  stock,
	}

	if err := s.cache.PutPack(ctx, id, pack); err != nil {
		logger.Warn("pack cache write failed", "pack_id", id, "error", err)
	}

	return pack, nil
}
