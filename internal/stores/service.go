package stores

import (
	"context"
	"errors"
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/geocart/geocart-backend/pkg/config"
	"github.com/geocart/geocart-backend/pkg/db/models"
	pkgerrors "github.com/geocart/geocart-backend/pkg/errors"
	"github.com/geocart/geocart-backend/pkg/geo"
)

type storeRepository interface {
	Create(ctx context.Context, input CreateStoreInput) (*models.Store, error)
	FindByID(ctx context.Context, id uuid.UUID) (*models.Store, error)
	List(ctx context.Context) ([]models.Store, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// Service exposes store lookup and admin management.
type Service interface {
	FindNearby(ctx context.Context, origin geo.Coordinate, radiusKm float64) ([]StoreDTO, error)
	GetByID(ctx context.Context, id uuid.UUID) (*StoreDTO, error)
	List(ctx context.Context) ([]StoreDTO, error)
	Create(ctx context.Context, input CreateStoreInput) (*StoreDTO, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type service struct {
	repo storeRepository
	cfg  config.NearbyConfig
}

// NewService builds a store service with the provided repository.
func NewService(repo storeRepository, cfg config.NearbyConfig) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("store repository required")
	}
	return &service{repo: repo, cfg: cfg}, nil
}

// FindNearby returns stores within radiusKm of origin, closest first.
// A zero radius falls back to the configured default; ties keep the
// repository's insertion order.
func (s *service) FindNearby(ctx context.Context, origin geo.Coordinate, radiusKm float64) ([]StoreDTO, error) {
	if err := origin.Validate(); err != nil {
		return nil, err
	}
	// NaN compares false against every bound below, so it has to be
	// rejected before the range checks.
	if math.IsNaN(radiusKm) || math.IsInf(radiusKm, 0) {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "radius must be a finite number").
			WithDetails(map[string]any{"field": "radius"})
	}
	if radiusKm <= 0 {
		radiusKm = s.cfg.DefaultRadiusKm
	}
	if s.cfg.MaxRadiusKm > 0 && radiusKm > s.cfg.MaxRadiusKm {
		return nil, pkgerrors.New(pkgerrors.CodeValidation,
			fmt.Sprintf("radius must not exceed %.0f km", s.cfg.MaxRadiusKm)).
			WithDetails(map[string]any{"field": "radius"})
	}

	rows, err := s.repo.List(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load stores")
	}

	nearby := make([]StoreDTO, 0, len(rows))
	for i := range rows {
		distance := geo.DistanceKm(origin, rows[i].Location())
		if distance > radiusKm {
			continue
		}
		dto := FromModel(&rows[i])
		d := distance
		dto.DistanceKm = &d
		nearby = append(nearby, *dto)
	}

	sort.SliceStable(nearby, func(i, j int) bool {
		return *nearby[i].DistanceKm < *nearby[j].DistanceKm
	})

	if s.cfg.MaxResults > 0 && len(nearby) > s.cfg.MaxResults {
		nearby = nearby[:s.cfg.MaxResults]
	}
	return nearby, nil
}

func (s *service) GetByID(ctx context.Context, id uuid.UUID) (*StoreDTO, error) {
	store, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "store not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load store")
	}
	return FromModel(store), nil
}

func (s *service) List(ctx context.Context) ([]StoreDTO, error) {
	rows, err := s.repo.List(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list stores")
	}
	out := make([]StoreDTO, 0, len(rows))
	for i := range rows {
		out = append(out, *FromModel(&rows[i]))
	}
	return out, nil
}

func (s *service) Create(ctx context.Context, input CreateStoreInput) (*StoreDTO, error) {
	input.Name = strings.TrimSpace(input.Name)
	if input.Name == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "store name is required")
	}
	coord := geo.Coordinate{Lat: input.Lat, Lon: input.Lon}
	if err := coord.Validate(); err != nil {
		return nil, err
	}

	store, err := s.repo.Create(ctx, input)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create store")
	}
	return FromModel(store), nil
}

func (s *service) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return pkgerrors.New(pkgerrors.CodeNotFound, "store not found")
		}
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load store")
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete store")
	}
	return nil
}
