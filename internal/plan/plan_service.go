package plan

import (
	"context"
	"database/sql"
	"encoding/json"
	"time"

	"go-gym/internal/shared/contextutil"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

// The catalog is master data; it changes rarely and every registration
// form reads it, so it gets a generous cache.
const (
	planCatalogCacheKey = "plans:catalog"
	planCatalogCacheTTL = 30 * time.Minute
)

//go:generate mockgen -source=plan_service.go -destination=mock/plan_service_mock.go -package=mock
type Service interface {
	Create(ctx context.Context, req CreatePlanRequest) (PlanResponse, error)
	GetAll(ctx context.Context, activeOnly bool) ([]PlanResponse, error)
	GetByID(ctx context.Context, id string) (PlanResponse, error)
	Update(ctx context.Context, id string, req UpdatePlanRequest) (PlanResponse, error)
	Delete(ctx context.Context, id string) error
}

type service struct {
	db   *sql.DB
	repo Repository
	rdb  *redis.Client
	sf   *singleflight.Group
}

func NewService(db *sql.DB, repo Repository, rdb *redis.Client) Service {
	return &service{db: db, repo: repo, rdb: rdb, sf: &singleflight.Group{}}
}

func (s *service) Create(ctx context.Context, req CreatePlanRequest) (PlanResponse, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return PlanResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	p := &Plan{
		ID:           uuid.New(),
		Name:         req.Name,
		Description:  req.Description,
		Price:        req.Price,
		DurationDays: req.DurationDays,
		Active:       true,
	}

	if err := qtx.Create(ctx, p); err != nil {
		return PlanResponse{}, err
	}

	if err := tx.Commit(); err != nil {
		return PlanResponse{}, err
	}

	s.invalidateCatalog(ctx)

	return mapToResponse(*p), nil
}

func (s *service) GetAll(ctx context.Context, activeOnly bool) ([]PlanResponse, error) {
	cacheKey := planCatalogCacheKey
	if activeOnly {
		cacheKey += ":active"
	}

	if s.rdb != nil {
		if cached, err := s.rdb.Get(ctx, cacheKey).Result(); err == nil {
			var resp []PlanResponse
			if json.Unmarshal([]byte(cached), &resp) == nil {
				return resp, nil
			}
		}
	}

	v, err, _ := s.sf.Do(cacheKey, func() (interface{}, error) {
		plans, err := s.repo.FindAll(ctx, activeOnly)
		if err != nil {
			return nil, err
		}

		resp := mapToListResponse(plans)

		if s.rdb != nil {
			if jsonData, err := json.Marshal(resp); err == nil {
				s.rdb.Set(ctx, cacheKey, jsonData, planCatalogCacheTTL)
			}
		}

		return resp, nil
	})
	if err != nil {
		return nil, err
	}

	return v.([]PlanResponse), nil
}

func (s *service) GetByID(ctx context.Context, id string) (PlanResponse, error) {
	p, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return PlanResponse{}, err
	}

	return mapToResponse(*p), nil
}

func (s *service) Update(ctx context.Context, id string, req UpdatePlanRequest) (PlanResponse, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return PlanResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	p, err := qtx.FindByID(ctx, id)
	if err != nil {
		return PlanResponse{}, err
	}

	p.Name = req.Name
	p.Description = req.Description
	p.Price = req.Price
	p.DurationDays = req.DurationDays
	if req.Active != nil {
		p.Active = *req.Active
	}

	if err := qtx.Update(ctx, p); err != nil {
		return PlanResponse{}, err
	}

	if err := tx.Commit(); err != nil {
		return PlanResponse{}, err
	}

	s.invalidateCatalog(ctx)

	return mapToResponse(*p), nil
}

func (s *service) Delete(ctx context.Context, id string) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	if err := qtx.Delete(ctx, id); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return err
	}

	s.invalidateCatalog(ctx)
	return nil
}

func (s *service) invalidateCatalog(ctx context.Context) {
	if s.rdb == nil {
		return
	}
	if err := s.rdb.Del(ctx, planCatalogCacheKey, planCatalogCacheKey+":active").Err(); err != nil {
		contextutil.GetLogger(ctx, nil).Error("invalidate plan catalog cache failed", zap.Error(err))
	}
}

func mapToResponse(p Plan) PlanResponse {
	return PlanResponse{
		ID:           p.ID.String(),
		Name:         p.Name,
		Description:  p.Description,
		Price:        p.Price,
		DurationDays: p.DurationDays,
		Active:       p.Active,
		CreatedAt:    p.CreatedAt.Format(time.RFC3339),
		UpdatedAt:    p.UpdatedAt.Format(time.RFC3339),
	}
}

func mapToListResponse(plans []Plan) []PlanResponse {
	res := make([]PlanResponse, len(plans))
	for i, p := range plans {
		res[i] = mapToResponse(p)
	}
	return res
}
