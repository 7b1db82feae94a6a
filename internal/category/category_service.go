package category

import (
	"context"
	"database/sql"
	"encoding/json"
	"strings"
	"time"

	categoryerrors "github.com/cha0jun/leavey/internal/category/errors"
	"github.com/cha0jun/leavey/internal/domain"
	"github.com/cha0jun/leavey/internal/shared/contextutil"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

const (
	CategoryAllKey = "leave_categories:all"
	CacheTTL       = 30 * time.Minute
)

//go:generate mockgen -source=category_service.go -destination=mock/category_service_mock.go -package=mock
type Service interface {
	GetAll(ctx context.Context) ([]CategoryResponse, error)
	GetByID(ctx context.Context, id string) (CategoryResponse, error)
	Create(ctx context.Context, p domain.Principal, req CreateCategoryRequest) (CategoryResponse, error)
	Update(ctx context.Context, p domain.Principal, id string, req UpdateCategoryRequest) (CategoryResponse, error)
}

type service struct {
	db     *sql.DB
	repo   Repository
	rdb    *redis.Client
	sf     *singleflight.Group
	logger *zap.Logger
}

// NewService wires the category catalogue. rdb may be nil, in which case
// every read goes to the database.
func NewService(db *sql.DB, repo Repository, rdb *redis.Client, logger ...*zap.Logger) Service {
	l := zap.L().Named("category.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("category.service")
	}
	return &service{db: db, repo: repo, rdb: rdb, sf: &singleflight.Group{}, logger: l}
}

func (s *service) GetAll(ctx context.Context) ([]CategoryResponse, error) {
	log := contextutil.GetLogger(ctx, s.logger)

	if s.rdb != nil {
		cached, err := s.rdb.Get(ctx, CategoryAllKey).Result()
		if err == nil {
			var resp []CategoryResponse
			if err := json.Unmarshal([]byte(cached), &resp); err == nil {
				return resp, nil
			}
		} else if err != redis.Nil {
			log.Warn("category cache read failed", zap.Error(err))
		}
	}

	v, err, _ := s.sf.Do(CategoryAllKey, func() (any, error) {
		categories, err := s.repo.FindAll(ctx)
		if err != nil {
			return nil, err
		}
		resp := mapToListResponse(categories)

		if s.rdb != nil {
			if data, err := json.Marshal(resp); err == nil {
				if err := s.rdb.Set(ctx, CategoryAllKey, data, CacheTTL).Err(); err != nil {
					log.Warn("category cache write failed", zap.Error(err))
				}
			}
		}
		return resp, nil
	})
	if err != nil {
		log.Error("list categories failed", zap.Error(err))
		return nil, err
	}
	return v.([]CategoryResponse), nil
}

func (s *service) GetByID(ctx context.Context, id string) (CategoryResponse, error) {
	categoryID, err := uuid.Parse(id)
	if err != nil {
		return CategoryResponse{}, categoryerrors.ErrInvalidCategoryID
	}
	c, err := s.repo.FindByID(ctx, categoryID)
	if err != nil {
		return CategoryResponse{}, mapRepositoryError(err)
	}
	return mapToResponse(*c), nil
}

func (s *service) Create(ctx context.Context, p domain.Principal, req CreateCategoryRequest) (CategoryResponse, error) {
	log := contextutil.GetLogger(ctx, s.logger)
	if !p.IsAdmin() {
		return CategoryResponse{}, categoryerrors.ErrCategoryForbidden
	}

	chargeable := true
	if req.IsChargeable != nil {
		chargeable = *req.IsChargeable
	}
	c := &LeaveCategory{
		ID:           uuid.New(),
		Name:         strings.TrimSpace(req.Name),
		IsChargeable: chargeable,
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return CategoryResponse{}, err
	}
	defer tx.Rollback()

	if err := s.repo.WithTx(tx).Create(ctx, c); err != nil {
		mapped := mapRepositoryError(err)
		if mapped == err {
			log.Error("create category failed", zap.Error(err))
		}
		return CategoryResponse{}, mapped
	}
	if err := tx.Commit(); err != nil {
		return CategoryResponse{}, err
	}

	s.invalidate(ctx)
	log.Info("category created", zap.String("category_id", c.ID.String()), zap.Bool("chargeable", c.IsChargeable))
	return mapToResponse(*c), nil
}

func (s *service) Update(ctx context.Context, p domain.Principal, id string, req UpdateCategoryRequest) (CategoryResponse, error) {
	log := contextutil.GetLogger(ctx, s.logger)
	if !p.IsAdmin() {
		return CategoryResponse{}, categoryerrors.ErrCategoryForbidden
	}
	categoryID, err := uuid.Parse(id)
	if err != nil {
		return CategoryResponse{}, categoryerrors.ErrInvalidCategoryID
	}
	if req.Name == nil && req.IsChargeable == nil {
		return CategoryResponse{}, categoryerrors.ErrEmptyPatch
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return CategoryResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)
	c, err := qtx.FindByID(ctx, categoryID)
	if err != nil {
		return CategoryResponse{}, mapRepositoryError(err)
	}
	if req.Name != nil {
		c.Name = strings.TrimSpace(*req.Name)
	}
	if req.IsChargeable != nil {
		c.IsChargeable = *req.IsChargeable
	}
	c.UpdatedAt = time.Now().UTC()

	if err := qtx.Update(ctx, c); err != nil {
		mapped := mapRepositoryError(err)
		if mapped == err {
			log.Error("update category failed", zap.String("category_id", id), zap.Error(err))
		}
		return CategoryResponse{}, mapped
	}
	if err := tx.Commit(); err != nil {
		return CategoryResponse{}, err
	}

	s.invalidate(ctx)
	log.Info("category updated", zap.String("category_id", id))
	return mapToResponse(*c), nil
}

func (s *service) invalidate(ctx context.Context) {
	if s.rdb == nil {
		return
	}
	if err := s.rdb.Del(ctx, CategoryAllKey).Err(); err != nil {
		contextutil.GetLogger(ctx, s.logger).Error("category cache invalidation failed",
			zap.String("key", CategoryAllKey), zap.Error(err))
	}
}

func mapToResponse(c LeaveCategory) CategoryResponse {
	return CategoryResponse{
		ID:           c.ID.String(),
		Name:         c.Name,
		IsChargeable: c.IsChargeable,
	}
}

func mapToListResponse(categories []LeaveCategory) []CategoryResponse {
	resp := make([]CategoryResponse, len(categories))
	for i, c := range categories {
		resp[i] = mapToResponse(c)
	}
	return resp
}
