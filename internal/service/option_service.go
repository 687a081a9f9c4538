package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/rafael7ms/operations-db/internal/dto"
	"github.com/rafael7ms/operations-db/internal/model"
	"github.com/rafael7ms/operations-db/internal/repository"
	apperrors "github.com/rafael7ms/operations-db/pkg/errors"
	"github.com/rafael7ms/operations-db/pkg/redis"
)

// ── 下拉选项模块业务错误 ──

var (
	ErrOptionNotFound = errors.New("选项不存在")
	ErrOptionExists   = errors.New("该分类下已有同名选项")
)

const optionCacheTTL = 5 * time.Minute

// OptionService 下拉选项业务接口
// 按分类的启用选项列表走 Redis 缓存，写操作后失效
type OptionService interface {
	List(ctx context.Context, category string) ([]dto.OptionResponse, error)
	ListAll(ctx context.Context) ([]dto.OptionResponse, error)
	Create(ctx context.Context, req *dto.CreateOptionRequest) (*dto.OptionResponse, error)
	Update(ctx context.Context, optionID int64, req *dto.UpdateOptionRequest) (*dto.OptionResponse, error)
}

type optionService struct {
	repo   *repository.Repository
	cache  *redis.Client // 可为 nil（未启用 Redis 时直接查库）
	logger *zap.Logger
}

// NewOptionService 创建 OptionService 实例
func NewOptionService(repo *repository.Repository, cache *redis.Client, logger *zap.Logger) OptionService {
	return &optionService{repo: repo, cache: cache, logger: logger}
}

func optionCacheKey(category string) string {
	return fmt.Sprintf("opsdb:options:%s", category)
}

func (s *optionService) List(ctx context.Context, category string) ([]dto.OptionResponse, error) {
	if s.cache != nil {
		var cached []dto.OptionResponse
		hit, err := s.cache.GetJSON(ctx, optionCacheKey(category), &cached)
		if err != nil {
			// 缓存故障不阻塞读取，降级查库
			s.logger.Warn("选项缓存读取失败", zap.String("category", category), zap.Error(err))
		} else if hit {
			return cached, nil
		}
	}

	options, err := s.repo.Option.ListByCategory(ctx, category, true)
	if err != nil {
		return nil, err
	}
	items := make([]dto.OptionResponse, 0, len(options))
	for i := range options {
		items = append(items, *toOptionResponse(&options[i]))
	}

	if s.cache != nil {
		if err := s.cache.SetJSON(ctx, optionCacheKey(category), items, optionCacheTTL); err != nil {
			s.logger.Warn("选项缓存写入失败", zap.String("category", category), zap.Error(err))
		}
	}
	return items, nil
}

func (s *optionService) ListAll(ctx context.Context) ([]dto.OptionResponse, error) {
	options, err := s.repo.Option.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	items := make([]dto.OptionResponse, 0, len(options))
	for i := range options {
		items = append(items, *toOptionResponse(&options[i]))
	}
	return items, nil
}

func (s *optionService) Create(ctx context.Context, req *dto.CreateOptionRequest) (*dto.OptionResponse, error) {
	option := &model.AdminOption{
		Category: req.Category,
		Value:    req.Value,
		IsActive: true,
	}
	if err := s.repo.Option.Create(ctx, option); err != nil {
		if errors.Is(err, apperrors.ErrDuplicateKey) {
			return nil, ErrOptionExists
		}
		return nil, err
	}
	s.invalidate(ctx, option.Category)
	return toOptionResponse(option), nil
}

func (s *optionService) Update(ctx context.Context, optionID int64, req *dto.UpdateOptionRequest) (*dto.OptionResponse, error) {
	option, err := s.repo.Option.GetByID(ctx, optionID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrOptionNotFound
		}
		return nil, err
	}

	if req.Value != nil {
		option.Value = *req.Value
	}
	if req.IsActive != nil {
		option.IsActive = *req.IsActive
	}

	if err := s.repo.Option.Update(ctx, option); err != nil {
		if errors.Is(err, apperrors.ErrDuplicateKey) {
			return nil, ErrOptionExists
		}
		return nil, err
	}
	s.invalidate(ctx, option.Category)
	return toOptionResponse(option), nil
}

func (s *optionService) invalidate(ctx context.Context, category string) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Delete(ctx, optionCacheKey(category)); err != nil {
		s.logger.Warn("选项缓存失效失败", zap.String("category", category), zap.Error(err))
	}
}

// ── 响应转换 ──

func toOptionResponse(o *model.AdminOption) *dto.OptionResponse {
	return &dto.OptionResponse{
		OptionID: o.OptionID,
		Category: o.Category,
		Value:    o.Value,
		IsActive: o.IsActive,
	}
}
