package github

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
	"go.opentelemetry.io/otel"
	"go.uber.org/zap"

	"github.com/minhvu/devconnect/internal/domain/github"
	"github.com/minhvu/devconnect/pkg/apperror"
	"github.com/minhvu/devconnect/pkg/logger"
)

var tracer = otel.Tracer("github_usecase")

type ListReposUseCase struct {
	lister   github.Lister
	cache    *redis.Client
	cacheTTL time.Duration
	logger   logger.Logger
}

func NewListReposUseCase(lister github.Lister, cache *redis.Client, cacheTTL time.Duration, log logger.Logger) *ListReposUseCase {
	return &ListReposUseCase{
		lister:   lister,
		cache:    cache,
		cacheTTL: cacheTTL,
		logger:   log,
	}
}

type ListReposInput struct {
	Username string
}

type ListReposOutput struct {
	Repos []github.RepoSummary
}

// Execute is cache-aside: serve from Redis when possible, otherwise hit the
// upstream and fill the cache. Cache failures degrade to a direct fetch.
func (uc *ListReposUseCase) Execute(ctx context.Context, input ListReposInput) (*ListReposOutput, error) {
	ctx, span := tracer.Start(ctx, "Execute")
	defer span.End()

	cacheKey := "github:repos:" + input.Username

	if uc.cache != nil {
		cached, err := uc.cache.Get(ctx, cacheKey).Bytes()
		if err == nil {
			var repos []github.RepoSummary
			if err := json.Unmarshal(cached, &repos); err == nil {
				return &ListReposOutput{Repos: repos}, nil
			}
			uc.logger.Warn("Corrupt cached github listing, refetching", zap.String("username", input.Username))
		} else if !errors.Is(err, redis.Nil) {
			uc.logger.Warn("Redis get failed for github listing", zap.String("username", input.Username), zap.Error(err))
		}
	}

	repos, err := uc.lister.ListRepos(ctx, input.Username)
	if err != nil {
		span.RecordError(err)
		if errors.Is(err, github.ErrNoUpstreamProfile) {
			return nil, apperror.NewUpstream("no github profile found for "+input.Username, err)
		}
		return nil, apperror.NewInternal("github listing failed", err)
	}

	if uc.cache != nil {
		if payload, err := json.Marshal(repos); err == nil {
			if err := uc.cache.Set(ctx, cacheKey, payload, uc.cacheTTL).Err(); err != nil {
				uc.logger.Warn("Redis set failed for github listing", zap.String("username", input.Username), zap.Error(err))
			}
		}
	}

	return &ListReposOutput{Repos: repos}, nil
}
