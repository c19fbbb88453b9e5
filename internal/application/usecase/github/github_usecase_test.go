package github

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/minhvu/devconnect/internal/domain/github"
	"github.com/minhvu/devconnect/pkg/apperror"
	"github.com/minhvu/devconnect/pkg/logger"
)

type countingLister struct {
	calls atomic.Int32
	repos []github.RepoSummary
	err   error
}

func (l *countingLister) ListRepos(_ context.Context, _ string) ([]github.RepoSummary, error) {
	l.calls.Add(1)
	if l.err != nil {
		return nil, l.err
	}
	return l.repos, nil
}

func newCacheClient(t *testing.T) *redis.Client {
	t.Helper()
	mr := miniredis.RunT(t)
	return redis.NewClient(&redis.Options{Addr: mr.Addr()})
}

func TestExecute_CacheAside(t *testing.T) {
	lister := &countingLister{repos: []github.RepoSummary{{Name: "repo-one"}}}
	uc := NewListReposUseCase(lister, newCacheClient(t), time.Minute, logger.NewZapLogger("development"))
	ctx := context.Background()

	out, err := uc.Execute(ctx, ListReposInput{Username: "octocat"})
	require.NoError(t, err)
	require.Len(t, out.Repos, 1)

	// second call must come from the cache
	out, err = uc.Execute(ctx, ListReposInput{Username: "octocat"})
	require.NoError(t, err)
	require.Len(t, out.Repos, 1)
	assert.Equal(t, "repo-one", out.Repos[0].Name)
	assert.Equal(t, int32(1), lister.calls.Load())
}

func TestExecute_CacheKeyedByUsername(t *testing.T) {
	lister := &countingLister{repos: []github.RepoSummary{{Name: "repo"}}}
	uc := NewListReposUseCase(lister, newCacheClient(t), time.Minute, logger.NewZapLogger("development"))
	ctx := context.Background()

	_, err := uc.Execute(ctx, ListReposInput{Username: "alice"})
	require.NoError(t, err)
	_, err = uc.Execute(ctx, ListReposInput{Username: "bob"})
	require.NoError(t, err)

	assert.Equal(t, int32(2), lister.calls.Load())
}

func TestExecute_NoUpstreamProfile(t *testing.T) {
	lister := &countingLister{err: github.ErrNoUpstreamProfile}
	uc := NewListReposUseCase(lister, newCacheClient(t), time.Minute, logger.NewZapLogger("development"))

	_, err := uc.Execute(context.Background(), ListReposInput{Username: "no-such-user"})

	require.Error(t, err)
	assert.ErrorIs(t, err, apperror.ErrUpstream)
}

func TestExecute_WithoutCache(t *testing.T) {
	lister := &countingLister{repos: []github.RepoSummary{{Name: "repo"}}}
	uc := NewListReposUseCase(lister, nil, time.Minute, logger.NewZapLogger("development"))

	out, err := uc.Execute(context.Background(), ListReposInput{Username: "octocat"})

	require.NoError(t, err)
	assert.Len(t, out.Repos, 1)
}
