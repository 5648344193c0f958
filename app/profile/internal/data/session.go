package data

import (
	"context"

	"github.com/go-kratos/kratos/v2/errors"
	"github.com/go-kratos/kratos/v2/log"
	"github.com/google/uuid"
	"github.com/patrickmn/go-cache"

	"github.com/iWorld-y/customer_profile/app/profile/internal/domain"
	"github.com/iWorld-y/customer_profile/app/profile/internal/repo"
	"github.com/iWorld-y/customer_profile/app/profile/pkg/metrics"
)

type sessionRepo struct {
	data    *Data
	metrics *metrics.Metrics
	log     *log.Helper
}

// NewSessionRepo 会话保存在进程内缓存，空闲超过 TTL 后过期
// 删除和过期都会经过 OnEvicted，活跃会话数在这里回落
func NewSessionRepo(data *Data, m *metrics.Metrics, logger log.Logger) repo.SessionRepo {
	r := &sessionRepo{
		data:    data,
		metrics: m,
		log:     log.NewHelper(logger),
	}
	data.sessions.OnEvicted(func(id string, _ any) {
		m.SessionEnded()
		r.log.Debugf("session %s evicted", id)
	})
	return r
}

func errSessionNotFound() error {
	return errors.NotFound("SESSION_NOT_FOUND", "session not found or expired")
}

func (r *sessionRepo) CreateSession(_ context.Context, sel domain.Selection) (string, error) {
	r.data.sessionMu.Lock()
	defer r.data.sessionMu.Unlock()

	id := uuid.NewString()
	if err := r.data.sessions.Add(id, sel.Clone(), cache.DefaultExpiration); err != nil {
		return "", err
	}
	r.metrics.SessionStarted()
	r.log.Debugf("session %s created for %s", id, sel.Entity)
	return id, nil
}

func (r *sessionRepo) GetSelection(_ context.Context, id string) (domain.Selection, error) {
	r.data.sessionMu.Lock()
	defer r.data.sessionMu.Unlock()

	v, ok := r.data.sessions.Get(id)
	if !ok {
		return domain.Selection{}, errSessionNotFound()
	}
	sel := v.(domain.Selection)
	// reads count as activity; Replace fails if the janitor removed it meanwhile
	if err := r.data.sessions.Replace(id, sel, cache.DefaultExpiration); err != nil {
		return domain.Selection{}, errSessionNotFound()
	}
	return sel.Clone(), nil
}

func (r *sessionRepo) UpdateSelection(_ context.Context, id string, fn func(*domain.Selection) error) (domain.Selection, error) {
	r.data.sessionMu.Lock()
	defer r.data.sessionMu.Unlock()

	v, ok := r.data.sessions.Get(id)
	if !ok {
		return domain.Selection{}, errSessionNotFound()
	}
	sel := v.(domain.Selection).Clone()
	if err := fn(&sel); err != nil {
		return domain.Selection{}, err
	}
	if err := r.data.sessions.Replace(id, sel, cache.DefaultExpiration); err != nil {
		return domain.Selection{}, errSessionNotFound()
	}
	return sel.Clone(), nil
}

func (r *sessionRepo) DeleteSession(_ context.Context, id string) error {
	r.data.sessionMu.Lock()
	defer r.data.sessionMu.Unlock()

	if _, ok := r.data.sessions.Get(id); !ok {
		return errSessionNotFound()
	}
	r.data.sessions.Delete(id)
	r.log.Debugf("session %s deleted", id)
	return nil
}
