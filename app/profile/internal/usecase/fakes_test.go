package usecase

import (
	"context"
	"strconv"
	"sync"

	"github.com/go-kratos/kratos/v2/errors"

	"github.com/iWorld-y/customer_profile/app/profile/internal/data"
	"github.com/iWorld-y/customer_profile/app/profile/internal/domain"
)

// mockDatasetRepo 模拟数据集仓库
type mockDatasetRepo struct {
	ds *domain.Dataset
}

func (m *mockDatasetRepo) Dataset(context.Context) (*domain.Dataset, error) {
	return m.ds, nil
}

// mockSessionRepo 模拟会话仓库
type mockSessionRepo struct {
	mu       sync.Mutex
	next     int
	sessions map[string]domain.Selection
}

func newMockSessionRepo() *mockSessionRepo {
	return &mockSessionRepo{sessions: map[string]domain.Selection{}}
}

func (m *mockSessionRepo) CreateSession(_ context.Context, sel domain.Selection) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.next++
	id := "s" + strconv.Itoa(m.next)
	m.sessions[id] = sel.Clone()
	return id, nil
}

func (m *mockSessionRepo) GetSelection(_ context.Context, id string) (domain.Selection, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	sel, ok := m.sessions[id]
	if !ok {
		return domain.Selection{}, errors.NotFound("SESSION_NOT_FOUND", id)
	}
	return sel.Clone(), nil
}

func (m *mockSessionRepo) UpdateSelection(_ context.Context, id string, fn func(*domain.Selection) error) (domain.Selection, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	sel, ok := m.sessions[id]
	if !ok {
		return domain.Selection{}, errors.NotFound("SESSION_NOT_FOUND", id)
	}
	next := sel.Clone()
	if err := fn(&next); err != nil {
		return domain.Selection{}, err
	}
	m.sessions[id] = next
	return next.Clone(), nil
}

func (m *mockSessionRepo) DeleteSession(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.sessions[id]; !ok {
		return errors.NotFound("SESSION_NOT_FOUND", id)
	}
	delete(m.sessions, id)
	return nil
}

func sampleRepos() (*mockDatasetRepo, *mockSessionRepo) {
	return &mockDatasetRepo{ds: data.SampleDataset()}, newMockSessionRepo()
}
