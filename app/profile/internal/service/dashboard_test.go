package service

import (
	"context"
	"fmt"
	"testing"

	"github.com/go-kratos/kratos/v2/errors"
	"github.com/go-kratos/kratos/v2/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iWorld-y/customer_profile/app/profile/internal/conf"
	"github.com/iWorld-y/customer_profile/app/profile/internal/data"
	"github.com/iWorld-y/customer_profile/app/profile/internal/domain"
	"github.com/iWorld-y/customer_profile/app/profile/internal/usecase"
)

func newTestService(t *testing.T) *DashboardService {
	t.Helper()
	return newTestServiceFrom(t, &conf.Data{})
}

func newTestServiceFrom(t *testing.T, c *conf.Data) *DashboardService {
	t.Helper()
	d, cleanup, err := data.NewData(c, log.DefaultLogger)
	require.NoError(t, err)
	t.Cleanup(cleanup)
	datasets := data.NewDatasetRepo(d)
	sessions := data.NewSessionRepo(d, nil, log.DefaultLogger)
	return NewDashboardService(
		usecase.NewDashboardUseCase(datasets, sessions, nil, log.DefaultLogger),
		usecase.NewBriefingUseCase(nil, datasets, sessions, nil, log.DefaultLogger),
		log.DefaultLogger,
	)
}

func TestTranslate(t *testing.T) {
	err := translate(fmt.Errorf("select: %w", domain.ErrUnknownEntity))
	assert.True(t, errors.IsNotFound(err))
	assert.Equal(t, "ENTITY_NOT_FOUND", errors.Reason(err))

	err = translate(fmt.Errorf("%w: zone", domain.ErrInvalidFacet))
	assert.True(t, errors.IsBadRequest(err))

	other := errors.NotFound("SESSION_NOT_FOUND", "gone")
	assert.Same(t, other, translate(other))
}

func TestDashboardService_ExportRegional(t *testing.T) {
	s := newTestService(t)
	ctx := context.Background()
	sess, err := s.CreateSession(ctx, &CreateSessionReq{})
	require.NoError(t, err)
	_, err = s.SetZones(ctx, &SetZonesReq{Id: sess.Id, Zones: []string{"B"}})
	require.NoError(t, err)

	out, err := s.ExportRegional(ctx, &SessionReq{Id: sess.Id})
	require.NoError(t, err)

	assert.Equal(t, "Apple", out.Entity)
	assert.Equal(t, [][]string{
		{"entity", "region", "zone", "income", "type"},
		{"Apple", "3", "B", "80.00", "regulated"},
		{"Apple", "4", "B", "85.82", "dedicated"},
	}, out.Rows)
}

func TestDashboardService_ExportRegionalEmptyKeepsEntity(t *testing.T) {
	s := newTestServiceFrom(t, &conf.Data{Source: "yaml", File: "../../configs/dataset.yaml"})
	ctx := context.Background()
	sess, err := s.CreateSession(ctx, &CreateSessionReq{})
	require.NoError(t, err)
	require.Equal(t, "Contoso", sess.Selection.Entity)

	// Contoso zone A only has regulated income
	_, err = s.SetZones(ctx, &SetZonesReq{Id: sess.Id, Zones: []string{"A"}})
	require.NoError(t, err)
	_, err = s.SetTypes(ctx, &SetTypesReq{Id: sess.Id, Types: []string{"dedicated"}})
	require.NoError(t, err)

	out, err := s.ExportRegional(ctx, &SessionReq{Id: sess.Id})
	require.NoError(t, err)

	assert.Equal(t, "Contoso", out.Entity)
	assert.Equal(t, [][]string{{"entity", "region", "zone", "income", "type"}}, out.Rows)
	assert.Equal(t, "regional_Contoso.csv", exportFilename(out.Entity))
}

func TestDashboardService_ListEntities(t *testing.T) {
	s := newTestService(t)

	reply, err := s.ListEntities(context.Background(), &ListEntitiesReq{})
	require.NoError(t, err)

	assert.Equal(t, "Apple", reply.Default)
	assert.Len(t, reply.Entities, 4)
}

func TestExportFilename(t *testing.T) {
	assert.Equal(t, "regional.csv", exportFilename(""))
	assert.Equal(t, "regional_Apple.csv", exportFilename("Apple"))
}
