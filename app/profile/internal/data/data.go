package data

import (
	"context"
	"fmt"
	"sync"

	"github.com/go-kratos/kratos/v2/log"
	"github.com/patrickmn/go-cache"

	"github.com/iWorld-y/customer_profile/app/profile/internal/conf"
	"github.com/iWorld-y/customer_profile/app/profile/internal/domain"
	"github.com/iWorld-y/customer_profile/app/profile/internal/repo"
)

// Data 持有启动时加载的只读数据集和会话缓存
type Data struct {
	dataset   *domain.Dataset
	sessions  *cache.Cache
	sessionMu sync.Mutex
}

// NewData 按配置选择数据源并加载数据集
func NewData(c *conf.Data, logger log.Logger) (*Data, func(), error) {
	helper := log.NewHelper(logger)
	ctx := context.Background()

	provider, closeProvider, err := NewProvider(ctx, c)
	if err != nil {
		return nil, nil, err
	}
	ds, err := provider.LoadDataset(ctx)
	if err != nil {
		closeProvider()
		return nil, nil, fmt.Errorf("load dataset from %s: %w", provider.Name(), err)
	}
	if err := ds.Validate(); err != nil {
		closeProvider()
		return nil, nil, fmt.Errorf("invalid dataset from %s: %w", provider.Name(), err)
	}
	helper.Infof("dataset loaded from %s: %d entities, %d regional records",
		provider.Name(), len(ds.Entities), len(ds.Regions))

	ttl := c.SessionTTL()
	d := &Data{
		dataset:  ds,
		sessions: cache.New(ttl, ttl*2),
	}
	cleanup := func() {
		helper.Info("closing the data resources")
		d.sessions.Flush()
		closeProvider()
	}
	return d, cleanup, nil
}

// NewProvider 根据配置构造数据源，返回的 close 函数总是非 nil
func NewProvider(ctx context.Context, c *conf.Data) (repo.DatasetProvider, func(), error) {
	noop := func() {}
	source := "builtin"
	if c != nil && c.Source != "" {
		source = c.Source
	}
	switch source {
	case "builtin":
		return NewBuiltinProvider(), noop, nil
	case "yaml":
		if c.File == "" {
			return nil, noop, fmt.Errorf("data.file is required for yaml source")
		}
		return NewYAMLProvider(c.File), noop, nil
	case "database":
		if c.Database == nil || c.Database.Source == "" {
			return nil, noop, fmt.Errorf("data.database is required for database source")
		}
		store, err := OpenSQLStore(ctx, c.Database.Driver, c.Database.Source)
		if err != nil {
			return nil, noop, err
		}
		return store, func() { _ = store.Close() }, nil
	default:
		return nil, noop, fmt.Errorf("unknown data source %q", source)
	}
}

type datasetRepo struct {
	data *Data
}

// NewDatasetRepo 只读数据集仓库
func NewDatasetRepo(data *Data) repo.DatasetRepo {
	return &datasetRepo{data: data}
}

func (r *datasetRepo) Dataset(context.Context) (*domain.Dataset, error) {
	return r.data.dataset, nil
}
