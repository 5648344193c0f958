package repo

import (
	"context"

	"github.com/iWorld-y/customer_profile/app/profile/internal/domain"
)

// DatasetProvider 数据源：内置示例、YAML 文件或数据库
type DatasetProvider interface {
	// Name 数据源名称，用于日志
	Name() string
	// LoadDataset 加载完整数据集
	LoadDataset(ctx context.Context) (*domain.Dataset, error)
}

// DatasetRepo 已加载的只读数据集
type DatasetRepo interface {
	// Dataset 返回共享的只读数据集，调用方不得修改
	Dataset(ctx context.Context) (*domain.Dataset, error)
}

// SessionRepo 会话选择状态仓库
type SessionRepo interface {
	// CreateSession 以初始选择创建会话，返回会话 ID
	CreateSession(ctx context.Context, sel domain.Selection) (string, error)
	// GetSelection 获取会话当前选择
	GetSelection(ctx context.Context, id string) (domain.Selection, error)
	// UpdateSelection 在会话锁内修改选择，fn 返回错误时不落盘
	UpdateSelection(ctx context.Context, id string, fn func(*domain.Selection) error) (domain.Selection, error)
	// DeleteSession 结束会话
	DeleteSession(ctx context.Context, id string) error
}
