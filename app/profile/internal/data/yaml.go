package data

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/iWorld-y/customer_profile/app/profile/internal/domain"
	"github.com/iWorld-y/customer_profile/app/profile/internal/repo"
)

type yamlProvider struct {
	path string
}

// NewYAMLProvider 从 YAML 文件加载数据集
func NewYAMLProvider(path string) repo.DatasetProvider {
	return &yamlProvider{path: path}
}

func (p *yamlProvider) Name() string { return "yaml:" + p.path }

func (p *yamlProvider) LoadDataset(context.Context) (*domain.Dataset, error) {
	raw, err := os.ReadFile(p.path)
	if err != nil {
		return nil, err
	}
	return DecodeYAML(bytes.NewReader(raw))
}

// DecodeYAML 解析 YAML 数据集，未知字段视为错误
func DecodeYAML(r io.Reader) (*domain.Dataset, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	var ds domain.Dataset
	if err := dec.Decode(&ds); err != nil {
		return nil, fmt.Errorf("decode dataset: %w", err)
	}
	return &ds, nil
}

// EncodeYAML 输出 YAML 数据集
func EncodeYAML(w io.Writer, ds *domain.Dataset) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(ds); err != nil {
		return err
	}
	return enc.Close()
}
