package data

import (
	"context"
	"database/sql"
	"fmt"

	"entgo.io/ent/dialect"
	entsql "entgo.io/ent/dialect/sql"
	_ "github.com/lib/pq"
	_ "modernc.org/sqlite" // pure go sqlite driver

	"github.com/iWorld-y/customer_profile/app/profile/internal/domain"
)

const (
	tableEntities   = "profile_entities"
	tableExecutives = "profile_executives"
	tableProjects   = "profile_projects"
	tableRegions    = "profile_regions"
	tableNews       = "profile_news"
	tableBilling    = "profile_billing"
)

// position 列保存插入顺序，读取时按它排序
var schemaDDL = []string{
	`CREATE TABLE IF NOT EXISTS profile_entities (
		position INTEGER PRIMARY KEY,
		name TEXT NOT NULL UNIQUE,
		revenue DOUBLE PRECISION NOT NULL,
		ebitda DOUBLE PRECISION NOT NULL,
		equity DOUBLE PRECISION NOT NULL,
		net_debt DOUBLE PRECISION NOT NULL,
		share_price DOUBLE PRECISION NOT NULL,
		share_price_change DOUBLE PRECISION NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS profile_executives (
		position INTEGER PRIMARY KEY,
		entity TEXT NOT NULL,
		person TEXT NOT NULL,
		role TEXT NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS profile_projects (
		position INTEGER PRIMARY KEY,
		entity TEXT NOT NULL,
		project TEXT NOT NULL,
		status TEXT NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS profile_regions (
		position INTEGER PRIMARY KEY,
		entity TEXT NOT NULL,
		region INTEGER NOT NULL,
		zone TEXT NOT NULL,
		income DOUBLE PRECISION NOT NULL,
		income_type TEXT NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS profile_news (
		position INTEGER PRIMARY KEY,
		entity TEXT NOT NULL,
		headline TEXT NOT NULL,
		summary TEXT NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS profile_billing (
		position INTEGER PRIMARY KEY,
		entity TEXT NOT NULL,
		month TEXT NOT NULL,
		amount DOUBLE PRECISION NOT NULL
	)`,
}

// SQLStore 以关系数据库（postgres / sqlite）为数据源
type SQLStore struct {
	db      *sql.DB
	dialect string
}

// OpenSQLStore 打开数据库并初始化表结构。driver 取值 postgres 或 sqlite。
func OpenSQLStore(ctx context.Context, driver, source string) (*SQLStore, error) {
	d, err := dialectOf(driver)
	if err != nil {
		return nil, err
	}
	db, err := sql.Open(driver, source)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", driver, err)
	}
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping %s: %w", driver, err)
	}
	for _, ddl := range schemaDDL {
		if _, err := db.ExecContext(ctx, ddl); err != nil {
			db.Close()
			return nil, fmt.Errorf("failed to init schema: %w", err)
		}
	}
	return &SQLStore{db: db, dialect: d}, nil
}

func dialectOf(driver string) (string, error) {
	switch driver {
	case "postgres":
		return dialect.Postgres, nil
	case "sqlite", "sqlite3":
		return dialect.SQLite, nil
	default:
		return "", fmt.Errorf("unsupported database driver %q", driver)
	}
}

func (s *SQLStore) Name() string { return "database" }

func (s *SQLStore) Close() error {
	return s.db.Close()
}

// LoadDataset 读取全部表
func (s *SQLStore) LoadDataset(ctx context.Context) (*domain.Dataset, error) {
	ds := &domain.Dataset{}

	err := s.query(ctx, tableEntities, []string{"name", "revenue", "ebitda", "equity", "net_debt", "share_price", "share_price_change"},
		func(rows *sql.Rows) error {
			var e domain.Entity
			if err := rows.Scan(&e.Name, &e.Revenue, &e.EBITDA, &e.Equity, &e.NetDebt, &e.SharePrice, &e.SharePriceChange); err != nil {
				return err
			}
			ds.Entities = append(ds.Entities, e)
			return nil
		})
	if err != nil {
		return nil, err
	}

	err = s.query(ctx, tableExecutives, []string{"entity", "person", "role"}, func(rows *sql.Rows) error {
		var r domain.ExecutiveRecord
		if err := rows.Scan(&r.Entity, &r.Person, &r.Role); err != nil {
			return err
		}
		ds.Executives = append(ds.Executives, r)
		return nil
	})
	if err != nil {
		return nil, err
	}

	err = s.query(ctx, tableProjects, []string{"entity", "project", "status"}, func(rows *sql.Rows) error {
		var r domain.ProjectRecord
		if err := rows.Scan(&r.Entity, &r.Project, &r.Status); err != nil {
			return err
		}
		ds.Projects = append(ds.Projects, r)
		return nil
	})
	if err != nil {
		return nil, err
	}

	err = s.query(ctx, tableRegions, []string{"entity", "region", "zone", "income", "income_type"}, func(rows *sql.Rows) error {
		var r domain.RegionalIncomeRecord
		if err := rows.Scan(&r.Entity, &r.Region, &r.Zone, &r.Income, &r.Type); err != nil {
			return err
		}
		ds.Regions = append(ds.Regions, r)
		return nil
	})
	if err != nil {
		return nil, err
	}

	err = s.query(ctx, tableNews, []string{"entity", "headline", "summary"}, func(rows *sql.Rows) error {
		var r domain.NewsRecord
		if err := rows.Scan(&r.Entity, &r.Headline, &r.Summary); err != nil {
			return err
		}
		ds.News = append(ds.News, r)
		return nil
	})
	if err != nil {
		return nil, err
	}

	err = s.query(ctx, tableBilling, []string{"entity", "month", "amount"}, func(rows *sql.Rows) error {
		var p domain.TimeSeriesPoint
		if err := rows.Scan(&p.Entity, &p.Month, &p.Billing); err != nil {
			return err
		}
		ds.Billing = append(ds.Billing, p)
		return nil
	})
	if err != nil {
		return nil, err
	}

	return ds, nil
}

func (s *SQLStore) query(ctx context.Context, table string, columns []string, scan func(*sql.Rows) error) error {
	query, args := entsql.Dialect(s.dialect).
		Select(columns...).
		From(entsql.Table(table)).
		OrderBy("position").
		Query()
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("select %s: %w", table, err)
	}
	defer func() { _ = rows.Close() }()
	for rows.Next() {
		if err := scan(rows); err != nil {
			return fmt.Errorf("scan %s: %w", table, err)
		}
	}
	return rows.Err()
}

// Seed 用 ds 整体替换数据库中的数据
func (s *SQLStore) Seed(ctx context.Context, ds *domain.Dataset) error {
	if err := ds.Validate(); err != nil {
		return fmt.Errorf("invalid dataset: %w", err)
	}
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}

	b := entsql.Dialect(s.dialect)
	var stmts []*entsql.InsertBuilder

	entities := b.Insert(tableEntities).Columns("position", "name", "revenue", "ebitda", "equity", "net_debt", "share_price", "share_price_change")
	for i, e := range ds.Entities {
		entities.Values(i, e.Name, e.Revenue, e.EBITDA, e.Equity, e.NetDebt, e.SharePrice, e.SharePriceChange)
	}
	stmts = append(stmts, entities)

	if len(ds.Executives) > 0 {
		ins := b.Insert(tableExecutives).Columns("position", "entity", "person", "role")
		for i, r := range ds.Executives {
			ins.Values(i, r.Entity, r.Person, r.Role)
		}
		stmts = append(stmts, ins)
	}
	if len(ds.Projects) > 0 {
		ins := b.Insert(tableProjects).Columns("position", "entity", "project", "status")
		for i, r := range ds.Projects {
			ins.Values(i, r.Entity, r.Project, string(r.Status))
		}
		stmts = append(stmts, ins)
	}
	if len(ds.Regions) > 0 {
		ins := b.Insert(tableRegions).Columns("position", "entity", "region", "zone", "income", "income_type")
		for i, r := range ds.Regions {
			ins.Values(i, r.Entity, r.Region, string(r.Zone), r.Income, string(r.Type))
		}
		stmts = append(stmts, ins)
	}
	if len(ds.News) > 0 {
		ins := b.Insert(tableNews).Columns("position", "entity", "headline", "summary")
		for i, r := range ds.News {
			ins.Values(i, r.Entity, r.Headline, r.Summary)
		}
		stmts = append(stmts, ins)
	}
	if len(ds.Billing) > 0 {
		ins := b.Insert(tableBilling).Columns("position", "entity", "month", "amount")
		for i, p := range ds.Billing {
			ins.Values(i, p.Entity, p.Month, p.Billing)
		}
		stmts = append(stmts, ins)
	}

	for _, table := range []string{tableEntities, tableExecutives, tableProjects, tableRegions, tableNews, tableBilling} {
		query, args := b.Delete(table).Query()
		if _, err := tx.ExecContext(ctx, query, args...); err != nil {
			if rerr := tx.Rollback(); rerr != nil {
				err = fmt.Errorf("%w: %v", err, rerr)
			}
			return fmt.Errorf("clear %s: %w", table, err)
		}
	}
	for _, ins := range stmts {
		query, args := ins.Query()
		if _, err := tx.ExecContext(ctx, query, args...); err != nil {
			if rerr := tx.Rollback(); rerr != nil {
				err = fmt.Errorf("%w: %v", err, rerr)
			}
			return err
		}
	}
	return tx.Commit()
}
