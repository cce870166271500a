// Package sqlstore is a reference DataSource (§6) backed by a SQL table
// reached through gorm, demonstrating that a collaborator may implement
// fetch however it likes — including remotely — as long as it honors the
// pull contract. Filtering and sorting stay structural: rows are read in
// full and run back through pkg/sortfilter in Go, the same pipeline
// grid.Facade would otherwise run itself, rather than translated into a
// SQL WHERE/ORDER BY clause (§11 explains why a SQL-text parser has no
// home here: ColumnFilterModel is never compiled to SQL text).
//
// Grounded on the teacher's server/datasource/postgresql and mysql_source
// packages, which wrap the same two wire drivers behind a pluggable
// dialect choice.
package sqlstore

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/glebarez/sqlite"
	"github.com/kasuganosora/vtgrid/pkg/model"
	"github.com/kasuganosora/vtgrid/pkg/sortfilter"
	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// rowRecord is the on-disk shape: one row per grid row, with the rest of
// the fields opaquely JSON-encoded since the column set is caller-defined
// and not known at migration time.
type rowRecord struct {
	RowID  string `gorm:"column:row_id;primaryKey"`
	Fields string `gorm:"column:fields"`
}

func (rowRecord) TableName() string { return "grid_rows" }

// Source is a gorm-backed DataSource over one grid_rows table.
type Source struct {
	db *gorm.DB
}

// Open connects with the named driver ("sqlite", "mysql", or "postgres")
// and migrates the backing table. dsn is passed to the matching
// gorm.Dialector unmodified.
func Open(driver, dsn string) (*Source, error) {
	var dialector gorm.Dialector
	switch driver {
	case "sqlite":
		dialector = sqlite.Open(dsn)
	case "mysql":
		dialector = mysql.Open(dsn)
	case "postgres":
		dialector = postgres.Open(dsn)
	default:
		return nil, fmt.Errorf("sqlstore: unsupported driver %q", driver)
	}

	db, err := gorm.Open(dialector, &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("sqlstore: open %s: %w", driver, err)
	}
	if err := db.AutoMigrate(&rowRecord{}); err != nil {
		return nil, fmt.Errorf("sqlstore: migrate: %w", err)
	}
	return &Source{db: db}, nil
}

// Fetch loads every row, decodes its fields, then applies req's filter
// and sort through pkg/sortfilter before returning.
func (s *Source) Fetch(ctx context.Context, req model.FetchRequest) (model.FetchResponse, error) {
	var records []rowRecord
	if err := s.db.WithContext(ctx).Find(&records).Error; err != nil {
		return model.FetchResponse{}, fmt.Errorf("sqlstore: fetch: %w", err)
	}

	rows := make([]model.Row, 0, len(records))
	for _, rec := range records {
		var fields map[string]any
		if err := json.Unmarshal([]byte(rec.Fields), &fields); err != nil {
			return model.FetchResponse{}, fmt.Errorf("sqlstore: decode row %s: %w", rec.RowID, err)
		}
		rows = append(rows, model.NewRow(rec.RowID, fields))
	}

	filtered := sortfilter.ApplyFilters(rows, req.Filter, sortfilter.DefaultAccessor)
	sorted := sortfilter.ApplySort(filtered, req.Sort, sortfilter.DefaultAccessor)
	return model.FetchResponse{Rows: sorted, TotalRows: len(sorted)}, nil
}

// Destroy closes the underlying connection pool.
func (s *Source) Destroy() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// Insert writes one row with a caller-chosen id.
func (s *Source) Insert(ctx context.Context, id string, fields map[string]any) error {
	payload, err := json.Marshal(fields)
	if err != nil {
		return fmt.Errorf("sqlstore: encode row %s: %w", id, err)
	}
	rec := rowRecord{RowID: id, Fields: string(payload)}
	return s.db.WithContext(ctx).Save(&rec).Error
}

// DeleteByID removes the row with the given id.
func (s *Source) DeleteByID(ctx context.Context, id string) error {
	return s.db.WithContext(ctx).Delete(&rowRecord{}, "row_id = ?", id).Error
}
