package mysql

import (
	"context"
	"errors"
	"fmt"

	"github.com/go-sql-driver/mysql"

	"patrol-inspection/internal/storage"
)

// StoredValues collects distinct non-empty header values already saved in reports.
func (s *Storage) StoredValues(ctx context.Context) (storage.StoredValues, error) {
	const op = "storage.mysql.StoredValues"

	stmt := `
		SELECT DISTINCT 'customer', customer_name FROM inspection_reports WHERE customer_name <> ''
		UNION ALL
		SELECT DISTINCT 'part_name', part_name FROM inspection_reports WHERE part_name <> ''
		UNION ALL
		SELECT DISTINCT 'part_number', part_number FROM inspection_reports WHERE part_number <> ''
		UNION ALL
		SELECT DISTINCT 'operation', operation_name FROM inspection_reports WHERE operation_name <> ''
		ORDER BY 1, 2`

	var res storage.StoredValues

	rows, err := s.db.QueryContext(ctx, stmt)
	if err != nil {
		return res, fmt.Errorf("%s: query: %w", op, err)
	}
	defer rows.Close()

	for rows.Next() {
		var kind, value string
		if err := rows.Scan(&kind, &value); err != nil {
			return res, fmt.Errorf("%s: scan: %w", op, err)
		}
		switch kind {
		case "customer":
			res.Customers = append(res.Customers, value)
		case "part_name":
			res.PartNames = append(res.PartNames, value)
		case "part_number":
			res.PartNumbers = append(res.PartNumbers, value)
		case "operation":
			res.Operations = append(res.Operations, value)
		}
	}

	if err = rows.Err(); err != nil {
		return res, fmt.Errorf("%s: rows: %w", op, err)
	}

	return res, nil
}

// CatalogEntries returns the configured items of an operation, oldest first.
func (s *Storage) CatalogEntries(ctx context.Context, operation string) ([]storage.CatalogEntry, error) {
	const op = "storage.mysql.CatalogEntries"

	rows, err := s.db.QueryContext(ctx, `
		SELECT id, operation, category, item
		FROM inspection_item_catalog
		WHERE operation = ?
		ORDER BY id`, operation)
	if err != nil {
		return nil, fmt.Errorf("%s: query: %w", op, err)
	}
	defer rows.Close()

	var res []storage.CatalogEntry
	for rows.Next() {
		var e storage.CatalogEntry
		if err := rows.Scan(&e.ID, &e.Operation, &e.Category, &e.Item); err != nil {
			return nil, fmt.Errorf("%s: scan: %w", op, err)
		}
		res = append(res, e)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: rows: %w", op, err)
	}

	return res, nil
}

func (s *Storage) SaveCatalogEntry(ctx context.Context, e storage.CatalogEntry) (int64, error) {
	const op = "storage.mysql.SaveCatalogEntry"

	res, err := s.db.ExecContext(ctx,
		`INSERT INTO inspection_item_catalog (operation, category, item) VALUES (?, ?, ?)`,
		e.Operation, e.Category, e.Item)
	if err != nil {
		var mysqlErr *mysql.MySQLError
		if errors.As(err, &mysqlErr) && mysqlErr.Number == errDuplicateEntry {
			return 0, fmt.Errorf("%s: %w", op, storage.ErrDuplicateCatalog)
		}
		return 0, fmt.Errorf("%s: %w", op, err)
	}

	return res.LastInsertId()
}
