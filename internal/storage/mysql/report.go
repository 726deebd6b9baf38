package mysql

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-sql-driver/mysql"
	"golang.org/x/sync/errgroup"

	"patrol-inspection/internal/constants"
	"patrol-inspection/internal/storage"
)

// коды ошибок MySQL
const (
	errDuplicateEntry = 1062
	errDataTooLong    = 1406
)

const reportColumns = `id, doc_no, revision_no, date, part_name, part_number, operation_name, customer_name, prepared_by, approved_by`

var valueColumns = func() string {
	cols := make([]string, storage.ValueColumns)
	for i := range cols {
		cols[i] = storage.ValueKey(i)
	}
	return strings.Join(cols, ", ")
}()

// ListReports returns report headers newest first; filter fields match exactly.
func (s *Storage) ListReports(ctx context.Context, filter storage.ReportFilter) ([]storage.ReportSummary, error) {
	const op = "storage.mysql.ListReports"

	var (
		where []string
		args  []any
	)
	if filter.Date != "" {
		where = append(where, "r.date = ?")
		args = append(args, filter.Date)
	}
	if filter.PartName != "" {
		where = append(where, "r.part_name = ?")
		args = append(args, filter.PartName)
	}
	if filter.OperationName != "" {
		where = append(where, "r.operation_name = ?")
		args = append(args, filter.OperationName)
	}
	if filter.CustomerName != "" {
		where = append(where, "r.customer_name = ?")
		args = append(args, filter.CustomerName)
	}

	stmt := `
		SELECT r.id, r.doc_no, r.revision_no, r.date, r.part_name, r.part_number, r.operation_name,
		       r.customer_name, r.prepared_by, r.approved_by,
		       (SELECT COUNT(*) FROM inspection_items i WHERE i.report_id = r.id) AS item_count
		FROM inspection_reports r`
	if len(where) > 0 {
		stmt += " WHERE " + strings.Join(where, " AND ")
	}
	stmt += " ORDER BY r.date DESC, r.id DESC"

	rows, err := s.db.QueryContext(ctx, stmt, args...)
	if err != nil {
		return nil, fmt.Errorf("%s: query: %w", op, err)
	}
	defer rows.Close()

	res := make([]storage.ReportSummary, 0)
	for rows.Next() {
		var (
			sum  storage.ReportSummary
			date time.Time
		)
		err := rows.Scan(&sum.ID, &sum.DocNo, &sum.RevisionNo, &date, &sum.PartName, &sum.PartNumber,
			&sum.OperationName, &sum.CustomerName, &sum.PreparedBy, &sum.ApprovedBy, &sum.ItemCount)
		if err != nil {
			return nil, fmt.Errorf("%s: scan: %w", op, err)
		}
		sum.Date = storage.Today(date)
		res = append(res, sum)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: rows: %w", op, err)
	}

	return res, nil
}

// GetReport loads the header, then items and schedule entries in parallel.
func (s *Storage) GetReport(ctx context.Context, id int64) (*storage.Report, error) {
	const op = "storage.mysql.GetReport"

	var (
		res  storage.Report
		date time.Time
	)
	err := s.db.QueryRowContext(ctx, "SELECT "+reportColumns+" FROM inspection_reports WHERE id = ?", id).
		Scan(&res.ID, &res.DocNo, &res.RevisionNo, &date, &res.PartName, &res.PartNumber,
			&res.OperationName, &res.CustomerName, &res.PreparedBy, &res.ApprovedBy)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%s: id %d: %w", op, id, storage.ErrReportNotFound)
		}
		return nil, fmt.Errorf("%s: header: %w", op, err)
	}
	res.Date = storage.Today(date)

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		items, err := s.reportItems(gctx, id)
		if err != nil {
			return err
		}
		res.Items = items
		return nil
	})

	g.Go(func() error {
		entries, err := s.reportEntries(gctx, id)
		if err != nil {
			return err
		}
		res.ScheduleEntries = entries
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	res.ItemCount = len(res.Items)

	return &res, nil
}

func (s *Storage) reportItems(ctx context.Context, reportID int64) ([]storage.InspectionItem, error) {
	const op = "storage.mysql.reportItems"

	rows, err := s.db.QueryContext(ctx, `
		SELECT id, sr_no, item, special_char, spec, tolerance, inst
		FROM inspection_items
		WHERE report_id = ?
		ORDER BY sr_no`, reportID)
	if err != nil {
		return nil, fmt.Errorf("%s: query: %w", op, err)
	}
	defer rows.Close()

	items := make([]storage.InspectionItem, 0)
	for rows.Next() {
		var it storage.InspectionItem
		if err := rows.Scan(&it.ID, &it.SrNo, &it.Item, &it.SpecialChar, &it.Spec, &it.Tolerance, &it.Inst); err != nil {
			return nil, fmt.Errorf("%s: scan: %w", op, err)
		}
		items = append(items, it)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: rows: %w", op, err)
	}

	return items, nil
}

func (s *Storage) reportEntries(ctx context.Context, reportID int64) ([]storage.ScheduleEntry, error) {
	const op = "storage.mysql.reportEntries"

	rows, err := s.db.QueryContext(ctx, `
		SELECT id, sr, time_type, row_order, slot_index, operator, machine_no, date, `+valueColumns+`, judgment, signature, filled_at
		FROM schedule_entries
		WHERE report_id = ?
		ORDER BY sr, slot_index, row_order, id`, reportID)
	if err != nil {
		return nil, fmt.Errorf("%s: query: %w", op, err)
	}
	defer rows.Close()

	entries := make([]storage.ScheduleEntry, 0)
	for rows.Next() {
		var (
			e        storage.ScheduleEntry
			date     sql.NullTime
			filledAt sql.NullTime
		)

		dest := []any{&e.ID, &e.Sr, &e.TimeType, &e.RowOrder, &e.SlotIndex, &e.Operator, &e.MachineNo, &date}
		for i := range e.Values {
			dest = append(dest, &e.Values[i])
		}
		dest = append(dest, &e.Judgment, &e.Signature, &filledAt)

		if err := rows.Scan(dest...); err != nil {
			return nil, fmt.Errorf("%s: scan: %w", op, err)
		}
		if date.Valid {
			e.Date = storage.Today(date.Time)
		}
		if filledAt.Valid {
			t := filledAt.Time
			e.FilledAt = &t
		}
		entries = append(entries, e)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: rows: %w", op, err)
	}

	return entries, nil
}

// CreateReport stores the header with its items and entries in one transaction.
func (s *Storage) CreateReport(ctx context.Context, r *storage.Report) (int64, error) {
	const op = "storage.mysql.CreateReport"

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("%s: begin transaction: %w", op, err)
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx, `
		INSERT INTO inspection_reports
			(doc_no, revision_no, date, part_name, part_number, operation_name, customer_name, prepared_by, approved_by)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		headerArgs(r)...)
	if err != nil {
		return 0, fmt.Errorf("%s: insert header: %w", op, writeErr(err))
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("%s: last insert id: %w", op, err)
	}

	if err := insertChildren(ctx, tx, id, r); err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}

	if err = tx.Commit(); err != nil {
		return 0, fmt.Errorf("%s: commit: %w", op, err)
	}

	return id, nil
}

// UpdateReport overwrites the header and replaces all items and entries.
func (s *Storage) UpdateReport(ctx context.Context, id int64, r *storage.Report) error {
	const op = "storage.mysql.UpdateReport"

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("%s: begin transaction: %w", op, err)
	}
	defer tx.Rollback()

	var locked int64
	err = tx.QueryRowContext(ctx, "SELECT id FROM inspection_reports WHERE id = ? FOR UPDATE", id).Scan(&locked)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return fmt.Errorf("%s: id %d: %w", op, id, storage.ErrReportNotFound)
		}
		return fmt.Errorf("%s: lock header: %w", op, err)
	}

	_, err = tx.ExecContext(ctx, `
		UPDATE inspection_reports
		SET doc_no = ?, revision_no = ?, date = ?, part_name = ?, part_number = ?, operation_name = ?,
		    customer_name = ?, prepared_by = ?, approved_by = ?
		WHERE id = ?`,
		append(headerArgs(r), id)...)
	if err != nil {
		return fmt.Errorf("%s: update header: %w", op, writeErr(err))
	}

	if _, err = tx.ExecContext(ctx, "DELETE FROM inspection_items WHERE report_id = ?", id); err != nil {
		return fmt.Errorf("%s: delete items: %w", op, err)
	}
	if _, err = tx.ExecContext(ctx, "DELETE FROM schedule_entries WHERE report_id = ?", id); err != nil {
		return fmt.Errorf("%s: delete entries: %w", op, err)
	}

	if err := insertChildren(ctx, tx, id, r); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("%s: commit: %w", op, err)
	}

	return nil
}

func (s *Storage) DeleteReport(ctx context.Context, id int64) error {
	const op = "storage.mysql.DeleteReport"

	res, err := s.db.ExecContext(ctx, "DELETE FROM inspection_reports WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("%s: rows affected: %w", op, err)
	}
	if n == 0 {
		return fmt.Errorf("%s: id %d: %w", op, id, storage.ErrReportNotFound)
	}

	return nil
}

func headerArgs(r *storage.Report) []any {
	date := r.Date
	if date == "" {
		date = storage.Today(time.Now())
	}
	docNo, revision := r.DocNo, r.RevisionNo
	if docNo == "" {
		docNo = constants.DefaultDocNo
	}
	if revision == "" {
		revision = constants.DefaultRevisionNo
	}
	return []any{docNo, revision, date, r.PartName, r.PartNumber, r.OperationName, r.CustomerName, r.PreparedBy, r.ApprovedBy}
}

func insertChildren(ctx context.Context, tx *sql.Tx, reportID int64, r *storage.Report) error {
	itemStmt, err := tx.PrepareContext(ctx, `
		INSERT INTO inspection_items (report_id, sr_no, item, special_char, spec, tolerance, inst)
		VALUES (?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("prepare items: %w", err)
	}
	defer itemStmt.Close()

	for _, it := range r.Items {
		_, err := itemStmt.ExecContext(ctx, reportID, it.SrNo, it.Item, it.SpecialChar, it.Spec, it.Tolerance, it.Inst)
		if err != nil {
			var mysqlErr *mysql.MySQLError
			if errors.As(err, &mysqlErr) && mysqlErr.Number == errDuplicateEntry {
				return fmt.Errorf("insert item sr_no %d: %w", it.SrNo, storage.ErrDuplicateItem)
			}
			return fmt.Errorf("insert item sr_no %d: %w", it.SrNo, writeErr(err))
		}
	}

	placeholders := strings.TrimSuffix(strings.Repeat("?, ", 8+storage.ValueColumns+3), ", ")
	entryStmt, err := tx.PrepareContext(ctx, `
		INSERT INTO schedule_entries
			(report_id, sr, time_type, row_order, slot_index, operator, machine_no, date, `+valueColumns+`, judgment, signature, filled_at)
		VALUES (`+placeholders+`)`)
	if err != nil {
		return fmt.Errorf("prepare entries: %w", err)
	}
	defer entryStmt.Close()

	for i, e := range r.ScheduleEntries {
		sr := e.Sr
		if sr == 0 {
			sr = 1
		}
		var date any
		if e.Date != "" {
			date = e.Date
		}
		var filledAt any
		if e.FilledAt != nil {
			filledAt = *e.FilledAt
		}

		args := []any{reportID, sr, e.TimeType, e.RowOrder, e.SlotIndex, e.Operator, e.MachineNo, date}
		for _, v := range e.Values {
			args = append(args, v)
		}
		args = append(args, e.Judgment, e.Signature, filledAt)

		if _, err := entryStmt.ExecContext(ctx, args...); err != nil {
			return fmt.Errorf("insert entry %d: %w", i, writeErr(err))
		}
	}

	return nil
}

// writeErr turns "data too long" into storage.ErrValueTooLong with the column named by MySQL.
func writeErr(err error) error {
	var mysqlErr *mysql.MySQLError
	if errors.As(err, &mysqlErr) && mysqlErr.Number == errDataTooLong {
		return fmt.Errorf("%w: %s", storage.ErrValueTooLong, mysqlErr.Message)
	}
	return err
}
