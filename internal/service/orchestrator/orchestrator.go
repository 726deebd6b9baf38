// Package orchestrator decides whether a submitted form creates a new
// report or updates the current one, and loads the report to show.
package orchestrator

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"patrol-inspection/internal/storage"
)

var ErrNoReport = errors.New("no report matches")

// Backend is satisfied by the MySQL storage and by the REST client.
type Backend interface {
	ListReports(ctx context.Context, filter storage.ReportFilter) ([]storage.ReportSummary, error)
	GetReport(ctx context.Context, id int64) (*storage.Report, error)
	CreateReport(ctx context.Context, r *storage.Report) (int64, error)
	UpdateReport(ctx context.Context, id int64, r *storage.Report) error
}

type Intent int

const (
	IntentUnspecified Intent = iota
	IntentNew
	IntentEdit
)

func (i Intent) String() string {
	switch i {
	case IntentNew:
		return "new"
	case IntentEdit:
		return "edit"
	}
	return "unspecified"
}

// ParseIntent maps the wizard mode; anything else is unspecified.
func ParseIntent(mode string) Intent {
	switch strings.ToLower(strings.TrimSpace(mode)) {
	case "new":
		return IntentNew
	case "edit":
		return IntentEdit
	}
	return IntentUnspecified
}

// ValidationError lists the required header fields left blank.
type ValidationError struct {
	Fields []string
}

func (e *ValidationError) Error() string {
	return "Please fill all Report Information fields: " + strings.Join(e.Fields, ", ")
}

type Orchestrator struct {
	log     *slog.Logger
	backend Backend
}

func New(log *slog.Logger, backend Backend) *Orchestrator {
	return &Orchestrator{log: log, backend: backend}
}

// Save writes r and returns the stored copy read back from the backend.
//
// IntentNew always creates. Otherwise a non-zero currentID is looked up: when
// it loads the report is updated, when the lookup fails for any reason a new
// report is created instead.
func (o *Orchestrator) Save(ctx context.Context, intent Intent, currentID int64, r *storage.Report) (*storage.Report, error) {
	const op = "service.orchestrator.Save"

	log := o.log.With(
		slog.String("op", op),
		slog.String("intent", intent.String()),
		slog.Int64("current_id", currentID),
	)

	if err := validateHeader(r); err != nil {
		return nil, err
	}

	id, err := o.write(ctx, log, intent, currentID, r)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	saved, err := o.backend.GetReport(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("%s: reload %d: %w", op, id, err)
	}

	return saved, nil
}

func (o *Orchestrator) write(ctx context.Context, log *slog.Logger, intent Intent, currentID int64, r *storage.Report) (int64, error) {
	if intent != IntentNew && currentID > 0 {
		_, lookupErr := o.backend.GetReport(ctx, currentID)
		if lookupErr == nil {
			if err := o.backend.UpdateReport(ctx, currentID, r); err != nil {
				return 0, fmt.Errorf("update %d: %w", currentID, err)
			}
			log.Info("report updated")
			return currentID, nil
		}
		log.Warn("current report not reachable, creating a new one", slog.String("error", lookupErr.Error()))
	}

	id, err := o.backend.CreateReport(ctx, r)
	if err != nil {
		return 0, fmt.Errorf("create: %w", err)
	}
	log.Info("report created", slog.Int64("id", id))

	return id, nil
}

func validateHeader(r *storage.Report) error {
	var missing []string
	if strings.TrimSpace(r.PartName) == "" {
		missing = append(missing, "part_name")
	}
	if strings.TrimSpace(r.PartNumber) == "" {
		missing = append(missing, "part_number")
	}
	if strings.TrimSpace(r.OperationName) == "" {
		missing = append(missing, "operation_name")
	}
	if strings.TrimSpace(r.CustomerName) == "" {
		missing = append(missing, "customer_name")
	}
	if len(missing) > 0 {
		return &ValidationError{Fields: missing}
	}
	return nil
}

// Latest loads the report to display: the newest listed report that has
// items, or the newest one when none has.
func (o *Orchestrator) Latest(ctx context.Context, filter storage.ReportFilter) (*storage.Report, error) {
	const op = "service.orchestrator.Latest"

	list, err := o.backend.ListReports(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if len(list) == 0 {
		return nil, fmt.Errorf("%s: %w", op, ErrNoReport)
	}

	pick := list[0]
	for _, s := range list {
		if s.ItemCount > 0 {
			pick = s
			break
		}
	}

	r, err := o.backend.GetReport(ctx, pick.ID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return r, nil
}

func (o *Orchestrator) Get(ctx context.Context, id int64) (*storage.Report, error) {
	const op = "service.orchestrator.Get"

	r, err := o.backend.GetReport(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return r, nil
}
