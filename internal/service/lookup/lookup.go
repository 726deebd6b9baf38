// Package lookup serves the dropdown options and the per-operation item
// catalog, merging static lists with what is already stored.
package lookup

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/patrickmn/go-cache"
	"golang.org/x/sync/errgroup"

	"patrol-inspection/internal/constants"
	"patrol-inspection/internal/items"
	"patrol-inspection/internal/option"
	"patrol-inspection/internal/schedule"
	"patrol-inspection/internal/storage"
)

const (
	dropdownKey    = "dropdown"
	catalogPrefix  = "catalog:"
	warmupParallel = 4
)

var (
	ErrCatalogUnavailable  = errors.New("item catalog storage is not configured")
	ErrInvalidCatalogEntry = errors.New("invalid catalog entry")
)

// Store is optional: without it only the static lists are served.
type Store interface {
	StoredValues(ctx context.Context) (storage.StoredValues, error)
	CatalogEntries(ctx context.Context, operation string) ([]storage.CatalogEntry, error)
	SaveCatalogEntry(ctx context.Context, e storage.CatalogEntry) (int64, error)
}

type Service struct {
	log   *slog.Logger
	store Store
	cache *cache.Cache
}

func New(log *slog.Logger, store Store, ttl time.Duration) *Service {
	return &Service{
		log:   log,
		store: store,
		cache: cache.New(ttl, ttl*2),
	}
}

func (s *Service) DropdownOptions(ctx context.Context) (storage.DropdownOptions, error) {
	const op = "service.lookup.DropdownOptions"

	if cached, found := s.cache.Get(dropdownKey); found {
		return cached.(storage.DropdownOptions), nil
	}

	var stored storage.StoredValues
	if s.store != nil {
		var err error
		stored, err = s.store.StoredValues(ctx)
		if err != nil {
			return storage.DropdownOptions{}, fmt.Errorf("%s: %w", op, err)
		}
	}

	res := storage.DropdownOptions{
		Customers:         option.Merge(option.Plains(constants.Customers...), option.Plains(stored.Customers...)...),
		PartNames:         option.Merge(option.Plains(constants.PartNames...), option.Plains(stored.PartNames...)...),
		PartNumbers:       option.Merge(option.Plains(constants.PartNumbers...), option.Plains(stored.PartNumbers...)...),
		Operations:        option.Merge(option.Plains(constants.Operations...), option.Plains(stored.Operations...)...),
		Operators:         option.Plains(constants.Operators...),
		Tolerances:        option.Plains(constants.Tolerances...),
		ProcessTolerances: option.Plains(constants.ProcessTolerances...),
		Instruments:       option.Plains(constants.Instruments...),
		TimeTypes:         option.Plains(schedule.TimeTypes...),
	}

	s.cache.Set(dropdownKey, res, cache.DefaultExpiration)

	return res, nil
}

// ItemCatalog returns the configured items of an operation. A category with
// no stored rows falls back to the static list.
func (s *Service) ItemCatalog(ctx context.Context, operation string) (storage.ItemCatalog, error) {
	const op = "service.lookup.ItemCatalog"

	operation = strings.TrimSpace(operation)
	key := catalogPrefix + operation

	if cached, found := s.cache.Get(key); found {
		return cached.(storage.ItemCatalog), nil
	}

	var entries []storage.CatalogEntry
	if s.store != nil && operation != "" {
		var err error
		entries, err = s.store.CatalogEntries(ctx, operation)
		if err != nil {
			return storage.ItemCatalog{}, fmt.Errorf("%s: %w", op, err)
		}
	}

	var res storage.ItemCatalog
	for _, e := range entries {
		switch e.Category {
		case storage.CategoryProduct:
			res.Product = append(res.Product, option.Plain(e.Item))
		case storage.CategoryProcess:
			res.Process = append(res.Process, option.Plain(e.Item))
		default:
			s.log.Warn("skip catalog entry with unknown category",
				slog.String("op", op),
				slog.Int64("id", e.ID),
				slog.String("category", e.Category),
			)
		}
	}
	if len(res.Product) == 0 {
		res.Product = option.Plains(constants.ProductItems...)
	}
	if len(res.Process) == 0 {
		res.Process = option.Plains(constants.ProcessItems...)
	}

	s.cache.Set(key, res, cache.DefaultExpiration)

	return res, nil
}

// AddCatalogEntry stores a new item for an operation and drops its cached catalog.
func (s *Service) AddCatalogEntry(ctx context.Context, e storage.CatalogEntry) (int64, error) {
	const op = "service.lookup.AddCatalogEntry"

	if s.store == nil {
		return 0, fmt.Errorf("%s: %w", op, ErrCatalogUnavailable)
	}

	e.Operation = strings.TrimSpace(e.Operation)
	e.Item = strings.TrimSpace(e.Item)
	if e.Operation == "" || e.Item == "" {
		return 0, fmt.Errorf("%s: %w: operation and item are required", op, ErrInvalidCatalogEntry)
	}
	if _, err := items.ParseCategory(e.Category); err != nil {
		return 0, fmt.Errorf("%s: %w: %w", op, ErrInvalidCatalogEntry, err)
	}
	if err := checkCatalogLengths(e); err != nil {
		return 0, fmt.Errorf("%s: %w: %w", op, ErrInvalidCatalogEntry, err)
	}

	id, err := s.store.SaveCatalogEntry(ctx, e)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}

	s.cache.Delete(catalogPrefix + e.Operation)

	return id, nil
}

func checkCatalogLengths(e storage.CatalogEntry) error {
	if n := utf8.RuneCountInString(e.Operation); n > storage.MaxOperation {
		return fmt.Errorf("%w: operation has %d characters, max %d", storage.ErrValueTooLong, n, storage.MaxOperation)
	}
	if n := utf8.RuneCountInString(e.Item); n > storage.MaxItem {
		return fmt.Errorf("%w: item has %d characters, max %d", storage.ErrValueTooLong, n, storage.MaxItem)
	}
	return nil
}

// Invalidate drops every cached answer, e.g. after a report with new header values was saved.
func (s *Service) Invalidate() {
	s.cache.Flush()
}

// Warm preloads the dropdown options and the catalogs of all known operations.
func (s *Service) Warm(ctx context.Context) error {
	const op = "service.lookup.Warm"

	opts, err := s.DropdownOptions(ctx)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(warmupParallel)

	for _, operation := range option.Values(opts.Operations) {
		g.Go(func() error {
			_, err := s.ItemCatalog(gctx, operation)
			return err
		})
	}

	if err := g.Wait(); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}
