// Package registry keeps the in-memory list of bills for the running session
// and is the only component allowed to change it. Every mutation goes to the
// store first; the list follows only once the store has accepted the write.
package registry

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/mmynk/billbook/internal/billing"
	"github.com/mmynk/billbook/internal/models"
	"github.com/mmynk/billbook/internal/storage"
)

// ErrUnknownBill is returned for edits and deletes of a bill the registry
// does not hold.
var ErrUnknownBill = errors.New("bill not found")

// Metrics receives operation outcomes and dashboard figures.
type Metrics interface {
	ObserveOperation(op string, err error)
	SetStats(stats models.Stats)
}

type noopMetrics struct{}

func (noopMetrics) ObserveOperation(string, error) {}
func (noopMetrics) SetStats(models.Stats)          {}

// Option configures a Registry.
type Option func(*Registry)

// WithLogger sets the logger. The default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(r *Registry) { r.logger = logger }
}

// WithMetrics sets the metrics sink.
func WithMetrics(m Metrics) Option {
	return func(r *Registry) { r.metrics = m }
}

// Registry holds the bills of the current session, newest first.
//
// A Registry is not safe for concurrent use.
type Registry struct {
	store    storage.Store
	validate *validator.Validate
	logger   *slog.Logger
	metrics  Metrics

	bills []*models.Bill
	stats models.Stats
}

// New creates an empty Registry backed by store. Call Load to fill it.
func New(store storage.Store, opts ...Option) *Registry {
	r := &Registry{
		store:    store,
		validate: newValidator(),
		logger:   slog.Default(),
		metrics:  noopMetrics{},
	}
	for _, opt := range opts {
		opt(r)
	}
	r.recompute()
	return r
}

// Load replaces the held bills with the store's contents.
func (r *Registry) Load(ctx context.Context) (err error) {
	defer func() { r.observe("load", err) }()

	rows, err := r.store.GetAllBills(ctx)
	if err != nil {
		return err
	}

	bills := make([]*models.Bill, 0, len(rows))
	for _, row := range rows {
		items, err := billing.Deserialize(row.Items)
		if err != nil {
			return fmt.Errorf("bill %d: %w", row.ID, err)
		}
		bills = append(bills, &models.Bill{
			ID: row.ID,
			Customer: models.Customer{
				ID:    row.CustomerID,
				Name:  row.Name,
				Email: row.Email,
				Phone: row.Phone,
			},
			Items:     items,
			Total:     row.Total,
			CreatedAt: row.CreatedAt,
		})
	}

	r.bills = bills
	r.recompute()
	r.logger.Info("Bills loaded", "count", r.stats.Count)
	return nil
}

// Save validates the form, stores the customer (reusing an existing one with
// the same name and phone) and the bill, and adds the bill to the front of
// the list. Nothing is held or returned unless both writes succeed.
func (r *Registry) Save(ctx context.Context, in CustomerInput, rows []billing.Row) (_ *models.Bill, err error) {
	defer func() { r.observe("save", err) }()

	in = in.trimmed()
	if err := validateCustomer(r.validate, in); err != nil {
		return nil, err
	}

	items, err := validateForWrite(rows)
	if err != nil {
		return nil, err
	}
	total := billing.ComputeTotal(items)
	text, err := billing.Serialize(items)
	if err != nil {
		return nil, err
	}

	customerID, err := r.store.AddCustomer(ctx, in.Name, in.Email, in.Phone)
	if err != nil {
		return nil, err
	}
	id, createdAt, err := r.store.AddBill(ctx, customerID, text, total)
	if err != nil {
		return nil, err
	}

	bill := &models.Bill{
		ID: id,
		Customer: models.Customer{
			ID:    customerID,
			Name:  in.Name,
			Email: in.Email,
			Phone: in.Phone,
		},
		Items:     items,
		Total:     total,
		CreatedAt: createdAt,
	}
	r.bills = slices.Insert(r.bills, 0, bill)
	r.recompute()

	r.logger.Info("Bill saved", "bill_id", id, "customer_id", customerID, "items", len(items), "total", total.StringFixed(2))
	return bill, nil
}

// Edit replaces the items of a held bill and recomputes its total. The
// held bill is changed in place after the store accepts the update.
func (r *Registry) Edit(ctx context.Context, id int64, rows []billing.Row) (_ *models.Bill, err error) {
	defer func() { r.observe("edit", err) }()

	bill := r.Get(id)
	if bill == nil {
		return nil, fmt.Errorf("%w: %d", ErrUnknownBill, id)
	}

	items, err := validateForWrite(rows)
	if err != nil {
		return nil, err
	}
	total := billing.ComputeTotal(items)
	text, err := billing.Serialize(items)
	if err != nil {
		return nil, err
	}

	// The store does not report a missing row, so membership is checked above.
	if err := r.store.UpdateBill(ctx, id, text, total); err != nil {
		return nil, err
	}

	bill.Items = items
	bill.Total = total
	r.recompute()

	r.logger.Info("Bill updated", "bill_id", id, "items", len(items), "total", total.StringFixed(2))
	return bill, nil
}

// Delete removes a held bill from the store and from the list.
func (r *Registry) Delete(ctx context.Context, id int64) (err error) {
	defer func() { r.observe("delete", err) }()

	i := r.index(id)
	if i < 0 {
		return fmt.Errorf("%w: %d", ErrUnknownBill, id)
	}
	if err := r.store.DeleteBill(ctx, id); err != nil {
		return err
	}

	r.bills = slices.Delete(r.bills, i, i+1)
	r.recompute()

	r.logger.Info("Bill deleted", "bill_id", id)
	return nil
}

// Search returns the held bills whose customer name, phone or any item name
// contains keyword. Names match case-insensitively; the phone is matched as
// typed. Order is preserved and an empty keyword matches every bill.
func (r *Registry) Search(keyword string) []*models.Bill {
	keyword = strings.ToLower(strings.TrimSpace(keyword))

	var out []*models.Bill
	for _, b := range r.bills {
		if matches(b, keyword) {
			out = append(out, b)
		}
	}
	return out
}

func matches(b *models.Bill, keyword string) bool {
	if strings.Contains(strings.ToLower(b.Customer.Name), keyword) ||
		strings.Contains(b.Customer.Phone, keyword) {
		return true
	}
	for _, item := range b.Items {
		if strings.Contains(strings.ToLower(item.Name), keyword) {
			return true
		}
	}
	return false
}

// Bills returns the held bills, newest first. The slice is a copy; the bills
// are shared.
func (r *Registry) Bills() []*models.Bill {
	return slices.Clone(r.bills)
}

// Get returns the held bill with the given id, or nil.
func (r *Registry) Get(id int64) *models.Bill {
	if i := r.index(id); i >= 0 {
		return r.bills[i]
	}
	return nil
}

// Stats returns the dashboard figures for the held bills.
func (r *Registry) Stats() models.Stats {
	return r.stats
}

func (r *Registry) index(id int64) int {
	return slices.IndexFunc(r.bills, func(b *models.Bill) bool { return b.ID == id })
}

// recompute rebuilds the stats from the full list after every mutation.
func (r *Registry) recompute() {
	r.stats = models.Stats{
		Count:   len(r.bills),
		Revenue: billing.Revenue(r.bills),
	}
	r.metrics.SetStats(r.stats)
}

func (r *Registry) observe(op string, err error) {
	r.metrics.ObserveOperation(op, err)
	switch {
	case err == nil:
	case billing.IsValidation(err):
		r.logger.Warn("Bill input rejected", "op", op, "error", err)
	default:
		r.logger.Error("Bill operation failed", "op", op, "error", err)
	}
}

// validateForWrite validates rows and rejects an empty bill.
func validateForWrite(rows []billing.Row) ([]models.LineItem, error) {
	items, err := billing.ValidateItems(rows)
	if err != nil {
		return nil, err
	}
	if len(items) == 0 {
		return nil, &billing.ValidationError{Err: billing.ErrNoItems}
	}
	return items, nil
}
