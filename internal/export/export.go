// Package export renders bills as PDF documents.
package export

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/go-pdf/fpdf"
	"github.com/google/uuid"

	"github.com/mmynk/billbook/internal/models"
)

// DateLayout is how bill dates are printed.
const DateLayout = "2006-01-02 15:04:05"

// ErrNothingToExport is returned when a summary is requested for no bills.
var ErrNothingToExport = errors.New("there are no bills to export")

// Error reports a failed export. It never implies any change to bill state.
type Error struct {
	Path string
	Err  error
}

func (e *Error) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("export %s: %v", e.Path, e.Err)
	}
	return fmt.Sprintf("export: %v", e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Observer receives export outcomes.
type Observer interface {
	ObserveExport(kind string, err error)
}

type noopObserver struct{}

func (noopObserver) ObserveExport(string, error) {}

// Option configures an Exporter.
type Option func(*Exporter)

// WithLogger sets the logger. The default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(e *Exporter) { e.logger = logger }
}

// WithObserver sets the export outcome sink.
func WithObserver(o Observer) Option {
	return func(e *Exporter) { e.observer = o }
}

// Exporter writes bill documents. Each document gets a fresh reference id,
// printed in its footer and logged, so a printout can be matched to the log.
type Exporter struct {
	currency string
	logger   *slog.Logger
	observer Observer
	newRef   func() string
	compress bool
}

// New returns an Exporter printing amounts behind currency (e.g. "Rs.").
func New(currency string, opts ...Option) *Exporter {
	e := &Exporter{
		currency: currency,
		logger:   slog.Default(),
		observer: noopObserver{},
		newRef:   uuid.NewString,
		compress: true,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// WriteBill renders a single bill to w.
func (e *Exporter) WriteBill(w io.Writer, bill *models.Bill) error {
	ref := e.newRef()
	err := e.render(w, e.billDocument(bill, ref))
	e.finish("bill", ref, "", err, "bill_id", bill.ID)
	return err
}

// WriteSummary renders one row per bill and the total revenue to w.
func (e *Exporter) WriteSummary(w io.Writer, bills []*models.Bill) error {
	if len(bills) == 0 {
		return &Error{Err: ErrNothingToExport}
	}
	ref := e.newRef()
	err := e.render(w, e.summaryDocument(bills, ref))
	e.finish("summary", ref, "", err, "bills", len(bills))
	return err
}

// SaveBill writes the bill document to path.
func (e *Exporter) SaveBill(path string, bill *models.Bill) error {
	ref := e.newRef()
	err := e.save(path, e.billDocument(bill, ref))
	e.finish("bill", ref, path, err, "bill_id", bill.ID)
	return err
}

// SaveSummary writes the summary document to path.
func (e *Exporter) SaveSummary(path string, bills []*models.Bill) error {
	if len(bills) == 0 {
		return &Error{Path: path, Err: ErrNothingToExport}
	}
	ref := e.newRef()
	err := e.save(path, e.summaryDocument(bills, ref))
	e.finish("summary", ref, path, err, "bills", len(bills))
	return err
}

// BillFilename is the suggested file name for a single bill.
func BillFilename(bill *models.Bill) string {
	name := strings.Map(func(r rune) rune {
		switch r {
		case '/', '\\', ':', '*', '?', '"', '<', '>', '|':
			return '_'
		}
		return r
	}, strings.TrimSpace(bill.Customer.Name))
	if name == "" {
		return "bill_" + strconv.FormatInt(bill.ID, 10) + ".pdf"
	}
	return name + "_bill.pdf"
}

// SummaryFilename is the suggested file name for the bill list.
const SummaryFilename = "all_bills.pdf"

func (e *Exporter) render(w io.Writer, pdf *fpdf.Fpdf) error {
	if err := pdf.Output(w); err != nil {
		return &Error{Err: err}
	}
	return nil
}

func (e *Exporter) save(path string, pdf *fpdf.Fpdf) error {
	if err := pdf.Error(); err != nil {
		return &Error{Path: path, Err: err}
	}
	f, err := os.Create(path)
	if err != nil {
		return &Error{Path: path, Err: err}
	}
	if err := pdf.Output(f); err != nil {
		f.Close()
		os.Remove(path)
		return &Error{Path: path, Err: err}
	}
	if err := f.Close(); err != nil {
		return &Error{Path: path, Err: err}
	}
	return nil
}

func (e *Exporter) finish(kind, ref, path string, err error, args ...any) {
	e.observer.ObserveExport(kind, err)
	args = append(args, "kind", kind, "ref", ref)
	if path != "" {
		args = append(args, "path", path)
	}
	if err != nil {
		e.logger.Error("Export failed", append(args, "error", err)...)
		return
	}
	e.logger.Info("Export written", args...)
}

