package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/mmynk/billbook/internal/billing"
	"github.com/mmynk/billbook/internal/export"
	"github.com/mmynk/billbook/internal/models"
	"github.com/mmynk/billbook/internal/registry"
)

// console is the interactive menu. It only collects input and prints
// results; every rule lives in the registry and below.
type console struct {
	in        *bufio.Reader
	out       io.Writer
	bills     *registry.Registry
	exporter  *export.Exporter
	currency  string
	exportDir string
}

func newConsole(in io.Reader, out io.Writer, bills *registry.Registry, exporter *export.Exporter, currency, exportDir string) *console {
	return &console{
		in:        bufio.NewReader(in),
		out:       out,
		bills:     bills,
		exporter:  exporter,
		currency:  currency,
		exportDir: exportDir,
	}
}

// run loops over the menu until the user exits or input ends.
func (c *console) run(ctx context.Context) {
	for {
		fmt.Fprintln(c.out, "\n1: New Bill")
		fmt.Fprintln(c.out, "2: List Bills")
		fmt.Fprintln(c.out, "3: Search Bills")
		fmt.Fprintln(c.out, "4: View Bill")
		fmt.Fprintln(c.out, "5: Edit Bill")
		fmt.Fprintln(c.out, "6: Delete Bill")
		fmt.Fprintln(c.out, "7: Print Bill (PDF)")
		fmt.Fprintln(c.out, "8: Export All Bills (PDF)")
		fmt.Fprintln(c.out, "9: Dashboard")
		fmt.Fprintln(c.out, "X: Exit")

		choice, ok := c.readLine("Enter choice: ")
		if !ok {
			return
		}

		switch strings.ToUpper(choice) {
		case "1":
			c.newBill(ctx)
		case "2":
			c.list(c.bills.Bills())
		case "3":
			keyword, _ := c.readLine("Search: ")
			c.list(c.bills.Search(keyword))
		case "4":
			if bill := c.pickBill(); bill != nil {
				c.show(bill)
			}
		case "5":
			c.editBill(ctx)
		case "6":
			c.deleteBill(ctx)
		case "7":
			c.printBill()
		case "8":
			c.exportAll()
		case "9":
			c.dashboard()
		case "X":
			return
		default:
			fmt.Fprintln(c.out, "Unknown choice.")
		}
	}
}

func (c *console) newBill(ctx context.Context) {
	var in registry.CustomerInput
	in.Name, _ = c.readLine("Customer Name: ")
	in.Phone, _ = c.readLine("Phone: ")
	in.Email, _ = c.readLine("Email (optional): ")

	rows := c.readRows()
	bill, err := c.bills.Save(ctx, in, rows)
	if err != nil {
		fmt.Fprintf(c.out, "Error saving bill: %v\n", err)
		return
	}
	fmt.Fprintf(c.out, "Bill %d saved. Total: %s\n", bill.ID, c.money(bill.Total))
}

func (c *console) editBill(ctx context.Context) {
	bill := c.pickBill()
	if bill == nil {
		return
	}
	c.show(bill)
	fmt.Fprintln(c.out, "Enter the new item list; it replaces the current one.")

	rows := c.readRows()
	updated, err := c.bills.Edit(ctx, bill.ID, rows)
	if err != nil {
		fmt.Fprintf(c.out, "Error updating bill: %v\n", err)
		return
	}
	fmt.Fprintf(c.out, "Bill %d updated. Total: %s\n", updated.ID, c.money(updated.Total))
}

func (c *console) deleteBill(ctx context.Context) {
	bill := c.pickBill()
	if bill == nil {
		return
	}
	if !c.readBool(fmt.Sprintf("Delete bill %d for %s? (y/n): ", bill.ID, bill.Customer.Name)) {
		return
	}
	if err := c.bills.Delete(ctx, bill.ID); err != nil {
		fmt.Fprintf(c.out, "Error deleting bill: %v\n", err)
		return
	}
	fmt.Fprintln(c.out, "Bill deleted successfully.")
}

func (c *console) printBill() {
	bill := c.pickBill()
	if bill == nil {
		return
	}
	path := filepath.Join(c.exportDir, export.BillFilename(bill))
	if err := c.exporter.SaveBill(path, bill); err != nil {
		fmt.Fprintf(c.out, "Error exporting bill: %v\n", err)
		return
	}
	fmt.Fprintf(c.out, "Bill saved to %s\n", path)
}

func (c *console) exportAll() {
	path := filepath.Join(c.exportDir, export.SummaryFilename)
	if err := c.exporter.SaveSummary(path, c.bills.Bills()); err != nil {
		fmt.Fprintf(c.out, "Error exporting bills: %v\n", err)
		return
	}
	fmt.Fprintf(c.out, "Bills exported to %s\n", path)
}

func (c *console) dashboard() {
	stats := c.bills.Stats()
	fmt.Fprintf(c.out, "Total Bills: %d\n", stats.Count)
	fmt.Fprintf(c.out, "Total Revenue: %s\n", c.money(stats.Revenue))
}

// readRows reads item rows until a blank name, echoing the running total.
// Rows are passed on raw; validation happens on save.
func (c *console) readRows() []billing.Row {
	var rows []billing.Row
	for {
		name, ok := c.readLine("Item Name (blank to finish): ")
		if !ok || name == "" {
			return rows
		}
		row := billing.Row{Name: name}
		row.Quantity, _ = c.readLine("Quantity: ")
		row.Price, _ = c.readLine("Price: ")
		rows = append(rows, row)
		fmt.Fprintf(c.out, "Running Total: %s\n", c.money(billing.PreviewTotal(rows)))
	}
}

func (c *console) list(bills []*models.Bill) {
	if len(bills) == 0 {
		fmt.Fprintln(c.out, "No bills found.")
		return
	}
	for _, b := range bills {
		fmt.Fprintf(c.out, "Bill ID: %d, Customer: %s, Phone: %s, Total: %s, Date: %s\n",
			b.ID, b.Customer.Name, b.Customer.Phone, c.money(b.Total), b.CreatedAt.Format(export.DateLayout))
	}
}

func (c *console) show(b *models.Bill) {
	fmt.Fprintf(c.out, "Bill ID: %d\n", b.ID)
	fmt.Fprintf(c.out, "Name: %s\nPhone: %s\n", b.Customer.Name, b.Customer.Phone)
	if b.Customer.Email != "" {
		fmt.Fprintf(c.out, "Email: %s\n", b.Customer.Email)
	}
	fmt.Fprintf(c.out, "Date: %s\n", b.CreatedAt.Format(export.DateLayout))
	for i, item := range b.Items {
		fmt.Fprintf(c.out, "  %d. %s x%d @ %s = %s\n",
			i+1, item.Name, item.Quantity, c.money(item.Price), c.money(item.LineTotal()))
	}
	fmt.Fprintf(c.out, "Total: %s\n", c.money(b.Total))
}

// pickBill asks for a bill id and resolves it against the held list.
func (c *console) pickBill() *models.Bill {
	text, _ := c.readLine("Enter Bill ID: ")
	id, err := strconv.ParseInt(text, 10, 64)
	if err != nil {
		fmt.Fprintln(c.out, "Invalid bill ID.")
		return nil
	}
	bill := c.bills.Get(id)
	if bill == nil {
		fmt.Fprintln(c.out, registry.ErrUnknownBill)
	}
	return bill
}

func (c *console) money(amount decimal.Decimal) string {
	return billing.FormatMoney(c.currency, amount)
}

// readLine prints caption and returns the trimmed reply. ok is false once
// input is exhausted and nothing was read.
func (c *console) readLine(caption string) (string, bool) {
	fmt.Fprint(c.out, caption)
	text, err := c.in.ReadString('\n')
	if err != nil && (!errors.Is(err, io.EOF) || text == "") {
		return "", false
	}
	return strings.TrimSpace(text), true
}

func (c *console) readBool(prompt string) bool {
	answer, _ := c.readLine(prompt)
	answer = strings.ToLower(answer)
	return answer == "y" || answer == "yes"
}
