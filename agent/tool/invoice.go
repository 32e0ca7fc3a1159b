package tool

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/cloudwego/eino/schema"
	"github.com/uptrace/bun"
)

const (
	ToolInvoicesByDate      = "invoice.list_by_date"
	ToolInvoicesByUnitPrice = "invoice.list_by_unit_price"
	ToolInvoiceSupportRep   = "invoice.support_rep"
)

func invoiceToolInfos() []*schema.ToolInfo {
	return []*schema.ToolInfo{
		{
			Name: ToolInvoicesByDate,
			Desc: "List the customer's invoices sorted by invoice date, newest first.",
			ParamsOneOf: schema.NewParamsOneOfByParams(map[string]*schema.ParameterInfo{
				"account_id": {Type: schema.Integer, Desc: "The customer's account id", Required: true},
			}),
		},
		{
			Name: ToolInvoicesByUnitPrice,
			Desc: "List the customer's invoices sorted by line-item unit price, highest first.",
			ParamsOneOf: schema.NewParamsOneOfByParams(map[string]*schema.ParameterInfo{
				"account_id": {Type: schema.Integer, Desc: "The customer's account id", Required: true},
			}),
		},
		{
			Name: ToolInvoiceSupportRep,
			Desc: "Look up the support employee linked to one of the customer's invoices.",
			ParamsOneOf: schema.NewParamsOneOfByParams(map[string]*schema.ParameterInfo{
				"account_id": {Type: schema.Integer, Desc: "The customer's account id", Required: true},
				"invoice_id": {Type: schema.Integer, Desc: "The invoice id", Required: true},
			}),
		},
	}
}

func executeInvoiceTool(ctx context.Context, db bun.IDB, tool string, args map[string]any) (any, error) {
	accountID, err := int64Arg(args, "account_id")
	if err != nil {
		return nil, err
	}

	switch tool {
	case ToolInvoicesByDate:
		return invoicesByDate(ctx, db, accountID)
	case ToolInvoicesByUnitPrice:
		return invoicesByUnitPrice(ctx, db, accountID)
	case ToolInvoiceSupportRep:
		invoiceID, err := int64Arg(args, "invoice_id")
		if err != nil {
			return nil, err
		}
		return invoiceSupportRep(ctx, db, invoiceID, accountID)
	default:
		return nil, fmt.Errorf("unknown invoice tool %q", tool)
	}
}

type invoiceRow struct {
	InvoiceID   int64     `bun:"invoice_id" json:"invoice_id"`
	InvoiceDate time.Time `bun:"invoice_date" json:"invoice_date"`
	Total       float64   `bun:"total" json:"total"`
	UnitPrice   float64   `bun:"unit_price" json:"unit_price,omitempty"`
}

func invoicesByDate(ctx context.Context, db bun.IDB, accountID int64) (any, error) {
	var rows []invoiceRow
	err := db.NewSelect().
		ColumnExpr("invoice_id, invoice_date, total").
		TableExpr("invoice").
		Where("customer_id = ?", accountID).
		OrderExpr("invoice_date DESC").
		Scan(ctx, &rows)
	if err != nil {
		return nil, err
	}
	return rows, nil
}

func invoicesByUnitPrice(ctx context.Context, db bun.IDB, accountID int64) (any, error) {
	var rows []invoiceRow
	err := db.NewSelect().
		ColumnExpr("i.invoice_id, i.invoice_date, i.total, il.unit_price").
		TableExpr("invoice AS i").
		Join("JOIN invoice_line AS il ON il.invoice_id = i.invoice_id").
		Where("i.customer_id = ?", accountID).
		OrderExpr("il.unit_price DESC").
		Scan(ctx, &rows)
	if err != nil {
		return nil, err
	}
	return rows, nil
}

type supportRepRow struct {
	FirstName string `bun:"first_name" json:"first_name"`
	Title     string `bun:"title" json:"title"`
	Email     string `bun:"email" json:"email"`
}

func invoiceSupportRep(ctx context.Context, db bun.IDB, invoiceID, accountID int64) (any, error) {
	var row supportRepRow
	err := db.NewSelect().
		ColumnExpr("e.first_name, e.title, e.email").
		TableExpr("employee AS e").
		Join("JOIN customer AS c ON c.support_rep_id = e.employee_id").
		Join("JOIN invoice AS i ON i.customer_id = c.customer_id").
		Where("i.invoice_id = ?", invoiceID).
		Where("i.customer_id = ?", accountID).
		Limit(1).
		Scan(ctx, &row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return fmt.Sprintf("no employee found for invoice %d and account %d", invoiceID, accountID), nil
		}
		return nil, err
	}
	return row, nil
}
