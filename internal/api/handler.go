// Package api exposes the statement engine over HTTP.
package api

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"

	"github.com/finleaf/statement-ledger/internal/ledger"
	"github.com/finleaf/statement-ledger/internal/models"
	"github.com/finleaf/statement-ledger/internal/pipeline"
	"github.com/finleaf/statement-ledger/internal/writer"
)

const version = "1.0.0"

// ConvertResponse is the JSON response from the /api/convert endpoint.
type ConvertResponse struct {
	Success      bool                 `json:"success"`
	Error        string               `json:"error,omitempty"`
	Bank         string               `json:"bank,omitempty"`
	Account      *AccountInfo         `json:"account,omitempty"`
	Transactions []models.Transaction `json:"transactions"`
	CSV          string               `json:"csv,omitempty"`
	TotalIncome  string               `json:"totalIncome"`
	TotalExpense string               `json:"totalExpense"`
	Count        int                  `json:"count"`
	Version      string               `json:"version,omitempty"`
}

// AccountInfo holds statement account metadata for the JSON response.
type AccountInfo struct {
	IBAN           string `json:"iban,omitempty"`
	Name           string `json:"name,omitempty"`
	ClosingBalance string `json:"closingBalance,omitempty"`
}

// NewApp builds the fiber application with all routes registered.
func NewApp() *fiber.App {
	app := fiber.New(fiber.Config{
		BodyLimit:    32 << 20,
		ErrorHandler: errorHandler,
	})
	app.Get("/api/health", HandleHealth)
	app.Post("/api/convert", HandleConvert)
	return app
}

// HandleHealth reports server liveness.
func HandleHealth(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"status":  "ok",
		"engine":  "fiber",
		"version": version,
	})
}

// HandleConvert accepts one uploaded statement (PDF, or CSV for tabular
// exports) and returns the parsed transactions plus a rendered CSV. The
// endpoint is stateless: nothing touches the registry or the balance store.
func HandleConvert(c *fiber.Ctx) error {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		return writeError(c, fiber.StatusBadRequest, "No file uploaded. Use form field 'file'.")
	}

	ext := strings.ToLower(filepath.Ext(fileHeader.Filename))
	if ext != ".pdf" && ext != ".csv" {
		return writeError(c, fiber.StatusBadRequest, "Only PDF and CSV statements are supported.")
	}

	bank, err := bankFromParam(c.FormValue("bank"))
	if err != nil {
		return writeError(c, fiber.StatusBadRequest, err.Error())
	}

	tmp, err := os.CreateTemp("", "statement-*"+ext)
	if err != nil {
		return writeError(c, fiber.StatusInternalServerError, "Failed to create temp file.")
	}
	defer os.Remove(tmp.Name())
	tmp.Close()

	if err := c.SaveFile(fileHeader, tmp.Name()); err != nil {
		return writeError(c, fiber.StatusInternalServerError, "Failed to save uploaded file.")
	}

	info, err := pipeline.ParseStatementFile(tmp.Name(), bank)
	if err != nil {
		return writeError(c, fiber.StatusUnprocessableEntity, fmt.Sprintf("Parsing failed: %v", err))
	}

	for i := range info.Transactions {
		info.Transactions[i].SourceFile = fileHeader.Filename
	}
	ledger.ReconcileBalances(info.Transactions, info.ClosingBalance)
	txns := ledger.Assemble(info.Transactions)

	var csvBuf bytes.Buffer
	w := &writer.CSVWriter{}
	if err := w.Write(&csvBuf, txns); err != nil {
		return writeError(c, fiber.StatusInternalServerError, fmt.Sprintf("CSV generation failed: %v", err))
	}

	income, expense := decimal.Zero, decimal.Zero
	for _, txn := range txns {
		if txn.Amount.IsNegative() {
			expense = expense.Add(txn.Amount)
		} else {
			income = income.Add(txn.Amount)
		}
	}

	if txns == nil {
		txns = []models.Transaction{}
	}

	resp := ConvertResponse{
		Success:      true,
		Bank:         string(info.Bank),
		Transactions: txns,
		CSV:          csvBuf.String(),
		TotalIncome:  income.StringFixed(2),
		TotalExpense: expense.StringFixed(2),
		Count:        len(txns),
		Version:      version,
	}
	iban := info.Account.IBAN
	if iban == models.UnknownAccount {
		iban = ""
	}
	if iban != "" || info.Account.Name != "" {
		resp.Account = &AccountInfo{
			IBAN: iban,
			Name: info.Account.Name,
		}
		if info.ClosingBalance.Valid {
			resp.Account.ClosingBalance = info.ClosingBalance.Decimal.StringFixed(2)
		}
	}

	return c.JSON(resp)
}

func bankFromParam(param string) (models.BankType, error) {
	switch strings.ToLower(param) {
	case "":
		return "", nil
	case "dkb":
		return models.BankDKB, nil
	case "n26":
		return models.BankN26, nil
	case "db", "deutschebank", "deutsche-bank":
		return models.BankDeutscheBank, nil
	case "barclays":
		return models.BankBarclays, nil
	}
	return "", fmt.Errorf("unknown bank: %q, use dkb, n26, db, or barclays", param)
}

func errorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	if e, ok := err.(*fiber.Error); ok {
		code = e.Code
	}
	return writeError(c, code, err.Error())
}

func writeError(c *fiber.Ctx, status int, msg string) error {
	return c.Status(status).JSON(ConvertResponse{
		Success:      false,
		Error:        msg,
		Transactions: []models.Transaction{},
	})
}
