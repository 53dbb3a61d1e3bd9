package ledger

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/fernandosattini/iphoneapp/internal/dates"
	"github.com/fernandosattini/iphoneapp/internal/logger"
	"github.com/fernandosattini/iphoneapp/internal/models"
)

// CashInput describes a cash movement to record. Amount is a magnitude;
// direction comes from Type.
type CashInput struct {
	Type          string          `json:"type"`
	Date          string          `json:"date"`
	Amount        decimal.Decimal `json:"amount"`
	PaymentMethod string          `json:"payment_method"`
	Category      string          `json:"category"`
	Description   string          `json:"description"`
	ExpenseType   string          `json:"expense_type"`
}

// CashLedger is the append-mostly log of money moving in and out of the cash
// drawer. The balance is recomputed from the full list on every call; fine at
// the row counts a single shop produces.
type CashLedger struct {
	db  *gorm.DB
	log zerolog.Logger
}

func NewCashLedger(conn *gorm.DB) *CashLedger {
	return &CashLedger{db: conn, log: logger.WithComponent("cash-ledger")}
}

// Record persists a new cash movement and returns it.
func (l *CashLedger) Record(ctx context.Context, in CashInput) (*models.CashTransaction, error) {
	if in.Type != models.CashIncome && in.Type != models.CashExpense {
		return nil, fmt.Errorf("unknown cash transaction type %q", in.Type)
	}
	if !in.Amount.IsPositive() {
		return nil, ErrInvalidAmount
	}
	if in.Date == "" {
		in.Date = dates.Today()
	}
	tx := models.CashTransaction{
		ID:            models.NewID("cash"),
		Type:          in.Type,
		Date:          in.Date,
		Amount:        in.Amount,
		PaymentMethod: in.PaymentMethod,
		Category:      in.Category,
		Description:   in.Description,
		ExpenseType:   in.ExpenseType,
	}
	if err := l.db.WithContext(ctx).Create(&tx).Error; err != nil {
		return nil, fmt.Errorf("record cash transaction: %w", err)
	}
	return &tx, nil
}

// Remove deletes a cash movement by id; removing an unknown id is a no-op.
func (l *CashLedger) Remove(ctx context.Context, id string) error {
	res := l.db.WithContext(ctx).Where("id = ?", id).Delete(&models.CashTransaction{})
	if res.Error != nil {
		return fmt.Errorf("remove cash transaction: %w", res.Error)
	}
	return nil
}

// Transactions returns all movements, newest first.
func (l *CashLedger) Transactions(ctx context.Context) ([]models.CashTransaction, error) {
	var txs []models.CashTransaction
	if err := l.db.WithContext(ctx).Order("created_at desc").Find(&txs).Error; err != nil {
		return nil, fmt.Errorf("load cash transactions: %w", err)
	}
	return txs, nil
}

// Balance returns sum(income) - sum(expense) over the whole ledger.
func (l *CashLedger) Balance(ctx context.Context) (decimal.Decimal, error) {
	txs, err := l.Transactions(ctx)
	if err != nil {
		return decimal.Zero, err
	}
	balance := decimal.Zero
	for _, tx := range txs {
		if tx.Type == models.CashIncome {
			balance = balance.Add(tx.Amount)
		} else {
			balance = balance.Sub(tx.Amount)
		}
	}
	return balance, nil
}

// ByDateRange returns movements whose date falls inside [from, to], inclusive.
func (l *CashLedger) ByDateRange(ctx context.Context, from, to time.Time) ([]models.CashTransaction, error) {
	txs, err := l.Transactions(ctx)
	if err != nil {
		return nil, err
	}
	var out []models.CashTransaction
	for _, tx := range txs {
		if dates.Within(tx.Date, from, to) {
			out = append(out, tx)
		}
	}
	return out, nil
}

// ByCategory returns movements of one category, newest first.
func (l *CashLedger) ByCategory(ctx context.Context, category string) ([]models.CashTransaction, error) {
	var txs []models.CashTransaction
	err := l.db.WithContext(ctx).Where("category = ?", category).Order("created_at desc").Find(&txs).Error
	if err != nil {
		return nil, fmt.Errorf("load cash transactions by category: %w", err)
	}
	return txs, nil
}

// OperationalExpenses sums expense movements tagged operational, optionally
// limited to [from, to]. Pass nil bounds for the whole ledger.
func (l *CashLedger) OperationalExpenses(ctx context.Context, from, to *time.Time) (decimal.Decimal, error) {
	txs, err := l.Transactions(ctx)
	if err != nil {
		return decimal.Zero, err
	}
	total := decimal.Zero
	for _, tx := range txs {
		if tx.Type != models.CashExpense || tx.ExpenseType != models.ExpenseOperational {
			continue
		}
		if from != nil && to != nil && !dates.Within(tx.Date, *from, *to) {
			continue
		}
		total = total.Add(tx.Amount)
	}
	return total, nil
}
