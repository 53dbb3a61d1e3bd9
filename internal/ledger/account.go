// Package ledger implements the two bookkeeping cores: per-entity account
// ledgers (clients and providers) and the single cash ledger. Balances are
// always derived from the stored transactions, never adjusted incrementally.
package ledger

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/fernandosattini/iphoneapp/internal/dates"
	"github.com/fernandosattini/iphoneapp/internal/logger"
	"github.com/fernandosattini/iphoneapp/internal/models"
)

// SaleSettledFunc is invoked when a client payment retires the client's whole
// debt: once per sale-kind transaction on the account that references a sale.
// Invocation is synchronous and fire-and-forget.
type SaleSettledFunc func(saleID, newStatus string)

// Account is a derived view over the account_transactions rows of one entity.
// Balance equals the sum of the transaction amounts at all times.
type Account struct {
	EntityID     string                      `json:"entity_id"`
	EntityName   string                      `json:"entity_name"`
	Transactions []models.AccountTransaction `json:"transactions"`
	Balance      decimal.Decimal             `json:"balance"`
}

// AccountLedger maintains client and provider running balances from discrete
// signed transactions.
type AccountLedger struct {
	db          *gorm.DB
	log         zerolog.Logger
	saleSettled SaleSettledFunc
}

func NewAccountLedger(conn *gorm.DB) *AccountLedger {
	return &AccountLedger{db: conn, log: logger.WithComponent("account-ledger")}
}

// SetSaleSettled installs the settle notifier. At most one is active: a later
// call overwrites the previous one, and while none is set notifications are
// dropped.
func (l *AccountLedger) SetSaleSettled(fn SaleSettledFunc) { l.saleSettled = fn }

// RecordSale appends a positive sale transaction to the client's account,
// creating the account if absent.
func (l *AccountLedger) RecordSale(ctx context.Context, clientID, clientName, saleID string, amount decimal.Decimal, description, dueDate string) (*models.AccountTransaction, error) {
	if !amount.IsPositive() {
		return nil, ErrInvalidAmount
	}
	tx := models.AccountTransaction{
		ID:          models.NewID("trans"),
		AccountType: models.AccountTypeClient,
		AccountID:   clientID,
		AccountName: clientName,
		Type:        models.TxSale,
		Date:        dates.Today(),
		Description: description,
		Amount:      amount,
		SaleID:      saleID,
		DueDate:     dueDate,
	}
	if err := l.db.WithContext(ctx).Create(&tx).Error; err != nil {
		return nil, fmt.Errorf("record sale: %w", err)
	}
	return &tx, nil
}

// RecordPayment appends a negated payment transaction to an existing client
// account. When the payment moves the balance from positive to zero or below,
// the settle notifier fires for every sale-kind transaction that references a
// sale.
func (l *AccountLedger) RecordPayment(ctx context.Context, clientID string, amount decimal.Decimal, description string) (*models.AccountTransaction, error) {
	if !amount.IsPositive() {
		return nil, ErrInvalidAmount
	}
	if description == "" {
		description = "Pago recibido"
	}
	account, err := l.ClientAccount(ctx, clientID)
	if err != nil {
		return nil, err
	}
	tx := models.AccountTransaction{
		ID:          models.NewID("trans"),
		AccountType: models.AccountTypeClient,
		AccountID:   clientID,
		AccountName: account.EntityName,
		Type:        models.TxPayment,
		Date:        dates.Today(),
		Description: description,
		Amount:      amount.Neg(),
	}
	if err := l.db.WithContext(ctx).Create(&tx).Error; err != nil {
		return nil, fmt.Errorf("record payment: %w", err)
	}

	newBalance := account.Balance.Sub(amount)
	if account.Balance.IsPositive() && !newBalance.IsPositive() {
		l.notifySettled(account)
	}
	return &tx, nil
}

func (l *AccountLedger) notifySettled(account *Account) {
	if l.saleSettled == nil {
		return
	}
	for _, tx := range account.Transactions {
		if tx.Type == models.TxSale && tx.SaleID != "" {
			l.log.Info().Str("client_id", account.EntityID).Str("sale_id", tx.SaleID).
				Msg("client fully paid, crediting sale")
			l.saleSettled(tx.SaleID, models.SaleCredited)
		}
	}
}

// RecordPurchase appends a positive purchase transaction to the provider's
// account, creating the account if absent.
func (l *AccountLedger) RecordPurchase(ctx context.Context, providerID, providerName string, amount decimal.Decimal, description, dueDate string) (*models.AccountTransaction, error) {
	return l.recordProviderCharge(ctx, providerID, providerName, models.TxPurchase, amount, description, dueDate)
}

// RecordManualDebt appends a positive manually-entered debt to the provider's
// account, creating the account if absent.
func (l *AccountLedger) RecordManualDebt(ctx context.Context, providerID, providerName string, amount decimal.Decimal, description, dueDate string) (*models.AccountTransaction, error) {
	return l.recordProviderCharge(ctx, providerID, providerName, models.TxManualDebt, amount, description, dueDate)
}

func (l *AccountLedger) recordProviderCharge(ctx context.Context, providerID, providerName, kind string, amount decimal.Decimal, description, dueDate string) (*models.AccountTransaction, error) {
	if !amount.IsPositive() {
		return nil, ErrInvalidAmount
	}
	tx := models.AccountTransaction{
		ID:          models.NewID("trans"),
		AccountType: models.AccountTypeProvider,
		AccountID:   providerID,
		AccountName: providerName,
		Type:        kind,
		Date:        dates.Today(),
		Description: description,
		Amount:      amount,
		DueDate:     dueDate,
	}
	if err := l.db.WithContext(ctx).Create(&tx).Error; err != nil {
		return nil, fmt.Errorf("record %s: %w", kind, err)
	}
	return &tx, nil
}

// RecordPaymentToProvider appends a negated payment transaction to an existing
// provider account. No settle notification on the provider side.
func (l *AccountLedger) RecordPaymentToProvider(ctx context.Context, providerID string, amount decimal.Decimal, description string) (*models.AccountTransaction, error) {
	if !amount.IsPositive() {
		return nil, ErrInvalidAmount
	}
	if description == "" {
		description = "Pago realizado"
	}
	account, err := l.ProviderAccount(ctx, providerID)
	if err != nil {
		return nil, err
	}
	tx := models.AccountTransaction{
		ID:          models.NewID("trans"),
		AccountType: models.AccountTypeProvider,
		AccountID:   providerID,
		AccountName: account.EntityName,
		Type:        models.TxPaymentToProvider,
		Date:        dates.Today(),
		Description: description,
		Amount:      amount.Neg(),
	}
	if err := l.db.WithContext(ctx).Create(&tx).Error; err != nil {
		return nil, fmt.Errorf("record payment to provider: %w", err)
	}
	return &tx, nil
}

// RemoveTransaction deletes a transaction by id. Removing an id that is
// already gone is a no-op: the balance is re-derived on the next read, so a
// double delete cannot double-decrement anything.
func (l *AccountLedger) RemoveTransaction(ctx context.Context, transactionID string) error {
	res := l.db.WithContext(ctx).Where("id = ?", transactionID).Delete(&models.AccountTransaction{})
	if res.Error != nil {
		return fmt.Errorf("remove transaction: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		l.log.Debug().Str("transaction_id", transactionID).Msg("remove of unknown transaction ignored")
	}
	return nil
}

// ClientAccount returns the derived account for one client, or
// ErrAccountNotFound when no transactions exist for it.
func (l *AccountLedger) ClientAccount(ctx context.Context, clientID string) (*Account, error) {
	return l.account(ctx, models.AccountTypeClient, clientID)
}

// ProviderAccount returns the derived account for one provider.
func (l *AccountLedger) ProviderAccount(ctx context.Context, providerID string) (*Account, error) {
	return l.account(ctx, models.AccountTypeProvider, providerID)
}

func (l *AccountLedger) account(ctx context.Context, accountType, entityID string) (*Account, error) {
	var txs []models.AccountTransaction
	err := l.db.WithContext(ctx).
		Where("account_type = ? AND account_id = ?", accountType, entityID).
		Order("created_at asc").
		Find(&txs).Error
	if err != nil {
		return nil, fmt.Errorf("load account: %w", err)
	}
	if len(txs) == 0 {
		return nil, ErrAccountNotFound
	}
	return buildAccount(entityID, txs), nil
}

// ClientAccounts returns every derived client account, in order of first
// transaction.
func (l *AccountLedger) ClientAccounts(ctx context.Context) ([]Account, error) {
	return l.accounts(ctx, models.AccountTypeClient, false)
}

// ProviderAccounts returns every derived provider account.
func (l *AccountLedger) ProviderAccounts(ctx context.Context) ([]Account, error) {
	return l.accounts(ctx, models.AccountTypeProvider, false)
}

// ClientAccountsWithBalance returns only client accounts that still owe money.
func (l *AccountLedger) ClientAccountsWithBalance(ctx context.Context) ([]Account, error) {
	return l.accounts(ctx, models.AccountTypeClient, true)
}

// ProviderAccountsWithBalance returns only provider accounts the business
// still owes.
func (l *AccountLedger) ProviderAccountsWithBalance(ctx context.Context) ([]Account, error) {
	return l.accounts(ctx, models.AccountTypeProvider, true)
}

func (l *AccountLedger) accounts(ctx context.Context, accountType string, onlyPositive bool) ([]Account, error) {
	var txs []models.AccountTransaction
	err := l.db.WithContext(ctx).
		Where("account_type = ?", accountType).
		Order("created_at asc").
		Find(&txs).Error
	if err != nil {
		return nil, fmt.Errorf("load accounts: %w", err)
	}

	grouped := map[string][]models.AccountTransaction{}
	var order []string
	for _, tx := range txs {
		if _, seen := grouped[tx.AccountID]; !seen {
			order = append(order, tx.AccountID)
		}
		grouped[tx.AccountID] = append(grouped[tx.AccountID], tx)
	}

	accounts := make([]Account, 0, len(order))
	for _, id := range order {
		acc := buildAccount(id, grouped[id])
		if onlyPositive && !acc.Balance.IsPositive() {
			continue
		}
		accounts = append(accounts, *acc)
	}
	return accounts, nil
}

func buildAccount(entityID string, txs []models.AccountTransaction) *Account {
	acc := &Account{EntityID: entityID, Transactions: txs, Balance: decimal.Zero}
	for _, tx := range txs {
		acc.Balance = acc.Balance.Add(tx.Amount)
		// latest row wins for the display name
		acc.EntityName = tx.AccountName
	}
	return acc
}
