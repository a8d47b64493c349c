package lifecycle

import (
	"fmt"

	"repairshop/internal/domain/entities"

	"github.com/shopspring/decimal"
)

// RefreshPayment recomputes the derived payment fields against total.
// Call it whenever either the paid amount or the total changes.
func RefreshPayment(p *entities.Payment, total decimal.Decimal) {
	remaining := total.Sub(p.PaidAmount)
	if remaining.IsNegative() {
		remaining = decimal.Zero
	}
	p.RemainingBalance = remaining

	switch {
	case p.PaidAmount.GreaterThanOrEqual(total):
		p.Status = entities.PaymentStatusPaid
	case p.PaidAmount.IsZero():
		p.Status = entities.PaymentStatusUnpaid
	default:
		p.Status = entities.PaymentStatusPartial
	}
}

// ApplyPayment appends tx and refreshes the derived fields. Only strictly
// positive amounts are accepted, which keeps PaidAmount non-decreasing.
func ApplyPayment(p *entities.Payment, tx entities.PaymentTransaction, total decimal.Decimal) error {
	if !tx.Amount.IsPositive() {
		return fmt.Errorf("%w: payment amount must be > 0 (got %s)", ErrInvalidAmount, tx.Amount.String())
	}
	p.Transactions = append(p.Transactions, tx)
	p.PaidAmount = p.PaidAmount.Add(tx.Amount)
	RefreshPayment(p, total)
	return nil
}
