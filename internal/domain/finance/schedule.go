package finance

import (
	"time"

	"github.com/farmledger/backend/internal/domain/shared/valueobject"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// MaxInstallments bounds how far a movement can be split.
const MaxInstallments = 60

var centExp = int32(2)

// GenerateSchedule splits a movement total into count installments.
//
// The base amount is total/count rounded down to the cent; the leftover
// cents are distributed one per installment starting from the FIRST, so
// the installment amounts always sum to the total exactly. Example:
// 1000.00 over 3 yields 333.34, 333.33, 333.33. When the total is less
// than a cent per installment the trailing installments come out at
// 0.00, e.g. 0.10 over 12 yields ten of 0.01 and two of 0.00.
//
// Due dates advance one calendar month per sequence starting at the
// movement date, with the day-of-month clamped to the last valid day of
// the target month (Jan 31 -> Feb 28/29 -> Mar 31).
func GenerateSchedule(movementID uuid.UUID, total valueobject.Money, count int, startDate time.Time) ([]Installment, error) {
	if count < 1 || count > MaxInstallments {
		return nil, &InvalidInstallmentCountError{Count: count}
	}
	if !total.IsPositive() {
		return nil, &InvalidAmountError{Amount: total.Amount()}
	}

	amount := total.Amount().Round(centExp)
	base := amount.Div(decimal.NewFromInt(int64(count))).RoundDown(centExp)
	remainder := amount.Sub(base.Mul(decimal.NewFromInt(int64(count))))
	remainderCents := remainder.Shift(centExp).IntPart()
	cent := decimal.New(1, -centExp)

	installments := make([]Installment, 0, count)
	for seq := 1; seq <= count; seq++ {
		due := base
		if int64(seq) <= remainderCents {
			due = due.Add(cent)
		}
		inst, err := NewInstallment(
			movementID,
			seq,
			valueobject.NewMoneyBRL(due),
			addMonths(startDate, seq-1),
		)
		if err != nil {
			return nil, err
		}
		installments = append(installments, *inst)
	}

	return installments, nil
}

// addMonths advances a date by whole calendar months, clamping the day to
// the last valid day of the target month. time.AddDate is not used
// because it normalizes overflow (Jan 31 + 1 month = Mar 3).
func addMonths(date time.Time, months int) time.Time {
	year, month, day := date.Date()

	totalMonths := int(month) - 1 + months
	targetYear := year + totalMonths/12
	targetMonth := time.Month(totalMonths%12 + 1)
	if totalMonths < 0 {
		// Go's integer division truncates toward zero
		targetYear = year + (totalMonths-11)/12
		targetMonth = time.Month((totalMonths%12+12)%12 + 1)
	}

	if last := lastDayOfMonth(targetYear, targetMonth); day > last {
		day = last
	}

	return time.Date(targetYear, targetMonth, day, 0, 0, 0, 0, date.Location())
}

// lastDayOfMonth returns the number of days in the given month
func lastDayOfMonth(year int, month time.Month) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}
