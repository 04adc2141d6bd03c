package borrow

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/Mikee100/Uni-Sporting-Equipment/internal/domain"
)

// PenaltyRates are the fixed amounts charged by the lifecycle engine.
type PenaltyRates struct {
	Lost    decimal.Decimal
	Damaged decimal.Decimal
	Late    decimal.Decimal
}

func DefaultPenaltyRates() PenaltyRates {
	return PenaltyRates{
		Lost:    decimal.NewFromInt(100),
		Damaged: decimal.NewFromInt(50),
		Late:    decimal.NewFromInt(20),
	}
}

func (r PenaltyRates) IsZero() bool {
	return r.Lost.IsZero() && r.Damaged.IsZero() && r.Late.IsZero()
}

// assessPenalties returns the penalties a borrowed record earns when it is
// closed with outcome. prevDue is the due date stored before the update and
// returnedAt the effective return timestamp.
//
// lost and damaged always charge their fixed amount; a return charges the
// late fee only when the record had a due date and returnedAt is after it.
func assessPenalties(rec *domain.BorrowRecord, outcome domain.BorrowStatus, prevDue *time.Time, returnedAt time.Time, rates PenaltyRates, issuedAt time.Time) []domain.Penalty {
	var out []domain.Penalty

	switch outcome {
	case domain.BorrowLost:
		out = append(out, systemPenalty(rec, rates.Lost, domain.ReasonLost, issuedAt))
	case domain.BorrowDamaged:
		out = append(out, systemPenalty(rec, rates.Damaged, domain.ReasonDamaged, issuedAt))
	case domain.BorrowReturned:
		if prevDue != nil && returnedAt.After(*prevDue) {
			out = append(out, systemPenalty(rec, rates.Late, domain.ReasonLate, issuedAt))
		}
	}
	return out
}

func systemPenalty(rec *domain.BorrowRecord, amount decimal.Decimal, reason string, issuedAt time.Time) domain.Penalty {
	return domain.Penalty{
		UserID:              rec.UserID,
		BorrowedEquipmentID: rec.ID,
		Amount:              amount,
		Reason:              reason,
		Status:              domain.PenaltyUnpaid,
		Origin:              domain.PenaltySystem,
		IssuedAt:            issuedAt,
	}
}
