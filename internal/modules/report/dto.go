package report

import "github.com/shopspring/decimal"

type MostBorrowed struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Count int64  `json:"count"`
}

type Summary struct {
	TotalUsers               int64           `json:"total_users"`
	TotalStaff               int64           `json:"total_staff"`
	TotalAdmins              int64           `json:"total_admins"`
	TotalStudents            int64           `json:"total_students"`
	TotalEquipment           int64           `json:"total_equipment"`
	AvailableEquipment       int64           `json:"available_equipment"`
	LostEquipment            int64           `json:"lost_equipment"`
	DamagedEquipment         int64           `json:"damaged_equipment"`
	ActiveBorrows            int64           `json:"active_borrows"`
	ReturnedBorrows          int64           `json:"returned_borrows"`
	PendingRequests          int64           `json:"pending_requests"`
	OverdueBorrows           int64           `json:"overdue_borrows"`
	UnpaidPenalties          int64           `json:"unpaid_penalties"`
	PaidPenalties            int64           `json:"paid_penalties"`
	WaivedPenalties          int64           `json:"waived_penalties"`
	OutstandingPenaltyAmount decimal.Decimal `json:"outstanding_penalty_amount"`
	MostBorrowedEquipment    *MostBorrowed   `json:"most_borrowed_equipment"`
}

type StaffSummary struct {
	ActiveBorrows   int64 `json:"active_borrows"`
	PendingRequests int64 `json:"pending_requests"`
	TotalEquipment  int64 `json:"total_equipment"`
}
