package borrow

type requestBorrowRequest struct {
	EquipmentID int64   `json:"equipment_id"`
	Notes       string  `json:"notes"`
	DueDate     *string `json:"due_date"`
}

type recordBorrowRequest struct {
	UserID      int64   `json:"user_id"`
	EquipmentID int64   `json:"equipment_id"`
	Notes       string  `json:"notes"`
	DueDate     *string `json:"due_date"`
}

// returnRequest closes a borrowed record. DueDate is the effective return
// timestamp; Status defaults to "returned".
type returnRequest struct {
	DueDate *string `json:"due_date"`
	Status  string  `json:"status"`
	Notes   *string `json:"notes"`
}
