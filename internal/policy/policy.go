// Package policy holds the single table deciding which roles may run which
// operation. Handlers check it through middleware.Authorize and the services
// check it again with Check.
package policy

import (
	"github.com/Mikee100/Uni-Sporting-Equipment/internal/domain"
	"github.com/Mikee100/Uni-Sporting-Equipment/internal/pkg/apperr"
)

type Operation string

const (
	BorrowRequest       Operation = "borrow.request"
	BorrowRecord        Operation = "borrow.record"
	BorrowCancel        Operation = "borrow.cancel"
	BorrowApprove       Operation = "borrow.approve"
	BorrowReject        Operation = "borrow.reject"
	BorrowReturn        Operation = "borrow.return"
	BorrowList          Operation = "borrow.list"
	BorrowListPending   Operation = "borrow.list_pending"
	BorrowGet           Operation = "borrow.get"
	BorrowListOwn       Operation = "borrow.list_own"
	BorrowListOtherUser Operation = "borrow.list_other_user"

	PenaltyList          Operation = "penalty.list"
	PenaltyGet           Operation = "penalty.get"
	PenaltyCreate        Operation = "penalty.create"
	PenaltyUpdate        Operation = "penalty.update"
	PenaltyDelete        Operation = "penalty.delete"
	PenaltyListOwn       Operation = "penalty.list_own"
	PenaltyListOtherUser Operation = "penalty.list_other_user"

	EquipmentRead  Operation = "equipment.read"
	EquipmentWrite Operation = "equipment.write"

	UserList         Operation = "user.list"
	UserListStudents Operation = "user.list_students"
	UserGet          Operation = "user.get"
	UserWrite        Operation = "user.write"

	ReportSummary      Operation = "report.summary"
	ReportStaffSummary Operation = "report.staff_summary"
)

var (
	adminOnly  = roles(domain.RoleAdmin)
	staffRoles = roles(domain.RoleAdmin, domain.RoleStaff)
	everyone   = roles(domain.RoleAdmin, domain.RoleStaff, domain.RoleStudent)
)

var table = map[Operation]map[domain.UserRole]bool{
	BorrowRequest:       roles(domain.RoleStudent),
	BorrowRecord:        staffRoles,
	BorrowCancel:        roles(domain.RoleStudent),
	BorrowApprove:       staffRoles,
	BorrowReject:        staffRoles,
	BorrowReturn:        staffRoles,
	BorrowList:          staffRoles,
	BorrowListPending:   staffRoles,
	BorrowGet:           staffRoles,
	BorrowListOwn:       everyone,
	BorrowListOtherUser: staffRoles,

	PenaltyList:          adminOnly,
	PenaltyGet:           adminOnly,
	PenaltyCreate:        adminOnly,
	PenaltyUpdate:        adminOnly,
	PenaltyDelete:        adminOnly,
	PenaltyListOwn:       everyone,
	PenaltyListOtherUser: staffRoles,

	EquipmentRead:  everyone,
	EquipmentWrite: staffRoles,

	UserList:         adminOnly,
	UserListStudents: staffRoles,
	UserGet:          adminOnly,
	UserWrite:        adminOnly,

	ReportSummary:      adminOnly,
	ReportStaffSummary: staffRoles,
}

// ErrAccessDenied is returned for every denied (operation, role) pair.
var ErrAccessDenied = apperr.Forbidden("ACCESS_DENIED", "Access denied.")

// Caller is the authenticated identity an operation runs on behalf of.
type Caller struct {
	UserID int64
	Role   domain.UserRole
}

func (c Caller) Authenticated() bool {
	return c.UserID > 0 && c.Role != ""
}

// Allowed reports whether role may perform op. Unknown operations are denied.
func Allowed(op Operation, role domain.UserRole) bool {
	return table[op][role]
}

func Check(caller Caller, op Operation) error {
	if !Allowed(op, caller.Role) {
		return ErrAccessDenied
	}
	return nil
}

// CheckUserScope authorizes reading targetUserID's records: callers may always
// read their own, anything else needs the "other user" operation.
func CheckUserScope(caller Caller, targetUserID int64, own, other Operation) error {
	if targetUserID == caller.UserID {
		return Check(caller, own)
	}
	return Check(caller, other)
}

func roles(rs ...domain.UserRole) map[domain.UserRole]bool {
	m := make(map[domain.UserRole]bool, len(rs))
	for _, r := range rs {
		m[r] = true
	}
	return m
}
