package policy

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Mikee100/Uni-Sporting-Equipment/internal/domain"
)

func TestAllowedBorrowLifecycle(t *testing.T) {
	cases := []struct {
		op      Operation
		role    domain.UserRole
		allowed bool
	}{
		{BorrowRequest, domain.RoleStudent, true},
		{BorrowRequest, domain.RoleStaff, false},
		{BorrowRecord, domain.RoleStaff, true},
		{BorrowRecord, domain.RoleAdmin, true},
		{BorrowRecord, domain.RoleStudent, false},
		{BorrowCancel, domain.RoleStudent, true},
		{BorrowCancel, domain.RoleAdmin, false},
		{BorrowApprove, domain.RoleStudent, false},
		{BorrowReject, domain.RoleStaff, true},
		{BorrowReturn, domain.RoleAdmin, true},
		{BorrowReturn, domain.RoleStudent, false},
		{BorrowListOwn, domain.RoleStudent, true},
		{BorrowListOtherUser, domain.RoleStudent, false},
		{PenaltyCreate, domain.RoleStaff, false},
		{PenaltyCreate, domain.RoleAdmin, true},
		{PenaltyListOwn, domain.RoleStudent, true},
		{PenaltyListOtherUser, domain.RoleStaff, true},
		{EquipmentWrite, domain.RoleStudent, false},
		{UserListStudents, domain.RoleStaff, true},
		{UserList, domain.RoleStaff, false},
		{ReportSummary, domain.RoleStaff, false},
		{Operation("unknown"), domain.RoleAdmin, false},
		{BorrowList, domain.UserRole(""), false},
	}

	for _, tc := range cases {
		assert.Equal(t, tc.allowed, Allowed(tc.op, tc.role), "%s as %q", tc.op, tc.role)
	}
}

func TestCheckReturnsForbidden(t *testing.T) {
	err := Check(Caller{UserID: 3, Role: domain.RoleStudent}, BorrowApprove)
	assert.True(t, errors.Is(err, ErrAccessDenied))

	assert.NoError(t, Check(Caller{UserID: 1, Role: domain.RoleStaff}, BorrowApprove))
}

func TestCheckUserScope(t *testing.T) {
	student := Caller{UserID: 3, Role: domain.RoleStudent}
	staff := Caller{UserID: 2, Role: domain.RoleStaff}

	assert.NoError(t, CheckUserScope(student, 3, BorrowListOwn, BorrowListOtherUser))
	assert.ErrorIs(t, CheckUserScope(student, 4, BorrowListOwn, BorrowListOtherUser), ErrAccessDenied)
	assert.NoError(t, CheckUserScope(staff, 4, PenaltyListOwn, PenaltyListOtherUser))
}
