package services

import (
	"errors"
	"testing"

	"permit-management-api/models"

	"github.com/DATA-DOG/go-sqlmock"
)

func intPtr(v int) *int { return &v }

func TestCanActOn(t *testing.T) {
	staff := &StaffAssignment{
		UserID:       9,
		DepartmentID: 2,
		MMDAID:       1,
		CommitteeIDs: []int{4},
	}

	cases := []struct {
		name string
		app  models.PermitApplication
		want bool
	}{
		{
			name: "same mmda, unrouted application",
			app:  models.PermitApplication{MMDAID: 1},
			want: true,
		},
		{
			name: "different mmda",
			app:  models.PermitApplication{MMDAID: 2},
			want: false,
		},
		{
			name: "routed to own department",
			app:  models.PermitApplication{MMDAID: 1, DepartmentID: intPtr(2)},
			want: true,
		},
		{
			name: "routed to another department",
			app:  models.PermitApplication{MMDAID: 1, DepartmentID: intPtr(3)},
			want: false,
		},
		{
			name: "committee member",
			app:  models.PermitApplication{MMDAID: 1, CommitteeID: intPtr(4)},
			want: true,
		},
		{
			name: "not on the committee",
			app:  models.PermitApplication{MMDAID: 1, CommitteeID: intPtr(5)},
			want: false,
		},
	}
	for _, tc := range cases {
		if got := staff.CanActOn(&tc.app); got != tc.want {
			t.Errorf("%s: CanActOn = %v, want %v", tc.name, got, tc.want)
		}
	}
}

func TestCanActOnDepartmentHeadBypassesCommittee(t *testing.T) {
	head := &StaffAssignment{
		UserID:       3,
		DepartmentID: 2,
		MMDAID:       1,
		IsHead:       true,
	}

	app := models.PermitApplication{MMDAID: 1, CommitteeID: intPtr(7)}
	if !head.CanActOn(&app) {
		t.Fatal("department head should act without committee membership")
	}

	other := models.PermitApplication{MMDAID: 1, DepartmentID: intPtr(5), CommitteeID: intPtr(7)}
	if head.CanActOn(&other) {
		t.Fatal("head status must not cross department routing")
	}
}

func TestStaffForReturnsErrNotStaff(t *testing.T) {
	db, mock := newMockDB(t)

	mock.ExpectQuery("SELECT .* FROM `department_staff`").
		WillReturnRows(sqlmock.NewRows([]string{"id", "department_id", "user_id", "is_head"}))

	service := NewJurisdictionService(db)
	_, err := service.StaffFor(99)
	if !errors.Is(err, ErrNotStaff) {
		t.Fatalf("expected ErrNotStaff, got %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}
