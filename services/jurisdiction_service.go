package services

import (
	"errors"
	"permit-management-api/models"

	"gorm.io/gorm"
)

// StaffAssignment resolves who a staff user is within the MMDA hierarchy:
// their department, its MMDA, head status and committee memberships.
type StaffAssignment struct {
	UserID       int
	DepartmentID int
	MMDAID       int
	IsHead       bool
	CommitteeIDs []int
}

// JurisdictionService answers "may this staff member act on this
// application". It is a pure read; failing callers must not write.
type JurisdictionService struct {
	db *gorm.DB
}

func NewJurisdictionService(db *gorm.DB) *JurisdictionService {
	return &JurisdictionService{db: db}
}

// StaffFor loads the staff assignment for a user, or ErrNotStaff.
func (s *JurisdictionService) StaffFor(userID int) (*StaffAssignment, error) {
	var staff models.DepartmentStaff
	err := s.db.Preload("Department").Where("user_id = ?", userID).First(&staff).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotStaff
		}
		return nil, err
	}
	if staff.Department == nil {
		return nil, ErrNotStaff
	}

	var memberships []models.CommitteeMember
	if err := s.db.Where("user_id = ?", userID).Find(&memberships).Error; err != nil {
		return nil, err
	}

	assignment := &StaffAssignment{
		UserID:       userID,
		DepartmentID: staff.DepartmentID,
		MMDAID:       staff.Department.MMDAID,
		IsHead:       staff.IsHead,
	}
	for _, m := range memberships {
		assignment.CommitteeIDs = append(assignment.CommitteeIDs, m.CommitteeID)
	}
	return assignment, nil
}

// CanActOn reports whether the staff member may review or inspect the given
// application: same MMDA, same department (when the application is routed to
// one), and committee membership unless the staff member heads the
// department or the application is under department-level review.
func (a *StaffAssignment) CanActOn(app *models.PermitApplication) bool {
	if app.MMDAID != a.MMDAID {
		return false
	}
	if app.DepartmentID != nil && *app.DepartmentID != a.DepartmentID {
		return false
	}
	if a.IsHead {
		return true
	}
	if app.CommitteeID == nil {
		return true
	}
	for _, id := range a.CommitteeIDs {
		if id == *app.CommitteeID {
			return true
		}
	}
	return false
}
