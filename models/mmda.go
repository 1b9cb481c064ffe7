package models

import "time"

// MMDA is a Metropolitan/Municipal/District Assembly, the jurisdictional
// authority owning applications and reviewing staff.
type MMDA struct {
	ID        int       `gorm:"primaryKey;column:id" json:"id"`
	Name      string    `gorm:"column:name" json:"name"`
	Region    string    `gorm:"column:region" json:"region"`
	Type      string    `gorm:"column:type" json:"type"`
	CreatedAt time.Time `gorm:"column:created_at" json:"created_at"`

	Departments []Department `gorm:"foreignKey:MMDAID" json:"departments,omitempty"`
	Committees  []Committee  `gorm:"foreignKey:MMDAID" json:"committees,omitempty"`
}

// TableName specifies the table name for MMDA.
func (MMDA) TableName() string {
	return "mmdas"
}

// Department is an organizational unit within an MMDA.
type Department struct {
	ID        int       `gorm:"primaryKey;column:id" json:"id"`
	MMDAID    int       `gorm:"column:mmda_id;index" json:"mmda_id"`
	Name      string    `gorm:"column:name" json:"name"`
	CreatedAt time.Time `gorm:"column:created_at" json:"created_at"`

	MMDA *MMDA `gorm:"foreignKey:MMDAID" json:"mmda,omitempty"`
}

// TableName specifies the table name for Department.
func (Department) TableName() string {
	return "departments"
}

// DepartmentStaff assigns a user to a department; department heads act
// without committee restrictions inside their department.
type DepartmentStaff struct {
	ID           int       `gorm:"primaryKey;column:id" json:"id"`
	DepartmentID int       `gorm:"column:department_id;index" json:"department_id"`
	UserID       int       `gorm:"column:user_id;index" json:"user_id"`
	IsHead       bool      `gorm:"column:is_head" json:"is_head"`
	CreatedAt    time.Time `gorm:"column:created_at" json:"created_at"`

	Department *Department `gorm:"foreignKey:DepartmentID" json:"department,omitempty"`
	User       *User       `gorm:"foreignKey:UserID" json:"user,omitempty"`
}

// TableName specifies the table name for DepartmentStaff.
func (DepartmentStaff) TableName() string {
	return "department_staff"
}

// Committee is a reviewing body within an MMDA.
type Committee struct {
	ID        int       `gorm:"primaryKey;column:id" json:"id"`
	MMDAID    int       `gorm:"column:mmda_id;index" json:"mmda_id"`
	Name      string    `gorm:"column:name" json:"name"`
	CreatedAt time.Time `gorm:"column:created_at" json:"created_at"`

	MMDA    *MMDA             `gorm:"foreignKey:MMDAID" json:"mmda,omitempty"`
	Members []CommitteeMember `gorm:"foreignKey:CommitteeID" json:"members,omitempty"`
}

// TableName specifies the table name for Committee.
func (Committee) TableName() string {
	return "committees"
}

// CommitteeMember links a user to a committee.
type CommitteeMember struct {
	ID          int       `gorm:"primaryKey;column:id" json:"id"`
	CommitteeID int       `gorm:"column:committee_id;uniqueIndex:uq_committee_user" json:"committee_id"`
	UserID      int       `gorm:"column:user_id;uniqueIndex:uq_committee_user" json:"user_id"`
	CreatedAt   time.Time `gorm:"column:created_at" json:"created_at"`

	Committee *Committee `gorm:"foreignKey:CommitteeID" json:"committee,omitempty"`
	User      *User      `gorm:"foreignKey:UserID" json:"user,omitempty"`
}

// TableName specifies the table name for CommitteeMember.
func (CommitteeMember) TableName() string {
	return "committee_members"
}
