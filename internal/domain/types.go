package domain

// ID is used across domain entities.
type ID int64

// Role values recognized by the engine.
const (
	RoleStudent = "student"
	RoleTeacher = "teacher"
	RoleAdmin   = "admin"
)

// RequestContext carries the authenticated caller.
type RequestContext struct {
	UserID int64  `json:"userId"`
	Role   string `json:"role"`
}

func (rc RequestContext) IsAdmin() bool   { return rc.Role == RoleAdmin }
func (rc RequestContext) IsTeacher() bool { return rc.Role == RoleTeacher }
func (rc RequestContext) IsStudent() bool { return rc.Role == RoleStudent }
