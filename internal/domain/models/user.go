package models

// User mirrors the identity collaborator's profile record.
type User struct {
	ID     int64  `json:"id"`
	Name   string `json:"name"`
	Email  string `json:"email"`
	Phone  string `json:"phone"`
	Role   string `json:"role"`
	Status string `json:"status"`
}

// ProfileUpdate carries optional contact overrides supplied at booking time.
type ProfileUpdate struct {
	Name  *string `json:"name"`
	Email *string `json:"email"`
	Phone *string `json:"phone"`
}

func (p ProfileUpdate) Empty() bool {
	return p.Name == nil && p.Email == nil && p.Phone == nil
}
