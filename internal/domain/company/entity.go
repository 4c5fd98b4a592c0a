package company

import "time"

type Company struct {
	ID        string
	Name      string
	Username  string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// ToResponse converts a Company entity to CompanyResponse
func (c Company) ToResponse() CompanyResponse {
	return CompanyResponse{
		ID:        c.ID,
		Name:      c.Name,
		Username:  c.Username,
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
	}
}
