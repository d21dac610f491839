package request

import "invoicing/internal/usecase"

type ClientRequest struct {
	Name       string   `json:"name" binding:"required"`
	Email      string   `json:"email"`
	Phone      string   `json:"phone"`
	Address    string   `json:"address"`
	HourlyRate *float64 `json:"hourly_rate"`
	Notes      string   `json:"notes"`
}

func (r ClientRequest) ToInput() usecase.ClientInput {
	return usecase.ClientInput{
		Name:       r.Name,
		Email:      r.Email,
		Phone:      r.Phone,
		Address:    r.Address,
		HourlyRate: r.HourlyRate,
		Notes:      r.Notes,
	}
}
