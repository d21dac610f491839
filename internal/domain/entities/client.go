package entities

import "time"

const DefaultHourlyRate = 140.00

// Client is the party a job is billed to. Only the fields the invoice needs
// are tracked here.
type Client struct {
	ID         int64     `json:"id"`
	Name       string    `json:"name"`
	Email      string    `json:"email"`
	Phone      string    `json:"phone"`
	Address    string    `json:"address"`
	HourlyRate float64   `json:"hourly_rate"`
	Notes      string    `json:"notes"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}
