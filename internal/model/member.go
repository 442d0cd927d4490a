package model

import "time"

type Member struct {
	ID         int64     `json:"id"`
	Name       string    `json:"name"`
	BirthDate  string    `json:"birth_date"`
	IsActive   bool      `json:"is_active"`
	LeftDate   *string   `json:"left_date"`
	LeftReason *string   `json:"left_reason"`
	CreatedAt  time.Time `json:"created_at"`
}
