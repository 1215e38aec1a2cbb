package entity

import "time"

type Source struct {
	ID        int64     `json:"id" db:"id"`
	Name      string    `json:"name" db:"name"`
	Prefix    string    `json:"prefix" db:"prefix"`
	IsActive  bool      `json:"is_active" db:"is_active"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

const UnknownSourcePrefix = "U"
