package model

import "time"

type Metadata struct {
	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`
}

func NewMetadata(now time.Time) Metadata {
	return Metadata{
		CreatedAt: now,
		UpdatedAt: now,
	}
}
