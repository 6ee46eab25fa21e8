package domain

import "time"

type User struct {
	ID           int64
	Username     string
	PasswordHash string
	Email        string
	EthAddress   string
	IsActive     bool

	CreatedAt time.Time
}
