package domain

import "time"

type User struct {
	Id        UserId
	Username  string
	Email     string
	PassHash  string
	Avatar    *string
	CreatedAt time.Time
}
