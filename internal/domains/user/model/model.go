package model

import "hotel/shared/model"

const (
	TableName  = "users"
	EntityName = "user"

	FieldID        = "id"
	FieldEmail     = "email"
	FieldPassword  = "password"
	FieldFirstName = "first_name"
	FieldLastName  = "last_name"
	FieldRole      = "role"

	CacheGetUser  = "user:get"
	CacheListUser = "user:list"
)

// User holds the bcrypt hash in Password; it never leaves the service layer.
type User struct {
	ID        string `db:"id"`
	Email     string `db:"email"`
	Password  string `db:"password"`
	FirstName string `db:"first_name"`
	LastName  string `db:"last_name"`
	Role      string `db:"role"`
	model.Metadata
}

func (User) GetDefaultOrder() string {
	return TableName + ".seq ASC"
}
