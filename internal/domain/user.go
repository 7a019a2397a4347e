package domain

import "time"

// User описывает пользователя каталога.
// Удаление мягкое: запись помечается IsDeleted и исчезает из выборок.
type User struct {
	ID        int64
	Name      string
	Email     string
	Role      string
	CreatedAt time.Time
	IsDeleted bool
}

func NewUser(name, email, role string) *User {
	return &User{
		Name:  name,
		Email: email,
		Role:  role,
	}
}
