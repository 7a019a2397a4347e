package domain

import "time"

// SpecialPrice описывает персональную цену: привязку одного пользователя
// к одному товару по сниженной цене.
//
// UserName, UserEmail и ProductName — снимки на момент создания записи.
// Они не синхронизируются с изменениями пользователя или товара: это
// осознанная денормализация, а не забытая связь.
type SpecialPrice struct {
	ID           int64
	UserID       int64
	UserName     string
	UserEmail    string
	ProductID    int64
	ProductName  string
	SpecialPrice int64 // Цена хранится в копейках
	Discount     int64 // Процент скидки, 0..100
	IsActive     bool
	Notes        *string
	CreatedAt    time.Time
	UpdatedAt    *time.Time
}

func NewSpecialPrice(
	userID int64, userName, userEmail string,
	productID int64, productName string,
	specialPrice, discount int64, notes *string,
) *SpecialPrice {
	return &SpecialPrice{
		UserID:       userID,
		UserName:     userName,
		UserEmail:    userEmail,
		ProductID:    productID,
		ProductName:  productName,
		SpecialPrice: specialPrice,
		Discount:     discount,
		IsActive:     true,
		Notes:        notes,
	}
}
