package domain

import "time"

// Product описывает товар каталога
type Product struct {
	ID          int64
	Name        string
	Description string
	Price       int64 // Цена хранится в копейках
	CategoryID  int64
	Stock       int64
	Brand       *string
	SKU         *string
	Tags        []string
	CreatedAt   time.Time
	UpdatedAt   *time.Time
	IsArchived  bool
}

func NewProduct(name, description string, price int64, categoryID int64, stock int64) *Product {
	return &Product{
		Name:        name,
		Description: description,
		Price:       price,
		CategoryID:  categoryID,
		Stock:       stock,
	}
}
