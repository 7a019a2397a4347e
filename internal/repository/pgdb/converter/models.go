package converter

import "time"

// ProductModel представляет запись таблицы products в PostgreSQL.
type ProductModel struct {
	ID          int64      `db:"id"`
	Name        string     `db:"name"`
	Description string     `db:"description"`
	Price       int64      `db:"price"`
	CategoryID  int64      `db:"category_id"`
	Stock       int64      `db:"stock"`
	Brand       *string    `db:"brand"`
	SKU         *string    `db:"sku"`
	Tags        []string   `db:"tags"`
	CreatedAt   time.Time  `db:"created_at"`
	UpdatedAt   *time.Time `db:"updated_at"`
	IsArchived  bool       `db:"is_archived"`
}

// CategoryModel представляет запись таблицы categories в PostgreSQL.
type CategoryModel struct {
	ID         int64      `db:"id"`
	Name       string     `db:"name"`
	CreatedAt  time.Time  `db:"created_at"`
	UpdatedAt  *time.Time `db:"updated_at"`
	IsArchived bool       `db:"is_archived"`
}

// UserModel представляет запись таблицы users в PostgreSQL.
type UserModel struct {
	ID        int64     `db:"id"`
	Name      string    `db:"name"`
	Email     string    `db:"email"`
	Role      string    `db:"role"`
	CreatedAt time.Time `db:"created_at"`
	IsDeleted bool      `db:"is_deleted"`
}

// SpecialPriceModel представляет запись таблицы special_prices в PostgreSQL.
type SpecialPriceModel struct {
	ID           int64      `db:"id"`
	UserID       int64      `db:"user_id"`
	UserName     string     `db:"user_name"`
	UserEmail    string     `db:"user_email"`
	ProductID    int64      `db:"product_id"`
	ProductName  string     `db:"product_name"`
	SpecialPrice int64      `db:"special_price"`
	Discount     int64      `db:"discount"`
	IsActive     bool       `db:"is_active"`
	Notes        *string    `db:"notes"`
	CreatedAt    time.Time  `db:"created_at"`
	UpdatedAt    *time.Time `db:"updated_at"`
}

// OutboxEventModel представляет запись таблицы outbox_events в PostgreSQL.
type OutboxEventModel struct {
	ID          int64      `db:"id"`
	EventID     string     `db:"event_id"`
	EventType   string     `db:"event_type"`
	EntityID    int64      `db:"entity_id"`
	Payload     []byte     `db:"payload"`
	Status      string     `db:"status"`
	CreatedAt   time.Time  `db:"created_at"`
	ProcessedAt *time.Time `db:"processed_at"`
}
