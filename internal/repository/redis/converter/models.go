package converter

type ProductInfoRedisModel struct {
	ID           int64  `json:"id"`
	Name         string `json:"name"`
	Description  string `json:"description"`
	CategoryName string `json:"category_name"`
	Price        int64  `json:"price"`
	Stock        int64  `json:"stock"`
}
