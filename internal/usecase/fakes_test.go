package usecase

import (
	"context"
	"strings"
	"time"

	"github.com/DRSN-tech/pricing-backend/internal/domain"
	"github.com/DRSN-tech/pricing-backend/pkg/e"
	"github.com/DRSN-tech/pricing-backend/pkg/logger"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// Ручные in-memory фейки репозиториев: mock-фреймворк здесь не нужен,
// состояние хранилищ проверяется напрямую.

type fakeTx struct{}

func (t *fakeTx) Begin(ctx context.Context) (pgx.Tx, error) { return t, nil }
func (t *fakeTx) Commit(ctx context.Context) error          { return nil }
func (t *fakeTx) Rollback(ctx context.Context) error        { return nil }
func (t *fakeTx) CopyFrom(ctx context.Context, tableName pgx.Identifier, columnNames []string, rowSrc pgx.CopyFromSource) (int64, error) {
	return 0, nil
}
func (t *fakeTx) SendBatch(ctx context.Context, b *pgx.Batch) pgx.BatchResults { return nil }
func (t *fakeTx) LargeObjects() pgx.LargeObjects                               { return pgx.LargeObjects{} }
func (t *fakeTx) Prepare(ctx context.Context, name, sql string) (*pgconn.StatementDescription, error) {
	return nil, nil
}
func (t *fakeTx) Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error) {
	return pgconn.CommandTag{}, nil
}
func (t *fakeTx) Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error) {
	return nil, nil
}
func (t *fakeTx) QueryRow(ctx context.Context, sql string, args ...any) pgx.Row { return nil }
func (t *fakeTx) Conn() *pgx.Conn                                               { return nil }

// fakeDB удовлетворяет transaction.Transactional драйвера pgxv5.
type fakeDB struct{}

func (f *fakeDB) Begin(ctx context.Context) (pgx.Tx, error) { return &fakeTx{}, nil }
func (f *fakeDB) BeginTx(ctx context.Context, txOptions pgx.TxOptions) (pgx.Tx, error) {
	return &fakeTx{}, nil
}

type fakeProductRepo struct {
	products []domain.Product
}

func (f *fakeProductRepo) add(p domain.Product) *fakeProductRepo {
	f.products = append(f.products, p)
	return f
}

func (f *fakeProductRepo) Create(ctx context.Context, product *domain.Product) (*domain.Product, error) {
	product.ID = int64(len(f.products) + 1)
	product.CreatedAt = time.Now()
	f.products = append(f.products, *product)
	return product, nil
}

func (f *fakeProductRepo) Update(ctx context.Context, product *domain.Product) (*domain.Product, error) {
	for i := range f.products {
		if f.products[i].ID == product.ID {
			f.products[i] = *product
			return product, nil
		}
	}
	return nil, nil
}

func (f *fakeProductRepo) Archive(ctx context.Context, id int64) (bool, error) {
	for i := range f.products {
		if f.products[i].ID == id {
			f.products[i].IsArchived = true
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeProductRepo) FindByID(ctx context.Context, id int64) (*domain.Product, error) {
	for i := range f.products {
		if f.products[i].ID == id {
			p := f.products[i]
			return &p, nil
		}
	}
	return nil, nil
}

func (f *fakeProductRepo) FindAll(ctx context.Context) ([]domain.Product, error) {
	return append([]domain.Product(nil), f.products...), nil
}

func (f *fakeProductRepo) FindByCategory(ctx context.Context, categoryName string) ([]domain.Product, error) {
	return f.products, nil
}

func (f *fakeProductRepo) Search(ctx context.Context, substring string) ([]domain.Product, error) {
	var result []domain.Product
	for _, p := range f.products {
		if strings.Contains(p.Name, substring) {
			result = append(result, p)
		}
	}
	return result, nil
}

func (f *fakeProductRepo) GetProductsInfo(ctx context.Context, ids []int64) ([]ProductInfo, error) {
	var result []ProductInfo
	for _, id := range ids {
		for _, p := range f.products {
			if p.ID == id {
				result = append(result, NewProductInfo(p.ID, p.Name, p.Description, "", p.Price, p.Stock))
			}
		}
	}
	return result, nil
}

type fakeSpecialPriceRepo struct {
	prices []domain.SpecialPrice
	nextID int64
}

func (f *fakeSpecialPriceRepo) add(sp domain.SpecialPrice) *fakeSpecialPriceRepo {
	if sp.ID > f.nextID {
		f.nextID = sp.ID
	}
	f.prices = append(f.prices, sp)
	return f
}

func (f *fakeSpecialPriceRepo) Create(ctx context.Context, sp *domain.SpecialPrice) (*domain.SpecialPrice, error) {
	// Уникальный индекс (user_id, product_id): фейк воспроизводит перевод
	// нарушения уникальности в доменную ошибку, как делает pg-репозиторий.
	for _, existing := range f.prices {
		if existing.UserID == sp.UserID && existing.ProductID == sp.ProductID {
			return nil, e.ErrSpecialPriceExists
		}
	}

	f.nextID++
	sp.ID = f.nextID
	sp.CreatedAt = time.Now()
	f.prices = append(f.prices, *sp)
	return sp, nil
}

func (f *fakeSpecialPriceRepo) Update(ctx context.Context, id int64, patch *SpecialPricePatch) (*domain.SpecialPrice, error) {
	for i := range f.prices {
		if f.prices[i].ID != id {
			continue
		}
		if patch.SpecialPrice != nil {
			f.prices[i].SpecialPrice = *patch.SpecialPrice
		}
		if patch.Discount != nil {
			f.prices[i].Discount = *patch.Discount
		}
		if patch.IsActive != nil {
			f.prices[i].IsActive = *patch.IsActive
		}
		if patch.Notes != nil {
			f.prices[i].Notes = patch.Notes
		}
		now := time.Now()
		f.prices[i].UpdatedAt = &now
		sp := f.prices[i]
		return &sp, nil
	}
	return nil, nil
}

func (f *fakeSpecialPriceRepo) Delete(ctx context.Context, id int64) (bool, error) {
	for i := range f.prices {
		if f.prices[i].ID == id {
			f.prices = append(f.prices[:i], f.prices[i+1:]...)
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeSpecialPriceRepo) FindByID(ctx context.Context, id int64) (*domain.SpecialPrice, error) {
	for i := range f.prices {
		if f.prices[i].ID == id {
			sp := f.prices[i]
			return &sp, nil
		}
	}
	return nil, nil
}

func (f *fakeSpecialPriceRepo) FindByUserAndProduct(ctx context.Context, userID, productID int64) (*domain.SpecialPrice, error) {
	for i := range f.prices {
		if f.prices[i].UserID == userID && f.prices[i].ProductID == productID {
			sp := f.prices[i]
			return &sp, nil
		}
	}
	return nil, nil
}

func (f *fakeSpecialPriceRepo) FindByUserID(ctx context.Context, userID int64) ([]domain.SpecialPrice, error) {
	var result []domain.SpecialPrice
	for _, sp := range f.prices {
		if sp.UserID == userID {
			result = append(result, sp)
		}
	}
	return result, nil
}

func (f *fakeSpecialPriceRepo) FindActiveByUserID(ctx context.Context, userID int64) ([]domain.SpecialPrice, error) {
	var result []domain.SpecialPrice
	for _, sp := range f.prices {
		if sp.UserID == userID && sp.IsActive {
			result = append(result, sp)
		}
	}
	return result, nil
}

type fakeOutboxRepo struct {
	events []OutboxEvent
}

func (f *fakeOutboxRepo) Create(ctx context.Context, event *OutboxEvent) (*OutboxEvent, error) {
	event.ID = int64(len(f.events) + 1)
	f.events = append(f.events, *event)
	return event, nil
}

func (f *fakeOutboxRepo) GetAndMarkAsProcessing(ctx context.Context, limit int) ([]*OutboxEvent, error) {
	return nil, nil
}

func (f *fakeOutboxRepo) MarkAsProcessed(ctx context.Context, id int64) error {
	return nil
}

type fakeCacheRepo struct {
	products map[int64]ProductInfo
}

func newFakeCacheRepo() *fakeCacheRepo {
	return &fakeCacheRepo{products: make(map[int64]ProductInfo)}
}

func (f *fakeCacheRepo) GetProducts(ctx context.Context, ids []int64) (map[int64]ProductInfo, error) {
	result := make(map[int64]ProductInfo)
	for _, id := range ids {
		if p, ok := f.products[id]; ok {
			result[id] = p
		}
	}
	return result, nil
}

func (f *fakeCacheRepo) SetProducts(ctx context.Context, products []ProductInfo) error {
	for _, p := range products {
		f.products[p.ID] = p
	}
	return nil
}

func (f *fakeCacheRepo) DeleteProducts(ctx context.Context, ids []int64) error {
	for _, id := range ids {
		delete(f.products, id)
	}
	return nil
}

type fakeUserRepo struct {
	users []domain.User
}

func (f *fakeUserRepo) add(u domain.User) *fakeUserRepo {
	f.users = append(f.users, u)
	return f
}

func (f *fakeUserRepo) Create(ctx context.Context, user *domain.User) (*domain.User, error) {
	user.ID = int64(len(f.users) + 1)
	user.CreatedAt = time.Now()
	f.users = append(f.users, *user)
	return user, nil
}

func (f *fakeUserRepo) Update(ctx context.Context, id int64, patch *UserPatch) (*domain.User, error) {
	for i := range f.users {
		if f.users[i].ID != id || f.users[i].IsDeleted {
			continue
		}
		if patch.Name != nil {
			f.users[i].Name = *patch.Name
		}
		if patch.Email != nil {
			f.users[i].Email = *patch.Email
		}
		if patch.Role != nil {
			f.users[i].Role = *patch.Role
		}
		u := f.users[i]
		return &u, nil
	}
	return nil, nil
}

func (f *fakeUserRepo) SoftDelete(ctx context.Context, id int64) (bool, error) {
	for i := range f.users {
		if f.users[i].ID == id && !f.users[i].IsDeleted {
			f.users[i].IsDeleted = true
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeUserRepo) FindByID(ctx context.Context, id int64) (*domain.User, error) {
	for i := range f.users {
		if f.users[i].ID == id && !f.users[i].IsDeleted {
			u := f.users[i]
			return &u, nil
		}
	}
	return nil, nil
}

func (f *fakeUserRepo) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	for i := range f.users {
		if f.users[i].Email == email && !f.users[i].IsDeleted {
			u := f.users[i]
			return &u, nil
		}
	}
	return nil, nil
}

func (f *fakeUserRepo) FindAll(ctx context.Context) ([]domain.User, error) {
	var result []domain.User
	for _, u := range f.users {
		if !u.IsDeleted {
			result = append(result, u)
		}
	}
	return result, nil
}

func testLogger() logger.Logger {
	return logger.NewSlogLogger()
}
