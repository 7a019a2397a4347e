package usecase

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"github.com/DRSN-tech/pricing-backend/internal/domain"
	"github.com/DRSN-tech/pricing-backend/pkg/e"
	"github.com/DRSN-tech/pricing-backend/pkg/logger"
	"github.com/DRSN-tech/pricing-backend/pkg/money"
	transaction "github.com/avito-tech/go-transaction-manager/drivers/pgxv5/v2"
	"github.com/jackc/pgx/v5"
)

var emailRe = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// PricingEngine реализует бизнес-логику персональных цен: создание,
// частичное обновление, удаление и выборки. Все инварианты персональной
// цены живут здесь.
type PricingEngine struct {
	specialPriceRepo SpecialPriceRepository
	productRepo      ProductRepository
	outboxRepo       OutboxRepository
	dbPool           transaction.Transactional
	logger           logger.Logger
}

func NewPricingEngine(
	specialPriceRepo SpecialPriceRepository,
	productRepo ProductRepository,
	outboxRepo OutboxRepository,
	dbPool transaction.Transactional,
	logger logger.Logger,
) *PricingEngine {
	return &PricingEngine{
		specialPriceRepo: specialPriceRepo,
		productRepo:      productRepo,
		outboxRepo:       outboxRepo,
		dbPool:           dbPool,
		logger:           logger,
	}
}

// specialPriceEventPayload — полезная нагрузка событий персональных цен.
type specialPriceEventPayload struct {
	SpecialPriceID int64  `json:"special_price_id"`
	UserID         int64  `json:"user_id"`
	ProductID      int64  `json:"product_id"`
	SpecialPrice   string `json:"special_price"`
	Discount       int64  `json:"discount"`
	IsActive       bool   `json:"is_active"`
}

func newSpecialPriceEventPayload(sp *domain.SpecialPrice) specialPriceEventPayload {
	return specialPriceEventPayload{
		SpecialPriceID: sp.ID,
		UserID:         sp.UserID,
		ProductID:      sp.ProductID,
		SpecialPrice:   money.FormatCents(sp.SpecialPrice),
		Discount:       sp.Discount,
		IsActive:       sp.IsActive,
	}
}

// CreateSpecialPrice создаёт персональную цену для пары (пользователь, товар).
//
// Порядок проверок фиксирован: сначала полевая валидация (все нарушения
// собираются разом), затем существование товара, затем отсутствие дубликата,
// затем сравнение с текущей ценой товара. Сравнивать цену раньше проверки
// товара нельзя — без товара сравнение бессмысленно.
//
// Гонку двух одновременных созданий закрывает уникальный индекс
// (user_id, product_id) в хранилище: второй INSERT падает, и репозиторий
// переводит нарушение уникальности в ту же ErrSpecialPriceExists.
func (p *PricingEngine) CreateSpecialPrice(ctx context.Context, req *CreateSpecialPriceReq) (*domain.SpecialPrice, error) {
	const op = "PricingEngine.CreateSpecialPrice"

	var err error
	if err = validateCreateSpecialPrice(req); err != nil {
		return nil, e.Wrap(op, err)
	}

	product, err := p.productRepo.FindByID(ctx, req.ProductID)
	if err != nil {
		return nil, e.Wrap(op, err)
	}
	if product == nil {
		return nil, e.Wrap(op, e.ErrProductNotFound)
	}

	existing, err := p.specialPriceRepo.FindByUserAndProduct(ctx, req.UserID, req.ProductID)
	if err != nil {
		return nil, e.Wrap(op, err)
	}
	if existing != nil {
		return nil, e.Wrap(op, e.ErrSpecialPriceExists)
	}

	if req.SpecialPrice >= product.Price {
		return nil, e.Wrap(op, e.ErrPriceNotBelowOriginal)
	}

	ctx, tx, err := transaction.NewTransaction(ctx, pgx.TxOptions{}, p.dbPool)
	if err != nil {
		return nil, e.Wrap(op, err)
	}
	defer func() {
		if err != nil && tx.IsActive() {
			tx.Rollback(ctx)
		}
	}()
	ctx = context.WithValue(ctx, "tx", tx.Transaction())

	sp := domain.NewSpecialPrice(
		req.UserID, req.UserName, req.UserEmail,
		req.ProductID, req.ProductName,
		req.SpecialPrice, req.Discount, req.Notes,
	)

	created, err := p.specialPriceRepo.Create(ctx, sp)
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	if err = p.writeEvent(ctx, SpecialPriceCreated, created); err != nil {
		return nil, e.Wrap(op, err)
	}

	if err = tx.Commit(ctx); err != nil {
		return nil, e.Wrap(op, err)
	}

	return created, nil
}

// UpdateSpecialPrice частично обновляет персональную цену: nil-поля запроса
// не трогаются, обновление применяется целиком или не применяется вовсе.
// Если меняется SpecialPrice, цена товара перечитывается из хранилища —
// сравнение всегда идёт с текущей ценой, а не с ценой на момент создания.
func (p *PricingEngine) UpdateSpecialPrice(ctx context.Context, id int64, req *UpdateSpecialPriceReq) (*domain.SpecialPrice, error) {
	const op = "PricingEngine.UpdateSpecialPrice"

	var err error
	if err = validateUpdateSpecialPrice(req); err != nil {
		return nil, e.Wrap(op, err)
	}

	current, err := p.specialPriceRepo.FindByID(ctx, id)
	if err != nil {
		return nil, e.Wrap(op, err)
	}
	if current == nil {
		return nil, e.Wrap(op, e.ErrSpecialPriceNotFound)
	}

	if req.SpecialPrice != nil {
		product, err := p.productRepo.FindByID(ctx, current.ProductID)
		if err != nil {
			return nil, e.Wrap(op, err)
		}
		if product == nil {
			return nil, e.Wrap(op, e.ErrProductNotFound)
		}
		if *req.SpecialPrice >= product.Price {
			return nil, e.Wrap(op, e.ErrPriceNotBelowOriginal)
		}
	}

	ctx, tx, err := transaction.NewTransaction(ctx, pgx.TxOptions{}, p.dbPool)
	if err != nil {
		return nil, e.Wrap(op, err)
	}
	defer func() {
		if err != nil && tx.IsActive() {
			tx.Rollback(ctx)
		}
	}()
	ctx = context.WithValue(ctx, "tx", tx.Transaction())

	patch := &SpecialPricePatch{
		SpecialPrice: req.SpecialPrice,
		Discount:     req.Discount,
		IsActive:     req.IsActive,
		Notes:        req.Notes,
	}

	updated, err := p.specialPriceRepo.Update(ctx, id, patch)
	if err != nil {
		return nil, e.Wrap(op, err)
	}
	if updated == nil {
		err = e.ErrSpecialPriceNotFound
		return nil, e.Wrap(op, err)
	}

	if err = p.writeEvent(ctx, SpecialPriceUpdated, updated); err != nil {
		return nil, e.Wrap(op, err)
	}

	if err = tx.Commit(ctx); err != nil {
		return nil, e.Wrap(op, err)
	}

	return updated, nil
}

// DeleteSpecialPrice удаляет персональную цену безвозвратно.
// В отличие от пользователей, мягкого удаления у персональных цен нет.
func (p *PricingEngine) DeleteSpecialPrice(ctx context.Context, id int64) error {
	const op = "PricingEngine.DeleteSpecialPrice"

	current, err := p.specialPriceRepo.FindByID(ctx, id)
	if err != nil {
		return e.Wrap(op, err)
	}
	if current == nil {
		return e.Wrap(op, e.ErrSpecialPriceNotFound)
	}

	ctx, tx, err := transaction.NewTransaction(ctx, pgx.TxOptions{}, p.dbPool)
	if err != nil {
		return e.Wrap(op, err)
	}
	defer func() {
		if err != nil && tx.IsActive() {
			tx.Rollback(ctx)
		}
	}()
	ctx = context.WithValue(ctx, "tx", tx.Transaction())

	deleted, err := p.specialPriceRepo.Delete(ctx, id)
	if err != nil {
		return e.Wrap(op, err)
	}
	if !deleted {
		err = e.ErrSpecialPriceNotFound
		return e.Wrap(op, err)
	}

	if err = p.writeEvent(ctx, SpecialPriceDeleted, current); err != nil {
		return e.Wrap(op, err)
	}

	if err = tx.Commit(ctx); err != nil {
		return e.Wrap(op, err)
	}

	return nil
}

// GetSpecialPriceForUserAndProduct возвращает текущую персональную цену пары
// или (nil, nil), если её нет — отсутствие записи здесь не ошибка.
func (p *PricingEngine) GetSpecialPriceForUserAndProduct(ctx context.Context, userID, productID int64) (*domain.SpecialPrice, error) {
	const op = "PricingEngine.GetSpecialPriceForUserAndProduct"

	sp, err := p.specialPriceRepo.FindByUserAndProduct(ctx, userID, productID)
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	return sp, nil
}

// GetSpecialPricesForUser возвращает все персональные цены пользователя,
// включая неактивные.
func (p *PricingEngine) GetSpecialPricesForUser(ctx context.Context, userID int64) ([]domain.SpecialPrice, error) {
	const op = "PricingEngine.GetSpecialPricesForUser"

	prices, err := p.specialPriceRepo.FindByUserID(ctx, userID)
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	return prices, nil
}

// GetActiveSpecialPricesForUser возвращает только активные персональные цены —
// именно этот набор использует проектор эффективного прайса.
func (p *PricingEngine) GetActiveSpecialPricesForUser(ctx context.Context, userID int64) ([]domain.SpecialPrice, error) {
	const op = "PricingEngine.GetActiveSpecialPricesForUser"

	prices, err := p.specialPriceRepo.FindActiveByUserID(ctx, userID)
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	return prices, nil
}

// GetUserPricingSummary возвращает сводку персональных цен пользователя.
func (p *PricingEngine) GetUserPricingSummary(ctx context.Context, userID int64) (*PricingSummaryRes, error) {
	const op = "PricingEngine.GetUserPricingSummary"

	prices, err := p.specialPriceRepo.FindActiveByUserID(ctx, userID)
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	return NewPricingSummaryRes(userID, prices), nil
}

// writeEvent пишет outbox-событие в текущей транзакции.
func (p *PricingEngine) writeEvent(ctx context.Context, eventType OutboxEventType, sp *domain.SpecialPrice) error {
	event, err := NewOutboxEvent(eventType, sp.ID, newSpecialPriceEventPayload(sp))
	if err != nil {
		return err
	}

	_, err = p.outboxRepo.Create(ctx, event)
	return err
}

// validateCreateSpecialPrice собирает все нарушения полей запроса,
// не останавливаясь на первом.
func validateCreateSpecialPrice(req *CreateSpecialPriceReq) error {
	var violations []string

	if req.UserID <= 0 {
		violations = append(violations, "user id is required")
	}
	if strings.TrimSpace(req.UserName) == "" {
		violations = append(violations, "user name is required")
	}
	if !emailRe.MatchString(req.UserEmail) {
		violations = append(violations, "user email is invalid")
	}
	if req.ProductID <= 0 {
		violations = append(violations, "product id is required")
	}
	if strings.TrimSpace(req.ProductName) == "" {
		violations = append(violations, "product name is required")
	}
	if req.SpecialPrice <= 0 {
		violations = append(violations, "special price must be positive")
	}
	if req.Discount < 0 || req.Discount > 100 {
		violations = append(violations, "discount must be between 0 and 100")
	}

	if len(violations) > 0 {
		return e.NewValidationError(violations)
	}

	return nil
}

// validateUpdateSpecialPrice проверяет диапазоны только переданных полей.
func validateUpdateSpecialPrice(req *UpdateSpecialPriceReq) error {
	var violations []string

	if req.SpecialPrice == nil && req.Discount == nil && req.IsActive == nil && req.Notes == nil {
		violations = append(violations, "no fields to update")
	}
	if req.SpecialPrice != nil && *req.SpecialPrice <= 0 {
		violations = append(violations, "special price must be positive")
	}
	if req.Discount != nil && (*req.Discount < 0 || *req.Discount > 100) {
		violations = append(violations, fmt.Sprintf("discount must be between 0 and 100, got %d", *req.Discount))
	}

	if len(violations) > 0 {
		return e.NewValidationError(violations)
	}

	return nil
}
