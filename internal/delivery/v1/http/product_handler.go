package http

import (
	"net/http"
	"strings"

	"github.com/DRSN-tech/pricing-backend/internal/domain"
	"github.com/DRSN-tech/pricing-backend/internal/usecase"
	"github.com/DRSN-tech/pricing-backend/pkg/e"
	"github.com/DRSN-tech/pricing-backend/pkg/logger"
	"github.com/DRSN-tech/pricing-backend/pkg/money"
	"github.com/go-chi/chi/v5"
)

type ProductHandler struct {
	productUsecase usecase.ProductUC
	logger         logger.Logger
}

func NewProductHandler(productUsecase usecase.ProductUC, logger logger.Logger) *ProductHandler {
	return &ProductHandler{productUsecase: productUsecase, logger: logger}
}

// createProduct
//
//	@Summary		Создание товара
//	@Description	Создает новый товар в каталоге, категория создаётся при необходимости
//	@Tags			products
//	@Accept			json
//	@Produce		json
//	@Param			request	body		SaveProductRequest	true	"Товар"
//	@Success		201		{object}	ProductResponse		"Успешное создание"
//	@Failure		400		{object}	ErrorResponse		"Ошибка валидации"
//	@Router			/products [post]
func (p *ProductHandler) createProduct(w http.ResponseWriter, r *http.Request) {
	req, err := p.parseSaveProductRequest(r)
	if err != nil {
		p.logger.Warnf("%d %s: %s", http.StatusBadRequest, e.ErrStatusBadRequest.Error(), err.Error())
		WriteError(w, err)
		return
	}

	product, err := p.productUsecase.CreateProduct(r.Context(), req)
	if err != nil {
		p.logger.Warnf("%s", err.Error())
		WriteError(w, err)
		return
	}

	WriteSuccess(w, http.StatusCreated, toProductResponse(product))
}

// updateProduct
//
//	@Summary	Полное обновление товара
//	@Tags		products
//	@Accept		json
//	@Produce	json
//	@Param		id		path		int					true	"ID товара"
//	@Param		request	body		SaveProductRequest	true	"Товар"
//	@Success	200		{object}	ProductResponse		"Обновлённый товар"
//	@Failure	404		{object}	ErrorResponse		"Товар не найден"
//	@Router		/products/{id} [put]
func (p *ProductHandler) updateProduct(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r, "id")
	if err != nil {
		WriteError(w, err)
		return
	}

	req, err := p.parseSaveProductRequest(r)
	if err != nil {
		p.logger.Warnf("%d %s: %s", http.StatusBadRequest, e.ErrStatusBadRequest.Error(), err.Error())
		WriteError(w, err)
		return
	}

	product, err := p.productUsecase.UpdateProduct(r.Context(), id, req)
	if err != nil {
		p.logger.Warnf("%s", err.Error())
		WriteError(w, err)
		return
	}

	WriteSuccess(w, http.StatusOK, toProductResponse(product))
}

// archiveProduct
//
//	@Summary	Архивирование товара
//	@Tags		products
//	@Produce	json
//	@Param		id	path		int				true	"ID товара"
//	@Success	204	"Товар архивирован"
//	@Failure	404	{object}	ErrorResponse	"Товар не найден"
//	@Router		/products/{id} [delete]
func (p *ProductHandler) archiveProduct(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r, "id")
	if err != nil {
		WriteError(w, err)
		return
	}

	if err := p.productUsecase.ArchiveProduct(r.Context(), id); err != nil {
		p.logger.Warnf("%s", err.Error())
		WriteError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// getProductsInfo
//
//	@Summary	Информация о товарах по ID
//	@Tags		products
//	@Produce	json
//	@Param		ids	query		string				true	"ID товаров через запятую"
//	@Success	200	{object}	GetProductsResponse	"Найденные товары"
//	@Router		/products/info [get]
func (p *ProductHandler) getProductsInfo(w http.ResponseWriter, r *http.Request) {
	ids, err := parseIDsQuery(r)
	if err != nil {
		WriteError(w, err)
		return
	}

	res, err := p.productUsecase.GetProductsInfo(r.Context(), usecase.NewGetProductsReq(ids))
	if err != nil {
		p.logger.Warnf("%s", err.Error())
		WriteError(w, err)
		return
	}

	products := make([]ProductInfoResponse, 0, len(res.Products))
	for _, info := range res.Products {
		products = append(products, toProductInfoResponse(info))
	}

	WriteSuccess(w, http.StatusOK, GetProductsResponse{
		Products:         products,
		NotFoundProducts: res.NotFoundProducts,
	})
}

// getProduct
//
//	@Summary	Товар по ID
//	@Tags		products
//	@Produce	json
//	@Param		id	path		int					true	"ID товара"
//	@Success	200	{object}	ProductInfoResponse	"Найденный товар"
//	@Failure	404	{object}	ErrorResponse		"Товар не найден"
//	@Router		/products/{id} [get]
func (p *ProductHandler) getProduct(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r, "id")
	if err != nil {
		WriteError(w, err)
		return
	}

	res, err := p.productUsecase.GetProductsInfo(r.Context(), usecase.NewGetProductsReq([]int64{id}))
	if err != nil {
		p.logger.Warnf("%s", err.Error())
		WriteError(w, err)
		return
	}
	if len(res.Products) == 0 {
		WriteError(w, e.ErrProductNotFound)
		return
	}

	WriteSuccess(w, http.StatusOK, toProductInfoResponse(res.Products[0]))
}

// listProducts
//
//	@Summary	Список товаров
//	@Tags		products
//	@Produce	json
//	@Param		category	query		string	false	"Фильтр по категории"
//	@Param		search		query		string	false	"Поиск по подстроке названия"
//	@Success	200			{array}		ProductResponse
//	@Router		/products [get]
func (p *ProductHandler) listProducts(w http.ResponseWriter, r *http.Request) {
	category := strings.TrimSpace(r.URL.Query().Get("category"))
	search := strings.TrimSpace(r.URL.Query().Get("search"))

	var list []domain.Product
	var err error

	switch {
	case category != "":
		list, err = p.productUsecase.ListProductsByCategory(r.Context(), category)
	case search != "":
		list, err = p.productUsecase.SearchProducts(r.Context(), search)
	default:
		list, err = p.productUsecase.ListProducts(r.Context())
	}
	if err != nil {
		p.logger.Warnf("%s", err.Error())
		WriteError(w, err)
		return
	}

	WriteSuccess(w, http.StatusOK, toArrProductResponse(list))
}

func (p *ProductHandler) parseSaveProductRequest(r *http.Request) (*usecase.SaveProductReq, error) {
	var body SaveProductRequest
	if err := decodeJSONBody(r, &body); err != nil {
		return nil, err
	}

	if body.Name == "" || body.Category == "" || body.Price == "" {
		return nil, e.ErrMissingFields
	}

	priceCents, err := money.ParseToCents(body.Price)
	if err != nil {
		return nil, err
	}

	return usecase.NewSaveProductReq(
		body.Name, body.Description, body.Category,
		priceCents, body.Stock, body.Brand, body.SKU, body.Tags,
	), nil
}

func registerProductRoutes(router chi.Router, prHandler *ProductHandler) {
	router.Route("/products", func(pr chi.Router) {
		pr.Post("/", prHandler.createProduct)
		pr.Get("/", prHandler.listProducts)
		pr.Get("/info", prHandler.getProductsInfo)
		pr.Get("/{id}", prHandler.getProduct)
		pr.Put("/{id}", prHandler.updateProduct)
		pr.Delete("/{id}", prHandler.archiveProduct)
	})
}
