package http

import (
	"net/http"

	"github.com/DRSN-tech/pricing-backend/internal/usecase"
	"github.com/DRSN-tech/pricing-backend/pkg/e"
	"github.com/DRSN-tech/pricing-backend/pkg/logger"
	"github.com/DRSN-tech/pricing-backend/pkg/money"
	"github.com/go-chi/chi/v5"
)

type SpecialPriceHandler struct {
	pricingUsecase usecase.PricingUC
	logger         logger.Logger
}

func NewSpecialPriceHandler(pricingUsecase usecase.PricingUC, logger logger.Logger) *SpecialPriceHandler {
	return &SpecialPriceHandler{pricingUsecase: pricingUsecase, logger: logger}
}

// createSpecialPrice
//
//	@Summary		Создание персональной цены
//	@Description	Персональная цена должна быть строго ниже текущей цены товара,
//	@Description	пара (пользователь, товар) уникальна
//	@Tags			special-prices
//	@Accept			json
//	@Produce		json
//	@Param			request	body		CreateSpecialPriceRequest	true	"Персональная цена"
//	@Success		201		{object}	SpecialPriceResponse		"Успешное создание"
//	@Failure		400		{object}	ErrorResponse				"Дубликат, цена не ниже исходной или ошибка валидации"
//	@Failure		404		{object}	ErrorResponse				"Товар не найден"
//	@Router			/special-prices [post]
func (s *SpecialPriceHandler) createSpecialPrice(w http.ResponseWriter, r *http.Request) {
	var body CreateSpecialPriceRequest
	if err := decodeJSONBody(r, &body); err != nil {
		s.logger.Warnf("%d %s: %s", http.StatusBadRequest, e.ErrStatusBadRequest.Error(), err.Error())
		WriteError(w, err)
		return
	}

	priceCents, err := money.ParseToCents(body.SpecialPrice)
	if err != nil {
		s.logger.Warnf("%d %s: %s", http.StatusBadRequest, e.ErrStatusBadRequest.Error(), err.Error())
		WriteError(w, err)
		return
	}

	sp, err := s.pricingUsecase.CreateSpecialPrice(r.Context(), &usecase.CreateSpecialPriceReq{
		UserID:       body.UserID,
		UserName:     body.UserName,
		UserEmail:    body.UserEmail,
		ProductID:    body.ProductID,
		ProductName:  body.ProductName,
		SpecialPrice: priceCents,
		Discount:     body.Discount,
		Notes:        body.Notes,
	})
	if err != nil {
		s.logger.Warnf("%s", err.Error())
		WriteError(w, err)
		return
	}

	WriteSuccess(w, http.StatusCreated, toSpecialPriceResponse(sp))
}

// updateSpecialPrice
//
//	@Summary		Частичное обновление персональной цены
//	@Description	Непереданные поля не меняются; новая цена сверяется с текущей ценой товара
//	@Tags			special-prices
//	@Accept			json
//	@Produce		json
//	@Param			id		path		int							true	"ID персональной цены"
//	@Param			request	body		UpdateSpecialPriceRequest	true	"Изменяемые поля"
//	@Success		200		{object}	SpecialPriceResponse		"Обновлённая запись"
//	@Failure		404		{object}	ErrorResponse				"Запись не найдена"
//	@Router			/special-prices/{id} [patch]
func (s *SpecialPriceHandler) updateSpecialPrice(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r, "id")
	if err != nil {
		WriteError(w, err)
		return
	}

	var body UpdateSpecialPriceRequest
	if err := decodeJSONBody(r, &body); err != nil {
		s.logger.Warnf("%d %s: %s", http.StatusBadRequest, e.ErrStatusBadRequest.Error(), err.Error())
		WriteError(w, err)
		return
	}

	var priceCents *int64
	if body.SpecialPrice != nil {
		cents, err := money.ParseToCents(*body.SpecialPrice)
		if err != nil {
			s.logger.Warnf("%d %s: %s", http.StatusBadRequest, e.ErrStatusBadRequest.Error(), err.Error())
			WriteError(w, err)
			return
		}
		priceCents = &cents
	}

	sp, err := s.pricingUsecase.UpdateSpecialPrice(r.Context(), id, &usecase.UpdateSpecialPriceReq{
		SpecialPrice: priceCents,
		Discount:     body.Discount,
		IsActive:     body.IsActive,
		Notes:        body.Notes,
	})
	if err != nil {
		s.logger.Warnf("%s", err.Error())
		WriteError(w, err)
		return
	}

	WriteSuccess(w, http.StatusOK, toSpecialPriceResponse(sp))
}

// deleteSpecialPrice
//
//	@Summary	Удаление персональной цены
//	@Tags		special-prices
//	@Produce	json
//	@Param		id	path		int				true	"ID персональной цены"
//	@Success	204	"Запись удалена"
//	@Failure	404	{object}	ErrorResponse	"Запись не найдена"
//	@Router		/special-prices/{id} [delete]
func (s *SpecialPriceHandler) deleteSpecialPrice(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r, "id")
	if err != nil {
		WriteError(w, err)
		return
	}

	if err := s.pricingUsecase.DeleteSpecialPrice(r.Context(), id); err != nil {
		s.logger.Warnf("%s", err.Error())
		WriteError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// getSpecialPriceForUserAndProduct
//
//	@Summary	Персональная цена пары пользователь-товар
//	@Tags		special-prices
//	@Produce	json
//	@Param		userID		path		int						true	"ID пользователя"
//	@Param		productID	path		int						true	"ID товара"
//	@Success	200			{object}	SpecialPriceResponse
//	@Failure	404			{object}	ErrorResponse	"Персональной цены нет"
//	@Router		/special-prices/user/{userID}/product/{productID} [get]
func (s *SpecialPriceHandler) getSpecialPriceForUserAndProduct(w http.ResponseWriter, r *http.Request) {
	userID, err := parseIDParam(r, "userID")
	if err != nil {
		WriteError(w, err)
		return
	}

	productID, err := parseIDParam(r, "productID")
	if err != nil {
		WriteError(w, err)
		return
	}

	sp, err := s.pricingUsecase.GetSpecialPriceForUserAndProduct(r.Context(), userID, productID)
	if err != nil {
		s.logger.Warnf("%s", err.Error())
		WriteError(w, err)
		return
	}
	if sp == nil {
		WriteError(w, e.ErrSpecialPriceNotFound)
		return
	}

	WriteSuccess(w, http.StatusOK, toSpecialPriceResponse(sp))
}

// listSpecialPricesForUser
//
//	@Summary	Персональные цены пользователя
//	@Tags		special-prices
//	@Produce	json
//	@Param		userID	path	int		true	"ID пользователя"
//	@Param		active	query	bool	false	"Только активные записи"
//	@Success	200		{array}	SpecialPriceResponse
//	@Router		/special-prices/user/{userID} [get]
func (s *SpecialPriceHandler) listSpecialPricesForUser(w http.ResponseWriter, r *http.Request) {
	userID, err := parseIDParam(r, "userID")
	if err != nil {
		WriteError(w, err)
		return
	}

	if r.URL.Query().Get("active") == "true" {
		list, err := s.pricingUsecase.GetActiveSpecialPricesForUser(r.Context(), userID)
		if err != nil {
			s.logger.Warnf("%s", err.Error())
			WriteError(w, err)
			return
		}
		WriteSuccess(w, http.StatusOK, toArrSpecialPriceResponse(list))
		return
	}

	list, err := s.pricingUsecase.GetSpecialPricesForUser(r.Context(), userID)
	if err != nil {
		s.logger.Warnf("%s", err.Error())
		WriteError(w, err)
		return
	}

	WriteSuccess(w, http.StatusOK, toArrSpecialPriceResponse(list))
}

func registerSpecialPriceRoutes(router chi.Router, spHandler *SpecialPriceHandler) {
	router.Route("/special-prices", func(sp chi.Router) {
		sp.Post("/", spHandler.createSpecialPrice)
		sp.Patch("/{id}", spHandler.updateSpecialPrice)
		sp.Delete("/{id}", spHandler.deleteSpecialPrice)
		sp.Get("/user/{userID}", spHandler.listSpecialPricesForUser)
		sp.Get("/user/{userID}/product/{productID}", spHandler.getSpecialPriceForUserAndProduct)
	})
}
