package http

import (
	"net/http"

	"github.com/DRSN-tech/pricing-backend/internal/usecase"
	"github.com/DRSN-tech/pricing-backend/pkg/logger"
	"github.com/go-chi/chi/v5"
)

type PricingHandler struct {
	viewUsecase    usecase.PricingViewUC
	pricingUsecase usecase.PricingUC
	logger         logger.Logger
}

func NewPricingHandler(viewUsecase usecase.PricingViewUC, pricingUsecase usecase.PricingUC,
	logger logger.Logger) *PricingHandler {
	return &PricingHandler{
		viewUsecase:    viewUsecase,
		pricingUsecase: pricingUsecase,
		logger:         logger,
	}
}

// getCatalogForUser
//
//	@Summary		Каталог с эффективными ценами пользователя
//	@Description	Каждый товар каталога, декорированный активной персональной ценой
//	@Description	пользователя, если она есть; порядок каталога сохраняется
//	@Tags			pricing
//	@Produce		json
//	@Param			userID	path	int	true	"ID пользователя"
//	@Success		200		{array}	PricedProductResponse
//	@Router			/pricing/catalog/{userID} [get]
func (p *PricingHandler) getCatalogForUser(w http.ResponseWriter, r *http.Request) {
	userID, err := parseIDParam(r, "userID")
	if err != nil {
		WriteError(w, err)
		return
	}

	catalog, err := p.viewUsecase.GetCatalogForUser(r.Context(), userID)
	if err != nil {
		p.logger.Warnf("%s", err.Error())
		WriteError(w, err)
		return
	}

	WriteSuccess(w, http.StatusOK, toArrPricedProductResponse(catalog))
}

// getUserPricingSummary
//
//	@Summary	Сводка персональных цен пользователя
//	@Tags		pricing
//	@Produce	json
//	@Param		userID	path		int	true	"ID пользователя"
//	@Success	200		{object}	PricingSummaryResponse
//	@Router		/pricing/summary/{userID} [get]
func (p *PricingHandler) getUserPricingSummary(w http.ResponseWriter, r *http.Request) {
	userID, err := parseIDParam(r, "userID")
	if err != nil {
		WriteError(w, err)
		return
	}

	summary, err := p.pricingUsecase.GetUserPricingSummary(r.Context(), userID)
	if err != nil {
		p.logger.Warnf("%s", err.Error())
		WriteError(w, err)
		return
	}

	WriteSuccess(w, http.StatusOK, PricingSummaryResponse{
		UserID:            summary.UserID,
		HasSpecialPricing: summary.HasSpecialPricing,
		SpecialPrices:     toArrSpecialPriceResponse(summary.SpecialPrices),
	})
}

func registerPricingRoutes(router chi.Router, pricingHandler *PricingHandler) {
	router.Route("/pricing", func(pr chi.Router) {
		pr.Get("/catalog/{userID}", pricingHandler.getCatalogForUser)
		pr.Get("/summary/{userID}", pricingHandler.getUserPricingSummary)
	})
}
