package http

import (
	_ "github.com/DRSN-tech/pricing-backend/docs" // Импорт сгенерированных файлов
	"github.com/DRSN-tech/pricing-backend/internal/usecase"
	"github.com/DRSN-tech/pricing-backend/pkg/logger"
	"github.com/go-chi/chi/v5"
	httpSwagger "github.com/swaggo/http-swagger/v2"
)

type Router struct {
	router *chi.Mux
	logger logger.Logger
}

func NewRouter(router *chi.Mux, logger logger.Logger) *Router {
	return &Router{router: router, logger: logger}
}

func (r *Router) Init(prUC usecase.ProductUC, usUC usecase.UserUC,
	pricingUC usecase.PricingUC, viewUC usecase.PricingViewUC) {
	r.router.Get("/swagger/*", httpSwagger.Handler(
		httpSwagger.URL("http://localhost:8080/swagger/doc.json"), // ссылка на JSON
	))

	r.router.Route("/api/v1", func(v1 chi.Router) {
		registerProductRoutes(v1, NewProductHandler(prUC, r.logger))
		registerUserRoutes(v1, NewUserHandler(usUC, r.logger))
		registerSpecialPriceRoutes(v1, NewSpecialPriceHandler(pricingUC, r.logger))
		registerPricingRoutes(v1, NewPricingHandler(viewUC, pricingUC, r.logger))
	})
}
