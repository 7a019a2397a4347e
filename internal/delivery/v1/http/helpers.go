package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/DRSN-tech/pricing-backend/pkg/e"
	"github.com/go-chi/chi/v5"
)

type ErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

func NewErrorResponse(code int, message string) *ErrorResponse {
	return &ErrorResponse{
		Code:    code,
		Message: message,
	}
}

func ToHTTPResponse(err error) (int, string) {
	var validationErr *e.ValidationError
	if errors.As(err, &validationErr) {
		// Отдаём клиенту весь список нарушений, а не только первое
		return http.StatusBadRequest, validationErr.Error()
	}

	switch {
	case errors.Is(err, e.ErrProductNotFound):
		return http.StatusNotFound, e.ErrProductNotFound.Error()
	case errors.Is(err, e.ErrUserNotFound):
		return http.StatusNotFound, e.ErrUserNotFound.Error()
	case errors.Is(err, e.ErrSpecialPriceNotFound):
		return http.StatusNotFound, e.ErrSpecialPriceNotFound.Error()
	case errors.Is(err, e.ErrStatusBadRequest):
		return http.StatusBadRequest, e.ErrStatusBadRequest.Error()
	case errors.Is(err, e.ErrValidationFailed):
		return http.StatusBadRequest, e.ErrValidationFailed.Error()
	case errors.Is(err, e.ErrSpecialPriceExists):
		return http.StatusBadRequest, e.ErrSpecialPriceExists.Error()
	case errors.Is(err, e.ErrPriceNotBelowOriginal):
		return http.StatusBadRequest, e.ErrPriceNotBelowOriginal.Error()
	case errors.Is(err, e.ErrEmailTaken):
		return http.StatusBadRequest, e.ErrEmailTaken.Error()
	case errors.Is(err, e.ErrInvalidPrice):
		return http.StatusBadRequest, e.ErrInvalidPrice.Error()
	case errors.Is(err, e.ErrPricePrecision):
		return http.StatusBadRequest, e.ErrPricePrecision.Error()
	case errors.Is(err, e.ErrMissingFields):
		return http.StatusBadRequest, e.ErrMissingFields.Error()
	default:
		return http.StatusInternalServerError, e.ErrInternalServerError.Error()
	}
}

func WriteError(w http.ResponseWriter, err error) {
	code, msg := ToHTTPResponse(err)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(NewErrorResponse(code, msg))
}

func WriteSuccess(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

// parseIDParam читает положительный int64 из URL-параметра chi.
func parseIDParam(r *http.Request, name string) (int64, error) {
	id, err := strconv.ParseInt(chi.URLParam(r, name), 10, 64)
	if err != nil || id <= 0 {
		return 0, e.ErrStatusBadRequest
	}

	return id, nil
}

// decodeJSONBody декодирует тело запроса в dst, отклоняя неизвестные поля.
func decodeJSONBody(r *http.Request, dst interface{}) error {
	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(dst); err != nil {
		return e.Wrap(err.Error(), e.ErrStatusBadRequest)
	}

	return nil
}

// parseIDsQuery разбирает query-параметр ids вида "1,2,3".
func parseIDsQuery(r *http.Request) ([]int64, error) {
	raw := r.URL.Query()["ids"]
	if len(raw) == 0 {
		return nil, e.ErrMissingFields
	}

	ids := make([]int64, 0, len(raw))
	for _, group := range raw {
		for _, part := range strings.Split(group, ",") {
			id, err := strconv.ParseInt(strings.TrimSpace(part), 10, 64)
			if err != nil || id <= 0 {
				return nil, e.ErrStatusBadRequest
			}
			ids = append(ids, id)
		}
	}

	return ids, nil
}
