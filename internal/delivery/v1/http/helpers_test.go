package http

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/DRSN-tech/pricing-backend/pkg/e"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToHTTPResponse(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		wantCode int
		wantMsg  string
	}{
		{
			name:     "product not found",
			err:      e.Wrap("op", e.ErrProductNotFound),
			wantCode: http.StatusNotFound,
			wantMsg:  e.ErrProductNotFound.Error(),
		},
		{
			name:     "user not found",
			err:      e.ErrUserNotFound,
			wantCode: http.StatusNotFound,
			wantMsg:  e.ErrUserNotFound.Error(),
		},
		{
			name:     "special price not found",
			err:      e.Wrap("op", e.ErrSpecialPriceNotFound),
			wantCode: http.StatusNotFound,
			wantMsg:  e.ErrSpecialPriceNotFound.Error(),
		},
		{
			name:     "duplicate pair",
			err:      e.Wrap("op", e.ErrSpecialPriceExists),
			wantCode: http.StatusBadRequest,
			wantMsg:  e.ErrSpecialPriceExists.Error(),
		},
		{
			name:     "price not below original",
			err:      e.Wrap("op", e.ErrPriceNotBelowOriginal),
			wantCode: http.StatusBadRequest,
			wantMsg:  e.ErrPriceNotBelowOriginal.Error(),
		},
		{
			name:     "email taken",
			err:      e.ErrEmailTaken,
			wantCode: http.StatusBadRequest,
			wantMsg:  e.ErrEmailTaken.Error(),
		},
		{
			name:     "invalid price",
			err:      e.ErrInvalidPrice,
			wantCode: http.StatusBadRequest,
			wantMsg:  e.ErrInvalidPrice.Error(),
		},
		{
			name:     "opaque storage error maps to 500",
			err:      e.Wrap("repo failure", assert.AnError),
			wantCode: http.StatusInternalServerError,
			wantMsg:  e.ErrInternalServerError.Error(),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			code, msg := ToHTTPResponse(tt.err)
			assert.Equal(t, tt.wantCode, code)
			assert.Equal(t, tt.wantMsg, msg)
		})
	}
}

func TestToHTTPResponse_ValidationViolations(t *testing.T) {
	err := e.Wrap("op", e.NewValidationError([]string{
		"special price must be positive",
		"discount must be between 0 and 100",
	}))

	code, msg := ToHTTPResponse(err)

	assert.Equal(t, http.StatusBadRequest, code)
	assert.Contains(t, msg, "special price must be positive")
	assert.Contains(t, msg, "discount must be between 0 and 100")
}

func TestWriteError(t *testing.T) {
	rec := httptest.NewRecorder()

	WriteError(rec, e.Wrap("op", e.ErrSpecialPriceExists))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	assert.Contains(t, rec.Body.String(), e.ErrSpecialPriceExists.Error())
}

func TestParseIDsQuery(t *testing.T) {
	tests := []struct {
		name    string
		target  string
		want    []int64
		wantErr error
	}{
		{
			name:   "comma separated",
			target: "/products/info?ids=1,2,3",
			want:   []int64{1, 2, 3},
		},
		{
			name:   "repeated params",
			target: "/products/info?ids=4&ids=5",
			want:   []int64{4, 5},
		},
		{
			name:    "missing",
			target:  "/products/info",
			wantErr: e.ErrMissingFields,
		},
		{
			name:    "not a number",
			target:  "/products/info?ids=abc",
			wantErr: e.ErrStatusBadRequest,
		},
		{
			name:    "non-positive id",
			target:  "/products/info?ids=0",
			wantErr: e.ErrStatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := httptest.NewRequest(http.MethodGet, tt.target, nil)

			ids, err := parseIDsQuery(r)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.want, ids)
		})
	}
}
