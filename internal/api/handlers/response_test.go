package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SalonScheduler/internal/domain"
)

func TestRespondDomainError_Mapping(t *testing.T) {
	tests := []struct {
		err    error
		status int
		kind   string
	}{
		{fmt.Errorf("%w: bad", domain.ErrValidation), http.StatusUnprocessableEntity, KindValidation},
		{fmt.Errorf("%w: missing", domain.ErrNotFound), http.StatusNotFound, KindNotFound},
		{fmt.Errorf("%w: twice", domain.ErrConflict), http.StatusConflict, KindConflict},
		{fmt.Errorf("%w: taken", domain.ErrOverlap), http.StatusConflict, KindOverlap},
		{fmt.Errorf("%w: banned", domain.ErrBanned), http.StatusForbidden, KindBanned},
		{fmt.Errorf("%w: late", domain.ErrTooLate), http.StatusBadRequest, KindTooLate},
		{fmt.Errorf("%w: nope", domain.ErrForbidden), http.StatusForbidden, KindForbidden},
		{fmt.Errorf("%w: full", domain.ErrCapacityExceeded), http.StatusConflict, KindCapacityExceeded},
		{errors.New("db is down"), http.StatusInternalServerError, KindInternal},
	}

	for _, tt := range tests {
		t.Run(tt.kind, func(t *testing.T) {
			rec := httptest.NewRecorder()
			RespondDomainError(rec, tt.err)

			assert.Equal(t, tt.status, rec.Code)
			var body ErrorResponse
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
			assert.Equal(t, tt.kind, body.Error)
			if tt.status == http.StatusInternalServerError {
				assert.NotContains(t, body.Message, "db is down")
			}
		})
	}
}

func TestDecodeJSON(t *testing.T) {
	var v struct {
		Name string `json:"name"`
	}

	r := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"name":"x"}`))
	require.NoError(t, DecodeJSON(r, &v))
	assert.Equal(t, "x", v.Name)

	r = httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"name":`))
	assert.Error(t, DecodeJSON(r, &v))

	r = httptest.NewRequest(http.MethodPost, "/", strings.NewReader(``))
	assert.Error(t, DecodeJSON(r, &v))
}

func TestPathInt64(t *testing.T) {
	r := mux.SetURLVars(httptest.NewRequest(http.MethodGet, "/", nil), map[string]string{"id": "42"})
	id, err := PathInt64(r, "id")
	require.NoError(t, err)
	assert.Equal(t, int64(42), id)

	r = mux.SetURLVars(httptest.NewRequest(http.MethodGet, "/", nil), map[string]string{"id": "abc"})
	_, err = PathInt64(r, "id")
	assert.Error(t, err)

	_, err = PathInt64(r, "other")
	assert.Error(t, err)
}
