package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/cradoe/peoplepay/internal/mocks"
	"github.com/cradoe/peoplepay/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type payrollMocks struct {
	taxYears   *mocks.MockTaxYearRepo
	components *mocks.MockSalaryComponentRepo
	currencies *mocks.MockCurrencyRepo
}

func newPayrollHandler() (*PayrollHandler, payrollMocks) {
	m := payrollMocks{
		taxYears:   new(mocks.MockTaxYearRepo),
		components: new(mocks.MockSalaryComponentRepo),
		currencies: new(mocks.MockCurrencyRepo),
	}

	h := NewPayrollHandler(&PayrollHandler{
		TaxYearRepo:         m.taxYears,
		SalaryComponentRepo: m.components,
		CurrencyRepo:        m.currencies,
		ErrHandler:          newTestErrHandler(),
	})
	return h, m
}

func TestHandleStatutoryComponents(t *testing.T) {
	h, _ := newPayrollHandler()

	tests := []struct {
		code  string
		types []string
	}{
		{"IN", []string{"EPF", "ESI", "PT", "TDS"}},
		{"in", []string{}},
		{"ZZ", []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.code, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/v1/countries/"+tt.code+"/statutory-components", nil)
			req.SetPathValue("code", tt.code)
			rr := httptest.NewRecorder()

			h.HandleStatutoryComponents(rr, req)

			require.Equal(t, http.StatusOK, rr.Code)

			var data []StatutoryComponentResponseData
			require.NoError(t, json.Unmarshal(decodeEnvelope(t, rr).Data, &data))

			got := []string{}
			for _, c := range data {
				got = append(got, string(c.Type))
				assert.NotEmpty(t, c.Label)
			}
			assert.Equal(t, tt.types, got)
		})
	}
}

func TestHandleStatutoryComponentApplicable(t *testing.T) {
	h, _ := newPayrollHandler()

	req := httptest.NewRequest(http.MethodGet, "/v1/countries/PH/statutory-components/SSS", nil)
	req.SetPathValue("code", "PH")
	req.SetPathValue("type", "SSS")
	rr := httptest.NewRecorder()

	h.HandleStatutoryComponentApplicable(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)

	var data map[string]any
	require.NoError(t, json.Unmarshal(decodeEnvelope(t, rr).Data, &data))
	assert.Equal(t, true, data["applicable"])
	assert.Equal(t, "PH", data["country"])
}

func TestHandleSalaryComponents(t *testing.T) {
	h, m := newPayrollHandler()

	m.components.On("GetByCountry", mock.Anything, "IN").Return([]models.SalaryComponent{
		{Code: "BASIC", Name: "Basic Salary", CountryCode: "IN"},
		{Code: "EPF", Name: "Provident Fund", CountryCode: "IN", StatutoryType: "EPF", Percentage: 12},
		{Code: "SSS", Name: "Social Security", CountryCode: "IN", StatutoryType: "SSS"},
	}, nil)

	req := httptest.NewRequest(http.MethodGet, "/v1/countries/IN/salary-components", nil)
	req.SetPathValue("code", "IN")
	rr := httptest.NewRecorder()

	h.HandleSalaryComponents(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)

	var data []map[string]any
	require.NoError(t, json.Unmarshal(decodeEnvelope(t, rr).Data, &data))
	require.Len(t, data, 3)

	_, present := data[0]["statutory_applicable"]
	assert.False(t, present)
	assert.Equal(t, true, data[1]["statutory_applicable"])
	assert.Equal(t, false, data[2]["statutory_applicable"])
	m.components.AssertExpectations(t)
}

func TestHandleTaxYears(t *testing.T) {
	h, m := newPayrollHandler()

	m.taxYears.On("GetByCountry", mock.Anything, "GB").Return([]models.TaxYear{}, nil)

	req := httptest.NewRequest(http.MethodGet, "/v1/countries/GB/tax-years", nil)
	req.SetPathValue("code", "GB")
	rr := httptest.NewRecorder()

	h.HandleTaxYears(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "No tax years found", decodeEnvelope(t, rr).Message)
}

func TestHandleNetPay(t *testing.T) {
	t.Run("computes tax and net", func(t *testing.T) {
		h, m := newPayrollHandler()
		m.currencies.On("GetByCode", mock.Anything, "USD").Return(nil, false, nil)

		rr := httptest.NewRecorder()
		h.HandleNetPay(rr, jsonRequest(t, http.MethodPost, "/v1/payroll/net", map[string]any{
			"amount":         1234.56,
			"tax_percentage": 10,
			"currency":       "USD",
		}))

		require.Equal(t, http.StatusOK, rr.Code)

		var data NetPayResponseData
		require.NoError(t, json.Unmarshal(decodeEnvelope(t, rr).Data, &data))
		assert.Equal(t, 123.46, data.Tax)
		assert.Equal(t, 1111.1, data.Net)
		assert.Equal(t, "$1,234.56", data.FormattedGross)
	})

	t.Run("stored currency precision wins", func(t *testing.T) {
		h, m := newPayrollHandler()
		m.currencies.On("GetByCode", mock.Anything, "JPY").Return(&models.Currency{
			Code: "JPY", Name: "Japanese Yen", Symbol: "¥", DecimalPlaces: 0, IsActive: true,
		}, true, nil)

		rr := httptest.NewRecorder()
		h.HandleNetPay(rr, jsonRequest(t, http.MethodPost, "/v1/payroll/net", map[string]any{
			"amount":         10000,
			"tax_percentage": 12.5,
			"currency":       "JPY",
		}))

		require.Equal(t, http.StatusOK, rr.Code)

		var data NetPayResponseData
		require.NoError(t, json.Unmarshal(decodeEnvelope(t, rr).Data, &data))
		assert.Equal(t, 1250.0, data.Tax)
		assert.Equal(t, 8750.0, data.Net)
	})

	t.Run("validation", func(t *testing.T) {
		h, m := newPayrollHandler()
		m.currencies.On("GetByCode", mock.Anything, "XXX").Return(nil, false, nil)

		rr := httptest.NewRecorder()
		h.HandleNetPay(rr, jsonRequest(t, http.MethodPost, "/v1/payroll/net", map[string]any{
			"amount":         -5,
			"tax_percentage": 120,
			"currency":       "XXX",
		}))

		require.Equal(t, http.StatusUnprocessableEntity, rr.Code)

		var errs map[string]string
		require.NoError(t, json.Unmarshal(decodeEnvelope(t, rr).Error, &errs))
		assert.Equal(t, "Currency is not supported", errs["currency"])
		assert.Equal(t, "Amount cannot be negative", errs["amount"])
		assert.Contains(t, errs, "tax_percentage")
	})
}
