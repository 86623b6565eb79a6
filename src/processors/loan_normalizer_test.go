package processors

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/username/finpulse/backend/src/models"
)

func TestNormalizeClassifiesProductTypes(t *testing.T) {
	n := NewLoanNormalizer()

	tests := []struct {
		name     string
		raw      models.RawAgreement
		wantType string
		wantKept bool
	}{
		{
			name:     "consumer loan",
			raw:      models.RawAgreement{AgreementID: "L1", ProductType: "ConsumerLoan", Status: "active", Amount: "100000"},
			wantType: models.ProductLoan,
			wantKept: true,
		},
		{
			name:     "cyrillic credit",
			raw:      models.RawAgreement{AgreementID: "L2", ProductType: "Потребительский кредит", Status: "active", Amount: "50000"},
			wantType: models.ProductLoan,
			wantKept: true,
		},
		{
			name:     "mortgage",
			raw:      models.RawAgreement{AgreementID: "M1", ProductType: "Mortgage", Status: "active", Amount: "2000000"},
			wantType: models.ProductMortgage,
			wantKept: true,
		},
		{
			name:     "cyrillic mortgage",
			raw:      models.RawAgreement{AgreementID: "M2", ProductType: "Ипотека", Status: "active", Amount: "3000000"},
			wantType: models.ProductMortgage,
			wantKept: true,
		},
		{
			name:     "overdraft",
			raw:      models.RawAgreement{AgreementID: "O1", ProductType: "Overdraft", Status: "active", Amount: "15000"},
			wantType: models.ProductOverdraft,
			wantKept: true,
		},
		{
			name:     "card with outstanding balance is a credit card",
			raw:      models.RawAgreement{AgreementID: "C1", ProductType: "Card", Status: "active", OutstandingAmount: "12000"},
			wantType: models.ProductCreditCard,
			wantKept: true,
		},
		{
			name:     "card named credit card",
			raw:      models.RawAgreement{AgreementID: "C2", ProductType: "Card", ProductName: "Credit Card Gold", Status: "active"},
			wantType: models.ProductCreditCard,
			wantKept: true,
		},
		{
			name:     "plain debit card is dropped",
			raw:      models.RawAgreement{AgreementID: "C3", ProductType: "Card", ProductName: "Debit Card", Status: "active"},
			wantKept: false,
		},
		{
			name:     "deposit is dropped",
			raw:      models.RawAgreement{AgreementID: "D1", ProductType: "Deposit", Status: "active", Amount: "90000"},
			wantKept: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			loans := n.Normalize([]models.RawAgreement{tt.raw})
			if !tt.wantKept {
				assert.Empty(t, loans)
				return
			}
			require.Len(t, loans, 1)
			assert.Equal(t, tt.wantType, loans[0].ProductType)
		})
	}
}

func TestNormalizeStatusMapping(t *testing.T) {
	n := NewLoanNormalizer()

	loans := n.Normalize([]models.RawAgreement{
		{AgreementID: "A", ProductType: "loan", Status: "Active", Amount: "1"},
		{AgreementID: "B", ProductType: "loan", Status: "in_arrears", Amount: "1"},
		{AgreementID: "C", ProductType: "loan", Status: "closed", Amount: "1"},
		{AgreementID: "D", ProductType: "loan", Status: "revoked", Amount: "1"},
	})
	require.Len(t, loans, 4)
	assert.Equal(t, models.LoanStatusActive, loans[0].Status)
	assert.Equal(t, models.LoanStatusActive, loans[1].Status)
	assert.Equal(t, models.LoanStatusClosed, loans[2].Status)
	assert.Equal(t, models.LoanStatusClosed, loans[3].Status)
}

func TestNormalizeCardBalanceWaterfall(t *testing.T) {
	n := NewLoanNormalizer()

	loans := n.Normalize([]models.RawAgreement{
		{AgreementID: "C1", ProductType: "card", Status: "active", Amount: "50000", OutstandingAmount: "12345.67"},
		{AgreementID: "C2", ProductType: "card", Status: "active", Amount: "50000"},
	})
	require.Len(t, loans, 2)
	assert.InDelta(t, 12345.67, loans[0].Principal, 1e-9)
	assert.InDelta(t, 50000, loans[1].Principal, 1e-9)
}

func TestNormalizeMalformedNumbersCoerceToZero(t *testing.T) {
	n := NewLoanNormalizer()

	loans := n.Normalize([]models.RawAgreement{{
		AgreementID:   "L1",
		ProductType:   "loan",
		Status:        "active",
		Amount:        "not-a-number",
		OverdueAmount: "",
		InterestRate:  "??",
		TermMonths:    "twelve",
		StartDate:     "yesterday",
	}})
	require.Len(t, loans, 1)
	assert.Zero(t, loans[0].Principal)
	assert.Zero(t, loans[0].OverdueAmount)
	assert.Zero(t, loans[0].InterestRate)
	assert.Zero(t, loans[0].TermMonths)
	assert.True(t, loans[0].StartDate.IsZero())
}

func TestNormalizeScheduleSortedAndBadDatesSkipped(t *testing.T) {
	n := NewLoanNormalizer()

	loans := n.Normalize([]models.RawAgreement{{
		AgreementID: "L1",
		ProductType: "loan",
		Status:      "active",
		Amount:      "100000",
		PaymentSchedule: []models.RawScheduleEntry{
			{Date: "2026-03-10", Amount: "5000"},
			{Date: "garbage", Amount: "5000"},
			{Date: "2026-01-10", Amount: "5000"},
			{Date: "2026-02-10", Amount: "5,50"},
		},
	}})
	require.Len(t, loans, 1)
	schedule := loans[0].Schedule
	require.Len(t, schedule, 3)
	assert.Equal(t, time.January, schedule[0].Date.Month())
	assert.Equal(t, time.February, schedule[1].Date.Month())
	assert.Equal(t, time.March, schedule[2].Date.Month())
	assert.InDelta(t, 5.50, schedule[1].Amount, 1e-9)
}

func TestParseAmount(t *testing.T) {
	tests := []struct {
		in   string
		want float64
	}{
		{"123.45", 123.45},
		{"123,45", 123.45},
		{"  99 ", 99},
		{"", 0},
		{"abc", 0},
		{"-10.5", -10.5},
	}
	for _, tt := range tests {
		assert.InDelta(t, tt.want, ParseAmount(tt.in), 1e-9, "input %q", tt.in)
	}
}

func TestParseDate(t *testing.T) {
	assert.Equal(t, time.Date(2026, 5, 1, 0, 0, 0, 0, time.UTC), ParseDate("2026-05-01"))
	assert.Equal(t, 15, ParseDate("2026-05-15T10:30:00Z").Day())
	assert.True(t, ParseDate("").IsZero())
	assert.True(t, ParseDate("01/05/2026").IsZero())
}
