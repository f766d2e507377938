package store

import (
	"context"
	"testing"
	"time"

	"github.com/fundlens/fundlens"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestPortfolioDocRoundTrip(t *testing.T) {
	created := time.Date(2024, 1, 2, 10, 0, 0, 0, time.UTC)
	p := fundlens.NewPortfolio("dummyUser", "Retirement", fundlens.M(100000), created)
	_, err := p.Buy(120503, "Axis Midcap Direct Growth", fundlens.M(33000), 82.5, created)
	require.NoError(t, err)
	p.ID = primitive.NewObjectID().Hex()

	doc, err := toPortfolioDoc(p)
	require.NoError(t, err)
	got := doc.toDomain()

	assert.Equal(t, p.ID, got.ID)
	assert.Equal(t, p.UserID, got.UserID)
	assert.Equal(t, p.Name, got.Name)
	assert.Equal(t, p.Balance.AsFloat(), got.Balance.AsFloat())
	require.Len(t, got.Holdings, 1)
	assert.Equal(t, 120503, got.Holdings[0].SchemeCode)
	assert.InDelta(t, 400, got.Holdings[0].Units.AsFloat(), 0.0001)
	require.Len(t, got.Transactions, 1)
	assert.Equal(t, fundlens.TxBuy, got.Transactions[0].Type)
	assert.Equal(t, fundlens.TxCompleted, got.Transactions[0].Status)
	assert.InDelta(t, 33000, got.Transactions[0].Amount.AsFloat(), 0.01)
}

func TestPortfolioDocRejectsBadID(t *testing.T) {
	p := fundlens.NewPortfolio("dummyUser", "Broken", fundlens.M(1000), time.Now())
	p.ID = "not-a-hex-id"
	_, err := toPortfolioDoc(p)
	assert.Error(t, err)
}

func TestNextDebitDate(t *testing.T) {
	ist, err := time.LoadLocation("Asia/Kolkata")
	require.NoError(t, err)

	tests := []struct {
		name string
		from time.Time
		day  int
		want time.Time
	}{
		{
			name: "later this month",
			from: time.Date(2024, 3, 5, 12, 0, 0, 0, ist),
			day:  10,
			want: time.Date(2024, 3, 10, 0, 0, 0, 0, ist),
		},
		{
			name: "day already passed",
			from: time.Date(2024, 3, 15, 12, 0, 0, 0, ist),
			day:  10,
			want: time.Date(2024, 4, 10, 0, 0, 0, 0, ist),
		},
		{
			name: "same day rolls to next month",
			from: time.Date(2024, 3, 10, 0, 0, 0, 0, ist),
			day:  10,
			want: time.Date(2024, 4, 10, 0, 0, 0, 0, ist),
		},
		{
			name: "december wraps the year",
			from: time.Date(2024, 12, 20, 8, 0, 0, 0, ist),
			day:  5,
			want: time.Date(2025, 1, 5, 0, 0, 0, 0, ist),
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.True(t, NextDebitDate(tc.from, tc.day).Equal(tc.want))
		})
	}
}

func TestCreateSIPValidation(t *testing.T) {
	s := &Store{}
	ctx := context.Background()
	pid := primitive.NewObjectID().Hex()

	tests := []struct {
		name string
		sip  SIP
	}{
		{
			name: "amount below minimum",
			sip:  SIP{PortfolioID: pid, Amount: 499, DayOfMonth: 10},
		},
		{
			name: "day of month too small",
			sip:  SIP{PortfolioID: pid, Amount: 1000, DayOfMonth: 0},
		},
		{
			name: "day of month too large",
			sip:  SIP{PortfolioID: pid, Amount: 1000, DayOfMonth: 29},
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			err := s.CreateSIP(ctx, &tc.sip)
			assert.ErrorIs(t, err, fundlens.ErrInvalidRequest)
		})
	}

	t.Run("bad portfolio id", func(t *testing.T) {
		err := s.CreateSIP(ctx, &SIP{PortfolioID: "nope", Amount: 1000, DayOfMonth: 10})
		assert.ErrorIs(t, err, ErrNotFound)
	})
}
