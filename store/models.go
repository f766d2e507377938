package store

import (
	"time"

	"github.com/fundlens/fundlens"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// The persisted documents carry plain float64 amounts: the exact
// decimal domain types do not round-trip through BSON, and the stored
// figures are presentation-grade anyway. Conversions happen at the
// store boundary.

type holdingDoc struct {
	SchemeCode int     `bson:"schemeCode"`
	SchemeName string  `bson:"schemeName"`
	Units      float64 `bson:"units"`
	Invested   float64 `bson:"investedAmount"`
}

type transactionDoc struct {
	Type       string    `bson:"type"`
	SchemeCode int       `bson:"schemeCode,omitempty"`
	SchemeName string    `bson:"schemeName,omitempty"`
	Amount     float64   `bson:"amount"`
	Units      float64   `bson:"units,omitempty"`
	Nav        float64   `bson:"nav,omitempty"`
	Date       time.Time `bson:"date"`
	Status     string    `bson:"status"`
	Note       string    `bson:"notes,omitempty"`
}

type portfolioDoc struct {
	ID           primitive.ObjectID `bson:"_id,omitempty"`
	UserID       string             `bson:"userId"`
	Name         string             `bson:"portfolioName"`
	Balance      float64            `bson:"balance"`
	Funds        []holdingDoc       `bson:"funds"`
	Transactions []transactionDoc   `bson:"transactions"`
	CreatedAt    time.Time          `bson:"createdAt"`
	UpdatedAt    time.Time          `bson:"updatedAt"`
}

func toPortfolioDoc(p *fundlens.Portfolio) (portfolioDoc, error) {
	doc := portfolioDoc{
		UserID:       p.UserID,
		Name:         p.Name,
		Balance:      p.Balance.AsFloat(),
		Funds:        make([]holdingDoc, 0, len(p.Holdings)),
		Transactions: make([]transactionDoc, 0, len(p.Transactions)),
		CreatedAt:    p.CreatedAt,
		UpdatedAt:    p.UpdatedAt,
	}
	if p.ID != "" {
		id, err := primitive.ObjectIDFromHex(p.ID)
		if err != nil {
			return portfolioDoc{}, err
		}
		doc.ID = id
	}
	for _, h := range p.Holdings {
		doc.Funds = append(doc.Funds, holdingDoc{
			SchemeCode: h.SchemeCode,
			SchemeName: h.SchemeName,
			Units:      h.Units.AsFloat(),
			Invested:   h.Invested.AsFloat(),
		})
	}
	for _, tx := range p.Transactions {
		doc.Transactions = append(doc.Transactions, transactionDoc{
			Type:       string(tx.Type),
			SchemeCode: tx.SchemeCode,
			SchemeName: tx.SchemeName,
			Amount:     tx.Amount.AsFloat(),
			Units:      tx.Units.AsFloat(),
			Nav:        tx.Nav,
			Date:       tx.Date,
			Status:     string(tx.Status),
			Note:       tx.Note,
		})
	}
	return doc, nil
}

func (doc portfolioDoc) toDomain() *fundlens.Portfolio {
	p := &fundlens.Portfolio{
		ID:        doc.ID.Hex(),
		UserID:    doc.UserID,
		Name:      doc.Name,
		Balance:   fundlens.M(doc.Balance),
		CreatedAt: doc.CreatedAt,
		UpdatedAt: doc.UpdatedAt,
	}
	for _, h := range doc.Funds {
		p.Holdings = append(p.Holdings, fundlens.Holding{
			SchemeCode: h.SchemeCode,
			SchemeName: h.SchemeName,
			Units:      fundlens.Q(h.Units),
			Invested:   fundlens.M(h.Invested),
		})
	}
	for _, tx := range doc.Transactions {
		p.Transactions = append(p.Transactions, fundlens.Transaction{
			Type:       fundlens.TransactionType(tx.Type),
			SchemeCode: tx.SchemeCode,
			SchemeName: tx.SchemeName,
			Amount:     fundlens.M(tx.Amount),
			Units:      fundlens.Q(tx.Units),
			Nav:        tx.Nav,
			Date:       tx.Date,
			Status:     fundlens.TransactionStatus(tx.Status),
			Note:       tx.Note,
		})
	}
	return p
}

// SIP is a persisted systematic investment plan.
type SIP struct {
	ID            string    `bson:"-" json:"id"`
	UserID        string    `bson:"userId" json:"userId"`
	PortfolioID   string    `bson:"-" json:"portfolioId"`
	SchemeCode    int       `bson:"schemeCode" json:"schemeCode"`
	SchemeName    string    `bson:"schemeName" json:"schemeName"`
	Amount        float64   `bson:"amount" json:"amount"`
	DayOfMonth    int       `bson:"dayOfMonth" json:"dayOfMonth"`
	NextDebitDate time.Time `bson:"nextDebitDate" json:"nextDebitDate"`
	LastDebitDate time.Time `bson:"lastDebitDate,omitempty" json:"lastDebitDate,omitempty"`
	Status        string    `bson:"status" json:"status"`
	UnitsAllotted float64   `bson:"unitsAllotted" json:"unitsAllotted"`
	TotalInvested float64   `bson:"totalInvested" json:"totalInvested"`
	CreatedAt     time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt     time.Time `bson:"updatedAt" json:"updatedAt"`
}

// SIP lifecycle states.
const (
	SIPActive    = "active"
	SIPCancelled = "cancelled"
)

type sipDoc struct {
	ID          primitive.ObjectID `bson:"_id,omitempty"`
	PortfolioID primitive.ObjectID `bson:"portfolioId"`
	SIP         `bson:",inline"`
}

// WatchlistEntry is one scheme on a user's watchlist.
type WatchlistEntry struct {
	SchemeCode int       `bson:"schemeCode" json:"schemeCode"`
	AddedAt    time.Time `bson:"addedAt" json:"addedAt"`
}

type watchlistDoc struct {
	UserID string           `bson:"_id"`
	Funds  []WatchlistEntry `bson:"funds"`
}

// Scheme is a cached row of the active-scheme universe with its
// latest NAV.
type Scheme struct {
	Code      int       `bson:"id" json:"id"`
	Name      string    `bson:"name" json:"name"`
	Nav       float64   `bson:"nav" json:"nav"`
	UpdatedAt time.Time `bson:"updatedAt" json:"updatedAt"`
}
