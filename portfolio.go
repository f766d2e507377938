package fundlens

import (
	"errors"
	"fmt"
	"time"
)

// Domain errors for virtual-portfolio trades.
var (
	ErrInsufficientBalance = errors.New("insufficient virtual balance")
	ErrInsufficientUnits   = errors.New("not enough units")
	ErrHoldingNotFound     = errors.New("fund not held in portfolio")
)

// TransactionType tags a portfolio transaction.
type TransactionType string

const (
	TxInitialInvestment TransactionType = "INITIAL_INVESTMENT"
	TxBuy               TransactionType = "BUY"
	TxSell              TransactionType = "SELL"
	TxSIP               TransactionType = "SIP"
	TxDeposit           TransactionType = "DEPOSIT"
	TxWithdrawal        TransactionType = "WITHDRAWAL"
)

// TransactionStatus records whether a transaction settled.
type TransactionStatus string

const (
	TxCompleted TransactionStatus = "COMPLETED"
	TxFailed    TransactionStatus = "FAILED"
)

// Transaction is one movement of money or units in a portfolio.
type Transaction struct {
	Type       TransactionType   `json:"type"`
	SchemeCode int               `json:"schemeCode,omitempty"`
	SchemeName string            `json:"schemeName,omitempty"`
	Amount     Money             `json:"amount"`
	Units      Quantity          `json:"units,omitempty"`
	Nav        float64           `json:"nav,omitempty"`
	Date       time.Time         `json:"date"`
	Status     TransactionStatus `json:"status"`
	Note       string            `json:"note,omitempty"`
}

// Holding is a portfolio's position in one scheme.
type Holding struct {
	SchemeCode int      `json:"schemeCode"`
	SchemeName string   `json:"schemeName"`
	Units      Quantity `json:"units"`
	Invested   Money    `json:"investedAmount"`
}

// Portfolio is a virtual portfolio: a cash balance plus fund holdings,
// with a full transaction history. All trades settle at the provider's
// latest NAV, fetched by the caller.
type Portfolio struct {
	ID           string        `json:"id"`
	UserID       string        `json:"userId"`
	Name         string        `json:"portfolioName"`
	Balance      Money         `json:"balance"`
	Holdings     []Holding     `json:"funds"`
	Transactions []Transaction `json:"transactions"`
	CreatedAt    time.Time     `json:"createdAt"`
	UpdatedAt    time.Time     `json:"updatedAt"`
}

// NewPortfolio creates a portfolio with a starting cash balance.
func NewPortfolio(userID, name string, startingBalance Money, now time.Time) *Portfolio {
	return &Portfolio{
		UserID:    userID,
		Name:      name,
		Balance:   startingBalance,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

func (p *Portfolio) holding(schemeCode int) *Holding {
	for i := range p.Holdings {
		if p.Holdings[i].SchemeCode == schemeCode {
			return &p.Holdings[i]
		}
	}
	return nil
}

// Buy spends amount of the cash balance on units of a scheme at the
// given NAV. It appends the holding if the scheme is new and records a
// completed transaction.
func (p *Portfolio) Buy(schemeCode int, schemeName string, amount Money, nav float64, now time.Time) (Quantity, error) {
	if !amount.IsPositive() {
		return Quantity{}, fmt.Errorf("%w: buy amount must be positive", ErrInvalidRequest)
	}
	if nav <= 0 {
		return Quantity{}, fmt.Errorf("%w for scheme %d", ErrNoValidNav, schemeCode)
	}
	if p.Balance.LessThan(amount) {
		return Quantity{}, ErrInsufficientBalance
	}

	units := amount.DivPrice(M(nav))
	h := p.holding(schemeCode)
	if h == nil {
		p.Holdings = append(p.Holdings, Holding{SchemeCode: schemeCode, SchemeName: schemeName})
		h = &p.Holdings[len(p.Holdings)-1]
	}
	h.Units = h.Units.Add(units)
	h.Invested = h.Invested.Add(amount)

	p.Balance = p.Balance.Sub(amount)
	p.Transactions = append(p.Transactions, Transaction{
		Type:       TxBuy,
		SchemeCode: schemeCode,
		SchemeName: schemeName,
		Amount:     amount,
		Units:      units,
		Nav:        nav,
		Date:       now,
		Status:     TxCompleted,
	})
	p.UpdatedAt = now
	return units, nil
}

// Sell redeems units of a scheme at the given NAV and credits the
// proceeds to the cash balance. The invested amount stays as recorded,
// a historical figure.
func (p *Portfolio) Sell(schemeCode int, units Quantity, nav float64, now time.Time) (Money, error) {
	if !units.IsPositive() {
		return Money{}, fmt.Errorf("%w: units to sell must be positive", ErrInvalidRequest)
	}
	if nav <= 0 {
		return Money{}, fmt.Errorf("%w for scheme %d", ErrNoValidNav, schemeCode)
	}
	h := p.holding(schemeCode)
	if h == nil {
		return Money{}, ErrHoldingNotFound
	}
	if h.Units.LessThan(units) {
		return Money{}, ErrInsufficientUnits
	}

	proceeds := M(nav).Mul(units)
	h.Units = h.Units.Sub(units)
	p.Balance = p.Balance.Add(proceeds)
	p.Transactions = append(p.Transactions, Transaction{
		Type:       TxSell,
		SchemeCode: schemeCode,
		SchemeName: h.SchemeName,
		Amount:     proceeds,
		Units:      units,
		Nav:        nav,
		Date:       now,
		Status:     TxCompleted,
	})
	p.UpdatedAt = now
	return proceeds, nil
}

// FundValuation is one scheme's row in a portfolio valuation.
type FundValuation struct {
	SchemeCode    int      `json:"schemeCode"`
	SchemeName    string   `json:"schemeName"`
	Units         Quantity `json:"units"`
	Invested      Money    `json:"investedAmount"`
	CurrentValue  Money    `json:"currentValue"`
	ReturnPercent Percent  `json:"returnPercentage"`
	Allocation    Percent  `json:"allocation"`
}

// Valuation is a portfolio marked to the latest NAVs.
type Valuation struct {
	Invested       Money           `json:"totalInvested"`
	CurrentValue   Money           `json:"currentValue"`
	TotalReturn    Money           `json:"totalReturn"`
	ReturnPercent  Percent         `json:"returnPercentage"`
	Cash           Money           `json:"cash"`
	CashAllocation Percent         `json:"cashAllocation"`
	Funds          []FundValuation `json:"funds"`
}

// Valuation marks every holding to the quoted NAVs (scheme code →
// latest NAV). Schemes without a quote are valued at zero rather than
// dropped, so the allocation table stays complete. Allocations are
// shares of the total including the cash balance.
func (p *Portfolio) Valuation(quotes map[int]float64) Valuation {
	v := Valuation{Cash: p.Balance}

	total := p.Balance
	funds := make([]FundValuation, 0, len(p.Holdings))
	for _, h := range p.Holdings {
		current := M(quotes[h.SchemeCode]).Mul(h.Units)
		fv := FundValuation{
			SchemeCode:   h.SchemeCode,
			SchemeName:   h.SchemeName,
			Units:        h.Units,
			Invested:     h.Invested,
			CurrentValue: current,
		}
		if h.Invested.IsPositive() {
			fv.ReturnPercent = current.Sub(h.Invested).PercentOf(h.Invested)
		}
		funds = append(funds, fv)
		v.Invested = v.Invested.Add(h.Invested)
		v.CurrentValue = v.CurrentValue.Add(current)
		total = total.Add(current)
	}

	for i := range funds {
		funds[i].Allocation = funds[i].CurrentValue.PercentOf(total)
	}
	v.CashAllocation = p.Balance.PercentOf(total)
	v.Funds = funds
	v.TotalReturn = v.CurrentValue.Sub(v.Invested)
	if v.Invested.IsPositive() {
		v.ReturnPercent = v.TotalReturn.PercentOf(v.Invested)
	}
	return v
}
