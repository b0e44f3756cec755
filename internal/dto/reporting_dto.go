package dto

import (
	"time"

	"github.com/SscSPs/ledger_aggregator/internal/apperrors"
	"github.com/SscSPs/ledger_aggregator/internal/core/domain"
	"github.com/shopspring/decimal"
)

// DateFormat is the layout of every date query parameter and response field.
const DateFormat = "2006-01-02"

// PeriodQuery binds an inclusive fromDate..toDate range.
type PeriodQuery struct {
	FromDate string `form:"fromDate" binding:"required,datetime=2006-01-02"`
	ToDate   string `form:"toDate" binding:"required,datetime=2006-01-02"`
}

// Period converts the inclusive query range into a half-open period.
func (q PeriodQuery) Period() (domain.Period, error) {
	from, err := time.Parse(DateFormat, q.FromDate)
	if err != nil {
		return domain.Period{}, apperrors.NewInputError("fromDate", "use YYYY-MM-DD")
	}
	to, err := time.Parse(DateFormat, q.ToDate)
	if err != nil {
		return domain.Period{}, apperrors.NewInputError("toDate", "use YYYY-MM-DD")
	}
	if from.After(to) {
		return domain.Period{}, apperrors.NewInputError("period", "fromDate must not be after toDate")
	}
	return domain.NewPeriodInclusive(from, to), nil
}

// TrialBalanceQuery binds the trial balance parameters.
type TrialBalanceQuery struct {
	PeriodQuery
	Category string `form:"category" binding:"omitempty,oneof=ASSET LIABILITY EQUITY REVENUE EXPENSE"`
}

// CategoryFilter returns the optional category filter.
func (q TrialBalanceQuery) CategoryFilter() *domain.AccountCategory {
	if q.Category == "" {
		return nil
	}
	c := domain.AccountCategory(q.Category)
	return &c
}

// BalanceSheetQuery binds the balance sheet parameters.
type BalanceSheetQuery struct {
	AsOf   string `form:"asOf" binding:"required,datetime=2006-01-02"`
	Detail string `form:"detail,default=summary" binding:"oneof=summary detailed"`
}

// AsOfDate parses the asOf parameter.
func (q BalanceSheetQuery) AsOfDate() (time.Time, error) {
	asOf, err := time.Parse(DateFormat, q.AsOf)
	if err != nil {
		return time.Time{}, apperrors.NewInputError("asOf", "use YYYY-MM-DD")
	}
	return asOf, nil
}

// DetailLevel returns the requested detail level.
func (q BalanceSheetQuery) DetailLevel() domain.DetailLevel {
	return domain.DetailLevel(q.Detail)
}

// TrialBalanceRowResponse represents a row in the trial balance report response
type TrialBalanceRowResponse struct {
	AccountCode string          `json:"accountCode"`
	AccountName string          `json:"accountName"`
	Category    string          `json:"category"`
	Debit       decimal.Decimal `json:"debit"`
	Credit      decimal.Decimal `json:"credit"`
}

// TotalsResponse carries debit and credit totals.
type TotalsResponse struct {
	Debit  decimal.Decimal `json:"debit"`
	Credit decimal.Decimal `json:"credit"`
}

// TrialBalanceResponse represents the trial balance report response
type TrialBalanceResponse struct {
	FromDate   string                    `json:"fromDate"`
	ToDate     string                    `json:"toDate"`
	Category   *string                   `json:"category,omitempty"`
	Rows       []TrialBalanceRowResponse `json:"rows"`
	Totals     TotalsResponse            `json:"totals"`
	Difference decimal.Decimal           `json:"difference"`
	IsBalanced bool                      `json:"isBalanced"`
	Warnings   []string                  `json:"warnings"`
}

// AccountBalanceResponse represents an account with its balance in a financial report
type AccountBalanceResponse struct {
	AccountCode string          `json:"accountCode"`
	AccountName string          `json:"accountName"`
	Debit       decimal.Decimal `json:"debit"`
	Credit      decimal.Decimal `json:"credit"`
	Balance     decimal.Decimal `json:"balance"`
}

// SectionResponse groups the accounts of one category.
type SectionResponse struct {
	Accounts []AccountBalanceResponse `json:"accounts"`
	Total    decimal.Decimal          `json:"total"`
}

// BalanceSheetSummary holds the balance sheet totals.
type BalanceSheetSummary struct {
	TotalAssets            decimal.Decimal `json:"totalAssets"`
	TotalLiabilities       decimal.Decimal `json:"totalLiabilities"`
	TotalEquity            decimal.Decimal `json:"totalEquity"`
	TotalLiabilitiesEquity decimal.Decimal `json:"totalLiabilitiesEquity"`
}

// BalanceSheetResponse represents the balance sheet report response
type BalanceSheetResponse struct {
	AsOf        string              `json:"asOf"`
	Detail      string              `json:"detail"`
	Assets      SectionResponse     `json:"assets"`
	Liabilities SectionResponse     `json:"liabilities"`
	Equity      SectionResponse     `json:"equity"`
	Summary     BalanceSheetSummary `json:"summary"`
	IsBalanced  bool                `json:"isBalanced"`
	Warnings    []string            `json:"warnings"`
}

// IncomeStatementSummary holds the income statement totals.
type IncomeStatementSummary struct {
	TotalRevenue        decimal.Decimal `json:"totalRevenue"`
	TotalExpenses       decimal.Decimal `json:"totalExpenses"`
	NetIncome           decimal.Decimal `json:"netIncome"`
	NetIncomePercentage decimal.Decimal `json:"netIncomePercentage"`
}

// IncomeStatementResponse represents the income statement response
type IncomeStatementResponse struct {
	FromDate string                 `json:"fromDate"`
	ToDate   string                 `json:"toDate"`
	Revenue  SectionResponse        `json:"revenue"`
	Expenses SectionResponse        `json:"expenses"`
	Summary  IncomeStatementSummary `json:"summary"`
	Warnings []string               `json:"warnings"`
}

// CashFlowLineResponse is one account's contribution to an activity.
type CashFlowLineResponse struct {
	AccountCode string          `json:"accountCode"`
	AccountName string          `json:"accountName"`
	Amount      decimal.Decimal `json:"amount"`
}

// ActivityResponse sums the cash moved by one activity.
type ActivityResponse struct {
	Lines []CashFlowLineResponse `json:"lines"`
	Total decimal.Decimal        `json:"total"`
}

// CashFlowResponse represents the cash flow summary response
type CashFlowResponse struct {
	FromDate      string           `json:"fromDate"`
	ToDate        string           `json:"toDate"`
	Operating     ActivityResponse `json:"operating"`
	Investing     ActivityResponse `json:"investing"`
	Financing     ActivityResponse `json:"financing"`
	NetCashChange decimal.Decimal  `json:"netCashChange"`
	CashMovement  decimal.Decimal  `json:"cashMovement"`
	Warnings      []string         `json:"warnings"`
}

// ComplianceRuleResponse reports the outcome of one rule.
type ComplianceRuleResponse struct {
	Name    string `json:"name"`
	Check   string `json:"check"`
	Passed  bool   `json:"passed"`
	Points  int    `json:"points"`
	Awarded int    `json:"awarded"`
}

// ComplianceScoreResponse represents the compliance score response
type ComplianceScoreResponse struct {
	Scheme   string                   `json:"scheme"`
	FromDate string                   `json:"fromDate"`
	ToDate   string                   `json:"toDate"`
	Score    int                      `json:"score"`
	Issues   []string                 `json:"issues"`
	Rules    []ComplianceRuleResponse `json:"rules"`
}

// inclusiveBounds renders a half-open period as inclusive calendar dates.
func inclusiveBounds(p domain.Period) (string, string) {
	return p.Start.Format(DateFormat), p.End.AddDate(0, 0, -1).Format(DateFormat)
}

func nonNilWarnings(w []string) []string {
	if w == nil {
		return []string{}
	}
	return w
}

// ToTrialBalanceResponse converts a domain trial balance to its response DTO
func ToTrialBalanceResponse(tb *domain.TrialBalance) TrialBalanceResponse {
	from, to := inclusiveBounds(tb.Period)
	resp := TrialBalanceResponse{
		FromDate:   from,
		ToDate:     to,
		Rows:       make([]TrialBalanceRowResponse, 0, len(tb.Rows)),
		Totals:     TotalsResponse{Debit: tb.TotalDebit, Credit: tb.TotalCredit},
		Difference: tb.Difference,
		IsBalanced: tb.IsBalanced,
		Warnings:   nonNilWarnings(tb.Warnings),
	}
	if tb.Category != nil {
		c := string(*tb.Category)
		resp.Category = &c
	}
	for _, r := range tb.Rows {
		resp.Rows = append(resp.Rows, TrialBalanceRowResponse{
			AccountCode: r.AccountCode,
			AccountName: r.AccountName,
			Category:    string(r.Category),
			Debit:       r.Debit,
			Credit:      r.Credit,
		})
	}
	return resp
}

func toSectionResponse(s domain.StatementSection) SectionResponse {
	out := SectionResponse{Accounts: make([]AccountBalanceResponse, 0, len(s.Accounts)), Total: s.Total}
	for _, b := range s.Accounts {
		out.Accounts = append(out.Accounts, AccountBalanceResponse{
			AccountCode: b.Account.Code,
			AccountName: b.Account.Name,
			Debit:       b.TotalDebit,
			Credit:      b.TotalCredit,
			Balance:     b.NetBalance,
		})
	}
	return out
}

// ToBalanceSheetResponse converts a domain balance sheet to its response DTO
func ToBalanceSheetResponse(bs *domain.BalanceSheet) BalanceSheetResponse {
	return BalanceSheetResponse{
		AsOf:        bs.AsOf.Format(DateFormat),
		Detail:      string(bs.Detail),
		Assets:      toSectionResponse(bs.Assets),
		Liabilities: toSectionResponse(bs.Liabilities),
		Equity:      toSectionResponse(bs.Equity),
		Summary: BalanceSheetSummary{
			TotalAssets:            bs.TotalAssets,
			TotalLiabilities:       bs.TotalLiabilities,
			TotalEquity:            bs.TotalEquity,
			TotalLiabilitiesEquity: bs.TotalLiabilitiesEquity,
		},
		IsBalanced: bs.IsBalanced,
		Warnings:   nonNilWarnings(bs.Warnings),
	}
}

// ToIncomeStatementResponse converts a domain income statement to its response DTO
func ToIncomeStatementResponse(is *domain.IncomeStatement) IncomeStatementResponse {
	from, to := inclusiveBounds(is.Period)
	return IncomeStatementResponse{
		FromDate: from,
		ToDate:   to,
		Revenue:  toSectionResponse(is.Revenue),
		Expenses: toSectionResponse(is.Expenses),
		Summary: IncomeStatementSummary{
			TotalRevenue:        is.TotalRevenue,
			TotalExpenses:       is.TotalExpenses,
			NetIncome:           is.NetIncome,
			NetIncomePercentage: is.NetIncomePercentage,
		},
		Warnings: nonNilWarnings(is.Warnings),
	}
}

func toActivityResponse(b domain.ActivityBucket) ActivityResponse {
	out := ActivityResponse{Lines: make([]CashFlowLineResponse, 0, len(b.Lines)), Total: b.Total}
	for _, l := range b.Lines {
		out.Lines = append(out.Lines, CashFlowLineResponse{
			AccountCode: l.Account.Code,
			AccountName: l.Account.Name,
			Amount:      l.Amount,
		})
	}
	return out
}

// ToCashFlowResponse converts a domain cash flow summary to its response DTO
func ToCashFlowResponse(cf *domain.CashFlowSummary) CashFlowResponse {
	from, to := inclusiveBounds(cf.Period)
	return CashFlowResponse{
		FromDate:      from,
		ToDate:        to,
		Operating:     toActivityResponse(cf.Operating),
		Investing:     toActivityResponse(cf.Investing),
		Financing:     toActivityResponse(cf.Financing),
		NetCashChange: cf.NetCashChange,
		CashMovement:  cf.CashMovement,
		Warnings:      nonNilWarnings(cf.Warnings),
	}
}

// ToComplianceScoreResponse converts a domain compliance result to its response DTO
func ToComplianceScoreResponse(r *domain.ComplianceResult) ComplianceScoreResponse {
	from, to := inclusiveBounds(r.Period)
	resp := ComplianceScoreResponse{
		Scheme:   r.Scheme,
		FromDate: from,
		ToDate:   to,
		Score:    r.Score,
		Issues:   nonNilWarnings(r.Issues),
		Rules:    make([]ComplianceRuleResponse, 0, len(r.Outcomes)),
	}
	for _, o := range r.Outcomes {
		resp.Rules = append(resp.Rules, ComplianceRuleResponse(o))
	}
	return resp
}
