package models

// Category identifies which answer strategy handles a question.
type Category string

const (
	CategoryMacroIndicator Category = "macro_indicator"
	CategoryEquityQuote    Category = "equity_quote"
	CategoryAnalystReport  Category = "analyst_report"
	CategoryGeneralAdvice  Category = "general_advice"
)

// ParseCategory maps a raw classifier token to a known category.
func ParseCategory(s string) (Category, bool) {
	switch Category(s) {
	case CategoryMacroIndicator, CategoryEquityQuote, CategoryAnalystReport, CategoryGeneralAdvice:
		return Category(s), true
	}
	return "", false
}

// Classification is the classifier's verdict for one question. Ticker is
// set only for equity_quote and analyst_report questions that name a
// resolvable company.
type Classification struct {
	Category Category `json:"category"`
	Ticker   string   `json:"ticker,omitempty"`
}

type QueryRequest struct {
	SessionID string `json:"session_id" binding:"required"`
	Question  string `json:"question" binding:"required"`
}

// Source is a citation attached to an answer.
type Source struct {
	Title          string `json:"title"`
	SecuritiesFirm string `json:"securities_firm"`
	Date           string `json:"date"`
	Content        string `json:"content,omitempty"`
}

type QueryResponse struct {
	SessionID string   `json:"session_id"`
	Question  string   `json:"question"`
	Answer    string   `json:"answer"`
	Category  string   `json:"category"`
	Sources   []Source `json:"sources"`
	Timestamp string   `json:"timestamp"`
}

// Passage is one retrieved report excerpt from the vector store.
type Passage struct {
	Title   string `json:"title"`
	Firm    string `json:"securities_firm"`
	Date    string `json:"date"`
	Content string `json:"content"`
}
