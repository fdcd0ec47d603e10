package advisor

import "testing"

func TestParseClassifierOutput(t *testing.T) {
	raw := "category: equity_quote\nstock: 삼성전자\n"

	f := parseClassifierOutput(raw)

	if !f.CategoryFound || f.Category != "equity_quote" {
		t.Fatalf("category not parsed: %+v", f)
	}
	if !f.StockFound || f.Stock != "삼성전자" {
		t.Fatalf("stock not parsed: %+v", f)
	}
}

func TestParseClassifierOutputMissingFields(t *testing.T) {
	f := parseClassifierOutput("죄송합니다, 분류할 수 없습니다.")

	if f.CategoryFound {
		t.Errorf("category should be absent, got %q", f.Category)
	}
	if f.StockFound {
		t.Errorf("stock should be absent, got %q", f.Stock)
	}
}

func TestParseClassifierOutputTolerantFormatting(t *testing.T) {
	cases := []struct {
		name     string
		raw      string
		category string
		stock    string
	}{
		{
			name:     "leading whitespace and preamble",
			raw:      "분류 결과는 다음과 같습니다.\n  category: macro_indicator\n  stock: none",
			category: "macro_indicator",
			stock:    "none",
		},
		{
			name:     "uppercase labels",
			raw:      "Category: general_advice\nStock: none",
			category: "general_advice",
			stock:    "none",
		},
		{
			name:     "trailing spaces on stock",
			raw:      "category: analyst_report\nstock: 네이버   ",
			category: "analyst_report",
			stock:    "네이버",
		},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			f := parseClassifierOutput(c.raw)
			if f.Category != c.category {
				t.Errorf("category = %q, want %q", f.Category, c.category)
			}
			if f.Stock != c.stock {
				t.Errorf("stock = %q, want %q", f.Stock, c.stock)
			}
		})
	}
}
