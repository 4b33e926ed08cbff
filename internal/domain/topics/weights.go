package topics

import "strings"

// Categories maps a category name to its keyword list. Keywords are
// matched lowercase; the table normalizes them at construction.
type Categories map[string][]string

// General is the fallback bucket. It is never scored directly and carries
// no keyword weights.
const General = "general"

// DefaultSpecificTerms are high-specificity economic terms that earn an
// extra weight multiplier. Configured, not inferred from the keyword text.
var DefaultSpecificTerms = []string{
	"federal reserve",
	"interest rate",
	"cpi",
	"gdp",
	"unemployment rate",
}

// DefaultCategories is the built-in economic taxonomy.
func DefaultCategories() Categories {
	return Categories{
		"inflation": {
			"inflation", "cpi", "consumer price", "price increase", "cost of living",
			"deflation", "price level", "purchasing power",
		},
		"fed": {
			"federal reserve", "fed", "interest rate", "rate hike", "rate cut",
			"powell", "fomc", "monetary policy", "quantitative easing",
		},
		"markets": {
			"stock market", "stocks", "s&p", "nasdaq", "dow jones",
			"bull market", "bear market", "trading", "investors", "equities",
		},
		"gdp": {
			"gdp", "economic growth", "recession", "gross domestic product",
			"productivity", "output", "expansion",
		},
		"employment": {
			"unemployment", "unemployment rate", "jobs report", "labor market",
			"payrolls", "hiring", "layoffs", "wages",
		},
		"banking": {
			"banks", "banking", "credit", "lending", "deposits",
			"bank failure", "financial institutions",
		},
		"crypto": {
			"crypto", "cryptocurrency", "bitcoin", "ethereum", "blockchain",
			"digital assets", "stablecoin",
		},
		"housing": {
			"housing", "real estate", "mortgage", "home prices",
			"housing market", "rent", "construction",
		},
		"international": {
			"china", "europe", "trade", "tariffs", "global economy",
			"exchange rate", "imports", "exports",
		},
		General: {},
	}
}

// buildWeights derives one weight per (category, keyword) pair. Base 1.0,
// x1.5 for multi-word phrases, x2.0 on top for configured specific terms.
// The general category is excluded entirely.
func buildWeights(cats Categories, specificTerms []string) map[string]map[string]float64 {
	specific := make(map[string]struct{}, len(specificTerms))
	for _, term := range specificTerms {
		specific[strings.ToLower(term)] = struct{}{}
	}

	weights := make(map[string]map[string]float64, len(cats))
	for category, keywords := range cats {
		if category == General {
			continue
		}
		kw := make(map[string]float64, len(keywords))
		for _, keyword := range keywords {
			keyword = strings.ToLower(keyword)
			w := 1.0
			if len(strings.Fields(keyword)) > 1 {
				w *= 1.5
			}
			if _, ok := specific[keyword]; ok {
				w *= 2.0
			}
			kw[keyword] = w
		}
		weights[category] = kw
	}
	return weights
}
