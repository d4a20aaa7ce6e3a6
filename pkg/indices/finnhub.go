// Package indices maintains the market-index side channel of the
// snapshot. Quote failures degrade to the previously persisted values.
package indices

import (
	"context"
	"fmt"
	"log/slog"

	finnhub "github.com/Finnhub-Stock-API/finnhub-go/v2"

	"marketwire/internal/model"
)

type indexSpec struct {
	symbol string
	name   string
}

// Fixed table of tracked indices per indicator region.
var indexTable = map[string][]indexSpec{
	"INDONESIA": {{symbol: "^JKSE", name: "IDX Composite"}},
	"USA":       {{symbol: "^GSPC", name: "S&P 500"}, {symbol: "^IXIC", name: "Nasdaq"}},
	"ASIA":      {{symbol: "^N225", name: "Nikkei 225"}},
	"EUROPE":    {{symbol: "^GDAXI", name: "DAX"}},
	"AMERICAS":  {{symbol: "^GSPTSE", name: "TSX"}},
}

type IndicatorClient struct {
	client *finnhub.DefaultApiService
}

func NewIndicatorClient(apiKey string) *IndicatorClient {
	cfg := finnhub.NewConfiguration()
	cfg.AddDefaultHeader("X-Finnhub-Token", apiKey)
	return &IndicatorClient{client: finnhub.NewAPIClient(cfg).DefaultApi}
}

// FetchIndices refreshes every tracked index. A region whose quotes all
// fail keeps its prior values so the snapshot never loses the channel.
func (c *IndicatorClient) FetchIndices(ctx context.Context, prior map[string][]model.IndexQuote) map[string][]model.IndexQuote {
	out := make(map[string][]model.IndexQuote, len(indexTable))

	for region, specs := range indexTable {
		quotes := make([]model.IndexQuote, 0, len(specs))
		failed := 0

		for _, spec := range specs {
			res, _, err := c.client.Quote(ctx).Symbol(spec.symbol).Execute()
			if err != nil {
				slog.Warn("index quote failed", "symbol", spec.symbol, "error", err)
				failed++
				continue
			}
			quotes = append(quotes, model.IndexQuote{
				Symbol: spec.symbol,
				Name:   spec.name,
				Value:  float64(res.GetC()),
				Change: fmt.Sprintf("%+.2f%%", res.GetDp()),
				Trend:  trend(float64(res.GetDp())),
			})
		}

		if len(quotes) == 0 && failed > 0 {
			if prev, ok := prior[region]; ok {
				out[region] = prev
				continue
			}
		}
		out[region] = quotes
	}

	return out
}

func trend(changePct float64) string {
	switch {
	case changePct > 0.05:
		return model.TrendUp
	case changePct < -0.05:
		return model.TrendDown
	}
	return model.TrendFlat
}
