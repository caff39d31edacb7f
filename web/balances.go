package web

import (
	"net/http"
	"strings"

	"github.com/shopspring/decimal"
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"

	"github.com/robinvdvleuten/costbasis/ledger"
)

// BalancesResponse is the JSON response structure for the balances endpoint.
type BalancesResponse struct {
	Balances []*BalanceResponse `json:"balances"`
}

// BalanceResponse is the remaining position in one coin.
type BalanceResponse struct {
	Symbol      string          `json:"symbol"`
	TotalAmount decimal.Decimal `json:"totalAmount"`
	Cost        decimal.Decimal `json:"cost"`
	Lots        []ledger.Lot    `json:"lots"`
}

// handleGetBalances handles GET requests to /api/balances.
//
// Returns the final balances of the served file, sorted by symbol.
//
// Query parameters:
//   - symbols: Comma-separated coins to include. If omitted, returns all coins.
//
// Examples:
//   - GET /api/balances - All remaining positions
//   - GET /api/balances?symbols=BTC,ETH - Only BTC and ETH
func (s *Server) handleGetBalances(w http.ResponseWriter, r *http.Request) {
	report := s.cachedReport()
	if report == nil {
		writeJSONError(w, http.StatusNotFound, "no file is being served")
		return
	}

	var filter map[string]bool
	if symbolsParam := r.URL.Query().Get("symbols"); symbolsParam != "" {
		filter = make(map[string]bool)
		for _, symbol := range strings.Split(symbolsParam, ",") {
			filter[strings.ToUpper(strings.TrimSpace(symbol))] = true
		}
	}

	writeJSONResponse(w, convertSnapshot(report.FinalBalances, filter))
}

// convertSnapshot converts a ledger.Snapshot to a BalancesResponse.
func convertSnapshot(snapshot ledger.Snapshot, filter map[string]bool) *BalancesResponse {
	symbols := maps.Keys(snapshot)
	slices.Sort(symbols)

	response := &BalancesResponse{Balances: []*BalanceResponse{}}
	for _, symbol := range symbols {
		if filter != nil && !filter[symbol] {
			continue
		}
		response.Balances = append(response.Balances, convertBalance(symbol, snapshot[symbol]))
	}

	return response
}

func convertBalance(symbol string, balance ledger.BalanceSnapshot) *BalanceResponse {
	cost := decimal.Zero
	for i := range balance.Lots {
		cost = cost.Add(balance.Lots[i].Cost())
	}

	lots := balance.Lots
	if lots == nil {
		lots = []ledger.Lot{}
	}

	return &BalanceResponse{
		Symbol:      symbol,
		TotalAmount: balance.TotalAmount,
		Cost:        cost,
		Lots:        lots,
	}
}
