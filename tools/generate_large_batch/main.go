// Large Transaction Batch Generator
//
// This tool generates a large transactions file for performance testing and profiling.
// It creates a realistic trading history of buys, sells and trades across several
// coins to stress-test the parser and the ledger. Holdings are tracked so that most
// disposals succeed, while a small share oversells on purpose.
//
// Usage:
//
//	go run main.go > large.tsv
//	go run main.go 20000000 > large.tsv       # Specify target size in bytes
//	go run main.go 20000000 json > large.json # Write a calculation request instead
package main

import (
	"encoding/json"
	"fmt"
	"math/rand"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

const (
	defaultTargetSize = 10 * 1024 * 1024 // 10MB
)

var (
	coins = []string{"BTC", "ETH", "SOL", "ADA", "DOT", "LINK", "XRP", "DOGE"}

	// basePrices are the starting prices the random walk departs from.
	basePrices = map[string]float64{
		"BTC": 30000, "ETH": 2000, "SOL": 25, "ADA": 0.35,
		"DOT": 5, "LINK": 7, "XRP": 0.5, "DOGE": 0.07,
	}

	columns = []string{"type", "date", "buyCoin", "sellCoin", "buyAmount", "sellAmount", "buyPricePerCoin", "sellPricePerCoin"}
)

// record is one generated transaction, keyed by column name.
type record map[string]string

type generator struct {
	prices   map[string]float64
	holdings map[string]decimal.Decimal
}

func main() {
	targetSize := defaultTargetSize
	if len(os.Args) > 1 {
		if size, err := strconv.Atoi(os.Args[1]); err == nil {
			targetSize = size
		}
	}
	asJSON := len(os.Args) > 2 && os.Args[2] == "json"

	g := &generator{
		prices:   make(map[string]float64),
		holdings: make(map[string]decimal.Decimal),
	}
	for coin, price := range basePrices {
		g.prices[coin] = price
	}

	currentDate := time.Date(2020, 1, 1, 9, 0, 0, 0, time.UTC)

	var records []record
	bytesWritten := 0

	if !asJSON {
		header := strings.Join(columns, "\t") + "\n"
		fmt.Print(header)
		bytesWritten += len(header)
	}

	for bytesWritten < targetSize {
		g.walkPrices()

		var r record
		switch rand.Intn(10) {
		case 0, 1, 2, 3, 4: // 50% - Buy
			r = g.buy(currentDate)
		case 5, 6, 7: // 30% - Sell
			r = g.sell(currentDate)
		default: // 20% - Trade
			r = g.trade(currentDate)
		}

		if asJSON {
			records = append(records, r)
			bytesWritten += estimateJSONSize(r)
		} else {
			line := formatRow(r)
			fmt.Print(line)
			bytesWritten += len(line)
		}

		// Advance by 1-48 hours
		currentDate = currentDate.Add(time.Duration(rand.Intn(48)+1) * time.Hour)
	}

	if asJSON {
		enc := json.NewEncoder(os.Stdout)
		if err := enc.Encode(map[string][]record{"transactions": records}); err != nil {
			fmt.Fprintf(os.Stderr, "failed to write request: %v\n", err)
			os.Exit(1)
		}
	}

	fmt.Fprintf(os.Stderr, "\nGenerated ~%d bytes\n", bytesWritten)
}

// walkPrices moves every price by up to 3% in either direction.
func (g *generator) walkPrices() {
	for coin, price := range g.prices {
		g.prices[coin] = price * (0.97 + rand.Float64()*0.06)
	}
}

func (g *generator) buy(date time.Time) record {
	coin := randomCoin()
	price := g.price(coin)
	amount := randQuantity(coin)

	g.holdings[coin] = g.holdings[coin].Add(amount)

	return record{
		"type":            "BUY",
		"date":            formatDate(date),
		"buyCoin":         coin,
		"buyAmount":       amount.String(),
		"buyPricePerCoin": price.String(),
	}
}

func (g *generator) sell(date time.Time) record {
	coin := randomCoin()
	price := g.price(coin)
	amount := g.disposalAmount(coin)

	return record{
		"type":             "SELL",
		"date":             formatDate(date),
		"sellCoin":         coin,
		"sellAmount":       amount.String(),
		"sellPricePerCoin": price.String(),
	}
}

func (g *generator) trade(date time.Time) record {
	sellCoin := randomCoin()
	buyCoin := randomCoin()
	for buyCoin == sellCoin {
		buyCoin = randomCoin()
	}

	sellPrice := g.price(sellCoin)
	buyPrice := g.price(buyCoin)
	disposed := g.disposalAmount(sellCoin)

	// The received amount is worth what was given up
	buyAmount := disposed.Mul(sellPrice).Div(buyPrice).Round(8)
	g.holdings[buyCoin] = g.holdings[buyCoin].Add(buyAmount)

	return record{
		"type":             "TRADE",
		"date":             formatDate(date),
		"sellCoin":         sellCoin,
		"buyCoin":          buyCoin,
		"buyAmount":        buyAmount.String(),
		"buyPricePerCoin":  buyPrice.String(),
		"sellPricePerCoin": sellPrice.String(),
	}
}

// disposalAmount picks part of the holding of coin, or more than it holds
// one time in twenty.
func (g *generator) disposalAmount(coin string) decimal.Decimal {
	held := g.holdings[coin]

	if rand.Intn(20) == 0 || !held.IsPositive() {
		return held.Add(randQuantity(coin))
	}

	fraction := decimal.NewFromFloat(0.1 + rand.Float64()*0.9)
	amount := held.Mul(fraction).Round(8)
	if !amount.IsPositive() {
		amount = held
	}
	g.holdings[coin] = held.Sub(amount)
	return amount
}

func (g *generator) price(coin string) decimal.Decimal {
	return decimal.NewFromFloat(g.prices[coin]).Round(4)
}

// Helper functions

func randomCoin() string {
	return coins[rand.Intn(len(coins))]
}

// randQuantity returns a quantity worth roughly 50 to 5000 in currency.
func randQuantity(coin string) decimal.Decimal {
	value := 50 + rand.Float64()*4950
	return decimal.NewFromFloat(value / basePrices[coin]).Round(6)
}

func formatDate(date time.Time) string {
	return date.Format("2006-01-02 15:04:05")
}

func formatRow(r record) string {
	cells := make([]string, len(columns))
	for i, column := range columns {
		cells[i] = r[column]
	}
	return strings.Join(cells, "\t") + "\n"
}

func estimateJSONSize(r record) int {
	size := 2
	for key, value := range r {
		size += len(key) + len(value) + 6
	}
	return size
}
