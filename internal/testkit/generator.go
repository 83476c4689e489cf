package testkit

import (
	"encoding/csv"
	"fmt"
	"math/rand"
	"os"
	"strconv"
	"time"

	"cartsight/domain/order"
)

// GeneratorConfig configures the synthetic order generator.
type GeneratorConfig struct {
	OrderCount      int     `json:"order_count"`
	AbandonRate     float64 `json:"abandon_rate"`
	MissingCellRate float64 `json:"missing_cell_rate"`
	StartDate       time.Time
	EndDate         time.Time
	Seed            int64 `json:"seed"`
}

// DefaultGeneratorConfig returns sensible defaults for synthetic data.
func DefaultGeneratorConfig() GeneratorConfig {
	return GeneratorConfig{
		OrderCount:      5000,
		AbandonRate:     0.27,
		MissingCellRate: 0.02,
		StartDate:       time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		EndDate:         time.Date(2024, 6, 30, 23, 59, 59, 0, time.UTC),
		Seed:            42,
	}
}

var (
	categories = []string{
		"bed_bath_table", "health_beauty", "sports_leisure", "furniture_decor",
		"computers_accessories", "housewares", "watches_gifts", "telephony",
		"garden_tools", "auto", "toys", "cool_stuff", "perfumery", "baby",
		"electronics", "stationery", "fashion_bags_accessories", "pet_shop",
	}
	paymentTypes = []string{"credit_card", "boleto", "voucher", "debit_card"}
	states       = []string{"SP", "RJ", "MG", "RS", "PR", "SC", "BA", "DF", "ES", "GO", "PE", "CE"}
)

// OrderGenerator produces a deterministic synthetic abandonment dataset.
// The same seed always yields the same rows, so fixtures stay stable across
// test runs.
type OrderGenerator struct {
	config GeneratorConfig
	rng    *rand.Rand
}

// NewOrderGenerator creates a generator for the given config.
func NewOrderGenerator(config GeneratorConfig) *OrderGenerator {
	return &OrderGenerator{
		config: config,
		rng:    rand.New(rand.NewSource(config.Seed)),
	}
}

// Generate produces the synthetic rows. Abandonment probability is skewed
// per category so breakdowns have visible structure instead of uniform noise.
func (g *OrderGenerator) Generate() []order.Order {
	rows := make([]order.Order, 0, g.config.OrderCount)
	window := g.config.EndDate.Sub(g.config.StartDate)

	for i := 0; i < g.config.OrderCount; i++ {
		catIdx := g.rng.Intn(len(categories))

		// Category index nudges the abandonment probability up or down.
		rate := g.config.AbandonRate + 0.15*(float64(catIdx)/float64(len(categories))-0.5)
		if rate < 0.05 {
			rate = 0.05
		}

		o := order.Order{
			Category:    categories[catIdx],
			PaymentType: paymentTypes[g.rng.Intn(len(paymentTypes))],
			State:       states[g.rng.Intn(len(states))],
			PurchasedAt: g.config.StartDate.Add(time.Duration(g.rng.Int63n(int64(window)))),
			CartValue:   g.cartValue(),
		}

		if g.rng.Float64() < rate {
			o.Abandoned = 1
		} else {
			o.Completed = 1
		}

		rows = append(rows, o)
	}
	return rows
}

// cartValue draws a log-normal-ish basket amount in the 10..1000 range.
func (g *OrderGenerator) cartValue() float64 {
	v := 60 * (1 + g.rng.ExpFloat64())
	if v > 1000 {
		v = 1000
	}
	return float64(int(v*100)) / 100
}

// WriteCSV writes the generated rows as an analysis dataset file, blanking
// a fraction of numeric cells per MissingCellRate to exercise the engine's
// null handling.
func (g *OrderGenerator) WriteCSV(path string) error {
	rows := g.Generate()

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create dataset file: %w", err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	defer w.Flush()

	header := []string{
		order.ColPurchasedAt,
		order.ColAbandoned,
		order.ColCompleted,
		order.ColCartValue,
		order.ColCategory,
		order.ColPaymentType,
		order.ColState,
	}
	if err := w.Write(header); err != nil {
		return err
	}

	for _, o := range rows {
		cartCell := strconv.FormatFloat(o.CartValue, 'f', 2, 64)
		if g.rng.Float64() < g.config.MissingCellRate {
			cartCell = ""
		}
		record := []string{
			o.PurchasedAt.Format("2006-01-02 15:04:05"),
			strconv.Itoa(int(o.Abandoned)),
			strconv.Itoa(int(o.Completed)),
			cartCell,
			o.Category,
			o.PaymentType,
			o.State,
		}
		if err := w.Write(record); err != nil {
			return err
		}
	}

	return w.Error()
}
