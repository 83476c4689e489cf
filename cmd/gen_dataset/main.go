// Command gen_dataset writes a synthetic analysis dataset into the reports
// directory so the dashboard has something to serve in development.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/joho/godotenv"

	"cartsight/internal/config"
	"cartsight/internal/testkit"
)

func main() {
	count := flag.Int("count", 5000, "number of synthetic orders")
	seed := flag.Int64("seed", 42, "generator seed")
	abandonRate := flag.Float64("abandon-rate", 0.27, "base abandonment rate")
	flag.Parse()

	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using system environment variables")
	}
	appConfig, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	if err := os.MkdirAll(appConfig.Data.ReportsDir, 0o755); err != nil {
		log.Fatalf("Failed to create reports directory: %v", err)
	}

	genConfig := testkit.DefaultGeneratorConfig()
	genConfig.OrderCount = *count
	genConfig.Seed = *seed
	genConfig.AbandonRate = *abandonRate

	name := fmt.Sprintf("analysis_dataset_%s.csv", time.Now().Format("20060102_150405"))
	path := filepath.Join(appConfig.Data.ReportsDir, name)

	generator := testkit.NewOrderGenerator(genConfig)
	if err := generator.WriteCSV(path); err != nil {
		log.Fatalf("Failed to write dataset: %v", err)
	}
	log.Printf("Wrote %d synthetic orders to %s", *count, path)
}
