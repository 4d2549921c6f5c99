package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Domenick1991/flightbooking/config"
	"github.com/Domenick1991/flightbooking/internal/dataset"
	"github.com/Domenick1991/flightbooking/internal/repository"
)

func main() {
	cfgPath := os.Getenv("CONFIG_PATH")
	if cfgPath == "" {
		cfgPath = "config.yaml"
	}

	cfg, err := config.LoadConfig(cfgPath)
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	seed := flag.Uint64("seed", cfg.Generator.Seed, "random seed")
	year := flag.Int("year", cfg.Generator.Year, "year of the generated flights")
	month := flag.Int("month", cfg.Generator.Month, "month of the generated flights")
	flag.Parse()

	if cfg.Storage.Driver == config.StorageDriverMemory {
		log.Fatalf("nothing to import into: storage driver %q is process local", cfg.Storage.Driver)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	started := time.Now()
	ds, err := dataset.NewGenerator(dataset.Options{
		Seed:  *seed,
		Year:  *year,
		Month: time.Month(*month),
	}).Generate()
	if err != nil {
		log.Fatalf("generate dataset: %v", err)
	}
	log.Printf("generated %s in %s", ds.Summary(), time.Since(started).Round(time.Millisecond))

	store, err := repository.Open(ctx, cfg)
	if err != nil {
		log.Fatalf("open store: %v", err)
	}
	defer func() {
		if err := store.Close(context.Background()); err != nil {
			log.Printf("close store: %v", err)
		}
	}()

	started = time.Now()
	if err := store.Importer.Import(ctx, ds); err != nil {
		log.Fatalf("import dataset into %s: %v", cfg.Storage.Driver, err)
	}
	log.Printf("imported into %s in %s", cfg.Storage.Driver, time.Since(started).Round(time.Millisecond))
}
