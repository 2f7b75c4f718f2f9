// Package main lists the OMDb metadata cached in a badger directory.
//
// Usage:
//
//	CACHE_PATH=~/.cinemood/cache go run ./cmd/cacheinspect
//	go run ./cmd/cacheinspect -path ./cache -misses
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/cinemood/cinemood-server/internal/store"
)

var (
	path   = flag.String("path", "", "Cache directory (default: $CACHE_PATH)")
	ttl    = flag.Duration("ttl", store.DefaultTTL, "Entries older than this are skipped")
	misses = flag.Bool("misses", false, "Also list titles OMDb did not know")
)

func main() {
	flag.Parse()

	dbPath := *path
	if dbPath == "" {
		dbPath = os.Getenv("CACHE_PATH")
	}
	if dbPath == "" {
		log.Fatal("No cache directory: pass -path or set CACHE_PATH")
	}

	s, err := store.New(store.Options{Path: dbPath, TTL: *ttl, ReadOnly: true})
	if err != nil {
		log.Fatalf("Failed to open cache: %v", err)
	}
	defer s.Close()

	fmt.Println("=== Metadata Cache Inspection ===")
	fmt.Println()

	found, notFound := 0, 0
	err = s.EachCachedMetadata(context.Background(), func(key string, cached *store.CachedMetadata) error {
		age := time.Since(cached.FetchedAt).Round(time.Minute)
		if cached.NotFound {
			notFound++
			if *misses {
				fmt.Printf("MISS  %s (%s ago)\n", cached.Title, age)
			}
			return nil
		}

		found++
		d := cached.Details
		fmt.Printf("%s\n", d.Title)
		fmt.Printf("  Key: %s\n", key)
		fmt.Printf("  Released: %s  Rating: %s\n", d.ReleaseDate, d.Rating)
		if d.IMDbID != "" {
			fmt.Printf("  IMDb: %s\n", d.IMDbID)
		}
		fmt.Printf("  Fetched: %s ago\n", age)
		return nil
	})
	if err != nil {
		log.Fatalf("Failed to read cache: %v", err)
	}

	fmt.Println()
	fmt.Println("=== Summary ===")
	fmt.Printf("Cached titles: %d\n", found)
	fmt.Printf("Known misses:  %d\n", notFound)
}
