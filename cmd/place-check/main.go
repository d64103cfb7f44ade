// README: Interactive place-type checker; searches a query and prints the resolved details.
package main

import (
	"bufio"
	"context"
	"fmt"
	"log"
	"os"
	"strings"

	"wander/internal/maps"
)

func main() {
	apiKey := os.Getenv("GOOGLE_MAPS_API_KEY")
	if apiKey == "" {
		log.Fatal("GOOGLE_MAPS_API_KEY environment variable not set")
	}

	svc, err := maps.NewPlacesService(apiKey, nil)
	if err != nil {
		log.Fatalf("Failed to initialize places service: %v", err)
	}

	ctx := context.Background()
	scanner := bufio.NewScanner(os.Stdin)

	for {
		fmt.Print("\nEnter a place to look up (q to quit): ")
		if !scanner.Scan() {
			break
		}
		query := strings.TrimSpace(scanner.Text())
		if query == "" {
			continue
		}
		if strings.EqualFold(query, "q") {
			break
		}

		checkPlace(ctx, svc, query)
	}
}

func checkPlace(ctx context.Context, svc *maps.PlacesService, query string) {
	suggestions, err := svc.GetPlaceSuggestions(ctx, query)
	if err != nil {
		fmt.Printf("lookup failed: %v\n", err)
		return
	}
	if len(suggestions) == 0 {
		fmt.Printf("no results for %q\n", query)
		return
	}

	first := suggestions[0]
	fmt.Printf("\n=== %s ===\n", first.Description)

	details, err := svc.GetPlaceDetails(ctx, first.PlaceID)
	if err != nil {
		fmt.Printf("details failed: %v\n", err)
		return
	}
	if details == nil {
		fmt.Println("no details available")
		return
	}

	fmt.Printf("Address:     %s\n", details.Address)
	fmt.Printf("Price level: %d\n", details.PriceLevel)
	if len(details.OpeningHours) > 0 {
		fmt.Println("Opening hours:")
		for _, line := range details.OpeningHours {
			fmt.Printf("  %s\n", line)
		}
	}
	if len(details.Reviews) > 0 {
		fmt.Printf("Sample review: %s\n", details.Reviews[0])
	}
}
