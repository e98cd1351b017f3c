package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"strings"

	"wandersmart/internal/ai"
	"wandersmart/internal/config"
	"wandersmart/internal/itinerary"
	"wandersmart/internal/logging"
	"wandersmart/internal/service"
)

func main() {
	name := flag.String("name", "Traveller", "traveller name")
	destination := flag.String("destination", "Paris", "where to go")
	budget := flag.Float64("budget", 2500, "total budget in USD (500-10000)")
	start := flag.String("start", "2026-06-01", "start date, YYYY-MM-DD")
	end := flag.String("end", "2026-06-07", "end date, YYYY-MM-DD")
	interests := flag.String("interests", "History,Food", "comma separated interests")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}
	logger, closer, err := logging.New(cfg.Logging)
	if err != nil {
		log.Fatal(err)
	}
	defer closer.Close()

	ctx, cancel := context.WithTimeout(context.Background(), cfg.AI.Timeout)
	defer cancel()

	var model ai.TextModel
	if cfg.AI.Provider == config.ProviderOpenAI {
		model = ai.NewOpenAIModel(cfg.AI.OpenAIKey, cfg.AI.Model)
	} else {
		gm, err := ai.NewGeminiModel(ctx, cfg.AI.GeminiKey, cfg.AI.Model)
		if err != nil {
			log.Fatalf("Failed to initialize AI model: %v", err)
		}
		defer gm.Close()
		model = gm
	}

	req := service.TripRequest{
		Name:        *name,
		Destination: *destination,
		Budget:      *budget,
		StartDate:   *start,
		EndDate:     *end,
	}
	for _, s := range strings.Split(*interests, ",") {
		if s = strings.TrimSpace(s); s != "" {
			req.Interests = append(req.Interests, s)
		}
	}

	crew := ai.NewCrew(model, ai.DefaultTasks(), logger)
	processor := itinerary.NewProcessor(logger, itinerary.Options{Repair: cfg.Decode.Repair, MaxDepth: cfg.Decode.MaxDepth})
	planner := service.NewTripPlanner(crew, nil, processor, logger)

	plan, err := planner.Plan(ctx, req)
	if err != nil {
		log.Fatalf("Error planning trip: %v", err)
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	fmt.Println("Itinerary:")
	_ = enc.Encode(plan.Itinerary)
	fmt.Println("Raw values:")
	_ = enc.Encode(plan.RawValues)
	fmt.Printf("Token usage: %+v\n", plan.TokenUsage)
}
