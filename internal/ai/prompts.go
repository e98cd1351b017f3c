package ai

// DefaultTasks is the two-step travel crew: research first, then a JSON itinerary.
func DefaultTasks() []Task {
	return []Task{
		{
			Name:  "search_task",
			Agent: "research_specialist",
			Description: `Research a trip to {destination} ({destination_address}) between {start_date} and {end_date}
for a traveller with a total budget of ${budget} who is interested in: {interests}.
Find flight service providers, accommodation options, guided tours and useful travel resources.
Include prices and links where you can.`,
			ExpectedOutput: "A concise research summary grouped by flights, accommodations, tours and resources.",
		},
		{
			Name:  "itinerary_task",
			Agent: "travel_planner",
			Description: `Using the research, build a trip plan to {destination} from {start_date} to {end_date}
within a budget of ${budget}, focused on: {interests}.`,
			ExpectedOutput: `Only a JSON object, no commentary, with this shape:
{
  "destination": "string",
  "budget": "string",
  "interests": ["string"],
  "travel_details": {
    "flights": {"service_providers": [{"name": "string", "price": "string", "link": "string"}]},
    "accommodations": {"options": [{"name": "string", "price": "string", "link": "string"}]},
    "tours": {"options": [{"name": "string", "description": "string", "price": "string", "link": "string"}]}
  },
  "additional_resources": [{"title": "string", "link": "string"}]
}`,
		},
	}
}
