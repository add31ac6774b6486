package travel

import (
	"context"
	"fmt"
	"time"

	"github.com/hupe1980/tripmesh/tool"
)

const defaultActivityCost = 150.0

// NewSearchFlightsTool returns the flight search collaborator. The canned
// catalog mirrors what a real flight API would return: a handful of priced
// options between the requested origin and destination.
func NewSearchFlightsTool() tool.Tool {
	return tool.NewFunctionTool(
		"search_flights",
		"Search for flights based on origin, destination, and dates",
		func(_ context.Context, args map[string]any) (tool.Result, error) {
			origin, _ := args["origin"].(string)
			destination, _ := args["destination"].(string)
			if origin == "" || destination == "" {
				return tool.Errorf("origin and destination are required"), nil
			}

			return tool.Success(map[string]any{
				"flights": []any{
					map[string]any{"airline": "Pacific Wings", "price": 500.0, "duration": "12h", "stops": 1},
					map[string]any{"airline": "Meridian Air", "price": 780.0, "duration": "10h", "stops": 0},
				},
				"origin":      origin,
				"destination": destination,
			}), nil
		},
	)
}

// NewSearchHotelsTool returns the hotel search collaborator.
func NewSearchHotelsTool() tool.Tool {
	return tool.NewFunctionTool(
		"search_hotels",
		"Search for hotels based on location, dates, and budget",
		func(_ context.Context, args map[string]any) (tool.Result, error) {
			location, _ := args["location"].(string)
			if location == "" {
				return tool.Errorf("location is required"), nil
			}

			return tool.Success(map[string]any{
				"hotels": []any{
					map[string]any{"name": "Sakura Garden Hotel", "price": 200.0, "rating": 4.5, "amenities": []any{"pool", "gym"}},
					map[string]any{"name": "Harbor View Inn", "price": 140.0, "rating": 4.1, "amenities": []any{"breakfast"}},
				},
				"location": location,
			}), nil
		},
	)
}

// NewWeatherTool returns the weather collaborator. With a base URL it calls
// the upstream forecast API over HTTP; without one it serves a canned
// forecast so the pipeline stays runnable offline.
func NewWeatherTool(baseURL, apiKey string) tool.Tool {
	if baseURL != "" {
		return tool.NewHTTPTool(
			"get_weather",
			"Fetch the weather forecast for a given city",
			baseURL,
			func(o *tool.HTTPToolOptions) { o.APIKey = apiKey },
		)
	}

	return tool.NewFunctionTool(
		"get_weather",
		"Fetch the weather forecast for a given city",
		func(_ context.Context, args map[string]any) (tool.Result, error) {
			city, _ := args["q"].(string)
			if city == "" {
				return tool.Errorf("city is required"), nil
			}

			return tool.Success(map[string]any{
				"forecast": []any{
					map[string]any{"day": 1, "condition": "sunny", "temp_c": 21.0},
					map[string]any{"day": 2, "condition": "cloudy", "temp_c": 18.0},
					map[string]any{"day": 3, "condition": "sunny", "temp_c": 22.0},
				},
				"city": city,
			}), nil
		},
	)
}

// NewLocalTimeTool returns the local-time collaborator. It reads the
// destination's timezone and local time from the same upstream API the
// weather collaborator uses (the location block of a current-conditions
// response); without a base URL it serves UTC so the pipeline stays runnable
// offline.
func NewLocalTimeTool(baseURL, apiKey string) tool.Tool {
	const (
		name        = "get_local_time"
		description = "Fetch the current local time and timezone for a given city"
	)

	if baseURL != "" {
		upstream := tool.NewHTTPTool(name, description, baseURL,
			func(o *tool.HTTPToolOptions) { o.APIKey = apiKey })

		return tool.NewFunctionTool(name, description,
			func(ctx context.Context, args map[string]any) (tool.Result, error) {
				res, err := upstream.Call(ctx, args)
				if err != nil || res.IsError() {
					return res, err
				}

				location, ok := res.Payload["location"].(map[string]any)
				if !ok {
					return tool.Errorf("no location block in response"), nil
				}

				return tool.Success(map[string]any{
					"city":       location["name"],
					"timezone":   location["tz_id"],
					"local_time": location["localtime"],
				}), nil
			},
		)
	}

	return tool.NewFunctionTool(name, description,
		func(_ context.Context, args map[string]any) (tool.Result, error) {
			city, _ := args["q"].(string)
			if city == "" {
				return tool.Errorf("city is required"), nil
			}

			return tool.Success(map[string]any{
				"city":       city,
				"timezone":   "UTC",
				"local_time": time.Now().UTC().Format("2006-01-02 15:04"),
			}), nil
		},
	)
}

// NewCreateItineraryTool returns the itinerary designer collaborator. On
// later loop iterations it reads the previous budget verdict and trims the
// most expensive remaining activity, so each refinement pass produces a
// cheaper plan.
func NewCreateItineraryTool() tool.Tool {
	return tool.NewFunctionTool(
		"create_itinerary",
		"Create a daily itinerary based on activities and weather",
		func(_ context.Context, args map[string]any) (tool.Result, error) {
			activities := stringSlice(args["preferred_activities"])

			// Refinement: drop one activity per over-budget verdict.
			if analysis, ok := args["budget_analysis"].(map[string]any); ok {
				if within, ok := analysis["within_budget"].(bool); ok && !within && len(activities) > 0 {
					activities = activities[:len(activities)-1]
				}
			}

			days := forecastDays(args["weather_forecast"])
			if days == 0 {
				days = 3
			}

			itinerary := map[string]any{}
			for d := 1; d <= days; d++ {
				dayPlan := map[string]any{"activities": []any{}, "weather": "unknown"}
				if len(activities) > 0 {
					dayPlan["activities"] = []any{activities[(d-1)%len(activities)]}
				}
				itinerary[fmt.Sprintf("day_%d", d)] = dayPlan
			}

			return tool.Success(map[string]any{
				"itinerary":     itinerary,
				"activities":    toAnySlice(activities),
				"activity_cost": float64(len(activities)) * defaultActivityCost,
			}), nil
		},
	)
}

// NewCheckBudgetTool returns the budget checker collaborator. It sums the
// cheapest flight, the cheapest hotel across the stay, and the planned
// activity cost, then compares the total against the requested budget.
func NewCheckBudgetTool() tool.Tool {
	return tool.NewFunctionTool(
		"check_budget",
		"Check if total costs are within budget",
		func(_ context.Context, args map[string]any) (tool.Result, error) {
			budget, ok := toFloat(args["budget"])
			if !ok {
				return tool.Errorf("budget is required"), nil
			}

			flightCost := cheapestPrice(args[StateFlightOptions], "flights", "price")
			hotelNight := cheapestPrice(args[StateHotelOptions], "hotels", "price")
			nights := nightsBetween(args["dates"])
			activityCost := 0.0
			if itin, ok := args[StateItinerary].(map[string]any); ok {
				if c, ok := toFloat(itin["activity_cost"]); ok {
					activityCost = c
				}
			}

			breakdown := map[string]any{
				"flights":    flightCost,
				"hotels":     hotelNight * float64(nights),
				"activities": activityCost,
			}
			total := flightCost + hotelNight*float64(nights) + activityCost

			return tool.Success(map[string]any{
				"within_budget": total <= budget,
				"total_cost":    total,
				"breakdown":     breakdown,
			}), nil
		},
	)
}

// NewRequestApprovalTool returns the approval collaborator. A plan within
// budget is approved outright; anything else is handed off for human review
// as a pending result.
func NewRequestApprovalTool() tool.Tool {
	return tool.NewFunctionTool(
		"request_human_approval",
		"Request human approval for the proposed itinerary",
		func(_ context.Context, args map[string]any) (tool.Result, error) {
			within, _ := boolField(args[StateBudgetAnalysis], "within_budget")
			if within {
				return tool.Success(map[string]any{
					"approved": true,
					"reason":   "itinerary within budget",
				}), nil
			}

			return tool.Pending(map[string]any{
				"approved":                false,
				"reason":                  "over budget after refinement",
				"requires_human_approval": true,
			}), nil
		},
	)
}

func stringSlice(v any) []string {
	items, ok := v.([]any)
	if !ok {
		if typed, ok := v.([]string); ok {
			out := make([]string, len(typed))
			copy(out, typed)
			return out
		}
		return nil
	}
	out := make([]string, 0, len(items))
	for _, item := range items {
		if s, ok := item.(string); ok {
			out = append(out, s)
		}
	}
	return out
}

func toAnySlice(items []string) []any {
	out := make([]any, len(items))
	for i, s := range items {
		out[i] = s
	}
	return out
}

func toFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	}
	return 0, false
}

func boolField(v any, field string) (bool, bool) {
	m, ok := v.(map[string]any)
	if !ok {
		return false, false
	}
	b, ok := m[field].(bool)
	return b, ok
}

func forecastDays(v any) int {
	m, ok := v.(map[string]any)
	if !ok {
		return 0
	}
	days, ok := m["forecast"].([]any)
	if !ok {
		return 0
	}
	return len(days)
}

// cheapestPrice scans a result payload's option list for the lowest price.
func cheapestPrice(v any, listKey, priceKey string) float64 {
	m, ok := v.(map[string]any)
	if !ok {
		return 0
	}
	items, ok := m[listKey].([]any)
	if !ok {
		return 0
	}

	best := 0.0
	for _, item := range items {
		option, ok := item.(map[string]any)
		if !ok {
			continue
		}
		price, ok := toFloat(option[priceKey])
		if !ok {
			continue
		}
		if best == 0 || price < best {
			best = price
		}
	}
	return best
}

// nightsBetween derives the stay length from a {start, end} date mapping.
// Unparseable or missing dates fall back to a 5-night stay.
func nightsBetween(v any) int {
	const layout = "2006-01-02"

	dates, ok := v.(map[string]any)
	if !ok {
		return 5
	}
	startStr, _ := dates["start"].(string)
	endStr, _ := dates["end"].(string)

	start, err1 := time.Parse(layout, startStr)
	end, err2 := time.Parse(layout, endStr)
	if err1 != nil || err2 != nil || !end.After(start) {
		return 5
	}
	return int(end.Sub(start).Hours() / 24)
}
