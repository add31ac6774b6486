package travel

import (
	"github.com/hupe1980/tripmesh/core"
	"github.com/hupe1980/tripmesh/tool"
	"github.com/hupe1980/tripmesh/workflow"
)

// Options configures assembly of the travel workflow.
type Options struct {
	// MaxIterations caps the planning refinement loop. Defaults to 3.
	MaxIterations int
	// WeatherAPIURL / WeatherAPIKey configure the upstream forecast API.
	// Left empty, a canned offline forecast collaborator is used.
	WeatherAPIURL string
	WeatherAPIKey string
	// TimeAPIURL is the current-conditions endpoint the local-time
	// collaborator reads timezone data from, authenticated with the weather
	// key. Left empty, a UTC fallback is used.
	TimeAPIURL string

	// Collaborator overrides, primarily for tests and provider integrations.
	FlightFinder      tool.Tool
	HotelBooker       tool.Tool
	WeatherFetcher    tool.Tool
	TimeFetcher       tool.Tool
	ItineraryDesigner tool.Tool
	BudgetChecker     tool.Tool
	HumanApproval     tool.Tool
}

// NewWorkflow assembles the reference trip-planning pipeline:
//
//	TravelWorkflow (sequential)
//	├── DataCollection (parallel): flight_finder, hotel_booker, weather_fetcher, time_fetcher
//	├── PlanningRefinement (loop): itinerary_designer, budget_checker
//	└── ApprovalProcess (sequential): human_approval
//
// The loop iterates while the budget checker reports the plan over budget,
// up to MaxIterations passes. The terminal output is the approval status.
func NewWorkflow(optFns ...func(o *Options)) (*workflow.Sequential, error) {
	opts := Options{MaxIterations: 3}

	for _, fn := range optFns {
		fn(&opts)
	}

	if opts.FlightFinder == nil {
		opts.FlightFinder = NewSearchFlightsTool()
	}
	if opts.HotelBooker == nil {
		opts.HotelBooker = NewSearchHotelsTool()
	}
	if opts.WeatherFetcher == nil {
		opts.WeatherFetcher = NewWeatherTool(opts.WeatherAPIURL, opts.WeatherAPIKey)
	}
	if opts.TimeFetcher == nil {
		opts.TimeFetcher = NewLocalTimeTool(opts.TimeAPIURL, opts.WeatherAPIKey)
	}
	if opts.ItineraryDesigner == nil {
		opts.ItineraryDesigner = NewCreateItineraryTool()
	}
	if opts.BudgetChecker == nil {
		opts.BudgetChecker = NewCheckBudgetTool()
	}
	if opts.HumanApproval == nil {
		opts.HumanApproval = NewRequestApprovalTool()
	}

	dataCollection, err := workflow.NewParallel("DataCollection",
		workflow.NewStage("flight_finder", StateFlightOptions, opts.FlightFinder,
			workflow.WithInputs(flightInputs),
			workflow.WithStageDescription("Finds and compares flight options")),
		workflow.NewStage("hotel_booker", StateHotelOptions, opts.HotelBooker,
			workflow.WithInputs(hotelInputs),
			workflow.WithStageDescription("Finds and compares hotel options")),
		workflow.NewStage("weather_fetcher", StateWeatherForecast, opts.WeatherFetcher,
			workflow.WithInputs(weatherInputs),
			workflow.WithStageDescription("Fetches the destination forecast")),
		workflow.NewStage("time_fetcher", StateLocalTime, opts.TimeFetcher,
			workflow.WithInputs(timeInputs),
			workflow.WithStageDescription("Fetches the destination's local time and timezone")),
	)
	if err != nil {
		return nil, err
	}

	planning, err := workflow.NewLoop("PlanningRefinement", opts.MaxIterations, ContinueWhileOverBudget,
		workflow.NewStage("itinerary_designer", StateItinerary, opts.ItineraryDesigner,
			workflow.WithInputs(itineraryInputs),
			workflow.WithStageDescription("Designs the daily itinerary")),
		workflow.NewStage("budget_checker", StateBudgetAnalysis, opts.BudgetChecker,
			workflow.WithInputs(budgetInputs),
			workflow.WithStageDescription("Verifies the plan against the budget")),
	)
	if err != nil {
		return nil, err
	}

	approval := workflow.NewSequential("ApprovalProcess",
		workflow.NewStage("human_approval", StateApprovalStatus, opts.HumanApproval,
			workflow.WithInputs(approvalInputs),
			workflow.WithStageDescription("Requests approval for the final plan")),
	)

	return workflow.NewSequential("TravelWorkflow", dataCollection, planning, approval), nil
}

// ContinueWhileOverBudget keeps the planning loop iterating until the budget
// checker reports the plan within budget. Before the first verdict exists it
// votes to continue.
func ContinueWhileOverBudget(snap core.Snapshot) bool {
	within, ok := snap.GetBool(StateBudgetAnalysis, "within_budget")
	return !ok || !within
}

func flightInputs(rc *core.RunContext) map[string]any {
	return map[string]any{
		"origin":      rc.Request["origin"],
		"destination": rc.Request["destination"],
		"dates":       rc.Request["dates"],
	}
}

func hotelInputs(rc *core.RunContext) map[string]any {
	return map[string]any{
		"location": rc.Request["destination"],
		"dates":    rc.Request["dates"],
		"budget":   rc.Request["budget"],
	}
}

func weatherInputs(rc *core.RunContext) map[string]any {
	return map[string]any{
		"q":    rc.Request["destination"],
		"days": 7,
		"aqi":  "no",
	}
}

func timeInputs(rc *core.RunContext) map[string]any {
	return map[string]any{
		"q": rc.Request["destination"],
	}
}

func itineraryInputs(rc *core.RunContext) map[string]any {
	args := map[string]any{
		"preferred_activities": rc.Request["preferred_activities"],
	}
	for _, key := range []string{StateFlightOptions, StateHotelOptions, StateWeatherForecast, StateBudgetAnalysis} {
		if v, ok := rc.State.Get(key); ok {
			args[key] = v
		}
	}
	return args
}

func budgetInputs(rc *core.RunContext) map[string]any {
	args := map[string]any{
		"budget": rc.Request["budget"],
		"dates":  rc.Request["dates"],
	}
	for _, key := range []string{StateFlightOptions, StateHotelOptions, StateItinerary} {
		if v, ok := rc.State.Get(key); ok {
			args[key] = v
		}
	}
	return args
}

func approvalInputs(rc *core.RunContext) map[string]any {
	args := map[string]any{}
	for _, key := range []string{StateBudgetAnalysis, StateItinerary} {
		if v, ok := rc.State.Get(key); ok {
			args[key] = v
		}
	}
	return args
}
