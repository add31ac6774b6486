// Package travel assembles the reference trip-planning pipeline: parallel
// data collection (flights, hotels, weather), an iterative planning loop
// (itinerary design + budget check) and a final approval pass, all wired
// over the tripmesh workflow primitives. The collaborators here stand in for
// real flight/hotel/weather providers; swap them via Options for production
// integrations.
package travel

// Shared-state keys owned by the pipeline's stages.
const (
	StateFlightOptions   = "flight_options"
	StateHotelOptions    = "hotel_options"
	StateWeatherForecast = "weather_forecast"
	StateLocalTime       = "local_time"
	StateItinerary       = "itinerary"
	StateBudgetAnalysis  = "budget_analysis"
	StateApprovalStatus  = "approval_status"
)
