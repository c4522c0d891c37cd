package dto

type StopPayload struct {
	ID      string  `json:"id"`
	Name    string  `json:"name"`
	Address string  `json:"address,omitempty"`
	Lat     float64 `json:"lat"`
	Lon     float64 `json:"lon"`
}

type SearchRequest struct {
	Start             StopPayload `json:"start"`
	Keyword           string      `json:"keyword"`
	BrandNames        []string    `json:"brand_names,omitempty"`
	RadiusMeters      float64     `json:"radius_meters"`
	MinDistanceMeters float64     `json:"min_distance_meters"`
	MaxDistanceMeters float64     `json:"max_distance_meters"`
	MinStops          int         `json:"min_stops"`
	MaxStops          int         `json:"max_stops"`
	MaxOracleCalls    int         `json:"max_oracle_calls,omitempty"`
}

type SearchErrorResponse struct {
	Kind    string `json:"kind"`
	Message string `json:"message"`
}

type SearchResponse struct {
	OK             bool                 `json:"ok"`
	Stops          []StopPayload        `json:"stops,omitempty"`
	DistanceMeters float64              `json:"distance_meters,omitempty"`
	Verified       bool                 `json:"verified"`
	Error          *SearchErrorResponse `json:"error,omitempty"`
}

type ProgressEvent struct {
	Stage               string `json:"stage"`
	Message             string `json:"message"`
	CandidatesFound     int    `json:"candidates_found,omitempty"`
	CandidatesEvaluated int    `json:"candidates_evaluated,omitempty"`
	OracleCallsUsed     int    `json:"oracle_calls_used,omitempty"`
}
