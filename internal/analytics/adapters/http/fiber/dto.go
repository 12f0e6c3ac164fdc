package fiber

type StatsResponse struct {
	Entity    string `json:"entity"`
	Operation string `json:"operation"`
	Data      any    `json:"data"`
}

type ErrorResponse struct {
	Error   string `json:"error" example:"invalid_query"`
	Message string `json:"message,omitempty" example:"invalid time range"`
}
