package types

// AllocateRequest is the payload for POST /allocate.
type AllocateRequest struct {
	// Models to allocate. Empty means the default stack.
	// example: ["executive","coder"]
	Models []string `json:"models,omitempty" example:"[\"executive\",\"coder\"]"`
	// Hardware profile id. Empty means the server's configured profile.
	// example: generic_24gb
	Profile string `json:"profile,omitempty" example:"generic_24gb"`
	// Optional GPU memory override in GB (0 = profile value).
	// example: 24
	GPUMemGB float64 `json:"gpu_mem_gb,omitempty" example:"24"`
	// Minimum acceptable parallel degree per model (default 1).
	// example: 1
	MinParallel int `json:"min_parallel,omitempty" example:"1"`
}

// ObserveRequest records one task lifecycle event.
type ObserveRequest struct {
	// Task identifier.
	// example: group_12
	TaskID string `json:"task_id" example:"group_12"`
	// Free-form stage tag (starting, profiled, solved, failed, generating).
	// example: starting
	Stage string `json:"stage" example:"starting"`
	// Model that produced the event.
	// example: analyst
	Model string `json:"model" example:"analyst"`
	// Free-form category tag grouping related tasks.
	// example: color_remap
	Category string `json:"category,omitempty" example:"color_remap"`
	// Detail text; stored truncated.
	// example: profiling input grid
	Detail string `json:"detail,omitempty" example:"profiling input grid"`
}

// SuccessRequest records a successful approach for a category.
type SuccessRequest struct {
	// example: color_remap
	Category string `json:"category" example:"color_remap"`
	// example: flood fill BFS
	Approach string `json:"approach" example:"flood fill BFS"`
	// Number of tasks solved with this approach (default 1).
	// example: 3
	Count int `json:"count,omitempty" example:"3"`
	// Optional profile text for cross-reference.
	Profile string `json:"profile,omitempty"`
}

// FailureRequest records a failed approach for a category.
type FailureRequest struct {
	// example: color_remap
	Category string `json:"category" example:"color_remap"`
	// example: pixel-by-pixel comparison
	Approach string `json:"approach" example:"pixel-by-pixel comparison"`
}

// ProfileRequest stores a completed task profile.
type ProfileRequest struct {
	// example: group_12
	TaskID string `json:"task_id" example:"group_12"`
	// example: Grid rotation with color preservation
	Profile string `json:"profile" example:"Grid rotation with color preservation"`
}

// ContextRequest asks the Operator for advisory text before a generation call.
type ContextRequest struct {
	// example: group_13
	TaskID string `json:"task_id" example:"group_13"`
	// example: color_remap
	Category string `json:"category" example:"color_remap"`
	// example: Similar color pattern
	Profile string `json:"profile,omitempty" example:"Similar color pattern"`
	// Number of tasks in the upcoming group (default 1).
	// example: 5
	GroupSize int `json:"group_size,omitempty" example:"5"`
}

// ContextResponse wraps the advisory text. Context may be empty.
type ContextResponse struct {
	Context string `json:"context"`
}

// ModelsResponse wraps the model catalog returned by GET /models.
type ModelsResponse struct {
	Models []ModelSpec `json:"models"`
}

// ProfilesResponse wraps the hardware table returned by GET /profiles.
type ProfilesResponse struct {
	Profiles []HardwareProfile `json:"profiles"`
}

// StatusResponse is returned by GET /status.
type StatusResponse struct {
	// Context requests served by the Operator.
	// example: 14
	GroupsProcessed uint64 `json:"groups_processed" example:"14"`
	// Recorded successful approaches.
	// example: 6
	Successes int `json:"successful_approaches" example:"6"`
	// Recorded failed approaches.
	// example: 9
	Failures int `json:"failed_approaches" example:"9"`
	// Briefings that contributed advisory text.
	// example: 4
	Suggestions uint64 `json:"suggestions_generated" example:"4"`
	// Cached task profiles.
	// example: 11
	ProfilesCached int `json:"profiles_cached" example:"11"`
	// Total activity events observed.
	// example: 52
	Observations int `json:"total_observations" example:"52"`
	// Uptime of the server in seconds.
	// example: 3600
	UptimeSeconds int64 `json:"uptime_seconds" example:"3600"`
	// Server time in unix seconds.
	// example: 1700000000
	ServerTimeUnix int64 `json:"server_time_unix" example:"1700000000"`
}

// ErrorResponse is a consistent JSON error payload.
type ErrorResponse struct {
	// Error message.
	// example: invalid JSON body
	Error string `json:"error" example:"invalid JSON body"`
	// HTTP status code.
	// example: 400
	Code int `json:"code" example:"400"`
}
