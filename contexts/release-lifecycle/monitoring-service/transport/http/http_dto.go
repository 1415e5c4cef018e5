package http

import "time"

type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type CreateMonitoringRequest struct {
	ReleaseID  string   `json:"release_id"`
	ExtraSites []string `json:"extra_sites"`
	Keywords   []string `json:"keywords"`
	Frequency  string   `json:"frequency"`
}

type UpdateTargetsRequest struct {
	TargetWebsites []string `json:"target_websites"`
	Frequency      string   `json:"frequency"`
	Keywords       []string `json:"keywords,omitempty"`
}

type VerifyResultRequest struct {
	Verified bool `json:"verified"`
}

type MonitoringResultDTO struct {
	ResultID     string    `json:"result_id"`
	MonitoringID string    `json:"monitoring_id"`
	FoundURL     string    `json:"found_url"`
	FoundAt      time.Time `json:"found_at"`
	WebsiteName  string    `json:"website_name"`
	Excerpt      string    `json:"excerpt,omitempty"`
	// Verified is null until a person reviews the result.
	Verified *bool `json:"verified"`
}

type MonitoringDTO struct {
	MonitoringID        string                `json:"monitoring_id"`
	ReleaseID           string                `json:"release_id"`
	ReleaseTitle        string                `json:"release_title"`
	TargetWebsites      []string              `json:"target_websites"`
	Frequency           string                `json:"frequency"`
	LastChecked         *time.Time            `json:"last_checked"`
	Status              string                `json:"status"`
	ConsecutiveFailures int                   `json:"consecutive_failures"`
	Keywords            []string              `json:"keywords"`
	CreatedAt           time.Time             `json:"created_at"`
	UpdatedAt           time.Time             `json:"updated_at"`
	Results             []MonitoringResultDTO `json:"results"`
}

type CheckCycleDTO struct {
	CycleID    string    `json:"cycle_id"`
	StartedAt  time.Time `json:"started_at"`
	FinishedAt time.Time `json:"finished_at"`
	Attempts   int       `json:"attempts"`
	Outcome    string    `json:"outcome"`
	NewResults int       `json:"new_results"`
	Error      string    `json:"error,omitempty"`
}

type MonitoringResponse struct {
	Monitoring MonitoringDTO `json:"monitoring"`
	Created    bool          `json:"created,omitempty"`
}

type ListMonitoringsResponse struct {
	Items []MonitoringDTO `json:"items"`
}

type CheckCycleResponse struct {
	Cycle      CheckCycleDTO         `json:"cycle"`
	Monitoring MonitoringDTO         `json:"monitoring"`
	NewResults []MonitoringResultDTO `json:"new_results"`
	Paused     bool                  `json:"paused"`
}

type ListCyclesResponse struct {
	Items []CheckCycleDTO `json:"items"`
}

type MonitoringResultResponse struct {
	Result MonitoringResultDTO `json:"result"`
}
