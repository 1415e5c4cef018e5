package postgresadapter

import (
	"encoding/json"
	"time"

	"pressroom/contexts/release-lifecycle/monitoring-service/domain/entities"
)

type monitoringModel struct {
	MonitoringID        string     `gorm:"column:monitoring_id;primaryKey"`
	ReleaseID           string     `gorm:"column:release_id;uniqueIndex"`
	ReleaseTitle        string     `gorm:"column:release_title"`
	TargetWebsites      string     `gorm:"column:target_websites"`
	Frequency           string     `gorm:"column:frequency"`
	LastChecked         *time.Time `gorm:"column:last_checked"`
	Status              string     `gorm:"column:status;index"`
	ConsecutiveFailures int        `gorm:"column:consecutive_failures"`
	Keywords            string     `gorm:"column:keywords"`
	CreatedAt           time.Time  `gorm:"column:created_at"`
	UpdatedAt           time.Time  `gorm:"column:updated_at"`
	Version             int64      `gorm:"column:version"`
}

func (monitoringModel) TableName() string {
	return "monitorings"
}

type resultModel struct {
	ResultID     string    `gorm:"column:result_id;primaryKey"`
	MonitoringID string    `gorm:"column:monitoring_id;uniqueIndex:idx_monitoring_results_found_url,priority:1"`
	FoundURL     string    `gorm:"column:found_url;uniqueIndex:idx_monitoring_results_found_url,priority:2"`
	FoundAt      time.Time `gorm:"column:found_at"`
	WebsiteName  string    `gorm:"column:website_name"`
	Excerpt      string    `gorm:"column:excerpt"`
	Verified     int8      `gorm:"column:verified"`
	CreatedAt    time.Time `gorm:"column:created_at"`
}

func (resultModel) TableName() string {
	return "monitoring_results"
}

type cycleModel struct {
	CycleID      string    `gorm:"column:cycle_id;primaryKey"`
	MonitoringID string    `gorm:"column:monitoring_id;index"`
	StartedAt    time.Time `gorm:"column:started_at"`
	FinishedAt   time.Time `gorm:"column:finished_at"`
	Attempts     int       `gorm:"column:attempts"`
	Outcome      string    `gorm:"column:outcome"`
	NewResults   int       `gorm:"column:new_results"`
	Error        string    `gorm:"column:error"`
}

func (cycleModel) TableName() string {
	return "monitoring_check_cycles"
}

func monitoringModelFromEntity(item entities.Monitoring) monitoringModel {
	return monitoringModel{
		MonitoringID:        item.MonitoringID,
		ReleaseID:           item.ReleaseID,
		ReleaseTitle:        item.ReleaseTitle,
		TargetWebsites:      encodeStrings(item.TargetWebsites),
		Frequency:           string(item.Frequency),
		LastChecked:         utcPtr(item.LastChecked),
		Status:              string(item.Status),
		ConsecutiveFailures: item.ConsecutiveFailures,
		Keywords:            encodeStrings(item.Keywords),
		CreatedAt:           item.CreatedAt.UTC(),
		UpdatedAt:           item.UpdatedAt.UTC(),
		Version:             item.Version,
	}
}

func monitoringUpdates(item entities.Monitoring, version int64) map[string]any {
	return map[string]any{
		"release_title":        item.ReleaseTitle,
		"target_websites":      encodeStrings(item.TargetWebsites),
		"frequency":            string(item.Frequency),
		"last_checked":         utcPtr(item.LastChecked),
		"status":               string(item.Status),
		"consecutive_failures": item.ConsecutiveFailures,
		"keywords":             encodeStrings(item.Keywords),
		"updated_at":           item.UpdatedAt.UTC(),
		"version":              version,
	}
}

func (m monitoringModel) toEntity() entities.Monitoring {
	return entities.Monitoring{
		MonitoringID:        m.MonitoringID,
		ReleaseID:           m.ReleaseID,
		ReleaseTitle:        m.ReleaseTitle,
		TargetWebsites:      decodeStrings(m.TargetWebsites),
		Frequency:           entities.Frequency(m.Frequency),
		LastChecked:         utcPtr(m.LastChecked),
		Status:              entities.MonitoringStatus(m.Status),
		ConsecutiveFailures: m.ConsecutiveFailures,
		Keywords:            decodeStrings(m.Keywords),
		CreatedAt:           m.CreatedAt.UTC(),
		UpdatedAt:           m.UpdatedAt.UTC(),
		Version:             m.Version,
	}
}

func resultModelFromEntity(item entities.MonitoringResult) resultModel {
	return resultModel{
		ResultID:     item.ResultID,
		MonitoringID: item.MonitoringID,
		FoundURL:     item.FoundURL,
		FoundAt:      item.FoundAt.UTC(),
		WebsiteName:  item.WebsiteName,
		Excerpt:      item.Excerpt,
		Verified:     int8(item.Verified),
		CreatedAt:    item.CreatedAt.UTC(),
	}
}

func (m resultModel) toEntity() entities.MonitoringResult {
	return entities.MonitoringResult{
		ResultID:     m.ResultID,
		MonitoringID: m.MonitoringID,
		FoundURL:     m.FoundURL,
		FoundAt:      m.FoundAt.UTC(),
		WebsiteName:  m.WebsiteName,
		Excerpt:      m.Excerpt,
		Verified:     entities.Verified(m.Verified),
		CreatedAt:    m.CreatedAt.UTC(),
	}
}

func cycleModelFromEntity(item entities.CheckCycle) cycleModel {
	return cycleModel{
		CycleID:      item.CycleID,
		MonitoringID: item.MonitoringID,
		StartedAt:    item.StartedAt.UTC(),
		FinishedAt:   item.FinishedAt.UTC(),
		Attempts:     item.Attempts,
		Outcome:      string(item.Outcome),
		NewResults:   item.NewResults,
		Error:        item.Error,
	}
}

func (m cycleModel) toEntity() entities.CheckCycle {
	return entities.CheckCycle{
		CycleID:      m.CycleID,
		MonitoringID: m.MonitoringID,
		StartedAt:    m.StartedAt.UTC(),
		FinishedAt:   m.FinishedAt.UTC(),
		Attempts:     m.Attempts,
		Outcome:      entities.CycleOutcome(m.Outcome),
		NewResults:   m.NewResults,
		Error:        m.Error,
	}
}

func encodeStrings(values []string) string {
	if len(values) == 0 {
		return "[]"
	}
	raw, err := json.Marshal(values)
	if err != nil {
		return "[]"
	}
	return string(raw)
}

func decodeStrings(raw string) []string {
	values := []string{}
	if raw == "" {
		return values
	}
	if err := json.Unmarshal([]byte(raw), &values); err != nil {
		return []string{}
	}
	return values
}

func utcPtr(value *time.Time) *time.Time {
	if value == nil {
		return nil
	}
	utc := value.UTC()
	return &utc
}
