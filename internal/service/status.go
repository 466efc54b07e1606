package service

import (
	"context"

	"lol-tracker/internal/constants"
	"lol-tracker/internal/domain"
	"lol-tracker/internal/riot"

	"github.com/rs/zerolog"
)

const (
	StatusOnline      = "online"
	StatusMaintenance = "maintenance"
	StatusIncident    = "incident"
	StatusUnknown     = "unknown"
)

type StatusService struct {
	riot   Riot
	logger zerolog.Logger
}

func NewStatusService(riot Riot, logger zerolog.Logger) *StatusService {
	return &StatusService{riot: riot, logger: logger}
}

// Status never fails: when Riot cannot be reached the platform is reported as unknown with the error attached.
func (s *StatusService) Status(ctx context.Context, region string) *domain.PlatformStatus {
	ctx, cancel := context.WithTimeout(ctx, constants.UpstreamTimeout)
	defer cancel()

	out := &domain.PlatformStatus{
		Region:       region,
		Maintenances: []domain.StatusNotice{},
		Incidents:    []domain.StatusNotice{},
	}

	data, err := s.riot.PlatformStatus(ctx, region)
	if err != nil {
		s.logger.Warn().Err(err).Str("region", region).Msg("failed to fetch platform status")
		out.Status = StatusUnknown
		out.Error = err.Error()
		return out
	}

	out.Name = data.Name
	for _, m := range data.Maintenances {
		out.Maintenances = append(out.Maintenances, toNotice(m))
	}
	for _, i := range data.Incidents {
		out.Incidents = append(out.Incidents, toNotice(i))
	}
	out.Status = overallStatus(data)
	return out
}

// overallStatus ranks an in-progress maintenance above any incident.
func overallStatus(data *riot.PlatformStatus) string {
	for _, m := range data.Maintenances {
		if m.MaintenanceStatus == "in_progress" {
			return StatusMaintenance
		}
	}
	if len(data.Incidents) > 0 {
		return StatusIncident
	}
	return StatusOnline
}

func toNotice(e riot.StatusEntry) domain.StatusNotice {
	updated := e.UpdatedAt
	if updated == "" {
		updated = e.CreatedAt
	}
	return domain.StatusNotice{
		ID:        e.ID,
		Severity:  e.IncidentSeverity,
		State:     e.MaintenanceStatus,
		Title:     e.Title(constants.StatusLocale),
		UpdatedAt: updated,
	}
}
