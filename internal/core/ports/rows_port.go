package ports

import "github.com/sm8ta/webike_fleet_analytics_nikita/internal/core/domain"

// RowSource hands out cleaned flat records for each fleet export. The
// fleet graph is rebuilt from these three feeds.
type RowSource interface {
	StationRows() ([]domain.Row, error)
	TripRows() ([]domain.Row, error)
	MaintenanceRows() ([]domain.Row, error)
}
