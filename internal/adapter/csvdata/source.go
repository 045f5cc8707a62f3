package csvdata

import "github.com/sm8ta/webike_fleet_analytics_nikita/internal/core/domain"

// FileSource implements ports.RowSource over the three cleaned CSV
// exports. The paths usually point at the output of the clean stage.
type FileSource struct {
	StationsPath    string
	TripsPath       string
	MaintenancePath string
}

func (s FileSource) StationRows() ([]domain.Row, error) {
	return ReadRows(s.StationsPath)
}

func (s FileSource) TripRows() ([]domain.Row, error) {
	return ReadRows(s.TripsPath)
}

func (s FileSource) MaintenanceRows() ([]domain.Row, error) {
	return ReadRows(s.MaintenancePath)
}
