package domain

import "time"

// VehicleStatus tracks roster availability.
type VehicleStatus string

const (
	VehicleStatusAvailable   VehicleStatus = "AVAILABLE"
	VehicleStatusInService   VehicleStatus = "IN_SERVICE"
	VehicleStatusMaintenance VehicleStatus = "MAINTENANCE"
	VehicleStatusRetired     VehicleStatus = "RETIRED"
)

// Valid reports whether s is a known status.
func (s VehicleStatus) Valid() bool {
	switch s {
	case VehicleStatusAvailable, VehicleStatusInService, VehicleStatusMaintenance, VehicleStatusRetired:
		return true
	}
	return false
}

// Vehicle is a unit of the vehicle roster.
type Vehicle struct {
	ID               string
	Name             string
	Model            string
	Plate            string
	Callsign         string
	Status           VehicleStatus
	Notes            string
	ImageURL         string
	DiscordMessageID *string
	CreatedAt        time.Time
	UpdatedAt        time.Time
}
