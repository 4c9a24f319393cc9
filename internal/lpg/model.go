package lpg

import "time"

// Conversion factors for LPG carbon accounting. A domestic cylinder holds
// 14.2 kg of LPG, and burning one kg emits roughly 2.98 kg of CO2.
const (
	CylinderKg      = 14.2
	EmissionPerKgKg = 2.98
)

// Record is an LPG consumption entry for a household connection.
type Record struct {
	ID                string
	UserID            string
	ConsumerNumber    *string
	Provider          *string
	State             *string
	District          *string
	ConnectionType    *string
	SubsidyStatus     *string
	CylindersConsumed *float64
	LPGInKg           *float64
	CarbonEmitted     *float64
	Notes             *string
	CreatedAt         time.Time
}

// CarbonFromCylinders converts a cylinder count to kg of CO2.
func CarbonFromCylinders(cylinders float64) float64 {
	return cylinders * CylinderKg * EmissionPerKgKg
}
