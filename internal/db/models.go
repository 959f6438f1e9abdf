package db

import (
	"time"

	"github.com/shopspring/decimal"
)

type VehicleStatus string

const (
	StatusEntered VehicleStatus = "ENTERED"
	StatusParked  VehicleStatus = "PARKED"
	StatusExited  VehicleStatus = "EXITED"
)

// ActiveStatuses are the statuses of a vehicle currently inside the garage.
// At most one vehicle per plate may hold one of these at any time.
var ActiveStatuses = []string{string(StatusEntered), string(StatusParked)}

type Vehicle struct {
	ID           int64
	LicensePlate string
	EntryTime    time.Time
	ExitTime     *time.Time
	SpotID       *int64
	TotalAmount  *decimal.Decimal
	Status       VehicleStatus
}

type Spot struct {
	ID         int64
	SectorName string
	Lat        float64
	Lng        float64
	Occupied   bool
}

type Sector struct {
	ID          int64
	Name        string
	BasePrice   decimal.Decimal
	MaxCapacity int
}
