package service

import (
	"fmt"
	"log"
	"math/rand"
	"time"

	"garagem/internal/db"
	apperrors "garagem/internal/errors"

	"github.com/shopspring/decimal"
)

// VehicleStore persists vehicle lifecycle records. RegisterEntry and
// RegisterExit must be atomic: vehicle and spot are committed together or not
// at all.
type VehicleStore interface {
	FindActiveByPlate(plate string) (*db.Vehicle, error)
	RegisterEntry(v *db.Vehicle, spotID int64) error
	RegisterExit(v *db.Vehicle) error
	RevenueBySectorAndRange(sector string, start, end time.Time) (decimal.Decimal, error)
}

// SpotStore reads spot records for allocation.
type SpotStore interface {
	FreeSpots() ([]db.Spot, error)
	GetSpot(id int64) (*db.Spot, error)
}

// GarageView is the occupancy contract the state machine consumes.
type GarageView interface {
	IsFull() (bool, error)
	OccupancyRate() (float64, error)
	SectorBasePrice(name string) (decimal.Decimal, error)
}

// ParkingService owns the vehicle lifecycle (ENTERED -> PARKED -> EXITED) and
// spot allocation. All mutations run on the pipeline worker's goroutine, so
// vehicle and spot state needs no locking here.
type ParkingService struct {
	vehicles VehicleStore
	spots    SpotStore
	garage   GarageView
	pricing  *PricingService
	rng      *rand.Rand
}

// NewParkingService wires the state machine. The RNG drives spot selection and
// is injected so tests can pass a seeded source.
func NewParkingService(vehicles VehicleStore, spots SpotStore, garage GarageView, pricing *PricingService, rng *rand.Rand) *ParkingService {
	return &ParkingService{
		vehicles: vehicles,
		spots:    spots,
		garage:   garage,
		pricing:  pricing,
		rng:      rng,
	}
}

// HandleEntry admits a vehicle: rejects duplicates and full garages, then
// binds a random free spot and persists vehicle + spot atomically.
func (s *ParkingService) HandleEntry(plate string, entryTime time.Time) error {
	log.Printf("Plate captured: %s", plate)

	active, err := s.vehicles.FindActiveByPlate(plate)
	if err != nil {
		return err
	}
	if active != nil {
		return fmt.Errorf("%w: %s", apperrors.ErrVehicleActive, plate)
	}

	full, err := s.garage.IsFull()
	if err != nil {
		return err
	}
	if full {
		log.Printf("Garage FULL, entry denied for %s", plate)
		return fmt.Errorf("%w: entry denied for %s", apperrors.ErrGarageFull, plate)
	}

	occupancy, err := s.garage.OccupancyRate()
	if err != nil {
		return err
	}
	log.Printf("Current occupancy: %.1f%%", occupancy)

	spot, err := s.selectRandomFreeSpot()
	if err != nil {
		return err
	}

	vehicle := &db.Vehicle{
		LicensePlate: plate,
		EntryTime:    entryTime,
		Status:       db.StatusEntered,
	}
	// A spot is bound at entry, so the record is persisted already PARKED.
	vehicle.Status = db.StatusParked
	if err := s.vehicles.RegisterEntry(vehicle, spot.ID); err != nil {
		return err
	}

	log.Printf("Vehicle %s parked at spot %d in sector %s", plate, spot.ID, spot.SectorName)
	return nil
}

// HandleParked acknowledges the simulator's parked confirmation. No status
// transition and no validation against the assigned spot's coordinates.
func (s *ParkingService) HandleParked(plate string, lat, lng float64) error {
	log.Printf("PARKED confirmation for %s at [%f, %f]", plate, lat, lng)
	return nil
}

// HandleExit finalizes a stay: computes the charge from the occupancy at the
// moment of exit, then persists vehicle + spot atomically.
func (s *ParkingService) HandleExit(plate string, exitTime time.Time) error {
	vehicle, err := s.vehicles.FindActiveByPlate(plate)
	if err != nil {
		return err
	}
	if vehicle == nil {
		return fmt.Errorf("%w: %s", apperrors.ErrVehicleNotFound, plate)
	}
	if vehicle.SpotID == nil {
		return fmt.Errorf("active vehicle %s has no assigned spot", plate)
	}

	spot, err := s.spots.GetSpot(*vehicle.SpotID)
	if err != nil {
		return err
	}

	// Occupancy is read before the spot is freed: the departing vehicle
	// still counts toward the tier that prices its own stay.
	occupancy, err := s.garage.OccupancyRate()
	if err != nil {
		return err
	}
	basePrice, err := s.garage.SectorBasePrice(spot.SectorName)
	if err != nil {
		return err
	}

	amount := s.pricing.CalculatePrice(vehicle.EntryTime, exitTime, occupancy, basePrice)

	vehicle.ExitTime = &exitTime
	vehicle.TotalAmount = &amount
	vehicle.Status = db.StatusExited
	if err := s.vehicles.RegisterExit(vehicle); err != nil {
		return err
	}

	log.Printf("Vehicle %s exited, amount charged: %s", plate, amount)
	return nil
}

// Revenue sums charges of vehicles that exited the given sector on the given
// date (YYYY-MM-DD).
func (s *ParkingService) Revenue(sector, date string) (decimal.Decimal, error) {
	start, err := time.Parse("2006-01-02", date)
	if err != nil {
		return decimal.Zero, fmt.Errorf("%w: %q", apperrors.ErrInvalidDate, date)
	}
	return s.vehicles.RevenueBySectorAndRange(sector, start, start.AddDate(0, 0, 1))
}

// selectRandomFreeSpot picks uniformly among all free spots system-wide. No
// per-sector fairness is attempted.
func (s *ParkingService) selectRandomFreeSpot() (*db.Spot, error) {
	free, err := s.spots.FreeSpots()
	if err != nil {
		return nil, err
	}
	if len(free) == 0 {
		return nil, fmt.Errorf("%w: no free spot available", apperrors.ErrGarageFull)
	}
	spot := free[s.rng.Intn(len(free))]
	return &spot, nil
}
