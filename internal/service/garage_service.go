package service

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"time"

	"garagem/internal/db"
	"garagem/internal/entities"

	"github.com/shopspring/decimal"
)

// GarageTopologyStore is the slice of the garage repository the topology load
// writes through.
type GarageTopologyStore interface {
	UpsertSector(sec *db.Sector) error
	InsertSpot(spot *db.Spot) error
	CountSpots() (int, error)
	CountOccupied() (int, error)
	SectorBasePrice(name string) (decimal.Decimal, error)
}

// GarageService answers aggregate occupancy questions and loads the garage
// topology from the simulator at startup. Occupancy reads are best-effort
// snapshots; the worker may be mutating spots concurrently.
type GarageService struct {
	repo         GarageTopologyStore
	simulatorURL string
	client       *http.Client
}

func NewGarageService(repo GarageTopologyStore, simulatorURL string) *GarageService {
	return &GarageService{
		repo:         repo,
		simulatorURL: simulatorURL,
		client:       &http.Client{Timeout: 10 * time.Second},
	}
}

// LoadGarageData fetches sector and spot topology from the simulator and
// persists it. A failure leaves whatever was already loaded untouched.
func (s *GarageService) LoadGarageData(ctx context.Context) error {
	log.Println("Loading garage topology from simulator...")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.simulatorURL+"/garage", nil)
	if err != nil {
		return fmt.Errorf("error building garage config request: %w", err)
	}
	resp, err := s.client.Do(req)
	if err != nil {
		return fmt.Errorf("error fetching garage config: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("simulator returned status %d for garage config", resp.StatusCode)
	}

	var config entities.GarageConfig
	if err := json.NewDecoder(resp.Body).Decode(&config); err != nil {
		return fmt.Errorf("error decoding garage config: %w", err)
	}

	for _, gs := range config.Garage {
		sector := &db.Sector{
			Name:        gs.Sector,
			BasePrice:   decimal.NewFromFloat(gs.BasePrice),
			MaxCapacity: gs.MaxCapacity,
		}
		if err := s.repo.UpsertSector(sector); err != nil {
			return err
		}
		log.Printf("Sector %s loaded: %d spots, base price %s", gs.Sector, gs.MaxCapacity, sector.BasePrice)
	}

	for _, si := range config.Spots {
		spot := &db.Spot{
			ID:         si.ID,
			SectorName: si.Sector,
			Lat:        si.Lat,
			Lng:        si.Lng,
		}
		if err := s.repo.InsertSpot(spot); err != nil {
			return err
		}
	}

	log.Printf("Garage topology loaded: %d spots", len(config.Spots))
	return nil
}

// IsFull reports whether every spot in the garage is occupied.
func (s *GarageService) IsFull() (bool, error) {
	total, err := s.repo.CountSpots()
	if err != nil {
		return false, err
	}
	occupied, err := s.repo.CountOccupied()
	if err != nil {
		return false, err
	}
	return total > 0 && total == occupied, nil
}

// OccupancyRate returns occupied/total as a percentage on a 0-100 scale.
func (s *GarageService) OccupancyRate() (float64, error) {
	total, err := s.repo.CountSpots()
	if err != nil {
		return 0, err
	}
	if total == 0 {
		return 0, nil
	}
	occupied, err := s.repo.CountOccupied()
	if err != nil {
		return 0, err
	}
	return float64(occupied) * 100 / float64(total), nil
}

// SectorBasePrice returns the hourly base price configured for a sector.
func (s *GarageService) SectorBasePrice(name string) (decimal.Decimal, error) {
	return s.repo.SectorBasePrice(name)
}
