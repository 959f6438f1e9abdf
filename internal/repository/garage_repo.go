package repository

import (
	"database/sql"
	"errors"
	"fmt"

	"garagem/internal/db"

	"github.com/shopspring/decimal"
)

type GarageRepository struct {
	DB *sql.DB
}

func NewGarageRepository(database *sql.DB) *GarageRepository {
	return &GarageRepository{DB: database}
}

func (r *GarageRepository) CountSpots() (int, error) {
	var n int
	if err := r.DB.QueryRow(`SELECT COUNT(*) FROM parking_spots`).Scan(&n); err != nil {
		return 0, fmt.Errorf("error counting spots: %w", err)
	}
	return n, nil
}

func (r *GarageRepository) CountOccupied() (int, error) {
	var n int
	if err := r.DB.QueryRow(`SELECT COUNT(*) FROM parking_spots WHERE occupied = TRUE`).Scan(&n); err != nil {
		return 0, fmt.Errorf("error counting occupied spots: %w", err)
	}
	return n, nil
}

// FreeSpots returns every spot that is currently unoccupied, across all
// sectors.
func (r *GarageRepository) FreeSpots() ([]db.Spot, error) {
	query := `
		SELECT ps.id, s.name, ps.lat, ps.lng, ps.occupied
		FROM parking_spots ps
		JOIN sectors s ON ps.sector_id = s.id
		WHERE ps.occupied = FALSE
		ORDER BY ps.id`

	rows, err := r.DB.Query(query)
	if err != nil {
		return nil, fmt.Errorf("error querying free spots: %w", err)
	}
	defer rows.Close()

	var spots []db.Spot
	for rows.Next() {
		var s db.Spot
		if err := rows.Scan(&s.ID, &s.SectorName, &s.Lat, &s.Lng, &s.Occupied); err != nil {
			return nil, fmt.Errorf("error scanning spot: %w", err)
		}
		spots = append(spots, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error after iterating spots: %w", err)
	}
	return spots, nil
}

func (r *GarageRepository) GetSpot(id int64) (*db.Spot, error) {
	query := `
		SELECT ps.id, s.name, ps.lat, ps.lng, ps.occupied
		FROM parking_spots ps
		JOIN sectors s ON ps.sector_id = s.id
		WHERE ps.id = $1`

	var s db.Spot
	err := r.DB.QueryRow(query, id).Scan(&s.ID, &s.SectorName, &s.Lat, &s.Lng, &s.Occupied)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("spot %d not found", id)
		}
		return nil, fmt.Errorf("error querying spot %d: %w", id, err)
	}
	return &s, nil
}

func (r *GarageRepository) SectorBasePrice(name string) (decimal.Decimal, error) {
	var price string
	err := r.DB.QueryRow(`SELECT base_price FROM sectors WHERE name = $1`, name).Scan(&price)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return decimal.Zero, fmt.Errorf("sector %s not configured", name)
		}
		return decimal.Zero, fmt.Errorf("error querying base price for sector %s: %w", name, err)
	}
	d, err := decimal.NewFromString(price)
	if err != nil {
		return decimal.Zero, fmt.Errorf("error parsing base price for sector %s: %w", name, err)
	}
	return d, nil
}

// UpsertSector creates the sector or refreshes its price and capacity when it
// already exists. Called by the topology load at startup.
func (r *GarageRepository) UpsertSector(sec *db.Sector) error {
	query := `
		INSERT INTO sectors (name, base_price, max_capacity)
		VALUES ($1, $2, $3)
		ON CONFLICT (name) DO UPDATE
		SET base_price = EXCLUDED.base_price, max_capacity = EXCLUDED.max_capacity
		RETURNING id`
	err := r.DB.QueryRow(query, sec.Name, sec.BasePrice.String(), sec.MaxCapacity).Scan(&sec.ID)
	if err != nil {
		return fmt.Errorf("error upserting sector %s: %w", sec.Name, err)
	}
	return nil
}

// InsertSpot stores a topology spot; existing ids keep their occupied flag.
func (r *GarageRepository) InsertSpot(spot *db.Spot) error {
	query := `
		INSERT INTO parking_spots (id, sector_id, lat, lng, occupied)
		SELECT $1, s.id, $2, $3, FALSE FROM sectors s WHERE s.name = $4
		ON CONFLICT (id) DO NOTHING`
	_, err := r.DB.Exec(query, spot.ID, spot.Lat, spot.Lng, spot.SectorName)
	if err != nil {
		return fmt.Errorf("error inserting spot %d: %w", spot.ID, err)
	}
	return nil
}
