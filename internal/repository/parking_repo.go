package repository

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"garagem/internal/db"

	"github.com/lib/pq"
	"github.com/shopspring/decimal"
)

type ParkingRepository struct {
	DB *sql.DB
}

func NewParkingRepository(database *sql.DB) *ParkingRepository {
	return &ParkingRepository{DB: database}
}

// FindActiveByPlate returns the vehicle with the given plate that is still
// inside the garage, or nil when there is none.
func (r *ParkingRepository) FindActiveByPlate(plate string) (*db.Vehicle, error) {
	query := `
		SELECT id, license_plate, entry_time, exit_time, spot_id, total_amount, status
		FROM vehicles
		WHERE license_plate = $1 AND status = ANY($2)`

	var v db.Vehicle
	var exitTime sql.NullTime
	var spotID sql.NullInt64
	var amount sql.NullString

	err := r.DB.QueryRow(query, plate, pq.Array(db.ActiveStatuses)).Scan(
		&v.ID, &v.LicensePlate, &v.EntryTime, &exitTime, &spotID, &amount, &v.Status,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("error querying active vehicle for plate %s: %w", plate, err)
	}

	if exitTime.Valid {
		v.ExitTime = &exitTime.Time
	}
	if spotID.Valid {
		v.SpotID = &spotID.Int64
	}
	if amount.Valid {
		d, err := decimal.NewFromString(amount.String)
		if err != nil {
			return nil, fmt.Errorf("error parsing total_amount for plate %s: %w", plate, err)
		}
		v.TotalAmount = &d
	}
	return &v, nil
}

// RegisterEntry persists a new vehicle and marks its spot occupied in a single
// transaction. Neither half is committed if the other fails.
func (r *ParkingRepository) RegisterEntry(v *db.Vehicle, spotID int64) error {
	tx, err := r.DB.Begin()
	if err != nil {
		return fmt.Errorf("error starting entry transaction: %w", err)
	}
	defer tx.Rollback()

	result, err := tx.Exec(`UPDATE parking_spots SET occupied = TRUE WHERE id = $1 AND occupied = FALSE`, spotID)
	if err != nil {
		return fmt.Errorf("error occupying spot %d: %w", spotID, err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("error reading rows affected for spot %d: %w", spotID, err)
	}
	if affected != 1 {
		return fmt.Errorf("spot %d is no longer free", spotID)
	}

	err = tx.QueryRow(`
		INSERT INTO vehicles (license_plate, entry_time, spot_id, status)
		VALUES ($1, $2, $3, $4)
		RETURNING id`,
		v.LicensePlate, v.EntryTime, spotID, v.Status,
	).Scan(&v.ID)
	if err != nil {
		return fmt.Errorf("error inserting vehicle %s: %w", v.LicensePlate, err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("error committing entry for %s: %w", v.LicensePlate, err)
	}
	v.SpotID = &spotID
	return nil
}

// RegisterExit finalizes the vehicle record and frees its spot in a single
// transaction.
func (r *ParkingRepository) RegisterExit(v *db.Vehicle) error {
	if v.SpotID == nil {
		return fmt.Errorf("vehicle %s has no assigned spot", v.LicensePlate)
	}
	if v.ExitTime == nil || v.TotalAmount == nil {
		return fmt.Errorf("vehicle %s exit is missing timestamp or amount", v.LicensePlate)
	}

	tx, err := r.DB.Begin()
	if err != nil {
		return fmt.Errorf("error starting exit transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.Exec(`
		UPDATE vehicles SET exit_time = $1, total_amount = $2, status = $3 WHERE id = $4`,
		*v.ExitTime, v.TotalAmount.String(), db.StatusExited, v.ID,
	)
	if err != nil {
		return fmt.Errorf("error finalizing vehicle %s: %w", v.LicensePlate, err)
	}

	_, err = tx.Exec(`UPDATE parking_spots SET occupied = FALSE WHERE id = $1`, *v.SpotID)
	if err != nil {
		return fmt.Errorf("error freeing spot %d: %w", *v.SpotID, err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("error committing exit for %s: %w", v.LicensePlate, err)
	}
	v.Status = db.StatusExited
	return nil
}

// RevenueBySectorAndRange sums charged amounts of exited vehicles for one
// sector inside [start, end).
func (r *ParkingRepository) RevenueBySectorAndRange(sector string, start, end time.Time) (decimal.Decimal, error) {
	query := `
		SELECT COALESCE(SUM(v.total_amount), 0)
		FROM vehicles v
		JOIN parking_spots ps ON v.spot_id = ps.id
		JOIN sectors s ON ps.sector_id = s.id
		WHERE s.name = $1
		  AND v.status = $2
		  AND v.exit_time >= $3 AND v.exit_time < $4`

	var total string
	err := r.DB.QueryRow(query, sector, db.StatusExited, start, end).Scan(&total)
	if err != nil {
		return decimal.Zero, fmt.Errorf("error calculating revenue for sector %s: %w", sector, err)
	}
	amount, err := decimal.NewFromString(total)
	if err != nil {
		return decimal.Zero, fmt.Errorf("error parsing revenue total for sector %s: %w", sector, err)
	}
	return amount, nil
}
