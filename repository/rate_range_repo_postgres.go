package repository

import (
	"database/sql"
	"fmt"
	"time"

	"shanenterprises/billing"
	"shanenterprises/models"

	"github.com/lib/pq"
)

type PostgresRateRangeRepo struct {
	DB *sql.DB
}

func NewPostgresRateRangeRepo(db *sql.DB) *PostgresRateRangeRepo {
	return &PostgresRateRangeRepo{DB: db}
}

// SaveRateRange rejects intervals that overlap an existing slab, so the
// classifier never has to guess between two covering ranges.
func (r *PostgresRateRangeRepo) SaveRateRange(rr *models.RateRange) error {
	if rr.FromKM > rr.ToKM {
		return &billing.ValidationError{
			Section: "rate_range",
			Field:   "from_km",
			Message: "from_km must not exceed to_km",
		}
	}

	existing, err := r.GetRateRanges()
	if err != nil {
		return err
	}
	if hit := billing.FindOverlap(*rr, existing); hit != nil {
		return &billing.ValidationError{
			Section: "rate_range",
			Field:   "from_km",
			Message: fmt.Sprintf("interval overlaps existing slab %s", hit.Label()),
		}
	}

	if rr.CreatedAt.IsZero() {
		rr.CreatedAt = time.Now().UTC()
	}
	if rr.ID == 0 {
		return r.DB.QueryRow(`
			INSERT INTO rate_range(from_km, to_km, rate, is_mtk, created_at)
			VALUES($1,$2,$3,$4,$5)
			RETURNING id
		`, rr.FromKM, rr.ToKM, rr.Rate, rr.IsMTK, rr.CreatedAt).Scan(&rr.ID)
	}
	_, err = r.DB.Exec(`
		UPDATE rate_range SET from_km=$1, to_km=$2, rate=$3, is_mtk=$4 WHERE id=$5
	`, rr.FromKM, rr.ToKM, rr.Rate, rr.IsMTK, rr.ID)
	return err
}

func (r *PostgresRateRangeRepo) GetRateRanges() ([]models.RateRange, error) {
	rows, err := r.DB.Query(`
		SELECT id, from_km, to_km, rate, is_mtk, created_at
		FROM rate_range ORDER BY from_km
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []models.RateRange
	for rows.Next() {
		var rr models.RateRange
		if err := rows.Scan(&rr.ID, &rr.FromKM, &rr.ToKM, &rr.Rate, &rr.IsMTK, &rr.CreatedAt); err != nil {
			return nil, err
		}
		result = append(result, rr)
	}
	return result, rows.Err()
}

func (r *PostgresRateRangeRepo) DeleteRateRanges(ids []int64) error {
	_, err := r.DB.Exec(`DELETE FROM rate_range WHERE id = ANY($1)`, pq.Array(ids))
	return err
}
