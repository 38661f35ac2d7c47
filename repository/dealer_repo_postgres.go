package repository

import (
	"database/sql"
	"fmt"
	"strconv"
	"strings"
	"time"

	"shanenterprises/models"

	"github.com/lib/pq"
)

// Dealer codes are generated as GAR001, GAR002, ... from the highest
// existing code with the prefix.
const dealerCodePrefix = "GAR"

type PostgresDealerRepo struct {
	DB *sql.DB
}

func NewPostgresDealerRepo(db *sql.DB) *PostgresDealerRepo {
	return &PostgresDealerRepo{DB: db}
}

func (r *PostgresDealerRepo) nextDealerCode(tx *sql.Tx) (string, error) {
	var last sql.NullString
	err := tx.QueryRow(`
		SELECT MAX(code) FROM dealer WHERE code LIKE $1
	`, dealerCodePrefix+"%").Scan(&last)
	if err != nil {
		return "", err
	}
	if !last.Valid {
		return dealerCodePrefix + "001", nil
	}
	n, err := strconv.Atoi(strings.TrimPrefix(last.String, dealerCodePrefix))
	if err != nil {
		return "", fmt.Errorf("malformed dealer code %q: %w", last.String, err)
	}
	return fmt.Sprintf("%s%03d", dealerCodePrefix, n+1), nil
}

func (r *PostgresDealerRepo) SaveDealer(d *models.Dealer) error {
	models.UppercaseFields(d, "Code", "Mobile", "Pincode")
	if d.CreatedAt.IsZero() {
		d.CreatedAt = time.Now().UTC()
	}

	tx, err := r.DB.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if d.ID == 0 {
		if d.Code == "" {
			code, err := r.nextDealerCode(tx)
			if err != nil {
				return err
			}
			d.Code = code
		}
		err = tx.QueryRow(`
			INSERT INTO dealer(code, name, address, pincode, mobile, active, created_at)
			VALUES($1,$2,$3,$4,$5,$6,$7)
			RETURNING id
		`, d.Code, d.Name, d.Address, d.Pincode, d.Mobile, d.Active, d.CreatedAt).Scan(&d.ID)
	} else {
		_, err = tx.Exec(`
			UPDATE dealer SET code=$1, name=$2, address=$3, pincode=$4, mobile=$5, active=$6
			WHERE id=$7
		`, d.Code, d.Name, d.Address, d.Pincode, d.Mobile, d.Active, d.ID)
	}
	if isUniqueViolation(err) {
		return &ConflictError{Entity: "dealer", Detail: fmt.Sprintf("code %q already exists", d.Code)}
	}
	if err != nil {
		return err
	}

	// Refresh place links
	if _, err := tx.Exec(`DELETE FROM dealer_place WHERE dealer_id=$1`, d.ID); err != nil {
		return err
	}
	for _, placeID := range d.PlaceIDs {
		if _, err := tx.Exec(`
			INSERT INTO dealer_place(dealer_id, place_id) VALUES($1,$2)
		`, d.ID, placeID); err != nil {
			return err
		}
	}

	return tx.Commit()
}

func (r *PostgresDealerRepo) GetDealers(filters map[string]interface{}) ([]*models.Dealer, error) {
	query := `SELECT id, code, name, address, pincode, mobile, active, created_at FROM dealer`
	args := []interface{}{}
	where := []string{}
	i := 1
	for k, v := range filters {
		where = append(where, fmt.Sprintf("%s = $%d", k, i))
		args = append(args, v)
		i++
	}
	if len(where) > 0 {
		query += " WHERE " + strings.Join(where, " AND ")
	}
	query += " ORDER BY name"

	rows, err := r.DB.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []*models.Dealer
	byID := map[int64]*models.Dealer{}
	for rows.Next() {
		var d models.Dealer
		if err := rows.Scan(&d.ID, &d.Code, &d.Name, &d.Address, &d.Pincode, &d.Mobile, &d.Active, &d.CreatedAt); err != nil {
			return nil, err
		}
		result = append(result, &d)
		byID[d.ID] = &d
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	if len(result) > 0 {
		ids := make([]int64, 0, len(result))
		for _, d := range result {
			ids = append(ids, d.ID)
		}
		placeRows, err := r.DB.Query(`
			SELECT dp.dealer_id, p.id, p.name, p.distance, p.district, p.destination_id, p.created_at
			FROM dealer_place dp
			JOIN place p ON dp.place_id = p.id
			WHERE dp.dealer_id = ANY($1)
			ORDER BY p.name
		`, pq.Array(ids))
		if err != nil {
			return nil, err
		}
		defer placeRows.Close()
		for placeRows.Next() {
			var dealerID int64
			var p models.Place
			if err := placeRows.Scan(&dealerID, &p.ID, &p.Name, &p.Distance, &p.District, &p.DestinationID, &p.CreatedAt); err != nil {
				return nil, err
			}
			if d, ok := byID[dealerID]; ok {
				d.Places = append(d.Places, p)
				d.PlaceIDs = append(d.PlaceIDs, p.ID)
			}
		}
		if err := placeRows.Err(); err != nil {
			return nil, err
		}
	}

	return result, nil
}

func (r *PostgresDealerRepo) DeleteDealers(ids []int64) error {
	tx, err := r.DB.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`DELETE FROM dealer_place WHERE dealer_id = ANY($1)`, pq.Array(ids)); err != nil {
		return err
	}
	if _, err := tx.Exec(`DELETE FROM dealer WHERE id = ANY($1)`, pq.Array(ids)); err != nil {
		return err
	}
	return tx.Commit()
}
