package repository

import (
	"database/sql"
	"fmt"
	"strings"
	"time"

	"shanenterprises/models"

	"github.com/lib/pq"
)

type PostgresDestinationRepo struct {
	DB *sql.DB
}

func NewPostgresDestinationRepo(db *sql.DB) *PostgresDestinationRepo {
	return &PostgresDestinationRepo{DB: db}
}

func (r *PostgresDestinationRepo) SaveDestination(d *models.Destination) error {
	models.UppercaseFields(d, "Description")
	if d.CreatedAt.IsZero() {
		d.CreatedAt = time.Now().UTC()
	}

	if d.ID == 0 {
		return r.DB.QueryRow(`
			INSERT INTO destination(name, place, description, is_garage, created_at)
			VALUES($1,$2,$3,$4,$5)
			RETURNING id
		`, d.Name, d.Place, d.Description, d.IsGarage, d.CreatedAt).Scan(&d.ID)
	}
	_, err := r.DB.Exec(`
		UPDATE destination SET name=$1, place=$2, description=$3, is_garage=$4
		WHERE id=$5
	`, d.Name, d.Place, d.Description, d.IsGarage, d.ID)
	return err
}

func (r *PostgresDestinationRepo) GetDestinations(filters map[string]interface{}) ([]*models.Destination, error) {
	query := `SELECT id, name, place, description, is_garage, created_at FROM destination`
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

	var result []*models.Destination
	for rows.Next() {
		var d models.Destination
		if err := rows.Scan(&d.ID, &d.Name, &d.Place, &d.Description, &d.IsGarage, &d.CreatedAt); err != nil {
			return nil, err
		}
		result = append(result, &d)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	// Load places in one go (avoid N+1)
	if len(result) > 0 {
		ids := make([]int64, len(result))
		byID := make(map[int64]*models.Destination, len(result))
		for i, d := range result {
			ids[i] = d.ID
			byID[d.ID] = d
		}
		placeRows, err := r.DB.Query(`
			SELECT id, name, distance, district, destination_id, created_at
			FROM place WHERE destination_id = ANY($1) ORDER BY name
		`, pq.Array(ids))
		if err != nil {
			return nil, err
		}
		defer placeRows.Close()
		for placeRows.Next() {
			var p models.Place
			if err := placeRows.Scan(&p.ID, &p.Name, &p.Distance, &p.District, &p.DestinationID, &p.CreatedAt); err != nil {
				return nil, err
			}
			if d, ok := byID[*p.DestinationID]; ok {
				d.Places = append(d.Places, p)
			}
		}
		if err := placeRows.Err(); err != nil {
			return nil, err
		}
	}

	return result, nil
}

func (r *PostgresDestinationRepo) DeleteDestinations(ids []int64) error {
	_, err := r.DB.Exec(`DELETE FROM destination WHERE id = ANY($1)`, pq.Array(ids))
	return err
}

// ------------------------ Places ------------------------

type PostgresPlaceRepo struct {
	DB *sql.DB
}

func NewPostgresPlaceRepo(db *sql.DB) *PostgresPlaceRepo {
	return &PostgresPlaceRepo{DB: db}
}

func (r *PostgresPlaceRepo) SavePlace(p *models.Place) error {
	models.UppercaseFields(p)
	if p.CreatedAt.IsZero() {
		p.CreatedAt = time.Now().UTC()
	}

	var err error
	if p.ID == 0 {
		err = r.DB.QueryRow(`
			INSERT INTO place(name, distance, district, destination_id, created_at)
			VALUES($1,$2,$3,$4,$5)
			RETURNING id
		`, p.Name, p.Distance, p.District, p.DestinationID, p.CreatedAt).Scan(&p.ID)
	} else {
		_, err = r.DB.Exec(`
			UPDATE place SET name=$1, distance=$2, district=$3, destination_id=$4
			WHERE id=$5
		`, p.Name, p.Distance, p.District, p.DestinationID, p.ID)
	}
	if isUniqueViolation(err) {
		return &ConflictError{Entity: "place", Detail: fmt.Sprintf("place %q already exists for this destination", p.Name)}
	}
	return err
}

func (r *PostgresPlaceRepo) GetPlaces(filters map[string]interface{}) ([]*models.Place, error) {
	query := `
		SELECT p.id, p.name, p.distance, p.district, p.destination_id, p.created_at,
		       d.id, d.name, d.place, d.is_garage
		FROM place p
		LEFT JOIN destination d ON p.destination_id = d.id
	`
	args := []interface{}{}
	where := []string{}
	i := 1
	for k, v := range filters {
		where = append(where, fmt.Sprintf("p.%s = $%d", k, i))
		args = append(args, v)
		i++
	}
	if len(where) > 0 {
		query += " WHERE " + strings.Join(where, " AND ")
	}
	query += " ORDER BY p.name"

	rows, err := r.DB.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []*models.Place
	for rows.Next() {
		var p models.Place
		var dID sql.NullInt64
		var dName, dPlace sql.NullString
		var dGarage sql.NullBool
		if err := rows.Scan(&p.ID, &p.Name, &p.Distance, &p.District, &p.DestinationID, &p.CreatedAt,
			&dID, &dName, &dPlace, &dGarage); err != nil {
			return nil, err
		}
		if dID.Valid {
			dest := &models.Destination{ID: dID.Int64, Name: dName.String, IsGarage: dGarage.Bool}
			if dPlace.Valid {
				dest.Place = &dPlace.String
			}
			p.Destination = dest
		}
		result = append(result, &p)
	}
	return result, rows.Err()
}

func (r *PostgresPlaceRepo) DeletePlaces(ids []int64) error {
	_, err := r.DB.Exec(`DELETE FROM place WHERE id = ANY($1)`, pq.Array(ids))
	return err
}

// isUniqueViolation reports a Postgres unique-constraint failure.
func isUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	if pqErr, ok := err.(*pq.Error); ok {
		return pqErr.Code == "23505"
	}
	return false
}
