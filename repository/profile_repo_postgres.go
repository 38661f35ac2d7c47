package repository

import (
	"database/sql"
	"encoding/json"
	"time"

	"shanenterprises/models"
)

type PostgresProfileRepo struct {
	DB *sql.DB
}

func NewPostgresProfileRepo(db *sql.DB) *PostgresProfileRepo {
	return &PostgresProfileRepo{DB: db}
}

// SaveProfile inserts or updates the company letterhead details
func (r *PostgresProfileRepo) SaveProfile(profile *models.CompanyProfile) error {
	if profile.CreatedAt.IsZero() {
		profile.CreatedAt = time.Now().UTC()
	}

	// Mobile numbers live in one JSONB column
	mobileJSON, err := json.Marshal(profile.Mobile)
	if err != nil {
		return err
	}

	// If ID is passed → UPDATE, else INSERT
	if profile.ID > 0 {
		_, err = r.DB.Exec(`
			UPDATE company_profile
			SET company_name=$1, tagline=$2, gstin=$3, address=$4, city=$5,
				state=$6, pincode=$7, mobile=$8, footnote=$9, created_at=$10
			WHERE id=$11
		`, profile.CompanyName, profile.Tagline, profile.GSTIN, profile.Address, profile.City,
			profile.State, profile.Pincode, mobileJSON, profile.Footnote, profile.CreatedAt, profile.ID)
	} else {
		_, err = r.DB.Exec(`
			INSERT INTO company_profile
			(company_name, tagline, gstin, address, city, state, pincode, mobile, footnote, created_at)
			VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10)
		`, profile.CompanyName, profile.Tagline, profile.GSTIN, profile.Address, profile.City,
			profile.State, profile.Pincode, mobileJSON, profile.Footnote, profile.CreatedAt)
	}

	return err
}

// GetProfile fetches the latest company profile
func (r *PostgresProfileRepo) GetProfile() (*models.CompanyProfile, error) {
	profile := &models.CompanyProfile{}
	var mobileJSON []byte

	err := r.DB.QueryRow(`
		SELECT id, company_name, tagline, address, city, state, pincode, gstin, footnote, mobile, created_at
		FROM company_profile
		ORDER BY id DESC LIMIT 1
	`).Scan(&profile.ID, &profile.CompanyName, &profile.Tagline, &profile.Address, &profile.City,
		&profile.State, &profile.Pincode, &profile.GSTIN, &profile.Footnote, &mobileJSON, &profile.CreatedAt)

	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}

	if len(mobileJSON) > 0 {
		if err := json.Unmarshal(mobileJSON, &profile.Mobile); err != nil {
			return nil, err
		}
	}

	return profile, nil
}
