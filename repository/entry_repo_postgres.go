package repository

import (
	"database/sql"
	"fmt"
	"strings"
	"time"

	"shanenterprises/billing"
	"shanenterprises/models"

	"github.com/lib/pq"
)

type PostgresEntryRepo struct {
	DB *sql.DB
}

func NewPostgresEntryRepo(db *sql.DB) *PostgresEntryRepo {
	return &PostgresEntryRepo{DB: db}
}

// SaveEntry creates or updates a destination entry with its nested
// range entries and dealer entries. Child rows are refreshed by
// delete-and-recreate, never diffed.
func (r *PostgresEntryRepo) SaveEntry(e *models.DestinationEntry) error {
	if err := billing.ValidateEntryLink(e); err != nil {
		return err
	}
	for i := range e.Ranges {
		if err := billing.ValidateRangeEntry(&e.Ranges[i], e.TransportType); err != nil {
			return err
		}
	}

	models.UppercaseFields(e, "LetterNote", "ToAddress")
	if e.CreatedAt.IsZero() {
		e.CreatedAt = time.Now().UTC()
	}

	tx, err := r.DB.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if e.ID == 0 {
		err = tx.QueryRow(`
			INSERT INTO destination_entry(
				destination_id, letter_note, bill_number, date, to_address,
				service_bill_id, transport_type, created_at
			)
			VALUES($1,$2,$3,$4,$5,$6,$7,$8)
			RETURNING id
		`, e.DestinationID, e.LetterNote, e.BillNumber, e.Date, e.ToAddress,
			e.ServiceBillID, e.TransportType, e.CreatedAt).Scan(&e.ID)
		if err != nil {
			return err
		}
	} else {
		res, err := tx.Exec(`
			UPDATE destination_entry SET
				destination_id=$1, letter_note=$2, bill_number=$3, date=$4,
				to_address=$5, service_bill_id=$6, transport_type=$7
			WHERE id=$8
		`, e.DestinationID, e.LetterNote, e.BillNumber, e.Date, e.ToAddress,
			e.ServiceBillID, e.TransportType, e.ID)
		if err != nil {
			return err
		}
		if n, _ := res.RowsAffected(); n == 0 {
			return &NotFoundError{Entity: "destination_entry", ID: e.ID}
		}
		// Refresh children; dealer entries cascade with their range entry.
		if _, err := tx.Exec(`DELETE FROM range_entry WHERE destination_entry_id=$1`, e.ID); err != nil {
			return err
		}
	}

	for i := range e.Ranges {
		re := &e.Ranges[i]
		re.DestinationEntryID = e.ID
		err := tx.QueryRow(`
			INSERT INTO range_entry(
				destination_entry_id, rate_range_id, rate, total_bags, total_mt,
				total_mtk, total_amount, is_transport_fol_slab, transport_fol_slab_id
			)
			VALUES($1,$2,$3,$4,$5,$6,$7,$8,$9)
			RETURNING id
		`, re.DestinationEntryID, re.RateRangeID, re.Rate, re.TotalBags, re.TotalMT,
			re.TotalMTK, re.TotalAmount, re.IsTransportFOLSlab, re.TransportFOLSlabID).Scan(&re.ID)
		if err != nil {
			return err
		}

		for j := range re.DealerEntries {
			de := &re.DealerEntries[j]
			de.RangeEntryID = re.ID
			models.UppercaseFields(de, "Remarks")
			if de.Description == "" {
				de.Description = "FACTOMFOS"
			}
			err := tx.QueryRow(`
				INSERT INTO dealer_entry(
					range_entry_id, dealer_id, despatched_to, km, no_bags, rate,
					mt, mtk, amount, mda_number, date, description, remarks, service_bill_id
				)
				VALUES($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14)
				RETURNING id
			`, de.RangeEntryID, de.DealerID, de.DespatchedTo, de.KM, de.NoBags, de.Rate,
				de.MT, de.MTK, de.Amount, de.MDANumber, de.Date, de.Description,
				de.Remarks, de.ServiceBillID).Scan(&de.ID)
			if err != nil {
				return err
			}
		}
	}

	return tx.Commit()
}

func (r *PostgresEntryRepo) GetEntries(filters map[string]interface{}, single bool) ([]*models.DestinationEntry, error) {
	query := `
		SELECT e.id, e.destination_id, e.letter_note, e.bill_number, e.date,
		       e.to_address, e.service_bill_id, e.transport_type, e.created_at,
		       d.id, d.name, d.place, d.is_garage
		FROM destination_entry e
		LEFT JOIN destination d ON e.destination_id = d.id
	`
	args := []interface{}{}
	where := []string{}
	i := 1
	for k, v := range filters {
		where = append(where, fmt.Sprintf("e.%s = $%d", k, i))
		args = append(args, v)
		i++
	}
	if len(where) > 0 {
		query += " WHERE " + strings.Join(where, " AND ")
	}
	query += " ORDER BY e.created_at DESC"

	rows, err := r.DB.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []*models.DestinationEntry
	entryByID := map[int64]*models.DestinationEntry{}
	for rows.Next() {
		var e models.DestinationEntry
		var dID sql.NullInt64
		var dName, dPlace sql.NullString
		var dGarage sql.NullBool
		if err := rows.Scan(&e.ID, &e.DestinationID, &e.LetterNote, &e.BillNumber, &e.Date,
			&e.ToAddress, &e.ServiceBillID, &e.TransportType, &e.CreatedAt,
			&dID, &dName, &dPlace, &dGarage); err != nil {
			return nil, err
		}
		if dID.Valid {
			dest := &models.Destination{ID: dID.Int64, Name: dName.String, IsGarage: dGarage.Bool}
			if dPlace.Valid {
				dest.Place = &dPlace.String
			}
			e.Destination = dest
		}
		result = append(result, &e)
		entryByID[e.ID] = &e
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	if err := r.loadChildren(result, entryByID); err != nil {
		return nil, err
	}

	if single {
		if len(result) > 0 {
			return result[:1], nil
		}
		return nil, nil
	}
	return result, nil
}

func (r *PostgresEntryRepo) loadChildren(entries []*models.DestinationEntry, entryByID map[int64]*models.DestinationEntry) error {
	if len(entries) == 0 {
		return nil
	}
	ids := make([]int64, 0, len(entries))
	for _, e := range entries {
		ids = append(ids, e.ID)
	}

	rangeRows, err := r.DB.Query(`
		SELECT re.id, re.destination_entry_id, re.rate_range_id, re.rate,
		       re.total_bags, re.total_mt, re.total_mtk, re.total_amount,
		       re.is_transport_fol_slab, re.transport_fol_slab_id,
		       rr.id, rr.from_km, rr.to_km, rr.rate, rr.is_mtk
		FROM range_entry re
		LEFT JOIN rate_range rr ON re.rate_range_id = rr.id
		WHERE re.destination_entry_id = ANY($1)
		ORDER BY re.id
	`, pq.Array(ids))
	if err != nil {
		return err
	}
	defer rangeRows.Close()

	rangeByID := map[int64]*models.RangeEntry{}
	var rangeIDs []int64
	for rangeRows.Next() {
		var re models.RangeEntry
		var rrID sql.NullInt64
		var rrFrom, rrTo, rrRate sql.NullFloat64
		var rrMTK sql.NullBool
		if err := rangeRows.Scan(&re.ID, &re.DestinationEntryID, &re.RateRangeID, &re.Rate,
			&re.TotalBags, &re.TotalMT, &re.TotalMTK, &re.TotalAmount,
			&re.IsTransportFOLSlab, &re.TransportFOLSlabID,
			&rrID, &rrFrom, &rrTo, &rrRate, &rrMTK); err != nil {
			return err
		}
		if rrID.Valid {
			re.RateRange = &models.RateRange{
				ID: rrID.Int64, FromKM: rrFrom.Float64, ToKM: rrTo.Float64,
				Rate: rrRate.Float64, IsMTK: rrMTK.Bool,
			}
		}
		parent := entryByID[re.DestinationEntryID]
		parent.Ranges = append(parent.Ranges, re)
		rangeByID[re.ID] = &parent.Ranges[len(parent.Ranges)-1]
		rangeIDs = append(rangeIDs, re.ID)
	}
	if err := rangeRows.Err(); err != nil {
		return err
	}
	if len(rangeIDs) == 0 {
		return nil
	}

	dealerRows, err := r.DB.Query(`
		SELECT de.id, de.range_entry_id, de.dealer_id, de.despatched_to, de.km,
		       de.no_bags, de.rate, de.mt, de.mtk, de.amount, de.mda_number,
		       de.date, de.description, de.remarks, de.service_bill_id,
		       dl.id, dl.code, dl.name
		FROM dealer_entry de
		LEFT JOIN dealer dl ON de.dealer_id = dl.id
		WHERE de.range_entry_id = ANY($1)
		ORDER BY de.id
	`, pq.Array(rangeIDs))
	if err != nil {
		return err
	}
	defer dealerRows.Close()

	for dealerRows.Next() {
		var de models.DealerEntry
		var dlID sql.NullInt64
		var dlCode, dlName sql.NullString
		if err := dealerRows.Scan(&de.ID, &de.RangeEntryID, &de.DealerID, &de.DespatchedTo, &de.KM,
			&de.NoBags, &de.Rate, &de.MT, &de.MTK, &de.Amount, &de.MDANumber,
			&de.Date, &de.Description, &de.Remarks, &de.ServiceBillID,
			&dlID, &dlCode, &dlName); err != nil {
			return err
		}
		if dlID.Valid {
			de.Dealer = &models.Dealer{ID: dlID.Int64, Code: dlCode.String, Name: dlName.String}
		}
		if re, ok := rangeByID[de.RangeEntryID]; ok {
			re.DealerEntries = append(re.DealerEntries, de)
		}
	}
	return dealerRows.Err()
}

func (r *PostgresEntryRepo) DeleteEntries(ids []int64) error {
	_, err := r.DB.Exec(`DELETE FROM destination_entry WHERE id = ANY($1)`, pq.Array(ids))
	return err
}
