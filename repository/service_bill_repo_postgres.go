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

type PostgresServiceBillRepo struct {
	DB *sql.DB
}

func NewPostgresServiceBillRepo(db *sql.DB) *PostgresServiceBillRepo {
	return &PostgresServiceBillRepo{DB: db}
}

// SyncServiceBill applies the whole request atomically. The bill row is
// locked for the duration so two concurrent syncs of the same bill
// serialize instead of interleaving section writes. Each section
// payload is a full replacement; a nil payload removes the section and
// unlinks whatever it billed.
func (r *PostgresServiceBillRepo) SyncServiceBill(req *models.SyncServiceBillRequest) (*models.ServiceBill, error) {
	if err := billing.ValidateSync(req); err != nil {
		return nil, err
	}
	if req.Product == "" {
		req.Product = "FACTOMFOS"
	}

	tx, err := r.DB.Begin()
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	billID := req.ID
	now := time.Now().UTC()
	if billID == 0 {
		err = tx.QueryRow(`
			INSERT INTO service_bill(
				bill_date, to_address, letter_note, date_of_clearing,
				product, hsn_sac_code, year, created_at
			)
			VALUES($1,$2,$3,$4,$5,$6,$7,$8)
			RETURNING id
		`, req.BillDate, req.ToAddress, req.LetterNote, req.DateOfClearing,
			req.Product, req.HSNSACCode, req.Year, now).Scan(&billID)
		if err != nil {
			return nil, err
		}
	} else {
		var locked int64
		err = tx.QueryRow(`SELECT id FROM service_bill WHERE id=$1 FOR UPDATE`, billID).Scan(&locked)
		if err == sql.ErrNoRows {
			return nil, &NotFoundError{Entity: "service_bill", ID: billID}
		}
		if err != nil {
			return nil, err
		}
		_, err = tx.Exec(`
			UPDATE service_bill SET
				bill_date=$1, to_address=$2, letter_note=$3, date_of_clearing=$4,
				product=$5, hsn_sac_code=$6, year=$7, updated_at=$8
			WHERE id=$9
		`, req.BillDate, req.ToAddress, req.LetterNote, req.DateOfClearing,
			req.Product, req.HSNSACCode, req.Year, now, billID)
		if err != nil {
			return nil, err
		}
	}

	if err := r.syncHandling(tx, billID, req.Handling); err != nil {
		return nil, err
	}
	if err := r.syncDepot(tx, billID, req.TransportDepot); err != nil {
		return nil, err
	}
	if err := r.syncFOL(tx, billID, req.TransportFOL); err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}

	bills, err := r.GetServiceBills(map[string]interface{}{"id": billID}, true)
	if err != nil {
		return nil, err
	}
	if len(bills) == 0 {
		return nil, &NotFoundError{Entity: "service_bill", ID: billID}
	}
	return bills[0], nil
}

func (r *PostgresServiceBillRepo) syncHandling(tx *sql.Tx, billID int64, p *models.HandlingPayload) error {
	if p == nil {
		_, err := tx.Exec(`DELETE FROM handling_bill_section WHERE service_bill_id=$1`, billID)
		return err
	}
	_, err := tx.Exec(`
		INSERT INTO handling_bill_section(
			service_bill_id, bill_number, particulars, total_qty, rate,
			bill_amount, cgst, sgst, total_bill_amount
		)
		VALUES($1,$2,$3,$4,$5,$6,$7,$8,$9)
		ON CONFLICT (service_bill_id) DO UPDATE SET
			bill_number=EXCLUDED.bill_number,
			particulars=EXCLUDED.particulars,
			total_qty=EXCLUDED.total_qty,
			rate=EXCLUDED.rate,
			bill_amount=EXCLUDED.bill_amount,
			cgst=EXCLUDED.cgst,
			sgst=EXCLUDED.sgst,
			total_bill_amount=EXCLUDED.total_bill_amount
	`, billID, p.BillNumber, p.Particulars, p.TotalQty, p.Rate,
		p.BillAmount, p.CGST, p.SGST, p.TotalBillAmount)
	return err
}

// syncDepot replaces the depot section and its dealer entry links. The
// payload's id list is the complete billed set: entries linked now but
// missing from it get unlinked inside the same transaction.
func (r *PostgresServiceBillRepo) syncDepot(tx *sql.Tx, billID int64, p *models.DepotPayload) error {
	current, err := linkedDealerEntryIDs(tx, billID)
	if err != nil {
		return err
	}

	if p == nil {
		if len(current) > 0 {
			if _, err := tx.Exec(`UPDATE dealer_entry SET service_bill_id=NULL WHERE id=ANY($1)`, pq.Array(current)); err != nil {
				return err
			}
		}
		_, err := tx.Exec(`DELETE FROM transport_depot_section WHERE service_bill_id=$1`, billID)
		return err
	}

	next := dedupeIDs(p.DealerEntryIDs)
	if err := r.checkDepotEligibility(tx, next); err != nil {
		return err
	}

	_, err = tx.Exec(`
		INSERT INTO transport_depot_section(
			service_bill_id, bill_number, total_depot_qty, total_depot_amount
		)
		VALUES($1,$2,$3,$4)
		ON CONFLICT (service_bill_id) DO UPDATE SET
			bill_number=EXCLUDED.bill_number,
			total_depot_qty=EXCLUDED.total_depot_qty,
			total_depot_amount=EXCLUDED.total_depot_amount
	`, billID, p.BillNumber, p.TotalDepotQty, p.TotalDepotAmount)
	if err != nil {
		return err
	}

	if drop := unlinkSet(current, next); len(drop) > 0 {
		if _, err := tx.Exec(`UPDATE dealer_entry SET service_bill_id=NULL WHERE id=ANY($1)`, pq.Array(drop)); err != nil {
			return err
		}
	}
	for _, id := range next {
		res, err := tx.Exec(`UPDATE dealer_entry SET service_bill_id=$1 WHERE id=$2`, billID, id)
		if err != nil {
			return err
		}
		if n, _ := res.RowsAffected(); n == 0 {
			return &NotFoundError{Entity: "dealer_entry", ID: id}
		}
	}
	return nil
}

// checkDepotEligibility verifies every dealer entry sits under a depot
// shipment or a garage destination. Garage movements are billable in
// the depot section whatever the parent entry's transport type says.
func (r *PostgresServiceBillRepo) checkDepotEligibility(tx *sql.Tx, ids []int64) error {
	if len(ids) == 0 {
		return nil
	}
	rows, err := tx.Query(`
		SELECT de.id,
		       (e.transport_type = $2 OR d.is_garage)
		FROM dealer_entry de
		JOIN range_entry re ON de.range_entry_id = re.id
		JOIN destination_entry e ON re.destination_entry_id = e.id
		JOIN destination d ON e.destination_id = d.id
		WHERE de.id = ANY($1)
	`, pq.Array(ids), models.TransportDepot)
	if err != nil {
		return err
	}
	defer rows.Close()

	eligible := map[int64]bool{}
	for rows.Next() {
		var id int64
		var ok sql.NullBool
		if err := rows.Scan(&id, &ok); err != nil {
			return err
		}
		eligible[id] = ok.Valid && ok.Bool
	}
	if err := rows.Err(); err != nil {
		return err
	}

	for _, id := range ids {
		ok, found := eligible[id]
		if !found {
			return &NotFoundError{Entity: "dealer_entry", ID: id}
		}
		if !ok {
			return &billing.ValidationError{
				Section: "transport_depot",
				Field:   "dealer_entry_ids",
				Message: fmt.Sprintf("dealer entry %d is not under a depot shipment or garage destination", id),
			}
		}
	}
	return nil
}

// syncFOL rewrites the FOL section's slab rows wholesale and replaces
// the bill's destination entry links from the payload's slab
// destinations. Slab rows are never diffed; the old set is dropped and
// the payload's set inserted.
func (r *PostgresServiceBillRepo) syncFOL(tx *sql.Tx, billID int64, p *models.FOLPayload) error {
	current, err := linkedFOLEntryIDs(tx, billID)
	if err != nil {
		return err
	}

	if p == nil {
		if len(current) > 0 {
			if _, err := tx.Exec(`
				UPDATE destination_entry SET service_bill_id=NULL, transport_type=NULL
				WHERE id=ANY($1)
			`, pq.Array(current)); err != nil {
				return err
			}
		}
		_, err := tx.Exec(`DELETE FROM transport_fol_section WHERE service_bill_id=$1`, billID)
		return err
	}

	var sectionID int64
	err = tx.QueryRow(`
		INSERT INTO transport_fol_section(
			service_bill_id, bill_number, rh_qty, grand_total_qty, grand_total_amount
		)
		VALUES($1,$2,$3,$4,$5)
		ON CONFLICT (service_bill_id) DO UPDATE SET
			bill_number=EXCLUDED.bill_number,
			rh_qty=EXCLUDED.rh_qty,
			grand_total_qty=EXCLUDED.grand_total_qty,
			grand_total_amount=EXCLUDED.grand_total_amount
		RETURNING id
	`, billID, p.BillNumber, p.RHQty, p.GrandTotalQty, p.GrandTotalAmount).Scan(&sectionID)
	if err != nil {
		return err
	}

	// Destinations cascade with their slab.
	if _, err := tx.Exec(`DELETE FROM transport_fol_slab WHERE fol_section_id=$1`, sectionID); err != nil {
		return err
	}
	for _, slab := range p.Slabs {
		var slabID int64
		err := tx.QueryRow(`
			INSERT INTO transport_fol_slab(
				fol_section_id, range_slab, rate, range_total_qty,
				range_total_mtk, range_total_amount
			)
			VALUES($1,$2,$3,$4,$5,$6)
			RETURNING id
		`, sectionID, slab.RangeSlab, slab.Rate, slab.RangeTotalQty,
			slab.RangeTotalMTK, slab.RangeTotalAmount).Scan(&slabID)
		if err != nil {
			if isUniqueViolation(err) {
				return &ConflictError{Entity: "transport_fol_slab", Detail: fmt.Sprintf("slab %q already exists in section", slab.RangeSlab)}
			}
			return err
		}
		for _, d := range slab.Destinations {
			// The row keeps one back reference; every referenced entry
			// is still linked to the bill below.
			var entryRef *int64
			if len(d.DestinationEntryIDs) > 0 {
				id := d.DestinationEntryIDs[0]
				entryRef = &id
			}
			_, err := tx.Exec(`
				INSERT INTO transport_fol_destination(
					slab_id, destination_place, qty_mt, qty_mtk, amount, destination_entry_id
				)
				VALUES($1,$2,$3,$4,$5,$6)
			`, slabID, d.DestinationPlace, d.QtyMT, d.QtyMTK, d.Amount, entryRef)
			if err != nil {
				return err
			}
		}
	}

	next := folEntryIDs(p)
	if drop := unlinkSet(current, next); len(drop) > 0 {
		if _, err := tx.Exec(`
			UPDATE destination_entry SET service_bill_id=NULL, transport_type=NULL
			WHERE id=ANY($1)
		`, pq.Array(drop)); err != nil {
			return err
		}
	}
	for _, id := range next {
		res, err := tx.Exec(`
			UPDATE destination_entry SET service_bill_id=$1, transport_type=$2
			WHERE id=$3
		`, billID, models.TransportFOL, id)
		if err != nil {
			return err
		}
		if n, _ := res.RowsAffected(); n == 0 {
			return &NotFoundError{Entity: "destination_entry", ID: id}
		}
	}
	return nil
}

func linkedDealerEntryIDs(tx *sql.Tx, billID int64) ([]int64, error) {
	rows, err := tx.Query(`SELECT id FROM dealer_entry WHERE service_bill_id=$1`, billID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanIDs(rows)
}

func linkedFOLEntryIDs(tx *sql.Tx, billID int64) ([]int64, error) {
	rows, err := tx.Query(`
		SELECT id FROM destination_entry
		WHERE service_bill_id=$1 AND transport_type=$2
	`, billID, models.TransportFOL)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanIDs(rows)
}

func scanIDs(rows *sql.Rows) ([]int64, error) {
	var ids []int64
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

func (r *PostgresServiceBillRepo) GetServiceBills(filters map[string]interface{}, single bool) ([]*models.ServiceBill, error) {
	query := `
		SELECT id, bill_date, to_address, letter_note, date_of_clearing,
		       product, hsn_sac_code, year, created_at, updated_at,
		       pdf_created_at, pdf_path
		FROM service_bill
	`
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
	query += " ORDER BY created_at DESC"

	rows, err := r.DB.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var bills []*models.ServiceBill
	billByID := map[int64]*models.ServiceBill{}
	var ids []int64
	for rows.Next() {
		var b models.ServiceBill
		if err := rows.Scan(&b.ID, &b.BillDate, &b.ToAddress, &b.LetterNote, &b.DateOfClearing,
			&b.Product, &b.HSNSACCode, &b.Year, &b.CreatedAt, &b.UpdatedAt,
			&b.PdfCreatedAt, &b.PdfPath); err != nil {
			return nil, err
		}
		bills = append(bills, &b)
		billByID[b.ID] = &b
		ids = append(ids, b.ID)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if len(bills) == 0 {
		return nil, nil
	}

	if err := r.loadSections(ids, billByID); err != nil {
		return nil, err
	}

	if single {
		return bills[:1], nil
	}
	return bills, nil
}

func (r *PostgresServiceBillRepo) loadSections(ids []int64, billByID map[int64]*models.ServiceBill) error {
	hRows, err := r.DB.Query(`
		SELECT id, service_bill_id, bill_number, particulars, total_qty, rate,
		       bill_amount, cgst, sgst, total_bill_amount
		FROM handling_bill_section WHERE service_bill_id = ANY($1)
	`, pq.Array(ids))
	if err != nil {
		return err
	}
	defer hRows.Close()
	for hRows.Next() {
		var s models.HandlingBillSection
		if err := hRows.Scan(&s.ID, &s.ServiceBillID, &s.BillNumber, &s.Particulars, &s.TotalQty,
			&s.Rate, &s.BillAmount, &s.CGST, &s.SGST, &s.TotalBillAmount); err != nil {
			return err
		}
		billByID[s.ServiceBillID].Handling = &s
	}
	if err := hRows.Err(); err != nil {
		return err
	}

	dRows, err := r.DB.Query(`
		SELECT id, service_bill_id, bill_number, total_depot_qty, total_depot_amount
		FROM transport_depot_section WHERE service_bill_id = ANY($1)
	`, pq.Array(ids))
	if err != nil {
		return err
	}
	defer dRows.Close()
	for dRows.Next() {
		var s models.TransportDepotSection
		if err := dRows.Scan(&s.ID, &s.ServiceBillID, &s.BillNumber, &s.TotalDepotQty, &s.TotalDepotAmount); err != nil {
			return err
		}
		billByID[s.ServiceBillID].TransportDepot = &s
	}
	if err := dRows.Err(); err != nil {
		return err
	}

	fRows, err := r.DB.Query(`
		SELECT id, service_bill_id, bill_number, rh_qty, grand_total_qty, grand_total_amount
		FROM transport_fol_section WHERE service_bill_id = ANY($1)
	`, pq.Array(ids))
	if err != nil {
		return err
	}
	defer fRows.Close()

	folByID := map[int64]*models.TransportFOLSection{}
	var folIDs []int64
	for fRows.Next() {
		var s models.TransportFOLSection
		if err := fRows.Scan(&s.ID, &s.ServiceBillID, &s.BillNumber, &s.RHQty, &s.GrandTotalQty, &s.GrandTotalAmount); err != nil {
			return err
		}
		billByID[s.ServiceBillID].TransportFOL = &s
		folByID[s.ID] = &s
		folIDs = append(folIDs, s.ID)
	}
	if err := fRows.Err(); err != nil {
		return err
	}
	if len(folIDs) == 0 {
		return nil
	}

	sRows, err := r.DB.Query(`
		SELECT id, fol_section_id, range_slab, rate, range_total_qty,
		       range_total_mtk, range_total_amount
		FROM transport_fol_slab WHERE fol_section_id = ANY($1)
		ORDER BY id
	`, pq.Array(folIDs))
	if err != nil {
		return err
	}
	defer sRows.Close()

	slabByID := map[int64]*models.TransportFOLSlab{}
	var slabIDs []int64
	for sRows.Next() {
		var s models.TransportFOLSlab
		if err := sRows.Scan(&s.ID, &s.FOLSectionID, &s.RangeSlab, &s.Rate,
			&s.RangeTotalQty, &s.RangeTotalMTK, &s.RangeTotalAmount); err != nil {
			return err
		}
		sec := folByID[s.FOLSectionID]
		sec.Slabs = append(sec.Slabs, s)
		slabByID[s.ID] = &sec.Slabs[len(sec.Slabs)-1]
		slabIDs = append(slabIDs, s.ID)
	}
	if err := sRows.Err(); err != nil {
		return err
	}
	if len(slabIDs) == 0 {
		return nil
	}

	tRows, err := r.DB.Query(`
		SELECT id, slab_id, destination_place, qty_mt, qty_mtk, amount, destination_entry_id
		FROM transport_fol_destination WHERE slab_id = ANY($1)
		ORDER BY id
	`, pq.Array(slabIDs))
	if err != nil {
		return err
	}
	defer tRows.Close()
	for tRows.Next() {
		var d models.TransportFOLDestination
		if err := tRows.Scan(&d.ID, &d.SlabID, &d.DestinationPlace, &d.QtyMT, &d.QtyMTK,
			&d.Amount, &d.DestinationEntryID); err != nil {
			return err
		}
		if slab, ok := slabByID[d.SlabID]; ok {
			slab.Destinations = append(slab.Destinations, d)
		}
	}
	return tRows.Err()
}

// DeleteServiceBill unlinks everything the bill covered before dropping
// it; sections and slab rows cascade from the bill row.
func (r *PostgresServiceBillRepo) DeleteServiceBill(id int64) error {
	tx, err := r.DB.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`
		UPDATE destination_entry SET service_bill_id=NULL, transport_type=NULL
		WHERE service_bill_id=$1
	`, id); err != nil {
		return err
	}
	if _, err := tx.Exec(`UPDATE dealer_entry SET service_bill_id=NULL WHERE service_bill_id=$1`, id); err != nil {
		return err
	}
	res, err := tx.Exec(`DELETE FROM service_bill WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return &NotFoundError{Entity: "service_bill", ID: id}
	}
	return tx.Commit()
}

func (r *PostgresServiceBillRepo) UpdatePDFInfo(id int64, path string, createdAt time.Time) error {
	res, err := r.DB.Exec(`UPDATE service_bill SET pdf_path=$1, pdf_created_at=$2 WHERE id=$3`, path, createdAt, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return &NotFoundError{Entity: "service_bill", ID: id}
	}
	return nil
}

// FOLLinesForEntries collects every rated range entry under the given
// destination entries as aggregation input. Range entries without a
// rate range carry no slab identity and are skipped. Place labels fall
// back to the destination name when no place is recorded.
func (r *PostgresServiceBillRepo) FOLLinesForEntries(entryIDs []int64) ([]billing.SlabLine, error) {
	entryIDs = dedupeIDs(entryIDs)
	if len(entryIDs) == 0 {
		return nil, nil
	}

	rows, err := r.DB.Query(`
		SELECT e.id, d.id, COALESCE(d.place, d.name),
		       rr.id, rr.from_km, rr.to_km, re.rate,
		       COALESCE(re.total_mt, 0), COALESCE(re.total_mtk, 0), COALESCE(re.total_amount, 0)
		FROM destination_entry e
		JOIN destination d ON e.destination_id = d.id
		LEFT JOIN range_entry re ON re.destination_entry_id = e.id
		LEFT JOIN rate_range rr ON re.rate_range_id = rr.id
		WHERE e.id = ANY($1)
		ORDER BY e.id, re.id
	`, pq.Array(entryIDs))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	seen := map[int64]bool{}
	var lines []billing.SlabLine
	for rows.Next() {
		var entryID, destID int64
		var place string
		var rrID sql.NullInt64
		var rrFrom, rrTo, rate, mt, mtk, amount sql.NullFloat64
		if err := rows.Scan(&entryID, &destID, &place,
			&rrID, &rrFrom, &rrTo, &rate, &mt, &mtk, &amount); err != nil {
			return nil, err
		}
		seen[entryID] = true
		if !rrID.Valid {
			continue
		}
		rr := models.RateRange{ID: rrID.Int64, FromKM: rrFrom.Float64, ToKM: rrTo.Float64}
		lines = append(lines, billing.SlabLine{
			SlabID:        rrID.Int64,
			SlabLabel:     rr.Label(),
			Rate:          rate.Float64,
			DestinationID: destID,
			Place:         place,
			EntryID:       entryID,
			MT:            mt.Float64,
			MTK:           mtk.Float64,
			Amount:        amount.Float64,
		})
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for _, id := range entryIDs {
		if !seen[id] {
			return nil, &NotFoundError{Entity: "destination_entry", ID: id}
		}
	}
	return lines, nil
}

func (r *PostgresServiceBillRepo) DepotLinesForBill(billID int64) ([]*models.DealerEntry, error) {
	rows, err := r.DB.Query(`
		SELECT de.id, de.range_entry_id, de.dealer_id, de.despatched_to, de.km,
		       de.no_bags, de.rate, de.mt, de.mtk, de.amount, de.mda_number,
		       de.date, de.description, de.remarks, de.service_bill_id,
		       dl.id, dl.code, dl.name
		FROM dealer_entry de
		LEFT JOIN dealer dl ON de.dealer_id = dl.id
		WHERE de.service_bill_id = $1
		ORDER BY de.date, de.id
	`, billID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*models.DealerEntry
	for rows.Next() {
		var de models.DealerEntry
		var dlID sql.NullInt64
		var dlCode, dlName sql.NullString
		if err := rows.Scan(&de.ID, &de.RangeEntryID, &de.DealerID, &de.DespatchedTo, &de.KM,
			&de.NoBags, &de.Rate, &de.MT, &de.MTK, &de.Amount, &de.MDANumber,
			&de.Date, &de.Description, &de.Remarks, &de.ServiceBillID,
			&dlID, &dlCode, &dlName); err != nil {
			return nil, err
		}
		if dlID.Valid {
			de.Dealer = &models.Dealer{ID: dlID.Int64, Code: dlCode.String, Name: dlName.String}
		}
		out = append(out, &de)
	}
	return out, rows.Err()
}
