package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"know-your-doses/internal/domain/doses"
	"know-your-doses/internal/domain/prescriptions"
)

type DosesRepo struct {
	db *sql.DB
}

func NewDosesRepo(db *sql.DB) *DosesRepo {
	return &DosesRepo{db: db}
}

func (r *DosesRepo) Create(ctx context.Context, e doses.DoseEvent) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO dose_events (
			id, person_id, prescription_id,
			date_administered, compound_name, amount, unit, dose_number
		) VALUES ($1,$2,$3,$4,$5,$6,$7,$8)
	`,
		e.ID,
		e.PersonID,
		toNullString(e.PrescriptionID),
		e.DateAdministered,
		e.CompoundName,
		e.Amount,
		string(e.Unit),
		e.DoseNumber,
	)
	return err
}

func (r *DosesRepo) GetByID(ctx context.Context, id string) (doses.DoseEvent, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return doses.DoseEvent{}, ErrNotFound
	}

	row := r.db.QueryRowContext(ctx, `
		SELECT
			id, person_id, prescription_id,
			date_administered, compound_name, amount, unit, dose_number
		FROM dose_events
		WHERE id = $1
	`, id)

	e, err := scanDoseEvent(row.Scan)
	if err != nil {
		if err == sql.ErrNoRows {
			return doses.DoseEvent{}, ErrNotFound
		}
		return doses.DoseEvent{}, err
	}
	return e, nil
}

func (r *DosesRepo) Update(ctx context.Context, e doses.DoseEvent) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE dose_events
		SET
			prescription_id = $2,
			date_administered = $3,
			compound_name = $4,
			amount = $5,
			unit = $6,
			dose_number = $7
		WHERE id = $1
	`,
		e.ID,
		toNullString(e.PrescriptionID),
		e.DateAdministered,
		e.CompoundName,
		e.Amount,
		string(e.Unit),
		e.DoseNumber,
	)
	if err != nil {
		return err
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *DosesRepo) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `
		DELETE FROM dose_events
		WHERE id = $1
	`, id)
	if err != nil {
		return err
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *DosesRepo) CountByDay(ctx context.Context, personID, prescriptionID string, day time.Time, onlyPositive bool) (int, error) {
	query := `
		SELECT COUNT(*)
		FROM dose_events
		WHERE person_id = $1 AND prescription_id = $2 AND date_administered = $3
	`
	if onlyPositive {
		query += " AND amount > 0"
	}

	var count int
	if err := r.db.QueryRowContext(ctx, query, personID, prescriptionID, day).Scan(&count); err != nil {
		return 0, err
	}
	return count, nil
}

func (r *DosesRepo) ListByPerson(ctx context.Context, personID string, filter doses.ListFilter) ([]doses.DoseEvent, error) {
	personID = strings.TrimSpace(personID)
	if personID == "" {
		return nil, nil
	}

	sb := strings.Builder{}
	sb.WriteString(`
		SELECT
			id, person_id, prescription_id,
			date_administered, compound_name, amount, unit, dose_number
		FROM dose_events
		WHERE person_id = $1
	`)

	args := []any{personID}
	argN := 2

	if filter.CompoundName != "" {
		sb.WriteString(" AND compound_name = $2")
		args = append(args, filter.CompoundName)
		argN++
	}

	limit := filter.Limit
	if limit <= 0 {
		limit = 100
	}

	sb.WriteString(" ORDER BY date_administered DESC, dose_number ASC")
	sb.WriteString(fmt.Sprintf(" LIMIT $%d", argN))
	args = append(args, limit)

	rows, err := r.db.QueryContext(ctx, sb.String(), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]doses.DoseEvent, 0)
	for rows.Next() {
		e, err := scanDoseEvent(rows.Scan)
		if err != nil {
			return nil, err
		}
		out = append(out, e)
	}

	return out, rows.Err()
}

func scanDoseEvent(scan func(dest ...any) error) (doses.DoseEvent, error) {
	var e doses.DoseEvent
	var prescriptionID sql.NullString
	var unit string

	if err := scan(
		&e.ID,
		&e.PersonID,
		&prescriptionID,
		&e.DateAdministered,
		&e.CompoundName,
		&e.Amount,
		&unit,
		&e.DoseNumber,
	); err != nil {
		return doses.DoseEvent{}, err
	}

	// Referencia débil: NULL cuando la entrada es manual o la receta fue
	// borrada; el dominio la representa como string vacía.
	e.PrescriptionID = prescriptionID.String
	e.Unit = prescriptions.Unit(unit)
	return e, nil
}

func toNullString(s string) sql.NullString {
	if strings.TrimSpace(s) == "" {
		return sql.NullString{}
	}
	return sql.NullString{String: s, Valid: true}
}
