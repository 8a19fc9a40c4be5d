package postgres

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"know-your-doses/internal/domain/prescriptions"
)

type PrescriptionsRepo struct {
	db *sql.DB
}

func NewPrescriptionsRepo(db *sql.DB) *PrescriptionsRepo {
	return &PrescriptionsRepo{db: db}
}

func (r *PrescriptionsRepo) Create(ctx context.Context, p prescriptions.Prescription) error {
	cycOn, cycOff := toNullCycling(p.Cycling)

	_, err := r.db.ExecContext(ctx, `
		INSERT INTO prescriptions (
			id, person_id,
			compound_name, amount, unit, frequency,
			cycling_on, cycling_off, icon_type,
			date_first_prescribed, date_last_modified, date_last_administered
		) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12)
	`,
		p.ID,
		p.PersonID,
		p.CompoundName,
		p.Amount,
		string(p.Unit),
		string(p.Frequency),
		cycOn,
		cycOff,
		p.IconType,
		p.DateFirstPrescribed,
		p.DateLastModified,
		toNullDate(p.DateLastAdministered),
	)
	return err
}

func (r *PrescriptionsRepo) Update(ctx context.Context, p prescriptions.Prescription) error {
	cycOn, cycOff := toNullCycling(p.Cycling)

	res, err := r.db.ExecContext(ctx, `
		UPDATE prescriptions
		SET
			compound_name = $2,
			amount = $3,
			unit = $4,
			frequency = $5,
			cycling_on = $6,
			cycling_off = $7,
			icon_type = $8,
			date_first_prescribed = $9,
			date_last_modified = $10,
			date_last_administered = $11
		WHERE id = $1
	`,
		p.ID,
		p.CompoundName,
		p.Amount,
		string(p.Unit),
		string(p.Frequency),
		cycOn,
		cycOff,
		p.IconType,
		p.DateFirstPrescribed,
		p.DateLastModified,
		toNullDate(p.DateLastAdministered),
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

func (r *PrescriptionsRepo) GetByID(ctx context.Context, id string) (prescriptions.Prescription, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return prescriptions.Prescription{}, ErrNotFound
	}

	row := r.db.QueryRowContext(ctx, `
		SELECT
			id, person_id,
			compound_name, amount, unit, frequency,
			cycling_on, cycling_off, icon_type,
			date_first_prescribed, date_last_modified, date_last_administered
		FROM prescriptions
		WHERE id = $1
	`, id)

	p, err := scanPrescription(row.Scan)
	if err != nil {
		if err == sql.ErrNoRows {
			return prescriptions.Prescription{}, ErrNotFound
		}
		return prescriptions.Prescription{}, err
	}
	return p, nil
}

func (r *PrescriptionsRepo) ListByPerson(ctx context.Context, personID string) ([]prescriptions.Prescription, error) {
	personID = strings.TrimSpace(personID)
	if personID == "" {
		return nil, nil
	}

	rows, err := r.db.QueryContext(ctx, `
		SELECT
			id, person_id,
			compound_name, amount, unit, frequency,
			cycling_on, cycling_off, icon_type,
			date_first_prescribed, date_last_modified, date_last_administered
		FROM prescriptions
		WHERE person_id = $1
		ORDER BY date_first_prescribed ASC, compound_name ASC
	`, personID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]prescriptions.Prescription, 0)
	for rows.Next() {
		p, err := scanPrescription(rows.Scan)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}

	return out, rows.Err()
}

// Delete borra solo la fila de la receta. Las dose_events que la
// referencian NO se tocan: prescription_id es nullable sin FK en cascada,
// el historial queda con la referencia huérfana a propósito.
func (r *PrescriptionsRepo) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `
		DELETE FROM prescriptions
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

func scanPrescription(scan func(dest ...any) error) (prescriptions.Prescription, error) {
	var p prescriptions.Prescription
	var unit, freq string
	var cycOn, cycOff sql.NullInt64
	var lastAdmin sql.NullTime

	if err := scan(
		&p.ID,
		&p.PersonID,
		&p.CompoundName,
		&p.Amount,
		&unit,
		&freq,
		&cycOn,
		&cycOff,
		&p.IconType,
		&p.DateFirstPrescribed,
		&p.DateLastModified,
		&lastAdmin,
	); err != nil {
		return prescriptions.Prescription{}, err
	}

	p.Unit = prescriptions.Unit(unit)
	p.Frequency = prescriptions.Frequency(freq)

	// cycling_on/cycling_off se escriben juntos; con uno solo en NULL la
	// fila se trata como sin ciclado.
	if cycOn.Valid && cycOff.Valid {
		p.Cycling = &prescriptions.CyclingRule{
			On:  int(cycOn.Int64),
			Off: int(cycOff.Int64),
		}
	}

	if lastAdmin.Valid {
		// ojo: es DATE, pgx lo mapea a time.Time midnight UTC
		t := lastAdmin.Time
		p.DateLastAdministered = &t
	}

	return p, nil
}

func toNullCycling(c *prescriptions.CyclingRule) (sql.NullInt64, sql.NullInt64) {
	if c == nil {
		return sql.NullInt64{}, sql.NullInt64{}
	}
	return sql.NullInt64{Int64: int64(c.On), Valid: true},
		sql.NullInt64{Int64: int64(c.Off), Valid: true}
}

// las columnas de fecha nullable van como NullTime para simplificar
func toNullDate(t *time.Time) sql.NullTime {
	if t == nil {
		return sql.NullTime{Valid: false}
	}
	return sql.NullTime{Time: *t, Valid: true}
}
