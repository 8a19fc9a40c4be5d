package postgres

import (
	"context"
	"database/sql"
	"strings"

	"know-your-doses/internal/domain/persons"
)

type PersonsRepo struct {
	db *sql.DB
}

func NewPersonsRepo(db *sql.DB) *PersonsRepo {
	return &PersonsRepo{db: db}
}

func (r *PersonsRepo) Create(ctx context.Context, p persons.Person) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO persons (id, name, date_added)
		VALUES ($1,$2,$3)
	`,
		p.ID,
		p.Name,
		p.DateAdded,
	)
	return err
}

func (r *PersonsRepo) GetByID(ctx context.Context, id string) (persons.Person, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return persons.Person{}, ErrNotFound
	}

	row := r.db.QueryRowContext(ctx, `
		SELECT id, name, date_added
		FROM persons
		WHERE id = $1
	`, id)

	var p persons.Person
	if err := row.Scan(&p.ID, &p.Name, &p.DateAdded); err != nil {
		if err == sql.ErrNoRows {
			return persons.Person{}, ErrNotFound
		}
		return persons.Person{}, err
	}

	return p, nil
}

func (r *PersonsRepo) List(ctx context.Context) ([]persons.Person, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, name, date_added
		FROM persons
		ORDER BY name ASC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]persons.Person, 0)
	for rows.Next() {
		var p persons.Person
		if err := rows.Scan(&p.ID, &p.Name, &p.DateAdded); err != nil {
			return nil, err
		}
		out = append(out, p)
	}

	return out, rows.Err()
}
