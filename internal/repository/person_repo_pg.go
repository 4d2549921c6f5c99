package repository

import (
	"context"
	"fmt"

	"github.com/Domenick1991/flightbooking/internal/domain"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PGPersonRepository struct {
	db *pgxpool.Pool
}

func NewPGPersonRepository(db *pgxpool.Pool) PersonRepository {
	return &PGPersonRepository{db: db}
}

// Create relies on the persons.person_id sequence for identity.
func (r *PGPersonRepository) Create(ctx context.Context, p *domain.Person) error {
	err := r.db.QueryRow(ctx, `INSERT INTO persons (name, birthdate, passport, travel_class)
		VALUES ($1, $2, $3, $4)
		RETURNING person_id`, p.Name, p.Birthdate, p.Passport, int16(p.TravelClass)).Scan(&p.ID)
	if err != nil {
		return fmt.Errorf("insert person: %w", err)
	}
	return nil
}

func (r *PGPersonRepository) GetByID(ctx context.Context, id int64) (*domain.Person, error) {
	var (
		p           domain.Person
		travelClass int16
	)
	err := r.db.QueryRow(ctx, `SELECT person_id, name, birthdate, passport, travel_class FROM persons WHERE person_id=$1`, id).
		Scan(&p.ID, &p.Name, &p.Birthdate, &p.Passport, &travelClass)
	if err != nil {
		return nil, notFound(err, "person %d", id)
	}
	p.TravelClass = domain.TravelClass(travelClass)
	return &p, nil
}

var _ PersonRepository = (*PGPersonRepository)(nil)
