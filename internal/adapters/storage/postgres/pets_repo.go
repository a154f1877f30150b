package postgres

import (
	"context"
	"database/sql"
	"errors"

	"pet-care-api/internal/domain/pets"
)

type PetRepo struct {
	db *sql.DB
}

func NewPetRepo(db *sql.DB) *PetRepo {
	return &PetRepo{db: db}
}

func (r *PetRepo) Create(ctx context.Context, p pets.Pet) error {
	const q = `
		INSERT INTO pets (id, user_id, pet_name, species, breed, age, weight,
		                  color, date_of_birth, gender, notes, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`

	_, err := r.db.ExecContext(ctx, q,
		p.ID, p.UserID, p.Name, p.Species, p.Breed, p.Age, p.Weight,
		p.Color, p.DateOfBirth, p.Gender, p.Notes, p.CreatedAt,
	)
	return err
}

func (r *PetRepo) GetOwned(ctx context.Context, id, userID string) (pets.Pet, error) {
	const q = `
		SELECT id, user_id, pet_name, species, breed, age, weight,
		       color, date_of_birth, gender, notes, created_at
		FROM pets WHERE id = $1 AND user_id = $2`

	var p pets.Pet
	err := r.db.QueryRowContext(ctx, q, id, userID).Scan(
		&p.ID, &p.UserID, &p.Name, &p.Species, &p.Breed, &p.Age, &p.Weight,
		&p.Color, &p.DateOfBirth, &p.Gender, &p.Notes, &p.CreatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return pets.Pet{}, pets.ErrNotFound
	}
	return p, err
}

func (r *PetRepo) ListByOwner(ctx context.Context, userID string) ([]pets.Pet, error) {
	const q = `
		SELECT id, user_id, pet_name, species, breed, age, weight,
		       color, date_of_birth, gender, notes, created_at
		FROM pets WHERE user_id = $1
		ORDER BY created_at DESC`

	rows, err := r.db.QueryContext(ctx, q, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]pets.Pet, 0)
	for rows.Next() {
		var p pets.Pet
		if err := rows.Scan(
			&p.ID, &p.UserID, &p.Name, &p.Species, &p.Breed, &p.Age, &p.Weight,
			&p.Color, &p.DateOfBirth, &p.Gender, &p.Notes, &p.CreatedAt,
		); err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

func (r *PetRepo) UpdateOwned(ctx context.Context, p pets.Pet) error {
	const q = `
		UPDATE pets
		SET pet_name = $1, species = $2, breed = $3, age = $4,
		    weight = $5, color = $6, notes = $7
		WHERE id = $8 AND user_id = $9`

	res, err := r.db.ExecContext(ctx, q,
		p.Name, p.Species, p.Breed, p.Age, p.Weight, p.Color, p.Notes,
		p.ID, p.UserID,
	)
	if err != nil {
		return err
	}
	return mapAffected(res, pets.ErrNotFound)
}

func (r *PetRepo) DeleteOwned(ctx context.Context, id, userID string) error {
	res, err := r.db.ExecContext(ctx,
		`DELETE FROM pets WHERE id = $1 AND user_id = $2`, id, userID)
	if err != nil {
		return err
	}
	return mapAffected(res, pets.ErrNotFound)
}

func (r *PetRepo) ListAll(ctx context.Context) ([]pets.AdminRow, error) {
	const q = `
		SELECT p.id, p.user_id, p.pet_name, p.species, p.breed, p.age, p.weight,
		       p.color, p.date_of_birth, p.gender, p.notes, p.created_at,
		       u.first_name, u.last_name, u.email
		FROM pets p
		JOIN users u ON u.id = p.user_id
		ORDER BY p.created_at DESC`

	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]pets.AdminRow, 0)
	for rows.Next() {
		var row pets.AdminRow
		if err := rows.Scan(
			&row.ID, &row.UserID, &row.Name, &row.Species, &row.Breed, &row.Age, &row.Weight,
			&row.Color, &row.DateOfBirth, &row.Gender, &row.Notes, &row.CreatedAt,
			&row.OwnerFirstName, &row.OwnerLastName, &row.OwnerEmail,
		); err != nil {
			return nil, err
		}
		out = append(out, row)
	}
	return out, rows.Err()
}

var _ pets.Repository = (*PetRepo)(nil)
