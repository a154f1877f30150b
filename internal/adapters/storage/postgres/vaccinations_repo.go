package postgres

import (
	"context"
	"database/sql"

	"pet-care-api/internal/domain/vaccinations"
)

type VaccinationRepo struct {
	db *sql.DB
}

func NewVaccinationRepo(db *sql.DB) *VaccinationRepo {
	return &VaccinationRepo{db: db}
}

func (r *VaccinationRepo) Create(ctx context.Context, v vaccinations.Vaccination, ownerUserID string) error {
	const q = `
		INSERT INTO vaccinations (id, pet_id, vaccine_name, vaccination_date, next_due_date,
		                          veterinarian, clinic_name, status, created_at)
		SELECT $1, $2, $3, $4, $5, $6, $7, $8, $9
		WHERE EXISTS (SELECT 1 FROM pets WHERE id = $2 AND user_id = $10)`

	res, err := r.db.ExecContext(ctx, q,
		v.ID, v.PetID, v.VaccineName, v.VaccinationDate, v.NextDueDate,
		v.Veterinarian, v.ClinicName, v.Status, v.CreatedAt,
		ownerUserID,
	)
	if err != nil {
		return err
	}
	return mapAffected(res, vaccinations.ErrPetNotOwned)
}

func (r *VaccinationRepo) ListByPet(ctx context.Context, petID string) ([]vaccinations.Vaccination, error) {
	const q = `
		SELECT id, pet_id, vaccine_name, vaccination_date, next_due_date,
		       veterinarian, clinic_name, status, created_at
		FROM vaccinations
		WHERE pet_id = $1
		ORDER BY vaccination_date DESC`

	rows, err := r.db.QueryContext(ctx, q, petID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]vaccinations.Vaccination, 0)
	for rows.Next() {
		var v vaccinations.Vaccination
		if err := rows.Scan(
			&v.ID, &v.PetID, &v.VaccineName, &v.VaccinationDate, &v.NextDueDate,
			&v.Veterinarian, &v.ClinicName, &v.Status, &v.CreatedAt,
		); err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, rows.Err()
}

func (r *VaccinationRepo) UpdateOwned(ctx context.Context, v vaccinations.Vaccination, ownerUserID string) error {
	const q = `
		UPDATE vaccinations
		SET vaccine_name = $1, vaccination_date = $2, next_due_date = $3,
		    veterinarian = $4, clinic_name = $5, status = $6
		WHERE id = $7
		  AND pet_id IN (SELECT id FROM pets WHERE user_id = $8)`

	res, err := r.db.ExecContext(ctx, q,
		v.VaccineName, v.VaccinationDate, v.NextDueDate,
		v.Veterinarian, v.ClinicName, v.Status,
		v.ID, ownerUserID,
	)
	if err != nil {
		return err
	}
	return mapAffected(res, vaccinations.ErrNotFound)
}

func (r *VaccinationRepo) ListAll(ctx context.Context) ([]vaccinations.AdminRow, error) {
	const q = `
		SELECT v.id, v.pet_id, v.vaccine_name, v.vaccination_date, v.next_due_date,
		       v.veterinarian, v.clinic_name, v.status, v.created_at,
		       p.pet_name, u.first_name, u.last_name
		FROM vaccinations v
		JOIN pets p ON p.id = v.pet_id
		JOIN users u ON u.id = p.user_id
		ORDER BY v.vaccination_date DESC`

	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]vaccinations.AdminRow, 0)
	for rows.Next() {
		var row vaccinations.AdminRow
		if err := rows.Scan(
			&row.ID, &row.PetID, &row.VaccineName, &row.VaccinationDate, &row.NextDueDate,
			&row.Veterinarian, &row.ClinicName, &row.Status, &row.CreatedAt,
			&row.PetName, &row.OwnerFirstName, &row.OwnerLastName,
		); err != nil {
			return nil, err
		}
		out = append(out, row)
	}
	return out, rows.Err()
}

var _ vaccinations.Repository = (*VaccinationRepo)(nil)
