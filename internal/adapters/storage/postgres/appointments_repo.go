package postgres

import (
	"context"
	"database/sql"

	"pet-care-api/internal/domain/appointments"
)

type AppointmentRepo struct {
	db *sql.DB
}

func NewAppointmentRepo(db *sql.DB) *AppointmentRepo {
	return &AppointmentRepo{db: db}
}

// Create verifica ownership de la mascota en el mismo INSERT:
// si el SELECT interno no produce fila, no se inserta nada.
func (r *AppointmentRepo) Create(ctx context.Context, a appointments.Appointment) error {
	const q = `
		INSERT INTO appointments (id, user_id, pet_id, appointment_date, appointment_type,
		                          veterinarian, clinic_name, phone_number, notes, status, created_at)
		SELECT $1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11
		WHERE EXISTS (SELECT 1 FROM pets WHERE id = $3 AND user_id = $2)`

	res, err := r.db.ExecContext(ctx, q,
		a.ID, a.UserID, a.PetID, a.Date, a.Type,
		a.Veterinarian, a.ClinicName, a.Phone, a.Notes, string(a.Status), a.CreatedAt,
	)
	if err != nil {
		return err
	}
	return mapAffected(res, appointments.ErrPetNotOwned)
}

func (r *AppointmentRepo) ListByUser(ctx context.Context, userID string) ([]appointments.Row, error) {
	const q = `
		SELECT a.id, a.user_id, a.pet_id, a.appointment_date, a.appointment_type,
		       a.veterinarian, a.clinic_name, a.phone_number, a.notes, a.status, a.created_at,
		       p.pet_name
		FROM appointments a
		JOIN pets p ON p.id = a.pet_id
		WHERE a.user_id = $1
		ORDER BY a.appointment_date DESC`

	rows, err := r.db.QueryContext(ctx, q, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]appointments.Row, 0)
	for rows.Next() {
		var row appointments.Row
		if err := rows.Scan(
			&row.ID, &row.UserID, &row.PetID, &row.Date, &row.Type,
			&row.Veterinarian, &row.ClinicName, &row.Phone, &row.Notes, &row.Status, &row.CreatedAt,
			&row.PetName,
		); err != nil {
			return nil, err
		}
		out = append(out, row)
	}
	return out, rows.Err()
}

func (r *AppointmentRepo) UpdateOwned(ctx context.Context, a appointments.Appointment) error {
	const q = `
		UPDATE appointments
		SET appointment_date = $1, appointment_type = $2, veterinarian = $3,
		    clinic_name = $4, phone_number = $5, notes = $6, status = $7
		WHERE id = $8 AND user_id = $9`

	res, err := r.db.ExecContext(ctx, q,
		a.Date, a.Type, a.Veterinarian, a.ClinicName, a.Phone, a.Notes, string(a.Status),
		a.ID, a.UserID,
	)
	if err != nil {
		return err
	}
	return mapAffected(res, appointments.ErrNotFound)
}

func (r *AppointmentRepo) CancelOwned(ctx context.Context, id, userID string) error {
	// Matchea aunque ya esté cancelada: cancelar dos veces no es error.
	const q = `
		UPDATE appointments SET status = $1
		WHERE id = $2 AND user_id = $3`

	res, err := r.db.ExecContext(ctx, q, string(appointments.StatusCancelled), id, userID)
	if err != nil {
		return err
	}
	return mapAffected(res, appointments.ErrNotFound)
}

func (r *AppointmentRepo) ListAll(ctx context.Context) ([]appointments.AdminRow, error) {
	const q = `
		SELECT a.id, a.user_id, a.pet_id, a.appointment_date, a.appointment_type,
		       a.veterinarian, a.clinic_name, a.phone_number, a.notes, a.status, a.created_at,
		       p.pet_name, u.first_name, u.last_name
		FROM appointments a
		JOIN pets p ON p.id = a.pet_id
		JOIN users u ON u.id = a.user_id
		ORDER BY a.appointment_date DESC`

	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]appointments.AdminRow, 0)
	for rows.Next() {
		var row appointments.AdminRow
		if err := rows.Scan(
			&row.ID, &row.UserID, &row.PetID, &row.Date, &row.Type,
			&row.Veterinarian, &row.ClinicName, &row.Phone, &row.Notes, &row.Status, &row.CreatedAt,
			&row.PetName, &row.OwnerFirstName, &row.OwnerLastName,
		); err != nil {
			return nil, err
		}
		out = append(out, row)
	}
	return out, rows.Err()
}

var _ appointments.Repository = (*AppointmentRepo)(nil)
