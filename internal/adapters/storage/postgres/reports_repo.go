package postgres

import (
	"context"
	"database/sql"
	"time"

	"pet-care-api/internal/domain/reports"
)

type ReportsRepo struct {
	db *sql.DB
}

func NewReportsRepo(db *sql.DB) *ReportsRepo {
	return &ReportsRepo{db: db}
}

func (r *ReportsRepo) Stats(ctx context.Context, now time.Time) (reports.Stats, error) {
	const q = `
		SELECT
			(SELECT count(*) FROM pets),
			(SELECT count(*) FROM users),
			(SELECT count(*) FROM appointments
			 WHERE status = 'Scheduled' AND appointment_date >= $1)`

	var s reports.Stats
	err := r.db.QueryRowContext(ctx, q, now).Scan(
		&s.TotalPets, &s.TotalUsers, &s.PendingAppointments,
	)
	return s, err
}

func (r *ReportsRepo) RecentPets(ctx context.Context, limit int) ([]reports.RecentPet, error) {
	const q = `
		SELECT p.id, p.pet_name, p.species, u.first_name, u.last_name
		FROM pets p
		JOIN users u ON u.id = p.user_id
		ORDER BY p.created_at DESC
		LIMIT $1`

	rows, err := r.db.QueryContext(ctx, q, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]reports.RecentPet, 0, limit)
	for rows.Next() {
		var p reports.RecentPet
		if err := rows.Scan(&p.PetID, &p.PetName, &p.Species, &p.OwnerFirstName, &p.OwnerLastName); err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

func (r *ReportsRepo) UsersByDay(ctx context.Context, days int) ([]reports.DayCount, error) {
	const q = `
		SELECT to_char(created_at, 'YYYY-MM-DD') AS day, count(*)
		FROM users
		GROUP BY day
		ORDER BY day DESC
		LIMIT $1`

	rows, err := r.db.QueryContext(ctx, q, days)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]reports.DayCount, 0, days)
	for rows.Next() {
		var d reports.DayCount
		if err := rows.Scan(&d.Date, &d.Total); err != nil {
			return nil, err
		}
		out = append(out, d)
	}
	return out, rows.Err()
}

func (r *ReportsRepo) PetsBySpecies(ctx context.Context) ([]reports.KeyCount, error) {
	return r.keyCounts(ctx, `SELECT species, count(*) FROM pets GROUP BY species ORDER BY species`)
}

func (r *ReportsRepo) AppointmentsByStatus(ctx context.Context) ([]reports.KeyCount, error) {
	return r.keyCounts(ctx, `SELECT status, count(*) FROM appointments GROUP BY status ORDER BY status`)
}

func (r *ReportsRepo) keyCounts(ctx context.Context, q string) ([]reports.KeyCount, error) {
	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]reports.KeyCount, 0)
	for rows.Next() {
		var kc reports.KeyCount
		if err := rows.Scan(&kc.Key, &kc.Count); err != nil {
			return nil, err
		}
		out = append(out, kc)
	}
	return out, rows.Err()
}

var _ reports.Repository = (*ReportsRepo)(nil)
