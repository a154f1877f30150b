package reports

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"pet-care-api/internal/middleware"
	"pet-care-api/internal/platform/web"
)

func RegisterRoutes(r chi.Router, svc *Service) {
	r.Route("/admin", func(ar chi.Router) {
		ar.Use(middleware.RequireAdmin)
		ar.Get("/dashboard/stats", statsHandler(svc))
		ar.Get("/dashboard/overview", overviewHandler(svc))
		ar.Get("/data", exportHandler(svc))
	})
}

func statsHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		d, err := svc.Dashboard(r.Context())
		if err != nil {
			web.Fail(w, http.StatusInternalServerError, err.Error())
			return
		}

		recent := make([]web.Envelope, 0, len(d.RecentPets))
		for _, p := range d.RecentPets {
			recent = append(recent, web.Envelope{
				"pet_id":     p.PetID,
				"pet_name":   p.PetName,
				"species":    p.Species,
				"first_name": p.OwnerFirstName,
				"last_name":  p.OwnerLastName,
			})
		}

		web.OK(w, http.StatusOK, web.Envelope{
			"stats": web.Envelope{
				"total_pets":       d.Stats.TotalPets,
				"total_users":      d.Stats.TotalUsers,
				"pending_checkups": d.Stats.PendingAppointments,
			},
			"recent_pets": recent,
		})
	}
}

func overviewHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ov, err := svc.Overview(r.Context())
		if err != nil {
			web.Fail(w, http.StatusInternalServerError, err.Error())
			return
		}

		userStats := make([]web.Envelope, 0, len(ov.UsersByDay))
		for _, d := range ov.UsersByDay {
			userStats = append(userStats, web.Envelope{"date": d.Date, "total": d.Total})
		}
		petStats := make([]web.Envelope, 0, len(ov.PetsBySpecies))
		for _, k := range ov.PetsBySpecies {
			petStats = append(petStats, web.Envelope{"species": k.Key, "count": k.Count})
		}
		apptStats := make([]web.Envelope, 0, len(ov.AppointmentsByStatus))
		for _, k := range ov.AppointmentsByStatus {
			apptStats = append(apptStats, web.Envelope{"status": k.Key, "count": k.Count})
		}

		web.OK(w, http.StatusOK, web.Envelope{
			"user_stats":        userStats,
			"pet_stats":         petStats,
			"appointment_stats": apptStats,
		})
	}
}

func exportHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ex, err := svc.Export(r.Context())
		if err != nil {
			web.Fail(w, http.StatusInternalServerError, err.Error())
			return
		}

		usersOut := make([]web.Envelope, 0, len(ex.Users))
		for _, u := range ex.Users {
			usersOut = append(usersOut, web.Envelope{
				"user_id":      u.ID,
				"email":        u.Email,
				"first_name":   u.FirstName,
				"last_name":    u.LastName,
				"phone":        u.Phone,
				"created_date": u.CreatedAt,
			})
		}
		petsOut := make([]web.Envelope, 0, len(ex.Pets))
		for _, p := range ex.Pets {
			petsOut = append(petsOut, web.Envelope{
				"pet_id":   p.ID,
				"user_id":  p.UserID,
				"pet_name": p.Name,
				"species":  p.Species,
				"breed":    p.Breed,
			})
		}
		apptsOut := make([]web.Envelope, 0, len(ex.Appointments))
		for _, a := range ex.Appointments {
			apptsOut = append(apptsOut, web.Envelope{
				"appointment_id":   a.ID,
				"user_id":          a.UserID,
				"pet_id":           a.PetID,
				"appointment_date": a.Date.Format(time.RFC3339),
				"status":           string(a.Status),
			})
		}

		web.OK(w, http.StatusOK, web.Envelope{
			"summary": web.Envelope{
				"total_users":        len(usersOut),
				"total_pets":         len(petsOut),
				"total_appointments": len(apptsOut),
			},
			"data": web.Envelope{
				"users":        usersOut,
				"pets":         petsOut,
				"appointments": apptsOut,
			},
		})
	}
}
