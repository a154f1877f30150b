package vaccinations

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"pet-care-api/internal/domain/pets"
	"pet-care-api/internal/middleware"
	"pet-care-api/internal/platform/web"
)

// RegisterRoutes recibe también el service de pets para verificar ownership
// en el listado por mascota (mismo patrón que el alta, pero de solo lectura).
func RegisterRoutes(r chi.Router, svc *Service, petsSvc *pets.Service) {
	r.Route("/vaccinations", func(vr chi.Router) {
		vr.With(middleware.RequireAdmin).Get("/all", listAllHandler(svc))

		vr.Group(func(ur chi.Router) {
			ur.Use(middleware.RequireUser)
			ur.Get("/pet/{petID}", listByPetHandler(svc, petsSvc))
			ur.Post("/", addHandler(svc))
			ur.Put("/{vaccinationID}", updateHandler(svc))
		})
	})
}

type vaccinationRequest struct {
	PetID           string `json:"pet_id"`
	VaccineName     string `json:"vaccine_name"`
	VaccinationDate string `json:"vaccination_date"` // YYYY-MM-DD
	NextDueDate     string `json:"next_due_date"`    // YYYY-MM-DD opcional
	Veterinarian    string `json:"veterinarian"`
	ClinicName      string `json:"clinic_name"`
	Status          string `json:"status"`
}

type vaccinationResponse struct {
	ID              string     `json:"vaccination_id"`
	PetID           string     `json:"pet_id"`
	PetName         string     `json:"pet_name,omitempty"`
	VaccineName     string     `json:"vaccine_name"`
	VaccinationDate time.Time  `json:"vaccination_date"`
	NextDueDate     *time.Time `json:"next_due_date,omitempty"`
	Veterinarian    string     `json:"veterinarian"`
	ClinicName      string     `json:"clinic_name"`
	Status          string     `json:"status"`
	CreatedAt       time.Time  `json:"created_date"`

	OwnerFirstName string `json:"first_name,omitempty"`
	OwnerLastName  string `json:"last_name,omitempty"`
}

func listByPetHandler(svc *Service, petsSvc *pets.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, _ := middleware.GetClaims(r.Context())
		petID := chi.URLParam(r, "petID")

		// La mascota tiene que ser del caller; si no, 404 sin filtrar info.
		if _, err := petsSvc.GetOwned(r.Context(), petID, claims.UserID); err != nil {
			if errors.Is(err, pets.ErrNotFound) {
				web.Fail(w, http.StatusNotFound, "Pet not found")
				return
			}
			web.Fail(w, http.StatusInternalServerError, err.Error())
			return
		}

		items, err := svc.ListByPet(r.Context(), petID)
		if err != nil {
			web.Fail(w, http.StatusInternalServerError, err.Error())
			return
		}

		out := make([]vaccinationResponse, 0, len(items))
		for _, v := range items {
			out = append(out, toVaccinationResponse(v))
		}

		web.OK(w, http.StatusOK, web.Envelope{
			"total":        len(out),
			"vaccinations": out,
		})
	}
}

func addHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, _ := middleware.GetClaims(r.Context())

		var req vaccinationRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			web.Fail(w, http.StatusBadRequest, "Invalid JSON body")
			return
		}

		if strings.TrimSpace(req.PetID) == "" || strings.TrimSpace(req.VaccineName) == "" || strings.TrimSpace(req.VaccinationDate) == "" {
			web.Fail(w, http.StatusBadRequest, "Pet ID, vaccine name, and vaccination date are required")
			return
		}

		date, err := parseDate(req.VaccinationDate)
		if err != nil || date == nil {
			web.Fail(w, http.StatusBadRequest, "vaccination_date must be YYYY-MM-DD")
			return
		}
		nextDue, err := parseDate(req.NextDueDate)
		if err != nil {
			web.Fail(w, http.StatusBadRequest, "next_due_date must be YYYY-MM-DD")
			return
		}

		v, err := svc.Add(r.Context(), claims.UserID, AddInput{
			PetID:           req.PetID,
			VaccineName:     req.VaccineName,
			VaccinationDate: *date,
			NextDueDate:     nextDue,
			Veterinarian:    req.Veterinarian,
			ClinicName:      req.ClinicName,
			Status:          req.Status,
		})
		if err != nil {
			switch {
			case errors.Is(err, ErrInvalidInput):
				web.Fail(w, http.StatusBadRequest, "Pet ID, vaccine name, and vaccination date are required")
			case errors.Is(err, ErrPetNotOwned):
				web.Fail(w, http.StatusNotFound, "Pet not found")
			default:
				web.Fail(w, http.StatusInternalServerError, err.Error())
			}
			return
		}

		web.OK(w, http.StatusCreated, web.Envelope{
			"message":        "Vaccination record added successfully",
			"vaccination_id": v.ID,
		})
	}
}

func updateHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, _ := middleware.GetClaims(r.Context())

		var req vaccinationRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			web.Fail(w, http.StatusBadRequest, "Invalid JSON body")
			return
		}

		date, err := parseDate(req.VaccinationDate)
		if err != nil || date == nil {
			web.Fail(w, http.StatusBadRequest, "vaccination_date must be YYYY-MM-DD")
			return
		}
		nextDue, err := parseDate(req.NextDueDate)
		if err != nil {
			web.Fail(w, http.StatusBadRequest, "next_due_date must be YYYY-MM-DD")
			return
		}

		err = svc.Update(r.Context(), chi.URLParam(r, "vaccinationID"), claims.UserID, UpdateInput{
			VaccineName:     req.VaccineName,
			VaccinationDate: *date,
			NextDueDate:     nextDue,
			Veterinarian:    req.Veterinarian,
			ClinicName:      req.ClinicName,
			Status:          req.Status,
		})
		if err != nil {
			switch {
			case errors.Is(err, ErrInvalidInput):
				web.Fail(w, http.StatusBadRequest, "Vaccine name and vaccination date are required")
			case errors.Is(err, ErrNotFound):
				web.Fail(w, http.StatusNotFound, "Vaccination not found")
			default:
				web.Fail(w, http.StatusInternalServerError, err.Error())
			}
			return
		}

		web.OK(w, http.StatusOK, web.Envelope{"message": "Vaccination updated successfully"})
	}
}

func listAllHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		rows, err := svc.ListAll(r.Context())
		if err != nil {
			web.Fail(w, http.StatusInternalServerError, err.Error())
			return
		}

		out := make([]vaccinationResponse, 0, len(rows))
		for _, row := range rows {
			resp := toVaccinationResponse(row.Vaccination)
			resp.PetName = row.PetName
			resp.OwnerFirstName = row.OwnerFirstName
			resp.OwnerLastName = row.OwnerLastName
			out = append(out, resp)
		}

		web.OK(w, http.StatusOK, web.Envelope{
			"total":        len(out),
			"vaccinations": out,
		})
	}
}

func toVaccinationResponse(v Vaccination) vaccinationResponse {
	return vaccinationResponse{
		ID:              v.ID,
		PetID:           v.PetID,
		VaccineName:     v.VaccineName,
		VaccinationDate: v.VaccinationDate,
		NextDueDate:     v.NextDueDate,
		Veterinarian:    v.Veterinarian,
		ClinicName:      v.ClinicName,
		Status:          v.Status,
		CreatedAt:       v.CreatedAt,
	}
}

func parseDate(s string) (*time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return nil, err
	}
	return &t, nil
}
