package pets

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"pet-care-api/internal/middleware"
	"pet-care-api/internal/platform/web"
)

func RegisterRoutes(r chi.Router, svc *Service) {
	r.Route("/pets", func(pr chi.Router) {
		// Vista admin primero: chi prioriza rutas estáticas sobre {petID}.
		pr.With(middleware.RequireAdmin).Get("/all", listAllPetsHandler(svc))

		pr.Group(func(ur chi.Router) {
			ur.Use(middleware.RequireUser)
			ur.Get("/", listPetsHandler(svc))
			ur.Post("/", createPetHandler(svc))
			ur.Get("/{petID}", getPetHandler(svc))
			ur.Put("/{petID}", updatePetHandler(svc))
			ur.Delete("/{petID}", deletePetHandler(svc))
		})
	})
}

type petRequest struct {
	Name        string   `json:"pet_name"`
	Species     string   `json:"species"`
	Breed       string   `json:"breed"`
	Age         *int     `json:"age"`
	Weight      *float64 `json:"weight"`
	Color       string   `json:"color"`
	DateOfBirth string   `json:"date_of_birth"` // YYYY-MM-DD opcional
	Gender      string   `json:"gender"`
	Notes       string   `json:"notes"`
}

type petResponse struct {
	ID          string     `json:"pet_id"`
	UserID      string     `json:"user_id"`
	Name        string     `json:"pet_name"`
	Species     string     `json:"species"`
	Breed       string     `json:"breed"`
	Age         *int       `json:"age"`
	Weight      *float64   `json:"weight"`
	Color       string     `json:"color"`
	DateOfBirth *time.Time `json:"date_of_birth,omitempty"`
	Gender      string     `json:"gender"`
	Notes       string     `json:"notes"`
	CreatedAt   time.Time  `json:"created_date"`
}

type adminPetResponse struct {
	ID             string    `json:"pet_id"`
	Name           string    `json:"pet_name"`
	Species        string    `json:"species"`
	Breed          string    `json:"breed"`
	OwnerFirstName string    `json:"first_name"`
	OwnerLastName  string    `json:"last_name"`
	OwnerEmail     string    `json:"email"`
	CreatedAt      time.Time `json:"created_date"`
}

func createPetHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, _ := middleware.GetClaims(r.Context())

		var req petRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			web.Fail(w, http.StatusBadRequest, "Invalid JSON body")
			return
		}

		dob, err := parseDate(req.DateOfBirth)
		if err != nil {
			web.Fail(w, http.StatusBadRequest, "date_of_birth must be YYYY-MM-DD")
			return
		}

		p, err := svc.Create(r.Context(), claims.UserID, CreateInput{
			Name:        req.Name,
			Species:     req.Species,
			Breed:       req.Breed,
			Age:         req.Age,
			Weight:      req.Weight,
			Color:       req.Color,
			DateOfBirth: dob,
			Gender:      req.Gender,
			Notes:       req.Notes,
		})
		if err != nil {
			if errors.Is(err, ErrInvalidInput) {
				web.Fail(w, http.StatusBadRequest, "Pet name and species are required")
				return
			}
			web.Fail(w, http.StatusInternalServerError, err.Error())
			return
		}

		web.OK(w, http.StatusCreated, web.Envelope{
			"message": "Pet added successfully",
			"pet_id":  p.ID,
		})
	}
}

func listPetsHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, _ := middleware.GetClaims(r.Context())

		items, err := svc.ListByOwner(r.Context(), claims.UserID)
		if err != nil {
			web.Fail(w, http.StatusInternalServerError, err.Error())
			return
		}

		out := make([]petResponse, 0, len(items))
		for _, p := range items {
			out = append(out, toPetResponse(p))
		}

		web.OK(w, http.StatusOK, web.Envelope{
			"total": len(out),
			"pets":  out,
		})
	}
}

func getPetHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, _ := middleware.GetClaims(r.Context())

		p, err := svc.GetOwned(r.Context(), chi.URLParam(r, "petID"), claims.UserID)
		if err != nil {
			if errors.Is(err, ErrNotFound) {
				web.Fail(w, http.StatusNotFound, "Pet not found")
				return
			}
			web.Fail(w, http.StatusInternalServerError, err.Error())
			return
		}

		web.OK(w, http.StatusOK, web.Envelope{"pet": toPetResponse(p)})
	}
}

func updatePetHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, _ := middleware.GetClaims(r.Context())

		var req petRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			web.Fail(w, http.StatusBadRequest, "Invalid JSON body")
			return
		}

		err := svc.Update(r.Context(), chi.URLParam(r, "petID"), claims.UserID, UpdateInput{
			Name:    req.Name,
			Species: req.Species,
			Breed:   req.Breed,
			Age:     req.Age,
			Weight:  req.Weight,
			Color:   req.Color,
			Notes:   req.Notes,
		})
		if err != nil {
			switch {
			case errors.Is(err, ErrInvalidInput):
				web.Fail(w, http.StatusBadRequest, "Pet name and species are required")
			case errors.Is(err, ErrNotFound):
				web.Fail(w, http.StatusNotFound, "Pet not found")
			default:
				web.Fail(w, http.StatusInternalServerError, err.Error())
			}
			return
		}

		web.OK(w, http.StatusOK, web.Envelope{"message": "Pet updated successfully"})
	}
}

func deletePetHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, _ := middleware.GetClaims(r.Context())

		if err := svc.Delete(r.Context(), chi.URLParam(r, "petID"), claims.UserID); err != nil {
			if errors.Is(err, ErrNotFound) {
				web.Fail(w, http.StatusNotFound, "Pet not found")
				return
			}
			web.Fail(w, http.StatusInternalServerError, err.Error())
			return
		}

		web.OK(w, http.StatusOK, web.Envelope{"message": "Pet deleted successfully"})
	}
}

func listAllPetsHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		rows, err := svc.ListAll(r.Context())
		if err != nil {
			web.Fail(w, http.StatusInternalServerError, err.Error())
			return
		}

		out := make([]adminPetResponse, 0, len(rows))
		for _, row := range rows {
			out = append(out, adminPetResponse{
				ID:             row.ID,
				Name:           row.Name,
				Species:        row.Species,
				Breed:          row.Breed,
				OwnerFirstName: row.OwnerFirstName,
				OwnerLastName:  row.OwnerLastName,
				OwnerEmail:     row.OwnerEmail,
				CreatedAt:      row.CreatedAt,
			})
		}

		web.OK(w, http.StatusOK, web.Envelope{
			"total": len(out),
			"pets":  out,
		})
	}
}

func toPetResponse(p Pet) petResponse {
	return petResponse{
		ID:          p.ID,
		UserID:      p.UserID,
		Name:        p.Name,
		Species:     p.Species,
		Breed:       p.Breed,
		Age:         p.Age,
		Weight:      p.Weight,
		Color:       p.Color,
		DateOfBirth: p.DateOfBirth,
		Gender:      p.Gender,
		Notes:       p.Notes,
		CreatedAt:   p.CreatedAt,
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
