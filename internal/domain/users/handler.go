package users

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"pet-care-api/internal/middleware"
	"pet-care-api/internal/platform/web"
)

func RegisterRoutes(r chi.Router, svc *Service) {
	r.Route("/users", func(ur chi.Router) {
		ur.With(middleware.RequireAdmin).Get("/all", listUsersHandler(svc))

		ur.Group(func(pr chi.Router) {
			pr.Use(middleware.RequireUser)
			pr.Get("/profile", getProfileHandler(svc))
			pr.Put("/profile", updateProfileHandler(svc))
		})
	})
}

type profileRequest struct {
	FirstName  string `json:"first_name"`
	LastName   string `json:"last_name"`
	Phone      string `json:"phone"`
	Address    string `json:"address"`
	City       string `json:"city"`
	State      string `json:"state"`
	PostalCode string `json:"postal_code"`
	Country    string `json:"country"`
}

type profileResponse struct {
	ID         string `json:"user_id"`
	Email      string `json:"email"`
	FirstName  string `json:"first_name"`
	LastName   string `json:"last_name"`
	Phone      string `json:"phone"`
	Address    string `json:"address"`
	City       string `json:"city"`
	State      string `json:"state"`
	PostalCode string `json:"postal_code"`
	Country    string `json:"country"`
}

type adminUserResponse struct {
	ID        string    `json:"user_id"`
	Email     string    `json:"email"`
	FirstName string    `json:"first_name"`
	LastName  string    `json:"last_name"`
	Phone     string    `json:"phone"`
	City      string    `json:"city"`
	CreatedAt time.Time `json:"created_date"`
}

func getProfileHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, _ := middleware.GetClaims(r.Context())

		u, err := svc.GetProfile(r.Context(), claims.UserID)
		if err != nil {
			if errors.Is(err, ErrNotFound) {
				web.Fail(w, http.StatusNotFound, "User not found")
				return
			}
			web.Fail(w, http.StatusInternalServerError, err.Error())
			return
		}

		web.OK(w, http.StatusOK, web.Envelope{
			"user": profileResponse{
				ID:         u.ID,
				Email:      u.Email,
				FirstName:  u.FirstName,
				LastName:   u.LastName,
				Phone:      u.Phone,
				Address:    u.Address,
				City:       u.City,
				State:      u.State,
				PostalCode: u.PostalCode,
				Country:    u.Country,
			},
		})
	}
}

func updateProfileHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, _ := middleware.GetClaims(r.Context())

		var req profileRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			web.Fail(w, http.StatusBadRequest, "Invalid JSON body")
			return
		}

		err := svc.UpdateProfile(r.Context(), claims.UserID, UpdateProfileInput{
			FirstName:  req.FirstName,
			LastName:   req.LastName,
			Phone:      req.Phone,
			Address:    req.Address,
			City:       req.City,
			State:      req.State,
			PostalCode: req.PostalCode,
			Country:    req.Country,
		})
		if err != nil {
			if errors.Is(err, ErrNotFound) {
				web.Fail(w, http.StatusNotFound, "User not found")
				return
			}
			web.Fail(w, http.StatusInternalServerError, err.Error())
			return
		}

		web.OK(w, http.StatusOK, web.Envelope{"message": "Profile updated successfully"})
	}
}

func listUsersHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		items, err := svc.ListAll(r.Context())
		if err != nil {
			web.Fail(w, http.StatusInternalServerError, err.Error())
			return
		}

		out := make([]adminUserResponse, 0, len(items))
		for _, u := range items {
			out = append(out, adminUserResponse{
				ID:        u.ID,
				Email:     u.Email,
				FirstName: u.FirstName,
				LastName:  u.LastName,
				Phone:     u.Phone,
				City:      u.City,
				CreatedAt: u.CreatedAt,
			})
		}

		web.OK(w, http.StatusOK, web.Envelope{
			"total": len(out),
			"users": out,
		})
	}
}
