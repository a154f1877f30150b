package appointments

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
	r.Route("/appointments", func(ar chi.Router) {
		ar.With(middleware.RequireAdmin).Get("/all", listAllHandler(svc))

		ar.Group(func(ur chi.Router) {
			ur.Use(middleware.RequireUser)
			ur.Get("/", listHandler(svc))
			ur.Post("/", bookHandler(svc))
			ur.Put("/{appointmentID}", updateHandler(svc))
			ur.Delete("/{appointmentID}", cancelHandler(svc))
		})
	})
}

type appointmentRequest struct {
	PetID        string `json:"pet_id"`
	Date         string `json:"appointment_date"`
	Type         string `json:"appointment_type"`
	Veterinarian string `json:"veterinarian"`
	ClinicName   string `json:"clinic_name"`
	Phone        string `json:"phone_number"`
	Status       string `json:"status"`
	Notes        string `json:"notes"`
}

type appointmentResponse struct {
	ID           string    `json:"appointment_id"`
	UserID       string    `json:"user_id"`
	PetID        string    `json:"pet_id"`
	PetName      string    `json:"pet_name,omitempty"`
	Date         time.Time `json:"appointment_date"`
	Type         string    `json:"appointment_type"`
	Veterinarian string    `json:"veterinarian"`
	ClinicName   string    `json:"clinic_name"`
	Phone        string    `json:"phone_number"`
	Notes        string    `json:"notes"`
	Status       string    `json:"status"`
	CreatedAt    time.Time `json:"created_date"`

	OwnerFirstName string `json:"first_name,omitempty"`
	OwnerLastName  string `json:"last_name,omitempty"`
}

func bookHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, _ := middleware.GetClaims(r.Context())

		var req appointmentRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			web.Fail(w, http.StatusBadRequest, "Invalid JSON body")
			return
		}

		if strings.TrimSpace(req.PetID) == "" || strings.TrimSpace(req.Date) == "" {
			web.Fail(w, http.StatusBadRequest, "Pet ID and appointment date are required")
			return
		}

		date, err := parseDateTime(req.Date)
		if err != nil {
			web.Fail(w, http.StatusBadRequest, "Invalid appointment date")
			return
		}

		a, err := svc.Book(r.Context(), claims.UserID, BookInput{
			PetID:        req.PetID,
			Date:         date,
			Type:         req.Type,
			Veterinarian: req.Veterinarian,
			ClinicName:   req.ClinicName,
			Phone:        req.Phone,
			Notes:        req.Notes,
		})
		if err != nil {
			switch {
			case errors.Is(err, ErrInvalidInput):
				web.Fail(w, http.StatusBadRequest, "Pet ID and appointment date are required")
			case errors.Is(err, ErrPetNotOwned):
				web.Fail(w, http.StatusNotFound, "Pet not found")
			default:
				web.Fail(w, http.StatusInternalServerError, err.Error())
			}
			return
		}

		web.OK(w, http.StatusCreated, web.Envelope{
			"message":        "Appointment booked successfully",
			"appointment_id": a.ID,
		})
	}
}

func listHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, _ := middleware.GetClaims(r.Context())

		rows, err := svc.ListByUser(r.Context(), claims.UserID)
		if err != nil {
			web.Fail(w, http.StatusInternalServerError, err.Error())
			return
		}

		out := make([]appointmentResponse, 0, len(rows))
		for _, row := range rows {
			resp := toAppointmentResponse(row.Appointment)
			resp.PetName = row.PetName
			out = append(out, resp)
		}

		web.OK(w, http.StatusOK, web.Envelope{
			"total":        len(out),
			"appointments": out,
		})
	}
}

func updateHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, _ := middleware.GetClaims(r.Context())

		var req appointmentRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			web.Fail(w, http.StatusBadRequest, "Invalid JSON body")
			return
		}

		date, err := parseDateTime(req.Date)
		if err != nil {
			web.Fail(w, http.StatusBadRequest, "Invalid appointment date")
			return
		}

		err = svc.Update(r.Context(), chi.URLParam(r, "appointmentID"), claims.UserID, UpdateInput{
			Date:         date,
			Type:         req.Type,
			Veterinarian: req.Veterinarian,
			ClinicName:   req.ClinicName,
			Status:       Status(req.Status),
			Notes:        req.Notes,
		})
		if err != nil {
			switch {
			case errors.Is(err, ErrInvalidInput):
				web.Fail(w, http.StatusBadRequest, "Appointment date is required")
			case errors.Is(err, ErrNotFound):
				web.Fail(w, http.StatusNotFound, "Appointment not found")
			default:
				web.Fail(w, http.StatusInternalServerError, err.Error())
			}
			return
		}

		web.OK(w, http.StatusOK, web.Envelope{"message": "Appointment updated successfully"})
	}
}

func cancelHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, _ := middleware.GetClaims(r.Context())

		if err := svc.Cancel(r.Context(), chi.URLParam(r, "appointmentID"), claims.UserID); err != nil {
			if errors.Is(err, ErrNotFound) {
				web.Fail(w, http.StatusNotFound, "Appointment not found")
				return
			}
			web.Fail(w, http.StatusInternalServerError, err.Error())
			return
		}

		web.OK(w, http.StatusOK, web.Envelope{"message": "Appointment cancelled"})
	}
}

func listAllHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		rows, err := svc.ListAll(r.Context())
		if err != nil {
			web.Fail(w, http.StatusInternalServerError, err.Error())
			return
		}

		out := make([]appointmentResponse, 0, len(rows))
		for _, row := range rows {
			resp := toAppointmentResponse(row.Appointment)
			resp.PetName = row.PetName
			resp.OwnerFirstName = row.OwnerFirstName
			resp.OwnerLastName = row.OwnerLastName
			out = append(out, resp)
		}

		web.OK(w, http.StatusOK, web.Envelope{
			"total":        len(out),
			"appointments": out,
		})
	}
}

func toAppointmentResponse(a Appointment) appointmentResponse {
	return appointmentResponse{
		ID:           a.ID,
		UserID:       a.UserID,
		PetID:        a.PetID,
		Date:         a.Date,
		Type:         a.Type,
		Veterinarian: a.Veterinarian,
		ClinicName:   a.ClinicName,
		Phone:        a.Phone,
		Notes:        a.Notes,
		Status:       string(a.Status),
		CreatedAt:    a.CreatedAt,
	}
}

// parseDateTime acepta RFC3339 y los formatos de los date pickers del front.
func parseDateTime(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, errors.New("empty date")
	}
	for _, layout := range []string{
		time.RFC3339,
		"2006-01-02T15:04",
		"2006-01-02 15:04:05",
		"2006-01-02",
	} {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, errors.New("unsupported date format")
}
