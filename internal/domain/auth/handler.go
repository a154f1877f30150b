package auth

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"pet-care-api/internal/domain/users"
	"pet-care-api/internal/platform/web"
)

// RegisterRoutes monta los endpoints públicos: registro, logins y la sonda
// de disponibilidad. Todo lo demás de la API exige token.
func RegisterRoutes(r chi.Router, svc *Service) {
	r.Route("/auth", func(ar chi.Router) {
		ar.Post("/user-register", registerHandler(svc))
		ar.Post("/user-login", userLoginHandler(svc))
		ar.Post("/admin-login", adminLoginHandler(svc))
		ar.Get("/check-username/{prefix}", checkUsernameHandler(svc))
	})
}

type registerRequest struct {
	Email     string `json:"email"`
	Password  string `json:"password"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Phone     string `json:"phone"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Username string `json:"username"`
	Password string `json:"password"`
}

func registerHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req registerRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			web.Fail(w, http.StatusBadRequest, "Invalid JSON body")
			return
		}

		sess, err := svc.Register(r.Context(), RegisterInput{
			Email:     req.Email,
			Password:  req.Password,
			FirstName: req.FirstName,
			LastName:  req.LastName,
			Phone:     req.Phone,
		})
		if err != nil {
			switch {
			case errors.Is(err, ErrInvalidInput):
				web.Fail(w, http.StatusBadRequest, "Email and password are required")
			case errors.Is(err, users.ErrEmailTaken):
				web.Fail(w, http.StatusBadRequest, "Email already exists")
			default:
				web.Fail(w, http.StatusInternalServerError, err.Error())
			}
			return
		}

		web.OK(w, http.StatusCreated, web.Envelope{
			"message": "User registered successfully",
			"token":   sess.Token,
			"user": web.Envelope{
				"user_id": sess.User.ID,
				"email":   sess.User.Email,
			},
		})
	}
}

func userLoginHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req loginRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			web.Fail(w, http.StatusBadRequest, "Invalid JSON body")
			return
		}

		sess, err := svc.LoginUser(r.Context(), req.Email, req.Password)
		if err != nil {
			switch {
			case errors.Is(err, ErrInvalidInput):
				web.Fail(w, http.StatusBadRequest, "Email and password are required")
			case errors.Is(err, ErrInvalidCredentials):
				web.Fail(w, http.StatusUnauthorized, "Invalid email or password")
			default:
				web.Fail(w, http.StatusInternalServerError, err.Error())
			}
			return
		}

		web.OK(w, http.StatusOK, web.Envelope{
			"message": "Login successful",
			"token":   sess.Token,
			"user": web.Envelope{
				"user_id":    sess.User.ID,
				"first_name": sess.User.FirstName,
				"last_name":  sess.User.LastName,
				"email":      sess.User.Email,
			},
		})
	}
}

func adminLoginHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req loginRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			web.Fail(w, http.StatusBadRequest, "Invalid JSON body")
			return
		}

		sess, err := svc.LoginAdmin(r.Context(), req.Username, req.Password)
		if err != nil {
			switch {
			case errors.Is(err, ErrInvalidInput):
				web.Fail(w, http.StatusBadRequest, "Username and password are required")
			case errors.Is(err, ErrInvalidCredentials):
				web.Fail(w, http.StatusUnauthorized, "Invalid username or password")
			default:
				web.Fail(w, http.StatusInternalServerError, err.Error())
			}
			return
		}

		web.OK(w, http.StatusOK, web.Envelope{
			"message": "Admin login successful",
			"token":   sess.Token,
			"admin": web.Envelope{
				"admin_id":  sess.Admin.ID,
				"username":  sess.Admin.Username,
				"full_name": sess.Admin.FullName,
				"email":     sess.Admin.Email,
			},
		})
	}
}

func checkUsernameHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		av, err := svc.CheckEmailAvailability(r.Context(), chi.URLParam(r, "prefix"))
		if err != nil {
			if errors.Is(err, ErrInvalidInput) {
				web.Fail(w, http.StatusBadRequest, "Username must be at least 3 characters")
				return
			}
			web.Fail(w, http.StatusInternalServerError, err.Error())
			return
		}

		suggestions := make([]web.Envelope, 0, len(av.Suggestions))
		for _, email := range av.Suggestions {
			suggestions = append(suggestions, web.Envelope{
				"email":     email,
				"available": false,
			})
		}

		web.OK(w, http.StatusOK, web.Envelope{
			"available":   av.Available,
			"suggestions": suggestions,
		})
	}
}
