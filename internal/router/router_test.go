package router

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"pet-care-api/internal/adapters/auth/jwtauth"
	"pet-care-api/internal/domain/admins"
)

func newTestServer(t *testing.T) (*httptest.Server, *Stores) {
	t.Helper()

	tokens, err := jwtauth.New("test-secret")
	if err != nil {
		t.Fatalf("jwtauth.New: %v", err)
	}

	stores := MemoryStores()
	h := New(Options{
		Stores:     stores,
		Issuer:     tokens,
		Verifier:   tokens,
		BcryptCost: bcrypt.MinCost,
	})

	ts := httptest.NewServer(h)
	t.Cleanup(ts.Close)
	return ts, stores
}

// doReq es el helper de todos los flujos: arma el request, adjunta el token
// si hay y decodifica el body como envelope genérico.
func doReq(t *testing.T, ts *httptest.Server, method, path, token string, body any) (int, map[string]any) {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encode body: %v", err)
		}
	}

	req, err := http.NewRequest(method, ts.URL+path, &buf)
	if err != nil {
		t.Fatalf("new request: %v", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("%s %s: %v", method, path, err)
	}
	defer resp.Body.Close()

	var out map[string]any
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		t.Fatalf("%s %s: decode response: %v", method, path, err)
	}
	return resp.StatusCode, out
}

func registerUser(t *testing.T, ts *httptest.Server, email string) (token, userID string) {
	t.Helper()

	status, body := doReq(t, ts, http.MethodPost, "/api/auth/user-register", "", map[string]any{
		"email":      email,
		"password":   "secret123",
		"first_name": "Ana",
		"last_name":  "García",
	})
	if status != http.StatusCreated {
		t.Fatalf("register %s: status %d, body %v", email, status, body)
	}
	token, _ = body["token"].(string)
	user, _ := body["user"].(map[string]any)
	userID, _ = user["user_id"].(string)
	if token == "" || userID == "" {
		t.Fatalf("register %s: missing token or user_id in %v", email, body)
	}
	return token, userID
}

func addPet(t *testing.T, ts *httptest.Server, token, name, species string) string {
	t.Helper()

	status, body := doReq(t, ts, http.MethodPost, "/api/pets/", token, map[string]any{
		"pet_name": name,
		"species":  species,
		"breed":    "Mixed",
	})
	if status != http.StatusCreated {
		t.Fatalf("add pet %s: status %d, body %v", name, status, body)
	}
	id, _ := body["pet_id"].(string)
	if id == "" {
		t.Fatalf("add pet %s: missing pet_id in %v", name, body)
	}
	return id
}

func TestUserFlow(t *testing.T) {
	ts, _ := newTestServer(t)

	// 1. registro y login
	_, _ = registerUser(t, ts, "ana@example.com")

	status, body := doReq(t, ts, http.MethodPost, "/api/auth/user-login", "", map[string]any{
		"email":    "ana@example.com",
		"password": "secret123",
	})
	if status != http.StatusOK {
		t.Fatalf("login: status %d, body %v", status, body)
	}
	token, _ := body["token"].(string)

	// 2. perfil: leer, actualizar, releer
	status, body = doReq(t, ts, http.MethodGet, "/api/users/profile", token, nil)
	if status != http.StatusOK {
		t.Fatalf("get profile: status %d, body %v", status, body)
	}

	status, _ = doReq(t, ts, http.MethodPut, "/api/users/profile", token, map[string]any{
		"first_name": "Ana María",
		"city":       "Lima",
	})
	if status != http.StatusOK {
		t.Fatalf("update profile: status %d", status)
	}

	_, body = doReq(t, ts, http.MethodGet, "/api/users/profile", token, nil)
	profile, _ := body["user"].(map[string]any)
	if profile["first_name"] != "Ana María" || profile["city"] != "Lima" {
		t.Errorf("profile not updated: %v", profile)
	}

	// 3. mascotas: alta, listado, detalle, edición
	petID := addPet(t, ts, token, "Rex", "Dog")

	status, body = doReq(t, ts, http.MethodGet, "/api/pets/", token, nil)
	if status != http.StatusOK {
		t.Fatalf("list pets: status %d", status)
	}
	if total, _ := body["total"].(float64); total != 1 {
		t.Errorf("total pets = %v, want 1", body["total"])
	}

	status, body = doReq(t, ts, http.MethodGet, "/api/pets/"+petID, token, nil)
	if status != http.StatusOK {
		t.Fatalf("get pet: status %d, body %v", status, body)
	}
	pet, _ := body["pet"].(map[string]any)
	if pet["pet_name"] != "Rex" || pet["species"] != "Dog" {
		t.Errorf("pet = %v", pet)
	}

	status, _ = doReq(t, ts, http.MethodPut, "/api/pets/"+petID, token, map[string]any{
		"pet_name": "Rex II",
		"species":  "Dog",
		"color":    "Brown",
	})
	if status != http.StatusOK {
		t.Fatalf("update pet: status %d", status)
	}

	// 4. cita: reservar, listar (con nombre de mascota), cancelar dos veces
	status, body = doReq(t, ts, http.MethodPost, "/api/appointments/", token, map[string]any{
		"pet_id":           petID,
		"appointment_date": "2026-10-01 10:30:00",
		"appointment_type": "Checkup",
		"veterinarian":     "Dr. Soto",
	})
	if status != http.StatusCreated {
		t.Fatalf("book appointment: status %d, body %v", status, body)
	}
	apptID, _ := body["appointment_id"].(string)

	status, body = doReq(t, ts, http.MethodGet, "/api/appointments/", token, nil)
	if status != http.StatusOK {
		t.Fatalf("list appointments: status %d", status)
	}
	appts, _ := body["appointments"].([]any)
	if len(appts) != 1 {
		t.Fatalf("appointments = %d, want 1", len(appts))
	}
	first, _ := appts[0].(map[string]any)
	if first["pet_name"] != "Rex II" {
		t.Errorf("pet_name = %v, want Rex II", first["pet_name"])
	}
	if first["status"] != "Scheduled" {
		t.Errorf("status = %v, want Scheduled", first["status"])
	}

	status, _ = doReq(t, ts, http.MethodDelete, "/api/appointments/"+apptID, token, nil)
	if status != http.StatusOK {
		t.Fatalf("cancel appointment: status %d", status)
	}

	_, body = doReq(t, ts, http.MethodGet, "/api/appointments/", token, nil)
	appts, _ = body["appointments"].([]any)
	first, _ = appts[0].(map[string]any)
	if first["status"] != "Cancelled" {
		t.Errorf("status after cancel = %v, want Cancelled", first["status"])
	}

	// cancelar de nuevo no es error
	status, _ = doReq(t, ts, http.MethodDelete, "/api/appointments/"+apptID, token, nil)
	if status != http.StatusOK {
		t.Errorf("second cancel: status %d, want 200", status)
	}

	// 5. vacunas: alta, listado por mascota, edición
	status, body = doReq(t, ts, http.MethodPost, "/api/vaccinations/", token, map[string]any{
		"pet_id":           petID,
		"vaccine_name":     "Rabies",
		"vaccination_date": "2026-09-01",
		"next_due_date":    "2027-09-01",
	})
	if status != http.StatusCreated {
		t.Fatalf("add vaccination: status %d, body %v", status, body)
	}
	vaccID, _ := body["vaccination_id"].(string)

	status, body = doReq(t, ts, http.MethodGet, "/api/vaccinations/pet/"+petID, token, nil)
	if status != http.StatusOK {
		t.Fatalf("list vaccinations: status %d, body %v", status, body)
	}
	if total, _ := body["total"].(float64); total != 1 {
		t.Errorf("total vaccinations = %v, want 1", body["total"])
	}

	status, _ = doReq(t, ts, http.MethodPut, "/api/vaccinations/"+vaccID, token, map[string]any{
		"vaccine_name":     "Rabies Booster",
		"vaccination_date": "2026-09-15",
	})
	if status != http.StatusOK {
		t.Fatalf("update vaccination: status %d", status)
	}

	// 6. borrar la mascota
	status, _ = doReq(t, ts, http.MethodDelete, "/api/pets/"+petID, token, nil)
	if status != http.StatusOK {
		t.Fatalf("delete pet: status %d", status)
	}
	status, _ = doReq(t, ts, http.MethodGet, "/api/pets/"+petID, token, nil)
	if status != http.StatusNotFound {
		t.Errorf("get deleted pet: status %d, want 404", status)
	}
}

func TestOwnershipIsolation(t *testing.T) {
	ts, _ := newTestServer(t)

	tokenA, _ := registerUser(t, ts, "a@example.com")
	tokenB, _ := registerUser(t, ts, "b@example.com")

	petA := addPet(t, ts, tokenA, "Rex", "Dog")

	// B no ve ni toca la mascota de A: siempre 404, nunca 403.
	cases := []struct {
		method, path string
		body         any
	}{
		{http.MethodGet, "/api/pets/" + petA, nil},
		{http.MethodPut, "/api/pets/" + petA, map[string]any{"pet_name": "Stolen", "species": "Dog"}},
		{http.MethodDelete, "/api/pets/" + petA, nil},
		{http.MethodGet, "/api/vaccinations/pet/" + petA, nil},
	}
	for _, tc := range cases {
		if status, _ := doReq(t, ts, tc.method, tc.path, tokenB, tc.body); status != http.StatusNotFound {
			t.Errorf("%s %s as B: status %d, want 404", tc.method, tc.path, status)
		}
	}

	// Tampoco puede reservar citas ni registrar vacunas contra ella.
	status, _ := doReq(t, ts, http.MethodPost, "/api/appointments/", tokenB, map[string]any{
		"pet_id":           petA,
		"appointment_date": "2026-10-01",
	})
	if status != http.StatusNotFound {
		t.Errorf("book on foreign pet: status %d, want 404", status)
	}

	status, _ = doReq(t, ts, http.MethodPost, "/api/vaccinations/", tokenB, map[string]any{
		"pet_id":           petA,
		"vaccine_name":     "Rabies",
		"vaccination_date": "2026-09-01",
	})
	if status != http.StatusNotFound {
		t.Errorf("vaccinate foreign pet: status %d, want 404", status)
	}

	// El listado de B sigue vacío.
	_, body := doReq(t, ts, http.MethodGet, "/api/pets/", tokenB, nil)
	if total, _ := body["total"].(float64); total != 0 {
		t.Errorf("B sees %v pets, want 0", body["total"])
	}
}

func TestRoleEnforcement(t *testing.T) {
	ts, stores := newTestServer(t)

	// Admin seed con password en plaintext: el primer login lo migra.
	err := stores.Admins.Create(context.Background(), admins.Admin{
		ID:           "adm-1",
		Username:     "root",
		PasswordHash: "adminpass",
		FullName:     "Root Admin",
		CreatedAt:    time.Now(),
	})
	if err != nil {
		t.Fatalf("seed admin: %v", err)
	}

	userToken, _ := registerUser(t, ts, "ana@example.com")
	addPet(t, ts, userToken, "Rex", "Dog")

	adminRoutes := []string{
		"/api/users/all",
		"/api/pets/all",
		"/api/appointments/all",
		"/api/vaccinations/all",
		"/api/admin/dashboard/stats",
		"/api/admin/dashboard/overview",
		"/api/admin/data",
	}

	// 1. sin token: 401
	for _, path := range adminRoutes {
		if status, _ := doReq(t, ts, http.MethodGet, path, "", nil); status != http.StatusUnauthorized {
			t.Errorf("GET %s without token: status %d, want 401", path, status)
		}
	}
	if status, _ := doReq(t, ts, http.MethodGet, "/api/pets/", "", nil); status != http.StatusUnauthorized {
		t.Errorf("GET /api/pets/ without token: status %d, want 401", status)
	}

	// 2. token basura: 401
	if status, _ := doReq(t, ts, http.MethodGet, "/api/pets/", "not-a-jwt", nil); status != http.StatusUnauthorized {
		t.Errorf("garbage token: status %d, want 401", status)
	}

	// 3. token de user en rutas admin: 403
	for _, path := range adminRoutes {
		if status, _ := doReq(t, ts, http.MethodGet, path, userToken, nil); status != http.StatusForbidden {
			t.Errorf("GET %s as user: status %d, want 403", path, status)
		}
	}

	// 4. login admin (migra el plaintext) y acceso a todas las rutas admin
	status, body := doReq(t, ts, http.MethodPost, "/api/auth/admin-login", "", map[string]any{
		"username": "root",
		"password": "adminpass",
	})
	if status != http.StatusOK {
		t.Fatalf("admin login: status %d, body %v", status, body)
	}
	adminToken, _ := body["token"].(string)

	stored, err := stores.Admins.GetByUsername(context.Background(), "root")
	if err != nil {
		t.Fatalf("GetByUsername: %v", err)
	}
	if bcrypt.CompareHashAndPassword([]byte(stored.PasswordHash), []byte("adminpass")) != nil {
		t.Error("admin password not migrated to bcrypt on login")
	}

	for _, path := range adminRoutes {
		if status, body := doReq(t, ts, http.MethodGet, path, adminToken, nil); status != http.StatusOK {
			t.Errorf("GET %s as admin: status %d, body %v", path, status, body)
		}
	}

	// 5. token de admin en rutas de user: 403
	if status, _ := doReq(t, ts, http.MethodGet, "/api/pets/", adminToken, nil); status != http.StatusForbidden {
		t.Errorf("GET /api/pets/ as admin: status %d, want 403", status)
	}

	// 6. el dashboard refleja los datos
	_, body = doReq(t, ts, http.MethodGet, "/api/admin/dashboard/stats", adminToken, nil)
	stats, _ := body["stats"].(map[string]any)
	if stats["total_pets"] != float64(1) || stats["total_users"] != float64(1) {
		t.Errorf("stats = %v", stats)
	}
}

func TestCheckUsername(t *testing.T) {
	ts, _ := newTestServer(t)

	registerUser(t, ts, "ana@example.com")

	status, body := doReq(t, ts, http.MethodGet, "/api/auth/check-username/an", "", nil)
	if status != http.StatusBadRequest {
		t.Errorf("short prefix: status %d, body %v", status, body)
	}

	status, body = doReq(t, ts, http.MethodGet, "/api/auth/check-username/ana", "", nil)
	if status != http.StatusOK {
		t.Fatalf("check ana: status %d", status)
	}
	if available, _ := body["available"].(bool); available {
		t.Error("taken prefix reported as available")
	}
	suggestions, _ := body["suggestions"].([]any)
	if len(suggestions) != 1 {
		t.Errorf("suggestions = %d, want 1", len(suggestions))
	}

	status, body = doReq(t, ts, http.MethodGet, "/api/auth/check-username/zzz", "", nil)
	if status != http.StatusOK {
		t.Fatalf("check zzz: status %d", status)
	}
	if available, _ := body["available"].(bool); !available {
		t.Error("free prefix reported as taken")
	}
}

func TestExpiredToken(t *testing.T) {
	ts, _ := newTestServer(t)

	// Firmado con el secreto correcto pero ya vencido.
	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"role":    "user",
		"user_id": "u-1",
		"iat":     time.Now().Add(-2 * time.Hour).Unix(),
		"exp":     time.Now().Add(-time.Minute).Unix(),
	})
	expired, err := tok.SignedString([]byte("test-secret"))
	if err != nil {
		t.Fatalf("sign expired token: %v", err)
	}

	status, body := doReq(t, ts, http.MethodGet, "/api/pets/", expired, nil)
	if status != http.StatusUnauthorized {
		t.Errorf("expired token: status %d, body %v", status, body)
	}
}

func TestHealthAndNotFound(t *testing.T) {
	ts, _ := newTestServer(t)

	status, body := doReq(t, ts, http.MethodGet, "/health", "", nil)
	if status != http.StatusOK {
		t.Errorf("health: status %d", status)
	}
	if body["status"] != "ok" {
		t.Errorf("health body = %v", body)
	}

	status, _ = doReq(t, ts, http.MethodGet, "/api/nope", "", nil)
	if status != http.StatusNotFound {
		t.Errorf("unknown route: status %d, want 404", status)
	}
}
