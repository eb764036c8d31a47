package http_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/flowgrid/flowgrid-api/internal/application/analytics"
	"github.com/flowgrid/flowgrid-api/internal/application/auth"
	"github.com/flowgrid/flowgrid-api/internal/application/hr"
	"github.com/flowgrid/flowgrid-api/internal/application/sales"
	"github.com/flowgrid/flowgrid-api/internal/application/usecase"
	"github.com/flowgrid/flowgrid-api/internal/domain/entity"
	"github.com/flowgrid/flowgrid-api/internal/domain/repository"
	apphttp "github.com/flowgrid/flowgrid-api/internal/interfaces/http"
)

// ──────────────────────────────────────────────────────────────────────────────
// Stubs mínimos para montar el router completo
// ──────────────────────────────────────────────────────────────────────────────

type stubUserRepo struct {
	byID map[string]*entity.User
}

func newStubUserRepo() *stubUserRepo {
	return &stubUserRepo{byID: map[string]*entity.User{}}
}

func (r *stubUserRepo) Create(u *entity.User) error { r.byID[u.ID] = u; return nil }
func (r *stubUserRepo) GetByID(id string) (*entity.User, error) {
	u, ok := r.byID[id]
	if !ok {
		return nil, nil
	}
	return u, nil
}
func (r *stubUserRepo) GetByEmail(email string) (*entity.User, error) {
	for _, u := range r.byID {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, nil
}
func (r *stubUserRepo) Update(u *entity.User) error { r.byID[u.ID] = u; return nil }

type stubEmployeeRepo struct{}

func (stubEmployeeRepo) Create(*entity.Employee) error { return nil }
func (stubEmployeeRepo) GetByID(string) (*entity.Employee, error) {
	return nil, nil
}
func (stubEmployeeRepo) GetByUserID(string) (*entity.Employee, error)  { return nil, nil }
func (stubEmployeeRepo) GetByLeaveID(string) (*entity.Employee, error) { return nil, nil }
func (stubEmployeeRepo) List(repository.EmployeeFilter, int, int) ([]*entity.Employee, int, error) {
	return []*entity.Employee{}, 0, nil
}
func (stubEmployeeRepo) ListActive([]string) ([]*entity.Employee, error) { return nil, nil }
func (stubEmployeeRepo) Update(*entity.Employee) error                   { return nil }
func (stubEmployeeRepo) AddPayroll(*entity.Payroll) error                { return nil }
func (stubEmployeeRepo) AddLeaveRequest(*entity.LeaveRequest) error      { return nil }
func (stubEmployeeRepo) UpdateLeaveStatus(string, string) error          { return nil }

// buildRouterApp arma la aplicación con el router real y repos stub.
// Los casos de uso no usados por el test reciben dependencias nil: ninguna
// ruta de estos tests llega a tocarlas.
func buildRouterApp(userRepo *stubUserRepo) *fiber.App {
	app := fiber.New()
	authUC := auth.NewAuthUseCase(userRepo, auth.JWTConfig{
		Secret:     testJWTSecret,
		ExpMinutes: testExpMin,
		Issuer:     testIssuer,
	})
	apphttp.Router(app, apphttp.RouterDeps{
		AuthUC:      authUC,
		ProductUC:   usecase.NewProductUseCase(nil),
		CustomerUC:  usecase.NewCustomerUseCase(nil),
		OrderUC:     sales.NewOrderUseCase(nil, nil, nil, nil),
		PDFUC:       sales.NewPDFUseCase(nil, nil),
		EmployeeUC:  hr.NewEmployeeUseCase(stubEmployeeRepo{}, userRepo, nil),
		PayrollUC:   hr.NewPayrollUseCase(stubEmployeeRepo{}, hr.Rates{}),
		DashboardUC: analytics.NewDashboardUseCase(nil, nil, nil),
		JWTSecret:   testJWTSecret,
		AppName:     "flowgrid-test",
	})
	return app
}

func jsonRequest(t *testing.T, app *fiber.App, method, path, body, authHeader string) *http.Response {
	t.Helper()
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

// ──────────────────────────────────────────────────────────────────────────────
// Registro: debe emitir sesión completa (token + usuario)
// ──────────────────────────────────────────────────────────────────────────────

func TestRegister_EmiteTokenYUsuario(t *testing.T) {
	app := buildRouterApp(newStubUserRepo())

	resp := jsonRequest(t, app, http.MethodPost, "/api/auth/register",
		`{"email":"nuevo@flowgrid.test","password":"secreto123","name":"Nuevo Usuario"}`, "")
	defer resp.Body.Close()

	assert.Equal(t, http.StatusCreated, resp.StatusCode)

	var body struct {
		Success bool   `json:"success"`
		Token   string `json:"token"`
		User    struct {
			Email string `json:"email"`
			Role  string `json:"role"`
		} `json:"user"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))

	assert.True(t, body.Success)
	require.NotEmpty(t, body.Token, "el registro debe emitir el token de sesión")
	assert.Equal(t, "nuevo@flowgrid.test", body.User.Email)
	assert.Equal(t, entity.RoleSalesRep, body.User.Role, "rol por defecto sales_rep")

	// El token emitido debe ser utilizable de inmediato contra una ruta protegida
	profile := jsonRequest(t, app, http.MethodGet, "/api/auth/profile", "", "Bearer "+body.Token)
	defer profile.Body.Close()
	assert.Equal(t, http.StatusOK, profile.StatusCode,
		"el token del registro debe autenticar el perfil")
}

func TestRegister_EmailDuplicado(t *testing.T) {
	userRepo := newStubUserRepo()
	app := buildRouterApp(userRepo)

	payload := `{"email":"repetido@flowgrid.test","password":"secreto123","name":"Uno"}`
	first := jsonRequest(t, app, http.MethodPost, "/api/auth/register", payload, "")
	first.Body.Close()
	require.Equal(t, http.StatusCreated, first.StatusCode)

	second := jsonRequest(t, app, http.MethodPost, "/api/auth/register", payload, "")
	defer second.Body.Close()
	assert.Equal(t, http.StatusBadRequest, second.StatusCode)
}

// ──────────────────────────────────────────────────────────────────────────────
// Empleados: lectura abierta a cualquier autenticado, escritura sólo RRHH
// ──────────────────────────────────────────────────────────────────────────────

func TestEmployees_LecturaAbiertaACualquierRol(t *testing.T) {
	app := buildRouterApp(newStubUserRepo())

	for _, role := range []string{entity.RoleSalesRep, entity.RoleAccountant, entity.RoleInventoryManager} {
		resp := jsonRequest(t, app, http.MethodGet, "/api/employees", "", tokenForRole(t, role))
		assert.Equal(t, http.StatusOK, resp.StatusCode,
			"el rol %s debe poder listar empleados", role)
		resp.Body.Close()
	}

	// El detalle también es lectura: 404 (ficha inexistente), nunca 403
	resp := jsonRequest(t, app, http.MethodGet, "/api/employees/no-existe", "", tokenForRole(t, entity.RoleSalesRep))
	defer resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestEmployees_EscrituraSigueRestringida(t *testing.T) {
	app := buildRouterApp(newStubUserRepo())

	// sales_rep no puede crear fichas ni correr nómina
	create := jsonRequest(t, app, http.MethodPost, "/api/employees",
		`{"name":"Ana","email":"ana@flowgrid.test"}`, tokenForRole(t, entity.RoleSalesRep))
	defer create.Body.Close()
	assert.Equal(t, http.StatusForbidden, create.StatusCode)

	payroll := jsonRequest(t, app, http.MethodPost, "/api/employees/payroll/process",
		`{}`, tokenForRole(t, entity.RoleSalesRep))
	defer payroll.Body.Close()
	assert.Equal(t, http.StatusForbidden, payroll.StatusCode)

	// hr_manager pasa el control de rol (la validación responde 400, no 403)
	hrCreate := jsonRequest(t, app, http.MethodPost, "/api/employees",
		`{}`, tokenForRole(t, entity.RoleHRManager))
	defer hrCreate.Body.Close()
	assert.Equal(t, http.StatusBadRequest, hrCreate.StatusCode)
}

func TestEmployees_SinTokenRetorna401(t *testing.T) {
	app := buildRouterApp(newStubUserRepo())

	resp := jsonRequest(t, app, http.MethodGet, "/api/employees", "", "")
	defer resp.Body.Close()
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}
