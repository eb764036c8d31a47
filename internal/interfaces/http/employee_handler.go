package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/flowgrid/flowgrid-api/internal/application/dto"
	"github.com/flowgrid/flowgrid-api/internal/application/hr"
	"github.com/flowgrid/flowgrid-api/internal/domain"
)

// EmployeeHandler maneja las peticiones HTTP de RRHH (protegido).
type EmployeeHandler struct {
	uc        *hr.EmployeeUseCase
	payrollUC *hr.PayrollUseCase
}

// NewEmployeeHandler construye el handler.
func NewEmployeeHandler(uc *hr.EmployeeUseCase, payrollUC *hr.PayrollUseCase) *EmployeeHandler {
	return &EmployeeHandler{uc: uc, payrollUC: payrollUC}
}

// Create godoc
// @Summary      Crear ficha de empleado
// @Tags         employees
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateEmployeeRequest  true  "Datos del empleado"
// @Success      201   {object}  dto.DataResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/employees [post]
func (h *EmployeeHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateEmployeeRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.NewError("INVALID_BODY", "cuerpo inválido"))
	}
	out, err := h.uc.Create(in)
	if err != nil {
		switch err {
		case domain.ErrInvalidInput:
			return c.Status(fiber.StatusBadRequest).JSON(dto.NewError("VALIDATION", "name y email son requeridos"))
		case domain.ErrUserNotFound:
			return c.Status(fiber.StatusNotFound).JSON(dto.NewError("USER_NOT_FOUND", "el usuario indicado no existe"))
		case domain.ErrDuplicate:
			return c.Status(fiber.StatusBadRequest).JSON(dto.NewError("DUPLICATE", "el usuario ya tiene ficha de empleado"))
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.NewError("INTERNAL", err.Error()))
	}
	return c.Status(fiber.StatusCreated).JSON(dto.DataResponse{Success: true, Data: out})
}

// GetByID godoc
// @Summary      Obtener ficha por ID (con nómina y licencias)
// @Tags         employees
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del empleado"
// @Success      200  {object}  dto.DataResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/employees/{id} [get]
func (h *EmployeeHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.GetByID(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.NewError("INTERNAL", err.Error()))
	}
	if out == nil {
		return c.Status(fiber.StatusNotFound).JSON(dto.NewError("NOT_FOUND", "empleado no encontrado"))
	}
	return c.JSON(dto.DataResponse{Success: true, Data: out})
}

// List godoc
// @Summary      Listar empleados
// @Tags         employees
// @Security     Bearer
// @Produce      json
// @Param        page        query  int     false  "Página"  default(1)
// @Param        limit       query  int     false  "Límite"  default(50)
// @Param        department  query  string  false  "Departamento exacto"
// @Param        status      query  string  false  "Estado exacto"
// @Success      200  {object}  dto.ListResponse
// @Router       /api/employees [get]
func (h *EmployeeHandler) List(c *fiber.Ctx) error {
	var q dto.EmployeeListQuery
	if err := c.QueryParser(&q); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.NewError("INVALID_QUERY", "query inválida"))
	}
	items, page, err := h.uc.List(q)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.NewError("INTERNAL", err.Error()))
	}
	return c.JSON(dto.ListResponse{Success: true, Data: items, Pagination: page})
}

// Update godoc
// @Summary      Actualizar ficha
// @Tags         employees
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID del empleado"
// @Param        body  body  dto.UpdateEmployeeRequest  true  "Datos a actualizar"
// @Success      200   {object}  dto.DataResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/employees/{id} [put]
func (h *EmployeeHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateEmployeeRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.NewError("INVALID_BODY", "cuerpo inválido"))
	}
	out, err := h.uc.Update(c.Params("id"), in)
	if err != nil {
		if err == domain.ErrInvalidInput {
			return c.Status(fiber.StatusBadRequest).JSON(dto.NewError("VALIDATION", "salario o estado inválido"))
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.NewError("INTERNAL", err.Error()))
	}
	if out == nil {
		return c.Status(fiber.StatusNotFound).JSON(dto.NewError("NOT_FOUND", "empleado no encontrado"))
	}
	return c.JSON(dto.DataResponse{Success: true, Data: out})
}

// AddPayroll godoc
// @Summary      Alta manual de nómina
// @Tags         employees
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID del empleado"
// @Param        body  body  dto.AddPayrollRequest  true  "Período y montos"
// @Success      201   {object}  dto.DataResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/employees/{id}/payroll [post]
func (h *EmployeeHandler) AddPayroll(c *fiber.Ctx) error {
	var in dto.AddPayrollRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.NewError("INVALID_BODY", "cuerpo inválido"))
	}
	out, err := h.payrollUC.AddManual(c.Params("id"), in)
	if err != nil {
		if err == domain.ErrInvalidInput {
			return c.Status(fiber.StatusBadRequest).JSON(dto.NewError("VALIDATION", "período de nómina inválido"))
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.NewError("INTERNAL", err.Error()))
	}
	if out == nil {
		return c.Status(fiber.StatusNotFound).JSON(dto.NewError("NOT_FOUND", "empleado no encontrado"))
	}
	return c.Status(fiber.StatusCreated).JSON(dto.DataResponse{Success: true, Data: out})
}

// ProcessPayroll godoc
// @Summary      Corrida de nómina
// @Tags         employees
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.ProcessPayrollRequest  true  "Período y empleados (vacío = todos los activos)"
// @Success      200   {object}  dto.DataResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/employees/payroll/process [post]
func (h *EmployeeHandler) ProcessPayroll(c *fiber.Ctx) error {
	var in dto.ProcessPayrollRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.NewError("INVALID_BODY", "cuerpo inválido"))
	}
	out, err := h.payrollUC.Process(in)
	if err != nil {
		if err == domain.ErrInvalidInput {
			return c.Status(fiber.StatusBadRequest).JSON(dto.NewError("VALIDATION", "período de nómina inválido"))
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.NewError("INTERNAL", err.Error()))
	}
	return c.JSON(dto.DataResponse{Success: true, Data: out})
}

// AddLeave godoc
// @Summary      Solicitar licencia
// @Tags         employees
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID del empleado"
// @Param        body  body  dto.AddLeaveRequest  true  "Tipo, fechas y motivo"
// @Success      201   {object}  dto.DataResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/employees/{id}/leave [post]
func (h *EmployeeHandler) AddLeave(c *fiber.Ctx) error {
	var in dto.AddLeaveRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.NewError("INVALID_BODY", "cuerpo inválido"))
	}
	out, err := h.uc.AddLeaveRequest(c.Params("id"), in)
	if err != nil {
		if err == domain.ErrInvalidInput {
			return c.Status(fiber.StatusBadRequest).JSON(dto.NewError("VALIDATION", "tipo, fechas o días inválidos"))
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.NewError("INTERNAL", err.Error()))
	}
	if out == nil {
		return c.Status(fiber.StatusNotFound).JSON(dto.NewError("NOT_FOUND", "empleado no encontrado"))
	}
	return c.Status(fiber.StatusCreated).JSON(dto.DataResponse{Success: true, Data: out})
}

// UpdateLeave godoc
// @Summary      Aprobar o rechazar licencia
// @Tags         employees
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        leaveId  path  string  true  "LEAVE-id legible"
// @Param        body     body  dto.UpdateLeaveRequest  true  "Nuevo estado"
// @Success      200      {object}  dto.DataResponse
// @Failure      400      {object}  dto.ErrorResponse
// @Failure      404      {object}  dto.ErrorResponse
// @Router       /api/employees/leave/{leaveId} [put]
func (h *EmployeeHandler) UpdateLeave(c *fiber.Ctx) error {
	var in dto.UpdateLeaveRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.NewError("INVALID_BODY", "cuerpo inválido"))
	}
	out, err := h.uc.UpdateLeaveStatus(c.Params("leaveId"), in)
	if err != nil {
		if err == domain.ErrInvalidInput {
			return c.Status(fiber.StatusBadRequest).JSON(dto.NewError("VALIDATION", "estado de licencia desconocido"))
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.NewError("INTERNAL", err.Error()))
	}
	if out == nil {
		return c.Status(fiber.StatusNotFound).JSON(dto.NewError("NOT_FOUND", "solicitud no encontrada"))
	}
	return c.JSON(dto.DataResponse{Success: true, Data: out})
}
