package http

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"fleet-service/internal/http/middleware"
	"fleet-service/internal/model"
	"fleet-service/internal/service"
)

type Handler struct {
	vehicleService *service.VehicleService
	driverService  *service.DriverService
	log            zerolog.Logger
}

func NewHandler(
	vehicleService *service.VehicleService,
	driverService *service.DriverService,
	log zerolog.Logger,
) *Handler {
	return &Handler{
		vehicleService: vehicleService,
		driverService:  driverService,
		log:            log,
	}
}

func (h *Handler) listVehicles(c *gin.Context) {
	page, size := parsePagination(c)

	result, err := h.vehicleService.List(c.Request.Context(), page, size)
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, successResponse(result))
}

func (h *Handler) getVehicle(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	vehicle, err := h.vehicleService.GetByID(c.Request.Context(), id)
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, successResponse(vehicle))
}

func (h *Handler) getVehicleByPlate(c *gin.Context) {
	plate := strings.TrimSpace(c.Param("plate"))
	if plate == "" {
		c.JSON(http.StatusBadRequest, errorResponse("invalid license plate"))
		return
	}

	vehicle, err := h.vehicleService.GetByLicensePlate(c.Request.Context(), plate)
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, successResponse(vehicle))
}

func (h *Handler) listVehiclesByStatus(c *gin.Context) {
	status := model.VehicleStatus(strings.ToUpper(strings.TrimSpace(c.Param("status"))))
	if !status.Valid() {
		c.JSON(http.StatusBadRequest, errorResponse("invalid vehicle status"))
		return
	}

	vehicles, err := h.vehicleService.ListByStatus(c.Request.Context(), status)
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, successResponse(gin.H{"items": vehicles}))
}

func (h *Handler) listVehiclesByType(c *gin.Context) {
	vehicleType := model.VehicleType(strings.ToUpper(strings.TrimSpace(c.Param("type"))))
	if !vehicleType.Valid() {
		c.JSON(http.StatusBadRequest, errorResponse("invalid vehicle type"))
		return
	}

	vehicles, err := h.vehicleService.ListByType(c.Request.Context(), vehicleType)
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, successResponse(gin.H{"items": vehicles}))
}

func (h *Handler) searchVehicles(c *gin.Context) {
	brand := strings.TrimSpace(c.Query("brand"))
	vehicleModel := strings.TrimSpace(c.Query("model"))
	if brand == "" || vehicleModel == "" {
		c.JSON(http.StatusBadRequest, errorResponse("brand and model are required"))
		return
	}

	vehicles, err := h.vehicleService.ListByBrandAndModel(c.Request.Context(), brand, vehicleModel)
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, successResponse(gin.H{"items": vehicles}))
}

func (h *Handler) listVehiclesByDriver(c *gin.Context) {
	driverID, ok := parseID(c, "driverId")
	if !ok {
		return
	}

	vehicles, err := h.vehicleService.ListByDriver(c.Request.Context(), driverID)
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, successResponse(gin.H{"items": vehicles}))
}

func (h *Handler) vehicleAssignments(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	entries, err := h.vehicleService.AssignmentHistory(c.Request.Context(), id)
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, successResponse(gin.H{"items": entries}))
}

type createVehicleRequest struct {
	LicensePlate            string     `json:"license_plate" binding:"required"`
	Brand                   string     `json:"brand" binding:"required"`
	Model                   string     `json:"model" binding:"required"`
	ProductionYear          int        `json:"production_year" binding:"required"`
	Type                    string     `json:"type" binding:"required"`
	RegistrationDate        model.Date `json:"registration_date" binding:"required"`
	TechnicalInspectionDate model.Date `json:"technical_inspection_date" binding:"required"`
	Mileage                 float64    `json:"mileage"`
	Status                  string     `json:"status"`
	DriverID                *uint      `json:"driver_id"`
}

func (h *Handler) createVehicle(c *gin.Context) {
	principal, ok := middleware.MustPrincipal(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, errorResponse("principal missing"))
		return
	}

	var req createVehicleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, errorResponse(err.Error()))
		return
	}

	input := service.CreateVehicleInput{
		LicensePlate:            strings.TrimSpace(req.LicensePlate),
		Brand:                   strings.TrimSpace(req.Brand),
		Model:                   strings.TrimSpace(req.Model),
		ProductionYear:          req.ProductionYear,
		Type:                    model.VehicleType(strings.ToUpper(strings.TrimSpace(req.Type))),
		RegistrationDate:        req.RegistrationDate,
		TechnicalInspectionDate: req.TechnicalInspectionDate,
		Mileage:                 req.Mileage,
		Status:                  model.VehicleStatus(strings.ToUpper(strings.TrimSpace(req.Status))),
		DriverID:                req.DriverID,
	}

	vehicle, err := h.vehicleService.Create(c.Request.Context(), principal, input)
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusCreated, successResponse(vehicle))
}

type updateVehicleRequest struct {
	LicensePlate            *string     `json:"license_plate"`
	Brand                   *string     `json:"brand"`
	Model                   *string     `json:"model"`
	ProductionYear          *int        `json:"production_year"`
	Type                    *string     `json:"type"`
	RegistrationDate        *model.Date `json:"registration_date"`
	TechnicalInspectionDate *model.Date `json:"technical_inspection_date"`
	Mileage                 *float64    `json:"mileage"`
	Status                  *string     `json:"status"`
	DriverID                *uint       `json:"driver_id"`
}

func (h *Handler) updateVehicle(c *gin.Context) {
	principal, ok := middleware.MustPrincipal(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, errorResponse("principal missing"))
		return
	}

	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	var req updateVehicleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, errorResponse(err.Error()))
		return
	}

	patch := service.VehiclePatch{
		LicensePlate:            req.LicensePlate,
		Brand:                   req.Brand,
		Model:                   req.Model,
		ProductionYear:          req.ProductionYear,
		RegistrationDate:        req.RegistrationDate,
		TechnicalInspectionDate: req.TechnicalInspectionDate,
		Mileage:                 req.Mileage,
		DriverID:                req.DriverID,
	}
	if req.Type != nil {
		vehicleType := model.VehicleType(strings.ToUpper(strings.TrimSpace(*req.Type)))
		patch.Type = &vehicleType
	}
	if req.Status != nil {
		status := model.VehicleStatus(strings.ToUpper(strings.TrimSpace(*req.Status)))
		patch.Status = &status
	}

	vehicle, err := h.vehicleService.Update(c.Request.Context(), principal, id, patch)
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, successResponse(vehicle))
}

func (h *Handler) deleteVehicle(c *gin.Context) {
	principal, ok := middleware.MustPrincipal(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, errorResponse("principal missing"))
		return
	}

	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	if err := h.vehicleService.Delete(c.Request.Context(), principal, id); err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, successResponse(gin.H{"status": "deleted"}))
}

func (h *Handler) assignDriver(c *gin.Context) {
	principal, ok := middleware.MustPrincipal(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, errorResponse("principal missing"))
		return
	}

	vehicleID, ok := parseID(c, "id")
	if !ok {
		return
	}
	driverID, ok := parseID(c, "driverId")
	if !ok {
		return
	}

	vehicle, err := h.vehicleService.AssignDriver(c.Request.Context(), principal, vehicleID, driverID)
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, successResponse(vehicle))
}

func (h *Handler) removeDriver(c *gin.Context) {
	principal, ok := middleware.MustPrincipal(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, errorResponse("principal missing"))
		return
	}

	vehicleID, ok := parseID(c, "id")
	if !ok {
		return
	}

	vehicle, err := h.vehicleService.RemoveDriver(c.Request.Context(), principal, vehicleID)
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, successResponse(vehicle))
}

func (h *Handler) updateVehicleMileage(c *gin.Context) {
	principal, ok := middleware.MustPrincipal(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, errorResponse("principal missing"))
		return
	}

	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	var req struct {
		Mileage *float64 `json:"mileage" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, errorResponse(err.Error()))
		return
	}

	vehicle, err := h.vehicleService.UpdateMileage(c.Request.Context(), principal, id, *req.Mileage)
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, successResponse(vehicle))
}

func (h *Handler) updateVehicleStatus(c *gin.Context) {
	principal, ok := middleware.MustPrincipal(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, errorResponse("principal missing"))
		return
	}

	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	var req struct {
		Status string `json:"status" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, errorResponse(err.Error()))
		return
	}

	status := model.VehicleStatus(strings.ToUpper(strings.TrimSpace(req.Status)))

	vehicle, err := h.vehicleService.UpdateStatus(c.Request.Context(), principal, id, status)
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, successResponse(vehicle))
}

func (h *Handler) listDrivers(c *gin.Context) {
	page, size := parsePagination(c)

	result, err := h.driverService.List(c.Request.Context(), page, size)
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, successResponse(result))
}

func (h *Handler) getDriver(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	driver, err := h.driverService.GetByID(c.Request.Context(), id)
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, successResponse(driver))
}

func (h *Handler) getDriverByLicense(c *gin.Context) {
	number := strings.TrimSpace(c.Param("number"))
	if number == "" {
		c.JSON(http.StatusBadRequest, errorResponse("invalid license number"))
		return
	}

	driver, err := h.driverService.GetByLicenseNumber(c.Request.Context(), number)
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, successResponse(driver))
}

func (h *Handler) listDriversByStatus(c *gin.Context) {
	status := model.DriverStatus(strings.ToUpper(strings.TrimSpace(c.Param("status"))))
	if !status.Valid() {
		c.JSON(http.StatusBadRequest, errorResponse("invalid driver status"))
		return
	}

	drivers, err := h.driverService.ListByStatus(c.Request.Context(), status)
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, successResponse(gin.H{"items": drivers}))
}

type createDriverRequest struct {
	FirstName     string     `json:"first_name" binding:"required"`
	LastName      string     `json:"last_name" binding:"required"`
	LicenseNumber string     `json:"license_number" binding:"required"`
	LicenseType   string     `json:"license_type" binding:"required"`
	DateOfBirth   model.Date `json:"date_of_birth" binding:"required"`
	PhoneNumber   string     `json:"phone_number"`
	Email         string     `json:"email"`
	Status        string     `json:"status"`
}

func (h *Handler) createDriver(c *gin.Context) {
	principal, ok := middleware.MustPrincipal(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, errorResponse("principal missing"))
		return
	}

	var req createDriverRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, errorResponse(err.Error()))
		return
	}

	input := service.CreateDriverInput{
		FirstName:     strings.TrimSpace(req.FirstName),
		LastName:      strings.TrimSpace(req.LastName),
		LicenseNumber: strings.TrimSpace(req.LicenseNumber),
		LicenseType:   model.LicenseType(strings.ToUpper(strings.TrimSpace(req.LicenseType))),
		DateOfBirth:   req.DateOfBirth,
		PhoneNumber:   strings.TrimSpace(req.PhoneNumber),
		Email:         strings.TrimSpace(req.Email),
		Status:        model.DriverStatus(strings.ToUpper(strings.TrimSpace(req.Status))),
	}

	driver, err := h.driverService.Create(c.Request.Context(), principal, input)
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusCreated, successResponse(driver))
}

type updateDriverRequest struct {
	FirstName     *string     `json:"first_name"`
	LastName      *string     `json:"last_name"`
	LicenseNumber *string     `json:"license_number"`
	LicenseType   *string     `json:"license_type"`
	DateOfBirth   *model.Date `json:"date_of_birth"`
	PhoneNumber   *string     `json:"phone_number"`
	Email         *string     `json:"email"`
	Status        *string     `json:"status"`
}

func (h *Handler) updateDriver(c *gin.Context) {
	principal, ok := middleware.MustPrincipal(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, errorResponse("principal missing"))
		return
	}

	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	var req updateDriverRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, errorResponse(err.Error()))
		return
	}

	patch := service.DriverPatch{
		FirstName:     req.FirstName,
		LastName:      req.LastName,
		LicenseNumber: req.LicenseNumber,
		DateOfBirth:   req.DateOfBirth,
		PhoneNumber:   req.PhoneNumber,
		Email:         req.Email,
	}
	if req.LicenseType != nil {
		licenseType := model.LicenseType(strings.ToUpper(strings.TrimSpace(*req.LicenseType)))
		patch.LicenseType = &licenseType
	}
	if req.Status != nil {
		status := model.DriverStatus(strings.ToUpper(strings.TrimSpace(*req.Status)))
		patch.Status = &status
	}

	driver, err := h.driverService.Update(c.Request.Context(), principal, id, patch)
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, successResponse(driver))
}

func (h *Handler) deleteDriver(c *gin.Context) {
	principal, ok := middleware.MustPrincipal(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, errorResponse("principal missing"))
		return
	}

	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	if err := h.driverService.Delete(c.Request.Context(), principal, id); err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, successResponse(gin.H{"status": "deleted"}))
}

func (h *Handler) updateDriverStatus(c *gin.Context) {
	principal, ok := middleware.MustPrincipal(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, errorResponse("principal missing"))
		return
	}

	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	var req struct {
		Status string `json:"status" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, errorResponse(err.Error()))
		return
	}

	status := model.DriverStatus(strings.ToUpper(strings.TrimSpace(req.Status)))

	driver, err := h.driverService.UpdateStatus(c.Request.Context(), principal, id, status)
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, successResponse(driver))
}

func (h *Handler) handleError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrNotFound):
		c.JSON(http.StatusNotFound, errorResponse(err.Error()))
	case errors.Is(err, service.ErrConflict):
		c.JSON(http.StatusConflict, errorResponse(err.Error()))
	case errors.Is(err, service.ErrBusinessRule):
		c.JSON(http.StatusUnprocessableEntity, errorResponse(err.Error()))
	default:
		h.log.Error().Err(err).Msg("handler error")
		c.JSON(http.StatusInternalServerError, errorResponse("internal error"))
	}
}

func parseID(c *gin.Context, name string) (uint, bool) {
	raw := strings.TrimSpace(c.Param(name))
	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil || id == 0 {
		c.JSON(http.StatusBadRequest, errorResponse("invalid "+name))
		return 0, false
	}
	return uint(id), true
}

func parsePagination(c *gin.Context) (int, int) {
	page := 1
	size := 20
	if raw := strings.TrimSpace(c.Query("page")); raw != "" {
		if v, err := strconv.Atoi(raw); err == nil {
			page = v
		}
	}
	if raw := strings.TrimSpace(c.Query("size")); raw != "" {
		if v, err := strconv.Atoi(raw); err == nil {
			size = v
		}
	}
	return page, size
}

type responseEnvelope struct {
	Data interface{} `json:"data"`
}

func successResponse(data interface{}) responseEnvelope {
	return responseEnvelope{Data: data}
}

func errorResponse(msg string) gin.H {
	return gin.H{"error": msg}
}
