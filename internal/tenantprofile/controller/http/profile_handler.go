package http

import (
	"net/http"
	"time"

	"rentdesk/internal/tenantprofile/usecase"
	"rentdesk/pkg/apperr"
	"rentdesk/pkg/logger"
	"rentdesk/pkg/models"
	"rentdesk/pkg/response"

	"github.com/gin-gonic/gin"
)

type ProfileHandler struct {
	profileUseCase usecase.ProfileUseCase
	logger         *logger.Logger
}

func NewProfileHandler(profileUseCase usecase.ProfileUseCase, logger *logger.Logger) *ProfileHandler {
	return &ProfileHandler{
		profileUseCase: profileUseCase,
		logger:         logger,
	}
}

type CreateProfileRequest struct {
	TenantID string `json:"tenant_id" binding:"required"`
}

type UpdateProfileRequest struct {
	EmergencyContactName     *string    `json:"emergency_contact_name"`
	EmergencyContactPhone    *string    `json:"emergency_contact_phone"`
	EmergencyContactRelation *string    `json:"emergency_contact_relation"`
	MaxRent                  *float64   `json:"max_rent"`
	PreferredAreas           *string    `json:"preferred_areas"`
	PetsAllowed              *bool      `json:"pets_allowed"`
	Smoker                   *bool      `json:"smoker"`
	EmploymentStatus         *string    `json:"employment_status"`
	MonthlyIncome            *float64   `json:"monthly_income"`
	CurrentProperty          *string    `json:"current_property"`
	MoveInDate               *time.Time `json:"move_in_date"`
	PreviousAddress          *string    `json:"previous_address"`
	PreferredPaymentMethod   *string    `json:"preferred_payment_method"`
	AutoPayEnabled           *bool      `json:"auto_pay_enabled"`
}

type profileWithLeases struct {
	*models.TenantProfile
	Leases []models.Lease `json:"leases"`
}

// GetProfile godoc
// @Summary      Fetch a tenant profile
// @Description  The profile together with the tenant's leases and their properties
// @Tags         tenant-profile
// @Produce      json
// @Security     BearerAuth
// @Param        tenantId path string true "Tenant ID"
// @Success      200  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Router       /tenant-profile/{tenantId} [get]
func (h *ProfileHandler) GetProfile(c *gin.Context) {
	tenantID := c.Param("tenantId")
	if !h.canAccess(c, tenantID) {
		return
	}

	profile, leases, err := h.profileUseCase.Get(tenantID)
	if err != nil {
		apperr.Respond(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, response.Success(profileWithLeases{TenantProfile: profile, Leases: leases}))
}

func (h *ProfileHandler) CreateProfile(c *gin.Context) {
	var req CreateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperr.Respond(c, h.logger, apperr.Validation(err.Error()))
		return
	}
	if !h.canAccess(c, req.TenantID) {
		return
	}

	profile, err := h.profileUseCase.GetOrCreate(req.TenantID)
	if err != nil {
		apperr.Respond(c, h.logger, err)
		return
	}

	c.JSON(http.StatusCreated, response.Success(profile))
}

// UpdateProfile godoc
// @Summary      Update a tenant profile
// @Description  Partial update; unrecognized fields are ignored and the completeness flag is recomputed
// @Tags         tenant-profile
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        tenantId path string true "Tenant ID"
// @Param        request body UpdateProfileRequest true "Fields to update"
// @Success      200  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Router       /tenant-profile/{tenantId} [patch]
func (h *ProfileHandler) UpdateProfile(c *gin.Context) {
	tenantID := c.Param("tenantId")
	if !h.canAccess(c, tenantID) {
		return
	}

	var req UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperr.Respond(c, h.logger, apperr.Validation(err.Error()))
		return
	}

	profile, err := h.profileUseCase.Update(tenantID, usecase.UpdateProfileInput{
		EmergencyContactName:     req.EmergencyContactName,
		EmergencyContactPhone:    req.EmergencyContactPhone,
		EmergencyContactRelation: req.EmergencyContactRelation,
		MaxRent:                  req.MaxRent,
		PreferredAreas:           req.PreferredAreas,
		PetsAllowed:              req.PetsAllowed,
		Smoker:                   req.Smoker,
		EmploymentStatus:         req.EmploymentStatus,
		MonthlyIncome:            req.MonthlyIncome,
		CurrentProperty:          req.CurrentProperty,
		MoveInDate:               req.MoveInDate,
		PreviousAddress:          req.PreviousAddress,
		PreferredPaymentMethod:   req.PreferredPaymentMethod,
		AutoPayEnabled:           req.AutoPayEnabled,
	})
	if err != nil {
		apperr.Respond(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, response.Success(profile))
}

func (h *ProfileHandler) RecomputeCompleteness(c *gin.Context) {
	tenantID := c.Param("tenantId")
	if !h.canAccess(c, tenantID) {
		return
	}

	profile, err := h.profileUseCase.RecomputeCompleteness(tenantID)
	if err != nil {
		apperr.Respond(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, response.Success(gin.H{"profile_completed": profile.ProfileCompleted}))
}

// canAccess lets tenants at their own profile and landlords at any.
// An ownership mismatch reads as a missing resource.
func (h *ProfileHandler) canAccess(c *gin.Context, tenantID string) bool {
	if c.GetString("role") == string(models.RoleLandlord) {
		return true
	}
	if c.GetString("user_id") == tenantID {
		return true
	}
	apperr.Respond(c, h.logger, apperr.NotFound("tenant profile not found"))
	return false
}
