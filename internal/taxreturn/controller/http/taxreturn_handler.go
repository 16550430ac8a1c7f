package http

import (
	"fmt"
	"mime/multipart"
	"net/http"
	"path/filepath"
	"strconv"

	"rentdesk/internal/taxreturn/usecase"
	"rentdesk/pkg/apperr"
	"rentdesk/pkg/logger"
	"rentdesk/pkg/response"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const maxDocumentSize = 10 << 20 // 10 MB

// FileStore is the slice of the storage client the handler needs.
type FileStore interface {
	UploadFile(key string, file multipart.File, contentType string) (string, error)
}

type TaxReturnHandler struct {
	taxReturnUseCase usecase.TaxReturnUseCase
	fileStore        FileStore
	logger           *logger.Logger
}

func NewTaxReturnHandler(taxReturnUseCase usecase.TaxReturnUseCase, fileStore FileStore, logger *logger.Logger) *TaxReturnHandler {
	return &TaxReturnHandler{
		taxReturnUseCase: taxReturnUseCase,
		fileStore:        fileStore,
		logger:           logger,
	}
}

type CreateTaxReturnRequest struct {
	TaxYear       int     `json:"tax_year" binding:"required"`
	TotalIncome   float64 `json:"total_income"`
	TotalExpenses float64 `json:"total_expenses"`
	Notes         string  `json:"notes"`
}

type UpdateTaxReturnRequest struct {
	TotalIncome   *float64 `json:"total_income"`
	TotalExpenses *float64 `json:"total_expenses"`
	Notes         *string  `json:"notes"`
}

// GetTaxReturns godoc
// @Summary      List the landlord's tax returns
// @Description  Newest first, paginated
// @Tags         tax-returns
// @Produce      json
// @Security     BearerAuth
// @Param        limit query int false "Page size (max 100, default 50)"
// @Param        offset query int false "Offset for pagination"
// @Success      200  {object}  response.Response
// @Router       /tax-returns [get]
func (h *TaxReturnHandler) GetTaxReturns(c *gin.Context) {
	landlordID := c.GetString("user_id")
	limit, offset := paginationParams(c)

	taxReturns, total, err := h.taxReturnUseCase.List(landlordID, limit, offset)
	if err != nil {
		apperr.Respond(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, response.SuccessWithMeta(taxReturns, &response.Meta{
		Count:  len(taxReturns),
		Total:  total,
		Limit:  limit,
		Offset: offset,
	}))
}

func (h *TaxReturnHandler) GetTaxReturn(c *gin.Context) {
	landlordID := c.GetString("user_id")

	taxReturn, err := h.taxReturnUseCase.Get(landlordID, c.Param("id"))
	if err != nil {
		apperr.Respond(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, response.Success(taxReturn))
}

// CreateTaxReturn godoc
// @Summary      Create a draft tax return
// @Description  One return per landlord per tax year
// @Tags         tax-returns
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body CreateTaxReturnRequest true "Tax return data"
// @Success      201  {object}  response.Response
// @Failure      409  {object}  response.Response
// @Router       /tax-returns [post]
func (h *TaxReturnHandler) CreateTaxReturn(c *gin.Context) {
	var req CreateTaxReturnRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperr.Respond(c, h.logger, apperr.Validation(err.Error()))
		return
	}

	taxReturn, err := h.taxReturnUseCase.Create(usecase.CreateTaxReturnInput{
		LandlordID:    c.GetString("user_id"),
		TaxYear:       req.TaxYear,
		TotalIncome:   req.TotalIncome,
		TotalExpenses: req.TotalExpenses,
		Notes:         req.Notes,
	})
	if err != nil {
		apperr.Respond(c, h.logger, err)
		return
	}

	c.JSON(http.StatusCreated, response.Success(taxReturn))
}

// UpdateTaxReturn godoc
// @Summary      Update a tax return
// @Description  Only drafts and rejected returns can be edited
// @Tags         tax-returns
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "Tax return ID"
// @Param        request body UpdateTaxReturnRequest true "Fields to update"
// @Success      200  {object}  response.Response
// @Failure      409  {object}  response.Response
// @Router       /tax-returns/{id} [patch]
func (h *TaxReturnHandler) UpdateTaxReturn(c *gin.Context) {
	var req UpdateTaxReturnRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperr.Respond(c, h.logger, apperr.Validation(err.Error()))
		return
	}

	taxReturn, err := h.taxReturnUseCase.Update(c.GetString("user_id"), c.Param("id"), usecase.UpdateTaxReturnInput{
		TotalIncome:   req.TotalIncome,
		TotalExpenses: req.TotalExpenses,
		Notes:         req.Notes,
	})
	if err != nil {
		apperr.Respond(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, response.Success(taxReturn))
}

// SubmitTaxReturn godoc
// @Summary      Submit a tax return
// @Tags         tax-returns
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "Tax return ID"
// @Success      200  {object}  response.Response
// @Failure      409  {object}  response.Response
// @Router       /tax-returns/{id}/submit [post]
func (h *TaxReturnHandler) SubmitTaxReturn(c *gin.Context) {
	taxReturn, err := h.taxReturnUseCase.Submit(c.GetString("user_id"), c.Param("id"))
	if err != nil {
		apperr.Respond(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, response.Success(taxReturn))
}

// UploadDocument godoc
// @Summary      Attach a supporting document
// @Description  Uploads the file to object storage and stores the URL on the return
// @Tags         tax-returns
// @Accept       multipart/form-data
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "Tax return ID"
// @Param        document formData file true "Document file"
// @Success      200  {object}  response.Response
// @Failure      400  {object}  response.Response
// @Router       /tax-returns/{id}/documents [post]
func (h *TaxReturnHandler) UploadDocument(c *gin.Context) {
	landlordID := c.GetString("user_id")
	taxReturnID := c.Param("id")

	// Make sure the return is there and editable before touching storage
	if _, err := h.taxReturnUseCase.Get(landlordID, taxReturnID); err != nil {
		apperr.Respond(c, h.logger, err)
		return
	}

	fileHeader, err := c.FormFile("document")
	if err != nil {
		apperr.Respond(c, h.logger, apperr.Validation("document file is required"))
		return
	}
	if fileHeader.Size > maxDocumentSize {
		apperr.Respond(c, h.logger, apperr.Validation("document exceeds the 10 MB limit"))
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		apperr.Respond(c, h.logger, apperr.Validation("could not read document file"))
		return
	}
	defer file.Close()

	key := fmt.Sprintf("tax-returns/%s/%s%s", taxReturnID, uuid.New().String(), filepath.Ext(fileHeader.Filename))
	url, err := h.fileStore.UploadFile(key, file, fileHeader.Header.Get("Content-Type"))
	if err != nil {
		h.logger.Error("Document upload failed for tax return %s: %v", taxReturnID, err)
		apperr.Respond(c, h.logger, apperr.Internal(err))
		return
	}

	taxReturn, err := h.taxReturnUseCase.AttachDocument(landlordID, taxReturnID, url)
	if err != nil {
		apperr.Respond(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, response.Success(taxReturn))
}

// DeleteTaxReturn godoc
// @Summary      Delete a draft tax return
// @Tags         tax-returns
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "Tax return ID"
// @Success      200  {object}  response.Response
// @Failure      409  {object}  response.Response
// @Router       /tax-returns/{id} [delete]
func (h *TaxReturnHandler) DeleteTaxReturn(c *gin.Context) {
	if err := h.taxReturnUseCase.Delete(c.GetString("user_id"), c.Param("id")); err != nil {
		apperr.Respond(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, response.Success(gin.H{"deleted": true}))
}

func paginationParams(c *gin.Context) (int, int) {
	limit := 50
	if limitStr := c.Query("limit"); limitStr != "" {
		if parsed, err := strconv.Atoi(limitStr); err == nil && parsed > 0 && parsed <= 100 {
			limit = parsed
		}
	}

	offset := 0
	if offsetStr := c.Query("offset"); offsetStr != "" {
		if parsed, err := strconv.Atoi(offsetStr); err == nil && parsed >= 0 {
			offset = parsed
		}
	}

	return limit, offset
}
