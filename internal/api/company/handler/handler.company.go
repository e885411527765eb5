// Package companyhdl chứa các handler cho domain Company
package companyhdl

import (
	"fmt"

	"github.com/gofiber/fiber/v3"
	"go.mongodb.org/mongo-driver/bson/primitive"

	basehdl "github.com/EldarGGG/nexus-back/internal/api/base/handler"
	companydto "github.com/EldarGGG/nexus-back/internal/api/company/dto"
	companysvc "github.com/EldarGGG/nexus-back/internal/api/company/service"
	"github.com/EldarGGG/nexus-back/internal/common"
	"github.com/EldarGGG/nexus-back/internal/global"
)

// CompanyHandler xử lý các request liên quan đến công ty
type CompanyHandler struct {
	companyService *companysvc.CompanyService
}

// NewCompanyHandler tạo mới CompanyHandler
func NewCompanyHandler() (*CompanyHandler, error) {
	companyService, err := companysvc.NewCompanyService()
	if err != nil {
		return nil, fmt.Errorf("failed to create company service: %v", err)
	}
	return &CompanyHandler{
		companyService: companyService,
	}, nil
}

// HandleCreate tạo công ty mới
// POST /api/v1/companies
func (h *CompanyHandler) HandleCreate(c fiber.Ctx) error {
	return basehdl.SafeHandler(c, func() error {
		var req companydto.CreateCompanyRequest
		if err := c.Bind().Body(&req); err != nil {
			basehdl.HandleResponse(c, nil, common.ErrInvalidInput)
			return nil
		}
		if err := global.Validate.Struct(&req); err != nil {
			basehdl.HandleResponse(c, nil, common.NewError(common.ErrCodeValidationInput, err.Error(), common.StatusBadRequest, nil))
			return nil
		}

		company, err := h.companyService.CreateCompany(c.Context(), req.Name, req.Metadata)
		basehdl.HandleResponse(c, company, err)
		return nil
	})
}

// HandleFindOneById trả về chi tiết công ty
// GET /api/v1/companies/:companyId
func (h *CompanyHandler) HandleFindOneById(c fiber.Ctx) error {
	return basehdl.SafeHandler(c, func() error {
		companyID, err := primitive.ObjectIDFromHex(c.Params("companyId"))
		if err != nil {
			basehdl.HandleResponse(c, nil, common.ErrInvalidFormat)
			return nil
		}

		company, err := h.companyService.FindOneById(c.Context(), companyID)
		basehdl.HandleResponse(c, company, err)
		return nil
	})
}

// HandleUpdateStatus đổi trạng thái công ty (active / suspended)
// PUT /api/v1/companies/:companyId/status
func (h *CompanyHandler) HandleUpdateStatus(c fiber.Ctx) error {
	return basehdl.SafeHandler(c, func() error {
		companyID, err := primitive.ObjectIDFromHex(c.Params("companyId"))
		if err != nil {
			basehdl.HandleResponse(c, nil, common.ErrInvalidFormat)
			return nil
		}

		var req companydto.UpdateCompanyStatusRequest
		if err := c.Bind().Body(&req); err != nil {
			basehdl.HandleResponse(c, nil, common.ErrInvalidInput)
			return nil
		}
		if err := global.Validate.Struct(&req); err != nil {
			basehdl.HandleResponse(c, nil, common.NewError(common.ErrCodeValidationInput, err.Error(), common.StatusBadRequest, nil))
			return nil
		}

		if err := h.companyService.UpdateStatus(c.Context(), companyID, req.Status); err != nil {
			basehdl.HandleResponse(c, nil, err)
			return nil
		}
		basehdl.HandleResponse(c, fiber.Map{"companyId": companyID.Hex(), "status": req.Status}, nil)
		return nil
	})
}
