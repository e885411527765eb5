// Package deliveryhdl chứa HTTP handler cho domain Delivery (gửi tin nhắn outbound).
package deliveryhdl

import (
	"fmt"

	"github.com/gofiber/fiber/v3"
	"go.mongodb.org/mongo-driver/bson/primitive"

	basehdl "github.com/EldarGGG/nexus-back/internal/api/base/handler"
	deliverydto "github.com/EldarGGG/nexus-back/internal/api/delivery/dto"
	deliverysvc "github.com/EldarGGG/nexus-back/internal/api/delivery/service"
	"github.com/EldarGGG/nexus-back/internal/common"
	"github.com/EldarGGG/nexus-back/internal/global"
)

// DeliverySendHandler xử lý request gửi tin nhắn outbound
type DeliverySendHandler struct {
	sendService *deliverysvc.SendService
}

// NewDeliverySendHandler tạo mới DeliverySendHandler
func NewDeliverySendHandler() (*DeliverySendHandler, error) {
	sendService, err := deliverysvc.NewSendService()
	if err != nil {
		return nil, fmt.Errorf("failed to create send service: %v", err)
	}
	return &DeliverySendHandler{
		sendService: sendService,
	}, nil
}

// HandleSend gửi tin nhắn outbound qua kênh chat của công ty
// POST /api/v1/delivery/send
func (h *DeliverySendHandler) HandleSend(c fiber.Ctx) error {
	return basehdl.SafeHandler(c, func() error {
		var req deliverydto.DeliverySendRequest
		if err := c.Bind().Body(&req); err != nil {
			basehdl.HandleResponse(c, nil, common.ErrInvalidInput)
			return nil
		}
		if err := global.Validate.Struct(&req); err != nil {
			basehdl.HandleResponse(c, nil, common.NewError(common.ErrCodeValidationInput, err.Error(), common.StatusBadRequest, nil))
			return nil
		}
		companyID, err := primitive.ObjectIDFromHex(req.CompanyID)
		if err != nil {
			basehdl.HandleResponse(c, nil, common.ErrInvalidFormat)
			return nil
		}

		response, err := h.sendService.Send(c.Context(), companyID, req)
		basehdl.HandleResponse(c, response, err)
		return nil
	})
}

// HandleResolveFile đổi file id inbound thành URL tải trực tiếp
// POST /api/v1/delivery/resolve-file
func (h *DeliverySendHandler) HandleResolveFile(c fiber.Ctx) error {
	return basehdl.SafeHandler(c, func() error {
		var req deliverydto.DeliveryResolveFileRequest
		if err := c.Bind().Body(&req); err != nil {
			basehdl.HandleResponse(c, nil, common.ErrInvalidInput)
			return nil
		}
		if err := global.Validate.Struct(&req); err != nil {
			basehdl.HandleResponse(c, nil, common.NewError(common.ErrCodeValidationInput, err.Error(), common.StatusBadRequest, nil))
			return nil
		}
		companyID, err := primitive.ObjectIDFromHex(req.CompanyID)
		if err != nil {
			basehdl.HandleResponse(c, nil, common.ErrInvalidFormat)
			return nil
		}

		url, err := h.sendService.ResolveFileURL(c.Context(), companyID, req.Platform, req.FileID)
		if err != nil {
			basehdl.HandleResponse(c, nil, err)
			return nil
		}
		basehdl.HandleResponse(c, fiber.Map{"url": url}, nil)
		return nil
	})
}
