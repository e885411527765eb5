// Package messaginghdl chứa các handler cho domain Messaging
package messaginghdl

import (
	"fmt"

	"github.com/gofiber/fiber/v3"
	"go.mongodb.org/mongo-driver/bson/primitive"

	basehdl "github.com/EldarGGG/nexus-back/internal/api/base/handler"
	messagingdto "github.com/EldarGGG/nexus-back/internal/api/messaging/dto"
	messagingsvc "github.com/EldarGGG/nexus-back/internal/api/messaging/service"
	"github.com/EldarGGG/nexus-back/internal/common"
	"github.com/EldarGGG/nexus-back/internal/global"
)

// ConversationHandler xử lý các request liên quan đến hội thoại
type ConversationHandler struct {
	conversationService *messagingsvc.ConversationService
}

// NewConversationHandler tạo mới ConversationHandler
func NewConversationHandler() (*ConversationHandler, error) {
	conversationService, err := messagingsvc.NewConversationService()
	if err != nil {
		return nil, fmt.Errorf("failed to create conversation service: %v", err)
	}
	return &ConversationHandler{
		conversationService: conversationService,
	}, nil
}

// HandleFindByCompany liệt kê hội thoại của công ty, có phân trang
// GET /api/v1/messaging/conversations?companyId=...&platform=...&page=&limit=
func (h *ConversationHandler) HandleFindByCompany(c fiber.Ctx) error {
	return basehdl.SafeHandler(c, func() error {
		var req messagingdto.FindConversationsRequest
		if err := c.Bind().Query(&req); err != nil {
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

		result, err := h.conversationService.FindByCompany(c.Context(), companyID, req.Platform, req.Page, req.Limit)
		basehdl.HandleResponse(c, result, err)
		return nil
	})
}

// HandleFindOneById trả về chi tiết một hội thoại
// GET /api/v1/messaging/conversations/:conversationId
func (h *ConversationHandler) HandleFindOneById(c fiber.Ctx) error {
	return basehdl.SafeHandler(c, func() error {
		conversationID, err := primitive.ObjectIDFromHex(c.Params("conversationId"))
		if err != nil {
			basehdl.HandleResponse(c, nil, common.ErrInvalidFormat)
			return nil
		}

		conversation, err := h.conversationService.FindOneById(c.Context(), conversationID)
		basehdl.HandleResponse(c, conversation, err)
		return nil
	})
}

// HandleUpdateStatus đổi trạng thái hội thoại (active / closed / archived)
// PUT /api/v1/messaging/conversations/:conversationId/status
func (h *ConversationHandler) HandleUpdateStatus(c fiber.Ctx) error {
	return basehdl.SafeHandler(c, func() error {
		conversationID, err := primitive.ObjectIDFromHex(c.Params("conversationId"))
		if err != nil {
			basehdl.HandleResponse(c, nil, common.ErrInvalidFormat)
			return nil
		}

		var req messagingdto.UpdateConversationStatusRequest
		if err := c.Bind().Body(&req); err != nil {
			basehdl.HandleResponse(c, nil, common.ErrInvalidInput)
			return nil
		}
		if err := global.Validate.Struct(&req); err != nil {
			basehdl.HandleResponse(c, nil, common.NewError(common.ErrCodeValidationInput, err.Error(), common.StatusBadRequest, nil))
			return nil
		}

		if err := h.conversationService.UpdateStatus(c.Context(), conversationID, req.Status); err != nil {
			basehdl.HandleResponse(c, nil, err)
			return nil
		}
		basehdl.HandleResponse(c, fiber.Map{"conversationId": conversationID.Hex(), "status": req.Status}, nil)
		return nil
	})
}
