// Package router đăng ký các route thuộc domain Company: công ty, kênh chat.
package router

import (
	"fmt"

	"github.com/gofiber/fiber/v3"

	companyhdl "github.com/EldarGGG/nexus-back/internal/api/company/handler"
	apirouter "github.com/EldarGGG/nexus-back/internal/api/router"
)

// Register đăng ký tất cả route company lên v1.
func Register(v1 fiber.Router, r *apirouter.Router) error {
	companyHandler, err := companyhdl.NewCompanyHandler()
	if err != nil {
		return fmt.Errorf("create company handler: %w", err)
	}
	channelHandler, err := companyhdl.NewCompanyChannelHandler()
	if err != nil {
		return fmt.Errorf("create company channel handler: %w", err)
	}

	companies := v1.Group("/companies")
	companies.Post("/", companyHandler.HandleCreate)
	companies.Get("/:companyId", companyHandler.HandleFindOneById)
	companies.Put("/:companyId/status", companyHandler.HandleUpdateStatus)
	companies.Get("/:companyId/channels", channelHandler.HandleFindChannels)
	companies.Put("/:companyId/channels", channelHandler.HandleUpsertChannel)

	return nil
}
