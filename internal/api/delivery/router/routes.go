// Package router đăng ký các route thuộc domain Delivery: gửi outbound, resolve file.
package router

import (
	"fmt"

	"github.com/gofiber/fiber/v3"

	deliveryhdl "github.com/EldarGGG/nexus-back/internal/api/delivery/handler"
	apirouter "github.com/EldarGGG/nexus-back/internal/api/router"
)

// Register đăng ký tất cả route delivery lên v1.
func Register(v1 fiber.Router, r *apirouter.Router) error {
	sendHandler, err := deliveryhdl.NewDeliverySendHandler()
	if err != nil {
		return fmt.Errorf("create delivery send handler: %w", err)
	}

	delivery := v1.Group("/delivery")
	delivery.Post("/send", sendHandler.HandleSend)
	delivery.Post("/resolve-file", sendHandler.HandleResolveFile)

	return nil
}
