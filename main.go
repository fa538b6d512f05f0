package main

import (
	"transcript_service/internal/transcript/api/router"

	"github.com/gofiber/fiber/v2"
)

// 此程式用於init swagger
// swag init output ./cmd/transcript_service/docs
func main() {
	// 建立 Fiber 應用
	app := fiber.New()

	// 註冊路由
	router.RegisterRoutes(app, nil)
}
