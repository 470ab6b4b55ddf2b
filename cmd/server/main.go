package main

import "alcyxob/fitness-bot/internal/cli"

// @title Fitness Bot Menu API
// @version 1.0
// @description Menu screens, token exchange and workout logging for the fitness chat bot.
// @contact.name API Support
// @contact.email support@example.com
// @license.name Apache 2.0
// @license.url http://www.apache.org/licenses/LICENSE-2.0.html
// @host localhost:8080
// @BasePath /api/v1
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.
func main() {
	cli.Execute()
}
