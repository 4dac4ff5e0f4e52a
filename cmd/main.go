// cmd/main.go
package main

import (
	"go-vidtube-api/app"

	_ "go-vidtube-api/docs"
)

// @title           VidTube API
// @version         1.0
// @description     REST backend for a video-sharing platform.

// @contact.name   API Support
// @contact.email  support@example.com

// @license.name   MIT
// @license.url    https://opensource.org/licenses/MIT

// @host      localhost:8080
// @BasePath  /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	app.Run()
}
