// @title           Civix API
// @version         1.0
// @description     Backend for the municipal issue reporting platform.
// @license.name    MIT
// @license.url     https://opensource.org/licenses/MIT
// @host            localhost:4000
// @BasePath        /api/v1
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization

package main

import (
	_ "civix_backend/docs"
	"civix_backend/internal/app"
)

func main() {
	app.Run()
}
