package main

import (
	"salesboard/internal/app"
)

// @title           Salesboard API
// @version         1.0
// @description     HubSpot OAuth-мост и лидерборд продаж.
// @BasePath        /
func main() {
	app.Run()
}
