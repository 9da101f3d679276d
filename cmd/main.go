package main

import (
	api "Linkup"
)

// @title Linkup API
// @version 1.0
// @description Social networking API: profiles, follows, posts, and real-time messaging
// @schemes http https
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Provide a valid JWT as: Bearer <token>
func main() {
	api.Run()
}
