package main

// General API documentation for swaggo. Regenerate with `swag init -g cmd/sohd/docs.go -o docs`.
//
// @title           sohd API
// @version         1.0
// @description     Battery state-of-health prediction from three battery readings.
//
// @contact.name   sohd maintainers
//
// @license.name   MIT
// @license.url    https://opensource.org/licenses/MIT
//
// @BasePath  /
//
// @schemes http
