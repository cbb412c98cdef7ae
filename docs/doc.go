// Package docs provides generated OpenAPI documentation.
//
// Pitch Service API
//
//	@title			Pitch Service API
//	@version		1.0
//	@description	AI pitch generation service: generate, store, rate, and analyze startup pitches.
//
//	@contact.name	API Support
//	@contact.url	https://github.com/youssefhoussam/pitch-service
//
//	@license.name	MIT
//	@license.url	https://opensource.org/licenses/MIT
//
//	@host		localhost:8084
//	@BasePath	/
//
//	@schemes	http https
package docs

//go:generate swag init -g ../cmd/pitchsvc/serve.go -o ./swagger --parseDependency --parseInternal
