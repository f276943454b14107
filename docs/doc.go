// Package docs holds the OpenAPI document of the benchdash server.
//
// Benchdash API
//
//	@title			Benchdash API
//	@version		1.0
//	@description	Browse, filter and export PDF extraction benchmark results.
//
//	@license.name	MIT
//	@license.url	https://opensource.org/licenses/MIT
//
//	@host		localhost:8080
//	@BasePath	/
//
//	@schemes	http https
package docs

//go:generate swag init -g ../cmd/benchdash/serve.go -o . --outputTypes go --parseInternal
