package handler

import (
	"net/http"

	"decorator-user-service/api/openapi"

	"github.com/gin-gonic/gin"
	httpSwagger "github.com/swaggo/http-swagger/v2"
)

// OpenAPIPath is where the OpenAPI document is served.
const OpenAPIPath = "/openapi/v1.json"

// RegisterOpenAPIRoutes mounts the OpenAPI document and a Swagger UI reading it.
// Only registered in development.
func RegisterOpenAPIRoutes(rg *gin.RouterGroup) {
	rg.GET(OpenAPIPath, func(c *gin.Context) {
		c.Data(http.StatusOK, "application/json", openapi.V1)
	})
	rg.GET("/swagger/*any", gin.WrapH(httpSwagger.Handler(
		httpSwagger.URL(OpenAPIPath),
	)))
}
