package routes

import (
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "github.com/yigit/lms/docs" // registers the generated API docs
)

// SetupSwagger serves the interactive API docs under /docs
func SetupSwagger(router *gin.Engine) {
	router.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler,
		ginSwagger.URL("/docs/doc.json"),
		ginSwagger.DefaultModelsExpandDepth(1),
	))
}
