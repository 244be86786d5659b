package controller

import (
	"auction-management-api/internal/service"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo"
)

func SetupRoutesHandlers(handler *echo.Echo, services *service.Services) {
	validate := validator.New(validator.WithRequiredStructEnabled())
	api := handler.Group("/api")
	newDiagnosticRoutesHandler(api, services)

	authenticated := api.Group("", principalMiddleware)
	newItemRoutesHandler(authenticated, services, validate)
	newBiddingRoutesHandler(authenticated, services, validate)
	newInterestRoutesHandler(authenticated, services, validate)
}
