package controller

import (
	"errors"
	"net/http"

	"auction-management-api/internal/service"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo"
)

type interestRoutesHandler struct {
	interestService service.Interest
	validate        *validator.Validate
}

func newInterestRoutesHandler(outer *echo.Group, services *service.Services, v *validator.Validate) *interestRoutesHandler {
	h := &interestRoutesHandler{interestService: services.Interest, validate: v}

	outer.POST("/interests", h.PostInterest)

	return h
}

type postInterestInput struct {
	ItemId string `json:"itemId" validate:"required,uuid"`
}

// /interests
func (h *interestRoutesHandler) PostInterest(c echo.Context) error {
	var input postInterestInput
	if err := c.Bind(&input); err != nil {
		if e := c.JSON(http.StatusBadRequest, errorResponse{"Input data is not formed correctly"}); e != nil {
			return e
		}

		return err
	}

	if err := h.validate.Struct(input); err != nil {
		if e := c.JSON(http.StatusBadRequest, errorResponse{getAllErrorMessages(err)}); e != nil {
			return e
		}

		return err
	}

	interest, err := h.interestService.MarkInterest(c.Request().Context(), input.ItemId, principalFrom(c))
	if err == nil {
		if e := c.JSON(http.StatusCreated, interest); e != nil {
			return e
		}

		return nil
	}

	switch {
	case errors.Is(err, service.ErrItemNotFound):
		if e := c.JSON(http.StatusNotFound, errorResponse{"There is no product with given id"}); e != nil {
			return e
		}
	case errors.Is(err, service.ErrInterestAlreadyMarked):
		if e := c.JSON(http.StatusConflict, errorResponse{"Interest already marked for this product"}); e != nil {
			return e
		}
	default:
		if e := c.JSON(http.StatusBadRequest, errorResponse{err.Error()}); e != nil {
			return e
		}
	}

	return err
}
