package controller

import (
	"errors"
	"net/http"

	"auction-management-api/internal/entity"
	"auction-management-api/internal/service"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo"
	"github.com/shopspring/decimal"
)

type itemRoutesHandler struct {
	catalogService  service.Catalog
	interestService service.Interest
	validate        *validator.Validate
}

func newItemRoutesHandler(outer *echo.Group, services *service.Services, v *validator.Validate) *itemRoutesHandler {
	h := &itemRoutesHandler{catalogService: services.Catalog, interestService: services.Interest, validate: v}

	outer.GET("/products", h.GetProducts)
	outer.POST("/products/new", h.PostProduct)
	outer.GET("/products/sold", h.GetSoldProducts)
	outer.GET("/products/:itemId/interests", h.GetProductInterests)

	return h
}

type listInput struct {
	Limit  int32 `query:"limit" validate:"gte=0,lte=100"`
	Offset int32 `query:"offset" validate:"gte=0"`
}

func newListInput() listInput {
	return listInput{Limit: defaultLimit, Offset: defaultOffset}
}

// /products
func (h *itemRoutesHandler) GetProducts(c echo.Context) error {
	var input = newListInput()
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

	pg := entity.NewPaginationInput(int(input.Limit), int(input.Offset))
	items, err := h.catalogService.GetActiveItems(c.Request().Context(), pg)
	if err != nil {
		if e := c.JSON(http.StatusBadRequest, errorResponse{err.Error()}); e != nil {
			return e
		}

		return err
	}
	if e := c.JSON(http.StatusOK, items); e != nil {
		return e
	}

	return nil
}

type postProductInput struct {
	Name        string  `json:"name" validate:"required,max=100"`
	Description string  `json:"description" validate:"required,max=500"`
	BasePrice   float64 `json:"basePrice" validate:"required,gt=0"`
	ImageUrl    string  `json:"imageUrl" validate:"required,max=500"`
}

// /products/new
func (h *itemRoutesHandler) PostProduct(c echo.Context) error {
	var input postProductInput
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

	model := &entity.CreateItemInput{
		Name:        input.Name,
		Description: input.Description,
		BasePrice:   decimal.NewFromFloat(input.BasePrice),
		ImageUrl:    input.ImageUrl,
	}

	item, err := h.catalogService.CreateItem(c.Request().Context(), principalFrom(c), model)
	if err == nil {
		if e := c.JSON(http.StatusCreated, item); e != nil {
			return e
		}

		return nil
	}

	switch {
	case errors.Is(err, service.ErrForbidden):
		if e := c.JSON(http.StatusForbidden, errorResponse{"Only an administrator can create products"}); e != nil {
			return e
		}
	case errors.Is(err, service.ErrInvalidAmount):
		if e := c.JSON(http.StatusBadRequest, errorResponse{"Base price must be positive"}); e != nil {
			return e
		}
	default:
		if e := c.JSON(http.StatusBadRequest, errorResponse{err.Error()}); e != nil {
			return e
		}
	}

	return err
}

// /products/sold
func (h *itemRoutesHandler) GetSoldProducts(c echo.Context) error {
	var input = newListInput()
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

	pg := entity.NewPaginationInput(int(input.Limit), int(input.Offset))
	results, err := h.catalogService.GetSoldResults(c.Request().Context(), principalFrom(c), pg)
	if err == nil {
		if e := c.JSON(http.StatusOK, results); e != nil {
			return e
		}

		return nil
	}

	switch {
	case errors.Is(err, service.ErrForbidden):
		if e := c.JSON(http.StatusForbidden, errorResponse{"Only an administrator can view sold results"}); e != nil {
			return e
		}
	default:
		if e := c.JSON(http.StatusBadRequest, errorResponse{err.Error()}); e != nil {
			return e
		}
	}

	return err
}

// /products/:itemId/interests
func (h *itemRoutesHandler) GetProductInterests(c echo.Context) error {
	itemId := c.Param("itemId")

	count, err := h.interestService.GetInterestCount(c.Request().Context(), itemId, principalFrom(c))
	if err == nil {
		if e := c.JSON(http.StatusOK, count); e != nil {
			return e
		}

		return nil
	}

	switch {
	case errors.Is(err, service.ErrForbidden):
		if e := c.JSON(http.StatusForbidden, errorResponse{"Only an administrator can view interest counts"}); e != nil {
			return e
		}
	case errors.Is(err, service.ErrItemNotFound):
		if e := c.JSON(http.StatusNotFound, errorResponse{"There is no product with given id"}); e != nil {
			return e
		}
	default:
		if e := c.JSON(http.StatusBadRequest, errorResponse{err.Error()}); e != nil {
			return e
		}
	}

	return err
}
