package controller

import (
	"errors"
	"net/http"

	"auction-management-api/internal/service"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo"
	"github.com/shopspring/decimal"
)

type biddingRoutesHandler struct {
	auctionService service.Auction
	validate       *validator.Validate
}

func newBiddingRoutesHandler(outer *echo.Group, services *service.Services, v *validator.Validate) *biddingRoutesHandler {
	h := &biddingRoutesHandler{auctionService: services.Auction, validate: v}

	outer.POST("/bidding/start", h.StartBidding)
	outer.POST("/bidding/end", h.EndBidding)
	outer.GET("/bidding/current", h.GetCurrentBidding)
	outer.POST("/bids", h.PostBid)

	return h
}

type biddingTargetInput struct {
	ItemId string `json:"itemId" validate:"required,uuid"`
}

// /bidding/start
func (h *biddingRoutesHandler) StartBidding(c echo.Context) error {
	var input biddingTargetInput
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

	item, err := h.auctionService.OpenAuction(c.Request().Context(), input.ItemId, principalFrom(c))
	if err == nil {
		if e := c.JSON(http.StatusOK, item); e != nil {
			return e
		}

		return nil
	}

	switch {
	case errors.Is(err, service.ErrForbidden):
		if e := c.JSON(http.StatusForbidden, errorResponse{"Only an administrator can start bidding"}); e != nil {
			return e
		}
	case errors.Is(err, service.ErrItemNotFound):
		if e := c.JSON(http.StatusNotFound, errorResponse{"There is no product with given id"}); e != nil {
			return e
		}
	case errors.Is(err, service.ErrInvalidTransition):
		if e := c.JSON(http.StatusConflict, errorResponse{"Bidding can only be started on a listed product"}); e != nil {
			return e
		}
	case errors.Is(err, service.ErrConflict):
		if e := c.JSON(http.StatusConflict, errorResponse{"Operation conflicted with a concurrent request, try again"}); e != nil {
			return e
		}
	default:
		if e := c.JSON(http.StatusBadRequest, errorResponse{err.Error()}); e != nil {
			return e
		}
	}

	return err
}

// /bidding/end
func (h *biddingRoutesHandler) EndBidding(c echo.Context) error {
	var input biddingTargetInput
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

	result, err := h.auctionService.CloseAuction(c.Request().Context(), input.ItemId, principalFrom(c))
	if err == nil {
		if e := c.JSON(http.StatusOK, result); e != nil {
			return e
		}

		return nil
	}

	switch {
	case errors.Is(err, service.ErrForbidden):
		if e := c.JSON(http.StatusForbidden, errorResponse{"Only an administrator can end bidding"}); e != nil {
			return e
		}
	case errors.Is(err, service.ErrItemNotFound):
		if e := c.JSON(http.StatusNotFound, errorResponse{"There is no product with given id"}); e != nil {
			return e
		}
	case errors.Is(err, service.ErrInvalidTransition):
		if e := c.JSON(http.StatusConflict, errorResponse{"Bidding can only be ended on the live product"}); e != nil {
			return e
		}
	case errors.Is(err, service.ErrConflict):
		if e := c.JSON(http.StatusConflict, errorResponse{"Operation conflicted with a concurrent request, try again"}); e != nil {
			return e
		}
	default:
		if e := c.JSON(http.StatusBadRequest, errorResponse{err.Error()}); e != nil {
			return e
		}
	}

	return err
}

// /bidding/current
func (h *biddingRoutesHandler) GetCurrentBidding(c echo.Context) error {
	current, err := h.auctionService.GetCurrentAuction(c.Request().Context())
	if err != nil {
		if e := c.JSON(http.StatusBadRequest, errorResponse{err.Error()}); e != nil {
			return e
		}

		return err
	}

	if e := c.JSON(http.StatusOK, current); e != nil {
		return e
	}

	return nil
}

type postBidInput struct {
	ItemId string  `json:"itemId" validate:"required,uuid"`
	Amount float64 `json:"amount" validate:"required,gt=0"`
}

// /bids
func (h *biddingRoutesHandler) PostBid(c echo.Context) error {
	var input postBidInput
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

	amount := decimal.NewFromFloat(input.Amount)
	bid, err := h.auctionService.PlaceBid(c.Request().Context(), input.ItemId, principalFrom(c), amount)
	if err == nil {
		if e := c.JSON(http.StatusCreated, bid); e != nil {
			return e
		}

		return nil
	}

	var tooLow *service.BidTooLowError
	switch {
	case errors.As(err, &tooLow):
		response := bidTooLowResponse{
			Reason:         "Bid must be higher than current highest: " + tooLow.CurrentHighBid.String(),
			CurrentHighBid: tooLow.CurrentHighBid.String(),
		}
		if e := c.JSON(http.StatusConflict, response); e != nil {
			return e
		}
	case errors.Is(err, service.ErrItemNotFound):
		if e := c.JSON(http.StatusNotFound, errorResponse{"There is no product with given id"}); e != nil {
			return e
		}
	case errors.Is(err, service.ErrItemNotOpenForBidding):
		if e := c.JSON(http.StatusConflict, errorResponse{"Product is not open for bidding"}); e != nil {
			return e
		}
	case errors.Is(err, service.ErrInvalidAmount):
		if e := c.JSON(http.StatusBadRequest, errorResponse{"Bid amount must be positive"}); e != nil {
			return e
		}
	case errors.Is(err, service.ErrConflict):
		if e := c.JSON(http.StatusConflict, errorResponse{"Operation conflicted with a concurrent request, try again"}); e != nil {
			return e
		}
	default:
		if e := c.JSON(http.StatusBadRequest, errorResponse{err.Error()}); e != nil {
			return e
		}
	}

	return err
}
