package controller

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"auction-management-api/internal/common"
	"auction-management-api/internal/entity"
	"auction-management-api/internal/service"

	"github.com/google/uuid"
	"github.com/labstack/echo"
	"github.com/peterldowns/testy/assert"
	"github.com/peterldowns/testy/check"
	"github.com/shopspring/decimal"
)

type stubAuction struct {
	openAuction       func(itemId string, principal entity.Principal) (*entity.ItemOutputModel, error)
	closeAuction      func(itemId string, principal entity.Principal) (*entity.SoldResultOutputModel, error)
	placeBid          func(itemId string, principal entity.Principal, amount decimal.Decimal) (*entity.BidOutputModel, error)
	getCurrentAuction func() (*entity.CurrentAuctionOutputModel, error)
}

func (s *stubAuction) OpenAuction(ctx context.Context, itemId string, principal entity.Principal) (*entity.ItemOutputModel, error) {
	return s.openAuction(itemId, principal)
}

func (s *stubAuction) CloseAuction(ctx context.Context, itemId string, principal entity.Principal) (*entity.SoldResultOutputModel, error) {
	return s.closeAuction(itemId, principal)
}

func (s *stubAuction) PlaceBid(ctx context.Context, itemId string, principal entity.Principal, amount decimal.Decimal) (*entity.BidOutputModel, error) {
	return s.placeBid(itemId, principal, amount)
}

func (s *stubAuction) GetCurrentAuction(ctx context.Context) (*entity.CurrentAuctionOutputModel, error) {
	return s.getCurrentAuction()
}

type stubDiagnostics struct{}

func (s *stubDiagnostics) Ping() error { return nil }

func newTestHandler(auction service.Auction) *echo.Echo {
	handler := echo.New()
	SetupRoutesHandlers(handler, &service.Services{
		Diagnostics: &stubDiagnostics{},
		Auction:     auction,
	})

	return handler
}

func doRequest(handler *echo.Echo, method, path, body string, principal *entity.Principal) *httptest.ResponseRecorder {
	var reader *strings.Reader
	if body == "" {
		reader = strings.NewReader("")
	} else {
		reader = strings.NewReader(body)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	if principal != nil {
		req.Header.Set(userIdHeader, principal.Id.String())
		req.Header.Set(userRoleHeader, principal.Role)
	}

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	return rec
}

func TestPrincipalMiddleware_RejectsAnonymousCalls(t *testing.T) {
	handler := newTestHandler(&stubAuction{})

	rec := doRequest(handler, http.MethodGet, "/api/bidding/current", "", nil)
	check.Equal(t, http.StatusUnauthorized, rec.Code)

	// unknown role is as good as no role
	bad := entity.Principal{Id: uuid.New(), Role: "superuser"}
	rec = doRequest(handler, http.MethodGet, "/api/bidding/current", "", &bad)
	check.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestStartBidding(t *testing.T) {
	itemId := uuid.New().String()
	auction := &stubAuction{
		openAuction: func(id string, principal entity.Principal) (*entity.ItemOutputModel, error) {
			if !principal.IsAdmin() {
				return nil, service.ErrForbidden
			}

			return &entity.ItemOutputModel{Id: id, Status: common.Bidding}, nil
		},
	}
	handler := newTestHandler(auction)

	admin := entity.Principal{Id: uuid.New(), Role: common.RoleAdmin}
	rec := doRequest(handler, http.MethodPost, "/api/bidding/start", `{"itemId":"`+itemId+`"}`, &admin)
	assert.Equal(t, http.StatusOK, rec.Code)

	var item entity.ItemOutputModel
	assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &item))
	check.Equal(t, common.Bidding, item.Status)

	user := entity.Principal{Id: uuid.New(), Role: common.RoleUser}
	rec = doRequest(handler, http.MethodPost, "/api/bidding/start", `{"itemId":"`+itemId+`"}`, &user)
	check.Equal(t, http.StatusForbidden, rec.Code)

	// malformed item id fails validation before reaching the service
	rec = doRequest(handler, http.MethodPost, "/api/bidding/start", `{"itemId":"not-a-uuid"}`, &admin)
	check.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestEndBidding_MapsTransitionErrors(t *testing.T) {
	auction := &stubAuction{
		closeAuction: func(id string, principal entity.Principal) (*entity.SoldResultOutputModel, error) {
			return nil, service.ErrInvalidTransition
		},
	}
	handler := newTestHandler(auction)

	admin := entity.Principal{Id: uuid.New(), Role: common.RoleAdmin}
	rec := doRequest(handler, http.MethodPost, "/api/bidding/end", `{"itemId":"`+uuid.New().String()+`"}`, &admin)
	check.Equal(t, http.StatusConflict, rec.Code)
}

func TestPostBid(t *testing.T) {
	itemId := uuid.New().String()
	auction := &stubAuction{
		placeBid: func(id string, principal entity.Principal, amount decimal.Decimal) (*entity.BidOutputModel, error) {
			if !amount.GreaterThan(decimal.NewFromInt(150)) {
				return nil, &service.BidTooLowError{CurrentHighBid: decimal.NewFromInt(150)}
			}

			return &entity.BidOutputModel{
				Id:       uuid.New().String(),
				ItemId:   id,
				BidderId: principal.Id.String(),
				Amount:   amount.String(),
			}, nil
		},
	}
	handler := newTestHandler(auction)
	user := entity.Principal{Id: uuid.New(), Role: common.RoleUser}

	rec := doRequest(handler, http.MethodPost, "/api/bids", `{"itemId":"`+itemId+`","amount":200}`, &user)
	assert.Equal(t, http.StatusCreated, rec.Code)

	var bid entity.BidOutputModel
	assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &bid))
	check.Equal(t, "200", bid.Amount)
	check.Equal(t, user.Id.String(), bid.BidderId)

	// the rejection carries the committed floor to beat
	rec = doRequest(handler, http.MethodPost, "/api/bids", `{"itemId":"`+itemId+`","amount":120}`, &user)
	assert.Equal(t, http.StatusConflict, rec.Code)

	var tooLow bidTooLowResponse
	assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &tooLow))
	check.Equal(t, "150", tooLow.CurrentHighBid)

	// validation rejects non-positive amounts before the service runs
	rec = doRequest(handler, http.MethodPost, "/api/bids", `{"itemId":"`+itemId+`","amount":-5}`, &user)
	check.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestGetCurrentBidding_NoLiveAuction(t *testing.T) {
	auction := &stubAuction{
		getCurrentAuction: func() (*entity.CurrentAuctionOutputModel, error) {
			return &entity.CurrentAuctionOutputModel{Item: nil}, nil
		},
	}
	handler := newTestHandler(auction)
	user := entity.Principal{Id: uuid.New(), Role: common.RoleUser}

	rec := doRequest(handler, http.MethodGet, "/api/bidding/current", "", &user)
	assert.Equal(t, http.StatusOK, rec.Code)

	var current entity.CurrentAuctionOutputModel
	assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &current))
	check.Nil(t, current.Item)
}

func TestPing_NoAuthRequired(t *testing.T) {
	handler := newTestHandler(&stubAuction{})

	rec := doRequest(handler, http.MethodGet, "/api/ping", "", nil)
	check.Equal(t, http.StatusOK, rec.Code)
}
