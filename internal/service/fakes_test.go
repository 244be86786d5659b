package service_test

import (
	"context"
	"sync"
	"time"

	"auction-management-api/internal/common"
	"auction-management-api/internal/entity"
	"auction-management-api/internal/repo"
	"auction-management-api/internal/repo/repo_errors"
	"auction-management-api/internal/service"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// memStore is an in-memory stand-in for the pgdb repositories. A single
// mutex gives every mutation the same atomicity the Postgres transactions
// provide: no two operations interleave their read and write phases.
type memStore struct {
	mu        sync.Mutex
	items     map[uuid.UUID]*entity.Item
	itemOrder []uuid.UUID
	soldOrder []uuid.UUID
	bids      map[uuid.UUID]*entity.Bid
	bidOrder  map[uuid.UUID][]uuid.UUID
	interests map[uuid.UUID]*entity.Interest
}

func newMemStore() *memStore {
	return &memStore{
		items:     make(map[uuid.UUID]*entity.Item),
		bids:      make(map[uuid.UUID]*entity.Bid),
		bidOrder:  make(map[uuid.UUID][]uuid.UUID),
		interests: make(map[uuid.UUID]*entity.Interest),
	}
}

func newTestServices(store *memStore) *service.Services {
	repos := &repo.Repositories{
		Diagnostics: store,
		Item:        store,
		Auction:     store,
		Bid:         store,
		Interest:    store,
	}

	return service.NewServices(repos, nil, nil)
}

func (s *memStore) Ping() error {
	return nil
}

func (s *memStore) CreateItem(ctx context.Context, input *entity.CreateItemInput) (uuid.UUID, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := uuid.New()
	s.items[id] = &entity.Item{
		Id:          id,
		Name:        input.Name,
		Description: input.Description,
		BasePrice:   input.BasePrice,
		ImageUrl:    input.ImageUrl,
		Status:      common.Listed,
		CreatedAt:   time.Now().UTC().Format(time.RFC3339),
	}
	s.itemOrder = append(s.itemOrder, id)

	return id, nil
}

func (s *memStore) GetItemById(ctx context.Context, id string) (*entity.Item, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	uuidForm, err := uuid.Parse(id)
	if err != nil {
		return nil, repo_errors.ErrNotFound
	}

	item, ok := s.items[uuidForm]
	if !ok {
		return nil, repo_errors.ErrNotFound
	}

	copied := *item

	return &copied, nil
}

func (s *memStore) GetActiveItems(ctx context.Context, pg *entity.PaginationInput) ([]entity.Item, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	items := make([]entity.Item, 0)
	for i := len(s.itemOrder) - 1; i >= 0; i-- {
		item := s.items[s.itemOrder[i]]
		if item.Status == common.Listed || item.Status == common.Bidding {
			items = append(items, *item)
		}
	}

	return paginate(items, pg), nil
}

func (s *memStore) GetSoldItems(ctx context.Context, pg *entity.PaginationInput) ([]entity.Item, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	items := make([]entity.Item, 0)
	for i := len(s.soldOrder) - 1; i >= 0; i-- {
		items = append(items, *s.items[s.soldOrder[i]])
	}

	return paginate(items, pg), nil
}

func (s *memStore) OpenAuction(ctx context.Context, itemId string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	uuidForm, err := uuid.Parse(itemId)
	if err != nil {
		return repo_errors.ErrNotFound
	}

	item, ok := s.items[uuidForm]
	if !ok {
		return repo_errors.ErrNotFound
	}
	if item.Status != common.Listed {
		return repo_errors.ErrInvalidTransition
	}

	for _, other := range s.items {
		if other.Status == common.Bidding {
			other.Status = common.Listed
		}
	}
	item.Status = common.Bidding

	return nil
}

func (s *memStore) CloseAuction(ctx context.Context, itemId string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	uuidForm, err := uuid.Parse(itemId)
	if err != nil {
		return repo_errors.ErrNotFound
	}

	item, ok := s.items[uuidForm]
	if !ok {
		return repo_errors.ErrNotFound
	}
	if item.Status != common.Bidding {
		return repo_errors.ErrInvalidTransition
	}

	item.Status = common.Sold
	item.SoldAt = time.Now().UTC().Format(time.RFC3339)
	s.soldOrder = append(s.soldOrder, uuidForm)

	return nil
}

func (s *memStore) PlaceBid(ctx context.Context, itemId string, bidderId uuid.UUID, amount decimal.Decimal) (uuid.UUID, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	uuidForm, err := uuid.Parse(itemId)
	if err != nil {
		return uuid.Nil, repo_errors.ErrNotFound
	}

	item, ok := s.items[uuidForm]
	if !ok {
		return uuid.Nil, repo_errors.ErrNotFound
	}
	if item.Status != common.Bidding {
		return uuid.Nil, repo_errors.ErrItemNotOpen
	}

	highBid := item.BasePrice
	if accepted := s.bidOrder[uuidForm]; len(accepted) > 0 {
		highBid = s.bids[accepted[len(accepted)-1]].Amount
	}

	if !amount.GreaterThan(highBid) {
		return uuid.Nil, &repo_errors.BidTooLowError{HighBid: highBid}
	}

	id := uuid.New()
	s.bids[id] = &entity.Bid{
		Id:        id,
		ItemId:    uuidForm,
		BidderId:  bidderId,
		Amount:    amount,
		CreatedAt: time.Now().UTC().Format(time.RFC3339),
	}
	s.bidOrder[uuidForm] = append(s.bidOrder[uuidForm], id)

	return id, nil
}

func (s *memStore) GetCurrentAuction(ctx context.Context) (*entity.Item, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, item := range s.items {
		if item.Status == common.Bidding {
			copied := *item
			return &copied, nil
		}
	}

	return nil, repo_errors.ErrNotFound
}

func (s *memStore) GetBidById(ctx context.Context, id string) (*entity.Bid, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	uuidForm, err := uuid.Parse(id)
	if err != nil {
		return nil, repo_errors.ErrNotFound
	}

	bid, ok := s.bids[uuidForm]
	if !ok {
		return nil, repo_errors.ErrNotFound
	}

	copied := *bid

	return &copied, nil
}

func (s *memStore) GetHighestBid(ctx context.Context, itemId string) (*entity.Bid, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	uuidForm, err := uuid.Parse(itemId)
	if err != nil {
		return nil, repo_errors.ErrNotFound
	}

	accepted := s.bidOrder[uuidForm]
	if len(accepted) == 0 {
		return nil, repo_errors.ErrNotFound
	}

	// accepted amounts strictly increase, so the last append is the highest
	copied := *s.bids[accepted[len(accepted)-1]]

	return &copied, nil
}

func (s *memStore) MarkInterest(ctx context.Context, itemId string, userId uuid.UUID) (uuid.UUID, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	uuidForm, err := uuid.Parse(itemId)
	if err != nil {
		return uuid.Nil, repo_errors.ErrNotFound
	}

	for _, interest := range s.interests {
		if interest.ItemId == uuidForm && interest.UserId == userId {
			return uuid.Nil, repo_errors.ErrAlreadyExists
		}
	}

	id := uuid.New()
	s.interests[id] = &entity.Interest{
		Id:        id,
		ItemId:    uuidForm,
		UserId:    userId,
		CreatedAt: time.Now().UTC().Format(time.RFC3339),
	}

	return id, nil
}

func (s *memStore) GetInterestById(ctx context.Context, id string) (*entity.Interest, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	uuidForm, err := uuid.Parse(id)
	if err != nil {
		return nil, repo_errors.ErrNotFound
	}

	interest, ok := s.interests[uuidForm]
	if !ok {
		return nil, repo_errors.ErrNotFound
	}

	copied := *interest

	return &copied, nil
}

func (s *memStore) GetInterestCount(ctx context.Context, itemId string) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	uuidForm, err := uuid.Parse(itemId)
	if err != nil {
		return 0, repo_errors.ErrNotFound
	}

	count := 0
	for _, interest := range s.interests {
		if interest.ItemId == uuidForm {
			count++
		}
	}

	return count, nil
}

// biddingCount reports how many items are live; the engine must keep this
// at most one at all times.
func (s *memStore) biddingCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	count := 0
	for _, item := range s.items {
		if item.Status == common.Bidding {
			count++
		}
	}

	return count
}

// acceptedAmounts returns the accepted bid amounts for an item in
// acceptance order.
func (s *memStore) acceptedAmounts(itemId string) []decimal.Decimal {
	s.mu.Lock()
	defer s.mu.Unlock()

	uuidForm, _ := uuid.Parse(itemId)
	amounts := make([]decimal.Decimal, 0)
	for _, id := range s.bidOrder[uuidForm] {
		amounts = append(amounts, s.bids[id].Amount)
	}

	return amounts
}

func paginate(items []entity.Item, pg *entity.PaginationInput) []entity.Item {
	if pg.Offset >= len(items) {
		return []entity.Item{}
	}
	items = items[pg.Offset:]
	if pg.Limit < len(items) {
		items = items[:pg.Limit]
	}

	return items
}
