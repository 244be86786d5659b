package event

import (
	"encoding/json"
	"log"
	"time"

	"auction-management-api/internal/entity"

	"github.com/nats-io/nats.go"
)

const (
	subjectAuctionOpened = "auction.opened"
	subjectAuctionClosed = "auction.closed"
	subjectBidPrefix     = "auction.bid."
)

// Publisher emits fire-and-forget JSON events about auction lifecycle and
// accepted bids for downstream consumers (audit, archival). Publishing is
// best effort and never fails the operation that triggered it.
type Publisher struct {
	conn *nats.Conn
}

// NewPublisher returns nil when url is empty; all methods are nil-safe.
func NewPublisher(url string) (*Publisher, error) {
	if url == "" {
		return nil, nil
	}

	conn, err := nats.Connect(url)
	if err != nil {
		return nil, err
	}

	return &Publisher{conn: conn}, nil
}

type auctionEvent struct {
	Item       *entity.ItemOutputModel `json:"item"`
	WinningBid *entity.BidOutputModel  `json:"winningBid,omitempty"`
	OccurredAt time.Time               `json:"occurredAt"`
}

func (p *Publisher) AuctionOpened(item *entity.ItemOutputModel) {
	p.publish(subjectAuctionOpened, auctionEvent{Item: item, OccurredAt: time.Now().UTC()})
}

func (p *Publisher) AuctionClosed(item *entity.ItemOutputModel, winning *entity.BidOutputModel) {
	p.publish(subjectAuctionClosed, auctionEvent{Item: item, WinningBid: winning, OccurredAt: time.Now().UTC()})
}

func (p *Publisher) BidAccepted(bid *entity.BidOutputModel) {
	p.publish(subjectBidPrefix+bid.ItemId, bid)
}

func (p *Publisher) publish(subject string, payload interface{}) {
	if p == nil {
		return
	}

	go func() {
		data, err := json.Marshal(payload)
		if err != nil {
			log.Printf("event: failed to marshal %s payload: %v", subject, err)
			return
		}

		if err := p.conn.Publish(subject, data); err != nil {
			log.Printf("event: failed to publish to %s: %v", subject, err)
		}
	}()
}

func (p *Publisher) Close() {
	if p == nil {
		return
	}

	if err := p.conn.Drain(); err != nil {
		p.conn.Close()
	}
}
