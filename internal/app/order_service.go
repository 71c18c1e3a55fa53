package app

import (
	"context"
	"sync"
	"time"

	"foto-orders-service/internal/domain"

	"github.com/google/uuid"
)

// DraftRepository abstracts how order drafts are stored (in-memory, Redis, etc).
type DraftRepository interface {
	GetOrCreate(draftID string) *Draft
	Get(draftID string) (*Draft, bool)
	DeleteIfIdle(draftID string)
}

// CatalogRepository loads the service/question catalog (from cache/backing store).
type CatalogRepository interface {
	GetCatalog(ctx context.Context, catalogID string) (domain.Catalog, error)
}

// OrderRepository persists submitted orders.
type OrderRepository interface {
	SaveOrders(ctx context.Context, orders []domain.Order) error
}

// OrderService contains the order intake use cases: draft lifecycle, live
// quoting, and submission.
type OrderService struct {
	drafts   DraftRepository
	catalogs CatalogRepository
	orders   OrderRepository
}

func NewOrderService(drafts DraftRepository, catalogs CatalogRepository, orders OrderRepository) *OrderService {
	return &OrderService{drafts: drafts, catalogs: catalogs, orders: orders}
}

// NewDraft is exported for infrastructure layers that need to seed drafts.
func NewDraft(id string) *Draft {
	return newDraft(id)
}

// NewDraftWithClock is test-only for deterministic timestamps.
func NewDraftWithClock(id string, now func() time.Time) *Draft {
	return newDraftWithClock(id, now)
}

// Start creates or refreshes an order draft and returns its current quote.
func (s *OrderService) Start(ctx context.Context, catalogID, draftID string) (domain.Quote, error) {
	// Preload the catalog into cache; drafts cannot start against an unknown catalog.
	catalog, err := s.catalogs.GetCatalog(ctx, catalogID)
	if err != nil {
		return domain.Quote{}, err
	}

	draft := s.drafts.GetOrCreate(draftID)
	return draft.quote(catalog), nil
}

// SelectServices replaces the draft's service selection and recomputes the
// quote. Responses to questions of a deselected service are kept in the
// draft but drop out of the quote until the service is selected again.
func (s *OrderService) SelectServices(ctx context.Context, catalogID, draftID string, serviceIDs []string) (domain.Quote, error) {
	draft, ok := s.drafts.Get(draftID)
	if !ok {
		return domain.Quote{}, domain.ErrDraftNotFound
	}

	catalog, err := s.catalogs.GetCatalog(ctx, catalogID)
	if err != nil {
		return domain.Quote{}, err
	}
	for _, id := range serviceIDs {
		if _, ok := catalog.ServiceByID(id); !ok {
			return domain.Quote{}, domain.ErrServiceNotFound
		}
	}

	return draft.selectServices(catalog, serviceIDs), nil
}

// SetResponse upserts one response into the draft and recomputes the quote.
func (s *OrderService) SetResponse(ctx context.Context, catalogID, draftID string, response domain.QuestionResponse) (domain.Quote, error) {
	if response.QuestionID == "" {
		return domain.Quote{}, domain.ErrInvalidResponse
	}

	draft, ok := s.drafts.Get(draftID)
	if !ok {
		return domain.Quote{}, domain.ErrDraftNotFound
	}

	catalog, err := s.catalogs.GetCatalog(ctx, catalogID)
	if err != nil {
		return domain.Quote{}, err
	}

	// Shape the response by the question's input kind, the same way the form
	// widgets emit values: option kinds carry an option ID, text kinds a
	// text value. Responses to unknown questions are stored as-is.
	for _, question := range catalog.Questions {
		if question.ID != response.QuestionID {
			continue
		}
		if question.InputKind.HasOptions() {
			response.TextValue = ""
		} else {
			response.OptionID = ""
		}
		break
	}

	return draft.setResponse(catalog, response), nil
}

// VisibleQuestions returns the questions to present for the draft's current
// selection, with dependency-gated questions filtered by the collected
// responses.
func (s *OrderService) VisibleQuestions(ctx context.Context, catalogID, draftID string) ([]domain.Question, error) {
	draft, ok := s.drafts.Get(draftID)
	if !ok {
		return nil, domain.ErrDraftNotFound
	}

	catalog, err := s.catalogs.GetCatalog(ctx, catalogID)
	if err != nil {
		return nil, err
	}

	serviceIDs, responses := draft.state()
	relevant := domain.QuestionsForServices(catalog.Questions, serviceIDs)
	visible := make([]domain.Question, 0, len(relevant))
	for _, question := range relevant {
		if domain.Visible(question, responses) {
			visible = append(visible, question)
		}
	}
	return visible, nil
}

// Questions returns the sorted question set for a service selection without
// needing a draft; this serves the catalog endpoint.
func (s *OrderService) Questions(ctx context.Context, catalogID string, serviceIDs []string) ([]domain.Question, error) {
	catalog, err := s.catalogs.GetCatalog(ctx, catalogID)
	if err != nil {
		return nil, err
	}
	return domain.QuestionsForServices(catalog.Questions, serviceIDs), nil
}

// Services lists the catalog's services.
func (s *OrderService) Services(ctx context.Context, catalogID string) ([]domain.Service, error) {
	catalog, err := s.catalogs.GetCatalog(ctx, catalogID)
	if err != nil {
		return nil, err
	}
	return catalog.Services, nil
}

// Quote returns the current quote for a draft.
func (s *OrderService) Quote(ctx context.Context, catalogID, draftID string) (domain.Quote, error) {
	draft, ok := s.drafts.Get(draftID)
	if !ok {
		return domain.Quote{}, domain.ErrDraftNotFound
	}
	catalog, err := s.catalogs.GetCatalog(ctx, catalogID)
	if err != nil {
		return domain.Quote{}, err
	}
	return draft.quote(catalog), nil
}

// Subscribe returns a channel that receives quote updates for a draft.
// The caller must invoke the returned cancel function to avoid leaks.
func (s *OrderService) Subscribe(ctx context.Context, catalogID, draftID string) (<-chan QuoteUpdate, func(), error) {
	draft, ok := s.drafts.Get(draftID)
	if !ok {
		return nil, nil, domain.ErrDraftNotFound
	}
	catalog, err := s.catalogs.GetCatalog(ctx, catalogID)
	if err != nil {
		return nil, nil, err
	}
	ch, cancel := draft.subscribe(catalog)
	return ch, cancel, nil
}

// Abandon drops the draft once nobody is watching it.
func (s *OrderService) Abandon(_ context.Context, draftID string) {
	draft, ok := s.drafts.Get(draftID)
	if !ok {
		return
	}
	if draft.IsIdle() {
		s.drafts.DeleteIfIdle(draftID)
	}
}

// Submit assembles and persists the orders for a draft: one per selected
// service, each with the responses that belong to it.
func (s *OrderService) Submit(ctx context.Context, catalogID, draftID string, details domain.OrderDetails) ([]domain.Order, error) {
	draft, ok := s.drafts.Get(draftID)
	if !ok {
		return nil, domain.ErrDraftNotFound
	}
	serviceIDs, responses := draft.state()
	return s.PlaceOrder(ctx, catalogID, serviceIDs, responses, details)
}

// PlaceOrder assembles and persists orders from explicit form state, without
// a live draft; this serves the plain REST submission path.
func (s *OrderService) PlaceOrder(ctx context.Context, catalogID string, serviceIDs []string, responses []domain.QuestionResponse, details domain.OrderDetails) ([]domain.Order, error) {
	if len(serviceIDs) == 0 {
		return nil, domain.ErrNoServicesSelected
	}

	catalog, err := s.catalogs.GetCatalog(ctx, catalogID)
	if err != nil {
		return nil, err
	}

	questions := domain.QuestionsForServices(catalog.Questions, serviceIDs)
	quote := domain.ComputeQuote(catalog.Services, serviceIDs, questions, responses)

	now := time.Now()
	orders := make([]domain.Order, 0, len(serviceIDs))
	for _, serviceID := range serviceIDs {
		if _, ok := catalog.ServiceByID(serviceID); !ok {
			return nil, domain.ErrServiceNotFound
		}
		orders = append(orders, domain.Order{
			ID:            uuid.NewString(),
			ServiceID:     serviceID,
			CustomerName:  details.CustomerName,
			CustomerEmail: details.CustomerEmail,
			Address:       details.Address,
			Details:       details.Details,
			PropertySize:  details.PropertySize,
			Zone:          details.Zone,
			PropertyType:  details.PropertyType,
			Responses:     domain.ResponsesForService(serviceID, questions, responses),
			TotalPrice:    quote.Total,
			CreatedAt:     now,
		})
	}

	if err := s.orders.SaveOrders(ctx, orders); err != nil {
		return nil, err
	}
	return orders, nil
}

// QuoteUpdate is the envelope pushed to quote subscribers.
type QuoteUpdate struct {
	DraftID   string       `json:"draftId"`
	Quote     domain.Quote `json:"quote"`
	UpdatedAt time.Time    `json:"updatedAt"`
}

// Draft is the in-memory state of one in-progress order form.
type Draft struct {
	id          string
	createdAt   time.Time
	now         func() time.Time
	mu          sync.RWMutex
	serviceIDs  []string
	responses   []domain.QuestionResponse
	subscribers map[chan QuoteUpdate]struct{}
}

func newDraft(id string) *Draft {
	return newDraftWithClock(id, time.Now)
}

// newDraftWithClock allows deterministic timestamps in tests.
func newDraftWithClock(id string, now func() time.Time) *Draft {
	return &Draft{
		id:          id,
		createdAt:   now(),
		now:         now,
		subscribers: make(map[chan QuoteUpdate]struct{}),
	}
}

func (d *Draft) selectServices(catalog domain.Catalog, serviceIDs []string) domain.Quote {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.serviceIDs = append([]string(nil), serviceIDs...)
	return d.broadcastLocked(catalog)
}

func (d *Draft) setResponse(catalog domain.Catalog, response domain.QuestionResponse) domain.Quote {
	d.mu.Lock()
	defer d.mu.Unlock()

	replaced := false
	for i := range d.responses {
		if d.responses[i].QuestionID == response.QuestionID {
			d.responses[i] = response
			replaced = true
			break
		}
	}
	if !replaced {
		d.responses = append(d.responses, response)
	}
	return d.broadcastLocked(catalog)
}

func (d *Draft) quote(catalog domain.Catalog) domain.Quote {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.quoteLocked(catalog)
}

// state returns copies of the selection and response collection.
func (d *Draft) state() ([]string, []domain.QuestionResponse) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return append([]string(nil), d.serviceIDs...), append([]domain.QuestionResponse(nil), d.responses...)
}

// IsIdle reports whether the draft has no remaining subscribers.
func (d *Draft) IsIdle() bool {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return len(d.subscribers) == 0
}

func (d *Draft) subscribe(catalog domain.Catalog) (<-chan QuoteUpdate, func()) {
	ch := make(chan QuoteUpdate, 8)

	d.mu.Lock()
	d.subscribers[ch] = struct{}{}
	initial := d.updateLocked(catalog)
	d.mu.Unlock()

	ch <- initial

	cancel := func() {
		d.mu.Lock()
		if _, ok := d.subscribers[ch]; ok {
			delete(d.subscribers, ch)
			close(ch)
		}
		d.mu.Unlock()
	}
	return ch, cancel
}

func (d *Draft) broadcastLocked(catalog domain.Catalog) domain.Quote {
	update := d.updateLocked(catalog)
	for ch := range d.subscribers {
		select {
		case ch <- update:
		default:
			// Drop the stale update so a slow client never blocks the broadcast.
			select {
			case <-ch:
			default:
			}
			ch <- update
		}
	}
	return update.Quote
}

func (d *Draft) updateLocked(catalog domain.Catalog) QuoteUpdate {
	return QuoteUpdate{
		DraftID:   d.id,
		Quote:     d.quoteLocked(catalog),
		UpdatedAt: d.now(),
	}
}

func (d *Draft) quoteLocked(catalog domain.Catalog) domain.Quote {
	questions := domain.QuestionsForServices(catalog.Questions, d.serviceIDs)
	return domain.ComputeQuote(catalog.Services, d.serviceIDs, questions, d.responses)
}
