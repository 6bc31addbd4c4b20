package telegram

import (
	"context"
	"errors"
	"sync"

	"github.com/kartikeyan-sudo/better-bite-Grocery-ecom/backend/services/storefront-service/models"
	"github.com/kartikeyan-sudo/better-bite-Grocery-ecom/backend/services/storefront-service/repository"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// ---- fake bot ----

type fakeBot struct {
	mu       sync.Mutex
	nextID   int
	sent     []tgbotapi.Chattable
	requests []tgbotapi.Chattable
	updates  chan tgbotapi.Update
	stopped  bool
	sendErr  error
}

func newFakeBot() *fakeBot {
	return &fakeBot{nextID: 100, updates: make(chan tgbotapi.Update, 10)}
}

func (b *fakeBot) Send(c tgbotapi.Chattable) (tgbotapi.Message, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.sendErr != nil {
		return tgbotapi.Message{}, b.sendErr
	}
	b.nextID++
	b.sent = append(b.sent, c)
	return tgbotapi.Message{MessageID: b.nextID}, nil
}

func (b *fakeBot) Request(c tgbotapi.Chattable) (*tgbotapi.APIResponse, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.requests = append(b.requests, c)
	return &tgbotapi.APIResponse{Ok: true}, nil
}

func (b *fakeBot) GetUpdatesChan(tgbotapi.UpdateConfig) tgbotapi.UpdatesChannel {
	return b.updates
}

func (b *fakeBot) StopReceivingUpdates() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.stopped = true
}

// messages returns the plain messages sent so far.
func (b *fakeBot) messages() []tgbotapi.MessageConfig {
	b.mu.Lock()
	defer b.mu.Unlock()
	var out []tgbotapi.MessageConfig
	for _, c := range b.sent {
		if m, ok := c.(tgbotapi.MessageConfig); ok {
			out = append(out, m)
		}
	}
	return out
}

func (b *fakeBot) lastMessage() tgbotapi.MessageConfig {
	msgs := b.messages()
	if len(msgs) == 0 {
		return tgbotapi.MessageConfig{}
	}
	return msgs[len(msgs)-1]
}

func (b *fakeBot) edits() []tgbotapi.EditMessageTextConfig {
	b.mu.Lock()
	defer b.mu.Unlock()
	var out []tgbotapi.EditMessageTextConfig
	for _, c := range b.sent {
		if e, ok := c.(tgbotapi.EditMessageTextConfig); ok {
			out = append(out, e)
		}
	}
	return out
}

func (b *fakeBot) lastAnswer() tgbotapi.CallbackConfig {
	b.mu.Lock()
	defer b.mu.Unlock()
	for i := len(b.requests) - 1; i >= 0; i-- {
		if cb, ok := b.requests[i].(tgbotapi.CallbackConfig); ok {
			return cb
		}
	}
	return tgbotapi.CallbackConfig{}
}

func (b *fakeBot) lastID() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.nextID
}

// ---- fake stores ----

type fakeOrders struct {
	mu       sync.Mutex
	orders   map[string]models.Order
	applyErr error
	findErr  error
}

func newFakeOrders(orders ...models.Order) *fakeOrders {
	f := &fakeOrders{orders: map[string]models.Order{}}
	for _, o := range orders {
		f.orders[o.ID.Hex()] = o
	}
	return f
}

func (f *fakeOrders) FindByID(_ context.Context, id string) (*models.Order, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.findErr != nil {
		return nil, f.findErr
	}
	o, ok := f.orders[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &o, nil
}

func (f *fakeOrders) ApplyStatusChange(_ context.Context, id string, change models.StatusChange) (*models.Order, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.applyErr != nil {
		return nil, f.applyErr
	}
	o, ok := f.orders[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	o.Status = change.Status
	if change.DeliveryBoy != nil {
		o.DeliveryBoy = change.DeliveryBoy
	}
	if change.DeliveryWindow != "" {
		o.DeliveryWindow = change.DeliveryWindow
	}
	if change.EstimatedDelivery != nil {
		o.EstimatedDelivery = change.EstimatedDelivery
	}
	if change.CancellationReason != "" {
		o.CancellationReason = change.CancellationReason
	}
	f.orders[id] = o
	return &o, nil
}

func (f *fakeOrders) get(id string) models.Order {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.orders[id]
}

type fakeUsers map[string]models.User

func (f fakeUsers) FindByID(_ context.Context, id string) (*models.User, error) {
	u, ok := f[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &u, nil
}

type fakeReports struct {
	sales      *models.SalesReport
	products   []models.ProductSales
	categories []models.CategorySales
	err        error
	periods    []models.SalesPeriod
}

func (f *fakeReports) Sales(_ context.Context, period models.SalesPeriod) (*models.SalesReport, error) {
	f.periods = append(f.periods, period)
	if f.err != nil {
		return nil, f.err
	}
	return f.sales, nil
}

func (f *fakeReports) TopProducts(context.Context, int) ([]models.ProductSales, error) {
	return f.products, f.err
}

func (f *fakeReports) TopCategories(context.Context, int) ([]models.CategorySales, error) {
	return f.categories, f.err
}

type fakeEvents struct {
	mu     sync.Mutex
	events []models.OrderEvent
}

func (f *fakeEvents) Publish(_ context.Context, evt models.OrderEvent) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.events = append(f.events, evt)
	return nil
}

var errBoom = errors.New("boom")
