package telegram

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/kartikeyan-sudo/better-bite-Grocery-ecom/backend/services/storefront-service/models"
	"github.com/kartikeyan-sudo/better-bite-Grocery-ecom/backend/services/storefront-service/repository"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"
)

const (
	promptName   = "🚚 Please reply with the delivery boy name:"
	promptPhone  = "📱 Please reply with the delivery boy phone number:"
	promptTime   = "⏰ Please reply with the expected delivery time (e.g. 5:30 PM):"
	promptReason = "❌ Please reply with the cancellation reason for this order:"

	answerNotFound = "Order not found!"
	answerFailed   = "Error updating order status"
	answerInvalid  = "Invalid command"

	replyAmbiguous = "⚠️ Several orders are waiting for details. Please reply directly to the prompt message."
	handlerTimeout = 30 * time.Second
)

// OrderStore is the order persistence the gateway reads and writes.
type OrderStore interface {
	FindByID(ctx context.Context, id string) (*models.Order, error)
	ApplyStatusChange(ctx context.Context, id string, change models.StatusChange) (*models.Order, error)
}

// UserLookup resolves order owners for the order card.
type UserLookup interface {
	FindByID(ctx context.Context, id string) (*models.User, error)
}

// Reports backs the reporting commands.
type Reports interface {
	Sales(ctx context.Context, period models.SalesPeriod) (*models.SalesReport, error)
	TopProducts(ctx context.Context, limit int) ([]models.ProductSales, error)
	TopCategories(ctx context.Context, limit int) ([]models.CategorySales, error)
}

// EventPublisher receives status changes made from the chat.
type EventPublisher interface {
	Publish(ctx context.Context, evt models.OrderEvent) error
}

// Deps are the collaborators of a Gateway. Events may be nil.
type Deps struct {
	Orders  OrderStore
	Users   UserLookup
	Reports Reports
	Events  EventPublisher
	Logger  *zap.Logger
}

// Gateway posts order cards to the admin chat and applies status changes
// chosen from their buttons. Updates are handled by a single goroutine.
type Gateway struct {
	bot     BotAPI
	chatID  int64
	polling bool
	loc     *time.Location
	deps    Deps
	logger  *zap.Logger
	convs   *conversations
	now     func() time.Time

	mu      sync.Mutex
	cancel  context.CancelFunc
	done    chan struct{}
	started bool
}

func NewGateway(bot BotAPI, cfg Config, deps Deps) *Gateway {
	loc := cfg.Location
	if loc == nil {
		loc = time.UTC
	}
	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	g := &Gateway{
		bot:     bot,
		chatID:  cfg.ChatID,
		polling: cfg.Polling,
		loc:     loc,
		deps:    deps,
		logger:  logger.With(zap.String("component", "telegram")),
		now:     time.Now,
	}
	g.convs = newConversations(cfg.ConversationTTL, g.onExpire)
	return g
}

// Start begins consuming updates when polling is enabled. It returns
// immediately; Stop ends the loop.
func (g *Gateway) Start(ctx context.Context) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.started {
		return errors.New("telegram gateway already started")
	}
	g.started = true
	if !g.polling {
		g.logger.Info("Telegram polling disabled, sending notifications only")
		return nil
	}

	cfg := tgbotapi.NewUpdate(0)
	cfg.Timeout = 30
	updates := g.bot.GetUpdatesChan(cfg)

	loopCtx, cancel := context.WithCancel(ctx)
	g.cancel = cancel
	g.done = make(chan struct{})
	go g.run(loopCtx, updates)

	g.logger.Info("Telegram update loop started")
	return nil
}

// Stop ends the update loop, waits for the in-flight update to finish and
// drops pending conversations.
func (g *Gateway) Stop() {
	g.mu.Lock()
	cancel, done := g.cancel, g.done
	g.cancel, g.done = nil, nil
	g.mu.Unlock()

	if cancel != nil {
		cancel()
		g.bot.StopReceivingUpdates()
		<-done
	}
	g.convs.close()
	g.logger.Info("Telegram gateway stopped")
}

func (g *Gateway) run(ctx context.Context, updates tgbotapi.UpdatesChannel) {
	defer close(g.done)
	for {
		select {
		case <-ctx.Done():
			return
		case update, ok := <-updates:
			if !ok {
				return
			}
			g.handleUpdate(ctx, update)
		}
	}
}

func (g *Gateway) handleUpdate(ctx context.Context, update tgbotapi.Update) {
	ctx, cancel := context.WithTimeout(ctx, handlerTimeout)
	defer cancel()

	defer func() {
		if r := recover(); r != nil {
			g.logger.Error("Telegram update handler panicked", zap.Any("panic", r), zap.Int("update_id", update.UpdateID))
		}
	}()

	switch {
	case update.CallbackQuery != nil:
		g.handleCallback(ctx, update.CallbackQuery)
	case update.Message != nil:
		g.handleMessage(ctx, update.Message)
	}
}

// OrderCreated posts the order card with status buttons.
func (g *Gateway) OrderCreated(ctx context.Context, order *models.Order, customer models.Customer) error {
	msg := tgbotapi.NewMessage(g.chatID, FormatNewOrder(order, customer, g.loc))
	msg.ParseMode = tgbotapi.ModeHTML
	msg.ReplyMarkup = StatusKeyboard(order.ID.Hex(), order.Status)
	if _, err := g.bot.Send(msg); err != nil {
		return fmt.Errorf("send order notification: %w", err)
	}
	g.logger.Info("Order notification sent", zap.String("order_id", order.ID.Hex()))
	return nil
}

// StatusChanged posts the compact old → new notice.
func (g *Gateway) StatusChanged(ctx context.Context, order *models.Order, customer models.Customer, oldStatus string) error {
	msg := tgbotapi.NewMessage(g.chatID, FormatStatusUpdate(order, customer, oldStatus))
	msg.ParseMode = tgbotapi.ModeHTML
	if _, err := g.bot.Send(msg); err != nil {
		return fmt.Errorf("send status notification: %w", err)
	}
	return nil
}

func (g *Gateway) handleCallback(ctx context.Context, cq *tgbotapi.CallbackQuery) {
	if cq.Message == nil || cq.Message.Chat == nil || cq.Message.Chat.ID != g.chatID {
		g.answer(cq.ID, "", false)
		return
	}

	orderID, status, err := ParseStatusCallback(cq.Data)
	if err != nil {
		g.answer(cq.ID, answerInvalid, false)
		return
	}

	order, err := g.deps.Orders.FindByID(ctx, orderID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			g.answer(cq.ID, answerNotFound, true)
			return
		}
		g.logger.Error("Failed to load order for callback", zap.String("order_id", orderID), zap.Error(err))
		g.answer(cq.ID, answerFailed, true)
		return
	}

	messageID := cq.Message.MessageID
	switch status {
	case models.StatusShipped, models.StatusCancelled:
		conv := newConversation(order.ID.Hex(), status, messageID)
		snap := conv.snapshot()
		g.convs.begin(conv)
		g.answer(cq.ID, "", false)
		g.prompt(snap)
		g.logger.Info("Awaiting status details from chat",
			zap.String("order_id", orderID),
			zap.String("status", status),
		)
	default:
		if _, err := g.apply(ctx, order, models.StatusChange{Status: status}, messageID); err != nil {
			g.answer(cq.ID, answerFailed, true)
			return
		}
		g.answer(cq.ID, fmt.Sprintf("Order status updated to %s!", status), false)
	}
}

func (g *Gateway) handleMessage(ctx context.Context, msg *tgbotapi.Message) {
	if msg.Chat == nil {
		return
	}
	if msg.IsCommand() {
		g.handleCommand(ctx, msg)
		return
	}
	if msg.Chat.ID != g.chatID || msg.Text == "" {
		return
	}

	replyTo := 0
	if msg.ReplyToMessage != nil {
		replyTo = msg.ReplyToMessage.MessageID
	}
	res := g.convs.reply(replyTo, msg.Text)
	if !res.found {
		if res.ambiguous {
			g.send(tgbotapi.NewMessage(g.chatID, replyAmbiguous))
		}
		return
	}
	if res.conv.step != stepDone {
		g.prompt(res.conv)
		return
	}
	g.finish(ctx, res.conv)
}

// prompt asks for the field the conversation is waiting on, threaded under
// the order card.
func (g *Gateway) prompt(conv conversation) {
	var text string
	switch conv.step {
	case stepAwaitingName:
		text = promptName
	case stepAwaitingPhone:
		text = promptPhone
	case stepAwaitingTime:
		text = promptTime
	case stepAwaitingReason:
		text = promptReason
	default:
		return
	}

	msg := tgbotapi.NewMessage(g.chatID, text)
	msg.ReplyToMessageID = conv.orderMessageID
	msg.ReplyMarkup = tgbotapi.ForceReply{ForceReply: true}
	sent, err := g.bot.Send(msg)
	if err != nil {
		g.logger.Warn("Failed to send prompt", zap.String("order_id", conv.orderID), zap.Error(err))
		return
	}
	g.convs.setPrompt(conv.orderID, sent.MessageID)
}

// finish writes the captured fields together with the status.
func (g *Gateway) finish(ctx context.Context, conv conversation) {
	order, err := g.deps.Orders.FindByID(ctx, conv.orderID)
	if err != nil {
		g.logger.Error("Failed to load order to finish conversation", zap.String("order_id", conv.orderID), zap.Error(err))
		g.send(tgbotapi.NewMessage(g.chatID, "❌ "+answerFailed))
		return
	}

	change := models.StatusChange{Status: conv.target}
	var confirmation string
	switch conv.target {
	case models.StatusShipped:
		boy := conv.boy
		change.DeliveryBoy = &boy
		change.DeliveryWindow = conv.deliveryTime
		if t, ok := parseDeliveryTime(conv.deliveryTime, g.now().In(g.loc)); ok {
			change.EstimatedDelivery = &t
		}
		confirmation = fmt.Sprintf("✅ Delivery info saved:\nName: %s\nPhone: %s\nTime: %s", boy.Name, boy.Contact, conv.deliveryTime)
	case models.StatusCancelled:
		change.CancellationReason = conv.reason
		confirmation = "❌ Cancellation reason saved: " + conv.reason
	}

	if _, err := g.apply(ctx, order, change, conv.orderMessageID); err != nil {
		g.send(tgbotapi.NewMessage(g.chatID, "❌ "+answerFailed))
		return
	}
	g.send(tgbotapi.NewMessage(g.chatID, confirmation))
}

// apply persists change, re-renders the order card and publishes the event.
func (g *Gateway) apply(ctx context.Context, order *models.Order, change models.StatusChange, messageID int) (*models.Order, error) {
	orderID := order.ID.Hex()
	oldStatus := order.Status

	updated, err := g.deps.Orders.ApplyStatusChange(ctx, orderID, change)
	if err != nil {
		g.logger.Error("Failed to update order status from chat", zap.String("order_id", orderID), zap.Error(err))
		return nil, err
	}
	g.logger.Info("Order status updated from chat",
		zap.String("order_id", orderID),
		zap.String("from", oldStatus),
		zap.String("to", updated.Status),
	)

	edit := tgbotapi.NewEditMessageTextAndMarkup(g.chatID, messageID,
		FormatNewOrder(updated, g.customer(ctx, updated.UserID), g.loc),
		StatusKeyboard(orderID, updated.Status))
	edit.ParseMode = tgbotapi.ModeHTML
	g.send(edit)

	if g.deps.Events != nil && oldStatus != updated.Status {
		evt := models.NewOrderEvent(models.EventOrderStatusChanged, updated, oldStatus, g.now())
		if err := g.deps.Events.Publish(ctx, evt); err != nil {
			g.logger.Warn("Order event publish failed", zap.String("order_id", orderID), zap.Error(err))
		}
	}
	return updated, nil
}

func (g *Gateway) onExpire(conv conversation) {
	g.logger.Info("Status conversation expired",
		zap.String("order_id", conv.orderID),
		zap.String("status", conv.target),
	)
	msg := tgbotapi.NewMessage(g.chatID, fmt.Sprintf(
		"⌛ No reply received for order <code>%s</code>. The change to <b>%s</b> was not applied.",
		conv.orderID, conv.target))
	msg.ParseMode = tgbotapi.ModeHTML
	msg.ReplyToMessageID = conv.orderMessageID
	g.send(msg)
}

func (g *Gateway) customer(ctx context.Context, userID string) models.Customer {
	if g.deps.Users == nil {
		return models.Customer{}
	}
	user, err := g.deps.Users.FindByID(ctx, userID)
	if err != nil {
		return models.Customer{}
	}
	return models.Customer{Name: user.Name, Email: user.Email}
}

func (g *Gateway) answer(callbackID, text string, alert bool) {
	cb := tgbotapi.NewCallback(callbackID, text)
	if alert {
		cb = tgbotapi.NewCallbackWithAlert(callbackID, text)
	}
	if _, err := g.bot.Request(cb); err != nil {
		g.logger.Warn("Failed to answer callback", zap.Error(err))
	}
}

func (g *Gateway) send(c tgbotapi.Chattable) {
	if _, err := g.bot.Send(c); err != nil {
		g.logger.Warn("Telegram send failed", zap.Error(err))
	}
}
