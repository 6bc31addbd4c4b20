package telegram

import (
	"context"

	"github.com/kartikeyan-sudo/better-bite-Grocery-ecom/backend/services/storefront-service/models"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"
)

const topN = 10

var salesCommands = map[string]models.SalesPeriod{
	"sales_daily":   models.PeriodDaily,
	"sales_weekly":  models.PeriodWeekly,
	"sales_monthly": models.PeriodMonthly,
}

// handleCommand serves /start to any chat, so a new admin can discover the
// chat id, and the reports to the configured chat only.
func (g *Gateway) handleCommand(ctx context.Context, msg *tgbotapi.Message) {
	chatID := msg.Chat.ID
	command := msg.Command()

	if command == "start" {
		g.sendHTML(chatID, formatHelp(chatID))
		return
	}
	if chatID != g.chatID {
		g.logger.Debug("Ignoring command from unknown chat", zap.Int64("chat_id", chatID), zap.String("command", command))
		return
	}

	switch command {
	case "sales_daily", "sales_weekly", "sales_monthly":
		report, err := g.deps.Reports.Sales(ctx, salesCommands[command])
		if err != nil {
			g.logger.Error("Sales report failed", zap.String("command", command), zap.Error(err))
			g.sendHTML(chatID, "❌ Error generating sales report")
			return
		}
		g.sendHTML(chatID, formatSalesReport(report, g.loc))
	case "top_products":
		rows, err := g.deps.Reports.TopProducts(ctx, topN)
		if err != nil {
			g.logger.Error("Top products report failed", zap.Error(err))
			g.sendHTML(chatID, "❌ Error generating top products report")
			return
		}
		g.sendHTML(chatID, formatTopProducts(rows))
	case "top_categories":
		rows, err := g.deps.Reports.TopCategories(ctx, topN)
		if err != nil {
			g.logger.Error("Top categories report failed", zap.Error(err))
			g.sendHTML(chatID, "❌ Error generating top categories report")
			return
		}
		g.sendHTML(chatID, formatTopCategories(rows))
	}
}

func (g *Gateway) sendHTML(chatID int64, text string) {
	msg := tgbotapi.NewMessage(chatID, text)
	msg.ParseMode = tgbotapi.ModeHTML
	g.send(msg)
}
