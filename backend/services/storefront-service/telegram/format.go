package telegram

import (
	"fmt"
	"html"
	"strconv"
	"strings"
	"time"

	"github.com/kartikeyan-sudo/better-bite-Grocery-ecom/backend/services/storefront-service/models"
)

const orderDateLayout = "2/1/2006, 3:04:05 pm"
const periodDateLayout = "2/1/2006"

var statusEmoji = map[string]string{
	models.StatusPending:    "🟡",
	models.StatusProcessing: "🔵",
	models.StatusShipped:    "🟣",
	models.StatusDelivered:  "🟢",
	models.StatusCancelled:  "🔴",
}

func emojiFor(status string) string {
	if e, ok := statusEmoji[status]; ok {
		return e
	}
	return "⚪"
}

// amount renders a rupee value without trailing zeros, so 300 prints as "300"
// and 12.5 as "12.5".
func amount(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func orDefault(s, def string) string {
	if strings.TrimSpace(s) == "" {
		return def
	}
	return s
}

var esc = html.EscapeString

// FormatNewOrder renders the full order card posted when an order is placed
// and re-rendered after every chat-driven status change.
func FormatNewOrder(order *models.Order, customer models.Customer, loc *time.Location) string {
	var b strings.Builder

	b.WriteString("🛒 <b>NEW ORDER RECEIVED!</b>\n\n")
	fmt.Fprintf(&b, "📋 Order ID: <code>%s</code>\n", order.ID.Hex())
	fmt.Fprintf(&b, "%s Status: <b>%s</b>\n\n", emojiFor(order.Status), esc(order.Status))

	fmt.Fprintf(&b, "👤 Customer: %s\n", esc(orDefault(customer.Name, "Unknown")))
	fmt.Fprintf(&b, "📧 Email: %s\n\n", esc(orDefault(customer.Email, "N/A")))

	b.WriteString("📦 <b>Items:</b>\n")
	for _, item := range order.Items {
		fmt.Fprintf(&b, "  • %s x%d - ₹%s\n", esc(item.Name), item.Quantity, amount(item.Subtotal()))
	}
	b.WriteString("\n")

	fmt.Fprintf(&b, "💰 <b>Total: ₹%s</b>\n", amount(order.Total))
	fmt.Fprintf(&b, "🚚 <b>Delivery Charges:</b> ₹%s\n\n", amount(order.DeliveryCharges))

	if order.DeliveryBoy != nil && order.DeliveryBoy.Name != "" {
		fmt.Fprintf(&b, "🧑‍💼 <b>Delivery Boy:</b> %s (%s)\n",
			esc(order.DeliveryBoy.Name), esc(orDefault(order.DeliveryBoy.Contact, "N/A")))
		if order.DeliveryWindow != "" {
			fmt.Fprintf(&b, "⏰ <b>Delivery Time:</b> %s\n", esc(order.DeliveryWindow))
		}
		b.WriteString("\n")
	}

	addr := order.ShippingAddress
	b.WriteString("📍 <b>Shipping Address:</b>\n")
	fmt.Fprintf(&b, "%s\n%s\n%s\n", esc(addr.FullName), esc(addr.Phone), esc(addr.Address))
	fmt.Fprintf(&b, "%s, %s - %s\n\n", esc(addr.City), esc(addr.State), esc(addr.Pincode))

	if order.CancellationReason != "" {
		fmt.Fprintf(&b, "❌ <b>Cancellation Reason:</b> %s\n\n", esc(order.CancellationReason))
	}

	fmt.Fprintf(&b, "📅 Order Date: %s", order.OrderDate.In(loc).Format(orderDateLayout))
	return b.String()
}

// FormatStatusUpdate renders the compact old → new notice.
func FormatStatusUpdate(order *models.Order, customer models.Customer, oldStatus string) string {
	return fmt.Sprintf("📝 <b>ORDER STATUS UPDATED</b>\n\n"+
		"📋 Order ID: <code>%s</code>\n"+
		"👤 Customer: %s\n\n"+
		"%s %s → %s <b>%s</b>\n\n"+
		"💰 Total: ₹%s",
		order.ID.Hex(),
		esc(orDefault(customer.Name, "Unknown")),
		emojiFor(oldStatus), esc(oldStatus), emojiFor(order.Status), esc(order.Status),
		amount(order.Total),
	)
}

func formatHelp(chatID int64) string {
	return "🛒 <b>Better Bite Order Notification Bot</b>\n\n" +
		"This bot will send you notifications when new orders are placed.\n" +
		"You can update order status directly from Telegram using the buttons.\n\n" +
		"<b>Available Commands:</b>\n" +
		"/sales_daily - View today's sales\n" +
		"/sales_weekly - View this week's sales\n" +
		"/sales_monthly - View this month's sales\n" +
		"/top_products - View best-selling products\n" +
		"/top_categories - View top categories\n\n" +
		fmt.Sprintf("Your Chat ID: <code>%d</code>", chatID)
}

func formatSalesReport(r *models.SalesReport, loc *time.Location) string {
	return fmt.Sprintf("📊 <b>%s's Sales Report</b>\n\n"+
		"💰 Total Sales: ₹%.2f\n"+
		"📦 Total Orders: %d\n"+
		"📈 Avg Order Value: ₹%.2f\n\n"+
		"📅 Period: %s - %s",
		r.Period.Label(),
		r.TotalSales,
		r.TotalOrders,
		r.AvgOrderValue,
		r.From.In(loc).Format(periodDateLayout), r.To.In(loc).Format(periodDateLayout),
	)
}

func formatTopProducts(rows []models.ProductSales) string {
	if len(rows) == 0 {
		return "📦 No product sales data available yet"
	}
	entries := make([]string, len(rows))
	for i, p := range rows {
		entries[i] = fmt.Sprintf("%d. %s\n   📊 Qty: %d | 💰 Revenue: ₹%.2f", i+1, esc(p.Name), p.Quantity, p.Revenue)
	}
	return "🏆 <b>Top Selling Products</b>\n\n" + strings.Join(entries, "\n\n")
}

func formatTopCategories(rows []models.CategorySales) string {
	if len(rows) == 0 {
		return "📁 No category sales data available yet"
	}
	entries := make([]string, len(rows))
	for i, c := range rows {
		entries[i] = fmt.Sprintf("%d. %s\n   📦 Items: %d | 🛒 Orders: %d | 💰 Revenue: ₹%.2f",
			i+1, esc(c.Name), c.Quantity, c.Orders, c.Revenue)
	}
	return "📁 <b>Top Selling Categories</b>\n\n" + strings.Join(entries, "\n\n")
}
