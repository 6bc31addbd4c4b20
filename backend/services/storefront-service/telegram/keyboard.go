package telegram

import (
	"errors"
	"strings"

	"github.com/kartikeyan-sudo/better-bite-Grocery-ecom/backend/services/storefront-service/models"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

const (
	callbackPrefix = "status"
	buttonsPerRow  = 2
)

var errInvalidCallback = errors.New("invalid status callback")

// CallbackData encodes a status selection as status_<orderId>_<status>.
func CallbackData(orderID, status string) string {
	return callbackPrefix + "_" + orderID + "_" + status
}

// ParseStatusCallback decodes CallbackData. The status must be one of the
// order statuses.
func ParseStatusCallback(data string) (orderID, status string, err error) {
	parts := strings.SplitN(data, "_", 3)
	if len(parts) != 3 || parts[0] != callbackPrefix || parts[1] == "" {
		return "", "", errInvalidCallback
	}
	if !models.IsValidStatus(parts[2]) {
		return "", "", errInvalidCallback
	}
	return parts[1], parts[2], nil
}

// StatusKeyboard lays out one button per status, two per row, marking the
// current one.
func StatusKeyboard(orderID, current string) tgbotapi.InlineKeyboardMarkup {
	var rows [][]tgbotapi.InlineKeyboardButton
	for i := 0; i < len(models.OrderStatuses); i += buttonsPerRow {
		end := i + buttonsPerRow
		if end > len(models.OrderStatuses) {
			end = len(models.OrderStatuses)
		}
		var row []tgbotapi.InlineKeyboardButton
		for _, status := range models.OrderStatuses[i:end] {
			mark := ""
			if status == current {
				mark = "✅"
			}
			row = append(row, tgbotapi.NewInlineKeyboardButtonData(mark+" "+status, CallbackData(orderID, status)))
		}
		rows = append(rows, row)
	}
	return tgbotapi.NewInlineKeyboardMarkup(rows...)
}
