package services

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/kartikeyan-sudo/better-bite-Grocery-ecom/backend/services/storefront-service/models"

	"github.com/tealeg/xlsx"
)

const exportTimeLayout = "2006-01-02 15:04:05"

var orderExportHeaders = []string{
	"Order ID", "User ID", "Customer", "Phone", "Address", "City", "State", "Pincode",
	"Items", "Item Count", "Delivery Charges", "Total", "Status",
	"Delivery Boy", "Delivery Contact", "Delivery Time", "Estimated Delivery",
	"Cancellation Reason", "Order Date",
}

// WriteOrdersWorkbook renders orders as a single-sheet spreadsheet, one row
// per order, times in loc.
func WriteOrdersWorkbook(w io.Writer, orders []models.Order, loc *time.Location) error {
	file := xlsx.NewFile()
	sheet, err := file.AddSheet("Orders")
	if err != nil {
		return fmt.Errorf("failed to create sheet: %w", err)
	}

	header := sheet.AddRow()
	for _, h := range orderExportHeaders {
		header.AddCell().SetValue(h)
	}

	for _, o := range orders {
		row := sheet.AddRow()
		addr := o.ShippingAddress

		items := make([]string, 0, len(o.Items))
		count := 0
		for _, item := range o.Items {
			items = append(items, fmt.Sprintf("%s x%d", item.Name, item.Quantity))
			count += item.Quantity
		}

		var boyName, boyContact string
		if o.DeliveryBoy != nil {
			boyName, boyContact = o.DeliveryBoy.Name, o.DeliveryBoy.Contact
		}
		var estimate string
		if o.EstimatedDelivery != nil {
			estimate = o.EstimatedDelivery.In(loc).Format(exportTimeLayout)
		}

		row.AddCell().SetValue(o.ID.Hex())
		row.AddCell().SetValue(o.UserID)
		row.AddCell().SetValue(addr.FullName)
		row.AddCell().SetValue(addr.Phone)
		row.AddCell().SetValue(addr.Address)
		row.AddCell().SetValue(addr.City)
		row.AddCell().SetValue(addr.State)
		row.AddCell().SetValue(addr.Pincode)
		row.AddCell().SetValue(strings.Join(items, ", "))
		row.AddCell().SetValue(count)
		row.AddCell().SetValue(o.DeliveryCharges)
		row.AddCell().SetValue(o.Total)
		row.AddCell().SetValue(o.Status)
		row.AddCell().SetValue(boyName)
		row.AddCell().SetValue(boyContact)
		row.AddCell().SetValue(o.DeliveryWindow)
		row.AddCell().SetValue(estimate)
		row.AddCell().SetValue(o.CancellationReason)
		row.AddCell().SetValue(o.OrderDate.In(loc).Format(exportTimeLayout))
	}

	return file.Write(w)
}
