package httpserver

import (
	"fmt"
	"net/http"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/xuri/excelize/v2"
)

// handleAdminOrdersExport streams an XLSX of orders in the requested
// date window, one row per order line.
func (s *Server) handleAdminOrdersExport(w http.ResponseWriter, r *http.Request) {
	if !s.requireAdmin(w, r) {
		return
	}
	if r.Method != http.MethodGet {
		methodNotAllowed(w)
		return
	}
	q := r.URL.Query()

	const layoutIn = "2006-01-02"
	to := time.Now()
	if ds := q.Get("to"); ds != "" {
		if t, err := time.Parse(layoutIn, ds); err == nil {
			to = t
		}
	}
	from := to.AddDate(0, 0, -29)
	if ds := q.Get("from"); ds != "" {
		if t, err := time.Parse(layoutIn, ds); err == nil {
			from = t
		}
	}
	if from.After(to) {
		from, to = to, from
	}

	orders, err := s.orders.Orders.ListInRange(r.Context(), from, to)
	if err != nil {
		writeError(w, err)
		return
	}

	f := excelize.NewFile()
	defer f.Close()
	sheet := f.GetSheetName(0)

	header := []any{"order_id", "created_at", "customer_id", "status", "payment_status", "payment_method", "product", "quantity", "unit_price", "line_total", "order_total", "city", "state", "postal_code"}
	if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
		writeError(w, err)
		return
	}

	rowN := 2
	for _, o := range orders {
		for _, it := range o.Items {
			row := []any{
				o.ID.String(),
				o.CreatedAt.Format(time.RFC3339),
				o.CustomerID.String(),
				string(o.Status),
				string(o.PaymentStatus),
				string(o.PaymentMethod),
				it.Name,
				it.Quantity,
				it.UnitPrice,
				it.UnitPrice * float64(it.Quantity),
				o.TotalAmount,
				o.ShippingAddress.City,
				o.ShippingAddress.State,
				o.ShippingAddress.PostalCode,
			}
			cell, _ := excelize.CoordinatesToCellName(1, rowN)
			if err := f.SetSheetRow(sheet, cell, &row); err != nil {
				writeError(w, err)
				return
			}
			rowN++
		}
	}

	filename := fmt.Sprintf("orders_%s_%s.xlsx", from.Format(layoutIn), to.Format(layoutIn))
	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", "attachment; filename="+filename)
	if err := f.Write(w); err != nil {
		log.Error().Err(err).Msg("orders export write")
	}
}
