package httpserver

import (
	"net/http"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/sparkkart/storefront/internal/domain"
)

const (
	adminPageSize    = 50
	adminMaxPageSize = 200
)

func adminPaging(r *http.Request) (page, size int) {
	page = queryInt(r, "page", 1)
	size = queryInt(r, "page_size", adminPageSize)
	if size > adminMaxPageSize {
		size = adminMaxPageSize
	}
	return page, size
}

func (s *Server) handleAdminProducts(w http.ResponseWriter, r *http.Request) {
	if !s.requireAdmin(w, r) {
		return
	}
	switch r.Method {
	case http.MethodGet:
		page, size := adminPaging(r)
		f := domain.ProductFilter{
			Category:       r.URL.Query().Get("category"),
			IncludeDeleted: true,
			SortBy:         r.URL.Query().Get("sort_by"),
			Page:           page,
			PageSize:       size,
		}
		items, total, err := s.products.List(r.Context(), f)
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"items": items, "total": total, "page": f.Page})
	case http.MethodPost:
		var p domain.Product
		if !decodeJSON(w, r, &p) {
			return
		}
		if err := s.products.Create(r.Context(), &p); err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusCreated, p)
	default:
		methodNotAllowed(w)
	}
}

// handleAdminProductBySlug dispatches /api/admin/products/{slug} and the
// restore, feature and images subroutes.
func (s *Server) handleAdminProductBySlug(w http.ResponseWriter, r *http.Request) {
	if !s.requireAdmin(w, r) {
		return
	}
	rest := strings.TrimPrefix(r.URL.Path, "/api/admin/products/")

	if slug, found := strings.CutSuffix(rest, "/restore"); found {
		if r.Method != http.MethodPut {
			methodNotAllowed(w)
			return
		}
		if err := s.products.Restore(r.Context(), slug); err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]string{"status": "restored"})
		return
	}
	if slug, found := strings.CutSuffix(rest, "/feature"); found {
		if r.Method != http.MethodPut {
			methodNotAllowed(w)
			return
		}
		var req struct {
			Featured bool `json:"featured"`
		}
		if !decodeJSON(w, r, &req) {
			return
		}
		if err := s.products.SetFeatured(r.Context(), slug, req.Featured); err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]bool{"featured": req.Featured})
		return
	}
	if slug, found := strings.CutSuffix(rest, "/images"); found {
		if r.Method != http.MethodPut {
			methodNotAllowed(w)
			return
		}
		var req struct {
			Images []domain.ProductImage `json:"images"`
		}
		if !decodeJSON(w, r, &req) {
			return
		}
		p, err := s.products.GetBySlug(r.Context(), slug, true)
		if err != nil {
			writeError(w, err)
			return
		}
		if err := s.products.ReplaceImages(r.Context(), p.ID, req.Images); err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]string{"status": "updated"})
		return
	}

	slug := rest
	switch r.Method {
	case http.MethodGet:
		p, err := s.products.GetBySlug(r.Context(), slug, true)
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, p)
	case http.MethodPut:
		existing, err := s.products.GetBySlug(r.Context(), slug, true)
		if err != nil {
			writeError(w, err)
			return
		}
		var p domain.Product
		if !decodeJSON(w, r, &p) {
			return
		}
		// identity and slug are not editable through this route
		p.ID = existing.ID
		p.Slug = existing.Slug
		p.Images = existing.Images
		p.AverageRating = existing.AverageRating
		p.TotalReviews = existing.TotalReviews
		p.CreatedAt = existing.CreatedAt
		if err := s.products.Update(r.Context(), &p); err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, p)
	case http.MethodDelete:
		if err := s.products.SoftDelete(r.Context(), slug); err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
	default:
		methodNotAllowed(w)
	}
}

func (s *Server) handleAdminCategories(w http.ResponseWriter, r *http.Request) {
	if !s.requireAdmin(w, r) {
		return
	}
	switch r.Method {
	case http.MethodGet:
		items, err := s.categories.ListAll(r.Context())
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"items": items})
	case http.MethodPost:
		var c domain.Category
		if !decodeJSON(w, r, &c) {
			return
		}
		if err := s.categories.Create(r.Context(), &c); err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusCreated, c)
	default:
		methodNotAllowed(w)
	}
}

func (s *Server) handleAdminCategoryByID(w http.ResponseWriter, r *http.Request) {
	if !s.requireAdmin(w, r) {
		return
	}
	if r.Method != http.MethodPut {
		methodNotAllowed(w)
		return
	}
	rest := strings.TrimPrefix(r.URL.Path, "/api/admin/categories/")

	if raw, found := strings.CutSuffix(rest, "/activate"); found {
		s.setCategoryActive(w, r, raw, true)
		return
	}
	if raw, found := strings.CutSuffix(rest, "/deactivate"); found {
		s.setCategoryActive(w, r, raw, false)
		return
	}

	id, err := uuid.Parse(rest)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid category id"})
		return
	}
	var c domain.Category
	if !decodeJSON(w, r, &c) {
		return
	}
	c.ID = id
	if err := s.categories.Update(r.Context(), &c); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, c)
}

func (s *Server) setCategoryActive(w http.ResponseWriter, r *http.Request, raw string, active bool) {
	id, err := uuid.Parse(raw)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid category id"})
		return
	}
	if err := s.categories.SetActive(r.Context(), id, active); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"is_active": active})
}

func (s *Server) handleAdminOrders(w http.ResponseWriter, r *http.Request) {
	if !s.requireAdmin(w, r) {
		return
	}
	if r.Method != http.MethodGet {
		methodNotAllowed(w)
		return
	}
	page, size := adminPaging(r)
	f := domain.OrderFilter{
		Status:   domain.OrderStatus(r.URL.Query().Get("status")),
		Page:     page,
		PageSize: size,
	}
	items, total, err := s.orders.AdminList(r.Context(), f)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"items": items, "total": total, "page": f.Page})
}

func (s *Server) handleAdminOrderByID(w http.ResponseWriter, r *http.Request) {
	if !s.requireAdmin(w, r) {
		return
	}
	rest := strings.TrimPrefix(r.URL.Path, "/api/admin/orders/")

	if raw, found := strings.CutSuffix(rest, "/status"); found {
		if r.Method != http.MethodPut {
			methodNotAllowed(w)
			return
		}
		id, err := uuid.Parse(raw)
		if err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid order id"})
			return
		}
		var req struct {
			Status domain.OrderStatus `json:"status"`
		}
		if !decodeJSON(w, r, &req) {
			return
		}
		order, err := s.orders.UpdateStatus(r.Context(), id, req.Status)
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, order)
		return
	}

	if r.Method != http.MethodGet {
		methodNotAllowed(w)
		return
	}
	id, err := uuid.Parse(rest)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid order id"})
		return
	}
	order, err := s.orders.AdminGet(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, order)
}

func (s *Server) handleAdminSupport(w http.ResponseWriter, r *http.Request) {
	if !s.requireAdmin(w, r) {
		return
	}
	if r.Method != http.MethodGet {
		methodNotAllowed(w)
		return
	}
	page, size := adminPaging(r)
	f := domain.TicketFilter{
		Status:   domain.TicketStatus(r.URL.Query().Get("status")),
		Category: r.URL.Query().Get("category"),
		Page:     page,
		PageSize: size,
	}
	items, total, err := s.support.List(r.Context(), f)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"items": items, "total": total, "page": f.Page})
}

func (s *Server) handleAdminSupportByID(w http.ResponseWriter, r *http.Request) {
	if !s.requireAdmin(w, r) {
		return
	}
	rest := strings.TrimPrefix(r.URL.Path, "/api/admin/support/")

	if raw, found := strings.CutSuffix(rest, "/respond"); found {
		if r.Method != http.MethodPut {
			methodNotAllowed(w)
			return
		}
		id, err := uuid.Parse(raw)
		if err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid ticket id"})
			return
		}
		var req struct {
			Response string              `json:"response"`
			Status   domain.TicketStatus `json:"status"`
		}
		if !decodeJSON(w, r, &req) {
			return
		}
		ticket, err := s.support.Respond(r.Context(), id, req.Response, req.Status)
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, ticket)
		return
	}

	if r.Method != http.MethodGet {
		methodNotAllowed(w)
		return
	}
	id, err := uuid.Parse(rest)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid ticket id"})
		return
	}
	ticket, err := s.support.Get(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, ticket)
}

type topProduct struct {
	Name     string  `json:"name"`
	Quantity int     `json:"quantity"`
	Revenue  float64 `json:"revenue"`
}

type dayPoint struct {
	Day     string  `json:"day"`
	Revenue float64 `json:"revenue"`
	Orders  int     `json:"orders"`
}

// handleAdminDashboard aggregates paid orders over a date window,
// defaulting to the last 30 days.
func (s *Server) handleAdminDashboard(w http.ResponseWriter, r *http.Request) {
	if !s.requireAdmin(w, r) {
		return
	}
	if r.Method != http.MethodGet {
		methodNotAllowed(w)
		return
	}
	q := r.URL.Query()

	const layoutIn = "2006-01-02"
	var (
		to   time.Time
		from time.Time
		err  error
	)
	if ds := q.Get("to"); ds != "" {
		to, err = time.Parse(layoutIn, ds)
		if err != nil {
			to = time.Now()
		}
	} else {
		to = time.Now()
	}
	if ds := q.Get("from"); ds != "" {
		from, err = time.Parse(layoutIn, ds)
		if err != nil {
			from = to.AddDate(0, 0, -29)
		}
	} else {
		from = to.AddDate(0, 0, -29)
	}
	if from.After(to) {
		from, to = to, from
	}

	ordersAll, err := s.orders.Orders.ListInRange(r.Context(), from, to)
	if err != nil {
		writeError(w, err)
		return
	}

	var totalRevenue float64
	statusCounts := map[string]int{}
	paymentCounts := map[string]int{}
	productAgg := map[string]topProduct{}
	dayAgg := map[string]dayPoint{}
	paidOrders := 0

	for _, o := range ordersAll {
		statusCounts[string(o.Status)]++
		paymentCounts[string(o.PaymentStatus)]++
		if o.Status == domain.OrderStatusCancelled {
			continue
		}
		if o.PaymentStatus != domain.PaymentStatusSuccess && o.PaymentMethod != domain.PaymentMethodCOD {
			continue
		}
		paidOrders++
		totalRevenue += o.TotalAmount

		dayKey := o.CreatedAt.Format(layoutIn)
		dp := dayAgg[dayKey]
		dp.Day = dayKey
		dp.Revenue += o.TotalAmount
		dp.Orders++
		dayAgg[dayKey] = dp

		for _, it := range o.Items {
			cur := productAgg[it.Name]
			cur.Name = it.Name
			cur.Quantity += it.Quantity
			cur.Revenue += it.UnitPrice * float64(it.Quantity)
			productAgg[it.Name] = cur
		}
	}

	avgOrderValue := 0.0
	if paidOrders > 0 {
		avgOrderValue = totalRevenue / float64(paidOrders)
	}

	top := make([]topProduct, 0, len(productAgg))
	for _, v := range productAgg {
		top = append(top, v)
	}
	sort.Slice(top, func(i, j int) bool {
		if top[i].Quantity == top[j].Quantity {
			return top[i].Revenue > top[j].Revenue
		}
		return top[i].Quantity > top[j].Quantity
	})
	if len(top) > 10 {
		top = top[:10]
	}

	dayKeys := make([]string, 0, len(dayAgg))
	for k := range dayAgg {
		dayKeys = append(dayKeys, k)
	}
	sort.Strings(dayKeys)
	series := make([]dayPoint, 0, len(dayKeys))
	for _, k := range dayKeys {
		series = append(series, dayAgg[k])
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"from":            from.Format(layoutIn),
		"to":              to.Format(layoutIn),
		"orders_count":    len(ordersAll),
		"paid_orders":     paidOrders,
		"total_revenue":   totalRevenue,
		"avg_order_value": avgOrderValue,
		"status_counts":   statusCounts,
		"payment_counts":  paymentCounts,
		"top_products":    top,
		"daily_series":    series,
	})
}
