package http

import (
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"kharcha/internal/core"
)

// expenseRow is an expense decorated with its catalog entry for display.
// Rows referencing ids outside the catalog fall back to the raw category
// string with no icon.
type expenseRow struct {
	ID       int64
	Date     string
	Icon     string
	Category string
	Amount   float64
	Note     string
	Payment  string
}

type indexData struct {
	Expenses     []expenseRow
	Total        float64
	DailyTotal   float64
	MonthlyTotal float64
	Categories   []core.Category
	Today        string
	Lang         string
}

func handleHealth(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

func (s *Server) handleReady(w http.ResponseWriter, r *http.Request) {
	if s.pinger != nil {
		if err := s.pinger.Ping(r.Context()); err != nil {
			slog.ErrorContext(r.Context(), "Readiness check failed", "error", err)
			http.Error(w, "storage unavailable", http.StatusServiceUnavailable)
			return
		}
	}
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ready"))
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	if r.Method != http.MethodGet && r.Method != http.MethodHead {
		w.Header().Set("Allow", "GET")
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	if s.templates == nil {
		slog.ErrorContext(r.Context(), "Templates not loaded", "url", r.URL.Path)
		http.Error(w, "templates not loaded", http.StatusInternalServerError)
		return
	}

	today := core.Today()

	expenses, err := s.lister.ListExpenses(r.Context())
	if err != nil {
		slog.ErrorContext(r.Context(), "List expenses error", "error", err)
		http.Error(w, "failed to load expenses", http.StatusInternalServerError)
		return
	}

	total, err := s.totals.TotalAll(r.Context())
	if err != nil {
		slog.ErrorContext(r.Context(), "Total error", "error", err)
		http.Error(w, "failed to load totals", http.StatusInternalServerError)
		return
	}
	dailyTotal, err := s.totals.TotalForDate(r.Context(), today)
	if err != nil {
		slog.ErrorContext(r.Context(), "Daily total error", "error", err, "date", today.ISO())
		http.Error(w, "failed to load totals", http.StatusInternalServerError)
		return
	}
	monthlyTotal, err := s.totals.TotalForMonth(r.Context(), today)
	if err != nil {
		slog.ErrorContext(r.Context(), "Monthly total error", "error", err, "month", today.YearMonth())
		http.Error(w, "failed to load totals", http.StatusInternalServerError)
		return
	}

	data := indexData{
		Total:        total,
		DailyTotal:   dailyTotal,
		MonthlyTotal: monthlyTotal,
		Categories:   core.Catalog(),
		Today:        today.ISO(),
		Lang:         s.lang,
	}
	for _, e := range expenses {
		row := expenseRow{
			ID:       e.ID,
			Date:     e.Date.ISO(),
			Category: e.Category,
			Amount:   e.Amount,
			Note:     e.Note,
			Payment:  e.Payment,
		}
		if cat, ok := core.CategoryByID(e.Category); ok {
			row.Icon = cat.Icon
			row.Category = cat.Name(s.lang)
		}
		data.Expenses = append(data.Expenses, row)
	}

	if err := s.templates.ExecuteTemplate(w, "index.html", data); err != nil {
		slog.ErrorContext(r.Context(), "Index template execution failed", "error", err, "template", "index.html")
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

func (s *Server) handleAddExpense(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", "POST")
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	r.Body = http.MaxBytesReader(w, r.Body, 1<<20)
	if err := r.ParseForm(); err != nil {
		slog.ErrorContext(r.Context(), "Parse form error", "error", err, "method", r.Method, "url", r.URL.Path)
		http.Error(w, "invalid form data", http.StatusBadRequest)
		return
	}

	date := core.Today()
	if v := strings.TrimSpace(r.Form.Get("date")); v != "" {
		if d, err := parseDate(v); err == nil {
			date = d
		}
	}

	category := sanitizeInput(r.Form.Get("category"))
	note := sanitizeInput(r.Form.Get("note"))
	payment := sanitizeInput(r.Form.Get("payment"))

	// Unparseable amounts coerce to 0 and fail the positive check below.
	amount := core.ParseAmount(r.Form.Get("amount"))

	if category == "" || amount <= 0 {
		http.Error(w, "Category and positive amount required", http.StatusBadRequest)
		return
	}

	exp := core.Expense{
		Date:     date,
		Category: category,
		Amount:   amount,
		Note:     note,
		Payment:  payment,
	}
	if err := exp.Validate(); err != nil {
		http.Error(w, "Category and positive amount required", http.StatusBadRequest)
		return
	}

	id, err := s.writer.Append(r.Context(), exp)
	if err != nil {
		slog.ErrorContext(r.Context(), "Expense append error", "error", err, "category", exp.Category, "amount", exp.Amount)
		http.Error(w, "failed to save expense", http.StatusInternalServerError)
		return
	}

	slog.InfoContext(r.Context(), "Expense created", "id", id, "category", exp.Category, "amount", exp.Amount, "date", exp.Date.ISO())
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (s *Server) handleDeleteExpense(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", "POST")
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		http.NotFound(w, r)
		return
	}

	// Deleting an id that was never assigned (or already deleted) is fine.
	if err := s.writer.Delete(r.Context(), id); err != nil {
		slog.ErrorContext(r.Context(), "Expense delete error", "error", err, "id", id)
		http.Error(w, "failed to delete expense", http.StatusInternalServerError)
		return
	}

	http.Redirect(w, r, "/", http.StatusSeeOther)
}
