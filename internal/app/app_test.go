package app

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"
	"time"

	miniredis "github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"

	"ngo-finance-backend/internal/testutil/dbtest"
	"ngo-finance-backend/pkg/id"
)

type server struct {
	t   *testing.T
	app *App
	mr  *miniredis.Miniredis
}

func newServer(t *testing.T) (*server, uint64) {
	t.Helper()
	db := dbtest.Open(t)
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })

	a := New(db, rdb, Options{IdempotencyTTL: time.Minute, SummaryTTL: time.Minute, NotifyChannel: "test"})
	p := dbtest.Project(t, db, 1, []uint64{2, 3}, "5000")
	return &server{t: t, app: a, mr: mr}, p.ID
}

type resp struct {
	code int
	body map[string]any
	raw  string
}

// do sends a request as user; mutating requests get a fresh idempotency key
// unless key is set.
func (s *server) do(method, path string, user uint64, body any, key ...string) resp {
	s.t.Helper()
	var r *bytes.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			s.t.Fatalf("marshal: %v", err)
		}
		r = bytes.NewReader(b)
	} else {
		r = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, r)
	req.Header.Set("Content-Type", "application/json")
	if user != 0 {
		req.Header.Set("X-User-Id", strconv.FormatUint(user, 10))
	}
	if method != http.MethodGet {
		k := id.NewID32()
		if len(key) > 0 {
			k = key[0]
		}
		req.Header.Set("Idempotency-Key", k)
		req.Header.Set("X-Request-At", time.Now().UTC().Format(time.RFC3339))
	}
	rec := httptest.NewRecorder()
	s.app.Echo.ServeHTTP(rec, req)

	out := resp{code: rec.Code, raw: rec.Body.String()}
	_ = json.Unmarshal(rec.Body.Bytes(), &out.body)
	return out
}

func (s *server) must(r resp, code int) resp {
	s.t.Helper()
	if r.code != code {
		s.t.Fatalf("status = %d, want %d; body=%s", r.code, code, r.raw)
	}
	return r
}

func num(v any) uint64 {
	f, _ := v.(float64)
	return uint64(f)
}

func dec(t *testing.T, v any) decimal.Decimal {
	t.Helper()
	d, err := decimal.NewFromString(fmt.Sprint(v))
	if err != nil {
		t.Fatalf("not a decimal: %v", v)
	}
	return d
}

func (s *server) approvedBudget(projectID uint64, allocated string) (budgetID, itemID uint64) {
	s.t.Helper()
	b := s.must(s.do(http.MethodPost, "/budgets", 1, map[string]any{
		"project_id":  projectID,
		"fiscal_year": 2025,
		"items":       []map[string]any{{"category": "Travel", "allocated_amount": allocated}},
	}), http.StatusCreated)
	budgetID = num(b.body["id"])
	itemID = num(b.body["items"].([]any)[0].(map[string]any)["id"])
	s.must(s.do(http.MethodPost, fmt.Sprintf("/budgets/%d/approve", budgetID), 1, nil), http.StatusOK)
	return budgetID, itemID
}

func TestHealth(t *testing.T) {
	s, _ := newServer(t)
	r := s.must(s.do(http.MethodGet, "/health", 0, nil), http.StatusOK)
	if r.body["status"] != "ok" {
		t.Fatalf("body = %v", r.body)
	}
}

func TestExpenseApprovalOverHTTP(t *testing.T) {
	s, projectID := newServer(t)
	budgetID, itemID := s.approvedBudget(projectID, "1000")

	e := s.must(s.do(http.MethodPost, "/expenses", 5, map[string]any{
		"project_id":     projectID,
		"budget_item_id": itemID,
		"description":    "Field visit fuel",
		"amount":         "250.00",
	}), http.StatusCreated)
	if !strings.HasPrefix(e.body["expense_number"].(string), "EXP-") || e.body["status"] != "Draft" {
		t.Fatalf("created = %v", e.body)
	}
	path := fmt.Sprintf("/expenses/%d", num(e.body["id"]))

	s.must(s.do(http.MethodPost, path+"/approve", 3, nil), http.StatusConflict)

	s.must(s.do(http.MethodPost, path+"/submit", 5, nil), http.StatusOK)
	s.must(s.do(http.MethodPost, path+"/review", 2, map[string]any{"approve": true}), http.StatusOK)
	got := s.must(s.do(http.MethodPost, path+"/approve", 3, map[string]any{"comments": "ok"}), http.StatusOK)
	if got.body["status"] != "Approved" {
		t.Fatalf("status = %v", got.body["status"])
	}

	sum := s.must(s.do(http.MethodGet, fmt.Sprintf("/budgets/%d/summary", budgetID), 0, nil), http.StatusOK)
	if !dec(t, sum.body["total_spent"]).Equal(decimal.RequireFromString("250")) {
		t.Fatalf("summary = %v", sum.body)
	}

	var trail []map[string]any
	r := s.must(s.do(http.MethodGet, path+"/approvals", 0, nil), http.StatusOK)
	if err := json.Unmarshal([]byte(r.raw), &trail); err != nil || len(trail) != 2 {
		t.Fatalf("trail = %s", r.raw)
	}

	s.must(s.do(http.MethodPost, path+"/reject", 3, map[string]any{"reason": "late"}), http.StatusConflict)
}

func TestErrorMapping(t *testing.T) {
	s, projectID := newServer(t)

	r := s.must(s.do(http.MethodPost, "/expenses", 5, map[string]any{
		"project_id": projectID, "description": "x", "amount": "0",
	}), http.StatusUnprocessableEntity)
	if r.body["error"] != "validation failed" || r.body["details"] == nil {
		t.Fatalf("validation body = %s", r.raw)
	}

	s.must(s.do(http.MethodPost, "/expenses", 0, map[string]any{"project_id": projectID}), http.StatusBadRequest)
	s.must(s.do(http.MethodGet, "/expenses/999", 0, nil), http.StatusNotFound)
	s.must(s.do(http.MethodGet, "/expenses/abc", 0, nil), http.StatusBadRequest)

	// budget above donor funding
	s.must(s.do(http.MethodPost, "/budgets", 1, map[string]any{
		"project_id":  projectID,
		"fiscal_year": 2025,
		"items":       []map[string]any{{"category": "Everything", "allocated_amount": "5000.01"}},
	}), http.StatusUnprocessableEntity)
}

func TestCashOverHTTP(t *testing.T) {
	s, projectID := newServer(t)

	a := s.must(s.do(http.MethodPost, "/bank-accounts", 1, map[string]any{
		"account_name": "Ops", "account_number": "ACC-1", "opening_balance": "100",
	}), http.StatusCreated)
	accountID := num(a.body["id"])

	s.must(s.do(http.MethodPost, "/cash-flows/outflows", 1, map[string]any{
		"bank_account_id": accountID, "amount": "500", "project_id": projectID,
	}), http.StatusUnprocessableEntity)

	in := s.must(s.do(http.MethodPost, "/cash-flows/inflows", 1, map[string]any{
		"bank_account_id": accountID, "amount": "50.25", "description": "grant tranche",
	}), http.StatusCreated)
	if !dec(t, in.body["balance_after"]).Equal(decimal.RequireFromString("150.25")) {
		t.Fatalf("inflow = %s", in.raw)
	}

	cf := fmt.Sprintf("/cash-flows/%d", num(in.body["id"]))
	s.must(s.do(http.MethodPost, cf+"/reconcile", 1, nil), http.StatusOK)
	s.must(s.do(http.MethodPost, cf+"/reconcile", 1, nil), http.StatusConflict)

	proj := fmt.Sprintf("/bank-accounts/%d/projection", accountID)
	s.must(s.do(http.MethodGet, proj+"?months=3", 0, nil), http.StatusOK)
	s.must(s.do(http.MethodGet, proj+"?months=0", 0, nil), http.StatusUnprocessableEntity)
	s.must(s.do(http.MethodGet, proj+"?months=abc", 0, nil), http.StatusBadRequest)
}

func TestPurchaseOrderOverHTTP(t *testing.T) {
	s, projectID := newServer(t)

	v := s.must(s.do(http.MethodPost, "/vendors", 1, map[string]any{"name": "Acme"}), http.StatusCreated)
	po := s.must(s.do(http.MethodPost, "/purchase-orders", 1, map[string]any{
		"project_id": projectID,
		"vendor_id":  num(v.body["id"]),
		"submit":     true,
		"items": []map[string]any{
			{"description": "Jerrycans", "quantity": "5", "unit_price": "10"},
			{"description": "Filters", "quantity": "3", "unit_price": "20"},
		},
	}), http.StatusCreated)
	if po.body["status"] != "Pending" || !dec(t, po.body["total_amount"]).Equal(decimal.RequireFromString("126.5")) {
		t.Fatalf("po = %s", po.raw)
	}
	items := po.body["items"].([]any)
	item1 := num(items[0].(map[string]any)["id"])
	item2 := num(items[1].(map[string]any)["id"])
	path := fmt.Sprintf("/purchase-orders/%d", num(po.body["id"]))

	s.must(s.do(http.MethodPost, path+"/approve", 2, nil), http.StatusOK)
	s.must(s.do(http.MethodPost, path+"/receive", 3, map[string]any{
		"items": []map[string]any{{"item_id": item2, "quantity": "4"}},
	}), http.StatusUnprocessableEntity)
	got := s.must(s.do(http.MethodPost, path+"/receive", 3, map[string]any{
		"items": []map[string]any{{"item_id": item1, "quantity": "5"}, {"item_id": item2, "quantity": "3"}},
	}), http.StatusOK)
	if got.body["status"] != "Received" {
		t.Fatalf("status = %v", got.body["status"])
	}
	s.must(s.do(http.MethodPost, path+"/cancel", 1, map[string]any{}), http.StatusUnprocessableEntity)
	s.must(s.do(http.MethodPost, path+"/complete", 2, nil), http.StatusOK)
}

func TestIdempotentReplay(t *testing.T) {
	s, _ := newServer(t)
	key := id.NewID32()

	first := s.must(s.do(http.MethodPost, "/vendors", 1, map[string]any{"name": "Acme"}, key), http.StatusCreated)
	again := s.must(s.do(http.MethodPost, "/vendors", 1, map[string]any{"name": "Acme"}, key), http.StatusCreated)
	if first.raw != again.raw {
		t.Fatalf("replay differs:\n%s\n%s", first.raw, again.raw)
	}
	s.must(s.do(http.MethodPost, "/vendors", 1, map[string]any{"name": "Other"}, key), http.StatusConflict)

	next := s.must(s.do(http.MethodPost, "/vendors", 1, map[string]any{"name": "Beta"}), http.StatusCreated)
	if !strings.HasSuffix(next.body["vendor_number"].(string), "-0002") {
		t.Fatalf("replay must not consume a number, got %v", next.body["vendor_number"])
	}
}

func TestNotificationsPublished(t *testing.T) {
	s, projectID := newServer(t)
	budgetID, itemID := s.approvedBudget(projectID, "100")

	e := s.must(s.do(http.MethodPost, "/expenses", 5, map[string]any{
		"project_id": projectID, "budget_item_id": itemID, "description": "Hotel", "amount": "100",
	}), http.StatusCreated)
	path := fmt.Sprintf("/expenses/%d", num(e.body["id"]))
	s.must(s.do(http.MethodPost, path+"/submit", 5, nil), http.StatusOK)
	s.must(s.do(http.MethodPost, path+"/review", 2, map[string]any{"approve": true}), http.StatusOK)
	s.must(s.do(http.MethodPost, path+"/approve", 3, nil), http.StatusOK)

	// 100% utilization: all three thresholds are marked
	for _, th := range []int{50, 90, 100} {
		if !s.mr.Exists(fmt.Sprintf("budget_alert:%d:%d", budgetID, th)) {
			t.Fatalf("marker for %d%% missing", th)
		}
	}
}
