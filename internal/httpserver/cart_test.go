package httpserver

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"storefront/internal/cart"
	"storefront/internal/domain"
	"github.com/gin-gonic/gin"
)

func guestCartCookie(t *testing.T, rec *httptest.ResponseRecorder) *http.Cookie {
	t.Helper()
	for _, c := range rec.Result().Cookies() {
		if c.Name == cart.GuestCartKey {
			return c
		}
	}
	return nil
}

func postJSON(router *gin.Engine, path, body string, cookies ...*http.Cookie) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	for _, c := range cookies {
		req.AddCookie(c)
	}
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestGuestCartAddSetsCookie(t *testing.T) {
	router, _, _ := newTestRouter(t)

	rec := postJSON(router, "/cart", `{"productId":"p1","quantity":2,"selectedSize":"M"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d body=%s", rec.Code, rec.Body.String())
	}
	for _, want := range []string{`"id":"p1-M"`, `"quantity":2`, `"total":20000`, `"itemCount":2`} {
		if !strings.Contains(rec.Body.String(), want) {
			t.Fatalf("body missing %s: %s", want, rec.Body.String())
		}
	}
	if guestCartCookie(t, rec) == nil {
		t.Fatal("expected a guest cart cookie to be set")
	}
}

func TestGuestCartRoundTrip(t *testing.T) {
	router, _, _ := newTestRouter(t)

	rec := postJSON(router, "/cart", `{"productId":"p1","quantity":1}`)
	cookie := guestCartCookie(t, rec)
	if cookie == nil {
		t.Fatal("expected a guest cart cookie")
	}

	rec = postJSON(router, "/cart", `{"productId":"p1","quantity":3}`, cookie)
	if rec.Code != http.StatusOK {
		t.Fatalf("second add: expected 200, got %d body=%s", rec.Code, rec.Body.String())
	}
	if !strings.Contains(rec.Body.String(), `"quantity":4`) {
		t.Fatalf("expected merged quantity 4: %s", rec.Body.String())
	}
	if strings.Count(rec.Body.String(), `"productId"`) != 1 {
		t.Fatalf("expected a single line: %s", rec.Body.String())
	}

	cookie = guestCartCookie(t, rec)
	req := httptest.NewRequest(http.MethodGet, "/cart", nil)
	req.AddCookie(cookie)
	getRec := httptest.NewRecorder()
	router.ServeHTTP(getRec, req)

	if getRec.Code != http.StatusOK {
		t.Fatalf("get: expected 200, got %d", getRec.Code)
	}
	if !strings.Contains(getRec.Body.String(), `"quantity":4`) {
		t.Fatalf("cookie did not carry the cart: %s", getRec.Body.String())
	}
}

func TestGuestCartMissingProductID(t *testing.T) {
	router, _, _ := newTestRouter(t)

	rec := postJSON(router, "/cart", `{"quantity":1}`)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d body=%s", rec.Code, rec.Body.String())
	}
}

func TestGuestCartUnknownProduct(t *testing.T) {
	router, _, _ := newTestRouter(t)

	rec := postJSON(router, "/cart", `{"productId":"ghost","quantity":1}`)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d body=%s", rec.Code, rec.Body.String())
	}
}

func TestAuthenticatedCartPersists(t *testing.T) {
	router, _, cartRepo := newTestRouter(t)

	req := httptest.NewRequest(http.MethodPost, "/cart", strings.NewReader(`{"productId":"p1","quantity":2}`))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer customer-token")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d body=%s", rec.Code, rec.Body.String())
	}
	if len(cartRepo.rows) != 1 || cartRepo.rows[0].userID != "u-customer" || cartRepo.rows[0].quantity != 2 {
		t.Fatalf("unexpected store rows: %+v", cartRepo.rows)
	}
}

func TestAuthenticatedCartClearAll(t *testing.T) {
	router, _, cartRepo := newTestRouter(t)
	_ = cartRepo.Upsert(context.Background(), "u-customer", "p1", "", 2)
	_ = cartRepo.Upsert(context.Background(), "u-customer", "p2", "", 1)

	req := httptest.NewRequest(http.MethodDelete, "/cart?clearAll=true", nil)
	req.Header.Set("Authorization", "Bearer customer-token")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d body=%s", rec.Code, rec.Body.String())
	}
	if len(cartRepo.rows) != 0 {
		t.Fatalf("expected empty store, got %+v", cartRepo.rows)
	}
	if !strings.Contains(rec.Body.String(), `"items":[]`) {
		t.Fatalf("expected empty cart body: %s", rec.Body.String())
	}
}

func TestDeleteRequiresItemIDOrClearAll(t *testing.T) {
	router, _, _ := newTestRouter(t)

	req := httptest.NewRequest(http.MethodDelete, "/cart", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestLoginMergesGuestCart(t *testing.T) {
	router, auth, cartRepo := newTestRouter(t)
	auth.loginUser = &domain.User{ID: "u-customer", Email: "c@example.com", Role: domain.RoleCustomer}
	_ = cartRepo.Upsert(context.Background(), "u-customer", "p1", "M", 1)

	rec := postJSON(router, "/cart", `{"productId":"p1","quantity":2,"selectedSize":"M"}`)
	cookie := guestCartCookie(t, rec)
	if cookie == nil {
		t.Fatal("expected a guest cart cookie")
	}

	loginRec := postJSON(router, "/auth/login", `{"email":"c@example.com","password":"secret1"}`, cookie)
	if loginRec.Code != http.StatusOK {
		t.Fatalf("login: expected 200, got %d body=%s", loginRec.Code, loginRec.Body.String())
	}

	if len(cartRepo.rows) != 1 || cartRepo.rows[0].quantity != 3 {
		t.Fatalf("expected merged quantity 3, got %+v", cartRepo.rows)
	}

	cleared := guestCartCookie(t, loginRec)
	if cleared == nil || cleared.Value != "" {
		t.Fatalf("expected the guest cart cookie to be cleared, got %+v", cleared)
	}
}

func TestAdminCartListing(t *testing.T) {
	router, _, cartRepo := newTestRouter(t)
	_ = cartRepo.Upsert(context.Background(), "u-customer", "p1", "", 2)
	_ = cartRepo.Upsert(context.Background(), "u-other", "p2", "", 1)

	req := httptest.NewRequest(http.MethodGet, "/admin/carts?userId=u-customer", nil)
	req.Header.Set("Authorization", "Bearer admin-token")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d body=%s", rec.Code, rec.Body.String())
	}
	body := rec.Body.String()
	if !strings.Contains(body, `"userId":"u-customer"`) || strings.Contains(body, `"userId":"u-other"`) {
		t.Fatalf("filter not applied: %s", body)
	}
}
