package handlers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"shgledger/internal/auth"
	"shgledger/internal/models"
	"shgledger/internal/services"

	"github.com/go-chi/chi/v5"
)

func TestAddMemberSuccess(t *testing.T) {
	var recorded services.AddMemberRequest
	handler := newTestHandler(stubRegistry{
		addMemberFn: func(_ context.Context, req services.AddMemberRequest) (string, error) {
			recorded = req
			return "member-1", nil
		},
	}, stubLedger{}, stubGroupReader{}, stubLoanReader{}, stubPassbookReader{}, stubReportStore{}, stubNotificationReader{})

	body := `{"first_name":"Sita","last_name":"Pawar","mobile":"9876543210","monthly_deposit":"500"}`
	req := httptest.NewRequest(http.MethodPost, "/members", strings.NewReader(body))
	authorize(req, testToken(t, auth.RolePresident, ""))
	rr := httptest.NewRecorder()
	wrapAuth(handler, handler.AddMember).ServeHTTP(rr, req)

	if rr.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rr.Code, rr.Body.String())
	}
	if recorded.GroupID != "group-1" || recorded.MonthlyDeposit != 500 {
		t.Fatalf("unexpected add request: %+v", recorded)
	}
}

func TestAddMemberRejectsBadMobile(t *testing.T) {
	handler := newTestHandler(stubRegistry{
		addMemberFn: func(context.Context, services.AddMemberRequest) (string, error) {
			t.Fatal("registry should not be called")
			return "", nil
		},
	}, stubLedger{}, stubGroupReader{}, stubLoanReader{}, stubPassbookReader{}, stubReportStore{}, stubNotificationReader{})

	body := `{"first_name":"Sita","last_name":"Pawar","mobile":"12345","monthly_deposit":"500"}`
	req := httptest.NewRequest(http.MethodPost, "/members", strings.NewReader(body))
	authorize(req, testToken(t, auth.RolePresident, ""))
	rr := httptest.NewRecorder()
	wrapAuth(handler, handler.AddMember).ServeHTTP(rr, req)

	if rr.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rr.Code)
	}
}

func TestUpdateMemberNotFound(t *testing.T) {
	handler := newTestHandler(stubRegistry{
		updateMemberFn: func(context.Context, services.UpdateMemberRequest) error {
			return services.ErrMemberNotFound
		},
	}, stubLedger{}, stubGroupReader{}, stubLoanReader{}, stubPassbookReader{}, stubReportStore{}, stubNotificationReader{})

	body := `{"first_name":"Sita","last_name":"Pawar","mobile":"9876543210","monthly_deposit":"500"}`
	req := httptest.NewRequest(http.MethodPut, "/members/member-9", strings.NewReader(body))
	routeCtx := chi.NewRouteContext()
	routeCtx.URLParams.Add("id", "member-9")
	req = req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, routeCtx))
	authorize(req, testToken(t, auth.RolePresident, ""))
	rr := httptest.NewRecorder()
	wrapAuth(handler, handler.UpdateMember).ServeHTTP(rr, req)

	if rr.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rr.Code)
	}
}

func TestDeactivateMember(t *testing.T) {
	var gotGroup, gotMember string
	handler := newTestHandler(stubRegistry{
		deactivateFn: func(_ context.Context, groupID, memberID string) error {
			gotGroup, gotMember = groupID, memberID
			return nil
		},
	}, stubLedger{}, stubGroupReader{}, stubLoanReader{}, stubPassbookReader{}, stubReportStore{}, stubNotificationReader{})

	req := httptest.NewRequest(http.MethodPost, "/members/member-3/deactivate", nil)
	routeCtx := chi.NewRouteContext()
	routeCtx.URLParams.Add("id", "member-3")
	req = req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, routeCtx))
	authorize(req, testToken(t, auth.RolePresident, ""))
	rr := httptest.NewRecorder()
	wrapAuth(handler, handler.DeactivateMember).ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rr.Code)
	}
	if gotGroup != "group-1" || gotMember != "member-3" {
		t.Fatalf("unexpected call: group=%s member=%s", gotGroup, gotMember)
	}
}

func TestListMembers(t *testing.T) {
	handler := newTestHandler(stubRegistry{
		listMembersFn: func(_ context.Context, groupID string) ([]models.Member, error) {
			return []models.Member{{ID: "member-1", FirstName: "Sita", LastName: "Pawar", Status: "active"}}, nil
		},
	}, stubLedger{}, stubGroupReader{}, stubLoanReader{}, stubPassbookReader{}, stubReportStore{}, stubNotificationReader{})

	req := httptest.NewRequest(http.MethodGet, "/members", nil)
	authorize(req, testToken(t, auth.RoleMember, "member-7"))
	rr := httptest.NewRecorder()
	wrapAuth(handler, handler.ListMembers).ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rr.Code)
	}
	if !strings.Contains(rr.Body.String(), "Sita") {
		t.Fatalf("expected member in response: %s", rr.Body.String())
	}
}
