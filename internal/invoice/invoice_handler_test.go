package invoice_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"go-gym/internal/identity"
	"go-gym/internal/invoice"
	"go-gym/internal/policy"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

type fakeService struct {
	createFn       func(ctx context.Context, branchID string, req invoice.CreateInvoiceRequest) (invoice.InvoiceResponse, error)
	createSignupFn func(ctx context.Context, branchID, memberID, planID string) (invoice.InvoiceResponse, error)
	getAllFn       func(ctx context.Context, branchID, status string) ([]invoice.InvoiceResponse, error)
	getByIDFn      func(ctx context.Context, branchID, id string) (invoice.InvoiceResponse, error)
	getByMemberFn  func(ctx context.Context, memberID string) ([]invoice.InvoiceResponse, error)
	markPaidFn     func(ctx context.Context, id string, paidAt time.Time) (invoice.InvoiceResponse, error)
	voidFn         func(ctx context.Context, branchID, id string) (invoice.InvoiceResponse, error)
}

func (f *fakeService) Create(ctx context.Context, branchID string, req invoice.CreateInvoiceRequest) (invoice.InvoiceResponse, error) {
	return f.createFn(ctx, branchID, req)
}
func (f *fakeService) CreateSignupInvoice(ctx context.Context, branchID, memberID, planID string) (invoice.InvoiceResponse, error) {
	return f.createSignupFn(ctx, branchID, memberID, planID)
}
func (f *fakeService) GetAll(ctx context.Context, branchID, status string) ([]invoice.InvoiceResponse, error) {
	return f.getAllFn(ctx, branchID, status)
}
func (f *fakeService) GetByID(ctx context.Context, branchID, id string) (invoice.InvoiceResponse, error) {
	return f.getByIDFn(ctx, branchID, id)
}
func (f *fakeService) GetByMember(ctx context.Context, memberID string) ([]invoice.InvoiceResponse, error) {
	return f.getByMemberFn(ctx, memberID)
}
func (f *fakeService) MarkPaid(ctx context.Context, id string, paidAt time.Time) (invoice.InvoiceResponse, error) {
	return f.markPaidFn(ctx, id, paidAt)
}
func (f *fakeService) Void(ctx context.Context, branchID, id string) (invoice.InvoiceResponse, error) {
	return f.voidFn(ctx, branchID, id)
}

func newTestContext(t *testing.T, method, target, body string) (*gin.Context, *httptest.ResponseRecorder) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(method, target, strings.NewReader(body))
	c.Request.Header.Set("Content-Type", "application/json")
	return c, w
}

func TestHandler_GetAll_SelfOnlyListsOwnInvoices(t *testing.T) {
	branchID := uuid.New().String()
	memberID := uuid.New().String()

	// A member listing invoices must only ever reach their own rows,
	// never the branch-wide query.
	svc := &fakeService{
		getAllFn: func(ctx context.Context, bid, status string) ([]invoice.InvoiceResponse, error) {
			t.Fatal("branch-wide listing must not be used for a self-only caller")
			return nil, nil
		},
		getByMemberFn: func(ctx context.Context, mid string) ([]invoice.InvoiceResponse, error) {
			assert.Equal(t, memberID, mid)
			return []invoice.InvoiceResponse{{ID: uuid.New().String(), MemberID: mid}}, nil
		},
	}
	h := invoice.NewHandler(svc)

	c, w := newTestContext(t, http.MethodGet, "/invoices", "")
	identity.SetPrincipal(c, identity.Principal{UserID: uuid.New().String(), Role: identity.RoleMember, BranchID: branchID, MemberID: memberID})
	policy.SetDecision(c, policy.Decision{Allowed: true, BranchFilter: branchID, SelfOnly: true})

	h.GetAll(c)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), memberID)
}

func TestHandler_GetAll_BranchScoped(t *testing.T) {
	branchID := uuid.New().String()

	svc := &fakeService{
		getAllFn: func(ctx context.Context, bid, status string) ([]invoice.InvoiceResponse, error) {
			assert.Equal(t, branchID, bid)
			assert.Equal(t, "unpaid", status)
			return nil, nil
		},
	}
	h := invoice.NewHandler(svc)

	c, w := newTestContext(t, http.MethodGet, "/invoices?status=unpaid", "")
	identity.SetPrincipal(c, identity.Principal{UserID: uuid.New().String(), Role: identity.RoleAdmin, BranchID: branchID})
	policy.SetDecision(c, policy.Decision{Allowed: true, BranchFilter: branchID})

	h.GetAll(c)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestHandler_GetByID_SelfOnly(t *testing.T) {
	branchID := uuid.New().String()
	memberID := uuid.New().String()
	otherID := uuid.New().String()
	invoiceID := uuid.New().String()

	svc := &fakeService{
		getByIDFn: func(ctx context.Context, bid, id string) (invoice.InvoiceResponse, error) {
			return invoice.InvoiceResponse{ID: id, MemberID: memberID}, nil
		},
	}
	h := invoice.NewHandler(svc)

	// Own invoice passes.
	c, w := newTestContext(t, http.MethodGet, "/invoices/"+invoiceID, "")
	c.Params = gin.Params{{Key: "id", Value: invoiceID}}
	identity.SetPrincipal(c, identity.Principal{UserID: uuid.New().String(), Role: identity.RoleMember, BranchID: branchID, MemberID: memberID})
	policy.SetDecision(c, policy.Decision{Allowed: true, BranchFilter: branchID, SelfOnly: true})

	h.GetByID(c)
	assert.Equal(t, http.StatusOK, w.Code)

	// Another member's invoice is refused.
	c2, w2 := newTestContext(t, http.MethodGet, "/invoices/"+invoiceID, "")
	c2.Params = gin.Params{{Key: "id", Value: invoiceID}}
	identity.SetPrincipal(c2, identity.Principal{UserID: uuid.New().String(), Role: identity.RoleMember, BranchID: branchID, MemberID: otherID})
	policy.SetDecision(c2, policy.Decision{Allowed: true, BranchFilter: branchID, SelfOnly: true})

	h.GetByID(c2)
	assert.Equal(t, http.StatusForbidden, w2.Code)
}

func TestHandler_MyInvoices_NotAMember(t *testing.T) {
	h := invoice.NewHandler(&fakeService{})

	c, w := newTestContext(t, http.MethodGet, "/invoices/my", "")
	identity.SetPrincipal(c, identity.Principal{UserID: uuid.New().String(), Role: identity.RoleReceptionist})

	h.MyInvoices(c)
	assert.Equal(t, http.StatusForbidden, w.Code)
}
