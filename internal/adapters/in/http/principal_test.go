package http

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"deliveryhub/internal/core/application/usecases/commands"
	"deliveryhub/internal/core/domain/model/kernel"
	"deliveryhub/internal/core/domain/model/member"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockMemberRegistrar struct{ mock.Mock }

func (m *MockMemberRegistrar) Handle(ctx context.Context, cmd commands.RegisterMemberCommand) error {
	args := m.Called(ctx, cmd)
	return args.Error(0)
}

// runPrincipal sends a request with headers through PrincipalMiddleware and returns the
// principal seen by the next handler, or the middleware error.
func runPrincipal(t *testing.T, registrar MemberRegistrar, headers map[string]string) (member.Principal, error) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/products", nil)
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	ctx := e.NewContext(req, httptest.NewRecorder())

	var seen member.Principal
	next := func(c echo.Context) error {
		p, err := requireRole(c)
		seen = p
		return err
	}
	err := PrincipalMiddleware(registrar)(next)(ctx)
	return seen, err
}

func httpStatus(t *testing.T, err error) int {
	t.Helper()
	var he *echo.HTTPError
	require.ErrorAs(t, err, &he)
	return he.Code
}

func TestPrincipalMiddleware_ReadsHeaders(t *testing.T) {
	registrar := new(MockMemberRegistrar)
	id := kernel.NewUUID()

	principal, err := runPrincipal(t, registrar, map[string]string{
		HeaderPrincipalID:   id.String(),
		HeaderPrincipalRole: "delivery",
	})

	require.NoError(t, err)
	assert.Equal(t, id, principal.ID)
	assert.Equal(t, member.RoleDelivery, principal.Role)
	registrar.AssertNotCalled(t, "Handle", mock.Anything, mock.Anything)
}

func TestPrincipalMiddleware_RegistersNamedPrincipal(t *testing.T) {
	registrar := new(MockMemberRegistrar)
	id := kernel.NewUUID()
	registrar.On("Handle", mock.Anything, mock.MatchedBy(func(cmd commands.RegisterMemberCommand) bool {
		m := cmd.Member()
		return m.ID() == id && m.Name() == "Noor" && m.Email() == "noor@example.com" && m.Role() == member.RoleCustomer
	})).Return(nil).Once()

	_, err := runPrincipal(t, registrar, map[string]string{
		HeaderPrincipalID:    id.String(),
		HeaderPrincipalRole:  "customer",
		HeaderPrincipalName:  "Noor",
		HeaderPrincipalEmail: "noor@example.com",
	})

	require.NoError(t, err)
	registrar.AssertExpectations(t)
}

func TestPrincipalMiddleware_Rejects(t *testing.T) {
	id := kernel.NewUUID().String()

	tests := []struct {
		name    string
		headers map[string]string
		want    int
	}{
		{"no headers", map[string]string{}, http.StatusUnauthorized},
		{"malformed id", map[string]string{HeaderPrincipalID: "nope", HeaderPrincipalRole: "admin"}, http.StatusUnauthorized},
		{"unknown role", map[string]string{HeaderPrincipalID: id, HeaderPrincipalRole: "chef"}, http.StatusUnauthorized},
		{"missing role", map[string]string{HeaderPrincipalID: id}, http.StatusUnauthorized},
		{
			"malformed email",
			map[string]string{
				HeaderPrincipalID:    id,
				HeaderPrincipalRole:  "customer",
				HeaderPrincipalName:  "Noor",
				HeaderPrincipalEmail: "not an email",
			},
			http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := runPrincipal(t, new(MockMemberRegistrar), tt.headers)
			assert.Equal(t, tt.want, httpStatus(t, err))
		})
	}
}

func TestPrincipalMiddleware_RegistrarFailure(t *testing.T) {
	registrar := new(MockMemberRegistrar)
	registrar.On("Handle", mock.Anything, mock.Anything).Return(errors.New("database unavailable")).Once()

	_, err := runPrincipal(t, registrar, map[string]string{
		HeaderPrincipalID:   kernel.NewUUID().String(),
		HeaderPrincipalRole: "admin",
		HeaderPrincipalName: "Root",
	})

	assert.Equal(t, http.StatusServiceUnavailable, httpStatus(t, err))
}

func TestRequireRole(t *testing.T) {
	e := echo.New()
	newCtx := func(p *member.Principal) echo.Context {
		ctx := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), httptest.NewRecorder())
		if p != nil {
			ctx.Set(principalKey, *p)
		}
		return ctx
	}
	agent := member.Principal{ID: kernel.NewUUID(), Role: member.RoleDelivery}

	t.Run("no principal", func(t *testing.T) {
		_, err := requireRole(newCtx(nil))
		assert.Equal(t, http.StatusUnauthorized, httpStatus(t, err))
	})

	t.Run("any role", func(t *testing.T) {
		p, err := requireRole(newCtx(&agent))
		require.NoError(t, err)
		assert.Equal(t, agent, p)
	})

	t.Run("matching role", func(t *testing.T) {
		p, err := requireRole(newCtx(&agent), member.RoleAdmin, member.RoleDelivery)
		require.NoError(t, err)
		assert.Equal(t, agent, p)
	})

	t.Run("other role", func(t *testing.T) {
		_, err := requireRole(newCtx(&agent), member.RoleCustomer)
		assert.Equal(t, http.StatusForbidden, httpStatus(t, err))
	})
}
