package security

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/GabrielDiasInchoste/ponto-inteligente/internal/models"
)

var (
	capLer     = Capability{Resource: "lancamentos", Action: "ler"}
	capRemover = Capability{Resource: "lancamentos", Action: "remover"}
)

type finderFunc func(ctx context.Context, id string) (*models.Funcionario, error)

func (f finderFunc) FindByID(ctx context.Context, id string) (*models.Funcionario, error) {
	return f(ctx, id)
}

func directory(perfis map[string]models.Perfil) finderFunc {
	return func(_ context.Context, id string) (*models.Funcionario, error) {
		p, ok := perfis[id]
		if !ok {
			return nil, nil
		}
		return &models.Funcionario{ID: id, Email: id + "@acme.com", Perfil: p, EmpresaID: "C1"}, nil
	}
}

func TestAuthorizer_DefaultPolicy(t *testing.T) {
	a, err := NewAuthorizer(nil)
	require.NoError(t, err)

	cases := []struct {
		perfil models.Perfil
		cap    Capability
		want   bool
	}{
		{models.PerfilUsuario, capLer, true},
		{models.PerfilUsuario, capRemover, false},
		{models.PerfilAdmin, capRemover, true},
		{models.PerfilAdmin, capLer, true}, // herda ROLE_USUARIO
		{models.Perfil("ROLE_VISITANTE"), capLer, false},
	}
	for _, tc := range cases {
		got, err := a.Allowed(tc.perfil, tc.cap)
		require.NoError(t, err)
		assert.Equal(t, tc.want, got, "%s %s", tc.perfil, tc.cap)
	}
}

func TestGrants(t *testing.T) {
	ctx := context.Background()
	assert.False(t, Granted(ctx, capRemover))

	ctx = WithGrant(ctx, capLer)
	assert.True(t, Granted(ctx, capLer))
	assert.False(t, Granted(ctx, capRemover))

	ctx2 := WithGrant(ctx, capRemover)
	assert.True(t, Granted(ctx2, capLer))
	assert.True(t, Granted(ctx2, capRemover))
	assert.False(t, Granted(ctx, capRemover), "contexto pai não deve ser alterado")
}

func chain(a *Authorizer, dir FuncionarioFinder, c Capability, reached *bool) http.Handler {
	final := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		*reached = Granted(r.Context(), c)
		w.WriteHeader(http.StatusOK)
	})
	return Authenticate(dir, "X-Funcionario-Id", nil)(Require(a, c)(final))
}

func TestMiddleware(t *testing.T) {
	a, err := NewAuthorizer(nil)
	require.NoError(t, err)
	dir := directory(map[string]models.Perfil{"admin": models.PerfilAdmin, "user": models.PerfilUsuario})

	cases := []struct {
		name    string
		header  string
		cap     Capability
		want    int
		granted bool
	}{
		{"sem header", "", capLer, http.StatusUnauthorized, false},
		{"funcionario inexistente", "ghost", capLer, http.StatusUnauthorized, false},
		{"usuario le", "user", capLer, http.StatusOK, true},
		{"usuario remove", "user", capRemover, http.StatusForbidden, false},
		{"admin remove", "admin", capRemover, http.StatusOK, true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			reached := false
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if tc.header != "" {
				req.Header.Set("X-Funcionario-Id", tc.header)
			}
			rr := httptest.NewRecorder()
			chain(a, dir, tc.cap, &reached).ServeHTTP(rr, req)

			assert.Equal(t, tc.want, rr.Code, rr.Body.String())
			assert.Equal(t, tc.granted, reached)
		})
	}
}

func TestAuthenticate_DirectoryError(t *testing.T) {
	dir := finderFunc(func(context.Context, string) (*models.Funcionario, error) {
		return nil, errors.New("mongo down")
	})
	h := Authenticate(dir, "X-Funcionario-Id", nil)(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		t.Fatal("handler não deveria ser chamado")
	}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("X-Funcionario-Id", "E1")
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusInternalServerError, rr.Code)
	assert.JSONEq(t, `{"data":null,"erros":["Erro ao autenticar usuário."]}`, rr.Body.String())
}

func TestPrincipalFrom(t *testing.T) {
	_, ok := PrincipalFrom(context.Background())
	assert.False(t, ok)

	ctx := WithPrincipal(context.Background(), Principal{FuncionarioID: "E1", Perfil: models.PerfilAdmin})
	p, ok := PrincipalFrom(ctx)
	require.True(t, ok)
	assert.Equal(t, "E1", p.FuncionarioID)
}
