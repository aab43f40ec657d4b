package security

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/GabrielDiasInchoste/ponto-inteligente/internal/models"
)

func TestRateLimitByFuncionario(t *testing.T) {
	h := RateLimitByFuncionario(0.001, 2)(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	do := func(id string) int {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req = req.WithContext(WithPrincipal(req.Context(), Principal{FuncionarioID: id}))
		rr := httptest.NewRecorder()
		h.ServeHTTP(rr, req)
		return rr.Code
	}

	assert.Equal(t, http.StatusOK, do("E1"))
	assert.Equal(t, http.StatusOK, do("E1"))
	assert.Equal(t, http.StatusTooManyRequests, do("E1"))
	// bucket separado por funcionário
	assert.Equal(t, http.StatusOK, do("E2"))
}

func TestRateLimitByFuncionario_Disabled(t *testing.T) {
	calls := 0
	h := RateLimitByFuncionario(0, 0)(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		calls++
	}))
	for i := 0; i < 50; i++ {
		h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))
	}
	assert.Equal(t, 50, calls)
}

func TestSharedLookups(t *testing.T) {
	var hits atomic.Int32
	release := make(chan struct{})
	dir := finderFunc(func(_ context.Context, id string) (*models.Funcionario, error) {
		hits.Add(1)
		<-release
		if id == "ghost" {
			return nil, nil
		}
		return &models.Funcionario{ID: id, Perfil: models.PerfilUsuario}, nil
	})
	shared := SharedLookups(dir)

	var wg sync.WaitGroup
	results := make([]*models.Funcionario, 5)
	for i := range results {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			f, err := shared.FindByID(context.Background(), "E1")
			assert.NoError(t, err)
			results[i] = f
		}(i)
	}
	time.Sleep(50 * time.Millisecond)
	close(release)
	wg.Wait()

	assert.LessOrEqual(t, hits.Load(), int32(5))
	for _, f := range results {
		require.NotNil(t, f)
		assert.Equal(t, "E1", f.ID)
	}
	results[0].Perfil = models.PerfilAdmin
	assert.Equal(t, models.PerfilUsuario, results[1].Perfil, "cada chamador recebe sua cópia")

	f, err := shared.FindByID(context.Background(), "ghost")
	require.NoError(t, err)
	assert.Nil(t, f)
}

func TestSharedLookups_CancelledCallerDoesNotFailOthers(t *testing.T) {
	var hits atomic.Int32
	started := make(chan struct{})
	release := make(chan struct{})
	dir := finderFunc(func(ctx context.Context, id string) (*models.Funcionario, error) {
		if hits.Add(1) == 1 {
			close(started)
		}
		select {
		case <-release:
		case <-ctx.Done():
			return nil, ctx.Err()
		}
		return &models.Funcionario{ID: id, Perfil: models.PerfilUsuario}, nil
	})
	shared := SharedLookups(dir)

	// o primeiro chamador inicia a busca e desiste no meio
	ctxA, cancelA := context.WithCancel(context.Background())
	errA := make(chan error, 1)
	go func() {
		_, err := shared.FindByID(ctxA, "E1")
		errA <- err
	}()
	<-started

	type result struct {
		f   *models.Funcionario
		err error
	}
	resB := make(chan result, 1)
	go func() {
		f, err := shared.FindByID(context.Background(), "E1")
		resB <- result{f, err}
	}()
	time.Sleep(20 * time.Millisecond)

	cancelA()
	require.ErrorIs(t, <-errA, context.Canceled)

	close(release)
	b := <-resB
	require.NoError(t, b.err)
	require.NotNil(t, b.f)
	assert.Equal(t, "E1", b.f.ID)
	assert.Equal(t, int32(1), hits.Load())
}
