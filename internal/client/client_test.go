package client_test

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/alovak/cardcheck/cardtype"
	"github.com/alovak/cardcheck/internal/client"
	"github.com/alovak/cardcheck/validator"
	"github.com/alovak/cardcheck/validator/models"
	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/require"
	"golang.org/x/exp/slog"
)

func newServer(t *testing.T) *httptest.Server {
	t.Helper()

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	router := chi.NewRouter()
	validator.NewAPI(validator.New(cardtype.Default(), validator.DefaultMII()), nil, logger).AppendRoutes(router)

	srv := httptest.NewServer(router)
	t.Cleanup(srv.Close)
	return srv
}

func TestClient(t *testing.T) {
	srv := newServer(t)
	c := client.New(srv.URL+"/", nil)
	ctx := context.Background()

	t.Run("validate", func(t *testing.T) {
		resp, err := c.Validate(ctx, "5555-5555-5555-4444", "")
		require.NoError(t, err)
		require.Equal(t, models.StatusValid, resp.Status)
		require.Equal(t, []string{"mastercard"}, resp.CandidateTypes)
		require.Equal(t, []string{"MasterCard"}, resp.CardTypeNames)
		require.Equal(t, "***4444", resp.MaskedNumber)
	})

	t.Run("validate with filter", func(t *testing.T) {
		resp, err := c.Validate(ctx, "5555555555554444", "visa")
		require.NoError(t, err)
		require.Equal(t, models.StatusInvalid, resp.Status)
		require.Equal(t, models.ReasonIIN, resp.Reason)
	})

	t.Run("card types", func(t *testing.T) {
		types, err := c.CardTypes(ctx)
		require.NoError(t, err)
		require.Len(t, types, 4)
	})

	t.Run("card type", func(t *testing.T) {
		ct, err := c.CardType(ctx, "amex")
		require.NoError(t, err)
		require.Equal(t, 15, ct.Length)
		require.Equal(t, "34,37", ct.IINRanges)
	})

	t.Run("unknown card type", func(t *testing.T) {
		_, err := c.CardType(ctx, "diners")
		require.ErrorIs(t, err, client.ErrNotFound)
	})
}

func TestClient_ServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	t.Cleanup(srv.Close)

	_, err := client.New(srv.URL, nil).Validate(context.Background(), "4111111111111111", "")
	require.Error(t, err)
	require.Contains(t, err.Error(), "status=500")
	require.Contains(t, err.Error(), "boom")
}
