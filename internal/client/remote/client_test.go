package remote

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/Skotchmaster/restaurant_pos/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDo_DecodesAndSendsJSON(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		assert.Equal(t, "/x", r.URL.Path)
		_, _ = w.Write([]byte(`{"ok":true}`))
	}))
	defer srv.Close()

	c := New(srv.URL+"/", time.Second)
	var out struct{ OK bool }
	require.NoError(t, c.Do(context.Background(), http.MethodPost, "/x", map[string]int{"a": 1}, &out))
	assert.True(t, out.OK)
}

func TestDo_StatusMessages(t *testing.T) {
	t.Parallel()

	cases := []struct {
		body string
		want string
	}{
		{`{"message":"table is not free"}`, "table is not free"},
		{`{"error":"bad id"}`, "bad id"},
		{`"quoted reply"`, "quoted reply"},
		{"  plain text\n", "plain text"},
		{"", ""},
	}
	for _, tc := range cases {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusBadRequest)
			_, _ = w.Write([]byte(tc.body))
		}))
		err := New(srv.URL, time.Second).Do(context.Background(), http.MethodGet, "/", nil, nil)
		srv.Close()

		var se *StatusError
		require.ErrorAs(t, err, &se)
		assert.Equal(t, http.StatusBadRequest, se.Status)
		assert.Equal(t, tc.want, se.Message)
	}
}

func TestDo_TransportFailureIsUnavailable(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	err := New(url, time.Second).Do(context.Background(), http.MethodGet, "/", nil, nil)
	require.ErrorIs(t, err, domain.ErrUnavailable)
	assert.Equal(t, "service unavailable", domain.Short(err))
}

func TestGeneric(t *testing.T) {
	t.Parallel()

	err := Generic(&StatusError{Status: http.StatusNotFound})
	require.ErrorIs(t, err, domain.ErrNotFound)

	err = Generic(&StatusError{Status: http.StatusBadGateway})
	require.ErrorIs(t, err, domain.ErrUnavailable)

	err = Generic(&StatusError{Status: http.StatusInternalServerError, Message: "boom"})
	require.ErrorIs(t, err, domain.ErrRemote)
	assert.Equal(t, "boom", err.Error())

	plain := errors.New("other")
	assert.Equal(t, plain, Generic(plain))
}

func TestWireEnums(t *testing.T) {
	t.Parallel()

	c, err := CategoryFromWire("bebida")
	require.NoError(t, err)
	assert.Equal(t, domain.CategoryDrink, c)
	assert.Equal(t, "POSTRE", CategoryToWire(domain.CategoryDessert))

	c, err = CategoryFromWire("DISH")
	require.NoError(t, err)
	assert.Equal(t, domain.CategoryDish, c)

	_, err = CategoryFromWire("SOPA")
	require.Error(t, err)

	st, err := TableStatusFromWire("RESERVADA")
	require.NoError(t, err)
	assert.Equal(t, domain.TableReserved, st)
	assert.Equal(t, "LIBRE", TableStatusToWire(domain.TableFree))

	os, err := OrderStatusFromWire("CERRADO")
	require.NoError(t, err)
	assert.Equal(t, domain.OrderClosed, os)
}
