package shopfront

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"vcp/catsync/internal/model"
)

func TestVariantOptionsChunking(t *testing.T) {
	var batches [][]string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/variants/options", r.URL.Path)
		assert.Equal(t, "token-1", r.Header.Get("X-Access-Token"))

		var req optionsRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		batches = append(batches, req.VariantIDs)

		variants := make([]model.VariantOptions, 0, len(req.VariantIDs))
		for _, id := range req.VariantIDs {
			variants = append(variants, model.VariantOptions{VariantID: id})
		}
		json.NewEncoder(w).Encode(optionsResponse{Variants: variants})
	}))
	defer srv.Close()

	client := NewClient(srv.URL, time.Second)
	client.batchSize = 2

	ids := []string{"v1", "v2", "v3", "v4", "v5"}
	got, err := client.VariantOptions(context.Background(), "shop-1", "token-1", ids)
	require.NoError(t, err)
	require.Len(t, got, 5)

	// 按 batchSize 分块，顺序保持
	require.Len(t, batches, 3)
	assert.Equal(t, []string{"v1", "v2"}, batches[0])
	assert.Equal(t, []string{"v3", "v4"}, batches[1])
	assert.Equal(t, []string{"v5"}, batches[2])
}

func TestVariantOptionsServerError(t *testing.T) {
	calls := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		if calls == 2 {
			w.WriteHeader(http.StatusBadGateway)
			return
		}
		json.NewEncoder(w).Encode(optionsResponse{})
	}))
	defer srv.Close()

	client := NewClient(srv.URL, time.Second)
	client.batchSize = 1

	got, err := client.VariantOptions(context.Background(), "shop-1", "token", []string{"v1", "v2", "v3"})

	// 任一分块失败整体失败，不返回部分结果
	assert.Nil(t, got)
	var fe *FetchError
	require.True(t, errors.As(err, &fe))
	assert.Equal(t, "shop-1", fe.ShopID)
	assert.Equal(t, http.StatusBadGateway, fe.StatusCode)
	assert.True(t, fe.Retryable, "5xx is retryable")
	assert.Equal(t, 2, calls, "no further chunks after a failure")
}

func TestVariantOptionsClientError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer srv.Close()

	client := NewClient(srv.URL, time.Second)
	_, err := client.VariantOptions(context.Background(), "shop-1", "bad-token", []string{"v1"})

	var fe *FetchError
	require.True(t, errors.As(err, &fe))
	assert.False(t, fe.Retryable, "auth failures never retry")
}

func TestVariantOptionsNetworkError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close() // 立刻关掉，制造连接失败

	client := NewClient(srv.URL, time.Second)
	_, err := client.VariantOptions(context.Background(), "shop-1", "token", []string{"v1"})

	var fe *FetchError
	require.True(t, errors.As(err, &fe))
	assert.True(t, fe.Retryable)
}

func TestVariantOptionsMalformedResponse(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("{not json"))
	}))
	defer srv.Close()

	client := NewClient(srv.URL, time.Second)
	_, err := client.VariantOptions(context.Background(), "shop-1", "token", []string{"v1"})

	var fe *FetchError
	require.True(t, errors.As(err, &fe))
	assert.False(t, fe.Retryable)
}

func TestVariantOptionsEmptyInput(t *testing.T) {
	client := NewClient("http://unused.invalid", time.Second)
	got, err := client.VariantOptions(context.Background(), "shop-1", "token", nil)
	require.NoError(t, err)
	assert.Nil(t, got)
}
