package service

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFindTutorsRelaysQueryVerbatim(t *testing.T) {
	var gotBody []byte
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/find-tutor", r.URL.Path)
		assert.Equal(t, http.MethodPost, r.Method)
		gotBody, _ = io.ReadAll(r.Body)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"matchingTutors":[{"name":"Ali Khan","subject":"math"}]}`))
	}))
	defer upstream.Close()

	client := NewMatcherClient(upstream.URL)
	out, err := client.FindTutors(context.Background(), "math tutor in Nazimabad")
	require.NoError(t, err)

	var sent map[string]string
	require.NoError(t, json.Unmarshal(gotBody, &sent))
	assert.Equal(t, "math tutor in Nazimabad", sent["query"])

	var tutors []map[string]any
	require.NoError(t, json.Unmarshal(out, &tutors))
	require.Len(t, tutors, 1)
	assert.Equal(t, "Ali Khan", tutors[0]["name"])
}

func TestFindTutorsEmptyUpstreamList(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{}`))
	}))
	defer upstream.Close()

	client := NewMatcherClient(upstream.URL)
	out, err := client.FindTutors(context.Background(), "anything")
	require.NoError(t, err)
	assert.JSONEq(t, "[]", string(out))
}

func TestFindTutorsNullUpstreamList(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"matchingTutors":null}`))
	}))
	defer upstream.Close()

	client := NewMatcherClient(upstream.URL)
	out, err := client.FindTutors(context.Background(), "anything")
	require.NoError(t, err)
	assert.JSONEq(t, "[]", string(out))
}

func TestFindTutorsUpstreamError(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer upstream.Close()

	client := NewMatcherClient(upstream.URL)
	_, err := client.FindTutors(context.Background(), "anything")
	assert.Error(t, err)
}

func TestFindTutorsUnconfigured(t *testing.T) {
	client := NewMatcherClient("")
	_, err := client.FindTutors(context.Background(), "anything")
	assert.Error(t, err)
}
