package portal

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dbouwman/graphql-api/errors"
)

func TestFetchItem(t *testing.T) {
	var gotPath, gotToken string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotToken = r.URL.Query().Get("token")
		assert.Equal(t, "json", r.URL.Query().Get("f"))
		w.Write([]byte(`{"id":"abc","owner":"jsmith","title":"Test","type":"Form",
			"typeKeywords":["Form","Draft"],"created":1586441883000,"modified":1586441884000}`))
	}))
	defer server.Close()

	client := NewClient(server.URL, nil, nil)

	t.Run("unauthenticated", func(t *testing.T) {
		item, err := client.FetchItem(context.Background(), "abc", nil)
		require.NoError(t, err)
		assert.Equal(t, "/content/items/abc", gotPath)
		assert.Equal(t, "", gotToken)
		assert.Equal(t, "abc", item.ID)
		assert.Equal(t, "jsmith", item.Owner)
		assert.Equal(t, []string{"Form", "Draft"}, item.TypeKeywords)
		assert.Equal(t, int64(1586441883000), item.Created)
	})

	t.Run("session token carried", func(t *testing.T) {
		session := SessionFromHeader("tok-1", server.URL)
		_, err := client.FetchItem(context.Background(), "abc", session)
		require.NoError(t, err)
		assert.Equal(t, "tok-1", gotToken)
	})
}

func TestFetchItemNotFound(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		// The portal reports missing records as 200 with an error envelope
		w.Write([]byte(`{"error":{"code":400,"message":"Item does not exist or is inaccessible."}}`))
	}))
	defer server.Close()

	client := NewClient(server.URL, nil, nil)
	item, err := client.FetchItem(context.Background(), "missing", nil)

	assert.Nil(t, item)
	require.Error(t, err)
	assert.True(t, errors.IsNotFound(err))
}

func TestFetchUserAndGroup(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/community/users/jsmith":
			w.Write([]byte(`{"username":"jsmith","firstName":"J","lastName":"Smith","orgId":"org1"}`))
		case "/community/groups/g1":
			w.Write([]byte(`{"id":"g1","title":"Team","owner":"jsmith","thumbnail":"pic.png"}`))
		default:
			t.Errorf("unexpected path %s", r.URL.Path)
		}
	}))
	defer server.Close()

	client := NewClient(server.URL, nil, nil)

	user, err := client.FetchUser(context.Background(), "jsmith", nil)
	require.NoError(t, err)
	assert.Equal(t, "jsmith", user.Username)
	assert.Equal(t, "org1", user.OrgID)

	group, err := client.FetchGroup(context.Background(), "g1", nil)
	require.NoError(t, err)
	assert.Equal(t, "Team", group.Title)
	assert.Equal(t, "pic.png", group.Thumbnail)
}

func TestSearchItems(t *testing.T) {
	var gotQuery string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/search", r.URL.Path)
		gotQuery = r.URL.Query().Get("q")
		w.Write([]byte(`{"total":2,"results":[{"id":"a","title":"A"},{"id":"b","title":"B"}]}`))
	}))
	defer server.Close()

	client := NewClient(server.URL, nil, nil)
	items, err := client.SearchItems(context.Background(), "type:Form", nil)

	require.NoError(t, err)
	assert.Equal(t, "type:Form", gotQuery)
	require.Len(t, items, 2)
	assert.Equal(t, "a", items[0].ID)
}

func TestSearchUsersAndGroups(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/community/users":
			w.Write([]byte(`{"total":1,"results":[{"username":"jsmith"}]}`))
		case "/community/groups":
			w.Write([]byte(`{"total":1,"results":[{"id":"g1","title":"Team"}]}`))
		default:
			t.Errorf("unexpected path %s", r.URL.Path)
		}
	}))
	defer server.Close()

	client := NewClient(server.URL, nil, nil)

	users, err := client.SearchUsers(context.Background(), "jsmith", nil)
	require.NoError(t, err)
	require.Len(t, users, 1)
	assert.Equal(t, "jsmith", users[0].Username)

	groups, err := client.SearchGroups(context.Background(), "id:g1", nil)
	require.NoError(t, err)
	require.Len(t, groups, 1)
	assert.Equal(t, "g1", groups[0].ID)
}

func TestFetchItemGroups(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/content/items/abc/groups", r.URL.Path)
		w.Write([]byte(`{"admin":[{"id":"a1"}],"member":[{"id":"m1"},{"id":"m2"}],"other":[]}`))
	}))
	defer server.Close()

	client := NewClient(server.URL, nil, nil)
	groups, err := client.FetchItemGroups(context.Background(), "abc", nil)

	require.NoError(t, err)
	assert.Len(t, groups.Admin, 1)
	assert.Len(t, groups.Member, 2)
	assert.Len(t, groups.Other, 0)
}

func TestRawGet(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"value":` + `"` + r.URL.RawQuery + `"}`))
	}))
	defer server.Close()

	client := NewClient(server.URL, nil, nil)

	t.Run("appends token with ampersand when query present", func(t *testing.T) {
		session := SessionFromHeader("tok", server.URL)
		var out struct {
			Value string `json:"value"`
		}
		err := client.RawGet(context.Background(), server.URL+"/info?f=json", session, &out)
		require.NoError(t, err)
		assert.Equal(t, "f=json&token=tok", out.Value)
	})

	t.Run("appends token with question mark on bare url", func(t *testing.T) {
		session := SessionFromHeader("tok", server.URL)
		var out struct {
			Value string `json:"value"`
		}
		err := client.RawGet(context.Background(), server.URL+"/info", session, &out)
		require.NoError(t, err)
		assert.Equal(t, "token=tok", out.Value)
	})

	t.Run("no token without session", func(t *testing.T) {
		var out struct {
			Value string `json:"value"`
		}
		err := client.RawGet(context.Background(), server.URL+"/info?f=json", nil, &out)
		require.NoError(t, err)
		assert.Equal(t, "f=json", out.Value)
	})
}

func TestGenerateToken(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/generateToken", r.URL.Path)
		require.NoError(t, r.ParseForm())
		assert.Equal(t, "demo", r.PostForm.Get("username"))
		assert.Equal(t, "secret", r.PostForm.Get("password"))
		w.Write([]byte(`{"token":"minted","expires":1700000000000}`))
	}))
	defer server.Close()

	client := NewClient(server.URL, nil, nil)
	token, err := client.GenerateToken(context.Background(), "demo", "secret")

	require.NoError(t, err)
	assert.Equal(t, "minted", token.Token)
	assert.Equal(t, int64(1700000000000), token.Expires)
}

func TestGenerateTokenRejected(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte(`{"error":{"code":400,"message":"Unable to generate token."}}`))
	}))
	defer server.Close()

	client := NewClient(server.URL, nil, nil)
	token, err := client.GenerateToken(context.Background(), "demo", "wrong")

	assert.Nil(t, token)
	require.Error(t, err)
	assert.True(t, errors.IsInvalid(err))
}

func TestClientErrorClassification(t *testing.T) {
	t.Run("http error status is transient", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusBadGateway)
		}))
		defer server.Close()

		client := NewClient(server.URL, nil, nil)
		_, err := client.FetchItem(context.Background(), "abc", nil)
		require.Error(t, err)
		assert.True(t, errors.IsTransient(err))
	})

	t.Run("malformed json is invalid", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.Write([]byte(`{not json`))
		}))
		defer server.Close()

		client := NewClient(server.URL, nil, nil)
		_, err := client.FetchItem(context.Background(), "abc", nil)
		require.Error(t, err)
		assert.True(t, errors.IsInvalid(err))
	})

	t.Run("network failure is transient and backend-unavailable", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
		server.Close() // refuse connections

		client := NewClient(server.URL, nil, nil)
		_, err := client.FetchItem(context.Background(), "abc", nil)
		require.Error(t, err)
		assert.True(t, errors.IsTransient(err))
		assert.True(t, errors.Is(err, errors.ErrBackendUnavailable))
	})
}

// stubRecorder captures backend call reports for assertions.
type stubRecorder struct {
	calls    []string
	statuses []string
}

func (s *stubRecorder) RecordCall(call, status string, _ time.Duration) {
	s.calls = append(s.calls, call)
	s.statuses = append(s.statuses, status)
}

func TestClientCallRecorder(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/content/items/bad" {
			w.WriteHeader(http.StatusBadGateway)
			return
		}
		w.Write([]byte(`{"id":"abc","owner":"jsmith","title":"Test","type":"Form"}`))
	}))
	defer server.Close()

	recorder := &stubRecorder{}
	client := NewClient(server.URL, nil, nil)
	client.SetCallRecorder(recorder)

	_, err := client.FetchItem(context.Background(), "abc", nil)
	require.NoError(t, err)

	_, err = client.FetchItem(context.Background(), "bad", nil)
	require.Error(t, err)

	assert.Equal(t, []string{"FetchItem", "FetchItem"}, recorder.calls)
	assert.Equal(t, []string{"success", "error"}, recorder.statuses)
}
