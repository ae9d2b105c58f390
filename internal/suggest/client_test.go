package suggest

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func completionServer(t *testing.T, content string) *httptest.Server {
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))

		w.Header().Set("Content-Type", "application/json")
		resp := `{"choices":[{"message":{"content":` + content + `}}]}`
		w.Write([]byte(resp))
	}))
}

func TestSuggestSubtasks(t *testing.T) {
	server := completionServer(t, `"- Define project scope\n- Create a timeline\n3. Assign roles\n- Set up CI"`)
	defer server.Close()

	client := NewClientWith("test-key", server.URL, "")

	suggestions, err := client.SuggestSubtasks(context.Background(), "Build a kanban app", nil)
	require.NoError(t, err)

	assert.Equal(t, []string{
		"Define project scope",
		"Create a timeline",
		"Assign roles",
		"Set up CI",
	}, suggestions)
}

func TestSuggestSubtasksSkipsExistingTitles(t *testing.T) {
	server := completionServer(t, `"- Define project scope\n- Write documentation"`)
	defer server.Close()

	client := NewClientWith("test-key", server.URL, "")

	suggestions, err := client.SuggestSubtasks(context.Background(), "Docs project", []string{"define project scope"})
	require.NoError(t, err)

	assert.Equal(t, []string{"Write documentation"}, suggestions)
}

func TestSuggestSubtasksCapsAtMax(t *testing.T) {
	content := `"- a\n- b\n- c\n- d\n- e\n- f\n- g\n- h\n- i\n- j\n- k\n- l"`
	server := completionServer(t, content)
	defer server.Close()

	client := NewClientWith("test-key", server.URL, "")

	suggestions, err := client.SuggestSubtasks(context.Background(), "Busy project", nil)
	require.NoError(t, err)

	assert.Len(t, suggestions, maxSuggestions)
}

func TestSuggestSubtasksAPIError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
		w.Write([]byte(`{"error":{"message":"rate limited","type":"rate_limit"}}`))
	}))
	defer server.Close()

	client := NewClientWith("test-key", server.URL, "")

	_, err := client.SuggestSubtasks(context.Background(), "Anything", nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "rate limited")
}

func TestSuggestSubtasksEmptyContent(t *testing.T) {
	server := completionServer(t, `""`)
	defer server.Close()

	client := NewClientWith("test-key", server.URL, "")

	_, err := client.SuggestSubtasks(context.Background(), "Anything", nil)
	assert.Error(t, err)
}

func TestNewClientRequiresAPIKey(t *testing.T) {
	t.Setenv("SUGGEST_API_KEY", "")

	_, err := NewClient()
	assert.Error(t, err)
}
