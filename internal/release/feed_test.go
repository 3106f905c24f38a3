package release

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/studydeck/internal/content"
)

const bundleBody = "version: 1\nboard: CBSE\nclass: \"10\"\n"

// contentServer publishes one release of the content repository. files maps
// asset names to their bodies; every file is listed as an asset.
type contentServer struct {
	*httptest.Server
	tag    string
	status int
	files  map[string]string
}

func newContentServer(t *testing.T, tag string, files map[string]string) *contentServer {
	t.Helper()
	cs := &contentServer{tag: tag, status: http.StatusOK, files: files}
	mux := http.NewServeMux()
	release := func(w http.ResponseWriter, r *http.Request) {
		if cs.status != http.StatusOK {
			w.WriteHeader(cs.status)
			return
		}
		var assets string
		for name := range cs.files {
			if assets != "" {
				assets += ","
			}
			assets += fmt.Sprintf(`{"name":%q,"browser_download_url":%q}`, name, cs.URL+"/download/"+name)
		}
		fmt.Fprintf(w, `{"tag_name":%q,"html_url":"https://example.com/%s","assets":[%s]}`, cs.tag, cs.tag, assets)
	}
	mux.HandleFunc("/repos/abhisek/studydeck-content/releases/latest", release)
	mux.HandleFunc("/repos/abhisek/studydeck-content/releases/tags/{tag}", func(w http.ResponseWriter, r *http.Request) {
		if r.PathValue("tag") != cs.tag {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		release(w, r)
	})
	mux.HandleFunc("/download/{name}", func(w http.ResponseWriter, r *http.Request) {
		body, ok := cs.files[r.PathValue("name")]
		if !ok {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		_, _ = w.Write([]byte(body))
	})
	cs.Server = httptest.NewServer(mux)
	t.Cleanup(cs.Close)
	return cs
}

func (cs *contentServer) feed() *Feed {
	return NewFeed(WithBaseURL(cs.URL))
}

func sha(s string) string {
	h := sha256.Sum256([]byte(s))
	return hex.EncodeToString(h[:])
}

func TestCheck(t *testing.T) {
	tests := []struct {
		name      string
		installed string
		want      bool
	}{
		{"nothing installed", "", true},
		{"older release installed", "v1.2.0", true},
		{"latest installed", "v1.3.0", false},
		{"newer than latest", "v1.4.0", false},
		{"unreadable installed tag", "nightly", true},
	}

	cs := newContentServer(t, "v1.3.0", nil)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := cs.feed().Check(context.Background(), tt.installed)
			require.NoError(t, err)
			assert.Equal(t, tt.want, result.UpdateAvailable)
			assert.Equal(t, "v1.3.0", result.Latest.Tag)
			assert.Equal(t, "https://example.com/v1.3.0", result.Latest.URL)
		})
	}
}

func TestFeedErrors(t *testing.T) {
	t.Run("http error", func(t *testing.T) {
		cs := newContentServer(t, "v1.0.0", nil)
		cs.status = http.StatusInternalServerError
		_, err := cs.feed().Latest(context.Background())
		require.Error(t, err)
		assert.Contains(t, err.Error(), "HTTP 500")
	})

	t.Run("invalid tag", func(t *testing.T) {
		cs := newContentServer(t, "latest", nil)
		_, err := cs.feed().Latest(context.Background())
		require.Error(t, err)
		assert.Contains(t, err.Error(), "invalid tag")
	})

	t.Run("other repository", func(t *testing.T) {
		cs := newContentServer(t, "v1.0.0", nil)
		_, err := NewFeed(WithBaseURL(cs.URL), WithRepository("someone", "fork")).Latest(context.Background())
		require.Error(t, err)
	})

	t.Run("unknown tag", func(t *testing.T) {
		cs := newContentServer(t, "v1.0.0", nil)
		_, err := cs.feed().Tagged(context.Background(), "v0.9.0")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "HTTP 404")
	})

	t.Run("tag must be semver", func(t *testing.T) {
		_, err := NewFeed().Tagged(context.Background(), "june")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "invalid release tag")
	})
}

func TestTagged(t *testing.T) {
	cs := newContentServer(t, "v2.1.0", map[string]string{"content-cbse-10.yaml": bundleBody})
	rel, err := cs.feed().Tagged(context.Background(), "v2.1.0")
	require.NoError(t, err)
	assert.Equal(t, "v2.1.0", rel.Tag)
	_, ok := rel.Asset("content-cbse-10.yaml")
	assert.True(t, ok)
}

func TestAssetName(t *testing.T) {
	tests := []struct {
		loc  content.Locator
		want string
	}{
		{content.Locator{Board: "CBSE", Class: "10"}, "content-cbse-10.yaml"},
		{content.Locator{Board: "CBSE", Class: "10", Stream: "Science"}, "content-cbse-10.yaml"},
		{content.Locator{Board: "CBSE", Class: "12", Stream: "Science"}, "content-cbse-12-science.yaml"},
		{content.Locator{Board: "State Board", Class: "11", Stream: "Commerce"}, "content-state-board-11-commerce.yaml"},
	}
	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			assert.Equal(t, tt.want, AssetName(tt.loc))
		})
	}
}

func TestDownload(t *testing.T) {
	const name = "content-cbse-10.yaml"

	t.Run("without checksums", func(t *testing.T) {
		cs := newContentServer(t, "v1.0.0", map[string]string{name: bundleBody})
		rel, err := cs.feed().Latest(context.Background())
		require.NoError(t, err)
		data, err := cs.feed().Download(context.Background(), rel, name)
		require.NoError(t, err)
		assert.Equal(t, bundleBody, string(data))
	})

	t.Run("matching checksum", func(t *testing.T) {
		cs := newContentServer(t, "v1.0.0", map[string]string{
			name:           bundleBody,
			checksumsAsset: sha(bundleBody) + "  " + name + "\n",
		})
		rel, err := cs.feed().Latest(context.Background())
		require.NoError(t, err)
		data, err := cs.feed().Download(context.Background(), rel, name)
		require.NoError(t, err)
		assert.Equal(t, bundleBody, string(data))
	})

	t.Run("checksum mismatch", func(t *testing.T) {
		cs := newContentServer(t, "v1.0.0", map[string]string{
			name:           bundleBody,
			checksumsAsset: sha("something else") + "  " + name + "\n",
		})
		rel, err := cs.feed().Latest(context.Background())
		require.NoError(t, err)
		_, err = cs.feed().Download(context.Background(), rel, name)
		assert.ErrorIs(t, err, ErrChecksum)
	})

	t.Run("checksum entry missing", func(t *testing.T) {
		cs := newContentServer(t, "v1.0.0", map[string]string{
			name:           bundleBody,
			checksumsAsset: sha(bundleBody) + "  content-cbse-9.yaml\n",
		})
		rel, err := cs.feed().Latest(context.Background())
		require.NoError(t, err)
		_, err = cs.feed().Download(context.Background(), rel, name)
		assert.ErrorIs(t, err, ErrChecksum)
	})

	t.Run("no bundle for class", func(t *testing.T) {
		cs := newContentServer(t, "v1.0.0", map[string]string{"content-cbse-9.yaml": bundleBody})
		rel, err := cs.feed().Latest(context.Background())
		require.NoError(t, err)
		_, err = cs.feed().Download(context.Background(), rel, name)
		assert.ErrorIs(t, err, ErrNoAsset)
	})
}

func TestParseChecksums(t *testing.T) {
	got := parseChecksums([]byte("ABC123  content-cbse-10.yaml\n\nmalformed\ndef456 *content-cbse-12-science.yaml\n"))
	assert.Equal(t, map[string]string{
		"content-cbse-10.yaml":         "abc123",
		"content-cbse-12-science.yaml": "def456",
	}, got)
}
