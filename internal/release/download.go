package release

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/abhisek/studydeck/internal/content"
)

// checksumsAsset lists "<sha256>  <name>" for the other assets of a release.
const checksumsAsset = "checksums.txt"

var (
	ErrNoAsset  = errors.New("release has no bundle for this class")
	ErrChecksum = errors.New("checksum verification failed")
)

// AssetName is the bundle file published for the board and class in loc,
// for example content-cbse-12-science.yaml. Only senior classes carry the
// stream.
func AssetName(loc content.Locator) string {
	parts := []string{"content", loc.Board, loc.Class}
	if content.IsSeniorClass(loc.Class) && loc.Stream != "" {
		parts = append(parts, loc.Stream)
	}
	name := strings.ToLower(strings.Join(parts, "-"))
	return strings.ReplaceAll(name, " ", "-") + ".yaml"
}

// Download fetches the asset called name from rel. When the release carries
// a checksums file the asset must match its entry.
func (f *Feed) Download(ctx context.Context, rel *Release, name string) ([]byte, error) {
	asset, ok := rel.Asset(name)
	if !ok {
		return nil, fmt.Errorf("%w: %s has no %s", ErrNoAsset, rel.Tag, name)
	}
	data, err := f.get(ctx, asset.DownloadURL)
	if err != nil {
		return nil, fmt.Errorf("download %s: %w", name, err)
	}

	sums, ok := rel.Asset(checksumsAsset)
	if !ok {
		return data, nil
	}
	sumData, err := f.get(ctx, sums.DownloadURL)
	if err != nil {
		return nil, fmt.Errorf("download %s: %w", checksumsAsset, err)
	}
	want, ok := parseChecksums(sumData)[name]
	if !ok {
		return nil, fmt.Errorf("%w: no entry for %s", ErrChecksum, name)
	}
	if err := verifyChecksum(data, want); err != nil {
		return nil, err
	}
	return data, nil
}

func (f *Feed) get(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	resp, err := f.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("HTTP %d for %s", resp.StatusCode, url)
	}
	return io.ReadAll(resp.Body)
}

func parseChecksums(data []byte) map[string]string {
	sums := make(map[string]string)
	for _, line := range strings.Split(string(data), "\n") {
		fields := strings.Fields(line)
		if len(fields) != 2 {
			continue
		}
		sums[strings.TrimPrefix(fields[1], "*")] = strings.ToLower(fields[0])
	}
	return sums
}

func verifyChecksum(data []byte, want string) error {
	h := sha256.Sum256(data)
	if got := hex.EncodeToString(h[:]); got != want {
		return fmt.Errorf("%w: expected %s, got %s", ErrChecksum, want, got)
	}
	return nil
}
