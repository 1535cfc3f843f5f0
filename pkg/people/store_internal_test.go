package people

import (
	"bytes"
	"context"
	stdimage "image"
	"image/jpeg"
	"testing"

	"github.com/stretchr/testify/require"

	"photo_album/pkg/repository/image"
	"photo_album/pkg/repository/settings"
)

func TestAddRetriesOnRefCollision(t *testing.T) {
	ctx := context.Background()
	store := NewStore(settings.NewMemorySettings(), image.NewMemoryRepository(nil), Options{})
	refs := []string{"a", "a", "a", "b"}
	store.newRef = func() string {
		ref := refs[0]
		refs = refs[1:]
		return ref
	}

	img := stdimage.NewGray(stdimage.Rect(0, 0, 2, 2))
	var buf bytes.Buffer
	require.NoError(t, jpeg.Encode(&buf, img, nil))
	src := buf.Bytes()

	_, first, err := store.Add(ctx, src)
	require.NoError(t, err)
	_, second, err := store.Add(ctx, src)
	require.NoError(t, err)

	require.Equal(t, "a", first.Image)
	require.Equal(t, "b", second.Image)
}
