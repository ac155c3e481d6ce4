package etree_test

import (
	"strings"
	"testing"

	"github.com/fwojciec/surflink"
	"github.com/fwojciec/surflink/etree"
	"github.com/fwojciec/surflink/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Ensure Parser implements surflink.Parser at compile time.
var _ surflink.Parser = (*etree.Parser)(nil)

const feed = `<?xml version="1.0" encoding="UTF-8"?>
<feed xmlns="http://www.w3.org/2005/Atom" xmlns:xlink="http://www.w3.org/1999/xlink">
  <link href="https://example.com/"/>
  <entry>
    <title>First</title>
    <link href="/posts/first"/>
    <media src="/img/first.png"/>
  </entry>
  <entry>
    <link xlink:href="/posts/second"/>
  </entry>
</feed>`

func parse(t *testing.T, markup string) surflink.Tree {
	t.Helper()
	tree, err := etree.NewParser().Parse(strings.NewReader(markup))
	require.NoError(t, err)
	return tree
}

func TestParser_Parse(t *testing.T) {
	t.Parallel()

	t.Run("rejects malformed XML", func(t *testing.T) {
		t.Parallel()

		_, err := etree.NewParser().Parse(strings.NewReader(`<feed><link href="x"></feed>`))

		assert.Equal(t, surflink.EINVALID, surflink.ErrorCode(err))
	})
}

func TestTree_Select(t *testing.T) {
	t.Parallel()

	tree := parse(t, feed)

	els := tree.Select([]string{"src", "href"})

	require.Len(t, els, 3)
	assert.Equal(t, "link", els[0].TagName())
	assert.Equal(t, "link", els[1].TagName())
	assert.Equal(t, "media", els[2].TagName())

	prefixed := tree.Select([]string{"xlink:href"})
	require.Len(t, prefixed, 1)
	v, ok := prefixed[0].Attr("xlink:href")
	assert.True(t, ok)
	assert.Equal(t, "/posts/second", v)
}

func TestTree_FindFirst(t *testing.T) {
	t.Parallel()

	tree := parse(t, feed)

	entry, ok := tree.FindFirst("Entry")
	require.True(t, ok)
	assert.Equal(t, "entry", entry.TagName())

	els := entry.Subtree().Select([]string{"href", "src"})
	require.Len(t, els, 2)
	v, _ := els[0].Attr("href")
	assert.Equal(t, "/posts/first", v)

	_, ok = tree.FindFirst("summary")
	assert.False(t, ok)
}

func TestElement_AttrNames(t *testing.T) {
	t.Parallel()

	tree := parse(t, `<root><link rel="alternate" type="text/html" href="/x"/></root>`)

	el, ok := tree.FindFirst("link")
	require.True(t, ok)

	assert.Equal(t, []string{"rel", "type", "href"}, el.AttrNames())
}

func TestParser_BuildsDocument(t *testing.T) {
	t.Parallel()

	urls := &mock.URLResolver{
		GuessContentTypeFn: func(string, bool) string { return "" },
		JoinFn:             func(_, ref string) string { return ref },
	}
	b := surflink.NewBuilder(etree.NewParser(), urls)

	doc, err := b.Build(feed, surflink.Config{})

	require.NoError(t, err)
	assert.Equal(t, []string{"https://example.com/", "/posts/first", "/img/first.png"}, doc.Links().RawURLs())
}
