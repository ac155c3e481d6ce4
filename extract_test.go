package surflink_test

import (
	"strings"
	"testing"

	"github.com/fwojciec/surflink"
	"github.com/fwojciec/surflink/goquery"
	"github.com/fwojciec/surflink/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func parseHTML(t *testing.T, markup string) surflink.Tree {
	t.Helper()
	tree, err := goquery.NewParser().Parse(strings.NewReader(markup))
	require.NoError(t, err)
	return tree
}

func TestExtract(t *testing.T) {
	t.Parallel()

	t.Run("returns elements in document order", func(t *testing.T) {
		t.Parallel()

		tree := parseHTML(t, `<html><head><link rel="stylesheet" href="a.css"></head>
			<body><p>text</p><a href="/one">1</a><img src="b.png"><a name="anchor">x</a></body></html>`)

		got, err := surflink.Extract(tree, nil, "")

		require.NoError(t, err)
		require.Len(t, got, 3)
		assert.Equal(t, "a.css", got[0].Value)
		assert.Equal(t, "href", got[0].Attr)
		assert.Equal(t, "link", got[0].Element.TagName())
		assert.Equal(t, "/one", got[1].Value)
		assert.Equal(t, "b.png", got[2].Value)
		assert.Equal(t, "src", got[2].Attr)
	})

	t.Run("first attribute in priority order wins", func(t *testing.T) {
		t.Parallel()

		tree := parseHTML(t, `<img src="a.png" href="b.png">`)

		byDefault, err := surflink.Extract(tree, nil, "")
		require.NoError(t, err)
		require.Len(t, byDefault, 1)
		assert.Equal(t, "src", byDefault[0].Attr)
		assert.Equal(t, "a.png", byDefault[0].Value)

		reversed, err := surflink.Extract(tree, []string{"href", "src"}, "")
		require.NoError(t, err)
		require.Len(t, reversed, 1)
		assert.Equal(t, "href", reversed[0].Attr)
		assert.Equal(t, "b.png", reversed[0].Value)
	})

	t.Run("searches custom attributes", func(t *testing.T) {
		t.Parallel()

		tree := parseHTML(t, `<img data-src="lazy.png" src="placeholder.gif"><form action="/submit"></form>`)

		got, err := surflink.Extract(tree, []string{"data-src", "action"}, "")

		require.NoError(t, err)
		require.Len(t, got, 2)
		assert.Equal(t, "lazy.png", got[0].Value)
		assert.Equal(t, "/submit", got[1].Value)
	})

	t.Run("keeps empty attribute values", func(t *testing.T) {
		t.Parallel()

		tree := parseHTML(t, `<a href="">empty</a>`)

		got, err := surflink.Extract(tree, nil, "")

		require.NoError(t, err)
		require.Len(t, got, 1)
		assert.Empty(t, got[0].Value)
	})

	t.Run("limits search to the start tag", func(t *testing.T) {
		t.Parallel()

		tree := parseHTML(t, `<a href="/outside">o</a><article><a href="/inside">i</a><img src="in.png"></article><a href="/after">a</a>`)

		got, err := surflink.Extract(tree, nil, "article")

		require.NoError(t, err)
		require.Len(t, got, 2)
		assert.Equal(t, "/inside", got[0].Value)
		assert.Equal(t, "in.png", got[1].Value)
	})

	t.Run("uses the first matching start tag", func(t *testing.T) {
		t.Parallel()

		tree := parseHTML(t, `<section><a href="/first">1</a></section><section><a href="/second">2</a></section>`)

		got, err := surflink.Extract(tree, nil, "SECTION")

		require.NoError(t, err)
		require.Len(t, got, 1)
		assert.Equal(t, "/first", got[0].Value)
	})

	t.Run("returns not found for missing start tag", func(t *testing.T) {
		t.Parallel()

		tree := parseHTML(t, `<div><a href="/x">x</a></div>`)

		got, err := surflink.Extract(tree, nil, "article")

		assert.Nil(t, got)
		assert.Equal(t, surflink.ENOTFOUND, surflink.ErrorCode(err))
	})

	t.Run("selects from the start tag subtree", func(t *testing.T) {
		t.Parallel()

		var selected []string
		inner := &mock.Tree{
			SelectFn: func(attrs []string) []surflink.Element {
				selected = attrs
				return []surflink.Element{
					&mock.Element{Tag: "a", Attrs: [][2]string{{"href", "/in"}}},
				}
			},
		}
		tree := &mock.Tree{
			FindFirstFn: func(tag string) (surflink.Element, bool) {
				assert.Equal(t, "main", tag)
				return &mock.Element{Tag: "main", Children: inner}, true
			},
			SelectFn: func(attrs []string) []surflink.Element {
				t.Fatal("outer tree must not be searched")
				return nil
			},
		}

		got, err := surflink.Extract(tree, nil, "main")

		require.NoError(t, err)
		assert.Equal(t, surflink.DefaultAttrs, selected)
		require.Len(t, got, 1)
		assert.Equal(t, "/in", got[0].Value)
	})
}
