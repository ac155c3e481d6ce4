package surflink_test

import (
	"testing"

	"github.com/fwojciec/surflink"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewReport(t *testing.T) {
	t.Parallel()

	t.Run("records every link with provenance", func(t *testing.T) {
		t.Parallel()

		doc := build(t, `<link rel="stylesheet" href="/a.css"><a href="/about" type="text/html">x</a>`, surflink.Config{BaseURL: "https://example.com/", Absolutize: true})

		report, err := surflink.NewReport("index.html", doc, surflink.KindAll)
		require.NoError(t, err)

		assert.Equal(t, "index.html", report.Source)
		assert.Equal(t, "https://example.com/", report.BaseLink)
		assert.True(t, report.Config.Absolutize)
		require.Len(t, report.Links, 2)

		css := report.Links[0]
		assert.Equal(t, 0, css.Position)
		assert.Equal(t, "/a.css", css.Raw)
		assert.Equal(t, "https://example.com/a.css", css.URL)
		assert.Equal(t, "https://example.com/a.css", css.Absolute)
		assert.Equal(t, "link", css.Tag)
		assert.Equal(t, "href", css.Attr)
		require.NotNil(t, css.Rel)
		assert.Equal(t, "stylesheet", *css.Rel)
		assert.Nil(t, css.Type)
		assert.Equal(t, "text/css", css.ContentType)
		assert.Contains(t, css.Kinds, surflink.KindStylesheet)

		about := report.Links[1]
		require.NotNil(t, about.Type)
		assert.Equal(t, "text/html", *about.Type)
		assert.Nil(t, about.Rel)
	})

	t.Run("keeps document positions when filtering", func(t *testing.T) {
		t.Parallel()

		doc := build(t, `<a href="/a">a</a><img src="b.png"><a href="/c">c</a><img src="d.png">`, surflink.Config{})

		report, err := surflink.NewReport("page.html", doc, surflink.KindImage)
		require.NoError(t, err)

		require.Len(t, report.Links, 2)
		assert.Equal(t, 1, report.Links[0].Position)
		assert.Equal(t, 3, report.Links[1].Position)
	})

	t.Run("rejects unknown kind", func(t *testing.T) {
		t.Parallel()

		doc := build(t, `<a href="/a">a</a>`, surflink.Config{})

		_, err := surflink.NewReport("page.html", doc, "fonts")

		assert.Equal(t, surflink.EINVALID, surflink.ErrorCode(err))
	})
}

func TestReport_Validate(t *testing.T) {
	t.Parallel()

	assert.Equal(t, surflink.EINVALID, surflink.ErrorCode((&surflink.Report{}).Validate()))
	assert.NoError(t, (&surflink.Report{Source: "-"}).Validate())
}
