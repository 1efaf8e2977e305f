package blogdesk

import (
	"encoding/xml"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
)

const sitemapNS = "http://www.sitemaps.org/schemas/sitemap/0.9"

type sitemapURLSet struct {
	XMLName xml.Name     `xml:"urlset"`
	XMLNS   string       `xml:"xmlns,attr"`
	URLs    []sitemapURL `xml:"url"`
}

type sitemapURL struct {
	Loc        string `xml:"loc"`
	LastMod    string `xml:"lastmod,omitempty"`
	ChangeFreq string `xml:"changefreq,omitempty"`
}

// renderSitemap lists the feed and the preview page of every published blog.
// blogs must already be filtered to published ones, newest first.
func (a *App) renderSitemap(c echo.Context, blogs []Blog) error {
	urls := make([]sitemapURL, 0, len(blogs)+1)
	feed := sitemapURL{Loc: strings.TrimRight(a.Config.URL, "/") + "/feed.xml", ChangeFreq: "daily"}
	if len(blogs) > 0 {
		feed.LastMod = blogs[0].UpdatedAt.UTC().Format("2006-01-02")
	}
	urls = append(urls, feed)
	for _, b := range blogs {
		urls = append(urls, sitemapURL{
			Loc:        BuildURL(a.Config.URL, "preview", b.ID),
			LastMod:    b.UpdatedAt.UTC().Format("2006-01-02"),
			ChangeFreq: "weekly",
		})
	}

	c.Response().Header().Set(echo.HeaderContentType, "application/xml; charset=utf-8")
	c.Response().WriteHeader(http.StatusOK)
	if _, err := c.Response().Write([]byte(xml.Header)); err != nil {
		return err
	}
	return xml.NewEncoder(c.Response()).Encode(sitemapURLSet{XMLNS: sitemapNS, URLs: urls})
}
