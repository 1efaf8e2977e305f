package blogdesk

import (
	"encoding/xml"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
)

type rssXML struct {
	XMLName xml.Name   `xml:"rss"`
	Version string     `xml:"version,attr"`
	Channel rssChannel `xml:"channel"`
}

type rssChannel struct {
	Title       string    `xml:"title"`
	Link        string    `xml:"link"`
	Description string    `xml:"description"`
	Items       []rssItem `xml:"item"`
}

type rssItem struct {
	Title       string   `xml:"title"`
	Link        string   `xml:"link"`
	Description string   `xml:"description"`
	Categories  []string `xml:"category"`
	PubDate     string   `xml:"pubDate"`
	GUID        string   `xml:"guid"`
}

func (a *App) renderRSS(c echo.Context, blogs []Blog) error {
	base := a.Config.URL
	items := make([]rssItem, 0, len(blogs))
	for _, b := range blogs {
		link := BuildURL(base, "preview", b.ID)
		items = append(items, rssItem{
			Title:       b.Title,
			Link:        link,
			Description: b.Summary,
			Categories:  append([]string{string(b.Category)}, b.Tags...),
			PubDate:     b.UpdatedAt.UTC().Format(time.RFC1123Z),
			GUID:        link,
		})
	}
	feed := rssXML{
		Version: "2.0",
		Channel: rssChannel{
			Title:       a.Config.Name,
			Link:        base,
			Description: a.Config.Description,
			Items:       items,
		},
	}
	c.Response().Header().Set(echo.HeaderContentType, "application/rss+xml; charset=utf-8")
	c.Response().WriteHeader(http.StatusOK)
	c.Response().Write([]byte(xml.Header))
	return xml.NewEncoder(c.Response()).Encode(feed)
}
