// Package ssr expands the custom elements used in the HTML templates into plain HTML on the server.
package ssr

import (
	"fmt"
	"io"
	"math"
	"strconv"

	"github.com/PuerkitoBio/goquery"
	"github.com/myrjola/bayescalc/internal/errors"
	"golang.org/x/net/html"
)

const (
	buttonPrimaryClass = "button-primary"
	gaugeClass         = "gauge"
	gaugeFillClass     = "gauge-fill"
	gaugeGuiltClass    = "gauge-fill-guilt"
)

// ExpandCustomElements expands the custom elements of an HTML fragment and writes the resulting fragment to writer.
func ExpandCustomElements(writer io.Writer, reader io.Reader) error {
	doc, err := goquery.NewDocumentFromReader(reader)
	if err != nil {
		return errors.Wrap(err, "parse fragment")
	}
	expand(doc)

	body := doc.Find("body")
	if len(body.Nodes) > 0 {
		for c := body.Nodes[0].FirstChild; c != nil; c = c.NextSibling {
			if err = html.Render(writer, c); err != nil {
				return errors.Wrap(err, "render html")
			}
		}
	}
	return nil
}

// ExpandDocument expands the custom elements of a complete HTML document.
func ExpandDocument(writer io.Writer, reader io.Reader) error {
	doc, err := goquery.NewDocumentFromReader(reader)
	if err != nil {
		return errors.Wrap(err, "parse document")
	}
	expand(doc)

	if _, err = io.WriteString(writer, "<!DOCTYPE html>\n"); err != nil {
		return errors.Wrap(err, "write doctype")
	}
	for c := doc.Nodes[0].FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.DoctypeNode {
			continue
		}
		if err = html.Render(writer, c); err != nil {
			return errors.Wrap(err, "render html")
		}
	}
	return nil
}

func expand(doc *goquery.Document) {
	doc.Find(`[as="button-primary"]`).Each(func(_ int, s *goquery.Selection) {
		s.RemoveAttr("as")
		s.AddClass(buttonPrimaryClass)
	})

	// <posterior-gauge value="0.67"></posterior-gauge> becomes a horizontal bar filled to 67%.
	doc.Find("posterior-gauge").Each(func(_ int, s *goquery.Selection) {
		value, _ := s.Attr("value")
		p, err := strconv.ParseFloat(value, 64)
		if err != nil || math.IsNaN(p) {
			p = 0
		}
		p = math.Min(1, math.Max(0, p))
		width := strconv.FormatFloat(p*100, 'f', 2, 64) //nolint:mnd // percent
		fillClass := gaugeFillClass
		if p >= 0.5 { //nolint:mnd // guilt is more likely than not
			fillClass += " " + gaugeGuiltClass
		}
		s.ReplaceWithHtml(fmt.Sprintf(
			`<div class="%s" role="meter" aria-valuemin="0" aria-valuemax="100" aria-valuenow="%s">`+
				`<div class="%s" style="width: %s%%"></div></div>`,
			gaugeClass, width, fillClass, width))
	})
}
