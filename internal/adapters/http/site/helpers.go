package site

import (
	"html/template"
	"strings"

	"github.com/dustin/go-humanize/english"
)

// pageTitle returns the <title> of a page: the site title, followed by the
// page name when there is one.
func pageTitle(site, page string) string {
	if page == "" {
		return site
	}
	return site + " - " + page
}

// countLabel pluralizes label for count ("1 train", "3 trains").
func countLabel(count int, label string) string {
	return english.Plural(count, label, "")
}

// classes builds a class attribute from name/include pairs, keeping the
// names whose flag is true in the given order:
//
//	{{classes "form-control" true "is-invalid" .Invalid}}
func classes(pairs ...any) string {
	names := make([]string, 0, len(pairs)/2)
	for i := 0; i+1 < len(pairs); i += 2 {
		name, ok := pairs[i].(string)
		include, _ := pairs[i+1].(bool)
		if ok && include {
			names = append(names, name)
		}
	}
	return strings.Join(names, " ")
}

// segmentTitle turns a URL segment into a breadcrumb label
// ("ticket-to-ride" -> "Ticket To Ride").
func segmentTitle(segment string) string {
	words := strings.Split(segment, "-")
	for i, w := range words {
		if w != "" {
			words[i] = strings.ToUpper(w[:1]) + w[1:]
		}
	}
	return strings.Join(words, " ")
}

type crumb struct {
	Label string
	Href  string
}

// breadcrumbs returns the trail for path, starting at Home. The last crumb
// has no link. A non-empty last replaces the label of the final segment.
func breadcrumbs(path, last string) []crumb {
	crumbs := []crumb{{Label: "Home", Href: "/"}}
	segments := strings.FieldsFunc(path, func(r rune) bool { return r == '/' })
	href := ""
	for i, seg := range segments {
		href += "/" + seg
		c := crumb{Label: segmentTitle(seg), Href: href}
		if i == len(segments)-1 {
			if last != "" {
				c.Label = last
			}
			c.Href = ""
		}
		crumbs = append(crumbs, c)
	}
	if len(segments) == 0 {
		crumbs[0].Href = ""
	}
	return crumbs
}

var funcs = template.FuncMap{
	"classes":    classes,
	"countLabel": countLabel,
}
