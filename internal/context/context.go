package context

import (
	"context"
	"net/http"

	"golang.org/x/text/language"
)

type contextKey string

const (
	localeContextKey = contextKey("locale")
)

func ContextSetLocale(r *http.Request, tag language.Tag) *http.Request {
	ctx := context.WithValue(r.Context(), localeContextKey, tag)
	return r.WithContext(ctx)
}

// ContextGetLocale returns the request locale, or language.English when the
// locale middleware did not run.
func ContextGetLocale(r *http.Request) language.Tag {
	tag, ok := r.Context().Value(localeContextKey).(language.Tag)
	if !ok {
		return language.English
	}

	return tag
}
