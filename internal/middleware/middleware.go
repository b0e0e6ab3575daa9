package middleware

import (
	"fmt"
	"log/slog"
	"net/http"

	"github.com/cradoe/peoplepay/internal/context"
	"github.com/cradoe/peoplepay/internal/errHandler"
	"github.com/cradoe/peoplepay/internal/response"

	"github.com/tomasen/realip"
	"golang.org/x/text/language"
)

// SupportedLocales are the locales amounts can be formatted in. The first
// entry is the matcher's fallback.
var SupportedLocales = []language.Tag{
	language.English,
	language.AmericanEnglish,
	language.BritishEnglish,
	language.MustParse("en-IN"),
	language.MustParse("en-PH"),
	language.MustParse("en-AU"),
	language.MustParse("en-CA"),
	language.MustParse("en-SG"),
	language.MustParse("en-MY"),
	language.MustParse("si-LK"),
	language.German,
	language.French,
}

var localeMatcher = language.NewMatcher(SupportedLocales)

// MatchLocale maps tag onto SupportedLocales. Weak matches, such as any
// language falling back to English, report false.
func MatchLocale(tag language.Tag) (language.Tag, bool) {
	_, index, confidence := localeMatcher.Match(tag)
	if confidence < language.High {
		return language.Und, false
	}
	return SupportedLocales[index], true
}

type Middleware struct {
	errHandler    *errHandler.ErrorRepository
	logger        *slog.Logger
	defaultLocale language.Tag
	matcher       language.Matcher
}

func New(errHandler *errHandler.ErrorRepository, logger *slog.Logger, defaultLocale string) *Middleware {
	tag, err := language.Parse(defaultLocale)
	if err != nil {
		tag = language.English
	}

	return &Middleware{
		errHandler:    errHandler,
		logger:        logger,
		defaultLocale: tag,
		matcher:       localeMatcher,
	}
}

func (mid *Middleware) RecoverPanic(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			err := recover()
			if err != nil {
				mid.errHandler.ServerError(w, r, fmt.Errorf("%s", err))
			}
		}()

		next.ServeHTTP(w, r)
	})
}

func (mid *Middleware) LogAccess(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		mw := response.NewMetricsResponseWriter(w)
		next.ServeHTTP(mw, r)

		var (
			ip     = realip.FromRequest(r)
			method = r.Method
			url    = r.URL.String()
			proto  = r.Proto
		)

		userAttrs := slog.Group("user", "ip", ip)
		requestAttrs := slog.Group("request", "method", method, "url", url, "proto", proto)
		responseAttrs := slog.Group("response", "status", mw.StatusCode, "size", mw.BytesCount)

		mid.logger.Info("access", userAttrs, requestAttrs, responseAttrs)
	})
}

// DetectLocale stores the best supported match for Accept-Language on the
// request context, falling back to the configured default locale.
func (mid *Middleware) DetectLocale(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Add("Vary", "Accept-Language")

		locale := mid.defaultLocale

		tags, _, err := language.ParseAcceptLanguage(r.Header.Get("Accept-Language"))
		if err == nil && len(tags) > 0 {
			_, index, confidence := mid.matcher.Match(tags...)
			if confidence != language.No {
				locale = SupportedLocales[index]
			}
		}

		next.ServeHTTP(w, context.ContextSetLocale(r, locale))
	})
}
