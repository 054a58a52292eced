package main

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/text/language"

	"github.com/pontoeletronico/ponto-reports/internal/config"
	"github.com/pontoeletronico/ponto-reports/internal/domain/payment"
	"github.com/pontoeletronico/ponto-reports/internal/domain/summary"
	"github.com/pontoeletronico/ponto-reports/internal/pkg/locale"
	"github.com/pontoeletronico/ponto-reports/internal/pkg/pontoapi"
	"github.com/pontoeletronico/ponto-reports/internal/repository/upstream"
	paymentService "github.com/pontoeletronico/ponto-reports/internal/service/payment"
	summaryService "github.com/pontoeletronico/ponto-reports/internal/service/summary"
)

// app holds what every subcommand needs once flags and profile are merged.
type app struct {
	profilePath string
	profile     *config.Profile

	apiURL   string
	token    string
	tz       string
	locale   string
	logLevel string
	timeout  time.Duration
	jsonOut  bool

	loc       *time.Location
	tag       language.Tag
	client    *pontoapi.Client
	summaries summary.SummaryService
	payments  payment.PaymentService
	now       func() time.Time
}

func (a *app) bindFlags(cmd *cobra.Command) {
	defaultPath, _ := config.ProfilePath()

	f := cmd.PersistentFlags()
	f.StringVar(&a.profilePath, "profile", defaultPath, "Profile file")
	f.StringVar(&a.apiURL, "api-url", "", "Ponto API base URL (overrides profile)")
	f.StringVar(&a.token, "token", "", "Bearer token (overrides profile)")
	f.StringVar(&a.tz, "tz", "", "Timezone for \"today\" (overrides profile)")
	f.StringVar(&a.locale, "locale", "", "Locale for month labels (overrides profile)")
	f.StringVar(&a.logLevel, "log-level", "warn", "Log level: debug, info, warn, error")
	f.DurationVar(&a.timeout, "timeout", 30*time.Second, "Upstream request timeout")
	f.BoolVar(&a.jsonOut, "json", false, "Print JSON instead of tables")
}

// setup merges profile and flags and builds the services.
func (a *app) setup(cmd *cobra.Command) error {
	var level slog.Level
	if err := level.UnmarshalText([]byte(a.logLevel)); err != nil {
		return fmt.Errorf("invalid log level %q", a.logLevel)
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level})))

	profile, err := config.LoadProfile(a.profilePath)
	if err != nil {
		return err
	}
	a.profile = profile

	a.apiURL = firstNonEmpty(a.apiURL, profile.APIURL)
	a.token = firstNonEmpty(a.token, profile.Token)
	a.tz = firstNonEmpty(a.tz, profile.Timezone)
	a.locale = firstNonEmpty(a.locale, profile.Locale)

	a.loc, err = time.LoadLocation(a.tz)
	if err != nil {
		return fmt.Errorf("invalid timezone %q: %w", a.tz, err)
	}
	a.tag = locale.Match(a.locale)
	if a.now == nil {
		a.now = time.Now
	}

	opts := []pontoapi.Option{pontoapi.WithTimeout(a.timeout)}
	if a.token != "" {
		opts = append(opts, pontoapi.WithStaticToken(a.token))
	}
	a.client = pontoapi.New(a.apiURL, opts...)

	a.summaries = summaryService.NewSummaryService(
		a.client,
		summaryService.NewAggregator(),
		a.loc,
		summaryService.WithClock(a.now),
	)
	a.payments = paymentService.NewPaymentService(
		upstream.NewPaymentRepository(a.client),
		a.loc,
		paymentService.WithClock(a.now),
		paymentService.WithDefaultLocale(a.tag),
	)

	slog.Debug("Profile loaded", "path", a.profilePath, "api_url", a.apiURL, "timezone", a.tz, "locale", a.tag.String())
	return nil
}

func (a *app) requireAPI() error {
	if a.apiURL == "" {
		return fmt.Errorf("no API URL: run `pontoctl config set api_url <url>` or pass --api-url")
	}
	return nil
}

// print writes v as indented JSON with --json, otherwise the rendered table.
func (a *app) print(w io.Writer, v interface{}, render func() string) error {
	if a.jsonOut {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	}
	_, err := fmt.Fprintln(w, render())
	return err
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}
