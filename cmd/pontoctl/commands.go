package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/spf13/cobra"

	"github.com/pontoeletronico/ponto-reports/internal/config"
	"github.com/pontoeletronico/ponto-reports/internal/domain/payment"
	"github.com/pontoeletronico/ponto-reports/internal/domain/summary"
	"github.com/pontoeletronico/ponto-reports/internal/pkg/calendar"
	"github.com/pontoeletronico/ponto-reports/internal/pkg/pontoapi"
	daterangeService "github.com/pontoeletronico/ponto-reports/internal/service/daterange"
	"github.com/pontoeletronico/ponto-reports/internal/tui"
)

func newRootCmd() *cobra.Command {
	a := &app{}

	rootCmd := &cobra.Command{
		Use:           "pontoctl",
		Short:         "Attendance reports from the ponto API",
		Long:          `pontoctl queries daily and monthly attendance summaries, aggregates company reports and manages payment months.`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup(cmd)
		},
	}
	a.bindFlags(rootCmd)

	rootCmd.AddCommand(
		newConfigCmd(a),
		newLoginCmd(a),
		newSummaryCmd(a),
		newRecalcCmd(a),
		newRebuildCmd(a),
		newMonthlyCmd(a),
		newPaymentsCmd(a),
		newPickCmd(a),
	)
	return rootCmd
}

func newConfigCmd(a *app) *cobra.Command {
	configCmd := &cobra.Command{
		Use:   "config",
		Short: "Show or change the saved profile",
		// only the profile file, so a broken profile can still be repaired
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			profile, err := config.LoadProfile(a.profilePath)
			if err != nil {
				return err
			}
			a.profile = profile
			return nil
		},
	}

	showCmd := &cobra.Command{
		Use:   "show",
		Short: "Print the profile",
		RunE: func(cmd *cobra.Command, args []string) error {
			p := *a.profile
			if p.Token != "" {
				p.Token = maskToken(p.Token)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "# %s\n", a.profilePath)
			return toml.NewEncoder(cmd.OutOrStdout()).Encode(p)
		},
	}

	setCmd := &cobra.Command{
		Use:   "set <key> <value>",
		Short: "Set one profile key (api_url, token, timezone, locale, reset_delay)",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.profile.Set(args[0], args[1]); err != nil {
				return err
			}
			if err := config.SaveProfile(a.profilePath, a.profile); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s updated\n", args[0])
			return nil
		},
	}

	configCmd.AddCommand(showCmd, setCmd)
	return configCmd
}

func maskToken(t string) string {
	if len(t) <= 8 {
		return "********"
	}
	return "********" + t[len(t)-4:]
}

func newLoginCmd(a *app) *cobra.Command {
	var userID, password string

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Log in with company credentials and save the token",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.requireAPI(); err != nil {
				return err
			}
			if userID == "" || password == "" {
				return fmt.Errorf("--user and --password are required")
			}

			resp, err := a.client.Login(cmd.Context(), pontoapi.LoginRequest{UserID: userID, Password: password})
			if err != nil {
				return err
			}

			a.profile.APIURL = a.apiURL
			a.profile.Token = resp.Token
			if err := config.SaveProfile(a.profilePath, a.profile); err != nil {
				return err
			}

			name := firstNonEmpty(resp.CompanyName, resp.CompanyID)
			fmt.Fprintln(cmd.OutOrStdout(), tui.SuccessStyle.Render("Logged in as "+name))
			return nil
		},
	}
	cmd.Flags().StringVarP(&userID, "user", "u", "", "Company user id")
	cmd.Flags().StringVarP(&password, "password", "p", "", "Password")
	return cmd
}

func newSummaryCmd(a *app) *cobra.Command {
	summaryCmd := &cobra.Command{
		Use:   "summary",
		Short: "Company and daily summaries",
	}

	var from, to string
	companyCmd := &cobra.Command{
		Use:   "company",
		Short: "Company summary for one day or a range",
		Long: `Company summary. With a single day the upstream dashboard is printed as sent,
with a range the daily summaries are aggregated per employee.

Examples:
  pontoctl summary company                          # today
  pontoctl summary company --from 2025-03-01 --to 2025-03-31`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.requireAPI(); err != nil {
				return err
			}
			return a.runCompanyReport(cmd, from, to)
		},
	}
	companyCmd.Flags().StringVar(&from, "from", "", "First day (YYYY-MM-DD)")
	companyCmd.Flags().StringVar(&to, "to", "", "Last day (YYYY-MM-DD)")

	var listFrom, listTo, employee string
	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List daily summaries in a range",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.requireAPI(); err != nil {
				return err
			}
			list, err := a.summaries.ListDailySummaries(cmd.Context(), summary.ListDailySummariesRequest{
				EmployeeID: employee,
				DateFrom:   listFrom,
				DateTo:     listTo,
			})
			if err != nil {
				return err
			}
			return a.print(cmd.OutOrStdout(), list, func() string { return tui.RenderDailySummaries(list) })
		},
	}
	listCmd.Flags().StringVar(&listFrom, "from", "", "First day (YYYY-MM-DD)")
	listCmd.Flags().StringVar(&listTo, "to", "", "Last day (YYYY-MM-DD)")
	listCmd.Flags().StringVarP(&employee, "employee", "e", "", "Only this employee")

	dayCmd := &cobra.Command{
		Use:   "day <employee> <date>",
		Short: "One employee-day",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.requireAPI(); err != nil {
				return err
			}
			item, err := a.summaries.GetDailySummary(cmd.Context(), summary.DailySummaryRequest{EmployeeID: args[0], Date: args[1]})
			if err != nil {
				return err
			}
			return a.printDay(cmd, item)
		},
	}

	summaryCmd.AddCommand(companyCmd, listCmd, dayCmd)
	return summaryCmd
}

func (a *app) runCompanyReport(cmd *cobra.Command, from, to string) error {
	result, err := a.summaries.GetCompanySummary(cmd.Context(), summary.CompanySummaryRequest{DateFrom: from, DateTo: to})
	if err != nil {
		return err
	}

	if result.IsSingleDay() {
		var buf bytes.Buffer
		if err := json.Indent(&buf, result.Day, "", "  "); err != nil {
			buf.Reset()
			buf.Write(result.Day)
		}
		fmt.Fprintln(cmd.OutOrStdout(), buf.String())
		return nil
	}
	return a.print(cmd.OutOrStdout(), result.Range, func() string { return tui.RenderRangeReport(result.Range) })
}

func (a *app) printDay(cmd *cobra.Command, item *summary.DailySummary) error {
	list := &summary.DailySummaryList{DateFrom: item.Date, DateTo: item.Date, Total: 1, Items: []summary.DailySummary{*item}}
	return a.print(cmd.OutOrStdout(), item, func() string { return tui.RenderDailySummaries(list) })
}

func newRecalcCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "recalc <employee> <date>",
		Short: "Ask the ponto API to recompute one employee-day",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.requireAPI(); err != nil {
				return err
			}
			item, err := a.summaries.RecalculateDaily(cmd.Context(), summary.RecalculateDailyRequest{EmployeeID: args[0], Date: args[1]})
			if err != nil {
				return err
			}
			return a.printDay(cmd, item)
		},
	}
}

func newRebuildCmd(a *app) *cobra.Command {
	var from, to string
	cmd := &cobra.Command{
		Use:   "rebuild <employee>",
		Short: "Ask the ponto API to rebuild an employee's daily summaries in a range",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.requireAPI(); err != nil {
				return err
			}
			result, err := a.summaries.RebuildDaily(cmd.Context(), summary.RebuildDailyRequest{
				EmployeeID: args[0],
				DateFrom:   from,
				DateTo:     to,
			})
			if err != nil {
				return err
			}
			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(result)
		},
	}
	cmd.Flags().StringVar(&from, "from", "", "First day (YYYY-MM-DD)")
	cmd.Flags().StringVar(&to, "to", "", "Last day (YYYY-MM-DD)")
	return cmd
}

func newMonthlyCmd(a *app) *cobra.Command {
	var month string
	var employees []string
	cmd := &cobra.Command{
		Use:   "monthly",
		Short: "Monthly summaries for one or more employees",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.requireAPI(); err != nil {
				return err
			}
			if month == "" {
				month = calendar.FromTime(a.now().In(a.loc)).YearMonth().String()
			}
			items, err := a.summaries.GetMonthlySummaries(cmd.Context(), summary.MonthlySummariesRequest{
				Month:       month,
				EmployeeIDs: employees,
			})
			if err != nil {
				return err
			}
			return a.print(cmd.OutOrStdout(), items, func() string { return tui.RenderMonthly(items) })
		},
	}
	cmd.Flags().StringVarP(&month, "month", "m", "", "Month (YYYY-MM, default current)")
	cmd.Flags().StringSliceVarP(&employees, "employee", "e", nil, "Employee id (repeatable or comma-separated)")
	return cmd
}

func newPaymentsCmd(a *app) *cobra.Command {
	var companyID string
	paymentsCmd := &cobra.Command{
		Use:   "payments",
		Short: "Company payment months (admin token required)",
	}
	paymentsCmd.PersistentFlags().StringVarP(&companyID, "company", "c", "", "Company id")

	var center string
	windowCmd := &cobra.Command{
		Use:   "window",
		Short: "Nine-month payment window around a month",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.requireAPI(); err != nil {
				return err
			}
			w, err := a.payments.GetWindow(cmd.Context(), payment.WindowRequest{
				CompanyID: companyID,
				Center:    center,
				Locale:    a.tag.String(),
			})
			if err != nil {
				return err
			}
			return a.print(cmd.OutOrStdout(), w, func() string { return tui.RenderPaymentWindow(w.CompanyID, w.Months) })
		},
	}
	windowCmd.Flags().StringVar(&center, "center", "", "Center month (YYYY-MM, default current)")

	var month, paid string
	setCmd := &cobra.Command{
		Use:   "set",
		Short: "Mark a month paid or unpaid",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.requireAPI(); err != nil {
				return err
			}
			req := payment.SetPaymentStatusRequest{MonthYear: month}
			if paid != "" {
				v, err := strconv.ParseBool(paid)
				if err != nil {
					return fmt.Errorf("--paid must be true or false")
				}
				req.IsPaid = &v
			}
			resp, err := a.payments.SetPaymentStatus(cmd.Context(), companyID, req)
			if err != nil {
				return err
			}
			return a.print(cmd.OutOrStdout(), resp, func() string {
				return fmt.Sprintf("%s %s paid=%t", resp.CompanyID, month, resp.Payments[month])
			})
		},
	}
	setCmd.Flags().StringVarP(&month, "month", "m", "", "Month (YYYY-MM)")
	setCmd.Flags().StringVar(&paid, "paid", "", "true or false")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "Every stored month and its flag",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.requireAPI(); err != nil {
				return err
			}
			resp, err := a.payments.ListPayments(cmd.Context(), companyID)
			if err != nil {
				return err
			}
			return a.print(cmd.OutOrStdout(), resp, func() string { return formatPayments(resp) })
		},
	}

	paymentsCmd.AddCommand(windowCmd, setCmd, listCmd)
	return paymentsCmd
}

func formatPayments(resp *payment.PaymentsResponse) string {
	if len(resp.Payments) == 0 {
		return tui.DimStyle.Render("No payment months recorded.")
	}
	months := make([]string, 0, len(resp.Payments))
	for m := range resp.Payments {
		months = append(months, m)
	}
	// YYYY-MM sorts chronologically as text
	sort.Strings(months)

	var b strings.Builder
	for _, m := range months {
		fmt.Fprintf(&b, "%s  paid=%t\n", m, resp.Payments[m])
	}
	return strings.TrimRight(b.String(), "\n")
}

func newPickCmd(a *app) *cobra.Command {
	var minDate, maxDate string
	cmd := &cobra.Command{
		Use:   "pick",
		Short: "Pick a date range on a calendar and print the company report",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.requireAPI(); err != nil {
				return err
			}

			var opts []daterangeService.SelectorOption
			lo, hi, err := parseBounds(minDate, maxDate)
			if err != nil {
				return err
			}
			opts = append(opts, daterangeService.WithBounds(lo, hi))

			today := calendar.FromTime(a.now().In(a.loc))
			r, ok, err := tui.RunPicker(tui.NewPicker(today, a.tag, opts...))
			if err != nil {
				return err
			}
			if !ok {
				fmt.Fprintln(cmd.OutOrStdout(), tui.DimStyle.Render("No range selected."))
				return nil
			}
			return a.runCompanyReport(cmd, r.StartDate, r.EndDate)
		},
	}
	cmd.Flags().StringVar(&minDate, "min", "", "First selectable day (YYYY-MM-DD)")
	cmd.Flags().StringVar(&maxDate, "max", "", "Last selectable day (YYYY-MM-DD)")
	return cmd
}

func parseBounds(minDate, maxDate string) (lo, hi calendar.Date, err error) {
	if minDate != "" {
		if lo, err = calendar.ParseDate(minDate); err != nil {
			return lo, hi, fmt.Errorf("--min: %w", err)
		}
	}
	if maxDate != "" {
		if hi, err = calendar.ParseDate(maxDate); err != nil {
			return lo, hi, fmt.Errorf("--max: %w", err)
		}
	}
	if !lo.IsZero() && !hi.IsZero() && hi.Before(lo) {
		return lo, hi, fmt.Errorf("--max must not be before --min")
	}
	return lo, hi, nil
}
