// guard-demo walks through the guard package's features with styled output.
// Each subcommand demonstrates one feature; running without arguments runs
// them all in order.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/jmgilman/go/guard"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#8BC34A"))

	panelStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#2a3850")).
			Padding(0, 1)

	okStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#4db6ac"))
	failStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#e53935"))

	verbose bool
)

var rootCmd = &cobra.Command{
	Use:   "guard-demo",
	Short: "Interactive tour of the guard error-handling toolkit",
	Long: `guard-demo exercises each feature of the guard package and prints the
errors it produces, so you can see exactly what callers receive.

Run without arguments to walk through every feature in order.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		for _, demo := range []func(){
			demoRequireCondition,
			demoEnforceDefined,
			demoCheckExpressions,
			demoHandleErrors,
			demoKinds,
			demoBuilders,
		} {
			demo()
		}
		return nil
	},
}

var requireCmd = &cobra.Command{
	Use:   "require",
	Short: "Assert a single condition with RequireCondition",
	Run:   func(*cobra.Command, []string) { demoRequireCondition() },
}

var enforceCmd = &cobra.Command{
	Use:   "enforce",
	Short: "Guard against nil values with EnforceDefined",
	Run:   func(*cobra.Command, []string) { demoEnforceDefined() },
}

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Accumulate a batch of checks with CheckExpressions",
	Run:   func(*cobra.Command, []string) { demoCheckExpressions() },
}

var handleCmd = &cobra.Command{
	Use:   "handle",
	Short: "Intercept and repackage failures with HandleErrors",
	Run:   func(*cobra.Command, []string) { demoHandleErrors() },
}

var kindsCmd = &cobra.Command{
	Use:   "kinds",
	Short: "Declare error kinds and match them with errors.Is",
	Run:   func(*cobra.Command, []string) { demoKinds() },
}

var buildersCmd = &cobra.Command{
	Use:   "builders",
	Short: "Construct custom error types through builders",
	Run:   func(*cobra.Command, []string) { demoBuilders() },
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "print errors with traces (%+v)")
	rootCmd.AddCommand(requireCmd, enforceCmd, checkCmd, handleCmd, kindsCmd, buildersCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func panel(title string, lines ...string) {
	body := titleStyle.Render(title)
	for _, line := range lines {
		body += "\n" + line
	}
	fmt.Println(panelStyle.Render(body))
}

func render(err error) string {
	if err == nil {
		return okStyle.Render("<nil>")
	}
	if verbose {
		return failStyle.Render(fmt.Sprintf("%+v", err))
	}
	return failStyle.Render(err.Error())
}

func demoRequireCondition() {
	pass := guard.RequireCondition(1+1 == 2, "arithmetic is broken")
	fail := guard.RequireCondition(1+1 == 3, "one plus one must equal three",
		guard.WithField("lhs", 2))

	panel("RequireCondition",
		"passing check returns: "+render(pass),
		"failing check returns: "+render(fail),
	)
}

func demoEnforceDefined() {
	var missing *string
	_, failed := guard.EnforceDefined(missing, "")

	present := "loaded"
	value, _ := guard.EnforceDefined(&present, "")

	panel("EnforceDefined",
		"nil pointer returns:     "+render(failed),
		"defined value passes:    "+okStyle.Render(*value),
	)
}

func demoCheckExpressions() {
	err := guard.CheckExpressions("request invalid", func(c *guard.Checker) {
		c.Check(true)
		c.Check(false)
		c.Check(1 == 2, "one is not two")
		c.Check(0 > 1, "zero is not bigger than %d", 1)
	})

	panel("CheckExpressions",
		"every failed check is reported, none short-circuit:",
		render(err),
	)
}

func demoHandleErrors() {
	wrapped := guard.HandleErrors("failed to sync project", func() error {
		return errors.New("connection reset")
	})

	errNotFound := errors.New("not found")
	ignored := guard.HandleErrors("lookup failed", func() error {
		return errNotFound
	}, guard.WithIgnore(errNotFound))

	suppressed := guard.HandleErrors("best-effort cleanup", func() error {
		return errors.New("tempdir already gone")
	}, guard.WithSuppress(), guard.WithOnExcept(func(p guard.ExceptParams) {
		fmt.Println(okStyle.Render("  observed: " + p.FinalMessage))
	}))

	recovered := guard.HandleErrorsContext(context.Background(), "worker crashed",
		func(context.Context) error {
			panic("index out of range")
		})

	panel("HandleErrors",
		"wrapped failure:         "+render(wrapped),
		"ignored failure (as-is): "+render(ignored),
		"suppressed failure:      "+render(suppressed),
		"recovered panic:         "+render(recovered),
	)
}

var (
	errDemoApp = guard.Define("app_error")
	errDemoDB  = guard.Define("db_error", guard.KindParent(errDemoApp))
)

func demoKinds() {
	err := errDemoDB.HandleErrors("query failed", func() error {
		return errors.New("row not found")
	})

	panel("Kinds",
		"raised as:  "+render(err),
		fmt.Sprintf("matches db_error:  %v", errors.Is(err, errDemoDB)),
		fmt.Sprintf("matches app_error: %v (parent)", errors.Is(err, errDemoApp)),
	)
}

type httpError struct {
	Status int
	Detail string
}

func (e *httpError) Error() string {
	return fmt.Sprintf("HTTP %d: %s", e.Status, e.Detail)
}

var errDemoHTTP = guard.Define("http_error", guard.KindBuilder(func(p guard.BuildParams) error {
	return &httpError{Status: 502, Detail: p.Message}
}))

func demoBuilders() {
	err := errDemoHTTP.HandleErrors("upstream call failed", func() error {
		return errors.New("gateway timeout")
	})

	var httpErr *httpError
	errors.As(err, &httpErr)

	panel("Builders",
		"kind builder yields the custom type: "+render(err),
		fmt.Sprintf("errors.As(*httpError): status=%d", httpErr.Status),
	)
}
