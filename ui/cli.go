package ui

import (
	"fmt"
	"io"
	"text/tabwriter"
	"time"

	"rcpanel/core/applauncher"
	"rcpanel/service/panel"

	"github.com/fatih/color"
	"github.com/skratchdot/open-golang/open"
	"github.com/spf13/cobra"
)

// ServeOptions - параметры команды serve
type ServeOptions struct {
	Addr        string
	UIURL       string
	OpenBrowser bool
}

// ConsoleInterface - команды панели для терминала
type ConsoleInterface struct {
	panel *panel.Panel
	web   *WebInterface
	opts  ServeOptions
	// openURL открывает адрес в браузере, подменяется в тестах
	openURL func(string) error
}

func NewConsoleInterface(p *panel.Panel, web *WebInterface, opts ServeOptions) *ConsoleInterface {
	return &ConsoleInterface{
		panel:   p,
		web:     web,
		opts:    opts,
		openURL: open.Run,
	}
}

// RootCommand - корневая команда rcpanel
func (c *ConsoleInterface) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:           "rcpanel",
		Short:         "Local control panel for remote support sessions",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	serve := c.serveCommand()
	root.AddCommand(
		serve,
		c.listCommand(),
		c.outcomeCommand("connect", "Start a remote control session", c.panel.LaunchSession),
		c.outcomeCommand("share", `Open \\<target>\c$ in Explorer`, c.panel.OpenShare),
		c.outcomeCommand("ping", "Start a continuous ping in a new console", c.panel.StartPing),
	)

	// Без подкоманды запускается сервер
	root.RunE = serve.RunE
	root.Flags().AddFlagSet(serve.Flags())
	return root
}

func (c *ConsoleInterface) serveCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP API",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if c.opts.OpenBrowser && c.opts.UIURL != "" {
				go func() {
					time.Sleep(500 * time.Millisecond)
					if err := c.openURL(c.opts.UIURL); err != nil {
						color.New(color.FgYellow).Fprintf(cmd.ErrOrStderr(), "Failed to open browser: %v\n", err)
					}
				}()
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Control panel API listening on %s\n", c.opts.Addr)
			return c.web.Start(c.opts.Addr)
		},
	}
	cmd.Flags().StringVar(&c.opts.Addr, "addr", c.opts.Addr, "listen address")
	cmd.Flags().BoolVar(&c.opts.OpenBrowser, "open", c.opts.OpenBrowser, "open the UI in a browser")
	return cmd
}

func (c *ConsoleInterface) listCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "Print the computer inventory",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			c.printComputers(cmd.OutOrStdout())
			return nil
		},
	}
}

func (c *ConsoleInterface) outcomeCommand(use, short string, run func(string) applauncher.Outcome) *cobra.Command {
	return &cobra.Command{
		Use:   use + " <target>",
		Short: short,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return printOutcome(cmd.OutOrStdout(), run(args[0]))
		},
	}
}

func (c *ConsoleInterface) printComputers(out io.Writer) {
	computers := c.panel.ListComputers()
	if len(computers) == 0 {
		color.New(color.FgYellow).Fprintln(out, "No computers found, check the data source in settings")
		return
	}

	tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "NAME\tTYPE\tOWNER")
	for _, pc := range computers {
		fmt.Fprintf(tw, "%s\t%s\t%s\n", pc.Name, pc.Type, pc.FIO)
	}
	tw.Flush()
}

func printOutcome(out io.Writer, outcome applauncher.Outcome) error {
	if outcome.Started() {
		color.New(color.FgGreen).Fprintf(out, "Started for %s (id %s)\n", outcome.Target, outcome.ID)
		return nil
	}

	switch outcome.Status {
	case applauncher.StatusValidationFailed:
		return fmt.Errorf("invalid target %q: expected an IPv4 address or a host name", outcome.Target)
	case applauncher.StatusExecutableNotFound:
		return fmt.Errorf("remote control viewer not found, check cmrcviewer_path in settings")
	case applauncher.StatusPlatformUnsupported:
		return fmt.Errorf("this operation is only supported on Windows")
	default:
		return fmt.Errorf("failed to start process: %s", outcome.Reason)
	}
}
