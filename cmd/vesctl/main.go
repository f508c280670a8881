// Command vesctl is the example out-of-core admin CLI for the VES
// reporting agent library (SPEC_FULL.md §B, §D): it loads a small JSON
// options file, constructs an Agent, and exercises only the library's
// public API — the same role spec.md assigns to the example VNF
// reporter executables (ves_heartbeat_reporter et al.), which are
// likewise out of the core's scope.
package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/mitchellh/go-homedir"
	"github.com/olekukonko/tablewriter"
	"github.com/urfave/cli"

	"github.com/att-ves/vesagent/agent"
	"github.com/att-ves/vesagent/event"
	"github.com/att-ves/vesagent/transport"
)

func main() {
	if err := App().Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, "vesctl:", err)
		os.Exit(1)
	}
}

// App builds the vesctl command tree, mirroring the teacher's
// cmd/gpud/command.App() shape: a *cli.App with one Command per
// subcommand and a shared --config flag.
func App() *cli.App {
	app := cli.NewApp()
	app.Name = "vesctl"
	app.Usage = "example admin client for a VES reporting agent"
	app.Version = "0.1.0"

	configFlag := cli.StringFlag{
		Name:  "config",
		Usage: "path to a reporterConfig JSON file",
		Value: "~/.vesagent/config.json",
	}

	app.Commands = []cli.Command{
		{
			Name:  "status",
			Usage: "print dispatcher lifecycle, queue depth and throttle state",
			Flags: []cli.Flag{configFlag},
			Action: func(c *cli.Context) error {
				return runStatus(c.String("config"))
			},
		},
		{
			Name:  "post-test-event",
			Usage: "post a single synthetic heartbeat event and exit",
			Flags: []cli.Flag{configFlag},
			Action: func(c *cli.Context) error {
				return runPostTestEvent(c.String("config"))
			},
		},
	}
	return app
}

// reporterConfig is the small JSON options file vesctl reads, matching
// the shape spec.md §1 attributes to the example reporter executables
// (config parsing is explicitly external to the core).
type reporterConfig struct {
	PrimaryFQDN string `json:"primary_fqdn"`
	PrimaryPort int    `json:"primary_port"`
	Role        string `json:"role"`
	Verbosity   string `json:"verbosity"`
}

func loadConfig(path string) (reporterConfig, error) {
	expanded, err := homedir.Expand(path)
	if err != nil {
		return reporterConfig{}, fmt.Errorf("expanding config path: %w", err)
	}
	b, err := os.ReadFile(filepath.Clean(expanded))
	if err != nil {
		return reporterConfig{}, fmt.Errorf("reading config %s: %w", expanded, err)
	}
	var cfg reporterConfig
	if err := json.Unmarshal(b, &cfg); err != nil {
		return reporterConfig{}, fmt.Errorf("parsing config %s: %w", expanded, err)
	}
	return cfg, nil
}

func newAgent(cfg reporterConfig) (*agent.Agent, error) {
	return agent.Initialize(
		agent.WithPrimaryCollector(transport.EndpointConfig{FQDN: cfg.PrimaryFQDN, Port: cfg.PrimaryPort}),
		agent.WithRole(cfg.Role),
	)
}

func runStatus(configPath string) error {
	cfg, err := loadConfig(configPath)
	if err != nil {
		return err
	}
	a, err := newAgent(cfg)
	if err != nil {
		return err
	}
	a.Run()
	defer a.Terminate()

	time.Sleep(50 * time.Millisecond) // let the dispatcher reach Active

	var buf bytes.Buffer
	table := tablewriter.NewWriter(&buf)
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	table.Append([]string{"Dispatcher state", a.State().String()})
	table.Append([]string{"Queue depth", humanize.Comma(int64(a.Queue().Len()))})
	table.Append([]string{"Measurement interval (s)", fmt.Sprintf("%d", a.MeasurementInterval())})
	var throttled []string
	for _, d := range a.Throttle().ThrottledDomains() {
		throttled = append(throttled, event.Domain(d).String())
	}
	table.Append([]string{"Throttled domains", strings.Join(throttled, ", ")})
	table.Render()
	fmt.Print(buf.String())
	return nil
}

func runPostTestEvent(configPath string) error {
	cfg, err := loadConfig(configPath)
	if err != nil {
		return err
	}
	a, err := newAgent(cfg)
	if err != nil {
		return err
	}
	a.Run()
	defer a.Terminate()

	ev := event.NewHeartbeat("Heartbeat_"+cfg.Role, event.GenerateID("heartbeat"))
	ev.SetIntervalSeconds(60)

	if err := a.PostEvent(ev); err != nil {
		return fmt.Errorf("posting test event: %w", err)
	}
	fmt.Println("posted test heartbeat event")
	return nil
}
