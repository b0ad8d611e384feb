package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/muurk/dpctl/internal/config"
	"github.com/muurk/dpctl/internal/monitor"
	"github.com/muurk/dpctl/internal/scpi"
	"github.com/muurk/dpctl/internal/tui"
)

// Command flags
var (
	flagAddress  string
	flagConfig   string
	flagChannels int
	flagTick     int
	logLevel     string
	outputFormat string
)

func init() {
	rootCmd.PersistentFlags().StringVar(&flagAddress, "address", "", "Instrument address (host:port, overrides config file)")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to config file")
	rootCmd.PersistentFlags().IntVar(&flagChannels, "channels", 0, "Channel count (overrides config file)")
	rootCmd.PersistentFlags().IntVar(&flagTick, "tick", 0, "Refresh interval in milliseconds (overrides config file)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "Log level (debug, info, warn, error)")

	rootCmd.AddCommand(tuiCmd)
	rootCmd.AddCommand(identifyCmd)
	rootCmd.AddCommand(statusCmd)
}

// connect resolves settings and dials the instrument.
func connect() (*scpi.Client, *config.Settings, error) {
	settings, err := config.Resolve(flagAddress, flagConfig)
	if err != nil {
		return nil, nil, err
	}
	if flagChannels > 0 {
		settings.Channels = flagChannels
	}
	if flagTick > 0 {
		settings.TickMillis = flagTick
	}
	client, err := scpi.Dial(settings.Address)
	if err != nil {
		return nil, nil, err
	}
	return client, settings, nil
}

// tuiCmd launches the interactive controller
var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Launch the interactive controller",
	Long: `Launch the interactive TUI controller.

One column per channel shows live measurements, setpoints, and
protection limits, refreshed continuously. Arrow keys (or hjkl) move
the cursor, enter toggles the output or opens numeric entry.

This is the default when no command is given.`,
	Example: `  # Connect using the address from the config file
  dpctl

  # Connect to a specific instrument
  dpctl --address 192.168.1.50:5555`,
	RunE: runTUI,
}

func runTUI(cmd *cobra.Command, args []string) error {
	client, settings, err := connect()
	if err != nil {
		return err
	}
	defer client.Close()

	return tui.Run(client, settings)
}

// identifyCmd prints the instrument identification string
var identifyCmd = &cobra.Command{
	Use:   "identify",
	Short: "Print instrument identification",
	Long: `Query the instrument with *IDN? and print the parsed response.

Useful as a connectivity check before launching the controller.`,
	Example: `  dpctl identify --address 192.168.1.50:5555`,
	RunE:    runIdentify,
}

func runIdentify(cmd *cobra.Command, args []string) error {
	client, _, err := connect()
	if err != nil {
		return err
	}
	defer client.Close()

	idn, err := client.Identify()
	if err != nil {
		return fmt.Errorf("identification failed: %w", err)
	}

	fmt.Printf("Manufacturer: %s\n", idn.Manufacturer)
	fmt.Printf("Model:        %s\n", idn.Model)
	fmt.Printf("Serial:       %s\n", idn.Serial)
	fmt.Printf("Firmware:     %s\n", idn.Firmware)
	return nil
}

// statusCmd takes one snapshot and prints it
var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Print a one-shot snapshot of all channels",
	Long: `Query every channel once and print measurements, setpoints, and
protection limits without entering the TUI.`,
	Example: `  # Human-readable output
  dpctl status --address 192.168.1.50:5555

  # JSON output for scripting
  dpctl status --format json`,
	RunE: runStatus,
}

func init() {
	statusCmd.Flags().StringVar(&outputFormat, "format", "detailed", "Output format (detailed, json)")
}

// channelReport is the JSON shape of one channel in 'status --format json'.
type channelReport struct {
	Channel    int     `json:"channel"`
	Output     bool    `json:"output"`
	Voltage    float32 `json:"voltage"`
	Current    float32 `json:"current"`
	Power      float32 `json:"power"`
	SetVoltage float32 `json:"set_voltage"`
	SetCurrent float32 `json:"set_current"`
	OVPLimit   float32 `json:"ovp_limit"`
	OCPLimit   float32 `json:"ocp_limit"`
	OVPEnabled bool    `json:"ovp_enabled"`
	OCPEnabled bool    `json:"ocp_enabled"`
}

func runStatus(cmd *cobra.Command, args []string) error {
	client, settings, err := connect()
	if err != nil {
		return err
	}
	defer client.Close()

	sampler := monitor.NewSampler(client, settings.Channels)
	snapshot := monitor.NewSnapshot(settings.Channels)
	if err := sampler.Refresh(snapshot); err != nil {
		return fmt.Errorf("sampling failed: %w", err)
	}

	switch outputFormat {
	case "json":
		reports := make([]channelReport, 0, settings.Channels)
		for ch := 1; ch <= settings.Channels; ch++ {
			state := snapshot.Channel(ch)
			reports = append(reports, channelReport{
				Channel:    ch,
				Output:     state.Output,
				Voltage:    state.Measured.Voltage,
				Current:    state.Measured.Current,
				Power:      state.Measured.Power,
				SetVoltage: state.SetVoltage,
				SetCurrent: state.SetCurrent,
				OVPLimit:   state.OVPLimit,
				OCPLimit:   state.OCPLimit,
				OVPEnabled: state.OVPEnabled,
				OCPEnabled: state.OCPEnabled,
			})
		}
		data, err := json.MarshalIndent(reports, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal JSON: %w", err)
		}
		fmt.Println(string(data))

	case "detailed":
		for ch := 1; ch <= settings.Channels; ch++ {
			state := snapshot.Channel(ch)
			fmt.Printf("CH%d [%s]\n", ch, onOff(state.Output))
			fmt.Printf("  Measured: %7.3f V  %7.3f A  %7.3f W\n",
				state.Measured.Voltage, state.Measured.Current, state.Measured.Power)
			fmt.Printf("  Set:      %7.3f V  %7.3f A\n", state.SetVoltage, state.SetCurrent)
			fmt.Printf("  OVP:      %7.3f V  [%s]\n", state.OVPLimit, onOff(state.OVPEnabled))
			fmt.Printf("  OCP:      %7.3f A  [%s]\n", state.OCPLimit, onOff(state.OCPEnabled))
		}

	default:
		return fmt.Errorf("unknown output format %q (use detailed or json)", outputFormat)
	}

	return nil
}

func onOff(v bool) string {
	if v {
		return "On"
	}
	return "Off"
}
