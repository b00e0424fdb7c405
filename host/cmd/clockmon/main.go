package main

import (
	"context"
	"io"
	"os"
	"os/signal"

	"github.com/go-i2p/logger"
	"github.com/samber/oops"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"monoclock/host/monitor"
	"monoclock/host/serial"
)

var (
	log     = logger.GetGoI2PLogger()
	cfgFile string
	v       = viper.New()
)

var rootCmd = &cobra.Command{
	Use:           "clockmon",
	Short:         "Check the clock reports printed by the STM32L0 firmware",
	SilenceUsage:  true,
	SilenceErrors: true,
}

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Read clock reports from the serial port",
	Long: `Open the board's UART and check that every "clock=<ticks>" report
lands exactly one period after the previous one. Stops on Ctrl-C or after
--max-samples reports and prints a YAML summary.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := monitor.LoadConfig(v, cfgFile)
		if err != nil {
			return err
		}

		port, err := serial.Open(cfg.SerialConfig())
		if err != nil {
			return err
		}
		defer port.Close()
		if err := port.Flush(); err != nil {
			log.WithError(err).Warn("Failed to flush serial input")
		}

		log.WithFields(logger.Fields{
			"at":     "clockmon.watch",
			"device": cfg.Device,
			"baud":   cfg.Baud,
			"period": cfg.PeriodCycles,
		}).Info("Watching clock reports")

		return run(cmd.Context(), port, cfg, cmd.OutOrStdout())
	},
}

var checkCmd = &cobra.Command{
	Use:   "check <capture-file>",
	Short: "Check a captured log of clock reports",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := monitor.LoadConfig(v, cfgFile)
		if err != nil {
			return err
		}

		f, err := os.Open(args[0])
		if err != nil {
			return oops.Wrapf(err, "failed to open capture %s", args[0])
		}
		defer f.Close()

		return run(cmd.Context(), f, cfg, cmd.OutOrStdout())
	},
}

// run tracks reports from r and writes the summary to out. An unhealthy
// session is reported as an error so the exit status reflects it.
func run(ctx context.Context, r io.Reader, cfg *monitor.Config, out io.Writer) error {
	tracker := cfg.NewTracker()
	err := monitor.Watch(ctx, r, tracker, cfg.MaxSamples)
	if err != nil && ctx.Err() == nil {
		return err
	}

	summary := monitor.Summarize(tracker, cfg.TimerFreq)
	if err := summary.WriteYAML(out); err != nil {
		return err
	}
	if !summary.Healthy {
		return oops.Errorf("clock reports irregular: %d irregular, %d regressions, %d torn reads",
			summary.Irregular, summary.Regressions, summary.TornReads)
	}
	return nil
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (yaml)")
	rootCmd.PersistentFlags().Uint32("period", 0, "expected report period in ticks")
	rootCmd.PersistentFlags().Uint32("tolerance", 0, "allowed error per report in ticks")
	rootCmd.PersistentFlags().Uint32("max-late", 0, "allowed lateness of a served deadline in ticks")
	rootCmd.PersistentFlags().Uint64("max-samples", 0, "stop after this many reports (0 = no limit)")
	watchCmd.Flags().String("device", "", "serial device path")
	watchCmd.Flags().Int("baud", 0, "baud rate")

	bind := func(key string, cmd *cobra.Command, flag string, persistent bool) {
		flags := cmd.Flags()
		if persistent {
			flags = cmd.PersistentFlags()
		}
		if err := v.BindPFlag(key, flags.Lookup(flag)); err != nil {
			panic(err)
		}
	}
	bind(monitor.KeyPeriod, rootCmd, "period", true)
	bind(monitor.KeyTolerance, rootCmd, "tolerance", true)
	bind(monitor.KeyMaxLate, rootCmd, "max-late", true)
	bind(monitor.KeyMaxSamples, rootCmd, "max-samples", true)
	bind(monitor.KeyDevice, watchCmd, "device", false)
	bind(monitor.KeyBaud, watchCmd, "baud", false)

	rootCmd.AddCommand(watchCmd, checkCmd)
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		log.WithError(err).Error("clockmon failed")
		os.Exit(1)
	}
}
